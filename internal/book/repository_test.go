package book

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/unalkalkan/ChapterMark/internal/storage"
	"github.com/unalkalkan/ChapterMark/pkg/types"
)

func newTestLogger() *logrus.Logger {
	log, _ := test.NewNullLogger()
	return log
}

func newStorageRepo(t *testing.T) Repository {
	t.Helper()
	adapter, err := storage.NewLocalAdapter(t.TempDir())
	require.NoError(t, err)
	repo := NewStorageRepository(adapter)
	t.Cleanup(func() { repo.Close() })
	return repo
}

func newSQLRepo(t *testing.T) Repository {
	t.Helper()
	repo, err := NewSQLRepository(filepath.Join(t.TempDir(), "books.db"), newTestLogger())
	if err != nil {
		t.Skipf("sqlite unavailable: %v", err)
	}
	t.Cleanup(func() { repo.Close() })
	return repo
}

func TestRepositories(t *testing.T) {
	backends := map[string]func(*testing.T) Repository{
		"storage": newStorageRepo,
		"sqlite":  newSQLRepo,
	}

	for name, newRepo := range backends {
		t.Run(name, func(t *testing.T) {
			testRepository(t, newRepo(t))
		})
	}
}

func testRepository(t *testing.T, repo Repository) {
	ctx := context.Background()
	created := time.Date(2024, 1, 17, 8, 33, 12, 0, time.UTC)

	t.Run("SaveAndLoadBook", func(t *testing.T) {
		b, err := New(sampleChapters(), types.BookInfo{
			ID:        "f9f5a1c2",
			Title:     "星戒",
			Source:    "/books/星戒.txt",
			Format:    "txt",
			Encoding:  "gb18030",
			CreatedAt: created,
			UpdatedAt: created,
		})
		require.NoError(t, err)
		b.UpdatePosition(2)

		require.NoError(t, repo.SaveBook(ctx, "xingjie", b))

		loaded, err := repo.LoadBook(ctx, "xingjie")
		require.NoError(t, err)
		assert.Equal(t, 2, loaded.Position())
		assert.Equal(t, b.Chapters(), loaded.Chapters())
		assert.Equal(t, "星戒", loaded.Info().Title)
		assert.Equal(t, "gb18030", loaded.Info().Encoding)
		assert.True(t, created.Equal(loaded.Info().CreatedAt))
	})

	t.Run("SaveBook overwrites the bookmark", func(t *testing.T) {
		b, err := repo.LoadBook(ctx, "xingjie")
		require.NoError(t, err)
		b.UpdatePosition(1)
		require.NoError(t, repo.SaveBook(ctx, "xingjie", b))

		loaded, err := repo.LoadBook(ctx, "xingjie")
		require.NoError(t, err)
		assert.Equal(t, 1, loaded.Position())
		assert.Equal(t, 3, loaded.Len())
	})

	t.Run("SaveAndLoadChapters", func(t *testing.T) {
		chapters := sampleChapters()
		require.NoError(t, repo.SaveChapters(ctx, "tiandi", chapters))

		loaded, err := repo.LoadChapters(ctx, "tiandi")
		require.NoError(t, err)
		assert.Equal(t, chapters, loaded)
	})

	t.Run("ListBooks", func(t *testing.T) {
		b, err := New(sampleChapters(), types.BookInfo{Title: "another"})
		require.NoError(t, err)
		require.NoError(t, repo.SaveBook(ctx, "another", b))

		// Keys with only a split result are not books yet.
		keys, err := repo.ListBooks(ctx)
		require.NoError(t, err)
		assert.Equal(t, []string{"another", "xingjie"}, keys)
	})

	t.Run("Missing book", func(t *testing.T) {
		_, err := repo.LoadBook(ctx, "missing")
		assert.ErrorIs(t, err, ErrBookNotFound)

		_, err = repo.LoadChapters(ctx, "missing")
		assert.ErrorIs(t, err, ErrBookNotFound)
	})

	t.Run("Invalid keys", func(t *testing.T) {
		b, err := New(sampleChapters(), types.BookInfo{})
		require.NoError(t, err)

		for _, key := range []string{"", ".", "..", "a/b", `a\b`} {
			assert.ErrorIs(t, repo.SaveBook(ctx, key, b), ErrInvalidKey, key)
			_, err := repo.LoadBook(ctx, key)
			assert.ErrorIs(t, err, ErrInvalidKey, key)
		}
	})
}

func TestStorageRepositoryLayout(t *testing.T) {
	tmpDir := t.TempDir()
	adapter, err := storage.NewLocalAdapter(tmpDir)
	require.NoError(t, err)
	repo := NewStorageRepository(adapter)
	ctx := context.Background()

	b, err := New(sampleChapters(), types.BookInfo{})
	require.NoError(t, err)
	require.NoError(t, repo.SaveChapters(ctx, "layout", b.Chapters()))
	require.NoError(t, repo.SaveBook(ctx, "layout", b))

	paths, err := adapter.List(ctx, "")
	require.NoError(t, err)
	assert.Equal(t, []string{"books/layout/book.json", "books/layout/chapters.json"}, paths)
}

func TestNewRepository(t *testing.T) {
	t.Run("Local", func(t *testing.T) {
		repo, err := NewRepository(types.StorageConfig{
			Adapter: "local",
			Local:   types.LocalStorageOpts{BasePath: t.TempDir()},
		}, newTestLogger())
		require.NoError(t, err)
		defer repo.Close()
		assert.IsType(t, &StorageRepository{}, repo)
	})

	t.Run("SQLite", func(t *testing.T) {
		repo, err := NewRepository(types.StorageConfig{
			Adapter: "SQLite",
			SQLite:  types.SQLiteStorageOpts{Path: filepath.Join(t.TempDir(), "books.db")},
		}, newTestLogger())
		if err != nil {
			t.Skipf("sqlite unavailable: %v", err)
		}
		defer repo.Close()
		assert.IsType(t, &SQLRepository{}, repo)
	})

	t.Run("Unknown adapter", func(t *testing.T) {
		_, err := NewRepository(types.StorageConfig{Adapter: "tape"}, newTestLogger())
		assert.ErrorIs(t, err, storage.ErrUnsupportedAdapter)
	})
}
