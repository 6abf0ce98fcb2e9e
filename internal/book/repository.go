package book

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"path"
	"strings"

	"github.com/unalkalkan/ChapterMark/internal/storage"
	"github.com/unalkalkan/ChapterMark/pkg/types"
)

var (
	// ErrBookNotFound is returned when no state is stored under a key
	ErrBookNotFound = errors.New("book not found")

	// ErrInvalidKey is returned for keys that cannot name a book
	ErrInvalidKey = errors.New("invalid book key")
)

const (
	booksPrefix  = "books/"
	bookFile     = "book.json"
	chaptersFile = "chapters.json"
)

// Repository handles book state persistence
type Repository interface {
	// SaveBook stores the full book state, bookmark included
	SaveBook(ctx context.Context, key string, b *Book) error

	// LoadBook retrieves the book stored under key
	LoadBook(ctx context.Context, key string) (*Book, error)

	// SaveChapters stores a raw split result
	SaveChapters(ctx context.Context, key string, chapters types.ChapterSequence) error

	// LoadChapters retrieves a raw split result
	LoadChapters(ctx context.Context, key string) (types.ChapterSequence, error)

	// ListBooks returns the keys of all stored books in sorted order
	ListBooks(ctx context.Context) ([]string, error)

	// Close releases the underlying backend
	Close() error
}

// ValidateKey checks that key can be used as a single path element
func ValidateKey(key string) error {
	if key == "" || key == "." || key == ".." || strings.ContainsAny(key, `/\`) {
		return fmt.Errorf("%w: %q", ErrInvalidKey, key)
	}
	return nil
}

// StorageRepository implements Repository as JSON documents on a storage adapter
type StorageRepository struct {
	storage storage.Adapter
}

// NewStorageRepository creates a repository on top of a storage adapter
func NewStorageRepository(adapter storage.Adapter) *StorageRepository {
	return &StorageRepository{storage: adapter}
}

// SaveBook stores the book state at books/<key>/book.json
func (r *StorageRepository) SaveBook(ctx context.Context, key string, b *Book) error {
	if err := ValidateKey(key); err != nil {
		return err
	}
	data, err := json.MarshalIndent(b.State(), "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal book: %w", err)
	}
	if err := r.storage.Put(ctx, bookPath(key), bytes.NewReader(data)); err != nil {
		return fmt.Errorf("failed to save book %s: %w", key, err)
	}
	return nil
}

// LoadBook retrieves the book state stored at books/<key>/book.json
func (r *StorageRepository) LoadBook(ctx context.Context, key string) (*Book, error) {
	if err := ValidateKey(key); err != nil {
		return nil, err
	}

	var state types.BookState
	if err := r.getJSON(ctx, bookPath(key), &state); err != nil {
		return nil, fmt.Errorf("failed to load book %s: %w", key, err)
	}

	b, err := FromState(state)
	if err != nil {
		return nil, fmt.Errorf("failed to load book %s: %w", key, err)
	}
	return b, nil
}

// SaveChapters stores the split result at books/<key>/chapters.json
func (r *StorageRepository) SaveChapters(ctx context.Context, key string, chapters types.ChapterSequence) error {
	if err := ValidateKey(key); err != nil {
		return err
	}
	data, err := json.Marshal(chapters)
	if err != nil {
		return fmt.Errorf("failed to marshal chapters: %w", err)
	}
	if err := r.storage.Put(ctx, chaptersPath(key), bytes.NewReader(data)); err != nil {
		return fmt.Errorf("failed to save chapters %s: %w", key, err)
	}
	return nil
}

// LoadChapters retrieves the split result stored at books/<key>/chapters.json
func (r *StorageRepository) LoadChapters(ctx context.Context, key string) (types.ChapterSequence, error) {
	if err := ValidateKey(key); err != nil {
		return nil, err
	}

	var chapters types.ChapterSequence
	if err := r.getJSON(ctx, chaptersPath(key), &chapters); err != nil {
		return nil, fmt.Errorf("failed to load chapters %s: %w", key, err)
	}
	if chapters == nil {
		chapters = types.ChapterSequence{}
	}
	return chapters, nil
}

// ListBooks returns the keys that have a book.json
func (r *StorageRepository) ListBooks(ctx context.Context) ([]string, error) {
	paths, err := r.storage.List(ctx, booksPrefix)
	if err != nil {
		return nil, fmt.Errorf("failed to list books: %w", err)
	}

	keys := make([]string, 0, len(paths))
	for _, p := range paths {
		dir, file := path.Split(strings.TrimPrefix(p, booksPrefix))
		key := strings.TrimSuffix(dir, "/")
		if file != bookFile || ValidateKey(key) != nil {
			continue
		}
		keys = append(keys, key)
	}

	return keys, nil
}

// Close closes the storage adapter
func (r *StorageRepository) Close() error {
	return r.storage.Close()
}

func (r *StorageRepository) getJSON(ctx context.Context, p string, v any) error {
	reader, err := r.storage.Get(ctx, p)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return fmt.Errorf("%w: %v", ErrBookNotFound, err)
		}
		return err
	}
	defer reader.Close()

	if err := json.NewDecoder(reader).Decode(v); err != nil {
		return fmt.Errorf("failed to decode %s: %w", p, err)
	}
	return nil
}

func bookPath(key string) string {
	return path.Join(booksPrefix, key, bookFile)
}

func chaptersPath(key string) string {
	return path.Join(booksPrefix, key, chaptersFile)
}
