package book

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/unalkalkan/ChapterMark/internal/splitter"
	"github.com/unalkalkan/ChapterMark/pkg/types"
)

func sampleChapters() types.ChapterSequence {
	return splitter.Split("Intro text.\n第1章 Beginning\nBody one.\n第2章 Middle\nBody two.", nil)
}

func newSampleBook(t *testing.T) *Book {
	t.Helper()
	b, err := New(sampleChapters(), types.BookInfo{Title: "sample"})
	require.NoError(t, err)
	return b
}

func TestNew(t *testing.T) {
	t.Run("Starts on the introduction", func(t *testing.T) {
		b := newSampleBook(t)
		assert.Equal(t, 0, b.Position())
		assert.Equal(t, 3, b.Len())
		assert.Equal(t, splitter.IntroductionTitle, b.Current().Title)
	})

	t.Run("Rejects empty sequences", func(t *testing.T) {
		_, err := New(types.ChapterSequence{}, types.BookInfo{})
		assert.ErrorIs(t, err, ErrEmptyBook)

		_, err = New(nil, types.BookInfo{})
		assert.ErrorIs(t, err, ErrEmptyBook)
	})
}

func TestChapterTitles(t *testing.T) {
	b := newSampleBook(t)
	assert.Equal(t, []string{splitter.IntroductionTitle, "第1章 Beginning", "第2章 Middle"}, b.ChapterTitles())
}

func TestTextAt(t *testing.T) {
	b := newSampleBook(t)

	text, err := b.TextAt(1)
	require.NoError(t, err)
	assert.Equal(t, "Body one.", text)
	assert.Equal(t, 1, b.Position())

	for _, index := range []int{5, 3, -1} {
		text, err = b.TextAt(index)
		assert.ErrorIs(t, err, ErrIndexOutOfRange)
		assert.Empty(t, text)
		assert.Equal(t, 1, b.Position(), "failed lookups leave the bookmark alone")
	}

	text, err = b.TextAt(0)
	require.NoError(t, err)
	assert.Equal(t, "Intro text.", text)
	assert.Equal(t, 0, b.Position())
}

func TestTextByTitle(t *testing.T) {
	b := newSampleBook(t)

	text, err := b.TextByTitle("第2章 Middle")
	require.NoError(t, err)
	assert.Equal(t, "Body two.", text)
	assert.Equal(t, 0, b.Position(), "title lookups do not move the bookmark")

	_, err = b.TextByTitle("第9章 Missing")
	assert.ErrorIs(t, err, ErrChapterNotFound)
}

func TestTextByTitleReturnsFirstDuplicate(t *testing.T) {
	chapters := splitter.Split("第1章 Same\nfirst\n第1章 Same\nsecond\n", nil)
	b, err := New(chapters, types.BookInfo{})
	require.NoError(t, err)

	text, err := b.TextByTitle("第1章 Same")
	require.NoError(t, err)
	assert.Equal(t, "first", text)

	text, err = b.TextAt(2)
	require.NoError(t, err)
	assert.Equal(t, "second", text)
}

func TestUpdatePosition(t *testing.T) {
	tests := []struct {
		name     string
		position int
		want     int
	}{
		{"First", 0, 0},
		{"Middle", 1, 1},
		{"Last", 2, 2},
		{"Past the end clamps to last", 3, 2},
		{"Far past the end clamps to last", 100, 2},
		{"Negative clamps to last", -1, 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := newSampleBook(t)
			b.UpdatePosition(tt.position)
			assert.Equal(t, tt.want, b.Position())
		})
	}
}

func TestChapter(t *testing.T) {
	b := newSampleBook(t)

	ch, err := b.Chapter(2)
	require.NoError(t, err)
	assert.Equal(t, "第2章 Middle", ch.Title)
	assert.Equal(t, 0, b.Position())

	_, err = b.Chapter(3)
	assert.ErrorIs(t, err, ErrIndexOutOfRange)
}

func TestStateRoundTrip(t *testing.T) {
	b := newSampleBook(t)
	b.UpdatePosition(2)

	restored, err := FromState(b.State())
	require.NoError(t, err)
	assert.Equal(t, 2, restored.Position())
	assert.Equal(t, b.Chapters(), restored.Chapters())
	assert.Equal(t, "sample", restored.Info().Title)

	t.Run("Stored bookmark out of range is clamped", func(t *testing.T) {
		state := b.State()
		state.Position = 42
		restored, err := FromState(state)
		require.NoError(t, err)
		assert.Equal(t, 2, restored.Position())
	})

	t.Run("Empty state is rejected", func(t *testing.T) {
		_, err := FromState(types.BookState{})
		assert.ErrorIs(t, err, ErrEmptyBook)
	})
}
