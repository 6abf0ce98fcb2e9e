// Package book holds a split book together with its reading bookmark, and persists it.
package book

import (
	"errors"

	"github.com/unalkalkan/ChapterMark/pkg/types"
)

var (
	// ErrEmptyBook is returned when a book would be built from zero chapters
	ErrEmptyBook = errors.New("book has no chapters")

	// ErrIndexOutOfRange is returned for chapter indices outside [0, len)
	ErrIndexOutOfRange = errors.New("chapter index out of range")

	// ErrChapterNotFound is returned when no chapter carries the requested title
	ErrChapterNotFound = errors.New("chapter not found")
)

// Book is an immutable chapter sequence plus a mutable bookmark
type Book struct {
	info     types.BookInfo
	chapters types.ChapterSequence
	titles   []string
	position int
}

// New wraps a chapter sequence with the bookmark on the first chapter
func New(chapters types.ChapterSequence, info types.BookInfo) (*Book, error) {
	if len(chapters) == 0 {
		return nil, ErrEmptyBook
	}
	return &Book{
		info:     info,
		chapters: chapters,
		titles:   chapters.Titles(),
	}, nil
}

// FromState rebuilds a book from its persisted form.
// A stored bookmark outside the chapter range is clamped like UpdatePosition does.
func FromState(state types.BookState) (*Book, error) {
	b, err := New(state.Chapters, state.Info)
	if err != nil {
		return nil, err
	}
	b.UpdatePosition(state.Position)
	return b, nil
}

// State returns the persisted form of the book
func (b *Book) State() types.BookState {
	return types.BookState{
		Info:     b.info,
		Position: b.position,
		Chapters: b.chapters,
	}
}

// Info returns the book metadata
func (b *Book) Info() types.BookInfo {
	return b.info
}

// Chapters returns the chapter sequence. Callers must not modify it.
func (b *Book) Chapters() types.ChapterSequence {
	return b.chapters
}

// ChapterTitles returns the ordered chapter titles.
// The slice is shared with the book and must not be modified.
func (b *Book) ChapterTitles() []string {
	return b.titles
}

// Len returns the number of chapters, including the introduction
func (b *Book) Len() int {
	return len(b.chapters)
}

// Position returns the bookmark
func (b *Book) Position() int {
	return b.position
}

// Chapter returns the record at index without touching the bookmark
func (b *Book) Chapter(index int) (types.ChapterRecord, error) {
	if index < 0 || index >= len(b.chapters) {
		return types.ChapterRecord{}, ErrIndexOutOfRange
	}
	return b.chapters[index], nil
}

// Current returns the record under the bookmark
func (b *Book) Current() types.ChapterRecord {
	return b.chapters[b.position]
}

// TextAt returns the body of chapter index and moves the bookmark there.
// Out-of-range indices return ErrIndexOutOfRange and leave the bookmark alone.
func (b *Book) TextAt(index int) (string, error) {
	if index < 0 || index >= len(b.chapters) {
		return "", ErrIndexOutOfRange
	}
	b.position = index
	return b.chapters[index].Body, nil
}

// TextByTitle returns the body of the first chapter titled title.
// Unlike TextAt it does not move the bookmark.
func (b *Book) TextByTitle(title string) (string, error) {
	for _, ch := range b.chapters {
		if ch.Title == title {
			return ch.Body, nil
		}
	}
	return "", ErrChapterNotFound
}

// UpdatePosition sets the bookmark. Any value outside [0, len) lands on the last chapter.
func (b *Book) UpdatePosition(position int) {
	if position >= 0 && position < len(b.chapters) {
		b.position = position
		return
	}
	b.position = len(b.chapters) - 1
}
