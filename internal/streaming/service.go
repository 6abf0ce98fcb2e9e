package streaming

import (
	"context"
	"encoding/json"
	"fmt"
	"io"

	"github.com/unalkalkan/ChapterMark/internal/book"
)

// FromBookmark starts a stream at the book's current position
const FromBookmark = -1

// Service handles streaming of book chapters
type Service struct {
	bookRepo book.Repository
}

// NewService creates a new streaming service
func NewService(bookRepo book.Repository) *Service {
	return &Service{
		bookRepo: bookRepo,
	}
}

// StreamItem represents a single item in the NDJSON stream
type StreamItem struct {
	Index   int    `json:"index"`
	Title   string `json:"title"`
	Body    string `json:"body"`
	Current bool   `json:"current"`
}

// StreamChapters returns the chapters from index from to the end of the book.
// FromBookmark starts at the saved position.
func (s *Service) StreamChapters(ctx context.Context, key string, from int) ([]StreamItem, error) {
	b, err := s.bookRepo.LoadBook(ctx, key)
	if err != nil {
		return nil, fmt.Errorf("failed to get book: %w", err)
	}

	if from == FromBookmark {
		from = b.Position()
	}
	if from < 0 || from >= b.Len() {
		return nil, fmt.Errorf("%w: %d not in [0, %d)", book.ErrIndexOutOfRange, from, b.Len())
	}

	chapters := b.Chapters()
	items := make([]StreamItem, 0, len(chapters)-from)
	for i := from; i < len(chapters); i++ {
		items = append(items, StreamItem{
			Index:   i,
			Title:   chapters[i].Title,
			Body:    chapters[i].Body,
			Current: i == b.Position(),
		})
	}

	return items, nil
}

// WriteNDJSON encodes stream items as NDJSON, one item per line
func WriteNDJSON(w io.Writer, items []StreamItem) error {
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	for _, item := range items {
		if err := enc.Encode(item); err != nil {
			return fmt.Errorf("failed to marshal item: %w", err)
		}
	}
	return nil
}
