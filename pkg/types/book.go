package types

import "time"

// ChapterRecord is a single chapter: its heading and the text under it
type ChapterRecord struct {
	Title string `json:"title"`
	Body  string `json:"body"`
}

// ChapterSequence is the ordered list of chapters of a book.
// Index order is the canonical chapter order.
type ChapterSequence []ChapterRecord

// Titles returns the chapter titles in order
func (s ChapterSequence) Titles() []string {
	titles := make([]string, len(s))
	for i, ch := range s {
		titles[i] = ch.Title
	}
	return titles
}

// BookInfo holds metadata recorded when a book is imported
type BookInfo struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	Source    string    `json:"source"`   // Path of the ingested file
	Format    string    `json:"format"`   // "txt", "epub", "pdf"
	Pattern   string    `json:"pattern"`  // Heading pattern used for splitting
	Encoding  string    `json:"encoding"` // Detected or forced source encoding
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// BookState is the persisted form of a book
type BookState struct {
	Info     BookInfo        `json:"info"`
	Position int             `json:"position"`
	Chapters ChapterSequence `json:"chapters"`
}
