package packaging

import (
	"archive/zip"
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"time"
	"unicode/utf8"

	"github.com/sirupsen/logrus"

	"github.com/unalkalkan/ChapterMark/internal/book"
	"github.com/unalkalkan/ChapterMark/pkg/types"
)

// FormatVersion is written into every manifest
const FormatVersion = "1.0"

// Service handles book packaging into ZIP archives
type Service struct {
	bookRepo book.Repository
	log      logrus.FieldLogger
	now      func() time.Time
}

// NewService creates a new packaging service
func NewService(bookRepo book.Repository, log logrus.FieldLogger) *Service {
	return &Service{
		bookRepo: bookRepo,
		log:      log,
		now:      time.Now,
	}
}

// Manifest represents the top-level book manifest
type Manifest struct {
	Book       types.BookInfo `json:"book"`
	Chapters   int            `json:"chapter_count"`
	Position   int            `json:"position"`
	ExportedAt time.Time      `json:"exported_at"`
	Version    string         `json:"version"`
}

// TOC represents the table of contents
type TOC struct {
	Chapters []TOCChapter `json:"chapters"`
}

// TOCChapter represents a chapter in the TOC
type TOCChapter struct {
	Index int    `json:"index"`
	Title string `json:"title"`
	File  string `json:"file"`
	Runes int    `json:"runes"`
}

// ChapterPath returns the archive path of the chapter at index
func ChapterPath(index int) string {
	return fmt.Sprintf("chapters/%04d.txt", index)
}

// PackageBook creates a ZIP archive for the book stored under key
func (s *Service) PackageBook(ctx context.Context, key string) (io.Reader, error) {
	b, err := s.bookRepo.LoadBook(ctx, key)
	if err != nil {
		return nil, fmt.Errorf("failed to get book: %w", err)
	}

	buf := new(bytes.Buffer)
	zipWriter := zip.NewWriter(buf)

	manifest := &Manifest{
		Book:       b.Info(),
		Chapters:   b.Len(),
		Position:   b.Position(),
		ExportedAt: s.now().UTC(),
		Version:    FormatVersion,
	}
	if err := s.addJSONFile(zipWriter, "manifest.json", manifest); err != nil {
		return nil, fmt.Errorf("failed to add manifest: %w", err)
	}

	toc := s.generateTOC(b.Chapters())
	if err := s.addJSONFile(zipWriter, "toc.json", toc); err != nil {
		return nil, fmt.Errorf("failed to add toc: %w", err)
	}

	for i, ch := range b.Chapters() {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if err := s.addFileFromReader(zipWriter, ChapterPath(i), bytes.NewReader(renderChapter(ch))); err != nil {
			return nil, fmt.Errorf("failed to add chapter %d: %w", i, err)
		}
	}

	if err := zipWriter.Close(); err != nil {
		return nil, fmt.Errorf("failed to close zip: %w", err)
	}

	s.log.WithFields(logrus.Fields{"key": key, "chapters": b.Len(), "bytes": buf.Len()}).Info("book packaged")
	return bytes.NewReader(buf.Bytes()), nil
}

func (s *Service) generateTOC(chapters types.ChapterSequence) *TOC {
	toc := &TOC{
		Chapters: make([]TOCChapter, 0, len(chapters)),
	}
	for i, ch := range chapters {
		toc.Chapters = append(toc.Chapters, TOCChapter{
			Index: i,
			Title: ch.Title,
			File:  ChapterPath(i),
			Runes: utf8.RuneCountInString(ch.Body),
		})
	}
	return toc
}

func renderChapter(ch types.ChapterRecord) []byte {
	var buf bytes.Buffer
	buf.WriteString(ch.Title)
	buf.WriteString("\n\n")
	buf.WriteString(ch.Body)
	buf.WriteString("\n")
	return buf.Bytes()
}

// addJSONFile adds a JSON file to the ZIP
func (s *Service) addJSONFile(zipWriter *zip.Writer, path string, data interface{}) error {
	jsonData, err := json.MarshalIndent(data, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal JSON: %w", err)
	}

	writer, err := zipWriter.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create zip entry: %w", err)
	}

	if _, err := writer.Write(jsonData); err != nil {
		return fmt.Errorf("failed to write data: %w", err)
	}

	return nil
}

// addFileFromReader adds a file from an io.Reader to the ZIP
func (s *Service) addFileFromReader(zipWriter *zip.Writer, path string, reader io.Reader) error {
	writer, err := zipWriter.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create zip entry: %w", err)
	}

	if _, err := io.Copy(writer, reader); err != nil {
		return fmt.Errorf("failed to copy data: %w", err)
	}

	return nil
}
