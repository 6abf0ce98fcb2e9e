package book

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/unalkalkan/ChapterMark/internal/parser"
	"github.com/unalkalkan/ChapterMark/internal/splitter"
	"github.com/unalkalkan/ChapterMark/pkg/types"
)

// ErrNoChapters is returned when the heading pattern matched nothing in the source text
var ErrNoChapters = errors.New("no chapter headings found")

// ImportRequest describes a file to ingest
type ImportRequest struct {
	Key         string // Storage key; defaults to the file name without extension
	Path        string // Source file, read when Data is nil
	Data        []byte
	Format      string // Defaults to the Path extension
	PatternName string
	PatternExpr string
	Encoding    string
	Title       string // Defaults to Key
}

// Service ingests source files into persisted books
type Service struct {
	repo    Repository
	parsers parser.Factory
	log     logrus.FieldLogger
	now     func() time.Time
}

// NewService creates a new import service
func NewService(repo Repository, parsers parser.Factory, log logrus.FieldLogger) *Service {
	return &Service{
		repo:    repo,
		parsers: parsers,
		log:     log,
		now:     time.Now,
	}
}

// SplitAndSave splits text and, when key is non-empty, stores the raw split result under it.
// An empty result is stored too; persistence errors are returned unchanged.
func (s *Service) SplitAndSave(ctx context.Context, key, text string, pattern *regexp.Regexp) (types.ChapterSequence, error) {
	chapters := splitter.Split(text, pattern)
	if key == "" {
		return chapters, nil
	}
	if err := s.repo.SaveChapters(ctx, key, chapters); err != nil {
		return chapters, err
	}
	return chapters, nil
}

// Import extracts, splits and persists a book with its bookmark on the introduction
func (s *Service) Import(ctx context.Context, req ImportRequest) (*Book, error) {
	key := req.Key
	if key == "" {
		key = KeyFromPath(req.Path)
	}
	if err := ValidateKey(key); err != nil {
		return nil, err
	}

	data := req.Data
	if data == nil {
		raw, err := os.ReadFile(req.Path)
		if err != nil {
			return nil, fmt.Errorf("failed to read %s: %w", req.Path, err)
		}
		data = raw
	}

	format := req.Format
	if format == "" {
		format = parser.FormatFromPath(req.Path)
	}
	p, err := s.parsers.GetParser(format)
	if err != nil {
		return nil, err
	}

	pattern, err := splitter.Resolve(req.PatternName, req.PatternExpr)
	if err != nil {
		return nil, err
	}

	doc, err := p.Extract(ctx, data, parser.Options{Encoding: req.Encoding})
	if err != nil {
		return nil, fmt.Errorf("failed to extract text: %w", err)
	}

	log := s.log.WithFields(logrus.Fields{"key": key, "format": format, "encoding": doc.Encoding})
	log.Debugf("extracted %d bytes of text", len(doc.Text))

	chapters, err := s.SplitAndSave(ctx, key, doc.Text, pattern)
	if err != nil {
		return nil, err
	}
	if len(chapters) == 0 {
		log.WithField("pattern", pattern.String()).Warn("heading pattern matched nothing")
		return nil, fmt.Errorf("%w using pattern %q", ErrNoChapters, pattern.String())
	}

	title := req.Title
	if title == "" {
		title = key
	}
	now := s.now().UTC()
	b, err := New(chapters, types.BookInfo{
		ID:        uuid.NewString(),
		Title:     title,
		Source:    req.Path,
		Format:    format,
		Pattern:   pattern.String(),
		Encoding:  doc.Encoding,
		CreatedAt: now,
		UpdatedAt: now,
	})
	if err != nil {
		return nil, err
	}
	if err := s.repo.SaveBook(ctx, key, b); err != nil {
		return nil, err
	}

	log.WithField("chapters", b.Len()).Info("book imported")
	return b, nil
}

// Touch records a modification time on the book before it is saved again
func (s *Service) Touch(b *Book) {
	b.info.UpdatedAt = s.now().UTC()
}

// KeyFromPath derives a storage key from a file name
func KeyFromPath(path string) string {
	base := filepath.Base(path)
	key := strings.TrimSuffix(base, filepath.Ext(base))
	return strings.TrimSpace(key)
}
