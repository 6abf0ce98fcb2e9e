package book

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/sirupsen/logrus"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	"gorm.io/gorm/logger"

	"github.com/unalkalkan/ChapterMark/pkg/types"
)

const (
	bookChaptersTable  = "chapters"
	splitChaptersTable = "split_chapters"

	insertBatchSize = 200
)

type bookRow struct {
	Key        string `gorm:"primaryKey;column:book_key"`
	BookID     string
	Title      string
	Source     string
	Format     string
	Pattern    string
	Encoding   string
	Position   int
	ImportedAt time.Time
	ModifiedAt time.Time
}

func (bookRow) TableName() string { return "books" }

type chapterRow struct {
	BookKey string `gorm:"primaryKey"`
	Seq     int    `gorm:"primaryKey;autoIncrement:false"`
	Title   string
	Body    string
}

// SQLRepository implements Repository on an embedded SQLite database
type SQLRepository struct {
	db *gorm.DB
}

// NewSQLRepository opens (and migrates) the SQLite database at path
func NewSQLRepository(path string, log logrus.FieldLogger) (*SQLRepository, error) {
	if path == "" {
		return nil, fmt.Errorf("sqlite path is empty")
	}
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("failed to create database directory: %w", err)
		}
	}

	gormLogger := logger.New(log, logger.Config{
		SlowThreshold:             200 * time.Millisecond,
		LogLevel:                  logger.Warn,
		IgnoreRecordNotFoundError: true,
		Colorful:                  false,
	})

	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{Logger: gormLogger})
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if err := db.AutoMigrate(&bookRow{}); err != nil {
		return nil, fmt.Errorf("failed to migrate books: %w", err)
	}
	for _, table := range []string{bookChaptersTable, splitChaptersTable} {
		if err := db.Table(table).AutoMigrate(&chapterRow{}); err != nil {
			return nil, fmt.Errorf("failed to migrate %s: %w", table, err)
		}
	}

	return &SQLRepository{db: db}, nil
}

// SaveBook upserts the book row and replaces its chapters in one transaction
func (r *SQLRepository) SaveBook(ctx context.Context, key string, b *Book) error {
	if err := ValidateKey(key); err != nil {
		return err
	}
	state := b.State()
	row := bookRow{
		Key:        key,
		BookID:     state.Info.ID,
		Title:      state.Info.Title,
		Source:     state.Info.Source,
		Format:     state.Info.Format,
		Pattern:    state.Info.Pattern,
		Encoding:   state.Info.Encoding,
		Position:   state.Position,
		ImportedAt: state.Info.CreatedAt,
		ModifiedAt: state.Info.UpdatedAt,
	}

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Clauses(clause.OnConflict{UpdateAll: true}).Create(&row).Error; err != nil {
			return err
		}
		return replaceChapters(tx, bookChaptersTable, key, state.Chapters)
	})
	if err != nil {
		return fmt.Errorf("failed to save book %s: %w", key, err)
	}
	return nil
}

// LoadBook reads the book row and its chapters in order
func (r *SQLRepository) LoadBook(ctx context.Context, key string) (*Book, error) {
	if err := ValidateKey(key); err != nil {
		return nil, err
	}
	db := r.db.WithContext(ctx)

	var row bookRow
	if err := db.Where("book_key = ?", key).First(&row).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("failed to load book %s: %w", key, ErrBookNotFound)
		}
		return nil, fmt.Errorf("failed to load book %s: %w", key, err)
	}

	chapters, err := loadChapters(db, bookChaptersTable, key)
	if err != nil {
		return nil, fmt.Errorf("failed to load book %s: %w", key, err)
	}

	b, err := FromState(types.BookState{
		Info: types.BookInfo{
			ID:        row.BookID,
			Title:     row.Title,
			Source:    row.Source,
			Format:    row.Format,
			Pattern:   row.Pattern,
			Encoding:  row.Encoding,
			CreatedAt: row.ImportedAt,
			UpdatedAt: row.ModifiedAt,
		},
		Position: row.Position,
		Chapters: chapters,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to load book %s: %w", key, err)
	}
	return b, nil
}

// SaveChapters replaces the stored split result for key
func (r *SQLRepository) SaveChapters(ctx context.Context, key string, chapters types.ChapterSequence) error {
	if err := ValidateKey(key); err != nil {
		return err
	}
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return replaceChapters(tx, splitChaptersTable, key, chapters)
	})
	if err != nil {
		return fmt.Errorf("failed to save chapters %s: %w", key, err)
	}
	return nil
}

// LoadChapters reads the stored split result for key
func (r *SQLRepository) LoadChapters(ctx context.Context, key string) (types.ChapterSequence, error) {
	if err := ValidateKey(key); err != nil {
		return nil, err
	}
	db := r.db.WithContext(ctx)

	var count int64
	if err := db.Table(splitChaptersTable).Where("book_key = ?", key).Count(&count).Error; err != nil {
		return nil, fmt.Errorf("failed to load chapters %s: %w", key, err)
	}
	if count == 0 {
		return nil, fmt.Errorf("failed to load chapters %s: %w", key, ErrBookNotFound)
	}

	chapters, err := loadChapters(db, splitChaptersTable, key)
	if err != nil {
		return nil, fmt.Errorf("failed to load chapters %s: %w", key, err)
	}
	return chapters, nil
}

// ListBooks returns all book keys in sorted order
func (r *SQLRepository) ListBooks(ctx context.Context) ([]string, error) {
	var keys []string
	if err := r.db.WithContext(ctx).Model(&bookRow{}).Order("book_key").Pluck("book_key", &keys).Error; err != nil {
		return nil, fmt.Errorf("failed to list books: %w", err)
	}
	return keys, nil
}

// Close closes the database connection
func (r *SQLRepository) Close() error {
	sqlDB, err := r.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

func replaceChapters(tx *gorm.DB, table, key string, chapters types.ChapterSequence) error {
	if err := tx.Table(table).Where("book_key = ?", key).Delete(&chapterRow{}).Error; err != nil {
		return err
	}
	if len(chapters) == 0 {
		return nil
	}

	rows := make([]chapterRow, len(chapters))
	for i, ch := range chapters {
		rows[i] = chapterRow{BookKey: key, Seq: i, Title: ch.Title, Body: ch.Body}
	}
	return tx.Table(table).CreateInBatches(rows, insertBatchSize).Error
}

func loadChapters(db *gorm.DB, table, key string) (types.ChapterSequence, error) {
	var rows []chapterRow
	if err := db.Table(table).Where("book_key = ?", key).Order("seq").Find(&rows).Error; err != nil {
		return nil, err
	}

	chapters := make(types.ChapterSequence, len(rows))
	for i, row := range rows {
		chapters[i] = types.ChapterRecord{Title: row.Title, Body: row.Body}
	}
	return chapters, nil
}
