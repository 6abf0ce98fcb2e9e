// Package shelf lists the stored books and tracks which one is active.
package shelf

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/sirupsen/logrus"

	"github.com/unalkalkan/ChapterMark/internal/config"
)

// ErrIndexOutOfRange is returned when a shelf index does not name a book
var ErrIndexOutOfRange = errors.New("shelf index out of range")

// Lister enumerates stored book locations
type Lister interface {
	ListBooks(ctx context.Context) ([]string, error)
}

// Shelf is an ordered list of book state locations
type Shelf struct {
	Locations []string
}

// Load builds a shelf from the locations known to lister
func Load(ctx context.Context, lister Lister) (*Shelf, error) {
	locations, err := lister.ListBooks(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list books: %w", err)
	}
	return &Shelf{Locations: locations}, nil
}

// Len returns the number of books on the shelf
func (s *Shelf) Len() int {
	return len(s.Locations)
}

// At returns the location at index i
func (s *Shelf) At(i int) (string, error) {
	if i < 0 || i >= len(s.Locations) {
		return "", fmt.Errorf("%w: %d not in [0, %d)", ErrIndexOutOfRange, i, len(s.Locations))
	}
	return s.Locations[i], nil
}

// IndexOf returns the index of location, or -1
func (s *Shelf) IndexOf(location string) int {
	for i, l := range s.Locations {
		if l == location {
			return i
		}
	}
	return -1
}

// Selection names the active book through a JSON selection store
type Selection struct {
	Path string
	Key  string
	Log  logrus.FieldLogger // Receives selection store diagnostics; nil discards them
}

func (s Selection) logger() logrus.FieldLogger {
	if s.Log != nil {
		return s.Log
	}
	discard := logrus.New()
	discard.SetOutput(io.Discard)
	return discard
}

func (s Selection) key() string {
	if s.Key == "" {
		return config.DefaultSelectionKey
	}
	return s.Key
}

// Active returns the selected location, if any
func (s Selection) Active() (string, bool) {
	location, ok := config.ReadValue(s.logger(), s.Path, s.key())
	if !ok || location == "" {
		return "", false
	}
	return location, true
}

// Select makes location the active book
func (s Selection) Select(location string) error {
	if err := config.WriteValue(s.logger(), s.Path, s.key(), location); err != nil {
		return fmt.Errorf("failed to select %s: %w", location, err)
	}
	return nil
}
