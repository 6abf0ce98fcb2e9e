// Package parser turns the raw bytes of an e-book file into plain text ready for splitting.
package parser

import (
	"context"
)

// Document is the text extracted from a source file
type Document struct {
	Text     string
	Encoding string // Encoding the bytes were decoded from
}

// Options tune extraction
type Options struct {
	// Encoding forces the source encoding of text files. Empty or "auto" detects it.
	Encoding string
}

// Parser defines the interface for document parsers
type Parser interface {
	// Extract returns the document text with line breaks preserved
	Extract(ctx context.Context, data []byte, opts Options) (*Document, error)

	// SupportedFormats returns the file formats this parser supports
	SupportedFormats() []string
}

// Factory creates parsers for different formats
type Factory interface {
	// GetParser returns a parser for the given format
	GetParser(format string) (Parser, error)
}
