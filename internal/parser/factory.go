package parser

import (
	"fmt"
	"path/filepath"
	"strings"
)

// DefaultFactory creates parsers for supported formats
type DefaultFactory struct {
	parsers map[string]Parser
}

// NewFactory creates a new parser factory with the text, ePUB and PDF parsers
func NewFactory() *DefaultFactory {
	f := &DefaultFactory{
		parsers: make(map[string]Parser),
	}

	f.Register(NewTXTParser())
	f.Register(NewEPUBParser())
	f.Register(NewPDFParser())

	return f
}

// Register registers a parser for its supported formats
func (f *DefaultFactory) Register(p Parser) {
	for _, format := range p.SupportedFormats() {
		f.parsers[strings.ToLower(format)] = p
	}
}

// GetParser returns a parser for the given format
func (f *DefaultFactory) GetParser(format string) (Parser, error) {
	format = strings.ToLower(strings.TrimPrefix(format, "."))
	parser, ok := f.parsers[format]
	if !ok {
		return nil, fmt.Errorf("unsupported format: %s", format)
	}
	return parser, nil
}

// FormatFromPath derives the format name from a file extension.
// Files without an extension are treated as plain text.
func FormatFromPath(path string) string {
	ext := strings.ToLower(strings.TrimPrefix(filepath.Ext(path), "."))
	if ext == "" {
		return "txt"
	}
	return ext
}
