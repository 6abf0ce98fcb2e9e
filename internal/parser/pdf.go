package parser

import (
	"bytes"
	"context"
	"fmt"
	"io"

	"github.com/ledongthuc/pdf"
)

// PDFParser extracts text from PDF files
type PDFParser struct{}

// NewPDFParser creates a new PDF parser
func NewPDFParser() *PDFParser {
	return &PDFParser{}
}

// Extract returns the plain text of all pages in order
func (p *PDFParser) Extract(ctx context.Context, data []byte, opts Options) (*Document, error) {
	r, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, fmt.Errorf("failed to open pdf: %w", err)
	}

	text, err := r.GetPlainText()
	if err != nil {
		return nil, fmt.Errorf("failed to extract pdf text: %w", err)
	}

	var out bytes.Buffer
	if _, err := io.Copy(&out, text); err != nil {
		return nil, fmt.Errorf("failed to read pdf text: %w", err)
	}

	return &Document{Text: normalizeNewlines(out.String()), Encoding: EncodingUTF8}, nil
}

// SupportedFormats returns the formats this parser supports
func (p *PDFParser) SupportedFormats() []string {
	return []string{"pdf"}
}
