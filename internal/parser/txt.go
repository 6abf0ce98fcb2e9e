package parser

import (
	"bytes"
	"context"
	"fmt"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/htmlindex"
	"golang.org/x/text/encoding/simplifiedchinese"
	"golang.org/x/text/encoding/unicode"
)

// Encoding names reported by the TXT parser
const (
	EncodingUTF8    = "utf-8"
	EncodingUTF16LE = "utf-16le"
	EncodingUTF16BE = "utf-16be"
	EncodingGB18030 = "gb18030"
)

var (
	bomUTF8    = []byte{0xEF, 0xBB, 0xBF}
	bomUTF16LE = []byte{0xFF, 0xFE}
	bomUTF16BE = []byte{0xFE, 0xFF}
)

// TXTParser decodes plain text files
type TXTParser struct{}

// NewTXTParser creates a new TXT parser
func NewTXTParser() *TXTParser {
	return &TXTParser{}
}

// Extract decodes data and normalises line endings to "\n"
func (p *TXTParser) Extract(ctx context.Context, data []byte, opts Options) (*Document, error) {
	var (
		text string
		name string
		err  error
	)

	if forced := strings.TrimSpace(opts.Encoding); forced != "" && !strings.EqualFold(forced, "auto") {
		text, name, err = decodeAs(data, forced)
	} else {
		text, name, err = detectAndDecode(data)
	}
	if err != nil {
		return nil, err
	}

	return &Document{Text: normalizeNewlines(text), Encoding: name}, nil
}

// SupportedFormats returns the formats this parser supports
func (p *TXTParser) SupportedFormats() []string {
	return []string{"txt", "text"}
}

// detectAndDecode guesses the encoding from a byte order mark or UTF-8 validity.
// Anything else is decoded as GB18030, which also covers GBK and GB2312 sources.
func detectAndDecode(data []byte) (string, string, error) {
	switch {
	case bytes.HasPrefix(data, bomUTF8):
		return string(data[len(bomUTF8):]), EncodingUTF8, nil
	case bytes.HasPrefix(data, bomUTF16LE):
		return decodeWith(data, unicode.UTF16(unicode.LittleEndian, unicode.ExpectBOM), EncodingUTF16LE)
	case bytes.HasPrefix(data, bomUTF16BE):
		return decodeWith(data, unicode.UTF16(unicode.BigEndian, unicode.ExpectBOM), EncodingUTF16BE)
	case utf8.Valid(data):
		return string(data), EncodingUTF8, nil
	default:
		return decodeWith(data, simplifiedchinese.GB18030, EncodingGB18030)
	}
}

func decodeAs(data []byte, label string) (string, string, error) {
	enc, err := htmlindex.Get(label)
	if err != nil {
		return "", "", fmt.Errorf("unknown encoding %q: %w", label, err)
	}
	name, err := htmlindex.Name(enc)
	if err != nil {
		name = strings.ToLower(label)
	}
	if name == EncodingUTF8 {
		return string(bytes.TrimPrefix(data, bomUTF8)), name, nil
	}
	return decodeWith(data, enc, name)
}

func decodeWith(data []byte, enc encoding.Encoding, name string) (string, string, error) {
	out, err := enc.NewDecoder().Bytes(data)
	if err != nil {
		return "", "", fmt.Errorf("failed to decode text as %s: %w", name, err)
	}
	return string(out), name, nil
}

func normalizeNewlines(s string) string {
	if !strings.Contains(s, "\r") {
		return s
	}
	s = strings.ReplaceAll(s, "\r\n", "\n")
	return strings.ReplaceAll(s, "\r", "\n")
}
