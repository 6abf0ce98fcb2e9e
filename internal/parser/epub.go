package parser

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/taylorskalyo/goreader/epub"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// EPUBParser extracts text from ePUB files
type EPUBParser struct{}

// NewEPUBParser creates a new ePUB parser
func NewEPUBParser() *EPUBParser {
	return &EPUBParser{}
}

// Extract walks the spine in reading order and flattens each XHTML document to text.
// Block elements end a line so headings stay on lines of their own.
func (p *EPUBParser) Extract(ctx context.Context, data []byte, opts Options) (*Document, error) {
	rc, err := epub.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, fmt.Errorf("failed to open epub: %w", err)
	}
	if len(rc.Rootfiles) == 0 {
		return nil, fmt.Errorf("no rootfiles found in epub")
	}

	var out strings.Builder
	for _, ref := range rc.Rootfiles[0].Spine.Itemrefs {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if ref.Item == nil {
			continue
		}

		r, err := ref.Item.Open()
		if err != nil {
			return nil, fmt.Errorf("failed to open spine item %s: %w", ref.Item.HREF, err)
		}
		content, err := io.ReadAll(r)
		r.Close()
		if err != nil {
			return nil, fmt.Errorf("failed to read spine item %s: %w", ref.Item.HREF, err)
		}

		if err := writeHTMLText(&out, content); err != nil {
			return nil, fmt.Errorf("failed to parse spine item %s: %w", ref.Item.HREF, err)
		}
	}

	return &Document{Text: out.String(), Encoding: EncodingUTF8}, nil
}

// SupportedFormats returns the formats this parser supports
func (p *EPUBParser) SupportedFormats() []string {
	return []string{"epub"}
}

var blockElements = map[atom.Atom]bool{
	atom.P: true, atom.Div: true, atom.Br: true, atom.Li: true, atom.Tr: true,
	atom.H1: true, atom.H2: true, atom.H3: true, atom.H4: true, atom.H5: true, atom.H6: true,
	atom.Section: true, atom.Article: true, atom.Blockquote: true, atom.Pre: true,
}

var skippedElements = map[atom.Atom]bool{
	atom.Head: true, atom.Script: true, atom.Style: true,
}

func writeHTMLText(out *strings.Builder, content []byte) error {
	doc, err := html.Parse(bytes.NewReader(content))
	if err != nil {
		return err
	}

	var line strings.Builder
	flush := func() {
		if t := strings.TrimSpace(line.String()); t != "" {
			out.WriteString(t)
			out.WriteString("\n")
		}
		line.Reset()
	}

	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode && skippedElements[n.DataAtom] {
			return
		}
		if n.Type == html.TextNode {
			line.WriteString(strings.Join(strings.Fields(n.Data), " "))
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
		if n.Type == html.ElementNode && blockElements[n.DataAtom] {
			flush()
		}
	}
	walk(doc)
	flush()

	return nil
}
