package parser

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFactory(t *testing.T) {
	factory := NewFactory()

	tests := []struct {
		format string
		want   Parser
	}{
		{"txt", &TXTParser{}},
		{"TXT", &TXTParser{}},
		{".text", &TXTParser{}},
		{"epub", &EPUBParser{}},
		{"pdf", &PDFParser{}},
	}

	for _, tt := range tests {
		t.Run(tt.format, func(t *testing.T) {
			parser, err := factory.GetParser(tt.format)
			require.NoError(t, err)
			assert.IsType(t, tt.want, parser)
		})
	}

	t.Run("Unsupported format", func(t *testing.T) {
		_, err := factory.GetParser("doc")
		assert.Error(t, err)
	})
}

func TestFormatFromPath(t *testing.T) {
	assert.Equal(t, "txt", FormatFromPath("/books/星戒.TXT"))
	assert.Equal(t, "epub", FormatFromPath("novel.epub"))
	assert.Equal(t, "txt", FormatFromPath("README"))
}

func TestEPUBParser_InvalidData(t *testing.T) {
	_, err := NewEPUBParser().Extract(context.Background(), []byte("not a zip"), Options{})
	assert.Error(t, err)
}

func TestPDFParser_InvalidData(t *testing.T) {
	_, err := NewPDFParser().Extract(context.Background(), []byte("not a pdf"), Options{})
	assert.Error(t, err)
}
