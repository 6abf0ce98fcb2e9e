package parser

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/encoding/simplifiedchinese"
	"golang.org/x/text/encoding/traditionalchinese"
	"golang.org/x/text/encoding/unicode"
)

const novel = "简介\n第1章 开端\n正文一\n第2章 结局\n正文二\n"

func TestTXTParser_Extract(t *testing.T) {
	parser := NewTXTParser()
	ctx := context.Background()

	t.Run("UTF-8", func(t *testing.T) {
		doc, err := parser.Extract(ctx, []byte(novel), Options{})
		require.NoError(t, err)
		assert.Equal(t, novel, doc.Text)
		assert.Equal(t, EncodingUTF8, doc.Encoding)
	})

	t.Run("UTF-8 with BOM", func(t *testing.T) {
		data := append([]byte{0xEF, 0xBB, 0xBF}, novel...)
		doc, err := parser.Extract(ctx, data, Options{})
		require.NoError(t, err)
		assert.Equal(t, novel, doc.Text)
	})

	t.Run("UTF-16LE with BOM", func(t *testing.T) {
		data, err := unicode.UTF16(unicode.LittleEndian, unicode.UseBOM).NewEncoder().Bytes([]byte(novel))
		require.NoError(t, err)

		doc, err := parser.Extract(ctx, data, Options{})
		require.NoError(t, err)
		assert.Equal(t, novel, doc.Text)
		assert.Equal(t, EncodingUTF16LE, doc.Encoding)
	})

	t.Run("GB18030 detected", func(t *testing.T) {
		data, err := simplifiedchinese.GB18030.NewEncoder().Bytes([]byte(novel))
		require.NoError(t, err)

		doc, err := parser.Extract(ctx, data, Options{})
		require.NoError(t, err)
		assert.Equal(t, novel, doc.Text)
		assert.Equal(t, EncodingGB18030, doc.Encoding)
	})

	t.Run("GBK decoded as GB18030", func(t *testing.T) {
		data, err := simplifiedchinese.GBK.NewEncoder().Bytes([]byte(novel))
		require.NoError(t, err)

		doc, err := parser.Extract(ctx, data, Options{Encoding: "auto"})
		require.NoError(t, err)
		assert.Equal(t, novel, doc.Text)
	})

	t.Run("Forced encoding", func(t *testing.T) {
		data, err := traditionalchinese.Big5.NewEncoder().Bytes([]byte("第1章 開端\n"))
		require.NoError(t, err)

		doc, err := parser.Extract(ctx, data, Options{Encoding: "big5"})
		require.NoError(t, err)
		assert.Equal(t, "第1章 開端\n", doc.Text)
		assert.Equal(t, "big5", doc.Encoding)
	})

	t.Run("Unknown encoding", func(t *testing.T) {
		_, err := parser.Extract(ctx, []byte(novel), Options{Encoding: "klingon"})
		assert.Error(t, err)
	})

	t.Run("Line endings normalised", func(t *testing.T) {
		doc, err := parser.Extract(ctx, []byte("a\r\nb\rc\n"), Options{})
		require.NoError(t, err)
		assert.Equal(t, "a\nb\nc\n", doc.Text)
	})

	t.Run("Empty file", func(t *testing.T) {
		doc, err := parser.Extract(ctx, nil, Options{})
		require.NoError(t, err)
		assert.Equal(t, "", doc.Text)
	})
}

func TestTXTParser_SupportedFormats(t *testing.T) {
	assert.Equal(t, []string{"txt", "text"}, NewTXTParser().SupportedFormats())
}
