package splitter

import (
	"regexp"
	"strings"
	"testing"
	"unicode"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/unalkalkan/ChapterMark/pkg/types"
)

const sample = "Intro text.\n第1章 Beginning\nBody one.\n第2章 Middle\nBody two."

func TestSplit(t *testing.T) {
	t.Run("Introduction and chapters", func(t *testing.T) {
		got := Split(sample, nil)

		want := types.ChapterSequence{
			{Title: IntroductionTitle, Body: "Intro text."},
			{Title: "第1章 Beginning", Body: "Body one."},
			{Title: "第2章 Middle", Body: "Body two."},
		}
		assert.Equal(t, want, got)
	})

	t.Run("No headings", func(t *testing.T) {
		got := Split("just some prose\nwithout any headings\n", nil)
		assert.Empty(t, got)
		assert.NotNil(t, got)
	})

	t.Run("Empty text", func(t *testing.T) {
		assert.Empty(t, Split("", nil))
	})

	t.Run("Heading at start keeps empty introduction", func(t *testing.T) {
		got := Split("第1章 Start\nfirst body\n", nil)
		require.Len(t, got, 2)
		assert.Equal(t, IntroductionTitle, got[0].Title)
		assert.Equal(t, "", got[0].Body)
		assert.Equal(t, "第1章 Start", got[1].Title)
		assert.Equal(t, "first body", got[1].Body)
	})

	t.Run("Last body runs to end of text", func(t *testing.T) {
		got := Split("第1章 Only\nthe very last char!", nil)
		require.Len(t, got, 2)
		assert.Equal(t, "the very last char!", got[1].Body)
	})

	t.Run("Heading without line terminator is not matched", func(t *testing.T) {
		assert.Empty(t, Split("prose\n第1章 Dangling", nil))
	})

	t.Run("Duplicate headings are kept", func(t *testing.T) {
		got := Split("第3章 Again\none\n第3章 Again\ntwo\n", nil)
		require.Len(t, got, 3)
		assert.Equal(t, got[1].Title, got[2].Title)
		assert.Equal(t, "one", got[1].Body)
		assert.Equal(t, "two", got[2].Body)
	})

	t.Run("Trims surrounding whitespace", func(t *testing.T) {
		got := Split("  \n　preface　\n第1章   Padded   \n\n  body  \n\n", nil)
		require.Len(t, got, 2)
		assert.Equal(t, "preface", got[0].Body)
		assert.Equal(t, "第1章   Padded", got[1].Title)
		assert.Equal(t, "body", got[1].Body)
	})

	t.Run("CRLF headings", func(t *testing.T) {
		got := Split("intro\r\n第1章 Windows\r\nbody\r\n", nil)
		require.Len(t, got, 2)
		assert.Equal(t, "第1章 Windows", got[1].Title)
		assert.Equal(t, "body", got[1].Body)
	})

	t.Run("Custom pattern", func(t *testing.T) {
		re := regexp.MustCompile(`(?m)^Chapter [0-9]+\n`)
		got := Split("Front matter\nChapter 1\nIt begins.\nChapter 2\nIt ends.\n", re)
		assert.Equal(t, []string{IntroductionTitle, "Chapter 1", "Chapter 2"}, got.Titles())
		assert.Equal(t, "It ends.", got[2].Body)
	})

	t.Run("Volume pattern", func(t *testing.T) {
		re, err := Pattern(PatternVolume)
		require.NoError(t, err)

		text := "简介\n第一卷 风起 第一章 初见\n正文一\n第一卷 风起 第二章 再见\n正文二\n"
		got := Split(text, re)
		require.Len(t, got, 3)
		assert.Equal(t, "简介", got[0].Body)
		assert.Equal(t, "第一卷 风起 第一章 初见", got[1].Title)
		assert.Equal(t, "正文二", got[2].Body)

		// The single-volume default pattern does not understand Chinese numerals.
		assert.Empty(t, Split(text, nil))
	})
}

func TestSplitProperties(t *testing.T) {
	texts := []string{
		sample,
		"第1章 a\n第2章 b\n第3章 c\n",
		"preamble\n\n第10章 Ten\n\nten body\n\n第11章 Eleven\neleven body\n第12章 Twelve\n",
		strings.Repeat("filler line\n", 5) + "第7章 Seven\nseven\n",
	}

	for _, text := range texts {
		matches := DefaultPattern().FindAllStringIndex(text, -1)
		got := Split(text, nil)

		// Split count: k headings give k chapters plus the introduction.
		require.Len(t, got, len(matches)+1)

		// Order preservation: titles follow the source offsets.
		for i, m := range matches {
			assert.Equal(t, strings.TrimSpace(text[m[0]:m[1]]), got[i+1].Title)
		}

		// Coverage: no non-space content is lost between boundaries.
		var rebuilt strings.Builder
		rebuilt.WriteString(got[0].Body)
		for _, ch := range got[1:] {
			rebuilt.WriteString(ch.Title)
			rebuilt.WriteString(ch.Body)
		}
		assert.Equal(t, stripSpace(text), stripSpace(rebuilt.String()))
	}
}

func TestResolve(t *testing.T) {
	tests := []struct {
		name    string
		pattern string
		expr    string
		match   string
		wantErr bool
	}{
		{"Default", "", "", "第1章 x\n", false},
		{"Named", "chapter-cn", "", "第十二章 x\n", false},
		{"Named case insensitive", "Markdown", "", "# Title\n", false},
		{"Expression wins", "volume", `Part [IVX]+\n`, "Part IV\n", false},
		{"Unknown name", "nope", "", "", true},
		{"Broken expression", "", `第(`, "", true},
		{"Empty match expression", "", `x*`, "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			re, err := Resolve(tt.pattern, tt.expr)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalidPattern)
				return
			}
			require.NoError(t, err)
			assert.True(t, re.MatchString(tt.match), "pattern %q should match %q", re, tt.match)
		})
	}
}

func TestPatternNames(t *testing.T) {
	assert.Equal(t, []string{"chapter", "chapter-cn", "markdown", "volume"}, PatternNames())
}

func stripSpace(s string) string {
	return strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) {
			return -1
		}
		return r
	}, s)
}
