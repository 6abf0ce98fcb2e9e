package splitter

import (
	"errors"
	"fmt"
	"regexp"
	"sort"
	"strings"
)

// Names of the built-in heading patterns
const (
	PatternChapter   = "chapter"
	PatternVolume    = "volume"
	PatternChapterCN = "chapter-cn"
	PatternMarkdown  = "markdown"
)

// ErrInvalidPattern is returned for unknown pattern names and unusable expressions
var ErrInvalidPattern = errors.New("invalid heading pattern")

const cnDigits = `[0-9零一二三四五六七八九十百千万]`

var builtins = map[string]*regexp.Regexp{
	PatternChapter:   regexp.MustCompile(`第[0-9]+章.{0,100}\n`),
	PatternVolume:    regexp.MustCompile(`第` + cnDigits + `+卷.{0,100}第` + cnDigits + `+章.{0,100}\n`),
	PatternChapterCN: regexp.MustCompile(`第` + cnDigits + `+章.{0,100}\n`),
	PatternMarkdown:  regexp.MustCompile(`(?m)^#{1,6}[ \t]+.+\n`),
}

// DefaultPattern returns the single-volume "第N章" heading pattern
func DefaultPattern() *regexp.Regexp {
	return builtins[PatternChapter]
}

// Pattern returns the built-in pattern registered under name
func Pattern(name string) (*regexp.Regexp, error) {
	re, ok := builtins[strings.ToLower(strings.TrimSpace(name))]
	if !ok {
		return nil, fmt.Errorf("%w: unknown pattern %q (known: %s)", ErrInvalidPattern, name, strings.Join(PatternNames(), ", "))
	}
	return re, nil
}

// PatternNames lists the built-in pattern names in sorted order
func PatternNames() []string {
	names := make([]string, 0, len(builtins))
	for name := range builtins {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Compile compiles a custom heading expression.
// Expressions that can match the empty string are rejected since every heading must consume text.
func Compile(expr string) (*regexp.Regexp, error) {
	re, err := regexp.Compile(expr)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidPattern, err)
	}
	if re.MatchString("") {
		return nil, fmt.Errorf("%w: %q matches the empty string", ErrInvalidPattern, expr)
	}
	return re, nil
}

// Resolve picks a custom expression over a named pattern over the default
func Resolve(name, expr string) (*regexp.Regexp, error) {
	if expr != "" {
		return Compile(expr)
	}
	if name != "" {
		return Pattern(name)
	}
	return DefaultPattern(), nil
}
