package cli

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/unalkalkan/ChapterMark/internal/book"
	"github.com/unalkalkan/ChapterMark/internal/splitter"
)

type splitOptions struct {
	name     string
	pattern  string
	regex    string
	encoding string
	title    string
	selectIt bool
}

func newSplitCommand(a *app) *cobra.Command {
	opts := &splitOptions{}
	cmd := &cobra.Command{
		Use:   "split <file>",
		Short: "Split a book file into chapters and store it",
		Long: "Split a book file into chapters and store it with its bookmark on the introduction.\n" +
			"Named patterns: " + strings.Join(splitter.PatternNames(), ", "),
		Args: exactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runSplit(cmd, args[0], opts)
		},
	}

	cmd.Flags().StringVar(&opts.name, "name", "", "storage key (defaults to the file name without extension)")
	cmd.Flags().StringVar(&opts.pattern, "pattern", "", "named heading pattern")
	cmd.Flags().StringVar(&opts.regex, "regex", "", "custom heading regular expression")
	cmd.Flags().StringVar(&opts.encoding, "encoding", "", "source text encoding (default: detect)")
	cmd.Flags().StringVar(&opts.title, "title", "", "book title (defaults to the storage key)")
	cmd.Flags().BoolVar(&opts.selectIt, "select", false, "make the book active after splitting")
	return cmd
}

func (a *app) runSplit(cmd *cobra.Command, path string, opts *splitOptions) error {
	patternName, patternExpr := a.cfg.Splitter.Pattern, a.cfg.Splitter.Expr
	if cmd.Flags().Changed("pattern") {
		patternName, patternExpr = opts.pattern, ""
	}
	if cmd.Flags().Changed("regex") {
		patternExpr = opts.regex
	}

	encoding := opts.encoding
	if encoding == "" && a.cfg.Splitter.Encoding != "auto" {
		encoding = a.cfg.Splitter.Encoding
	}

	key := opts.name
	if key == "" {
		key = book.KeyFromPath(path)
	}

	b, err := a.books.Import(cmd.Context(), book.ImportRequest{
		Key:         key,
		Path:        path,
		PatternName: patternName,
		PatternExpr: patternExpr,
		Encoding:    encoding,
		Title:       opts.title,
	})
	switch {
	case errors.Is(err, book.ErrNoChapters):
		return fmt.Errorf("no chapters found in %s", path)
	case errors.Is(err, splitter.ErrInvalidPattern), errors.Is(err, book.ErrInvalidKey):
		return usageError{err: err}
	case err != nil:
		return err
	}

	fmt.Fprintf(a.out, "split %s into %d chapters as %s\n", path, b.Len(), key)

	if opts.selectIt {
		if err := a.selection.Select(key); err != nil {
			return err
		}
		fmt.Fprintf(a.out, "selected %s\n", key)
	}
	return nil
}
