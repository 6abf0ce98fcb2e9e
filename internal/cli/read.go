package cli

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/unalkalkan/ChapterMark/internal/book"
)

func newReadCommand(a *app) *cobra.Command {
	var usePager bool
	cmd := &cobra.Command{
		Use:   "read [index|title]",
		Short: "Print a chapter of the active book",
		Long: "Without an argument, print the chapter at the bookmark.\n" +
			"An integer prints that chapter and moves the bookmark to it.\n" +
			"Any other argument is matched against chapter titles and leaves the bookmark alone.",
		Args: maxArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			key, b, err := a.activeBook(ctx)
			if err != nil {
				return err
			}
			start := b.Position()

			index := b.Position()
			if len(args) == 1 {
				index, err = a.lookup(b, args[0])
				if err != nil {
					return err
				}
			}

			if usePager {
				p := tea.NewProgram(newPager(b, index), tea.WithAltScreen(), tea.WithContext(ctx))
				if _, err := p.Run(); err != nil {
					return fmt.Errorf("pager failed: %w", err)
				}
			} else {
				ch, err := b.Chapter(index)
				if err != nil {
					return err
				}
				fmt.Fprintf(a.out, "%s\n\n%s\n", ch.Title, ch.Body)
			}

			if b.Position() != start {
				return a.saveBook(ctx, key, b)
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&usePager, "pager", false, "open the chapter in an interactive pager")
	return cmd
}

// lookup resolves arg to a chapter index. Integer arguments move the bookmark, titles do not.
func (a *app) lookup(b *book.Book, arg string) (int, error) {
	if n, err := strconv.Atoi(strings.TrimSpace(arg)); err == nil {
		if _, err := b.TextAt(n); err != nil {
			return 0, usageIfOutOfRange(err)
		}
		return n, nil
	}

	if _, err := b.TextByTitle(arg); err != nil {
		if errors.Is(err, book.ErrChapterNotFound) {
			return 0, usageError{err: err}
		}
		return 0, err
	}
	for i, title := range b.ChapterTitles() {
		if title == arg {
			return i, nil
		}
	}
	return 0, usageError{err: book.ErrChapterNotFound}
}
