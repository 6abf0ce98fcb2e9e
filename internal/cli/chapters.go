package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newChaptersCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "chapters",
		Short: "List the chapters of the active book",
		Args:  maxArgs(0),
		RunE: func(cmd *cobra.Command, args []string) error {
			key, b, err := a.activeBook(cmd.Context())
			if err != nil {
				return err
			}

			fmt.Fprintf(a.out, "%s (%d chapters)\n", key, b.Len())
			for i, title := range b.ChapterTitles() {
				fmt.Fprintln(a.out, listLine(i, title, i == b.Position()))
			}
			return nil
		},
	}
}
