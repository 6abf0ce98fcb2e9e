package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newUpdateCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "update [position]",
		Short: "Show or move the bookmark of the active book",
		Long: "Without an argument, print the active book and its bookmark.\n" +
			"With a position, move the bookmark there. Positions outside the book move it to the last chapter.",
		Args: maxArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			key, b, err := a.activeBook(ctx)
			if err != nil {
				return err
			}

			if len(args) == 1 {
				position, err := parseIndex(args[0], "position")
				if err != nil {
					return err
				}
				b.UpdatePosition(position)
				if err := a.saveBook(ctx, key, b); err != nil {
					return err
				}
			}

			fmt.Fprintf(a.out, "%s: chapter %d of %d: %s\n", key, b.Position(), b.Len(), b.Current().Title)
			return nil
		},
	}
}
