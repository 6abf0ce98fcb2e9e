package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/unalkalkan/ChapterMark/internal/shelf"
)

func newSelectCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "select [index]",
		Short: "List stored books or make one active",
		Args:  maxArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := shelf.Load(cmd.Context(), a.repo)
			if err != nil {
				return err
			}
			if len(args) == 0 {
				return a.listShelf(s)
			}

			index, err := parseIndex(args[0], "book index")
			if err != nil {
				return err
			}
			location, err := s.At(index)
			if err != nil {
				return usageError{err: err}
			}
			if err := a.selection.Select(location); err != nil {
				return err
			}
			fmt.Fprintf(a.out, "selected %s\n", location)
			return nil
		},
	}
}

func (a *app) listShelf(s *shelf.Shelf) error {
	if s.Len() == 0 {
		fmt.Fprintln(a.out, "no books stored")
		return nil
	}
	active, _ := a.selection.Active()
	for i, location := range s.Locations {
		fmt.Fprintln(a.out, listLine(i, location, location == active))
	}
	return nil
}
