package cli

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/unalkalkan/ChapterMark/internal/packaging"
	"github.com/unalkalkan/ChapterMark/internal/streaming"
)

func newExportCommand(a *app) *cobra.Command {
	var out string
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export the active book as a ZIP archive",
		Args:  maxArgs(0),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			key, ok := a.selection.Active()
			if !ok {
				return errNoActiveBook
			}
			if out == "" {
				out = key + ".zip"
			}

			archive, err := packaging.NewService(a.repo, a.log).PackageBook(ctx, key)
			if err != nil {
				return err
			}

			f, err := os.Create(out)
			if err != nil {
				return fmt.Errorf("failed to create %s: %w", out, err)
			}
			if _, err := io.Copy(f, archive); err != nil {
				f.Close()
				return fmt.Errorf("failed to write %s: %w", out, err)
			}
			if err := f.Close(); err != nil {
				return fmt.Errorf("failed to write %s: %w", out, err)
			}

			fmt.Fprintf(a.out, "exported %s to %s\n", key, out)
			return nil
		},
	}
	cmd.Flags().StringVarP(&out, "out", "o", "", "output file (default <book>.zip)")
	return cmd
}

func newStreamCommand(a *app) *cobra.Command {
	var from int
	cmd := &cobra.Command{
		Use:   "stream",
		Short: "Write the active book's chapters as NDJSON, starting at the bookmark",
		Args:  maxArgs(0),
		RunE: func(cmd *cobra.Command, args []string) error {
			key, ok := a.selection.Active()
			if !ok {
				return errNoActiveBook
			}
			items, err := streaming.NewService(a.repo).StreamChapters(cmd.Context(), key, from)
			if err != nil {
				return usageIfOutOfRange(err)
			}
			return streaming.WriteNDJSON(a.out, items)
		},
	}
	cmd.Flags().IntVar(&from, "from", streaming.FromBookmark, "first chapter index (default: bookmark)")
	return cmd
}
