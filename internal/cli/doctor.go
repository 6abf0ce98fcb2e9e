package cli

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/unalkalkan/ChapterMark/internal/health"
	"github.com/unalkalkan/ChapterMark/internal/splitter"
)

func newDoctorCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "doctor",
		Short: "Check storage, selection store and heading pattern",
		Args:  maxArgs(0),
		RunE: func(cmd *cobra.Command, args []string) error {
			report := a.checker().Run(cmd.Context())
			for _, r := range report.Checks {
				line := fmt.Sprintf("%-9s %s", r.Status, r.Name)
				if r.Error != "" {
					line += ": " + r.Error
				}
				fmt.Fprintln(a.out, line)
			}
			if report.Status == health.StatusUnhealthy {
				return errors.New("library is unhealthy")
			}
			return nil
		},
	}
}

func (a *app) checker() *health.Checker {
	c := health.NewChecker(version, 5*time.Second)

	c.Register("storage", func(ctx context.Context) (health.Status, error) {
		if _, err := a.repo.ListBooks(ctx); err != nil {
			return health.StatusUnhealthy, err
		}
		return health.StatusHealthy, nil
	})

	c.Register("selection", func(ctx context.Context) (health.Status, error) {
		if _, _, err := a.activeBook(ctx); err != nil {
			return health.StatusDegraded, err
		}
		return health.StatusHealthy, nil
	})

	c.Register("pattern", func(context.Context) (health.Status, error) {
		if _, err := splitter.Resolve(a.cfg.Splitter.Pattern, a.cfg.Splitter.Expr); err != nil {
			return health.StatusUnhealthy, err
		}
		return health.StatusHealthy, nil
	})

	return c
}
