// Package cli implements the chaptermark command line.
package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/unalkalkan/ChapterMark/internal/book"
	"github.com/unalkalkan/ChapterMark/internal/config"
	"github.com/unalkalkan/ChapterMark/internal/logging"
	"github.com/unalkalkan/ChapterMark/internal/parser"
	"github.com/unalkalkan/ChapterMark/internal/shelf"
	"github.com/unalkalkan/ChapterMark/pkg/types"
)

// Exit codes returned by Run
const (
	ExitOK      = 0
	ExitFailure = 1
	ExitUsage   = 2
)

var version = "dev"

// errNoActiveBook is reported when the selection store names no book
var errNoActiveBook = errors.New("no active book selected")

// usageError marks failures caused by bad user input
type usageError struct {
	err error
}

func (e usageError) Error() string { return e.err.Error() }
func (e usageError) Unwrap() error { return e.err }

func usagef(format string, args ...any) error {
	return usageError{err: fmt.Errorf(format, args...)}
}

// app carries the state shared by every command of one invocation
type app struct {
	configPath    string
	selectionPath string
	out           io.Writer

	cfg       *types.Config
	log       *logrus.Logger
	logCloser io.Closer
	repo      book.Repository
	books     *book.Service
	selection shelf.Selection
}

// Run executes the command line and returns the process exit code.
// Failures are reported on out as a single line.
func Run(ctx context.Context, args []string, out io.Writer) int {
	a := &app{out: out}
	defer a.close()

	root := newRootCommand(a)
	root.SetArgs(positionalNegatives(root, args))
	root.SetOut(out)

	err := root.ExecuteContext(ctx)
	if err == nil {
		return ExitOK
	}

	fmt.Fprintln(out, strings.Join(strings.Fields(err.Error()), " "))
	var ue usageError
	if errors.As(err, &ue) {
		return ExitUsage
	}
	return ExitFailure
}

func newRootCommand(a *app) *cobra.Command {
	root := &cobra.Command{
		Use:   "chaptermark",
		Short: "Split novels into chapters and keep a reading bookmark",
		Long: `chaptermark splits a plain-text, EPUB or PDF novel into chapters using a
heading pattern, stores the chapters, and tracks the chapter you are reading.`,
		Version:           version,
		SilenceErrors:     true,
		SilenceUsage:      true,
		PersistentPreRunE: a.setup,
	}

	root.PersistentFlags().StringVar(&a.configPath, "config", "", "path to the YAML configuration file")
	root.PersistentFlags().StringVar(&a.selectionPath, "selection", "", "path to the selection store (overrides config)")
	root.SetFlagErrorFunc(func(_ *cobra.Command, err error) error {
		return usageError{err: err}
	})

	root.AddCommand(
		newSplitCommand(a),
		newSelectCommand(a),
		newUpdateCommand(a),
		newReadCommand(a),
		newChaptersCommand(a),
		newExportCommand(a),
		newStreamCommand(a),
		newDoctorCommand(a),
	)
	return root
}

func (a *app) setup(cmd *cobra.Command, _ []string) error {
	if err := config.LoadDotEnv(".env"); err != nil {
		return err
	}

	cfg, err := config.LoadOrDefault(a.configPath)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	if a.selectionPath != "" {
		cfg.Shelf.SelectionPath = a.selectionPath
	}
	a.cfg = cfg

	log, closer, err := logging.New(cfg.Log)
	if err != nil {
		return err
	}
	a.log, a.logCloser = log, closer

	repo, err := book.NewRepository(cfg.Storage, log)
	if err != nil {
		return fmt.Errorf("failed to open book repository: %w", err)
	}
	a.repo = repo
	a.books = book.NewService(repo, parser.NewFactory(), log)
	a.selection = shelf.Selection{Path: cfg.Shelf.SelectionPath, Key: cfg.Shelf.SelectionKey, Log: log}

	log.WithFields(logrus.Fields{
		"command": cmd.Name(),
		"storage": cfg.Storage.Adapter,
	}).Debug("configuration loaded")
	return nil
}

func (a *app) close() {
	if a.repo != nil {
		if err := a.repo.Close(); err != nil {
			a.log.WithError(err).Warn("failed to close book repository")
		}
	}
	if a.logCloser != nil {
		a.logCloser.Close()
	}
}

// activeBook loads the book named by the selection store
func (a *app) activeBook(ctx context.Context) (string, *book.Book, error) {
	key, ok := a.selection.Active()
	if !ok {
		return "", nil, errNoActiveBook
	}
	b, err := a.repo.LoadBook(ctx, key)
	if err != nil {
		return "", nil, err
	}
	return key, b, nil
}

// saveBook persists b after touching its modification time
func (a *app) saveBook(ctx context.Context, key string, b *book.Book) error {
	a.books.Touch(b)
	if err := a.repo.SaveBook(ctx, key, b); err != nil {
		return fmt.Errorf("failed to save bookmark: %w", err)
	}
	return nil
}

// positionalNegatives moves negative integer arguments behind "--" so pflag does not read
// them as shorthand flags. Values of flags that take an argument, like --from -1, stay put.
func positionalNegatives(root *cobra.Command, args []string) []string {
	cmd, _, err := root.Find(args)
	if err != nil {
		cmd = root
	}

	var kept, moved []string
	for i, arg := range args {
		if arg == "--" {
			return args
		}
		if isNegativeInt(arg) && (i == 0 || !takesValue(cmd, args[i-1])) {
			moved = append(moved, arg)
			continue
		}
		kept = append(kept, arg)
	}
	if len(moved) == 0 {
		return args
	}
	return append(append(kept, "--"), moved...)
}

func isNegativeInt(arg string) bool {
	if !strings.HasPrefix(arg, "-") {
		return false
	}
	_, err := strconv.Atoi(arg)
	return err == nil
}

// takesValue reports whether tok is a flag that consumes the next argument
func takesValue(cmd *cobra.Command, tok string) bool {
	if !strings.HasPrefix(tok, "-") || strings.Contains(tok, "=") {
		return false
	}
	name := strings.TrimLeft(tok, "-")
	long := strings.HasPrefix(tok, "--")

	for _, flags := range []*pflag.FlagSet{cmd.Flags(), cmd.InheritedFlags()} {
		var f *pflag.Flag
		if long {
			f = flags.Lookup(name)
		} else if len(name) == 1 {
			f = flags.ShorthandLookup(name)
		}
		if f != nil {
			return f.NoOptDefVal == ""
		}
	}
	return false
}

func parseIndex(arg, what string) (int, error) {
	n, err := strconv.Atoi(strings.TrimSpace(arg))
	if err != nil {
		return 0, usagef("invalid %s %q: not an integer", what, arg)
	}
	return n, nil
}

func maxArgs(n int) cobra.PositionalArgs {
	return func(cmd *cobra.Command, args []string) error {
		if err := cobra.MaximumNArgs(n)(cmd, args); err != nil {
			return usageError{err: err}
		}
		return nil
	}
}

func exactArgs(n int) cobra.PositionalArgs {
	return func(cmd *cobra.Command, args []string) error {
		if err := cobra.ExactArgs(n)(cmd, args); err != nil {
			return usageError{err: err}
		}
		return nil
	}
}

func usageIfOutOfRange(err error) error {
	if errors.Is(err, book.ErrIndexOutOfRange) {
		return usageError{err: err}
	}
	return err
}
