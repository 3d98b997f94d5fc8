// Package cli is the command line front end of the note store.
package cli

import (
	"context"
	"io"
	"log"
	"os"
	"time"

	"github.com/example/studynotes/internal/config"
	"github.com/example/studynotes/internal/logging"
	"github.com/example/studynotes/internal/notify"
	"github.com/example/studynotes/internal/storage"
	"github.com/example/studynotes/internal/store"
	"github.com/spf13/cobra"
)

// AppName is shown as the sender of desktop notifications.
const AppName = "Study Notes"

// App holds what the commands share during one invocation.
type App struct {
	cfg      *config.Config
	store    *store.Store
	log      *log.Logger
	logOut   io.Writer
	in       io.Reader
	now      func() time.Time
	notifier notify.Notifier
	closers  []io.Closer
}

// Option configures an App.
type Option func(*App)

// WithConfig skips loading the configuration from the environment.
func WithConfig(cfg *config.Config) Option {
	return func(a *App) { a.cfg = cfg }
}

// WithClock replaces time.Now.
func WithClock(now func() time.Time) Option {
	return func(a *App) { a.now = now }
}

// WithInput sets where confirmations are read from.
func WithInput(r io.Reader) Option {
	return func(a *App) { a.in = r }
}

// WithLogOutput sets where log lines go.
func WithLogOutput(w io.Writer) Option {
	return func(a *App) { a.logOut = w }
}

// WithNotifier replaces the desktop and Telegram channels.
func WithNotifier(n notify.Notifier) Option {
	return func(a *App) { a.notifier = n }
}

// New creates an App.
func New(opts ...Option) *App {
	a := &App{
		logOut: os.Stderr,
		in:     os.Stdin,
		now:    time.Now,
		log:    logging.Discard(),
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Execute runs the command line and releases everything it opened.
func Execute(ctx context.Context, opts ...Option) error {
	a := New(opts...)
	defer a.Close()
	return a.Command().ExecuteContext(ctx)
}

// Close closes the store and any notification channel.
func (a *App) Close() error {
	for _, c := range a.closers {
		c.Close()
	}
	a.closers = nil
	if a.store == nil {
		return nil
	}
	err := a.store.Close()
	a.store = nil
	return err
}

// Command builds the root command.
func (a *App) Command() *cobra.Command {
	root := &cobra.Command{
		Use:   "studynotes",
		Short: "Track revisions of completed study notes",
		Long: `Track revisions of completed study notes.

Every note gets four revision checkpoints, 24 hours, 3 days, 1 week and
1 month after its completion date. Checkpoints are listed with their
status and can be ticked off as they are revised.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.setup(cmd)
		},
	}

	root.PersistentFlags().String("data-dir", "", "Directory holding the notes file")
	root.PersistentFlags().String("storage", "", "Storage backend: json or sqlite")
	root.PersistentFlags().String("log-level", "", "Log level: TRACE, DEBUG, INFO, WARN or ERROR")

	root.AddCommand(
		a.subjectsCommand(),
		a.addCommand(),
		a.listCommand(),
		a.toggleCommand(),
		a.deleteCommand(),
		a.statsCommand(),
		a.exportCommand(),
		a.importCommand(),
		a.remindCommand(),
	)
	return root
}

// setup resolves the configuration, applies the flags and opens the
// store once.
func (a *App) setup(cmd *cobra.Command) error {
	if a.cfg == nil {
		cfg, err := config.Load()
		if err != nil {
			return err
		}
		a.cfg = cfg
	}

	flags := cmd.Flags()
	if flags.Changed("data-dir") {
		a.cfg.DataDir, _ = flags.GetString("data-dir")
	}
	if flags.Changed("storage") {
		a.cfg.Storage, _ = flags.GetString("storage")
	}
	if flags.Changed("log-level") {
		a.cfg.LogLevel, _ = flags.GetString("log-level")
	}

	level := a.cfg.LogLevel
	if level == "" {
		level = logging.DefaultLevel
		if cmd.Name() == "remind" {
			level = "INFO"
		}
	}
	a.log = logging.New(a.logOut, level)

	if a.store != nil {
		return nil
	}
	repo, err := storage.Open(a.cfg.Storage, a.cfg.DataDir)
	if err != nil {
		return err
	}
	s, err := store.Open(repo, store.WithClock(a.now), store.WithLogger(a.log))
	if err != nil {
		repo.Close()
		return err
	}
	a.store = s
	return nil
}
