package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/idilsaglam/tada/internal/api"
	"github.com/idilsaglam/tada/internal/config"
	"github.com/idilsaglam/tada/internal/logging"
	"github.com/idilsaglam/tada/internal/session"
	"github.com/idilsaglam/tada/internal/tui"
	"github.com/idilsaglam/tada/internal/ui"
)

// usageError marks failures caused by how the command was invoked (exit 2).
type usageError struct{ msg string }

func (e usageError) Error() string { return e.msg }

func usagef(format string, a ...any) error { return usageError{msg: fmt.Sprintf(format, a...)} }

// App carries state shared by every subcommand.
type App struct {
	cfg    *config.Config
	logger *log.Logger
	close  func() error

	stderr io.Writer

	baseURL   string
	theme     string
	logLevel  string
	logFormat string
	logFile   string
	noColor   bool
}

// Run dispatches subcommands and returns an exit code (0 ok, 1 error, 2 usage).
func Run(args []string) int {
	return run(context.Background(), args, os.Stdout, os.Stderr)
}

func run(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	ui.SetOutput(stdout, stderr)
	app := &App{stderr: stderr}
	cmd := NewRootCmd(app)
	cmd.SetArgs(args)
	cmd.SetOut(stdout)
	cmd.SetErr(stderr)
	defer app.Close()

	err := cmd.ExecuteContext(ctx)
	if err == nil {
		return 0
	}
	ui.Fail(err.Error())
	var ue usageError
	if errors.As(err, &ue) || strings.HasPrefix(err.Error(), "unknown command") {
		ui.Hint("Run `todo --help` for usage.")
		return 2
	}
	return 1
}

func NewRootCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:           "todo",
		Short:         "todo - a tiny client for a remote todo collection",
		SilenceUsage:  true,
		SilenceErrors: true,
		Example: strings.TrimSpace(`
  # Start the interactive TUI
  todo

  # Scriptable commands
  todo add "Buy milk" -d "2 litres"
  todo ls
  todo done 2
  todo rm 3

  # Run a local collection endpoint
  todo serve --store sqlite
`),
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) > 0 {
				return usagef("unknown command %q for %q", args[0], cmd.CommandPath())
			}
			client, err := app.client()
			if err != nil {
				return err
			}
			if err := tui.Run(cmd.Context(), client, app.logger); err != nil {
				return fmt.Errorf("tui: %w", err)
			}
			return nil
		},
	}

	cmd.PersistentPreRunE = func(c *cobra.Command, args []string) error {
		// The TUI owns the terminal, so it only logs to a file.
		return app.setup(c, c == c.Root())
	}
	cmd.SetFlagErrorFunc(func(c *cobra.Command, err error) error {
		return usageError{msg: err.Error()}
	})

	pf := cmd.PersistentFlags()
	pf.StringVar(&app.baseURL, "base-url", "", "Collection endpoint (default "+config.DefaultBaseURL+")")
	pf.StringVar(&app.theme, "theme", "", "Output theme (classic|neon|mono)")
	pf.StringVar(&app.logLevel, "log-level", "", "Log level (debug|info|warn|error)")
	pf.StringVar(&app.logFormat, "log-format", "", "Log format (text|json|logfmt)")
	pf.StringVar(&app.logFile, "log-file", "", "Append logs to this file")
	pf.BoolVar(&app.noColor, "no-color", false, "Disable colored output")

	cmd.AddCommand(newListCmd(app))
	cmd.AddCommand(newAddCmd(app))
	cmd.AddCommand(newDoneCmd(app))
	cmd.AddCommand(newEditCmd(app))
	cmd.AddCommand(newRemoveCmd(app))
	cmd.AddCommand(newShowCmd(app))
	cmd.AddCommand(newServeCmd(app))
	return cmd
}

// setup loads config, layers explicitly set flags on top and builds the logger.
func (app *App) setup(cmd *cobra.Command, tuiMode bool) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	flags := cmd.Flags()
	if flags.Changed("base-url") {
		cfg.BaseURL = app.baseURL
	}
	if flags.Changed("theme") {
		cfg.Theme = app.theme
	}
	if flags.Changed("log-level") {
		cfg.Log.Level = app.logLevel
	}
	if flags.Changed("log-format") {
		cfg.Log.Format = app.logFormat
	}
	if flags.Changed("log-file") {
		cfg.Log.File = app.logFile
	}
	if flags.Changed("no-color") {
		cfg.NoColor = app.noColor
	}
	if err := cfg.Validate(); err != nil {
		return usageError{msg: "config: " + err.Error()}
	}
	app.cfg = cfg

	ui.SetColorForcing(false, cfg.NoColor)
	ui.SetTheme(cfg.Theme)

	var fallback io.Writer = app.stderr
	if tuiMode {
		fallback = io.Discard
	}
	logger, closeFn, err := logging.New(logging.Options{
		Level:    cfg.Log.Level,
		Format:   cfg.Log.Format,
		File:     cfg.Log.File,
		Fallback: fallback,
		Prefix:   "todo",
	})
	if err != nil {
		return err
	}
	app.logger, app.close = logger, closeFn
	return nil
}

func (app *App) Close() {
	if app.close != nil {
		_ = app.close()
	}
}

func (app *App) client() (*api.Client, error) {
	c, err := api.New(app.cfg.BaseURL)
	if err != nil {
		return nil, err
	}
	app.logger.Debug("using collection", "url", c.BaseURL())
	return c, nil
}

func (app *App) session() (*session.Session, error) {
	c, err := app.client()
	if err != nil {
		return nil, err
	}
	return session.New(c, app.logger), nil
}

// parseID reads a server-assigned todo id from a positional argument.
func parseID(cmdName, raw string) (int64, error) {
	id, err := strconv.ParseInt(strings.TrimPrefix(raw, "#"), 10, 64)
	if err != nil || id <= 0 {
		return 0, usagef("%s: not a todo id: %s", cmdName, raw)
	}
	return id, nil
}

// exactArgs is cobra.ExactArgs reporting a usage error.
func exactArgs(n int, usage string) cobra.PositionalArgs {
	return func(cmd *cobra.Command, args []string) error {
		if len(args) != n {
			return usagef("usage: %s", usage)
		}
		return nil
	}
}
