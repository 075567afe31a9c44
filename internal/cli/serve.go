package cli

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/idilsaglam/tada/internal/config"
	"github.com/idilsaglam/tada/internal/server"
	"github.com/idilsaglam/tada/internal/store"
)

func newServeCmd(app *App) *cobra.Command {
	var addr, kind, path string
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run a local todo collection endpoint at " + server.CollectionPath,
		Args:  exactArgs(0, "todo serve [--addr host:port] [--store json|sqlite] [--path file]"),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := app.cfg.Server
			flags := cmd.Flags()
			if flags.Changed("addr") {
				cfg.Addr = addr
			}
			if flags.Changed("store") {
				cfg.Store = kind
			}
			if flags.Changed("path") {
				cfg.StorePath = path
			}
			if cfg.Store != store.KindJSON && cfg.Store != store.KindSQLite {
				return usagef("serve: unknown store %q (want json or sqlite)", cfg.Store)
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			st, err := server.OpenStore(ctx, cfg.Store, cfg.StorePath)
			if err != nil {
				return err
			}
			defer st.Close()

			app.logger.Info("store opened", "kind", cfg.Store, "path", cfg.StorePath)
			return server.New(st, app.logger).ListenAndServe(ctx, cfg.Addr)
		},
	}
	cmd.Flags().StringVar(&addr, "addr", "", "Listen address (default "+config.DefaultServerAddr+")")
	cmd.Flags().StringVar(&kind, "store", "", "Storage backend (json|sqlite)")
	cmd.Flags().StringVar(&path, "path", "", "Storage file (default ./todos.json or ./todos.sqlite)")
	return cmd
}
