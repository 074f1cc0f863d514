package cli

import (
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"inquest-cli/internal/store"
	"inquest-cli/internal/web"
)

func newServeCmd(app *App) *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the dashboard JSON API",
		RunE: func(cmd *cobra.Command, args []string) error {
			_, s, err := loadDB(app)
			if err != nil {
				return writeErr(cmd, err)
			}

			logger, err := zap.NewProduction()
			if app.Verbose {
				logger, err = zap.NewDevelopment()
			}
			if err != nil {
				return writeErr(cmd, err)
			}
			defer func() { _ = logger.Sync() }()

			var parse web.ParsedSource
			if client, err := parseClient(app); err == nil {
				parse = client
			} else {
				logger.Warn("parse service not configured; outline endpoints disabled")
			}

			srv, err := web.NewServer(store.Store{Dir: s.Dir}, parse, logger)
			if err != nil {
				return writeErr(cmd, err)
			}

			if addr == "" {
				addr = viper.GetString("listen_addr")
			}
			if addr == "" {
				addr = ":8787"
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()
			return srv.ListenAndServe(ctx, addr)
		},
	}
	cmd.Flags().StringVar(&addr, "addr", "", "Listen address (default :8787)")
	return cmd
}
