package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/eringen/skillsite"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the web server",
	PreRunE: func(cmd *cobra.Command, _ []string) error {
		return loadConfig(cmd)
	},
	RunE: func(cmd *cobra.Command, _ []string) error {
		return runServe(cmd.Context())
	},
}

func init() {
	f := serveCmd.Flags()
	f.String("addr", "", "Listen address (default :3000)")
	f.String("db", "", "SQLite database path (default data/site.db)")
	f.Bool("dev", false, "Log card validation warnings at startup")
}

func runServe(ctx context.Context) error {
	if ctx == nil {
		ctx = context.Background()
	}
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	app := skillsite.New(buildSiteConfig())
	defer app.Close()
	return app.Run(ctx)
}
