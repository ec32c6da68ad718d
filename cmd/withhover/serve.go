package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/vango-dev/withhover/pkg/server"
)

func serveCmd(flags *globalFlags) *cobra.Command {
	var (
		addr    string
		title   string
		texts   []string
		metrics bool
		tracing bool
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the live page",
		Long: `Serve the hover page over HTTP until interrupted.

Flags override values from the config file.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, logger, err := loadConfig(cmd, flags)
			if err != nil {
				return err
			}

			f := cmd.Flags()
			if f.Changed("addr") {
				cfg.Server.Address = addr
			}
			if f.Changed("title") {
				cfg.Page.Title = title
			}
			if f.Changed("text") {
				cfg.Page.Texts = texts
			}
			if f.Changed("metrics") {
				cfg.Metrics.Enabled = metrics
			}
			if f.Changed("tracing") {
				cfg.Tracing.Enabled = tracing
			}
			if err := cfg.Validate(); err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			srv := server.New(
				server.FromConfig(cfg),
				server.TextPage(cfg.Page.Title, cfg.Page.Texts),
				server.WithLogger(logger),
			)
			success(cmd.OutOrStdout(), "Serving on %s", cfg.Server.Address)
			return srv.Run(ctx)
		},
	}

	cmd.Flags().StringVarP(&addr, "addr", "a", "", "Listen address (default from config)")
	cmd.Flags().StringVar(&title, "title", "", "Page heading")
	cmd.Flags().StringSliceVarP(&texts, "text", "t", nil, "Paragraph text, repeatable")
	cmd.Flags().BoolVar(&metrics, "metrics", true, "Expose Prometheus metrics")
	cmd.Flags().BoolVar(&tracing, "tracing", false, "Trace events with OpenTelemetry")

	return cmd
}
