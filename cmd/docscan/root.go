package main

import (
	"context"
	"log/slog"
	"os"

	"github.com/adrianliechti/docscan/config"
	"github.com/adrianliechti/docscan/pkg/otel"
	"github.com/adrianliechti/docscan/pkg/processor"

	"github.com/spf13/cobra"
)

var cfgFile string

var rootCmd = &cobra.Command{
	Use:   "docscan",
	Short: "Detect text in documents stored in S3",

	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", os.Getenv("DOCSCAN_CONFIG"), "config file path")
}

type app struct {
	config    *config.Config
	logger    *slog.Logger
	telemetry *otel.Telemetry
}

func setup(ctx context.Context) (*app, error) {
	cfg, err := config.Parse(cfgFile)

	if err != nil {
		return nil, err
	}

	telemetry, err := otel.Setup(ctx, "docscan")

	if err != nil {
		return nil, err
	}

	logger := telemetry.Logger(cfg.Logger(os.Stderr))
	slog.SetDefault(logger)

	return &app{
		config:    cfg,
		logger:    logger,
		telemetry: telemetry,
	}, nil
}

func (a *app) processor() (*processor.Processor, error) {
	return processor.New(a.config.Clients,
		processor.WithLogger(a.logger),
		processor.WithJobOptions(a.config.JobOptions()...),
	)
}

func (a *app) Close(ctx context.Context) {
	if err := a.telemetry.Shutdown(ctx); err != nil {
		a.logger.WarnContext(ctx, "failed to shutdown telemetry", "error", err)
	}
}
