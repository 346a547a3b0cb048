package main

import (
	"context"
	"log/slog"
	"os"

	"github.com/adrianliechti/docscan/config"
	"github.com/adrianliechti/docscan/pkg/otel"
	"github.com/adrianliechti/docscan/pkg/processor"

	"github.com/aws/aws-lambda-go/events"
	"github.com/aws/aws-lambda-go/lambda"
	"github.com/aws/aws-lambda-go/lambdacontext"
)

func main() {
	ctx := context.Background()

	cfg, err := config.Parse(os.Getenv("DOCSCAN_CONFIG"))

	if err != nil {
		panic(err)
	}

	telemetry, err := otel.Setup(ctx, "docscan-lambda")

	if err != nil {
		panic(err)
	}

	slog.SetDefault(telemetry.Logger(cfg.Logger(os.Stdout)))

	h := &handler{
		config:    cfg,
		telemetry: telemetry,
	}

	lambda.Start(h.Handle)
}

type handler struct {
	config    *config.Config
	telemetry *otel.Telemetry
}

func (h *handler) Handle(ctx context.Context, e events.S3Event) (string, error) {
	logger := slog.Default()

	if lc, ok := lambdacontext.FromContext(ctx); ok {
		logger = logger.With("request_id", lc.AwsRequestID)
	}

	defer func() {
		if err := h.telemetry.Flush(ctx); err != nil {
			logger.WarnContext(ctx, "failed to flush telemetry", "error", err)
		}
	}()

	p, err := processor.New(h.config.Clients,
		processor.WithLogger(logger),
		processor.WithJobOptions(h.config.JobOptions()...),
	)

	if err != nil {
		return "", err
	}

	return p.Handle(ctx, e)
}
