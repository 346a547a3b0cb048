package processor

import (
	"context"
	"errors"
	"log/slog"

	"github.com/adrianliechti/docscan/pkg/detector"
	"github.com/adrianliechti/docscan/pkg/job"
	"github.com/adrianliechti/docscan/pkg/sink"
	"github.com/adrianliechti/docscan/pkg/trigger"

	"github.com/aws/aws-lambda-go/events"
)

type Processor struct {
	factory Factory
	logger  *slog.Logger

	options []job.Option
}

type Option func(*Processor)

func WithLogger(logger *slog.Logger) Option {
	return func(p *Processor) {
		p.logger = logger
	}
}

// WithJobOptions configures the controller created for each invocation.
func WithJobOptions(options ...job.Option) Option {
	return func(p *Processor) {
		p.options = append(p.options, options...)
	}
}

func New(factory Factory, options ...Option) (*Processor, error) {
	if factory == nil {
		return nil, errors.New("missing client factory")
	}

	p := &Processor{
		factory: factory,
		logger:  slog.Default(),
	}

	for _, option := range options {
		option(p)
	}

	return p, nil
}

// Handle processes the first record of the notification. Without a
// record it returns immediately.
func (p *Processor) Handle(ctx context.Context, e events.S3Event) (string, error) {
	obj := trigger.Extract(e)

	if obj == nil {
		p.logger.DebugContext(ctx, "notification without records")
		return "", nil
	}

	return p.Process(ctx, *obj)
}

// Process runs text detection for the object and returns its content type.
// A job the service reports as failed does not produce an error.
func (p *Processor) Process(ctx context.Context, obj trigger.Object) (string, error) {
	logger := p.logger.With("bucket", obj.Bucket, "key", obj.Key)

	clients, err := p.factory(ctx)

	if err != nil {
		logger.ErrorContext(ctx, "failed to create clients", "error", err)
		return "", &ProcessError{Op: "connect", Bucket: obj.Bucket, Key: obj.Key, Err: err}
	}

	defer func() {
		if err := clients.Close(); err != nil {
			logger.WarnContext(ctx, "failed to release clients", "error", err)
		}
	}()

	meta, err := clients.Storage.Metadata(ctx, obj.Bucket, obj.Key)

	if err != nil {
		logger.ErrorContext(ctx, "failed to get object metadata", "error", err)
		return "", &ProcessError{Op: "metadata", Bucket: obj.Bucket, Key: obj.Key, Err: err}
	}

	controller, err := job.New(clients.Detector, append([]job.Option{job.WithLogger(logger)}, p.options...)...)

	if err != nil {
		return "", &ProcessError{Op: "detect", Bucket: obj.Bucket, Key: obj.Key, Err: err}
	}

	counter := sink.NewCounter(sink.NewLogger(logger))

	j, err := controller.Run(ctx, obj, counter)

	if err != nil {
		attrs := []any{"error", err}

		if j != nil {
			attrs = append(attrs, "job", j.ID, "status", j.Status)
		}

		logger.ErrorContext(ctx, "failed to detect text", attrs...)
		return "", &ProcessError{Op: "detect", Bucket: obj.Bucket, Key: obj.Key, Err: err}
	}

	logger.InfoContext(ctx, "object processed",
		"job", j.ID,
		"status", j.Status,
		"content_type", meta.ContentType,
		"blocks", counter.Total(),
		"lines", counter.Count(detector.BlockTypeLine),
		"words", counter.Count(detector.BlockTypeWord),
	)

	return meta.ContentType, nil
}
