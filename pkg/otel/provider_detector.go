package otel

import (
	"context"

	"github.com/adrianliechti/docscan/pkg/detector"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
)

type Detector interface {
	Observable
	detector.Provider
}

type observableDetector struct {
	provider string

	detector detector.Provider

	requestMetric metric.Int64Counter
}

func NewDetector(provider string, p detector.Provider) Detector {
	meter := otel.Meter(instrumentationName)

	requestMetric, _ := meter.Int64Counter("docscan.detector.requests",
		metric.WithDescription("Number of requests sent to the text detection service"),
	)

	return &observableDetector{
		detector: p,

		provider: provider,

		requestMetric: requestMetric,
	}
}

func (p *observableDetector) otelSetup() {
}

func (p *observableDetector) Start(ctx context.Context, input detector.Document) (string, error) {
	ctx, span := otel.Tracer(instrumentationName).Start(ctx, "detector start", trace.WithAttributes(
		String("detector.provider", p.provider),
		String("storage.bucket", input.Bucket),
		String("storage.key", input.Key),
	))
	defer span.End()

	id, err := p.detector.Start(ctx, input)

	p.record(ctx, "start", err)
	recordError(span, err)

	span.SetAttributes(String("detector.job", id))

	return id, err
}

func (p *observableDetector) Get(ctx context.Context, id string, options *detector.GetOptions) (*detector.Result, error) {
	ctx, span := otel.Tracer(instrumentationName).Start(ctx, "detector get", trace.WithAttributes(
		String("detector.provider", p.provider),
		String("detector.job", id),
	))
	defer span.End()

	result, err := p.detector.Get(ctx, id, options)

	p.record(ctx, "get", err)
	recordError(span, err)

	if result != nil {
		span.SetAttributes(
			String("detector.status", string(result.Status)),
			Int("detector.blocks", len(result.Blocks)),
		)

		if EnableDebug && result.StatusMessage != "" {
			span.SetAttributes(String("detector.status_message", result.StatusMessage))
		}
	}

	return result, err
}

func (p *observableDetector) Close() error {
	return closeProvider(p.detector)
}

func (p *observableDetector) record(ctx context.Context, operation string, err error) {
	if p.requestMetric == nil {
		return
	}

	outcome := "ok"

	if err != nil {
		outcome = "error"
	}

	p.requestMetric.Add(ctx, 1, metric.WithAttributes(
		String("detector.provider", p.provider),
		String("operation", operation),
		String("outcome", outcome),
	))
}
