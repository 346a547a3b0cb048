package otel

import (
	"context"

	"github.com/adrianliechti/docscan/pkg/storage"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"
)

type Storage interface {
	Observable
	storage.Provider
}

type observableStorage struct {
	provider string

	storage storage.Provider
}

func NewStorage(provider string, p storage.Provider) Storage {
	return &observableStorage{
		storage: p,

		provider: provider,
	}
}

func (p *observableStorage) otelSetup() {
}

func (p *observableStorage) Metadata(ctx context.Context, bucket, key string) (*storage.Metadata, error) {
	ctx, span := otel.Tracer(instrumentationName).Start(ctx, "storage metadata", trace.WithAttributes(
		String("storage.provider", p.provider),
		String("storage.bucket", bucket),
		String("storage.key", key),
	))
	defer span.End()

	result, err := p.storage.Metadata(ctx, bucket, key)

	recordError(span, err)

	if result != nil {
		span.SetAttributes(String("storage.content_type", result.ContentType))
	}

	return result, err
}

func (p *observableStorage) Object(ctx context.Context, bucket, key string, options *storage.ObjectOptions) (*storage.Object, error) {
	ctx, span := otel.Tracer(instrumentationName).Start(ctx, "storage object", trace.WithAttributes(
		String("storage.provider", p.provider),
		String("storage.bucket", bucket),
		String("storage.key", key),
	))
	defer span.End()

	result, err := p.storage.Object(ctx, bucket, key, options)

	recordError(span, err)

	return result, err
}

func (p *observableStorage) Close() error {
	return closeProvider(p.storage)
}
