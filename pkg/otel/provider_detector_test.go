package otel_test

import (
	"context"
	"errors"
	"testing"

	"github.com/adrianliechti/docscan/pkg/detector"
	"github.com/adrianliechti/docscan/pkg/otel"
	"github.com/adrianliechti/docscan/pkg/storage"

	"github.com/stretchr/testify/require"

	otelapi "go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/codes"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
)

type mockDetector struct {
	err    error
	closed bool
}

func (m *mockDetector) Start(ctx context.Context, input detector.Document) (string, error) {
	return "job-1", m.err
}

func (m *mockDetector) Get(ctx context.Context, id string, options *detector.GetOptions) (*detector.Result, error) {
	if m.err != nil {
		return nil, m.err
	}

	return &detector.Result{Status: detector.StatusSucceeded}, nil
}

func (m *mockDetector) Close() error {
	m.closed = true
	return nil
}

type mockStorage struct {
	err error
}

func (m *mockStorage) Metadata(ctx context.Context, bucket, key string) (*storage.Metadata, error) {
	if m.err != nil {
		return nil, m.err
	}

	return &storage.Metadata{ContentType: "application/pdf"}, nil
}

func (m *mockStorage) Object(ctx context.Context, bucket, key string, options *storage.ObjectOptions) (*storage.Object, error) {
	return nil, m.err
}

func setupRecorder(t *testing.T) *tracetest.SpanRecorder {
	recorder := tracetest.NewSpanRecorder()

	provider := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(recorder))
	otelapi.SetTracerProvider(provider)

	t.Cleanup(func() { provider.Shutdown(context.Background()) })

	return recorder
}

func TestDetectorSpans(t *testing.T) {
	recorder := setupRecorder(t)

	m := &mockDetector{}
	d := otel.NewDetector("textract", m)

	_, err := d.Start(context.Background(), detector.Document{Bucket: "inbox", Key: "a.pdf"})
	require.NoError(t, err)

	_, err = d.Get(context.Background(), "job-1", nil)
	require.NoError(t, err)

	spans := recorder.Ended()
	require.Len(t, spans, 2)

	require.Equal(t, "detector start", spans[0].Name())
	require.Equal(t, "detector get", spans[1].Name())
	require.Equal(t, codes.Unset, spans[1].Status().Code)

	closer, ok := d.(interface{ Close() error })
	require.True(t, ok)
	require.NoError(t, closer.Close())
	require.True(t, m.closed)
}

func TestDetectorSpanError(t *testing.T) {
	recorder := setupRecorder(t)

	d := otel.NewDetector("textract", &mockDetector{err: errors.New("throttled")})

	_, err := d.Get(context.Background(), "job-1", nil)
	require.Error(t, err)

	spans := recorder.Ended()
	require.Len(t, spans, 1)
	require.Equal(t, codes.Error, spans[0].Status().Code)
	require.Equal(t, "throttled", spans[0].Status().Description)
}

func TestStorageSpans(t *testing.T) {
	recorder := setupRecorder(t)

	s := otel.NewStorage("s3", &mockStorage{})

	meta, err := s.Metadata(context.Background(), "inbox", "a.pdf")
	require.NoError(t, err)
	require.Equal(t, "application/pdf", meta.ContentType)

	spans := recorder.Ended()
	require.Len(t, spans, 1)
	require.Equal(t, "storage metadata", spans[0].Name())
}

func TestSetupDisabled(t *testing.T) {
	telemetry, err := otel.Setup(context.Background(), "docscan")
	require.NoError(t, err)

	require.NoError(t, telemetry.Flush(context.Background()))
	require.NoError(t, telemetry.Shutdown(context.Background()))
}
