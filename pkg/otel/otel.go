package otel

import (
	"context"
	"errors"

	"go.opentelemetry.io/otel/attribute"

	sdklog "go.opentelemetry.io/otel/sdk/log"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	sdkresource "go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
)

// Telemetry holds the installed providers. A zero value is a no-op, which
// is what Setup returns when telemetry is disabled.
type Telemetry struct {
	logger *sdklog.LoggerProvider
	meter  *sdkmetric.MeterProvider
	tracer *sdktrace.TracerProvider
}

func Setup(ctx context.Context, service string) (*Telemetry, error) {
	t := &Telemetry{}

	if !EnableTelemetry {
		return t, nil
	}

	resource, err := sdkresource.New(ctx,
		sdkresource.WithFromEnv(),
		sdkresource.WithTelemetrySDK(),
		sdkresource.WithAttributes(attribute.String("service.name", service)),
	)

	if err != nil {
		return nil, err
	}

	if t.logger, err = setupLogger(ctx, resource); err != nil {
		return nil, err
	}

	if t.meter, err = setupMeter(ctx, resource); err != nil {
		return nil, err
	}

	if t.tracer, err = setupTracer(ctx, resource); err != nil {
		return nil, err
	}

	return t, nil
}

// Flush exports everything buffered so far. Call it before a function
// runtime freezes the process.
func (t *Telemetry) Flush(ctx context.Context) error {
	var errs []error

	if t.tracer != nil {
		errs = append(errs, t.tracer.ForceFlush(ctx))
	}

	if t.meter != nil {
		errs = append(errs, t.meter.ForceFlush(ctx))
	}

	if t.logger != nil {
		errs = append(errs, t.logger.ForceFlush(ctx))
	}

	return errors.Join(errs...)
}

func (t *Telemetry) Shutdown(ctx context.Context) error {
	var errs []error

	if t.tracer != nil {
		errs = append(errs, t.tracer.Shutdown(ctx))
	}

	if t.meter != nil {
		errs = append(errs, t.meter.Shutdown(ctx))
	}

	if t.logger != nil {
		errs = append(errs, t.logger.Shutdown(ctx))
	}

	return errors.Join(errs...)
}
