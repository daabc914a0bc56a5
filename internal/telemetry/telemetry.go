// Package telemetry builds the logger and tracer provider shared by every
// coordinator and adapter.
package telemetry

import (
	"context"
	"os"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"
	"go.opentelemetry.io/otel/trace/noop"
	"go.uber.org/zap"
)

// NewLogger builds the production zap logger used across the coordinator,
// following the same zap.NewProduction() construction the domain-side
// server bootstrap uses, tagged with a "service" field.
func NewLogger(service string) *zap.Logger {
	var logger *zap.Logger
	var err error
	if os.Getenv("LOG_DEV") == "true" {
		logger, err = zap.NewDevelopment()
	} else {
		logger, err = zap.NewProduction()
	}
	if err != nil {
		logger = zap.NewNop()
	}
	return logger.With(zap.String("service", service))
}

// WithCover returns a logger decorated with the request fields domain,
// root, correlation_id and sequence.
func WithCover(logger *zap.Logger, domain, root, correlationID string, sequence uint32) *zap.Logger {
	return logger.With(
		zap.String("domain", domain),
		zap.String("root", root),
		zap.String("correlation_id", correlationID),
		zap.Uint32("sequence", sequence),
	)
}

// Tracer returns the process-wide tracer. A real deployment installs an
// otel SDK TracerProvider (OTLP export) before calling this; without one,
// otel's global provider defaults to a no-op implementation, so tracing
// here is wired instrumentation, never a hard dependency on an exporter
// being present — matching the Non-goal that excludes export wiring, not
// the tracer-provider plumbing itself.
func Tracer(name string) trace.Tracer {
	return otel.Tracer(name)
}

// NoopTracerProvider returns an exporter-free provider whose spans record
// nothing.
func NoopTracerProvider() trace.TracerProvider {
	return noop.NewTracerProvider()
}

// StartSpan is a thin convenience wrapper around tracer.Start.
func StartSpan(ctx context.Context, tracer trace.Tracer, name string) (context.Context, trace.Span) {
	return tracer.Start(ctx, name)
}
