// Package telemetry wires up the bustubctl CLI's logging, tracing and
// metrics, local-only instrumentation of the load generator rather
// than a wire protocol for the core library. Spans and metrics land on
// stdout exporters; nothing here opens a network connection.
package telemetry

import (
	"context"
	"fmt"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/exporters/stdout/stdoutmetric"
	"go.opentelemetry.io/otel/exporters/stdout/stdouttrace"
	"go.opentelemetry.io/otel/metric"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"

	"github.com/mackushev/bustub/internal/config"
)

// Telemetry bundles a logger, tracer and meter for one CLI run, plus
// the shutdown hooks their providers need.
type Telemetry struct {
	Log    *zap.SugaredLogger
	Tracer trace.Tracer
	Meter  metric.Meter

	shutdown []func(context.Context) error
}

// New builds a Telemetry for the given environment, writing spans and
// metrics to stdout. Close must be called before the process exits to
// flush buffered data.
func New(env config.Environment) (*Telemetry, error) {
	var zapLogger *zap.Logger
	var err error
	if env == config.EnvProd {
		zapLogger, err = zap.NewProduction()
	} else {
		zapLogger, err = zap.NewDevelopment()
	}
	if err != nil {
		return nil, fmt.Errorf("build logger: %w", err)
	}

	traceExporter, err := stdouttrace.New(stdouttrace.WithPrettyPrint())
	if err != nil {
		return nil, fmt.Errorf("build trace exporter: %w", err)
	}
	tracerProvider := sdktrace.NewTracerProvider(
		sdktrace.WithBatcher(traceExporter),
	)

	metricExporter, err := stdoutmetric.New()
	if err != nil {
		return nil, fmt.Errorf("build metric exporter: %w", err)
	}
	meterProvider := sdkmetric.NewMeterProvider(
		sdkmetric.WithReader(sdkmetric.NewPeriodicReader(metricExporter)),
	)

	otel.SetTracerProvider(tracerProvider)
	otel.SetMeterProvider(meterProvider)

	return &Telemetry{
		Log:    zapLogger.Sugar(),
		Tracer: tracerProvider.Tracer("bustubctl"),
		Meter:  meterProvider.Meter("bustubctl"),
		shutdown: []func(context.Context) error{
			tracerProvider.Shutdown,
			meterProvider.Shutdown,
			func(context.Context) error { return zapLogger.Sync() },
		},
	}, nil
}

// Close flushes and shuts down every provider, returning the first
// error encountered (if any) after attempting all of them.
func (t *Telemetry) Close(ctx context.Context) error {
	var first error
	for _, fn := range t.shutdown {
		if err := fn(ctx); err != nil && first == nil {
			first = err
		}
	}
	return first
}
