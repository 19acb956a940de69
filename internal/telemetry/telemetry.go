// Package telemetry wires OpenTelemetry tracing and logr logging for the
// layout generator.
package telemetry

import (
	"context"
	"log"
	"os"
	"runtime"

	"github.com/go-logr/logr"
	"github.com/go-logr/stdr"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracehttp"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/trace"
)

const (
	serviceName    = "dungeonlayout"
	serviceVersion = "0.2.0"
)

// Setup installs a global tracer provider exporting over OTLP HTTP. The
// exporter reads the standard OTEL_EXPORTER_OTLP_* variables, so pointing
// OTEL_EXPORTER_OTLP_ENDPOINT at Honeycomb with an x-honeycomb-team header
// is enough.
//
// The returned function flushes pending spans and must be called on exit.
func Setup(ctx context.Context) (shutdown func(context.Context) error, err error) {
	exporter, err := otlptracehttp.New(ctx)
	if err != nil {
		return nil, err
	}

	// Built by hand rather than merged with resource.Default() to avoid
	// schema URL conflicts.
	res, err := resource.New(ctx,
		resource.WithAttributes(
			attribute.String("service.name", serviceName),
			attribute.String("service.version", serviceVersion),
			attribute.String("host.name", hostname()),
			attribute.String("os.type", runtime.GOOS),
			attribute.String("process.runtime.name", "go"),
			attribute.String("process.runtime.version", runtime.Version()),
		),
	)
	if err != nil {
		return nil, err
	}

	tp := sdktrace.NewTracerProvider(
		sdktrace.WithBatcher(exporter),
		sdktrace.WithResource(res),
	)
	otel.SetTracerProvider(tp)
	otel.SetTextMapPropagator(propagation.TraceContext{})

	return tp.Shutdown, nil
}

// Tracer returns a tracer scoped to one component of the pipeline.
func Tracer(component string) trace.Tracer {
	return otel.GetTracerProvider().Tracer(serviceName + "/" + component)
}

// NewLogger returns a logr.Logger writing to stderr through the standard
// log package. Higher verbosity shows more of the generator's decisions.
func NewLogger(verbosity int) logr.Logger {
	stdr.SetVerbosity(verbosity)
	return stdr.NewWithOptions(
		log.New(os.Stderr, serviceName+" ", log.LstdFlags),
		stdr.Options{LogCaller: stdr.Error},
	)
}

func hostname() string {
	name, err := os.Hostname()
	if err != nil {
		return "unknown"
	}
	return name
}
