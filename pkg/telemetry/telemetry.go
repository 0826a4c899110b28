package telemetry

import (
	"context"
	"fmt"
	"os"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracegrpc"
	"go.opentelemetry.io/otel/exporters/stdout/stdouttrace"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.4.0"
	"go.opentelemetry.io/otel/trace"
)

const (
	serviceName    = "docuflow-infrastructure-core"
	serviceVersion = "1.0.0"
)

// Setup initializes OpenTelemetry based on environment configuration.
// OTEL_EXPORTER: "none" (default), "console", "otlp", or "both"
// OTEL_ENDPOINT: OTLP endpoint (default: "localhost:4317")
func Setup(ctx context.Context) (trace.Tracer, func(context.Context) error, error) {
	exporterType := os.Getenv("OTEL_EXPORTER")
	if exporterType == "" {
		exporterType = "none"
	}

	res, err := resource.New(ctx,
		resource.WithAttributes(
			semconv.ServiceNameKey.String(serviceName),
			semconv.ServiceVersionKey.String(serviceVersion),
		),
	)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create resource: %w", err)
	}

	var exporters []sdktrace.SpanExporter

	switch exporterType {
	case "none":
		// Traces are still collected but not exported
	case "console":
		consoleExporter, err := newConsoleExporter()
		if err != nil {
			return nil, nil, err
		}
		exporters = append(exporters, consoleExporter)
	case "otlp":
		otlpExporter, err := newOTLPExporter(ctx)
		if err != nil {
			return nil, nil, err
		}
		exporters = append(exporters, otlpExporter)
	case "both":
		consoleExporter, err := newConsoleExporter()
		if err != nil {
			return nil, nil, err
		}
		exporters = append(exporters, consoleExporter)

		otlpExporter, err := newOTLPExporter(ctx)
		if err != nil {
			return nil, nil, err
		}
		exporters = append(exporters, otlpExporter)
	}

	tp := sdktrace.NewTracerProvider(
		sdktrace.WithResource(res),
	)

	for _, exporter := range exporters {
		tp.RegisterSpanProcessor(sdktrace.NewBatchSpanProcessor(exporter))
	}

	otel.SetTracerProvider(tp)

	tracer := tp.Tracer(serviceName)

	shutdown := func(ctx context.Context) error {
		return tp.Shutdown(ctx)
	}

	return tracer, shutdown, nil
}

func newConsoleExporter() (sdktrace.SpanExporter, error) {
	exporter, err := stdouttrace.New(
		stdouttrace.WithPrettyPrint(),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create console exporter: %w", err)
	}
	return exporter, nil
}

func newOTLPExporter(ctx context.Context) (sdktrace.SpanExporter, error) {
	endpoint := os.Getenv("OTEL_ENDPOINT")
	if endpoint == "" {
		endpoint = "localhost:4317"
	}

	exporter, err := otlptracegrpc.New(ctx,
		otlptracegrpc.WithEndpoint(endpoint),
		otlptracegrpc.WithInsecure(), // TODO: support TLS endpoints
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create OTLP exporter: %w", err)
	}
	return exporter, nil
}
