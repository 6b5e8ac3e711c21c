// Package tracing configura el TracerProvider global de OpenTelemetry.
package tracing

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracehttp"
	"go.opentelemetry.io/otel/sdk/resource"
	"go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.26.0"

	"github.com/jhoicas/farmacia-api/pkg/config"
	"github.com/jhoicas/farmacia-api/pkg/logger"
)

// Init exporta trazas por OTLP/HTTP si hay endpoint configurado; si no, el tracer global
// queda como no-op. Devuelve la función de cierre que hace flush de los spans pendientes.
func Init(ctx context.Context, log *logger.Logger, app config.AppConfig, tel config.TelemetryConfig) (func(context.Context) error, error) {
	if tel.OTLPEndpoint == "" {
		log.Info().Msg("trazas deshabilitadas: OTEL_EXPORTER_OTLP_ENDPOINT vacío")
		return func(context.Context) error { return nil }, nil
	}

	exporter, err := otlptracehttp.New(ctx,
		otlptracehttp.WithEndpoint(tel.OTLPEndpoint),
		otlptracehttp.WithInsecure(),
	)
	if err != nil {
		return nil, err
	}

	res, err := resource.New(ctx,
		resource.WithAttributes(
			semconv.ServiceName(app.Name),
			semconv.DeploymentEnvironment(app.Env),
		),
	)
	if err != nil {
		return nil, err
	}

	tp := trace.NewTracerProvider(
		trace.WithBatcher(exporter),
		trace.WithResource(res),
	)
	otel.SetTracerProvider(tp)
	log.Info().Str("endpoint", tel.OTLPEndpoint).Msg("trazas inicializadas")
	return tp.Shutdown, nil
}
