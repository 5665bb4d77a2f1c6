package telemetry

import (
	"context"
	"fmt"
	"os"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/exporters/otlp/otlpmetric/otlpmetricgrpc"
	"go.opentelemetry.io/otel/exporters/otlp/otlpmetric/otlpmetrichttp"
	"go.opentelemetry.io/otel/metric"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
)

// MeterProvider is the process-wide meter provider runengine's
// instruments are created against by default. It is a no-op until
// InitMeterProvider (or NewMeterProvider followed by
// otel.SetMeterProvider) is called.
var MeterProvider metric.MeterProvider = otel.GetMeterProvider()

// metricsEndpoint resolves the exporter target following the same
// env-var precedence as tracesEndpoint.
func metricsEndpoint(protocol string) string {
	if ep := os.Getenv("OTEL_EXPORTER_OTLP_METRICS_ENDPOINT"); ep != "" {
		return ep
	}
	if ep := os.Getenv("OTEL_EXPORTER_OTLP_ENDPOINT"); ep != "" {
		return ep
	}
	if protocol == "http" {
		return "localhost:4318"
	}
	return "localhost:4317"
}

// NewMeterProvider builds a metric provider exporting over OTLP. It
// is resilient to an unreachable collector and to an unrecognized
// protocol (falls back to grpc) — only a failure to construct the
// resource or the exporter makes it return an error.
func NewMeterProvider(ctx context.Context, opts ...Option) (*sdkmetric.MeterProvider, error) {
	cfg := defaultOptions()
	for _, opt := range opts {
		opt(cfg)
	}

	res, err := buildResource(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("telemetry: build resource: %w", err)
	}

	exporter, err := newMetricExporter(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("telemetry: create metric exporter: %w", err)
	}

	return sdkmetric.NewMeterProvider(
		sdkmetric.WithResource(res),
		sdkmetric.WithReader(sdkmetric.NewPeriodicReader(exporter)),
	), nil
}

func newMetricExporter(ctx context.Context, cfg *options) (sdkmetric.Exporter, error) {
	endpoint := cfg.metricsEndpoint
	if endpoint == "" {
		endpoint = metricsEndpoint(cfg.protocol)
	}

	if cfg.protocol == "http" {
		httpOpts := []otlpmetrichttp.Option{
			otlpmetrichttp.WithInsecure(),
			otlpmetrichttp.WithEndpoint(endpoint),
		}
		if len(cfg.headers) > 0 {
			httpOpts = append(httpOpts, otlpmetrichttp.WithHeaders(cfg.headers))
		}
		return otlpmetrichttp.New(ctx, httpOpts...)
	}

	grpcOpts := []otlpmetricgrpc.Option{
		otlpmetricgrpc.WithInsecure(),
		otlpmetricgrpc.WithEndpoint(endpoint),
	}
	if len(cfg.headers) > 0 {
		grpcOpts = append(grpcOpts, otlpmetricgrpc.WithHeaders(cfg.headers))
	}
	return otlpmetricgrpc.New(ctx, grpcOpts...)
}

// InitMeterProvider installs mp as the process-wide provider, both in
// this package and in the global otel registry that runengine's
// otel.Meter(...) calls resolve against.
func InitMeterProvider(mp metric.MeterProvider) error {
	MeterProvider = mp
	otel.SetMeterProvider(mp)
	return nil
}

// GetMeterProvider returns the process-wide meter provider.
func GetMeterProvider() metric.MeterProvider {
	return MeterProvider
}
