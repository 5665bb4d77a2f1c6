package telemetry

import (
	"context"
	"fmt"
	"net/url"
	"os"
	"strings"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracegrpc"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracehttp"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/trace"
)

// Tracer is the process-wide "agentverse" tracer of this package. It
// is a no-op until Start succeeds, which replaces it with a tracer
// from the new provider. runengine does not read it: its default
// tracer comes from the global otel provider.
var Tracer trace.Tracer = otel.Tracer("agentverse")

// tracesEndpoint resolves the exporter target following the
// OpenTelemetry spec's precedence: the signal-specific env var, then
// the generic one, then a transport-appropriate default.
func tracesEndpoint(protocol string) string {
	if ep := os.Getenv("OTEL_EXPORTER_OTLP_TRACES_ENDPOINT"); ep != "" {
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

// parseEndpointURL splits a full endpoint URL into a bare host:port
// and a URL path, tolerating a missing scheme.
func parseEndpointURL(raw string) (endpoint, path string, err error) {
	candidate := raw
	if !strings.Contains(candidate, "://") {
		candidate = "http://" + candidate
	}
	u, err := url.Parse(candidate)
	if err != nil {
		return "", "", err
	}
	if u.Host == "" {
		return "", "", fmt.Errorf("telemetry: endpoint URL %q has no host", raw)
	}
	p := u.Path
	if p == "" {
		p = "/"
	}
	return u.Host, p, nil
}

// Start configures the global trace provider and exporter and returns
// a cleanup function that flushes and shuts it down. It never returns
// an error for an unreachable collector — exporters connect lazily —
// only for malformed configuration (e.g. an invalid WithEndpointURL).
func Start(ctx context.Context, opts ...Option) (func() error, error) {
	cfg := defaultOptions()
	for _, opt := range opts {
		opt(cfg)
	}

	res, err := buildResource(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("telemetry: build resource: %w", err)
	}

	exporter, err := newTraceExporter(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("telemetry: create trace exporter: %w", err)
	}

	provider := sdktrace.NewTracerProvider(
		sdktrace.WithBatcher(exporter),
		sdktrace.WithResource(res),
	)
	otel.SetTracerProvider(provider)
	Tracer = provider.Tracer("agentverse")

	return func() error {
		return provider.Shutdown(ctx)
	}, nil
}

func newTraceExporter(ctx context.Context, cfg *options) (sdktrace.SpanExporter, error) {
	endpoint := cfg.tracesEndpoint
	if endpoint == "" {
		endpoint = tracesEndpoint(cfg.protocol)
	}

	if cfg.protocol == "http" {
		httpOpts := []otlptracehttp.Option{otlptracehttp.WithInsecure()}
		if cfg.endpointURL != "" {
			host, path, err := parseEndpointURL(cfg.endpointURL)
			if err != nil {
				return nil, err
			}
			httpOpts = append(httpOpts, otlptracehttp.WithEndpoint(host), otlptracehttp.WithURLPath(path))
		} else {
			httpOpts = append(httpOpts, otlptracehttp.WithEndpoint(endpoint))
		}
		if len(cfg.headers) > 0 {
			httpOpts = append(httpOpts, otlptracehttp.WithHeaders(cfg.headers))
		}
		return otlptracehttp.New(ctx, httpOpts...)
	}

	grpcOpts := []otlptracegrpc.Option{otlptracegrpc.WithInsecure()}
	if cfg.endpointURL != "" {
		host, _, err := parseEndpointURL(cfg.endpointURL)
		if err != nil {
			return nil, err
		}
		grpcOpts = append(grpcOpts, otlptracegrpc.WithEndpoint(host))
	} else {
		grpcOpts = append(grpcOpts, otlptracegrpc.WithEndpoint(endpoint))
	}
	if len(cfg.headers) > 0 {
		grpcOpts = append(grpcOpts, otlptracegrpc.WithHeaders(cfg.headers))
	}
	client := otlptracegrpc.NewClient(grpcOpts...)
	return otlptrace.New(ctx, client)
}
