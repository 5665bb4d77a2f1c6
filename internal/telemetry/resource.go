package telemetry

import (
	"context"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/sdk/resource"
	semconv "go.opentelemetry.io/otel/semconv/v1.21.0"
)

// buildResource assembles the OTel resource for this process: code
// defaults, then OTEL_RESOURCE_ATTRIBUTES/OTEL_SERVICE_NAME from the
// environment, then explicit WithResourceAttributes — each later
// source overriding the former for overlapping keys, matching the
// OpenTelemetry spec's precedence rule.
func buildResource(ctx context.Context, opts *options) (*resource.Resource, error) {
	attrs := []attribute.KeyValue{
		semconv.ServiceNameKey.String(opts.serviceName),
		semconv.ServiceNamespaceKey.String(opts.serviceNamespace),
		semconv.ServiceVersionKey.String(opts.serviceVersion),
	}

	res, err := resource.New(ctx,
		resource.WithAttributes(attrs...),
		resource.WithFromEnv(),
	)
	if err != nil {
		return nil, err
	}

	if opts.resourceAttributes != nil && len(*opts.resourceAttributes) > 0 {
		res, err = resource.Merge(res, resource.NewSchemaless((*opts.resourceAttributes)...))
		if err != nil {
			return nil, err
		}
	}
	return res, nil
}
