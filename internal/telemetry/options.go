// Package telemetry wires the run engine's spans and metrics to an
// OTLP collector. Start and NewMeterProvider are resilient by
// design — a missing collector never prevents the simulator from
// running, the exporters simply fail silently on export.
package telemetry

import "go.opentelemetry.io/otel/attribute"

// options configures exporter endpoint, transport, and resource
// attributes for both Start (traces) and NewMeterProvider (metrics).
type options struct {
	protocol           string
	tracesEndpoint     string
	metricsEndpoint    string
	endpointURL        string
	headers            map[string]string
	serviceName        string
	serviceNamespace   string
	serviceVersion     string
	resourceAttributes *[]attribute.KeyValue
}

// Option configures Start or NewMeterProvider.
type Option func(*options)

// WithProtocol selects the OTLP transport: "grpc" (default) or "http".
func WithProtocol(protocol string) Option {
	return func(o *options) { o.protocol = protocol }
}

// WithEndpoint sets the exporter endpoint (host:port, no scheme).
// Applies to both trace and metric exporters since most deployments
// point both at the same collector.
func WithEndpoint(endpoint string) Option {
	return func(o *options) {
		o.tracesEndpoint = endpoint
		o.metricsEndpoint = endpoint
	}
}

// WithEndpointURL sets a full endpoint URL (scheme + host + path),
// overriding WithEndpoint for Start's trace exporter on both
// transports (grpc uses only the host). NewMeterProvider does not
// use it.
func WithEndpointURL(url string) Option {
	return func(o *options) { o.endpointURL = url }
}

// WithHeaders attaches static headers (e.g. auth) to every export.
func WithHeaders(headers map[string]string) Option {
	return func(o *options) { o.headers = headers }
}

// WithServiceName sets the resource's service.name attribute.
func WithServiceName(name string) Option {
	return func(o *options) { o.serviceName = name }
}

// WithServiceNamespace sets the resource's service.namespace attribute.
func WithServiceNamespace(ns string) Option {
	return func(o *options) { o.serviceNamespace = ns }
}

// WithServiceVersion sets the resource's service.version attribute.
func WithServiceVersion(version string) Option {
	return func(o *options) { o.serviceVersion = version }
}

// WithResourceAttributes adds extra resource attributes, taking
// precedence over OTEL_RESOURCE_ATTRIBUTES for overlapping keys.
func WithResourceAttributes(attrs ...attribute.KeyValue) Option {
	return func(o *options) { o.resourceAttributes = &attrs }
}

func defaultOptions() *options {
	return &options{
		protocol:         "grpc",
		serviceName:      "agentsim",
		serviceNamespace: "agentverse",
		serviceVersion:   "v0.1.0",
	}
}
