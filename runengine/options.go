package runengine

import (
	"math/rand"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
)

// DelayFunc samples a mock-path resolution delay in [min, max].
type DelayFunc func(min, max time.Duration) time.Duration

func defaultDelayFunc(min, max time.Duration) time.Duration {
	if max <= min {
		return min
	}
	return min + time.Duration(rand.Int63n(int64(max-min+1)))
}

type config struct {
	minDelay                time.Duration
	maxDelay                time.Duration
	delayFn                 DelayFunc
	mockQuestionProbability float64
	poolSize                int
	tracer                  trace.Tracer
	meter                   metric.Meter
}

func defaultConfig() config {
	return config{
		minDelay:                2 * time.Second,
		maxDelay:                6 * time.Second,
		delayFn:                 defaultDelayFunc,
		mockQuestionProbability: 0.3,
		poolSize:                64,
		tracer:                  otel.Tracer("agentverse/runengine"),
		meter:                   otel.Meter("agentverse/runengine"),
	}
}

// Option configures an Engine at construction time.
type Option func(*config)

// WithMinDelay sets the lower bound of the mock-path resolution
// delay. Default 2s.
func WithMinDelay(d time.Duration) Option {
	return func(c *config) { c.minDelay = d }
}

// WithMaxDelay sets the upper bound of the mock-path resolution
// delay. Default 6s.
func WithMaxDelay(d time.Duration) Option {
	return func(c *config) { c.maxDelay = d }
}

// WithDelayFn overrides the delay sampler entirely, primarily for
// deterministic tests.
func WithDelayFn(fn DelayFunc) Option {
	return func(c *config) { c.delayFn = fn }
}

// WithMockQuestionProbability sets the chance, in [0,1], that a
// mock-path run pauses with a clarifying question instead of
// completing outright. Default 0.3.
func WithMockQuestionProbability(p float64) Option {
	return func(c *config) { c.mockQuestionProbability = p }
}

// WithWorkerPoolSize bounds the number of run resolutions the engine
// dispatches concurrently. Default 64.
func WithWorkerPoolSize(n int) Option {
	return func(c *config) { c.poolSize = n }
}

// WithTracer overrides the tracer used for per-run spans. Defaults to
// the global otel tracer provider's "agentverse/runengine" tracer, a
// no-op until telemetry.Start is called.
func WithTracer(t trace.Tracer) Option {
	return func(c *config) { c.tracer = t }
}

// WithMeter overrides the meter used for run-lifecycle instruments.
func WithMeter(m metric.Meter) Option {
	return func(c *config) { c.meter = m }
}
