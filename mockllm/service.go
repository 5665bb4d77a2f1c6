// Package mockllm manufactures realistic, persona-tuned fake LLM
// output when no real model backend is configured. It composes the
// topic classifier, persona-style classifier, and template library
// into a small stateful service the run engine's mock path calls on
// every unresolved run.
package mockllm

import (
	"math/rand"

	"agentverse/mockllm/template"
)

// Config holds the agent attributes a MockLLMService renders against.
type Config struct {
	AgentName string
	AgentRole string
	Goal      string
	Persona   string

	// RealisticOverride, when non-nil, forces realistic generation on
	// (true) or off (false), bypassing the Goal/Persona auto-detect
	// rule in spec.md §4.2.
	RealisticOverride *bool
}

// Option configures a MockLLMService at construction time.
type Option func(*Config)

// WithGoal sets the agent's mission goal.
func WithGoal(goal string) Option {
	return func(c *Config) { c.Goal = goal }
}

// WithPersona sets the agent's free-text persona description.
func WithPersona(persona string) Option {
	return func(c *Config) { c.Persona = persona }
}

// WithRealisticGeneration forces realistic-mode generation on or off,
// overriding the Goal/Persona auto-detect rule.
func WithRealisticGeneration(enabled bool) Option {
	return func(c *Config) { c.RealisticOverride = &enabled }
}

// MockLLMService wraps the content generator with per-agent state: it
// classifies the persona style once at construction and reports that
// cached value through Style. GenerateResult and GenerateQuestion go
// through the package-level generators, which classify the persona
// again on each call (with the same outcome).
type MockLLMService struct {
	cfg         Config
	cachedStyle template.Style
}

// NewMockLLMService constructs a service for one agent. agentName and
// agentRole are required; they appear in every generated string.
func NewMockLLMService(agentName, agentRole string, opts ...Option) *MockLLMService {
	cfg := Config{AgentName: agentName, AgentRole: agentRole}
	for _, opt := range opts {
		opt(&cfg)
	}
	return &MockLLMService{
		cfg:         cfg,
		cachedStyle: DetectPersonaStyle(cfg.Persona),
	}
}

// AgentName returns the configured agent name.
func (s *MockLLMService) AgentName() string { return s.cfg.AgentName }

// AgentRole returns the configured agent role.
func (s *MockLLMService) AgentRole() string { return s.cfg.AgentRole }

// Goal returns the configured mission goal, if any.
func (s *MockLLMService) Goal() string { return s.cfg.Goal }

// Persona returns the configured persona description, if any.
func (s *MockLLMService) Persona() string { return s.cfg.Persona }

// Style returns the cached persona-style classification.
func (s *MockLLMService) Style() template.Style { return s.cachedStyle }

// UsesRealisticGeneration reports whether this service generates
// persona/topic-aware content (true) or falls back to the generic
// pool (false), per the realistic-mode toggle rule in spec.md §4.2.
func (s *MockLLMService) UsesRealisticGeneration() bool {
	if s.cfg.RealisticOverride != nil {
		return *s.cfg.RealisticOverride
	}
	return s.cfg.Goal != "" || s.cfg.Persona != ""
}

// DetectTopicFor classifies a task description using the same
// classifier GenerateResult/GenerateQuestion use internally.
func (s *MockLLMService) DetectTopicFor(task string) template.Topic {
	return DetectTopic(task)
}

// GenerateResult produces a result string for task. pickIndex is
// optional; when omitted a uniform-random index is drawn, matching
// spec.md's default sampler.
func (s *MockLLMService) GenerateResult(task string, pickIndex ...int) string {
	i := resolvePickIndex(pickIndex)
	if !s.UsesRealisticGeneration() {
		return GenerateGenericResult(s.cfg.AgentName, s.cfg.AgentRole, task, i)
	}
	return GenerateRealisticResult(s.cfg.AgentName, s.cfg.AgentRole, task, s.cfg.Goal, s.cfg.Persona, i)
}

// GenerateQuestion produces a clarifying-question string for task.
// pickIndex is optional; when omitted a uniform-random index is
// drawn.
func (s *MockLLMService) GenerateQuestion(task string, pickIndex ...int) string {
	i := resolvePickIndex(pickIndex)
	if !s.UsesRealisticGeneration() {
		return GenerateGenericQuestion(s.cfg.AgentName, s.cfg.AgentRole, task, i)
	}
	return GenerateRealisticQuestion(s.cfg.AgentName, s.cfg.AgentRole, task, s.cfg.Goal, s.cfg.Persona, i)
}

func resolvePickIndex(pickIndex []int) int {
	if len(pickIndex) > 0 {
		return pickIndex[0]
	}
	return rand.Int()
}
