// Package openaiexec adapts an OpenAI-compatible chat endpoint into a
// runengine.Executor, for callers who want real model output instead
// of the mock content engine.
package openaiexec

import (
	"context"
	"fmt"
	"strings"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
	"github.com/openai/openai-go/shared"

	"agentverse/runengine"
)

type options struct {
	apiKey  string
	baseURL string
}

// Option configures an Executor.
type Option func(*options)

// WithAPIKey sets the bearer token sent to the endpoint.
func WithAPIKey(key string) Option {
	return func(o *options) { o.apiKey = key }
}

// WithBaseURL points the client at an OpenAI-compatible endpoint other
// than the public OpenAI API (e.g. a local or self-hosted gateway).
func WithBaseURL(url string) Option {
	return func(o *options) { o.baseURL = url }
}

// Executor calls a chat-completion model to resolve a run. A response
// ending in "?" is treated as a clarifying question; everything else
// is a result. This mirrors the string|{kind:"question"} union the
// mock content engine produces, without requiring the model to emit
// any structured marker of its own.
type Executor struct {
	client openai.Client
	model  string
}

// New builds an Executor for the given model name.
func New(model string, opts ...Option) *Executor {
	o := options{}
	for _, opt := range opts {
		opt(&o)
	}

	clientOpts := []option.RequestOption{}
	if o.apiKey != "" {
		clientOpts = append(clientOpts, option.WithAPIKey(o.apiKey))
	}
	if o.baseURL != "" {
		clientOpts = append(clientOpts, option.WithBaseURL(o.baseURL))
	}

	return &Executor{
		client: openai.NewClient(clientOpts...),
		model:  model,
	}
}

// Run implements runengine.Executor for a specific agent and task. It
// is intended to be captured per-run: engine.StartRun(id, exec.Run(name, role, task)).
func (e *Executor) Run(agentName, agentRole, task string) runengine.Executor {
	return func(ctx context.Context) (runengine.Outcome, error) {
		prompt := fmt.Sprintf("You are %s, a %s. Complete the following task and reply with your result only:\n\n%s", agentName, agentRole, task)

		resp, err := e.client.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
			Model: shared.ChatModel(e.model),
			Messages: []openai.ChatCompletionMessageParamUnion{
				openai.UserMessage(prompt),
			},
		})
		if err != nil {
			return runengine.Outcome{}, fmt.Errorf("openaiexec: chat completion: %w", err)
		}
		if len(resp.Choices) == 0 {
			return runengine.Outcome{}, fmt.Errorf("openaiexec: empty response for run")
		}

		content := strings.TrimSpace(resp.Choices[0].Message.Content)
		if strings.HasSuffix(content, "?") {
			return runengine.Question(content), nil
		}
		return runengine.Result(content), nil
	}
}
