package runengine

import "context"

// Kind discriminates the two shapes an executor may hand back.
type Kind string

const (
	KindResult   Kind = "result"
	KindQuestion Kind = "question"
)

// Outcome is the tagged-union record an Executor resolves with. The
// specification allows a bare string (always treated as a result); in
// Go that collapses to the Result constructor below, so the contract
// the engine actually deals with stays a single, explicit shape.
type Outcome struct {
	Kind Kind
	Text string
}

// Result builds a result outcome.
func Result(text string) Outcome { return Outcome{Kind: KindResult, Text: text} }

// Question builds a question outcome — the executor is pausing the
// run to ask the operator something.
func Question(text string) Outcome { return Outcome{Kind: KindQuestion, Text: text} }

// Executor performs the actual work behind a run. Returning an error
// fails the run; returning an Outcome completes or pauses it. A nil
// Executor tells the engine to use its built-in mock content path
// instead.
type Executor func(ctx context.Context) (Outcome, error)

// FromResultFunc adapts a plain string-returning function — the
// common case where a caller never produces clarifying questions —
// into an Executor.
func FromResultFunc(fn func(ctx context.Context) (string, error)) Executor {
	return func(ctx context.Context) (Outcome, error) {
		text, err := fn(ctx)
		if err != nil {
			return Outcome{}, err
		}
		return Result(text), nil
	}
}
