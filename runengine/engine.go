package runengine

import (
	"context"
	"fmt"
	"math/rand"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/panjf2000/ants/v2"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"

	"agentverse/eventbus"
	"agentverse/log"
	"agentverse/mockllm"
)

type instruments struct {
	created   metric.Int64Counter
	completed metric.Int64Counter
	duration  metric.Float64Histogram
}

func newInstruments(cfg config) (instruments, error) {
	created, err := cfg.meter.Int64Counter("agentsim.runs.created",
		metric.WithDescription("Runs created, by CreateRun."))
	if err != nil {
		return instruments{}, err
	}
	completed, err := cfg.meter.Int64Counter("agentsim.runs.completed",
		metric.WithDescription("Runs that reached a terminal state, labeled by status."))
	if err != nil {
		return instruments{}, err
	}
	duration, err := cfg.meter.Float64Histogram("agentsim.run.duration",
		metric.WithDescription("Seconds between a run's start and its terminal state."),
		metric.WithUnit("s"))
	if err != nil {
		return instruments{}, err
	}
	return instruments{created: created, completed: completed, duration: duration}, nil
}

// Engine owns every run's lifecycle: creation, start, resume, and the
// event bus collaborators observe it through. The zero value is not
// usable; construct with New.
type Engine struct {
	cfg config

	mu    sync.Mutex
	runs  map[string]*Run
	order []string
	spans map[string]trace.Span

	bus  *eventbus.Bus[*Run]
	pool *ants.Pool

	inst instruments
}

// New constructs an Engine ready to accept runs.
func New(opts ...Option) (*Engine, error) {
	cfg := defaultConfig()
	for _, opt := range opts {
		opt(&cfg)
	}

	pool, err := ants.NewPool(cfg.poolSize)
	if err != nil {
		return nil, fmt.Errorf("runengine: create worker pool: %w", err)
	}

	inst, err := newInstruments(cfg)
	if err != nil {
		pool.Release()
		return nil, fmt.Errorf("runengine: create instruments: %w", err)
	}

	return &Engine{
		cfg:   cfg,
		runs:  make(map[string]*Run),
		spans: make(map[string]trace.Span),
		bus:   eventbus.New[*Run](),
		pool:  pool,
		inst:  inst,
	}, nil
}

// Close releases the engine's worker pool. Runs already scheduled are
// allowed to drain.
func (e *Engine) Close() {
	e.pool.Release()
}

// On subscribes handler to topic (one of the Topic* constants) and
// returns an unsubscribe function.
func (e *Engine) On(topic string, handler eventbus.Handler[*Run]) func() {
	return e.bus.On(topic, handler)
}

// Off removes handler from topic.
func (e *Engine) Off(topic string, handler eventbus.Handler[*Run]) {
	e.bus.Off(topic, handler)
}

// CreateRun registers a new run in StatusPending and emits
// run:created. It never blocks on work — StartRun does that.
func (e *Engine) CreateRun(agentID, agentName, agentRole, taskDescription string, snapshot *ConfigSnapshot) *Run {
	run := &Run{
		ID:              uuid.NewString(),
		AgentID:         agentID,
		AgentName:       agentName,
		AgentRole:       agentRole,
		TaskDescription: taskDescription,
		Status:          StatusPending,
		CreatedAt:       time.Now(),
		ConfigSnapshot:  snapshot,
	}

	e.mu.Lock()
	e.runs[run.ID] = run
	e.order = append(e.order, run.ID)
	e.mu.Unlock()

	e.inst.created.Add(context.Background(), 1)
	e.bus.Emit(TopicRunCreated, run.Clone())
	return run.Clone()
}

// StartRun transitions a pending run to running and schedules its
// resolution. A nil executor selects the built-in mock content path.
func (e *Engine) StartRun(runID string, executor Executor) error {
	run, err := e.transition(runID, StatusPending, func(r *Run) {
		now := time.Now()
		r.Status = StatusRunning
		r.StartedAt = &now
	})
	if err != nil {
		return err
	}

	e.startSpan(run)
	e.bus.Emit(TopicRunStarted, run.Clone())
	e.runPostStart(runID, executor, true)
	return nil
}

// ResumeRun answers a run's pending question and resumes it toward
// completion. A run resumed this way never re-emits run:awaiting: if
// the executor (or the mock path) produces another question, the
// engine coerces it into a result.
func (e *Engine) ResumeRun(runID, answer string, executor Executor) error {
	run, err := e.transition(runID, StatusAwaiting, func(r *Run) {
		r.Status = StatusRunning
		r.Answer = &answer
		r.CompletedAt = nil
	})
	if err != nil {
		return err
	}

	e.bus.Emit(TopicRunResumed, run.Clone())
	e.runPostStart(runID, executor, false)
	return nil
}

// RunAsync creates and starts a run, then waits until it completes,
// pauses awaiting an answer, or fails, returning the snapshot it
// reached. A failed run is also reported as an error carrying the
// run's error message. An awaiting run is returned without error; use
// ResumeRun to answer its question.
func (e *Engine) RunAsync(ctx context.Context, agentID, agentName, agentRole, taskDescription string, executor Executor, snapshot *ConfigSnapshot) (*Run, error) {
	run := e.CreateRun(agentID, agentName, agentRole, taskDescription, snapshot)

	done := make(chan *Run, 1)
	var once sync.Once
	var unsubs []func()
	deliver := func(r *Run) {
		if r.ID != run.ID {
			return
		}
		once.Do(func() {
			select {
			case done <- r:
			default:
			}
		})
	}
	unsubs = append(unsubs, e.On(TopicRunCompleted, deliver))
	unsubs = append(unsubs, e.On(TopicRunAwaiting, deliver))
	unsubs = append(unsubs, e.On(TopicRunFailed, deliver))
	defer func() {
		for _, u := range unsubs {
			u()
		}
	}()

	if err := e.StartRun(run.ID, executor); err != nil {
		return nil, err
	}

	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case final := <-done:
		if final.Status == StatusFailed {
			msg := "run failed"
			if final.Error != nil {
				msg = *final.Error
			}
			return final, fmt.Errorf("runengine: run %s: %s", final.ID, msg)
		}
		return final, nil
	}
}

// GetRun returns a copy of the run with the given ID.
func (e *Engine) GetRun(runID string) (*Run, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	run, ok := e.runs[runID]
	if !ok {
		return nil, false
	}
	return run.Clone(), true
}

// GetAllRuns returns copies of every run, oldest first.
func (e *Engine) GetAllRuns() []*Run {
	e.mu.Lock()
	defer e.mu.Unlock()
	out := make([]*Run, 0, len(e.order))
	for _, id := range e.order {
		out = append(out, e.runs[id].Clone())
	}
	return out
}

// GetRunsByAgent returns copies of every run created for agentID,
// oldest first.
func (e *Engine) GetRunsByAgent(agentID string) []*Run {
	e.mu.Lock()
	defer e.mu.Unlock()
	out := make([]*Run, 0)
	for _, id := range e.order {
		if r := e.runs[id]; r.AgentID == agentID {
			out = append(out, r.Clone())
		}
	}
	return out
}

// transition validates runID is in the `want` status and applies
// mutate to the stored record, returning a snapshot of the result.
func (e *Engine) transition(runID string, want Status, mutate func(*Run)) (*Run, error) {
	e.mu.Lock()
	run, ok := e.runs[runID]
	if !ok {
		e.mu.Unlock()
		return nil, errRunNotFound(runID)
	}
	if run.Status != want {
		got := run.Status
		e.mu.Unlock()
		return nil, errInvalidStatus(runID, got, want)
	}
	mutate(run)
	snapshot := run.Clone()
	e.mu.Unlock()
	return snapshot, nil
}

// runPostStart schedules the work behind a just-started or
// just-resumed run. allowAwait is false on resume: a question
// outcome is coerced into a result rather than re-pausing the run.
func (e *Engine) runPostStart(runID string, executor Executor, allowAwait bool) {
	if executor != nil {
		e.submit(func() {
			outcome, err := executor(context.Background())
			if err != nil {
				e.fail(runID, err.Error())
				return
			}
			if !allowAwait && outcome.Kind == KindQuestion {
				outcome = Result(outcome.Text)
			}
			e.resolve(runID, outcome)
		})
		return
	}

	delay := e.cfg.delayFn(e.cfg.minDelay, e.cfg.maxDelay)
	time.AfterFunc(delay, func() {
		e.submit(func() { e.resolveMock(runID, allowAwait) })
	})
}

func (e *Engine) resolveMock(runID string, allowAwait bool) {
	run, ok := e.GetRun(runID)
	if !ok {
		return
	}

	svc := e.mockServiceFor(run)
	if allowAwait && rand.Float64() < e.cfg.mockQuestionProbability {
		e.resolve(runID, Question(svc.GenerateQuestion(run.TaskDescription)))
		return
	}
	e.resolve(runID, Result(svc.GenerateResult(run.TaskDescription)))
}

func (e *Engine) mockServiceFor(run *Run) *mockllm.MockLLMService {
	var opts []mockllm.Option
	if run.ConfigSnapshot != nil {
		if run.ConfigSnapshot.Goal != "" {
			opts = append(opts, mockllm.WithGoal(run.ConfigSnapshot.Goal))
		}
		if run.ConfigSnapshot.Persona != "" {
			opts = append(opts, mockllm.WithPersona(run.ConfigSnapshot.Persona))
		}
	}
	return mockllm.NewMockLLMService(run.AgentName, run.AgentRole, opts...)
}

func (e *Engine) resolve(runID string, outcome Outcome) {
	var run *Run
	var err error
	switch outcome.Kind {
	case KindQuestion:
		run, err = e.transition(runID, StatusRunning, func(r *Run) {
			now := time.Now()
			r.Status = StatusAwaiting
			r.Question = &outcome.Text
			r.CompletedAt = &now
		})
	default:
		run, err = e.transition(runID, StatusRunning, func(r *Run) {
			now := time.Now()
			r.Status = StatusCompleted
			r.Result = &outcome.Text
			r.CompletedAt = &now
		})
	}
	if err != nil {
		log.Errorf("runengine: resolve run %s: %v", runID, err)
		return
	}

	if run.Status == StatusAwaiting {
		e.bus.Emit(TopicRunAwaiting, run.Clone())
		return
	}

	e.endSpan(run, codes.Ok, "")
	e.recordTerminal(run)
	e.bus.Emit(TopicRunCompleted, run.Clone())
}

func (e *Engine) fail(runID, message string) {
	run, err := e.transition(runID, StatusRunning, func(r *Run) {
		now := time.Now()
		r.Status = StatusFailed
		r.Error = &message
		r.CompletedAt = &now
	})
	if err != nil {
		log.Errorf("runengine: fail run %s: %v", runID, err)
		return
	}

	e.endSpan(run, codes.Error, message)
	e.recordTerminal(run)
	e.bus.Emit(TopicRunFailed, run.Clone())
}

func (e *Engine) submit(fn func()) {
	if err := e.pool.Submit(fn); err != nil {
		log.Errorf("runengine: worker pool rejected task, running inline: %v", err)
		fn()
	}
}

func (e *Engine) startSpan(run *Run) {
	ctx := context.Background()
	_, span := e.cfg.tracer.Start(ctx, "run",
		trace.WithAttributes(
			attribute.String("run.id", run.ID),
			attribute.String("run.agent_id", run.AgentID),
		),
	)
	e.mu.Lock()
	e.spans[run.ID] = span
	e.mu.Unlock()
}

func (e *Engine) endSpan(run *Run, code codes.Code, message string) {
	e.mu.Lock()
	span, ok := e.spans[run.ID]
	delete(e.spans, run.ID)
	e.mu.Unlock()
	if !ok {
		return
	}
	span.SetStatus(code, message)
	span.End()
}

func (e *Engine) recordTerminal(run *Run) {
	ctx := context.Background()
	e.inst.completed.Add(ctx, 1, metric.WithAttributes(attribute.String("status", string(run.Status))))
	if run.StartedAt != nil && run.CompletedAt != nil {
		e.inst.duration.Record(ctx, run.CompletedAt.Sub(*run.StartedAt).Seconds())
	}
}
