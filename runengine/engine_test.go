package runengine_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"agentverse/runengine"
)

func noDelay(min, max time.Duration) time.Duration { return 0 }

// eventRecorder captures emitted topics, in order, across every run so
// tests can assert on emission ordering invariants.
type eventRecorder struct {
	mu     sync.Mutex
	topics []string
}

func (r *eventRecorder) record(topic string) func(*runengine.Run) {
	return func(*runengine.Run) {
		r.mu.Lock()
		r.topics = append(r.topics, topic)
		r.mu.Unlock()
	}
}

func (r *eventRecorder) snapshot() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]string, len(r.topics))
	copy(out, r.topics)
	return out
}

func subscribeAll(e *runengine.Engine, rec *eventRecorder) {
	for _, topic := range []string{
		runengine.TopicRunCreated, runengine.TopicRunStarted, runengine.TopicRunCompleted,
		runengine.TopicRunAwaiting, runengine.TopicRunResumed, runengine.TopicRunFailed,
	} {
		e.On(topic, rec.record(topic))
	}
}

func waitForStatus(t *testing.T, e *runengine.Engine, runID string, want runengine.Status) *runengine.Run {
	t.Helper()
	var run *runengine.Run
	require.Eventually(t, func() bool {
		r, ok := e.GetRun(runID)
		if !ok {
			return false
		}
		run = r
		return r.Status == want
	}, 2*time.Second, time.Millisecond)
	return run
}

// TestHappyPathMockCompletion exercises spec.md §8 scenario 1.
func TestHappyPathMockCompletion(t *testing.T) {
	e, err := runengine.New(runengine.WithDelayFn(noDelay), runengine.WithMockQuestionProbability(0))
	require.NoError(t, err)
	defer e.Close()

	rec := &eventRecorder{}
	subscribeAll(e, rec)

	run := e.CreateRun("agent-alice", "Alice", "Explorer", "Map north sector", nil)
	require.NoError(t, e.StartRun(run.ID, nil))

	final := waitForStatus(t, e, run.ID, runengine.StatusCompleted)
	require.NotNil(t, final.Result)
	assert.Contains(t, *final.Result, "Alice")
	assert.Equal(t, []string{"run:created", "run:started", "run:completed"}, rec.snapshot())
}

// TestMockQuestionThenResume exercises spec.md §8 scenario 2.
func TestMockQuestionThenResume(t *testing.T) {
	e, err := runengine.New(runengine.WithDelayFn(noDelay), runengine.WithMockQuestionProbability(1))
	require.NoError(t, err)
	defer e.Close()

	rec := &eventRecorder{}
	subscribeAll(e, rec)

	run := e.CreateRun("agent-alice", "Alice", "Explorer", "Map north sector", nil)
	require.NoError(t, e.StartRun(run.ID, nil))

	awaiting := waitForStatus(t, e, run.ID, runengine.StatusAwaiting)
	require.NotNil(t, awaiting.Question)
	assert.NotEmpty(t, *awaiting.Question)
	assert.Equal(t, []string{"run:created", "run:started", "run:awaiting"}, rec.snapshot())

	require.NoError(t, e.ResumeRun(run.ID, "proceed", nil))

	final := waitForStatus(t, e, run.ID, runengine.StatusCompleted)
	require.NotNil(t, final.Answer)
	assert.Equal(t, "proceed", *final.Answer)
	assert.Equal(t,
		[]string{"run:created", "run:started", "run:awaiting", "run:resumed", "run:completed"},
		rec.snapshot())
}

// TestExecutorRejection exercises spec.md §8 scenario 3.
func TestExecutorRejection(t *testing.T) {
	e, err := runengine.New()
	require.NoError(t, err)
	defer e.Close()

	rec := &eventRecorder{}
	subscribeAll(e, rec)

	boom := runengine.FromResultFunc(func(ctx context.Context) (string, error) {
		return "", errors.New("boom")
	})

	run := e.CreateRun("agent-alice", "Alice", "Explorer", "Map north sector", nil)
	require.NoError(t, e.StartRun(run.ID, boom))

	final := waitForStatus(t, e, run.ID, runengine.StatusFailed)
	require.NotNil(t, final.Error)
	assert.Equal(t, "boom", *final.Error)
}

// TestRunAsyncRejectsOnFailure checks that RunAsync surfaces the
// executor's failure as an error, per spec.md §8 scenario 3.
func TestRunAsyncRejectsOnFailure(t *testing.T) {
	e, err := runengine.New()
	require.NoError(t, err)
	defer e.Close()

	boom := runengine.FromResultFunc(func(ctx context.Context) (string, error) {
		return "", errors.New("boom")
	})

	_, err = e.RunAsync(context.Background(), "agent-alice", "Alice", "Explorer", "task", boom, nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "boom")
}

// TestResumeCoercesQuestionToResult exercises spec.md §8 scenario 4.
func TestResumeCoercesQuestionToResult(t *testing.T) {
	e, err := runengine.New(runengine.WithDelayFn(noDelay), runengine.WithMockQuestionProbability(1))
	require.NoError(t, err)
	defer e.Close()

	rec := &eventRecorder{}
	subscribeAll(e, rec)

	run := e.CreateRun("agent-alice", "Alice", "Explorer", "Map north sector", nil)
	require.NoError(t, e.StartRun(run.ID, nil))
	waitForStatus(t, e, run.ID, runengine.StatusAwaiting)

	askAgain := func(ctx context.Context) (runengine.Outcome, error) {
		return runengine.Question("x?"), nil
	}
	require.NoError(t, e.ResumeRun(run.ID, "answer", askAgain))

	final := waitForStatus(t, e, run.ID, runengine.StatusCompleted)
	require.NotNil(t, final.Result)
	assert.Equal(t, "x?", *final.Result)

	topics := rec.snapshot()
	assert.NotContains(t, topics, runengine.TopicRunFailed)
	awaitingCount := 0
	for _, topic := range topics {
		if topic == runengine.TopicRunAwaiting {
			awaitingCount++
		}
	}
	assert.Equal(t, 1, awaitingCount, "resume leg must not re-emit run:awaiting")
}

// TestMockQuestionProbabilityZero is the spec.md §8 boundary: zero
// probability never produces an awaiting run.
func TestMockQuestionProbabilityZero(t *testing.T) {
	e, err := runengine.New(runengine.WithDelayFn(noDelay), runengine.WithMockQuestionProbability(0))
	require.NoError(t, err)
	defer e.Close()

	for i := 0; i < 20; i++ {
		run := e.CreateRun("a", "Alice", "Explorer", "task", nil)
		require.NoError(t, e.StartRun(run.ID, nil))
		final := waitForStatus(t, e, run.ID, runengine.StatusCompleted)
		assert.Equal(t, runengine.StatusCompleted, final.Status)
	}
}

// TestMockQuestionProbabilityOne is the spec.md §8 boundary: every
// initial mock run awaits, every resumed mock run completes.
func TestMockQuestionProbabilityOne(t *testing.T) {
	e, err := runengine.New(runengine.WithDelayFn(noDelay), runengine.WithMockQuestionProbability(1))
	require.NoError(t, err)
	defer e.Close()

	for i := 0; i < 10; i++ {
		run := e.CreateRun("a", "Alice", "Explorer", "task", nil)
		require.NoError(t, e.StartRun(run.ID, nil))
		waitForStatus(t, e, run.ID, runengine.StatusAwaiting)

		require.NoError(t, e.ResumeRun(run.ID, "ans", nil))
		final := waitForStatus(t, e, run.ID, runengine.StatusCompleted)
		assert.Equal(t, runengine.StatusCompleted, final.Status)
	}
}

func TestStartRunUnknownIDIsProgrammerError(t *testing.T) {
	e, err := runengine.New()
	require.NoError(t, err)
	defer e.Close()

	err = e.StartRun("no-such-run", nil)
	require.Error(t, err)
	assert.ErrorIs(t, err, runengine.ErrRunNotFound)
}

func TestStartRunTwiceIsProgrammerError(t *testing.T) {
	e, err := runengine.New(runengine.WithDelayFn(noDelay))
	require.NoError(t, err)
	defer e.Close()

	run := e.CreateRun("a", "Alice", "Explorer", "task", nil)
	require.NoError(t, e.StartRun(run.ID, nil))

	err = e.StartRun(run.ID, nil)
	require.Error(t, err)
	assert.ErrorIs(t, err, runengine.ErrInvalidStatus)
}

func TestResumeRunNotAwaitingIsProgrammerError(t *testing.T) {
	e, err := runengine.New()
	require.NoError(t, err)
	defer e.Close()

	run := e.CreateRun("a", "Alice", "Explorer", "task", nil)
	before, _ := e.GetRun(run.ID)

	err = e.ResumeRun(run.ID, "answer", nil)
	require.Error(t, err)
	assert.ErrorIs(t, err, runengine.ErrInvalidStatus)

	after, _ := e.GetRun(run.ID)
	assert.Equal(t, before.Status, after.Status, "a failed precondition must not mutate run state")
	assert.Nil(t, after.Answer)
}

func TestGetAllRunsPreservesInsertionOrder(t *testing.T) {
	e, err := runengine.New()
	require.NoError(t, err)
	defer e.Close()

	r1 := e.CreateRun("a", "Alice", "Explorer", "t1", nil)
	r2 := e.CreateRun("a", "Alice", "Explorer", "t2", nil)
	r3 := e.CreateRun("b", "Bob", "Scout", "t3", nil)

	all := e.GetAllRuns()
	require.Len(t, all, 3)
	assert.Equal(t, []string{r1.ID, r2.ID, r3.ID}, []string{all[0].ID, all[1].ID, all[2].ID})

	byAgent := e.GetRunsByAgent("a")
	require.Len(t, byAgent, 2)
	assert.Equal(t, r1.ID, byAgent[0].ID)
	assert.Equal(t, r2.ID, byAgent[1].ID)
}

func TestRunTimestampOrdering(t *testing.T) {
	e, err := runengine.New(runengine.WithDelayFn(noDelay), runengine.WithMockQuestionProbability(0))
	require.NoError(t, err)
	defer e.Close()

	run := e.CreateRun("a", "Alice", "Explorer", "task", nil)
	require.NoError(t, e.StartRun(run.ID, nil))
	final := waitForStatus(t, e, run.ID, runengine.StatusCompleted)

	require.NotNil(t, final.StartedAt)
	require.NotNil(t, final.CompletedAt)
	assert.False(t, final.StartedAt.Before(final.CreatedAt))
	assert.False(t, final.CompletedAt.Before(*final.StartedAt))
}

func TestRunSnapshotIsIndependentOfEngineState(t *testing.T) {
	e, err := runengine.New()
	require.NoError(t, err)
	defer e.Close()

	run := e.CreateRun("a", "Alice", "Explorer", "task", nil)
	run.AgentName = "Mutated"

	stored, ok := e.GetRun(run.ID)
	require.True(t, ok)
	assert.Equal(t, "Alice", stored.AgentName, "mutating a returned snapshot must not affect engine state")
}

func TestConfigSnapshotDrivesRealisticGeneration(t *testing.T) {
	e, err := runengine.New(runengine.WithDelayFn(noDelay), runengine.WithMockQuestionProbability(0))
	require.NoError(t, err)
	defer e.Close()

	snapshot := &runengine.ConfigSnapshot{
		ID: "a", Name: "Alice", Role: "Explorer",
		Goal: "Map all unexplored areas", ConfigVersion: 1,
	}
	run := e.CreateRun("a", "Alice", "Explorer", "Map the north sector", snapshot)
	require.NoError(t, e.StartRun(run.ID, nil))

	final := waitForStatus(t, e, run.ID, runengine.StatusCompleted)
	require.NotNil(t, final.Result)
	assert.Contains(t, *final.Result, snapshot.Goal)
}
