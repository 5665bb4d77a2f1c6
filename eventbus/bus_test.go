package eventbus_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"agentverse/eventbus"
)

func TestOnEmitInOrder(t *testing.T) {
	bus := eventbus.New[int]()
	var got []int
	bus.On("t", func(p int) { got = append(got, p*10) })
	bus.On("t", func(p int) { got = append(got, p*100) })

	bus.Emit("t", 1)

	assert.Equal(t, []int{10, 100}, got)
}

func TestUnsubscribeClosureRemovesHandler(t *testing.T) {
	bus := eventbus.New[string]()
	calls := 0
	unsub := bus.On("t", func(string) { calls++ })

	bus.Emit("t", "a")
	unsub()
	bus.Emit("t", "b")

	assert.Equal(t, 1, calls)
}

func TestOffIsNoopWhenHandlerNotRegistered(t *testing.T) {
	bus := eventbus.New[string]()
	bus.Off("t", func(string) {}) // must not panic
}

func TestEmitDoesNotDeliverToHandlersAddedDuringDispatch(t *testing.T) {
	bus := eventbus.New[int]()
	lateCalls := 0
	bus.On("t", func(int) {
		bus.On("t", func(int) { lateCalls++ })
	})

	bus.Emit("t", 1)
	assert.Equal(t, 0, lateCalls, "handler added mid-emit must not see the in-flight event")

	bus.Emit("t", 2)
	assert.Equal(t, 1, lateCalls, "handler added mid-emit should see the next event")
}

func TestEmitContinuesAfterSubscriberPanic(t *testing.T) {
	bus := eventbus.New[int]()
	var secondCalled bool
	bus.On("t", func(int) { panic("boom") })
	bus.On("t", func(int) { secondCalled = true })

	require.NotPanics(t, func() { bus.Emit("t", 1) })
	assert.True(t, secondCalled, "panicking subscriber must not block later subscribers")
}

func TestEmitOnUnknownTopicIsNoop(t *testing.T) {
	bus := eventbus.New[int]()
	require.NotPanics(t, func() { bus.Emit("nope", 1) })
}
