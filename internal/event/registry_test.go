package event

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOnPreservesRegistrationOrder(t *testing.T) {
	r := NewRegistry()

	var calls []string
	r.On("greet", func(args ...any) { calls = append(calls, "hi") })
	r.On("greet", func(args ...any) { calls = append(calls, "hello") })

	r.Emit("greet")

	assert.Equal(t, []string{"hi", "hello"}, calls)
}

func TestEmitWithoutListenersIsNoop(t *testing.T) {
	r := NewRegistry()

	assert.NotPanics(t, func() {
		r.Emit("missing", 1, 2, 3)
	})
}

func TestRegistrationDoesNotDispatch(t *testing.T) {
	r := NewRegistry()

	called := false
	r.On("ping", func(args ...any) { called = true })
	r.Once("ping", func(args ...any) { called = true })

	assert.False(t, called)
}

func TestOnceFiresExactlyOnce(t *testing.T) {
	r := NewRegistry()

	count := 0
	r.Once("start", func(args ...any) { count++ })

	r.Emit("start")
	r.Emit("start")

	assert.Equal(t, 1, count)
	assert.Zero(t, r.ListenerCount("start"))
}

func TestOnceDoesNotSkipSiblings(t *testing.T) {
	r := NewRegistry()

	var calls []string
	r.Once("tick", func(args ...any) { calls = append(calls, "a") })
	r.On("tick", func(args ...any) { calls = append(calls, "b") })
	r.Once("tick", func(args ...any) { calls = append(calls, "c") })

	r.Emit("tick")
	assert.Equal(t, []string{"a", "b", "c"}, calls)

	r.Emit("tick")
	assert.Equal(t, []string{"a", "b", "c", "b"}, calls)
}

func TestOffRemovesListener(t *testing.T) {
	r := NewRegistry()

	count := 0
	fn := func(args ...any) { count++ }
	r.On("job", fn)

	require.True(t, r.Off("job", fn))
	require.False(t, r.Off("job", fn))

	r.Emit("job")
	assert.Zero(t, count)
}

func TestOffUnknownEventReturnsFalse(t *testing.T) {
	r := NewRegistry()

	assert.False(t, r.Off("nope", func(args ...any) {}))
}

func TestOffRemovesOneEntryPerCall(t *testing.T) {
	r := NewRegistry()

	count := 0
	fn := func(args ...any) { count++ }
	r.On("job", fn)
	r.On("job", fn)

	require.True(t, r.Off("job", fn))
	r.Emit("job")
	assert.Equal(t, 1, count)

	require.True(t, r.Off("job", fn))
	require.False(t, r.Off("job", fn))
}

func TestDuplicateRegistrationFiresTwice(t *testing.T) {
	r := NewRegistry()

	count := 0
	fn := func(args ...any) { count++ }
	r.On("job", fn)
	r.On("job", fn)

	r.Emit("job")
	assert.Equal(t, 2, count)
}

func TestRemoveAllListenersForOneEvent(t *testing.T) {
	r := NewRegistry()

	count := 0
	r.On("a", func(args ...any) { count++ })
	r.Once("a", func(args ...any) { count++ })
	r.On("b", func(args ...any) { count++ })

	r.RemoveAllListeners("a")

	r.Emit("a")
	r.Emit("b")
	assert.Equal(t, 1, count)
}

func TestRemoveAllListenersClearsRegistry(t *testing.T) {
	r := NewRegistry()

	count := 0
	r.On("a", func(args ...any) { count++ })
	r.On("b", func(args ...any) { count++ })

	r.RemoveAllListeners()

	r.Emit("a")
	r.Emit("b")
	assert.Zero(t, count)
	assert.Empty(t, r.EventNames())
}

func TestListenerRegisteredDuringDispatchRunsNextPass(t *testing.T) {
	r := NewRegistry()

	var calls []string
	r.On("evt", func(args ...any) {
		calls = append(calls, "outer")
		r.On("evt", func(args ...any) {
			calls = append(calls, "inner")
		})
	})

	r.Emit("evt")
	assert.Equal(t, []string{"outer"}, calls)

	r.Emit("evt")
	assert.Equal(t, []string{"outer", "outer", "inner"}, calls)
}

func TestListenerRemovedDuringDispatchStillRunsThisPass(t *testing.T) {
	r := NewRegistry()

	var calls []string
	var second Listener
	second = func(args ...any) { calls = append(calls, "second") }

	r.On("evt", func(args ...any) {
		calls = append(calls, "first")
		r.Off("evt", second)
	})
	r.On("evt", second)

	r.Emit("evt")
	assert.Equal(t, []string{"first", "second"}, calls)

	r.Emit("evt")
	assert.Equal(t, []string{"first", "second", "first"}, calls)
}

func TestPanicAbortsRemainingListeners(t *testing.T) {
	r := NewRegistry()

	var calls []string
	r.On("evt", func(args ...any) { calls = append(calls, "one") })
	r.On("evt", func(args ...any) { panic("listener failure") })
	r.On("evt", func(args ...any) { calls = append(calls, "three") })

	require.PanicsWithValue(t, "listener failure", func() {
		r.Emit("evt", "a", "b")
	})

	assert.Equal(t, []string{"one"}, calls)
}

func TestEmitPassesArgumentsUnmodified(t *testing.T) {
	r := NewRegistry()

	var got [][]any
	fn := func(args ...any) { got = append(got, args) }
	r.On("evt", fn)
	r.On("evt", fn)

	r.Emit("evt", 1, 2, 3)

	require.Len(t, got, 2)
	assert.Equal(t, []any{1, 2, 3}, got[0])
	assert.Equal(t, []any{1, 2, 3}, got[1])
}

func TestEmitWithNoArguments(t *testing.T) {
	r := NewRegistry()

	var got []any = []any{"sentinel"}
	r.On("evt", func(args ...any) { got = args })

	r.Emit("evt")
	assert.Empty(t, got)
}

func TestOnceRemovedBeforeReentrantEmit(t *testing.T) {
	r := NewRegistry()

	count := 0
	r.Once("evt", func(args ...any) {
		count++
		if count == 1 {
			r.Emit("evt")
		}
	})

	r.Emit("evt")
	assert.Equal(t, 1, count)
}

func TestListenerCount(t *testing.T) {
	r := NewRegistry()

	assert.Zero(t, r.ListenerCount("evt"))

	r.On("evt", func(args ...any) {})
	r.Once("evt", func(args ...any) {})
	assert.Equal(t, 2, r.ListenerCount("evt"))

	r.Emit("evt")
	assert.Equal(t, 1, r.ListenerCount("evt"))
}

func TestEventNames(t *testing.T) {
	r := NewRegistry()

	r.On("a", func(args ...any) {})
	r.Once("b", func(args ...any) {})

	assert.ElementsMatch(t, []string{"a", "b"}, r.EventNames())

	r.Emit("b")
	assert.ElementsMatch(t, []string{"a"}, r.EventNames())
}

func TestConcurrentRegistrationAndDispatch(t *testing.T) {
	r := NewRegistry()

	var mu sync.Mutex
	count := 0
	fn := func(args ...any) {
		mu.Lock()
		count++
		mu.Unlock()
	}

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				r.On("evt", fn)
				r.Emit("evt")
				r.Off("evt", fn)
			}
		}()
	}
	wg.Wait()

	mu.Lock()
	defer mu.Unlock()
	assert.Positive(t, count)
}
