// Package event
package event

import (
	"reflect"
	"sync"
)

// Listener is invoked with whatever arguments Emit was given. Arity is not
// checked; a listener is free to ignore trailing arguments.
type Listener func(args ...any)

type entry struct {
	fn   Listener
	once bool
}

// Registry maps event names to ordered listener lists. Dispatch is
// synchronous and runs in the caller's goroutine; listeners run in
// registration order. All methods are safe for concurrent use, and a
// listener may call back into the registry during a dispatch pass.
type Registry struct {
	mu        sync.Mutex
	listeners map[string][]entry
}

func NewRegistry() *Registry {
	return &Registry{
		listeners: make(map[string][]entry),
	}
}

// On appends fn to the listener list for name. Registering the same
// function twice creates two independent entries.
func (r *Registry) On(name string, fn Listener) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.listeners[name] = append(r.listeners[name], entry{fn: fn})
}

// Once registers fn to run on the next Emit of name only. The entry is
// removed when that dispatch pass snapshots the list, so a re-entrant Emit
// from inside the pass cannot fire it a second time.
func (r *Registry) Once(name string, fn Listener) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.listeners[name] = append(r.listeners[name], entry{fn: fn, once: true})
}

// Off removes the earliest-registered entry for name whose function matches
// fn, and reports whether one was found. Matching is by function identity;
// if the same function was registered more than once, each call removes a
// single entry. Unknown names and unregistered functions are no-ops.
func (r *Registry) Off(name string, fn Listener) bool {
	ptr := reflect.ValueOf(fn).Pointer()

	r.mu.Lock()
	defer r.mu.Unlock()

	entries, ok := r.listeners[name]
	if !ok {
		return false
	}

	for i, e := range entries {
		if reflect.ValueOf(e.fn).Pointer() != ptr {
			continue
		}

		entries = append(entries[:i], entries[i+1:]...)
		if len(entries) == 0 {
			delete(r.listeners, name)
		} else {
			r.listeners[name] = entries
		}
		return true
	}

	return false
}

// RemoveAllListeners drops every listener for the given names, or the whole
// registry when called with no arguments.
func (r *Registry) RemoveAllListeners(names ...string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if len(names) == 0 {
		r.listeners = make(map[string][]entry)
		return
	}

	for _, name := range names {
		delete(r.listeners, name)
	}
}

// Emit synchronously invokes every listener registered for name at the
// moment of the call, in registration order, passing args unmodified to
// each. Listeners added or removed during the pass affect later Emit calls
// only. Emitting a name with no listeners does nothing.
//
// A panic in a listener aborts the pass: listeners after it do not run and
// the panic propagates to Emit's caller.
func (r *Registry) Emit(name string, args ...any) {
	r.mu.Lock()

	entries, ok := r.listeners[name]
	if !ok {
		r.mu.Unlock()
		return
	}

	snapshot := make([]Listener, len(entries))
	remaining := entries[:0:0]
	for i, e := range entries {
		snapshot[i] = e.fn
		if !e.once {
			remaining = append(remaining, e)
		}
	}

	if len(remaining) == 0 {
		delete(r.listeners, name)
	} else if len(remaining) != len(entries) {
		r.listeners[name] = remaining
	}

	r.mu.Unlock()

	for _, fn := range snapshot {
		fn(args...)
	}
}

// ListenerCount reports how many listeners are currently registered for
// name.
func (r *Registry) ListenerCount(name string) int {
	r.mu.Lock()
	defer r.mu.Unlock()

	return len(r.listeners[name])
}

// EventNames returns the names that currently have at least one listener.
func (r *Registry) EventNames() []string {
	r.mu.Lock()
	defer r.mu.Unlock()

	names := make([]string, 0, len(r.listeners))
	for name := range r.listeners {
		names = append(names, name)
	}
	return names
}
