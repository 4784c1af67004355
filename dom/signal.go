package dom

import (
	"fmt"
	"sync"
	"sync/atomic"
)

// Signal is a stream of values. Subscribe calls fn with the current value and
// again on every change until the returned cancel function is called.
type Signal[T any] interface {
	Subscribe(fn func(T)) (cancel func())
}

// Unbind removes a subscription.
type Unbind func()

var subscriptionID atomic.Uint64

// Mutable wraps a value and notifies subscribers when it changes.
// Component parameters declared reactive are passed as *Mutable[T].
type Mutable[T any] struct {
	mu    sync.RWMutex
	value T
	subs  []*subscription[T]
}

type subscription[T any] struct {
	id     uint64
	fn     func(T)
	active bool
}

// NewMutable creates a Mutable holding initial.
func NewMutable[T any](initial T) *Mutable[T] {
	return &Mutable[T]{value: initial}
}

// Get returns the current value.
func (m *Mutable[T]) Get() T {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.value
}

// Set stores v and runs every active subscriber in subscription order.
func (m *Mutable[T]) Set(v T) {
	m.mu.Lock()
	m.value = v
	active := make([]*subscription[T], 0, len(m.subs))
	for _, s := range m.subs {
		if s.active {
			active = append(active, s)
		}
	}
	m.subs = active
	m.mu.Unlock()

	for _, s := range active {
		s.fn(v)
	}
}

// Update applies fn to the current value and stores the result.
func (m *Mutable[T]) Update(fn func(T) T) {
	m.Set(fn(m.Get()))
}

// Bind registers fn to run on every change. It does not fire for the
// current value.
func (m *Mutable[T]) Bind(fn func(T)) Unbind {
	s := &subscription[T]{id: subscriptionID.Add(1), fn: fn, active: true}
	m.mu.Lock()
	m.subs = append(m.subs, s)
	m.mu.Unlock()

	return func() {
		m.mu.Lock()
		defer m.mu.Unlock()
		s.active = false
	}
}

// Clone returns the same Mutable. Handlers that capture a Mutable under the
// move ownership discipline call Clone to obtain their own handle.
func (m *Mutable[T]) Clone() *Mutable[T] {
	return m
}

// Signal returns a stream of the Mutable's values.
func (m *Mutable[T]) Signal() Signal[T] {
	return mutableSignal[T]{m}
}

// SignalCloned is an alias of Signal kept for handlers written against a
// cloning runtime.
func (m *Mutable[T]) SignalCloned() Signal[T] {
	return m.Signal()
}

type mutableSignal[T any] struct {
	m *Mutable[T]
}

func (s mutableSignal[T]) Subscribe(fn func(T)) func() {
	fn(s.m.Get())
	return s.m.Bind(fn)
}

// Map derives a stream by applying fn to every value of src.
func Map[T, U any](src Signal[T], fn func(T) U) Signal[U] {
	return mapSignal[T, U]{src: src, fn: fn}
}

type mapSignal[T, U any] struct {
	src Signal[T]
	fn  func(T) U
}

func (s mapSignal[T, U]) Subscribe(fn func(U)) func() {
	return s.src.Subscribe(func(v T) { fn(s.fn(v)) })
}

// Format renders each value of src with fmt's default formatting.
func Format[T any](src Signal[T]) Signal[string] {
	return Map(src, func(v T) string { return fmt.Sprint(v) })
}
