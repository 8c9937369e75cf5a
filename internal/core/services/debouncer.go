package services

import (
	"sync"
	"time"

	"k8s.io/utils/clock"
)

// Debouncer delays propagation of a rapidly changing value.
// Every Set restarts the delay; only the latest value is ever emitted.
type Debouncer[T any] struct {
	clock clock.WithDelayedExecution
	delay time.Duration
	emit  func(T)

	mu      sync.Mutex
	timer   clock.Timer
	value   T
	pending bool
	gen     uint64
	stopped bool
}

// NewDebouncer creates a debouncer that calls emit once the value has been
// stable for delay. A nil clk uses the real clock.
func NewDebouncer[T any](delay time.Duration, clk clock.WithDelayedExecution, emit func(T)) *Debouncer[T] {
	if clk == nil {
		clk = clock.RealClock{}
	}
	return &Debouncer[T]{
		clock: clk,
		delay: delay,
		emit:  emit,
	}
}

// Set records v and restarts the wait.
func (d *Debouncer[T]) Set(v T) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.stopped {
		return
	}

	d.stopTimerLocked()
	d.value = v
	d.pending = true
	d.gen++
	gen := d.gen
	d.timer = d.clock.AfterFunc(d.delay, func() { d.fire(gen) })
}

// fire emits the pending value if no Set, Cancel or Stop happened since gen.
func (d *Debouncer[T]) fire(gen uint64) {
	d.mu.Lock()
	if d.stopped || !d.pending || gen != d.gen {
		d.mu.Unlock()
		return
	}
	v := d.value
	d.pending = false
	d.timer = nil
	d.mu.Unlock()

	d.emit(v)
}

// Flush emits the pending value immediately. It reports whether a value was emitted.
func (d *Debouncer[T]) Flush() bool {
	d.mu.Lock()
	if d.stopped || !d.pending {
		d.mu.Unlock()
		return false
	}
	d.stopTimerLocked()
	v := d.value
	d.pending = false
	d.gen++
	d.mu.Unlock()

	d.emit(v)
	return true
}

// Cancel discards the pending value without emitting it.
func (d *Debouncer[T]) Cancel() {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.stopTimerLocked()
	d.pending = false
	d.gen++
}

// Stop discards the pending value and ignores every later Set.
// A timer that has not fired by the time Stop returns never emits.
func (d *Debouncer[T]) Stop() {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.stopTimerLocked()
	d.pending = false
	d.stopped = true
	d.gen++
}

// Pending reports whether a value is waiting to be emitted.
func (d *Debouncer[T]) Pending() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.pending
}

func (d *Debouncer[T]) stopTimerLocked() {
	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}
}
