// Package eventloop provides the cooperative scheduler the suite runs
// on: microtask and macrotask queues drained from a single goroutine.
package eventloop

import (
	"context"
	"sync"
)

// Loop manages the microtask and macrotask queues.
type Loop struct {
	microtasks []func()
	macrotasks []func()
	mu         sync.Mutex
}

// New creates a new event loop.
func New() *Loop {
	return &Loop{
		microtasks: make([]func(), 0),
		macrotasks: make([]func(), 0),
	}
}

// QueueMicrotask adds a microtask to the queue.
// Microtasks are executed before the next macrotask.
func (l *Loop) QueueMicrotask(fn func()) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.microtasks = append(l.microtasks, fn)
}

// QueueTask adds a macrotask to the queue.
// Macrotasks are executed after all microtasks are complete.
func (l *Loop) QueueTask(fn func()) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.macrotasks = append(l.macrotasks, fn)
}

// RunOnce processes one iteration of the loop: it drains all
// microtasks, then executes one macrotask. Returns true if there are
// more tasks to process.
func (l *Loop) RunOnce() bool {
	l.drainMicrotasks()

	l.mu.Lock()
	if len(l.macrotasks) > 0 {
		fn := l.macrotasks[0]
		l.macrotasks = l.macrotasks[1:]
		l.mu.Unlock()
		fn()
		return true
	}
	l.mu.Unlock()

	return l.HasPending()
}

// Tick runs one scheduling tick: all currently queued microtasks plus
// any they enqueue. This is the "wait one tick" primitive fixtures use
// to defer work past the current render.
func (l *Loop) Tick() {
	l.drainMicrotasks()
}

func (l *Loop) drainMicrotasks() {
	for {
		l.mu.Lock()
		if len(l.microtasks) == 0 {
			l.mu.Unlock()
			return
		}
		fn := l.microtasks[0]
		l.microtasks = l.microtasks[1:]
		l.mu.Unlock()

		fn()
	}
}

// Flush runs the loop until both queues are empty or the context is done.
func (l *Loop) Flush(ctx context.Context) error {
	for l.RunOnce() {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}
	}
	return nil
}

// HasPending returns true if there are any queued tasks.
func (l *Loop) HasPending() bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.microtasks) > 0 || len(l.macrotasks) > 0
}

// Clear removes all pending tasks without running them.
func (l *Loop) Clear() {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.microtasks = l.microtasks[:0]
	l.macrotasks = l.macrotasks[:0]
}
