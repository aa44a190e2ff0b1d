package eventloop

import (
	"context"
	"testing"
	"time"
)

func TestMicrotasksRunBeforeTasks(t *testing.T) {
	loop := New()

	var order []string
	loop.QueueTask(func() { order = append(order, "task") })
	loop.QueueMicrotask(func() { order = append(order, "micro") })

	loop.RunOnce()

	if len(order) != 2 || order[0] != "micro" || order[1] != "task" {
		t.Errorf("expected micro then task, got %v", order)
	}
}

func TestTickDrainsChainedMicrotasks(t *testing.T) {
	loop := New()

	var order []string
	loop.QueueMicrotask(func() {
		order = append(order, "first")
		loop.QueueMicrotask(func() { order = append(order, "second") })
	})

	loop.Tick()

	if len(order) != 2 || order[1] != "second" {
		t.Errorf("expected chained microtasks drained in one tick, got %v", order)
	}
}

func TestTickLeavesTasksQueued(t *testing.T) {
	loop := New()

	ran := false
	loop.QueueTask(func() { ran = true })
	loop.Tick()

	if ran {
		t.Error("expected Tick not to run macrotasks")
	}
	if !loop.HasPending() {
		t.Error("expected the macrotask to remain queued")
	}
}

func TestRunOnceRunsOneTask(t *testing.T) {
	loop := New()

	count := 0
	loop.QueueTask(func() { count++ })
	loop.QueueTask(func() { count++ })

	loop.RunOnce()
	if count != 1 {
		t.Errorf("expected one macrotask per RunOnce, ran %d", count)
	}
	loop.RunOnce()
	if count != 2 {
		t.Errorf("expected the second macrotask to run, ran %d", count)
	}
}

func TestFlushRunsEverything(t *testing.T) {
	loop := New()

	count := 0
	loop.QueueTask(func() {
		count++
		loop.QueueMicrotask(func() { count++ })
	})
	loop.QueueTask(func() { count++ })

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	if err := loop.Flush(ctx); err != nil {
		t.Fatalf("unexpected error flushing: %v", err)
	}

	if count != 3 {
		t.Errorf("expected all queued work to run, ran %d", count)
	}
	if loop.HasPending() {
		t.Error("expected no pending work after Flush")
	}
}

func TestClearDropsQueuedWork(t *testing.T) {
	loop := New()

	loop.QueueMicrotask(func() { t.Error("cleared microtask must not run") })
	loop.QueueTask(func() { t.Error("cleared task must not run") })

	loop.Clear()
	if loop.HasPending() {
		t.Error("expected no pending work after Clear")
	}
	loop.RunOnce()
}
