package scheduler_test

import (
	"context"
	"fmt"
	"sync/atomic"
	"testing"
	"time"

	"github.com/gauntlet-bench/gauntlet/internal/catalog"
	"github.com/gauntlet-bench/gauntlet/internal/result"
	"github.com/gauntlet-bench/gauntlet/internal/scheduler"
)

// fakeExecutor lets tests observe scheduling behavior without spawning
// processes.
type fakeExecutor struct {
	delay   time.Duration
	active  atomic.Int32
	maxSeen atomic.Int32
}

func (f *fakeExecutor) Run(ctx context.Context, task catalog.Task) result.Result {
	if ctx.Err() != nil {
		return result.Result{Name: task.Name, Category: string(task.Category), MaxScore: 100, Error: "cancelled"}
	}
	n := f.active.Add(1)
	for {
		max := f.maxSeen.Load()
		if n <= max || f.maxSeen.CompareAndSwap(max, n) {
			break
		}
	}
	if f.delay > 0 {
		select {
		case <-time.After(f.delay):
		case <-ctx.Done():
			f.active.Add(-1)
			return result.Result{Name: task.Name, Category: string(task.Category), MaxScore: 100, Error: "cancelled"}
		}
	}
	f.active.Add(-1)
	return result.Result{
		Name:            task.Name,
		Category:        string(task.Category),
		Score:           80,
		MaxScore:        100,
		NormalizedScore: 80,
		Weight:          task.Weight,
		Confidence:      task.Confidence,
	}
}

func makeTasks(n int, profile catalog.Profile) []catalog.Task {
	tasks := make([]catalog.Task, n)
	for i := range tasks {
		tasks[i] = catalog.Task{
			Name:       fmt.Sprintf("task-%d", i),
			Category:   catalog.DevAI,
			Profile:    profile,
			Weight:     0.1,
			Confidence: 1.0,
		}
	}
	return tasks
}

func TestRunProducesOneResultPerTask(t *testing.T) {
	sched, err := scheduler.New(scheduler.Options{Workers: 4, Executor: &fakeExecutor{}})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	tasks := makeTasks(20, catalog.IOBound)
	results := sched.Run(context.Background(), tasks)
	if len(results) != len(tasks) {
		t.Fatalf("expected %d results, got %d", len(tasks), len(results))
	}
	for i, r := range results {
		if r.Name != tasks[i].Name {
			t.Errorf("result %d: got %q, want %q (positional stability)", i, r.Name, tasks[i].Name)
		}
	}
}

func TestIOPoolBound(t *testing.T) {
	exec := &fakeExecutor{delay: 20 * time.Millisecond}
	sched, err := scheduler.New(scheduler.Options{Workers: 3, Executor: exec})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	sched.Run(context.Background(), makeTasks(12, catalog.IOBound))
	if max := exec.maxSeen.Load(); max > 3 {
		t.Errorf("io pool ran %d tasks concurrently, budget is 3", max)
	}
}

func TestCPUPoolIsHalfBudget(t *testing.T) {
	exec := &fakeExecutor{delay: 20 * time.Millisecond}
	sched, err := scheduler.New(scheduler.Options{Workers: 4, Executor: exec})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	sched.Run(context.Background(), makeTasks(12, catalog.CPUBound))
	if max := exec.maxSeen.Load(); max > 2 {
		t.Errorf("cpu pool ran %d tasks concurrently, expected at most 2", max)
	}
}

func TestCancelledContextStillYieldsResults(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	sched, err := scheduler.New(scheduler.Options{Workers: 2, Executor: &fakeExecutor{}})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	tasks := makeTasks(8, catalog.IOBound)
	results := sched.Run(ctx, tasks)
	if len(results) != len(tasks) {
		t.Fatalf("expected %d results, got %d", len(tasks), len(results))
	}
	for _, r := range results {
		if r.Error != "cancelled" {
			t.Errorf("%s: expected cancelled, got %q", r.Name, r.Error)
		}
	}
}

func TestMidRunCancellationRetainsCompleted(t *testing.T) {
	exec := &fakeExecutor{delay: 50 * time.Millisecond}
	sched, err := scheduler.New(scheduler.Options{Workers: 2, Executor: exec})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	ctx, cancel := context.WithTimeout(context.Background(), 75*time.Millisecond)
	defer cancel()
	results := sched.Run(ctx, makeTasks(10, catalog.IOBound))
	var completed, cancelled int
	for _, r := range results {
		switch r.Error {
		case "":
			completed++
		case "cancelled":
			cancelled++
		default:
			t.Errorf("%s: unexpected error %q", r.Name, r.Error)
		}
	}
	if completed == 0 {
		t.Error("expected some tasks to complete before the deadline")
	}
	if cancelled == 0 {
		t.Error("expected some tasks to be cancelled by the deadline")
	}
	if completed+cancelled != 10 {
		t.Errorf("lost tasks: %d completed + %d cancelled != 10", completed, cancelled)
	}
}

func TestNewRejectsZeroWorkers(t *testing.T) {
	if _, err := scheduler.New(scheduler.Options{Workers: 0}); err == nil {
		t.Error("expected error for zero worker budget")
	}
}
