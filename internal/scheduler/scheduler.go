// Package scheduler executes a task list under a bounded concurrency
// budget, producing exactly one Result per task regardless of failures.
package scheduler

import (
	"context"
	"fmt"
	"log"
	"sync"
	"sync/atomic"
	"time"

	"github.com/gauntlet-bench/gauntlet/internal/catalog"
	"github.com/gauntlet-bench/gauntlet/internal/metrics"
	"github.com/gauntlet-bench/gauntlet/internal/result"
)

type Options struct {
	// Workers is the total concurrency budget. The I/O pool runs this many
	// tasks at once; the CPU pool is sized at half of it, since CPU-bound
	// benchmark processes contend for machine cores while I/O-bound ones
	// mostly wait.
	Workers     int
	TaskTimeout time.Duration
	Grace       time.Duration
	Executor    Executor // defaults to a ProcessExecutor
	Log         *log.Logger
}

type Scheduler struct {
	cpuSlots chan struct{}
	ioSlots  chan struct{}
	exec     Executor
	log      *log.Logger
}

func New(opts Options) (*Scheduler, error) {
	if opts.Workers < 1 {
		return nil, fmt.Errorf("worker budget must be at least 1, got %d", opts.Workers)
	}
	cpuWorkers := opts.Workers / 2
	if cpuWorkers < 1 {
		cpuWorkers = 1
	}
	executor := opts.Executor
	if executor == nil {
		executor = &ProcessExecutor{Timeout: opts.TaskTimeout, Grace: opts.Grace}
	}
	logger := opts.Log
	if logger == nil {
		logger = log.Default()
	}
	return &Scheduler{
		cpuSlots: make(chan struct{}, cpuWorkers),
		ioSlots:  make(chan struct{}, opts.Workers),
		exec:     executor,
		log:      logger,
	}, nil
}

// Run executes every task exactly once and returns one Result per task, in
// task order. Tasks never block each other beyond pool capacity, and a
// task's failure or hang is invisible to its siblings. Cancelling ctx stops
// unstarted and in-flight work; their Results carry error "cancelled" while
// completed Results are retained.
func (s *Scheduler) Run(ctx context.Context, tasks []catalog.Task) []result.Result {
	results := make([]result.Result, len(tasks))
	var wg sync.WaitGroup
	var done atomic.Int64

	for i, task := range tasks {
		wg.Add(1)
		go func(i int, task catalog.Task) {
			defer wg.Done()

			if ctx.Err() != nil {
				results[i] = failed(newResult(task), "cancelled")
				return
			}
			slots := s.ioSlots
			if task.Profile == catalog.CPUBound {
				slots = s.cpuSlots
			}
			select {
			case slots <- struct{}{}:
				defer func() { <-slots }()
			case <-ctx.Done():
				results[i] = failed(newResult(task), "cancelled")
				return
			}

			s.log.Printf("starting %s (%s)", task.Name, task.Category)
			metrics.TasksStarted.WithLabelValues(string(task.Category)).Inc()
			metrics.TasksActive.Inc()

			r := s.exec.Run(ctx, task)

			metrics.TasksActive.Dec()
			metrics.TaskDuration.WithLabelValues(r.Category).Observe(r.ExecutionTime)
			if r.Failed() {
				metrics.TasksFailed.WithLabelValues(r.Category, failureReason(r.Error)).Inc()
			} else {
				metrics.TasksCompleted.WithLabelValues(r.Category).Inc()
			}

			results[i] = r

			n := done.Add(1)
			if r.Failed() {
				s.log.Printf("failed %s (%d/%d): %s", task.Name, n, len(tasks), r.Error)
			} else {
				s.log.Printf("completed %s (%d/%d): %.1f/100 in %.1fs", task.Name, n, len(tasks), r.NormalizedScore, r.ExecutionTime)
			}
		}(i, task)
	}

	wg.Wait()
	return results
}

func failureReason(msg string) string {
	switch msg {
	case "timeout", "cancelled":
		return msg
	default:
		return "error"
	}
}
