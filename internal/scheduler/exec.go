package scheduler

import (
	"bytes"
	"context"
	"encoding/json"
	"os/exec"
	"strings"
	"time"

	"github.com/gauntlet-bench/gauntlet/internal/catalog"
	"github.com/gauntlet-bench/gauntlet/internal/result"
)

const (
	// DefaultTimeout bounds a single task's wall clock.
	DefaultTimeout = 120 * time.Minute
	// DefaultGrace is how long a task gets between termination signal and
	// forceful kill. Some benchmark runners trap the signal to flush
	// partial output.
	DefaultGrace = 5 * time.Second
)

// Executor runs one task and produces its Result. It never returns an
// error: every failure mode is absorbed into the Result.
type Executor interface {
	Run(ctx context.Context, task catalog.Task) result.Result
}

// ProcessExecutor implements the external program contract: invoke the
// task's command with flattened arguments, capture stdout and stderr, and
// classify the outcome.
type ProcessExecutor struct {
	Timeout time.Duration
	Grace   time.Duration
}

// payload is the single JSON object a benchmark must print on success.
type payload struct {
	Score    float64        `json:"score"`
	MaxScore float64        `json:"max_score"`
	Details  map[string]any `json:"details"`
}

func (e *ProcessExecutor) Run(ctx context.Context, task catalog.Task) result.Result {
	timeout := e.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	grace := e.Grace
	if grace <= 0 {
		grace = DefaultGrace
	}

	rctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	cmd := exec.CommandContext(rctx, task.Script, task.Argv()...)
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	// Ask nicely first; WaitDelay escalates to SIGKILL if the process
	// ignores the signal.
	cmd.Cancel = func() error { return terminate(cmd) }
	cmd.WaitDelay = grace

	start := time.Now()
	err := cmd.Run()
	elapsed := time.Since(start).Seconds()

	res := newResult(task)
	res.ExecutionTime = elapsed

	if err != nil {
		switch {
		case ctx.Err() != nil:
			return failed(res, "cancelled")
		case rctx.Err() != nil:
			return failed(res, "timeout")
		default:
			msg := strings.TrimSpace(stderr.String())
			if _, isExit := err.(*exec.ExitError); !isExit || msg == "" {
				msg = err.Error()
			}
			return failed(res, msg)
		}
	}

	var p payload
	if jsonErr := json.Unmarshal(bytes.TrimSpace(stdout.Bytes()), &p); jsonErr != nil {
		// Tolerated: the process exited cleanly but printed something
		// other than the score object. Keep the raw text, score zero.
		res.Score = 0
		res.MaxScore = 100
		res.NormalizedScore = 0
		res.Details = map[string]any{"raw_output": stdout.String()}
		return res
	}

	res.Score = p.Score
	res.MaxScore = p.MaxScore
	res.NormalizedScore = result.Normalize(p.Score, p.MaxScore)
	res.Details = p.Details
	return res
}

// newResult carries the task's identity and weighting metadata onto its
// Result so aggregation needs nothing but the result list.
func newResult(task catalog.Task) result.Result {
	return result.Result{
		Name:       task.Name,
		Category:   string(task.Category),
		Weight:     task.Weight,
		Confidence: task.Confidence,
	}
}

func failed(res result.Result, msg string) result.Result {
	res.Score = 0
	res.MaxScore = 100
	res.NormalizedScore = 0
	res.Details = map[string]any{"error": msg}
	res.Error = msg
	return res
}
