package scheduler_test

import (
	"context"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"
	"time"

	"github.com/gauntlet-bench/gauntlet/internal/catalog"
	"github.com/gauntlet-bench/gauntlet/internal/scheduler"
)

// writeScript drops an executable shell script into a temp dir.
func writeScript(t *testing.T, body string) string {
	t.Helper()
	if runtime.GOOS == "windows" {
		t.Skip("requires sh")
	}
	path := filepath.Join(t.TempDir(), "runner")
	script := "#!/bin/sh\n" + body + "\n"
	if err := os.WriteFile(path, []byte(script), 0o755); err != nil {
		t.Fatalf("writing script: %v", err)
	}
	return path
}

func testTask(script string) catalog.Task {
	return catalog.Task{
		Name:       "humaneval_base",
		Category:   catalog.HumanEval,
		Profile:    catalog.IOBound,
		Script:     script,
		Weight:     0.2,
		Confidence: 1.0,
	}
}

func TestProcessExecutorSuccess(t *testing.T) {
	script := writeScript(t, `echo '{"score": 120, "max_score": 164, "details": {"pass_at_1": 0.73}}'`)
	exec := &scheduler.ProcessExecutor{Timeout: 10 * time.Second}
	r := exec.Run(context.Background(), testTask(script))
	if r.Error != "" {
		t.Fatalf("unexpected error: %q", r.Error)
	}
	if r.Score != 120 || r.MaxScore != 164 {
		t.Errorf("scores: got %f/%f, want 120/164", r.Score, r.MaxScore)
	}
	if r.NormalizedScore < 73 || r.NormalizedScore > 74 {
		t.Errorf("normalized: got %f, want ~73.2", r.NormalizedScore)
	}
	if r.Details["pass_at_1"] != 0.73 {
		t.Errorf("details not passed through: %v", r.Details)
	}
	if r.Name != "humaneval_base" || r.Category != "humaneval" {
		t.Errorf("identity not carried: %s/%s", r.Name, r.Category)
	}
	if r.Weight != 0.2 || r.Confidence != 1.0 {
		t.Errorf("weighting not carried: %f/%f", r.Weight, r.Confidence)
	}
}

func TestProcessExecutorArgs(t *testing.T) {
	script := writeScript(t, `printf '{"score": %s, "max_score": 100, "details": {}}' "$2"`)
	task := testTask(script)
	task.Args = []catalog.Arg{{Flag: "max_problems", Values: []string{"42"}}}
	exec := &scheduler.ProcessExecutor{Timeout: 10 * time.Second}
	r := exec.Run(context.Background(), task)
	if r.Error != "" {
		t.Fatalf("unexpected error: %q", r.Error)
	}
	if r.Score != 42 {
		t.Errorf("flag not flattened onto argv: score %f, want 42", r.Score)
	}
}

func TestProcessExecutorNonJSONOutput(t *testing.T) {
	script := writeScript(t, `echo 'benchmark finished, results in /tmp/out'`)
	exec := &scheduler.ProcessExecutor{Timeout: 10 * time.Second}
	r := exec.Run(context.Background(), testTask(script))
	// Tolerated, not a failure.
	if r.Error != "" {
		t.Fatalf("malformed output must not set error, got %q", r.Error)
	}
	if r.Score != 0 || r.MaxScore != 100 || r.NormalizedScore != 0 {
		t.Errorf("fallback scores: got %f/%f", r.Score, r.MaxScore)
	}
	raw, _ := r.Details["raw_output"].(string)
	if !strings.Contains(raw, "benchmark finished") {
		t.Errorf("raw output not captured: %v", r.Details)
	}
}

func TestProcessExecutorNonZeroExit(t *testing.T) {
	script := writeScript(t, `echo 'dataset not found' >&2; exit 3`)
	exec := &scheduler.ProcessExecutor{Timeout: 10 * time.Second}
	r := exec.Run(context.Background(), testTask(script))
	if r.Error == "" {
		t.Fatal("expected error for non-zero exit")
	}
	if !strings.Contains(r.Error, "dataset not found") {
		t.Errorf("stderr not captured as diagnostic: %q", r.Error)
	}
	if r.Score != 0 || r.NormalizedScore != 0 {
		t.Errorf("failed task must score zero, got %f", r.Score)
	}
}

func TestProcessExecutorTimeout(t *testing.T) {
	script := writeScript(t, `sleep 30`)
	exec := &scheduler.ProcessExecutor{Timeout: 200 * time.Millisecond, Grace: time.Second}
	start := time.Now()
	r := exec.Run(context.Background(), testTask(script))
	elapsed := time.Since(start)
	if r.Error != "timeout" {
		t.Fatalf("expected timeout error, got %q", r.Error)
	}
	if r.Score != 0 {
		t.Errorf("timed-out task must score zero, got %f", r.Score)
	}
	if elapsed > 5*time.Second {
		t.Errorf("timeout overshoot too large: %v", elapsed)
	}
}

func TestProcessExecutorLaunchFailure(t *testing.T) {
	exec := &scheduler.ProcessExecutor{Timeout: time.Second}
	task := testTask(filepath.Join(t.TempDir(), "does-not-exist"))
	r := exec.Run(context.Background(), task)
	if r.Error == "" {
		t.Fatal("expected error for missing executable")
	}
}

func TestProcessExecutorSessionCancelled(t *testing.T) {
	script := writeScript(t, `sleep 30`)
	exec := &scheduler.ProcessExecutor{Timeout: time.Minute, Grace: time.Second}
	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		time.Sleep(100 * time.Millisecond)
		cancel()
	}()
	r := exec.Run(ctx, testTask(script))
	if r.Error != "cancelled" {
		t.Fatalf("expected cancelled, got %q", r.Error)
	}
}
