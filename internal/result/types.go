// Package result defines the per-task and per-session result records and
// their on-disk persistence.
package result

import "time"

// Result is the outcome of running one task. Exactly one Result exists per
// task after scheduling, success or failure. The originating task's weighting
// metadata travels with it so persisted results can be re-aggregated without
// the catalog.
type Result struct {
	Name            string         `json:"name"`
	Category        string         `json:"category"`
	Score           float64        `json:"score"`
	MaxScore        float64        `json:"max_score"`
	NormalizedScore float64        `json:"normalized_score"`
	ExecutionTime   float64        `json:"execution_time"`
	Weight          float64        `json:"weight"`
	Confidence      float64        `json:"confidence"`
	Details         map[string]any `json:"details,omitempty"`
	Error           string         `json:"error,omitempty"`
}

// Failed reports whether the task did not complete successfully. Malformed
// but well-exited output is not a failure.
func (r Result) Failed() bool {
	return r.Error != ""
}

// Normalize maps a raw score onto the 0-100 scale, clamped. A zero or
// negative max score normalizes to 0 rather than dividing by it.
func Normalize(score, maxScore float64) float64 {
	if maxScore <= 0 {
		return 0
	}
	n := (score / maxScore) * 100
	if n < 0 {
		return 0
	}
	if n > 100 {
		return 100
	}
	return n
}

// Aggregate is the complete session outcome: counts, category scores, the
// Weighted Performance Index, and every individual result.
type Aggregate struct {
	SessionID      string             `json:"session_id"`
	Timestamp      time.Time          `json:"timestamp"`
	Total          int                `json:"total_benchmarks"`
	Completed      int                `json:"completed_benchmarks"`
	Failed         int                `json:"failed_benchmarks"`
	WPI            float64            `json:"weighted_performance_index"`
	CategoryScores map[string]float64 `json:"category_scores"`
	Results        []Result           `json:"individual_results"`
	Summary        Summary            `json:"execution_summary"`
}

// Summary captures session-level execution statistics.
type Summary struct {
	TotalTime   float64 `json:"total_execution_time"`
	AverageTime float64 `json:"average_time_per_benchmark"`
	SuccessRate float64 `json:"success_rate"`
}
