package result_test

import (
	"testing"
	"time"

	"github.com/gauntlet-bench/gauntlet/internal/result"
)

func TestNormalize(t *testing.T) {
	cases := []struct {
		name       string
		score, max float64
		want       float64
	}{
		{"half", 50, 100, 50},
		{"full", 164, 164, 100},
		{"zero max", 42, 0, 0},
		{"negative max", 10, -5, 0},
		{"negative score clamps", -3, 100, 0},
		{"overshoot clamps", 120, 100, 100},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := result.Normalize(tc.score, tc.max); got != tc.want {
				t.Errorf("Normalize(%f, %f) = %f, want %f", tc.score, tc.max, got, tc.want)
			}
		})
	}
}

func TestFailed(t *testing.T) {
	if (result.Result{}).Failed() {
		t.Error("empty result should not be failed")
	}
	if !(result.Result{Error: "timeout"}).Failed() {
		t.Error("result with error should be failed")
	}
}

func TestStorageRoundTrip(t *testing.T) {
	dir := t.TempDir()
	results := []result.Result{
		{
			Name:            "humaneval_base",
			Category:        "humaneval",
			Score:           120,
			MaxScore:        164,
			NormalizedScore: 73.17,
			ExecutionTime:   841.2,
			Weight:          0.1,
			Confidence:      1.0,
			Details:         map[string]any{"pass_at_1": 0.73},
		},
		{
			Name:     "repoeval",
			Category: "repoeval",
			MaxScore: 100,
			Weight:   0.15,
			Error:    "timeout",
		},
	}
	agg := &result.Aggregate{
		SessionID:      "20260831_120000",
		Timestamp:      time.Date(2026, 8, 31, 12, 0, 0, 0, time.UTC),
		Total:          2,
		Completed:      1,
		Failed:         1,
		WPI:            73.17,
		CategoryScores: map[string]float64{"humaneval": 73.17},
		Results:        results,
		Summary:        result.Summary{TotalTime: 900, AverageTime: 450, SuccessRate: 0.5},
	}

	if err := result.WriteAggregate(dir, agg); err != nil {
		t.Fatalf("WriteAggregate: %v", err)
	}
	if err := result.WriteResults(dir, results); err != nil {
		t.Fatalf("WriteResults: %v", err)
	}

	gotAgg, err := result.ReadAggregate(dir)
	if err != nil {
		t.Fatalf("ReadAggregate: %v", err)
	}
	if gotAgg.SessionID != agg.SessionID || gotAgg.WPI != agg.WPI || gotAgg.Failed != 1 {
		t.Errorf("aggregate round trip mismatch: %+v", gotAgg)
	}

	gotResults, err := result.ReadResults(dir)
	if err != nil {
		t.Fatalf("ReadResults: %v", err)
	}
	if len(gotResults) != 2 {
		t.Fatalf("expected 2 results, got %d", len(gotResults))
	}
	if gotResults[0].Name != "humaneval_base" || gotResults[0].Weight != 0.1 {
		t.Errorf("first result mismatch: %+v", gotResults[0])
	}
	if gotResults[1].Error != "timeout" {
		t.Errorf("expected timeout error preserved, got %q", gotResults[1].Error)
	}
}

func TestReadMissing(t *testing.T) {
	dir := t.TempDir()
	if _, err := result.ReadAggregate(dir); err == nil {
		t.Error("expected error reading missing aggregate")
	}
	if _, err := result.ReadResults(dir); err == nil {
		t.Error("expected error reading missing results")
	}
}
