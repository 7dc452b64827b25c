package result

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

const (
	aggregateFile  = "aggregate_results.json"
	individualFile = "individual_results.json"
)

// WriteAggregate persists the session aggregate document.
func WriteAggregate(dir string, agg *Aggregate) error {
	return writeJSON(filepath.Join(dir, aggregateFile), agg)
}

// WriteResults persists the flat ordered result list.
func WriteResults(dir string, results []Result) error {
	return writeJSON(filepath.Join(dir, individualFile), results)
}

// ReadAggregate loads a persisted aggregate document.
func ReadAggregate(dir string) (*Aggregate, error) {
	data, err := os.ReadFile(filepath.Join(dir, aggregateFile))
	if err != nil {
		return nil, fmt.Errorf("reading aggregate: %w", err)
	}
	var agg Aggregate
	if err := json.Unmarshal(data, &agg); err != nil {
		return nil, fmt.Errorf("parsing aggregate: %w", err)
	}
	return &agg, nil
}

// ReadResults loads a persisted result list.
func ReadResults(dir string) ([]Result, error) {
	data, err := os.ReadFile(filepath.Join(dir, individualFile))
	if err != nil {
		return nil, fmt.Errorf("reading results: %w", err)
	}
	var results []Result
	if err := json.Unmarshal(data, &results); err != nil {
		return nil, fmt.Errorf("parsing results: %w", err)
	}
	return results, nil
}

func writeJSON(path string, v any) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("creating results dir: %w", err)
	}
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("marshaling %s: %w", filepath.Base(path), err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing %s: %w", filepath.Base(path), err)
	}
	return nil
}
