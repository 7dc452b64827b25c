// Package report renders session aggregates for humans.
package report

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"text/tabwriter"

	"github.com/gauntlet-bench/gauntlet/internal/result"
)

// Generate re-renders a persisted session directory.
func Generate(sessionDir, format string, w io.Writer) error {
	agg, err := result.ReadAggregate(sessionDir)
	if err != nil {
		return err
	}
	return Render(agg, format, w)
}

// Render writes the aggregate in the requested format: "markdown", "json",
// or the default table.
func Render(agg *result.Aggregate, format string, w io.Writer) error {
	switch format {
	case "markdown":
		return writeMarkdown(agg, w)
	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(agg)
	default:
		return writeTable(agg, w)
	}
}

// WriteSessionReport drops a markdown report next to the persisted results.
func WriteSessionReport(sessionDir string, agg *result.Aggregate) error {
	f, err := os.Create(filepath.Join(sessionDir, "report.md"))
	if err != nil {
		return fmt.Errorf("creating report: %w", err)
	}
	defer f.Close()
	return writeMarkdown(agg, f)
}

func sortedCategories(agg *result.Aggregate) []string {
	categories := make([]string, 0, len(agg.CategoryScores))
	for category := range agg.CategoryScores {
		categories = append(categories, category)
	}
	sort.Strings(categories)
	return categories
}

func writeTable(agg *result.Aggregate, w io.Writer) error {
	fmt.Fprintf(w, "Session %s\n", agg.SessionID)
	fmt.Fprintf(w, "Weighted Performance Index: %.2f/100\n", agg.WPI)
	fmt.Fprintf(w, "Completed %d/%d (%d failed)\n\n", agg.Completed, agg.Total, agg.Failed)

	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "CATEGORY\tSCORE")
	for _, category := range sortedCategories(agg) {
		fmt.Fprintf(tw, "%s\t%.2f\n", category, agg.CategoryScores[category])
	}
	if err := tw.Flush(); err != nil {
		return err
	}

	fmt.Fprintln(w)
	tw = tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "BENCHMARK\tCATEGORY\tSCORE\tTIME\tSTATUS")
	for _, r := range agg.Results {
		status := "ok"
		if r.Failed() {
			status = "FAIL: " + r.Error
		}
		fmt.Fprintf(tw, "%s\t%s\t%.1f\t%.1fs\t%s\n", r.Name, r.Category, r.NormalizedScore, r.ExecutionTime, status)
	}
	return tw.Flush()
}

func writeMarkdown(agg *result.Aggregate, w io.Writer) error {
	fmt.Fprintf(w, "# Benchmark Report\n\n")
	fmt.Fprintf(w, "**Session ID:** %s\n", agg.SessionID)
	fmt.Fprintf(w, "**Timestamp:** %s\n", agg.Timestamp.Format("2006-01-02 15:04:05 MST"))
	fmt.Fprintf(w, "**Weighted Performance Index:** %.2f/100\n\n", agg.WPI)

	fmt.Fprintf(w, "## Category Scores\n\n")
	for _, category := range sortedCategories(agg) {
		fmt.Fprintf(w, "- **%s:** %.2f/100\n", category, agg.CategoryScores[category])
	}

	fmt.Fprintf(w, "\n## Individual Results\n\n")
	for _, r := range agg.Results {
		status := "PASS"
		if r.Failed() {
			status = "FAIL"
		}
		fmt.Fprintf(w, "- %s **%s** (%s): %.1f/100 (%.1fs)\n", status, r.Name, r.Category, r.NormalizedScore, r.ExecutionTime)
	}

	fmt.Fprintf(w, "\n## Execution Summary\n\n")
	fmt.Fprintf(w, "- **Total Time:** %.1fs\n", agg.Summary.TotalTime)
	fmt.Fprintf(w, "- **Success Rate:** %.1f%%\n", agg.Summary.SuccessRate*100)
	fmt.Fprintf(w, "- **Completed:** %d/%d\n", agg.Completed, agg.Total)
	return nil
}
