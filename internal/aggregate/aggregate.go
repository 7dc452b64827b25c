// Package aggregate reduces a result list to category scores and the
// Weighted Performance Index.
package aggregate

import (
	"sort"
	"time"

	"github.com/gauntlet-bench/gauntlet/internal/catalog"
	"github.com/gauntlet-bench/gauntlet/internal/result"
)

// fallbackCategoryWeight applies to results whose category is missing from
// the static weight table.
const fallbackCategoryWeight = 0.01

// Compute reduces results to the session aggregate. The reduction is pure
// and order-independent: contributions are summed in name order, so any
// permutation of the input produces an identical aggregate.
//
// Weighting happens at two levels and they are kept apart deliberately.
// Within a category each result contributes normalized_score x weight x
// confidence, normalized by the surviving weight, which expresses trust in
// that particular variant. Across categories the fixed category weights
// express how much each capability dimension matters overall.
func Compute(sessionID string, results []result.Result, elapsed time.Duration) *result.Aggregate {
	completed := 0
	byCategory := make(map[string][]result.Result)
	for _, r := range results {
		if r.Failed() {
			continue
		}
		completed++
		byCategory[r.Category] = append(byCategory[r.Category], r)
	}

	categoryScores := make(map[string]float64)
	for category, group := range byCategory {
		sort.Slice(group, func(i, j int) bool { return group[i].Name < group[j].Name })
		var weighted, weight float64
		for _, r := range group {
			w := r.Weight * r.Confidence
			weighted += r.NormalizedScore * w
			weight += w
		}
		// A category with zero surviving weight is omitted rather than
		// reported as a misleading zero.
		if weight > 0 {
			categoryScores[category] = weighted / weight
		}
	}

	categories := make([]string, 0, len(categoryScores))
	for category := range categoryScores {
		categories = append(categories, category)
	}
	sort.Strings(categories)

	var totalWeighted, totalWeight float64
	for _, category := range categories {
		w, ok := catalog.CategoryWeights[catalog.Category(category)]
		if !ok {
			w = fallbackCategoryWeight
		}
		totalWeighted += categoryScores[category] * w
		totalWeight += w
	}
	wpi := 0.0
	if totalWeight > 0 {
		wpi = totalWeighted / totalWeight
	}

	summary := result.Summary{TotalTime: elapsed.Seconds()}
	if len(results) > 0 {
		summary.AverageTime = summary.TotalTime / float64(len(results))
		summary.SuccessRate = float64(completed) / float64(len(results))
	}

	return &result.Aggregate{
		SessionID:      sessionID,
		Timestamp:      time.Now().UTC(),
		Total:          len(results),
		Completed:      completed,
		Failed:         len(results) - completed,
		WPI:            wpi,
		CategoryScores: categoryScores,
		Results:        results,
		Summary:        summary,
	}
}
