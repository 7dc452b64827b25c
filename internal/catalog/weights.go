package catalog

// CategoryWeights is the canonical per-category weight table for the
// Weighted Performance Index. Category weights express how important each
// capability dimension is overall; they are independent of the per-task
// weights assigned by the builder.
var CategoryWeights = map[Category]float64{
	SWEBench:  0.30,
	HumanEval: 0.20,
	BigCode:   0.15,
	RepoEval:  0.15,
	DevAI:     0.10,
	Security:  0.05,
	CodeGen:   0.05,
}

// confidenceFactors discounts a benchmark's score by its maturity. Keyed by
// benchmark id, not category: variants under one category differ in maturity.
var confidenceFactors = map[string]float64{
	"swe_bench":      1.0, // mature, established
	"humaneval":      1.0, // mature, widely used
	"humaneval_plus": 0.8,
	"mbpp":           0.8,
	"ds_1000":        0.8,
	"multipl_e":      0.8,
	"repoeval":       0.6, // emerging
	"devai":          0.6, // emerging
	"cwe":            0.6, // emerging
	"codeql":         0.8,
	"conala":         0.8,
	"codet5":         0.8,
}

// confidenceFor returns the trust factor for a benchmark id, defaulting to
// full confidence for benchmarks not in the table.
func confidenceFor(benchmark string) float64 {
	if c, ok := confidenceFactors[benchmark]; ok {
		return c
	}
	return 1.0
}
