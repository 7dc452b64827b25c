// Package catalog expands a session configuration into the concrete,
// order-stable list of benchmark tasks to schedule.
package catalog

import (
	"fmt"
	"path/filepath"
	"strconv"

	"github.com/gauntlet-bench/gauntlet/internal/config"
)

// Category groups tasks for aggregation. It never influences scheduling.
type Category string

const (
	SWEBench  Category = "swe_bench"
	HumanEval Category = "humaneval"
	BigCode   Category = "bigcode"
	RepoEval  Category = "repoeval"
	DevAI     Category = "devai"
	Security  Category = "security"
	CodeGen   Category = "codegen"
)

// Profile selects which worker pool executes a task. It is fixed at
// construction time: heavyweight repository-level and multilingual
// generation benchmarks contend for cores, everything else mostly waits on
// I/O.
type Profile string

const (
	CPUBound Profile = "cpu_bound"
	IOBound  Profile = "io_bound"
)

// Arg is one command-line flag with its values. List-valued flags flatten to
// a single --flag followed by every value, matching the external program
// contract.
type Arg struct {
	Flag   string
	Values []string
}

// Task is one schedulable unit: an external program invocation plus its
// weighting metadata. Tasks are built once per session and never mutated.
type Task struct {
	Name       string
	Category   Category
	Profile    Profile
	Script     string
	Args       []Arg
	Weight     float64
	Confidence float64
}

// Argv flattens the task's arguments into the exec argument vector.
func (t Task) Argv() []string {
	var argv []string
	for _, a := range t.Args {
		argv = append(argv, "--"+a.Flag)
		argv = append(argv, a.Values...)
	}
	return argv
}

// Build expands the enabled categories into the full task list. The result
// is deterministic: identical configuration yields an identical list. Each
// category's weight is split evenly across the tasks generated under it, so
// a category's aggregate contribution does not depend on how many variants
// were requested. Unknown selection names fail here, before anything runs.
func Build(cfg *config.Config) ([]Task, error) {
	type builder struct {
		category Category
		enabled  bool
		build    func() ([]Task, error)
	}
	b := cfg.Benchmarks
	builders := []builder{
		{SWEBench, b.SWEBench.Enabled, func() ([]Task, error) { return buildSWEBench(b.SWEBench, cfg.Execution.RunnersDir) }},
		{HumanEval, b.HumanEval.Enabled, func() ([]Task, error) { return buildHumanEval(b.HumanEval, cfg.Execution.RunnersDir) }},
		{BigCode, b.BigCode.Enabled, func() ([]Task, error) { return buildBigCode(b.BigCode, cfg.Execution.RunnersDir) }},
		{RepoEval, b.RepoEval.Enabled, func() ([]Task, error) { return buildRepoEval(b.RepoEval, cfg.Execution.RunnersDir) }},
		{DevAI, b.DevAI.Enabled, func() ([]Task, error) { return buildDevAI(b.DevAI, cfg.Execution.RunnersDir) }},
		{Security, b.Security.Enabled, func() ([]Task, error) { return buildSecurity(b.Security, cfg.Execution.RunnersDir) }},
		{CodeGen, b.CodeGen.Enabled, func() ([]Task, error) { return buildCodeGen(b.CodeGen, cfg.Execution.RunnersDir) }},
	}

	var tasks []Task
	for _, bld := range builders {
		if !bld.enabled {
			continue
		}
		group, err := bld.build()
		if err != nil {
			return nil, fmt.Errorf("%s: %w", bld.category, err)
		}
		if len(group) == 0 {
			continue
		}
		share := CategoryWeights[bld.category] / float64(len(group))
		for i := range group {
			group[i].Weight = share
		}
		tasks = append(tasks, group...)
	}
	return tasks, nil
}

func buildSWEBench(cfg config.SWEBench, runnersDir string) ([]Task, error) {
	script := filepath.Join(runnersDir, "swe_bench", "run_swe_bench")
	var tasks []Task
	switch cfg.Subset {
	case "lite", "full", "all":
	default:
		return nil, fmt.Errorf("unknown subset %q", cfg.Subset)
	}
	if cfg.Subset == "lite" || cfg.Subset == "all" {
		tasks = append(tasks, Task{
			Name:     "swe_bench_lite",
			Category: SWEBench,
			Profile:  CPUBound,
			Script:   script,
			Args: []Arg{
				{Flag: "dataset", Values: []string{"princeton-nlp/SWE-bench_Lite"}},
				{Flag: "max_instances", Values: []string{itoa(min(cfg.MaxInstances, 300))}},
				{Flag: "timeout_per_instance", Values: []string{itoa(cfg.TimeoutPerInstance)}},
			},
			Confidence: confidenceFor("swe_bench"),
		})
	}
	if cfg.Subset == "full" || cfg.Subset == "all" {
		tasks = append(tasks, Task{
			Name:     "swe_bench_full",
			Category: SWEBench,
			Profile:  CPUBound,
			Script:   script,
			Args: []Arg{
				{Flag: "dataset", Values: []string{"princeton-nlp/SWE-bench"}},
				{Flag: "max_instances", Values: []string{itoa(cfg.MaxInstances)}},
				{Flag: "timeout_per_instance", Values: []string{itoa(cfg.TimeoutPerInstance)}},
			},
			Confidence: confidenceFor("swe_bench"),
		})
	}
	return tasks, nil
}

func buildHumanEval(cfg config.HumanEval, runnersDir string) ([]Task, error) {
	passK := make([]string, len(cfg.PassK))
	for i, k := range cfg.PassK {
		passK[i] = strconv.Itoa(k)
	}
	var tasks []Task
	for _, variant := range cfg.Variants {
		switch variant {
		case "base":
			tasks = append(tasks, Task{
				Name:     "humaneval_base",
				Category: HumanEval,
				Profile:  IOBound,
				Script:   filepath.Join(runnersDir, "humaneval", "run_humaneval"),
				Args: []Arg{
					{Flag: "dataset", Values: []string{"openai_humaneval"}},
					{Flag: "pass_k", Values: passK},
					{Flag: "max_problems", Values: []string{itoa(cfg.MaxProblems)}},
				},
				Confidence: confidenceFor("humaneval"),
			})
		case "plus":
			tasks = append(tasks, Task{
				Name:     "humaneval_plus",
				Category: HumanEval,
				Profile:  IOBound,
				Script:   filepath.Join(runnersDir, "humaneval", "run_humaneval_plus"),
				Args: []Arg{
					{Flag: "dataset", Values: []string{"evalplus/humaneval-plus"}},
					{Flag: "pass_k", Values: passK},
					{Flag: "max_problems", Values: []string{itoa(cfg.MaxProblems)}},
				},
				Confidence: confidenceFor("humaneval_plus"),
			})
		case "mbpp":
			tasks = append(tasks, Task{
				Name:     "mbpp",
				Category: HumanEval,
				Profile:  IOBound,
				Script:   filepath.Join(runnersDir, "humaneval", "run_mbpp"),
				Args: []Arg{
					{Flag: "dataset", Values: []string{"mbpp"}},
					{Flag: "pass_k", Values: passK},
					{Flag: "max_problems", Values: []string{itoa(cfg.MaxProblems)}},
				},
				Confidence: confidenceFor("mbpp"),
			})
		default:
			return nil, fmt.Errorf("unknown variant %q", variant)
		}
	}
	return tasks, nil
}

func buildBigCode(cfg config.BigCode, runnersDir string) ([]Task, error) {
	var tasks []Task
	for _, taskType := range cfg.Tasks {
		switch taskType {
		case "multipl_e":
			for _, lang := range cfg.Languages {
				if lang == "" {
					return nil, fmt.Errorf("empty language name")
				}
				tasks = append(tasks, Task{
					Name:     "multipl_e_" + lang,
					Category: BigCode,
					Profile:  CPUBound,
					Script:   filepath.Join(runnersDir, "bigcode", "run_multipl_e"),
					Args: []Arg{
						{Flag: "language", Values: []string{lang}},
						{Flag: "max_problems", Values: []string{"164"}},
					},
					Confidence: confidenceFor("multipl_e"),
				})
			}
		case "ds_1000":
			tasks = append(tasks, Task{
				Name:     "ds_1000",
				Category: BigCode,
				Profile:  IOBound,
				Script:   filepath.Join(runnersDir, "bigcode", "run_ds_1000"),
				Args: []Arg{
					{Flag: "max_problems", Values: []string{"1000"}},
					{Flag: "libraries", Values: []string{"pandas", "numpy", "matplotlib", "scikit-learn"}},
				},
				Confidence: confidenceFor("ds_1000"),
			})
		default:
			return nil, fmt.Errorf("unknown task %q", taskType)
		}
	}
	return tasks, nil
}

func buildRepoEval(cfg config.RepoEval, runnersDir string) ([]Task, error) {
	return []Task{{
		Name:     "repoeval",
		Category: RepoEval,
		Profile:  IOBound,
		Script:   filepath.Join(runnersDir, "repoeval", "run_repoeval"),
		Args: []Arg{
			{Flag: "max_repos", Values: []string{itoa(cfg.MaxRepos)}},
			{Flag: "context_window", Values: []string{itoa(cfg.ContextWindow)}},
			{Flag: "tasks", Values: []string{"completion", "bug_fixing", "feature_addition"}},
		},
		Confidence: confidenceFor("repoeval"),
	}}, nil
}

func buildDevAI(cfg config.DevAI, runnersDir string) ([]Task, error) {
	var tasks []Task
	for _, workflow := range cfg.WorkflowTasks {
		switch workflow {
		case "debugging", "testing", "refactoring":
		default:
			return nil, fmt.Errorf("unknown workflow task %q", workflow)
		}
		tasks = append(tasks, Task{
			Name:     "devai_" + workflow,
			Category: DevAI,
			Profile:  IOBound,
			Script:   filepath.Join(runnersDir, "devai", "run_devai"),
			Args: []Arg{
				{Flag: "task_type", Values: []string{workflow}},
				{Flag: "max_scenarios", Values: []string{"50"}},
			},
			Confidence: confidenceFor("devai"),
		})
	}
	return tasks, nil
}

func buildSecurity(cfg config.Security, runnersDir string) ([]Task, error) {
	var tasks []Task
	for _, framework := range cfg.Frameworks {
		switch framework {
		case "cwe":
			tasks = append(tasks, Task{
				Name:     "cwe_bench",
				Category: Security,
				Profile:  IOBound,
				Script:   filepath.Join(runnersDir, "security", "run_cwe_bench"),
				Args: []Arg{
					{Flag: "max_samples", Values: []string{"200"}},
					{Flag: "vulnerability_types", Values: []string{"injection", "xss", "auth"}},
				},
				Confidence: confidenceFor("cwe"),
			})
		case "codeql":
			tasks = append(tasks, Task{
				Name:     "codeql_bench",
				Category: Security,
				Profile:  IOBound,
				Script:   filepath.Join(runnersDir, "security", "run_codeql"),
				Args: []Arg{
					{Flag: "max_repos", Values: []string{"100"}},
					{Flag: "analysis_types", Values: []string{"security", "quality"}},
				},
				Confidence: confidenceFor("codeql"),
			})
		default:
			return nil, fmt.Errorf("unknown framework %q", framework)
		}
	}
	return tasks, nil
}

func buildCodeGen(cfg config.CodeGen, runnersDir string) ([]Task, error) {
	var tasks []Task
	for _, taskType := range cfg.Tasks {
		switch taskType {
		case "conala":
			tasks = append(tasks, Task{
				Name:     "conala",
				Category: CodeGen,
				Profile:  IOBound,
				Script:   filepath.Join(runnersDir, "codegen", "run_conala"),
				Args: []Arg{
					{Flag: "max_problems", Values: []string{"500"}},
					{Flag: "metrics", Values: []string{"bleu", "exact_match"}},
				},
				Confidence: confidenceFor("conala"),
			})
		case "codet5":
			tasks = append(tasks, Task{
				Name:     "codet5",
				Category: CodeGen,
				Profile:  IOBound,
				Script:   filepath.Join(runnersDir, "codegen", "run_codet5"),
				Args: []Arg{
					{Flag: "max_samples", Values: []string{"1000"}},
					{Flag: "metrics", Values: []string{"bleu", "rouge", "meteor"}},
				},
				Confidence: confidenceFor("codet5"),
			})
		default:
			return nil, fmt.Errorf("unknown task %q", taskType)
		}
	}
	return tasks, nil
}

func itoa(n int) string {
	return strconv.Itoa(n)
}
