// Package config loads and validates the session configuration document.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

type Config struct {
	Execution  Execution  `yaml:"execution"`
	Benchmarks Benchmarks `yaml:"benchmarks"`
	Output     Output     `yaml:"output"`
}

type Execution struct {
	Workers               int    `yaml:"workers"`
	TimeoutMinutes        int    `yaml:"timeout_minutes"`
	SessionTimeoutMinutes int    `yaml:"session_timeout_minutes"`
	RunnersDir            string `yaml:"runners_dir"`
}

type Benchmarks struct {
	SWEBench  SWEBench  `yaml:"swe_bench"`
	HumanEval HumanEval `yaml:"humaneval"`
	BigCode   BigCode   `yaml:"bigcode"`
	RepoEval  RepoEval  `yaml:"repoeval"`
	DevAI     DevAI     `yaml:"devai"`
	Security  Security  `yaml:"security"`
	CodeGen   CodeGen   `yaml:"codegen"`
}

type SWEBench struct {
	Enabled            bool   `yaml:"enabled"`
	Subset             string `yaml:"subset"`
	MaxInstances       int    `yaml:"max_instances"`
	TimeoutPerInstance int    `yaml:"timeout_per_instance"`
}

type HumanEval struct {
	Enabled     bool     `yaml:"enabled"`
	Variants    []string `yaml:"variants"`
	MaxProblems int      `yaml:"max_problems"`
	PassK       []int    `yaml:"pass_k"`
}

type BigCode struct {
	Enabled   bool     `yaml:"enabled"`
	Languages []string `yaml:"languages"`
	Tasks     []string `yaml:"tasks"`
}

type RepoEval struct {
	Enabled       bool `yaml:"enabled"`
	MaxRepos      int  `yaml:"max_repos"`
	ContextWindow int  `yaml:"context_window"`
}

type DevAI struct {
	Enabled       bool     `yaml:"enabled"`
	WorkflowTasks []string `yaml:"workflow_tasks"`
}

type Security struct {
	Enabled    bool     `yaml:"enabled"`
	Frameworks []string `yaml:"frameworks"`
}

type CodeGen struct {
	Enabled bool     `yaml:"enabled"`
	Tasks   []string `yaml:"tasks"`
}

type Output struct {
	Dir    string `yaml:"dir"`
	Format string `yaml:"format"`
}

// Default returns the built-in session configuration used when no config
// file is supplied: every category enabled with its standard selection.
func Default() *Config {
	return &Config{
		Execution: Execution{
			Workers:        0, // sized from hardware at run time
			TimeoutMinutes: 120,
			RunnersDir:     "benchmarks",
		},
		Benchmarks: Benchmarks{
			SWEBench: SWEBench{
				Enabled:            true,
				Subset:             "lite",
				MaxInstances:       100,
				TimeoutPerInstance: 300,
			},
			HumanEval: HumanEval{
				Enabled:     true,
				Variants:    []string{"base", "plus"},
				MaxProblems: 164,
				PassK:       []int{1, 5, 10},
			},
			BigCode: BigCode{
				Enabled:   true,
				Languages: []string{"python", "javascript", "java"},
				Tasks:     []string{"multipl_e", "ds_1000"},
			},
			RepoEval: RepoEval{
				Enabled:       true,
				MaxRepos:      50,
				ContextWindow: 8192,
			},
			DevAI: DevAI{
				Enabled:       true,
				WorkflowTasks: []string{"debugging", "testing", "refactoring"},
			},
			Security: Security{
				Enabled:    true,
				Frameworks: []string{"cwe", "codeql"},
			},
			CodeGen: CodeGen{
				Enabled: true,
				Tasks:   []string{"conala", "codet5"},
			},
		},
		Output: Output{
			Dir:    "results",
			Format: "table",
		},
	}
}

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config %s: %w", path, err)
	}
	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config %s: %w", path, err)
	}
	if err := validate(cfg); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", path, err)
	}
	return cfg, nil
}

func validate(cfg *Config) error {
	if cfg.Execution.Workers < 0 {
		return fmt.Errorf("execution.workers must not be negative")
	}
	if cfg.Execution.TimeoutMinutes < 1 {
		return fmt.Errorf("execution.timeout_minutes must be at least 1")
	}
	if cfg.Execution.SessionTimeoutMinutes < 0 {
		return fmt.Errorf("execution.session_timeout_minutes must not be negative")
	}
	if cfg.Execution.RunnersDir == "" {
		return fmt.Errorf("execution.runners_dir is required")
	}
	if cfg.Output.Dir == "" {
		return fmt.Errorf("output.dir is required")
	}
	switch cfg.Output.Format {
	case "", "table", "markdown", "json":
	default:
		return fmt.Errorf("output.format %q: must be table, markdown, or json", cfg.Output.Format)
	}
	return nil
}

// CategoryNames lists the configurable categories in catalog order.
var CategoryNames = []string{
	"swe_bench", "humaneval", "bigcode", "repoeval", "devai", "security", "codegen",
}

// EnableOnly disables every category except the named one. It backs the CLI
// single-category filter and fails on unknown names before any task runs.
func (c *Config) EnableOnly(category string) error {
	known := false
	for _, name := range CategoryNames {
		if name == category {
			known = true
			break
		}
	}
	if !known {
		return fmt.Errorf("unknown category %q", category)
	}
	c.Benchmarks.SWEBench.Enabled = category == "swe_bench"
	c.Benchmarks.HumanEval.Enabled = category == "humaneval"
	c.Benchmarks.BigCode.Enabled = category == "bigcode"
	c.Benchmarks.RepoEval.Enabled = category == "repoeval"
	c.Benchmarks.DevAI.Enabled = category == "devai"
	c.Benchmarks.Security.Enabled = category == "security"
	c.Benchmarks.CodeGen.Enabled = category == "codegen"
	return nil
}
