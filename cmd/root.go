package cmd

import (
	"github.com/spf13/cobra"

	"github.com/gauntlet-bench/gauntlet/internal/config"
)

var cfgFile string

func NewRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "gauntlet",
		Short: "Orchestrator for weighted software-engineering benchmark portfolios",
	}
	root.PersistentFlags().StringVar(&cfgFile, "config", "", "config file path (built-in defaults when empty)")
	root.AddCommand(newRunCmd())
	root.AddCommand(newListCmd())
	root.AddCommand(newReportCmd())
	root.AddCommand(newValidateCmd())
	return root
}

func loadConfig() (*config.Config, error) {
	if cfgFile == "" {
		return config.Default(), nil
	}
	return config.Load(cfgFile)
}
