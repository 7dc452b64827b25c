package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/gauntlet-bench/gauntlet/internal/catalog"
)

func newValidateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "validate",
		Short: "Check the configuration without running anything",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			tasks, err := catalog.Build(cfg)
			if err != nil {
				return err
			}
			categories := map[catalog.Category]bool{}
			for _, t := range tasks {
				categories[t.Category] = true
			}
			fmt.Fprintf(cmd.OutOrStdout(), "configuration ok: %d tasks across %d categories\n",
				len(tasks), len(categories))
			return nil
		},
	}
}
