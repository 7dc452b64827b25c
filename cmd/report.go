package cmd

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/gauntlet-bench/gauntlet/internal/report"
)

var flagReportFormat string

func newReportCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "report [session-dir]",
		Short: "Re-render a persisted session",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var dir string
			if len(args) == 1 {
				dir = args[0]
			} else {
				cfg, err := loadConfig()
				if err != nil {
					return err
				}
				dir = filepath.Join(cfg.Output.Dir, "latest")
			}
			if err := report.Generate(dir, flagReportFormat, cmd.OutOrStdout()); err != nil {
				return fmt.Errorf("reporting on %s: %w", dir, err)
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&flagReportFormat, "format", "table", "report format: table, markdown, or json")
	return cmd
}
