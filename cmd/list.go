package cmd

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/gauntlet-bench/gauntlet/internal/catalog"
)

func newListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List the tasks the configuration expands to",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			tasks, err := catalog.Build(cfg)
			if err != nil {
				return err
			}
			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "NAME\tCATEGORY\tPROFILE\tWEIGHT\tCONFIDENCE")
			for _, t := range tasks {
				fmt.Fprintf(tw, "%s\t%s\t%s\t%.4f\t%.1f\n", t.Name, t.Category, t.Profile, t.Weight, t.Confidence)
			}
			return tw.Flush()
		},
	}
}
