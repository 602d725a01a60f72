package commands

import (
	"github.com/spf13/cobra"
	"go.trai.ch/arbor/internal/adapters/config"
	"go.trai.ch/arbor/internal/app"
)

func (c *CLI) newAnalyzeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "analyze [targets...]",
		Short: "Derive the dependency edges of the specified targets",
		Long: "Derive the configured dependency edges of the specified targets. " +
			"With no targets the whole graph is analyzed.",
		Args: cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			manifest, _ := cmd.Flags().GetString("manifest")
			list, _ := cmd.Flags().GetBool("list")

			return c.app.Analyze(cmd.Context(), args, app.AnalyzeOptions{
				ManifestPath: manifest,
				ListEdges:    list,
			})
		},
	}
	cmd.Flags().StringP("manifest", "m", config.DefaultManifestName, "Path to the manifest file")
	cmd.Flags().BoolP("list", "l", false, "List every distinct edge in deterministic order")
	return cmd
}
