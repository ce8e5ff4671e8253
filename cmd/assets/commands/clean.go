package commands

import (
	"github.com/spf13/cobra"
	"go.trai.ch/assets/internal/app"
)

func (c *CLI) newCleanCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "clean",
		Short: "Remove built artifacts",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			values, _ := cmd.Flags().GetStringSlice("type")
			types, err := parseTypes(values)
			if err != nil {
				return err
			}

			config, _ := cmd.Flags().GetString("config")
			return c.app.Clean(cmd.Context(), app.CleanOptions{
				Config: config,
				Types:  types,
			})
		},
	}

	cmd.Flags().StringSliceP("type", "t", nil, "Asset types to clean (default css and js)")

	return cmd
}
