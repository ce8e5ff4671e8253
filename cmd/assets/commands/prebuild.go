package commands

import (
	"github.com/spf13/cobra"
	"go.trai.ch/assets/internal/app"
)

func (c *CLI) newPrebuildCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "prebuild",
		Short: "Build the artifacts of every page named by the include rules",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			values, _ := cmd.Flags().GetStringSlice("type")
			types, err := parseTypes(values)
			if err != nil {
				return err
			}

			config, _ := cmd.Flags().GetString("config")
			locales, _ := cmd.Flags().GetStringSlice("lang")

			_, err = c.app.Prebuild(cmd.Context(), app.PrebuildOptions{
				Config:  config,
				Types:   types,
				Locales: locales,
			})
			return err
		},
	}

	cmd.Flags().StringSliceP("type", "t", nil, "Asset types to prebuild (default css and js)")
	cmd.Flags().StringSlice("lang", nil, "Locales scripts are prebuilt for (default from the configuration)")

	return cmd
}
