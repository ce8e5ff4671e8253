package commands

import (
	"github.com/spf13/cobra"
	"go.trai.ch/assets/internal/adapters/watcher"
	"go.trai.ch/assets/internal/app"
)

func (c *CLI) newWatchCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "watch",
		Short: "Prebuild, then rebuild whenever a source, catalog or layout changes",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			values, _ := cmd.Flags().GetStringSlice("type")
			types, err := parseTypes(values)
			if err != nil {
				return err
			}

			config, _ := cmd.Flags().GetString("config")
			locales, _ := cmd.Flags().GetStringSlice("lang")
			debounce, _ := cmd.Flags().GetDuration("debounce")

			return c.app.Watch(cmd.Context(), app.WatchOptions{
				Config:   config,
				Types:    types,
				Locales:  locales,
				Debounce: debounce,
			})
		},
	}

	cmd.Flags().StringSliceP("type", "t", nil, "Asset types to watch (default css and js)")
	cmd.Flags().StringSlice("lang", nil, "Locales scripts are built for (default from the configuration)")
	cmd.Flags().Duration("debounce", watcher.DefaultDebounceWindow, "Quiet period after the last change before rebuilding")

	return cmd
}
