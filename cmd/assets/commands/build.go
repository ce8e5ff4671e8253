package commands

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.trai.ch/assets/internal/app"
	"go.trai.ch/assets/internal/core/domain"
)

func (c *CLI) newBuildCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "build",
		Short: "Build the package of one page and print its references",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			typ, _ := cmd.Flags().GetString("type")
			t, err := domain.ParseAssetType(typ)
			if err != nil {
				return err
			}

			config, _ := cmd.Flags().GetString("config")
			controller, _ := cmd.Flags().GetString("controller")
			action, _ := cmd.Flags().GetString("action")
			plugin, _ := cmd.Flags().GetString("plugin")
			layouts, _ := cmd.Flags().GetStringSlice("layout")
			pass, _ := cmd.Flags().GetStringSlice("pass")
			locale, _ := cmd.Flags().GetString("lang")

			res, err := c.app.Build(cmd.Context(), app.BuildOptions{
				Config: config,
				Type:   t,
				Page: domain.PageContext{
					Controller: controller,
					Action:     action,
					Plugin:     plugin,
					Pass:       pass,
					Layouts:    layouts,
				},
				Locale: locale,
			})
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			for _, ext := range res.Externals {
				_, _ = fmt.Fprintln(out, ext)
			}
			for _, ref := range res.References() {
				_, _ = fmt.Fprintln(out, res.URL(t.String(), ref))
			}
			return nil
		},
	}

	cmd.Flags().StringP("type", "t", string(domain.AssetTypeCSS), "Asset type to build (css or js)")
	cmd.Flags().String("controller", "", "Controller of the page")
	cmd.Flags().String("action", "", "Action of the page")
	cmd.Flags().String("plugin", "", "Plugin the page belongs to")
	cmd.Flags().StringSliceP("layout", "l", []string{"default"}, "Layouts of the page")
	cmd.Flags().StringSlice("pass", nil, "Passed arguments of the page")
	cmd.Flags().String("lang", "", "Locale scripts are translated to")

	return cmd
}
