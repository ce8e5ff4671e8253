// Package commands implements the CLI commands for the assets tool.
package commands

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"go.trai.ch/assets/internal/app"
	"go.trai.ch/assets/internal/build"
	"go.trai.ch/assets/internal/core/domain"
	"go.trai.ch/assets/internal/engine/prebuild"
)

// CLI represents the command line interface for assets.
type CLI struct {
	app     Application
	rootCmd *cobra.Command
	quiet   func(bool)
}

// Application represents the application logic interface.
type Application interface {
	Build(ctx context.Context, opts app.BuildOptions) (*domain.BuildResult, error)
	Prebuild(ctx context.Context, opts app.PrebuildOptions) (prebuild.Summary, error)
	Clean(ctx context.Context, opts app.CleanOptions) error
	Watch(ctx context.Context, opts app.WatchOptions) error
}

// New creates a new CLI instance with the given app.
func New(a Application) *CLI {
	rootCmd := &cobra.Command{
		Use:           "assets",
		Short:         "Aggregate, convert and minify stylesheets and scripts",
		SilenceUsage:  true,
		SilenceErrors: true,
		Version:       build.Version,
	}

	rootCmd.SetVersionTemplate(fmt.Sprintf(
		"{{.Name}} version {{.Version}} (commit: %s, date: %s)\n",
		build.Commit,
		build.Date,
	))
	rootCmd.InitDefaultVersionFlag()
	rootCmd.Flags().Lookup("version").Usage = "Print the application version"

	rootCmd.InitDefaultHelpFlag()
	rootCmd.Flags().Lookup("help").Usage = "Show help for command"

	rootCmd.PersistentFlags().StringP("config", "c", "", "Configuration file or the directory holding "+domain.ConfigFileName)
	rootCmd.PersistentFlags().BoolP("quiet", "q", false, "Only log warnings and errors")

	c := &CLI{
		app:     a,
		rootCmd: rootCmd,
	}

	rootCmd.PersistentPreRun = func(cmd *cobra.Command, _ []string) {
		if c.quiet != nil {
			quiet, _ := cmd.Flags().GetBool("quiet")
			c.quiet(quiet)
		}
	}

	rootCmd.AddCommand(c.newBuildCmd())
	rootCmd.AddCommand(c.newPrebuildCmd())
	rootCmd.AddCommand(c.newCleanCmd())
	rootCmd.AddCommand(c.newWatchCmd())
	rootCmd.AddCommand(c.newVersionCmd())

	return c
}

// WithQuietSwitch registers fn to receive the value of --quiet before a command runs.
func (c *CLI) WithQuietSwitch(fn func(bool)) *CLI {
	c.quiet = fn
	return c
}

// Execute runs the root command with the given context.
func (c *CLI) Execute(ctx context.Context) error {
	c.rootCmd.SetContext(ctx)
	return c.rootCmd.Execute()
}

// SetArgs sets the arguments for the root command. Used for testing.
func (c *CLI) SetArgs(args []string) {
	c.rootCmd.SetArgs(args)
}

// SetOutput sets the output and error streams for the root command. Used for testing.
func (c *CLI) SetOutput(out, err io.Writer) {
	c.rootCmd.SetOut(out)
	c.rootCmd.SetErr(err)
}

// parseTypes converts the values of a --type flag. No value selects every type.
func parseTypes(values []string) ([]domain.AssetType, error) {
	types := make([]domain.AssetType, 0, len(values))
	for _, v := range values {
		t, err := domain.ParseAssetType(v)
		if err != nil {
			return nil, err
		}
		types = append(types, t)
	}
	return types, nil
}
