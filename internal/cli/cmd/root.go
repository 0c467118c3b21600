// Package cmd provides Cobra CLI commands for instapreview.
package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/bnema/instapreview/internal/cli"
	"github.com/bnema/instapreview/internal/domain/build"
)

var (
	app       *cli.App
	buildInfo build.Info
	rootCmd   = &cobra.Command{
		Use:   "instapreview",
		Short: "Instant previews for address-bar suggestions",
		Long: `instapreview - load the selected address-bar suggestion in a hidden
page while you are still choosing, and swap it in when you press Enter.

Previews for low-confidence suggestions are held back for a few seconds;
destinations you type or visit often load at once. The engine runs against a
simulated browser window so its behavior can be scripted and explored.

Use 'instapreview playground' for an interactive omnibox, or
'instapreview simulate SCRIPT.yaml' to replay a scripted session.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			// Skip initialization for commands that don't need app context
			switch cmd.Name() {
			case "help", "completion", "version", "path", "schema":
				return nil
			}

			var err error
			app, err = cli.NewApp()
			if err != nil {
				return fmt.Errorf("initialize app: %w", err)
			}
			app.BuildInfo = buildInfo
			return nil
		},
		PersistentPostRun: func(_ *cobra.Command, _ []string) {
			if app != nil {
				_ = app.Close()
			}
		},
	}
)

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// GetApp returns the initialized app (for use by subcommands).
func GetApp() *cli.App {
	return app
}

// SetBuildInfo sets the build information (called from main before Execute).
func SetBuildInfo(info build.Info) {
	buildInfo = info
}
