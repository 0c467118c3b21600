package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/bnema/instapreview/internal/cli/styles"
	"github.com/bnema/instapreview/internal/domain/build"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Show version information",
	Run: func(cmd *cobra.Command, _ []string) {
		theme := styles.NewTheme()
		out := cmd.OutOrStdout()
		fmt.Fprintln(out, theme.Title.Render("instapreview")+" "+theme.Highlight.Render(buildInfo.Version))
		fmt.Fprintln(out, theme.Subtle.Render("commit  ")+buildInfo.Commit)
		fmt.Fprintln(out, theme.Subtle.Render("built   ")+buildInfo.BuildDate)
		fmt.Fprintln(out, theme.Subtle.Render("go      ")+buildInfo.GoVersion)
		fmt.Fprintln(out, theme.Subtle.Render(build.RepoURL()))
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
