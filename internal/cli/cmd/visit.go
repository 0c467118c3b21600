package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var (
	visitTitle string
	visitTimes int
)

var visitCmd = &cobra.Command{
	Use:   "visit URL",
	Short: "Record a visit in history",
	Long: `Record a visit so the destination ranks in the top destinations.

Examples:
  instapreview visit https://github.com/
  instapreview visit https://example.com/ --title "Example" --times 5`,
	Args: cobra.ExactArgs(1),
	RunE: runVisit,
}

func init() {
	rootCmd.AddCommand(visitCmd)

	visitCmd.Flags().StringVar(&visitTitle, "title", "", "page title")
	visitCmd.Flags().IntVar(&visitTimes, "times", 1, "number of visits to record")
}

func runVisit(cmd *cobra.Command, args []string) error {
	app := GetApp()
	if app == nil {
		return fmt.Errorf("app not initialized")
	}

	if err := app.RecordVisitUC.Execute(app.Ctx(), args[0], visitTitle, visitTimes); err != nil {
		return err
	}

	fmt.Fprintln(cmd.OutOrStdout(), app.Theme.SuccessStyle.Render("✓")+" recorded "+args[0])
	return nil
}
