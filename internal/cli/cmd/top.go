package cmd

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/bnema/instapreview/internal/application/usecase"
	"github.com/bnema/instapreview/internal/cli/styles"
)

var (
	topLimit int
	topJSON  bool
)

var topCmd = &cobra.Command{
	Use:   "top",
	Short: "List top destinations by frecency",
	Long: `List the destinations that would be trusted for immediate preview.

The ranking is the one sealed into the preview cache at startup.`,
	RunE: runTop,
}

func init() {
	rootCmd.AddCommand(topCmd)

	topCmd.Flags().IntVarP(&topLimit, "limit", "n", 0, "maximum destinations (default from config)")
	topCmd.Flags().BoolVar(&topJSON, "json", false, "output as JSON")
}

func runTop(cmd *cobra.Command, _ []string) error {
	app := GetApp()
	if app == nil {
		return fmt.Errorf("app not initialized")
	}

	limit := topLimit
	if limit <= 0 {
		limit = app.Config.Preview.TopDestinationsLimit
	}
	uc := usecase.NewSeedTopDestinationsUseCase(app.History, nil, limit)
	ranked, err := uc.Ranked(app.Ctx())
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if topJSON {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(ranked)
	}

	if len(ranked) == 0 {
		fmt.Fprintln(out, app.Theme.Subtle.Render("No history yet. Record visits with 'instapreview visit URL'."))
		return nil
	}

	t := styles.NewStyledTable(app.Theme, styles.RankedTableColumns(), styles.RankedRows(ranked), 72, len(ranked)+1)
	fmt.Fprintln(out, t.View())
	return nil
}
