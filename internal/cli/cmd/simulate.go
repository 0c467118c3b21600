package cmd

import (
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/charmbracelet/bubbles/table"
	"github.com/spf13/cobra"

	"github.com/bnema/instapreview/internal/cli/scenario"
	"github.com/bnema/instapreview/internal/cli/styles"
	"github.com/bnema/instapreview/internal/domain/preview"
)

var (
	simulateJSON    bool
	simulateHistory bool
)

var simulateCmd = &cobra.Command{
	Use:   "simulate SCRIPT.yaml",
	Short: "Replay a scripted address-bar session",
	Long: `Replay a YAML script against a simulated browser window on a virtual
clock and print the state after every step.

Scripts that list no top destinations use an empty cache, or the history
ranking with --history.`,
	Args: cobra.ExactArgs(1),
	RunE: runSimulate,
}

func init() {
	rootCmd.AddCommand(simulateCmd)

	simulateCmd.Flags().BoolVar(&simulateJSON, "json", false, "output the trace as JSON")
	simulateCmd.Flags().BoolVar(&simulateHistory, "history", false, "seed top destinations from history")
}

func runSimulate(cmd *cobra.Command, args []string) error {
	app := GetApp()
	if app == nil {
		return fmt.Errorf("app not initialized")
	}

	script, err := scenario.Load(args[0])
	if err != nil {
		return err
	}

	var top *preview.TopDestinations
	if simulateHistory {
		if err := app.SeedTopUC.Execute(app.Ctx()); err != nil {
			return err
		}
		top = app.Top
	}

	trace, err := scenario.NewRunner(app.PreviewConfig(), top).Run(app.Ctx(), script)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if simulateJSON {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(trace)
	}

	rows := make([]table.Row, 0, len(trace.Frames))
	for _, f := range trace.Frames {
		rows = append(rows, table.Row{
			strconv.Itoa(f.Step),
			f.At.String(),
			f.Event,
			f.Watcher,
			styles.Truncate(f.Preview, 30),
			styles.Truncate(f.Address, 30),
		})
	}

	if trace.Name != "" {
		fmt.Fprintln(out, app.Theme.Title.Render(trace.Name))
	}
	t := styles.NewStyledTable(app.Theme, styles.TraceTableColumns(), rows, 110, len(rows)+1)
	fmt.Fprintln(out, t.View())
	fmt.Fprintln(out, app.Theme.Subtle.Render(fmt.Sprintf("previews created %d, destroyed %d", trace.Created, trace.Destroyed)))
	return nil
}
