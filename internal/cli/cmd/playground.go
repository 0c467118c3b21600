package cmd

import (
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/bnema/instapreview/internal/cli/model"
	"github.com/bnema/instapreview/internal/infrastructure/config"
)

const (
	playgroundCorpusSize = 500
	logFilePerm          = 0o600
)

var playgroundCmd = &cobra.Command{
	Use:   "playground",
	Short: "Interactive omnibox with instant previews",
	Long: `Type into a simulated address bar. Suggestions come from your history;
the selected one is previewed in real time and committed with Enter.

Logs go to the state directory while the playground is open, and edits to
config.toml are picked up without restarting.`,
	RunE: runPlayground,
}

func init() {
	rootCmd.AddCommand(playgroundCmd)
}

func runPlayground(_ *cobra.Command, _ []string) error {
	app := GetApp()
	if app == nil {
		return fmt.Errorf("app not initialized")
	}

	logPath, err := config.GetLogFile()
	if err != nil {
		return err
	}
	logFile, err := os.OpenFile(logPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, logFilePerm)
	if err != nil {
		return fmt.Errorf("open log file: %w", err)
	}
	defer logFile.Close()
	app.RedirectLogs(logFile)

	if err := app.WatchConfig(); err != nil {
		app.Logger().Warn().Err(err).Msg("config watch unavailable")
	}

	corpus, err := app.Seed(app.Ctx(), playgroundCorpusSize)
	if err != nil {
		return err
	}

	m := model.NewPlaygroundModel(app.Ctx(), app.Theme, app.PreviewConfig(), app.Top, corpus)
	p := tea.NewProgram(m, tea.WithAltScreen())
	_, err = p.Run()
	return err
}
