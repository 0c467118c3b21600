package styles

import (
	"strconv"

	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/lipgloss"

	"github.com/bnema/instapreview/internal/domain/entity"
)

// NewStyledTable creates a themed table model.
func NewStyledTable(theme *Theme, columns []table.Column, rows []table.Row, width, height int) table.Model {
	t := table.New(
		table.WithColumns(columns),
		table.WithRows(rows),
		table.WithHeight(height),
		table.WithWidth(width),
	)

	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(theme.Border).
		BorderBottom(true).
		Foreground(theme.Accent).
		Bold(true)
	s.Selected = lipgloss.NewStyle()
	s.Cell = s.Cell.Foreground(theme.Text)

	t.SetStyles(s)
	return t
}

// RankedTableColumns returns columns for the top destinations table.
func RankedTableColumns() []table.Column {
	return []table.Column{
		{Title: "#", Width: 4},
		{Title: "URL", Width: 48},
		{Title: "Visits", Width: 8},
		{Title: "Score", Width: 8},
	}
}

// RankedRows converts ranked destinations to table rows.
func RankedRows(ranked []*entity.RankedDestination) []table.Row {
	rows := make([]table.Row, 0, len(ranked))
	for i, r := range ranked {
		rows = append(rows, table.Row{
			strconv.Itoa(i + 1),
			Truncate(r.URL, 48),
			strconv.FormatInt(r.Visits, 10),
			strconv.FormatFloat(r.Frecency, 'f', 0, 64),
		})
	}
	return rows
}

// TraceTableColumns returns columns for a scenario trace.
func TraceTableColumns() []table.Column {
	return []table.Column{
		{Title: "Step", Width: 5},
		{Title: "At", Width: 9},
		{Title: "Event", Width: 18},
		{Title: "Watcher", Width: 8},
		{Title: "Preview", Width: 30},
		{Title: "Address", Width: 30},
	}
}

// Truncate shortens s to max runes with an ellipsis.
func Truncate(s string, max int) string {
	r := []rune(s)
	if max <= 1 || len(r) <= max {
		return s
	}
	return string(r[:max-1]) + "…"
}
