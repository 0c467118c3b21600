package styles

import (
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/lipgloss"
)

const urlInputLimit = 2048

// NewURLInput returns the playground's address-bar entry.
func NewURLInput(theme *Theme) textinput.Model {
	ti := textinput.New()
	ti.Placeholder = "type a URL or search history"
	ti.Prompt = "→ "
	ti.CharLimit = urlInputLimit
	ti.PromptStyle = lipgloss.NewStyle().Foreground(theme.Accent).Bold(true)
	ti.TextStyle = lipgloss.NewStyle().Foreground(theme.Text)
	ti.PlaceholderStyle = lipgloss.NewStyle().Foreground(theme.Muted).Italic(true)
	ti.Cursor.Style = lipgloss.NewStyle().Foreground(theme.Accent)
	return ti
}

// InputBox frames input, highlighted while it has focus.
func (t *Theme) InputBox(input string, focused bool) string {
	if focused {
		return t.InputFocused.Render(input)
	}
	return t.Input.Render(input)
}
