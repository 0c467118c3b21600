package simhost

import (
	"github.com/bnema/instapreview/internal/application/port"
	"github.com/bnema/instapreview/internal/domain/entity"
	"github.com/bnema/instapreview/internal/domain/preview"
)

const defaultMaxRows = 6

// Popup is an in-memory suggestion popup.
type Popup struct {
	open     bool
	rows     []entity.Suggestion
	selected int
	maxRows  int

	shown  hub[struct{}]
	hidden hub[struct{}]
	click  hub[struct{}]
}

var _ port.Popup = (*Popup)(nil)

func newPopup() *Popup {
	return &Popup{selected: -1, maxRows: defaultMaxRows}
}

// IsOpen reports whether the popup is showing.
func (p *Popup) IsOpen() bool { return p.open }

// SelectedSuggestion returns the highlighted row.
func (p *Popup) SelectedSuggestion() (entity.Suggestion, bool) {
	if p.selected < 0 || p.selected >= len(p.rows) {
		return entity.Suggestion{}, false
	}
	return p.rows[p.selected], true
}

// MaxRows returns the visible row count.
func (p *Popup) MaxRows() int { return p.maxRows }

// SetMaxRows sets the visible row count.
func (p *Popup) SetMaxRows(rows int) { p.maxRows = rows }

// OnShown subscribes to popup opening.
func (p *Popup) OnShown(fn func()) func() { return p.shown.add(voidFn(fn)) }

// OnHidden subscribes to popup closing.
func (p *Popup) OnHidden(fn func()) func() { return p.hidden.add(voidFn(fn)) }

// OnClick subscribes to row clicks.
func (p *Popup) OnClick(fn func()) func() { return p.click.add(voidFn(fn)) }

// SetRows replaces the rows and clears the selection.
func (p *Popup) SetRows(rows []entity.Suggestion) {
	p.rows = append([]entity.Suggestion(nil), rows...)
	p.selected = -1
}

// Rows returns the current rows.
func (p *Popup) Rows() []entity.Suggestion {
	return append([]entity.Suggestion(nil), p.rows...)
}

// Select highlights row i; out of range clears the selection.
func (p *Popup) Select(i int) {
	if i < 0 || i >= len(p.rows) {
		p.selected = -1
		return
	}
	p.selected = i
}

// SelectedIndex returns the highlighted row index or -1.
func (p *Popup) SelectedIndex() int { return p.selected }

// MoveSelection moves the highlight by delta, wrapping through "no selection".
func (p *Popup) MoveSelection(delta int) {
	n := len(p.rows)
	if n == 0 {
		p.selected = -1
		return
	}
	// positions: -1 (none), 0..n-1
	pos := p.selected + 1
	pos = ((pos+delta)%(n+1) + n + 1) % (n + 1)
	p.selected = pos - 1
}

// Show opens the popup and fires the shown event.
func (p *Popup) Show() {
	if p.open {
		return
	}
	p.open = true
	p.shown.emit(struct{}{})
}

// Hide closes the popup and fires the hidden event.
func (p *Popup) Hide() {
	if !p.open {
		return
	}
	p.open = false
	p.hidden.emit(struct{}{})
}

// Click fires the click event on the highlighted row.
func (p *Popup) Click() {
	p.click.emit(struct{}{})
}

// Listeners returns the number of live subscriptions.
func (p *Popup) Listeners() int {
	return p.shown.len() + p.hidden.len() + p.click.len()
}

// AddressBar is an in-memory location entry.
type AddressBar struct {
	text string
	keys hub[preview.KeyEvent]
}

var _ port.AddressBar = (*AddressBar)(nil)

// Text returns the entry text.
func (a *AddressBar) Text() string { return a.text }

// SetText replaces the entry text.
func (a *AddressBar) SetText(text string) { a.text = text }

// OnKeyPress subscribes to keypresses.
func (a *AddressBar) OnKeyPress(fn func(preview.KeyEvent)) func() { return a.keys.add(fn) }

// Press delivers a keypress.
func (a *AddressBar) Press(ev preview.KeyEvent) { a.keys.emit(ev) }

// Listeners returns the number of keypress subscriptions.
func (a *AddressBar) Listeners() int { return a.keys.len() }
