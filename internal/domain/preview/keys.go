package preview

import "strings"

// Key identifies an address-bar key the preview reacts to.
type Key int

const (
	KeyOther Key = iota
	KeyEnter
	KeyReturn
	KeyCancel
	KeyEscape
	KeyBackspace
	KeyDelete
	KeyHome
	KeyEnd
	KeyLeft
	KeyRight
)

var keyNames = map[string]Key{
	"enter":     KeyEnter,
	"return":    KeyReturn,
	"cancel":    KeyCancel,
	"escape":    KeyEscape,
	"esc":       KeyEscape,
	"backspace": KeyBackspace,
	"delete":    KeyDelete,
	"home":      KeyHome,
	"end":       KeyEnd,
	"left":      KeyLeft,
	"right":     KeyRight,
}

// ParseKey maps a key name ("enter", "esc", ...) to a Key.
func ParseKey(name string) (Key, bool) {
	k, ok := keyNames[strings.ToLower(strings.TrimSpace(name))]
	return k, ok
}

// KeyEvent is an address-bar keypress with its modifier state.
type KeyEvent struct {
	Key   Key
	Shift bool
	Ctrl  bool
	Meta  bool
	Alt   bool
}

// KeyAction is what a keypress means for the preview.
type KeyAction int

const (
	ActionNone KeyAction = iota
	ActionCommit
	ActionCancel
)

// String returns the action name.
func (a KeyAction) String() string {
	switch a {
	case ActionCommit:
		return "commit"
	case ActionCancel:
		return "cancel"
	default:
		return "none"
	}
}

// ClassifyKey maps a keypress to a preview action. Enter without Shift, Ctrl
// or Meta commits; with any of them the user asked for a new tab or window, so
// the preview is cancelled. Editing and caret keys cancel.
func ClassifyKey(ev KeyEvent) KeyAction {
	switch ev.Key {
	case KeyEnter, KeyReturn:
		if ev.Shift || ev.Ctrl || ev.Meta {
			return ActionCancel
		}
		return ActionCommit
	case KeyCancel, KeyEscape, KeyBackspace, KeyDelete, KeyHome, KeyEnd, KeyLeft, KeyRight:
		return ActionCancel
	default:
		return ActionNone
	}
}
