// Package scenario replays scripted omnibox sessions against the in-memory
// browser host and records what the preview engine did at each step.
package scenario

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/bnema/instapreview/internal/domain/entity"
	"github.com/bnema/instapreview/internal/domain/preview"
)

// Event names accepted in a script.
const (
	EventRows             = "rows"
	EventSelect           = "select"
	EventMove             = "move"
	EventShow             = "show"
	EventHide             = "hide"
	EventAdvance          = "advance"
	EventKey              = "key"
	EventClick            = "click"
	EventFocus            = "focus"
	EventSwitchTab        = "switch_tab"
	EventCommitNavigation = "commit_navigation"
	EventClose            = "close"
)

// ErrInvalidScript wraps every script validation failure.
var ErrInvalidScript = errors.New("invalid scenario")

// Script is a scenario file.
type Script struct {
	Name string `yaml:"name"`
	// Top seeds the top-destinations cache. Nil means the caller seeds it.
	Top []string `yaml:"top"`
	// Tabs are extra tabs opened after the initial blank tab.
	Tabs []string `yaml:"tabs"`
	// Titles served by the simulated network, by URL.
	Titles map[string]string `yaml:"titles"`
	// DeferCommits keeps navigations pending until commit_navigation.
	DeferCommits bool   `yaml:"defer_commits"`
	Steps        []Step `yaml:"steps"`
}

// Step is one scripted event.
type Step struct {
	Event    string        `yaml:"event"`
	Rows     []Row         `yaml:"rows,omitempty"`
	Index    int           `yaml:"index,omitempty"`
	Delta    int           `yaml:"delta,omitempty"`
	Duration time.Duration `yaml:"duration,omitempty"`
	Key      string        `yaml:"key,omitempty"`
	Shift    bool          `yaml:"shift,omitempty"`
	Ctrl     bool          `yaml:"ctrl,omitempty"`
	Meta     bool          `yaml:"meta,omitempty"`
	Alt      bool          `yaml:"alt,omitempty"`
}

// Row is a popup row.
type Row struct {
	Destination string `yaml:"destination"`
	Kind        string `yaml:"kind"`
	Title       string `yaml:"title,omitempty"`
}

// Load reads and validates a script file.
func Load(path string) (*Script, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read scenario: %w", err)
	}
	return Parse(data)
}

// Parse decodes and validates a script.
func Parse(data []byte) (*Script, error) {
	var s Script
	if err := yaml.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidScript, err)
	}
	if err := s.Validate(); err != nil {
		return nil, err
	}
	return &s, nil
}

// Validate checks every step.
func (s *Script) Validate() error {
	if len(s.Steps) == 0 {
		return fmt.Errorf("%w: no steps", ErrInvalidScript)
	}
	for i := range s.Steps {
		if err := s.Steps[i].validate(len(s.Tabs) + 1); err != nil {
			return fmt.Errorf("%w: step %d (%s): %v", ErrInvalidScript, i+1, s.Steps[i].Event, err)
		}
	}
	return nil
}

func (st *Step) validate(tabs int) error {
	st.Event = strings.ToLower(strings.TrimSpace(st.Event))
	switch st.Event {
	case EventRows:
		for _, r := range st.Rows {
			if _, ok := entity.ParseSuggestionKind(r.Kind); !ok {
				return fmt.Errorf("unknown suggestion kind %q", r.Kind)
			}
		}
	case EventAdvance:
		if st.Duration <= 0 {
			return fmt.Errorf("duration must be positive")
		}
	case EventKey:
		if _, ok := preview.ParseKey(st.Key); !ok {
			return fmt.Errorf("unknown key %q", st.Key)
		}
	case EventSwitchTab:
		if st.Index < 0 || st.Index >= tabs {
			return fmt.Errorf("tab index %d out of range", st.Index)
		}
	case EventSelect, EventMove, EventShow, EventHide, EventClick, EventFocus,
		EventCommitNavigation, EventClose:
	default:
		return fmt.Errorf("unknown event")
	}
	return nil
}

func (r Row) suggestion() entity.Suggestion {
	kind, _ := entity.ParseSuggestionKind(r.Kind)
	return entity.Suggestion{Destination: r.Destination, Kind: kind, Title: r.Title}
}

func (st Step) keyEvent() preview.KeyEvent {
	key, _ := preview.ParseKey(st.Key)
	return preview.KeyEvent{Key: key, Shift: st.Shift, Ctrl: st.Ctrl, Meta: st.Meta, Alt: st.Alt}
}
