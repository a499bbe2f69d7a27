package components

import (
	"charm.land/bubbles/v2/key"

	"github.com/abhisek/climassist/internal/ui/layout"
)

// KeyMap holds the bindings shared by every screen.
type KeyMap struct {
	Up     key.Binding
	Down   key.Binding
	Prev   key.Binding
	Next   key.Binding
	Tab    key.Binding
	Untab  key.Binding
	Select key.Binding
	Submit key.Binding
	Retry  key.Binding
	Back   key.Binding
	Quit   key.Binding
}

// Keys is the application key map.
var Keys = KeyMap{
	Up: key.NewBinding(
		key.WithKeys("up", "k"),
		key.WithHelp("↑", "Up"),
	),
	Down: key.NewBinding(
		key.WithKeys("down", "j"),
		key.WithHelp("↓", "Down"),
	),
	Prev: key.NewBinding(
		key.WithKeys("left", "h", "p"),
		key.WithHelp("←", "Previous"),
	),
	Next: key.NewBinding(
		key.WithKeys("right", "l", "n"),
		key.WithHelp("→", "Next"),
	),
	Tab: key.NewBinding(
		key.WithKeys("tab"),
		key.WithHelp("Tab", "Next question"),
	),
	Untab: key.NewBinding(
		key.WithKeys("shift+tab"),
		key.WithHelp("Shift+Tab", "Previous question"),
	),
	Select: key.NewBinding(
		key.WithKeys("enter", "space"),
		key.WithHelp("Enter", "Select"),
	),
	Submit: key.NewBinding(
		key.WithKeys("s"),
		key.WithHelp("s", "Submit"),
	),
	Retry: key.NewBinding(
		key.WithKeys("r"),
		key.WithHelp("r", "Retake"),
	),
	Back: key.NewBinding(
		key.WithKeys("esc"),
		key.WithHelp("Esc", "Back"),
	),
	Quit: key.NewBinding(
		key.WithKeys("ctrl+c"),
		key.WithHelp("Ctrl+C", "Quit"),
	),
}

// Hints converts enabled bindings into footer hints.
func Hints(bindings ...key.Binding) []layout.KeyHint {
	hints := make([]layout.KeyHint, 0, len(bindings))
	for _, b := range bindings {
		if !b.Enabled() {
			continue
		}
		h := b.Help()
		hints = append(hints, layout.KeyHint{Key: h.Key, Description: h.Desc})
	}
	return hints
}
