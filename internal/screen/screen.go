// Package screen defines what the router needs from a TUI screen.
package screen

import (
	tea "charm.land/bubbletea/v2"

	"github.com/chutelab/chute/internal/ui/layout"
)

// Screen is one page of the TUI, such as the exam form or the results.
type Screen interface {
	Init() tea.Cmd
	Update(msg tea.Msg) (Screen, tea.Cmd)

	// View renders the area between header and footer.
	View(width, height int) string

	// Title is shown in the header.
	Title() string
}

// KeyHintProvider is implemented by screens with their own footer hints.
type KeyHintProvider interface {
	KeyHints() []layout.KeyHint
}

// StatusProvider is implemented by screens that show a status, such as the
// trial count, on the right of the header.
type StatusProvider interface {
	Status() string
}
