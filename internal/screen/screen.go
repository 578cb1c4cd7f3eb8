// Package screen defines the contract between the terminal app and the
// screens it stacks.
package screen

import (
	tea "charm.land/bubbletea/v2"

	"github.com/AYYAGARIKRISHNASRIKAR/wiki-quiz-generator/internal/ui/layout"
)

// Screen is one page of the terminal app.
type Screen interface {
	Init() tea.Cmd

	Update(msg tea.Msg) (Screen, tea.Cmd)

	// View renders the content area, excluding header and footer.
	View(width, height int) string

	// Title is shown in the header.
	Title() string
}

// KeyHintProvider is implemented by screens with their own footer hints.
type KeyHintProvider interface {
	KeyHints() []layout.KeyHint
}

// StatusProvider is implemented by screens that show a status, such as
// quiz progress, on the right of the header.
type StatusProvider interface {
	Status() string
}
