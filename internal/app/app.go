// Package app is the root Bubble Tea model of the terminal quiz player.
package app

import (
	"context"
	"fmt"
	"os"

	tea "charm.land/bubbletea/v2"

	"github.com/AYYAGARIKRISHNASRIKAR/wiki-quiz-generator/internal/router"
	"github.com/AYYAGARIKRISHNASRIKAR/wiki-quiz-generator/internal/screen"
	"github.com/AYYAGARIKRISHNASRIKAR/wiki-quiz-generator/internal/screens/history"
	"github.com/AYYAGARIKRISHNASRIKAR/wiki-quiz-generator/internal/screens/play"
	"github.com/AYYAGARIKRISHNASRIKAR/wiki-quiz-generator/internal/ui/layout"
)

// AppModel frames the active screen with header and footer.
type AppModel struct {
	router *router.Router
	width  int
	height int
}

// newAppModel starts on the quiz history, or directly on a quiz when url
// is set.
func newAppModel(ctx context.Context, svc history.Service, url string) AppModel {
	var initial screen.Screen = history.New(ctx, svc)
	if url != "" {
		initial = play.New(ctx, svc, url)
	}
	return AppModel{router: router.New(initial)}
}

func (m AppModel) Init() tea.Cmd {
	return m.router.Active().Init()
}

func (m AppModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyPressMsg:
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}

	case router.PopScreenMsg:
		// Leaving the bottom screen leaves the app.
		if m.router.Depth() == 1 {
			return m, tea.Quit
		}
	}

	cmd := m.router.Update(msg)
	return m, cmd
}

func (m AppModel) View() tea.View {
	v := tea.NewView("")
	v.AltScreen = true

	if m.width == 0 || m.height == 0 {
		return v
	}
	if layout.IsTooSmall(m.width, m.height) {
		v.SetContent(layout.RenderMinSizeMessage(m.width, m.height))
		return v
	}

	active := m.router.Active()
	var status string
	if sp, ok := active.(screen.StatusProvider); ok {
		status = sp.Status()
	}
	header := layout.RenderHeader(active.Title(), status, m.width)

	hints := []layout.KeyHint{{Key: "Ctrl+C", Description: "Quit"}}
	if kp, ok := active.(screen.KeyHintProvider); ok {
		hints = append(kp.KeyHints(), hints...)
	}
	footer := layout.RenderFooter(hints, m.width)

	content := m.router.View(m.width-4, m.height)
	v.SetContent(layout.RenderFrame(header, content, footer, m.width, m.height))
	return v
}

// Run starts the terminal player and blocks until the user quits.
func Run(ctx context.Context, svc history.Service, url string) error {
	p := tea.NewProgram(newAppModel(ctx, svc, url), tea.WithContext(ctx))
	if _, err := p.Run(); err != nil {
		fmt.Fprintln(os.Stderr, "Error running program:", err)
		return err
	}
	return nil
}
