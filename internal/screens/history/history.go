// Package history is the home screen of the terminal app: the list of
// generated quizzes, from which a stored quiz can be replayed or a new one
// started.
package history

import (
	"context"
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/AYYAGARIKRISHNASRIKAR/wiki-quiz-generator/internal/router"
	"github.com/AYYAGARIKRISHNASRIKAR/wiki-quiz-generator/internal/screen"
	"github.com/AYYAGARIKRISHNASRIKAR/wiki-quiz-generator/internal/screens/play"
	"github.com/AYYAGARIKRISHNASRIKAR/wiki-quiz-generator/internal/store"
	"github.com/AYYAGARIKRISHNASRIKAR/wiki-quiz-generator/internal/ui/layout"
	"github.com/AYYAGARIKRISHNASRIKAR/wiki-quiz-generator/internal/ui/theme"
)

// Limit caps the number of quizzes listed.
const Limit = 50

// Service lists quizzes and backs the player screens it opens.
type Service interface {
	play.Service
	List(ctx context.Context, limit int) ([]store.QuizSummary, error)
}

type historyLoadedMsg struct {
	Quizzes []store.QuizSummary
	Err     error
}

type HistoryScreen struct {
	ctx      context.Context
	svc      Service
	quizzes  []store.QuizSummary
	selected int
	loaded   bool
	errMsg   string
}

var _ screen.Screen = (*HistoryScreen)(nil)
var _ screen.KeyHintProvider = (*HistoryScreen)(nil)

func New(ctx context.Context, svc Service) *HistoryScreen {
	return &HistoryScreen{ctx: ctx, svc: svc}
}

func (s *HistoryScreen) Init() tea.Cmd {
	return s.reload()
}

func (s *HistoryScreen) reload() tea.Cmd {
	ctx, svc := s.ctx, s.svc
	return func() tea.Msg {
		quizzes, err := svc.List(ctx, Limit)
		return historyLoadedMsg{Quizzes: quizzes, Err: err}
	}
}

func (s *HistoryScreen) Title() string {
	return "History"
}

func (s *HistoryScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "N", Description: "New quiz"},
		{Key: "Enter", Description: "Replay"},
		{Key: "↑↓", Description: "Navigate"},
		{Key: "R", Description: "Refresh"},
		{Key: "Esc", Description: "Quit"},
	}
}

func (s *HistoryScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case historyLoadedMsg:
		s.loaded = true
		if msg.Err != nil {
			s.errMsg = msg.Err.Error()
			return s, nil
		}
		s.errMsg = ""
		s.quizzes = msg.Quizzes
		s.selected = min(s.selected, max(len(s.quizzes)-1, 0))
		return s, nil

	case tea.KeyPressMsg:
		switch msg.String() {
		case "esc", "q":
			return s, func() tea.Msg { return router.PopScreenMsg{} }
		case "up", "k":
			if s.selected > 0 {
				s.selected--
			}
		case "down", "j":
			if s.selected < len(s.quizzes)-1 {
				s.selected++
			}
		case "n":
			return s, s.push(play.New(s.ctx, s.svc, ""))
		case "r":
			return s, s.reload()
		case "enter":
			if len(s.quizzes) == 0 {
				return s, s.push(play.New(s.ctx, s.svc, ""))
			}
			return s, s.push(play.Open(s.ctx, s.svc, s.quizzes[s.selected].ID))
		}
	}
	return s, nil
}

func (s *HistoryScreen) push(next screen.Screen) tea.Cmd {
	return func() tea.Msg { return router.PushScreenMsg{Screen: next} }
}

func (s *HistoryScreen) View(width, height int) string {
	center := lipgloss.NewStyle().Width(width).Align(lipgloss.Center)
	switch {
	case s.errMsg != "":
		return center.Foreground(theme.Error).Render(fmt.Sprintf("\n\nError: %s", s.errMsg))
	case !s.loaded:
		return center.Foreground(theme.TextDim).Render("\n\n  Loading quizzes...")
	case len(s.quizzes) == 0:
		return center.Foreground(theme.TextDim).Italic(true).
			Render("\n\n  No quizzes yet. Press N to generate one from a Wikipedia article.")
	}

	var b strings.Builder
	b.WriteString("\n")
	for i, q := range s.quizzes {
		prefix := "  "
		style := theme.Unselected
		if i == s.selected {
			prefix = "▸ "
			style = theme.Selected
		}
		line := fmt.Sprintf("%s%s  %s", prefix, q.CreatedAt.Local().Format("Jan 02, 2006 15:04"), q.Title)
		b.WriteString(style.Render(line))
		if i == s.selected {
			b.WriteString("  " + theme.Dimmed.Render(q.URL))
		}
		b.WriteString("\n")
	}
	return b.String()
}
