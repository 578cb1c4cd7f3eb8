package router

import (
	"testing"

	tea "charm.land/bubbletea/v2"

	"github.com/AYYAGARIKRISHNASRIKAR/wiki-quiz-generator/internal/screen"
)

type stubScreen struct {
	title   string
	inits   int
	updates int
}

func (s *stubScreen) Init() tea.Cmd                             { s.inits++; return nil }
func (s *stubScreen) Update(tea.Msg) (screen.Screen, tea.Cmd) { s.updates++; return s, nil }
func (s *stubScreen) View(int, int) string                    { return s.title }
func (s *stubScreen) Title() string                           { return s.title }

func TestNavigation(t *testing.T) {
	history := &stubScreen{title: "history"}
	r := New(history)

	play := &stubScreen{title: "play"}
	r.Update(PushScreenMsg{Screen: play})
	if r.Depth() != 2 || r.Active() != play || play.inits != 1 {
		t.Fatalf("after push: depth=%d active=%q inits=%d", r.Depth(), r.Active().Title(), play.inits)
	}

	next := &stubScreen{title: "next quiz"}
	r.Update(ReplaceScreenMsg{Screen: next})
	if r.Depth() != 2 || r.View(80, 24) != "next quiz" || next.inits != 1 {
		t.Fatalf("after replace: depth=%d view=%q inits=%d", r.Depth(), r.View(80, 24), next.inits)
	}

	r.Update(PopScreenMsg{})
	if r.Active() != history {
		t.Fatalf("after pop: active=%q, want history", r.Active().Title())
	}

	// The bottom screen stays.
	r.Update(PopScreenMsg{})
	if r.Depth() != 1 {
		t.Errorf("depth = %d after popping the bottom screen, want 1", r.Depth())
	}
}

func TestUpdateForwardsToActive(t *testing.T) {
	bottom := &stubScreen{title: "bottom"}
	top := &stubScreen{title: "top"}
	r := New(bottom)
	r.Push(top)

	r.Update(tea.KeyPressMsg{Code: tea.KeyEnter})

	if top.updates != 1 || bottom.updates != 0 {
		t.Errorf("updates top=%d bottom=%d, want 1 and 0", top.updates, bottom.updates)
	}
}
