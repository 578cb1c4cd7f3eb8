package components

import (
	"errors"
	"strings"
	"testing"

	tea "charm.land/bubbletea/v2"

	"github.com/AYYAGARIKRISHNASRIKAR/wiki-quiz-generator/internal/quizgen"
)

func key(r rune) tea.KeyPressMsg {
	return tea.KeyPressMsg{Code: r, Text: string(r)}
}

func testQuestion() quizgen.Question {
	return quizgen.Question{
		Question:    "Which river flows through Paris?",
		Options:     []string{"A) Seine", "B) Thames", "C) Danube", "D) Tiber"},
		Answer:      "A",
		Difficulty:  quizgen.Easy,
		Section:     "Geography",
		Explanation: "The Seine.",
	}
}

func TestMultiChoice_NavigateAndSubmit(t *testing.T) {
	m := NewMultiChoice(testQuestion())
	if m.CorrectIndex != 0 {
		t.Fatalf("CorrectIndex = %d, want 0", m.CorrectIndex)
	}

	m, _ = m.Update(tea.KeyPressMsg{Code: tea.KeyDown})
	m, _ = m.Update(tea.KeyPressMsg{Code: tea.KeyDown})
	m, _ = m.Update(tea.KeyPressMsg{Code: tea.KeyUp})
	if m.Selected != 1 {
		t.Fatalf("Selected = %d, want 1", m.Selected)
	}

	m, _ = m.Update(tea.KeyPressMsg{Code: tea.KeyEnter})
	if !m.Submitted || m.ChosenIndex != 1 {
		t.Fatalf("submitted=%v chosen=%d, want true 1", m.Submitted, m.ChosenIndex)
	}
	if m.IsCorrect() {
		t.Error("B should not be correct")
	}
	if m.Answer() != "B" {
		t.Errorf("Answer() = %q, want B", m.Answer())
	}

	// Input after submission is ignored.
	m, _ = m.Update(key('a'))
	if m.ChosenIndex != 1 {
		t.Error("choice changed after submission")
	}
}

func TestMultiChoice_LetterShortcut(t *testing.T) {
	m := NewMultiChoice(testQuestion())
	m, _ = m.Update(key('a'))

	if !m.IsCorrect() {
		t.Fatal("pressing a should choose the correct option")
	}
	view := m.View()
	for _, want := range []string{"EASY", "Geography", "Which river", "A)  Seine", "D)  Tiber"} {
		if !strings.Contains(view, want) {
			t.Errorf("view missing %q", want)
		}
	}
}

func TestMultiChoice_BoundsAndUnknownKeys(t *testing.T) {
	m := NewMultiChoice(testQuestion())
	m, _ = m.Update(tea.KeyPressMsg{Code: tea.KeyUp})
	if m.Selected != 0 {
		t.Errorf("Selected = %d, want 0", m.Selected)
	}
	for range 10 {
		m, _ = m.Update(tea.KeyPressMsg{Code: tea.KeyDown})
	}
	if m.Selected != 3 {
		t.Errorf("Selected = %d, want 3", m.Selected)
	}
	m, _ = m.Update(key('z'))
	if m.Submitted {
		t.Error("unknown key submitted the question")
	}
	if m.Answer() != "" {
		t.Error("Answer() before submission should be empty")
	}
}

func TestProgressBar_Fill(t *testing.T) {
	tests := []struct {
		percent float64
		want    int
	}{
		{0, 0},
		{0.5, 10},
		{1, 20},
		{1.5, 20},
		{-1, 0},
	}
	for _, tt := range tests {
		if got := NewProgressBar("", tt.percent, false, 20).Fill(20); got != tt.want {
			t.Errorf("Fill at %.1f = %d, want %d", tt.percent, got, tt.want)
		}
	}
	if view := NewProgressBar("Score", 0.5, true, 40).View(); !strings.Contains(view, "50%") {
		t.Errorf("view %q missing percentage", view)
	}
}

func TestTextInput_Validation(t *testing.T) {
	errBad := errors.New("bad url")
	ti := NewTextInput("url", 0, func(s string) error {
		if s != "ok" {
			return errBad
		}
		return nil
	})

	ti.SetValue("nope")
	if err := ti.Submit(); !errors.Is(err, errBad) {
		t.Fatalf("Submit() = %v, want %v", err, errBad)
	}
	if !strings.Contains(ti.View(), "bad url") {
		t.Error("view should show the validation error")
	}

	ti, _ = ti.Update(key('x'))
	if ti.Err() != nil {
		t.Error("typing should clear the error")
	}

	ti.SetValue("ok")
	if err := ti.Submit(); err != nil {
		t.Fatalf("Submit() = %v", err)
	}
}
