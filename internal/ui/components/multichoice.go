package components

import (
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"

	"github.com/AYYAGARIKRISHNASRIKAR/wiki-quiz-generator/internal/quizgen"
	"github.com/AYYAGARIKRISHNASRIKAR/wiki-quiz-generator/internal/ui/theme"
)

// MultiChoice presents one quiz question and collects an answer. Options
// can be chosen with the arrow keys and enter, or directly by letter.
type MultiChoice struct {
	Question     quizgen.Question
	Choices      []string
	CorrectIndex int
	Selected     int
	Submitted    bool
	ChosenIndex  int
}

// NewMultiChoice creates a selector for q.
func NewMultiChoice(q quizgen.Question) MultiChoice {
	return MultiChoice{
		Question:     q,
		Choices:      q.Choices(),
		CorrectIndex: q.AnswerIndex(),
		ChosenIndex:  -1,
	}
}

func (m MultiChoice) Init() tea.Cmd {
	return nil
}

// Update handles keyboard navigation and selection. Once submitted the
// component ignores input.
func (m MultiChoice) Update(msg tea.Msg) (MultiChoice, tea.Cmd) {
	if m.Submitted {
		return m, nil
	}

	kmsg, ok := msg.(tea.KeyPressMsg)
	if !ok {
		return m, nil
	}

	key := kmsg.String()
	switch key {
	case "up", "k":
		if m.Selected > 0 {
			m.Selected--
		}
	case "down", "j":
		if m.Selected < len(m.Choices)-1 {
			m.Selected++
		}
	case "enter":
		m.submit(m.Selected)
	default:
		if i := labelIndex(key); i >= 0 && i < len(m.Choices) {
			m.Selected = i
			m.submit(i)
		}
	}

	return m, nil
}

func (m *MultiChoice) submit(i int) {
	m.Submitted = true
	m.ChosenIndex = i
}

func labelIndex(key string) int {
	for i, l := range quizgen.Labels {
		if strings.EqualFold(key, l) {
			return i
		}
	}
	return -1
}

// View renders the question, its difficulty and the options. After
// submission the correct option is green and a wrong choice red.
func (m MultiChoice) View() string {
	var b strings.Builder

	badge := theme.DifficultyStyle(string(m.Question.Difficulty)).Render(strings.ToUpper(string(m.Question.Difficulty)))
	if m.Question.Section != "" {
		badge += theme.Dimmed.Render("  ·  " + m.Question.Section)
	}
	b.WriteString(badge + "\n\n")
	b.WriteString(theme.Question.Render(m.Question.Question) + "\n\n")

	for i, opt := range m.Choices {
		prefix := "  "
		if i == m.Selected && !m.Submitted {
			prefix = "▸ "
		}
		line := fmt.Sprintf("%s%s)  %s", prefix, quizgen.Labels[i], opt)

		switch {
		case m.Submitted && i == m.CorrectIndex:
			line = theme.Correct.Render(line)
		case m.Submitted && i == m.ChosenIndex:
			line = theme.Incorrect.Render(line)
		case m.Submitted:
			line = theme.Dimmed.Render(line)
		case i == m.Selected:
			line = theme.Selected.Render(line)
		default:
			line = theme.Unselected.Render(line)
		}
		b.WriteString(line + "\n")
	}

	return b.String()
}

// IsCorrect reports whether the submitted choice is the correct option.
func (m MultiChoice) IsCorrect() bool {
	return m.Submitted && m.ChosenIndex == m.CorrectIndex
}

// Answer returns the chosen label, or "" before submission.
func (m MultiChoice) Answer() string {
	if !m.Submitted || m.ChosenIndex < 0 || m.ChosenIndex >= len(quizgen.Labels) {
		return ""
	}
	return quizgen.Labels[m.ChosenIndex]
}
