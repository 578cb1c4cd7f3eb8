package play

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/AYYAGARIKRISHNASRIKAR/wiki-quiz-generator/internal/quizgen"
	"github.com/AYYAGARIKRISHNASRIKAR/wiki-quiz-generator/internal/ui/components"
	"github.com/AYYAGARIKRISHNASRIKAR/wiki-quiz-generator/internal/ui/theme"
)

func (s *PlayScreen) View(width, height int) string {
	switch s.phase {
	case phaseInput:
		return s.renderInput(width)
	case phaseLoading:
		return s.renderWaiting(width, "Reading the article and writing questions...")
	case phaseScoring:
		return s.renderWaiting(width, "Scoring your answers...")
	case phaseQuestion:
		return s.renderQuestion(width)
	case phaseFeedback:
		return s.renderFeedback(width)
	case phaseSummary:
		return s.renderSummary(width)
	case phaseError:
		return s.renderError(width)
	}
	return ""
}

func (s *PlayScreen) renderInput(width int) string {
	var b strings.Builder
	b.WriteString("\n")
	b.WriteString(theme.Title.Render("Generate a quiz from a Wikipedia article") + "\n\n")
	b.WriteString(theme.Subtitle.Render("Paste an English Wikipedia article URL and press Enter.") + "\n\n")
	b.WriteString(s.input.View())
	return lipgloss.NewStyle().Width(width - 4).Render(b.String())
}

func (s *PlayScreen) renderWaiting(width int, text string) string {
	spinner := lipgloss.NewStyle().Foreground(theme.Primary).Render(spinnerFrames[s.frame])
	return lipgloss.NewStyle().
		Width(width-4).
		Align(lipgloss.Center).
		Render("\n\n" + spinner + "  " + theme.Subtitle.Render(text))
}

func (s *PlayScreen) renderQuestion(width int) string {
	total := len(s.result.Questions)
	bar := components.NewProgressBar("", float64(s.index)/float64(total), false, width-4)

	var b strings.Builder
	b.WriteString(bar.View() + "\n\n")
	b.WriteString(s.choice.View())
	return lipgloss.NewStyle().Width(width - 4).Render(b.String())
}

func (s *PlayScreen) renderFeedback(width int) string {
	var b strings.Builder
	b.WriteString(s.choice.View() + "\n")

	if s.choice.IsCorrect() {
		b.WriteString(theme.Correct.Render("✓ Correct!") + "\n\n")
	} else {
		correct := s.choice.Question.Answer
		if i := s.choice.CorrectIndex; i >= 0 && i < len(s.choice.Choices) {
			correct = quizgen.Labels[i] + ") " + s.choice.Choices[i]
		}
		b.WriteString(theme.Incorrect.Render("✗ Not quite.") + "  " +
			theme.Body.Render("The answer is "+correct) + "\n\n")
	}
	if exp := s.choice.Question.Explanation; exp != "" {
		b.WriteString(theme.Card.Width(width - 8).Render(theme.Hint.Render(exp)))
	}
	return lipgloss.NewStyle().Width(width - 4).Render(b.String())
}

func (s *PlayScreen) renderSummary(width int) string {
	sc := s.score

	var b strings.Builder
	b.WriteString("\n")
	b.WriteString(theme.Title.Render(fmt.Sprintf("You scored %d out of %d", sc.Score, sc.Total)) + "\n\n")
	b.WriteString(components.NewProgressBar("Score", sc.Percentage/100, true, min(width-4, 60)).View() + "\n\n")

	for _, r := range sc.Breakdown {
		mark, style := "✓", theme.Correct
		if !r.IsCorrect {
			mark, style = "✗", theme.Incorrect
		}
		given := "-"
		if r.UserAnswer != nil {
			given = *r.UserAnswer
		}
		b.WriteString(fmt.Sprintf("%s  Q%d  you: %s  answer: %s\n",
			style.Render(mark), r.QuestionIndex+1, given, r.CorrectAnswer))
	}

	if len(s.result.RelatedTopics) > 0 {
		b.WriteString("\n" + theme.Subtitle.Render("Read next") + "\n")
		for i, topic := range s.result.RelatedTopics {
			line := "  • " + theme.Body.Render(topic)
			if i < len(s.result.RelatedLinks) {
				line += "  " + theme.Link.Render(s.result.RelatedLinks[i])
			}
			b.WriteString(line + "\n")
		}
	}
	return lipgloss.NewStyle().Width(width - 4).Render(b.String())
}

func (s *PlayScreen) renderError(width int) string {
	return lipgloss.NewStyle().
		Width(width-4).
		Align(lipgloss.Center).
		Render("\n\n" + theme.ErrorText.Render("✗ "+s.errMsg) + "\n\n" +
			theme.Subtitle.Render("Press Enter to try again or Esc to go back."))
}
