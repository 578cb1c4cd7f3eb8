package components

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/AYYAGARIKRISHNASRIKAR/wiki-quiz-generator/internal/ui/theme"
)

// ProgressBar displays a horizontal bar, used for quiz progress and the
// final score.
type ProgressBar struct {
	Label       string
	Percent     float64 // 0..1
	ShowPercent bool
	Width       int
}

func NewProgressBar(label string, percent float64, showPercent bool, width int) ProgressBar {
	return ProgressBar{
		Label:       label,
		Percent:     percent,
		ShowPercent: showPercent,
		Width:       width,
	}
}

// Fill returns the number of filled cells for a bar of barWidth.
func (p ProgressBar) Fill(barWidth int) int {
	return min(max(int(float64(barWidth)*p.Percent), 0), barWidth)
}

func (p ProgressBar) View() string {
	var result string
	if p.Label != "" {
		result += theme.Body.Render(p.Label) + "  "
	}

	percentWidth := 0
	if p.ShowPercent {
		percentWidth = 6 // "  100%"
	}
	barWidth := max(p.Width-lipgloss.Width(result)-percentWidth, 4)

	filled := p.Fill(barWidth)
	color := theme.Secondary
	if p.Percent < 0.5 {
		color = theme.Accent
	}

	result += lipgloss.NewStyle().Background(color).Render(strings.Repeat(" ", filled)) +
		lipgloss.NewStyle().Background(theme.Border).Render(strings.Repeat(" ", barWidth-filled))

	if p.ShowPercent {
		result += theme.Subtitle.Render(fmt.Sprintf("  %d%%", int(p.Percent*100+0.5)))
	}
	return result
}
