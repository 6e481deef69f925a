package components

import (
	"fmt"
	"image/color"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/chutelab/chute/internal/ui/theme"
)

// ProgressBar displays a horizontal bar for a value in [0, 1].
type ProgressBar struct {
	Label       string
	LabelWidth  int
	Percent     float64
	ShowPercent bool
	Width       int
	Color       color.Color
}

// NewProgressBar creates a new progress bar in the secondary color.
func NewProgressBar(label string, percent float64, showPercent bool, width int) ProgressBar {
	return ProgressBar{
		Label:       label,
		Percent:     percent,
		ShowPercent: showPercent,
		Width:       width,
		Color:       theme.Secondary,
	}
}

// View renders the progress bar.
func (p ProgressBar) View() string {
	var result string

	if p.Label != "" {
		style := lipgloss.NewStyle().Foreground(theme.Text)
		if p.LabelWidth > 0 {
			style = style.Width(p.LabelWidth)
		}
		result += style.Render(p.Label) + "  "
	}

	labelWidth := lipgloss.Width(result)
	percentWidth := 0
	if p.ShowPercent {
		percentWidth = 9 // "  100.00%"
	}

	barWidth := p.Width - labelWidth - percentWidth
	if barWidth < 4 {
		barWidth = 4
	}

	filled := int(float64(barWidth) * p.Percent)
	if filled > barWidth {
		filled = barWidth
	}
	if filled < 0 {
		filled = 0
	}
	empty := barWidth - filled

	fill := p.Color
	if fill == nil {
		fill = theme.Secondary
	}
	filledStr := lipgloss.NewStyle().
		Background(fill).
		Render(strings.Repeat(" ", filled))

	emptyStr := theme.ProgressEmpty.Render(strings.Repeat(" ", empty))

	result += filledStr + emptyStr

	if p.ShowPercent {
		result += lipgloss.NewStyle().
			Foreground(theme.TextDim).
			Render(fmt.Sprintf("  %6.2f%%", p.Percent*100))
	}

	return result
}
