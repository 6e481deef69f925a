package layout

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/chutelab/chute/internal/ui/theme"
)

// The results screen needs room for four box plots plus the probability bars.
const (
	MinWidth  = 80
	MinHeight = 24

	CompactWidthThreshold  = 100
	CompactHeightThreshold = 30
)

const brand = "Chute"

// KeyHint is a key binding shown in the footer.
type KeyHint struct {
	Key         string
	Description string
}

func IsCompactWidth(width int) bool {
	return width < CompactWidthThreshold
}

func IsCompactHeight(height int) bool {
	return height < CompactHeightThreshold
}

func IsTooSmall(width, height int) bool {
	return width < MinWidth || height < MinHeight
}

// RenderMinSizeMessage asks the user to grow the terminal.
func RenderMinSizeMessage(width, height int) string {
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center,
		lipgloss.NewStyle().
			Align(lipgloss.Center).
			Foreground(theme.Text).
			Render(fmt.Sprintf(
				"Terminal too small!\n\n%s needs at least %d x %d\nto draw the results.\n\nCurrent: %d x %d",
				brand, MinWidth, MinHeight, width, height,
			)))
}

func bar() lipgloss.Style {
	return lipgloss.NewStyle().
		Background(theme.BgCard).
		Border(lipgloss.RoundedBorder()).
		BorderForeground(theme.Border)
}

// RenderHeader renders the top bar: brand on the left, the screen title
// centered and status (e.g. the trial count) on the right.
func RenderHeader(title, status string, width int) string {
	inner := max(width-2, 0)
	third := inner / 3

	left := lipgloss.NewStyle().
		Width(third).
		Foreground(theme.Primary).
		Bold(true).
		Render("  " + brand)
	right := lipgloss.NewStyle().
		Width(third).
		Align(lipgloss.Right).
		Foreground(theme.Accent).
		Render(status)
	center := lipgloss.NewStyle().
		Width(max(inner-2*third, 0)).
		Align(lipgloss.Center).
		Foreground(theme.Text).
		Render(title)

	return bar().Width(width).Render(lipgloss.JoinHorizontal(lipgloss.Top, left, center, right))
}

// RenderFooter renders key hints, dropping trailing hints that do not fit.
func RenderFooter(hints []KeyHint, width int) string {
	keyStyle := lipgloss.NewStyle().Foreground(theme.Text).Bold(true)
	descStyle := lipgloss.NewStyle().Foreground(theme.TextDim)

	const sep = "   "
	avail := width - 4
	content := " "
	for i, h := range hints {
		part := keyStyle.Render(h.Key) + " " + descStyle.Render(h.Description)
		if i > 0 {
			part = sep + part
		}
		if lipgloss.Width(content)+lipgloss.Width(part) > avail {
			break
		}
		content += part
	}

	return bar().Width(width).Render(content)
}

// RenderFrame stacks header, content and footer into exactly height lines.
func RenderFrame(header, content, footer string, width, height int) string {
	body := max(height-lipgloss.Height(header)-lipgloss.Height(footer), 0)

	content = lipgloss.NewStyle().
		Width(width).
		Height(body).
		MaxHeight(body).
		Render(content)

	return strings.Join([]string{header, content, footer}, "\n")
}
