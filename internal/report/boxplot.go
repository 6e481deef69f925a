package report

import (
	"fmt"
	"image/color"
	"math"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/chutelab/chute/internal/simulation"
	"github.com/chutelab/chute/internal/ui/theme"
)

const (
	plotLabelWidth = 14
	minPlotWidth   = 20
)

type cell int

const (
	cellEmpty cell = iota
	cellWhisker
	cellBox
	cellMedian
	cellCutoff
)

// RenderBoxPlots draws one horizontal box plot per strategy on a shared
// axis, with the cutoff marked. width is the total line width.
func RenderBoxPlots(rep *Report, lang Lang, width int) string {
	m := MessagesFor(lang)
	plotWidth := width - plotLabelWidth - 2
	if plotWidth < minPlotWidth {
		plotWidth = minPlotWidth
	}

	lo, hi := plotRange(rep)
	scale := func(v float64) int {
		if hi == lo {
			return plotWidth / 2
		}
		col := int(math.Round((v - lo) / (hi - lo) * float64(plotWidth-1)))
		return max(0, min(plotWidth-1, col))
	}

	cutoffCol := -1
	if rep.Params.Cutoff >= lo && rep.Params.Cutoff <= hi {
		cutoffCol = scale(rep.Params.Cutoff)
	}

	labelStyle := lipgloss.NewStyle().Foreground(theme.Text).Width(plotLabelWidth)
	var lines []string
	lines = append(lines, lipgloss.NewStyle().Foreground(theme.TextDim).Render(m.Distribution))

	for _, s := range simulation.AllStrategies() {
		sum := rep.Summaries[s]
		cells := make([]cell, plotWidth)
		if cutoffCol >= 0 {
			cells[cutoffCol] = cellCutoff
		}
		for c := scale(sum.LowerWhisker); c <= scale(sum.UpperWhisker); c++ {
			cells[c] = cellWhisker
		}
		for c := scale(sum.Q1); c <= scale(sum.Q3); c++ {
			cells[c] = cellBox
		}
		cells[scale(sum.Median)] = cellMedian

		label := labelStyle.Render(truncate(m.StrategyName(s), plotLabelWidth-1))
		lines = append(lines, label+"  "+renderCells(cells, StrategyColor(s)))
	}

	axis := fmt.Sprintf("%-*s%*s", plotWidth/2, formatScore(lo), plotWidth-plotWidth/2, formatScore(hi))
	lines = append(lines, strings.Repeat(" ", plotLabelWidth+2)+
		lipgloss.NewStyle().Foreground(theme.TextDim).Render(axis))

	if cutoffCol >= 0 {
		legend := fmt.Sprintf(m.CutoffLegend, formatScore(rep.Params.Cutoff))
		lines = append(lines, strings.Repeat(" ", plotLabelWidth+2)+
			lipgloss.NewStyle().Foreground(theme.Cutoff).Render(legend))
	}

	return strings.Join(lines, "\n")
}

// plotRange returns the axis bounds covering every whisker and the cutoff.
func plotRange(rep *Report) (lo, hi float64) {
	lo, hi = math.Inf(1), math.Inf(-1)
	for _, s := range simulation.AllStrategies() {
		sum := rep.Summaries[s]
		lo = math.Min(lo, sum.LowerWhisker)
		hi = math.Max(hi, sum.UpperWhisker)
	}
	lo = math.Min(lo, rep.Params.Cutoff)
	hi = math.Max(hi, rep.Params.Cutoff)
	return lo, hi
}

func renderCells(cells []cell, c color.Color) string {
	styles := map[cell]lipgloss.Style{
		cellEmpty:   lipgloss.NewStyle(),
		cellWhisker: lipgloss.NewStyle().Foreground(theme.TextDim),
		cellBox:     lipgloss.NewStyle().Foreground(c),
		cellMedian:  lipgloss.NewStyle().Foreground(theme.Text).Bold(true),
		cellCutoff:  lipgloss.NewStyle().Foreground(theme.Cutoff),
	}
	glyphs := map[cell]string{
		cellEmpty:   " ",
		cellWhisker: "─",
		cellBox:     "█",
		cellMedian:  "┃",
		cellCutoff:  "┊",
	}

	var b strings.Builder
	start := 0
	for i := 1; i <= len(cells); i++ {
		if i < len(cells) && cells[i] == cells[start] {
			continue
		}
		run := strings.Repeat(glyphs[cells[start]], i-start)
		b.WriteString(styles[cells[start]].Render(run))
		start = i
	}
	return b.String()
}

// StrategyColor returns the color a strategy is drawn in.
func StrategyColor(s simulation.Strategy) color.Color {
	switch s {
	case simulation.StrategyOneThird:
		return theme.GuessThird
	case simulation.StrategyTwoThirds:
		return theme.GuessTwo
	case simulation.StrategyFull:
		return theme.GuessAll
	default:
		return theme.NoGuess
	}
}

func formatScore(v float64) string {
	if v == math.Trunc(v) {
		return fmt.Sprintf("%.0f", v)
	}
	return fmt.Sprintf("%.1f", v)
}
