package results

import (
	"context"
	"fmt"
	"strings"
	"time"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/chutelab/chute/internal/report"
	"github.com/chutelab/chute/internal/router"
	"github.com/chutelab/chute/internal/screen"
	"github.com/chutelab/chute/internal/simulation"
	"github.com/chutelab/chute/internal/ui/components"
	"github.com/chutelab/chute/internal/ui/layout"
	"github.com/chutelab/chute/internal/ui/theme"
)

const maxContentWidth = 100

// Options configures the results screen and its reruns.
type Options struct {
	Lang report.Lang

	// Timeout bounds a rerun; zero means no limit.
	Timeout time.Duration
}

// ResultsScreen shows pass probabilities, the verdict and score distributions.
type ResultsScreen struct {
	rep     *report.Report
	opts    Options
	running bool
	err     string
}

type rerunFailedMsg struct{ err error }

var _ screen.Screen = (*ResultsScreen)(nil)
var _ screen.KeyHintProvider = (*ResultsScreen)(nil)
var _ screen.StatusProvider = (*ResultsScreen)(nil)

// New creates a ResultsScreen for rep.
func New(rep *report.Report, opts Options) *ResultsScreen {
	return &ResultsScreen{rep: rep, opts: opts}
}

func (r *ResultsScreen) Init() tea.Cmd {
	return nil
}

func (r *ResultsScreen) Title() string {
	return "Results"
}

// Status shows the trial count of the displayed run.
func (r *ResultsScreen) Status() string {
	if r.rep == nil {
		return ""
	}
	return fmt.Sprintf("%d trials", r.rep.Params.NumSimulations)
}

func (r *ResultsScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "Enter/Esc", Description: "Edit parameters"},
		{Key: "R", Description: "Run again"},
		{Key: "Ctrl+C", Description: "Quit"},
	}
}

func (r *ResultsScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case rerunFailedMsg:
		r.running = false
		r.err = msg.err.Error()
		return r, nil

	case tea.KeyMsg:
		if r.running {
			return r, nil
		}
		switch msg.String() {
		case "enter", "esc", "q":
			return r, func() tea.Msg { return router.PopScreenMsg{} }
		case "r":
			if r.rep == nil {
				return r, nil
			}
			r.running = true
			r.err = ""
			return r, r.rerun()
		}
	}
	return r, nil
}

// rerun simulates the same exam with a fresh seed and the same pairing,
// then swaps in the new results if this screen is still showing.
func (r *ResultsScreen) rerun() tea.Cmd {
	params := r.rep.Params
	pairing := r.rep.Result.Pairing
	opts := r.opts
	return func() tea.Msg {
		ctx := context.Background()
		if opts.Timeout > 0 {
			var cancel context.CancelFunc
			ctx, cancel = context.WithTimeout(ctx, opts.Timeout)
			defer cancel()
		}

		start := time.Now()
		res, err := simulation.New(simulation.WithPairing(pairing)).Simulate(ctx, params)
		if err != nil {
			return rerunFailedMsg{err: err}
		}
		rep, err := report.New(res, time.Since(start))
		if err != nil {
			return rerunFailedMsg{err: err}
		}
		return router.ReplaceScreenMsg{Screen: New(rep, opts), From: r}
	}
}

func (r *ResultsScreen) View(width, height int) string {
	if r.rep == nil {
		return ""
	}
	m := report.MessagesFor(r.opts.Lang)
	ev := r.rep.Evaluation

	contentWidth := min(width-4, maxContentWidth)
	center := func(s string) string {
		return lipgloss.PlaceHorizontal(width, lipgloss.Center, s)
	}

	var b strings.Builder

	verdict := theme.Caution
	if ev.ShouldGuess() {
		verdict = theme.Verdict
	}
	b.WriteString(center(verdict.Render(m.Recommendation(ev))))
	b.WriteString("\n\n")

	for _, row := range ev.Table() {
		bar := components.NewProgressBar(m.StrategyName(row.Strategy), row.Probability, true, contentWidth)
		bar.LabelWidth = 14
		bar.Color = report.StrategyColor(row.Strategy)
		line := bar.View()
		if row.Recommended {
			line += theme.Selected.Render(" ◆")
		} else {
			line += "  "
		}
		b.WriteString(center(line))
		b.WriteString("\n")
	}
	b.WriteString("\n")

	b.WriteString(center(report.RenderBoxPlots(r.rep, r.opts.Lang, contentWidth)))
	b.WriteString("\n")

	if !layout.IsCompactHeight(height) {
		b.WriteString("\n")
		notes := lipgloss.NewStyle().Width(contentWidth).Foreground(theme.TextDim).Italic(true)
		for _, note := range m.Notes {
			b.WriteString(center(notes.Render(note)))
			b.WriteString("\n")
		}
	}

	switch {
	case r.running:
		b.WriteString(center(lipgloss.NewStyle().Foreground(theme.Accent).Render("Simulating...")))
	case r.err != "":
		b.WriteString(center(theme.ErrorText.Render(r.err)))
	default:
		b.WriteString(center(theme.Hint.Render(r.footnote())))
	}

	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Top, b.String())
}

// footnote describes the run for reproduction.
func (r *ResultsScreen) footnote() string {
	res := r.rep.Result
	best := r.rep.Evaluation.Best
	m := report.MessagesFor(r.opts.Lang)
	return fmt.Sprintf(m.Footnote,
		res.Seed, m.PairingName(res.Pairing), best.Label(), simulation.ExpectedScore(r.rep.Params, best))
}
