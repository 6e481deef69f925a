package form

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"
	"github.com/sirupsen/logrus"

	"github.com/chutelab/chute/internal/exam"
	"github.com/chutelab/chute/internal/logging"
	"github.com/chutelab/chute/internal/report"
	"github.com/chutelab/chute/internal/router"
	"github.com/chutelab/chute/internal/screen"
	"github.com/chutelab/chute/internal/screens/results"
	"github.com/chutelab/chute/internal/simulation"
	"github.com/chutelab/chute/internal/ui/components"
	"github.com/chutelab/chute/internal/ui/layout"
	"github.com/chutelab/chute/internal/ui/theme"
)

const tickInterval = 120 * time.Millisecond

var spinnerFrames = []string{"◐", "◓", "◑", "◒"}

// Options configures how the form runs simulations.
type Options struct {
	Lang report.Lang

	// Engine options apply to every run started from the form.
	Engine []simulation.Option

	// Timeout bounds each run, reruns from the results screen included.
	Timeout time.Duration
	Logger  *logrus.Logger
}

type fieldID int

const (
	fieldQuestions fieldID = iota
	fieldCorrection
	fieldCutoff
	fieldAccuracy
	fieldMarked
	fieldSimulations
	fieldCount
)

type field struct {
	label string
	help  string
	input components.TextInput
}

type (
	submitMsg struct{}
	tickMsg   time.Time
	doneMsg   struct {
		rep *report.Report
		err error
	}
)

// FormScreen collects exam parameters and launches a simulation.
type FormScreen struct {
	fields  []field
	focus   int // fieldCount means the button
	button  components.Button
	opts    Options
	err     string
	running bool
	frame   int
}

var _ screen.Screen = (*FormScreen)(nil)
var _ screen.KeyHintProvider = (*FormScreen)(nil)
var _ screen.StatusProvider = (*FormScreen)(nil)

// New creates a FormScreen prefilled with initial.
func New(initial exam.Params, opts Options) *FormScreen {
	if opts.Logger == nil {
		opts.Logger = logging.Discard()
	}

	mk := func(label, help string, kind components.InputKind, value string) field {
		in := components.NewTextInput(value, kind, 10)
		in.SetValue(value)
		return field{label: label, help: help, input: in}
	}

	s := &FormScreen{
		fields: []field{
			fieldQuestions: mk("Questions on the exam", "Total number of questions.",
				components.InputInteger, strconv.Itoa(initial.NumQuestions)),
			fieldCorrection: mk("Correction factor", "Points deducted per wrong answer (1 = one right cancels one wrong).",
				components.InputDecimal, formatFloat(initial.CorrectionFactor)),
			fieldCutoff: mk("Estimated cutoff", "Minimum passing score, estimated from similar past exams.",
				components.InputDecimal, formatFloat(initial.Cutoff)),
			fieldAccuracy: mk("Your accuracy", "Probability (0-1) of getting a confidently marked question right.",
				components.InputDecimal, formatFloat(initial.Accuracy)),
			fieldMarked: mk("Questions marked with confidence", "Questions answered after the first pass.",
				components.InputInteger, strconv.Itoa(initial.MarkedQuestions)),
			fieldSimulations: mk("Simulations", "Trials per strategy.",
				components.InputInteger, strconv.Itoa(initial.NumSimulations)),
		},
		opts: opts,
	}
	s.button = components.NewButton("Simulate", false, func() tea.Cmd {
		return func() tea.Msg { return submitMsg{} }
	})
	return s
}

func (s *FormScreen) Init() tea.Cmd {
	return s.setFocus(0)
}

func (s *FormScreen) Title() string {
	return "Exam"
}

func (s *FormScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "Tab/↑↓", Description: "Move"},
		{Key: "Enter", Description: "Next / Simulate"},
		{Key: "Ctrl+S", Description: "Simulate"},
		{Key: "Ctrl+C", Description: "Quit"},
	}
}

// Status shows the trial count currently entered.
func (s *FormScreen) Status() string {
	n, err := s.fields[fieldSimulations].input.IntValue()
	if err != nil {
		return ""
	}
	return fmt.Sprintf("%d trials", n)
}

// fieldNames maps form fields to exam parameter names.
var fieldNames = map[string]fieldID{
	exam.FieldNumQuestions:     fieldQuestions,
	exam.FieldCorrectionFactor: fieldCorrection,
	exam.FieldCutoff:           fieldCutoff,
	exam.FieldAccuracy:         fieldAccuracy,
	exam.FieldMarkedQuestions:  fieldMarked,
	exam.FieldNumSimulations:   fieldSimulations,
}

// parseError names the form field that could not be parsed.
type parseError struct {
	id    fieldID
	label string
	want  string
}

func (e *parseError) Error() string {
	return fmt.Sprintf("%s: not %s", e.label, e.want)
}

// Params parses the current field values. The result is not validated.
func (s *FormScreen) Params() (exam.Params, error) {
	var p exam.Params
	var err error

	ints := []struct {
		id  fieldID
		dst *int
	}{
		{fieldQuestions, &p.NumQuestions},
		{fieldMarked, &p.MarkedQuestions},
		{fieldSimulations, &p.NumSimulations},
	}
	for _, f := range ints {
		if *f.dst, err = s.fields[f.id].input.IntValue(); err != nil {
			return p, &parseError{id: f.id, label: s.fields[f.id].label, want: "a whole number"}
		}
	}

	floats := []struct {
		id  fieldID
		dst *float64
	}{
		{fieldCorrection, &p.CorrectionFactor},
		{fieldCutoff, &p.Cutoff},
		{fieldAccuracy, &p.Accuracy},
	}
	for _, f := range floats {
		if *f.dst, err = s.fields[f.id].input.FloatValue(); err != nil {
			return p, &parseError{id: f.id, label: s.fields[f.id].label, want: "a number"}
		}
	}
	return p, nil
}

func (s *FormScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case tickMsg:
		if !s.running {
			return s, nil
		}
		s.frame++
		return s, tick()

	case doneMsg:
		s.running = false
		if msg.err != nil {
			s.err = msg.err.Error()
			return s, nil
		}
		s.err = ""
		rep := msg.rep
		next := results.New(rep, results.Options{Lang: s.opts.Lang, Timeout: s.opts.Timeout})
		return s, func() tea.Msg {
			return router.PushScreenMsg{Screen: next}
		}

	case submitMsg:
		return s, s.submit()

	case tea.KeyMsg:
		if s.running {
			return s, nil
		}
		switch msg.String() {
		case "tab", "down":
			return s, s.setFocus((s.focus + 1) % (int(fieldCount) + 1))
		case "shift+tab", "up":
			return s, s.setFocus((s.focus + int(fieldCount)) % (int(fieldCount) + 1))
		case "ctrl+s":
			return s, s.submit()
		case "enter":
			if s.focus < int(fieldCount) {
				return s, s.setFocus(s.focus + 1)
			}
		}
	}

	if s.running {
		return s, nil
	}

	if s.focus == int(fieldCount) {
		var cmd tea.Cmd
		s.button, cmd = s.button.Update(msg)
		return s, cmd
	}

	var cmd tea.Cmd
	s.fields[s.focus].input, cmd = s.fields[s.focus].input.Update(msg)
	return s, cmd
}

// setFocus moves focus to index i; fieldCount selects the button.
func (s *FormScreen) setFocus(i int) tea.Cmd {
	s.focus = i
	s.button.Active = i == int(fieldCount)
	var cmd tea.Cmd
	for j := range s.fields {
		if j == i {
			cmd = s.fields[j].input.Focus()
		} else {
			s.fields[j].input.Blur()
		}
	}
	return cmd
}

// submit parses and validates the form and starts a run.
func (s *FormScreen) submit() tea.Cmd {
	p, err := s.Params()
	if err == nil {
		err = p.Validate()
	}
	s.markFields(err)
	if err != nil {
		s.err = err.Error()
		return nil
	}

	s.err = ""
	s.running = true
	s.frame = 0
	return tea.Batch(run(p, s.opts), tick())
}

// markFields flags each input valid or invalid after a submit.
func (s *FormScreen) markFields(err error) {
	for i := range s.fields {
		s.fields[i].input.Submit(true)
	}

	var pe *parseError
	var fe *exam.FieldError
	switch {
	case errors.As(err, &pe):
		s.fields[pe.id].input.Submit(false)
	case errors.As(err, &fe):
		if id, ok := fieldNames[fe.Field]; ok {
			s.fields[id].input.Submit(false)
		}
	}
}

func run(p exam.Params, opts Options) tea.Cmd {
	return func() tea.Msg {
		ctx := context.Background()
		if opts.Timeout > 0 {
			var cancel context.CancelFunc
			ctx, cancel = context.WithTimeout(ctx, opts.Timeout)
			defer cancel()
		}

		start := time.Now()
		res, err := simulation.New(opts.Engine...).Simulate(ctx, p)
		if err != nil {
			opts.Logger.WithError(err).Warn("simulation failed")
			return doneMsg{err: err}
		}
		rep, err := report.New(res, time.Since(start))
		if err != nil {
			return doneMsg{err: err}
		}
		opts.Logger.WithFields(logrus.Fields{
			"run_id":      rep.RunID,
			"seed":        res.Seed,
			"trials":      p.NumSimulations,
			"recommended": rep.Evaluation.Recommended.Label(),
			"elapsed":     rep.Elapsed,
		}).Debug("simulation finished")
		return doneMsg{rep: rep}
	}
}

func tick() tea.Cmd {
	return tea.Tick(tickInterval, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

func (s *FormScreen) View(width, height int) string {
	var b strings.Builder

	m := report.MessagesFor(s.opts.Lang)
	b.WriteString(theme.Title.Width(width).Render(m.Title))
	b.WriteString("\n")
	showHelp := !layout.IsCompactHeight(height) || !layout.IsCompactWidth(width)
	if n, err := s.fields[fieldSimulations].input.IntValue(); err == nil && showHelp {
		b.WriteString(theme.Subtitle.Width(width).Render(fmt.Sprintf(m.Intro, n)))
		b.WriteString("\n")
	}
	b.WriteString("\n")

	labelWidth := 36
	for i, f := range s.fields {
		style := theme.Unselected
		if i == s.focus {
			style = theme.Selected
		}
		line := style.Width(labelWidth).Render(f.label) + f.input.View()
		b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, line))
		b.WriteString("\n")
		if showHelp && i == s.focus {
			b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center,
				theme.Hint.Render(f.help)))
			b.WriteString("\n")
		}
	}
	b.WriteString("\n")

	if s.running {
		spin := spinnerFrames[s.frame%len(spinnerFrames)]
		b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center,
			lipgloss.NewStyle().Foreground(theme.Accent).Render(spin+" Simulating...")))
	} else {
		b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, s.button.View()))
	}
	b.WriteString("\n")

	if s.err != "" {
		b.WriteString("\n")
		b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center,
			theme.ErrorText.Render(s.err)))
	}

	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, b.String())
}

func formatFloat(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}
