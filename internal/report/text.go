package report

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/chutelab/chute/internal/simulation"
)

const ruleWidth = 72

// WriteText writes a plain-text report.
func WriteText(w io.Writer, rep *Report, lang Lang) error {
	m := MessagesFor(lang)
	ev := rep.Evaluation
	p := rep.Params
	rule := strings.Repeat("─", ruleWidth)

	var b strings.Builder

	b.WriteString(m.Title + "\n")
	fmt.Fprintf(&b, m.Intro+"\n", p.NumSimulations)
	b.WriteString(rule + "\n")
	header := func(label, format string, args ...any) {
		fmt.Fprintf(&b, "%-12s%s\n", label, fmt.Sprintf(format, args...))
	}
	header(m.RunLabel, "%s", rep.RunID)
	header(m.SeedLabel, m.SeedLine, rep.Result.Seed, m.PairingName(rep.Result.Pairing))
	header(m.ExamLabel, m.ExamLine, p.NumQuestions, p.MarkedQuestions, p.Cutoff)
	header(m.ScoringLabel, m.ScoringLine, p.Accuracy, p.CorrectionFactor)
	header(m.ElapsedLabel, "%s", rep.Elapsed.Round(time.Millisecond))
	b.WriteString(rule + "\n\n")

	fmt.Fprintf(&b, m.NoGuessLine+"\n", FormatPercent(ev.NoGuess))
	for _, s := range simulation.GuessStrategies() {
		fmt.Fprintf(&b, m.GuessLine+"\n", s.Label(), FormatPercent(ev.Guess[s]))
	}
	b.WriteString("\n")
	b.WriteString(m.Recommendation(ev) + "\n\n")

	b.WriteString(m.Statistics + "\n")
	b.WriteString(rule + "\n")
	c := m.Columns
	fmt.Fprintf(&b, "%-14s  %8s  %8s  %8s  %8s  %8s  %8s\n",
		"", c[0], c[1], c[2], c[3], c[4], c[5])
	b.WriteString(rule + "\n")
	for _, s := range simulation.AllStrategies() {
		sum := rep.Summaries[s]
		marker := " "
		if s == ev.Recommended {
			marker = "*"
		}
		fmt.Fprintf(&b, "%s%-13s  %8s  %8.2f  %8.2f  %8.2f  %8.2f  %8.2f\n",
			marker,
			truncate(m.StrategyName(s), 13),
			FormatPercent(ev.Probability(s)),
			simulation.ExpectedScore(p, s),
			sum.Mean,
			sum.StdDev,
			sum.Median,
			sum.Q3-sum.Q1,
		)
	}
	b.WriteString(rule + "\n\n")

	for _, note := range m.Notes {
		b.WriteString("* " + note + "\n")
	}

	_, err := io.WriteString(w, b.String())
	return err
}

func truncate(s string, max int) string {
	r := []rune(s)
	if len(r) <= max {
		return s
	}
	return string(r[:max])
}
