package simulation

import (
	"slices"

	"gonum.org/v1/gonum/stat"

	"github.com/chutelab/chute/internal/exam"
)

// whiskerIQR is the box-plot whisker reach in interquartile ranges.
const whiskerIQR = 1.5

// Summary holds descriptive statistics of one distribution.
type Summary struct {
	Mean   float64 `json:"mean"`
	StdDev float64 `json:"std_dev"`
	Min    float64 `json:"min"`
	Q1     float64 `json:"q1"`
	Median float64 `json:"median"`
	Q3     float64 `json:"q3"`
	Max    float64 `json:"max"`

	// LowerWhisker and UpperWhisker are the most extreme samples within
	// 1.5 IQR of the quartiles.
	LowerWhisker float64 `json:"lower_whisker"`
	UpperWhisker float64 `json:"upper_whisker"`
}

// Summarize computes the box-plot statistics of d. d is not modified.
func Summarize(d Distribution) (Summary, error) {
	if len(d) == 0 {
		return Summary{}, ErrEmptyDistribution
	}

	sorted := slices.Clone([]float64(d))
	slices.Sort(sorted)

	var s Summary
	s.Mean, s.StdDev = stat.MeanStdDev(sorted, nil)
	if len(sorted) == 1 {
		s.StdDev = 0
	}
	s.Min = sorted[0]
	s.Max = sorted[len(sorted)-1]
	s.Q1 = stat.Quantile(0.25, stat.Empirical, sorted, nil)
	s.Median = stat.Quantile(0.5, stat.Empirical, sorted, nil)
	s.Q3 = stat.Quantile(0.75, stat.Empirical, sorted, nil)

	iqr := s.Q3 - s.Q1
	lo := s.Q1 - whiskerIQR*iqr
	hi := s.Q3 + whiskerIQR*iqr

	s.LowerWhisker = s.Q1
	for _, v := range sorted {
		if v >= lo {
			s.LowerWhisker = v
			break
		}
	}
	s.UpperWhisker = s.Q3
	for i := len(sorted) - 1; i >= 0; i-- {
		if sorted[i] <= hi {
			s.UpperWhisker = sorted[i]
			break
		}
	}
	return s, nil
}

// SummarizeAll summarizes every strategy of a result.
func SummarizeAll(r *Result) (map[Strategy]Summary, error) {
	out := make(map[Strategy]Summary, 4)
	for _, st := range AllStrategies() {
		s, err := Summarize(r.Distribution(st))
		if err != nil {
			return nil, err
		}
		out[st] = s
	}
	return out, nil
}

// ExpectedScore returns the analytic mean score of strategy s.
func ExpectedScore(p exam.Params, s Strategy) float64 {
	marked := float64(p.MarkedQuestions)
	guessed := float64(s.GuessedCount(p.Unmarked()))
	cf := p.CorrectionFactor
	return marked*p.Accuracy - cf*marked*(1-p.Accuracy) + 0.5*guessed*(1-cf)
}
