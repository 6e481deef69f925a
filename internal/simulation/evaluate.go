package simulation

import (
	"errors"
	"fmt"
)

// ErrEmptyDistribution is returned when a statistic is requested for a
// distribution with no samples.
var ErrEmptyDistribution = errors.New("empty distribution")

// PassProbability returns the fraction of scores at or above cutoff.
func PassProbability(d Distribution, cutoff float64) (float64, error) {
	if len(d) == 0 {
		return 0, ErrEmptyDistribution
	}
	passed := 0
	for _, score := range d {
		if score >= cutoff {
			passed++
		}
	}
	return float64(passed) / float64(len(d)), nil
}

// Evaluation is the decision derived from one simulation run.
type Evaluation struct {
	Cutoff float64

	// NoGuess is the pass probability without guessing.
	NoGuess float64

	// Guess holds the pass probability of each guessing strategy.
	Guess map[Strategy]float64

	// Best is the guessing strategy with the highest pass probability.
	Best Strategy

	// Recommended is Best when it strictly beats NoGuess, else StrategyNone.
	Recommended Strategy
}

// Evaluate computes pass probabilities and picks the recommended strategy.
// Ties between guessing strategies go to the one listed first by
// GuessStrategies; a tie with NONE recommends not guessing.
func Evaluate(cutoff float64, noGuess Distribution, guesses map[Strategy]Distribution) (*Evaluation, error) {
	return evaluate(cutoff, noGuess, guesses, nil)
}

// evaluate is Evaluate restricted to the strategies eligible accepts. The
// others are still reported but can be neither Best nor Recommended. A nil
// eligible accepts every strategy.
func evaluate(cutoff float64, noGuess Distribution, guesses map[Strategy]Distribution, eligible func(Strategy) bool) (*Evaluation, error) {
	pNone, err := PassProbability(noGuess, cutoff)
	if err != nil {
		return nil, fmt.Errorf("no-guess: %w", err)
	}

	ev := &Evaluation{
		Cutoff:      cutoff,
		NoGuess:     pNone,
		Guess:       make(map[Strategy]float64, len(guesses)),
		Best:        StrategyNone,
		Recommended: StrategyNone,
	}

	bestP := -1.0
	for _, s := range GuessStrategies() {
		d, ok := guesses[s]
		if !ok {
			return nil, fmt.Errorf("strategy %s: %w", s, ErrEmptyDistribution)
		}
		p, err := PassProbability(d, cutoff)
		if err != nil {
			return nil, fmt.Errorf("strategy %s: %w", s, err)
		}
		ev.Guess[s] = p
		if eligible != nil && !eligible(s) {
			continue
		}
		if p > bestP {
			bestP = p
			ev.Best = s
		}
	}

	if bestP > pNone {
		ev.Recommended = ev.Best
	}
	return ev, nil
}

// ShouldGuess reports whether any guessing strategy is recommended.
func (e *Evaluation) ShouldGuess() bool {
	return e.Recommended != StrategyNone
}

// Probability returns the pass probability of s, NONE included.
func (e *Evaluation) Probability(s Strategy) float64 {
	if s == StrategyNone {
		return e.NoGuess
	}
	return e.Guess[s]
}

// Percent returns the pass probability of s as a percentage.
func (e *Evaluation) Percent(s Strategy) float64 {
	return e.Probability(s) * 100
}

// Row is one line of the probability table.
type Row struct {
	Strategy    Strategy
	Probability float64
	Recommended bool
}

// Table returns the probabilities in display order, NONE first.
func (e *Evaluation) Table() []Row {
	rows := make([]Row, 0, 4)
	for _, s := range AllStrategies() {
		rows = append(rows, Row{
			Strategy:    s,
			Probability: e.Probability(s),
			Recommended: s == e.Recommended,
		})
	}
	return rows
}
