package simulation

import (
	"context"
	"fmt"
	"math/rand/v2"

	"golang.org/x/sync/errgroup"

	"github.com/chutelab/chute/internal/exam"
)

// checkEvery is how many trials run between context checks.
const checkEvery = 1024

// Pairing selects how guess strategies relate to the no-guess trials.
type Pairing int

const (
	// PairingIndependent draws the guess distributions in a second pass
	// with fresh marked-question outcomes.
	PairingIndependent Pairing = iota

	// PairingShared reuses each no-guess trial's marked-question outcome
	// for the guess strategies of the same trial.
	PairingShared
)

func (p Pairing) String() string {
	if p == PairingShared {
		return "shared"
	}
	return "independent"
}

// Distribution is the sampled scores of one strategy, in trial order.
type Distribution []float64

// Result holds the distributions of one simulation run.
type Result struct {
	Params  exam.Params
	Seed    uint64
	Pairing Pairing

	// NoGuess is the NONE distribution.
	NoGuess Distribution

	// Guesses maps each guessing strategy to its distribution.
	Guesses map[Strategy]Distribution
}

// Distribution returns the distribution for any strategy, NONE included.
func (r *Result) Distribution(s Strategy) Distribution {
	if s == StrategyNone {
		return r.NoGuess
	}
	return r.Guesses[s]
}

// Evaluate runs the decision rule on this result. A strategy that guesses
// no question on this exam is never recommended, whatever the sampling
// noise between passes says.
func (r *Result) Evaluate() (*Evaluation, error) {
	unmarked := r.Params.Unmarked()
	return evaluate(r.Params.Cutoff, r.NoGuess, r.Guesses, func(s Strategy) bool {
		return s.GuessedCount(unmarked) > 0
	})
}

// Engine runs Monte Carlo trials of an exam under every strategy.
type Engine struct {
	seed    uint64
	seeded  bool
	pairing Pairing
}

// Option configures an Engine.
type Option func(*Engine)

// WithSeed fixes the generator seed so runs are reproducible.
func WithSeed(seed uint64) Option {
	return func(e *Engine) {
		e.seed = seed
		e.seeded = true
	}
}

// WithPairing selects the pairing mode. The default is PairingIndependent.
func WithPairing(p Pairing) Option {
	return func(e *Engine) {
		e.pairing = p
	}
}

// New creates an Engine.
func New(opts ...Option) *Engine {
	e := &Engine{pairing: PairingIndependent}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Simulate validates params and samples NumSimulations trials for every strategy.
func (e *Engine) Simulate(ctx context.Context, params exam.Params) (*Result, error) {
	if err := params.Validate(); err != nil {
		return nil, err
	}

	seed := e.seed
	if !e.seeded {
		seed = rand.Uint64()
	}

	// Pass generators are seeded from the run seed in a fixed order.
	master := rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
	noGuessSampler := newSampler(master.Uint64(), master.Uint64())
	guessSampler := newSampler(master.Uint64(), master.Uint64())

	res := &Result{
		Params:  params,
		Seed:    seed,
		Pairing: e.pairing,
		NoGuess: make(Distribution, params.NumSimulations),
		Guesses: make(map[Strategy]Distribution, 3),
	}
	for _, s := range GuessStrategies() {
		res.Guesses[s] = make(Distribution, params.NumSimulations)
	}

	var err error
	switch e.pairing {
	case PairingShared:
		err = sharedPass(ctx, params, noGuessSampler, guessSampler, res)
	default:
		g, gctx := errgroup.WithContext(ctx)
		g.Go(func() error {
			return noGuessPass(gctx, params, noGuessSampler, res.NoGuess)
		})
		g.Go(func() error {
			return guessPass(gctx, params, guessSampler, res.Guesses)
		})
		err = g.Wait()
	}
	if err != nil {
		return nil, fmt.Errorf("simulate: %w", err)
	}
	return res, nil
}

// trial holds the marked-question outcome of one trial.
type trial struct {
	correct int
	wrong   int
}

func drawMarked(s *sampler, p exam.Params) trial {
	correct := s.binomial(p.MarkedQuestions, p.Accuracy)
	return trial{correct: correct, wrong: p.MarkedQuestions - correct}
}

func (t trial) score(cf float64) float64 {
	return float64(t.correct) - cf*float64(t.wrong)
}

// guessScore draws the guessed questions of one strategy on top of t.
func guessScore(s *sampler, p exam.Params, t trial, st Strategy) float64 {
	guessed := st.GuessedCount(p.Unmarked())
	guessedCorrect := s.binomial(guessed, 0.5)
	guessedWrong := guessed - guessedCorrect
	return float64(t.correct+guessedCorrect) - p.CorrectionFactor*float64(t.wrong+guessedWrong)
}

func noGuessPass(ctx context.Context, p exam.Params, s *sampler, out Distribution) error {
	for i := range out {
		if i%checkEvery == 0 {
			if err := ctx.Err(); err != nil {
				return err
			}
		}
		out[i] = drawMarked(s, p).score(p.CorrectionFactor)
	}
	return nil
}

func guessPass(ctx context.Context, p exam.Params, s *sampler, out map[Strategy]Distribution) error {
	strategies := GuessStrategies()
	for i := 0; i < p.NumSimulations; i++ {
		if i%checkEvery == 0 {
			if err := ctx.Err(); err != nil {
				return err
			}
		}
		t := drawMarked(s, p)
		for _, st := range strategies {
			out[st][i] = guessScore(s, p, t, st)
		}
	}
	return nil
}

// sharedPass draws the marked outcome once per trial from ms and the
// guess outcomes from gs.
func sharedPass(ctx context.Context, p exam.Params, ms, gs *sampler, res *Result) error {
	strategies := GuessStrategies()
	for i := 0; i < p.NumSimulations; i++ {
		if i%checkEvery == 0 {
			if err := ctx.Err(); err != nil {
				return err
			}
		}
		t := drawMarked(ms, p)
		res.NoGuess[i] = t.score(p.CorrectionFactor)
		for _, st := range strategies {
			res.Guesses[st][i] = guessScore(gs, p, t, st)
		}
	}
	return nil
}

// SimulateExam runs one simulation and returns the distributions keyed by
// strategy label ("1/3", "2/3", "3/3"), for callers that do not use Strategy.
func SimulateExam(ctx context.Context, params exam.Params, opts ...Option) ([]float64, map[string][]float64, error) {
	res, err := New(opts...).Simulate(ctx, params)
	if err != nil {
		return nil, nil, err
	}
	guesses := make(map[string][]float64, len(res.Guesses))
	for s, d := range res.Guesses {
		guesses[s.Label()] = d
	}
	return res.NoGuess, guesses, nil
}
