package simulation

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/chutelab/chute/internal/exam"
)

func TestPassProbability(t *testing.T) {
	tests := []struct {
		name   string
		d      Distribution
		cutoff float64
		want   float64
	}{
		{"all pass", Distribution{5, 6, 7}, 5, 1},
		{"none pass", Distribution{1, 2, 3}, 4, 0},
		{"boundary counts as pass", Distribution{3, 4, 5, 6}, 5, 0.5},
		{"negative scores", Distribution{-2, -1, 0, 1}, 0, 0.5},
		{"single", Distribution{10}, 10, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := PassProbability(tt.d, tt.cutoff)
			require.NoError(t, err)
			assert.InDelta(t, tt.want, got, 1e-12)
		})
	}
}

func TestPassProbability_Empty(t *testing.T) {
	_, err := PassProbability(nil, 0)
	require.ErrorIs(t, err, ErrEmptyDistribution)
}

func guesses(oneThird, twoThirds, full Distribution) map[Strategy]Distribution {
	return map[Strategy]Distribution{
		StrategyOneThird:  oneThird,
		StrategyTwoThirds: twoThirds,
		StrategyFull:      full,
	}
}

func TestEvaluate_PicksBest(t *testing.T) {
	ev, err := Evaluate(10,
		Distribution{0, 0, 0, 20},
		guesses(
			Distribution{0, 0, 20, 20},
			Distribution{0, 20, 20, 20},
			Distribution{0, 0, 0, 20},
		))
	require.NoError(t, err)

	assert.Equal(t, 0.25, ev.NoGuess)
	assert.Equal(t, 0.5, ev.Guess[StrategyOneThird])
	assert.Equal(t, 0.75, ev.Guess[StrategyTwoThirds])
	assert.Equal(t, 0.25, ev.Guess[StrategyFull])
	assert.Equal(t, StrategyTwoThirds, ev.Best)
	assert.Equal(t, StrategyTwoThirds, ev.Recommended)
	assert.True(t, ev.ShouldGuess())
	assert.Equal(t, 75.0, ev.Percent(StrategyTwoThirds))
}

func TestEvaluate_TieBreakOrder(t *testing.T) {
	tests := []struct {
		name string
		g    map[Strategy]Distribution
		want Strategy
	}{
		{
			"all tied",
			guesses(Distribution{20}, Distribution{20}, Distribution{20}),
			StrategyOneThird,
		},
		{
			"two thirds ties full",
			guesses(Distribution{0}, Distribution{20}, Distribution{20}),
			StrategyTwoThirds,
		},
		{
			"one third ties full",
			guesses(Distribution{20, 0}, Distribution{0, 0}, Distribution{0, 20}),
			StrategyOneThird,
		},
		{
			"full alone",
			guesses(Distribution{0}, Distribution{0}, Distribution{20}),
			StrategyFull,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ev, err := Evaluate(10, Distribution{0}, tt.g)
			require.NoError(t, err)
			assert.Equal(t, tt.want, ev.Best)
			assert.Equal(t, tt.want, ev.Recommended)
		})
	}
}

func TestEvaluate_TieWithNoGuessDoesNotGuess(t *testing.T) {
	ev, err := Evaluate(0,
		Distribution{0, 0},
		guesses(Distribution{0, 0}, Distribution{1, 2}, Distribution{3, 4}))
	require.NoError(t, err)

	assert.Equal(t, 1.0, ev.NoGuess)
	assert.Equal(t, StrategyOneThird, ev.Best)
	assert.Equal(t, StrategyNone, ev.Recommended)
	assert.False(t, ev.ShouldGuess())
}

func TestEvaluate_Errors(t *testing.T) {
	_, err := Evaluate(0, nil, guesses(Distribution{1}, Distribution{1}, Distribution{1}))
	require.ErrorIs(t, err, ErrEmptyDistribution)

	_, err = Evaluate(0, Distribution{1}, guesses(Distribution{1}, nil, Distribution{1}))
	require.ErrorIs(t, err, ErrEmptyDistribution)

	_, err = Evaluate(0, Distribution{1}, map[Strategy]Distribution{StrategyOneThird: {1}})
	require.ErrorIs(t, err, ErrEmptyDistribution)
}

func TestEvaluation_Table(t *testing.T) {
	ev, err := Evaluate(1,
		Distribution{0},
		guesses(Distribution{0}, Distribution{0}, Distribution{1}))
	require.NoError(t, err)

	rows := ev.Table()
	require.Len(t, rows, 4)
	for i, s := range AllStrategies() {
		assert.Equal(t, s, rows[i].Strategy)
	}
	assert.True(t, rows[3].Recommended)
	assert.False(t, rows[0].Recommended)
	assert.Equal(t, 100.0, ev.Percent(StrategyFull))
}

func TestEvaluate_ProbabilitiesInRange(t *testing.T) {
	params := exam.Defaults()
	params.NumSimulations = 3000

	res, err := New(WithSeed(21)).Simulate(context.Background(), params)
	require.NoError(t, err)
	ev, err := res.Evaluate()
	require.NoError(t, err)

	for _, row := range ev.Table() {
		assert.GreaterOrEqual(t, row.Probability, 0.0)
		assert.LessOrEqual(t, row.Probability, 1.0)
	}
}

func TestEndToEnd_AllMarkedHighCutoff(t *testing.T) {
	params := exam.Params{
		NumQuestions:     100,
		MarkedQuestions:  100,
		Cutoff:           50,
		Accuracy:         0.6,
		CorrectionFactor: 1.0,
		NumSimulations:   10000,
	}

	res, err := New(WithSeed(42)).Simulate(context.Background(), params)
	require.NoError(t, err)
	ev, err := res.Evaluate()
	require.NoError(t, err)

	assert.InDelta(t, 20.0, mean(res.NoGuess), 0.5)
	// 50 needs 75 of 100 correct at p=0.6, more than 3 SD above the mean.
	assert.Less(t, ev.NoGuess, 0.01)
	for _, s := range GuessStrategies() {
		assert.Less(t, ev.Guess[s], 0.01)
	}
	assert.Equal(t, StrategyNone, ev.Recommended)
}

func TestResultEvaluate_NothingLeftToGuessAcrossSeeds(t *testing.T) {
	tests := []struct {
		name   string
		params exam.Params
	}{
		{"all marked high cutoff", exam.Params{
			NumQuestions: 100, MarkedQuestions: 100, Cutoff: 50,
			Accuracy: 0.6, CorrectionFactor: 1.0, NumSimulations: 2000,
		}},
		{"all marked default cutoff", exam.Params{
			NumQuestions: 120, MarkedQuestions: 120, Cutoff: 70,
			Accuracy: 0.8, CorrectionFactor: 1.0, NumSimulations: 2000,
		}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for _, pairing := range []Pairing{PairingIndependent, PairingShared} {
				for seed := uint64(0); seed < 100; seed++ {
					res, err := New(WithSeed(seed), WithPairing(pairing)).Simulate(context.Background(), tt.params)
					require.NoError(t, err)
					ev, err := res.Evaluate()
					require.NoError(t, err)
					require.Equal(t, StrategyNone, ev.Recommended,
						"%s pairing, seed %d: none=%v guess=%v", pairing, seed, ev.NoGuess, ev.Guess)
					require.Equal(t, StrategyNone, ev.Best)
				}
			}
		})
	}
}

func TestResultEvaluate_SkipsStrategiesGuessingNothing(t *testing.T) {
	// Two unmarked questions: 1/3 guesses none of them.
	params := exam.Params{NumQuestions: 2, MarkedQuestions: 0, Cutoff: 0, NumSimulations: 1}
	res := &Result{
		Params:  params,
		NoGuess: Distribution{-1},
		Guesses: map[Strategy]Distribution{
			StrategyOneThird:  {5},
			StrategyTwoThirds: {-1},
			StrategyFull:      {-1},
		},
	}

	ev, err := res.Evaluate()
	require.NoError(t, err)
	assert.Equal(t, 1.0, ev.Guess[StrategyOneThird], "still reported")
	assert.Equal(t, StrategyTwoThirds, ev.Best)
	assert.Equal(t, StrategyNone, ev.Recommended)
}

func TestEndToEnd_NothingMarkedZeroCutoff(t *testing.T) {
	params := exam.Params{
		NumQuestions:     100,
		MarkedQuestions:  0,
		Cutoff:           0,
		Accuracy:         0,
		CorrectionFactor: 0,
		NumSimulations:   10000,
	}

	for _, pairing := range bothPairings() {
		res, err := New(WithSeed(8), WithPairing(pairing)).Simulate(context.Background(), params)
		require.NoError(t, err)
		for _, score := range res.NoGuess {
			require.Equal(t, 0.0, score)
		}

		ev, err := res.Evaluate()
		require.NoError(t, err)
		assert.Equal(t, 1.0, ev.NoGuess)
		for _, s := range GuessStrategies() {
			assert.Equal(t, 1.0, ev.Guess[s])
		}
		assert.Equal(t, StrategyOneThird, ev.Best)
		assert.Equal(t, StrategyNone, ev.Recommended)
	}
}

func TestHarshPenaltyFavorsNoGuess(t *testing.T) {
	// cf = 2 makes each guess worth -0.5 in expectation.
	params := exam.Params{
		NumQuestions:     60,
		MarkedQuestions:  40,
		Cutoff:           18,
		Accuracy:         0.85,
		CorrectionFactor: 2,
		NumSimulations:   10000,
	}
	assert.Less(t, ExpectedScore(params, StrategyFull), ExpectedScore(params, StrategyNone))

	res, err := New(WithSeed(13), WithPairing(PairingShared)).Simulate(context.Background(), params)
	require.NoError(t, err)
	ev, err := res.Evaluate()
	require.NoError(t, err)
	assert.Equal(t, StrategyNone, ev.Recommended)
}
