package report

import (
	"bytes"
	"context"
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/chutelab/chute/internal/exam"
	"github.com/chutelab/chute/internal/simulation"
)

func testReport(t *testing.T, params exam.Params) *Report {
	t.Helper()
	res, err := simulation.New(simulation.WithSeed(4)).Simulate(context.Background(), params)
	require.NoError(t, err)
	rep, err := New(res, 25*time.Millisecond)
	require.NoError(t, err)
	return rep
}

func guessingParams() exam.Params {
	return exam.Params{
		NumQuestions:     120,
		MarkedQuestions:  60,
		Cutoff:           70,
		Accuracy:         0.8,
		CorrectionFactor: 1.0,
		NumSimulations:   2000,
	}
}

func TestNew(t *testing.T) {
	rep := testReport(t, guessingParams())

	_, err := uuid.Parse(rep.RunID)
	require.NoError(t, err)
	assert.Len(t, rep.Summaries, 4)
	assert.NotNil(t, rep.Evaluation)
	assert.Equal(t, guessingParams(), rep.Params)
}

func TestParseLang(t *testing.T) {
	tests := []struct {
		in      string
		want    Lang
		wantErr bool
	}{
		{"", LangEnglish, false},
		{"en", LangEnglish, false},
		{"EN-us", LangEnglish, false},
		{"pt", LangPortuguese, false},
		{"pt_BR", LangPortuguese, false},
		{"fr", "", true},
	}

	for _, tt := range tests {
		got, err := ParseLang(tt.in)
		if tt.wantErr {
			assert.Error(t, err, "ParseLang(%q)", tt.in)
			continue
		}
		require.NoError(t, err, "ParseLang(%q)", tt.in)
		assert.Equal(t, tt.want, got)
	}
}

func TestMessages_Recommendation(t *testing.T) {
	guess := &simulation.Evaluation{Recommended: simulation.StrategyFull}
	noGuess := &simulation.Evaluation{Recommended: simulation.StrategyNone}

	en := MessagesFor(LangEnglish)
	assert.Equal(t, "Guessing 3/3 of the remaining questions is worth it!", en.Recommendation(guess))
	assert.Equal(t, "Guessing is not worth it on this exam!", en.Recommendation(noGuess))

	pt := MessagesFor(LangPortuguese)
	assert.Equal(t, "É apropriado chutar 3/3 das questões remanescentes!", pt.Recommendation(guess))
	assert.Equal(t, "Não é apropriado chutar na prova!", pt.Recommendation(noGuess))

	assert.Equal(t, en, MessagesFor("xx"))
	assert.Equal(t, "Chutar 2/3", pt.StrategyName(simulation.StrategyTwoThirds))
	assert.Equal(t, "No guess", en.StrategyName(simulation.StrategyNone))
}

func TestFormatPercent(t *testing.T) {
	assert.Equal(t, "0.00%", FormatPercent(0))
	assert.Equal(t, "12.35%", FormatPercent(0.12345))
	assert.Equal(t, "100.00%", FormatPercent(1))
}

func TestWriteText(t *testing.T) {
	rep := testReport(t, guessingParams())

	var buf bytes.Buffer
	require.NoError(t, WriteText(&buf, rep, LangEnglish))
	out := buf.String()

	assert.Contains(t, out, rep.RunID)
	assert.Contains(t, out, "Probability of passing WITHOUT guessing: "+FormatPercent(rep.Evaluation.NoGuess))
	for _, s := range simulation.GuessStrategies() {
		assert.Contains(t, out, "guessing "+s.Label()+" of the remaining questions: "+FormatPercent(rep.Evaluation.Guess[s]))
	}
	assert.Contains(t, out, MessagesFor(LangEnglish).Recommendation(rep.Evaluation))
	assert.Contains(t, out, "Summary statistics")
}

func TestWriteText_Portuguese(t *testing.T) {
	rep := testReport(t, guessingParams())

	var buf bytes.Buffer
	require.NoError(t, WriteText(&buf, rep, LangPortuguese))
	out := buf.String()

	assert.Contains(t, out, "Probabilidade de ser aprovado SEM chutar")
	assert.Contains(t, out, "Semente:")
	assert.Contains(t, out, "pareamento independente")
	assert.Contains(t, out, "nota de corte 70")
	assert.Contains(t, out, "Esperada")
	for _, english := range []string{"Run:", "Seed:", "Exam:", "Scoring:", "Elapsed:", "Expected", "pairing", "questions"} {
		assert.NotContains(t, out, english)
	}
}

func TestRenderBoxPlots_Portuguese(t *testing.T) {
	rep := testReport(t, guessingParams())

	out := RenderBoxPlots(rep, LangPortuguese, 80)
	assert.Contains(t, out, "nota de corte 70")
	assert.NotContains(t, out, "cutoff")
}

func TestMessages_CatalogsComplete(t *testing.T) {
	for _, lang := range []Lang{LangEnglish, LangPortuguese} {
		m := MessagesFor(lang)
		for i, c := range m.Columns {
			assert.NotEmpty(t, c, "%s column %d", lang, i)
		}
		assert.NotEmpty(t, m.SeedLine, lang)
		assert.NotEmpty(t, m.Footnote, lang)
		assert.NotEqual(t, m.PairingName(simulation.PairingIndependent), m.PairingName(simulation.PairingShared))
	}
}

func TestWriteJSON(t *testing.T) {
	rep := testReport(t, guessingParams())

	var buf bytes.Buffer
	require.NoError(t, WriteJSON(&buf, rep, JSONOptions{}))

	var got map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &got))

	assert.Equal(t, rep.RunID, got["run_id"])
	assert.Equal(t, "independent", got["pairing"])
	assert.Equal(t, rep.Evaluation.Recommended.Label(), got["recommended"])
	assert.NotContains(t, got, "samples")

	probs := got["pass_probability"].(map[string]any)
	for _, label := range []string{"none", "1/3", "2/3", "3/3"} {
		p, ok := probs[label].(float64)
		require.True(t, ok, "missing probability for %s", label)
		assert.GreaterOrEqual(t, p, 0.0)
		assert.LessOrEqual(t, p, 1.0)
	}

	params := got["params"].(map[string]any)
	assert.Equal(t, 120.0, params["num_questions"])
}

func TestWriteJSON_Samples(t *testing.T) {
	params := guessingParams()
	params.NumSimulations = 50
	rep := testReport(t, params)

	var buf bytes.Buffer
	require.NoError(t, WriteJSON(&buf, rep, JSONOptions{Samples: true, Indent: true}))

	var got struct {
		Samples map[string][]float64 `json:"samples"`
	}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &got))
	require.Len(t, got.Samples, 4)
	for label, samples := range got.Samples {
		assert.Len(t, samples, 50, "label %s", label)
	}
	assert.Equal(t, []float64(rep.Result.NoGuess), got.Samples["none"])
}

func TestRenderBoxPlots(t *testing.T) {
	rep := testReport(t, guessingParams())

	out := RenderBoxPlots(rep, LangEnglish, 80)
	assert.Contains(t, out, "Score distribution")
	for _, s := range simulation.AllStrategies() {
		assert.Contains(t, out, MessagesFor(LangEnglish).StrategyName(s))
	}
	assert.Contains(t, out, "cutoff 70")
	assert.GreaterOrEqual(t, strings.Count(out, "┃"), 4)
}

func TestRenderBoxPlots_PointMass(t *testing.T) {
	params := exam.Params{
		NumQuestions:     10,
		MarkedQuestions:  10,
		Cutoff:           10,
		Accuracy:         1,
		CorrectionFactor: 0,
		NumSimulations:   20,
	}
	rep := testReport(t, params)

	out := RenderBoxPlots(rep, LangEnglish, 10)
	assert.NotEmpty(t, out)
}
