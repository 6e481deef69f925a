package report

import (
	"encoding/json"
	"io"

	"github.com/chutelab/chute/internal/exam"
	"github.com/chutelab/chute/internal/simulation"
)

type jsonReport struct {
	RunID           string                        `json:"run_id"`
	Seed            uint64                        `json:"seed"`
	Pairing         string                        `json:"pairing"`
	ElapsedMs       int64                         `json:"elapsed_ms"`
	Params          exam.Params                   `json:"params"`
	PassProbability map[string]float64            `json:"pass_probability"`
	PassPercent     map[string]float64            `json:"pass_percent"`
	Best            string                        `json:"best"`
	Recommended     string                        `json:"recommended"`
	ShouldGuess     bool                          `json:"should_guess"`
	Message         string                        `json:"message"`
	ExpectedScore   map[string]float64            `json:"expected_score"`
	Summary         map[string]simulation.Summary `json:"summary"`
	Samples         map[string][]float64          `json:"samples,omitempty"`
}

// JSONOptions controls WriteJSON.
type JSONOptions struct {
	// Samples includes every raw score per strategy.
	Samples bool
	Lang    Lang
	Indent  bool
}

// WriteJSON writes the report as a single JSON object keyed by strategy label.
func WriteJSON(w io.Writer, rep *Report, opts JSONOptions) error {
	ev := rep.Evaluation
	out := jsonReport{
		RunID:           rep.RunID,
		Seed:            rep.Result.Seed,
		Pairing:         rep.Result.Pairing.String(),
		ElapsedMs:       rep.Elapsed.Milliseconds(),
		Params:          rep.Params,
		PassProbability: make(map[string]float64, 4),
		PassPercent:     make(map[string]float64, 4),
		Best:            ev.Best.Label(),
		Recommended:     ev.Recommended.Label(),
		ShouldGuess:     ev.ShouldGuess(),
		Message:         MessagesFor(opts.Lang).Recommendation(ev),
		ExpectedScore:   make(map[string]float64, 4),
		Summary:         make(map[string]simulation.Summary, 4),
	}
	if opts.Samples {
		out.Samples = make(map[string][]float64, 4)
	}

	for _, s := range simulation.AllStrategies() {
		label := s.Label()
		out.PassProbability[label] = ev.Probability(s)
		out.PassPercent[label] = ev.Percent(s)
		out.ExpectedScore[label] = simulation.ExpectedScore(rep.Params, s)
		out.Summary[label] = rep.Summaries[s]
		if opts.Samples {
			out.Samples[label] = rep.Result.Distribution(s)
		}
	}

	enc := json.NewEncoder(w)
	if opts.Indent {
		enc.SetIndent("", "  ")
	}
	return enc.Encode(out)
}
