package report

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/chutelab/chute/internal/exam"
	"github.com/chutelab/chute/internal/simulation"
)

// Report is everything a front end shows about one run.
type Report struct {
	RunID      string
	Elapsed    time.Duration
	Params     exam.Params
	Result     *simulation.Result
	Evaluation *simulation.Evaluation
	Summaries  map[simulation.Strategy]simulation.Summary
}

// New evaluates and summarizes a simulation result.
func New(res *simulation.Result, elapsed time.Duration) (*Report, error) {
	ev, err := res.Evaluate()
	if err != nil {
		return nil, fmt.Errorf("evaluate: %w", err)
	}
	sums, err := simulation.SummarizeAll(res)
	if err != nil {
		return nil, fmt.Errorf("summarize: %w", err)
	}
	return &Report{
		RunID:      uuid.New().String(),
		Elapsed:    elapsed,
		Params:     res.Params,
		Result:     res,
		Evaluation: ev,
		Summaries:  sums,
	}, nil
}
