package exam

import (
	"errors"
	"fmt"
	"math"
)

// ErrInvalidParameter is returned when exam parameters fall outside their domain.
var ErrInvalidParameter = errors.New("invalid parameter")

// DefaultSimulations is the trial count used when none is given.
const DefaultSimulations = 10000

// Params describes one exam and the number of Monte Carlo trials to run on it.
type Params struct {
	// NumQuestions is the total number of questions on the exam.
	NumQuestions int `json:"num_questions"`

	// MarkedQuestions is how many questions the taker answered with confidence.
	MarkedQuestions int `json:"marked_questions"`

	// Cutoff is the minimum passing score.
	Cutoff float64 `json:"cutoff"`

	// Accuracy is the probability of getting a marked question right (0.0-1.0).
	Accuracy float64 `json:"accuracy"`

	// CorrectionFactor is the score deducted per wrong answer.
	CorrectionFactor float64 `json:"correction_factor"`

	// NumSimulations is the trial count per strategy.
	NumSimulations int `json:"num_simulations"`
}

// Defaults returns the parameters the front ends start from.
func Defaults() Params {
	return Params{
		NumQuestions:     120,
		MarkedQuestions:  60,
		Cutoff:           70,
		Accuracy:         0.8,
		CorrectionFactor: 1.0,
		NumSimulations:   DefaultSimulations,
	}
}

// Unmarked returns the number of questions left for guessing.
func (p Params) Unmarked() int {
	return p.NumQuestions - p.MarkedQuestions
}

// Field names used in FieldError, matching the JSON keys.
const (
	FieldNumQuestions     = "num_questions"
	FieldMarkedQuestions  = "marked_questions"
	FieldCutoff           = "cutoff"
	FieldAccuracy         = "accuracy"
	FieldCorrectionFactor = "correction_factor"
	FieldNumSimulations   = "num_simulations"
)

// FieldError reports which parameter failed validation. It wraps
// ErrInvalidParameter.
type FieldError struct {
	Field  string
	Reason string
}

func (e *FieldError) Error() string {
	return fmt.Sprintf("%v: %s %s", ErrInvalidParameter, e.Field, e.Reason)
}

func (e *FieldError) Unwrap() error { return ErrInvalidParameter }

func invalid(field, format string, args ...any) error {
	return &FieldError{Field: field, Reason: fmt.Sprintf(format, args...)}
}

// Validate checks every field against its domain.
func (p Params) Validate() error {
	switch {
	case p.NumQuestions < 1:
		return invalid(FieldNumQuestions, "must be positive, got %d", p.NumQuestions)
	case p.MarkedQuestions < 0 || p.MarkedQuestions > p.NumQuestions:
		return invalid(FieldMarkedQuestions, "must be in [0, %d], got %d", p.NumQuestions, p.MarkedQuestions)
	case p.Cutoff < 0 || math.IsNaN(p.Cutoff):
		return invalid(FieldCutoff, "must be non-negative, got %v", p.Cutoff)
	case p.Accuracy < 0 || p.Accuracy > 1 || math.IsNaN(p.Accuracy):
		return invalid(FieldAccuracy, "must be in [0, 1], got %v", p.Accuracy)
	case p.CorrectionFactor < 0 || math.IsNaN(p.CorrectionFactor):
		return invalid(FieldCorrectionFactor, "must be non-negative, got %v", p.CorrectionFactor)
	case p.NumSimulations < 1:
		return invalid(FieldNumSimulations, "must be positive, got %d", p.NumSimulations)
	}
	return nil
}
