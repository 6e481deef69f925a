package exam

import (
	"fmt"
	"os"
	"strconv"
)

// Environment variables read by FromEnv.
const (
	EnvQuestions   = "CHUTE_QUESTIONS"
	EnvMarked      = "CHUTE_MARKED"
	EnvCutoff      = "CHUTE_CUTOFF"
	EnvAccuracy    = "CHUTE_ACCURACY"
	EnvCorrection  = "CHUTE_CORRECTION"
	EnvSimulations = "CHUTE_SIMULATIONS"
)

// FromEnv overlays CHUTE_* environment variables onto base. Unset variables
// keep the base value. The result is not validated.
func FromEnv(base Params) (Params, error) {
	p := base

	ints := []struct {
		env string
		dst *int
	}{
		{EnvQuestions, &p.NumQuestions},
		{EnvMarked, &p.MarkedQuestions},
		{EnvSimulations, &p.NumSimulations},
	}
	for _, v := range ints {
		s := os.Getenv(v.env)
		if s == "" {
			continue
		}
		n, err := strconv.Atoi(s)
		if err != nil {
			return base, fmt.Errorf("parse %s=%q: %w", v.env, s, err)
		}
		*v.dst = n
	}

	floats := []struct {
		env string
		dst *float64
	}{
		{EnvCutoff, &p.Cutoff},
		{EnvAccuracy, &p.Accuracy},
		{EnvCorrection, &p.CorrectionFactor},
	}
	for _, v := range floats {
		s := os.Getenv(v.env)
		if s == "" {
			continue
		}
		f, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return base, fmt.Errorf("parse %s=%q: %w", v.env, s, err)
		}
		*v.dst = f
	}

	return p, nil
}
