package cmd

import (
	"github.com/spf13/cobra"

	"github.com/chutelab/chute/internal/exam"
	"github.com/chutelab/chute/internal/simulation"
)

// addParamFlags registers the exam parameter flags on c.
func addParamFlags(c *cobra.Command) {
	d := exam.Defaults()
	f := c.Flags()
	f.Int("questions", d.NumQuestions, "Total number of questions")
	f.Int("marked", d.MarkedQuestions, "Questions answered with confidence")
	f.Float64("cutoff", d.Cutoff, "Estimated passing score")
	f.Float64("accuracy", d.Accuracy, "Probability of getting a marked question right")
	f.Float64("correction", d.CorrectionFactor, "Points lost per wrong answer")
	f.Int("simulations", d.NumSimulations, "Trials per strategy")
	f.String("params", "", "JSON file with exam parameters")
}

// resolveParams merges defaults, CHUTE_* variables, the --params file and
// explicitly set flags, in increasing priority. The result is not validated.
func resolveParams(c *cobra.Command) (exam.Params, error) {
	p, err := exam.FromEnv(exam.Defaults())
	if err != nil {
		return p, err
	}

	f := c.Flags()
	if path, _ := f.GetString("params"); path != "" {
		if p, err = exam.LoadFile(path, p); err != nil {
			return p, err
		}
	}

	ints := map[string]*int{
		"questions":   &p.NumQuestions,
		"marked":      &p.MarkedQuestions,
		"simulations": &p.NumSimulations,
	}
	for name, dst := range ints {
		if f.Changed(name) {
			*dst, _ = f.GetInt(name)
		}
	}

	floats := map[string]*float64{
		"cutoff":     &p.Cutoff,
		"accuracy":   &p.Accuracy,
		"correction": &p.CorrectionFactor,
	}
	for name, dst := range floats {
		if f.Changed(name) {
			*dst, _ = f.GetFloat64(name)
		}
	}
	return p, nil
}

// addRunFlags registers the engine flags shared by the TUI and simulate.
func addRunFlags(c *cobra.Command) {
	f := c.Flags()
	f.Uint64("seed", 0, "Random seed (default: random, reported in the output)")
	f.Bool("paired", false, "Reuse each trial's marked-question draw across all strategies")
	f.Duration("timeout", 0, "Abort a run after this long (0 means no limit)")
}

// engineOptions turns the run flags into engine options.
func engineOptions(c *cobra.Command) []simulation.Option {
	f := c.Flags()
	var opts []simulation.Option
	if f.Changed("seed") {
		seed, _ := f.GetUint64("seed")
		opts = append(opts, simulation.WithSeed(seed))
	}
	if paired, _ := f.GetBool("paired"); paired {
		opts = append(opts, simulation.WithPairing(simulation.PairingShared))
	}
	return opts
}
