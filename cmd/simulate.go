package cmd

import (
	"context"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/chutelab/chute/internal/report"
	"github.com/chutelab/chute/internal/simulation"
)

const plotWidth = 80

func newSimulateCmd() *cobra.Command {
	c := &cobra.Command{
		Use:   "simulate",
		Short: "Run the simulation and print the pass probabilities",
		Args:  cobra.NoArgs,
		RunE:  runSimulate,
	}

	addParamFlags(c)
	addRunFlags(c)
	f := c.Flags()
	f.String("format", "text", "Output format: text, json or plot")
	f.Bool("samples", false, "Include raw scores in JSON output")
	f.String("lang", string(report.LangEnglish), "Message language: en or pt")
	return c
}

func runSimulate(cmd *cobra.Command, args []string) error {
	f := cmd.Flags()
	format, _ := f.GetString("format")
	switch format {
	case "text", "json", "plot":
	default:
		return fmt.Errorf("unknown format %q", format)
	}

	langFlag, _ := f.GetString("lang")
	lang, err := report.ParseLang(langFlag)
	if err != nil {
		return err
	}

	p, err := resolveParams(cmd)
	if err != nil {
		return err
	}
	if err := p.Validate(); err != nil {
		return err
	}
	cmd.SilenceUsage = true

	log, closer, err := newLogger(cmd, cmd.ErrOrStderr())
	if err != nil {
		return err
	}
	defer closer.Close()

	opts := engineOptions(cmd)

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	if timeout, _ := f.GetDuration("timeout"); timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}

	log.WithFields(logrus.Fields{
		"questions":   p.NumQuestions,
		"marked":      p.MarkedQuestions,
		"cutoff":      p.Cutoff,
		"accuracy":    p.Accuracy,
		"correction":  p.CorrectionFactor,
		"simulations": p.NumSimulations,
	}).Debug("starting simulation")

	start := time.Now()
	res, err := simulation.New(opts...).Simulate(ctx, p)
	if err != nil {
		return err
	}
	rep, err := report.New(res, time.Since(start))
	if err != nil {
		return fmt.Errorf("build report: %w", err)
	}

	log.WithFields(logrus.Fields{
		"run_id":      rep.RunID,
		"seed":        res.Seed,
		"pairing":     res.Pairing.String(),
		"recommended": rep.Evaluation.Recommended.Label(),
		"elapsed":     rep.Elapsed,
	}).Debug("simulation finished")

	out := cmd.OutOrStdout()
	switch format {
	case "json":
		samples, _ := f.GetBool("samples")
		return report.WriteJSON(out, rep, report.JSONOptions{Samples: samples, Lang: lang, Indent: true})
	case "plot":
		_, err := fmt.Fprintln(out, report.RenderBoxPlots(rep, lang, plotWidth))
		return err
	default:
		return report.WriteText(out, rep, lang)
	}
}
