package cmd

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/chutelab/chute/internal/app"
	"github.com/chutelab/chute/internal/report"
	"github.com/chutelab/chute/internal/screens/form"
)

// runApp resolves the starting parameters and launches the TUI.
func runApp(cmd *cobra.Command) error {
	opts, closer, err := tuiOptions(cmd)
	if err != nil {
		return err
	}
	defer closer.Close()

	return app.Run(opts)
}

// tuiOptions builds the TUI options from flags, environment and files.
// The returned closer releases the log file, if any.
func tuiOptions(cmd *cobra.Command) (app.Options, io.Closer, error) {
	langFlag, _ := cmd.Flags().GetString("lang")
	lang, err := report.ParseLang(langFlag)
	if err != nil {
		return app.Options{}, nil, err
	}

	p, err := resolveParams(cmd)
	if err != nil {
		return app.Options{}, nil, fmt.Errorf("resolve parameters: %w", err)
	}

	// The TUI owns the terminal, so logs only go to --log-file.
	log, closer, err := newLogger(cmd, nil)
	if err != nil {
		return app.Options{}, nil, err
	}

	timeout, _ := cmd.Flags().GetDuration("timeout")
	log.WithField("params", p).WithField("timeout", timeout).Debug("starting tui")

	return app.Options{
		Params: p,
		Form: form.Options{
			Lang:    lang,
			Engine:  engineOptions(cmd),
			Timeout: timeout,
			Logger:  log,
		},
	}, closer, nil
}
