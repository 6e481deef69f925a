package cmd

import (
	"errors"
	"io"
	"io/fs"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/chutelab/chute/internal/logging"
	"github.com/chutelab/chute/internal/report"
)

var rootCmd = &cobra.Command{
	Use:   "chute",
	Short: "Should you guess on the exam?",
	Long: "Chute simulates an exam many times to estimate the chance of reaching the cutoff " +
		"with and without guessing the questions you left blank.",
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return loadDotEnv(".env")
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		return runApp(cmd)
	},
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().String("log-level", logging.DefaultLevel, "Log level (trace, debug, info, warn, error)")
	rootCmd.PersistentFlags().String("log-file", "", "Append logs to this file")

	addParamFlags(rootCmd)
	addRunFlags(rootCmd)
	rootCmd.Flags().String("lang", string(report.LangEnglish), "Message language: en or pt")

	rootCmd.AddCommand(newSimulateCmd())
	rootCmd.AddCommand(versionCmd)
}

// loadDotEnv reads path into the environment. A missing file is fine.
func loadDotEnv(path string) error {
	if err := godotenv.Load(path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return err
	}
	return nil
}

// newLogger builds the command logger. --log-file wins over out; a nil out
// discards. The returned closer is never nil.
func newLogger(cmd *cobra.Command, out io.Writer) (*logrus.Logger, io.Closer, error) {
	level, _ := cmd.Flags().GetString("log-level")
	if path, _ := cmd.Flags().GetString("log-file"); path != "" {
		return logging.OpenFile(level, path)
	}
	if out == nil {
		return logging.Discard(), nopCloser{}, nil
	}
	log, err := logging.New(level, out)
	if err != nil {
		return nil, nil, err
	}
	return log, nopCloser{}, nil
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }
