package main

import (
	"os"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var (
	configPath string
	outPath    string
	logLevel   string
)

var rootCmd = &cobra.Command{
	Use:   "kernelshap-demo",
	Short: "Runs Kernel SHAP explainer scenarios against a literal or YAML-configured oracle",
}

// Execute runs the root command, exiting the process on failure — the one
// place in this module allowed to call os.Exit, since it is a CLI entry
// point rather than a library function.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "path to a scenario YAML file (background rows, oracle coefficients, x, n_samples, seed)")
	rootCmd.PersistentFlags().StringVar(&outPath, "out", "", "write the result JSON to this path instead of stdout")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log", "info", "log level (debug, info, warn, error)")
	rootCmd.AddCommand(explainCmd)
	rootCmd.AddCommand(benchCmd)
}

// newRunLogger stamps a per-invocation run id onto a structured logrus entry,
// distinct from kernelshap's own leveled `log` logger — structured run
// logging belongs to the CLI, not the library.
func newRunLogger() *logrus.Entry {
	level, err := logrus.ParseLevel(logLevel)
	if err != nil {
		level = logrus.InfoLevel
	}
	logrus.SetLevel(level)
	logrus.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	return logrus.WithField("run_id", uuid.NewString())
}
