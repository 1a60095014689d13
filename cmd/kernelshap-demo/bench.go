package main

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/HazelnutParadise/kernelshap"
)

var benchRuns int

var benchCmd = &cobra.Command{
	Use:   "bench",
	Short: "Time repeated ExplainOneInstance calls against a --config scenario or the built-in scenario",
	RunE:  runBench,
}

func init() {
	benchCmd.Flags().BoolVar(&useScenarioAB, "scenario-ab", false, "run the built-in Scenario A/B logistic oracle instead of --config")
	benchCmd.Flags().IntVar(&benchRuns, "runs", 20, "number of ExplainOneInstance calls to time")
}

func runBench(cmd *cobra.Command, args []string) error {
	log := newRunLogger()

	var cfg *scenarioConfig
	switch {
	case useScenarioAB:
		cfg = builtinScenarioAB()
	case configPath != "":
		loaded, err := loadScenario(configPath)
		if err != nil {
			return err
		}
		cfg = loaded
	default:
		return fmt.Errorf("kernelshap-demo: bench: pass --scenario-ab or --config scenario.yaml")
	}

	ctx := context.Background()
	background := toMatrix(cfg.Background)
	f := background.Cols()

	var opts []kernelshap.Option
	if seed, ok := scenarioSeed(cfg); ok {
		opts = append(opts, kernelshap.WithSeed(seed))
	}

	oracle := linearCombinedOracle(cfg.Coefficients, cfg.Intercepts)
	exp, err := kernelshap.New(ctx, oracle, background, opts...)
	if err != nil {
		return fmt.Errorf("kernelshap-demo: bench: %w", err)
	}

	nSamples := scenarioNSamples(cfg, f)

	start := time.Now()
	for i := 0; i < benchRuns; i++ {
		if _, err := exp.ExplainOneInstance(ctx, cfg.X, kernelshap.WithNSamples(nSamples)); err != nil {
			return fmt.Errorf("kernelshap-demo: bench: run %d: %w", i, err)
		}
	}
	elapsed := time.Since(start)

	log.WithFields(map[string]any{
		"runs":      benchRuns,
		"total_ms":  float64(elapsed.Microseconds()) / 1000.0,
		"avg_ms":    float64(elapsed.Microseconds()) / 1000.0 / float64(benchRuns),
		"features":  f,
		"n_samples": nSamples,
	}).Info("bench complete")
	return nil
}
