package main

import (
	"context"
	"fmt"
	"os"
	"time"

	json "github.com/goccy/go-json"
	"github.com/spf13/cobra"

	"github.com/HazelnutParadise/kernelshap"
)

var useScenarioAB bool

var explainCmd = &cobra.Command{
	Use:   "explain",
	Short: "Explain one instance against a literal built-in scenario or a --config YAML scenario",
	RunE:  runExplain,
}

func init() {
	explainCmd.Flags().BoolVar(&useScenarioAB, "scenario-ab", false, "run the built-in Scenario A/B logistic oracle instead of --config")
}

type explainResult struct {
	RunID      string      `json:"run_id"`
	ElapsedMs  float64     `json:"elapsed_ms"`
	Phi        [][]float64 `json:"phi"`
	Efficiency []float64   `json:"efficiency_residual"`
	NSamples   int         `json:"n_samples"`
	Seed       float64     `json:"seed"`
}

func runExplain(cmd *cobra.Command, args []string) error {
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
		return fmt.Errorf("kernelshap-demo: explain: pass --scenario-ab or --config scenario.yaml")
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
		return fmt.Errorf("kernelshap-demo: explain: %w", err)
	}

	nSamples := scenarioNSamples(cfg, f)
	log.WithFields(map[string]any{
		"n_samples": nSamples,
		"features":  f,
	}).Info("running explain")

	start := time.Now()
	phi, err := exp.ExplainOneInstance(ctx, cfg.X, kernelshap.WithNSamples(nSamples))
	elapsed := time.Since(start)
	if err != nil {
		log.WithError(err).Error("explain failed")
		return fmt.Errorf("kernelshap-demo: explain: %w", err)
	}

	xRow, err := oracle.PredictBatch(ctx, toMatrix([][]float64{cfg.X}))
	if err != nil {
		return fmt.Errorf("kernelshap-demo: explain: evaluating f(x): %w", err)
	}

	rows, cols := phi.Dims()
	phiRows := make([][]float64, rows)
	residual := make([]float64, rows)
	expected := exp.Expected()
	for i := 0; i < rows; i++ {
		row := make([]float64, cols)
		sum := 0.0
		for j := 0; j < cols; j++ {
			row[j] = phi.At(i, j)
			sum += row[j]
		}
		phiRows[i] = row
		residual[i] = sum - (xRow.At(0, i) - expected[i])
	}

	seed := 0.0
	if s, ok := scenarioSeed(cfg); ok {
		seed = s
	}
	result := explainResult{
		RunID:      log.Data["run_id"].(string),
		ElapsedMs:  float64(elapsed.Microseconds()) / 1000.0,
		Phi:        phiRows,
		Efficiency: residual,
		NSamples:   nSamples,
		Seed:       seed,
	}

	out, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		return fmt.Errorf("kernelshap-demo: explain: encoding result: %w", err)
	}

	log.WithField("elapsed_ms", result.ElapsedMs).Info("explain complete")

	if outPath != "" {
		return os.WriteFile(outPath, out, 0o644)
	}
	fmt.Println(string(out))
	return nil
}
