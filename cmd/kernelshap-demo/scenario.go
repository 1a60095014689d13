package main

import (
	"context"
	"fmt"
	"math"
	"os"

	"github.com/HazelnutParadise/Go-Utils/conv"
	"gopkg.in/yaml.v3"

	"github.com/HazelnutParadise/kernelshap"
	"github.com/HazelnutParadise/kernelshap/internal/matrix"
)

// scenarioConfig is the shape of a --config scenario.yaml file: a linear
// oracle (one coefficient row + intercept per target, softmax-combined when
// there is more than one row) evaluated over a background set, explaining
// one instance x. NSamples and Seed are typed `any` because YAML authors
// commonly write a seed as a bare float and n_samples as a bare int — both
// are normalized through Go-Utils/conv.ParseF64 rather than forcing a
// specific YAML scalar tag.
type scenarioConfig struct {
	Coefficients [][]float64 `yaml:"coefficients"`
	Intercepts   []float64   `yaml:"intercepts"`
	Background   [][]float64 `yaml:"background"`
	X            []float64   `yaml:"x"`
	NSamples     any         `yaml:"n_samples"`
	Seed         any         `yaml:"seed"`
}

func loadScenario(path string) (*scenarioConfig, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("kernelshap-demo: reading config: %w", err)
	}
	var cfg scenarioConfig
	if err := yaml.Unmarshal(raw, &cfg); err != nil {
		return nil, fmt.Errorf("kernelshap-demo: parsing config: %w", err)
	}
	if len(cfg.Coefficients) == 0 || len(cfg.Coefficients) != len(cfg.Intercepts) {
		return nil, fmt.Errorf("kernelshap-demo: config must have matching coefficients/intercepts rows, one per target")
	}
	if len(cfg.Background) == 0 {
		return nil, fmt.Errorf("kernelshap-demo: config must have at least one background row")
	}
	return &cfg, nil
}

// builtinScenarioAB is the reference Scenario A/B fixture: a binary logistic
// oracle over five iris-like background rows.
func builtinScenarioAB() *scenarioConfig {
	return &scenarioConfig{
		Coefficients: [][]float64{{-0.1991, 0.3426, 0.0478, 1.03745}},
		Intercepts:   []float64{-1.6689},
		Background: [][]float64{
			{5.8, 2.8, 5.1, 2.4},
			{5.8, 2.7, 5.1, 1.9},
			{7.2, 3.6, 6.1, 2.5},
			{6.2, 2.8, 4.8, 1.8},
			{4.9, 3.1, 1.5, 0.1},
		},
		X:        []float64{4.8, 3.8, 2.1, 5.4},
		NSamples: 32,
		Seed:     0.20071022,
	}
}

// toMatrix flattens a [][]float64 into a row-major *matrix.Dense.
func toMatrix(rows [][]float64) *matrix.Dense {
	if len(rows) == 0 {
		return matrix.Zeros(0, 0)
	}
	f := len(rows[0])
	flat := make([]float64, len(rows)*f)
	for i, row := range rows {
		copy(flat[i*f:(i+1)*f], row)
	}
	return matrix.NewDense(len(rows), f, flat)
}

// linearCombinedOracle builds a multi-target oracle from per-target
// (coefficients, intercept) rows, softmax-normalized across targets when
// there is more than one — a 3-class softmax oracle generalized to any
// target count, and the plain sigmoid shape of Scenarios A/B when there is
// exactly one row.
func linearCombinedOracle(coef [][]float64, intercept []float64) kernelshap.Oracle {
	t := len(coef)
	return kernelshap.OracleFunc(func(_ context.Context, x *matrix.Dense) (*matrix.Dense, error) {
		rows, cols := x.Dims()
		out := matrix.Zeros(rows, t)
		logits := make([]float64, t)
		for i := 0; i < rows; i++ {
			for k := 0; k < t; k++ {
				z := intercept[k]
				for j := 0; j < cols; j++ {
					z += coef[k][j] * x.At(i, j)
				}
				logits[k] = z
			}
			if t == 1 {
				out.Set(i, 0, 1/(1+math.Exp(-logits[0])))
				continue
			}
			maxLogit := logits[0]
			for _, z := range logits[1:] {
				if z > maxLogit {
					maxLogit = z
				}
			}
			sum := 0.0
			exp := make([]float64, t)
			for k, z := range logits {
				exp[k] = math.Exp(z - maxLogit)
				sum += exp[k]
			}
			for k := range exp {
				out.Set(i, k, exp[k]/sum)
			}
		}
		return out, nil
	})
}

func scenarioNSamples(cfg *scenarioConfig, f int) int {
	if cfg.NSamples == nil {
		return 2*f + 2048
	}
	return int(conv.ParseF64(cfg.NSamples))
}

func scenarioSeed(cfg *scenarioConfig) (float64, bool) {
	if cfg.Seed == nil {
		return 0, false
	}
	return conv.ParseF64(cfg.Seed), true
}
