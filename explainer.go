package kernelshap

import (
	"context"
	"errors"
	"fmt"
	"math"

	"gonum.org/v1/gonum/stat"

	"github.com/HazelnutParadise/kernelshap/internal/infer"
	"github.com/HazelnutParadise/kernelshap/internal/matrix"
	"github.com/HazelnutParadise/kernelshap/internal/sampler"
	"github.com/HazelnutParadise/kernelshap/internal/wls"
)

// Explainer holds the one-time initialization: the background set, the
// oracle, the cached base predictions f(D), and the expected value E[f]. It
// is reusable across ExplainOneInstance calls; no per-call state is ever
// stored on it.
type Explainer struct {
	model      Oracle
	background *matrix.Dense
	baseY      *matrix.Dense
	expected   []float64
	f          int
	t          int
	seed       float64
	batchLimit int
}

type explainerConfig struct {
	seed       float64
	batchLimit int
}

// Option configures New.
type Option func(*explainerConfig)

// WithSeed sets the RNG seed used for coalition sampling, clamped into
// [0, 1) by taking |seed| − floor(|seed|).
func WithSeed(seed float64) Option {
	return func(c *explainerConfig) {
		c.seed = sampler.ClampSeed(seed)
	}
}

// WithBatchLimit caps the number of X_raw rows sent to the oracle per call,
// streaming larger designs in sub-batches. A limit <= 0 (the default) sends
// the whole design in one call.
func WithBatchLimit(n int) Option {
	return func(c *explainerConfig) {
		c.batchLimit = n
	}
}

// New stores model and background, validates background is non-empty and
// rectangular, and computes and caches f(background) and E[f] once.
func New(ctx context.Context, model Oracle, background *matrix.Dense, opts ...Option) (*Explainer, error) {
	if model == nil {
		return nil, fmt.Errorf("kernelshap: new: %w: model is nil", ErrInputShape)
	}
	if background == nil {
		return nil, fmt.Errorf("kernelshap: new: %w: background is nil", ErrInputShape)
	}
	n, f := background.Dims()
	if n == 0 || f == 0 {
		return nil, fmt.Errorf("kernelshap: new: %w: background must be non-empty and rectangular", ErrInputShape)
	}

	cfg := explainerConfig{seed: sampler.DefaultSeed}
	for _, opt := range opts {
		opt(&cfg)
	}

	baseY, err := model.PredictBatch(ctx, background)
	if err != nil {
		return nil, fmt.Errorf("kernelshap: new: %w: %w", ErrOracleFailure, err)
	}
	if baseY == nil {
		return nil, fmt.Errorf("kernelshap: new: %w: oracle returned nil for background", ErrOracleFailure)
	}
	rows, t := baseY.Dims()
	if rows != n || t == 0 {
		return nil, fmt.Errorf("kernelshap: new: %w: oracle returned %dx%d for %d background rows", ErrOracleFailure, rows, t, n)
	}

	expected := make([]float64, t)
	for col := 0; col < t; col++ {
		expected[col] = stat.Mean(baseY.Col(col), nil)
	}

	return &Explainer{
		model:      model,
		background: background,
		baseY:      baseY,
		expected:   expected,
		f:          f,
		t:          t,
		seed:       cfg.seed,
		batchLimit: cfg.batchLimit,
	}, nil
}

// Expected returns E[f], the per-target mean of f over the background set.
func (e *Explainer) Expected() []float64 {
	out := make([]float64, len(e.expected))
	copy(out, e.expected)
	return out
}

// NumFeatures returns F, the feature width fixed at construction.
func (e *Explainer) NumFeatures() int {
	return e.f
}

type explainConfig struct {
	nSamples int
}

// ExplainOption configures a single ExplainOneInstance call.
type ExplainOption func(*explainConfig)

// WithNSamples overrides the default n_samples heuristic (2F + 2048).
func WithNSamples(n int) ExplainOption {
	return func(c *explainConfig) {
		c.nSamples = n
	}
}

const weightSumTol = 1e-6

// ExplainOneInstance runs the per-instance algorithm: validate x, evaluate
// f(x), sample coalitions, materialize and drive the oracle over masked
// inputs, apply the efficiency constraint, and solve the reduced weighted
// least-squares system per target. Returns Φ (T×F).
func (e *Explainer) ExplainOneInstance(ctx context.Context, x []float64, opts ...ExplainOption) (*matrix.Dense, error) {
	if len(x) != e.f {
		return nil, fmt.Errorf("kernelshap: explain: %w: len(x)=%d, want %d", ErrInputShape, len(x), e.f)
	}

	cfg := explainConfig{nSamples: 2*e.f + 2048}
	for _, opt := range opts {
		opt(&cfg)
	}
	if cfg.nSamples < 1 {
		return nil, fmt.Errorf("kernelshap: explain: %w: n_samples must be >= 1, got %d", ErrInputShape, cfg.nSamples)
	}

	xRow := matrix.NewDense(1, e.f, append([]float64(nil), x...))
	fxMat, err := e.model.PredictBatch(ctx, xRow)
	if err != nil {
		return nil, fmt.Errorf("kernelshap: explain: %w: %w", ErrOracleFailure, err)
	}
	if fxMat == nil {
		return nil, fmt.Errorf("kernelshap: explain: %w: oracle returned nil for f(x)", ErrOracleFailure)
	}
	rows, t := fxMat.Dims()
	if rows != 1 || t != e.t {
		return nil, fmt.Errorf("kernelshap: explain: %w: f(x) shape %dx%d, want 1x%d", ErrOracleFailure, rows, t, e.t)
	}
	fx := fxMat.Row(0)

	phi := matrix.Zeros(e.t, e.f)

	// F=1: no non-trivial coalition exists; skip the sampler and solver
	// entirely.
	if e.f == 1 {
		for tg := 0; tg < e.t; tg++ {
			phi.Set(tg, 0, fx[tg]-e.expected[tg])
		}
		return phi, nil
	}

	rng := sampler.NewRNG(e.seed)
	res, err := sampler.Sample(e.f, cfg.nSamples, rng)
	if err != nil {
		return nil, fmt.Errorf("kernelshap: explain: sampling: %w", err)
	}

	if s := sumFloat64(res.Weights); math.Abs(s-1) > weightSumTol {
		return nil, fmt.Errorf("kernelshap: explain: %w: sum(weights)=%v, want ~1", ErrInternalInvariant, s)
	}

	s, maskWidth := res.Mask.Dims()
	if maskWidth != e.f {
		return nil, fmt.Errorf("kernelshap: explain: %w: mask width %d, want %d", ErrInternalInvariant, maskWidth, e.f)
	}

	xRaw := infer.Expand(x, e.background, res.Mask)
	y, err := infer.Drive(ctx, e.model, xRaw, e.background.Rows(), e.batchLimit)
	if err != nil {
		return nil, fmt.Errorf("kernelshap: explain: %w: %w", ErrOracleFailure, err)
	}

	lastCol := e.f - 1
	xPrime := matrix.Zeros(s, e.f-1)
	for row := 0; row < s; row++ {
		last := res.Mask.At(row, lastCol)
		for j := 0; j < e.f-1; j++ {
			xPrime.Set(row, j, res.Mask.At(row, j)-last)
		}
	}

	for tg := 0; tg < e.t; tg++ {
		fxMinusE := fx[tg] - e.expected[tg]
		yPrime := make([]float64, s)
		for row := 0; row < s; row++ {
			last := res.Mask.At(row, lastCol)
			yPrime[row] = y.At(row, tg) - e.expected[tg] - last*fxMinusE
		}

		beta, usedPseudoInverse, err := wls.SolveVector(xPrime, yPrime, res.Weights)
		if err != nil {
			if errors.Is(err, wls.ErrNumericDegenerate) {
				return nil, fmt.Errorf("kernelshap: explain: target %d: %w: %w", tg, ErrNumericDegenerate, err)
			}
			return nil, fmt.Errorf("kernelshap: explain: target %d: %w", tg, err)
		}
		if usedPseudoInverse {
			LogWarning("explain: target %d: singular design, used pseudo-inverse fallback", tg)
		}

		sum := 0.0
		for j := 0; j < e.f-1; j++ {
			phi.Set(tg, j, beta[j])
			sum += beta[j]
		}
		phi.Set(tg, lastCol, fxMinusE-sum)
	}

	return phi, nil
}

func sumFloat64(v []float64) float64 {
	s := 0.0
	for _, x := range v {
		s += x
	}
	return s
}
