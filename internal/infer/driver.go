package infer

import (
	"context"
	"fmt"

	"gonum.org/v1/gonum/stat"

	"github.com/HazelnutParadise/kernelshap/internal/matrix"
	"github.com/HazelnutParadise/kernelshap/parallel"
)

// maxConcurrentBatches bounds how many oracle sub-batches run at once when
// streaming; chosen as a small fixed constant rather than exposed, since the
// oracle itself — not this package — is almost always the real concurrency
// bottleneck (rate limits, GPU batching, ...).
const maxConcurrentBatches = 4

// Drive calls the oracle over X_raw — once, or in bounded row-count
// sub-batches when batchLimit > 0 and smaller than X_raw's row count — and
// folds the raw per-replicate outputs into Y (S×T) by averaging each mask's
// n contiguous replicate rows. All accumulation happens in float64
// regardless of what precision the oracle itself used internally.
func Drive(ctx context.Context, oracle Oracle, xRaw *matrix.Dense, n, batchLimit int) (*matrix.Dense, error) {
	total, f := xRaw.Dims()
	if total == 0 {
		return matrix.Zeros(0, 0), nil
	}

	limit := batchLimit
	if limit <= 0 || limit > total {
		limit = total
	}
	numBatches := (total + limit - 1) / limit

	workers := numBatches
	if workers > maxConcurrentBatches {
		workers = maxConcurrentBatches
	}

	batches, err := parallel.Run(ctx, numBatches, workers, func(ctx context.Context, i int) (*matrix.Dense, error) {
		start := i * limit
		end := start + limit
		if end > total {
			end = total
		}
		sub := xRaw.Slice(start, end, 0, f)
		out, err := oracle.PredictBatch(ctx, sub)
		if err != nil {
			return nil, fmt.Errorf("infer: oracle batch [%d,%d): %w", start, end, err)
		}
		if out == nil {
			return nil, fmt.Errorf("infer: oracle batch [%d,%d): returned nil output", start, end)
		}
		rows, _ := out.Dims()
		if rows != end-start {
			return nil, fmt.Errorf("infer: oracle batch [%d,%d): returned %d rows, want %d", start, end, rows, end-start)
		}
		return out, nil
	})
	if err != nil {
		return nil, err
	}

	t := 0
	for _, b := range batches {
		if b != nil {
			_, t = b.Dims()
			break
		}
	}

	yRaw := matrix.Zeros(total, t)
	row := 0
	for _, b := range batches {
		br, _ := b.Dims()
		for i := 0; i < br; i++ {
			yRaw.SetRow(row, b.Row(i))
			row++
		}
	}

	if total%n != 0 {
		return nil, fmt.Errorf("infer: X_raw row count %d is not a multiple of background size %d", total, n)
	}
	s := total / n
	y := matrix.Zeros(s, t)
	for g := 0; g < s; g++ {
		for col := 0; col < t; col++ {
			colData := yRaw.Slice(g*n, (g+1)*n, col, col+1).Col(0)
			y.Set(g, col, stat.Mean(colData, nil))
		}
	}
	return y, nil
}
