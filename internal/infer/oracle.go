package infer

import (
	"context"

	"github.com/HazelnutParadise/kernelshap/internal/matrix"
)

// Oracle is the one external collaborator capability: a polymorphic
// predict_batch. It accepts an m×F matrix and returns an m×T matrix; it may
// suspend (an asynchronous implementation), and must be deterministic for
// identical input. Defined here rather than in the root package so
// internal/infer has no import-cycle dependency on it; the root package
// re-exports this type under the same name.
type Oracle interface {
	PredictBatch(ctx context.Context, x *matrix.Dense) (*matrix.Dense, error)
}
