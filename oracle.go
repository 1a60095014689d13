package kernelshap

import (
	"context"

	"github.com/HazelnutParadise/kernelshap/internal/infer"
	"github.com/HazelnutParadise/kernelshap/internal/matrix"
)

// Oracle is the one external collaborator capability — dynamic dispatch
// over models, for which an interface/function value suffices. It is
// re-exported from internal/infer, which defines it so the inference driver
// has no dependency on this package.
type Oracle = infer.Oracle

// OracleResult is the payload delivered on an AsyncOracle's channel.
type OracleResult struct {
	Y   *matrix.Dense
	Err error
}

type oracleFunc func(ctx context.Context, x *matrix.Dense) (*matrix.Dense, error)

func (f oracleFunc) PredictBatch(ctx context.Context, x *matrix.Dense) (*matrix.Dense, error) {
	return f(ctx, x)
}

// OracleFunc adapts a synchronous function value into an Oracle, for
// in-process models that never need to suspend.
func OracleFunc(fn func(ctx context.Context, x *matrix.Dense) (*matrix.Dense, error)) Oracle {
	return oracleFunc(fn)
}

type asyncOracle struct {
	submit func(x *matrix.Dense) <-chan OracleResult
}

// PredictBatch blocks on the channel submit returns, or returns ctx's error
// if the context is cancelled first. This is the single suspension point
// for an asynchronous oracle.
func (a asyncOracle) PredictBatch(ctx context.Context, x *matrix.Dense) (*matrix.Dense, error) {
	ch := a.submit(x)
	select {
	case res := <-ch:
		return res.Y, res.Err
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

// AsyncOracle adapts a channel/future-returning model into an Oracle.
func AsyncOracle(submit func(x *matrix.Dense) <-chan OracleResult) Oracle {
	return asyncOracle{submit: submit}
}
