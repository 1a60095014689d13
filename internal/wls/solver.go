package wls

import (
	"github.com/HazelnutParadise/kernelshap/internal/matrix"
)

// Solve computes β minimizing Σ wᵢ(xᵢᵀβ − yᵢ)² for X (m×n), y (length m),
// and w, which may be passed either as an m×1 vector (treated as diag(w))
// or as a full m×m matrix. It is the closed-form step:
//
//	A = XᵀWX, b = XᵀWy
//	β = A⁻¹b, falling back to pinv(A)·b when A is singular.
//
// usedPseudoInverse reports whether the fallback path was taken, so the
// caller can emit a warning — kept out of this package so wls has no
// logging dependency of its own; its caller logs instead.
func Solve(x *matrix.Dense, y []float64, w *matrix.Dense) (beta []float64, usedPseudoInverse bool, err error) {
	m, n := x.Dims()
	if len(y) != m {
		return nil, false, ErrShapeMismatch
	}

	W, err := weightMatrix(w, m)
	if err != nil {
		return nil, false, err
	}

	xt := x.T()
	a := xt.Mul(W).Mul(x)
	bVec := xt.Mul(W).Mul(matrix.NewVector(y))

	inv := matrix.Zeros(n, n)
	if a.Inverse(inv) {
		result := inv.Mul(bVec)
		return result.Col(0), false, nil
	}

	pinv := a.PseudoInverse()
	if pinv == nil {
		return nil, false, ErrNumericDegenerate
	}
	result := pinv.Mul(bVec)
	return result.Col(0), true, nil
}

// SolveVector is a convenience wrapper over Solve for the common case where
// w is a plain per-row weight vector — the shape the coalition sampler and
// explainer orchestration always pass.
func SolveVector(x *matrix.Dense, y []float64, w []float64) (beta []float64, usedPseudoInverse bool, err error) {
	return Solve(x, y, matrix.NewVector(w))
}

func weightMatrix(w *matrix.Dense, m int) (*matrix.Dense, error) {
	r, c := w.Dims()
	switch {
	case r == m && c == 1:
		return matrix.Diag(w.Col(0)), nil
	case r == m && c == m:
		return w, nil
	default:
		return nil, ErrWeightShape
	}
}
