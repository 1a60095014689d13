package matrix

import (
	"math"

	"gonum.org/v1/gonum/mat"
)

// singularTol is the determinant magnitude below which a matrix is treated
// as singular (abs(det) < 1e-12).
const singularTol = 1e-12

// Det returns the determinant of a square matrix.
func (d *Dense) Det() float64 {
	return mat.Det(d.m)
}

// Inverse writes the matrix inverse into dst and reports whether the
// inversion succeeded; dst is left untouched on failure. It never panics on
// a singular matrix — the caller (internal/wls) is expected to fall back to
// PseudoInverse, signaled here by an explicit bool rather than a nil result.
func (d *Dense) Inverse(dst *Dense) bool {
	r, c := d.Dims()
	if r != c {
		return false
	}
	if math.Abs(d.Det()) < singularTol {
		return false
	}
	var inv mat.Dense
	if err := inv.Inverse(d.m); err != nil {
		return false
	}
	dst.m.CloneFrom(&inv)
	return true
}

// PseudoInverse returns the Moore–Penrose pseudo-inverse via SVD. Unlike
// Inverse it always succeeds for a finite input matrix (rank-deficient or
// non-square), which is the fallback required when XᵀWX is singular. Built
// on the SVD-based least-squares fallback pattern (svd.Factorize +
// rank-thresholded inverse of the singular values), generalized here into a
// full pseudo-inverse matrix rather than a one-shot solve.
func (d *Dense) PseudoInverse() *Dense {
	r, c := d.Dims()

	var svd mat.SVD
	ok := svd.Factorize(d.m, mat.SVDThin)
	if !ok {
		// Numerically degenerate input (NaN/Inf); the caller (wls) reports
		// this as ErrNumericDegenerate rather than returning a bogus matrix.
		return nil
	}

	values := svd.Values(nil)
	var u, v mat.Dense
	svd.UTo(&u)
	svd.VTo(&v)

	// Threshold follows the common convention: singular values smaller than
	// max(dims) * eps * largest-singular-value are treated as zero.
	var sigmaMax float64
	for _, s := range values {
		if s > sigmaMax {
			sigmaMax = s
		}
	}
	tol := float64(max(r, c)) * 2.220446049250313e-16 * sigmaMax

	sigmaInv := mat.NewDense(len(values), len(values), nil)
	for i, s := range values {
		if s > tol {
			sigmaInv.Set(i, i, 1/s)
		}
	}

	// pinv = V * Σ⁺ * Uᵀ
	var vSigma mat.Dense
	vSigma.Mul(&v, sigmaInv)
	var pinv mat.Dense
	pinv.Mul(&vSigma, u.T())

	return wrap(&pinv)
}
