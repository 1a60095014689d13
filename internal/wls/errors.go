// Package wls implements the weighted least-squares solve used by Kernel
// SHAP's closed-form regression step.
package wls

import "errors"

// Sentinel errors, grounded on katalvlaran-lvlath/matrix/errors.go and
// builder/errors.go's convention: package-level vars, never wrapped at
// definition, checked with errors.Is by callers.
var (
	// ErrShapeMismatch is returned when the length of y differs from X's row
	// count. A w whose rows disagree with X is reported as ErrWeightShape.
	ErrShapeMismatch = errors.New("wls: shape mismatch between X, y, and w")

	// ErrWeightShape is returned when w is neither an m×1 vector nor an
	// m×m diagonal-representable matrix.
	ErrWeightShape = errors.New("wls: w must be m-length or an m x m matrix")

	// ErrNumericDegenerate is returned when even the pseudo-inverse fallback
	// could not be computed (non-finite input reaching SVD).
	ErrNumericDegenerate = errors.New("wls: pseudo-inverse fallback failed")
)
