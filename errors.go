package kernelshap

import "errors"

// Sentinel errors, checked with errors.Is and always wrapped with call-site
// context via fmt.Errorf's %w rather than redeclared per call site.
var (
	// ErrInputShape reports background not rectangular, len(x) != F, or
	// n_samples < 1.
	ErrInputShape = errors.New("kernelshap: invalid input shape")
	// ErrOracleFailure reports the oracle returning an error or an
	// unexpected shape.
	ErrOracleFailure = errors.New("kernelshap: oracle failure")
	// ErrNumericDegenerate reports a non-recoverable numeric failure (the
	// pseudo-inverse itself failed).
	ErrNumericDegenerate = errors.New("kernelshap: numeric degeneracy")
	// ErrInternalInvariant reports a sanity-check failure that indicates a
	// bug rather than bad input (Σw != 1 within tolerance, mask/width
	// mismatch).
	ErrInternalInvariant = errors.New("kernelshap: internal invariant violated")
)
