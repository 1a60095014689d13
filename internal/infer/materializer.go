// Package infer implements the masked-input materializer and inference
// driver: expanding a coalition mask matrix into background replicates,
// batching them into the oracle in one call (or in bounded sub-batches when
// a batch limit is set), and folding the raw outputs back into a
// per-coalition expectation.
package infer

import (
	"github.com/HazelnutParadise/kernelshap/internal/matrix"
)

// Expand builds the expanded design X_raw: for every mask row s and every
// background row i, x_masked(s,i)[j] = x[j] if M[s,j]=1 else
// background[i,j]. Rows are laid out mask-major (all N background rows for
// mask 0, then all N for mask 1, ...) so Drive can fold Y_raw back into Y by
// simple contiguous-block averaging.
func Expand(x []float64, background *matrix.Dense, mask *matrix.Dense) *matrix.Dense {
	s, f := mask.Dims()
	n := background.Rows()

	out := matrix.Zeros(s*n, f)
	for row := 0; row < s; row++ {
		maskRow := mask.Row(row)
		for i := 0; i < n; i++ {
			bgRow := background.Row(i)
			replicate := make([]float64, f)
			for j := 0; j < f; j++ {
				if maskRow[j] != 0 {
					replicate[j] = x[j]
				} else {
					replicate[j] = bgRow[j]
				}
			}
			out.SetRow(row*n+i, replicate)
		}
	}
	return out
}
