// Package matrix provides the one dense real matrix type used across
// kernelshap. No other package in this module allocates a matrix directly;
// everything else receives and returns *Dense.
package matrix

import (
	"fmt"

	"gonum.org/v1/gonum/mat"
)

// Dense is a dense real matrix backed by gonum's mat.Dense. It exists so the
// rest of the module never imports gonum directly — the kernel is the single
// owner of matrix allocation and the single place that knows how the linear
// algebra is actually carried out.
type Dense struct {
	m *mat.Dense
}

// NewDense builds a rows×cols matrix from row-major data. A nil data slice
// zero-fills the matrix. A zero row or column count yields an empty matrix
// whose Dims report (0, 0).
func NewDense(rows, cols int, data []float64) *Dense {
	if rows == 0 || cols == 0 {
		return &Dense{m: &mat.Dense{}}
	}
	return &Dense{m: mat.NewDense(rows, cols, data)}
}

// Zeros returns a rows×cols matrix of zeros.
func Zeros(rows, cols int) *Dense {
	return NewDense(rows, cols, nil)
}

// NewVector builds a len(data)×1 column matrix.
func NewVector(data []float64) *Dense {
	return NewDense(len(data), 1, data)
}

// wrap adopts an already-computed gonum matrix as a Dense without copying.
func wrap(m *mat.Dense) *Dense {
	return &Dense{m: m}
}

// Dims reports (rows, cols).
func (d *Dense) Dims() (int, int) {
	return d.m.Dims()
}

// Rows reports the row count.
func (d *Dense) Rows() int {
	r, _ := d.m.Dims()
	return r
}

// Cols reports the column count.
func (d *Dense) Cols() int {
	_, c := d.m.Dims()
	return c
}

// At reads the element at (i, j).
func (d *Dense) At(i, j int) float64 {
	return d.m.At(i, j)
}

// Set writes the element at (i, j).
func (d *Dense) Set(i, j int, v float64) {
	d.m.Set(i, j, v)
}

// Fill broadcasts v into every element of the matrix, in place.
func (d *Dense) Fill(v float64) {
	r, c := d.Dims()
	for i := 0; i < r; i++ {
		for j := 0; j < c; j++ {
			d.m.Set(i, j, v)
		}
	}
}

// Row returns a copy of row i.
func (d *Dense) Row(i int) []float64 {
	_, c := d.Dims()
	out := make([]float64, c)
	mat.Row(out, i, d.m)
	return out
}

// Col returns a copy of column j.
func (d *Dense) Col(j int) []float64 {
	r, _ := d.Dims()
	out := make([]float64, r)
	mat.Col(out, j, d.m)
	return out
}

// Slice returns the sub-matrix over rows [r0,r1) and columns [c0,c1), copied.
func (d *Dense) Slice(r0, r1, c0, c1 int) *Dense {
	view := d.m.Slice(r0, r1, c0, c1)
	out := mat.NewDense(r1-r0, c1-c0, nil)
	out.Copy(view)
	return wrap(out)
}

// SetRow overwrites row i with values, which must have length Cols().
func (d *Dense) SetRow(i int, values []float64) {
	d.m.SetRow(i, values)
}

// Clone returns an independent deep copy.
func (d *Dense) Clone() *Dense {
	r, c := d.Dims()
	out := mat.NewDense(r, c, nil)
	out.Copy(d.m)
	return wrap(out)
}

// Mul returns d × other.
func (d *Dense) Mul(other *Dense) *Dense {
	_, dc := d.Dims()
	or, _ := other.Dims()
	if dc != or {
		panic(fmt.Sprintf("matrix: Mul dimension mismatch: %dx%d * %dx%d", d.Rows(), dc, or, other.Cols()))
	}
	r, _ := d.Dims()
	_, c := other.Dims()
	out := mat.NewDense(r, c, nil)
	out.Mul(d.m, other.m)
	return wrap(out)
}

// T returns the transpose as a new matrix.
func (d *Dense) T() *Dense {
	r, c := d.Dims()
	out := mat.NewDense(c, r, nil)
	out.Copy(d.m.T())
	return wrap(out)
}

// Scale returns d scaled by s.
func (d *Dense) Scale(s float64) *Dense {
	r, c := d.Dims()
	out := mat.NewDense(r, c, nil)
	out.Scale(s, d.m)
	return wrap(out)
}

// Add returns d + other, element-wise.
func (d *Dense) Add(other *Dense) *Dense {
	r, c := d.Dims()
	out := mat.NewDense(r, c, nil)
	out.Add(d.m, other.m)
	return wrap(out)
}

// Sub returns d - other, element-wise.
func (d *Dense) Sub(other *Dense) *Dense {
	r, c := d.Dims()
	out := mat.NewDense(r, c, nil)
	out.Sub(d.m, other.m)
	return wrap(out)
}

// Diag builds a square diagonal matrix from v.
func Diag(v []float64) *Dense {
	n := len(v)
	out := mat.NewDense(n, n, nil)
	for i := 0; i < n; i++ {
		out.Set(i, i, v[i])
	}
	return wrap(out)
}

