package benchmark

import (
	"context"
	"math"
	"testing"

	"github.com/HazelnutParadise/kernelshap"
	"github.com/HazelnutParadise/kernelshap/internal/matrix"
)

func sigmoidOracle(f int) kernelshap.Oracle {
	return kernelshap.OracleFunc(func(_ context.Context, x *matrix.Dense) (*matrix.Dense, error) {
		rows, cols := x.Dims()
		out := matrix.Zeros(rows, 1)
		for i := 0; i < rows; i++ {
			z := -0.5
			for j := 0; j < cols; j++ {
				z += 0.1 * x.At(i, j)
			}
			out.Set(i, 0, 1/(1+math.Exp(-z)))
		}
		return out, nil
	})
}

func backgroundOf(n, f int) *matrix.Dense {
	data := make([]float64, n*f)
	for i := range data {
		data[i] = float64(i%7) * 0.3
	}
	return matrix.NewDense(n, f, data)
}

func instanceOf(f int) []float64 {
	x := make([]float64, f)
	for i := range x {
		x[i] = float64(i) * 0.2
	}
	return x
}

func benchmarkExplain(b *testing.B, f, nSamples int) {
	ctx := context.Background()
	exp, err := kernelshap.New(ctx, sigmoidOracle(f), backgroundOf(20, f))
	if err != nil {
		b.Fatalf("New failed: %v", err)
	}
	x := instanceOf(f)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := exp.ExplainOneInstance(ctx, x, kernelshap.WithNSamples(nSamples)); err != nil {
			b.Fatalf("ExplainOneInstance failed: %v", err)
		}
	}
}

func BenchmarkExplain_F8_FullEnumeration(b *testing.B) {
	benchmarkExplain(b, 8, 1<<8)
}

func BenchmarkExplain_F20_Default(b *testing.B) {
	benchmarkExplain(b, 20, 2*20+2048)
}

func BenchmarkExplain_F50_SmallBudget(b *testing.B) {
	benchmarkExplain(b, 50, 512)
}
