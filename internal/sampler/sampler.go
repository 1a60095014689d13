// Package sampler implements the coalition sampler: a deterministic shell
// that enumerates cheap outer subset sizes exactly, and a random shell that
// spends the remaining sample budget on the interior sizes under
// SHAP-kernel weighting.
//
// The random-shell branch is left open-ended by design; this package
// implements the deterministic shell exactly and derives the random shell
// as its natural continuation — see DESIGN.md's "Open Question resolved"
// entry.
package sampler

import (
	"math"

	"github.com/HazelnutParadise/kernelshap/internal/matrix"
)

// Result is the output of Sample: the mask matrix, its per-row kernel
// weights (summing to 1), and whether the full coalition space was
// enumerated (no random shell was needed).
type Result struct {
	Mask      *matrix.Dense
	Weights   []float64
	Exhausted bool
}

const floatTol = 1e-9

// Sample builds the mask matrix and kernel weights for F features under an
// n_samples budget.
func Sample(f, nSamples int, rng *RNG) (*Result, error) {
	if f < 1 {
		return nil, ErrInvalidFeatureCount
	}
	if nSamples < 1 {
		return nil, ErrInvalidSampleCount
	}

	switch f {
	case 1:
		// No non-trivial coalition exists; the explainer skips the sampler
		// and solver entirely for F=1 — this package is not even called in
		// that path, but report an empty exhausted result defensively for
		// callers that do.
		return &Result{Mask: matrix.Zeros(0, 1), Weights: nil, Exhausted: true}, nil
	case 2:
		// Only one non-trivial pair exists: {0} and {1}, equal weight.
		mask := matrix.NewDense(2, 2, []float64{
			1, 0,
			0, 1,
		})
		return &Result{Mask: mask, Weights: []float64{0.5, 0.5}, Exhausted: true}, nil
	}

	curN := nSamples
	if f <= 30 {
		maxSpace := int(math.Pow(2, float64(f))) - 2
		if curN > maxSpace {
			curN = maxSpace
		}
	}

	maxSize := (f - 1 + 1) / 2 // ceil((f-1)/2)
	halfFloor := (f - 1) / 2   // floor((f-1)/2)

	slotWeight := make([]float64, maxSize+1) // 1-indexed by size s
	totalWeight := 0.0
	for s := 1; s <= maxSize; s++ {
		slotWeight[s] = float64(f-1) / float64(s*(f-s))
		if s <= halfFloor {
			// sizes s and f-s share this slot
			slotWeight[s] *= 2
		}
		totalWeight += slotWeight[s]
	}

	b := &builder{f: f, rows: nil, weights: nil, pairRow: map[string]int{}}

	remainingBudget := curN
	remainingWeightMass := totalWeight

	s := 1
	for ; s <= maxSize; s++ {
		paired := s <= halfFloor
		count := Choose(f, s)
		nSubsets := count
		if paired {
			nSubsets *= 2
		}

		frac := slotWeight[s] / remainingWeightMass
		if nSubsets > float64(remainingBudget)*frac+floatTol {
			break // deterministic shell stops here; random shell takes over
		}

		perSample := slotWeight[s] / count
		if paired {
			perSample /= 2
		}
		for _, idx := range enumerateCombinations(f, s) {
			mask := maskFromIndices(f, idx)
			b.addFresh(mask, perSample)
			if paired {
				b.addFresh(complement(mask), perSample)
			}
		}

		remainingBudget -= int(nSubsets)
		remainingWeightMass -= slotWeight[s]
	}
	exhausted := s > maxSize

	if !exhausted && remainingBudget > 0 {
		sampleRandomShell(b, rng, f, s, maxSize, halfFloor, slotWeight, remainingWeightMass, remainingBudget)
	}

	weights := append([]float64(nil), b.weights...)
	sum := 0.0
	for _, w := range weights {
		sum += w
	}
	for i := range weights {
		weights[i] /= sum
	}

	flat := make([]float64, len(b.rows)*f)
	for i, row := range b.rows {
		copy(flat[i*f:(i+1)*f], row)
	}

	return &Result{
		Mask:      matrix.NewDense(len(b.rows), f, flat),
		Weights:   weights,
		Exhausted: exhausted,
	}, nil
}

// sampleRandomShell spends the remaining budget on sizes in [loSize, hiSize]
// proportional to their remaining weight mass.
func sampleRandomShell(b *builder, rng *RNG, f, loSize, hiSize, halfFloor int, slotWeight []float64, weightMass float64, budget int) {
	for budget > 0 {
		size := drawSize(rng, slotWeight, loSize, hiSize, weightMass)
		paired := size <= halfFloor

		idx := randomSubset(rng, f, size)
		mask := maskFromIndices(f, idx)
		comp := complement(mask)

		increment := weightMass / float64(budget)
		if paired {
			increment *= 0.5
		}

		b.addOrAccumulate(mask, comp, paired, increment)
		budget--
	}
}

// drawSize picks a coalition size in [lo, hi] with probability proportional
// to slotWeight, consuming exactly one RNG draw.
func drawSize(rng *RNG, slotWeight []float64, lo, hi int, weightMass float64) int {
	draw := rng.Float64() * weightMass
	cum := 0.0
	for s := lo; s <= hi; s++ {
		cum += slotWeight[s]
		if draw <= cum {
			return s
		}
	}
	return hi
}

// builder accumulates mask rows and weights with dedup-by-canonical-key
// bookkeeping for the random shell.
type builder struct {
	f       int
	rows    [][]float64
	weights []float64
	pairRow map[string]int // canonical key -> index of the first inserted row of the pair
	compRow map[string]int // canonical key -> index of the second (complement) row, if paired
}

func (b *builder) addFresh(mask []float64, weight float64) {
	b.rows = append(b.rows, mask)
	b.weights = append(b.weights, weight)
}

func (b *builder) addOrAccumulate(mask, comp []float64, paired bool, increment float64) {
	if b.compRow == nil {
		b.compRow = map[string]int{}
	}
	key := encodeMask(mask)
	if paired {
		// canonicalize on the lexicographically smaller of the two bit
		// strings so (mask, complement) and (complement, mask) collide.
		ck := encodeMask(comp)
		if ck < key {
			key = ck
		}
	}

	if idx, ok := b.pairRow[key]; ok {
		b.weights[idx] += increment
		if paired {
			b.weights[b.compRow[key]] += increment
		}
		return
	}

	idxA := len(b.rows)
	b.addFresh(mask, increment)
	b.pairRow[key] = idxA
	if paired {
		idxB := len(b.rows)
		b.addFresh(comp, increment)
		b.compRow[key] = idxB
	}
}

func encodeMask(mask []float64) string {
	buf := make([]byte, len(mask))
	for i, v := range mask {
		if v != 0 {
			buf[i] = '1'
		} else {
			buf[i] = '0'
		}
	}
	return string(buf)
}
