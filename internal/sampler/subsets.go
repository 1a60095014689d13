package sampler

// maskFromIndices builds an F-length 0/1 row with a 1 at each index in idx.
func maskFromIndices(f int, idx []int) []float64 {
	row := make([]float64, f)
	for _, i := range idx {
		row[i] = 1
	}
	return row
}

// complement flips every entry of mask (1-m).
func complement(mask []float64) []float64 {
	out := make([]float64, len(mask))
	for i, v := range mask {
		out[i] = 1 - v
	}
	return out
}

// enumerateCombinations yields every size-k subset of {0,...,f-1}, in
// lexicographic index order, as index slices.
func enumerateCombinations(f, k int) [][]int {
	if k == 0 || k > f {
		return nil
	}
	combo := make([]int, k)
	for i := range combo {
		combo[i] = i
	}
	var out [][]int
	for {
		cp := make([]int, k)
		copy(cp, combo)
		out = append(out, cp)

		// advance to the next combination
		i := k - 1
		for i >= 0 && combo[i] == i+f-k {
			i--
		}
		if i < 0 {
			break
		}
		combo[i]++
		for j := i + 1; j < k; j++ {
			combo[j] = combo[j-1] + 1
		}
	}
	return out
}

// randomSubset draws a uniform subset of size k from {0,...,f-1} via a
// partial Fisher-Yates shuffle, consuming exactly k RNG draws — part of a
// fixed, documented draw order so runs are reproducible given a seed.
func randomSubset(rng *RNG, f, k int) []int {
	pool := make([]int, f)
	for i := range pool {
		pool[i] = i
	}
	for i := 0; i < k; i++ {
		j := i + rng.Intn(f-i)
		pool[i], pool[j] = pool[j], pool[i]
	}
	return append([]int(nil), pool[:k]...)
}
