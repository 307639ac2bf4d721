package distance

// Result of a distance computation. Unmatched counts the values from the
// longer column that had no partner; it is non-zero only when the two
// columns hold a different number of values.
type Result struct {
	Distance  uint64
	Unmatched uint64
}

// Sweep pairs the values of h.Left and h.Right by rank and returns the sum
// of their differences. It consumes h: every paired count is decremented, so
// h must not be read afterwards.
//
// A multiplicity of n at Left[i] paired with Right[j] is settled in one step
// as min(Left[i], Right[j]) * |i-j|. j never moves backwards, so the whole
// sweep is O(Range + distinct pairs).
func Sweep(h *Histogram) Result {
	var (
		r Result
		j int
	)
	for i := range Range {
		for h.Left[i] > 0 {
			for j < Range && h.Right[j] == 0 {
				j++
			}
			if j == Range {
				// Right ran out first.
				for ; i < Range; i++ {
					r.Unmatched += h.Left[i]
				}
				return r
			}
			n := min(h.Left[i], h.Right[j])
			r.Distance += n * absDiff(i, j)
			h.Left[i] -= n
			h.Right[j] -= n
		}
	}
	for ; j < Range; j++ {
		r.Unmatched += h.Right[j]
	}
	return r
}

func absDiff(i, j int) uint64 {
	if i > j {
		return uint64(i - j)
	}
	return uint64(j - i)
}
