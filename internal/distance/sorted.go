package distance

import (
	"bytes"

	"golang.org/x/exp/slices"
	"golang.org/x/sync/errgroup"
)

// Columns parses every record in buf into its two columns, in input order.
func Columns(buf []byte) (left, right []int32, skipped int) {
	n := len(buf)/(Width+1) + 1
	left, right = make([]int32, 0, n), make([]int32, 0, n)
	for len(buf) > 0 {
		line := buf
		if i := bytes.IndexByte(buf, '\n'); i >= 0 {
			line, buf = buf[:i], buf[i+1:]
		} else {
			buf = nil
		}
		a, b, ok := ParseLine(line)
		if !ok {
			if len(bytes.TrimSpace(line)) > 0 {
				skipped++
			}
			continue
		}
		left, right = append(left, a), append(right, b)
	}
	return left, right, skipped
}

// SortedDistance sorts both columns in place, one goroutine each, and sums
// |left[i]-right[i]| over the common length. It does not depend on the
// bounded domain and serves as the reference for Sweep.
func SortedDistance(left, right []int32) Result {
	var g errgroup.Group
	g.Go(func() error { slices.Sort(left); return nil })
	g.Go(func() error { slices.Sort(right); return nil })
	_ = g.Wait() // never fails

	var r Result
	n := min(len(left), len(right))
	for i := range n {
		r.Distance += absDiff(int(left[i]), int(right[i]))
	}
	r.Unmatched = uint64(len(left) + len(right) - 2*n)
	return r
}
