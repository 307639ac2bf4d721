package distance

import (
	"bytes"
	"fmt"
	"math/rand/v2"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func genLines(r *rand.Rand, n int) []string {
	lines := make([]string, n)
	for i := range lines {
		lines[i] = fmt.Sprintf("%05d %05d", Min+r.IntN(Range), Min+r.IntN(Range))
	}
	return lines
}

func join(lines []string) []byte {
	return []byte(strings.Join(lines, "\n") + "\n")
}

func tableSum(t *Table) uint64 {
	var n uint64
	for _, c := range t {
		n += c
	}
	return n
}

func sweepBuf(buf []byte) Result {
	h := NewHistogram()
	h.AddLines(buf)
	return Sweep(h)
}

func sortBuf(buf []byte) Result {
	left, right, _ := Columns(buf)
	return SortedDistance(left, right)
}

func TestScenarios(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  uint64
	}{
		{"three lines", "10000 10005\n10002 10002\n10004 10000\n", 1},
		{"empty", "", 0},
		{"blank lines", "\n\n\r\n", 0},
		{"single line", "99999 10000", 89999},
		{"duplicates", "20000 20001\n20000 20001\n20000 20003\n", 5},
		{"malformed skipped", "10000 10005\n12 345\n10002 10002\n1234a 56789\n10004 10000\n", 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := sweepBuf([]byte(tt.input))
			assert.Equal(t, Result{Distance: tt.want}, got)
			assert.Equal(t, got, sortBuf([]byte(tt.input)))
		})
	}
}

func TestAddLinesCounts(t *testing.T) {
	h := NewHistogram()
	valid, skipped := h.AddLines([]byte("10000 10005\n12 345\n\n1234a 56789\n10004 10000"))
	assert.Equal(t, 2, valid)
	assert.Equal(t, 2, skipped)
	assert.Equal(t, uint64(2), tableSum(&h.Left))
	assert.Equal(t, uint64(2), tableSum(&h.Right))
	assert.Equal(t, uint64(1), h.Left[0])
	assert.Equal(t, uint64(1), h.Right[5])
}

func TestSweepMatchesSort(t *testing.T) {
	r := rand.New(rand.NewPCG(1, 2))
	for _, n := range []int{1, 2, 10, 1000, 20_000} {
		buf := join(genLines(r, n))
		assert.Equal(t, sortBuf(buf), sweepBuf(buf), "n=%d", n)
	}
}

func TestSweepNarrowDomain(t *testing.T) {
	// Many duplicates exercise the multiplicity batching.
	r := rand.New(rand.NewPCG(3, 4))
	lines := make([]string, 5000)
	for i := range lines {
		lines[i] = fmt.Sprintf("%d %d", 50000+r.IntN(8), 50000+r.IntN(8))
	}
	buf := join(lines)
	assert.Equal(t, sortBuf(buf), sweepBuf(buf))
}

func TestIdempotent(t *testing.T) {
	buf := join(genLines(rand.New(rand.NewPCG(5, 6)), 3000))
	orig := bytes.Clone(buf)
	first := sweepBuf(buf)
	assert.Equal(t, first, sweepBuf(buf))
	assert.Equal(t, orig, buf)
}

func TestOrderInvariant(t *testing.T) {
	r := rand.New(rand.NewPCG(7, 8))
	lines := genLines(r, 3000)
	want := sweepBuf(join(lines))
	for range 5 {
		r.Shuffle(len(lines), func(i, j int) { lines[i], lines[j] = lines[j], lines[i] })
		assert.Equal(t, want, sweepBuf(join(lines)))
	}
}

func TestPartitionInvariant(t *testing.T) {
	r := rand.New(rand.NewPCG(9, 10))
	lines := genLines(r, 4000)
	want := sweepBuf(join(lines))
	for range 5 {
		var (
			total = NewHistogram()
			rest  = lines
		)
		for len(rest) > 0 {
			n := 1 + r.IntN(len(rest))
			part := NewHistogram()
			part.AddLines(join(rest[:n]))
			total.Merge(part)
			rest = rest[n:]
		}
		assert.Equal(t, want, Sweep(total))
	}
}

func TestMalformedLinesDoNotAffectResult(t *testing.T) {
	r := rand.New(rand.NewPCG(11, 12))
	lines := genLines(r, 500)
	want := sweepBuf(join(lines))
	noisy := make([]string, 0, 2*len(lines))
	for _, l := range lines {
		noisy = append(noisy, l)
		switch r.IntN(4) {
		case 0:
			noisy = append(noisy, "12 345")
		case 1:
			noisy = append(noisy, "1234a 56789")
		case 2:
			noisy = append(noisy, "")
		}
	}
	assert.Equal(t, want, sweepBuf(join(noisy)))
}

func TestSweepUnequalColumns(t *testing.T) {
	h := NewHistogram()
	h.Left[0], h.Left[10] = 2, 1
	h.Right[3] = 1
	got := Sweep(h)
	assert.Equal(t, Result{Distance: 3, Unmatched: 2}, got)

	h = NewHistogram()
	h.Left[4] = 1
	h.Right[1], h.Right[9] = 1, 3
	got = Sweep(h)
	assert.Equal(t, Result{Distance: 3, Unmatched: 3}, got)
}

func TestSweepConsumesHistogram(t *testing.T) {
	h := NewHistogram()
	valid, _ := h.AddLines([]byte("10000 10005\n10002 10002\n10004 10000\n"))
	require.Equal(t, 3, valid)
	Sweep(h)
	assert.Zero(t, tableSum(&h.Left))
	assert.Zero(t, tableSum(&h.Right))
}

func TestSweepWide(t *testing.T) {
	// Every value at the two ends of the domain: the largest possible distance
	// per record must not wrap.
	h := NewHistogram()
	const n = 1 << 40
	h.Left[Range-1] = n
	h.Right[0] = n
	assert.Equal(t, Result{Distance: n * (Range - 1)}, Sweep(h))
}

func BenchmarkSweep(b *testing.B) {
	buf := join(genLines(rand.New(rand.NewPCG(13, 14)), 100_000))
	full := NewHistogram()
	full.AddLines(buf)
	h := NewHistogram()
	b.ResetTimer()
	for range b.N {
		*h = *full
		Sweep(h)
	}
}

func BenchmarkAddLines(b *testing.B) {
	buf := join(genLines(rand.New(rand.NewPCG(15, 16)), 100_000))
	b.SetBytes(int64(len(buf)))
	for range b.N {
		NewHistogram().AddLines(buf)
	}
}
