package distance

import "bytes"

// Table counts occurrences of each value in [Min, Max], indexed by value-Min.
type Table [Range]uint64

// Histogram holds one Table per column. It is large (two Range-sized
// arrays), so always pass it by pointer.
type Histogram struct {
	Left, Right Table
}

func NewHistogram() *Histogram {
	return new(Histogram)
}

// Add counts one record. a and b must already be in [Min, Max]; ParseLine
// guarantees that.
func (h *Histogram) Add(a, b int32) {
	h.Left[a-Min]++
	h.Right[b-Min]++
}

// AddLine parses line and counts it, reporting whether it was a valid record.
func (h *Histogram) AddLine(line []byte) bool {
	a, b, ok := ParseLine(line)
	if !ok {
		return false
	}
	h.Add(a, b)
	return true
}

// AddLines counts every newline-separated record in buf. Blank lines are
// ignored; any other line that fails to parse is dropped and counted in
// skipped.
func (h *Histogram) AddLines(buf []byte) (valid, skipped int) {
	for len(buf) > 0 {
		line := buf
		if i := bytes.IndexByte(buf, '\n'); i >= 0 {
			line, buf = buf[:i], buf[i+1:]
		} else {
			buf = nil
		}
		switch {
		case h.AddLine(line):
			valid++
		case len(bytes.TrimSpace(line)) > 0:
			skipped++
		}
	}
	return valid, skipped
}

// Merge adds other into h elementwise. other is left untouched.
func (h *Histogram) Merge(other *Histogram) {
	for i := range h.Left {
		h.Left[i] += other.Left[i]
	}
	for i := range h.Right {
		h.Right[i] += other.Right[i]
	}
}
