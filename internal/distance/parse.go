package distance

const (
	Min   = 10_000
	Max   = 99_999
	Range = Max - Min + 1

	// Width is the length of a "DDDDD DDDDD" record.
	Width = 11
	Sep   = ' '
)

// ParseLine decodes one record. Bytes after Width (e.g. a trailing '\r') are
// ignored. ok is false for short lines, a missing separator, non-digit bytes
// and values below Min.
func ParseLine(line []byte) (a, b int32, ok bool) {
	if len(line) < Width || line[5] != Sep {
		return 0, 0, false
	}
	line = line[:Width:Width]
	if a, ok = parseField(line[0:5]); !ok {
		return 0, 0, false
	}
	if b, ok = parseField(line[6:11]); !ok {
		return 0, 0, false
	}
	return a, b, true
}

func parseField(f []byte) (int32, bool) {
	_ = f[4]
	// Bytes below '0' wrap around, so a single > 9 check rejects both ends.
	d0, d1, d2, d3, d4 := f[0]-'0', f[1]-'0', f[2]-'0', f[3]-'0', f[4]-'0'
	if d0 > 9 || d1 > 9 || d2 > 9 || d3 > 9 || d4 > 9 {
		return 0, false
	}
	v := int32(d0)*10000 + int32(d1)*1000 + int32(d2)*100 + int32(d3)*10 + int32(d4)
	if v < Min {
		return 0, false
	}
	return v, true
}
