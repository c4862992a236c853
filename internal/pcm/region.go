package pcm

// Region selects the part of a sample the cut plays: Len frames starting
// at Offset. The offset wraps around the end of the sample, so a region may
// span the seam.
type Region struct {
	Offset int
	Len    int
}

// FullRegion covers a whole sample of total frames.
func FullRegion(total int) Region {
	return Region{Offset: 0, Len: total}
}

// Fit clamps r to a sample of total frames.
func (r Region) Fit(total int) Region {
	if total <= 0 {
		return Region{}
	}
	r.Offset = mod(r.Offset, total)
	r.Len = min(max(r.Len, min(MinRegionLen, total)), total)
	return r
}

// Shift moves the offset by delta frames, wrapping around total.
func (r Region) Shift(delta, total int) Region {
	if total <= 0 {
		return Region{}
	}
	r.Offset = mod(r.Offset+delta, total)
	return r
}

// Resize sets the length to n frames, clamped to
// [min(MinRegionLen, total), total].
func (r Region) Resize(n, total int) Region {
	r.Len = n
	return r.Fit(total)
}

// At returns region frame i of buf. Frames outside [0, Len) are silent.
func (r Region) At(buf *Buffer, i int) (left, right float32) {
	total := buf.Len()
	if i < 0 || i >= r.Len || total == 0 {
		return 0, 0
	}
	return buf.Frame(mod(r.Offset+i, total))
}

// Source copies the region out of buf into a new buffer of Len frames,
// unwrapping the seam.
func (r Region) Source(buf *Buffer) *Buffer {
	r = r.Fit(buf.Len())
	out := &Buffer{
		Left:       make([]float32, r.Len),
		Right:      make([]float32, r.Len),
		SampleRate: buf.SampleRate,
	}
	if r.Len == 0 {
		return out
	}
	first := min(r.Len, buf.Len()-r.Offset)
	copy(out.Left, buf.Left[r.Offset:r.Offset+first])
	copy(out.Right, buf.Right[r.Offset:r.Offset+first])
	copy(out.Left[first:], buf.Left[:r.Len-first])
	copy(out.Right[first:], buf.Right[:r.Len-first])
	return out
}

func mod(a, n int) int {
	a %= n
	if a < 0 {
		a += n
	}
	return a
}
