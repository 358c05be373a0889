package parallel

// minBandRows keeps bands large enough that dispatch stays cheap relative
// to the pixel work.
const minBandRows = 16

// Bands splits the half-open row range [y0, y1) into at most n contiguous
// bands of near-equal height. Bands are never shorter than minBandRows
// except for the last one.
func Bands(y0, y1, n int) [][2]int {
	rows := y1 - y0
	if rows <= 0 {
		return nil
	}
	n = max(1, min(n, (rows+minBandRows-1)/minBandRows))
	out := make([][2]int, 0, n)
	step := (rows + n - 1) / n
	for y := y0; y < y1; y += step {
		out = append(out, [2]int{y, min(y+step, y1)})
	}
	return out
}

// Rows runs fn over [y0, y1) split into bands on the default pool. fn must
// only touch rows inside its band.
func Rows(y0, y1 int, fn func(y0, y1 int)) {
	Default().Rows(y0, y1, fn)
}

// Rows runs fn over [y0, y1) split into one band per worker.
func (p *Pool) Rows(y0, y1 int, fn func(y0, y1 int)) {
	bands := Bands(y0, y1, p.workers)
	work := make([]func(), len(bands))
	for i, b := range bands {
		work[i] = func() { fn(b[0], b[1]) }
	}
	p.Run(work)
}
