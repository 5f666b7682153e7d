package parallel

// MinBandRows is the smallest band handed to a worker. Smaller images run
// on the calling goroutine.
const MinBandRows = 16

// Band is a half-open range of image rows [Y0, Y1).
type Band struct {
	Y0, Y1 int
}

// Bands splits height rows into at most n contiguous bands of at least
// minRows rows each (a single band when height < minRows). The bands cover
// [0, height) exactly, in order.
func Bands(height, n, minRows int) []Band {
	if height <= 0 {
		return nil
	}
	if minRows < 1 {
		minRows = 1
	}
	if n < 1 {
		n = 1
	}
	if maxBands := max(height/minRows, 1); n > maxBands {
		n = maxBands
	}

	bands := make([]Band, 0, n)
	base, extra := height/n, height%n
	y := 0
	for i := range n {
		rows := base
		if i < extra {
			rows++
		}
		bands = append(bands, Band{Y0: y, Y1: y + rows})
		y += rows
	}
	return bands
}

// ForRows calls fn once per band covering [0, height) and returns when all
// calls have finished. Bands run on p when it has more than one worker and
// the image is tall enough; otherwise fn is called once with the full range.
func ForRows(p *WorkerPool, height int, fn func(y0, y1 int)) {
	if height <= 0 {
		return
	}

	workers := p.Workers()
	if workers <= 1 || height < 2*MinBandRows {
		fn(0, height)
		return
	}

	// A few bands per worker smooths out uneven scheduling.
	bands := Bands(height, workers*2, MinBandRows)
	work := make([]func(), len(bands))
	for i, b := range bands {
		work[i] = func() { fn(b.Y0, b.Y1) }
	}
	p.ExecuteAll(work)
}
