package protocol

import "io"

// Handshake detects the target's request for an image in a stream of boot
// output. It counts consecutive markers; any other byte resets the count
// and is passed to the echo writer unchanged.
//
// The count is kept across Feed calls, so a run split over two reads
// still completes the handshake.
type Handshake struct {
	run int
}

// Feed consumes p and reports whether the marker run completed. Bytes that
// follow the completing marker are not examined or echoed.
func (h *Handshake) Feed(p []byte, echo io.Writer) (bool, error) {
	start := 0
	flush := func(end int) error {
		if echo == nil || end <= start {
			return nil
		}
		_, err := echo.Write(p[start:end])
		return err
	}

	for i, c := range p {
		if c != Marker {
			h.run = 0
			continue
		}
		if err := flush(i); err != nil {
			return false, err
		}
		start = i + 1
		h.run++
		if h.run == MarkerRun {
			return true, nil
		}
	}
	return false, flush(len(p))
}

// Run returns the current count of consecutive markers.
func (h *Handshake) Run() int {
	return h.run
}

// Reset clears the marker count.
func (h *Handshake) Reset() {
	h.run = 0
}
