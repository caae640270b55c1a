package loader

import "time"

// Progress describes how far an image push has got.
type Progress struct {
	// Sent is the number of image bytes written to the link so far.
	Sent int64

	// Total is the image length captured when the session was opened.
	Total int64

	Elapsed time.Duration
}

// Percentage returns Sent as a share of Total in the range 0-100.
func (p Progress) Percentage() float64 {
	if p.Total <= 0 {
		return 100
	}
	return float64(p.Sent) / float64(p.Total) * 100
}

// Done reports whether every byte has been sent.
func (p Progress) Done() bool {
	return p.Sent == p.Total
}

// ProgressFunc is called after every chunk. Implementations should return
// quickly; the push waits for them.
type ProgressFunc func(Progress)

// progressCounter is the monotonically increasing count of bytes sent.
type progressCounter struct {
	sent  int64
	total int64
	start time.Time
	fn    ProgressFunc
}

func newProgressCounter(total int64, fn ProgressFunc) *progressCounter {
	return &progressCounter{total: total, start: time.Now(), fn: fn}
}

func (c *progressCounter) add(n int) int64 {
	c.sent += int64(n)
	if c.fn != nil {
		c.fn(Progress{Sent: c.sent, Total: c.total, Elapsed: time.Since(c.start)})
	}
	return c.sent
}
