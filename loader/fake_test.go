package loader

import (
	"bytes"
	"fmt"
	"sync"
	"time"

	serial "github.com/luhtfiimanal/go-serial-loader"
)

// fakeLink is a scripted Link. Each queued read is returned by one Read
// call (split if the buffer is short); an empty queue behaves like an
// elapsed per-call timeout.
type fakeLink struct {
	mu       sync.Mutex
	reads    [][]byte
	readErr  error
	writeErr error
	writes   [][]byte
	events   []string
	closed   bool

	// gate holds back queued reads until the given number of writes has
	// happened, so a device-side reply cannot arrive before its request.
	gates map[int]int
}

func newFakeLink(reads ...[]byte) *fakeLink {
	return &fakeLink{reads: reads, gates: map[int]int{}}
}

// after makes the read queued at index idx wait until n writes were seen.
func (f *fakeLink) after(idx, n int) *fakeLink {
	f.gates[idx] = n
	return f
}

func (f *fakeLink) Read(p []byte) (int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.closed {
		return 0, serial.ErrClosed
	}
	if len(f.reads) == 0 || f.gated() {
		err := f.readErr
		f.mu.Unlock()
		time.Sleep(time.Millisecond)
		f.mu.Lock()
		return 0, err
	}
	next := f.reads[0]
	n := copy(p, next)
	if n < len(next) {
		f.reads[0] = next[n:]
	} else {
		f.reads = f.reads[1:]
		f.shiftGates()
	}
	f.events = append(f.events, fmt.Sprintf("read %q", p[:n]))
	return n, nil
}

func (f *fakeLink) gated() bool {
	need, ok := f.gates[0]
	return ok && len(f.writes) < need
}

func (f *fakeLink) shiftGates() {
	shifted := map[int]int{}
	for idx, n := range f.gates {
		if idx > 0 {
			shifted[idx-1] = n
		}
	}
	f.gates = shifted
}

func (f *fakeLink) Write(p []byte) (int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.closed {
		return 0, serial.ErrClosed
	}
	if f.writeErr != nil {
		return 0, f.writeErr
	}
	f.writes = append(f.writes, append([]byte(nil), p...))
	f.events = append(f.events, fmt.Sprintf("write %d", len(p)))
	return len(p), nil
}

func (f *fakeLink) Close() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.closed = true
	return nil
}

func (f *fakeLink) setReadErr(err error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.readErr = err
}

func (f *fakeLink) written() [][]byte {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([][]byte(nil), f.writes...)
}

func (f *fakeLink) log() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.events...)
}

func (f *fakeLink) isClosed() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.closed
}

// syncBuffer is a bytes.Buffer safe for the bridge's concurrent writers.
type syncBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *syncBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *syncBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.String()
}

// slowReader returns its data after a delay and nothing on later calls.
type slowReader struct {
	delay time.Duration
	data  []byte
	sent  bool
}

func (r *slowReader) Read(p []byte) (int, error) {
	time.Sleep(r.delay)
	if r.sent {
		return 0, nil
	}
	r.sent = true
	return copy(p, r.data), nil
}
