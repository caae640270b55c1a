package loader

import (
	"fmt"
	"io"
	"os"
)

// Session is a read-only handle on the image being pushed. Size is
// captured once when the session is opened and is not re-checked while
// sending.
type Session struct {
	r    io.Reader
	c    io.Closer
	Size int64
}

// OpenSession opens the image at path.
func OpenSession(path string) (*Session, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open image: %w", err)
	}
	info, err := f.Stat()
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("stat image: %w", err)
	}
	if !info.Mode().IsRegular() {
		f.Close()
		return nil, fmt.Errorf("image %s is not a regular file", path)
	}
	return &Session{r: f, c: f, Size: info.Size()}, nil
}

// NewSession wraps an in-memory or streamed image of the given size.
func NewSession(r io.Reader, size int64) *Session {
	return &Session{r: r, Size: size}
}

func (s *Session) Read(p []byte) (int, error) {
	return s.r.Read(p)
}

// Close releases the underlying file, if any.
func (s *Session) Close() error {
	if s.c == nil {
		return nil
	}
	return s.c.Close()
}
