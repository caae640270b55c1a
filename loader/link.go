package loader

import (
	"errors"
	"fmt"
	"io"
	"os"

	serial "github.com/luhtfiimanal/go-serial-loader"
)

// Link is an open serial link. Read must return (0, nil) when its per-call
// timeout elapses without data; see serial.Port.
type Link interface {
	io.ReadWriteCloser
}

// ReadLink reads from l, separating idle reads from failures. An elapsed
// per-call timeout is (0, nil); a removed or closed device is wrapped in
// ErrConnection; anything else passes through unchanged.
func ReadLink(l Link, p []byte) (int, error) {
	n, err := l.Read(p)
	switch {
	case err == nil:
		return n, nil
	case errors.Is(err, os.ErrDeadlineExceeded):
		return n, nil
	case errors.Is(err, serial.ErrDisconnected), errors.Is(err, serial.ErrClosed):
		return n, fmt.Errorf("%w: %v", ErrConnection, err)
	default:
		return n, err
	}
}

// ReadFull reads into p until it is full, a read fails, or w closes. It
// returns the number of bytes read; a short count with a nil error means
// the window ran out.
func ReadFull(w *Window, l Link, p []byte) (int, error) {
	read := 0
	for read < len(p) && w.Live() {
		n, err := ReadLink(l, p[read:])
		read += n
		if err != nil {
			return read, err
		}
	}
	return read, nil
}
