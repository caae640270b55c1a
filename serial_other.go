//go:build !linux

package serial

import (
	"errors"
	"fmt"
	"io"
	"sync"

	tarm "github.com/tarm/serial"
)

// Port provides byte access to a serial port on platforms without the raw
// termios backend.
type Port struct {
	port      *tarm.Port
	done      chan struct{}
	closeOnce sync.Once
}

// Open opens a serial port using the provided Config and returns a Port.
func Open(cfg Config) (*Port, error) {
	port, err := tarm.OpenPort(&tarm.Config{
		Name:        cfg.Device,
		Baud:        cfg.BaudRate,
		Parity:      tarm.ParityNone,
		ReadTimeout: cfg.ReadTimeout,
	})
	if err != nil {
		return nil, fmt.Errorf("open failed: %w", err)
	}
	return &Port{
		port: port,
		done: make(chan struct{}),
	}, nil
}

// Read reads what is available within Config.ReadTimeout. An elapsed
// timeout is reported as (0, nil).
func (p *Port) Read(b []byte) (int, error) {
	if p.closed() {
		return 0, ErrClosed
	}
	n, err := p.port.Read(b)
	if p.closed() {
		return 0, ErrClosed
	}
	switch {
	case err == nil:
		return n, nil
	case errors.Is(err, io.EOF) && n == 0:
		// an elapsed VTIME surfaces as a zero-length EOF
		return 0, nil
	default:
		return n, fmt.Errorf("%w: %v", ErrDisconnected, err)
	}
}

// Write writes b to the serial port.
func (p *Port) Write(b []byte) (int, error) {
	if p.closed() {
		return 0, ErrClosed
	}
	n, err := p.port.Write(b)
	if err != nil {
		return n, fmt.Errorf("%w: %v", ErrDisconnected, err)
	}
	return n, nil
}

// Close closes the serial port. Safe to call multiple times.
func (p *Port) Close() error {
	var err error
	p.closeOnce.Do(func() {
		close(p.done)
		err = p.port.Close()
	})
	return err
}

func (p *Port) closed() bool {
	select {
	case <-p.done:
		return true
	default:
		return false
	}
}
