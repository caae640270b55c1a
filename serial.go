//go:build linux

package serial

import (
	"errors"
	"fmt"
	"io"
	"os"
	"sync"
	"syscall"

	"golang.org/x/sys/unix"
)

// Port provides raw, killable byte access to a Linux serial port.
// Read and Write may be called from different goroutines.
type Port struct {
	fd        int
	file      *os.File
	done      chan struct{}
	closeOnce sync.Once
	config    Config
	pipeR     int // self-pipe read fd
	pipeW     int // self-pipe write fd
}

// Open opens a serial port using the provided Config and returns a Port.
// The port is configured for raw, low-latency, non-buffered operation.
func Open(cfg Config) (*Port, error) {
	baud, ok := baudToUnix(cfg.BaudRate)
	if !ok {
		return nil, fmt.Errorf("unsupported baud rate %d", cfg.BaudRate)
	}

	fd, err := syscall.Open(cfg.Device, syscall.O_RDWR|syscall.O_NOCTTY|syscall.O_NONBLOCK, 0666)
	if err != nil {
		return nil, fmt.Errorf("open failed: %w", err)
	}

	termios, err := unix.IoctlGetTermios(fd, unix.TCGETS)
	if err != nil {
		syscall.Close(fd)
		return nil, fmt.Errorf("get termios: %w", err)
	}

	// Raw mode
	termios.Iflag &^= unix.IGNBRK | unix.BRKINT | unix.PARMRK | unix.ISTRIP | unix.INLCR | unix.IGNCR | unix.ICRNL | unix.IXON
	termios.Oflag &^= unix.OPOST
	termios.Lflag &^= unix.ECHO | unix.ECHONL | unix.ICANON | unix.ISIG | unix.IEXTEN
	termios.Cflag &^= unix.CSIZE | unix.PARENB
	termios.Cflag |= unix.CS8 | unix.CREAD | unix.CLOCAL

	termios.Cflag &^= unix.CBAUD
	termios.Cflag |= baud

	// VMIN=1, VTIME=0: the per-call timeout is enforced by poll, not the line discipline
	termios.Cc[unix.VMIN] = 1
	termios.Cc[unix.VTIME] = 0

	if err := unix.IoctlSetTermios(fd, unix.TCSETS, termios); err != nil {
		syscall.Close(fd)
		return nil, fmt.Errorf("set termios: %w", err)
	}

	// Turn back into blocking mode now that config is done
	if err := syscall.SetNonblock(fd, false); err != nil {
		syscall.Close(fd)
		return nil, fmt.Errorf("set blocking: %w", err)
	}

	// Create self-pipe for killability
	pipeFds := make([]int, 2)
	if err := unix.Pipe(pipeFds); err != nil {
		syscall.Close(fd)
		return nil, fmt.Errorf("pipe: %w", err)
	}

	return &Port{
		fd:     fd,
		file:   os.NewFile(uintptr(fd), cfg.Device),
		done:   make(chan struct{}),
		config: cfg,
		pipeR:  pipeFds[0],
		pipeW:  pipeFds[1],
	}, nil
}

// Read waits up to Config.ReadTimeout for data and reads what is available.
// An elapsed timeout is reported as (0, nil). A removed device yields
// ErrDisconnected, and a Read interrupted by Close yields ErrClosed.
func (p *Port) Read(b []byte) (int, error) {
	if p.closed() {
		return 0, ErrClosed
	}

	pfd := []unix.PollFd{
		{Fd: int32(p.fd), Events: unix.POLLIN},
		{Fd: int32(p.pipeR), Events: unix.POLLIN},
	}
	ready, err := unix.Poll(pfd, p.pollTimeout())
	if err != nil {
		if errors.Is(err, unix.EINTR) {
			return 0, nil
		}
		return 0, fmt.Errorf("poll: %w", err)
	}

	// Check killability
	if p.closed() || pfd[1].Revents&unix.POLLIN != 0 {
		return 0, ErrClosed
	}
	if ready == 0 {
		return 0, nil
	}

	revents := pfd[0].Revents
	if revents&(unix.POLLERR|unix.POLLNVAL) != 0 {
		return 0, fmt.Errorf("%w: poll revents 0x%x", ErrDisconnected, revents)
	}
	if revents&(unix.POLLIN|unix.POLLHUP) == 0 {
		return 0, nil
	}

	n, err := p.file.Read(b)
	if err != nil {
		return n, p.classify(err)
	}
	return n, nil
}

// Write writes b to the serial port.
func (p *Port) Write(b []byte) (int, error) {
	if p.closed() {
		return 0, ErrClosed
	}
	n, err := p.file.Write(b)
	if err != nil {
		return n, p.classify(err)
	}
	return n, nil
}

// Close closes the serial port and unblocks any pending Read.
// Safe to call multiple times; subsequent calls are no-ops.
func (p *Port) Close() error {
	var err error
	p.closeOnce.Do(func() {
		close(p.done)
		// Wake up poll using self-pipe
		if p.pipeW > 0 {
			unix.Write(p.pipeW, []byte{1})
		}
		if p.file != nil {
			err = p.file.Close()
		}
		if p.pipeR > 0 {
			unix.Close(p.pipeR)
		}
		if p.pipeW > 0 {
			unix.Close(p.pipeW)
		}
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

func (p *Port) pollTimeout() int {
	if p.config.ReadTimeout <= 0 {
		return -1
	}
	ms := int(p.config.ReadTimeout.Milliseconds())
	if ms == 0 {
		ms = 1
	}
	return ms
}

// classify maps errno values seen when a USB serial adapter is unplugged
// (or a pty master goes away) onto ErrDisconnected.
func (p *Port) classify(err error) error {
	if p.closed() {
		return ErrClosed
	}
	switch {
	case errors.Is(err, io.EOF),
		errors.Is(err, unix.EIO),
		errors.Is(err, unix.ENXIO),
		errors.Is(err, unix.ENODEV),
		errors.Is(err, unix.EINVAL),
		errors.Is(err, unix.EBADF):
		return fmt.Errorf("%w: %v", ErrDisconnected, err)
	}
	return err
}

func baudToUnix(baud int) (uint32, bool) {
	switch baud {
	case 9600:
		return unix.B9600, true
	case 19200:
		return unix.B19200, true
	case 38400:
		return unix.B38400, true
	case 57600:
		return unix.B57600, true
	case 115200:
		return unix.B115200, true
	case 230400:
		return unix.B230400, true
	case 460800:
		return unix.B460800, true
	case 921600:
		return unix.B921600, true
	default:
		return 0, false
	}
}
