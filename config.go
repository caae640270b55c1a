package serial

import (
	"errors"
	"time"
)

var (
	// ErrDisconnected reports that the device went away underneath an open port.
	ErrDisconnected = errors.New("serial device disconnected")

	// ErrClosed is returned by operations on a port after Close.
	ErrClosed = errors.New("serial port closed")
)

// Config holds configuration parameters for opening a serial port.
type Config struct {
	Device   string
	BaudRate int

	// ReadTimeout bounds a single Read call. Zero blocks until data arrives.
	ReadTimeout time.Duration
}
