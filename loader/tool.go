package loader

import (
	"context"
	"time"

	serial "github.com/luhtfiimanal/go-serial-loader"
)

// Tool is one mode of operation the supervisor can drive. The supervisor
// owns the link: it opens it, hands it over through SetLink, and closes it
// after a failure before running the tool again from the start.
type Tool interface {
	// Device returns the serial device identifier, e.g. /dev/ttyUSB0.
	Device() string

	// Name returns the short name used to tag status output.
	Name() string

	// Link returns the open link, or nil.
	Link() Link
	SetLink(Link)

	// Exec runs the mode over the open link.
	Exec(ctx context.Context) error
}

// reconnectHinter is implemented by tools that want their own reconnect
// prompt.
type reconnectHinter interface {
	ReconnectHint() string
}

const defaultReconnectHint = "Connection Error: Reinsert the USB serial again"

func reconnectHint(t Tool) string {
	if h, ok := t.(reconnectHinter); ok {
		return h.ReconnectHint()
	}
	return defaultReconnectHint
}

// Transport finds and opens serial devices.
type Transport interface {
	Exists(device string) bool
	Open(device string) (Link, error)
}

// SerialTransport opens real serial ports.
type SerialTransport struct {
	BaudRate    int
	ReadTimeout time.Duration
}

func (t SerialTransport) Exists(device string) bool {
	return serial.Exists(device)
}

func (t SerialTransport) Open(device string) (Link, error) {
	port, err := serial.Open(serial.Config{
		Device:      device,
		BaudRate:    t.BaudRate,
		ReadTimeout: t.ReadTimeout,
	})
	if err != nil {
		return nil, err
	}
	return port, nil
}
