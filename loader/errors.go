package loader

import (
	"errors"
	"fmt"
)

var (
	// ErrConnection reports an unplugged device or a transport-level failure.
	ErrConnection = errors.New("connection error")

	// ErrProtocol reports a handshake or ack mismatch.
	ErrProtocol = errors.New("protocol error")

	// ErrTimeout reports a bounded wait that ran out.
	ErrTimeout = errors.New("timed out")

	// ErrNoLink is returned when an operation needs the serial link but none
	// is open.
	ErrNoLink = errors.New("serial link not open")
)

// OpenError reports a device that could not be opened.
type OpenError struct {
	Device string
	Err    error
}

func (e *OpenError) Error() string {
	return fmt.Sprintf("open %s: %v", e.Device, e.Err)
}

func (e *OpenError) Unwrap() error {
	return e.Err
}

// Kind classifies an error for the supervisor.
type Kind int

const (
	KindNone Kind = iota
	KindConnection
	KindProtocol
	KindTimeout
	KindOpen
	KindNoLink
	KindIO
)

func (k Kind) String() string {
	switch k {
	case KindNone:
		return "none"
	case KindConnection:
		return "connection"
	case KindProtocol:
		return "protocol"
	case KindTimeout:
		return "timeout"
	case KindOpen:
		return "open"
	case KindNoLink:
		return "no link"
	default:
		return "io"
	}
}

// Classify returns the kind of err. Errors that match none of the loader's
// sentinels are KindIO.
func Classify(err error) Kind {
	var openErr *OpenError
	switch {
	case err == nil:
		return KindNone
	case errors.As(err, &openErr):
		return KindOpen
	case errors.Is(err, ErrConnection):
		return KindConnection
	case errors.Is(err, ErrProtocol):
		return KindProtocol
	case errors.Is(err, ErrTimeout):
		return KindTimeout
	case errors.Is(err, ErrNoLink):
		return KindNoLink
	default:
		return KindIO
	}
}

// Retryable reports whether the supervisor should reconnect after err.
func Retryable(err error) bool {
	switch Classify(err) {
	case KindConnection, KindProtocol, KindTimeout:
		return true
	default:
		return false
	}
}
