package protocol

import "fmt"

// AckError reports an ack frame that was not exactly "OK".
type AckError struct {
	Got []byte
}

func (e *AckError) Error() string {
	if len(e.Got) < AckLen {
		return fmt.Sprintf("short ack: got %d of %d bytes (% x)", len(e.Got), AckLen, e.Got)
	}
	return fmt.Sprintf("bad ack: got %q, expected %q", e.Got, Ack[:])
}

// FrameLengthError reports a frame of the wrong length.
type FrameLengthError struct {
	Frame string
	Got   int
	Want  int
}

func (e *FrameLengthError) Error() string {
	return fmt.Sprintf("%s frame: got %d bytes, expected %d", e.Frame, e.Got, e.Want)
}
