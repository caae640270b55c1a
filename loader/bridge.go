package loader

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"io"
	"sync/atomic"
	"time"
	"unicode/utf8"
)

// InterruptByte is the Ctrl-C byte; typing it on the console ends the
// bridge without error.
const InterruptByte = 0x03

// bridgeJoinGrace bounds how long Bridge waits for the device-to-console
// loop to notice the stop flag after the console loop has returned.
const bridgeJoinGrace = 250 * time.Millisecond

const bridgeBufSize = 256

// bridgeState is the tri-state flag shared by the two bridge loops. It
// leaves bridgeRunning at most once per run.
type bridgeState = int32

const (
	bridgeRunning bridgeState = iota
	bridgeConnectionFailed
	bridgeUserInterrupted
)

// Bridge pumps bytes between console and link until the user types Ctrl-C
// or the link fails. The console is in raw mode for the duration and is
// restored on every exit path.
//
// The two directions stop cooperatively: a loop blocked in a read is not
// interrupted, it just does not go round again once the flag has moved.
// In particular the console loop only notices a dead device after the next
// keystroke. The device loop is joined for at most bridgeJoinGrace; if it is
// still blocked after that it may write one more chunk to console.Out
// before it sees the flag. A panic in the device loop ends the bridge with
// an error instead of taking the process down with the console still raw.
func Bridge(link Link, console *Console) error {
	if link == nil {
		return ErrNoLink
	}
	restore, err := console.EnterRaw()
	if err != nil {
		return fmt.Errorf("enter raw mode: %w", err)
	}
	defer restore()

	var state atomic.Int32
	readErr := make(chan error, 1)
	done := make(chan struct{})
	go func() {
		defer close(done)
		defer func() {
			// the supervisor's deferred Restore does not cover this goroutine
			if r := recover(); r != nil && state.CompareAndSwap(bridgeRunning, bridgeConnectionFailed) {
				readErr <- fmt.Errorf("device loop panic: %v", r)
			}
		}()
		deviceToConsole(link, console.Out, &state, readErr)
	}()

	err = consoleToDevice(link, console.In, &state)

	select {
	case <-done:
	case <-time.After(bridgeJoinGrace):
	}

	if err != nil {
		return err
	}
	if state.Load() == bridgeConnectionFailed {
		// the flag is only set right before the cause is sent
		return <-readErr
	}
	return nil
}

func deviceToConsole(link Link, out io.Writer, state *atomic.Int32, readErr chan<- error) {
	w := bufio.NewWriter(out)
	var tr crlf
	buf := make([]byte, bridgeBufSize)
	for state.Load() == bridgeRunning {
		n, err := ReadLink(link, buf)
		if err != nil {
			if !errors.Is(err, ErrConnection) {
				err = fmt.Errorf("%w: %v", ErrConnection, err)
			}
			if state.CompareAndSwap(bridgeRunning, bridgeConnectionFailed) {
				readErr <- err
				fmt.Fprintf(w, "\r\nread_serial error %v\r\n", err)
				w.Flush()
			}
			return
		}
		if n == 0 {
			continue
		}
		w.Write(tr.translate(buf[:n]))
		w.Flush()
	}
}

func consoleToDevice(link Link, in io.Reader, state *atomic.Int32) error {
	buf := make([]byte, bridgeBufSize)
	for state.Load() == bridgeRunning {
		n, err := in.Read(buf)
		if n > 0 {
			if bytes.IndexByte(buf[:n], InterruptByte) >= 0 {
				state.CompareAndSwap(bridgeRunning, bridgeUserInterrupted)
			}
			if _, werr := link.Write(buf[:n]); werr != nil {
				state.CompareAndSwap(bridgeRunning, bridgeConnectionFailed)
				return fmt.Errorf("%w: serial write: %v", ErrConnection, werr)
			}
		}
		if errors.Is(err, io.EOF) {
			// console input closed; treat like the user leaving
			state.CompareAndSwap(bridgeRunning, bridgeUserInterrupted)
			return nil
		}
		if err != nil {
			// stop the reader; the console failure is what gets reported
			state.CompareAndSwap(bridgeRunning, bridgeUserInterrupted)
			return fmt.Errorf("console read: %w", err)
		}
	}
	return nil
}

// crlf turns bare line feeds into CR LF and replaces invalid UTF-8 with
// U+FFFD. A CR at the end of one chunk still pairs with a LF at the start
// of the next.
type crlf struct {
	prevCR bool
}

func (c *crlf) translate(p []byte) []byte {
	out := make([]byte, 0, len(p)+8)
	for len(p) > 0 {
		r, size := utf8.DecodeRune(p)
		p = p[size:]
		switch r {
		case '\n':
			if !c.prevCR {
				out = append(out, '\r')
			}
			out = append(out, '\n')
		default:
			out = utf8.AppendRune(out, r)
		}
		c.prevCR = r == '\r'
	}
	return out
}
