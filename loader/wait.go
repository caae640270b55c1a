package loader

import (
	"fmt"
	"sync/atomic"
	"time"
)

const (
	windowLive int32 = iota
	windowExpired
	windowFinished
)

// Window is the cooperative "time's up" flag handed to an operation run
// under Bounded. Operations poll Live between steps; nothing preempts a
// call that is already blocked.
type Window struct {
	state atomic.Int32
}

// Live reports whether the window is still open.
func (w *Window) Live() bool {
	return w.state.Load() == windowLive
}

// Bounded runs op and starts a monitor that closes the window once d has
// elapsed. Bounded returns as soon as op returns: the monitor is told to
// stand down rather than waited out.
//
// An error from op is returned as is. Otherwise Bounded returns nil if op
// finished while the window was live and ErrTimeout if it had expired.
// Because cancellation is cooperative, the real worst case is d plus one
// blocking call inside op.
func Bounded(d time.Duration, op func(w *Window) error) error {
	w := &Window{}
	stop := make(chan struct{})
	go func() {
		timer := time.NewTimer(d)
		defer timer.Stop()
		select {
		case <-timer.C:
			w.state.CompareAndSwap(windowLive, windowExpired)
		case <-stop:
		}
	}()

	err := op(w)
	finished := w.state.CompareAndSwap(windowLive, windowFinished)
	close(stop)

	if err != nil {
		return err
	}
	if !finished {
		return fmt.Errorf("%w after %s", ErrTimeout, d)
	}
	return nil
}
