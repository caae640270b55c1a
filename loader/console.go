package loader

import (
	"io"
	"os"
	"sync"

	"golang.org/x/term"
)

// Console is the local terminal the bridge is wired to. Raw mode is only
// touched when In is a terminal.
type Console struct {
	In  io.Reader
	Out io.Writer

	fd       int
	terminal bool

	mu    sync.Mutex
	state *term.State
}

type fder interface {
	Fd() uintptr
}

// NewConsole wraps in and out. If in is a terminal file descriptor the
// console can be switched into raw mode.
func NewConsole(in io.Reader, out io.Writer) *Console {
	c := &Console{In: in, Out: out, fd: -1}
	if f, ok := in.(fder); ok {
		c.fd = int(f.Fd())
		c.terminal = term.IsTerminal(c.fd)
	}
	return c
}

var stdio = sync.OnceValue(func() *Console {
	return NewConsole(os.Stdin, os.Stdout)
})

// Stdio returns the process console. Every caller gets the same value so
// that whoever restores the terminal sees the state whoever entered raw
// mode saved.
func Stdio() *Console {
	return stdio()
}

// EnterRaw puts the console into raw mode and returns a func that undoes
// it. Entering twice is a no-op; the first saved state wins.
func (c *Console) EnterRaw() (func(), error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.terminal || c.state != nil {
		return func() { c.Restore() }, nil
	}
	state, err := term.MakeRaw(c.fd)
	if err != nil {
		return func() {}, err
	}
	c.state = state
	return func() { c.Restore() }, nil
}

// Restore leaves raw mode if it is active. Safe to call at any time.
func (c *Console) Restore() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.state == nil {
		return nil
	}
	err := term.Restore(c.fd, c.state)
	c.state = nil
	return err
}

// Raw reports whether the console is currently in raw mode.
func (c *Console) Raw() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state != nil
}
