//go:build linux

package serial

import (
	"errors"
	"testing"
	"time"

	"github.com/creack/pty"
	"github.com/stretchr/testify/require"
)

func openPair(t *testing.T, readTimeout time.Duration) (*Port, func() error) {
	t.Helper()
	master, slave, err := pty.Open()
	require.NoError(t, err)
	t.Cleanup(func() { master.Close(); slave.Close() })

	port, err := Open(Config{
		Device:      slave.Name(),
		BaudRate:    921600,
		ReadTimeout: readTimeout,
	})
	require.NoError(t, err)
	t.Cleanup(func() { port.Close() })
	return port, master.Close
}

func TestPort_BasicRead(t *testing.T) {
	master, slave, err := pty.Open()
	require.NoError(t, err)
	t.Cleanup(func() { master.Close(); slave.Close() })

	port, err := Open(Config{Device: slave.Name(), BaudRate: 115200, ReadTimeout: 50 * time.Millisecond})
	require.NoError(t, err)
	t.Cleanup(func() { port.Close() })

	_, err = master.Write([]byte("hello\n"))
	require.NoError(t, err)

	got := make([]byte, 0, 6)
	buf := make([]byte, 16)
	deadline := time.Now().Add(500 * time.Millisecond)
	for len(got) < 6 && time.Now().Before(deadline) {
		n, err := port.Read(buf)
		require.NoError(t, err)
		got = append(got, buf[:n]...)
	}
	require.Equal(t, "hello\n", string(got))
}

func TestPort_Write(t *testing.T) {
	master, slave, err := pty.Open()
	require.NoError(t, err)
	t.Cleanup(func() { master.Close(); slave.Close() })

	port, err := Open(Config{Device: slave.Name(), BaudRate: 921600})
	require.NoError(t, err)
	t.Cleanup(func() { port.Close() })

	payload := []byte{0x01, 0x00, 0x00, 0x00, '\n', 0x03}
	n, err := port.Write(payload)
	require.NoError(t, err)
	require.Equal(t, len(payload), n)

	// OPOST is off, so the line feed must not grow a carriage return.
	buf := make([]byte, len(payload))
	_, err = master.Read(buf)
	require.NoError(t, err)
	require.Equal(t, payload, buf)
}

func TestPort_ReadTimeoutIsNotAnError(t *testing.T) {
	port, _ := openPair(t, 10*time.Millisecond)

	start := time.Now()
	n, err := port.Read(make([]byte, 8))
	require.NoError(t, err)
	require.Zero(t, n)
	require.Less(t, time.Since(start), 500*time.Millisecond)
}

func TestPort_Killability(t *testing.T) {
	port, _ := openPair(t, 0)

	done := make(chan error, 1)
	go func() {
		_, err := port.Read(make([]byte, 8))
		done <- err
	}()

	// Give the goroutine a chance to block in poll
	time.Sleep(50 * time.Millisecond)
	require.NoError(t, port.Close())

	select {
	case err := <-done:
		require.ErrorIs(t, err, ErrClosed)
	case <-time.After(500 * time.Millisecond):
		t.Fatal("timeout waiting for Read to return after Close")
	}

	// Should be a no-op due to closeOnce
	require.NoError(t, port.Close())

	_, err := port.Write([]byte("x"))
	require.ErrorIs(t, err, ErrClosed)
}

func TestPort_DisconnectPropagation(t *testing.T) {
	port, closeMaster := openPair(t, 20*time.Millisecond)

	// Simulate device removal by closing the master side
	require.NoError(t, closeMaster())

	deadline := time.Now().Add(500 * time.Millisecond)
	var err error
	for err == nil && time.Now().Before(deadline) {
		_, err = port.Read(make([]byte, 8))
	}
	require.Error(t, err)
	require.True(t, errors.Is(err, ErrDisconnected), "got %v", err)
}

func TestOpen_UnsupportedBaud(t *testing.T) {
	_, err := Open(Config{Device: "/dev/null", BaudRate: 1234})
	require.Error(t, err)
}

func TestOpen_MissingDevice(t *testing.T) {
	_, err := Open(Config{Device: "/dev/does-not-exist-serial", BaudRate: 921600})
	require.Error(t, err)
}

func TestExists(t *testing.T) {
	master, slave, err := pty.Open()
	require.NoError(t, err)
	t.Cleanup(func() { master.Close(); slave.Close() })

	require.True(t, Exists(slave.Name()))
	require.False(t, Exists("/dev/does-not-exist-serial"))
}
