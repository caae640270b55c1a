package protocol

import (
	"bytes"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestHandshake_Feed(t *testing.T) {
	tests := []struct {
		name  string
		feeds []string
		done  bool
		echo  string
		run   int
	}{
		{"three markers", []string{"\x03\x03\x03"}, true, "", 3},
		{"boot noise first", []string{"U-Boot 1.0\r\n\x03\x03\x03"}, true, "U-Boot 1.0\r\n", 3},
		{"interrupted run", []string{"\x03\x03a\x03\x03"}, false, "a", 2},
		{"split across reads", []string{"x\x03", "\x03", "\x03tail"}, true, "x", 3},
		{"reset between reads", []string{"\x03\x03", "b", "\x03"}, false, "b", 1},
		{"trailing bytes ignored", []string{"\x03\x03\x03after"}, true, "", 3},
		{"no markers", []string{"hello"}, false, "hello", 0},
		{"empty read", []string{""}, false, "", 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var (
				h    Handshake
				echo bytes.Buffer
				done bool
			)
			for _, f := range tt.feeds {
				var err error
				done, err = h.Feed([]byte(f), &echo)
				require.NoError(t, err)
				if done {
					break
				}
			}
			require.Equal(t, tt.done, done)
			require.Equal(t, tt.echo, echo.String())
			require.Equal(t, tt.run, h.Run())
		})
	}
}

func TestHandshake_EchoPreservesOrder(t *testing.T) {
	var (
		h    Handshake
		echo bytes.Buffer
	)
	in := []byte{'a', 0x03, 'b', 0x03, 0x03, 'c', 0xFF, 0x00, 0x03, 0x03, 0x03}
	done, err := h.Feed(in, &echo)
	require.NoError(t, err)
	require.True(t, done)
	require.Equal(t, []byte{'a', 'b', 'c', 0xFF, 0x00}, echo.Bytes())
}

type failingWriter struct{}

func (failingWriter) Write([]byte) (int, error) { return 0, errors.New("console gone") }

func TestHandshake_EchoError(t *testing.T) {
	var h Handshake
	_, err := h.Feed([]byte("boot"), failingWriter{})
	require.EqualError(t, err, "console gone")
}

func TestHandshake_Reset(t *testing.T) {
	var h Handshake
	done, err := h.Feed([]byte{Marker, Marker}, nil)
	require.NoError(t, err)
	require.False(t, done)
	h.Reset()
	done, err = h.Feed([]byte{Marker}, nil)
	require.NoError(t, err)
	require.False(t, done)
	require.Equal(t, 1, h.Run())
}
