//go:build linux

// Package fakedevice simulates a target board behind a pseudo-terminal. The
// pty slave stands in for the USB serial adapter; the device drives the
// master side.
package fakedevice

import (
	"fmt"
	"io"
	"os"

	"github.com/creack/pty"
	"github.com/luhtfiimanal/go-serial-loader/protocol"
	"golang.org/x/term"
)

// Device is the target side of a pty pair.
type Device struct {
	master *os.File
	slave  *os.File
}

// New allocates a pty pair. The slave is put into raw mode right away so
// marker bytes written before the loader opens the port are not eaten by
// the line discipline.
func New() (*Device, error) {
	master, slave, err := pty.Open()
	if err != nil {
		return nil, fmt.Errorf("open pty: %w", err)
	}
	if _, err := term.MakeRaw(int(slave.Fd())); err != nil {
		master.Close()
		slave.Close()
		return nil, fmt.Errorf("raw slave: %w", err)
	}
	return &Device{master: master, slave: slave}, nil
}

// Path returns the serial device path the loader should open.
func (d *Device) Path() string {
	return d.slave.Name()
}

// Boot writes boot output followed by the image request.
func (d *Device) Boot(output []byte) error {
	msg := append(append([]byte(nil), output...), protocol.Marker, protocol.Marker, protocol.Marker)
	_, err := d.master.Write(msg)
	return err
}

// ReceiveImage reads the size frame, acks it, and reads the image.
func (d *Device) ReceiveImage() ([]byte, error) {
	frame := make([]byte, protocol.SizeFrameLen)
	if _, err := io.ReadFull(d.master, frame); err != nil {
		return nil, fmt.Errorf("read size frame: %w", err)
	}
	size, err := protocol.DecodeSize(frame)
	if err != nil {
		return nil, err
	}
	if _, err := d.master.Write(protocol.Ack[:]); err != nil {
		return nil, fmt.Errorf("write ack: %w", err)
	}
	image := make([]byte, size)
	if _, err := io.ReadFull(d.master, image); err != nil {
		return nil, fmt.Errorf("read image: %w", err)
	}
	return image, nil
}

// Read reads what the loader wrote to the serial port.
func (d *Device) Read(p []byte) (int, error) {
	return d.master.Read(p)
}

// Write sends bytes to the loader as console output.
func (d *Device) Write(p []byte) (int, error) {
	return d.master.Write(p)
}

// Unplug closes the master side; the loader's port sees a disconnect.
func (d *Device) Unplug() error {
	return d.master.Close()
}

// Close releases both ends of the pty.
func (d *Device) Close() error {
	d.master.Close()
	return d.slave.Close()
}
