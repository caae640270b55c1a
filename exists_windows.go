package serial

import tarm "github.com/tarm/serial"

// Exists reports whether the COM port can currently be opened. Windows has
// no device node to stat, so presence is probed with a short-lived open.
func Exists(device string) bool {
	port, err := tarm.OpenPort(&tarm.Config{Name: device, Baud: 9600})
	if err != nil {
		return false
	}
	port.Close()
	return true
}
