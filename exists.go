//go:build !windows

package serial

import "os"

// Exists reports whether the device node is present.
func Exists(device string) bool {
	_, err := os.Stat(device)
	return err == nil
}
