// Package serial provides a minimal serial port transport for pushing images
// to embedded targets and bridging their console.
//
// On Linux the port is driven with raw syscalls; other platforms fall back to
// github.com/tarm/serial.
//
// Features:
//   - Raw termios configuration, no line discipline processing
//   - Per-call read timeout: an idle Read returns (0, nil) instead of an error
//   - Device removal surfaces as ErrDisconnected
//   - Self-pipe mechanism so Close unblocks a pending Read
//   - Device presence check via Exists
//   - PTY-based tests for reliability
//
// Example usage:
//
//	cfg := serial.Config{
//	    Device:      "/dev/ttyUSB0",
//	    BaudRate:    921600,
//	    ReadTimeout: time.Millisecond,
//	}
//	port, err := serial.Open(cfg)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer port.Close()
//
//	buf := make([]byte, 256)
//	for {
//	    n, err := port.Read(buf)
//	    if errors.Is(err, serial.ErrDisconnected) {
//	        log.Println("device unplugged")
//	        return
//	    }
//	    if err != nil {
//	        log.Fatal(err)
//	    }
//	    os.Stdout.Write(buf[:n])
//	}
package serial
