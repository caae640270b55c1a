// Package loader pushes a binary image to a freshly powered target over a
// serial link and then turns the link into an interactive console.
//
// # Overview
//
// A Supervisor drives one Tool at a time:
//   - Push waits for the target's request, sends the image size, waits for
//     the ack, streams the image and then runs the Bridge
//   - Term runs the Bridge only
//
// The supervisor waits for the device node, opens it, runs the tool and
// classifies whatever error comes back. Connection, protocol and timeout
// errors close the link and start over once the device is present again;
// everything else ends the run.
//
// # Basic Usage
//
//	logger := loader.NewLogger(os.Stdout)
//	push := loader.NewPush("/dev/ttyUSB0", "kernel8.img", loader.WithLogger(logger))
//	err := loader.NewSupervisor(loader.WithLogger(logger)).Run(ctx, push)
//
// # Cancellation
//
// Bounded waits and the bridge stop cooperatively. A read that is already
// blocked is never interrupted; the worst case for a bounded wait is its
// window plus one serial read timeout.
//
// # Error Handling
//
//   - ErrConnection: device unplugged or transport failure (retried)
//   - ErrProtocol: wrong or missing ack (retried)
//   - ErrTimeout: the handshake window ran out (retried)
//   - *OpenError: the device could not be opened (fatal)
//   - ErrNoLink: no open link where one was required (fatal)
//   - anything else is an I/O error (fatal)
//
// Use Classify or Retryable rather than comparing errors directly.
package loader
