// Package protocol defines the wire format spoken between the image pusher
// and the target's boot stub.
//
// # Wire Format
//
//	Handshake  3 consecutive 0x03 bytes from the target
//	Size frame 4 bytes, little-endian uint32 image length
//	Ack frame  2 bytes "OK"
//	Data       raw image bytes in chunks of at most 512 bytes, no framing
//
// The size field is 32 bits wide because that is the width of the target's
// receive counter. Lengths of 4 GiB or more are truncated by EncodeSize.
//
// This package performs no I/O of its own; it only encodes, decodes and
// checks frames so the loader can be tested without a device.
package protocol
