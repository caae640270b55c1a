package protocol

const (
	// Marker is the end-of-transmission byte the target repeats when it is
	// ready to receive an image.
	Marker byte = 0x03

	// MarkerRun is the number of consecutive markers that make a request.
	MarkerRun = 3

	// SizeFrameLen is the length of the size frame in bytes.
	SizeFrameLen = 4

	// AckLen is the length of the ack frame in bytes.
	AckLen = 2

	// ChunkSize is the maximum number of image bytes written per step.
	ChunkSize = 512
)

// Ack is the literal ack frame.
var Ack = [AckLen]byte{'O', 'K'}
