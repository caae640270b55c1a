package protocol

import (
	"bytes"
	"encoding/binary"
)

// EncodeSize builds the size frame for an image of size bytes. Only the low
// 32 bits are kept.
func EncodeSize(size int64) [SizeFrameLen]byte {
	var frame [SizeFrameLen]byte
	binary.LittleEndian.PutUint32(frame[:], uint32(size))
	return frame
}

// DecodeSize parses a size frame.
func DecodeSize(frame []byte) (uint32, error) {
	if len(frame) != SizeFrameLen {
		return 0, &FrameLengthError{Frame: "size", Got: len(frame), Want: SizeFrameLen}
	}
	return binary.LittleEndian.Uint32(frame), nil
}

// CheckAck returns nil only when got is exactly the ack frame.
func CheckAck(got []byte) error {
	if len(got) != AckLen || !bytes.Equal(got, Ack[:]) {
		return &AckError{Got: append([]byte(nil), got...)}
	}
	return nil
}

// ChunkCount returns the number of data chunks an image of size bytes is
// sent in.
func ChunkCount(size int64) int64 {
	if size <= 0 {
		return 0
	}
	return (size + ChunkSize - 1) / ChunkSize
}

// ChunkLen returns the length of the chunk that starts at offset sent.
func ChunkLen(size, sent int64) int {
	remaining := size - sent
	if remaining <= 0 {
		return 0
	}
	if remaining > ChunkSize {
		return ChunkSize
	}
	return int(remaining)
}
