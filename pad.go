package shacmp

import (
	"encoding/binary"
	"errors"
)

// ErrMalformedLength reports a padded byte sequence whose length is not a
// multiple of BlockLen. It indicates a bug in Pad, not bad input.
var ErrMalformedLength = errors.New("shacmp: padded length is not a multiple of the block size")

// Pad appends SHA-384 message padding: a 0x80 marker byte, zeros until the
// length is 112 mod 128, and the message bit length as a 128-bit big-endian
// integer. The high 64 bits of the length are always zero here since
// message byte lengths fit in a uint64.
//
// The zero fill compares the remainder for equality with 112 rather than
// ordering: when the marker already lands on the boundary no zeros are
// added, and past the boundary the count must wrap into the next block.
func Pad(msg []byte) []byte {
	bitLen := uint64(len(msg)) * 8

	padded := make([]byte, len(msg), len(msg)+2*BlockLen)
	copy(padded, msg)
	padded = append(padded, 0x80)
	for len(padded)%BlockLen != 112 {
		padded = append(padded, 0x00)
	}
	padded = append(padded, 0, 0, 0, 0, 0, 0, 0, 0)
	padded = binary.BigEndian.AppendUint64(padded, bitLen)
	return padded
}

// SplitBlocks chunks a padded message into 128-byte blocks.
func SplitBlocks(padded []byte) ([]Block, error) {
	if len(padded)%BlockLen != 0 {
		return nil, ErrMalformedLength
	}

	blocks := make([]Block, len(padded)/BlockLen)
	for i := range blocks {
		copy(blocks[i][:], padded[i*BlockLen:])
	}
	return blocks, nil
}
