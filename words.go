package shacmp

import (
	"encoding/binary"
	"errors"
	"fmt"
)

// ErrInvalidBlockSize reports a block that is not exactly BlockLen bytes.
var ErrInvalidBlockSize = errors.New("shacmp: block is not exactly 128 bytes")

// EncodeWords renders a block as sixteen 64-bit big-endian words, each
// formatted as exactly 16 lowercase hex characters.
func EncodeWords(block []byte) ([]string, error) {
	if len(block) != BlockLen {
		return nil, ErrInvalidBlockSize
	}

	words := make([]string, WordsPerBlock)
	for i := range words {
		words[i] = fmt.Sprintf("%016x", binary.BigEndian.Uint64(block[8*i:]))
	}
	return words, nil
}
