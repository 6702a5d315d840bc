// Package shacmp generates SHA-384 test vectors for simulated hardware
// designs and reconciles the digests they report against the reference
// implementation.
//
// A run pads random messages into 128-byte blocks, serializes them together
// with the expected digests into a plain-text vector file, drives each
// design under test through the simulator (see the nvc package), parses the
// captured output for pass/fail markers and digest lines, and compares
// everything position by position.
package shacmp

import "fmt"

const (
	// BlockLen is the size of one padded message block in bytes.
	BlockLen = 128

	// WordsPerBlock is the number of 64-bit words in one block.
	WordsPerBlock = BlockLen / 8

	// DigestHexLen is the length of a SHA-384 digest in hex characters.
	DigestHexLen = 96

	// WordHexLen is the width of one rendered 64-bit word in hex characters.
	WordHexLen = 16
)

// Block is one 128-byte unit of padded input, consumed by a single
// compression invocation of the design under test.
type Block [BlockLen]byte

// TestCase pairs the padded blocks of one generated message with the digest
// the reference implementation computed for it.
type TestCase struct {
	Name   string
	Blocks []Block
	Digest string // 96 lowercase hex characters
}

// Variant selects which design under test a run refers to.
type Variant int

const (
	// Baseline is the straightforward sha384 design.
	Baseline Variant = iota

	// Optimized is the pipelined sha384_fast design.
	Optimized
)

func (v Variant) String() string {
	switch v {
	case Baseline:
		return "baseline"
	case Optimized:
		return "optimized"
	default:
		return fmt.Sprintf("variant(%d)", int(v))
	}
}
