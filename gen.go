package shacmp

import (
	"crypto/sha512"
	"encoding/hex"
	"fmt"
	mrand "math/rand"

	"github.com/decred/dcrd/crypto/rand"
)

// Generate produces count random test cases with message lengths uniform in
// [0, maxLen]. A non-nil seed makes the whole sequence deterministic;
// otherwise lengths and contents come from the system CSPRNG.
func Generate(count, maxLen int, seed *int64) ([]TestCase, error) {
	if count < 0 || maxLen < 0 {
		return nil, fmt.Errorf("shacmp: invalid generation parameters count=%d maxLen=%d", count, maxLen)
	}

	var rng *mrand.Rand
	if seed != nil {
		rng = mrand.New(mrand.NewSource(*seed))
	}

	cases := make([]TestCase, 0, count)
	for i := 0; i < count; i++ {
		var n int
		if rng != nil {
			n = rng.Intn(maxLen + 1)
		} else {
			n = rand.IntN(maxLen + 1)
		}

		msg := make([]byte, n)
		if rng != nil {
			rng.Read(msg)
		} else {
			rand.Read(msg)
		}

		tc, err := NewCase(fmt.Sprintf("random_%db", n), msg)
		if err != nil {
			return nil, fmt.Errorf("shacmp: generating test %d: %w", i, err)
		}
		cases = append(cases, tc)
	}

	return cases, nil
}

// NewCase pads msg, splits it into blocks, and records the reference
// digest computed directly from the unpadded message.
func NewCase(name string, msg []byte) (TestCase, error) {
	blocks, err := SplitBlocks(Pad(msg))
	if err != nil {
		return TestCase{}, err
	}

	sum := sha512.Sum384(msg)
	return TestCase{
		Name:   name,
		Blocks: blocks,
		Digest: hex.EncodeToString(sum[:]),
	}, nil
}
