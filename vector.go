package shacmp

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
)

// WriteVectors serializes test cases in the line-oriented format the file
// testbenches read: the case count, then for each case its block count,
// sixteen word lines per block, and the expected digest as six 16-character
// lines. Emission order is load-bearing: the testbench reports digests in
// the order it reads cases, and reconciliation correlates by position only.
func WriteVectors(w io.Writer, cases []TestCase) error {
	bw := bufio.NewWriter(w)

	fmt.Fprintf(bw, "%d\n", len(cases))
	for _, tc := range cases {
		fmt.Fprintf(bw, "%d\n", len(tc.Blocks))
		for _, b := range tc.Blocks {
			words, err := EncodeWords(b[:])
			if err != nil {
				return fmt.Errorf("shacmp: case %q: %w", tc.Name, err)
			}
			for _, word := range words {
				fmt.Fprintf(bw, "%s\n", word)
			}
		}

		if len(tc.Digest) != DigestHexLen {
			return fmt.Errorf("shacmp: case %q: digest is %d hex characters, want %d",
				tc.Name, len(tc.Digest), DigestHexLen)
		}
		for i := 0; i < DigestHexLen; i += WordHexLen {
			fmt.Fprintf(bw, "%s\n", tc.Digest[i:i+WordHexLen])
		}
	}

	return bw.Flush()
}

// WriteVectorFile writes the vector file at path, replacing any previous
// run's artifact.
func WriteVectorFile(path string, cases []TestCase) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := WriteVectors(f, cases); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// ReadVectors parses a vector stream back into test cases. Names are not
// part of the format, so the returned cases carry synthetic ones.
func ReadVectors(r io.Reader) ([]TestCase, error) {
	sc := bufio.NewScanner(r)
	line := func() (string, error) {
		if !sc.Scan() {
			if err := sc.Err(); err != nil {
				return "", err
			}
			return "", io.ErrUnexpectedEOF
		}
		return sc.Text(), nil
	}
	count := func() (int, error) {
		s, err := line()
		if err != nil {
			return 0, err
		}
		n, err := strconv.Atoi(s)
		if err != nil || n < 0 {
			return 0, fmt.Errorf("shacmp: bad count line %q", s)
		}
		return n, nil
	}
	word := func() (string, error) {
		s, err := line()
		if err != nil {
			return "", err
		}
		if len(s) != WordHexLen {
			return "", fmt.Errorf("shacmp: word line %q is not %d characters", s, WordHexLen)
		}
		if _, err := strconv.ParseUint(s, 16, 64); err != nil {
			return "", fmt.Errorf("shacmp: word line %q is not hex", s)
		}
		return s, nil
	}

	total, err := count()
	if err != nil {
		return nil, err
	}

	cases := make([]TestCase, 0, total)
	for t := 0; t < total; t++ {
		nblocks, err := count()
		if err != nil {
			return nil, err
		}

		blocks := make([]Block, nblocks)
		for b := 0; b < nblocks; b++ {
			for w := 0; w < WordsPerBlock; w++ {
				s, err := word()
				if err != nil {
					return nil, err
				}
				v, _ := strconv.ParseUint(s, 16, 64)
				for i := 0; i < 8; i++ {
					blocks[b][8*w+i] = byte(v >> (56 - 8*i))
				}
			}
		}

		digest := ""
		for i := 0; i < DigestHexLen/WordHexLen; i++ {
			s, err := word()
			if err != nil {
				return nil, err
			}
			digest += s
		}

		cases = append(cases, TestCase{
			Name:   fmt.Sprintf("vector_%d", t),
			Blocks: blocks,
			Digest: digest,
		})
	}

	return cases, nil
}
