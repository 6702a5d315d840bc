package shacmp

import "strings"

// Result holds what one variant's simulation reported, or the pipeline
// error that prevented it from reporting anything.
type Result struct {
	Passed int
	Failed int
	Hashes []string
	Err    error // pipeline failure; nil when the run completed
}

// Parse scans captured simulator output for the testbench's report lines.
// Each line is tested for "PASS", then "FAIL", then "Hash:"; only the first
// match counts, so a line cannot contribute twice. Hash lines contribute
// whatever follows the first "Hash:", trimmed and lowercased, with no shape
// validation; lines matching no token are ignored.
//
// Deliberately no smarter than that. The testbench output format is outside
// this repo's control, and the reconciler correlates hashes by position, so
// the scan must mirror what the testbenches actually emit.
func Parse(text string) Result {
	var res Result
	for _, line := range strings.Split(text, "\n") {
		switch {
		case strings.Contains(line, "PASS"):
			res.Passed++
		case strings.Contains(line, "FAIL"):
			res.Failed++
		case strings.Contains(line, "Hash:"):
			_, rest, _ := strings.Cut(line, "Hash:")
			res.Hashes = append(res.Hashes, strings.ToLower(strings.TrimSpace(rest)))
		}
	}
	return res
}
