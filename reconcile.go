package shacmp

// TestStatus is the per-test outcome of reconciliation.
type TestStatus struct {
	Index     int
	Name      string
	Reference string
	Hashes    map[Variant]string // reported digests; no entry when a variant emitted too few
	OK        bool
}

// Verdict is the overall outcome of a comparison run.
type Verdict int

const (
	AllMatch Verdict = iota
	DifferencesDetected
)

func (v Verdict) String() string {
	if v == AllMatch {
		return "all match"
	}
	return "differences detected"
}

// Reconcile compares each case's reference digest against the digest every
// variant reported at the same position. The i-th parsed hash belongs to
// the i-th emitted case; there is no other correlation key. A test is OK
// only when every variant reported a digest at its index and that digest
// equals the reference. A pipeline-level error on any variant forces the
// verdict to DifferencesDetected even if every comparable digest matched.
func Reconcile(cases []TestCase, results map[Variant]Result) ([]TestStatus, Verdict) {
	verdict := AllMatch
	for _, res := range results {
		if res.Err != nil {
			verdict = DifferencesDetected
		}
	}

	statuses := make([]TestStatus, len(cases))
	for i, tc := range cases {
		st := TestStatus{
			Index:     i,
			Name:      tc.Name,
			Reference: tc.Digest,
			Hashes:    make(map[Variant]string),
			OK:        true,
		}
		for v, res := range results {
			if i < len(res.Hashes) {
				st.Hashes[v] = res.Hashes[i]
			}
			if i >= len(res.Hashes) || res.Hashes[i] != tc.Digest {
				st.OK = false
			}
		}
		if !st.OK {
			verdict = DifferencesDetected
		}
		statuses[i] = st
	}

	return statuses, verdict
}
