// Package nvc drives the nvc VHDL simulator through its analyze, elaborate,
// and run phases and captures the combined output of the design under test.
package nvc

import (
	"bytes"
	"context"
	"fmt"
	"os/exec"
	"time"

	"github.com/pkg/errors"

	shacmp "github.com/septract/sha384-vhdl-ai"
)

// DefaultTimeout bounds the run phase. Analysis and elaboration are quick;
// only the simulation itself gets a wall-clock budget.
const DefaultTimeout = 30 * time.Second

// Phase identifies which step of the toolchain pipeline failed.
type Phase int

const (
	PhaseAnalyze Phase = iota
	PhaseElaborate
	PhaseRun
)

func (p Phase) String() string {
	switch p {
	case PhaseAnalyze:
		return "analyze"
	case PhaseElaborate:
		return "elaborate"
	case PhaseRun:
		return "run"
	default:
		return fmt.Sprintf("phase(%d)", int(p))
	}
}

// PhaseError reports a failed toolchain phase along with everything the
// tool printed. Timeout distinguishes a run that exceeded its wall-clock
// budget from one that exited non-zero.
type PhaseError struct {
	Phase   Phase
	Variant shacmp.Variant
	Output  string
	Timeout bool
	Err     error
}

func (e *PhaseError) Error() string {
	if e.Timeout {
		return fmt.Sprintf("nvc: %s %s timed out", e.Variant, e.Phase)
	}
	return fmt.Sprintf("nvc: %s %s failed: %v", e.Variant, e.Phase, e.Err)
}

func (e *PhaseError) Unwrap() error { return e.Err }

// artifacts names the fixed source file set for one design under test. The
// variants differ in nothing else as far as the driver is concerned.
type artifacts struct {
	pkg, design, tb string
	entity          string
}

var variantArtifacts = map[shacmp.Variant]artifacts{
	shacmp.Baseline: {
		pkg:    "sha384_pkg.vhd",
		design: "sha384.vhd",
		tb:     "sha384_file_tb.vhd",
		entity: "sha384_file_tb",
	},
	shacmp.Optimized: {
		pkg:    "sha384_fast_pkg.vhd",
		design: "sha384_fast.vhd",
		tb:     "sha384_fast_file_tb.vhd",
		entity: "sha384_fast_file_tb",
	},
}

// Testbench returns the file testbench source a variant needs, relative to
// the project directory. Callers check it exists before attempting a run.
func Testbench(v shacmp.Variant) string {
	return variantArtifacts[v].tb
}

// Runner invokes the toolchain inside a project directory.
type Runner struct {
	Dir     string        // project directory containing the VHDL sources
	Tool    string        // toolchain binary, "nvc" when empty
	Timeout time.Duration // run-phase bound, DefaultTimeout when zero
}

func (r *Runner) tool() string {
	if r.Tool != "" {
		return r.Tool
	}
	return "nvc"
}

func (r *Runner) timeout() time.Duration {
	if r.Timeout != 0 {
		return r.Timeout
	}
	return DefaultTimeout
}

// Run executes the full analyze/elaborate/run pipeline for one variant and
// returns the combined stdout+stderr of the run phase. Phases are strictly
// sequential: each subprocess must exit before the next phase starts, and a
// failed phase stops the variant with a *PhaseError.
func (r *Runner) Run(ctx context.Context, v shacmp.Variant) (string, error) {
	a, ok := variantArtifacts[v]
	if !ok {
		return "", errors.Errorf("nvc: unknown variant %d", int(v))
	}

	log.Debugf("Analyzing %s: %s %s %s", v, a.pkg, a.design, a.tb)
	if out, err := r.exec(ctx, 0, "-a", a.pkg, a.design, a.tb); err != nil {
		return "", &PhaseError{Phase: PhaseAnalyze, Variant: v, Output: out, Err: err}
	}

	log.Debugf("Elaborating %s", a.entity)
	if out, err := r.exec(ctx, 0, "-e", a.entity); err != nil {
		return "", &PhaseError{Phase: PhaseElaborate, Variant: v, Output: out, Err: err}
	}

	log.Debugf("Running %s (timeout %v)", a.entity, r.timeout())
	out, err := r.exec(ctx, r.timeout(), "-r", a.entity)
	if err != nil {
		perr := &PhaseError{Phase: PhaseRun, Variant: v, Output: out, Err: err}
		if errors.Is(err, context.DeadlineExceeded) {
			perr.Timeout = true
		}
		return "", perr
	}

	log.Debugf("Run of %s produced %d bytes of output", a.entity, len(out))
	return out, nil
}

// exec runs one toolchain invocation and returns its combined output. A
// non-zero timeout bounds the call; on expiry the whole process group is
// killed so simulator children do not outlive the harness.
func (r *Runner) exec(ctx context.Context, timeout time.Duration, args ...string) (string, error) {
	if timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}

	cmd := exec.CommandContext(ctx, r.tool(), args...)
	cmd.Dir = r.Dir
	setProcGroup(cmd)
	cmd.Cancel = func() error { return terminate(cmd) }

	var buf bytes.Buffer
	cmd.Stdout = &buf
	cmd.Stderr = &buf

	err := cmd.Run()
	out := buf.String()
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return out, ctxErr
		}
		return out, errors.Wrapf(err, "nvc %s", args[0])
	}
	return out, nil
}
