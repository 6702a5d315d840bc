package nvc

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"
	"time"

	"github.com/zeebo/assert"

	shacmp "github.com/septract/sha384-vhdl-ai"
)

// writeTool installs a shell script standing in for the nvc binary. Every
// invocation appends its phase flag to phases.log in the project dir.
func writeTool(t *testing.T, dir, script string) string {
	t.Helper()
	if runtime.GOOS == "windows" {
		t.Skip("fake toolchain requires a shell")
	}

	path := filepath.Join(dir, "fakenvc")
	full := "#!/bin/sh\necho \"$1\" >> phases.log\n" + script
	assert.NoError(t, os.WriteFile(path, []byte(full), 0o755))
	return path
}

func phases(t *testing.T, dir string) string {
	t.Helper()
	b, err := os.ReadFile(filepath.Join(dir, "phases.log"))
	assert.NoError(t, err)
	return string(b)
}

func TestRunner_Success(t *testing.T) {
	dir := t.TempDir()
	tool := writeTool(t, dir, `if [ "$1" = "-r" ]; then
  echo "Test 0: PASS"
  echo "Hash: AABBCC"
fi
`)

	r := &Runner{Dir: dir, Tool: tool}
	out, err := r.Run(context.Background(), shacmp.Baseline)
	assert.NoError(t, err)
	assert.True(t, strings.Contains(out, "PASS"))
	assert.True(t, strings.Contains(out, "Hash: AABBCC"))

	assert.Equal(t, phases(t, dir), "-a\n-e\n-r\n")
}

func TestRunner_AnalyzeFailureStopsPipeline(t *testing.T) {
	dir := t.TempDir()
	tool := writeTool(t, dir, `if [ "$1" = "-a" ]; then
  echo "analysis error" >&2
  exit 1
fi
`)

	r := &Runner{Dir: dir, Tool: tool}
	_, err := r.Run(context.Background(), shacmp.Baseline)
	assert.Error(t, err)

	var perr *PhaseError
	assert.True(t, errors.As(err, &perr))
	assert.Equal(t, perr.Phase, PhaseAnalyze)
	assert.Equal(t, perr.Variant, shacmp.Baseline)
	assert.False(t, perr.Timeout)
	assert.True(t, strings.Contains(perr.Output, "analysis error"))

	// elaborate and run were never attempted
	assert.Equal(t, phases(t, dir), "-a\n")
}

func TestRunner_ElaborateFailure(t *testing.T) {
	dir := t.TempDir()
	tool := writeTool(t, dir, `if [ "$1" = "-e" ]; then
  echo "elaboration error" >&2
  exit 1
fi
`)

	r := &Runner{Dir: dir, Tool: tool}
	_, err := r.Run(context.Background(), shacmp.Optimized)

	var perr *PhaseError
	assert.True(t, errors.As(err, &perr))
	assert.Equal(t, perr.Phase, PhaseElaborate)
	assert.Equal(t, perr.Variant, shacmp.Optimized)

	assert.Equal(t, phases(t, dir), "-a\n-e\n")
}

func TestRunner_Timeout(t *testing.T) {
	dir := t.TempDir()
	tool := writeTool(t, dir, `if [ "$1" = "-r" ]; then
  sleep 30
fi
`)

	r := &Runner{Dir: dir, Tool: tool, Timeout: 200 * time.Millisecond}

	start := time.Now()
	_, err := r.Run(context.Background(), shacmp.Baseline)
	elapsed := time.Since(start)

	var perr *PhaseError
	assert.True(t, errors.As(err, &perr))
	assert.Equal(t, perr.Phase, PhaseRun)
	assert.True(t, perr.Timeout)
	assert.True(t, errors.Is(err, context.DeadlineExceeded))

	// the process group must be reaped promptly, not waited on for the
	// full sleep
	assert.True(t, elapsed < 10*time.Second)
}

func TestRunner_VariantArtifacts(t *testing.T) {
	dir := t.TempDir()
	tool := writeTool(t, dir, `echo "args: $@" >> args.log
`)

	r := &Runner{Dir: dir, Tool: tool}
	_, err := r.Run(context.Background(), shacmp.Optimized)
	assert.NoError(t, err)

	b, err := os.ReadFile(filepath.Join(dir, "args.log"))
	assert.NoError(t, err)
	args := string(b)
	assert.True(t, strings.Contains(args, "sha384_fast_pkg.vhd sha384_fast.vhd sha384_fast_file_tb.vhd"))
	assert.True(t, strings.Contains(args, "-e sha384_fast_file_tb"))
	assert.True(t, strings.Contains(args, "-r sha384_fast_file_tb"))
}

func TestRunner_UnknownVariant(t *testing.T) {
	r := &Runner{Dir: t.TempDir()}
	_, err := r.Run(context.Background(), shacmp.Variant(99))
	assert.Error(t, err)
}

func TestTestbench(t *testing.T) {
	assert.Equal(t, Testbench(shacmp.Baseline), "sha384_file_tb.vhd")
	assert.Equal(t, Testbench(shacmp.Optimized), "sha384_fast_file_tb.vhd")
}
