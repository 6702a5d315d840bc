// sha384cmp compares two simulated SHA-384 hardware designs against the
// reference implementation using randomized test vectors.
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/decred/slog"
	flags "github.com/jessevdk/go-flags"

	shacmp "github.com/septract/sha384-vhdl-ai"
	"github.com/septract/sha384-vhdl-ai/nvc"
)

type config struct {
	Count   int           `short:"n" long:"count" default:"5" description:"number of random tests"`
	MaxLen  int           `short:"m" long:"max-len" default:"200" description:"max message length in bytes"`
	Seed    *int64        `short:"s" long:"seed" description:"deterministic random seed"`
	Dir     string        `short:"C" long:"dir" default:"." description:"project directory containing the VHDL sources"`
	Timeout time.Duration `short:"t" long:"timeout" default:"30s" description:"wall-clock bound for the simulation run phase"`
	Tool    string        `long:"tool" default:"nvc" description:"simulator binary"`
	Debug   bool          `short:"d" long:"debug" description:"enable debug logging"`
}

// variants is the fixed comparison order; it also fixes the summary layout.
var variants = []shacmp.Variant{shacmp.Baseline, shacmp.Optimized}

func main() {
	os.Exit(run())
}

func run() int {
	var cfg config
	parser := flags.NewParser(&cfg, flags.Default)
	if _, err := parser.Parse(); err != nil {
		var ferr *flags.Error
		if errors.As(err, &ferr) && ferr.Type == flags.ErrHelp {
			return 0
		}
		return 1
	}

	backend := slog.NewBackend(os.Stdout)
	log := backend.Logger("MAIN")
	nvcLog := backend.Logger("NVC")
	if cfg.Debug {
		log.SetLevel(slog.LevelDebug)
		nvcLog.SetLevel(slog.LevelDebug)
	}
	nvc.UseLogger(nvcLog)

	rule := strings.Repeat("=", 60)
	fmt.Println(rule)
	fmt.Println("SHA-384 Implementation Comparison")
	fmt.Println(rule)

	fmt.Printf("\nGenerating %d random test cases...\n", cfg.Count)
	cases, err := shacmp.Generate(cfg.Count, cfg.MaxLen, cfg.Seed)
	if err != nil {
		log.Errorf("Generating test cases: %v", err)
		return 1
	}
	for i, tc := range cases {
		fmt.Printf("  Test %d: %s -> %s...\n", i, tc.Name, tc.Digest[:16])
	}

	vectorsPath := filepath.Join(cfg.Dir, "test_vectors.txt")
	if err := shacmp.WriteVectorFile(vectorsPath, cases); err != nil {
		log.Errorf("Writing test vectors: %v", err)
		return 1
	}
	fmt.Printf("\nWrote test vectors to %s\n", vectorsPath)

	// The vector file is written regardless so it can be used to bring up
	// the testbenches, but without them there is nothing to run.
	for _, v := range variants {
		tb := filepath.Join(cfg.Dir, nvc.Testbench(v))
		if _, err := os.Stat(tb); err != nil {
			log.Errorf("File testbench %s not found; nothing to run", tb)
			return 1
		}
	}

	runner := &nvc.Runner{Dir: cfg.Dir, Tool: cfg.Tool, Timeout: cfg.Timeout}
	results := make(map[shacmp.Variant]shacmp.Result)
	ctx := context.Background()

	for _, v := range variants {
		fmt.Printf("\n%s\nRunning %s...\n", strings.Repeat("-", 60), v)
		out, err := runner.Run(ctx, v)
		if err != nil {
			fmt.Printf("  ERROR: %v\n", err)
			var perr *nvc.PhaseError
			if errors.As(err, &perr) && perr.Output != "" {
				log.Debugf("%s output:\n%s", v, perr.Output)
			}
			results[v] = shacmp.Result{Err: err}
			continue
		}
		res := shacmp.Parse(out)
		fmt.Printf("  Passed: %d/%d\n", res.Passed, len(cases))
		results[v] = res
	}

	fmt.Printf("\n%s\nSUMMARY\n%s\n", rule, rule)

	statuses, verdict := shacmp.Reconcile(cases, results)
	for _, st := range statuses {
		if st.OK {
			continue
		}
		fmt.Printf("Test %d (%s): MISMATCH\n", st.Index, st.Name)
		fmt.Printf("  Reference: %s\n", st.Reference)
		for _, v := range variants {
			if h, ok := st.Hashes[v]; ok {
				fmt.Printf("  %-10s %s\n", v.String()+":", h)
			}
		}
	}

	if verdict == shacmp.AllMatch {
		fmt.Println("All implementations match!")
		return 0
	}
	fmt.Println("Differences detected!")
	return 1
}
