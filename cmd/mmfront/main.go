package main

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"mmfront/internal/version"
)

// errFaults signals that diagnostics were already printed and only the exit
// status is left to set.
var errFaults = errors.New("faults reported")

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

// run executes one command line and returns the process exit status.
func run(args []string, stdout, stderr io.Writer) int {
	a := &app{}
	root := a.rootCmd()
	root.SetArgs(args)
	root.SetOut(stdout)
	root.SetErr(stderr)

	err := root.Execute()
	a.close(stderr)
	if err != nil {
		if !errors.Is(err, errFaults) {
			fmt.Fprintln(stderr, "error:", err)
		}
		return 1
	}
	return 0
}

func (a *app) rootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "mmfront",
		Short: "Metamath database front end",
		Long: `mmfront reads Metamath databases, resolves file inclusions and splits them
into tokens and productions for downstream verifiers`,
		Version:       version.Version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			if err := a.loadSettings(cmd); err != nil {
				return err
			}
			if err := a.setupTracing(cmd); err != nil {
				return err
			}
			return a.setupProfiling(cmd)
		},
	}

	root.AddCommand(a.tokenizeCmd())
	root.AddCommand(a.parseCmd())
	root.AddCommand(a.checkCmd())
	root.AddCommand(a.linesCmd())
	root.AddCommand(a.versionCmd())

	pf := root.PersistentFlags()
	pf.String("color", "auto", "colorize output (auto|on|off)")
	pf.String("diagnostics", "pretty", "diagnostic layout (pretty|short)")
	pf.Bool("quiet", false, "suppress non-essential output")
	pf.Bool("timings", false, "show timing information")
	pf.Int("max-diagnostics", 100, "maximum number of diagnostics to show")
	pf.String("reinclusion", "allow", "what to do when a closed file is included again (allow|skip|forbid)")
	pf.Int("max-depth", 0, "maximum inclusion nesting depth (0=unlimited)")

	pf.String("trace", "", "write trace events to this file (- for stderr)")
	pf.String("trace-level", "off", "trace level (off|error|phase|detail|debug)")
	pf.String("trace-mode", "stream", "trace storage (stream|ring|both)")
	pf.String("trace-format", "auto", "trace output format (auto|text|ndjson)")
	pf.Int("trace-ring-size", 4096, "events kept by the ring tracer")
	pf.Duration("trace-heartbeat", 0, "emit a heartbeat event at this interval (0=off)")

	pf.String("cpu-profile", "", "write a CPU profile to this file")
	pf.String("mem-profile", "", "write a heap profile to this file")
	pf.String("runtime-trace", "", "write a Go runtime trace to this file")
	return root
}

// close stops profiling and flushes the tracer. Safe to call when setup
// never ran.
func (a *app) close(stderr io.Writer) {
	if a.profile != nil {
		if err := a.profile.Stop(); err != nil {
			fmt.Fprintf(stderr, "profile: %v\n", err)
		}
		a.profile = nil
	}
	a.closeTracing(stderr)
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd())) // #nosec G115 -- file descriptors fit in int
}
