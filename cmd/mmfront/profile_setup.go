package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"mmfront/internal/prof"
)

// setupProfiling starts the profiles requested by the persistent flags;
// app.close stops them.
func (a *app) setupProfiling(cmd *cobra.Command) error {
	pf := cmd.Root().PersistentFlags()
	cpuProfile, err := pf.GetString("cpu-profile")
	if err != nil {
		return fmt.Errorf("failed to get cpu-profile flag: %w", err)
	}
	memProfile, err := pf.GetString("mem-profile")
	if err != nil {
		return fmt.Errorf("failed to get mem-profile flag: %w", err)
	}
	tracePath, err := pf.GetString("runtime-trace")
	if err != nil {
		return fmt.Errorf("failed to get runtime-trace flag: %w", err)
	}
	if cpuProfile == "" && memProfile == "" && tracePath == "" {
		return nil
	}
	session, err := prof.Start(cpuProfile, memProfile, tracePath)
	if err != nil {
		return fmt.Errorf("failed to start profiling: %w", err)
	}
	a.profile = session
	return nil
}
