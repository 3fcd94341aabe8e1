package main

import (
	"fmt"
	"io"
	"os"
	"runtime/debug"

	"github.com/spf13/cobra"

	"mmfront/internal/trace"
)

// setupTracing reads the --trace* flags and attaches a tracer to the
// command's context.
func (a *app) setupTracing(cmd *cobra.Command) error {
	pf := cmd.Root().PersistentFlags()

	traceOutput, err := pf.GetString("trace")
	if err != nil {
		return fmt.Errorf("failed to get trace flag: %w", err)
	}
	levelStr, err := pf.GetString("trace-level")
	if err != nil {
		return fmt.Errorf("failed to get trace-level flag: %w", err)
	}
	modeStr, err := pf.GetString("trace-mode")
	if err != nil {
		return fmt.Errorf("failed to get trace-mode flag: %w", err)
	}
	formatStr, err := pf.GetString("trace-format")
	if err != nil {
		return fmt.Errorf("failed to get trace-format flag: %w", err)
	}
	ringSize, err := pf.GetInt("trace-ring-size")
	if err != nil {
		return fmt.Errorf("failed to get trace-ring-size flag: %w", err)
	}
	heartbeatInterval, err := pf.GetDuration("trace-heartbeat")
	if err != nil {
		return fmt.Errorf("failed to get trace-heartbeat flag: %w", err)
	}

	level, err := trace.ParseLevel(levelStr)
	if err != nil {
		return err
	}
	// --trace alone implies the phase level
	if level == trace.LevelOff && traceOutput != "" {
		level = trace.LevelPhase
	}
	if level == trace.LevelOff {
		a.tracer = trace.Nop
		cmd.SetContext(trace.WithTracer(cmd.Context(), trace.Nop))
		return nil
	}
	mode, err := trace.ParseMode(modeStr)
	if err != nil {
		return err
	}
	format, err := trace.ParseFormat(formatStr)
	if err != nil {
		return err
	}

	tracer, err := trace.New(trace.Config{
		Level:      level,
		Mode:       mode,
		Format:     format,
		OutputPath: traceOutput,
		RingSize:   ringSize,
		Heartbeat:  heartbeatInterval,
	})
	if err != nil {
		return fmt.Errorf("failed to create tracer: %w", err)
	}
	a.tracer = tracer
	ctx := trace.WithTracer(cmd.Context(), tracer)
	cmd.SetContext(ctx)
	a.heartbeat = trace.StartHeartbeat(ctx, tracer, heartbeatInterval)
	return nil
}

func (a *app) closeTracing(stderr io.Writer) {
	a.heartbeat.Stop()
	a.heartbeat = nil
	if a.tracer == nil {
		return
	}
	if err := a.tracer.Flush(); err != nil {
		fmt.Fprintf(stderr, "trace: flush error: %v\n", err)
	}
	if err := a.tracer.Close(); err != nil {
		fmt.Fprintf(stderr, "trace: close error: %v\n", err)
	}
	a.tracer = nil
}

// ring returns the crash buffer of the active tracer, if it keeps one.
func (a *app) ring() *trace.RingTracer {
	switch t := a.tracer.(type) {
	case *trace.RingTracer:
		return t
	case *trace.MultiTracer:
		return t.Ring()
	default:
		return nil
	}
}

// dumpTraceOnPanic writes the ring buffer to stderr before re-panicking.
// Deferred by commands that do the heavy lifting.
func (a *app) dumpTraceOnPanic() {
	r := recover()
	if r == nil {
		return
	}
	if ring := a.ring(); ring != nil {
		fmt.Fprintf(os.Stderr, "panic: %v\n--- trace ring buffer ---\n", r)
		_ = ring.Dump(os.Stderr, trace.FormatText)
		fmt.Fprintf(os.Stderr, "--- end trace ---\n%s", debug.Stack())
	}
	panic(r)
}
