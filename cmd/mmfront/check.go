package main

import (
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"mmfront/internal/diagfmt"
	"mmfront/internal/driver"
)

func (a *app) checkCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "check [flags] [file.mm...]",
		Short: "Check that databases tokenize and parse",
		Long: `Check runs the front end over one or more databases in parallel and reports
the first fault of each. Without arguments it checks [database].main of the
nearest mmfront.toml`,
		RunE: a.runCheck,
	}
	cmd.Flags().Int("jobs", 0, "max databases processed in parallel (0=auto)")
	cmd.Flags().String("ui", "auto", "show a progress view (auto|on|off)")
	cmd.Flags().String("format", "pretty", "output format (pretty|json)")
	cmd.Flags().Bool("cache", false, "skip databases unchanged since their last clean check")
	cmd.Flags().Bool("cache-reset", false, "drop the cache before checking")
	return cmd
}

type checkJSON struct {
	Path        string                    `json:"path"`
	OK          bool                      `json:"ok"`
	Cached      bool                      `json:"cached,omitempty"`
	Productions int                       `json:"productions"`
	Files       int                       `json:"files"`
	Digest      string                    `json:"digest,omitempty"`
	ElapsedMS   float64                   `json:"elapsed_ms"`
	Diagnostics diagfmt.DiagnosticsOutput `json:"diagnostics"`
}

func (a *app) runCheck(cmd *cobra.Command, args []string) error {
	defer a.dumpTraceOnPanic()

	jobs, err := cmd.Flags().GetInt("jobs")
	if err != nil {
		return fmt.Errorf("failed to get jobs flag: %w", err)
	}
	uiValue, err := cmd.Flags().GetString("ui")
	if err != nil {
		return fmt.Errorf("failed to get ui flag: %w", err)
	}
	mode, err := readUIMode(uiValue)
	if err != nil {
		return err
	}
	format, err := cmd.Flags().GetString("format")
	if err != nil {
		return fmt.Errorf("failed to get format flag: %w", err)
	}
	if format != "pretty" && format != "json" {
		return fmt.Errorf("unknown format: %s", format)
	}
	useCache, err := cmd.Flags().GetBool("cache")
	if err != nil {
		return fmt.Errorf("failed to get cache flag: %w", err)
	}
	resetCache, err := cmd.Flags().GetBool("cache-reset")
	if err != nil {
		return fmt.Errorf("failed to get cache-reset flag: %w", err)
	}

	paths, err := a.databasePaths(args)
	if err != nil {
		return err
	}

	opts := a.driverOptions()
	opts.Jobs = jobs
	if useCache || resetCache {
		cache, err := driver.OpenDiskCache("mmfront")
		if err != nil {
			return fmt.Errorf("failed to open cache: %w", err)
		}
		if resetCache {
			if err := cache.DropAll(); err != nil {
				return fmt.Errorf("failed to reset cache: %w", err)
			}
		}
		if useCache {
			opts.Cache = cache
		}
	}

	out := cmd.OutOrStdout()
	var results []driver.CheckResult
	if showProgress(mode, format, a.quiet, out) {
		results, err = runCheckWithUI(cmd.Context(), out, "checking databases", paths, opts)
	} else {
		results, err = driver.Check(cmd.Context(), paths, opts)
	}
	if err != nil {
		return err
	}

	if format == "json" {
		err = writeCheckJSON(out, results)
	} else {
		err = a.writeCheckPretty(out, cmd.ErrOrStderr(), results)
	}
	if err != nil {
		return err
	}
	for i := range results {
		if !results[i].OK() {
			return errFaults
		}
	}
	return nil
}

func (a *app) writeCheckPretty(out, errOut io.Writer, results []driver.CheckResult) error {
	failed := 0
	for i := range results {
		r := &results[i]
		if err := a.printDiagnostics(errOut, r.Bag, r.FileSet); err != nil {
			return err
		}
		if !r.OK() {
			failed++
			if _, err := fmt.Fprintf(out, "FAIL %s\n", r.Path); err != nil {
				return err
			}
			continue
		}
		if a.quiet {
			continue
		}
		note := ""
		if r.Cached {
			note = ", cached"
		}
		if _, err := fmt.Fprintf(out, "ok   %s  %d productions, %d files (%s%s)\n",
			r.Path, r.Productions, r.Files, r.Elapsed.Round(time.Microsecond), note); err != nil {
			return err
		}
	}
	if a.quiet || len(results) < 2 {
		return nil
	}
	_, err := fmt.Fprintf(out, "%d databases, %d failed\n", len(results), failed)
	return err
}

func writeCheckJSON(out io.Writer, results []driver.CheckResult) error {
	payload := make([]checkJSON, 0, len(results))
	for i := range results {
		r := &results[i]
		item := checkJSON{
			Path:        filepath.ToSlash(r.Path),
			OK:          r.OK(),
			Cached:      r.Cached,
			Productions: r.Productions,
			Files:       r.Files,
			ElapsedMS:   float64(r.Elapsed) / float64(time.Millisecond),
			Diagnostics: diagfmt.BuildDiagnosticsOutput(r.Bag, r.FileSet, diagfmt.JSONOpts{
				IncludePositions: true,
				IncludeNotes:     true,
			}),
		}
		if r.OK() {
			item.Digest = hex.EncodeToString(r.Digest[:])
		}
		payload = append(payload, item)
	}
	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	return enc.Encode(payload)
}
