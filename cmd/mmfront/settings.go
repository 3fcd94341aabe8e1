package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"mmfront/internal/driver"
	"mmfront/internal/include"
	"mmfront/internal/prof"
	"mmfront/internal/project"
	"mmfront/internal/trace"
)

// app carries the state of one invocation.
type app struct {
	color          string // auto|on|off
	style          string // pretty|short
	quiet          bool
	timings        bool
	maxDiagnostics int
	reinclusion    include.Policy
	maxDepth       int
	manifest       *project.Manifest

	tracer    trace.Tracer
	heartbeat *trace.Heartbeat
	profile   *prof.Session
}

// loadSettings merges mmfront.toml (when one is found above the working
// directory) with the persistent flags. Flags given explicitly win.
func (a *app) loadSettings(cmd *cobra.Command) error {
	cfg := project.DefaultConfig()
	wd, err := os.Getwd()
	if err != nil {
		return err
	}
	m, ok, err := project.LoadManifest(wd)
	if err != nil {
		return err
	}
	if ok {
		a.manifest = m
		cfg = m.Config
	}

	pf := cmd.Root().PersistentFlags()
	pick := func(name, fromManifest string) (string, error) {
		if pf.Changed(name) || !ok {
			return pf.GetString(name)
		}
		return fromManifest, nil
	}
	pickInt := func(name string, fromManifest int) (int, error) {
		if pf.Changed(name) || !ok {
			return pf.GetInt(name)
		}
		return fromManifest, nil
	}

	if a.color, err = pick("color", cfg.Diagnostics.Color); err != nil {
		return err
	}
	switch a.color = strings.ToLower(a.color); a.color {
	case "auto", "on", "off":
	default:
		return fmt.Errorf("invalid --color value %q (expected auto|on|off)", a.color)
	}
	if a.style, err = pick("diagnostics", cfg.Diagnostics.Style); err != nil {
		return err
	}
	switch a.style = strings.ToLower(a.style); a.style {
	case "pretty", "short":
	default:
		return fmt.Errorf("invalid --diagnostics value %q (expected pretty|short)", a.style)
	}
	if a.maxDiagnostics, err = pickInt("max-diagnostics", cfg.Diagnostics.Max); err != nil {
		return err
	}
	if a.maxDepth, err = pickInt("max-depth", cfg.Database.MaxDepth); err != nil {
		return err
	}
	if a.maxDepth < 0 {
		return fmt.Errorf("--max-depth must not be negative")
	}
	policy, err := pick("reinclusion", cfg.Database.Reinclusion)
	if err != nil {
		return err
	}
	if a.reinclusion, err = include.ParsePolicy(policy); err != nil {
		return err
	}
	if a.quiet, err = pf.GetBool("quiet"); err != nil {
		return err
	}
	if a.timings, err = pf.GetBool("timings"); err != nil {
		return err
	}
	return nil
}

func (a *app) useColor(w io.Writer) bool {
	switch a.color {
	case "on":
		return true
	case "off":
		return false
	default:
		return isTerminal(w)
	}
}

func (a *app) driverOptions() driver.Options {
	return driver.Options{
		Reinclusion:    a.reinclusion,
		MaxDepth:       a.maxDepth,
		MaxDiagnostics: a.maxDiagnostics,
		Timings:        a.timings,
	}
}

// databasePaths returns args, or [database].main of the manifest when args
// is empty.
func (a *app) databasePaths(args []string) ([]string, error) {
	if len(args) > 0 {
		return args, nil
	}
	if a.manifest == nil {
		return nil, fmt.Errorf("no database given and no %s found", project.ManifestName)
	}
	mainPath, err := a.manifest.MainPath()
	if err != nil {
		return nil, err
	}
	return []string{mainPath}, nil
}
