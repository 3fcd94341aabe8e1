package project

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
)

// Manifest is a loaded mmfront.toml.
type Manifest struct {
	Path   string
	Root   string
	Config Config
}

// Config mirrors the sections of mmfront.toml.
type Config struct {
	Database    DatabaseConfig    `toml:"database"`
	Diagnostics DiagnosticsConfig `toml:"diagnostics"`
}

// DatabaseConfig is the [database] section.
type DatabaseConfig struct {
	Main        string `toml:"main"`
	Reinclusion string `toml:"reinclusion"`
	MaxDepth    int    `toml:"max_depth"`
}

// DiagnosticsConfig is the [diagnostics] section.
type DiagnosticsConfig struct {
	Max   int    `toml:"max"`
	Color string `toml:"color"`
	Style string `toml:"style"` // pretty|short
}

var (
	// ErrDatabaseSectionMissing indicates that [database] is missing.
	ErrDatabaseSectionMissing = errors.New("missing [database]")
	// ErrMainMissing indicates that [database].main is missing or empty.
	ErrMainMissing = errors.New("missing [database].main")
)

// DefaultConfig is used when no manifest is found.
func DefaultConfig() Config {
	return Config{
		Database:    DatabaseConfig{Reinclusion: "allow"},
		Diagnostics: DiagnosticsConfig{Max: 100, Color: "auto", Style: "pretty"},
	}
}

// LoadManifest finds and loads the manifest above startDir. ok is false when
// there is none.
func LoadManifest(startDir string) (*Manifest, bool, error) {
	manifestPath, ok, err := FindManifest(startDir)
	if err != nil || !ok {
		return nil, ok, err
	}
	cfg, err := LoadConfig(manifestPath)
	if err != nil {
		return nil, true, err
	}
	return &Manifest{
		Path:   manifestPath,
		Root:   filepath.Dir(manifestPath),
		Config: cfg,
	}, true, nil
}

// LoadConfig parses and validates one manifest file. Keys that are absent
// keep their DefaultConfig values.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()
	meta, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return Config{}, fmt.Errorf("%s: failed to parse TOML: %w", path, err)
	}
	if !meta.IsDefined("database") {
		return Config{}, fmt.Errorf("%s: %w", path, ErrDatabaseSectionMissing)
	}
	if !meta.IsDefined("database", "main") || strings.TrimSpace(cfg.Database.Main) == "" {
		return Config{}, fmt.Errorf("%s: %w", path, ErrMainMissing)
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		return Config{}, fmt.Errorf("%s: unknown key %q", path, undecoded[0].String())
	}
	switch strings.ToLower(cfg.Database.Reinclusion) {
	case "allow", "skip", "forbid":
	default:
		return Config{}, fmt.Errorf("%s: [database].reinclusion must be allow, skip or forbid, got %q", path, cfg.Database.Reinclusion)
	}
	if cfg.Database.MaxDepth < 0 {
		return Config{}, fmt.Errorf("%s: [database].max_depth must not be negative", path)
	}
	switch strings.ToLower(cfg.Diagnostics.Color) {
	case "auto", "on", "off":
	default:
		return Config{}, fmt.Errorf("%s: [diagnostics].color must be auto, on or off, got %q", path, cfg.Diagnostics.Color)
	}
	switch strings.ToLower(cfg.Diagnostics.Style) {
	case "pretty", "short":
	default:
		return Config{}, fmt.Errorf("%s: [diagnostics].style must be pretty or short, got %q", path, cfg.Diagnostics.Style)
	}
	return cfg, nil
}

// MainPath resolves [database].main against the manifest directory and
// checks that it names a file.
func (m *Manifest) MainPath() (string, error) {
	if m == nil {
		return "", fmt.Errorf("missing project manifest")
	}
	mainPath := filepath.Join(m.Root, filepath.FromSlash(strings.TrimSpace(m.Config.Database.Main)))
	info, err := os.Stat(mainPath)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return "", fmt.Errorf("%s: [database].main does not exist: %s", m.Path, mainPath)
		}
		return "", fmt.Errorf("%s: failed to stat [database].main: %w", m.Path, err)
	}
	if info.IsDir() {
		return "", fmt.Errorf("%s: [database].main must be a file, %s is a directory", m.Path, mainPath)
	}
	return mainPath, nil
}
