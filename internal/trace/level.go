package trace

import (
	"fmt"
	"strings"
)

// Level controls tracing verbosity.
type Level uint8

const (
	LevelOff    Level = iota
	LevelError        // recorded only for a dump after a failure
	LevelPhase        // driver and stage boundaries
	LevelDetail       // plus files
	LevelDebug        // plus productions
)

var levelNames = [...]string{"off", "error", "phase", "detail", "debug"}

// finest is the finest scope each level lets through.
var finest = [...]Scope{
	LevelError:  ScopeFile,
	LevelPhase:  ScopeStage,
	LevelDetail: ScopeFile,
	LevelDebug:  ScopeProduction,
}

func (l Level) String() string {
	if int(l) < len(levelNames) {
		return levelNames[l]
	}
	return "unknown"
}

// Allows reports whether events of scope pass at level l.
func (l Level) Allows(scope Scope) bool {
	return l > LevelOff && int(l) < len(finest) && scope <= finest[l]
}

// ParseLevel converts a flag value to a Level.
func ParseLevel(s string) (Level, error) {
	i, err := parseName("trace level", s, levelNames[:])
	return Level(i), err // #nosec G115 -- index into a 5 element table
}

// StorageMode determines where events go.
type StorageMode uint8

const (
	ModeStream StorageMode = iota + 1 // written immediately
	ModeRing                          // kept in memory
	ModeBoth
)

var modeNames = [...]string{ModeStream: "stream", ModeRing: "ring", ModeBoth: "both"}

func (m StorageMode) String() string { return lookupName(modeNames[:], int(m)) }

// ParseMode converts a flag value to a StorageMode.
func ParseMode(s string) (StorageMode, error) {
	i, err := parseName("storage mode", s, modeNames[:])
	return StorageMode(i), err // #nosec G115 -- index into a 4 element table
}

// Format is the encoding of written events.
type Format uint8

const (
	FormatAuto   Format = iota // chosen from the output path
	FormatText                 // one human-readable line per event
	FormatNDJSON               // newline-delimited JSON
)

var formatNames = [...]string{"auto", "text", "ndjson"}

// ParseFormat converts a flag value to a Format. "" means auto, "json" is
// accepted for ndjson.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(s) {
	case "":
		return FormatAuto, nil
	case "json":
		return FormatNDJSON, nil
	}
	i, err := parseName("trace format", s, formatNames[:])
	return Format(i), err // #nosec G115 -- index into a 3 element table
}

func parseName(what, s string, names []string) (int, error) {
	s = strings.ToLower(s)
	var valid []string
	for i, name := range names {
		if name == "" {
			continue
		}
		if name == s {
			return i, nil
		}
		valid = append(valid, name)
	}
	return 0, fmt.Errorf("invalid %s: %q (expected: %s)", what, s, strings.Join(valid, "|"))
}
