package include

import (
	"fmt"
	"strings"

	"mmfront/internal/trace"
)

// Policy decides what happens when a file that was already included and
// closed is included again. Files still open are always a cycle.
type Policy uint8

const (
	// ReincludeAllow splices the file again.
	ReincludeAllow Policy = iota
	// ReincludeSkip drops the directive silently.
	ReincludeSkip
	// ReincludeForbid fails with IncRepeatedInclusion.
	ReincludeForbid
)

func (p Policy) String() string {
	switch p {
	case ReincludeAllow:
		return "allow"
	case ReincludeSkip:
		return "skip"
	case ReincludeForbid:
		return "forbid"
	default:
		return "unknown"
	}
}

// ParsePolicy converts a manifest or flag value into a Policy.
func ParsePolicy(s string) (Policy, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "allow":
		return ReincludeAllow, nil
	case "skip":
		return ReincludeSkip, nil
	case "forbid":
		return ReincludeForbid, nil
	default:
		return ReincludeAllow, fmt.Errorf("invalid reinclusion policy %q (expected: allow|skip|forbid)", s)
	}
}

// Options tune a Resolver.
type Options struct {
	Reinclusion Policy
	// MaxDepth bounds the number of simultaneously open files; 0 is unlimited.
	MaxDepth int
	// Tracer receives a file-scope point per entered, left or skipped file.
	Tracer trace.Tracer
	// TraceParent is the span the points are attached to.
	TraceParent uint64
}
