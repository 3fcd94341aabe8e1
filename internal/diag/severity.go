package diag

import "strings"

// Severity orders diagnostics by importance.
type Severity uint8

const (
	SevInfo Severity = iota // timings and the like
	SevWarning
	SevError // a fault; parsing stopped here
)

var severityLabels = [...]string{SevInfo: "info", SevWarning: "warning", SevError: "error"}

// String is the upper-case form used in JSON output.
func (s Severity) String() string {
	if int(s) < len(severityLabels) {
		return strings.ToUpper(severityLabels[s])
	}
	return "UNKNOWN"
}

// Label is the lower-case form used by the pretty and short layouts.
func (s Severity) Label() string {
	if int(s) < len(severityLabels) {
		return severityLabels[s]
	}
	return "info"
}
