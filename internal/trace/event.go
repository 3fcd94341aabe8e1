package trace

import "time"

// Kind is what an event marks.
type Kind uint8

const (
	KindSpanBegin Kind = iota + 1
	KindSpanEnd
	KindPoint     // instant event
	KindHeartbeat // periodic liveness signal
)

var kindNames = [...]string{
	KindSpanBegin: "begin",
	KindSpanEnd:   "end",
	KindPoint:     "point",
	KindHeartbeat: "heartbeat",
}

func (k Kind) String() string { return lookupName(kindNames[:], int(k)) }

// Scope is the granularity of an event; coarser scopes have lower values.
type Scope uint8

const (
	ScopeDriver     Scope = iota + 1 // one CLI command
	ScopeStage                       // load, tokenize, parse, digest
	ScopeFile                        // entering and leaving one database file
	ScopeProduction                  // a single production
)

var scopeNames = [...]string{
	ScopeDriver:     "driver",
	ScopeStage:      "stage",
	ScopeFile:       "file",
	ScopeProduction: "production",
}

func (s Scope) String() string { return lookupName(scopeNames[:], int(s)) }

// Attr is a key-value pair carried by span end events.
type Attr struct {
	Key, Value string
}

// Event is one trace record.
type Event struct {
	Time      time.Time
	Seq       uint64 // process-wide, monotonic
	Kind      Kind
	Scope     Scope
	Span      uint64 // 0 for points and heartbeats
	Parent    uint64 // 0 for roots
	Goroutine uint64
	Name      string // "parse", "include.enter", ...
	Detail    string
	Attrs     []Attr
}

func lookupName(names []string, i int) string {
	if i > 0 && i < len(names) && names[i] != "" {
		return names[i]
	}
	return "unknown"
}
