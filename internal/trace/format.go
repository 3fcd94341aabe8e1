package trace

import (
	"encoding/json"
	"fmt"
	"time"
)

// AppendEvent appends ev encoded in format, newline included, to buf.
func AppendEvent(buf []byte, ev *Event, format Format) []byte {
	if format == FormatNDJSON {
		return appendJSON(buf, ev)
	}
	return appendText(buf, ev)
}

var kindMarks = [...]string{
	KindSpanBegin: "→ ",
	KindSpanEnd:   "← ",
	KindPoint:     "• ",
	KindHeartbeat: "♡ ",
}

// appendText renders "#seq scope → name (detail) {k=v, ...}".
func appendText(buf []byte, ev *Event) []byte {
	buf = fmt.Appendf(buf, "#%06d %-10s ", ev.Seq, ev.Scope)
	if ev.Parent != 0 {
		buf = append(buf, "  "...)
	}
	if int(ev.Kind) < len(kindMarks) {
		buf = append(buf, kindMarks[ev.Kind]...)
	}
	buf = append(buf, ev.Name...)
	if ev.Detail != "" {
		buf = fmt.Appendf(buf, " (%s)", ev.Detail)
	}
	for i, a := range ev.Attrs {
		sep := ", "
		if i == 0 {
			sep = " {"
		}
		buf = fmt.Appendf(buf, "%s%s=%s", sep, a.Key, a.Value)
	}
	if len(ev.Attrs) > 0 {
		buf = append(buf, '}')
	}
	return append(buf, '\n')
}

type jsonEvent struct {
	Time      string            `json:"time"`
	Seq       uint64            `json:"seq"`
	Kind      string            `json:"kind"`
	Scope     string            `json:"scope"`
	Span      uint64            `json:"span_id,omitempty"`
	Parent    uint64            `json:"parent_id,omitempty"`
	Goroutine uint64            `json:"gid,omitempty"`
	Name      string            `json:"name"`
	Detail    string            `json:"detail,omitempty"`
	Attrs     map[string]string `json:"attrs,omitempty"`
}

func appendJSON(buf []byte, ev *Event) []byte {
	j := jsonEvent{
		Time:      ev.Time.Format(time.RFC3339Nano),
		Seq:       ev.Seq,
		Kind:      ev.Kind.String(),
		Scope:     ev.Scope.String(),
		Span:      ev.Span,
		Parent:    ev.Parent,
		Goroutine: ev.Goroutine,
		Name:      ev.Name,
		Detail:    ev.Detail,
	}
	if len(ev.Attrs) > 0 {
		j.Attrs = make(map[string]string, len(ev.Attrs))
		for _, a := range ev.Attrs {
			j.Attrs[a.Key] = a.Value
		}
	}
	data, err := json.Marshal(j)
	if err != nil {
		return buf
	}
	buf = append(buf, data...)
	return append(buf, '\n')
}
