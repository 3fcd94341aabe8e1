package diag

import (
	"cmp"
	"fmt"
	"slices"
	"strings"

	"mmfront/internal/source"
)

// shortLine is one rendered row of FormatShort.
type shortLine struct {
	sev, code, path string
	line, col       uint32
	msg             string
}

func (l shortLine) String() string {
	if l.path == "" {
		return fmt.Sprintf("%s %s %s", l.sev, l.code, l.msg)
	}
	return fmt.Sprintf("%s %s %s:%d:%d %s", l.sev, l.code, l.path, l.line, l.col, l.msg)
}

// FormatShort renders one line per diagnostic, sorted by location:
//
//	error LEX1001 db.mm:3:7 unknown keyword "$f"
//
// Paths are relative to the FileSet base directory and columns are 1-based.
// Spans in files fs does not know print without a location. With notes set
// every note follows as a "note" row under its parent's code.
func FormatShort(diags []Diagnostic, fs *source.FileSet, notes bool) string {
	rows := make([]shortLine, 0, len(diags))
	for i := range diags {
		d := &diags[i]
		rows = append(rows, shortRow(fs, d.Severity.Label(), d.Code, d.Primary, d.Message))
		if !notes {
			continue
		}
		for _, n := range d.Notes {
			if fs != nil && fs.Get(n.Span.File) != nil {
				rows = append(rows, shortRow(fs, "note", d.Code, n.Span, n.Msg))
			}
		}
	}

	slices.SortStableFunc(rows, func(a, b shortLine) int {
		return cmp.Or(
			cmp.Compare(a.path, b.path),
			cmp.Compare(a.line, b.line),
			cmp.Compare(a.col, b.col),
			cmp.Compare(a.sev, b.sev),
			cmp.Compare(a.code, b.code),
			cmp.Compare(a.msg, b.msg),
		)
	})

	out := make([]string, len(rows))
	for i, r := range rows {
		out[i] = r.String()
	}
	return strings.Join(out, "\n")
}

func shortRow(fs *source.FileSet, sev string, code Code, sp source.Span, msg string) shortLine {
	row := shortLine{sev: sev, code: code.ID(), msg: oneLine(msg)}
	if fs == nil {
		return row
	}
	f := fs.Get(sp.File)
	if f == nil {
		return row
	}
	row.path = strings.TrimPrefix(f.DisplayPath(source.PathRelative, fs.BaseDir()), "./")
	start, _ := fs.Resolve(sp)
	row.line, row.col = start.Line, start.Col
	return row
}

func oneLine(msg string) string {
	return strings.Join(strings.Fields(msg), " ")
}
