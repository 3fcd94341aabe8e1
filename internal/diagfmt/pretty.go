package diagfmt

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/mattn/go-runewidth"

	"mmfront/internal/diag"
	"mmfront/internal/source"
)

type palette struct {
	err, warn, info, note, path, gutter, caret *color.Color
}

func newPalette(enabled bool) palette {
	p := palette{
		err:    color.New(color.FgRed, color.Bold),
		warn:   color.New(color.FgYellow, color.Bold),
		info:   color.New(color.FgCyan, color.Bold),
		note:   color.New(color.FgBlue, color.Bold),
		path:   color.New(color.Bold),
		gutter: color.New(color.FgBlue),
		caret:  color.New(color.FgRed, color.Bold),
	}
	for _, c := range []*color.Color{p.err, p.warn, p.info, p.note, p.path, p.gutter, p.caret} {
		if enabled {
			c.EnableColor()
		} else {
			c.DisableColor()
		}
	}
	return p
}

func (p palette) severity(s diag.Severity) *color.Color {
	switch s {
	case diag.SevError:
		return p.err
	case diag.SevWarning:
		return p.warn
	default:
		return p.info
	}
}

// Pretty renders diagnostics for humans, in bag order (callers usually
// bag.Sort() first):
//
//	db.mm:3:7: ERROR LEX1001: unknown keyword "$f"
//	   2 | $c a $.
//	   3 | ax-1 $f a $.
//	     |      ^~
//	  note: main.mm:1:4: included from here
func Pretty(w io.Writer, bag *diag.Bag, fs *source.FileSet, opts PrettyOpts) error {
	pal := newPalette(opts.Color)
	for i, d := range bag.Items() {
		if i > 0 {
			if _, err := fmt.Fprintln(w); err != nil {
				return err
			}
		}
		if err := prettyOne(w, &d, fs, opts, pal); err != nil {
			return err
		}
	}
	return nil
}

func prettyOne(w io.Writer, d *diag.Diagnostic, fs *source.FileSet, opts PrettyOpts, pal palette) error {
	var sb strings.Builder
	f := fs.Get(d.Primary.File)
	if f == nil {
		fmt.Fprintf(&sb, "%s %s: %s\n", pal.severity(d.Severity).Sprint(strings.ToUpper(d.Severity.Label())), d.Code.ID(), d.Message)
		_, err := io.WriteString(w, sb.String())
		return err
	}

	start, end := fs.Resolve(d.Primary)
	fmt.Fprintf(&sb, "%s: %s %s: %s\n",
		pal.path.Sprintf("%s:%d:%d", formatPath(fs, f, opts.PathMode), start.Line, start.Col),
		pal.severity(d.Severity).Sprint(strings.ToUpper(d.Severity.Label())),
		d.Code.ID(), d.Message)

	if d.Code != diag.ObsTimings {
		writeSnippet(&sb, f, start, end, opts, pal)
	}

	if opts.ShowNotes {
		for _, n := range d.Notes {
			nf := fs.Get(n.Span.File)
			if nf == nil {
				fmt.Fprintf(&sb, "  %s %s\n", pal.note.Sprint("note:"), n.Msg)
				continue
			}
			ns, _ := fs.Resolve(n.Span)
			fmt.Fprintf(&sb, "  %s %s:%d:%d: %s\n", pal.note.Sprint("note:"),
				formatPath(fs, nf, opts.PathMode), ns.Line, ns.Col, n.Msg)
		}
	}
	_, err := io.WriteString(w, sb.String())
	return err
}

// writeSnippet prints the primary line with Context lines around it and an
// underline below the primary span.
func writeSnippet(sb *strings.Builder, f *source.File, start, end source.LineCol, opts PrettyOpts, pal palette) {
	first := int(start.Line) - max(opts.Context, 0)
	first = max(first, 1)
	last := int(start.Line) + max(opts.Context, 0)
	last = min(last, len(f.LineIdx)+1)
	gutter := len(fmt.Sprint(last))

	for n := first; n <= last; n++ {
		line := f.GetLine(uint32(n)) // #nosec G115 -- bounded by LineIdx
		if n != int(start.Line) && strings.TrimSpace(line) == "" {
			continue
		}
		display := expandTabs(line)
		if opts.Width > 0 {
			display = runewidth.Truncate(display, opts.Width, "…")
		}
		fmt.Fprintf(sb, "%s %s\n", pal.gutter.Sprintf("%*d |", gutter, n), display)
		if n != int(start.Line) {
			continue
		}

		prefix := line[:min(int(start.Col)-1, len(line))]
		pad := runewidth.StringWidth(expandTabs(prefix))
		width := 1
		if end.Line == start.Line && end.Col > start.Col {
			covered := line[min(int(start.Col)-1, len(line)):min(int(end.Col)-1, len(line))]
			width = max(runewidth.StringWidth(expandTabs(covered)), 1)
		} else if end.Line > start.Line {
			width = max(runewidth.StringWidth(expandTabs(line))-pad, 1)
		}
		if opts.Width > 0 && pad+width > opts.Width {
			width = max(opts.Width-pad, 1)
		}
		underline := "^" + strings.Repeat("~", width-1)
		fmt.Fprintf(sb, "%s %s%s\n", pal.gutter.Sprintf("%*s |", gutter, ""), strings.Repeat(" ", pad), pal.caret.Sprint(underline))
	}
}

func expandTabs(s string) string {
	return strings.ReplaceAll(s, "\t", "    ")
}
