package diagfmt

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/mattn/go-runewidth"
	"github.com/vmihailenco/msgpack/v5"

	"mmfront/internal/parser"
	"mmfront/internal/source"
)

// ProductionOutput is the exported form of one production.
type ProductionOutput struct {
	Category string        `json:"category" msgpack:"category"`
	Label    string        `json:"label,omitempty" msgpack:"label,omitempty"`
	Location LocationJSON  `json:"location" msgpack:"location"`
	Tokens   []TokenOutput `json:"tokens" msgpack:"tokens"`
}

// ProductionsOutput is the root object of JSON and msgpack exports.
type ProductionsOutput struct {
	Root        string             `json:"root" msgpack:"root"`
	Productions []ProductionOutput `json:"productions" msgpack:"productions"`
	Count       int                `json:"count" msgpack:"count"`
}

// BuildProductionsOutput converts productions for export.
func BuildProductionsOutput(prods []parser.Production, fs *source.FileSet, root source.FileID) ProductionsOutput {
	out := ProductionsOutput{
		Productions: make([]ProductionOutput, 0, len(prods)),
		Count:       len(prods),
	}
	if f := fs.Get(root); f != nil {
		out.Root = f.Path
	}
	for _, p := range prods {
		po := ProductionOutput{
			Category: p.Category().String(),
			Label:    p.Label(),
			Location: makeLocation(p.Span(), fs, PathModeBasename, true),
			Tokens:   make([]TokenOutput, 0, len(p.Tokens)),
		}
		for _, tok := range p.Tokens {
			po.Tokens = append(po.Tokens, makeToken(tok, fs, false))
		}
		out.Productions = append(out.Productions, po)
	}
	return out
}

// FormatProductionsPretty prints one production per line, truncated to
// width display columns when width > 0:
//
//	db.mm:6:3   assertion    ax-1 $a |- ( ph -> ps ) $.
func FormatProductionsPretty(w io.Writer, prods []parser.Production, fs *source.FileSet, width int) error {
	for _, p := range prods {
		loc := "?"
		if f := fs.Get(p.Span().File); f != nil {
			start, _ := fs.Resolve(p.Span())
			loc = fmt.Sprintf("%s:%d:%d", f.DisplayPath(source.PathBase, ""), start.Line, start.Col)
		}
		text := strings.Join(p.Texts(), " ")
		if text == "" {
			text = "<end of file>"
		}
		line := fmt.Sprintf("%-16s %-12s %s", loc, p.Category(), text)
		if width > 0 {
			line = runewidth.Truncate(line, width, "…")
		}
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}
	return nil
}

// FormatProductionsJSON writes the productions as an indented JSON document.
func FormatProductionsJSON(w io.Writer, prods []parser.Production, fs *source.FileSet, root source.FileID) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(BuildProductionsOutput(prods, fs, root))
}

// FormatProductionsMsgpack writes the productions as one msgpack value, the
// compact form for downstream verifiers.
func FormatProductionsMsgpack(w io.Writer, prods []parser.Production, fs *source.FileSet, root source.FileID) error {
	enc := msgpack.NewEncoder(w)
	enc.UseCompactInts(true)
	return enc.Encode(BuildProductionsOutput(prods, fs, root))
}

// DecodeProductionsMsgpack reads a value written by FormatProductionsMsgpack.
func DecodeProductionsMsgpack(r io.Reader) (ProductionsOutput, error) {
	var out ProductionsOutput
	if err := msgpack.NewDecoder(r).Decode(&out); err != nil {
		return ProductionsOutput{}, fmt.Errorf("decode productions: %w", err)
	}
	return out, nil
}
