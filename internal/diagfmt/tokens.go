package diagfmt

import (
	"encoding/json"
	"fmt"
	"io"

	"mmfront/internal/source"
	"mmfront/internal/token"
)

// TokenOutput is one token in JSON output.
type TokenOutput struct {
	Kind     string       `json:"kind" msgpack:"kind"`
	Text     string       `json:"text,omitempty" msgpack:"text,omitempty"`
	Location LocationJSON `json:"location" msgpack:"location"`
}

func makeToken(tok token.Token, fs *source.FileSet, positions bool) TokenOutput {
	return TokenOutput{
		Kind:     tok.Kind.String(),
		Text:     tok.Text,
		Location: makeLocation(tok.Span, fs, PathModeBasename, positions),
	}
}

// FormatTokensPretty prints one token per line:
//
//	3: KwConstant      "$c" at db.mm:1:1-1:3
//
// Every EOF token is printed, so included file boundaries stay visible.
func FormatTokensPretty(w io.Writer, tokens []token.Token, fs *source.FileSet) error {
	for i, tok := range tokens {
		startPos, endPos := fs.Resolve(tok.Span)
		path := "?"
		if f := fs.Get(tok.Span.File); f != nil {
			path = f.DisplayPath(source.PathBase, "")
		}
		text := ""
		if tok.Text != "" {
			text = fmt.Sprintf(" %q", tok.Text)
		}
		if _, err := fmt.Fprintf(w, "%4d: %-20s%s at %s:%d:%d-%d:%d\n", i+1, tok.Kind, text,
			path, startPos.Line, startPos.Col, endPos.Line, endPos.Col); err != nil {
			return err
		}
	}
	return nil
}

// FormatTokensJSON writes the tokens as an indented JSON array.
func FormatTokensJSON(w io.Writer, tokens []token.Token, fs *source.FileSet) error {
	output := make([]TokenOutput, 0, len(tokens))
	for _, tok := range tokens {
		output = append(output, makeToken(tok, fs, true))
	}
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(output)
}
