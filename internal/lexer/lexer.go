package lexer

import (
	"mmfront/internal/diag"
	"mmfront/internal/source"
	"mmfront/internal/token"
)

// mode is the lexical context the next word is classified in.
type mode uint8

const (
	modeNormal    mode = iota
	modeProof          // after $=
	modeLabelList      // inside the ( ... ) of a compressed proof
	modeBody           // compressed proof letters after )
)

// region remembers an opened construct so EOF can report where it started.
type region struct {
	open source.Span
	ok   bool
}

// Lexer turns one file into a token sequence. It never looks at other files:
// inclusion is handled one level up.
type Lexer struct {
	file   *source.File
	cursor Cursor
	opts   Options

	mode    mode
	comment region // open $( while inside a comment
	resume  mode   // mode to restore at $)
	labels  region // open ( of a compressed label list

	look *lookahead // 1-element buffer
	err  error      // sticky failure
	done bool       // EOF already produced
}

type lookahead struct {
	tok token.Token
	err error
}

// New creates a lexer over file.
func New(file *source.File, opts Options) *Lexer {
	cur := NewCursor(file)
	cur.Off = min(opts.Offset, cur.Limit)
	return &Lexer{
		file:   file,
		cursor: cur,
		opts:   opts,
	}
}

// File returns the file being scanned.
func (lx *Lexer) File() *source.File { return lx.file }

// Next returns the next token. At the end of the file it returns exactly one
// EOF token per call, forever. After a failure every call returns the same
// error.
func (lx *Lexer) Next() (token.Token, error) {
	if lx.look != nil {
		la := *lx.look
		lx.look = nil
		return la.tok, la.err
	}
	if lx.err != nil {
		return token.Token{}, lx.err
	}

	tok, err := lx.scan()
	if err != nil {
		lx.err = err
		return token.Token{}, err
	}
	return tok, nil
}

// Peek returns the next token without consuming it.
func (lx *Lexer) Peek() (token.Token, error) {
	tok, err := lx.Next()
	lx.look = &lookahead{tok: tok, err: err}
	return tok, err
}

func (lx *Lexer) scan() (token.Token, error) {
	lx.cursor.SkipSpace()
	if lx.cursor.EOF() {
		return lx.scanEOF()
	}
	sp, text := lx.cursor.Word()

	if lx.comment.ok {
		return lx.commentWord(sp, text), nil
	}
	if text[0] == '$' {
		return lx.keyword(sp, text)
	}

	switch lx.mode {
	case modeProof:
		if text == "(" {
			lx.mode = modeLabelList
			lx.labels = region{open: sp, ok: true}
			return lx.tok(token.CompressedProofStart, sp, text), nil
		}
	case modeLabelList:
		if text == ")" {
			lx.mode = modeBody
			lx.labels = region{}
			return lx.tok(token.CompressedProofEnd, sp, text), nil
		}
	case modeBody:
		return lx.compressedPart(sp, text)
	}

	switch text {
	case "(":
		return lx.tok(token.CompressedProofStart, sp, text), nil
	case ")":
		return lx.tok(token.CompressedProofEnd, sp, text), nil
	}
	return lx.tok(token.Word, sp, text), nil
}

func (lx *Lexer) scanEOF() (token.Token, error) {
	if lx.comment.ok {
		return token.Token{}, lx.fail(diag.LexUnterminatedComment, lx.comment.open,
			"comment opened here is never closed with \"$)\"")
	}
	if lx.labels.ok {
		return token.Token{}, lx.fail(diag.LexUnterminatedCompressedProof, lx.labels.open,
			"compressed proof label list opened here is never closed with \")\"")
	}
	lx.done = true
	return token.Token{Kind: token.EOF, Span: lx.cursor.Here()}, nil
}

func (lx *Lexer) commentWord(sp source.Span, text string) token.Token {
	if text == "$)" {
		lx.comment = region{}
		lx.mode = lx.resume
		return lx.tok(token.KwCommentEnd, sp, text)
	}
	return lx.tok(token.CommentedLiteral, sp, text)
}

func (lx *Lexer) keyword(sp source.Span, text string) (token.Token, error) {
	kind, ok := token.LookupKeyword(text)
	if !ok {
		return token.Token{}, lx.fail(diag.LexUnknownKeyword, sp, "unknown keyword %q", text)
	}
	switch kind {
	case token.KwCommentStart:
		lx.comment = region{open: sp, ok: true}
		lx.resume = lx.mode
	case token.KwProof:
		lx.mode = modeProof
	case token.KwEnd:
		lx.mode = modeNormal
		lx.labels = region{}
	}
	return lx.tok(kind, sp, text), nil
}

// compressedPart validates one run of compressed proof letters.
func (lx *Lexer) compressedPart(sp source.Span, text string) (token.Token, error) {
	for i := 0; i < len(text); i++ {
		if !isCompressedByte(text[i]) {
			bad := source.Span{File: sp.File, Start: sp.Start + uint32(i), End: sp.Start + uint32(i) + 1}
			return token.Token{}, lx.fail(diag.LexBadCompressedProof, bad,
				"invalid character %q in compressed proof, expected 'A'..'Z' or '?'", text[i])
		}
	}
	return lx.tok(token.CompressedProofPart, sp, text), nil
}

func (lx *Lexer) tok(kind token.Kind, sp source.Span, text string) token.Token {
	return token.Token{Kind: kind, Span: sp, Text: text}
}

func (lx *Lexer) fail(code diag.Code, sp source.Span, format string, args ...any) error {
	return diag.Errorf(code, sp, lx.file.Path, format, args...)
}

// Done reports whether the EOF token has been produced.
func (lx *Lexer) Done() bool { return lx.done }
