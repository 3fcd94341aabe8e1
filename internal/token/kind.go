package token

// Kind represents the category of a database token.
type Kind uint8

const (
	// Invalid indicates an erroneous token.
	Invalid Kind = iota
	// EOF marks the end of one file's contribution to the token stream.
	EOF

	// KwCommentStart represents the '$(' keyword.
	KwCommentStart // $(
	// KwCommentEnd represents the '$)' keyword.
	KwCommentEnd // $)
	// KwFileInclusionStart represents the '$[' keyword.
	KwFileInclusionStart // $[
	// KwFileInclusionEnd represents the '$]' keyword.
	KwFileInclusionEnd // $]
	// KwScopeStart represents the '${' keyword.
	KwScopeStart // ${
	// KwScopeEnd represents the '$}' keyword.
	KwScopeEnd // $}
	// KwConstant starts a constant declaration.
	KwConstant // $c
	// KwVariable starts a variable declaration.
	KwVariable // $v
	// KwDisjoint starts a distinct-variable condition.
	KwDisjoint // $d
	// KwAxiom starts an axiomatic assertion.
	KwAxiom // $a
	// KwProvable starts a provable assertion.
	KwProvable // $p
	// KwProof starts the proof of a provable assertion.
	KwProof // $=
	// KwEnd terminates a statement.
	KwEnd // $.

	// Word is a bare word whose role is not decided yet.
	Word
	// Label names a statement or a proof step.
	Label
	// MathSymbol is a symbol inside a formal expression.
	MathSymbol
	// CommentedLiteral is a word inside a comment.
	CommentedLiteral
	// CompressedProofStart opens the label list of a compressed proof.
	CompressedProofStart // (
	// CompressedProofEnd closes the label list of a compressed proof.
	CompressedProofEnd // )
	// CompressedProofPart is a raw run of compressed proof letters.
	CompressedProofPart
)

var kindNames = [...]string{
	Invalid:              "Invalid",
	EOF:                  "EOF",
	KwCommentStart:       "KwCommentStart",
	KwCommentEnd:         "KwCommentEnd",
	KwFileInclusionStart: "KwFileInclusionStart",
	KwFileInclusionEnd:   "KwFileInclusionEnd",
	KwScopeStart:         "KwScopeStart",
	KwScopeEnd:           "KwScopeEnd",
	KwConstant:           "KwConstant",
	KwVariable:           "KwVariable",
	KwDisjoint:           "KwDisjoint",
	KwAxiom:              "KwAxiom",
	KwProvable:           "KwProvable",
	KwProof:              "KwProof",
	KwEnd:                "KwEnd",
	Word:                 "Word",
	Label:                "Label",
	MathSymbol:           "MathSymbol",
	CommentedLiteral:     "CommentedLiteral",
	CompressedProofStart: "CompressedProofStart",
	CompressedProofEnd:   "CompressedProofEnd",
	CompressedProofPart:  "CompressedProofPart",
}

func (k Kind) String() string {
	if int(k) < len(kindNames) && kindNames[k] != "" {
		return kindNames[k]
	}
	return "Kind(?)"
}

// IsEOF reports whether k is the synthetic end-of-file marker.
func (k Kind) IsEOF() bool { return k == EOF }

// IsKeyword reports whether k is one of the 13 '$' keywords.
func (k Kind) IsKeyword() bool {
	return k >= KwCommentStart && k <= KwEnd
}

// HasText reports whether tokens of kind k must carry non-empty text.
func (k Kind) HasText() bool {
	switch k {
	case Word, Label, MathSymbol, CommentedLiteral, CompressedProofPart:
		return true
	default:
		return false
	}
}

// Literal returns the fixed spelling of keyword and punctuation kinds,
// or "" for kinds whose text varies.
func (k Kind) Literal() string {
	switch k {
	case CompressedProofStart:
		return "("
	case CompressedProofEnd:
		return ")"
	}
	if k.IsKeyword() {
		return keywordSpelling[k-KwCommentStart]
	}
	return ""
}
