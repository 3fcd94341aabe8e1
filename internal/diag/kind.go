package diag

// Kind groups codes into the failure families a caller branches on.
type Kind uint8

const (
	KindUnknown Kind = iota
	// KindIO: the file is missing, unreadable or not text.
	KindIO
	// KindUnknownKeyword: a '$' word outside the fixed keyword set.
	KindUnknownKeyword
	// KindUnterminatedRegion: a comment, compressed proof, statement or scope left open.
	KindUnterminatedRegion
	// KindMalformedInclusion: wrong token shape around '$[ ... $]'.
	KindMalformedInclusion
	// KindCyclicInclusion: the file is already open on the inclusion stack.
	KindCyclicInclusion
	// KindMalformedProof: a compressed proof body with characters outside A-Z.
	KindMalformedProof
	// KindSyntax: any other misplaced token.
	KindSyntax
)

func (k Kind) String() string {
	switch k {
	case KindIO:
		return "IoError"
	case KindUnknownKeyword:
		return "UnknownKeyword"
	case KindUnterminatedRegion:
		return "UnterminatedRegion"
	case KindMalformedInclusion:
		return "MalformedInclusion"
	case KindCyclicInclusion:
		return "CyclicInclusion"
	case KindMalformedProof:
		return "MalformedProof"
	case KindSyntax:
		return "SyntaxError"
	default:
		return "Unknown"
	}
}

// Kind returns the failure family of c.
func (c Code) Kind() Kind {
	switch c {
	case IOLoadFileError, IONotFound, IOPermissionDenied, IODecodeError:
		return KindIO
	case LexUnknownKeyword:
		return KindUnknownKeyword
	case LexUnterminatedComment, LexUnterminatedCompressedProof,
		SynUnterminatedStatement, SynUnterminatedScope, SynUnterminatedComment:
		return KindUnterminatedRegion
	case IncMalformedInclusion:
		return KindMalformedInclusion
	case IncCyclicInclusion:
		return KindCyclicInclusion
	case LexBadCompressedProof:
		return KindMalformedProof
	case SynUnexpectedToken, SynUnmatchedScopeEnd, SynProofOutsideProvable,
		SynEmptyStatement, SynMissingAssertion, IncRepeatedInclusion, IncTooDeep:
		return KindSyntax
	default:
		return KindUnknown
	}
}
