package diag

import (
	"fmt"
)

// Code identifies a diagnostic. The thousands digit selects the family and
// the ID prefix: 1 lexer, 2 production builder, 4 IO, 5 inclusion, 6 observability.
type Code uint16

const (
	UnknownCode Code = 0

	// lexer
	LexUnknownKeyword              Code = 1001
	LexUnterminatedComment         Code = 1002
	LexUnterminatedCompressedProof Code = 1003
	LexBadCompressedProof          Code = 1004

	// production builder
	SynUnexpectedToken       Code = 2001
	SynUnterminatedStatement Code = 2002
	SynUnterminatedScope     Code = 2003
	SynUnterminatedComment   Code = 2004
	SynUnmatchedScopeEnd     Code = 2005
	SynProofOutsideProvable  Code = 2006
	SynEmptyStatement        Code = 2007
	SynMissingAssertion      Code = 2008

	// loading
	IOLoadFileError    Code = 4001
	IONotFound         Code = 4002
	IOPermissionDenied Code = 4003
	IODecodeError      Code = 4004

	// inclusion
	IncMalformedInclusion Code = 5001
	IncCyclicInclusion    Code = 5002
	IncRepeatedInclusion  Code = 5003
	IncTooDeep            Code = 5004

	ObsTimings Code = 6001
)

var codeTitles = map[Code]string{
	UnknownCode:                    "Unknown error",
	LexUnknownKeyword:              "Unknown keyword",
	LexUnterminatedComment:         "Unterminated comment",
	LexUnterminatedCompressedProof: "Unterminated compressed proof label list",
	LexBadCompressedProof:          "Invalid character in compressed proof",
	SynUnexpectedToken:             "Unexpected token",
	SynUnterminatedStatement:       "Unterminated statement",
	SynUnterminatedScope:           "Unterminated scope",
	SynUnterminatedComment:         "Unterminated comment",
	SynUnmatchedScopeEnd:           "Scope end without matching scope start",
	SynProofOutsideProvable:        "Proof outside of a provable assertion",
	SynEmptyStatement:              "Statement has no body",
	SynMissingAssertion:            "Label is not followed by an assertion keyword",
	IOLoadFileError:                "Failed to load file",
	IONotFound:                     "File not found",
	IOPermissionDenied:             "Permission denied",
	IODecodeError:                  "File is not valid text",
	IncMalformedInclusion:          "Malformed inclusion directive",
	IncCyclicInclusion:             "Cyclic inclusion",
	IncRepeatedInclusion:           "File included more than once",
	IncTooDeep:                     "Inclusion nesting too deep",
	ObsTimings:                     "Pipeline timings",
}

var familyPrefix = [...]string{1: "LEX", 2: "SYN", 4: "IO", 5: "INC", 6: "OBS"}

// ID is the stable identifier, e.g. LEX1001.
func (c Code) ID() string {
	prefix := "E"
	if fam := int(c) / 1000; fam < len(familyPrefix) && familyPrefix[fam] != "" {
		prefix = familyPrefix[fam]
	}
	return fmt.Sprintf("%s%04d", prefix, int(c))
}

// Title is a short description of the code.
func (c Code) Title() string {
	if title, ok := codeTitles[c]; ok {
		return title
	}
	return codeTitles[UnknownCode]
}

func (c Code) String() string {
	return fmt.Sprintf("[%s]: %s", c.ID(), c.Title())
}
