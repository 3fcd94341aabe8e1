package lexer

// Options tune a Lexer.
type Options struct {
	// Offset is the byte offset scanning starts from. Offsets past the end
	// of the file are clamped.
	Offset uint32
}
