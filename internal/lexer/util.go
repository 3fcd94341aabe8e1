package lexer

// isSpace matches the whitespace that separates tokens: space, tab, line
// feed, carriage return and form feed.
func isSpace(b byte) bool {
	switch b {
	case ' ', '\t', '\n', '\r', '\f':
		return true
	default:
		return false
	}
}

func isWordByte(b byte) bool { return !isSpace(b) }

// isCompressedByte matches the alphabet of compressed proof bodies. '?' marks
// an unknown step.
func isCompressedByte(b byte) bool {
	return (b >= 'A' && b <= 'Z') || b == '?'
}
