package source

import "slices"

// Text returns the source bytes covered by span as a string.
func (f *File) Text(span Span) string {
	if span.File != f.ID || span.Start > span.End || int(span.End) > len(f.Content) {
		return ""
	}
	return string(f.Content[span.Start:span.End])
}

// GetLine returns line n (1-based) without its newline, or "" past the end.
func (f *File) GetLine(n uint32) string {
	if n == 0 || int(n) > len(f.LineIdx)+1 {
		return ""
	}
	start := uint32(0)
	if n > 1 {
		start = f.LineIdx[n-2] + 1
	}
	end := uint32(len(f.Content)) // #nosec G115 -- Add rejects content over 4 GiB
	if int(n) <= len(f.LineIdx) {
		end = f.LineIdx[n-1]
	}
	return string(f.Content[start:end])
}

// lineCol converts off into a 1-based pair. A newline belongs to the line it ends.
func (f *File) lineCol(off uint32) LineCol {
	line, _ := slices.BinarySearch(f.LineIdx, off)
	var lineStart uint32
	if line > 0 {
		lineStart = f.LineIdx[line-1] + 1
	}
	return LineCol{Line: uint32(line) + 1, Col: off - lineStart + 1} // #nosec G115 -- line <= len(Content)
}

func buildLineIndex(content []byte) []uint32 {
	var idx []uint32
	for i, b := range content {
		if b == '\n' {
			idx = append(idx, uint32(i)) // #nosec G115 -- Add rejects content over 4 GiB
		}
	}
	return idx
}
