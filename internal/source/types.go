package source

// FileID indexes a File in its FileSet. IDs start at 0 and are never reused.
type FileID uint32

// FileFlags records how a file's content was obtained.
type FileFlags uint8

const (
	FileVirtual        FileFlags = 1 << iota // added from memory, not read from disk
	FileHadBOM                               // a UTF-8 byte order mark was stripped
	FileNormalizedCRLF                       // \r\n line ends were folded to \n
)

// File is one loaded SourceText. Every inclusion instance is its own File,
// even when the path repeats.
type File struct {
	ID      FileID
	Path    string // slash-separated, absolute for files read from disk
	Content []byte
	LineIdx []uint32 // offsets of '\n'
	Hash    [32]byte // sha256 of Content
	Flags   FileFlags
}

// LineCol is a 1-based line and column pair.
type LineCol struct {
	Line uint32
	Col  uint32
}

// Position is what downstream tools get for an offset: the owning path,
// a 1-based line and a 0-based column.
type Position struct {
	File   FileID
	Path   string
	Line   uint32 // 1-based
	Column uint32 // 0-based
}
