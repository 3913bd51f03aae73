package source

type (
	// FileID uniquely identifies a document within a FileSet.
	FileID uint32
	// FileFlags encodes metadata about a document.
	FileFlags uint8
)

const (
	// FileVirtual indicates the document was added from memory (test case, stdin).
	FileVirtual FileFlags = 1 << iota
	// FileHadBOM indicates a UTF-8 BOM was stripped on load.
	FileHadBOM
)

// File captures metadata and content for a single document.
// Content is kept byte-for-byte as supplied: line endings are never
// normalized, because span offsets and rendered diffs must match the
// original text exactly.
type File struct {
	ID      FileID
	Path    string
	Content []byte
	LineIdx []uint32
	Flags   FileFlags
}

// LineCol represents a human-readable position in a document.
type LineCol struct {
	Line uint32 // 1-based
	Col  uint32 // 1-based
}
