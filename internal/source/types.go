package source

type (
	// FileID uniquely identifies a source file within a FileSet.
	FileID uint32
	// FileFlags encodes metadata about a source file.
	FileFlags uint8
)

const (
	// FileVirtual indicates the file was added from memory (test, stdin, etc.).
	FileVirtual FileFlags = 1 << iota
	// FileHadBOM marks content whose byte order mark was stripped while decoding.
	FileHadBOM
	// FileNormalizedCRLF marks content where \r\n pairs were folded into \n.
	FileNormalizedCRLF
	// FileLossyDecode marks content where the decoder substituted U+FFFD
	// for bytes that are invalid in the declared charset.
	FileLossyDecode
)

// File captures metadata and decoded content for a single translation file.
// Content is always UTF-8; offsets in Span refer to it, not to the raw bytes.
type File struct {
	ID      FileID
	Path    string
	Charset string
	Content []byte
	LineIdx []uint32 // offsets of every '\n'
	Hash    [32]byte
	Flags   FileFlags
}

// LineCol represents a human-readable position in a source file.
type LineCol struct {
	Line uint32 // 1-based
	Col  uint32 // 1-based, in bytes
}
