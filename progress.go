package crx

// ProgressEvent represents a progress update during parsing, bulk
// content decoding, or searching.
type ProgressEvent struct {
	// Stage identifies the current phase of the operation.
	Stage ProgressStage

	// Path is the file currently being processed, if applicable.
	Path string

	// FilesDone is the number of files completed.
	FilesDone int

	// FilesTotal is the total number of files.
	// Zero indicates the total is unknown.
	FilesTotal int

	// BytesDone is the number of bytes completed in the current operation.
	BytesDone uint64

	// BytesTotal is the total bytes for the current operation.
	// Zero indicates the total is unknown.
	BytesTotal uint64
}

// ProgressStage identifies the current phase of an operation.
type ProgressStage uint8

const (
	// StageParsing indicates the package header and archive directory
	// are being decoded.
	StageParsing ProgressStage = iota

	// StageDecoding indicates member contents are being decoded.
	StageDecoding

	// StageSearching indicates decoded contents are being scanned.
	StageSearching
)

// String returns the string representation of the stage.
func (s ProgressStage) String() string {
	switch s {
	case StageParsing:
		return "parsing"
	case StageDecoding:
		return "decoding"
	case StageSearching:
		return "searching"
	default:
		return "unknown"
	}
}

// ProgressFunc receives progress updates during operations.
// Implementations must be safe for concurrent calls.
type ProgressFunc func(ProgressEvent)
