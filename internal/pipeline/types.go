package pipeline

import "time"

// Stage describes a phase of processing one input file.
type Stage string

const (
	// StageDecode reads the file and converts it to UTF-8.
	StageDecode Stage = "decode"
	// StageParse is the lexing and parsing stage.
	StageParse Stage = "parse"
	// StageCompare projects entries and diffs the two files.
	StageCompare Stage = "compare"
)

// Status captures progress state within a stage.
type Status string

const (
	// StatusQueued indicates the task is waiting to start.
	StatusQueued Status = "queued"
	// StatusWorking indicates the task is currently working.
	StatusWorking Status = "working"
	// StatusDone indicates the task is done.
	StatusDone Status = "done"
	// StatusError indicates the task encountered an error.
	StatusError Status = "error"
)

// Event reports progress for a file (or for the whole comparison when File is empty).
type Event struct {
	File    string
	Stage   Stage
	Status  Status
	Err     error
	Elapsed time.Duration
}

// ProgressSink consumes progress events.
type ProgressSink interface {
	OnEvent(Event)
}

// Emit forwards evt to sink when one is set.
func Emit(sink ProgressSink, evt Event) {
	if sink != nil {
		sink.OnEvent(evt)
	}
}
