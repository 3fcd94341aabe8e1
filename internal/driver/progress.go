package driver

import "time"

// Stage is a phase of processing one database.
type Stage string

const (
	// StageLoad reads the top-level file.
	StageLoad Stage = "load"
	// StageParse tokenizes, resolves inclusions and builds productions.
	StageParse Stage = "parse"
	// StageDigest hashes every file the database pulled in.
	StageDigest Stage = "digest"
)

// Status captures progress state within a stage.
type Status string

const (
	// StatusQueued indicates the database is waiting for a worker.
	StatusQueued Status = "queued"
	// StatusWorking indicates the database is in Stage.
	StatusWorking Status = "working"
	// StatusDone indicates the database was processed without a fault.
	StatusDone Status = "done"
	// StatusError indicates processing stopped at a fault.
	StatusError Status = "error"
)

// Event reports progress for one database.
type Event struct {
	Path        string
	Stage       Stage
	Status      Status
	Err         error
	Elapsed     time.Duration
	Productions int
	Cached      bool
}

// ProgressSink consumes progress events. Check calls OnEvent from several
// goroutines.
type ProgressSink interface {
	OnEvent(Event)
}

// ChannelSink forwards events into a channel.
type ChannelSink struct {
	Ch chan<- Event
}

func (s ChannelSink) OnEvent(evt Event) {
	if s.Ch == nil {
		return
	}
	s.Ch <- evt
}

// SinkFunc adapts a function to ProgressSink.
type SinkFunc func(Event)

func (f SinkFunc) OnEvent(evt Event) { f(evt) }
