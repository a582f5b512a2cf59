package driver

import "time"

// Stage describes a high-level pipeline phase.
type Stage string

const (
	// StageParse is the schema parsing stage.
	StageParse Stage = "parse"
	// StageValidate is the diagnostic stage.
	StageValidate Stage = "validate"
	// StageGenerate is the header rendering stage.
	StageGenerate Stage = "generate"
	// StageWrite is the output writing stage.
	StageWrite Stage = "write"
)

// Status captures progress state within a stage.
type Status string

const (
	// StatusQueued indicates the packet is waiting to start.
	StatusQueued Status = "queued"
	// StatusWorking indicates the packet is currently processed.
	StatusWorking Status = "working"
	// StatusDone indicates the packet finished the stage.
	StatusDone Status = "done"
	// StatusError indicates the packet failed the stage.
	StatusError Status = "error"
)

// Event reports progress for one packet (or for the overall batch when
// Packet is empty).
type Event struct {
	Packet  string
	Stage   Stage
	Status  Status
	Err     error
	Elapsed time.Duration
}

// ProgressSink consumes progress events.
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

// NopSink discards events.
type NopSink struct{}

func (NopSink) OnEvent(Event) {}
