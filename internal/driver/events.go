package driver

import "time"

// Stage is the step a file is in.
type Stage uint8

const (
	StageLoad Stage = iota + 1
	StageParse
	StageBind
)

func (s Stage) String() string {
	switch s {
	case StageLoad:
		return "loading"
	case StageParse:
		return "parsing"
	case StageBind:
		return "binding"
	}
	return ""
}

type Status uint8

const (
	StatusQueued Status = iota + 1
	StatusWorking
	StatusDone
	StatusCached
	StatusError
)

// Event reports progress of one file, or of the whole run when File is
// empty. Consumers must not block.
type Event struct {
	File    string
	Stage   Stage
	Status  Status
	Elapsed time.Duration
}

// Observer receives events. It is called from worker goroutines.
type Observer func(Event)

func (o Observer) emit(ev Event) {
	if o != nil {
		o(ev)
	}
}
