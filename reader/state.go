package reader

import "sync/atomic"

// State is the operating state of the reader.
type State int32

const (
	Idle State = iota
	CardDetected
	Success
	Error
)

func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case CardDetected:
		return "card detected"
	case Success:
		return "success"
	case Error:
		return "error"
	}
	return "unknown"
}

// Register holds the current State. Any unit may Load it, only the Presenter stores into it.
type Register struct {
	v atomic.Int32
}

func (r *Register) Load() State {
	return State(r.v.Load())
}

func (r *Register) store(s State) {
	r.v.Store(int32(s))
}
