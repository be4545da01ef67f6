package memory

import "errors"

var ErrInvalidState = errors.New("invalid pipeline state")

type State int

const (
	StateIdle State = iota
	StateCorpusLoaded
	StateIndexed
	StateQueried
	StateCompleted
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateCorpusLoaded:
		return "corpus_loaded"
	case StateIndexed:
		return "indexed"
	case StateQueried:
		return "queried"
	case StateCompleted:
		return "completed"
	default:
		return "unknown"
	}
}
