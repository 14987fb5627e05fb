package recorder

import "time"

// TurnEvent is the outcome of one chat turn. It carries no message content
// and no indicator values.
type TurnEvent struct {
	SessionID string
	Branch    string // "direct", "function" or "error"
	Function  string // catalog function name, if one was dispatched
	ErrorKind string // customerrors.Kind of the failure, if any
	Duration  time.Duration
}

// TurnStats aggregates recorded turns.
type TurnStats struct {
	Total     int
	Direct    int
	Function  int
	Errors    int
	Functions map[string]int
}

// Recorder journals turn outcomes for operational analysis.
type Recorder interface {
	RecordTurn(evt *TurnEvent) error
	Stats() (TurnStats, error)
	Close() error
}
