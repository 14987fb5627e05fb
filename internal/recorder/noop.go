package recorder

// NoopRecorder is a no-op implementation used when SQLite is not configured.
type NoopRecorder struct{}

func NewNoopRecorder() *NoopRecorder { return &NoopRecorder{} }

func (n *NoopRecorder) RecordTurn(_ *TurnEvent) error { return nil }
func (n *NoopRecorder) Stats() (TurnStats, error)     { return TurnStats{Functions: map[string]int{}}, nil }
func (n *NoopRecorder) Close() error                  { return nil }
