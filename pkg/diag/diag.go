// Package diag carries the optional diagnostics callback threaded through
// the placement pipeline. The sink replaces ad hoc logging in the hot
// path; a nil sink costs one branch.
package diag

import "fmt"

// Event is one diagnostic emitted by a pipeline stage.
type Event struct {
	Stage   string // e.g. "shadow", "cluster", "merge"
	Message string
}

// Sink receives diagnostic events. May be nil.
type Sink func(Event)

// Emit formats and delivers an event. Safe to call on a nil sink.
func (s Sink) Emit(stage, format string, args ...interface{}) {
	if s == nil {
		return
	}
	s(Event{Stage: stage, Message: fmt.Sprintf(format, args...)})
}
