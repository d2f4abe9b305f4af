// Package analytics emits classification and search telemetry events.
// Emission is observability only: it must never affect control flow and no
// caller may depend on it for correctness.
package analytics

import "go.uber.org/zap"

// Event names.
const (
	EventClassification = "classification"
	EventNameSearch     = "name_search"
)

// Event is one telemetry record.
type Event struct {
	Name   string
	Fields []zap.Field
}

// Emitter receives telemetry events.
type Emitter interface {
	Emit(e Event)
}

// LogEmitter writes events to the global zap logger.
type LogEmitter struct{}

func (LogEmitter) Emit(e Event) {
	zap.L().Info(e.Name, e.Fields...)
}

// Nop discards all events.
type Nop struct{}

func (Nop) Emit(Event) {}

// Recorder collects events in memory for tests.
type Recorder struct {
	Events []Event
}

func (r *Recorder) Emit(e Event) {
	r.Events = append(r.Events, e)
}
