// Package telemetry records operational events from the encounter engine,
// such as conversion fallbacks and content warnings.
package telemetry

import (
	"context"
	"time"
)

// Severity describes the telemetry severity level.
type Severity string

const (
	SeverityInfo  Severity = "INFO"
	SeverityWarn  Severity = "WARN"
	SeverityError Severity = "ERROR"
)

// Event is one recorded telemetry event.
type Event struct {
	Severity  Severity
	Component string
	Message   string
	Metadata  map[string]string
	Timestamp time.Time
}

// EventStore persists telemetry events.
type EventStore interface {
	AppendEvent(ctx context.Context, evt Event) error
}

// Emitter records operational telemetry events.
type Emitter struct {
	store EventStore
	clock func() time.Time
}

// NewEmitter creates a new telemetry emitter.
func NewEmitter(store EventStore) *Emitter {
	return &Emitter{store: store, clock: time.Now}
}

// Emit records a telemetry event. It is a no-op when the emitter or its
// store is nil, so library callers without a store pay nothing.
func (e *Emitter) Emit(ctx context.Context, evt Event) error {
	if e == nil || e.store == nil {
		return nil
	}
	if evt.Timestamp.IsZero() {
		if e.clock == nil {
			evt.Timestamp = time.Now().UTC()
		} else {
			evt.Timestamp = e.clock().UTC()
		}
	}
	return e.store.AppendEvent(ctx, evt)
}

// Warn records a WARN event from the given component. Store errors are
// dropped: a telemetry failure must never interrupt battle setup.
func (e *Emitter) Warn(ctx context.Context, component, message string, metadata map[string]string) {
	_ = e.Emit(ctx, Event{
		Severity:  SeverityWarn,
		Component: component,
		Message:   message,
		Metadata:  metadata,
	})
}
