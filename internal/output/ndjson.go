// Package output emits machine-readable NDJSON events so agents and
// scripts can consume haptctl without scraping text.
package output

import (
	"encoding/json"
	"io"
	"time"
)

// SchemaVersion identifies the event schema emitted by this build.
const SchemaVersion = 1

// Ready is emitted once a device has been probed and a session opened.
type Ready struct {
	Type          string `json:"type"`          // "ready"
	SchemaVersion int    `json:"schemaVersion"` // 1
	Supported     bool   `json:"supported"`
	DeviceDir     string `json:"device_dir,omitempty"`
	Timestamp     string `json:"timestamp"` // ISO8601
}

// StateChange is emitted on every active-flag transition.
type StateChange struct {
	Type          string `json:"type"`          // "state"
	SchemaVersion int    `json:"schemaVersion"` // 1
	Supported     bool   `json:"supported"`
	Active        bool   `json:"active"`
	Timestamp     string `json:"timestamp"`
}

// PatternEntry describes one preset in a table listing.
type PatternEntry struct {
	Type          string `json:"type"`          // "pattern"
	SchemaVersion int    `json:"schemaVersion"` // 1
	Name          string `json:"name"`
	Segments      []int  `json:"segments,omitempty"`
	DurationMs    int    `json:"duration_ms,omitempty"`
	TotalMs       int    `json:"total_ms"`
}

// Done is emitted when a command finishes.
type Done struct {
	Type          string `json:"type"`          // "done"
	SchemaVersion int    `json:"schemaVersion"` // 1
	Reason        string `json:"reason"`        // "completed", "stopped", "timeout", "no_wait"
	Timestamp     string `json:"timestamp"`
}

// Error is the machine-readable failure event.
type Error struct {
	Type          string `json:"type"`          // "error"
	SchemaVersion int    `json:"schemaVersion"` // 1
	Code          string `json:"code"`
	Message       string `json:"message"`
	Hint          string `json:"hint,omitempty"`
}

// NDJSONWriter writes one JSON event per line.
type NDJSONWriter struct {
	enc *json.Encoder
}

// NewNDJSONWriter creates a writer emitting to w.
func NewNDJSONWriter(w io.Writer) *NDJSONWriter {
	return &NDJSONWriter{enc: json.NewEncoder(w)}
}

// WriteReady emits a ready event.
func (w *NDJSONWriter) WriteReady(supported bool, deviceDir string) error {
	return w.enc.Encode(&Ready{
		Type:          "ready",
		SchemaVersion: SchemaVersion,
		Supported:     supported,
		DeviceDir:     deviceDir,
		Timestamp:     now(),
	})
}

// WriteState emits a state transition event.
func (w *NDJSONWriter) WriteState(supported, active bool) error {
	return w.enc.Encode(&StateChange{
		Type:          "state",
		SchemaVersion: SchemaVersion,
		Supported:     supported,
		Active:        active,
		Timestamp:     now(),
	})
}

// WritePattern emits one preset table entry.
func (w *NDJSONWriter) WritePattern(name string, segments []int, durationMs, totalMs int) error {
	return w.enc.Encode(&PatternEntry{
		Type:          "pattern",
		SchemaVersion: SchemaVersion,
		Name:          name,
		Segments:      segments,
		DurationMs:    durationMs,
		TotalMs:       totalMs,
	})
}

// WriteDone emits a completion event.
func (w *NDJSONWriter) WriteDone(reason string) error {
	return w.enc.Encode(&Done{
		Type:          "done",
		SchemaVersion: SchemaVersion,
		Reason:        reason,
		Timestamp:     now(),
	})
}

// WriteError emits a failure event with an optional hint.
func (w *NDJSONWriter) WriteError(code, message string, hint ...string) error {
	e := &Error{
		Type:          "error",
		SchemaVersion: SchemaVersion,
		Code:          code,
		Message:       message,
	}
	if len(hint) > 0 {
		e.Hint = hint[0]
	}
	return w.enc.Encode(e)
}

func now() string {
	return time.Now().UTC().Format(time.RFC3339)
}
