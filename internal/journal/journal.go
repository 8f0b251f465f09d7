// Package journal provides a JSONL event stream for recording schedule
// recomputations. Each run, validation failure, and leveling delay is
// recorded as a structured JSON event, so a sequence of edits to a
// project stays auditable and diffable. The scheduling core itself
// never writes here; the CLI records events around its calls.
package journal

import (
	"encoding/json"
	"fmt"
	"os"
	"sync"
	"time"
)

// Event kinds identify the type of journal event.
const (
	KindRunStart         = "run_start"
	KindRunDone          = "run_done"
	KindValidationFailed = "validation_failed"
	KindTaskDelayed      = "task_delayed"
	KindTaskPinned       = "task_pinned"
)

// Event represents a single journal record.
type Event struct {
	Timestamp time.Time `json:"ts"`
	Kind      string    `json:"kind"`
	Project   string    `json:"project,omitempty"`
	TaskID    string    `json:"task,omitempty"`
	Data      any       `json:"data,omitempty"`
}

// Writer appends journal events to a JSONL file. It is safe for
// concurrent use. A nil *Writer is a valid no-op writer.
type Writer struct {
	file *os.File
	enc  *json.Encoder
	mu   sync.Mutex
}

// Open creates a Writer appending to the file at path, creating it if
// needed.
func Open(path string) (*Writer, error) {
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, fmt.Errorf("journal: open %s: %w", path, err)
	}
	return &Writer{file: f, enc: json.NewEncoder(f)}, nil
}

// Record writes a single event. Recording on a nil Writer is a no-op.
func (w *Writer) Record(evt Event) error {
	if w == nil {
		return nil
	}
	w.mu.Lock()
	defer w.mu.Unlock()
	if err := w.enc.Encode(evt); err != nil {
		return fmt.Errorf("journal: encode event: %w", err)
	}
	return nil
}

// Close flushes and closes the underlying file. Closing a nil Writer is
// a no-op.
func (w *Writer) Close() error {
	if w == nil {
		return nil
	}
	w.mu.Lock()
	defer w.mu.Unlock()
	if err := w.file.Close(); err != nil {
		return fmt.Errorf("journal: close: %w", err)
	}
	return nil
}
