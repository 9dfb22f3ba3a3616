// Package logging provides leveled logging and sweep event tracing for lifsim.
// It offers two complementary outputs:
//   - A leveled slog.Logger for stderr (operational output)
//   - An EventLogger for per-condition JSONL events (<dir>/sweep-events.jsonl)
package logging

import (
	"encoding/json"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"
)

// LevelTrace is a custom slog level below Debug. At this level every
// sweep condition is logged to stderr as well.
const LevelTrace = slog.LevelDebug - 4

// EventsFile is the name of the JSONL file written by EventLogger.
const EventsFile = "sweep-events.jsonl"

// ParseLevel maps a string level name to a slog.Level.
// Supported values: "info", "debug", "trace" (case-insensitive).
// Unknown values default to info.
func ParseLevel(s string) slog.Level {
	switch strings.ToLower(s) {
	case "debug":
		return slog.LevelDebug
	case "trace":
		return LevelTrace
	default:
		return slog.LevelInfo
	}
}

// NewLogger creates a leveled slog.Logger writing text records to w.
func NewLogger(level string, w io.Writer) *slog.Logger {
	lvl := ParseLevel(level)
	opts := &slog.HandlerOptions{
		Level: lvl,
		ReplaceAttr: func(groups []string, a slog.Attr) slog.Attr {
			if a.Key == slog.LevelKey {
				if l, ok := a.Value.Any().(slog.Level); ok && l == LevelTrace {
					a.Value = slog.StringValue("TRACE")
				}
			}
			return a
		},
	}
	return slog.New(slog.NewTextHandler(w, opts))
}

// EventLogger appends one JSON object per event to a JSONL file.
// It is safe for concurrent use, which sweeps rely on since conditions
// finish on several goroutines. A nil *EventLogger is a no-op.
type EventLogger struct {
	mu   sync.Mutex
	enc  *json.Encoder
	file *os.File
	path string
}

// NewEventLogger opens dir/sweep-events.jsonl for append when level is
// "debug" or "trace". At info level, or when the file cannot be opened,
// it returns nil.
func NewEventLogger(dir, level string) *EventLogger {
	if ParseLevel(level) >= slog.LevelInfo {
		return nil
	}
	if err := os.MkdirAll(dir, 0700); err != nil {
		return nil
	}

	path := filepath.Join(dir, EventsFile)
	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0600)
	if err != nil {
		return nil
	}
	return &EventLogger{enc: json.NewEncoder(f), file: f, path: path}
}

// Path returns the events file path, or "" on a nil receiver.
func (el *EventLogger) Path() string {
	if el == nil {
		return ""
	}
	return el.path
}

// Record writes an event of the given kind. The fields map is copied and
// gains "event" and "time" keys.
func (el *EventLogger) Record(kind string, fields map[string]any) {
	if el == nil {
		return
	}

	entry := make(map[string]any, len(fields)+2)
	for k, v := range fields {
		entry[k] = v
	}
	entry["event"] = kind
	entry["time"] = time.Now().UTC().Format(time.RFC3339Nano)

	el.mu.Lock()
	defer el.mu.Unlock()
	if el.file == nil {
		return
	}
	_ = el.enc.Encode(entry)
}

// Close closes the underlying file. Safe to call on nil receiver.
func (el *EventLogger) Close() error {
	if el == nil {
		return nil
	}

	el.mu.Lock()
	defer el.mu.Unlock()
	if el.file == nil {
		return nil
	}
	err := el.file.Close()
	el.file = nil
	return err
}
