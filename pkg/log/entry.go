package log

import (
	"encoding/json"
	"time"
)

// Entry represents a structured log entry.
type Entry struct {
	Timestamp time.Time
	Level     Level
	Caller    string
	RunID     string
	Message   string
	Fields    map[string]any
}

// NewEntry creates a new log entry with the current timestamp.
func NewEntry(level Level, msg string) *Entry {
	return &Entry{
		Timestamp: time.Now(),
		Level:     level,
		Message:   msg,
		Fields:    make(map[string]any),
	}
}

// With adds alternating key/value pairs to the entry's fields.
// Non-string keys and a trailing key without value are ignored.
func (e *Entry) With(keysAndValues ...any) *Entry {
	mergePairs(e.Fields, keysAndValues)
	return e
}

// MarshalJSON flattens fields into the root object.
// Errors are rendered through Error() so they do not marshal to {}.
func (e Entry) MarshalJSON() ([]byte, error) {
	m := make(map[string]any, len(e.Fields)+5)

	for k, v := range e.Fields {
		if err, ok := v.(error); ok {
			v = err.Error()
		}
		m[k] = v
	}

	m["timestamp"] = e.Timestamp.UTC().Format(time.RFC3339)
	m["level"] = e.Level.String()
	m["msg"] = e.Message
	if e.Caller != "" {
		m["caller"] = e.Caller
	}
	if e.RunID != "" {
		m["run_id"] = e.RunID
	}

	return json.Marshal(m)
}

func mergePairs(dst map[string]any, keysAndValues []any) {
	for i := 0; i+1 < len(keysAndValues); i += 2 {
		if key, ok := keysAndValues[i].(string); ok {
			dst[key] = keysAndValues[i+1]
		}
	}
}
