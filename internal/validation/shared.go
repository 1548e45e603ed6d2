package validation

import (
	"fmt"
	"maps"
	"slices"
	"strings"
)

// Error collects per-field problems found in one request. Fields maps the
// JSON field name to a human-readable message.
type Error struct {
	Fields map[string]string
}

// Add records msg for field unless the field already has a message, so the
// first problem found for a field is the one reported.
func (e *Error) Add(field, msg string) {
	if e.Fields == nil {
		e.Fields = make(map[string]string)
	}
	if _, ok := e.Fields[field]; !ok {
		e.Fields[field] = msg
	}
}

// Err returns e when any field failed, or nil.
func (e *Error) Err() error {
	if len(e.Fields) == 0 {
		return nil
	}
	return e
}

// Error lists the field messages sorted by field name.
func (e *Error) Error() string {
	msgs := make([]string, 0, len(e.Fields))
	for _, field := range slices.Sorted(maps.Keys(e.Fields)) {
		msgs = append(msgs, fmt.Sprintf("%s: %s", field, e.Fields[field]))
	}
	return strings.Join(msgs, "; ")
}
