package core

import "github.com/charmbracelet/lipgloss"

// Record is one sanitized log line tagged with its source's display identity.
// Records are immutable once created.
type Record struct {
	SourceKey string
	Color     lipgloss.Color
	Body      string
}

// NewRecord builds a Record from a raw line read off a source's log stream.
func NewRecord(source Source, line string) Record {
	key := source.Key()
	return Record{
		SourceKey: key,
		Color:     ColorFor(key),
		Body:      Sanitize(line),
	}
}
