package triage

import (
	"strings"
	"time"
)

// TimestampLayout is the canonical textual form of recorded_at. The stored
// string doubles as the export value and as the input of TimeOfDay, so the
// single literal space between date and time is part of the contract.
const TimestampLayout = "2006-01-02 15:04:05"

// Event is one immutable triage record. The defect label is copied by
// value at recording time; later vocabulary edits never touch history.
type Event struct {
	EventID      uint64
	CategoryID   uint64
	InternalCode string
	SerialNumber string
	DefectLabel  string
	RecordedAt   string
}

// FormatTimestamp renders t in TimestampLayout, truncated to whole seconds.
func FormatTimestamp(t time.Time) string {
	return t.Format(TimestampLayout)
}

// TimeOfDay extracts the HH:MM:SS part of a stored timestamp: split on the
// first space, take the second token. This is a formatting contract on the
// stored string, not time parsing.
func TimeOfDay(ts string) string {
	parts := strings.SplitN(ts, " ", 2)
	if len(parts) < 2 {
		return ts
	}
	return parts[1]
}
