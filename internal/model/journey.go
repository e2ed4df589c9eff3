package model

import (
	"fmt"
	"time"
)

// EventKind classifies a workflow event recorded in an epic's journey log.
type EventKind string

const (
	KindCreation       EventKind = "creation"
	KindSkillInvoke    EventKind = "skill-invocation"
	KindTaskCompletion EventKind = "task-completion"
	KindStatusChange   EventKind = "status-change"
)

// JourneyEntry is one immutable record in an epic's journey log.
// Entries are only ever appended, never edited or removed.
type JourneyEntry struct {
	ID      string            `json:"id"`
	Time    time.Time         `json:"time"`
	Kind    EventKind         `json:"kind"`
	Message string            `json:"message"`
	Actor   string            `json:"actor,omitempty"`
	Meta    map[string]string `json:"meta,omitempty"`
}

// Line renders the entry as one timeline line for the remote issue body.
// The output is a pure function of the entry so repeated renders are
// byte-for-byte identical.
func (j JourneyEntry) Line() string {
	line := fmt.Sprintf("- `%s` **%s** — %s", j.Time.UTC().Format(time.RFC3339), j.Kind, j.Message)
	if j.Actor != "" {
		line += fmt.Sprintf(" (%s)", j.Actor)
	}
	return line
}
