package model

import (
	"fmt"
	"time"
)

// Epic represents one unit of large-grained tracked work, mapped 1:1 to a
// remote issue.
//
// An epic is either self-tracking (owns sub-items, no external target) or
// external-tracking (has an external target and an always-empty sub-item
// list; foreign items exist only in the rendered checklist body). Callers
// must check IsExternal before touching SubItems.
type Epic struct {
	Number    int       `json:"number"`
	Title     string    `json:"title"`
	Goal      string    `json:"goal"`
	Priority  int       `json:"priority"`
	Status    Status    `json:"status"`
	State     string    `json:"state"` // open, closed
	URL       string    `json:"url,omitempty"`
	PlanPath  string    `json:"plan_path,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	SubItems []SubItem      `json:"sub_items,omitempty"`
	Journey  []JourneyEntry `json:"journey"`

	// Dirty marks unpushed local changes. Set by every local mutation,
	// cleared only after a successful remote body edit.
	Dirty bool `json:"dirty"`

	// ExternalTarget is the "owner/repo" of a foreign repository this epic
	// tracks read-only. Empty for self-tracking epics.
	ExternalTarget string `json:"external_target,omitempty"`

	// ExternalChecklist is the last rendered checklist section for an
	// external epic, kept so reconciliation can skip no-op remote edits
	// and carry forward completed items.
	ExternalChecklist string `json:"external_checklist,omitempty"`
}

// SubItem is a smaller unit of work owned by exactly one epic. Its closure
// state is only ever read from the remote host on pull, never written
// locally.
type SubItem struct {
	Number int    `json:"number"`
	Title  string `json:"title"`
	State  string `json:"state"` // open, closed
	Epic   int    `json:"epic"`
}

// IsExternal reports whether this epic tracks a foreign repository.
func (e *Epic) IsExternal() bool {
	return e.ExternalTarget != ""
}

// AddSubItem appends a sub-item to a self-tracking epic. External epics
// never own sub-items.
func (e *Epic) AddSubItem(item SubItem) error {
	if e.IsExternal() {
		return fmt.Errorf("epic #%d tracks %s externally and cannot own sub-items", e.Number, e.ExternalTarget)
	}
	item.Epic = e.Number
	e.SubItems = append(e.SubItems, item)
	return nil
}

// AppendJourney appends an entry to the journey log in arrival order.
func (e *Epic) AppendJourney(entry JourneyEntry) {
	e.Journey = append(e.Journey, entry)
}

// LastJourneyTime returns the timestamp of the most recent journey entry,
// or the zero time for an empty log.
func (e *Epic) LastJourneyTime() time.Time {
	if len(e.Journey) == 0 {
		return time.Time{}
	}
	return e.Journey[len(e.Journey)-1].Time
}
