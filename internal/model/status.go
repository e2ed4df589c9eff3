package model

import "fmt"

// Status is the workflow status label of an epic.
//
// Transitions move one step forward under normal operation:
// planning -> in-progress -> review -> done. Manual edits on the remote
// side are accepted verbatim on the next pull; the state machine only
// proposes forward transitions.
type Status string

const (
	StatusPlanning   Status = "planning"
	StatusInProgress Status = "in-progress"
	StatusReview     Status = "review"
	StatusDone       Status = "done"
)

var statusOrder = []Status{StatusPlanning, StatusInProgress, StatusReview, StatusDone}

// Valid reports whether s is a known status label.
func (s Status) Valid() bool {
	for _, v := range statusOrder {
		if s == v {
			return true
		}
	}
	return false
}

// Next returns the status one step forward, or an error when already at
// the final status. No transition skips a step.
func (s Status) Next() (Status, error) {
	for i, v := range statusOrder {
		if s == v {
			if i == len(statusOrder)-1 {
				return s, fmt.Errorf("status %q is terminal", s)
			}
			return statusOrder[i+1], nil
		}
	}
	return s, fmt.Errorf("unknown status %q", s)
}
