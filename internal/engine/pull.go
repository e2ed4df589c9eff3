package engine

import (
	"context"
	"fmt"

	"github.com/cgardner/epicsync/internal/gh"
	"github.com/cgardner/epicsync/internal/model"
)

// Pull refreshes cached state from the remote host, which is the sole
// arbiter of truth for status values, issue state, and sub-item closure.
//
// Manual edits made remotely are accepted verbatim: a status label that
// moved backwards still wins. A recorded status change appends a journey
// entry and dirties the epic so the next flush pushes the updated body;
// plain state refreshes leave epics clean.
func (e *Engine) Pull(ctx context.Context, snap *model.Snapshot) error {
	issues, err := e.remote.ListIssues(ctx)
	if err != nil {
		return fmt.Errorf("failed to pull issue state: %w", err)
	}

	byNumber := make(map[int]*gh.Issue, len(issues))
	for _, issue := range issues {
		byNumber[issue.Number] = issue
	}

	for _, epic := range snap.Epics {
		remote, ok := byNumber[epic.Number]
		if !ok {
			continue
		}

		epic.State = remote.State
		if status := statusFromLabels(remote.Labels); status != "" && status != epic.Status {
			epic.AppendJourney(e.newEntry(model.KindStatusChange,
				fmt.Sprintf("Status set to %s on remote", status), ""))
			epic.Status = status
			snap.Touch(epic)
		}

		// Sub-item closure is detected here, never written locally.
		for i := range epic.SubItems {
			if item, ok := byNumber[epic.SubItems[i].Number]; ok {
				epic.SubItems[i].State = item.State
			}
		}
	}

	if snap.Board == nil && e.boardTitle != "" {
		board, err := e.remote.FindBoard(ctx, snap.Repo.Owner, e.boardTitle)
		if err == nil && board != nil {
			snap.Board = &model.BoardRef{
				ID:     board.ID,
				Number: board.Number,
				Title:  board.Title,
				URL:    board.URL,
			}
		}
	}

	snap.LastTaskCheck = timeNow().UTC()
	return nil
}

// statusFromLabels returns the first label that is a known status value.
func statusFromLabels(labels []string) model.Status {
	for _, label := range labels {
		if status := model.Status(label); status.Valid() {
			return status
		}
	}
	return ""
}
