package engine

import (
	"context"
	"sort"
	"sync"

	"github.com/cgardner/epicsync/internal/model"
	"github.com/cgardner/epicsync/internal/ui"
)

// FlushResult reports which epics were pushed and which failed.
type FlushResult struct {
	Succeeded []int
	Failed    []int
}

// Flush pushes every dirty epic's canonical body to the remote host and
// clears the dirty flag on success. Remote calls fan out concurrently:
// each touches a distinct issue number, so no coordination beyond the
// result join is needed.
//
// A failure for one epic leaves its flag set for the next flush and never
// blocks the remaining epics.
func (e *Engine) Flush(ctx context.Context, snap *model.Snapshot) FlushResult {
	dirty := snap.DirtyEpics()
	if len(dirty) == 0 {
		return FlushResult{}
	}

	var (
		mu     sync.Mutex
		result FlushResult
		wg     sync.WaitGroup
	)

	for _, epic := range dirty {
		wg.Add(1)
		go func(epic *model.Epic) {
			defer wg.Done()

			err := e.remote.EditIssueBody(ctx, epic.Number, RenderBody(epic))

			mu.Lock()
			defer mu.Unlock()
			if err != nil {
				ui.Warningf("failed to push epic #%d: %v", epic.Number, err)
				result.Failed = append(result.Failed, epic.Number)
				return
			}
			epic.Dirty = false
			result.Succeeded = append(result.Succeeded, epic.Number)
		}(epic)
	}
	wg.Wait()

	sort.Ints(result.Succeeded)
	sort.Ints(result.Failed)
	return result
}
