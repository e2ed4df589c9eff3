package engine

import (
	"context"
	"sort"
	"sync"

	"github.com/cgardner/epicsync/internal/gh"
	"github.com/cgardner/epicsync/internal/model"
	"github.com/cgardner/epicsync/internal/ui"
)

// ReconcileResult reports the outcome per external epic.
type ReconcileResult struct {
	Updated []int // checklist changed, remote body edited
	Skipped []int // checklist identical, no remote call
	Failed  []int // external target unreachable or edit failed
}

// ReconcileExternal rebuilds the checklist of every external-tracking epic
// from its foreign repository's open items. It is read-only toward the
// external repository and write-only toward the tracking epic.
//
// Each epic touches a disjoint external target, so reconciliation fans out
// concurrently with partial-result semantics: one failure is logged and
// skipped while the others proceed. A failed reconciliation never marks
// the epic dirty and never alters its cached checklist.
func (e *Engine) ReconcileExternal(ctx context.Context, snap *model.Snapshot) ReconcileResult {
	external := snap.ExternalEpics()
	if len(external) == 0 {
		return ReconcileResult{}
	}

	var (
		mu     sync.Mutex
		result ReconcileResult
		wg     sync.WaitGroup
	)

	for _, epic := range external {
		wg.Add(1)
		go func(epic *model.Epic) {
			defer wg.Done()
			outcome := e.reconcileOne(ctx, epic)

			mu.Lock()
			defer mu.Unlock()
			switch outcome {
			case reconcileUpdated:
				result.Updated = append(result.Updated, epic.Number)
			case reconcileSkipped:
				result.Skipped = append(result.Skipped, epic.Number)
			case reconcileFailed:
				result.Failed = append(result.Failed, epic.Number)
			}
		}(epic)
	}
	wg.Wait()

	sort.Ints(result.Updated)
	sort.Ints(result.Skipped)
	sort.Ints(result.Failed)
	return result
}

type reconcileOutcome int

const (
	reconcileUpdated reconcileOutcome = iota
	reconcileSkipped
	reconcileFailed
)

func (e *Engine) reconcileOne(ctx context.Context, epic *model.Epic) reconcileOutcome {
	open, err := e.queryExternal(ctx, epic.ExternalTarget)
	if err != nil {
		ui.Warningf("failed to reconcile epic #%d against %s: %v", epic.Number, epic.ExternalTarget, err)
		return reconcileFailed
	}

	checklist := RenderExternalChecklist(open, epic.ExternalChecklist)
	if checklist == epic.ExternalChecklist {
		return reconcileSkipped
	}

	body := renderBodyWithChecklist(epic, checklist)
	if err := e.remote.EditIssueBody(ctx, epic.Number, body); err != nil {
		ui.Warningf("failed to update checklist on epic #%d: %v", epic.Number, err)
		return reconcileFailed
	}

	epic.ExternalChecklist = checklist
	return reconcileUpdated
}

// queryExternal walks the label filter ladder in order and returns the
// first non-empty result. The ladder is best-effort: when every filter
// comes back empty, the final (empty) result stands.
func (e *Engine) queryExternal(ctx context.Context, target string) ([]*gh.Issue, error) {
	ladder := e.ladder
	if len(ladder) == 0 {
		ladder = []string{""}
	}

	var open []*gh.Issue
	for _, filter := range ladder {
		items, err := e.remote.ListOpenIssues(ctx, target, filter)
		if err != nil {
			return nil, err
		}
		if len(items) > 0 {
			open = items
			break
		}
	}
	return open, nil
}
