package engine

import (
	"testing"
	"time"

	"github.com/cgardner/epicsync/internal/model"
)

// defaultLadder mirrors the configured label filter ladder.
var defaultLadder = []string{"epic-task", "help wanted", ""}

func newTestEngine(t *testing.T, remote RemoteClient) *Engine {
	t.Helper()
	return NewEngine(remote, defaultLadder, "")
}

// freezeTime pins the engine clock for a test and restores it afterwards.
func freezeTime(t *testing.T, at time.Time) {
	t.Helper()
	orig := timeNow
	timeNow = func() time.Time { return at }
	t.Cleanup(func() { timeNow = orig })
}

func newTestSnapshot() *model.Snapshot {
	return model.NewSnapshot(model.RepoContext{Owner: "test-owner", Name: "test-repo"})
}

// newTrackedEpic builds a self-tracking epic with one journey entry at ts.
func newTrackedEpic(number int, status model.Status, planPath string, ts time.Time) *model.Epic {
	return &model.Epic{
		Number:   number,
		Title:    "Epic " + planPath,
		Goal:     "Do the work",
		Status:   status,
		State:    "open",
		PlanPath: planPath,
		Journey: []model.JourneyEntry{{
			ID:      "0000000000000000",
			Time:    ts,
			Kind:    model.KindCreation,
			Message: "Epic created",
		}},
	}
}
