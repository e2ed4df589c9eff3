package model

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testRepo() RepoContext {
	return RepoContext{Owner: "test-owner", Name: "test-repo"}
}

func epicAt(number int, status Status, ts time.Time) *Epic {
	return &Epic{
		Number: number,
		Status: status,
		State:  "open",
		Journey: []JourneyEntry{
			{ID: "0", Time: ts, Kind: KindCreation, Message: "Epic created"},
		},
	}
}

func TestAddEpicIndexesSubItems(t *testing.T) {
	snap := NewSnapshot(testRepo())
	epic := epicAt(10, StatusPlanning, time.Now())
	require.NoError(t, epic.AddSubItem(SubItem{Number: 11, Title: "A"}))
	require.NoError(t, epic.AddSubItem(SubItem{Number: 12, Title: "B"}))

	snap.AddEpic(epic)

	assert.Same(t, epic, snap.OwnerOfSubItem(11))
	assert.Same(t, epic, snap.OwnerOfSubItem(12))
	assert.Nil(t, snap.OwnerOfSubItem(99))
}

func TestDirtyEpicsOrderedAscending(t *testing.T) {
	snap := NewSnapshot(testRepo())
	for _, n := range []int{30, 10, 20} {
		epic := epicAt(n, StatusPlanning, time.Now())
		snap.AddEpic(epic)
		snap.Touch(epic)
	}
	clean := epicAt(15, StatusPlanning, time.Now())
	snap.AddEpic(clean)

	dirty := snap.DirtyEpics()
	require.Len(t, dirty, 3)
	assert.Equal(t, 10, dirty[0].Number)
	assert.Equal(t, 20, dirty[1].Number)
	assert.Equal(t, 30, dirty[2].Number)
}

func TestExternalEpics(t *testing.T) {
	snap := NewSnapshot(testRepo())
	snap.AddEpic(epicAt(10, StatusInProgress, time.Now()))
	ext := epicAt(20, StatusInProgress, time.Now())
	ext.ExternalTarget = "org/repo"
	snap.AddEpic(ext)

	external := snap.ExternalEpics()
	require.Len(t, external, 1)
	assert.Equal(t, 20, external[0].Number)
}

func TestEpicByPlanPath(t *testing.T) {
	snap := NewSnapshot(testRepo())
	epic := epicAt(10, StatusPlanning, time.Now())
	epic.PlanPath = "plans/a.md"
	snap.AddEpic(epic)

	assert.Same(t, epic, snap.EpicByPlanPath("plans/a.md"))
	assert.Nil(t, snap.EpicByPlanPath("plans/b.md"))
	assert.Nil(t, snap.EpicByPlanPath(""), "epics without a plan path are not matched by empty string")
}

func TestMostRecentInProgress(t *testing.T) {
	base := time.Date(2025, 5, 1, 8, 0, 0, 0, time.UTC)

	t.Run("picks latest journey activity", func(t *testing.T) {
		snap := NewSnapshot(testRepo())
		snap.AddEpic(epicAt(10, StatusInProgress, base.Add(time.Hour)))
		snap.AddEpic(epicAt(20, StatusInProgress, base))
		snap.AddEpic(epicAt(30, StatusReview, base.Add(2*time.Hour)))

		got := snap.MostRecentInProgress()
		require.NotNil(t, got)
		assert.Equal(t, 10, got.Number)
	})

	t.Run("ties break toward the highest number", func(t *testing.T) {
		snap := NewSnapshot(testRepo())
		snap.AddEpic(epicAt(10, StatusInProgress, base))
		snap.AddEpic(epicAt(20, StatusInProgress, base))

		got := snap.MostRecentInProgress()
		require.NotNil(t, got)
		assert.Equal(t, 20, got.Number)
	})

	t.Run("none in progress", func(t *testing.T) {
		snap := NewSnapshot(testRepo())
		snap.AddEpic(epicAt(10, StatusDone, base))
		assert.Nil(t, snap.MostRecentInProgress())
	})
}

func TestRebuildSubItemIndex(t *testing.T) {
	snap := NewSnapshot(testRepo())
	epic := epicAt(10, StatusPlanning, time.Now())
	require.NoError(t, epic.AddSubItem(SubItem{Number: 11, Title: "A"}))
	snap.AddEpic(epic)

	// Simulate a hand-edited snapshot with a stale index.
	snap.SubItemIndex = map[int]int{99: 10}
	snap.RebuildSubItemIndex()

	assert.Same(t, epic, snap.OwnerOfSubItem(11))
	assert.Nil(t, snap.OwnerOfSubItem(99))
}

func TestTouch(t *testing.T) {
	snap := NewSnapshot(testRepo())
	epic := epicAt(10, StatusPlanning, time.Now())
	snap.AddEpic(epic)

	require.False(t, epic.Dirty)
	snap.Touch(epic)
	assert.True(t, epic.Dirty)
	assert.False(t, epic.UpdatedAt.IsZero())
}

func TestRepoContext(t *testing.T) {
	repo := RepoContext{Owner: "octocat", Name: "hello-world"}
	assert.Equal(t, "octocat/hello-world", repo.Slug())
	assert.Equal(t, "9495a75480401db6", repo.Hash())
	assert.Len(t, repo.Hash(), 16)
}
