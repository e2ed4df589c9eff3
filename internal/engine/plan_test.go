package engine

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/cgardner/epicsync/internal/gh"
	"github.com/cgardner/epicsync/internal/model"
)

func writePlan(t *testing.T, contents string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "plan.yaml")
	require.NoError(t, os.WriteFile(path, []byte(contents), 0644))
	return path
}

func TestLoadPlan(t *testing.T) {
	t.Run("valid plan", func(t *testing.T) {
		path := writePlan(t, `
title: Rewrite search
goal: Make search fast
priority: 1
tasks:
  - Profile the hot path
  - Swap the index
`)
		plan, err := LoadPlan(path)
		require.NoError(t, err)
		assert.Equal(t, "Rewrite search", plan.Title)
		assert.Equal(t, path, plan.Path)
		assert.Len(t, plan.Tasks, 2)
	})

	t.Run("missing title", func(t *testing.T) {
		path := writePlan(t, "goal: no title here\n")
		_, err := LoadPlan(path)
		assert.ErrorContains(t, err, "no title")
	})

	t.Run("external plan cannot list tasks", func(t *testing.T) {
		path := writePlan(t, `
title: Track upstream
external: org/repo
tasks:
  - This is not allowed
`)
		_, err := LoadPlan(path)
		assert.ErrorContains(t, err, "cannot also list tasks")
	})

	t.Run("unreadable file", func(t *testing.T) {
		_, err := LoadPlan(filepath.Join(t.TempDir(), "missing.yaml"))
		assert.Error(t, err)
	})
}

func TestImportPlan_CreatesEpicAndSubItems(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	freezeTime(t, now)

	snap := newTestSnapshot()
	plan := &Plan{
		Title:    "Rewrite search",
		Goal:     "Make search fast",
		Priority: 1,
		Tasks:    []string{"Profile the hot path", "Swap the index"},
		Path:     "plans/search.yaml",
	}

	remote := &MockRemoteClient{}
	remote.On("CreateIssue", mock.Anything, mock.MatchedBy(func(spec gh.IssueSpec) bool {
		return spec.Title == "Rewrite search"
	})).Return(&gh.Issue{Number: 10, URL: "https://github.com/test-owner/test-repo/issues/10", State: "open"}, nil)
	remote.On("CreateSubIssue", mock.Anything, 10, mock.MatchedBy(func(spec gh.IssueSpec) bool {
		return spec.Title == "Profile the hot path"
	})).Return(&gh.Issue{Number: 11, State: "open"}, nil)
	remote.On("CreateSubIssue", mock.Anything, 10, mock.MatchedBy(func(spec gh.IssueSpec) bool {
		return spec.Title == "Swap the index"
	})).Return(&gh.Issue{Number: 12, State: "open"}, nil)

	epic, err := newTestEngine(t, remote).ImportPlan(context.Background(), snap, plan, PlanOptions{
		EpicLabel: "epic",
		TaskLabel: "epic-task",
	})
	require.NoError(t, err)

	assert.Equal(t, 10, epic.Number)
	assert.Equal(t, model.StatusPlanning, epic.Status)
	assert.Equal(t, "plans/search.yaml", epic.PlanPath)
	assert.True(t, epic.Dirty, "fresh import waits for the next flush")

	require.Len(t, epic.SubItems, 2)
	assert.Equal(t, 11, epic.SubItems[0].Number)
	assert.Equal(t, 10, epic.SubItems[0].Epic)

	require.Len(t, epic.Journey, 1)
	assert.Equal(t, model.KindCreation, epic.Journey[0].Kind)
	assert.Equal(t, now, epic.Journey[0].Time)

	assert.Same(t, epic, snap.Epics[10])
	assert.Same(t, epic, snap.OwnerOfSubItem(11))
	remote.AssertExpectations(t)
}

func TestImportPlan_ExternalEpicOwnsNoSubItems(t *testing.T) {
	snap := newTestSnapshot()
	plan := &Plan{
		Title:    "Track upstream",
		Goal:     "Mirror upstream work",
		External: "org/repo",
		Path:     "plans/upstream.yaml",
	}

	remote := &MockRemoteClient{}
	remote.On("CreateIssue", mock.Anything, mock.Anything).
		Return(&gh.Issue{Number: 20, URL: "https://github.com/test-owner/test-repo/issues/20", State: "open"}, nil)

	epic, err := newTestEngine(t, remote).ImportPlan(context.Background(), snap, plan, PlanOptions{})
	require.NoError(t, err)

	assert.True(t, epic.IsExternal())
	assert.Empty(t, epic.SubItems)
	remote.AssertNotCalled(t, "CreateSubIssue")
}

func TestImportPlan_DuplicatePlanPathRejected(t *testing.T) {
	snap := newTestSnapshot()
	snap.AddEpic(newTrackedEpic(10, model.StatusPlanning, "plans/a.md", time.Now()))

	remote := &MockRemoteClient{}
	_, err := newTestEngine(t, remote).ImportPlan(context.Background(), snap,
		&Plan{Title: "Again", Path: "plans/a.md"}, PlanOptions{})

	assert.ErrorContains(t, err, "already tracked by epic #10")
	remote.AssertNotCalled(t, "CreateIssue")
}

func TestImportPlan_AddsToBoardWhenCached(t *testing.T) {
	snap := newTestSnapshot()
	snap.Board = &model.BoardRef{ID: "PVT_1", Number: 3, Title: "Roadmap"}

	remote := &MockRemoteClient{}
	remote.On("CreateIssue", mock.Anything, mock.Anything).
		Return(&gh.Issue{Number: 30, URL: "https://github.com/test-owner/test-repo/issues/30", State: "open"}, nil)
	remote.On("AddItemToBoard", mock.Anything, 3, "test-owner", "https://github.com/test-owner/test-repo/issues/30").
		Return("ITEM_1", nil)

	_, err := newTestEngine(t, remote).ImportPlan(context.Background(), snap,
		&Plan{Title: "Board work", Goal: "g", Path: "plans/board.yaml"}, PlanOptions{})
	require.NoError(t, err)
	remote.AssertExpectations(t)
}
