package cache

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cgardner/epicsync/internal/model"
)

func testRepo() model.RepoContext {
	return model.RepoContext{Owner: "test-owner", Name: "test-repo"}
}

func TestLoad_ColdStartReturnsEmptySnapshot(t *testing.T) {
	store := NewStore(filepath.Join(t.TempDir(), "never-created"))

	snap, err := store.Load(testRepo())
	require.NoError(t, err)
	require.NotNil(t, snap)
	assert.Equal(t, testRepo(), snap.Repo)
	assert.Empty(t, snap.Epics)
	assert.NotNil(t, snap.SubItemIndex)
}

func TestSaveLoadRoundtrip(t *testing.T) {
	store := NewStore(t.TempDir())

	snap := model.NewSnapshot(testRepo())
	epic := &model.Epic{
		Number:   10,
		Title:    "Rewrite search",
		Status:   model.StatusInProgress,
		State:    "open",
		PlanPath: "plans/search.yaml",
		Journey: []model.JourneyEntry{{
			ID:      "abc123",
			Time:    time.Date(2025, 5, 1, 8, 0, 0, 0, time.UTC),
			Kind:    model.KindCreation,
			Message: "Epic created",
		}},
		Dirty: true,
	}
	require.NoError(t, epic.AddSubItem(model.SubItem{Number: 11, Title: "A task", State: "open"}))
	snap.AddEpic(epic)

	require.NoError(t, store.Save(snap))

	loaded, err := store.Load(testRepo())
	require.NoError(t, err)
	require.Contains(t, loaded.Epics, 10)

	got := loaded.Epics[10]
	assert.Equal(t, "Rewrite search", got.Title)
	assert.Equal(t, model.StatusInProgress, got.Status)
	assert.True(t, got.Dirty, "dirty flags survive persistence")
	assert.NotNil(t, loaded.OwnerOfSubItem(11), "sub-item index is rebuilt on load")
}

func TestLoad_CorruptSnapshotIsQuarantined(t *testing.T) {
	dir := t.TempDir()
	store := NewStore(dir)
	repo := testRepo()

	path := filepath.Join(dir, repo.Hash()+".json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0644))

	snap, err := store.Load(repo)
	require.NoError(t, err, "corruption is survivable, not fatal")
	assert.Empty(t, snap.Epics)

	_, statErr := os.Stat(path + ".corrupt")
	assert.NoError(t, statErr, "corrupt file is moved aside")
	_, statErr = os.Stat(path)
	assert.True(t, os.IsNotExist(statErr), "original path is cleared")
}

func TestSave_LeavesNoTempFile(t *testing.T) {
	dir := t.TempDir()
	store := NewStore(dir)

	require.NoError(t, store.Save(model.NewSnapshot(testRepo())))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	for _, entry := range entries {
		assert.NotContains(t, entry.Name(), ".tmp")
	}
}

func TestSave_CreatesCacheDirectory(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "cache")
	store := NewStore(dir)

	require.NoError(t, store.Save(model.NewSnapshot(testRepo())))

	_, err := os.Stat(dir)
	assert.NoError(t, err)
}

func TestSnapshotsArePartitionedByRepo(t *testing.T) {
	store := NewStore(t.TempDir())

	first := model.NewSnapshot(testRepo())
	first.AddEpic(&model.Epic{Number: 10, Title: "First repo epic", State: "open"})
	require.NoError(t, store.Save(first))

	other := model.RepoContext{Owner: "other-owner", Name: "other-repo"}
	require.NoError(t, store.Save(model.NewSnapshot(other)))

	loaded, err := store.Load(other)
	require.NoError(t, err)
	assert.Empty(t, loaded.Epics, "repositories never see each other's snapshots")

	back, err := store.Load(testRepo())
	require.NoError(t, err)
	assert.Contains(t, back.Epics, 10)
}
