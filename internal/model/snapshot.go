package model

import (
	"sort"
	"time"
)

// BoardRef is cached metadata for the detected project board. It is
// refreshed when absent and never diffed against the remote proactively;
// staleness here is acceptable.
type BoardRef struct {
	ID     string `json:"id"`
	Number int    `json:"number"`
	Title  string `json:"title"`
	URL    string `json:"url"`
}

// Snapshot is the full cached state for one repository context. It is
// loaded once at session start, mutated purely in memory, and persisted at
// checkpoints. A snapshot is exclusively owned by the current process; no
// other component holds a separate copy.
type Snapshot struct {
	Version int           `json:"version"` // format version (currently 1)
	Repo    RepoContext   `json:"repo"`
	Epics   map[int]*Epic `json:"epics"`

	// SubItemIndex maps a sub-item issue number to its owning epic number,
	// for resolution without walking every epic. Rebuilt on load.
	SubItemIndex map[int]int `json:"sub_item_index"`

	Board         *BoardRef `json:"board,omitempty"`
	LastTaskCheck time.Time `json:"last_task_check"`
}

// SnapshotVersion is the current snapshot format version.
const SnapshotVersion = 1

// NewSnapshot returns a structurally valid empty snapshot for a repository.
func NewSnapshot(repo RepoContext) *Snapshot {
	return &Snapshot{
		Version:      SnapshotVersion,
		Repo:         repo,
		Epics:        make(map[int]*Epic),
		SubItemIndex: make(map[int]int),
	}
}

// AddEpic inserts an epic and indexes its sub-items.
func (s *Snapshot) AddEpic(epic *Epic) {
	s.Epics[epic.Number] = epic
	for _, item := range epic.SubItems {
		s.SubItemIndex[item.Number] = epic.Number
	}
}

// Touch marks an epic as having unpushed local changes.
func (s *Snapshot) Touch(epic *Epic) {
	epic.Dirty = true
	epic.UpdatedAt = time.Now().UTC()
}

// DirtyEpics returns all epics with unpushed changes, in ascending number
// order so flush behavior is deterministic.
func (s *Snapshot) DirtyEpics() []*Epic {
	var dirty []*Epic
	for _, n := range s.sortedNumbers() {
		if s.Epics[n].Dirty {
			dirty = append(dirty, s.Epics[n])
		}
	}
	return dirty
}

// ExternalEpics returns all external-tracking epics in ascending number order.
func (s *Snapshot) ExternalEpics() []*Epic {
	var external []*Epic
	for _, n := range s.sortedNumbers() {
		if s.Epics[n].IsExternal() {
			external = append(external, s.Epics[n])
		}
	}
	return external
}

// EpicByPlanPath finds the epic created from a plan file, or nil.
func (s *Snapshot) EpicByPlanPath(path string) *Epic {
	if path == "" {
		return nil
	}
	for _, epic := range s.Epics {
		if epic.PlanPath == path {
			return epic
		}
	}
	return nil
}

// OwnerOfSubItem resolves a sub-item issue number to its owning epic, or
// nil when the number is untracked.
func (s *Snapshot) OwnerOfSubItem(number int) *Epic {
	epicNumber, ok := s.SubItemIndex[number]
	if !ok {
		return nil
	}
	return s.Epics[epicNumber]
}

// MostRecentInProgress selects the in-progress epic with the most recent
// journey entry. Ties break toward the highest epic number.
func (s *Snapshot) MostRecentInProgress() *Epic {
	var best *Epic
	for _, n := range s.sortedNumbers() {
		epic := s.Epics[n]
		if epic.Status != StatusInProgress {
			continue
		}
		if best == nil || !epic.LastJourneyTime().Before(best.LastJourneyTime()) {
			best = epic
		}
	}
	return best
}

// RebuildSubItemIndex regenerates the flat sub-item index from the epics.
// Called after load so a hand-edited or older snapshot stays consistent.
func (s *Snapshot) RebuildSubItemIndex() {
	s.SubItemIndex = make(map[int]int)
	for _, epic := range s.Epics {
		for _, item := range epic.SubItems {
			s.SubItemIndex[item.Number] = epic.Number
		}
	}
}

func (s *Snapshot) sortedNumbers() []int {
	numbers := make([]int, 0, len(s.Epics))
	for n := range s.Epics {
		numbers = append(numbers, n)
	}
	sort.Ints(numbers)
	return numbers
}
