package engine

import (
	"context"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/cgardner/epicsync/internal/gh"
	"github.com/cgardner/epicsync/internal/model"
	"github.com/cgardner/epicsync/internal/ui"
)

// Plan is the structured form of a work plan. Free-text plan parsing
// happens outside this core; by the time a plan reaches the engine it is
// already structured data.
type Plan struct {
	Title    string   `yaml:"title"`
	Goal     string   `yaml:"goal"`
	Priority int      `yaml:"priority"`
	Tasks    []string `yaml:"tasks,omitempty"`

	// External marks the plan as tracking a foreign "owner/repo" instead
	// of owning tasks of its own.
	External string `yaml:"external,omitempty"`

	// Path is where the plan was loaded from; it becomes the epic's
	// stored plan path for event resolution.
	Path string `yaml:"-"`
}

// LoadPlan reads a structured plan file.
func LoadPlan(path string) (*Plan, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read plan: %w", err)
	}

	var plan Plan
	if err := yaml.Unmarshal(data, &plan); err != nil {
		return nil, fmt.Errorf("failed to parse plan: %w", err)
	}
	plan.Path = path

	if plan.Title == "" {
		return nil, fmt.Errorf("plan %s has no title", path)
	}
	if plan.External != "" && len(plan.Tasks) > 0 {
		return nil, fmt.Errorf("plan %s tracks %s externally and cannot also list tasks", path, plan.External)
	}
	return &plan, nil
}

// PlanOptions carries label and board settings for plan import.
type PlanOptions struct {
	EpicLabel string
	TaskLabel string
}

// ImportPlan converts a plan into a tracked epic: one remote issue, one
// remote sub-issue per task, a board item when a board is cached, and a
// cache entry. The epic is left dirty so the first flush pushes the fully
// rendered body.
func (e *Engine) ImportPlan(ctx context.Context, snap *model.Snapshot, plan *Plan, opts PlanOptions) (*model.Epic, error) {
	if existing := snap.EpicByPlanPath(plan.Path); existing != nil {
		return nil, fmt.Errorf("plan %s is already tracked by epic #%d", plan.Path, existing.Number)
	}

	labels := []string{string(model.StatusPlanning)}
	if opts.EpicLabel != "" {
		labels = append(labels, opts.EpicLabel)
	}

	issue, err := e.remote.CreateIssue(ctx, gh.IssueSpec{
		Title:  plan.Title,
		Body:   plan.Goal,
		Labels: labels,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create epic issue: %w", err)
	}

	now := timeNow().UTC()
	epic := &model.Epic{
		Number:         issue.Number,
		Title:          plan.Title,
		Goal:           plan.Goal,
		Priority:       plan.Priority,
		Status:         model.StatusPlanning,
		State:          "open",
		URL:            issue.URL,
		PlanPath:       plan.Path,
		CreatedAt:      now,
		UpdatedAt:      now,
		ExternalTarget: plan.External,
	}
	epic.AppendJourney(model.JourneyEntry{
		ID:      newID(),
		Time:    now,
		Kind:    model.KindCreation,
		Message: fmt.Sprintf("Epic created from %s", plan.Path),
	})

	for _, task := range plan.Tasks {
		spec := gh.IssueSpec{Title: task, Body: fmt.Sprintf("Part of #%d", issue.Number)}
		if opts.TaskLabel != "" {
			spec.Labels = []string{opts.TaskLabel}
		}

		sub, err := e.remote.CreateSubIssue(ctx, issue.Number, spec)
		if err != nil {
			return nil, fmt.Errorf("failed to create sub-issue %q: %w", task, err)
		}
		if err := epic.AddSubItem(model.SubItem{Number: sub.Number, Title: task, State: "open"}); err != nil {
			return nil, err
		}
	}

	if snap.Board != nil {
		if _, err := e.remote.AddItemToBoard(ctx, snap.Board.Number, snap.Repo.Owner, epic.URL); err != nil {
			// Board tracking is best-effort; the epic itself is created.
			ui.Warningf("failed to add epic #%d to board %q: %v", epic.Number, snap.Board.Title, err)
		}
	}

	snap.AddEpic(epic)
	snap.Touch(epic)
	return epic, nil
}
