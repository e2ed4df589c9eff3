package engine

import (
	"fmt"

	"github.com/cgardner/epicsync/internal/model"
)

// Skill names recognized by the state machine.
const (
	SkillExecution = "execution"
	SkillFinishing = "finishing"
)

// Event is one typed record from the event classifier. The engine never
// inspects raw session text; classification happens outside this core.
type Event struct {
	Kind        model.EventKind
	Skill       string // skill name for skill-invocation events
	PlanPath    string // plan file path, when the classifier extracted one
	IssueNumber int    // sub-item issue number for task-completion events
	Actor       string // optional actor identifier
}

// ApplyEvent maps a detected workflow event onto a status transition and a
// journey append. It returns true when the event was applied to an epic.
//
// Events that cannot be resolved to an epic are dropped and return false.
// That is a normal occurrence (a skill invoked in an untracked repository,
// a completed task nobody tracks) and never an error.
func (e *Engine) ApplyEvent(snap *model.Snapshot, event Event) bool {
	switch event.Kind {
	case model.KindSkillInvoke:
		return e.applySkill(snap, event)
	case model.KindTaskCompletion:
		return e.applyTaskCompletion(snap, event)
	default:
		return false
	}
}

func (e *Engine) applySkill(snap *model.Snapshot, event Event) bool {
	switch event.Skill {
	case SkillExecution:
		epic := snap.EpicByPlanPath(event.PlanPath)
		if epic == nil {
			return false
		}
		if epic.Status == model.StatusPlanning {
			epic.Status = model.StatusInProgress
		}
		epic.AppendJourney(e.newEntry(model.KindSkillInvoke,
			fmt.Sprintf("Skill %q invoked for %s", event.Skill, epic.PlanPath), event.Actor))
		snap.Touch(epic)
		return true

	case SkillFinishing:
		epic := snap.MostRecentInProgress()
		if epic == nil {
			return false
		}
		epic.Status = model.StatusReview
		epic.AppendJourney(e.newEntry(model.KindSkillInvoke,
			fmt.Sprintf("Skill %q invoked", event.Skill), event.Actor))
		snap.Touch(epic)
		return true

	default:
		return false
	}
}

func (e *Engine) applyTaskCompletion(snap *model.Snapshot, event Event) bool {
	epic := snap.OwnerOfSubItem(event.IssueNumber)
	if epic == nil {
		return false
	}

	// The sub-item's own closure state is never written here; it is read
	// back from the remote host on the next pull.
	epic.AppendJourney(e.newEntry(model.KindTaskCompletion,
		fmt.Sprintf("Task #%d completed", event.IssueNumber), event.Actor))
	snap.Touch(epic)
	return true
}

func (e *Engine) newEntry(kind model.EventKind, message string, actor string) model.JourneyEntry {
	return model.JourneyEntry{
		ID:      newID(),
		Time:    timeNow().UTC(),
		Kind:    kind,
		Message: message,
		Actor:   actor,
	}
}
