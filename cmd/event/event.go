package event

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/cgardner/epicsync/internal/common"
	"github.com/cgardner/epicsync/internal/engine"
	"github.com/cgardner/epicsync/internal/model"
	"github.com/cgardner/epicsync/internal/ui"
)

// Command applies one classified workflow event to the cache.
//
// The event classifier runs outside epicsync; this command only consumes
// its typed output. Mutations stay local: nothing is pushed until the
// next sync checkpoint.
type Command struct {
	// Flags
	Kind  string
	Skill string
	Plan  string
	Issue int
	Actor string

	Clients *common.Clients
}

// Register registers the command with cobra
func (c *Command) Register(parent *cobra.Command) {
	cmd := &cobra.Command{
		Use:   "event",
		Short: "Apply a classified workflow event to the cache",
		Long: `Apply one detected workflow event to the tracked epics.

Events that resolve to no tracked epic are dropped quietly; that is
normal for untracked repositories.

Example:
  epicsync event --kind skill-invocation --skill execution --plan plans/a.yaml
  epicsync event --kind task-completion --issue 124 --actor ci-123`,
		PreRunE: func(cobraCmd *cobra.Command, args []string) error {
			var err error
			c.Clients, err = common.InitClients()
			return err
		},
		RunE: func(cobraCmd *cobra.Command, args []string) error {
			return c.Run(cobraCmd.Context())
		},
	}

	cmd.Flags().StringVar(&c.Kind, "kind", "", "Event kind: skill-invocation or task-completion")
	cmd.Flags().StringVar(&c.Skill, "skill", "", "Skill name for skill-invocation events")
	cmd.Flags().StringVar(&c.Plan, "plan", "", "Plan file path extracted by the classifier")
	cmd.Flags().IntVar(&c.Issue, "issue", 0, "Issue number for task-completion events")
	cmd.Flags().StringVar(&c.Actor, "actor", "", "Actor identifier")
	cmd.MarkFlagRequired("kind")

	parent.AddCommand(cmd)
}

// Run applies the event and persists the cache when anything changed.
func (c *Command) Run(ctx context.Context) error {
	kind := model.EventKind(c.Kind)
	if kind != model.KindSkillInvoke && kind != model.KindTaskCompletion {
		return fmt.Errorf("unsupported event kind %q", c.Kind)
	}

	snap, err := c.Clients.Store.Load(c.Clients.Repo)
	if err != nil {
		return fmt.Errorf("failed to load cache: %w", err)
	}

	applied := c.Clients.Engine.ApplyEvent(snap, engine.Event{
		Kind:        kind,
		Skill:       c.Skill,
		PlanPath:    c.Plan,
		IssueNumber: c.Issue,
		Actor:       c.Actor,
	})
	if !applied {
		// Unresolvable events are normal, not errors.
		return nil
	}

	if err := c.Clients.Store.Save(snap); err != nil {
		return fmt.Errorf("failed to save cache: %w", err)
	}

	ui.Successf("Recorded %s event", c.Kind)
	return nil
}
