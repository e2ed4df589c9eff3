package plancmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/cgardner/epicsync/internal/common"
	"github.com/cgardner/epicsync/internal/config"
	"github.com/cgardner/epicsync/internal/engine"
	"github.com/cgardner/epicsync/internal/ui"
)

// Command imports a structured work plan as a tracked epic.
type Command struct {
	Clients *common.Clients
}

// Register registers the command with cobra
func (c *Command) Register(parent *cobra.Command) {
	cmd := &cobra.Command{
		Use:   "plan <file>",
		Short: "Import a work plan as a tracked epic",
		Long: `Import a structured plan file, creating a remote issue for the epic
and one sub-issue per task (or an external tracking marker), and record
it in the local cache.

Example:
  epicsync plan plans/search-rewrite.yaml`,
		Args: cobra.ExactArgs(1),
		PreRunE: func(cobraCmd *cobra.Command, args []string) error {
			var err error
			c.Clients, err = common.InitClients()
			return err
		},
		RunE: func(cobraCmd *cobra.Command, args []string) error {
			return c.Run(cobraCmd.Context(), args[0])
		},
	}

	parent.AddCommand(cmd)
}

// Run imports one plan file.
func (c *Command) Run(ctx context.Context, path string) error {
	plan, err := engine.LoadPlan(path)
	if err != nil {
		return err
	}

	snap, err := c.Clients.Store.Load(c.Clients.Repo)
	if err != nil {
		return fmt.Errorf("failed to load cache: %w", err)
	}

	epic, err := c.Clients.Engine.ImportPlan(ctx, snap, plan, engine.PlanOptions{
		EpicLabel: config.EpicLabel(),
		TaskLabel: config.TaskLabel(),
	})
	if err != nil {
		return err
	}

	if err := c.Clients.Store.Save(snap); err != nil {
		return fmt.Errorf("failed to save cache: %w", err)
	}

	if epic.IsExternal() {
		ui.Successf("Created epic #%d tracking %s", epic.Number, epic.ExternalTarget)
	} else {
		ui.Successf("Created epic #%d with %d task(s)", epic.Number, len(epic.SubItems))
	}
	ui.Print(ui.Dim(epic.URL))
	return nil
}
