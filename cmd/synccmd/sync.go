package synccmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/cgardner/epicsync/internal/common"
	"github.com/cgardner/epicsync/internal/ui"
)

// Command is the explicit user-requested sync checkpoint: it flushes all
// dirty epics to GitHub.
type Command struct {
	Clients *common.Clients
}

// Register registers the command with cobra
func (c *Command) Register(parent *cobra.Command) {
	cmd := &cobra.Command{
		Use:   "sync",
		Short: "Push all locally changed epics to GitHub",
		Long: `Push the canonical body of every epic with unpushed local changes.

Epics that fail to push keep their dirty flag and retry on the next
sync; successful epics are never rolled back by a neighbor's failure.

Example:
  epicsync sync`,
		PreRunE: func(cobraCmd *cobra.Command, args []string) error {
			var err error
			c.Clients, err = common.InitClients()
			return err
		},
		RunE: func(cobraCmd *cobra.Command, args []string) error {
			return c.Run(cobraCmd.Context())
		},
	}

	parent.AddCommand(cmd)
}

// Run flushes dirty epics and persists the cache.
func (c *Command) Run(ctx context.Context) error {
	snap, err := c.Clients.Store.Load(c.Clients.Repo)
	if err != nil {
		return fmt.Errorf("failed to load cache: %w", err)
	}

	result := c.Clients.Engine.Flush(ctx, snap)

	if err := c.Clients.Store.Save(snap); err != nil {
		return fmt.Errorf("failed to save cache: %w", err)
	}

	if len(result.Succeeded) == 0 && len(result.Failed) == 0 {
		ui.Info("Nothing to sync")
		return nil
	}

	for _, number := range result.Succeeded {
		ui.Successf("Pushed epic #%d", number)
	}
	if len(result.Failed) > 0 {
		return fmt.Errorf("%d epic(s) failed to push and will retry on the next sync", len(result.Failed))
	}
	return nil
}
