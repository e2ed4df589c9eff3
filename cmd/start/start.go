package start

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/cgardner/epicsync/internal/common"
	"github.com/cgardner/epicsync/internal/ui"
)

// Command is the session-start checkpoint: refresh the cache from GitHub
// and reconcile external-tracking epics.
type Command struct {
	Clients *common.Clients
}

// Register registers the command with cobra
func (c *Command) Register(parent *cobra.Command) {
	cmd := &cobra.Command{
		Use:   "start",
		Short: "Refresh the cache and reconcile external epics",
		Long: `Run the session-start checkpoint: pull remote status and closure
changes into the cache, and rebuild the checklist of every epic that
tracks an external repository.

Example:
  epicsync start`,
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

// Run pulls, reconciles, and persists the cache.
func (c *Command) Run(ctx context.Context) error {
	snap, err := c.Clients.Store.Load(c.Clients.Repo)
	if err != nil {
		return fmt.Errorf("failed to load cache: %w", err)
	}

	if err := c.Clients.Engine.Pull(ctx, snap); err != nil {
		// A failed pull leaves the cache stale, not broken.
		ui.Warningf("refresh from remote failed: %v", err)
	}

	result := c.Clients.Engine.ReconcileExternal(ctx, snap)

	if err := c.Clients.Store.Save(snap); err != nil {
		return fmt.Errorf("failed to save cache: %w", err)
	}

	for _, number := range result.Updated {
		ui.Successf("Updated external checklist on epic #%d", number)
	}
	if len(result.Failed) > 0 {
		ui.Warningf("%d external epic(s) could not be reconciled", len(result.Failed))
	}
	ui.Infof("Session started for %s (%d epic(s) cached)", c.Clients.Repo.Slug(), len(snap.Epics))
	return nil
}
