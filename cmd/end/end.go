package end

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/cgardner/epicsync/internal/common"
	"github.com/cgardner/epicsync/internal/ui"
)

// Command is the session-end (or idle) checkpoint signaled by the host
// environment. It behaves like sync but reports quietly, since it runs
// unattended.
type Command struct {
	Clients *common.Clients
}

// Register registers the command with cobra
func (c *Command) Register(parent *cobra.Command) {
	cmd := &cobra.Command{
		Use:   "end",
		Short: "Session-end checkpoint: flush unpushed changes",
		Long: `Run the session-end checkpoint: push every epic with unpushed local
changes and persist the cache. Intended to be invoked by the host
environment's idle or session-end hook.

Example:
  epicsync end`,
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

	if len(result.Failed) > 0 {
		ui.Warningf("%d epic(s) failed to push; they stay dirty for the next checkpoint", len(result.Failed))
	}
	return nil
}
