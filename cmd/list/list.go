package list

import (
	"context"
	"fmt"
	"sort"

	"github.com/spf13/cobra"

	"github.com/cgardner/epicsync/internal/common"
	"github.com/cgardner/epicsync/internal/model"
	"github.com/cgardner/epicsync/internal/ui"
)

// Command lists the cached epics for the current repository.
type Command struct {
	Clients *common.Clients
}

// Register registers the command with cobra
func (c *Command) Register(parent *cobra.Command) {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List cached epics",
		Long: `List every epic tracked for the current repository, from the local
cache only. An asterisk marks epics with unpushed changes.

Example:
  epicsync list`,
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

// Run renders the epic table.
func (c *Command) Run(ctx context.Context) error {
	snap, err := c.Clients.Store.Load(c.Clients.Repo)
	if err != nil {
		return fmt.Errorf("failed to load cache: %w", err)
	}

	if len(snap.Epics) == 0 {
		ui.Info("No epics tracked yet. Import one with 'epicsync plan <file>'.")
		return nil
	}

	tbl := ui.NewEpicTable().Headers("#", "STATUS", "TITLE", "TASKS", "")
	for _, epic := range epicsInOrder(snap) {
		tbl.Row(
			fmt.Sprintf("%d", epic.Number),
			ui.StatusStyle(string(epic.Status)).Render(string(epic.Status)),
			epic.Title,
			tasksColumn(epic),
			dirtyMarker(epic),
		)
	}
	ui.Print(tbl.Render())
	return nil
}

func epicsInOrder(snap *model.Snapshot) []*model.Epic {
	var epics []*model.Epic
	for _, epic := range snap.Epics {
		epics = append(epics, epic)
	}
	sort.Slice(epics, func(i, j int) bool { return epics[i].Number < epics[j].Number })
	return epics
}

func tasksColumn(epic *model.Epic) string {
	if epic.IsExternal() {
		return ui.Dim("tracks " + epic.ExternalTarget)
	}
	closed := 0
	for _, item := range epic.SubItems {
		if item.State == "closed" {
			closed++
		}
	}
	return fmt.Sprintf("%d/%d", closed, len(epic.SubItems))
}

func dirtyMarker(epic *model.Epic) string {
	if epic.Dirty {
		return "*"
	}
	return ""
}
