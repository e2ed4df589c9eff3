package show

import (
	"context"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/cgardner/epicsync/internal/common"
	"github.com/cgardner/epicsync/internal/engine"
	"github.com/cgardner/epicsync/internal/ui"
)

// Command shows one cached epic in detail.
type Command struct {
	// Flags
	Body bool // print the rendered canonical issue body instead

	Clients *common.Clients
}

// Register registers the command with cobra
func (c *Command) Register(parent *cobra.Command) {
	cmd := &cobra.Command{
		Use:   "show <number>",
		Short: "Show one cached epic",
		Long: `Show a cached epic: status, tasks or external checklist, and the
journey log.

Use --body to print the canonical issue body exactly as the next sync
would push it.

Example:
  epicsync show 10
  epicsync show 10 --body`,
		Args: cobra.ExactArgs(1),
		PreRunE: func(cobraCmd *cobra.Command, args []string) error {
			var err error
			c.Clients, err = common.InitClients()
			return err
		},
		RunE: func(cobraCmd *cobra.Command, args []string) error {
			number, err := strconv.Atoi(args[0])
			if err != nil {
				return fmt.Errorf("invalid epic number %q", args[0])
			}
			return c.Run(cobraCmd.Context(), number)
		},
	}

	cmd.Flags().BoolVar(&c.Body, "body", false, "Print the rendered canonical issue body")

	parent.AddCommand(cmd)
}

// Run prints one epic.
func (c *Command) Run(ctx context.Context, number int) error {
	snap, err := c.Clients.Store.Load(c.Clients.Repo)
	if err != nil {
		return fmt.Errorf("failed to load cache: %w", err)
	}

	epic, ok := snap.Epics[number]
	if !ok {
		return fmt.Errorf("epic #%d is not tracked", number)
	}

	if c.Body {
		ui.Print(engine.RenderBody(epic))
		return nil
	}

	ui.Header(fmt.Sprintf("Epic #%d: %s", epic.Number, epic.Title))
	ui.Printf("Status: %s   State: %s   Priority: P%d\n",
		ui.StatusStyle(string(epic.Status)).Render(string(epic.Status)), epic.State, epic.Priority)
	if epic.Dirty {
		ui.Print(ui.Dim("Has unpushed changes"))
	}
	if epic.PlanPath != "" {
		ui.Print(ui.Dim("Plan: " + epic.PlanPath))
	}
	if epic.URL != "" {
		ui.Print(ui.Dim(epic.URL))
	}

	if epic.IsExternal() {
		ui.Header("External checklist (" + epic.ExternalTarget + ")")
		if epic.ExternalChecklist == "" {
			ui.Print(ui.Dim("Not reconciled yet"))
		} else {
			ui.Print(epic.ExternalChecklist)
		}
	} else {
		ui.Header("Tasks")
		for _, item := range epic.SubItems {
			box := "[ ]"
			if item.State == "closed" {
				box = "[x]"
			}
			ui.Printf("%s #%d %s\n", box, item.Number, item.Title)
		}
	}

	ui.Header("Journey")
	for _, entry := range epic.Journey {
		ui.Print(entry.Line())
	}
	return nil
}
