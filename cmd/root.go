package cmd

import (
	"context"
	"log"

	"github.com/spf13/cobra"

	"github.com/cgardner/epicsync/cmd/end"
	"github.com/cgardner/epicsync/cmd/event"
	"github.com/cgardner/epicsync/cmd/list"
	"github.com/cgardner/epicsync/cmd/plancmd"
	"github.com/cgardner/epicsync/cmd/show"
	"github.com/cgardner/epicsync/cmd/start"
	"github.com/cgardner/epicsync/cmd/synccmd"
	"github.com/cgardner/epicsync/internal/config"
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "epicsync",
	Short: "Sync tracked work plans with GitHub issues",
	Long: `Epicsync keeps a local cache of tracked work (epics and their tasks)
and reconciles it with GitHub issues at defined checkpoints.

Work plans become epics mirrored to issues, workflow events update the
cached status, and dirty epics are pushed in one batch at sync time.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return cmd.Help()
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute(ctx context.Context) {
	if err := config.Initialize(); err != nil {
		log.Fatal(err)
	}
	if err := rootCmd.ExecuteContext(ctx); err != nil {
		log.Fatal(err)
	}
}

func init() {
	// Register all commands
	commands := []Command{
		&plancmd.Command{},
		&event.Command{},
		&synccmd.Command{},
		&start.Command{},
		&end.Command{},
		&list.Command{},
		&show.Command{},
	}

	for _, cmd := range commands {
		cmd.Register(rootCmd)
	}
}
