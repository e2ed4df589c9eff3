package cmd

import "github.com/spf13/cobra"

// Command is the interface implemented by all epicsync subcommands.
type Command interface {
	// Register adds this command to the parent command
	Register(parent *cobra.Command)
}
