// Package endpoint groups the commands that manage endpoint entries in the
// project configuration file.
package endpoint

import (
	"github.com/spf13/cobra"

	"github.com/mcpcall/mcpcall/internal/cmd"
	cmdopts "github.com/mcpcall/mcpcall/internal/cmd/options"
)

// NewCmd creates the parent 'endpoint' command with its subcommands attached.
func NewCmd(baseCmd *cmd.BaseCmd, opt ...cmdopts.CmdOption) (*cobra.Command, error) {
	cobraCommand := &cobra.Command{
		Use:   "endpoint <command> [args]",
		Short: "Manages configured endpoints.",
	}

	addCmd, err := NewAddCmd(baseCmd, opt...)
	if err != nil {
		return nil, err
	}
	removeCmd, err := NewRemoveCmd(baseCmd, opt...)
	if err != nil {
		return nil, err
	}
	listCmd, err := NewListCmd(baseCmd, opt...)
	if err != nil {
		return nil, err
	}

	cobraCommand.AddCommand(addCmd)
	cobraCommand.AddCommand(removeCmd)
	cobraCommand.AddCommand(listCmd)

	return cobraCommand, nil
}
