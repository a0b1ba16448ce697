package cmd

import (
	"github.com/spf13/cobra"

	"github.com/mcpcall/mcpcall/cmd/endpoint"
	"github.com/mcpcall/mcpcall/internal/cmd"
	cmdopts "github.com/mcpcall/mcpcall/internal/cmd/options"
	"github.com/mcpcall/mcpcall/internal/flags"
)

var version = "dev" // Set at build time using -ldflags

type RootCmd struct {
	*cmd.BaseCmd
}

func Execute() error {
	rootCmd, err := NewRootCmd(&cmd.BaseCmd{})
	if err != nil {
		return err
	}

	return rootCmd.Execute()
}

func NewRootCmd(baseCmd *cmd.BaseCmd, opt ...cmdopts.CmdOption) (*cobra.Command, error) {
	c := &RootCmd{
		BaseCmd: baseCmd,
	}

	rootCmd := &cobra.Command{
		Use:          "mcpcall <command> [args]",
		Short:        "'mcpcall' is a resilient client for calling tools on MCP-style HTTP servers.",
		Long:         c.longDescription(),
		SilenceUsage: true,
		Version:      version,
	}

	// Global flags
	flags.InitFlags(rootCmd.PersistentFlags())

	initCmd, err := NewInitCmd(baseCmd, opt...)
	if err != nil {
		return nil, err
	}
	callCmd, err := NewCallCmd(baseCmd, opt...)
	if err != nil {
		return nil, err
	}
	healthCmd, err := NewHealthCmd(baseCmd, opt...)
	if err != nil {
		return nil, err
	}
	exportCmd, err := NewExportCmd(baseCmd, opt...)
	if err != nil {
		return nil, err
	}
	endpointCmd, err := endpoint.NewCmd(baseCmd, opt...)
	if err != nil {
		return nil, err
	}

	rootCmd.AddCommand(initCmd)
	rootCmd.AddCommand(callCmd)
	rootCmd.AddCommand(healthCmd)
	rootCmd.AddCommand(exportCmd)
	rootCmd.AddCommand(endpointCmd)

	return rootCmd, nil
}

func (c *RootCmd) longDescription() string {
	return `The 'mcpcall' CLI calls tools on MCP-style HTTP servers with health gating,
bounded retries, and exponential backoff, and normalizes the structurally
inconsistent responses those servers return (nested content wrappers, flat
objects, bare strings, inline base64 media).`
}
