package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/mcpcall/mcpcall/internal/cmd"
	cmdopts "github.com/mcpcall/mcpcall/internal/cmd/options"
	"github.com/mcpcall/mcpcall/internal/config"
	"github.com/mcpcall/mcpcall/internal/flags"
	"github.com/mcpcall/mcpcall/internal/perms"
)

// ExportCmd should be used to represent the 'export' command.
type ExportCmd struct {
	*cmd.BaseCmd
	cfgLoader config.Loader

	output string
}

// NewExportCmd creates a newly configured (Cobra) command.
func NewExportCmd(baseCmd *cmd.BaseCmd, opt ...cmdopts.CmdOption) (*cobra.Command, error) {
	opts, err := cmdopts.NewOptions(opt...)
	if err != nil {
		return nil, err
	}

	c := &ExportCmd{
		BaseCmd:   baseCmd,
		cfgLoader: opts.ConfigLoader,
	}

	cobraCommand := &cobra.Command{
		Use:   "export",
		Short: "Exports the endpoint registry as YAML.",
		Long: `Exports the endpoint registry as YAML for use in CI or other tooling.
The export carries no secrets: endpoint addresses, retry policy, and tool
allow-lists only.`,
		RunE: c.run,
	}

	cobraCommand.Flags().StringVar(
		&c.output,
		"output",
		"",
		"Optional, specify the output file path (defaults to stdout)",
	)

	return cobraCommand, nil
}

// run is configured (via NewExportCmd) to be called by the Cobra framework when the command is executed.
func (c *ExportCmd) run(cobraCmd *cobra.Command, _ []string) error {
	cfg, err := c.cfgLoader.Load(flags.ConfigFile)
	if err != nil {
		return err
	}

	if c.output == "" {
		return config.ExportYAML(cobraCmd.OutOrStdout(), cfg.ListEndpoints())
	}

	f, err := os.OpenFile(c.output, os.O_CREATE|os.O_TRUNC|os.O_WRONLY, perms.RegularFile)
	if err != nil {
		return fmt.Errorf("failed to open output file %s: %w", c.output, err)
	}
	defer func() { _ = f.Close() }()

	if err := config.ExportYAML(f, cfg.ListEndpoints()); err != nil {
		return err
	}

	fmt.Fprintf(cobraCmd.OutOrStdout(), "✓ Endpoints exported: %s\n", c.output)

	return nil
}
