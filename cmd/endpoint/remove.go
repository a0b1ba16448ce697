package endpoint

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/mcpcall/mcpcall/internal/cmd"
	cmdopts "github.com/mcpcall/mcpcall/internal/cmd/options"
	"github.com/mcpcall/mcpcall/internal/config"
	"github.com/mcpcall/mcpcall/internal/flags"
)

// RemoveCmd should be used to represent the 'endpoint remove' command.
type RemoveCmd struct {
	*cmd.BaseCmd
	cfgLoader config.Loader
}

// NewRemoveCmd creates a newly configured (Cobra) command.
func NewRemoveCmd(baseCmd *cmd.BaseCmd, opt ...cmdopts.CmdOption) (*cobra.Command, error) {
	opts, err := cmdopts.NewOptions(opt...)
	if err != nil {
		return nil, err
	}

	c := &RemoveCmd{
		BaseCmd:   baseCmd,
		cfgLoader: opts.ConfigLoader,
	}

	cobraCommand := &cobra.Command{
		Use:   "remove <endpoint-name>",
		Short: "Removes an endpoint from the project configuration.",
		Args:  cobra.ExactArgs(1),
		RunE:  c.run,
	}

	return cobraCommand, nil
}

// run is configured (via NewRemoveCmd) to be called by the Cobra framework when the command is executed.
func (c *RemoveCmd) run(cobraCmd *cobra.Command, args []string) error {
	logger := c.Logger()

	name := strings.TrimSpace(args[0])
	if name == "" {
		return fmt.Errorf("endpoint name is required and cannot be empty")
	}

	cfg, err := c.cfgLoader.Load(flags.ConfigFile)
	if err != nil {
		return err
	}

	if err := cfg.RemoveEndpoint(name); err != nil {
		return err
	}

	logger.Debug("Endpoint removed", "name", name)
	fmt.Fprintf(cobraCmd.OutOrStdout(), "✓ Removed endpoint '%s'\n", name)

	return nil
}
