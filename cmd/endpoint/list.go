package endpoint

import (
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/mcpcall/mcpcall/internal/cmd"
	cmdopts "github.com/mcpcall/mcpcall/internal/cmd/options"
	"github.com/mcpcall/mcpcall/internal/config"
	"github.com/mcpcall/mcpcall/internal/flags"
)

// ListCmd should be used to represent the 'endpoint list' command.
type ListCmd struct {
	*cmd.BaseCmd
	cfgLoader config.Loader
}

// NewListCmd creates a newly configured (Cobra) command.
func NewListCmd(baseCmd *cmd.BaseCmd, opt ...cmdopts.CmdOption) (*cobra.Command, error) {
	opts, err := cmdopts.NewOptions(opt...)
	if err != nil {
		return nil, err
	}

	c := &ListCmd{
		BaseCmd:   baseCmd,
		cfgLoader: opts.ConfigLoader,
	}

	cobraCommand := &cobra.Command{
		Use:   "list",
		Short: "Lists configured endpoints.",
		RunE:  c.run,
	}

	return cobraCommand, nil
}

// run is configured (via NewListCmd) to be called by the Cobra framework when the command is executed.
func (c *ListCmd) run(cobraCmd *cobra.Command, _ []string) error {
	cfg, err := c.cfgLoader.Load(flags.ConfigFile)
	if err != nil {
		return err
	}

	endpoints := cfg.ListEndpoints()
	if len(endpoints) == 0 {
		fmt.Fprintln(cobraCmd.OutOrStdout(), "No endpoints configured, run: 'mcpcall endpoint add'")
		return nil
	}

	w := tabwriter.NewWriter(cobraCmd.OutOrStdout(), 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "NAME\tBASE URL\tSTYLE\tTIMEOUT\tRETRIES\tTOOLS")
	for _, e := range endpoints {
		tools := "*"
		if len(e.Tools) > 0 {
			tools = strings.Join(e.ToolNames(), ",")
		}
		fmt.Fprintf(
			w,
			"%s\t%s\t%s\t%s\t%d\t%s\n",
			e.Name, e.BaseURL, e.EffectiveStyle(), e.EffectiveTimeout(), e.EffectiveMaxRetries(), tools,
		)
	}

	return w.Flush()
}
