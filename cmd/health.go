package cmd

import (
	"fmt"
	"slices"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/mcpcall/mcpcall/internal/client"
	"github.com/mcpcall/mcpcall/internal/cmd"
	cmdopts "github.com/mcpcall/mcpcall/internal/cmd/options"
	"github.com/mcpcall/mcpcall/internal/config"
	mcperrors "github.com/mcpcall/mcpcall/internal/errors"
	"github.com/mcpcall/mcpcall/internal/flags"
)

// HealthCmd should be used to represent the 'health' command.
type HealthCmd struct {
	*cmd.BaseCmd
	cfgLoader  config.Loader
	clientOpts []client.Option
}

// NewHealthCmd creates a newly configured (Cobra) command.
func NewHealthCmd(baseCmd *cmd.BaseCmd, opt ...cmdopts.CmdOption) (*cobra.Command, error) {
	opts, err := cmdopts.NewOptions(opt...)
	if err != nil {
		return nil, err
	}

	c := &HealthCmd{
		BaseCmd:    baseCmd,
		cfgLoader:  opts.ConfigLoader,
		clientOpts: opts.ClientOptions,
	}

	cobraCommand := &cobra.Command{
		Use:   "health [endpoint...]",
		Short: "Probes the health of configured endpoints.",
		Long: `Probes the health of configured endpoints concurrently and reports status,
latency, and the time of the last successful probe. With no arguments every
configured endpoint is probed.`,
		RunE: c.run,
	}

	return cobraCommand, nil
}

// run is configured (via NewHealthCmd) to be called by the Cobra framework when the command is executed.
func (c *HealthCmd) run(cobraCmd *cobra.Command, args []string) error {
	logger := c.Logger()

	cfg, err := c.cfgLoader.Load(flags.ConfigFile)
	if err != nil {
		return err
	}

	endpoints := cfg.ListEndpoints()
	if len(args) > 0 {
		filtered := make([]config.EndpointEntry, 0, len(args))
		for _, name := range args {
			entry, ok := cfg.Endpoint(name)
			if !ok {
				return fmt.Errorf("%w: %s", mcperrors.ErrEndpointNotFound, name)
			}
			filtered = append(filtered, entry)
		}
		endpoints = filtered
	}

	if len(endpoints) == 0 {
		fmt.Fprintln(cobraCmd.OutOrStdout(), "No endpoints configured, run: 'mcpcall endpoint add'")
		return nil
	}

	clientOpts := append([]client.Option{client.WithLogger(logger)}, c.clientOpts...)
	manager, err := client.NewManagerFromConfig(endpoints, clientOpts...)
	if err != nil {
		return err
	}

	records := manager.CheckAll(cobraCmd.Context())

	w := tabwriter.NewWriter(cobraCmd.OutOrStdout(), 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ENDPOINT\tSTATUS\tLATENCY\tLAST SUCCESSFUL")
	for _, r := range records {
		latency := "-"
		if r.Latency != nil {
			latency = time.Duration(*r.Latency).Round(time.Millisecond).String()
		}
		lastOK := "never"
		if r.LastSuccessful != nil {
			lastOK = r.LastSuccessful.UTC().Format(time.RFC3339)
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", r.Name, r.Status, latency, lastOK)
	}
	if err := w.Flush(); err != nil {
		return err
	}

	// Non-zero exit when any probed endpoint is down, so the command can
	// gate scripts the way the ad-hoc health checks used to.
	var down []string
	for _, r := range records {
		if r.Status != client.HealthStatusOK {
			down = append(down, r.Name)
		}
	}
	if len(down) > 0 {
		slices.Sort(down)
		return fmt.Errorf("%w: %v", mcperrors.ErrUnavailable, down)
	}

	return nil
}
