package endpoint

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/mcpcall/mcpcall/internal/cmd"
	cmdopts "github.com/mcpcall/mcpcall/internal/cmd/options"
	"github.com/mcpcall/mcpcall/internal/config"
	"github.com/mcpcall/mcpcall/internal/flags"
)

// AddCmd should be used to represent the 'endpoint add' command.
type AddCmd struct {
	*cmd.BaseCmd
	cfgLoader config.Loader

	baseURL    string
	timeout    time.Duration
	maxRetries int
	healthPath string
	style      string
	tools      []string
}

// NewAddCmd creates a newly configured (Cobra) command.
func NewAddCmd(baseCmd *cmd.BaseCmd, opt ...cmdopts.CmdOption) (*cobra.Command, error) {
	opts, err := cmdopts.NewOptions(opt...)
	if err != nil {
		return nil, err
	}

	c := &AddCmd{
		BaseCmd:   baseCmd,
		cfgLoader: opts.ConfigLoader,
	}

	cobraCommand := &cobra.Command{
		Use:   "add <endpoint-name>",
		Short: "Adds an endpoint to the project configuration.",
		Long: `Adds an endpoint to the project config file.
The base URL is required; timeout, retry budget, health path, call style,
and allowed tools fall back to defaults when not given.`,
		Args: cobra.ExactArgs(1),
		RunE: c.run,
	}

	cobraCommand.Flags().StringVar(&c.baseURL, "base-url", "", "Base URL of the endpoint (required)")
	cobraCommand.Flags().DurationVar(&c.timeout, "timeout", 0, "Per-attempt timeout (default 30s)")
	cobraCommand.Flags().IntVar(&c.maxRetries, "max-retries", 0, "Attempts before a call is reported failed (default 3)")
	cobraCommand.Flags().StringVar(&c.healthPath, "health-path", "", "Health probe path (default /health)")
	cobraCommand.Flags().StringVar(
		&c.style,
		"style",
		"",
		fmt.Sprintf("Call style, one of: %s, %s (default %s)", config.StylePath, config.StyleEnvelope, config.DefaultStyle),
	)
	cobraCommand.Flags().StringArrayVar(&c.tools, "tool", nil, "Allowed tool name (repeatable; empty allows every tool)")

	_ = cobraCommand.MarkFlagRequired("base-url")

	return cobraCommand, nil
}

// run is configured (via NewAddCmd) to be called by the Cobra framework when the command is executed.
func (c *AddCmd) run(cobraCmd *cobra.Command, args []string) error {
	logger := c.Logger()

	name := strings.TrimSpace(args[0])
	if name == "" {
		return fmt.Errorf("endpoint name is required and cannot be empty")
	}

	cfg, err := c.cfgLoader.Load(flags.ConfigFile)
	if err != nil {
		return err
	}

	entry := config.EndpointEntry{
		Name:       name,
		BaseURL:    strings.TrimSpace(c.baseURL),
		Timeout:    config.Duration(c.timeout),
		MaxRetries: c.maxRetries,
		HealthPath: c.healthPath,
		Style:      c.style,
	}
	for _, tool := range c.tools {
		entry.Tools = append(entry.Tools, config.ToolEntry{Name: strings.TrimSpace(tool)})
	}

	if err := cfg.AddEndpoint(entry); err != nil {
		return err
	}

	logger.Debug("Endpoint added", "name", name, "base_url", entry.BaseURL)
	fmt.Fprintf(cobraCmd.OutOrStdout(), "✓ Added endpoint '%s' (%s)\n", name, entry.BaseURL)

	return nil
}
