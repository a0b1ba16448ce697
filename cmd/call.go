package cmd

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/mcpcall/mcpcall/internal/client"
	"github.com/mcpcall/mcpcall/internal/cmd"
	cmdopts "github.com/mcpcall/mcpcall/internal/cmd/options"
	"github.com/mcpcall/mcpcall/internal/config"
	mcperrors "github.com/mcpcall/mcpcall/internal/errors"
	"github.com/mcpcall/mcpcall/internal/extract"
	"github.com/mcpcall/mcpcall/internal/flags"
	"github.com/mcpcall/mcpcall/internal/perms"
)

// CallCmd should be used to represent the 'call' command.
type CallCmd struct {
	*cmd.BaseCmd
	cfgLoader  config.Loader
	clientOpts []client.Option

	argPairs  []string
	argsJSON  string
	saveMedia bool
	outputDir string
}

// NewCallCmd creates a newly configured (Cobra) command.
func NewCallCmd(baseCmd *cmd.BaseCmd, opt ...cmdopts.CmdOption) (*cobra.Command, error) {
	opts, err := cmdopts.NewOptions(opt...)
	if err != nil {
		return nil, err
	}

	c := &CallCmd{
		BaseCmd:    baseCmd,
		cfgLoader:  opts.ConfigLoader,
		clientOpts: opts.ClientOptions,
	}

	cobraCommand := &cobra.Command{
		Use:   "call <endpoint> <tool>",
		Short: "Calls a tool on a configured endpoint.",
		Long:  c.longDescription(),
		Args:  cobra.ExactArgs(2),
		RunE:  c.run,
	}

	cobraCommand.Flags().StringArrayVar(
		&c.argPairs,
		"arg",
		nil,
		"Tool argument as key=value (repeatable); values that parse as JSON are passed typed",
	)
	cobraCommand.Flags().StringVar(
		&c.argsJSON,
		"json",
		"",
		"Tool arguments as a single JSON object (mutually exclusive with --arg)",
	)
	cobraCommand.Flags().BoolVar(
		&c.saveMedia,
		"save-media",
		false,
		"Save any embedded media found in the response to files",
	)
	cobraCommand.Flags().StringVar(
		&c.outputDir,
		"output-dir",
		"generated_media",
		"Directory for saved media files",
	)

	return cobraCommand, nil
}

// longDescription returns the long version of the command description.
func (c *CallCmd) longDescription() string {
	return `Calls a tool on a configured endpoint.

The endpoint's health is checked first (cached for 30 seconds); the call is
then attempted with the endpoint's retry budget and exponential backoff.
The response is normalized: the primary text is printed to stdout, and with
--save-media any embedded data URLs or base64 blobs are decoded and saved.`
}

// run is configured (via NewCallCmd) to be called by the Cobra framework when the command is executed.
func (c *CallCmd) run(cobraCmd *cobra.Command, args []string) error {
	logger := c.Logger()

	endpointName := strings.TrimSpace(args[0])
	toolName := strings.TrimSpace(args[1])
	if endpointName == "" || toolName == "" {
		return fmt.Errorf("endpoint and tool names are required and cannot be empty")
	}

	toolArgs, err := c.parseArgs()
	if err != nil {
		return err
	}

	cfg, err := c.cfgLoader.Load(flags.ConfigFile)
	if err != nil {
		return err
	}

	entry, ok := cfg.Endpoint(endpointName)
	if !ok {
		return fmt.Errorf("%w: %s", mcperrors.ErrEndpointNotFound, endpointName)
	}

	clientOpts := append([]client.Option{client.WithLogger(logger)}, c.clientOpts...)
	cl, err := client.New(entry, clientOpts...)
	if err != nil {
		return err
	}

	result, err := cl.CallTool(cobraCmd.Context(), toolName, toolArgs)
	if err != nil {
		return err
	}

	payload, err := extract.FromPayload(result.Payload)
	if errors.Is(err, mcperrors.ErrMalformedResponse) {
		// The call itself succeeded; show the raw body so the response can
		// be diagnosed without re-running.
		fmt.Fprintln(cobraCmd.OutOrStdout(), string(result.Payload))
		return err
	} else if err != nil {
		return err
	}

	if payload.PrimaryText != "" {
		fmt.Fprintln(cobraCmd.OutOrStdout(), payload.PrimaryText)
	}

	if !c.saveMedia || len(payload.Media) == 0 {
		return nil
	}

	return c.writeMedia(cobraCmd, toolName, payload.Media)
}

func (c *CallCmd) writeMedia(cobraCmd *cobra.Command, toolName string, media []extract.Media) error {
	if err := os.MkdirAll(c.outputDir, perms.RegularDir); err != nil {
		return fmt.Errorf("failed to create output directory %s: %w", c.outputDir, err)
	}

	now := time.Now()
	for i, m := range media {
		name := extract.Filename(now, toolName, i, len(media), m.MediaType)
		path := filepath.Join(c.outputDir, name)
		if err := os.WriteFile(path, m.Data, perms.RegularFile); err != nil {
			return fmt.Errorf("failed to save media to %s: %w", path, err)
		}
		fmt.Fprintf(cobraCmd.OutOrStdout(), "✓ Saved media (%d bytes): %s\n", len(m.Data), path)
	}

	return nil
}

// parseArgs builds the tool argument map from --json or repeated --arg pairs.
// Values of --arg that parse as JSON are passed through typed, so
// --arg limit=5 sends a number and --arg query=hello sends a string.
func (c *CallCmd) parseArgs() (map[string]any, error) {
	if c.argsJSON != "" && len(c.argPairs) > 0 {
		return nil, fmt.Errorf("--json and --arg are mutually exclusive")
	}

	if c.argsJSON != "" {
		var parsed map[string]any
		if err := json.Unmarshal([]byte(c.argsJSON), &parsed); err != nil {
			return nil, fmt.Errorf("failed to parse --json value: %w", err)
		}
		return parsed, nil
	}

	parsed := make(map[string]any, len(c.argPairs))
	for _, pair := range c.argPairs {
		key, value, found := strings.Cut(pair, "=")
		if !found || strings.TrimSpace(key) == "" {
			return nil, fmt.Errorf("invalid --arg %q, expected key=value", pair)
		}

		var typed any
		if err := json.Unmarshal([]byte(value), &typed); err == nil {
			parsed[key] = typed
		} else {
			parsed[key] = value
		}
	}

	return parsed, nil
}
