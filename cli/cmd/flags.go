// Package cmd provides CLI commands for the midiwire binary.
package cmd

import (
	"io"
	"os"

	"github.com/urfave/cli/v2"

	"github.com/pithecene-io/midiwire/cli/config"
	"github.com/pithecene-io/midiwire/cli/render"
	"github.com/pithecene-io/midiwire/log"
)

// Shared flags for all commands.
var (
	// FormatFlag selects output format: json, table, yaml.
	FormatFlag = &cli.StringFlag{
		Name:    "format",
		Aliases: []string{"f"},
		Usage:   "Output format: json, table, yaml",
	}

	// NoColorFlag disables colored output.
	NoColorFlag = &cli.BoolFlag{
		Name:  "no-color",
		Usage: "Disable colored output",
	}

	// VerboseFlag enables debug logging on stderr.
	VerboseFlag = &cli.BoolFlag{
		Name:    "verbose",
		Aliases: []string{"v"},
		Usage:   "Log debug detail to stderr",
	}

	// ConfigFlag points at a midiwire.yaml config file.
	ConfigFlag = &cli.StringFlag{
		Name:    "config",
		Aliases: []string{"c"},
		Usage:   "Path to midiwire.yaml (defaults to ./midiwire.yaml if present)",
	}
)

// ReadOnlyFlags returns the shared flags for all read-only commands.
func ReadOnlyFlags() []cli.Flag {
	return []cli.Flag{
		FormatFlag,
		NoColorFlag,
		VerboseFlag,
		ConfigFlag,
	}
}

// loadConfig resolves the config file for a command. A missing --config
// flag falls back to ./midiwire.yaml when that file exists; otherwise an
// empty config is returned so flags alone drive behavior.
func loadConfig(c *cli.Context) (*config.Config, error) {
	path := c.String("config")
	if path == "" {
		if _, err := os.Stat("midiwire.yaml"); err != nil {
			return &config.Config{}, nil
		}
		path = "midiwire.yaml"
	}
	return config.Load(path)
}

// newRenderer builds a renderer, letting config values stand in for
// unset flags. Flags always win.
func newRenderer(c *cli.Context, cfg *config.Config) (*render.Renderer, error) {
	if c.String("format") == "" && cfg.Format != "" {
		if err := c.Set("format", cfg.Format); err != nil {
			return nil, err
		}
	}
	if cfg.NoColor && !c.Bool("no-color") {
		if err := c.Set("no-color", "true"); err != nil {
			return nil, err
		}
	}
	return render.NewRenderer(c)
}

// newLogger builds a command-scoped debug logger. Silent unless
// --verbose or the config's verbose field is set.
func newLogger(c *cli.Context, cfg *config.Config, command string) *log.SugaredLogger {
	l := log.NewLogger(command)
	if !c.Bool("verbose") && !cfg.Verbose {
		l = l.WithOutput(io.Discard)
	}
	return l.Sugar()
}
