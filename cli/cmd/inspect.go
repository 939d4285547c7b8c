package cmd

import (
	"github.com/urfave/cli/v2"

	"github.com/pithecene-io/midiwire/cli/reader"
)

// InspectCommand returns the inspect command.
// Inspect returns a deep view of a single Standard MIDI File: header
// fields plus a per-chunk summary.
func InspectCommand() *cli.Command {
	return &cli.Command{
		Name:      "inspect",
		Usage:     "Summarize a Standard MIDI File (header, tracks, channels)",
		ArgsUsage: "<file.mid>",
		Flags:     ReadOnlyFlags(),
		Action:    inspectAction,
	}
}

func inspectAction(c *cli.Context) error {
	if c.NArg() < 1 {
		return cli.Exit("file path required", 1)
	}
	path := c.Args().First()

	cfg, err := loadConfig(c)
	if err != nil {
		return err
	}
	r, err := newRenderer(c, cfg)
	if err != nil {
		return err
	}
	logger := newLogger(c, cfg, "inspect").With("file", path)

	f, size, err := reader.ReadFile(path)
	if err != nil {
		return cli.Exit(err.Error(), 1)
	}
	logger.Debugf("decoded %d chunks from %d bytes", len(f.Tracks), size)

	return r.Render(reader.Summarize(path, f, size))
}
