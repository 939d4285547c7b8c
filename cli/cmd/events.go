package cmd

import (
	"github.com/urfave/cli/v2"

	"github.com/pithecene-io/midiwire/cli/reader"
)

// TrackFlag limits the events listing to a single track index.
var TrackFlag = &cli.IntFlag{
	Name:    "track",
	Aliases: []string{"t"},
	Usage:   "Only list events from this track index",
	Value:   -1,
}

// EventsCommand returns the events command.
// Events lists every decoded track event with its delta, absolute tick,
// kind label and detail.
func EventsCommand() *cli.Command {
	return &cli.Command{
		Name:      "events",
		Usage:     "List decoded track events",
		ArgsUsage: "<file.mid>",
		Flags:     append(ReadOnlyFlags(), TrackFlag),
		Action:    eventsAction,
	}
}

func eventsAction(c *cli.Context) error {
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
	logger := newLogger(c, cfg, "events").With("file", path)

	f, _, err := reader.ReadFile(path)
	if err != nil {
		return cli.Exit(err.Error(), 1)
	}

	track := c.Int("track")
	if track >= len(f.Tracks) {
		return cli.Exit("track index out of range", 1)
	}

	records := reader.Events(f, track)
	logger.Debugf("flattened %d events", len(records))

	return r.Render(records)
}
