package cmd

import (
	"github.com/urfave/cli/v2"

	"github.com/pithecene-io/midiwire/midi"
)

// VersionResponse is the response for the version command.
type VersionResponse struct {
	Version string `json:"version"`
	Commit  string `json:"commit"`
}

// VersionCommand returns the version command.
// All packages share a single version (lockstep versioning).
func VersionCommand(commit string) *cli.Command {
	return &cli.Command{
		Name:   "version",
		Usage:  "Show version information",
		Flags:  ReadOnlyFlags(),
		Action: versionAction(commit),
	}
}

func versionAction(commit string) cli.ActionFunc {
	return func(c *cli.Context) error {
		cfg, err := loadConfig(c)
		if err != nil {
			return err
		}
		r, err := newRenderer(c, cfg)
		if err != nil {
			return err
		}

		resp := VersionResponse{
			Version: midi.Version,
			Commit:  commit,
		}

		return r.Render(resp)
	}
}
