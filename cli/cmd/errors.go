package cmd

import (
	"errors"

	"github.com/pithecene-io/midiwire/midi"
)

// parseErrorKind extracts a stable label from a decode failure for
// metrics tallies. Non-codec errors tally as "io".
func parseErrorKind(err error) string {
	var perr *midi.ParseError
	if errors.As(err, &perr) {
		return perr.Kind.String()
	}
	return "io"
}
