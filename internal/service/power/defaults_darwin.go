//go:build darwin

package power

// pmset -g batt starts with "Now drawing from 'AC Power'" while plugged in.
//
//nolint:gochecknoglobals // Platform defaults.
var (
	defaultCommand = "pmset"
	defaultArgs    = []string{"-g", "batt"}
	defaultMarker  = "'AC Power'"
)
