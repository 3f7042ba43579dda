//go:build !linux && !darwin && !windows

package power

//nolint:gochecknoglobals // Platform defaults.
var (
	defaultCommand string
	defaultArgs    []string
	defaultMarker  string
)
