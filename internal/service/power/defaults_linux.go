//go:build linux

package power

// acpi -a prints e.g. "Adapter 0: on-line".
//
//nolint:gochecknoglobals // Platform defaults.
var (
	defaultCommand = "acpi"
	defaultArgs    = []string{"-a"}
	defaultMarker  = "on-line"
)
