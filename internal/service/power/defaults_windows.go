//go:build windows

package power

// PowerLineStatus prints Online, Offline or Unknown.
//
//nolint:gochecknoglobals // Platform defaults.
var (
	defaultCommand = "powershell.exe"
	defaultArgs    = []string{
		"-NoProfile",
		"-NonInteractive",
		"-Command",
		"Add-Type -AssemblyName System.Windows.Forms; " +
			"[System.Windows.Forms.SystemInformation]::PowerStatus.PowerLineStatus",
	}
	defaultMarker = "Online"
)
