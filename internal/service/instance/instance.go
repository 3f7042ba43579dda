// Package instance finds other running copies of this executable.
package instance

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/mitchellh/go-ps"
)

// Others returns the PIDs of other processes running the same executable as this one.
func Others() ([]int, error) {
	executable, err := os.Executable()
	if err != nil {
		return nil, fmt.Errorf("resolve executable: %w", err)
	}

	return othersNamed(filepath.Base(executable), os.Getpid())
}

func othersNamed(name string, self int) ([]int, error) {
	processList, err := ps.Processes()
	if err != nil {
		return nil, fmt.Errorf("list processes: %w", err)
	}

	var pids []int

	for _, process := range processList {
		if process.Pid() == self {
			continue
		}

		// Process names are truncated on some systems (15 bytes on Linux).
		if process.Executable() != name && process.Executable() != truncate(name) {
			continue
		}

		pids = append(pids, process.Pid())
	}

	return pids, nil
}

// linuxCommLength is the size of the kernel's comm field without the terminator.
const linuxCommLength = 15

func truncate(name string) string {
	if len(name) <= linuxCommLength {
		return name
	}

	return name[:linuxCommLength]
}
