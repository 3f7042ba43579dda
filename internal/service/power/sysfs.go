package power

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// SysfsQuerier reads /sys/class/power_supply.
// Any online supply of an external type means mains.
type SysfsQuerier struct {
	dir string
}

// externalSupplyTypes are power_supply types that deliver external power.
//
//nolint:gochecknoglobals // Read-only lookup table.
var externalSupplyTypes = map[string]struct{}{
	"Mains":  {},
	"USB":    {},
	"USB_C":  {},
	"USB_PD": {},
}

// NewSysfsQuerier returns a querier reading supplies under dir.
func NewSysfsQuerier(dir string) *SysfsQuerier {
	return &SysfsQuerier{dir: filepath.Clean(dir)}
}

// Query scans the supplies once.
func (q *SysfsQuerier) Query(ctx context.Context) (Status, error) {
	if err := ctx.Err(); err != nil {
		return StatusUnknown, err
	}

	entries, err := os.ReadDir(q.dir)
	if err != nil {
		return StatusUnknown, fmt.Errorf("list power supplies: %w", err)
	}

	found := false

	for _, entry := range entries {
		supplyDir := filepath.Join(q.dir, entry.Name())

		kind, err := readAttribute(supplyDir, "type")
		if err != nil {
			continue
		}

		if _, ok := externalSupplyTypes[kind]; !ok {
			continue
		}

		online, err := readAttribute(supplyDir, "online")
		if err != nil {
			continue
		}

		found = true

		if online == "1" {
			return StatusMains, nil
		}
	}

	if !found {
		return StatusUnknown, fmt.Errorf("%s: %w", q.dir, ErrNoSupply)
	}

	return StatusBattery, nil
}

// String describes the source for logs.
func (q *SysfsQuerier) String() string {
	return "sysfs " + q.dir
}

func readAttribute(dir, name string) (string, error) {
	contents, err := os.ReadFile(filepath.Join(dir, name))
	if err != nil {
		return "", err
	}

	return strings.TrimSpace(string(contents)), nil
}
