package power

import (
	"context"
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/oshokin/battery-alarm/internal/config"
)

func skipWithoutShell(t *testing.T) {
	t.Helper()

	if runtime.GOOS == "windows" {
		t.Skip("requires a POSIX shell")
	}
}

// TestCommandQuerier covers mains, battery and failure outcomes of a status command.
func TestCommandQuerier(t *testing.T) {
	t.Parallel()
	skipWithoutShell(t)

	ctx := context.Background()

	status, err := NewCommandQuerier("sh", []string{"-c", "echo 'Adapter 0: on-line'"}, "on-line").Query(ctx)
	require.NoError(t, err)
	require.Equal(t, StatusMains, status)

	status, err = NewCommandQuerier("sh", []string{"-c", "echo 'Adapter 0: off-line'"}, "on-line").Query(ctx)
	require.NoError(t, err)
	require.Equal(t, StatusBattery, status)

	status, err = NewCommandQuerier("sh", []string{"-c", "exit 3"}, "on-line").Query(ctx)
	require.Error(t, err)
	require.Equal(t, StatusUnknown, status)

	status, err = NewCommandQuerier(filepath.Join(t.TempDir(), "no-such-acpi"), nil, "on-line").Query(ctx)
	require.Error(t, err)
	require.Equal(t, StatusUnknown, status)

	status, err = NewCommandQuerier("sh", []string{"-c", `printf '\377\376on-line'`}, "on-line").Query(ctx)
	require.ErrorIs(t, err, ErrInvalidOutput)
	require.Equal(t, StatusUnknown, status)
}

// TestCommandQuerier_Canceled ensures a canceled context fails the query.
func TestCommandQuerier_Canceled(t *testing.T) {
	t.Parallel()
	skipWithoutShell(t)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	status, err := NewCommandQuerier("sh", []string{"-c", "echo on-line"}, "on-line").Query(ctx)
	require.Error(t, err)
	require.Equal(t, StatusUnknown, status)
}

func writeSupply(t *testing.T, dir, name, kind, online string) {
	t.Helper()

	supply := filepath.Join(dir, name)
	require.NoError(t, os.MkdirAll(supply, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(supply, "type"), []byte(kind+"\n"), 0o600))

	if online != "" {
		require.NoError(t, os.WriteFile(filepath.Join(supply, "online"), []byte(online+"\n"), 0o600))
	}
}

// TestSysfsQuerier reads fake power_supply trees.
func TestSysfsQuerier(t *testing.T) {
	t.Parallel()

	ctx := context.Background()

	t.Run("mains online", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		writeSupply(t, dir, "BAT0", "Battery", "")
		writeSupply(t, dir, "AC", "Mains", "1")

		status, err := NewSysfsQuerier(dir).Query(ctx)
		require.NoError(t, err)
		require.Equal(t, StatusMains, status)
	})

	t.Run("mains offline", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		writeSupply(t, dir, "BAT0", "Battery", "")
		writeSupply(t, dir, "AC", "Mains", "0")
		writeSupply(t, dir, "ucsi-source-psy-USBC000:001", "USB", "0")

		status, err := NewSysfsQuerier(dir).Query(ctx)
		require.NoError(t, err)
		require.Equal(t, StatusBattery, status)
	})

	t.Run("usb online", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		writeSupply(t, dir, "AC", "Mains", "0")
		writeSupply(t, dir, "ucsi-source-psy-USBC000:001", "USB", "1")

		status, err := NewSysfsQuerier(dir).Query(ctx)
		require.NoError(t, err)
		require.Equal(t, StatusMains, status)
	})

	t.Run("no supply", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		writeSupply(t, dir, "BAT0", "Battery", "")

		status, err := NewSysfsQuerier(dir).Query(ctx)
		require.ErrorIs(t, err, ErrNoSupply)
		require.Equal(t, StatusUnknown, status)
	})

	t.Run("missing dir", func(t *testing.T) {
		t.Parallel()

		status, err := NewSysfsQuerier(filepath.Join(t.TempDir(), "absent")).Query(ctx)
		require.Error(t, err)
		require.Equal(t, StatusUnknown, status)
	})
}

// TestFromConfig picks the querier matching the configured source.
func TestFromConfig(t *testing.T) {
	t.Parallel()

	q, err := FromConfig(config.Power{Source: config.SourceSysfs, SysfsDir: "/tmp/ps"})
	require.NoError(t, err)
	require.IsType(t, new(SysfsQuerier), q)

	q, err = FromConfig(config.Power{Source: config.SourceCommand, Command: "acpi", Args: []string{"-a"}})
	require.NoError(t, err)

	cq, ok := q.(*CommandQuerier)
	require.True(t, ok)
	require.Equal(t, "acpi -a", cq.String())
	require.Equal(t, defaultMarker, cq.marker)

	_, err = FromConfig(config.Power{Source: "ups"})
	require.ErrorIs(t, err, errUnknownSource)
}

// TestStatusString documents the log names of each status.
func TestStatusString(t *testing.T) {
	t.Parallel()

	require.Equal(t, "mains", StatusMains.String())
	require.Equal(t, "battery", StatusBattery.String())
	require.Equal(t, "unknown", StatusUnknown.String())
}
