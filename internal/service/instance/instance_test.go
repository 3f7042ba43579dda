package instance

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

// TestOthers_ExcludesSelf makes sure the current process never reports itself.
func TestOthers_ExcludesSelf(t *testing.T) {
	t.Parallel()

	pids, err := Others()
	require.NoError(t, err)
	require.NotContains(t, pids, os.Getpid())
}

// TestOthersNamed_FindsSelfUnderAnotherPID pretends to be a different process with our name.
func TestOthersNamed_FindsSelfUnderAnotherPID(t *testing.T) {
	t.Parallel()

	executable, err := os.Executable()
	require.NoError(t, err)

	pids, err := othersNamed(filepath.Base(executable), -1)
	require.NoError(t, err)
	require.Contains(t, pids, os.Getpid())
}

// TestTruncate mirrors the kernel comm length limit.
func TestTruncate(t *testing.T) {
	t.Parallel()

	require.Equal(t, "battery-alarm", truncate("battery-alarm"))
	require.Equal(t, "battery-alarm.t", truncate("battery-alarm.test"))
}
