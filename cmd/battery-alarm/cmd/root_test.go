package cmd

import (
	"testing"

	"github.com/stretchr/testify/require"
)

// TestRootCommand_Subcommands lists the commands a user can run.
func TestRootCommand_Subcommands(t *testing.T) {
	t.Parallel()

	for _, name := range []string{"run", "status", "toggle"} {
		found, _, err := rootCmd.Find([]string{name})
		require.NoError(t, err, name)
		require.Equal(t, name, found.Name())
	}

	require.NotNil(t, rootCmd.PersistentFlags().Lookup("config"))
	require.NotNil(t, rootCmd.PersistentFlags().Lookup("log-level"))
}
