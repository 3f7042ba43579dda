//nolint:revive,nolintlint // Package name "common" is intentional for shared helpers.
package common

import (
	"testing"

	"github.com/stretchr/testify/require"
)

// TestDetectActor ensures username and hostname are detected and non-empty.
func TestDetectActor(t *testing.T) {
	t.Parallel()

	actor, err := DetectActor()
	require.NoError(t, err)
	require.Regexp(t, `^.+@.+$`, actor)
}
