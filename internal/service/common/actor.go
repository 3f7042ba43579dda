//nolint:revive,nolintlint // Package name "common" is intentional for shared helpers.
package common

import (
	"fmt"
	"os"
	"os/user"
)

// DetectActor returns username@hostname of the current process owner.
func DetectActor() (string, error) {
	hostname, err := os.Hostname()
	if err != nil {
		return "", fmt.Errorf("hostname: %w", err)
	}

	currentUser, err := user.Current()
	if err != nil {
		return "", fmt.Errorf("current user: %w", err)
	}

	return currentUser.Username + "@" + hostname, nil
}
