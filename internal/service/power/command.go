package power

import (
	"context"
	"fmt"
	"os/exec"
	"strings"
	"unicode/utf8"
)

// CommandQuerier runs an external status command and looks for a marker in its output.
type CommandQuerier struct {
	// name is the executable to run.
	name string
	// args are passed to the executable.
	args []string
	// marker is present in the output only while on mains.
	marker string
}

// NewCommandQuerier returns a querier running name with args.
func NewCommandQuerier(name string, args []string, marker string) *CommandQuerier {
	return &CommandQuerier{
		name:   name,
		args:   append([]string(nil), args...),
		marker: marker,
	}
}

// Query runs the command once.
func (q *CommandQuerier) Query(ctx context.Context) (Status, error) {
	//nolint:gosec // The command comes from the user's own settings.
	output, err := exec.CommandContext(ctx, q.name, q.args...).Output()
	if err != nil {
		return StatusUnknown, fmt.Errorf("run %s: %w", q.name, err)
	}

	if !utf8.Valid(output) {
		return StatusUnknown, fmt.Errorf("decode %s output: %w", q.name, ErrInvalidOutput)
	}

	if strings.Contains(string(output), q.marker) {
		return StatusMains, nil
	}

	return StatusBattery, nil
}

// String describes the command for logs.
func (q *CommandQuerier) String() string {
	return strings.TrimSpace(q.name + " " + strings.Join(q.args, " "))
}
