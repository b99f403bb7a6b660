package platform

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strings"
)

var ErrToolMissing = errors.New("required tool not found in PATH")

// Runner executes an external tool and returns its trimmed stdout.
type Runner func(ctx context.Context, name string, args ...string) (string, error)

// LookPathFunc reports where a tool lives, like exec.LookPath.
type LookPathFunc func(name string) (string, error)

// Run is the default Runner. A tool that is not in PATH yields an error
// wrapping ErrToolMissing.
func Run(ctx context.Context, name string, args ...string) (string, error) {
	path, err := exec.LookPath(name)
	if err != nil {
		return "", fmt.Errorf("%w: %s", ErrToolMissing, name)
	}

	var stderr bytes.Buffer
	cmd := exec.CommandContext(ctx, path, args...)
	cmd.Stderr = &stderr

	output, err := cmd.Output()
	if err != nil {
		return "", fmt.Errorf("failed to run %s: %w (output: %s)", name, err, strings.TrimSpace(stderr.String()))
	}
	return strings.TrimSpace(string(output)), nil
}

// FirstAvailable returns the first tool in names that lookPath can find.
func FirstAvailable(lookPath LookPathFunc, names ...string) (string, error) {
	for _, name := range names {
		if _, err := lookPath(name); err == nil {
			return name, nil
		}
	}
	return "", fmt.Errorf("%w: %s", ErrToolMissing, strings.Join(names, " or "))
}
