package completion

import (
	"bufio"
	"bytes"
	"context"
	"fmt"
	"os/exec"
	"strings"
	"time"
)

const (
	// DefaultCommandTimeout bounds external commands run by completers
	DefaultCommandTimeout = 80 * time.Millisecond
	// MaxOutputSize is the maximum size of command output (1MB)
	MaxOutputSize = 1024 * 1024
)

// CommandRunner runs an external command in dir and returns its stdout
type CommandRunner func(ctx context.Context, dir string, name string, args ...string) ([]byte, error)

// execWithTimeout executes a command with a timeout and returns its output.
// The timeout applies on top of any deadline already carried by ctx.
func execWithTimeout(ctx context.Context, dir string, name string, args ...string) ([]byte, error) {
	ctx, cancel := context.WithTimeout(ctx, DefaultCommandTimeout)
	defer cancel()

	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Dir = dir

	output, err := cmd.Output()
	if err != nil {
		if ctx.Err() == context.DeadlineExceeded {
			return nil, fmt.Errorf("command timeout after %v: %w", DefaultCommandTimeout, err)
		}
		return nil, err
	}

	if len(output) > MaxOutputSize {
		return output[:MaxOutputSize], nil
	}
	return output, nil
}

// parseLines splits command output into trimmed, non-empty lines.
// A tab separates a value from its description.
func parseLines(output []byte) []Completion {
	completions := []Completion{}

	scanner := bufio.NewScanner(bytes.NewReader(output))
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		parts := strings.SplitN(line, "\t", 2)
		c := Completion{Value: parts[0]}
		if len(parts) > 1 {
			c.Description = strings.TrimSpace(parts[1])
		}
		completions = append(completions, c)
	}

	return completions
}

// hasPrefixFold reports whether s starts with prefix, ignoring case
func hasPrefixFold(s, prefix string) bool {
	return len(s) >= len(prefix) && strings.EqualFold(s[:len(prefix)], prefix)
}
