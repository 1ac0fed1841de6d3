package magetasks

import (
	"errors"
	"fmt"
	"os"
	"os/exec"
	"strings"
	"time"
)

// IsCommandNotFound checks if the error indicates the command was not found.
// This handles exec.ErrNotFound and platform-specific string fallbacks.
func IsCommandNotFound(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, exec.ErrNotFound) {
		return true
	}
	errStr := err.Error()
	return strings.Contains(errStr, "executable file not found") ||
		strings.Contains(errStr, "no such file or directory")
}

// Run executes a command with its output streamed to the console and
// reports the outcome under label.
func Run(label, name string, args ...string) error {
	start := time.Now()
	PrintInfo(label + ": " + name + " " + strings.Join(args, " "))

	cmd := exec.Command(name, args...)
	cmd.Stdout = Out
	cmd.Stderr = os.Stderr
	if err := cmd.Run(); err != nil {
		PrintError(fmt.Sprintf("%s failed (%s)", label, time.Since(start).Round(time.Millisecond)))
		return fmt.Errorf("%s: %w", label, err)
	}
	PrintSuccess(fmt.Sprintf("%s (%s)", label, time.Since(start).Round(time.Millisecond)))
	return nil
}

// Output runs a command and returns its trimmed stdout, or fallback when
// the command fails.
func Output(fallback, name string, args ...string) string {
	out, err := exec.Command(name, args...).Output()
	if err != nil {
		return fallback
	}
	return strings.TrimSpace(string(out))
}
