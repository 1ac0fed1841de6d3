package magetasks

import (
	"fmt"
	"os"
	"time"
)

// BuildAll builds the trendline binary with version information stamped in.
func BuildAll() error {
	PrintH2Header("Build")
	if err := Run("Go Build", "go", "build", "-ldflags", LDFlags(time.Now()), "-o", BinPath, MainPackage); err != nil {
		return err
	}
	PrintSuccess("Built: " + BinPath)
	return nil
}

// LDFlags returns the linker flags that populate internal/version.
func LDFlags(buildTime time.Time) string {
	version := Output("dev", "git", "describe", "--tags", "--always", "--dirty", "--match=v*")
	commit := Output("unknown", "git", "rev-parse", "--short", "HEAD")
	date := buildTime.UTC().Format(time.RFC3339)
	return fmt.Sprintf("-s -w -X '%[1]s/internal/version.Version=%[2]s' -X '%[1]s/internal/version.CommitHash=%[3]s' -X '%[1]s/internal/version.BuildDate=%[4]s'",
		ModulePath, version, commit, date)
}

// Clean removes build artifacts.
func Clean() error {
	PrintH2Header("Clean")
	if err := os.RemoveAll("./bin"); err != nil {
		return fmt.Errorf("remove bin: %w", err)
	}
	_ = os.Remove("coverage.out")
	PrintSuccess("Cleaned build artifacts")
	return nil
}
