package magetasks

import (
	"fmt"
	"os"
	"path/filepath"
)

// Paths and addresses the targets use. Tests override them.
var (
	ModulePath  = "github.com/dkoosis/trendline"
	MainPackage = "./cmd/trendline"
	BinPath     = "./bin/trendline"

	// ServeAddr is where the Chart:Serve target listens.
	ServeAddr = "127.0.0.1:8080"

	// ProjectRoot is the working directory Initialize found.
	ProjectRoot string
)

// Initialize records the project root and creates the directory BinPath
// lives in. The magefile calls it from init.
func Initialize() error {
	root, err := os.Getwd()
	if err != nil {
		return fmt.Errorf("locate project root: %w", err)
	}
	ProjectRoot = root

	dir := filepath.Dir(BinPath)
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return fmt.Errorf("create %s: %w", dir, err)
	}
	return nil
}
