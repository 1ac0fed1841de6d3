//go:build mage

// Build tasks for trendline. `mage -l` lists them.
package main

import (
	"fmt"
	"os"

	"github.com/magefile/mage/mg"

	"github.com/dkoosis/trendline/internal/magetasks"
)

// Default builds the binary.
var Default = Build

func init() {
	if err := magetasks.Initialize(); err != nil {
		fmt.Fprintf(os.Stderr, "mage: %v\n", err)
		os.Exit(1)
	}
}

// Build compiles cmd/trendline into bin/ with version info stamped in.
func Build() error { return magetasks.BuildAll() }

// Clean removes bin/ and the coverage profile.
func Clean() error { return magetasks.Clean() }

// QA builds, lints and tests, stopping at the first failing step.
func QA() error { return magetasks.RunAll() }

// Chart groups the targets that exercise the renderers by hand.
type Chart mg.Namespace

// Samples writes every file format for both datasets to bin/samples.
func (Chart) Samples() error { return magetasks.RenderSamples() }

// Serve runs the HTTP chart server from source.
func (Chart) Serve() error { return magetasks.Serve() }

// Lint groups the static checks.
type Lint mg.Namespace

// All runs gofmt, vet, staticcheck and golangci-lint.
func (Lint) All() error { return magetasks.LintAll() }

// Format lists files gofmt would change.
func (Lint) Format() error { return magetasks.LintFormat() }

func (Lint) Vet() error { return magetasks.LintVet() }

func (Lint) Staticcheck() error { return magetasks.LintStaticcheck() }

func (Lint) Golangci() error { return magetasks.LintGolangci() }

// Fix lets golangci-lint apply its fixes.
func (Lint) Fix() error { return magetasks.LintGolangciFix() }

// Test groups the test runs.
type Test mg.Namespace

func (Test) All() error { return magetasks.TestAll() }

// Coverage writes coverage.out and prints the per-function summary.
func (Test) Coverage() error { return magetasks.TestCoverage() }

// Race runs the tests under the race detector.
func (Test) Race() error { return magetasks.TestRace() }
