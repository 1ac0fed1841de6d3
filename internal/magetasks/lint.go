package magetasks

import (
	"errors"
	"fmt"
	"os/exec"
	"strings"
)

// golangciDisabled are linters that fight the project's style.
const golangciDisabled = "--disable=exhaustruct,varnamelen,ireturn,wrapcheck,nlreturn,gochecknoglobals,mnd,depguard,tagalign"

// LintAll runs all linters. Optional linters that are not installed are
// skipped with a warning.
func LintAll() error {
	PrintH2Header("Lint")
	var errs []error

	if err := LintFormat(); err != nil {
		errs = append(errs, err)
	}
	if err := LintVet(); err != nil {
		errs = append(errs, err)
	}
	if err := LintStaticcheck(); err != nil && !IsCommandNotFound(err) {
		errs = append(errs, err)
	}
	if err := LintGolangci(); err != nil && !IsCommandNotFound(err) {
		errs = append(errs, err)
	}

	if err := errors.Join(errs...); err != nil {
		return err
	}
	PrintSuccess("All linters passed")
	return nil
}

// LintFormat fails when any file is not gofmt-clean.
func LintFormat() error {
	out, err := exec.Command("gofmt", "-l", ".").Output()
	if err != nil {
		return fmt.Errorf("gofmt: %w", err)
	}
	if files := unformatted(string(out)); len(files) > 0 {
		PrintError("Unformatted files: " + strings.Join(files, ", "))
		return fmt.Errorf("gofmt: %d unformatted file(s)", len(files))
	}
	PrintSuccess("Go Format")
	return nil
}

// unformatted parses gofmt -l output. Paths under underscore directories
// are skipped, matching what the go tool ignores.
func unformatted(out string) []string {
	var files []string
	for _, line := range strings.Split(out, "\n") {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "_") {
			continue
		}
		files = append(files, line)
	}
	return files
}

// LintVet runs go vet.
func LintVet() error {
	return Run("Go Vet", "go", "vet", "./...")
}

// LintStaticcheck runs staticcheck.
func LintStaticcheck() error {
	return optional(Run("Staticcheck", "staticcheck", "./..."),
		"Staticcheck not found (install: go install honnef.co/go/tools/cmd/staticcheck@latest)")
}

// LintGolangci runs golangci-lint.
func LintGolangci() error {
	return optional(Run("Golangci-lint", "golangci-lint", "run", golangciDisabled, "--timeout=5m", "./..."),
		"Golangci-lint not found (install: go install github.com/golangci/golangci-lint/cmd/golangci-lint@latest)")
}

// LintGolangciFix runs golangci-lint with auto-fixes.
func LintGolangciFix() error {
	return optional(Run("Golangci-lint Fix", "golangci-lint", "run", "--fix", golangciDisabled, "--timeout=5m", "./..."),
		"Golangci-lint not found (install: go install github.com/golangci/golangci-lint/cmd/golangci-lint@latest)")
}

// optional prints hint when err means the tool is not installed.
func optional(err error, hint string) error {
	if err != nil && IsCommandNotFound(err) {
		PrintWarning(hint)
	}
	return err
}
