package magetasks

import "fmt"

// Section is one named step of a workflow.
type Section struct {
	Name string
	Run  func() error
}

// RunSections runs each section in order and stops at the first failure.
func RunSections(sections ...Section) error {
	for _, s := range sections {
		if err := s.Run(); err != nil {
			PrintError(s.Name + " failed")
			return fmt.Errorf("%s: %w", s.Name, err)
		}
	}
	return nil
}

// RunAll executes the full build, lint and test workflow.
func RunAll() error {
	PrintH1Header("trendline QA")
	return RunSections(
		Section{Name: "Build", Run: BuildAll},
		Section{Name: "Lint", Run: LintAll},
		Section{Name: "Tests", Run: TestAll},
	)
}
