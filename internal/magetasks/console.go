package magetasks

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Out receives all task output.
var Out io.Writer = os.Stdout

var (
	h1Style      = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#64B5F6"))
	h2Style      = lipgloss.NewStyle().Bold(true)
	successStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#22C55E"))
	warningStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#F59E0B"))
	errorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#F43F5E")).Bold(true)
	infoStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#94A3B8"))
)

// PrintH1Header prints a top-level header with decoration.
func PrintH1Header(title string) {
	const width = 80
	rule := strings.Repeat("=", width)
	padding := max(0, (width-lipgloss.Width(title))/2)
	fmt.Fprintln(Out)
	fmt.Fprintln(Out, rule)
	fmt.Fprintln(Out, strings.Repeat(" ", padding)+h1Style.Render(title))
	fmt.Fprintln(Out, rule)
	fmt.Fprintln(Out)
}

// PrintH2Header prints a section header.
func PrintH2Header(title string) {
	fmt.Fprintln(Out)
	fmt.Fprintln(Out, h2Style.Render("=== "+title+" ==="))
	fmt.Fprintln(Out)
}

// PrintSuccess prints a success message.
func PrintSuccess(msg string) {
	fmt.Fprintln(Out, successStyle.Render("✓ "+msg))
}

// PrintWarning prints a warning message.
func PrintWarning(msg string) {
	fmt.Fprintln(Out, warningStyle.Render("! "+msg))
}

// PrintError prints an error message.
func PrintError(msg string) {
	fmt.Fprintln(Out, errorStyle.Render("✗ "+msg))
}

// PrintInfo prints an info message.
func PrintInfo(msg string) {
	fmt.Fprintln(Out, infoStyle.Render("· "+msg))
}
