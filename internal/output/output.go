package output

import (
	"fmt"
	"io"
	"os"
	"strings"
	"sync"

	"github.com/charmbracelet/lipgloss"
)

var (
	successStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("2"))
	errorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("1")).Bold(true)
	warnStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("3"))
	infoStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("4"))
	headingStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("6"))
	stepStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))

	mu          sync.Mutex
	out         io.Writer = os.Stdout
	verboseMode bool
)

// SetVerbose enables or disables verbose output for debugging.
// This should be called by the CLI when the --verbose flag is set.
func SetVerbose(v bool) {
	mu.Lock()
	defer mu.Unlock()
	verboseMode = v
}

// IsVerbose reports whether verbose output is enabled.
func IsVerbose() bool {
	mu.Lock()
	defer mu.Unlock()
	return verboseMode
}

// SetWriter redirects all output. It returns the previous writer.
func SetWriter(w io.Writer) io.Writer {
	mu.Lock()
	defer mu.Unlock()
	prev := out
	out = w
	return prev
}

// Writer returns the current output writer.
func Writer() io.Writer {
	mu.Lock()
	defer mu.Unlock()
	return out
}

func emit(s string) {
	mu.Lock()
	defer mu.Unlock()
	fmt.Fprintln(out, s)
}

// Success prints a completed operation.
//
// Example:
//
//	output.Success("Backend generated (express)")
func Success(msg string) {
	emit(successStyle.Render("✓") + " " + msg)
}

// Error prints a failure that needs user attention.
func Error(msg string) {
	emit(errorStyle.Render("✗ " + msg))
}

// Warn prints a non-fatal problem.
func Warn(msg string) {
	emit(warnStyle.Render("⚠ " + msg))
}

// Info prints an informational message.
func Info(msg string) {
	emit(infoStyle.Render("ℹ") + " " + msg)
}

// Progress prints a numbered pipeline step, preceded by a blank line.
//
// Example:
//
//	output.Progress(3, 7, "Generating backend...")
//	// [3/7] Generating backend...
func Progress(n, total int, msg string) {
	emit("\n" + stepStyle.Render(fmt.Sprintf("[%d/%d]", n, total)) + " " + headingStyle.Render(msg))
}

// Section prints a boxed section header.
func Section(title string) {
	rule := strings.Repeat("─", 50)
	emit("")
	emit(headingStyle.Render(rule))
	emit(headingStyle.Bold(true).Render("  " + title))
	emit(headingStyle.Render(rule))
}

// Verbose prints a debug message only if verbose mode is enabled.
func Verbose(msg string) {
	if IsVerbose() {
		emit(stepStyle.Render("🔍 " + msg))
	}
}
