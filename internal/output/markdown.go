package output

import (
	"os"
	"strings"

	"github.com/charmbracelet/glamour"
	"golang.org/x/term"
)

const defaultWrap = 80

// Markdown renders md for the terminal. When stdout is not a terminal, or the
// renderer fails, the raw markdown is printed instead.
func Markdown(md string) {
	emit(strings.TrimRight(RenderMarkdown(md), "\n"))
}

// RenderMarkdown returns md styled for the terminal, or md unchanged when
// styling is unavailable.
func RenderMarkdown(md string) string {
	fd := int(os.Stdout.Fd())
	if Writer() != os.Stdout || !term.IsTerminal(fd) {
		return md
	}

	width := defaultWrap
	if w, _, err := term.GetSize(fd); err == nil && w > 0 && w < width {
		width = w
	}

	renderer, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(width),
	)
	if err != nil {
		return md
	}

	rendered, err := renderer.Render(md)
	if err != nil {
		return md
	}
	return rendered
}
