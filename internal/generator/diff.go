package generator

import (
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// DiffContext is the number of unchanged lines shown around each change.
const DiffContext = 3

// Differ is implemented by operations that can show how they would change a
// file that already exists. A dry run with Force prints these diffs.
type Differ interface {
	Diff() string
}

var (
	diffHeaderStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
	diffHunkStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("6"))
	diffAddedStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("2"))
	diffRemovedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("1"))
)

// Diff returns the unified diff between the file on disk and Content, or ""
// when the file is missing, unreadable or unchanged.
func (op *WriteFileOp) Diff() string {
	existing, err := os.ReadFile(op.Path)
	if err != nil {
		return ""
	}
	return UnifiedDiff(op.Path, existing, op.Content)
}

type editKind byte

const (
	editKeep   editKind = ' '
	editAdd    editKind = '+'
	editRemove editKind = '-'
)

type edit struct {
	kind editKind
	text string
	a, b int // 0-based line numbers in old and new, valid for the sides the edit touches
}

// UnifiedDiff renders old and updated as a unified diff with DiffContext lines of
// context. Equal inputs produce "".
func UnifiedDiff(path string, old, updated []byte) string {
	if string(old) == string(updated) {
		return ""
	}
	if isBinary(old) || isBinary(updated) {
		return diffHeaderStyle.Render(fmt.Sprintf("Binary file %s differs", path)) + "\n"
	}

	edits := lineEdits(splitLines(string(old)), splitLines(string(updated)))

	var b strings.Builder
	b.WriteString(diffHeaderStyle.Render("--- "+path) + "\n")
	b.WriteString(diffHeaderStyle.Render("+++ "+path) + "\n")

	for _, h := range hunks(edits, DiffContext) {
		oldStart, oldCount, newStart, newCount := h.span()
		b.WriteString(diffHunkStyle.Render(fmt.Sprintf("@@ -%d,%d +%d,%d @@", oldStart, oldCount, newStart, newCount)) + "\n")
		for _, e := range h {
			line := string(e.kind) + e.text
			switch e.kind {
			case editAdd:
				line = diffAddedStyle.Render(line)
			case editRemove:
				line = diffRemovedStyle.Render(line)
			}
			b.WriteString(line + "\n")
		}
	}
	return b.String()
}

// lineEdits computes a minimal edit script from the longest common
// subsequence of the two line slices.
func lineEdits(a, b []string) []edit {
	n, m := len(a), len(b)
	lcs := make([][]int, n+1)
	for i := range lcs {
		lcs[i] = make([]int, m+1)
	}
	for i := n - 1; i >= 0; i-- {
		for j := m - 1; j >= 0; j-- {
			if a[i] == b[j] {
				lcs[i][j] = lcs[i+1][j+1] + 1
			} else {
				lcs[i][j] = max(lcs[i+1][j], lcs[i][j+1])
			}
		}
	}

	edits := make([]edit, 0, n+m)
	i, j := 0, 0
	for i < n && j < m {
		switch {
		case a[i] == b[j]:
			edits = append(edits, edit{kind: editKeep, text: a[i], a: i, b: j})
			i++
			j++
		case lcs[i+1][j] >= lcs[i][j+1]:
			edits = append(edits, edit{kind: editRemove, text: a[i], a: i, b: j})
			i++
		default:
			edits = append(edits, edit{kind: editAdd, text: b[j], a: i, b: j})
			j++
		}
	}
	for ; i < n; i++ {
		edits = append(edits, edit{kind: editRemove, text: a[i], a: i, b: j})
	}
	for ; j < m; j++ {
		edits = append(edits, edit{kind: editAdd, text: b[j], a: i, b: j})
	}
	return edits
}

type hunk []edit

// span returns the 1-based hunk header numbers.
func (h hunk) span() (oldStart, oldCount, newStart, newCount int) {
	oldStart, newStart = h[0].a+1, h[0].b+1
	for _, e := range h {
		if e.kind != editAdd {
			oldCount++
		}
		if e.kind != editRemove {
			newCount++
		}
	}
	// An empty side starts at the line before, as in diff -u
	if oldCount == 0 {
		oldStart--
	}
	if newCount == 0 {
		newStart--
	}
	return oldStart, oldCount, newStart, newCount
}

// hunks groups changes that are at most 2*ctxLines unchanged lines apart.
func hunks(edits []edit, ctxLines int) []hunk {
	var (
		out   []hunk
		start = -1
		end   = -1
	)
	for i, e := range edits {
		if e.kind == editKeep {
			continue
		}
		lo := max(0, i-ctxLines)
		if start >= 0 && lo > end {
			out = append(out, hunk(edits[start:end]))
			start = -1
		}
		if start < 0 {
			start = lo
		}
		end = min(len(edits), i+ctxLines+1)
	}
	if start >= 0 {
		out = append(out, hunk(edits[start:end]))
	}
	return out
}

func splitLines(s string) []string {
	if s == "" {
		return nil
	}
	return strings.Split(strings.TrimSuffix(s, "\n"), "\n")
}

// isBinary treats content with a NUL byte in the first 8KB as binary.
func isBinary(data []byte) bool {
	if len(data) > 8000 {
		data = data[:8000]
	}
	return strings.IndexByte(string(data), 0) >= 0
}
