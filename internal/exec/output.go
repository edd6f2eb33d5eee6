package exec

import (
	"bytes"
	"io"
	"sync"

	"github.com/charmbracelet/lipgloss"
)

// LineWriter prefixes and styles every complete line written to it. Used to
// indent the output of package managers in verbose mode.
type LineWriter struct {
	mu     sync.Mutex
	prefix string
	style  *lipgloss.Style
	writer io.Writer
	buffer []byte
}

// NewLineWriter creates a writer that renders "prefix + line" with color.
// An empty color leaves lines unstyled.
func NewLineWriter(writer io.Writer, prefix string, color lipgloss.Color) *LineWriter {
	var style *lipgloss.Style
	if color != "" {
		s := lipgloss.NewStyle().Foreground(color)
		style = &s
	}
	return &LineWriter{
		prefix: prefix,
		style:  style,
		writer: writer,
	}
}

// Write buffers partial lines until their newline arrives.
func (w *LineWriter) Write(p []byte) (int, error) {
	w.mu.Lock()
	defer w.mu.Unlock()

	w.buffer = append(w.buffer, p...)
	for {
		i := bytes.IndexByte(w.buffer, '\n')
		if i < 0 {
			break
		}
		line := string(bytes.TrimRight(w.buffer[:i], "\r"))
		w.buffer = w.buffer[i+1:]
		if err := w.writeLine(line); err != nil {
			return 0, err
		}
	}
	return len(p), nil
}

// Flush writes any remaining buffered content
func (w *LineWriter) Flush() error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if len(w.buffer) == 0 {
		return nil
	}
	line := string(w.buffer)
	w.buffer = w.buffer[:0]
	return w.writeLine(line)
}

func (w *LineWriter) writeLine(line string) error {
	line = w.prefix + line
	if w.style != nil {
		line = w.style.Render(line)
	}
	_, err := io.WriteString(w.writer, line+"\n")
	return err
}
