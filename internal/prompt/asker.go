// Package prompt collects a ProjectConfig interactively.
//
// The question flow lives in Run and is independent of how questions are
// rendered: a terminal gets huh forms, anything else (pipes, CI) gets a
// plain line reader.
package prompt

import (
	"errors"
	"io"
	"os"

	"github.com/mattn/go-isatty"
	"github.com/simonhull/create-my-stack/internal/config"
)

// ErrCancelled is returned when the user aborts the wizard.
var ErrCancelled = errors.New("cancelled")

// Option is one entry of a select question.
type Option struct {
	Label string
	Value string
}

// Asker renders single questions.
type Asker interface {
	Input(title, defaultValue string, validate func(string) error) (string, error)
	Select(title string, options []Option, defaultValue string) (string, error)
	Confirm(title string, defaultValue bool) (bool, error)
}

// IsHeadless reports whether stdin is not a terminal.
func IsHeadless() bool {
	return !isatty.IsTerminal(os.Stdin.Fd()) && !isatty.IsCygwinTerminal(os.Stdin.Fd())
}

// NewAsker picks huh forms on a terminal and line prompts otherwise.
func NewAsker(in io.Reader, out io.Writer) Asker {
	if IsHeadless() {
		return NewLineAsker(in, out)
	}
	return NewFormAsker()
}

func options[T ~string](choices []config.Choice[T]) []Option {
	opts := make([]Option, len(choices))
	for i, c := range choices {
		label := c.Name
		if c.Description != "" {
			label += " - " + c.Description
		}
		opts[i] = Option{Label: label, Value: string(c.Value)}
	}
	return opts
}
