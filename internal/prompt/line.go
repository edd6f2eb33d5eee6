package prompt

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

var (
	promptStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("6")).Bold(true)
	hintStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
	errorStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("1"))
)

// LineAsker reads one answer per line. An empty line accepts the default,
// and end of input accepts every remaining default.
type LineAsker struct {
	reader *bufio.Reader
	out    io.Writer
}

// NewLineAsker reads answers from in and writes questions to out.
func NewLineAsker(in io.Reader, out io.Writer) *LineAsker {
	return &LineAsker{reader: bufio.NewReader(in), out: out}
}

// Input asks for text until validate accepts it.
//
// Example:
//
//	name, err := asker.Input("Project name", "my-fullstack-app", config.ValidatePackageName)
//	// Displays: Project name (my-fullstack-app): _
func (a *LineAsker) Input(title, defaultValue string, validate func(string) error) (string, error) {
	for {
		if defaultValue != "" {
			fmt.Fprint(a.out, promptStyle.Render(title)+" "+hintStyle.Render(fmt.Sprintf("(%s)", defaultValue))+": ")
		} else {
			fmt.Fprint(a.out, promptStyle.Render(title)+": ")
		}

		answer, eof := a.readLine()
		if answer == "" {
			answer = defaultValue
		}

		if validate == nil {
			return answer, nil
		}
		err := validate(answer)
		if err == nil {
			return answer, nil
		}
		if eof {
			return "", fmt.Errorf("%s: %w", title, err)
		}
		fmt.Fprintln(a.out, errorStyle.Render("  "+err.Error()))
	}
}

// Select lists numbered options. The answer may be the number or the value.
func (a *LineAsker) Select(title string, opts []Option, defaultValue string) (string, error) {
	if len(opts) == 0 {
		return "", fmt.Errorf("no options for %q", title)
	}

	def := opts[0].Value
	for _, o := range opts {
		if o.Value == defaultValue {
			def = defaultValue
		}
	}

	for {
		fmt.Fprintln(a.out, promptStyle.Render(title))
		for i, o := range opts {
			marker := " "
			if o.Value == def {
				marker = "›"
			}
			fmt.Fprintf(a.out, "  %s %d) %s\n", marker, i+1, o.Label)
		}
		fmt.Fprint(a.out, hintStyle.Render(fmt.Sprintf("Choice (%s)", def))+": ")

		answer, eof := a.readLine()
		if answer == "" {
			return def, nil
		}
		if v, ok := match(opts, answer); ok {
			return v, nil
		}
		if eof {
			return "", fmt.Errorf("%s: invalid choice %q", title, answer)
		}
		fmt.Fprintln(a.out, errorStyle.Render(fmt.Sprintf("  invalid choice %q", answer)))
	}
}

// Confirm asks a yes/no question.
// Displays: Initialize git repository? [Y/n]: _
func (a *LineAsker) Confirm(title string, defaultValue bool) (bool, error) {
	hint := "[y/N]"
	if defaultValue {
		hint = "[Y/n]"
	}

	for {
		fmt.Fprint(a.out, promptStyle.Render(title)+" "+hintStyle.Render(hint)+": ")

		answer, eof := a.readLine()
		switch strings.ToLower(answer) {
		case "":
			return defaultValue, nil
		case "y", "yes":
			return true, nil
		case "n", "no":
			return false, nil
		}
		if eof {
			return false, fmt.Errorf("%s: invalid answer %q", title, answer)
		}
		fmt.Fprintln(a.out, errorStyle.Render("  please answer y or n"))
	}
}

// readLine returns the trimmed line and whether input is exhausted.
func (a *LineAsker) readLine() (string, bool) {
	line, err := a.reader.ReadString('\n')
	eof := errors.Is(err, io.EOF) || (err != nil && line == "")
	if eof {
		// Keep the prompt on its own line when input ends without a newline
		fmt.Fprintln(a.out)
	}
	return strings.TrimSpace(line), eof
}

func match(opts []Option, answer string) (string, bool) {
	if n, err := strconv.Atoi(answer); err == nil && n >= 1 && n <= len(opts) {
		return opts[n-1].Value, true
	}
	for _, o := range opts {
		if strings.EqualFold(o.Value, answer) {
			return o.Value, true
		}
	}
	return "", false
}
