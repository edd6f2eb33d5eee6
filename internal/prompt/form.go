package prompt

import (
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/huh"
)

// FormAsker renders each question as its own huh form.
type FormAsker struct {
	theme *huh.Theme
}

// NewFormAsker creates an asker using the Charm theme.
func NewFormAsker() *FormAsker {
	return &FormAsker{theme: huh.ThemeCharm()}
}

func (a *FormAsker) Input(title, defaultValue string, validate func(string) error) (string, error) {
	value := defaultValue
	input := huh.NewInput().
		Title(title).
		Value(&value).
		Validate(func(s string) error {
			s = strings.TrimSpace(s)
			if s == "" {
				s = defaultValue
			}
			if validate != nil {
				return validate(s)
			}
			return nil
		})
	if defaultValue != "" {
		input = input.Placeholder(defaultValue)
	}

	if err := a.run(input); err != nil {
		return "", err
	}

	value = strings.TrimSpace(value)
	if value == "" {
		value = defaultValue
	}
	return value, nil
}

func (a *FormAsker) Select(title string, opts []Option, defaultValue string) (string, error) {
	if len(opts) == 0 {
		return "", fmt.Errorf("no options for %q", title)
	}

	selected := opts[0].Value
	huhOpts := make([]huh.Option[string], len(opts))
	for i, o := range opts {
		huhOpts[i] = huh.NewOption(o.Label, o.Value)
		if o.Value == defaultValue {
			selected = defaultValue
		}
	}

	sel := huh.NewSelect[string]().
		Title(title).
		Options(huhOpts...).
		Value(&selected)

	if err := a.run(sel); err != nil {
		return "", err
	}
	return selected, nil
}

func (a *FormAsker) Confirm(title string, defaultValue bool) (bool, error) {
	value := defaultValue
	confirm := huh.NewConfirm().
		Title(title).
		Affirmative("Yes").
		Negative("No").
		Value(&value)

	if err := a.run(confirm); err != nil {
		return false, err
	}
	return value, nil
}

func (a *FormAsker) run(field huh.Field) error {
	form := huh.NewForm(huh.NewGroup(field)).WithTheme(a.theme)
	if err := form.Run(); err != nil {
		if errors.Is(err, huh.ErrUserAborted) {
			return ErrCancelled
		}
		return fmt.Errorf("prompt error: %w", err)
	}
	return nil
}
