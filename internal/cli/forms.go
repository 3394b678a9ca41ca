package cli

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/alexanderramin/levelup/internal/cli/formatter"
	"github.com/alexanderramin/levelup/internal/domain"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
)

// levelupHuhTheme returns a huh theme matching the formatter palette.
func levelupHuhTheme() *huh.Theme {
	t := huh.ThemeBase()

	// Focused state: orange accent
	t.Focused.Title = lipgloss.NewStyle().Foreground(formatter.ColorHeader).Bold(true)
	t.Focused.SelectSelector = lipgloss.NewStyle().Foreground(formatter.ColorHeader)
	t.Focused.SelectedOption = lipgloss.NewStyle().Foreground(formatter.ColorGreen)
	t.Focused.UnselectedOption = lipgloss.NewStyle().Foreground(formatter.ColorFg)
	t.Focused.FocusedButton = lipgloss.NewStyle().Foreground(formatter.ColorFg).Background(formatter.ColorHeader).Padding(0, 1)
	t.Focused.BlurredButton = lipgloss.NewStyle().Foreground(formatter.ColorDim).Padding(0, 1)
	t.Focused.TextInput.Cursor = lipgloss.NewStyle().Foreground(formatter.ColorHeader)
	t.Focused.TextInput.Prompt = lipgloss.NewStyle().Foreground(formatter.ColorHeader)
	t.Focused.TextInput.Text = lipgloss.NewStyle().Foreground(formatter.ColorFg)
	t.Focused.TextInput.Placeholder = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Focused.Description = lipgloss.NewStyle().Foreground(formatter.ColorDim)

	// Blurred state: dimmed
	t.Blurred.Title = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.SelectSelector = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.SelectedOption = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.UnselectedOption = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.TextInput.Prompt = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.TextInput.Text = lipgloss.NewStyle().Foreground(formatter.ColorDim)

	return t
}

// confirmForm creates a huh form for a yes/no confirmation.
func confirmForm(title string, result *bool) *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewConfirm().
				Title(title).
				Affirmative("Yes").
				Negative("No").
				Value(result),
		),
	).WithTheme(levelupHuhTheme()).WithShowHelp(false)
}

// categoryOptions lists the catalog as select options labelled with the
// display name and difficulty.
func categoryOptions(catalog domain.Catalog) []huh.Option[string] {
	options := make([]huh.Option[string], 0, len(catalog))
	for _, c := range catalog {
		options = append(options, huh.NewOption(fmt.Sprintf("%s (×%g)", c.Label(), c.Difficulty), c.Name))
	}
	return options
}

// logForm asks for a subject and a session length.
func logForm(catalog domain.Catalog, category, minutes *string) *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[string]().
				Title("Subject").
				Options(categoryOptions(catalog)...).
				Value(category),
			huh.NewInput().
				Title("Minutes studied").
				Placeholder("60").
				Value(minutes).
				Validate(validateSessionMinutes),
		),
	).WithTheme(levelupHuhTheme()).WithShowHelp(false)
}

// validateSessionMinutes accepts a whole number of minutes within one day.
func validateSessionMinutes(s string) error {
	if strings.TrimSpace(s) == "" {
		return fmt.Errorf("minutes are required")
	}
	if _, err := parseMinutes(s); err != nil {
		return fmt.Errorf("enter a number from 1 to %d", domain.MaxSessionMinutes)
	}
	return nil
}

// parseMinutes parses a positional minutes argument.
func parseMinutes(s string) (int, error) {
	v, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return 0, fmt.Errorf("minutes %q is not a number: %w", s, domain.ErrInvalidInput)
	}
	if err := domain.ValidateMinutes(v); err != nil {
		return 0, err
	}
	return v, nil
}

// parseRecordID accepts "12" or "#12".
func parseRecordID(s string) (int, error) {
	v, err := strconv.Atoi(strings.TrimPrefix(strings.TrimSpace(s), "#"))
	if err != nil || v <= 0 {
		return 0, fmt.Errorf("record id %q must be a positive number: %w", s, domain.ErrInvalidInput)
	}
	return v, nil
}
