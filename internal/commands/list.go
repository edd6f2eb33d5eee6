package commands

import (
	"fmt"
	"strings"

	"github.com/simonhull/create-my-stack/internal/config"
	"github.com/simonhull/create-my-stack/internal/output"
	"github.com/spf13/cobra"
)

// ListCmd creates the 'list' command showing every available option
func ListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List all available options",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			output.Markdown(listMarkdown())
		},
	}
}

func listMarkdown() string {
	var b strings.Builder
	b.WriteString("# 📋 Available Options\n")

	writeChoices(&b, "Backend Frameworks", config.BackendFrameworks)
	writeChoices(&b, "Languages", config.Languages)
	writeChoices(&b, "Databases", config.Databases)
	writeChoices(&b, "ORMs", config.ORMs)
	writeChoices(&b, "Authentication", config.AuthStrategies)
	writeChoices(&b, "Mailing", config.MailingProviders)
	writeChoices(&b, "Frontend Frameworks", config.FrontendFrameworks)
	writeChoices(&b, "Styling", config.StylingOptions)
	writeChoices(&b, "State Management (Vue)", config.StateManagementOptions(config.Vue))
	writeChoices(&b, "State Management (React, Next.js)", config.StateManagementOptions(config.React))
	writeChoices(&b, "Project Structure", config.Structures)
	writeChoices(&b, "Package Managers", config.PackageManagers)

	b.WriteString("\n## Templates\n\n")
	for _, p := range config.Presets() {
		fmt.Fprintf(&b, "- `%s` - %s\n", p.Name, p.Summary)
	}
	return b.String()
}

func writeChoices[T ~string](b *strings.Builder, title string, choices []config.Choice[T]) {
	fmt.Fprintf(b, "\n## %s\n\n", title)
	for _, c := range choices {
		fmt.Fprintf(b, "- **%s** (`%s`)", c.Name, c.Value)
		if c.Description != "" {
			fmt.Fprintf(b, " - %s", c.Description)
		}
		b.WriteByte('\n')
	}
}
