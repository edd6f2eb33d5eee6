package output

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/simonhull/create-my-stack/internal/config"
)

var bannerStyle = lipgloss.NewStyle().
	Foreground(lipgloss.Color("6")).
	Border(lipgloss.DoubleBorder()).
	BorderForeground(lipgloss.Color("6")).
	Padding(1, 4)

// Banner prints the welcome header.
func Banner() {
	emit(bannerStyle.Render("CREATE MY STACK\n\n🚀 Fullstack Boilerplate Generator 🚀"))
}

// Summary prints the configuration the user is about to generate.
func Summary(cfg *config.ProjectConfig) {
	Markdown(SummaryMarkdown(cfg))
}

// SummaryMarkdown renders the configuration summary as markdown.
func SummaryMarkdown(cfg *config.ProjectConfig) string {
	var b strings.Builder
	yesNo := func(v bool) string {
		if v {
			return "Yes"
		}
		return "No"
	}
	row := func(k string, v any) {
		fmt.Fprintf(&b, "| %s | %v |\n", k, v)
	}

	b.WriteString("# 📋 Configuration Summary\n\n")
	fmt.Fprintf(&b, "**📦 Project:** %s  \n**📝 Description:** %s\n\n", cfg.ProjectName, cfg.Description)

	b.WriteString("## ⚙️ Backend\n\n| Option | Value |\n|---|---|\n")
	row("Framework", cfg.Backend.Framework)
	row("Language", cfg.Backend.Language)
	row("Database", cfg.Backend.Database)
	row("ORM", cfg.Backend.ORM)
	row("Auth", cfg.Backend.Auth)
	row("Mailing", cfg.Backend.Mailing)
	row("Port", cfg.Backend.Port)
	b.WriteString("\n")

	if cfg.HasFrontend() {
		b.WriteString("## 🎨 Frontend\n\n| Option | Value |\n|---|---|\n")
		row("Framework", cfg.Frontend.Framework)
		row("Styling", cfg.Frontend.Styling)
		row("State", cfg.Frontend.StateManagement)
		row("Port", cfg.Frontend.Port)
		b.WriteString("\n")
	}

	b.WriteString("## 📁 Structure\n\n| Option | Value |\n|---|---|\n")
	row("Type", cfg.Structure)
	row("Package", cfg.PackageManager)
	row("Git", yesNo(cfg.InitGit))
	row("Docker", yesNo(cfg.Docker))

	return b.String()
}

// Complete prints the success banner and the commands to start the project.
func Complete(projectName string, pm config.PackageManager) {
	rule := successStyle.Render(strings.Repeat("═", 50))
	prompt := stepStyle.Render("    $")

	emit("")
	emit(rule)
	emit(successStyle.Bold(true).Render("  🎉 Project created successfully!"))
	emit(rule)
	emit("")
	emit("  Next steps:")
	emit("")
	emit(prompt + " " + headingStyle.Render("cd "+projectName))
	emit(prompt + " " + headingStyle.Render(pm.InstallCommand()))
	emit(prompt + " " + headingStyle.Render(pm.RunCommand()+" dev"))
	emit("")
	emit(stepStyle.Render("  For more info, check the README.md file"))
	emit("")
}
