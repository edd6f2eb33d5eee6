package commands

import (
	"fmt"
	"path/filepath"

	"github.com/simonhull/create-my-stack/internal/config"
	"github.com/simonhull/create-my-stack/internal/output"
	"github.com/spf13/cobra"
)

// TemplateCmd creates the 'template' command for generating a preset stack
func TemplateCmd() *cobra.Command {
	return newTemplateCmd(defaultDeps())
}

func newTemplateCmd(d *deps) *cobra.Command {
	var outputDir, name string
	opts := &createOptions{}

	var names []string
	for _, p := range config.Presets() {
		names = append(names, p.Name)
	}

	cmd := &cobra.Command{
		Use:   "template <name>",
		Short: "Generate from a predefined template",
		Long: `Generates a project from a preset stack without asking questions.

Every preset uses TypeScript, PostgreSQL with Prisma, JWT auth, Tailwind,
a pnpm monorepo, Docker and git. Run 'create-my-stack list' to see them.

Example:
  create-my-stack template express-vue --name shop -o ~/code`,
		Args:      cobra.ExactArgs(1),
		ValidArgs: names,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Preset(args[0])
			if err != nil {
				return err
			}
			output.Info(fmt.Sprintf("Generating from template: %s", args[0]))

			if name != "" {
				cfg.ProjectName = name
			}

			dir := outputDir
			if !filepath.IsAbs(dir) {
				wd, err := d.getwd()
				if err != nil {
					return fmt.Errorf("failed to get working directory: %w", err)
				}
				dir = filepath.Join(wd, dir)
			}
			output.Verbose(fmt.Sprintf("Output directory: %s", dir))

			return cancelled(d.create(cmd.Context(), cfg, dir, opts))
		},
	}

	cmd.Flags().StringVarP(&outputDir, "output", "o", ".", "Directory to create the project in")
	cmd.Flags().StringVar(&name, "name", "", "Project name (defaults to "+config.DefaultProjectName+")")
	opts.bind(cmd)

	return cmd
}
