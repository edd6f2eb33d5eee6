// Package commands wires the create-my-stack CLI: the interactive root
// command, the template presets and the list of available options.
package commands

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/charmbracelet/lipgloss"
	createmystack "github.com/simonhull/create-my-stack"
	"github.com/simonhull/create-my-stack/internal/config"
	"github.com/simonhull/create-my-stack/internal/exec"
	"github.com/simonhull/create-my-stack/internal/logger"
	"github.com/simonhull/create-my-stack/internal/orchestrator"
	"github.com/simonhull/create-my-stack/internal/output"
	"github.com/simonhull/create-my-stack/internal/prompt"
	"github.com/spf13/cobra"
)

// deps are the process boundaries a command touches. Tests replace them.
type deps struct {
	getwd    func() (string, error)
	headless func() bool
	asker    func() prompt.Asker
	runner   func() orchestrator.Runner
}

func defaultDeps() *deps {
	return &deps{
		getwd:    os.Getwd,
		headless: prompt.IsHeadless,
		asker: func() prompt.Asker {
			return prompt.NewAsker(os.Stdin, os.Stdout)
		},
		runner: func() orchestrator.Runner {
			// Command output only shows up in verbose mode
			var stdout io.Writer = io.Discard
			if output.IsVerbose() {
				stdout = exec.NewLineWriter(os.Stdout, "  │ ", lipgloss.Color("240"))
			}
			return exec.NewExecutor(&exec.Options{Stdout: stdout, Stderr: os.Stderr})
		},
	}
}

// createOptions are the generation flags shared by the root and template
// commands.
type createOptions struct {
	yes         bool
	skipInstall bool
	dryRun      bool
	force       bool
	noRollback  bool
	saveConfig  string
}

func (o *createOptions) bind(cmd *cobra.Command) {
	flags := cmd.Flags()
	flags.BoolVarP(&o.yes, "yes", "y", false, "Skip confirmation (and take defaults when not on a terminal)")
	flags.BoolVar(&o.skipInstall, "skip-install", false, "Skip dependency installation")
	flags.BoolVar(&o.dryRun, "dry-run", false, "Show what would be generated without writing anything")
	flags.BoolVar(&o.force, "force", false, "Generate into an existing directory, overwriting files")
	flags.BoolVar(&o.noRollback, "no-rollback", false, "Keep generated files when a step fails")
	flags.StringVar(&o.saveConfig, "save-config", "", "Write the chosen answers to a YAML `file`")
}

// RootCmd creates the root command, which runs the interactive generator.
func RootCmd() *cobra.Command {
	return newRootCmd(defaultDeps())
}

func newRootCmd(d *deps) *cobra.Command {
	var (
		verbose    bool
		configFile string
	)
	opts := &createOptions{}

	cmd := &cobra.Command{
		Use:   "create-my-stack [project-name]",
		Short: "Fullstack boilerplate generator",
		Long: `create-my-stack scaffolds a ready-to-run Node.js fullstack project.

Answer a few questions (or pass an answers file) and get:
• An Express, Fastify or NestJS backend
• A Vue, React or Next.js frontend
• Prisma, mailing, Docker and git when you want them

Example:
  create-my-stack shop
  create-my-stack shop --config answers.yml --yes`,
		Version:       createmystack.Version,
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			output.SetVerbose(verbose)
			if verbose {
				logger.Default().SetLevel(logger.LevelDebug)
			}
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			output.Banner()

			cfg, err := d.collect(configFile, opts.yes, args)
			if err != nil {
				return cancelled(err)
			}

			cwd, err := d.getwd()
			if err != nil {
				return fmt.Errorf("failed to get working directory: %w", err)
			}
			return cancelled(d.create(cmd.Context(), cfg, cwd, opts))
		},
	}

	cmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose output for debugging")
	cmd.Flags().StringVar(&configFile, "config", "", "Read answers from a YAML `file` instead of prompting")
	opts.bind(cmd)

	return cmd
}

// collect picks the configuration source: an answers file, defaults (with
// environment overrides) when --yes runs without a terminal, or the wizard.
// A project name argument wins over the file and seeds the wizard.
func (d *deps) collect(configFile string, yes bool, args []string) (config.ProjectConfig, error) {
	var (
		cfg config.ProjectConfig
		err error
	)

	switch {
	case configFile != "":
		cfg, err = config.LoadFile(configFile)
	case yes && d.headless():
		cfg, err = config.LoadEnv()
	default:
		initial := config.Default()
		if len(args) == 1 {
			initial.ProjectName = args[0]
		}
		cfg, err = prompt.RunFrom(d.asker(), initial)
	}
	if err != nil {
		return cfg, err
	}

	if len(args) == 1 {
		cfg.ProjectName = args[0]
	}
	logger.Default().Debug("config collected",
		logger.F("project", cfg.ProjectName),
		logger.F("from_file", configFile != ""))
	return cfg, nil
}

// create validates cfg, shows the summary, asks for confirmation and runs the
// generation. cwd is the directory the project is created in.
func (d *deps) create(ctx context.Context, cfg config.ProjectConfig, cwd string, opts *createOptions) error {
	cfg.Normalize()
	cfg.ComputePaths(cwd)
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration:\n%w", err)
	}

	output.Summary(&cfg)

	if !opts.yes {
		ok, err := prompt.ConfirmGeneration(d.asker())
		if err != nil {
			return err
		}
		if !ok {
			return prompt.ErrCancelled
		}
	}

	// Per-operation lines are only interesting when nothing is written
	var ops io.Writer
	if opts.dryRun || output.IsVerbose() {
		ops = output.Writer()
	}

	o := orchestrator.New(&cfg, orchestrator.Options{
		DryRun:      opts.dryRun,
		Force:       opts.force,
		Rollback:    !opts.noRollback,
		Writer:      ops,
		Logger:      logger.Default(),
		Runner:      d.runner(),
		Concurrency: runtime.NumCPU(),
	})

	if err := o.Generate(ctx); err != nil {
		return err
	}
	if !opts.skipInstall {
		if err := o.Install(ctx); err != nil {
			return err
		}
	}

	if opts.dryRun {
		if opts.saveConfig != "" {
			output.Info(fmt.Sprintf("Would save answers to %s", opts.saveConfig))
		}
		output.Info("Dry run complete, no files were written")
		return nil
	}

	if opts.saveConfig != "" {
		if err := config.SaveFile(opts.saveConfig, cfg); err != nil {
			return err
		}
		output.Info(fmt.Sprintf("Saved answers to %s", opts.saveConfig))
	}

	output.Complete(d.displayPath(cfg.RootPath), cfg.PackageManager)
	return nil
}

// displayPath is root relative to the working directory when it is below it.
func (d *deps) displayPath(root string) string {
	wd, err := d.getwd()
	if err != nil {
		return root
	}
	rel, err := filepath.Rel(wd, root)
	if err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return root
	}
	return rel
}

// cancelled turns a user abort into a goodbye message and a clean exit.
func cancelled(err error) error {
	if errors.Is(err, prompt.ErrCancelled) {
		output.Warn("Generation cancelled. Goodbye!")
		return nil
	}
	return err
}

// Execute runs cmd with interrupt handling and reports its error. Step
// failures were already printed by the orchestrator.
func Execute(cmd *cobra.Command) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	err := cmd.ExecuteContext(ctx)
	report(err)
	return err
}

func report(err error) {
	var stepErr *orchestrator.StepError
	switch {
	case err == nil:
	case errors.As(err, &stepErr):
	default:
		output.Error(err.Error())
	}
}
