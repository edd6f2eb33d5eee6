// Package orchestrator turns a ProjectConfig into a project on disk. It plans
// the generator steps, runs them in order with progress output and, when a
// step fails, can roll back everything the run created.
package orchestrator

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/simonhull/create-my-stack/internal/config"
	"github.com/simonhull/create-my-stack/internal/generator"
	"github.com/simonhull/create-my-stack/internal/generators/docker"
	"github.com/simonhull/create-my-stack/internal/generators/express"
	"github.com/simonhull/create-my-stack/internal/generators/fastify"
	"github.com/simonhull/create-my-stack/internal/generators/gitignore"
	"github.com/simonhull/create-my-stack/internal/generators/mailing"
	"github.com/simonhull/create-my-stack/internal/generators/nestjs"
	"github.com/simonhull/create-my-stack/internal/generators/nextjs"
	"github.com/simonhull/create-my-stack/internal/generators/prisma"
	"github.com/simonhull/create-my-stack/internal/generators/react"
	"github.com/simonhull/create-my-stack/internal/generators/readme"
	"github.com/simonhull/create-my-stack/internal/generators/rootfiles"
	"github.com/simonhull/create-my-stack/internal/generators/vue"
	"github.com/simonhull/create-my-stack/internal/logger"
	"github.com/simonhull/create-my-stack/internal/output"
)

// ErrDirectoryExists is returned when the project directory is already present.
var ErrDirectoryExists = errors.New("already exists")

// StepError reports which step of a run failed.
type StepError struct {
	Step int
	Name string
	Err  error
}

func (e *StepError) Error() string {
	return fmt.Sprintf("Failed at step %d: %v", e.Step, e.Err)
}

func (e *StepError) Unwrap() error { return e.Err }

// Runner runs external commands, optionally behind a spinner.
// *exec.Executor implements it.
type Runner interface {
	generator.Runner
	RunWithSpinner(ctx context.Context, message, dir, name string, args ...string) error
}

// Options configures a run.
type Options struct {
	DryRun   bool
	Force    bool
	Rollback bool      // Remove created files when a step fails
	Writer   io.Writer // Per-operation lines, io.Discard when nil
	Logger   logger.Logger
	Runner   Runner
	// Concurrency bounds parallel operations within a step.
	Concurrency int
}

// Step is one unit of the plan.
type Step struct {
	Name    string
	Message string // Shown before the step runs
	Done    string // Shown after it succeeds
	Build   func() ([]generator.Operation, error)
}

type Orchestrator struct {
	cfg  *config.ProjectConfig
	opts Options
	log  logger.Logger
}

func New(cfg *config.ProjectConfig, opts Options) *Orchestrator {
	if opts.Writer == nil {
		opts.Writer = io.Discard
	}
	if opts.Logger == nil {
		opts.Logger = logger.Nop()
	}
	return &Orchestrator{
		cfg:  cfg,
		opts: opts,
		log:  opts.Logger.With(logger.F("project", cfg.ProjectName)),
	}
}

// Plan lists the steps the configuration calls for, in execution order.
func (o *Orchestrator) Plan() []Step {
	cfg := o.cfg

	steps := []Step{
		{
			Name:    "directory",
			Message: "Creating project directory...",
			Done:    "Project directory created",
			Build:   o.directory,
		},
		{
			Name:    "root",
			Message: "Generating root configuration...",
			Done:    "Root configuration generated",
			Build:   rootfiles.New(cfg).Generate,
		},
		{
			Name:    "backend",
			Message: "Generating backend...",
			Done:    fmt.Sprintf("Backend generated (%s)", cfg.Backend.Framework),
			Build:   o.backend,
		},
	}

	if cfg.Backend.ORM == config.Prisma {
		steps = append(steps, Step{
			Name:    "prisma",
			Message: "Setting up Prisma...",
			Done:    "Prisma configured",
			Build:   prisma.New(cfg).Generate,
		})
	}
	if cfg.Backend.Mailing != config.NoMailing {
		steps = append(steps, Step{
			Name:    "mailing",
			Message: "Setting up mailing...",
			Done:    fmt.Sprintf("Mailing configured (%s)", cfg.Backend.Mailing),
			Build:   mailing.New(cfg).Generate,
		})
	}
	if cfg.HasFrontend() {
		steps = append(steps, Step{
			Name:    "frontend",
			Message: "Generating frontend...",
			Done:    fmt.Sprintf("Frontend generated (%s)", cfg.Frontend.Framework),
			Build:   o.frontend,
		})
	}
	if cfg.Docker {
		steps = append(steps, Step{
			Name:    "docker",
			Message: "Generating Docker configuration...",
			Done:    "Docker configuration generated",
			Build:   docker.New(cfg).Generate,
		})
	}

	steps = append(steps, Step{
		Name:    "readme",
		Message: "Generating documentation...",
		Done:    "Documentation generated",
		Build:   readme.New(cfg).Generate,
	})

	if cfg.InitGit {
		steps = append(steps, Step{
			Name:    "git",
			Message: "Initializing git repository...",
			Done:    "Git repository initialized",
			Build:   o.git,
		})
	}
	return steps
}

// TotalSteps is the length of the plan: four fixed steps plus the optional
// ones that apply.
func (o *Orchestrator) TotalSteps() int {
	return len(o.Plan())
}

// Generate runs every planned step. Each step's operations are validated and
// executed before the next step is built, since later generators update files
// written by earlier ones.
func (o *Orchestrator) Generate(ctx context.Context) error {
	steps := o.Plan()
	total := len(steps)
	tx := generator.NewTransaction()

	o.log.Debug("plan ready", logger.F("steps", total), logger.F("dry_run", o.opts.DryRun))

	for i, step := range steps {
		n := i + 1
		output.Progress(n, total, step.Message)

		if err := o.runStep(ctx, tx, step); err != nil {
			stepErr := &StepError{Step: n, Name: step.Name, Err: err}
			output.Error(stepErr.Error())
			o.log.Debug("step failed", logger.F("step", step.Name), logger.F("error", err))

			if o.opts.Rollback && !o.opts.DryRun && len(tx.Created()) > 0 {
				if rbErr := tx.Rollback(); rbErr != nil {
					output.Warn(fmt.Sprintf("Rollback incomplete: %v", rbErr))
				} else {
					output.Info("Rolled back created files")
				}
			}
			return stepErr
		}

		output.Success(step.Done)
	}

	tx.Commit()
	return nil
}

func (o *Orchestrator) runStep(ctx context.Context, tx *generator.Transaction, step Step) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	ops, err := step.Build()
	if err != nil {
		return err
	}
	o.log.Debug("step built", logger.F("step", step.Name), logger.F("ops", len(ops)))

	return tx.Execute(ctx, ops, generator.ExecuteOptions{
		DryRun:      o.opts.DryRun,
		Force:       o.opts.Force,
		Writer:      o.opts.Writer,
		Concurrency: o.opts.Concurrency,
	})
}

func (o *Orchestrator) directory() ([]generator.Operation, error) {
	cfg := o.cfg
	if _, err := os.Stat(cfg.RootPath); err == nil && !o.opts.Force {
		return nil, fmt.Errorf("directory %s %w", cfg.ProjectName, ErrDirectoryExists)
	}

	ops := []generator.Operation{&generator.MkdirOp{Path: cfg.RootPath}}
	if cfg.IsMonorepo() {
		ops = append(ops, &generator.MkdirOp{Path: filepath.Join(cfg.RootPath, "apps")})
	}
	if cfg.BackendPath != cfg.RootPath {
		ops = append(ops, &generator.MkdirOp{Path: cfg.BackendPath})
	}
	if cfg.HasFrontend() {
		ops = append(ops, &generator.MkdirOp{Path: cfg.FrontendPath})
	}
	return ops, nil
}

func (o *Orchestrator) backend() ([]generator.Operation, error) {
	switch o.cfg.Backend.Framework {
	case config.Express:
		return express.New(o.cfg).Generate()
	case config.Fastify:
		return fastify.New(o.cfg).Generate()
	case config.NestJS:
		return nestjs.New(o.cfg).Generate()
	}
	return nil, fmt.Errorf("unknown backend framework: %s", o.cfg.Backend.Framework)
}

func (o *Orchestrator) frontend() ([]generator.Operation, error) {
	switch o.cfg.Frontend.Framework {
	case config.Vue:
		return vue.New(o.cfg).Generate()
	case config.React:
		return react.New(o.cfg).Generate()
	case config.NextJS:
		return nextjs.New(o.cfg).Generate()
	}
	return nil, fmt.Errorf("unknown frontend framework: %s", o.cfg.Frontend.Framework)
}

// git initializes one repository, or one per app when a separate structure
// has a frontend. Separate repos get their own .gitignore.
func (o *Orchestrator) git() ([]generator.Operation, error) {
	cfg := o.cfg
	if o.opts.Runner == nil {
		return nil, fmt.Errorf("no command runner for git init")
	}

	if cfg.IsMonorepo() || !cfg.HasFrontend() {
		return []generator.Operation{o.gitInit(cfg.RootPath)}, nil
	}

	ignore := gitignore.New()
	backendIgnore, err := ignore.Generate(cfg.BackendPath, gitignore.Options{
		Env:    true,
		Prisma: cfg.Backend.ORM == config.Prisma,
	})
	if err != nil {
		return nil, err
	}
	frontendIgnore, err := ignore.Generate(cfg.FrontendPath, gitignore.Options{
		Env:    true,
		NextJS: cfg.Frontend.Framework == config.NextJS,
	})
	if err != nil {
		return nil, err
	}

	ops := []generator.Operation{o.gitInit(cfg.BackendPath)}
	ops = append(ops, backendIgnore...)
	ops = append(ops, o.gitInit(cfg.FrontendPath))
	return append(ops, frontendIgnore...), nil
}

func (o *Orchestrator) gitInit(dir string) generator.Operation {
	return &generator.CommandOp{Dir: dir, Name: "git", Args: []string{"init"}, Runner: o.opts.Runner}
}

// InstallDirs are the directories a dependency install runs in.
func (o *Orchestrator) InstallDirs() []string {
	cfg := o.cfg
	if cfg.IsMonorepo() || !cfg.HasFrontend() {
		return []string{cfg.RootPath}
	}
	return []string{cfg.BackendPath, cfg.FrontendPath}
}

// Install runs the package manager in each install directory. A failed
// install is reported as a warning so the generated project is kept; only
// cancellation is returned as an error.
func (o *Orchestrator) Install(ctx context.Context) error {
	if o.opts.DryRun {
		return nil
	}
	if o.opts.Runner == nil {
		return fmt.Errorf("no command runner for install")
	}

	pm := o.cfg.PackageManager
	for _, dir := range o.InstallDirs() {
		if err := ctx.Err(); err != nil {
			return err
		}

		msg := "Installing dependencies"
		if rel, err := filepath.Rel(o.cfg.RootPath, dir); err == nil && rel != "." {
			msg += " in " + filepath.ToSlash(rel)
		}

		o.log.Debug("install", logger.F("dir", dir), logger.F("package_manager", string(pm)))
		if err := o.opts.Runner.RunWithSpinner(ctx, msg, dir, string(pm), pm.InstallArgs()...); err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			output.Warn(fmt.Sprintf("%s failed: %v", msg, err))
			output.Info(fmt.Sprintf("Run '%s' manually in %s", pm.InstallCommand(), dir))
		}
	}
	return nil
}
