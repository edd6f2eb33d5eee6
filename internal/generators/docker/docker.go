// Package docker writes the container setup: Dockerfiles for each app, the
// nginx proxy configuration and two compose files, one for production and
// one with just the backing services for local development.
package docker

import (
	"embed"
	"fmt"
	"path/filepath"

	"github.com/simonhull/create-my-stack/internal/config"
	"github.com/simonhull/create-my-stack/internal/generator"
)

//go:embed templates
var templates embed.FS

type Generator struct {
	cfg      *config.ProjectConfig
	renderer *generator.Renderer
}

func New(cfg *config.ProjectConfig) *Generator {
	return &Generator{
		cfg:      cfg,
		renderer: generator.NewRenderer(),
	}
}

// Paths are the compose build contexts and Dockerfile locations, relative to
// the project root and the context respectively.
type Paths struct {
	BackendContext     string
	BackendDockerfile  string
	FrontendContext    string
	FrontendDockerfile string
}

// ResolvePaths derives build contexts from the computed app directories.
func ResolvePaths(cfg *config.ProjectConfig) (Paths, error) {
	var p Paths
	var err error

	p.BackendContext, p.BackendDockerfile, err = contextFor(cfg.RootPath, cfg.BackendPath, "Dockerfile.backend")
	if err != nil {
		return p, err
	}
	if cfg.HasFrontend() {
		p.FrontendContext, p.FrontendDockerfile, err = contextFor(cfg.RootPath, cfg.FrontendPath, "Dockerfile.frontend")
	}
	return p, err
}

func contextFor(root, app, dockerfile string) (string, string, error) {
	rel, err := filepath.Rel(root, app)
	if err != nil {
		return "", "", fmt.Errorf("failed to resolve build context for %s: %w", app, err)
	}
	back, err := filepath.Rel(app, filepath.Join(root, "docker", dockerfile))
	if err != nil {
		return "", "", fmt.Errorf("failed to resolve %s: %w", dockerfile, err)
	}

	ctx := filepath.ToSlash(rel)
	if ctx != "." {
		ctx = "./" + ctx
	}
	return ctx, filepath.ToSlash(back), nil
}

// templateData carries the per package manager commands into the Dockerfiles.
type templateData struct {
	*config.ProjectConfig
	LockFile              string
	Install               string
	ProdInstall           string
	Prisma                bool
	Output                string // COPY --from arguments for the runnable app
	Entry                 string
	FrontendContainerPort int
}

// installCommands returns the full and production installs. Workspace apps
// have no lockfile of their own, so they cannot install frozen.
func installCommands(pm config.PackageManager, frozen bool) (string, string) {
	switch pm {
	case config.PNPM:
		if frozen {
			return "pnpm install --frozen-lockfile", "pnpm install --prod --frozen-lockfile"
		}
		return "pnpm install", "pnpm install --prod"
	case config.Yarn:
		if frozen {
			return "yarn install --frozen-lockfile", "yarn install --production --frozen-lockfile"
		}
		return "yarn install", "yarn install --production"
	default:
		if frozen {
			return "npm ci", "npm ci --omit=dev"
		}
		return "npm install", "npm install --omit=dev"
	}
}

func (g *Generator) data() templateData {
	cfg := g.cfg
	d := templateData{
		ProjectConfig:         cfg,
		LockFile:              cfg.PackageManager.LockFile(),
		Prisma:                cfg.Backend.ORM == config.Prisma,
		Output:                "builder /app/dist ./dist",
		Entry:                 "dist/index.js",
		FrontendContainerPort: 80,
	}

	frozen := !cfg.IsMonorepo()
	if !frozen {
		// The glob lets COPY succeed when the lockfile is absent.
		d.LockFile += "*"
	}
	d.Install, d.ProdInstall = installCommands(cfg.PackageManager, frozen)

	switch {
	case cfg.Backend.Framework == config.NestJS:
		d.Entry = "dist/main.js"
	case !cfg.IsTypeScript():
		d.Output = "builder /app/src ./src"
		d.Entry = "src/index.js"
	}
	if cfg.Frontend.Framework == config.NextJS {
		d.FrontendContainerPort = cfg.Frontend.Port
	}
	return d
}

func (g *Generator) Generate() ([]generator.Operation, error) {
	if !g.cfg.Docker {
		return nil, nil
	}

	root := g.cfg.RootPath
	spa := g.cfg.HasFrontend() && g.cfg.Frontend.Framework != config.NextJS

	ops := generator.Dirs(root, "docker")
	files, err := g.renderer.RenderAll(templates, root, []generator.FileSpec{
		generator.File("docker/Dockerfile.backend", "Dockerfile.backend.tmpl"),
		{Path: "docker/Dockerfile.frontend", Template: "Dockerfile.frontend.tmpl", When: g.cfg.HasFrontend()},
		generator.File("docker/nginx.conf", "nginx.conf.tmpl"),
		{Path: "docker/nginx.frontend.conf", Template: "nginx.frontend.conf.tmpl", When: spa},
		generator.Static(".dockerignore", "dockerignore"),
	}, g.data())
	if err != nil {
		return nil, err
	}
	ops = append(ops, files...)

	// Compose builds from the app directories, which read their own ignore file.
	if g.cfg.BackendPath != root {
		ignore, err := g.appIgnores()
		if err != nil {
			return nil, err
		}
		ops = append(ops, ignore...)
	}

	compose, err := g.composeFiles()
	if err != nil {
		return nil, err
	}
	return append(ops, compose...), nil
}

func (g *Generator) appIgnores() ([]generator.Operation, error) {
	dirs := []string{g.cfg.BackendPath}
	if g.cfg.HasFrontend() {
		dirs = append(dirs, g.cfg.FrontendPath)
	}

	var ops []generator.Operation
	for _, dir := range dirs {
		op, err := g.renderer.RenderAll(templates, dir, []generator.FileSpec{
			generator.Static(".dockerignore", "dockerignore"),
		}, nil)
		if err != nil {
			return nil, err
		}
		ops = append(ops, op...)
	}
	return ops, nil
}

const (
	productionHeader  = "# Production stack: build and run with `docker compose up -d --build`\n"
	developmentHeader = "# Backing services for local development: `docker compose -f docker-compose.dev.yml up -d`\n"
)

func (g *Generator) composeFiles() ([]generator.Operation, error) {
	paths, err := ResolvePaths(g.cfg)
	if err != nil {
		return nil, err
	}

	prod, err := Marshal(productionHeader, ProductionCompose(g.cfg, paths))
	if err != nil {
		return nil, err
	}
	ops := []generator.Operation{&generator.WriteFileOp{
		Path:    filepath.Join(g.cfg.RootPath, "docker-compose.yml"),
		Content: prod,
		Mode:    0644,
	}}

	dev := DevelopmentCompose(g.cfg)
	if len(dev.Services) == 0 {
		return ops, nil
	}
	content, err := Marshal(developmentHeader, dev)
	if err != nil {
		return nil, err
	}
	return append(ops, &generator.WriteFileOp{
		Path:    filepath.Join(g.cfg.RootPath, "docker-compose.dev.yml"),
		Content: content,
		Mode:    0644,
	}), nil
}
