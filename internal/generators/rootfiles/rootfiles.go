// Package rootfiles generates the files at the top of the project: the
// environment example, .gitignore and, for monorepos, the workspace
// package.json. Backend-only projects share the root with the backend, whose
// generator owns .env.example there.
package rootfiles

import (
	"embed"
	"fmt"
	"path/filepath"

	"github.com/simonhull/create-my-stack/internal/config"
	"github.com/simonhull/create-my-stack/internal/generator"
	"github.com/simonhull/create-my-stack/internal/generators/gitignore"
)

//go:embed templates/*.tmpl
var templates embed.FS

// ConcurrentlyVersion is the version range of the monorepo dev runner.
const ConcurrentlyVersion = "^8.2.2"

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

func (g *Generator) Generate() ([]generator.Operation, error) {
	root := g.cfg.RootPath

	ops, err := g.renderer.RenderAll(templates, root, []generator.FileSpec{
		{Path: ".env.example", Template: "env.example.tmpl", When: g.cfg.BackendPath != root},
		{Path: "pnpm-workspace.yaml", Template: "pnpm-workspace.yaml.tmpl", When: g.cfg.IsMonorepo() && g.cfg.PackageManager == config.PNPM},
	}, g.cfg)
	if err != nil {
		return nil, err
	}

	ignore, err := gitignore.New().Generate(root, gitignore.Options{
		Env:    true,
		Prisma: g.cfg.Backend.ORM == config.Prisma,
		NextJS: g.cfg.Frontend.Framework == config.NextJS,
	})
	if err != nil {
		return nil, err
	}
	ops = append(ops, ignore...)

	if g.cfg.IsMonorepo() {
		op, err := generator.JSONFile(filepath.Join(root, "package.json"), g.packageJSON())
		if err != nil {
			return nil, err
		}
		ops = append(ops, op)
	}

	return ops, nil
}

// packageJSON is the workspace manifest. pnpm reads workspaces from
// pnpm-workspace.yaml, npm and yarn from the workspaces field.
func (g *Generator) packageJSON() *generator.Object {
	pm := g.cfg.PackageManager

	scripts := generator.NewObject().
		Set("dev", `concurrently "npm:dev:*"`).
		Set("dev:backend", fmt.Sprintf("%s --filter backend dev", pm)).
		Set("dev:frontend", fmt.Sprintf("%s --filter frontend dev", pm)).
		Set("build", fmt.Sprintf(`%s --filter "*" build`, pm)).
		Set("lint", fmt.Sprintf(`%s --filter "*" lint`, pm)).
		Set("format", fmt.Sprintf(`%s --filter "*" format`, pm)).
		Set("test", fmt.Sprintf(`%s --filter "*" test`, pm))

	pkg := generator.NewObject().
		Set("name", g.cfg.ProjectName).
		Set("version", "1.0.0").
		Set("private", true).
		Set("description", g.cfg.Description).
		Set("scripts", scripts).
		Set("devDependencies", generator.NewObject().Set("concurrently", ConcurrentlyVersion))

	if pm != config.PNPM {
		pkg.Set("workspaces", []string{"apps/*"})
	}
	return pkg
}
