// Package fastify generates a Fastify backend as an ES module project.
package fastify

import (
	"embed"
	"strings"

	"github.com/simonhull/create-my-stack/internal/config"
	"github.com/simonhull/create-my-stack/internal/generator"
	"github.com/simonhull/create-my-stack/internal/generators/nodejs"
)

//go:embed templates/*.tmpl
var templates embed.FS

var dirs = []string{
	"src/routes",
	"src/plugins",
	"src/services",
	"src/schemas",
	"src/config",
	"src/utils",
	"src/types",
}

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
	base := g.cfg.BackendPath
	ext := g.cfg.Ext()

	specs := []generator.FileSpec{generator.File(".env.example", "env.example.tmpl")}
	for _, name := range []string{"index", "app", "routes/health", "routes/index", "plugins/index", "schemas/health", "config/index"} {
		specs = append(specs, generator.File("src/"+name+"."+ext, templateName(name, ext)))
	}

	ops := generator.Dirs(base, dirs...)
	files, err := g.renderer.RenderAll(templates, base, specs, g.cfg)
	if err != nil {
		return nil, err
	}
	ops = append(ops, files...)

	jsonFiles := []nodejs.File{
		{Path: "package.json", Value: g.packageJSON()},
		{Path: ".eslintrc.json", Value: nodejs.ESLint(g.cfg.IsTypeScript())},
		{Path: ".prettierrc", Value: nodejs.Prettier()},
	}
	if g.cfg.IsTypeScript() {
		jsonFiles = append(jsonFiles, nodejs.File{Path: "tsconfig.json", Value: nodejs.TSConfig()})
	}
	manifests, err := nodejs.JSONFiles(base, jsonFiles...)
	if err != nil {
		return nil, err
	}

	return append(ops, manifests...), nil
}

// templateName maps "routes/health" to "routes_health.ts.tmpl".
func templateName(name, ext string) string {
	return strings.ReplaceAll(name, "/", "_") + "." + ext + ".tmpl"
}

func (g *Generator) packageJSON() *generator.Object {
	ts := g.cfg.IsTypeScript()

	deps := nodejs.Deps(
		"fastify", "^4.26.2",
		"@fastify/cors", "^9.0.1",
		"@fastify/helmet", "^11.1.1",
		"@fastify/sensible", "^5.6.0",
		"@fastify/env", "^4.3.0",
		"fastify-plugin", "^4.5.1",
		"dotenv", "^16.4.5",
	)
	devDeps := nodejs.BaseDevDeps()

	if ts {
		nodejs.SetAll(devDeps,
			"typescript", "^5.4.3",
			"tsx", "^4.7.1",
			"@typescript-eslint/eslint-plugin", "^7.4.0",
			"@typescript-eslint/parser", "^7.4.0",
		)
	} else {
		devDeps.Set("nodemon", "^3.1.0")
	}

	switch g.cfg.Backend.Auth {
	case config.JWT:
		nodejs.SetAll(deps, "@fastify/jwt", "^8.0.0", "bcryptjs", "^2.4.3")
		if ts {
			devDeps.Set("@types/bcryptjs", "^2.4.6")
		}
	case config.Session:
		nodejs.SetAll(deps, "@fastify/session", "^10.7.0", "@fastify/cookie", "^9.3.1")
	}

	return generator.NewObject().
		Set("name", g.cfg.ProjectName+"-backend").
		Set("version", "1.0.0").
		Set("description", "Backend for "+g.cfg.ProjectName).
		Set("main", nodejs.Main(g.cfg)).
		Set("type", "module").
		Set("scripts", nodejs.Scripts(g.cfg, "No build step")).
		Set("dependencies", deps).
		Set("devDependencies", devDeps)
}
