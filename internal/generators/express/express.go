// Package express generates an Express.js backend in TypeScript or JavaScript.
package express

import (
	"embed"

	"github.com/simonhull/create-my-stack/internal/config"
	"github.com/simonhull/create-my-stack/internal/generator"
	"github.com/simonhull/create-my-stack/internal/generators/nodejs"
)

//go:embed templates/*.tmpl
var templates embed.FS

var dirs = []string{
	"src/routes",
	"src/controllers",
	"src/services",
	"src/middlewares",
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
	ts := g.cfg.IsTypeScript()

	ops := generator.Dirs(base, dirs...)

	files, err := g.renderer.RenderAll(templates, base, []generator.FileSpec{
		generator.File("src/index."+ext, "index."+ext+".tmpl"),
		generator.File("src/app."+ext, "app."+ext+".tmpl"),
		generator.File("src/routes/health."+ext, "routes_health."+ext+".tmpl"),
		generator.File("src/routes/index."+ext, "routes_index."+ext+".tmpl"),
		generator.File("src/controllers/health."+ext, "controllers_health."+ext+".tmpl"),
		generator.File("src/middlewares/error."+ext, "middlewares_error."+ext+".tmpl"),
		generator.File("src/config/index."+ext, "config_index."+ext+".tmpl"),
		generator.File(".env.example", "env.example.tmpl"),
	}, g.cfg)
	if err != nil {
		return nil, err
	}
	ops = append(ops, files...)

	var rules []any
	if ts {
		rules = []any{"@typescript-eslint/no-unused-vars", []any{"error", map[string]string{"argsIgnorePattern": "^_"}}}
	}

	jsonFiles := []nodejs.File{
		{Path: "package.json", Value: g.packageJSON()},
		{Path: ".eslintrc.json", Value: nodejs.ESLint(ts, rules...)},
		{Path: ".prettierrc", Value: nodejs.Prettier()},
	}
	if ts {
		jsonFiles = append(jsonFiles, nodejs.File{Path: "tsconfig.json", Value: nodejs.TSConfig()})
	}
	manifests, err := nodejs.JSONFiles(base, jsonFiles...)
	if err != nil {
		return nil, err
	}

	return append(ops, manifests...), nil
}

func (g *Generator) packageJSON() *generator.Object {
	ts := g.cfg.IsTypeScript()

	deps := nodejs.Deps(
		"express", "^4.18.2",
		"cors", "^2.8.5",
		"helmet", "^7.1.0",
		"morgan", "^1.10.0",
		"dotenv", "^16.4.5",
	)
	devDeps := nodejs.BaseDevDeps()

	if ts {
		nodejs.SetAll(devDeps,
			"typescript", "^5.4.3",
			"tsx", "^4.7.1",
			"@types/express", "^4.17.21",
			"@types/cors", "^2.8.17",
			"@types/morgan", "^1.9.9",
			"@typescript-eslint/eslint-plugin", "^7.4.0",
			"@typescript-eslint/parser", "^7.4.0",
		)
	} else {
		devDeps.Set("nodemon", "^3.1.0")
	}

	switch g.cfg.Backend.Auth {
	case config.JWT:
		nodejs.SetAll(deps, "jsonwebtoken", "^9.0.2", "bcryptjs", "^2.4.3")
		if ts {
			nodejs.SetAll(devDeps, "@types/jsonwebtoken", "^9.0.6", "@types/bcryptjs", "^2.4.6")
		}
	case config.Session:
		nodejs.SetAll(deps, "express-session", "^1.18.0", "connect-redis", "^7.1.1", "redis", "^4.6.13")
		if ts {
			devDeps.Set("@types/express-session", "^1.18.0")
		}
	}

	return generator.NewObject().
		Set("name", g.cfg.ProjectName+"-backend").
		Set("version", "1.0.0").
		Set("description", "Backend for "+g.cfg.ProjectName).
		Set("main", nodejs.Main(g.cfg)).
		Set("scripts", nodejs.Scripts(g.cfg, "No build step for JavaScript")).
		Set("dependencies", deps).
		Set("devDependencies", devDeps)
}
