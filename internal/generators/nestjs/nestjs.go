// Package nestjs generates a NestJS backend. NestJS projects are always
// TypeScript.
package nestjs

import (
	"embed"
	"path/filepath"

	"github.com/simonhull/create-my-stack/internal/config"
	"github.com/simonhull/create-my-stack/internal/generator"
	"github.com/simonhull/create-my-stack/internal/generators/nodejs"
)

//go:embed templates/*.tmpl
var templates embed.FS

var dirs = []string{
	"src/common/decorators",
	"src/common/filters",
	"src/common/guards",
	"src/common/interceptors",
	"src/common/pipes",
	"src/config",
	"src/health",
	"src/modules",
}

var files = []generator.FileSpec{
	generator.File("src/main.ts", "main.ts.tmpl"),
	generator.File("src/app.module.ts", "app.module.ts.tmpl"),
	generator.File("src/app.controller.ts", "app.controller.ts.tmpl"),
	generator.File("src/app.service.ts", "app.service.ts.tmpl"),
	generator.File("src/health/health.module.ts", "health.module.ts.tmpl"),
	generator.File("src/health/health.controller.ts", "health.controller.ts.tmpl"),
	generator.File("src/config/configuration.ts", "configuration.ts.tmpl"),
	generator.File("src/common/filters/http-exception.filter.ts", "http-exception.filter.ts.tmpl"),
	generator.File("src/common/interceptors/transform.interceptor.ts", "transform.interceptor.ts.tmpl"),
	generator.File("tsconfig.json", "tsconfig.json.tmpl"),
	generator.File("tsconfig.build.json", "tsconfig.build.json.tmpl"),
	generator.File("nest-cli.json", "nest-cli.json.tmpl"),
	generator.File(".env.example", "env.example.tmpl"),
	generator.File(".eslintrc.js", "eslintrc.js.tmpl"),
	generator.File(".prettierrc", "prettierrc.tmpl"),
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

	ops := generator.Dirs(base, dirs...)
	rendered, err := g.renderer.RenderAll(templates, base, files, g.cfg)
	if err != nil {
		return nil, err
	}
	ops = append(ops, rendered...)

	pkg, err := generator.JSONFile(filepath.Join(base, "package.json"), g.packageJSON())
	if err != nil {
		return nil, err
	}
	return append(ops, pkg), nil
}

func (g *Generator) packageJSON() *generator.Object {
	deps := nodejs.Deps(
		"@nestjs/common", "^10.3.3",
		"@nestjs/core", "^10.3.3",
		"@nestjs/platform-express", "^10.3.3",
		"@nestjs/config", "^3.2.0",
		"@nestjs/terminus", "^10.2.3",
		"class-transformer", "^0.5.1",
		"class-validator", "^0.14.1",
		"reflect-metadata", "^0.2.1",
		"rxjs", "^7.8.1",
	)
	devDeps := nodejs.Deps(
		"@nestjs/cli", "^10.3.2",
		"@nestjs/schematics", "^10.1.1",
		"@nestjs/testing", "^10.3.3",
		"@types/express", "^4.17.21",
		"@types/node", "^20.11.30",
		"@typescript-eslint/eslint-plugin", "^7.4.0",
		"@typescript-eslint/parser", "^7.4.0",
		"eslint", "^8.57.0",
		"eslint-config-prettier", "^9.1.0",
		"eslint-plugin-prettier", "^5.1.3",
		"prettier", "^3.2.5",
		"source-map-support", "^0.5.21",
		"ts-loader", "^9.5.1",
		"ts-node", "^10.9.2",
		"tsconfig-paths", "^4.2.0",
		"typescript", "^5.4.3",
	)

	switch g.cfg.Backend.Auth {
	case config.JWT:
		nodejs.SetAll(deps,
			"@nestjs/jwt", "^10.2.0",
			"@nestjs/passport", "^10.0.3",
			"passport", "^0.7.0",
			"passport-jwt", "^4.0.1",
			"bcryptjs", "^2.4.3",
		)
		nodejs.SetAll(devDeps, "@types/passport-jwt", "^4.0.1", "@types/bcryptjs", "^2.4.6")
	case config.Session:
		deps.Set("express-session", "^1.18.0")
		devDeps.Set("@types/express-session", "^1.18.0")
	}

	scripts := nodejs.Deps(
		"build", "nest build",
		"format", `prettier --write "src/**/*.ts" "test/**/*.ts"`,
		"start", "nest start",
		"dev", "nest start --watch",
		"start:debug", "nest start --debug --watch",
		"start:prod", "node dist/main",
		"lint", `eslint "{src,apps,libs,test}/**/*.ts" --fix`,
		"test", "jest",
		"test:watch", "jest --watch",
		"test:cov", "jest --coverage",
		"test:e2e", "jest --config ./test/jest-e2e.json",
	)

	return generator.NewObject().
		Set("name", g.cfg.ProjectName+"-backend").
		Set("version", "1.0.0").
		Set("description", "Backend for "+g.cfg.ProjectName).
		Set("scripts", scripts).
		Set("dependencies", deps).
		Set("devDependencies", devDeps)
}
