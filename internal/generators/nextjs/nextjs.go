// Package nextjs generates a Next.js 14 App Router frontend with standalone
// output and an /api rewrite to the backend.
package nextjs

import (
	"embed"
	"strconv"

	"github.com/simonhull/create-my-stack/internal/config"
	"github.com/simonhull/create-my-stack/internal/generator"
	"github.com/simonhull/create-my-stack/internal/generators/nodejs"
)

//go:embed templates
var templates embed.FS

var dirs = []string{
	"src/app",
	"src/app/about",
	"src/components",
	"src/hooks",
	"src/lib",
	"src/services",
	"src/store",
	"src/types",
	"public",
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
	base := g.cfg.FrontendPath
	tailwind := g.cfg.Frontend.Styling == config.Tailwind
	redux := g.cfg.Frontend.StateManagement == config.Redux

	ops := generator.Dirs(base, dirs...)

	specs := []generator.FileSpec{
		generator.File("next.config.mjs", "next.config.mjs.tmpl"),
		{Path: "tailwind.config.js", Template: "tailwind.config.js", When: tailwind, Raw: true},
		{Path: "postcss.config.js", Template: "postcss.config.js", When: tailwind, Raw: true},
		generator.Static("next-env.d.ts", "next-env.d.ts"),
		generator.File("src/app/layout.tsx", "layout.tsx.tmpl"),
		{Path: "src/app/providers.tsx", Template: "providers.tsx", When: redux, Raw: true},
		generator.File("src/app/page.tsx", "page.tsx.tmpl"),
		generator.File("src/app/about/page.tsx", "about_page.tsx.tmpl"),
		generator.File("src/app/not-found.tsx", "not-found.tsx.tmpl"),
		generator.File("src/app/globals."+g.cfg.StyleExt(), "globals.css.tmpl"),
		generator.Static("src/app/icon.svg", "favicon.svg"),
		generator.Static("src/components/Card.tsx", "Card.tsx"),
		generator.Static("src/components/index.ts", "components_index.ts"),
		generator.Static("src/services/api.ts", "api.ts"),
		generator.Static("src/hooks/useDebounce.ts", "useDebounce.ts"),
		generator.Static("src/hooks/useLocalStorage.ts", "useLocalStorage.ts"),
		generator.Static("src/hooks/index.ts", "hooks_index.ts"),
		generator.File(".env.example", "env.example.tmpl"),
		generator.File(".env.local.example", "env.example.tmpl"),
		generator.Static("public/favicon.svg", "favicon.svg"),
	}
	specs = append(specs, storeFiles(g.cfg.Frontend.StateManagement)...)

	files, err := g.renderer.RenderAll(templates, base, specs, g.cfg)
	if err != nil {
		return nil, err
	}
	ops = append(ops, files...)

	eslint := generator.NewObject().
		Set("extends", []string{"next/core-web-vitals"}).
		Set("rules", generator.NewObject())

	manifests, err := nodejs.JSONFiles(base,
		nodejs.File{Path: "package.json", Value: g.packageJSON()},
		nodejs.File{Path: "tsconfig.json", Value: tsConfig()},
		nodejs.File{Path: ".eslintrc.json", Value: eslint},
		nodejs.File{Path: ".prettierrc", Value: nodejs.FrontendPrettier()},
	)
	if err != nil {
		return nil, err
	}
	return append(ops, manifests...), nil
}

func storeFiles(state config.StateManagement) []generator.FileSpec {
	switch state {
	case config.Redux:
		return []generator.FileSpec{
			generator.Static("src/store/index.ts", "redux_index.ts"),
			generator.Static("src/store/counterSlice.ts", "counterSlice.ts"),
			generator.Static("src/store/userSlice.ts", "userSlice.ts"),
			generator.Static("src/store/hooks.ts", "redux_hooks.ts"),
		}
	case config.Zustand:
		return []generator.FileSpec{generator.Static("src/store/index.ts", "zustand_index.ts")}
	default:
		return []generator.FileSpec{generator.File("src/store/index.ts", "store_none.ts.tmpl")}
	}
}

func (g *Generator) packageJSON() *generator.Object {
	deps := nodejs.Deps(
		"next", "^14.1.4",
		"react", "^18.2.0",
		"react-dom", "^18.2.0",
		"axios", "^1.6.8",
	)
	devDeps := nodejs.Deps(
		"@types/node", "^20.11.30",
		"@types/react", "^18.2.67",
		"@types/react-dom", "^18.2.22",
		"typescript", "^5.4.3",
		"eslint", "^8.57.0",
		"eslint-config-next", "^14.1.4",
		"prettier", "^3.2.5",
	)

	switch g.cfg.Frontend.StateManagement {
	case config.Redux:
		nodejs.SetAll(deps, "@reduxjs/toolkit", "^2.2.2", "react-redux", "^9.1.0")
	case config.Zustand:
		deps.Set("zustand", "^4.5.2")
	}
	nodejs.SetStyling(devDeps, g.cfg.Frontend.Styling)

	scripts := generator.NewObject().
		Set("dev", "next dev -p "+strconv.Itoa(g.cfg.Frontend.Port)).
		Set("build", "next build").
		Set("start", "next start").
		Set("lint", "next lint").
		Set("format", `prettier --write "src/**/*.{ts,tsx,css,scss}"`)

	return generator.NewObject().
		Set("name", g.cfg.ProjectName+"-frontend").
		Set("version", "1.0.0").
		Set("private", true).
		Set("scripts", scripts).
		Set("dependencies", deps).
		Set("devDependencies", devDeps)
}

func tsConfig() *generator.Object {
	compilerOptions := generator.NewObject().
		Set("lib", []string{"dom", "dom.iterable", "esnext"}).
		Set("allowJs", true).
		Set("skipLibCheck", true).
		Set("strict", true).
		Set("noEmit", true).
		Set("esModuleInterop", true).
		Set("module", "esnext").
		Set("moduleResolution", "bundler").
		Set("resolveJsonModule", true).
		Set("isolatedModules", true).
		Set("jsx", "preserve").
		Set("incremental", true).
		Set("plugins", []any{generator.NewObject().Set("name", "next")}).
		Set("baseUrl", ".").
		Set("paths", generator.NewObject().Set("@/*", []string{"./src/*"}))

	return generator.NewObject().
		Set("compilerOptions", compilerOptions).
		Set("include", []string{"next-env.d.ts", "**/*.ts", "**/*.tsx", ".next/types/**/*.ts"}).
		Set("exclude", []string{"node_modules"})
}
