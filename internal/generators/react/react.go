// Package react generates a React 18 + Vite frontend with react-router,
// axios and optional Redux Toolkit or Zustand.
package react

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
	"src/assets",
	"src/components",
	"src/hooks",
	"src/layouts",
	"src/pages",
	"src/services",
	"src/store",
	"src/types",
	"src/utils",
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

	ops := generator.Dirs(base, dirs...)

	specs := []generator.FileSpec{
		generator.File("vite.config.ts", "vite.config.ts.tmpl"),
		{Path: "tailwind.config.js", Template: "tailwind.config.js", When: tailwind, Raw: true},
		{Path: "postcss.config.js", Template: "postcss.config.js", When: tailwind, Raw: true},
		generator.File("index.html", "index.html.tmpl"),
		generator.Static("src/vite-env.d.ts", "vite-env.d.ts"),
		generator.File("src/main.tsx", "main.tsx.tmpl"),
		generator.Static("src/App.tsx", "App.tsx"),
		generator.File("src/pages/HomePage.tsx", "HomePage.tsx.tmpl"),
		generator.File("src/pages/AboutPage.tsx", "AboutPage.tsx.tmpl"),
		generator.File("src/pages/NotFoundPage.tsx", "NotFoundPage.tsx.tmpl"),
		generator.Static("src/components/Card.tsx", "Card.tsx"),
		generator.Static("src/components/index.ts", "components_index.ts"),
		generator.Static("src/services/api.ts", "api.ts"),
		generator.File("src/assets/index."+g.cfg.StyleExt(), "index.css.tmpl"),
		generator.Static("src/hooks/useDebounce.ts", "useDebounce.ts"),
		generator.Static("src/hooks/useLocalStorage.ts", "useLocalStorage.ts"),
		generator.Static("src/hooks/index.ts", "hooks_index.ts"),
		generator.File(".env.example", "env.example.tmpl"),
		generator.Static(".eslintrc.cjs", "eslintrc.cjs"),
		generator.Static("public/vite.svg", "vite.svg"),
	}
	specs = append(specs, storeFiles(g.cfg.Frontend.StateManagement)...)

	files, err := g.renderer.RenderAll(templates, base, specs, g.cfg)
	if err != nil {
		return nil, err
	}
	ops = append(ops, files...)

	manifests, err := nodejs.JSONFiles(base,
		nodejs.File{Path: "package.json", Value: g.packageJSON()},
		nodejs.File{Path: "tsconfig.json", Value: tsConfig()},
		nodejs.File{Path: "tsconfig.node.json", Value: nodejs.ViteNodeTSConfig()},
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
		"react", "^18.2.0",
		"react-dom", "^18.2.0",
		"react-router-dom", "^6.22.3",
		"axios", "^1.6.8",
	)
	devDeps := nodejs.Deps(
		"@types/react", "^18.2.67",
		"@types/react-dom", "^18.2.22",
		"@vitejs/plugin-react", "^4.2.1",
		"vite", "^5.2.6",
		"typescript", "^5.4.3",
		"@typescript-eslint/eslint-plugin", "^7.4.0",
		"@typescript-eslint/parser", "^7.4.0",
		"eslint", "^8.57.0",
		"eslint-plugin-react", "^7.34.1",
		"eslint-plugin-react-hooks", "^4.6.0",
		"eslint-plugin-react-refresh", "^0.4.6",
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
		Set("dev", "vite --port "+strconv.Itoa(g.cfg.Frontend.Port)).
		Set("build", "tsc && vite build").
		Set("preview", "vite preview").
		Set("lint", "eslint . --ext ts,tsx --report-unused-disable-directives --max-warnings 0").
		Set("format", `prettier --write "src/**/*.{ts,tsx,css,scss}"`)

	return generator.NewObject().
		Set("name", g.cfg.ProjectName+"-frontend").
		Set("private", true).
		Set("version", "1.0.0").
		Set("type", "module").
		Set("scripts", scripts).
		Set("dependencies", deps).
		Set("devDependencies", devDeps)
}

func tsConfig() *generator.Object {
	compilerOptions := nodejs.ViteCompilerOptions("react-jsx").
		Set("baseUrl", ".").
		Set("paths", generator.NewObject().Set("@/*", []string{"src/*"}))

	return generator.NewObject().
		Set("compilerOptions", compilerOptions).
		Set("include", []string{"src"}).
		Set("references", []any{generator.NewObject().Set("path", "./tsconfig.node.json")})
}
