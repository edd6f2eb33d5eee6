// Package vue generates a Vue 3 + Vite frontend with vue-router, axios and
// optional Pinia.
package vue

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
	"src/composables",
	"src/layouts",
	"src/pages",
	"src/router",
	"src/services",
	"src/stores",
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
	pinia := g.cfg.Frontend.StateManagement == config.Pinia

	ops := generator.Dirs(base, dirs...)

	files, err := g.renderer.RenderAll(templates, base, []generator.FileSpec{
		generator.File("vite.config.ts", "vite.config.ts.tmpl"),
		{Path: "tailwind.config.js", Template: "tailwind.config.js", When: tailwind, Raw: true},
		{Path: "postcss.config.js", Template: "postcss.config.js", When: tailwind, Raw: true},
		generator.Static("env.d.ts", "env.d.ts"),
		generator.File("index.html", "index.html.tmpl"),
		generator.File("src/main.ts", "main.ts.tmpl"),
		generator.Static("src/App.vue", "App.vue"),
		generator.Static("src/router/index.ts", "router.ts"),
		generator.File("src/pages/HomePage.vue", "HomePage.vue.tmpl"),
		generator.File("src/pages/AboutPage.vue", "AboutPage.vue.tmpl"),
		generator.File("src/pages/NotFoundPage.vue", "NotFoundPage.vue.tmpl"),
		generator.Static("src/components/BaseCard.vue", "BaseCard.vue"),
		generator.Static("src/services/api.ts", "api.ts"),
		generator.File("src/stores/index.ts", "stores_index.ts.tmpl"),
		{Path: "src/stores/counter.ts", Template: "counter.ts", When: pinia, Raw: true},
		generator.File("src/assets/main."+g.cfg.StyleExt(), "main.css.tmpl"),
		generator.Static("src/composables/useDebounce.ts", "useDebounce.ts"),
		generator.Static("src/composables/useLocalStorage.ts", "useLocalStorage.ts"),
		generator.Static("src/composables/useFetch.ts", "useFetch.ts"),
		generator.Static("src/composables/index.ts", "composables_index.ts"),
		generator.File(".env.example", "env.example.tmpl"),
		generator.Static(".eslintrc.cjs", "eslintrc.cjs"),
		generator.Static("public/vite.svg", "vite.svg"),
	}, g.cfg)
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

func (g *Generator) packageJSON() *generator.Object {
	deps := nodejs.Deps(
		"vue", "^3.4.21",
		"vue-router", "^4.3.0",
		"axios", "^1.6.8",
	)
	devDeps := nodejs.Deps(
		"@vitejs/plugin-vue", "^5.0.4",
		"vite", "^5.2.6",
		"typescript", "^5.4.3",
		"vue-tsc", "^2.0.7",
		"@types/node", "^20.11.30",
		"eslint", "^8.57.0",
		"eslint-plugin-vue", "^9.24.0",
		"prettier", "^3.2.5",
		"@vue/eslint-config-typescript", "^13.0.0",
		"@vue/eslint-config-prettier", "^9.0.0",
	)

	if g.cfg.Frontend.StateManagement == config.Pinia {
		deps.Set("pinia", "^2.1.7")
	}
	nodejs.SetStyling(devDeps, g.cfg.Frontend.Styling)

	scripts := generator.NewObject().
		Set("dev", "vite --port "+strconv.Itoa(g.cfg.Frontend.Port)).
		Set("build", "vue-tsc && vite build").
		Set("preview", "vite preview").
		Set("lint", "eslint src --ext .vue,.ts,.js --fix").
		Set("format", `prettier --write "src/**/*.{vue,ts,js,css,scss}"`)

	return generator.NewObject().
		Set("name", g.cfg.ProjectName+"-frontend").
		Set("version", "1.0.0").
		Set("private", true).
		Set("type", "module").
		Set("scripts", scripts).
		Set("dependencies", deps).
		Set("devDependencies", devDeps)
}

func tsConfig() *generator.Object {
	compilerOptions := nodejs.ViteCompilerOptions("preserve").
		Set("baseUrl", ".").
		Set("paths", generator.NewObject().Set("@/*", []string{"src/*"}))

	return generator.NewObject().
		Set("compilerOptions", compilerOptions).
		Set("include", []string{"src/**/*.ts", "src/**/*.tsx", "src/**/*.vue", "env.d.ts"}).
		Set("references", []any{generator.NewObject().Set("path", "./tsconfig.node.json")})
}
