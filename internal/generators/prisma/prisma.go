// Package prisma adds Prisma to a generated backend: the schema, a shared
// client, a seed script and the package.json entries that drive them.
package prisma

import (
	"embed"
	"path/filepath"

	"github.com/simonhull/create-my-stack/internal/config"
	"github.com/simonhull/create-my-stack/internal/generator"
)

//go:embed templates/*.tmpl
var templates embed.FS

// Version is the Prisma release range written to package.json.
const Version = "^6.2.0"

type Generator struct {
	cfg      *config.ProjectConfig
	renderer *generator.Renderer
}

// templateData adds module flavour to the config. Fastify projects are ES
// modules, the other JavaScript backends are CommonJS.
type templateData struct {
	*config.ProjectConfig
	ESM bool
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

	data := templateData{
		ProjectConfig: g.cfg,
		ESM:           g.cfg.Backend.Framework == config.Fastify,
	}

	ops := generator.Dirs(base, "prisma", "src/lib")
	files, err := g.renderer.RenderAll(templates, base, []generator.FileSpec{
		generator.File("prisma/schema.prisma", "schema.prisma.tmpl"),
		generator.File("prisma/seed."+ext, "seed."+ext+".tmpl"),
		generator.File("src/lib/prisma."+ext, "prisma."+ext+".tmpl"),
	}, data)
	if err != nil {
		return nil, err
	}
	ops = append(ops, files...)

	return append(ops, &generator.UpdateJSONOp{
		Path:   filepath.Join(base, "package.json"),
		Update: g.updatePackageJSON,
	}), nil
}

func (g *Generator) updatePackageJSON(pkg *generator.Object) error {
	deps, err := pkg.Child("dependencies")
	if err != nil {
		return err
	}
	devDeps, err := pkg.Child("devDependencies")
	if err != nil {
		return err
	}
	scripts, err := pkg.Child("scripts")
	if err != nil {
		return err
	}

	deps.Set("@prisma/client", Version)
	devDeps.Set("prisma", Version)

	seed := "node prisma/seed.js"
	if g.cfg.IsTypeScript() {
		seed = "tsx prisma/seed.ts"
		if _, ok := devDeps.Get("tsx"); !ok {
			devDeps.Set("tsx", "^4.7.1")
		}
	}

	scripts.
		Set("prisma:generate", "prisma generate").
		Set("prisma:push", "prisma db push").
		Set("prisma:migrate", "prisma migrate dev").
		Set("prisma:studio", "prisma studio").
		Set("prisma:seed", seed)
	return nil
}
