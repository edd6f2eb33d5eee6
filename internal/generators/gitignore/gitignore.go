// Package gitignore renders the .gitignore shared by every generated repo.
package gitignore

import (
	"embed"
	"path/filepath"

	"github.com/simonhull/create-my-stack/internal/generator"
)

//go:embed templates/*.tmpl
var templates embed.FS

// Options toggles the optional sections.
type Options struct {
	Env    bool
	Prisma bool
	NextJS bool
}

type Generator struct {
	renderer *generator.Renderer
}

func New() *Generator {
	return &Generator{renderer: generator.NewRenderer()}
}

// Render returns the .gitignore content.
func (g *Generator) Render(opts Options) ([]byte, error) {
	return g.renderer.RenderFS(templates, "templates/gitignore.tmpl", opts)
}

// Generate writes dir/.gitignore.
func (g *Generator) Generate(dir string, opts Options) ([]generator.Operation, error) {
	content, err := g.Render(opts)
	if err != nil {
		return nil, err
	}
	return []generator.Operation{
		&generator.WriteFileOp{Path: filepath.Join(dir, ".gitignore"), Content: content, Mode: 0644},
	}, nil
}
