// Package nodejs holds the manifest and tooling fragments shared by the
// Node.js generators, backend and frontend alike.
package nodejs

import (
	"path/filepath"

	"github.com/simonhull/create-my-stack/internal/config"
	"github.com/simonhull/create-my-stack/internal/generator"
)

// Deps builds a dependency object from alternating name and version pairs.
func Deps(pairs ...string) *generator.Object {
	o := generator.NewObject()
	for i := 0; i+1 < len(pairs); i += 2 {
		o.Set(pairs[i], pairs[i+1])
	}
	return o
}

// SetAll adds alternating name and version pairs to deps.
func SetAll(deps *generator.Object, pairs ...string) {
	for i := 0; i+1 < len(pairs); i += 2 {
		deps.Set(pairs[i], pairs[i+1])
	}
}

// BaseDevDeps are the dev dependencies every backend gets.
func BaseDevDeps() *generator.Object {
	return Deps(
		"@types/node", "^20.11.30",
		"eslint", "^8.57.0",
		"prettier", "^3.2.5",
	)
}

// Scripts returns the dev, build, start, lint and format scripts for a
// plain Node.js backend. noBuild is echoed in JavaScript projects.
func Scripts(cfg *config.ProjectConfig, noBuild string) *generator.Object {
	ext := cfg.Ext()
	s := generator.NewObject()
	if cfg.IsTypeScript() {
		s.Set("dev", "tsx watch src/index.ts").
			Set("build", "tsc").
			Set("start", "node dist/index.js")
	} else {
		s.Set("dev", "nodemon src/index.js").
			Set("build", `echo "`+noBuild+`"`).
			Set("start", "node src/index.js")
	}
	return s.
		Set("lint", "eslint src --ext ."+ext).
		Set("format", `prettier --write "src/**/*.`+ext+`"`)
}

// Main is the package.json main entry.
func Main(cfg *config.ProjectConfig) string {
	if cfg.IsTypeScript() {
		return "dist/index.js"
	}
	return "src/index.js"
}

// TSConfig is the tsconfig.json of a NodeNext backend.
func TSConfig() *generator.Object {
	compilerOptions := generator.NewObject().
		Set("target", "ES2022").
		Set("module", "NodeNext").
		Set("moduleResolution", "NodeNext").
		Set("lib", []string{"ES2022"}).
		Set("outDir", "./dist").
		Set("rootDir", "./src").
		Set("strict", true).
		Set("esModuleInterop", true).
		Set("skipLibCheck", true).
		Set("forceConsistentCasingInFileNames", true).
		Set("resolveJsonModule", true).
		Set("declaration", true).
		Set("sourceMap", true)

	return generator.NewObject().
		Set("compilerOptions", compilerOptions).
		Set("include", []string{"src/**/*"}).
		Set("exclude", []string{"node_modules", "dist"})
}

// ESLint is the .eslintrc.json of a backend. Extra rules are appended after
// no-console.
func ESLint(ts bool, rules ...any) *generator.Object {
	o := generator.NewObject().Set("root", true)
	extends := []string{"eslint:recommended"}
	if ts {
		o.Set("parser", "@typescript-eslint/parser").
			Set("plugins", []string{"@typescript-eslint"})
		extends = append(extends, "plugin:@typescript-eslint/recommended")
	}

	r := generator.NewObject().Set("no-console", "warn").Merge(rules...)

	return o.
		Set("extends", extends).
		Set("env", generator.NewObject().Set("node", true).Set("es2022", true)).
		Set("rules", r)
}

// Prettier is the .prettierrc shared by Express and Fastify.
func Prettier() *generator.Object {
	return generator.NewObject().
		Set("semi", true).
		Set("singleQuote", true).
		Set("tabWidth", 2).
		Set("trailingComma", "es5").
		Set("printWidth", 100)
}

// File is a JSON document to be written relative to a base directory.
type File struct {
	Path  string
	Value any
}

// JSONFiles encodes each file under base.
func JSONFiles(base string, files ...File) ([]generator.Operation, error) {
	ops := make([]generator.Operation, 0, len(files))
	for _, f := range files {
		op, err := generator.JSONFile(filepath.Join(base, filepath.FromSlash(f.Path)), f.Value)
		if err != nil {
			return nil, err
		}
		ops = append(ops, op)
	}
	return ops, nil
}
