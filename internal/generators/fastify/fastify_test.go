package fastify

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/simonhull/create-my-stack/internal/config"
	"github.com/simonhull/create-my-stack/internal/generator"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func generate(t *testing.T, mutate func(*config.ProjectConfig)) string {
	t.Helper()

	cfg := config.Default()
	cfg.ProjectName = "api"
	cfg.Backend.Framework = config.Fastify
	if mutate != nil {
		mutate(&cfg)
	}
	cfg.Normalize()
	cfg.ComputePaths(t.TempDir())

	ops, err := New(&cfg).Generate()
	require.NoError(t, err)
	require.NoError(t, generator.Execute(context.Background(), ops, generator.ExecuteOptions{Writer: io.Discard}))
	return cfg.BackendPath
}

func read(t *testing.T, path string) string {
	t.Helper()
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	return string(data)
}

func TestTemplateName(t *testing.T) {
	assert.Equal(t, "routes_health.ts.tmpl", templateName("routes/health", "ts"))
	assert.Equal(t, "index.js.tmpl", templateName("index", "js"))
}

func TestGenerate_TypeScriptJWT(t *testing.T) {
	dir := generate(t, nil)

	for _, f := range []string{
		"src/index.ts", "src/app.ts", "src/routes/health.ts", "src/routes/index.ts",
		"src/plugins/index.ts", "src/schemas/health.ts", "src/config/index.ts",
		"tsconfig.json", ".env.example", ".eslintrc.json", ".prettierrc",
	} {
		assert.FileExists(t, filepath.Join(dir, f))
	}

	pkg := read(t, filepath.Join(dir, "package.json"))
	assert.Contains(t, pkg, `"type": "module"`)
	assert.Contains(t, pkg, `"@fastify/jwt": "^8.0.0"`)
	assert.Contains(t, pkg, `"build": "tsc"`)

	app := read(t, filepath.Join(dir, "src/app.ts"))
	assert.Contains(t, app, "import sensible from '@fastify/sensible';\nimport jwt from '@fastify/jwt';\nimport { config }")
	assert.Contains(t, app, "await app.register(sensible);\n  await app.register(jwt, { secret: config.jwtSecret });\n\n  // Register routes")
	assert.Contains(t, app, "  return app;\n}\n")
	assert.NotContains(t, app, "define")

	assert.Contains(t, read(t, filepath.Join(dir, ".env.example")), "\nJWT_SECRET=your-super-secret-key\n")
}

func TestGenerate_JavaScriptWithoutAuth(t *testing.T) {
	dir := generate(t, func(c *config.ProjectConfig) {
		c.Backend.Language = config.JavaScript
		c.Backend.Auth = config.NoAuth
	})

	assert.NoFileExists(t, filepath.Join(dir, "tsconfig.json"))

	app := read(t, filepath.Join(dir, "src/app.js"))
	assert.Contains(t, app, "import sensible from '@fastify/sensible';\nimport { config }")
	assert.NotContains(t, app, "jwt")

	pkg := read(t, filepath.Join(dir, "package.json"))
	assert.Contains(t, pkg, `"build": "echo \"No build step\""`)
	assert.Contains(t, pkg, `"nodemon": "^3.1.0"`)
}

func TestGenerate_Session(t *testing.T) {
	dir := generate(t, func(c *config.ProjectConfig) { c.Backend.Auth = config.Session })

	pkg := read(t, filepath.Join(dir, "package.json"))
	assert.Contains(t, pkg, `"@fastify/session"`)
	assert.Contains(t, pkg, `"@fastify/cookie"`)

	app := read(t, filepath.Join(dir, "src/app.ts"))
	assert.Contains(t, app, "await app.register(cookie);")
}
