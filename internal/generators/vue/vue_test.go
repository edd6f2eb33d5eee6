package vue

import (
	"context"
	"encoding/json"
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
	cfg.ProjectName = "shop"
	if mutate != nil {
		mutate(&cfg)
	}
	cfg.Normalize()
	cfg.ComputePaths(t.TempDir())

	ops, err := New(&cfg).Generate()
	require.NoError(t, err)
	require.NoError(t, generator.Execute(context.Background(), ops, generator.ExecuteOptions{Writer: io.Discard, Concurrency: 4}))
	return cfg.FrontendPath
}

func read(t *testing.T, dir, rel string) string {
	t.Helper()
	data, err := os.ReadFile(filepath.Join(dir, filepath.FromSlash(rel)))
	require.NoError(t, err)
	return string(data)
}

type manifest struct {
	Name            string            `json:"name"`
	Type            string            `json:"type"`
	Scripts         map[string]string `json:"scripts"`
	Dependencies    map[string]string `json:"dependencies"`
	DevDependencies map[string]string `json:"devDependencies"`
}

func readManifest(t *testing.T, dir string) manifest {
	t.Helper()
	var m manifest
	require.NoError(t, json.Unmarshal([]byte(read(t, dir, "package.json")), &m))
	return m
}

func TestGenerate_TailwindPinia(t *testing.T) {
	dir := generate(t, nil)

	for _, d := range dirs {
		assert.DirExists(t, filepath.Join(dir, d))
	}
	for _, f := range []string{
		"vite.config.ts", "tailwind.config.js", "postcss.config.js", "tsconfig.json",
		"tsconfig.node.json", "env.d.ts", "index.html", "src/main.ts", "src/App.vue",
		"src/router/index.ts", "src/pages/HomePage.vue", "src/pages/AboutPage.vue",
		"src/pages/NotFoundPage.vue", "src/components/BaseCard.vue", "src/services/api.ts",
		"src/stores/index.ts", "src/stores/counter.ts", "src/assets/main.css",
		"src/composables/useDebounce.ts", "src/composables/useLocalStorage.ts",
		"src/composables/useFetch.ts", "src/composables/index.ts",
		".env.example", ".eslintrc.cjs", ".prettierrc", "public/vite.svg",
	} {
		assert.FileExists(t, filepath.Join(dir, f))
	}

	pkg := readManifest(t, dir)
	assert.Equal(t, "shop-frontend", pkg.Name)
	assert.Equal(t, "module", pkg.Type)
	assert.Equal(t, "vite --port 5173", pkg.Scripts["dev"])
	assert.Equal(t, "^3.4.21", pkg.Dependencies["vue"])
	assert.Equal(t, "^2.1.7", pkg.Dependencies["pinia"])
	assert.Equal(t, "^3.4.1", pkg.DevDependencies["tailwindcss"])
	assert.NotContains(t, pkg.DevDependencies, "sass")

	vite := read(t, dir, "vite.config.ts")
	assert.Contains(t, vite, "port: 5173,")
	assert.Contains(t, vite, "target: 'http://localhost:3000',")

	assert.Equal(t, `import { createApp } from 'vue';
import { createPinia } from 'pinia';
import App from './App.vue';
import router from './router';
import './assets/main.css';

const app = createApp(App);

app.use(createPinia());
app.use(router);

app.mount('#app');
`, read(t, dir, "src/main.ts"))

	assert.Contains(t, read(t, dir, "index.html"), "<title>shop</title>")
	assert.Contains(t, read(t, dir, "src/pages/HomePage.vue"), "🚀 shop")
	assert.Contains(t, read(t, dir, "src/pages/HomePage.vue"), `class="min-h-screen bg-gray-100`)
	assert.Contains(t, read(t, dir, "src/pages/AboutPage.vue"), "<li>🔧 Backend: express</li>")
	assert.Contains(t, read(t, dir, "src/components/BaseCard.vue"), "<h3>{{ title }}</h3>")
	assert.Contains(t, read(t, dir, "src/stores/index.ts"), "export { useCounterStore } from './counter';")
	assert.True(t, len(read(t, dir, "src/assets/main.css")) > 0)
	assert.Equal(t, "VITE_API_URL=http://localhost:3000/api\nVITE_APP_TITLE=shop\n", read(t, dir, ".env.example"))
}

func TestGenerate_SCSSWithoutState(t *testing.T) {
	dir := generate(t, func(c *config.ProjectConfig) {
		c.Frontend.Styling = config.SCSS
		c.Frontend.StateManagement = config.NoState
		c.Backend.Port = 4000
	})

	assert.NoFileExists(t, filepath.Join(dir, "tailwind.config.js"))
	assert.NoFileExists(t, filepath.Join(dir, "postcss.config.js"))
	assert.NoFileExists(t, filepath.Join(dir, "src", "stores", "counter.ts"))
	assert.NoFileExists(t, filepath.Join(dir, "src", "assets", "main.css"))

	styles := read(t, dir, "src/assets/main.scss")
	assert.Contains(t, styles, "$primary: #3b82f6;")

	main := read(t, dir, "src/main.ts")
	assert.Contains(t, main, "import './assets/main.scss';")
	assert.NotContains(t, main, "pinia")
	assert.Contains(t, main, "const app = createApp(App);\n\napp.use(router);\n")

	pkg := readManifest(t, dir)
	assert.NotContains(t, pkg.Dependencies, "pinia")
	assert.Equal(t, "^1.72.0", pkg.DevDependencies["sass"])
	assert.NotContains(t, pkg.DevDependencies, "tailwindcss")

	stores := read(t, dir, "src/stores/index.ts")
	assert.Contains(t, stores, "// - Pinia: pnpm add pinia (recommended for Vue 3)")
	assert.Contains(t, stores, "export {};\n")

	home := read(t, dir, "src/pages/HomePage.vue")
	assert.Contains(t, home, `<div class="home-page">`)
	assert.Contains(t, home, "<style scoped>")
	assert.Contains(t, read(t, dir, "vite.config.ts"), "target: 'http://localhost:4000',")
}

func TestGenerate_TSConfig(t *testing.T) {
	dir := generate(t, nil)

	var ts struct {
		CompilerOptions struct {
			JSX   string              `json:"jsx"`
			Paths map[string][]string `json:"paths"`
		} `json:"compilerOptions"`
		References []struct {
			Path string `json:"path"`
		} `json:"references"`
	}
	require.NoError(t, json.Unmarshal([]byte(read(t, dir, "tsconfig.json")), &ts))
	assert.Equal(t, "preserve", ts.CompilerOptions.JSX)
	assert.Equal(t, []string{"src/*"}, ts.CompilerOptions.Paths["@/*"])
	require.Len(t, ts.References, 1)
	assert.Equal(t, "./tsconfig.node.json", ts.References[0].Path)
}
