package readme

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

func setup(t *testing.T, mutate func(*config.ProjectConfig)) *config.ProjectConfig {
	t.Helper()

	cfg := config.Default()
	cfg.ProjectName = "shop"
	cfg.Description = "An online shop"
	if mutate != nil {
		mutate(&cfg)
	}
	cfg.Normalize()
	cfg.ComputePaths(t.TempDir())
	return &cfg
}

func run(t *testing.T, cfg *config.ProjectConfig) {
	t.Helper()
	ops, err := New(cfg).Generate()
	require.NoError(t, err)
	require.NoError(t, generator.Execute(context.Background(), ops, generator.ExecuteOptions{Writer: io.Discard}))
}

func read(t *testing.T, path string) string {
	t.Helper()
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	return string(data)
}

func TestTree(t *testing.T) {
	got := Tree("shop/", []Entry{
		{Name: "apps/", Children: []Entry{
			{Name: "backend/", Comment: "Backend application"},
			{Name: "frontend/"},
		}},
		{Name: "README.md"},
	})

	want := "shop/\n" +
		"├── apps/\n" +
		"│   ├── backend/            # Backend application\n" +
		"│   └── frontend/\n" +
		"└── README.md"
	assert.Equal(t, want, got)
}

func TestGenerate_Monorepo(t *testing.T) {
	cfg := setup(t, nil)
	run(t, cfg)

	root := read(t, filepath.Join(cfg.RootPath, "README.md"))
	assert.Contains(t, root, "# shop\n\nAn online shop\n")
	assert.Contains(t, root, "- **Framework:** Express.js\n")
	assert.Contains(t, root, "- **Framework:** Vue 3\n")
	assert.Contains(t, root, "- **State Management:** Pinia\n")
	assert.Contains(t, root, "│   ├── backend/")
	assert.Contains(t, root, "# Install dependencies\npnpm install\n")
	assert.Contains(t, root, "cp apps/backend/.env.example apps/backend/.env\ncp apps/frontend/.env.example apps/frontend/.env\n")
	assert.Contains(t, root, "docker compose -f docker-compose.dev.yml up -d")
	assert.Contains(t, root, "cd apps/backend\npnpm prisma:generate\npnpm prisma:migrate\npnpm prisma:seed\n")
	assert.Contains(t, root, "pnpm dev:frontend")
	assert.Contains(t, root, "| `prisma:studio` | Open Prisma Studio |")
	assert.Contains(t, root, "| `JWT_SECRET` | JWT signing secret | - |")
	assert.Contains(t, root, "| `VITE_API_URL` |")
	assert.NotContains(t, root, "## 🧪 Testing")
	assert.NotContains(t, root, "{{")

	backend := read(t, filepath.Join(cfg.BackendPath, "README.md"))
	assert.Contains(t, backend, "# shop - Backend\n\nBackend service built with Express.js.")
	assert.Contains(t, backend, "## Available Scripts\n\n- `pnpm dev` - Start development server\n- `pnpm build`")
	assert.Contains(t, backend, "├── controllers/")
	assert.Contains(t, backend, "└── index.ts")

	frontend := read(t, filepath.Join(cfg.FrontendPath, "README.md"))
	assert.Contains(t, frontend, "Frontend application built with Vue 3.")
	assert.Contains(t, frontend, "- `pnpm preview` - Preview production build")
	assert.Contains(t, frontend, "├── composables/")
}

func TestGenerate_BackendOnlyWritesSingleReadme(t *testing.T) {
	cfg := setup(t, func(c *config.ProjectConfig) {
		c.Frontend.Framework = config.NoFrontend
		c.Backend.Framework = config.NestJS
		c.Backend.Database = config.MongoDB
		c.Backend.Auth = config.Session
		c.PackageManager = config.NPM
		c.Docker = false
	})

	ops, err := New(cfg).Generate()
	require.NoError(t, err)
	require.Len(t, ops, 1)

	run(t, cfg)
	root := read(t, filepath.Join(cfg.RootPath, "README.md"))
	assert.NotContains(t, root, "### Frontend")
	assert.NotContains(t, root, "docker-compose")
	assert.Contains(t, root, "- MongoDB\n")
	assert.Contains(t, root, "cp .env.example .env\n")
	assert.Contains(t, root, "npm run prisma:generate\nnpm run prisma:push\n")
	assert.Contains(t, root, "npm run build\nnpm run start\n")
	assert.Contains(t, root, "## 🧪 Testing")
	assert.Contains(t, root, "| `REDIS_URL` | Session store | `redis://localhost:6379` |")
	assert.NotContains(t, root, "VITE_API_URL")
}

func TestGenerate_SeparateNext(t *testing.T) {
	cfg := setup(t, func(c *config.ProjectConfig) {
		c.Structure = config.Separate
		c.Frontend.Framework = config.NextJS
		c.Frontend.StateManagement = config.Zustand
		c.Backend.Database = config.NoDatabase
		c.Backend.Mailing = config.Resend
		c.PackageManager = config.Yarn
	})
	run(t, cfg)

	root := read(t, filepath.Join(cfg.RootPath, "README.md"))
	assert.Contains(t, root, "- **Mailing:** Resend with React Email")
	assert.Contains(t, root, "cd backend && yarn && cd ..\ncd frontend && yarn && cd ..\n")
	assert.Contains(t, root, "cp frontend/.env.local.example frontend/.env.local")
	assert.Contains(t, root, "# Backend\ncd backend\nyarn dev\n")
	assert.NotContains(t, root, "### Database Setup")
	assert.Contains(t, root, "| `email:dev` | Preview email templates |")
	assert.Contains(t, root, "| `RESEND_API_KEY` |")
	assert.Contains(t, root, "| `NEXT_PUBLIC_API_URL` |")

	frontend := read(t, filepath.Join(cfg.FrontendPath, "README.md"))
	assert.Contains(t, frontend, "cp .env.local.example .env.local")
	assert.Contains(t, frontend, "- `yarn start` - Serve the production build")
	assert.Contains(t, frontend, "├── app/")

	backend := read(t, filepath.Join(cfg.BackendPath, "README.md"))
	assert.Contains(t, backend, "├── emails/")
	assert.NotContains(t, backend, "prisma")
}
