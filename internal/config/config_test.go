package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalize(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*ProjectConfig)
		check  func(*testing.T, ProjectConfig)
	}{
		{
			name: "nestjs forces typescript",
			mutate: func(c *ProjectConfig) {
				c.Backend.Framework = NestJS
				c.Backend.Language = JavaScript
			},
			check: func(t *testing.T, c ProjectConfig) {
				assert.Equal(t, TypeScript, c.Backend.Language)
			},
		},
		{
			name: "no database forces no orm",
			mutate: func(c *ProjectConfig) {
				c.Backend.Database = NoDatabase
				c.Backend.ORM = Prisma
			},
			check: func(t *testing.T, c ProjectConfig) {
				assert.Equal(t, NoORM, c.Backend.ORM)
			},
		},
		{
			name: "backend only resets frontend and structure",
			mutate: func(c *ProjectConfig) {
				c.Frontend.Framework = NoFrontend
				c.Frontend.Styling = Tailwind
				c.Frontend.StateManagement = Pinia
				c.Frontend.Port = 8080
				c.Structure = Monorepo
			},
			check: func(t *testing.T, c ProjectConfig) {
				assert.Equal(t, CSS, c.Frontend.Styling)
				assert.Equal(t, NoState, c.Frontend.StateManagement)
				assert.Equal(t, DefaultFrontendPort, c.Frontend.Port)
				assert.Equal(t, Separate, c.Structure)
			},
		},
		{
			name: "zero ports become defaults",
			mutate: func(c *ProjectConfig) {
				c.Backend.Port = 0
				c.Frontend.Port = 0
			},
			check: func(t *testing.T, c ProjectConfig) {
				assert.Equal(t, DefaultBackendPort, c.Backend.Port)
				assert.Equal(t, DefaultFrontendPort, c.Frontend.Port)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(&cfg)
			cfg.Normalize()
			tt.check(t, cfg)
		})
	}
}

func TestComputePaths(t *testing.T) {
	cwd := filepath.Join("/work")

	t.Run("monorepo", func(t *testing.T) {
		cfg := Default()
		cfg.ComputePaths(cwd)

		assert.Equal(t, filepath.Join(cwd, "my-fullstack-app"), cfg.RootPath)
		assert.Equal(t, filepath.Join(cfg.RootPath, "apps", "backend"), cfg.BackendPath)
		assert.Equal(t, filepath.Join(cfg.RootPath, "apps", "frontend"), cfg.FrontendPath)
	})

	t.Run("separate", func(t *testing.T) {
		cfg := Default()
		cfg.Structure = Separate
		cfg.ComputePaths(cwd)

		assert.Equal(t, filepath.Join(cfg.RootPath, "backend"), cfg.BackendPath)
		assert.Equal(t, filepath.Join(cfg.RootPath, "frontend"), cfg.FrontendPath)
	})

	t.Run("backend only", func(t *testing.T) {
		cfg := Default()
		cfg.Frontend.Framework = NoFrontend
		cfg.Normalize()
		cfg.ComputePaths(cwd)

		assert.Equal(t, cfg.RootPath, cfg.BackendPath)
	})
}

func TestCompatibleORMs(t *testing.T) {
	tests := map[Database][]ORM{
		PostgreSQL: {Prisma, Sequelize, NoORM},
		MySQL:      {Prisma, Sequelize, NoORM},
		MongoDB:    {Prisma, Mongoose, NoORM},
		SQLite:     {Prisma, Sequelize, NoORM},
		NoDatabase: {NoORM},
	}

	for db, want := range tests {
		t.Run(string(db), func(t *testing.T) {
			if diff := cmp.Diff(want, CompatibleORMs(db)); diff != "" {
				t.Errorf("CompatibleORMs(%s) mismatch (-want +got):\n%s", db, diff)
			}
		})
	}
}

func TestStateManagementOptions(t *testing.T) {
	values := func(f FrontendFramework) []StateManagement {
		var out []StateManagement
		for _, c := range StateManagementOptions(f) {
			out = append(out, c.Value)
		}
		return out
	}

	assert.Equal(t, []StateManagement{Pinia, NoState}, values(Vue))
	assert.Equal(t, []StateManagement{Redux, Zustand, NoState}, values(React))
	assert.Equal(t, []StateManagement{Redux, Zustand, NoState}, values(NextJS))
	assert.Equal(t, []StateManagement{NoState}, values(NoFrontend))
}

func TestValidatePackageName(t *testing.T) {
	valid := []string{"my-app", "app2", "@scope/my-app", "some.name", "a_b"}
	for _, name := range valid {
		assert.NoError(t, ValidatePackageName(name), name)
	}

	invalid := map[string]string{
		"":             "required",
		".hidden":      "period",
		"_private":     "underscore",
		" padded":      "leading or trailing spaces",
		"MyApp":        "capital letters",
		"node_modules": "blacklisted",
		"http":         "core module",
		"my app":       "URL-friendly",
		"wow!":         "special characters",
	}
	for name, fragment := range invalid {
		err := ValidatePackageName(name)
		require.Error(t, err, name)
		assert.Contains(t, err.Error(), fragment, name)
	}
}

func TestValidate(t *testing.T) {
	t.Run("default is valid", func(t *testing.T) {
		cfg := Default()
		assert.NoError(t, cfg.Validate())
	})

	t.Run("reports all problems", func(t *testing.T) {
		cfg := Default()
		cfg.Backend.Database = MongoDB
		cfg.Backend.ORM = Sequelize
		cfg.Frontend.StateManagement = Redux
		cfg.Frontend.Port = cfg.Backend.Port

		err := cfg.Validate()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "not compatible with database mongodb")
		assert.Contains(t, err.Error(), "not available for frontend vue")
		assert.Contains(t, err.Error(), "cannot share port")
	})

	t.Run("unknown enum", func(t *testing.T) {
		cfg := Default()
		cfg.PackageManager = "bun"

		err := cfg.Validate()
		require.Error(t, err)
		assert.Contains(t, err.Error(), `invalid package manager: "bun"`)
	})
}

func TestPackageManagerCommands(t *testing.T) {
	assert.Equal(t, "npm install", NPM.InstallCommand())
	assert.Equal(t, "pnpm install", PNPM.InstallCommand())
	assert.Equal(t, "yarn", Yarn.InstallCommand())
	assert.Empty(t, Yarn.InstallArgs())

	assert.Equal(t, "npm run", NPM.RunCommand())
	assert.Equal(t, "pnpm", PNPM.RunCommand())
	assert.Equal(t, "npx", NPM.ExecCommand())
	assert.Equal(t, "pnpm exec", PNPM.ExecCommand())
	assert.Equal(t, "pnpm add -D", PNPM.AddCommand(true))
	assert.Equal(t, "npm install --save-dev", NPM.AddCommand(true))

	assert.Equal(t, "package-lock.json", NPM.LockFile())
	assert.Equal(t, "pnpm-lock.yaml", PNPM.LockFile())
	assert.Equal(t, "yarn.lock", Yarn.LockFile())
}

func TestPreset(t *testing.T) {
	cfg, err := Preset("nestjs-nextjs")
	require.NoError(t, err)

	assert.Equal(t, NestJS, cfg.Backend.Framework)
	assert.Equal(t, NextJS, cfg.Frontend.Framework)
	assert.Equal(t, Tailwind, cfg.Frontend.Styling)
	assert.Equal(t, Prisma, cfg.Backend.ORM)
	assert.NoError(t, cfg.Validate())

	for _, p := range Presets() {
		cfg, err := Preset(p.Name)
		require.NoError(t, err, p.Name)
		assert.NoError(t, cfg.Validate(), p.Name)
	}

	_, err = Preset("rails-htmx")
	require.ErrorIs(t, err, ErrUnknownPreset)
	assert.Contains(t, err.Error(), "express-vue")
}

func TestSaveAndLoadFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "stack.yml")

	cfg := Default()
	cfg.ProjectName = "shop"
	cfg.Backend.Framework = Fastify
	cfg.Backend.Mailing = Resend
	cfg.Frontend.Framework = React
	cfg.Frontend.StateManagement = Zustand
	cfg.PackageManager = Yarn
	cfg.Docker = false
	cfg.ComputePaths(dir)

	require.NoError(t, SaveFile(path, cfg))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "projectName: shop")
	assert.NotContains(t, string(data), dir)

	loaded, err := LoadFile(path)
	require.NoError(t, err)

	cfg.RootPath, cfg.BackendPath, cfg.FrontendPath = "", "", ""
	if diff := cmp.Diff(cfg, loaded); diff != "" {
		t.Errorf("round trip mismatch (-want +got):\n%s", diff)
	}
}

func TestLoadFile_PartialWithEnvOverride(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "stack.yml")
	require.NoError(t, os.WriteFile(path, []byte("projectName: api-only\nfrontend:\n  framework: none\n"), 0644))

	t.Setenv("CREATE_MY_STACK_BACKEND_PORT", "4000")

	cfg, err := LoadFile(path)
	require.NoError(t, err)

	assert.Equal(t, "api-only", cfg.ProjectName)
	assert.Equal(t, NoFrontend, cfg.Frontend.Framework)
	assert.Equal(t, 4000, cfg.Backend.Port)
	assert.Equal(t, Express, cfg.Backend.Framework)
}

func TestLoadFile_Missing(t *testing.T) {
	_, err := LoadFile(filepath.Join(t.TempDir(), "nope.yml"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "config file not found")
}
