// Package readme documents the generated project: a root README covering the
// whole stack plus one per app.
package readme

import (
	"embed"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/simonhull/create-my-stack/internal/config"
	"github.com/simonhull/create-my-stack/internal/generator"
)

//go:embed templates/*.tmpl
var templates embed.FS

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

// Entry is one line of a directory tree.
type Entry struct {
	Name     string
	Comment  string
	Children []Entry
}

// Tree draws entries as a box-drawing listing with aligned comments.
func Tree(root string, entries []Entry) string {
	var b strings.Builder
	if root != "" {
		b.WriteString(root + "\n")
	}
	writeTree(&b, entries, "")
	return strings.TrimRight(b.String(), "\n")
}

func writeTree(b *strings.Builder, entries []Entry, prefix string) {
	for i, e := range entries {
		branch, indent := "├── ", "│   "
		if i == len(entries)-1 {
			branch, indent = "└── ", "    "
		}
		line := prefix + branch + e.Name
		if e.Comment != "" {
			line = fmt.Sprintf("%-28s# %s", line, e.Comment)
		}
		b.WriteString(line + "\n")
		writeTree(b, e.Children, prefix+indent)
	}
}

// Row is a table row in the scripts and environment sections.
type Row struct {
	Name        string
	Description string
	Default     string
}

type templateData struct {
	*config.ProjectConfig

	BackendName   string
	LanguageName  string
	DatabaseLabel string
	ORMName       string
	AuthName      string
	FrontendName  string
	StylingName   string
	StateName     string

	BackendDir  string // relative to the root, "." for backend only
	FrontendDir string

	Run           string
	Prisma        bool
	DevServices   bool // docker-compose.dev.yml exists
	DatabaseSetup string
	Tests         bool

	RootTree     string
	BackendTree  string
	FrontendTree string

	Scripts         []Row
	FrontendScripts []Row
	Env             []Row
	FrontendEnvFile string
}

func (g *Generator) data() (templateData, error) {
	cfg := g.cfg
	d := templateData{
		ProjectConfig: cfg,
		BackendName:   config.DisplayName(config.BackendFrameworks, cfg.Backend.Framework),
		LanguageName:  config.DisplayName(config.Languages, cfg.Backend.Language),
		DatabaseLabel: config.DisplayName(config.Databases, cfg.Backend.Database),
		ORMName:       config.DisplayName(config.ORMs, cfg.Backend.ORM),
		AuthName:      config.DisplayName(config.AuthStrategies, cfg.Backend.Auth),
		FrontendName:  config.DisplayName(config.FrontendFrameworks, cfg.Frontend.Framework),
		StylingName:   config.DisplayName(config.StylingOptions, cfg.Frontend.Styling),
		StateName:     config.DisplayName(config.StateManagementOptions(cfg.Frontend.Framework), cfg.Frontend.StateManagement),
		Run:           cfg.PackageManager.RunCommand(),
		Prisma:        cfg.Backend.ORM == config.Prisma,
		Tests:         cfg.Backend.Framework == config.NestJS,
	}

	var err error
	if d.BackendDir, err = relative(cfg.RootPath, cfg.BackendPath); err != nil {
		return d, err
	}
	if cfg.HasFrontend() {
		if d.FrontendDir, err = relative(cfg.RootPath, cfg.FrontendPath); err != nil {
			return d, err
		}
	}

	switch cfg.Backend.Database {
	case config.PostgreSQL, config.MySQL:
		d.DatabaseSetup = fmt.Sprintf("Create a %s database and update DATABASE_URL in .env:", d.DatabaseLabel)
	case config.MongoDB:
		d.DatabaseSetup = "Start MongoDB and update DATABASE_URL in .env:"
	case config.SQLite:
		d.DatabaseSetup = "SQLite creates the database file automatically:"
	}
	d.DevServices = cfg.Docker &&
		(oneOf(cfg.Backend.Database, config.PostgreSQL, config.MySQL, config.MongoDB) || cfg.Backend.Auth == config.Session)

	d.RootTree = Tree(cfg.ProjectName+"/", g.rootEntries(d))
	d.BackendTree = Tree("src/", backendEntries(cfg))
	d.FrontendTree = Tree("src/", frontendEntries(cfg))
	d.Scripts = g.scripts()
	d.FrontendScripts = frontendScripts(cfg)
	d.Env = g.env()

	d.FrontendEnvFile = ".env"
	if cfg.Frontend.Framework == config.NextJS {
		d.FrontendEnvFile = ".env.local"
	}
	return d, nil
}

func relative(root, path string) (string, error) {
	rel, err := filepath.Rel(root, path)
	if err != nil {
		return "", fmt.Errorf("failed to resolve %s: %w", path, err)
	}
	return filepath.ToSlash(rel), nil
}

func oneOf[T comparable](v T, options ...T) bool {
	for _, o := range options {
		if v == o {
			return true
		}
	}
	return false
}

func (g *Generator) rootEntries(d templateData) []Entry {
	cfg := g.cfg
	var entries []Entry
	switch {
	case cfg.IsMonorepo():
		entries = append(entries, Entry{Name: "apps/", Children: []Entry{
			{Name: "backend/", Comment: "Backend application"},
			{Name: "frontend/", Comment: "Frontend application"},
		}})
	case cfg.HasFrontend():
		entries = append(entries,
			Entry{Name: "backend/", Comment: "Backend application"},
			Entry{Name: "frontend/", Comment: "Frontend application"},
		)
	default:
		entries = append(entries, Entry{Name: "src/", Comment: "Source code"})
		if d.Prisma {
			entries = append(entries, Entry{Name: "prisma/", Comment: "Prisma schema and seed"})
		}
	}

	if cfg.Docker {
		entries = append(entries,
			Entry{Name: "docker/", Comment: "Dockerfiles and nginx configuration"},
			Entry{Name: "docker-compose.yml", Comment: "Production stack"},
		)
		if d.DevServices {
			entries = append(entries, Entry{Name: "docker-compose.dev.yml", Comment: "Local database services"})
		}
	}
	return append(entries,
		Entry{Name: ".env.example", Comment: "Environment variables template"},
		Entry{Name: "README.md"},
	)
}

func backendEntries(cfg *config.ProjectConfig) []Entry {
	ext := cfg.Ext()
	var entries []Entry
	switch cfg.Backend.Framework {
	case config.NestJS:
		entries = []Entry{
			{Name: "common/", Comment: "Filters, guards, interceptors and pipes"},
			{Name: "config/", Comment: "Configuration"},
			{Name: "health/", Comment: "Health check module"},
			{Name: "modules/", Comment: "Feature modules"},
			{Name: "app.module.ts", Comment: "Root module"},
			{Name: "main.ts", Comment: "Application entry point"},
		}
	case config.Fastify:
		entries = []Entry{
			{Name: "config/", Comment: "Configuration"},
			{Name: "plugins/", Comment: "Fastify plugins"},
			{Name: "routes/", Comment: "API routes"},
			{Name: "schemas/", Comment: "Request and response schemas"},
			{Name: "services/", Comment: "Business logic"},
			{Name: "utils/", Comment: "Utility functions"},
			{Name: "app." + ext, Comment: "Application setup"},
			{Name: "index." + ext, Comment: "Application entry point"},
		}
	default:
		entries = []Entry{
			{Name: "config/", Comment: "Configuration"},
			{Name: "controllers/", Comment: "Route controllers"},
			{Name: "middlewares/", Comment: "Custom middlewares"},
			{Name: "routes/", Comment: "API routes"},
			{Name: "services/", Comment: "Business logic"},
			{Name: "utils/", Comment: "Utility functions"},
			{Name: "app." + ext, Comment: "Application setup"},
			{Name: "index." + ext, Comment: "Application entry point"},
		}
	}

	prisma := cfg.Backend.ORM == config.Prisma
	mailing := cfg.Backend.Mailing != config.NoMailing

	var extra []Entry
	switch {
	case prisma && mailing:
		extra = append(extra, Entry{Name: "lib/", Comment: "Prisma client and mail transport"})
	case prisma:
		extra = append(extra, Entry{Name: "lib/", Comment: "Prisma client"})
	case mailing:
		extra = append(extra, Entry{Name: "lib/", Comment: "Mail transport and email service"})
	}
	if mailing {
		extra = append(extra, Entry{Name: "emails/", Comment: "React Email templates"})
	}
	return append(extra, entries...)
}

func frontendEntries(cfg *config.ProjectConfig) []Entry {
	switch cfg.Frontend.Framework {
	case config.Vue:
		return []Entry{
			{Name: "assets/", Comment: "Global styles"},
			{Name: "components/", Comment: "Reusable components"},
			{Name: "composables/", Comment: "Composition functions"},
			{Name: "pages/", Comment: "Page components"},
			{Name: "router/", Comment: "Vue Router setup"},
			{Name: "services/", Comment: "API services"},
			{Name: "stores/", Comment: "State management"},
			{Name: "types/", Comment: "TypeScript types"},
		}
	case config.NextJS:
		return []Entry{
			{Name: "app/", Comment: "App router pages"},
			{Name: "components/", Comment: "Reusable components"},
			{Name: "hooks/", Comment: "Custom hooks"},
			{Name: "services/", Comment: "API services"},
			{Name: "store/", Comment: "State management"},
			{Name: "types/", Comment: "TypeScript types"},
		}
	}
	return []Entry{
		{Name: "assets/", Comment: "Global styles"},
		{Name: "components/", Comment: "Reusable components"},
		{Name: "hooks/", Comment: "Custom hooks"},
		{Name: "pages/", Comment: "Page components"},
		{Name: "services/", Comment: "API services"},
		{Name: "store/", Comment: "State management"},
		{Name: "types/", Comment: "TypeScript types"},
	}
}

func (g *Generator) scripts() []Row {
	rows := []Row{
		{Name: "dev", Description: "Start development server"},
		{Name: "build", Description: "Build for production"},
		{Name: "start", Description: "Start production server"},
		{Name: "lint", Description: "Run ESLint"},
		{Name: "format", Description: "Format code with Prettier"},
	}
	if g.cfg.Backend.Framework == config.NestJS {
		rows = append(rows,
			Row{Name: "test", Description: "Run unit tests"},
			Row{Name: "test:cov", Description: "Run tests with coverage"},
		)
	}
	if g.cfg.Backend.ORM == config.Prisma {
		rows = append(rows,
			Row{Name: "prisma:generate", Description: "Generate Prisma client"},
			Row{Name: "prisma:push", Description: "Push schema to database"},
			Row{Name: "prisma:migrate", Description: "Run database migrations"},
			Row{Name: "prisma:studio", Description: "Open Prisma Studio"},
			Row{Name: "prisma:seed", Description: "Seed the database"},
		)
	}
	if g.cfg.Backend.Mailing != config.NoMailing {
		rows = append(rows, Row{Name: "email:dev", Description: "Preview email templates"})
	}
	return rows
}

func frontendScripts(cfg *config.ProjectConfig) []Row {
	rows := []Row{
		{Name: "dev", Description: "Start development server"},
		{Name: "build", Description: "Build for production"},
	}
	if cfg.Frontend.Framework == config.NextJS {
		rows = append(rows, Row{Name: "start", Description: "Serve the production build"})
	} else {
		rows = append(rows, Row{Name: "preview", Description: "Preview production build"})
	}
	return append(rows,
		Row{Name: "lint", Description: "Run ESLint"},
		Row{Name: "format", Description: "Format code with Prettier"},
	)
}

func (g *Generator) env() []Row {
	cfg := g.cfg
	rows := []Row{
		{"NODE_ENV", "Environment", "`development`"},
		{"PORT", "Backend port", fmt.Sprintf("`%d`", cfg.Backend.Port)},
	}
	if cfg.HasFrontend() {
		rows = append(rows, Row{"CORS_ORIGIN", "Allowed frontend origin", fmt.Sprintf("`http://localhost:%d`", cfg.Frontend.Port)})
	}
	if cfg.HasDatabase() {
		rows = append(rows, Row{"DATABASE_URL", "Database connection string", "-"})
	}

	switch cfg.Backend.Auth {
	case config.JWT:
		rows = append(rows,
			Row{"JWT_SECRET", "JWT signing secret", "-"},
			Row{"JWT_EXPIRES_IN", "JWT expiration", "`7d`"},
		)
	case config.Session:
		rows = append(rows,
			Row{"SESSION_SECRET", "Session signing secret", "-"},
			Row{"REDIS_URL", "Session store", "`redis://localhost:6379`"},
		)
	}

	switch cfg.Backend.Mailing {
	case config.Nodemailer:
		rows = append(rows,
			Row{"SMTP_HOST", "SMTP server", "-"},
			Row{"SMTP_PORT", "SMTP port", "`587`"},
			Row{"SMTP_USER", "SMTP username", "-"},
			Row{"SMTP_PASS", "SMTP password", "-"},
			Row{"SMTP_FROM", "Sender address", "-"},
		)
	case config.Resend:
		rows = append(rows,
			Row{"RESEND_API_KEY", "Resend API key", "-"},
			Row{"RESEND_FROM", "Sender address", "-"},
		)
	}

	switch cfg.Frontend.Framework {
	case config.NextJS:
		rows = append(rows, Row{"NEXT_PUBLIC_API_URL", "API URL for the frontend", "`/api`"})
	case config.Vue, config.React:
		rows = append(rows, Row{"VITE_API_URL", "API URL for the frontend", "`/api`"})
	}
	return rows
}

func (g *Generator) Generate() ([]generator.Operation, error) {
	d, err := g.data()
	if err != nil {
		return nil, err
	}

	ops, err := g.renderer.RenderAll(templates, g.cfg.RootPath, []generator.FileSpec{
		generator.File("README.md", "README.md.tmpl"),
	}, d)
	if err != nil {
		return nil, err
	}

	// A backend-only project keeps the backend at the root, where the root
	// README already covers it.
	apps, err := g.renderer.RenderAll(templates, g.cfg.RootPath, []generator.FileSpec{
		{Path: d.BackendDir + "/README.md", Template: "backend.md.tmpl", When: d.BackendDir != "."},
		{Path: d.FrontendDir + "/README.md", Template: "frontend.md.tmpl", When: g.cfg.HasFrontend()},
	}, d)
	if err != nil {
		return nil, err
	}
	return append(ops, apps...), nil
}
