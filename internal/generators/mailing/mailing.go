// Package mailing wires a transactional email provider into the backend:
// a transport wrapper, React Email templates and a small service that sends
// them.
package mailing

import (
	"embed"
	"fmt"
	"path/filepath"

	"github.com/simonhull/create-my-stack/internal/config"
	"github.com/simonhull/create-my-stack/internal/generator"
)

//go:embed templates/*.tmpl
var templates embed.FS

const (
	ReactEmailVersion = "^1.0.3"
	ReactVersion      = "^19.0.0"
)

const nodemailerEnv = `
# Mailing (Nodemailer)
SMTP_HOST=smtp.gmail.com
SMTP_PORT=587
SMTP_SECURE=false
SMTP_USER=your-email@gmail.com
SMTP_PASS=your-app-password
SMTP_FROM="Your App <noreply@yourapp.com>"
`

const resendEnv = `
# Mailing (Resend)
RESEND_API_KEY=re_xxxxxxxxxxxxx
RESEND_FROM="Your App <onboarding@resend.dev>"
`

type Generator struct {
	cfg      *config.ProjectConfig
	renderer *generator.Renderer
}

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

// Generate returns nothing when no provider is selected.
func (g *Generator) Generate() ([]generator.Operation, error) {
	provider := g.cfg.Backend.Mailing
	if provider == config.NoMailing {
		return nil, nil
	}
	if !provider.Valid() {
		return nil, fmt.Errorf("unsupported mailing provider %q", provider)
	}

	base := g.cfg.BackendPath
	ext := g.cfg.Ext()

	// JavaScript templates use React.createElement, so they stay plain .js
	// files that node can load without a JSX loader.
	emailExt := ext
	if g.cfg.IsTypeScript() {
		emailExt = "tsx"
	}

	data := templateData{
		ProjectConfig: g.cfg,
		ESM:           g.cfg.Backend.Framework == config.Fastify,
	}

	ops := generator.Dirs(base, "src/lib", "src/emails")
	files, err := g.renderer.RenderAll(templates, base, []generator.FileSpec{
		generator.File("src/lib/mail."+ext, "mail."+ext+".tmpl"),
		generator.File("src/emails/welcome."+emailExt, "welcome."+emailExt+".tmpl"),
		generator.File("src/emails/reset-password."+emailExt, "reset-password."+emailExt+".tmpl"),
		generator.File("src/emails/index."+ext, "index."+ext+".tmpl"),
		generator.File("src/lib/email-service."+ext, "email-service."+ext+".tmpl"),
	}, data)
	if err != nil {
		return nil, err
	}
	ops = append(ops, files...)

	ops = append(ops,
		&generator.UpdateJSONOp{
			Path:   filepath.Join(base, "package.json"),
			Update: g.updatePackageJSON,
		},
		&generator.AppendFileOp{
			Path:    filepath.Join(base, ".env.example"),
			Content: []byte(EnvBlock(provider)),
		},
	)
	if g.cfg.IsTypeScript() {
		ops = append(ops, &generator.UpdateJSONOp{
			Path:   filepath.Join(base, "tsconfig.json"),
			Update: enableJSX,
		})
	}
	return ops, nil
}

// EnvBlock returns the .env.example lines a provider needs.
func EnvBlock(provider config.Mailing) string {
	switch provider {
	case config.Nodemailer:
		return nodemailerEnv
	case config.Resend:
		return resendEnv
	}
	return ""
}

// enableJSX lets tsc compile the .tsx email templates.
func enableJSX(tsconfig *generator.Object) error {
	opts, err := tsconfig.Child("compilerOptions")
	if err != nil {
		return err
	}
	opts.Set("jsx", "react-jsx")
	return nil
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

	ts := g.cfg.IsTypeScript()

	deps.
		Set("@react-email/components", ReactEmailVersion).
		Set("@react-email/render", ReactEmailVersion).
		Set("react", ReactVersion)

	switch g.cfg.Backend.Mailing {
	case config.Nodemailer:
		deps.Set("nodemailer", "^6.9.16")
		if ts {
			devDeps.Set("@types/nodemailer", "^6.4.17")
		}
	case config.Resend:
		deps.Set("resend", "^4.0.1")
	}

	devDeps.Set("react-email", "^4.0.3")
	if ts {
		devDeps.Set("@types/react", "^19.0.0")
	}

	scripts.Set("email:dev", "email dev --dir src/emails")
	return nil
}
