package prompt

import (
	"fmt"
	"strconv"

	"github.com/simonhull/create-my-stack/internal/config"
	"github.com/simonhull/create-my-stack/internal/output"
)

// Run asks every question and returns a normalized configuration. Questions
// that do not apply to earlier answers are skipped: language for NestJS, ORM
// without a database, and all frontend details and the structure when the
// project is backend only.
func Run(a Asker) (config.ProjectConfig, error) {
	return RunFrom(a, config.Default())
}

// RunFrom is Run with the answers of initial offered as defaults.
func RunFrom(a Asker, initial config.ProjectConfig) (config.ProjectConfig, error) {
	cfg := initial
	var err error

	output.Section("📦 Project Information")

	if cfg.ProjectName, err = a.Input("Project name:", cfg.ProjectName, config.ValidatePackageName); err != nil {
		return cfg, err
	}
	if cfg.Description, err = a.Input("Project description:", cfg.Description, nil); err != nil {
		return cfg, err
	}

	output.Section("⚙️  Backend Configuration")

	b := &cfg.Backend
	if b.Framework, err = selectOne(a, "Backend framework:", config.BackendFrameworks, b.Framework); err != nil {
		return cfg, err
	}
	if b.Framework != config.NestJS {
		if b.Language, err = selectOne(a, "Language:", config.Languages, b.Language); err != nil {
			return cfg, err
		}
	}
	if b.Database, err = selectOne(a, "Database:", config.Databases, b.Database); err != nil {
		return cfg, err
	}
	if b.Database != config.NoDatabase {
		if b.ORM, err = selectOne(a, "ORM/ODM:", compatibleORMChoices(b.Database), b.ORM); err != nil {
			return cfg, err
		}
	}
	if b.Auth, err = selectOne(a, "Authentication:", config.AuthStrategies, b.Auth); err != nil {
		return cfg, err
	}
	if b.Mailing, err = selectOne(a, "Mailing provider:", config.MailingProviders, b.Mailing); err != nil {
		return cfg, err
	}
	if b.Port, err = askPort(a, "Backend port:", b.Port, 0); err != nil {
		return cfg, err
	}

	output.Section("🎨 Frontend Configuration")

	f := &cfg.Frontend
	if f.Framework, err = selectOne(a, "Frontend framework:", config.FrontendFrameworks, f.Framework); err != nil {
		return cfg, err
	}
	if f.Framework != config.NoFrontend {
		if f.Styling, err = selectOne(a, "Styling:", config.StylingOptions, f.Styling); err != nil {
			return cfg, err
		}
		if f.StateManagement, err = selectOne(a, "State management:", config.StateManagementOptions(f.Framework), f.StateManagement); err != nil {
			return cfg, err
		}
		if f.Port, err = askPort(a, "Frontend dev server port:", f.Port, b.Port); err != nil {
			return cfg, err
		}
	}

	output.Section("📁 Project Structure")

	if f.Framework != config.NoFrontend {
		if cfg.Structure, err = selectOne(a, "Project structure:", config.Structures, cfg.Structure); err != nil {
			return cfg, err
		}
	}
	if cfg.PackageManager, err = selectOne(a, "Package manager:", config.PackageManagers, cfg.PackageManager); err != nil {
		return cfg, err
	}
	if cfg.InitGit, err = a.Confirm("Initialize git repository?", cfg.InitGit); err != nil {
		return cfg, err
	}
	if cfg.Docker, err = a.Confirm("Generate Docker configuration?", cfg.Docker); err != nil {
		return cfg, err
	}

	cfg.Normalize()
	return cfg, nil
}

// ConfirmGeneration asks for the final go-ahead.
func ConfirmGeneration(a Asker) (bool, error) {
	return a.Confirm("Generate project with this configuration?", true)
}

func selectOne[T ~string](a Asker, title string, choices []config.Choice[T], def T) (T, error) {
	v, err := a.Select(title, options(choices), string(def))
	return T(v), err
}

func compatibleORMChoices(db config.Database) []config.Choice[config.ORM] {
	var choices []config.Choice[config.ORM]
	for _, orm := range config.CompatibleORMs(db) {
		for _, c := range config.ORMs {
			if c.Value == orm {
				choices = append(choices, c)
			}
		}
	}
	return choices
}

// askPort reads a TCP port. taken is a port already in use by the backend.
func askPort(a Asker, title string, def, taken int) (int, error) {
	answer, err := a.Input(title, strconv.Itoa(def), func(s string) error {
		port, err := strconv.Atoi(s)
		if err != nil || port < 1 || port > 65535 {
			return fmt.Errorf("port must be a number between 1 and 65535")
		}
		if taken != 0 && port == taken {
			return fmt.Errorf("port %d is already used by the backend", port)
		}
		return nil
	})
	if err != nil {
		return 0, err
	}
	return strconv.Atoi(answer)
}
