package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

// EnvPrefix prefixes environment overrides, e.g. CREATE_MY_STACK_BACKEND_PORT.
const EnvPrefix = "CREATE_MY_STACK"

// LoadFile reads an answers file on top of Default(). Environment variables
// override values from the file.
func LoadFile(path string) (ProjectConfig, error) {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return ProjectConfig{}, fmt.Errorf("config file not found: %s", path)
	}

	v := newViper()
	v.SetConfigFile(path)
	v.SetConfigType("yaml")

	if err := v.ReadInConfig(); err != nil {
		return ProjectConfig{}, fmt.Errorf("failed to read %s: %w", path, err)
	}

	return decode(v)
}

// LoadEnv returns Default() with environment overrides applied.
func LoadEnv() (ProjectConfig, error) {
	return decode(newViper())
}

// SaveFile writes the answers (without computed paths) as YAML.
func SaveFile(path string, cfg ProjectConfig) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return nil
}

func newViper() *viper.Viper {
	v := viper.New()

	// Enable environment variable overrides
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Register every key so AutomaticEnv can see it during Unmarshal
	d := Default()
	v.SetDefault("projectName", d.ProjectName)
	v.SetDefault("description", d.Description)
	v.SetDefault("backend.framework", string(d.Backend.Framework))
	v.SetDefault("backend.language", string(d.Backend.Language))
	v.SetDefault("backend.database", string(d.Backend.Database))
	v.SetDefault("backend.orm", string(d.Backend.ORM))
	v.SetDefault("backend.auth", string(d.Backend.Auth))
	v.SetDefault("backend.mailing", string(d.Backend.Mailing))
	v.SetDefault("backend.port", d.Backend.Port)
	v.SetDefault("frontend.framework", string(d.Frontend.Framework))
	v.SetDefault("frontend.styling", string(d.Frontend.Styling))
	v.SetDefault("frontend.stateManagement", string(d.Frontend.StateManagement))
	v.SetDefault("frontend.port", d.Frontend.Port)
	v.SetDefault("structure", string(d.Structure))
	v.SetDefault("packageManager", string(d.PackageManager))
	v.SetDefault("initGit", d.InitGit)
	v.SetDefault("docker", d.Docker)

	return v
}

func decode(v *viper.Viper) (ProjectConfig, error) {
	var cfg ProjectConfig
	if err := v.Unmarshal(&cfg); err != nil {
		return ProjectConfig{}, fmt.Errorf("failed to decode config: %w", err)
	}
	return cfg, nil
}
