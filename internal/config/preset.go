package config

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

// ErrUnknownPreset is returned by Preset for names outside the preset table.
var ErrUnknownPreset = errors.New("unknown template")

// PresetInfo describes a predefined stack.
type PresetInfo struct {
	Name    string
	Summary string
	apply   func(*ProjectConfig)
}

var presets = map[string]PresetInfo{
	"express-vue": {
		Name:    "express-vue",
		Summary: "Express + Vue 3 + Tailwind + Prisma",
		apply: func(c *ProjectConfig) {
			c.Backend.Framework = Express
			c.Frontend.Framework = Vue
			c.Frontend.StateManagement = Pinia
		},
	},
	"express-react": {
		Name:    "express-react",
		Summary: "Express + React + Tailwind + Prisma",
		apply: func(c *ProjectConfig) {
			c.Backend.Framework = Express
			c.Frontend.Framework = React
			c.Frontend.StateManagement = Zustand
		},
	},
	"nestjs-nextjs": {
		Name:    "nestjs-nextjs",
		Summary: "NestJS + Next.js + Tailwind + Prisma",
		apply: func(c *ProjectConfig) {
			c.Backend.Framework = NestJS
			c.Frontend.Framework = NextJS
			c.Frontend.StateManagement = Redux
		},
	},
	"fastify-vue": {
		Name:    "fastify-vue",
		Summary: "Fastify + Vue 3 + Tailwind + Prisma",
		apply: func(c *ProjectConfig) {
			c.Backend.Framework = Fastify
			c.Frontend.Framework = Vue
			c.Frontend.StateManagement = Pinia
		},
	},
}

// Presets returns every preset sorted by name.
func Presets() []PresetInfo {
	list := make([]PresetInfo, 0, len(presets))
	for _, p := range presets {
		list = append(list, p)
	}
	sort.Slice(list, func(i, j int) bool { return list[i].Name < list[j].Name })
	return list
}

// Preset builds the configuration for a named stack. All presets share
// TypeScript, PostgreSQL with Prisma, JWT auth, Tailwind, a pnpm monorepo,
// Docker and git.
func Preset(name string) (ProjectConfig, error) {
	p, ok := presets[name]
	if !ok {
		names := make([]string, 0, len(presets))
		for _, info := range Presets() {
			names = append(names, info.Name)
		}
		return ProjectConfig{}, fmt.Errorf("%w: %s (available: %s)", ErrUnknownPreset, name, strings.Join(names, ", "))
	}

	cfg := Default()
	cfg.Backend.Language = TypeScript
	cfg.Backend.Database = PostgreSQL
	cfg.Backend.ORM = Prisma
	cfg.Backend.Auth = JWT
	cfg.Frontend.Styling = Tailwind
	p.apply(&cfg)
	cfg.Normalize()
	return cfg, nil
}
