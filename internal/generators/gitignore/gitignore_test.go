package gitignore

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/simonhull/create-my-stack/internal/generator"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRender_Base(t *testing.T) {
	content, err := New().Render(Options{})
	require.NoError(t, err)

	got := string(content)
	assert.True(t, strings.HasPrefix(got, "# Dependencies\nnode_modules/\n"))
	assert.Contains(t, got, "# Test coverage\ncoverage/\n.nyc_output/\n\n# Misc\n")
	assert.True(t, strings.HasSuffix(got, ".tmp/\n"))
	assert.NotContains(t, got, "# Environment")
	assert.NotContains(t, got, "# Prisma")
	assert.NotContains(t, got, ".vercel/")
}

func TestRender_AllSections(t *testing.T) {
	content, err := New().Render(Options{Env: true, Prisma: true, NextJS: true})
	require.NoError(t, err)

	got := string(content)
	assert.Contains(t, got, ".nyc_output/\n\n# Environment\n.env\n.env.local\n.env.*.local\n!.env.example\n\n# Prisma\n")
	assert.Contains(t, got, "prisma/*.db-journal\n\n# Next.js\n.next/\nout/\n.vercel/\n\n# Misc\n")
}

func TestGenerate(t *testing.T) {
	dir := t.TempDir()

	ops, err := New().Generate(dir, Options{Env: true})
	require.NoError(t, err)
	require.NoError(t, generator.Execute(context.Background(), ops, generator.ExecuteOptions{Writer: &strings.Builder{}}))

	data, err := os.ReadFile(filepath.Join(dir, ".gitignore"))
	require.NoError(t, err)
	assert.Contains(t, string(data), "!.env.example")
}
