package generator_test

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/simonhull/create-my-stack/internal/generator"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

func TestExecute_DryRun(t *testing.T) {
	ctx := context.Background()
	tmpDir := t.TempDir()

	ops := []generator.Operation{
		&generator.WriteFileOp{
			Path:    filepath.Join(tmpDir, "nested", "test.txt"),
			Content: []byte("hello"),
			Mode:    0644,
		},
	}

	var buf bytes.Buffer
	err := generator.Execute(ctx, ops, generator.ExecuteOptions{DryRun: true, Writer: &buf})
	require.NoError(t, err)

	assert.NoDirExists(t, filepath.Join(tmpDir, "nested"))
	assert.Contains(t, buf.String(), "[DRY RUN]")
}

func TestExecute_RealRun(t *testing.T) {
	ctx := context.Background()
	tmpDir := t.TempDir()
	path := filepath.Join(tmpDir, "src", "app.ts")

	var buf bytes.Buffer
	err := generator.Execute(ctx, []generator.Operation{
		&generator.WriteFileOp{Path: path, Content: []byte("export {}"), Mode: 0644},
	}, generator.ExecuteOptions{Writer: &buf})
	require.NoError(t, err)

	content, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "export {}", string(content))
	assert.Contains(t, buf.String(), "✓ Create "+path)
}

func TestExecute_ConflictWithoutForce(t *testing.T) {
	ctx := context.Background()
	tmpDir := t.TempDir()
	path := filepath.Join(tmpDir, "existing.txt")
	require.NoError(t, os.WriteFile(path, []byte("original"), 0644))

	ops := []generator.Operation{
		&generator.WriteFileOp{Path: filepath.Join(tmpDir, "new.txt"), Content: []byte("new"), Mode: 0644},
		&generator.WriteFileOp{Path: path, Content: []byte("replaced"), Mode: 0644},
	}

	err := generator.Execute(ctx, ops, generator.ExecuteOptions{Writer: &bytes.Buffer{}})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "file already exists")

	// Validation happens before anything is written
	assert.NoFileExists(t, filepath.Join(tmpDir, "new.txt"))

	err = generator.Execute(ctx, ops, generator.ExecuteOptions{Force: true, Writer: &bytes.Buffer{}})
	require.NoError(t, err)
	content, _ := os.ReadFile(path)
	assert.Equal(t, "replaced", string(content))
}

func TestExecute_NilContent(t *testing.T) {
	err := generator.Execute(context.Background(), []generator.Operation{
		&generator.WriteFileOp{Path: filepath.Join(t.TempDir(), "x"), Content: nil},
	}, generator.ExecuteOptions{Writer: &bytes.Buffer{}})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "content is nil")
}

func TestExecute_Concurrent(t *testing.T) {
	defer goleak.VerifyNone(t)

	ctx := context.Background()
	tmpDir := t.TempDir()

	var ops []generator.Operation
	for i := 0; i < 20; i++ {
		ops = append(ops, &generator.WriteFileOp{
			Path:    filepath.Join(tmpDir, fmt.Sprintf("dir%d", i%3), fmt.Sprintf("file%02d.txt", i)),
			Content: []byte(fmt.Sprintf("%d", i)),
			Mode:    0644,
		})
	}

	var buf bytes.Buffer
	err := generator.Execute(ctx, ops, generator.ExecuteOptions{Writer: &buf, Concurrency: 4})
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 20)
	for i, line := range lines {
		assert.Contains(t, line, fmt.Sprintf("file%02d.txt", i), "output should follow declaration order")
	}
	for i := 0; i < 20; i++ {
		assert.FileExists(t, filepath.Join(tmpDir, fmt.Sprintf("dir%d", i%3), fmt.Sprintf("file%02d.txt", i)))
	}
}

type failingOp struct{ err error }

func (f *failingOp) Validate(context.Context, bool) error { return nil }
func (f *failingOp) Execute(context.Context) error        { return f.err }
func (f *failingOp) Description() string                  { return "fail" }

func TestExecute_ConcurrentFailure(t *testing.T) {
	defer goleak.VerifyNone(t)

	boom := errors.New("boom")
	ops := []generator.Operation{
		&generator.WriteFileOp{Path: filepath.Join(t.TempDir(), "ok.txt"), Content: []byte("ok")},
		&failingOp{err: boom},
	}

	var buf bytes.Buffer
	err := generator.Execute(context.Background(), ops, generator.ExecuteOptions{Writer: &buf, Concurrency: 2})
	require.ErrorIs(t, err, boom)
	assert.Empty(t, buf.String())
}

func TestUpdateJSONOp(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "package.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"name":"api","scripts":{"dev":"tsx watch src/index.ts"},"dependencies":{"express":"^4.21.2"}}`), 0644))

	op := &generator.UpdateJSONOp{
		Path: path,
		Update: func(doc *generator.Object) error {
			deps, err := doc.Child("dependencies")
			if err != nil {
				return err
			}
			deps.Set("@prisma/client", "^6.2.0")
			scripts, err := doc.Child("scripts")
			if err != nil {
				return err
			}
			scripts.Set("prisma:generate", "prisma generate && echo done")
			return nil
		},
	}

	require.NoError(t, generator.Execute(ctx, []generator.Operation{op}, generator.ExecuteOptions{Writer: &bytes.Buffer{}}))

	content, err := os.ReadFile(path)
	require.NoError(t, err)
	want := `{
  "name": "api",
  "scripts": {
    "dev": "tsx watch src/index.ts",
    "prisma:generate": "prisma generate && echo done"
  },
  "dependencies": {
    "express": "^4.21.2",
    "@prisma/client": "^6.2.0"
  }
}
`
	assert.Equal(t, want, string(content))
}

func TestUpdateJSONOp_MissingFile(t *testing.T) {
	op := &generator.UpdateJSONOp{
		Path:   filepath.Join(t.TempDir(), "package.json"),
		Update: func(*generator.Object) error { return nil },
	}
	err := generator.Execute(context.Background(), []generator.Operation{op}, generator.ExecuteOptions{Writer: &bytes.Buffer{}})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to read")
}

func TestAppendFileOp(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".env.example")
	require.NoError(t, os.WriteFile(path, []byte("PORT=3000\n"), 0644))

	op := &generator.AppendFileOp{Path: path, Content: []byte("\nSMTP_HOST=localhost\n")}
	require.NoError(t, generator.Execute(context.Background(), []generator.Operation{op}, generator.ExecuteOptions{Writer: &bytes.Buffer{}}))

	content, _ := os.ReadFile(path)
	assert.Equal(t, "PORT=3000\n\nSMTP_HOST=localhost\n", string(content))
}

type recordingRunner struct{ calls []string }

func (r *recordingRunner) Run(_ context.Context, dir, name string, args ...string) error {
	r.calls = append(r.calls, dir+": "+strings.Join(append([]string{name}, args...), " "))
	return nil
}

func TestCommandOp(t *testing.T) {
	runner := &recordingRunner{}
	op := &generator.CommandOp{Dir: "/work/app", Name: "git", Args: []string{"init"}, Runner: runner}

	var buf bytes.Buffer
	require.NoError(t, generator.Execute(context.Background(), []generator.Operation{op}, generator.ExecuteOptions{Writer: &buf}))

	assert.Equal(t, []string{"/work/app: git init"}, runner.calls)
	assert.Contains(t, buf.String(), "Run git init in /work/app")

	err := generator.Execute(context.Background(), []generator.Operation{&generator.CommandOp{Name: "git"}}, generator.ExecuteOptions{Writer: &buf})
	assert.Error(t, err)
}
