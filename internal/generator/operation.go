package generator

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

// Operation represents a file system operation that can be validated and executed.
//
// Validate checks if the operation would succeed without executing it and has
// no side effects. force=true skips conflict checks (e.g., file already exists).
//
// Execute performs the actual operation. This should only be called after Validate succeeds.
//
// Description returns a human-readable description for output (e.g., "Create src/app.ts (234 bytes)").
type Operation interface {
	Validate(ctx context.Context, force bool) error
	Execute(ctx context.Context) error
	Description() string
}

// Targeter is implemented by operations that create a single path.
type Targeter interface {
	Target() string
}

// WriteFileOp creates a new file with content. Parent directories are
// created on execute.
type WriteFileOp struct {
	Path    string      // File path to create
	Content []byte      // File content (can be empty, must not be nil)
	Mode    fs.FileMode // File permissions (e.g., 0644)
}

func (op *WriteFileOp) Validate(ctx context.Context, force bool) error {
	if op.Content == nil {
		return fmt.Errorf("content is nil for file: %s", op.Path)
	}

	if !force {
		if _, err := os.Stat(op.Path); err == nil {
			return fmt.Errorf("file already exists: %s", op.Path)
		}
	}

	return nil
}

func (op *WriteFileOp) Execute(ctx context.Context) error {
	if err := os.MkdirAll(filepath.Dir(op.Path), 0755); err != nil {
		return err
	}
	mode := op.Mode
	if mode == 0 {
		mode = 0644
	}
	return os.WriteFile(op.Path, op.Content, mode)
}

func (op *WriteFileOp) Description() string {
	return fmt.Sprintf("Create %s (%d bytes)", op.Path, len(op.Content))
}

func (op *WriteFileOp) Target() string { return op.Path }

// MkdirOp creates a directory and any missing parents.
type MkdirOp struct {
	Path string
}

func (op *MkdirOp) Validate(ctx context.Context, force bool) error {
	if info, err := os.Stat(op.Path); err == nil && !info.IsDir() {
		return fmt.Errorf("not a directory: %s", op.Path)
	}
	return nil
}

func (op *MkdirOp) Execute(ctx context.Context) error {
	return os.MkdirAll(op.Path, 0755)
}

func (op *MkdirOp) Description() string {
	return fmt.Sprintf("Create directory %s", op.Path)
}

func (op *MkdirOp) Target() string { return op.Path }

// UpdateJSONOp rewrites an existing JSON document in place. Key order is
// preserved and new keys are appended.
type UpdateJSONOp struct {
	Path   string
	Update func(doc *Object) error
}

func (op *UpdateJSONOp) Validate(ctx context.Context, force bool) error {
	if op.Update == nil {
		return fmt.Errorf("no update function for %s", op.Path)
	}
	return nil
}

func (op *UpdateJSONOp) Execute(ctx context.Context) error {
	data, err := os.ReadFile(op.Path)
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", op.Path, err)
	}

	doc := NewObject()
	if err := doc.UnmarshalJSON(data); err != nil {
		return fmt.Errorf("failed to parse %s: %w", op.Path, err)
	}

	if err := op.Update(doc); err != nil {
		return fmt.Errorf("failed to update %s: %w", op.Path, err)
	}

	out, err := JSON(doc)
	if err != nil {
		return err
	}
	return os.WriteFile(op.Path, out, 0644)
}

func (op *UpdateJSONOp) Description() string {
	return fmt.Sprintf("Update %s", op.Path)
}

// AppendFileOp appends content to a file, creating it when missing.
type AppendFileOp struct {
	Path    string
	Content []byte
}

func (op *AppendFileOp) Validate(ctx context.Context, force bool) error {
	if len(op.Content) == 0 {
		return fmt.Errorf("nothing to append to %s", op.Path)
	}
	return nil
}

func (op *AppendFileOp) Execute(ctx context.Context) error {
	f, err := os.OpenFile(op.Path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return err
	}
	if _, err := f.Write(op.Content); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

func (op *AppendFileOp) Description() string {
	return fmt.Sprintf("Append to %s (%d bytes)", op.Path, len(op.Content))
}

// Runner runs an external command in a directory.
type Runner interface {
	Run(ctx context.Context, dir, name string, args ...string) error
}

// CommandOp runs an external command such as git init.
type CommandOp struct {
	Dir    string
	Name   string
	Args   []string
	Runner Runner
}

func (op *CommandOp) Validate(ctx context.Context, force bool) error {
	if op.Runner == nil {
		return fmt.Errorf("no runner for command %s", op.Name)
	}
	return nil
}

func (op *CommandOp) Execute(ctx context.Context) error {
	return op.Runner.Run(ctx, op.Dir, op.Name, op.Args...)
}

func (op *CommandOp) Description() string {
	return fmt.Sprintf("Run %s in %s", strings.Join(append([]string{op.Name}, op.Args...), " "), op.Dir)
}
