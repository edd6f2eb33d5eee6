package generator

import (
	"bytes"
	"fmt"
	"io/fs"
	"path/filepath"
	"strings"
	"sync"
	"text/template"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Renderer handles template parsing and rendering with caching
type Renderer struct {
	funcMap template.FuncMap
	cache   map[string]*template.Template
	mu      sync.RWMutex // Protect cache for concurrent access
}

// NewRenderer creates a renderer with built-in helper functions
func NewRenderer() *Renderer {
	return &Renderer{
		funcMap: defaultFuncMap(),
		cache:   make(map[string]*template.Template),
	}
}

// RenderString renders a template from a string
// The name is used for caching and error messages
func (r *Renderer) RenderString(name, templateStr string, data any) ([]byte, error) {
	tmpl, err := r.load("string:"+name, func() (string, error) { return templateStr, nil })
	if err != nil {
		return nil, err
	}
	return r.executeTemplate(tmpl, data)
}

// RenderFS renders a template from a file system, usually an embed.FS.
// Templates are cached by path, so a Renderer should serve a single template set.
func (r *Renderer) RenderFS(fsys fs.FS, path string, data any) ([]byte, error) {
	tmpl, err := r.load("fs:"+path, func() (string, error) {
		b, err := fs.ReadFile(fsys, path)
		if err != nil {
			return "", fmt.Errorf("failed to read template from fs '%s': %w", path, err)
		}
		return string(b), nil
	})
	if err != nil {
		return nil, err
	}
	return r.executeTemplate(tmpl, data)
}

// ClearCache clears the template cache (useful for testing)
func (r *Renderer) ClearCache() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.cache = make(map[string]*template.Template)
}

func (r *Renderer) load(key string, source func() (string, error)) (*template.Template, error) {
	r.mu.RLock()
	if tmpl, ok := r.cache[key]; ok {
		r.mu.RUnlock()
		return tmpl, nil
	}
	r.mu.RUnlock()

	text, err := source()
	if err != nil {
		return nil, err
	}

	name := key[strings.LastIndex(key, ":")+1:]
	tmpl, err := template.New(name).Funcs(r.funcMap).Parse(text)
	if err != nil {
		return nil, fmt.Errorf("failed to parse template '%s': %w", name, err)
	}

	r.mu.Lock()
	r.cache[key] = tmpl
	r.mu.Unlock()

	return tmpl, nil
}

// executeTemplate executes a parsed template with the given data
func (r *Renderer) executeTemplate(tmpl *template.Template, data any) ([]byte, error) {
	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return nil, fmt.Errorf("failed to render template '%s': %w", tmpl.Name(), err)
	}
	return buf.Bytes(), nil
}

// FileSpec maps a template to an output path relative to a generator's base directory.
type FileSpec struct {
	Path     string // Output path, slash separated
	Template string // Template file inside the generator's templates/ directory
	When     bool   // Only rendered when true
	Raw      bool   // Copied verbatim, for files whose own syntax uses {{ }}
}

// File is a FileSpec that is always rendered.
func File(path, tmpl string) FileSpec {
	return FileSpec{Path: path, Template: tmpl, When: true}
}

// Static is a FileSpec copied without template execution.
func Static(path, tmpl string) FileSpec {
	return FileSpec{Path: path, Template: tmpl, When: true, Raw: true}
}

// RenderAll renders every enabled spec under base into WriteFileOps.
func (r *Renderer) RenderAll(fsys fs.FS, base string, specs []FileSpec, data any) ([]Operation, error) {
	ops := make([]Operation, 0, len(specs))
	for _, spec := range specs {
		if !spec.When {
			continue
		}
		var content []byte
		var err error
		if spec.Raw {
			content, err = fs.ReadFile(fsys, "templates/"+spec.Template)
		} else {
			content, err = r.RenderFS(fsys, "templates/"+spec.Template, data)
		}
		if err != nil {
			return nil, err
		}
		ops = append(ops, &WriteFileOp{
			Path:    filepath.Join(base, filepath.FromSlash(spec.Path)),
			Content: content,
			Mode:    0644,
		})
	}
	return ops, nil
}

// Dirs builds MkdirOps for each relative directory under base.
func Dirs(base string, dirs ...string) []Operation {
	ops := make([]Operation, 0, len(dirs))
	for _, d := range dirs {
		ops = append(ops, &MkdirOp{Path: filepath.Join(base, filepath.FromSlash(d))})
	}
	return ops
}

// defaultFuncMap returns the default template function map
func defaultFuncMap() template.FuncMap {
	return template.FuncMap{
		// Case conversion
		"pascalCase": PascalCase, // my-app → MyApp
		"camelCase":  CamelCase,  // my-app → myApp
		"snakeCase":  SnakeCase,  // my-app → my_app
		"title":      Title,      // my app → My App

		// String manipulation
		"quote":     Quote,
		"squote":    SingleQuote,
		"upper":     strings.ToUpper,
		"lower":     strings.ToLower,
		"trim":      strings.TrimSpace,
		"join":      strings.Join,
		"contains":  strings.Contains,
		"hasPrefix": strings.HasPrefix,
		"replace":   strings.ReplaceAll,
		"indent":    Indent,

		// Utilities
		"json":    JSONString,
		"dict":    Dict,
		"default": Default,
	}
}

// words splits an identifier on separators and lower-to-upper transitions.
func words(s string) []string {
	var out []string
	var cur []rune
	runes := []rune(s)
	flush := func() {
		if len(cur) > 0 {
			out = append(out, string(cur))
			cur = cur[:0]
		}
	}
	for i, r := range runes {
		switch {
		case r == '-' || r == '_' || r == ' ' || r == '.' || r == '/' || r == '@':
			flush()
		case unicode.IsUpper(r) && i > 0 && (unicode.IsLower(runes[i-1]) ||
			(i+1 < len(runes) && unicode.IsLower(runes[i+1]) && unicode.IsUpper(runes[i-1]))):
			flush()
			cur = append(cur, r)
		default:
			cur = append(cur, r)
		}
	}
	flush()
	return out
}

// PascalCase converts kebab-case, snake_case or camelCase to PascalCase.
// Examples: my-app → MyApp, user_name → UserName
func PascalCase(s string) string {
	var b strings.Builder
	for _, w := range words(s) {
		b.WriteString(strings.ToUpper(w[:1]) + strings.ToLower(w[1:]))
	}
	return b.String()
}

// CamelCase converts to camelCase. Example: my-app → myApp
func CamelCase(s string) string {
	p := PascalCase(s)
	if p == "" {
		return ""
	}
	return strings.ToLower(p[:1]) + p[1:]
}

// SnakeCase converts to snake_case. Examples: my-app → my_app, UserName → user_name
func SnakeCase(s string) string {
	ws := words(s)
	for i, w := range ws {
		ws[i] = strings.ToLower(w)
	}
	return strings.Join(ws, "_")
}

var titleCaser = cases.Title(language.English)

// Title converts separators to spaces and title-cases each word.
// Example: my-fullstack-app → My Fullstack App
func Title(s string) string {
	return titleCaser.String(strings.Join(words(s), " "))
}

// Quote wraps a string in double quotes
func Quote(s string) string {
	return fmt.Sprintf("%q", s)
}

// SingleQuote wraps a string in single quotes for JavaScript source.
func SingleQuote(s string) string {
	r := strings.NewReplacer(`\`, `\\`, `'`, `\'`, "\n", `\n`, "\r", `\r`)
	return "'" + r.Replace(s) + "'"
}

// Indent prefixes every non-empty line after the first with n spaces.
func Indent(n int, s string) string {
	pad := strings.Repeat(" ", n)
	lines := strings.Split(s, "\n")
	for i := 1; i < len(lines); i++ {
		if lines[i] != "" {
			lines[i] = pad + lines[i]
		}
	}
	return strings.Join(lines, "\n")
}

// JSONString encodes v as indented JSON without the trailing newline.
func JSONString(v any) (string, error) {
	b, err := JSON(v)
	if err != nil {
		return "", err
	}
	return strings.TrimRight(string(b), "\n"), nil
}

// Dict creates a map from alternating key-value pairs
// Usage in template: {{ template "partial" (dict "key1" val1 "key2" val2) }}
func Dict(values ...any) (map[string]any, error) {
	if len(values)%2 != 0 {
		return nil, fmt.Errorf("dict requires an even number of arguments")
	}

	result := make(map[string]any, len(values)/2)
	for i := 0; i < len(values); i += 2 {
		key, ok := values[i].(string)
		if !ok {
			return nil, fmt.Errorf("dict keys must be strings, got %T at position %d", values[i], i)
		}
		result[key] = values[i+1]
	}
	return result, nil
}

// Default returns the default value if the given value is nil or an empty string
func Default(defaultVal, val any) any {
	if val == nil {
		return defaultVal
	}
	if s, ok := val.(string); ok && s == "" {
		return defaultVal
	}
	return val
}
