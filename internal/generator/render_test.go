package generator

import (
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCaseHelpers(t *testing.T) {
	tests := []struct {
		in                        string
		pascal, camel, snake, ttl string
	}{
		{"my-fullstack-app", "MyFullstackApp", "myFullstackApp", "my_fullstack_app", "My Fullstack App"},
		{"user_name", "UserName", "userName", "user_name", "User Name"},
		{"UserName", "UserName", "userName", "user_name", "User Name"},
		{"HTTPServer", "HttpServer", "httpServer", "http_server", "Http Server"},
		{"@acme/web", "AcmeWeb", "acmeWeb", "acme_web", "Acme Web"},
		{"", "", "", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.pascal, PascalCase(tt.in))
			assert.Equal(t, tt.camel, CamelCase(tt.in))
			assert.Equal(t, tt.snake, SnakeCase(tt.in))
			assert.Equal(t, tt.ttl, Title(tt.in))
		})
	}
}

func TestRenderString_Helpers(t *testing.T) {
	r := NewRenderer()

	out, err := r.RenderString("env", `DB={{ snakeCase .Name }} {{ quote .Name }} {{ default "x" .Missing }}`, map[string]any{
		"Name":    "shop-api",
		"Missing": "",
	})
	require.NoError(t, err)
	assert.Equal(t, `DB=shop_api "shop-api" x`, string(out))
}

func TestRenderString_Cached(t *testing.T) {
	r := NewRenderer()

	_, err := r.RenderString("t", "{{ .A }}", map[string]string{"A": "1"})
	require.NoError(t, err)

	// Same name returns the cached template even if the text differs
	out, err := r.RenderString("t", "changed", map[string]string{"A": "2"})
	require.NoError(t, err)
	assert.Equal(t, "2", string(out))

	r.ClearCache()
	out, err = r.RenderString("t", "changed", nil)
	require.NoError(t, err)
	assert.Equal(t, "changed", string(out))
}

func TestRenderString_ParseError(t *testing.T) {
	_, err := NewRenderer().RenderString("bad", "{{ .A ", nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to parse template 'bad'")
}

func TestRenderAll(t *testing.T) {
	fsys := fstest.MapFS{
		"templates/index.ts.tmpl":    {Data: []byte("listen({{ .Port }})")},
		"templates/tsconfig.json.tmpl": {Data: []byte("{}")},
	}

	ops, err := NewRenderer().RenderAll(fsys, "/out", []FileSpec{
		File("src/index.ts", "index.ts.tmpl"),
		{Path: "tsconfig.json", Template: "tsconfig.json.tmpl", When: false},
	}, map[string]int{"Port": 3000})
	require.NoError(t, err)
	require.Len(t, ops, 1)

	op := ops[0].(*WriteFileOp)
	assert.Equal(t, "/out/src/index.ts", op.Path)
	assert.Equal(t, "listen(3000)", string(op.Content))
}

func TestRenderAll_Static(t *testing.T) {
	fsys := fstest.MapFS{
		"templates/Card.vue": {Data: []byte("<h3>{{ title }}</h3>\n")},
	}

	ops, err := NewRenderer().RenderAll(fsys, "/out", []FileSpec{Static("src/Card.vue", "Card.vue")}, nil)
	require.NoError(t, err)
	require.Len(t, ops, 1)
	assert.Equal(t, "<h3>{{ title }}</h3>\n", string(ops[0].(*WriteFileOp).Content))
}

func TestRenderAll_MissingTemplate(t *testing.T) {
	_, err := NewRenderer().RenderAll(fstest.MapFS{}, "/out", []FileSpec{File("a", "missing.tmpl")}, nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "missing.tmpl")
}

func TestSingleQuote(t *testing.T) {
	assert.Equal(t, `'shop'`, SingleQuote("shop"))
	assert.Equal(t, `'it\'s a\nnew app'`, SingleQuote("it's a\nnew app"))
}

func TestIndent(t *testing.T) {
	assert.Equal(t, "a\n    b\n\n    c", Indent(4, "a\nb\n\nc"))
}

func TestDict(t *testing.T) {
	d, err := Dict("a", 1, "b", "two")
	require.NoError(t, err)
	assert.Equal(t, map[string]any{"a": 1, "b": "two"}, d)

	_, err = Dict("a")
	assert.Error(t, err)
	_, err = Dict(1, 2)
	assert.Error(t, err)
}

func TestObject_RoundTripPreservesOrder(t *testing.T) {
	src := `{"z":1,"a":{"y":[1,"two",{"k":true}],"b":null},"m":"x<y&z"}`

	obj := NewObject()
	require.NoError(t, obj.UnmarshalJSON([]byte(src)))
	assert.Equal(t, []string{"z", "a", "m"}, obj.Keys())

	out, err := obj.MarshalJSON()
	require.NoError(t, err)
	assert.Equal(t, src, string(out))
}

func TestObject_Child(t *testing.T) {
	obj := NewObject().Set("name", "api")

	scripts, err := obj.Child("scripts")
	require.NoError(t, err)
	scripts.Set("dev", "vite")

	_, err = obj.Child("name")
	assert.Error(t, err)

	out, err := JSON(obj)
	require.NoError(t, err)
	assert.Equal(t, "{\n  \"name\": \"api\",\n  \"scripts\": {\n    \"dev\": \"vite\"\n  }\n}\n", string(out))
}
