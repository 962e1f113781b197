package uic

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/npillmayer/schuko/tracing"
	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/npillmayer/uic/config"
	"github.com/npillmayer/uic/diagnostics"
	"github.com/npillmayer/uic/langtype"
	"github.com/npillmayer/uic/objtree"
	"github.com/npillmayer/uic/syntax"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// sources opens documents from a map.
func sources(docs map[string]*syntax.Node) OpenFunc {
	return func(_ context.Context, path string) (*syntax.Node, error) {
		if n, ok := docs[path]; ok {
			return n, nil
		}
		return nil, fmt.Errorf("open %s: %w", path, os.ErrNotExist)
	}
}

func TestCompile(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "uic")
	defer teardown()
	tracer().SetTraceLevel(tracing.LevelError)
	//
	b := syntax.NewBuilder("/app/main.60")
	node := b.Document(b.Component("App", b.Element("Window",
		b.Property(b.Type("int"), "count", b.Number("3")),
		b.Child("Text", b.Binding("text", b.Str("hello"))),
	)))
	diag := &diagnostics.BuildDiagnostics{}
	doc, err := Compile(t.Context(), node, diag, nil, nil)
	require.NoError(t, err)
	require.False(t, diag.HasError(), "%v", diag.Err())
	root := doc.RootComponent
	assert.Equal(t, "App", root.ID)
	assert.Contains(t, root.RootElement.Bindings, "background", "default style applies")
	assert.True(t, root.RootElement.PropertyDeclarations["count"].ExposeInPublicAPI)
	text := root.RootElement.Children[0]
	_, uncompiled := text.Bindings["text"].Expression.(*objtree.Uncompiled)
	assert.False(t, uncompiled)
}

func TestCompileChildrenPlaceholder(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "uic")
	defer teardown()
	tracer().SetTraceLevel(tracing.LevelError)
	//
	b := syntax.NewBuilder("main.60")
	node := b.Document(b.Component("App", b.Element("Rectangle",
		b.Binding("width", b.Number("10px")),
		b.ChildrenPlaceholder(),
	)))
	diag := &diagnostics.BuildDiagnostics{}
	doc, err := Compile(t.Context(), node, diag, nil, nil)
	require.NoError(t, err)
	assert.Equal(t, []string{"@children placeholder not allowed in the final component"}, diag.Messages())
	_, uncompiled := doc.RootComponent.RootElement.Bindings["width"].Expression.(*objtree.Uncompiled)
	assert.True(t, uncompiled, "passes must not run after errors")
}

func TestCompileWithImports(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "uic")
	defer teardown()
	tracer().SetTraceLevel(tracing.LevelError)
	//
	lb := syntax.NewBuilder("/lib/widgets.60")
	lib := lb.Document(lb.Component("Button", lb.Element("Rectangle",
		lb.Property(lb.Type("length"), "gap", lb.Number("2px")),
		lb.Binding("width", lb.Name("gap")),
	)))
	b := syntax.NewBuilder("/app/main.60")
	node := b.Document(
		b.Import("widgets.60"),
		b.Component("App", b.Element("Window", b.Child("Button"), b.Child("Button"))),
	)
	conf := config.Default()
	conf.IncludePaths = []string{"/lib"}
	loader := NewDocumentLoader(langtype.BuiltinRegister(), conf.IncludePaths,
		sources(map[string]*syntax.Node{"/lib/widgets.60": lib}))
	diag := &diagnostics.BuildDiagnostics{}
	doc, err := Compile(t.Context(), node, diag, conf, loader)
	require.NoError(t, err)
	require.False(t, diag.HasError(), "%v", diag.Err())
	require.Len(t, loader.Documents(), 1, "every document is loaded once")
	used := doc.RootComponent.UsedTypes.SubComponents
	require.Len(t, used, 1)
	assert.Equal(t, "Button", used[0].ID)
	_, uncompiled := used[0].RootElement.Bindings["width"].Expression.(*objtree.Uncompiled)
	assert.False(t, uncompiled, "imported documents are resolved")
	assert.False(t, used[0].RootElement.PropertyDeclarations["gap"].ExposeInPublicAPI,
		"imported components have no public API")
}

func TestImportErrors(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "uic")
	defer teardown()
	tracer().SetTraceLevel(tracing.LevelError)
	//
	ab := syntax.NewBuilder("/app/a.60")
	a := ab.Document(ab.Import("b.60"), ab.Component("A", ab.Element("Rectangle")))
	bb := syntax.NewBuilder("/app/b.60")
	bdoc := bb.Document(bb.Import("a.60"), bb.Component("B", bb.Element("Rectangle")))
	b := syntax.NewBuilder("/app/main.60")
	node := b.Document(
		b.Import("a.60"),
		b.Import("missing.60"),
		b.Import("notes.txt"),
		b.Component("App", b.Element("Rectangle")),
	)
	loader := NewDocumentLoader(langtype.BuiltinRegister(), nil,
		sources(map[string]*syntax.Node{"/app/a.60": a, "/app/b.60": bdoc}))
	diag := &diagnostics.BuildDiagnostics{}
	_, err := Compile(t.Context(), node, diag, nil, loader)
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{
		`Recursive import of "a.60"`,
		`Cannot find requested import "missing.60" in the include search path`,
		`Unsupported foreign import "notes.txt"`,
	}, diag.Messages())
}

func TestCompileFailures(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "uic")
	defer teardown()
	tracer().SetTraceLevel(tracing.LevelError)
	//
	b := syntax.NewBuilder("/app/main.60")
	node := b.Document(b.Import("broken.60"), b.Component("App", b.Element("Rectangle")))
	errDisk := errors.New("disk on fire")
	loader := NewDocumentLoader(langtype.BuiltinRegister(), nil,
		func(context.Context, string) (*syntax.Node, error) { return nil, errDisk })
	_, err := Compile(t.Context(), node, &diagnostics.BuildDiagnostics{}, nil, loader)
	assert.ErrorIs(t, err, errDisk)
	//
	ctx, cancel := context.WithCancel(t.Context())
	cancel()
	_, err = Compile(ctx, node, &diagnostics.BuildDiagnostics{}, nil, nil)
	assert.ErrorIs(t, err, context.Canceled)
	//
	conf := config.Default()
	conf.Style = "no-such-style"
	b = syntax.NewBuilder("/app/other.60")
	node = b.Document(b.Component("App", b.Element("Rectangle")))
	_, err = Compile(t.Context(), node, &diagnostics.BuildDiagnostics{}, conf, nil)
	assert.Error(t, err)
}

func TestIncludePathResolver(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "uic")
	defer teardown()
	tracer().SetTraceLevel(tracing.LevelError)
	//
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "logo.png"), []byte{0x89}, 0o644))
	resolve := IncludePathResolver([]string{dir})
	path, ok := resolve(diagnostics.NewSourceFile("/nowhere/main.60", ""), "logo.png")
	assert.True(t, ok)
	assert.Equal(t, filepath.Join(dir, "logo.png"), path)
	_, ok = resolve(nil, "missing.png")
	assert.False(t, ok)
}
