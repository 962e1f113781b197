package passes

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/npillmayer/schuko/tracing"
	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/npillmayer/uic/langtype"
	"github.com/npillmayer/uic/objtree"
	"github.com/npillmayer/uic/styles"
	"github.com/npillmayer/uic/syntax"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPipelineOrder(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "uic.passes")
	defer teardown()
	tracer().SetTraceLevel(tracing.LevelError)
	//
	want := []string{
		"infer-aliases", "resolve", "check-resolved", "public-api", "repeater-components",
		"lower-shadows", "root-constraints", "style-defaults", "embed-resources",
		"sub-components", "globals", "structs", "custom-fonts", "binding-analysis",
	}
	if diff := cmp.Diff(want, Default().Names()); diff != "" {
		t.Errorf("pass order mismatch (-want +got):\n%s", diff)
	}
	want = []string{
		"infer-aliases", "resolve", "check-resolved", "repeater-components",
		"lower-shadows", "root-constraints", "style-defaults",
	}
	assert.Equal(t, want, Library().Names())
	var ran []string
	p := New(NewPass("one", func(*State) { ran = append(ran, "one") }),
		NewPass("two", func(*State) { ran = append(ran, "two") }))
	st := p.Run(&State{})
	assert.NotNil(t, st.Diag, "pipeline must provide a diagnostics sink")
	assert.Equal(t, []string{"one", "two"}, ran)
}

func TestStyleDefaults(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "uic.passes")
	defer teardown()
	tracer().SetTraceLevel(tracing.LevelError)
	//
	sheet, err := styles.Parse(`
Text { font-size: 14px; letter-spacing: sideways; }
#title { font-weight: 700; }
.Card Text { color: #ff0000 !important; }
VerticalLayout { spacing: 3px !important; }
`)
	require.NoError(t, err)
	style, err := styles.NewStyle("test", sheet)
	require.NoError(t, err)
	//
	b := syntax.NewBuilder("style.60")
	doc, diag := resolved(t, b,
		b.Component("Card", b.Element("Rectangle",
			b.SubElement("title", b.Element("Text")),
		)),
		b.Component("App", b.Element("Rectangle",
			b.Child("Card"),
			b.Child("Text", b.Binding("font-size", b.Number("20px"))),
		)),
	)
	require.False(t, diag.HasError(), "%v", diag.Err())
	ApplyDefaultPropertiesFromStyle(doc, style, diag)
	assert.False(t, diag.HasError())
	assert.Len(t, diag.Diagnostics(), 2, "letter-spacing is reported for every Text: %v", diag.Messages())
	//
	title := objtree.FindElementByID(doc.InnerComponents[0].RootElement, "title")
	require.NotNil(t, title)
	size, ok := title.Bindings["font_size"].Expression.(*objtree.NumberLiteral)
	if assert.True(t, ok, "font_size of title must be a number") {
		assert.Equal(t, 14.0, size.Value)
		assert.Equal(t, langtype.UnitPx, size.Unit)
		assert.Equal(t, 0, title.Bindings["font_size"].Priority)
	}
	assert.Contains(t, title.Bindings, "font_weight")
	assert.NotContains(t, title.Bindings, "letter_spacing")
	//
	app := doc.RootComponent.RootElement
	text := app.Children[1]
	size, ok = text.Bindings["font_size"].Expression.(*objtree.NumberLiteral)
	if assert.True(t, ok) {
		assert.Equal(t, 20.0, size.Value, "bindings from source win over the style")
	}
	assert.NotContains(t, text.Bindings, "font_weight")
	assert.NotEqual(t, objtree.PrettyPrint(text.Bindings["color"].Expression),
		objtree.PrettyPrint(title.Bindings["color"].Expression),
		"important color replaces the builtin default within Card")
}

func TestCollectors(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "uic.passes")
	defer teardown()
	tracer().SetTraceLevel(tracing.LevelError)
	//
	b := syntax.NewBuilder("collect.60")
	doc, diag := resolved(t, b,
		b.Struct("Point", b.Field("x", b.Type("length")), b.Field("y", b.Type("length"))),
		b.Struct("Line", b.Field("a", b.Type("Point")), b.Field("b", b.Type("Point"))),
		b.Component("Zeta", b.Element("", b.Property(b.Type("color"), "accent", nil))),
		b.Component("Alpha", b.Element("", b.Property(b.Type("length"), "gap", nil))),
		b.Component("Unused", b.Element("", b.Property(b.Type("int"), "n", nil))),
		b.Component("Button", b.Element("Rectangle", b.Binding("background", b.Name("Zeta.accent")))),
		b.Component("Card", b.Element("Rectangle", b.Child("Button"))),
		b.Component("App", b.Element("Rectangle",
			b.Property(b.Type("Line"), "line", nil),
			b.Binding("width", b.Name("Alpha.gap")),
			b.Child("Card"),
			b.Child("Button"),
			b.Repeated("", "", b.Number("2"), b.Child("Card")),
		)),
	)
	require.False(t, diag.HasError(), "%v", diag.Err())
	CreateRepeaterComponents(doc)
	root := doc.RootComponent
	CollectSubComponents(root)
	CollectGlobals(root)
	CollectStructs(root)
	names := func(cs []*objtree.Component) []string {
		var ns []string
		for _, c := range cs {
			ns = append(ns, c.ID)
		}
		return ns
	}
	assert.Equal(t, []string{"Button", "Card"}, names(root.UsedTypes.SubComponents))
	assert.Equal(t, []string{"Alpha", "Zeta"}, names(root.UsedTypes.Globals),
		"globals of sub-components are collected")
	var structs []string
	for _, s := range root.UsedTypes.Structs {
		structs = append(structs, s.String())
	}
	assert.Equal(t, []string{"Point", "Line"}, structs)
	//
	button := root.UsedTypes.SubComponents[0]
	count := button.StrongCount()
	CollectSubComponents(root)
	assert.Equal(t, count, button.StrongCount(), "collecting twice must not leak references")
}

func TestEmbedResourcesAndFonts(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "uic.passes")
	defer teardown()
	tracer().SetTraceLevel(tracing.LevelError)
	//
	b := syntax.NewBuilder("/src/embed.60")
	doc, diag := resolved(t, b, b.Component("App", b.Element("Rectangle",
		b.Child("Image", b.Binding("source", b.ImageURL("a.png"))),
		b.Child("Image", b.Binding("source", b.ImageURL("/img/b.png"))),
		b.Child("Image", b.Binding("source", b.ImageURL("a.png"))),
	)))
	require.False(t, diag.HasError(), "%v", diag.Err())
	EmbedResources(doc)
	root := doc.RootComponent
	assert.Equal(t, map[string]int{"/src/a.png": 0, "/img/b.png": 1}, root.EmbeddedFileResources)
	var ids []int
	for _, img := range root.RootElement.Children {
		ref, ok := img.Bindings["source"].Expression.(*objtree.ImageReference)
		require.True(t, ok)
		assert.Equal(t, objtree.ImageEmbeddedData, ref.Kind)
		ids = append(ids, ref.ResourceID)
	}
	assert.Equal(t, []int{0, 1, 0}, ids)
	//
	doc.CustomFonts = []objtree.CustomFont{{Path: "/fonts/b.ttf"}, {Path: "/fonts/a.ttf"}}
	imported := &objtree.Document{CustomFonts: []objtree.CustomFont{{Path: "/fonts/a.ttf"}}}
	CollectCustomFonts(root, []*objtree.Document{doc, imported}, true)
	require.Len(t, root.SetupCode, 2)
	call := root.SetupCode[0].(*objtree.FunctionCall)
	fn := call.Function.(*objtree.BuiltinFunctionReference)
	assert.Equal(t, objtree.FnRegisterCustomFontByMemory, fn.Function)
	assert.Equal(t, 2, root.EmbeddedFileResources["/fonts/a.ttf"])
	assert.Equal(t, 3, root.EmbeddedFileResources["/fonts/b.ttf"])
	//
	other := objtree.NewComponent("", objtree.NewElement("root", langtype.Void))
	CollectCustomFonts(other, []*objtree.Document{doc}, false)
	require.Len(t, other.SetupCode, 2)
	call = other.SetupCode[0].(*objtree.FunctionCall)
	assert.Equal(t, objtree.FnRegisterCustomFontByPath, call.Function.(*objtree.BuiltinFunctionReference).Function)
	assert.Equal(t, "/fonts/a.ttf", call.Arguments[0].(*objtree.StringLiteral).Value)
}

func TestDefaultPipeline(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "uic.passes")
	defer teardown()
	tracer().SetTraceLevel(tracing.LevelError)
	//
	style, err := (&styles.FileLoader{}).Load(t.Context(), "fluent")
	require.NoError(t, err)
	b := syntax.NewBuilder("app.60")
	doc, diag := buildDocument(b, b.Component("App", b.Element("Window",
		b.Property(nil, "caption", b.TwoWay("", b.Name("label.text"))),
		b.SubElement("label", b.Element("Text", b.Binding("text", b.Str("hello")))),
		b.Repeated("item", "", b.Array(b.Number("1"), b.Number("2")),
			b.Child("Rectangle", b.Binding("drop-shadow-blur", b.Number("2px")))),
	)))
	require.False(t, diag.HasError(), "%v", diag.Err())
	st := Default().Run(&State{Doc: doc, Diag: diag, Style: style})
	if st.Diag.HasError() {
		t.Fatalf("unexpected errors: %v", st.Diag.Err())
	}
	root := doc.RootComponent.RootElement
	assert.Equal(t, langtype.String, root.PropertyDeclarations["caption"].PropertyType)
	assert.True(t, root.PropertyDeclarations["caption"].ExposeInPublicAPI)
	assert.Contains(t, root.Bindings, "background", "Window background comes from the style")
	label := root.Children[0]
	assert.Contains(t, label.Bindings, "font_family")
	assert.True(t, label.Analysis("text").IsRead, "text is read through the alias")
	rep := root.Children[1]
	comp, ok := objtree.AsComponent(rep.BaseType())
	require.True(t, ok)
	assert.Equal(t, "BoxShadow", comp.RootElement.BuiltinType().Name)
}
