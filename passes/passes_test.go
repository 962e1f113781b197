package passes

import (
	"testing"

	"github.com/npillmayer/schuko/tracing"
	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/npillmayer/tyse/core/dimen"
	"github.com/npillmayer/uic/diagnostics"
	"github.com/npillmayer/uic/langtype"
	"github.com/npillmayer/uic/objtree"
	"github.com/npillmayer/uic/syntax"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func buildDocument(b *syntax.Builder, items ...*syntax.Node) (*objtree.Document, *diagnostics.BuildDiagnostics) {
	diag := &diagnostics.BuildDiagnostics{}
	doc := objtree.NewDocument(b.Document(items...), nil, diag, langtype.BuiltinRegister())
	return doc, diag
}

// resolved builds a document and runs the passes giving every binding a
// type.
func resolved(t *testing.T, b *syntax.Builder, items ...*syntax.Node) (*objtree.Document, *diagnostics.BuildDiagnostics) {
	doc, diag := buildDocument(b, items...)
	require.False(t, diag.HasError(), "building document: %v", diag.Err())
	InferAliases(doc, diag)
	Resolve(doc, diag, nil)
	return doc, diag
}

func TestCyclicAliases(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "uic.passes")
	defer teardown()
	tracer().SetTraceLevel(tracing.LevelError)
	//
	b := syntax.NewBuilder("cycle.60")
	doc, diag := resolved(t, b, b.Component("Foo", b.Element("Rectangle",
		b.Property(nil, "a", b.TwoWay("", b.Name("b"))),
		b.Property(nil, "b", b.TwoWay("", b.Name("a"))),
	)))
	assert.True(t, diag.HasError())
	assert.Equal(t, []string{
		"Could not infer type of property 'b'",
		"Could not infer type of property 'a'",
	}, diag.Messages())
	root := doc.RootComponent.RootElement
	assert.Equal(t, langtype.Invalid, root.PropertyDeclarations["a"].PropertyType)
	assert.Equal(t, langtype.Invalid, root.PropertyDeclarations["b"].PropertyType)
	BindingAnalysis(doc.RootComponent, diag)
	assert.Len(t, diag.Messages(), 2, "a cycle of aliases is no binding loop")
}

func TestAliasGetsTypeOfTarget(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "uic.passes")
	defer teardown()
	tracer().SetTraceLevel(tracing.LevelError)
	//
	b := syntax.NewBuilder("alias.60")
	doc, diag := resolved(t, b, b.Component("Foo", b.Element("Rectangle",
		b.Property(nil, "foo", b.TwoWay("", b.Name("bar"))),
		b.Property(b.Type("int"), "bar", b.Expr(b.Number("3"))),
		b.Property(nil, "label-text", b.TwoWay("", b.Name("label.text"))),
		b.Property(nil, "chain", b.TwoWay("", b.Name("foo"))),
		b.SubElement("label", b.Element("Text")),
	)))
	if diag.Len() != 0 {
		t.Fatalf("expected no diagnostics, have %v", diag.Messages())
	}
	root := doc.RootComponent.RootElement
	assert.Equal(t, langtype.Int32, root.PropertyDeclarations["foo"].PropertyType)
	assert.Equal(t, langtype.Int32, root.PropertyDeclarations["chain"].PropertyType)
	assert.Equal(t, langtype.String, root.PropertyDeclarations["label_text"].PropertyType)
	tw, ok := root.Bindings["foo"].Expression.(*objtree.TwoWayBinding)
	if assert.True(t, ok, "binding of foo must be a two-way binding") {
		assert.Equal(t, "bar", tw.Ref.Name())
		assert.Same(t, root, tw.Ref.Element())
	}
	CheckResolved(doc)
}

func TestResolveLengthLiteral(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "uic.passes")
	defer teardown()
	tracer().SetTraceLevel(tracing.LevelError)
	//
	b := syntax.NewBuilder("length.60")
	doc, diag := resolved(t, b, b.Component("Foo", b.Element("Rectangle",
		b.Property(b.Type("length"), "x", b.Expr(b.Number("5cm"))),
	)))
	require.False(t, diag.HasError(), "%v", diag.Err())
	e := doc.RootComponent.RootElement.Bindings["x"].Expression
	n, ok := e.(*objtree.NumberLiteral)
	if !ok {
		t.Fatalf("expected number literal, is %s", objtree.PrettyPrint(e))
	}
	assert.InDelta(t, 5*37.8, n.Unit.Normalize(n.Value), 1e-9)
	assert.Equal(t, langtype.LogicalLength, objtree.TypeOf(e))
}

func TestResolveIncompatibleUnits(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "uic.passes")
	defer teardown()
	tracer().SetTraceLevel(tracing.LevelError)
	//
	b := syntax.NewBuilder("units.60")
	sum := b.Binary(b.Number("2px"), "+", b.Number("3"))
	doc, diag := resolved(t, b, b.Component("Foo", b.Element("Rectangle",
		b.Property(b.Type("length"), "y", b.Expr(sum)),
	)))
	diags := diag.Diagnostics()
	if len(diags) != 1 {
		t.Fatalf("expected one diagnostic, have %v", diag.Messages())
	}
	op := sum.ChildNode(syntax.BinaryExpression).FirstOperator()
	assert.Equal(t, op.Location().Span, diags[0].Location.Span, "error must point to the operator")
	e := doc.RootComponent.RootElement.Bindings["y"].Expression
	assert.Equal(t, langtype.Invalid, objtree.TypeOf(e))
}

func TestRepeaterComponents(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "uic.passes")
	defer teardown()
	tracer().SetTraceLevel(tracing.LevelError)
	//
	b := syntax.NewBuilder("repeat.60")
	doc, diag := resolved(t, b, b.Component("Foo", b.Element("Rectangle",
		b.Repeated("item", "idx", b.Array(b.Number("1"), b.Number("2")),
			b.Child("Rectangle", b.Binding("width", b.Number("10px")), b.Child("Text"))),
	)))
	require.False(t, diag.HasError(), "%v", diag.Err())
	CreateRepeaterComponents(doc)
	rep := doc.RootComponent.RootElement.Children[0]
	comp, ok := objtree.AsComponent(rep.BaseType())
	require.True(t, ok, "repeated element must instantiate a component")
	assert.Same(t, rep, comp.ParentElement())
	assert.True(t, isRepeaterComponent(comp))
	assert.Equal(t, 1, comp.StrongCount())
	assert.Empty(t, rep.Bindings)
	assert.Empty(t, rep.Children)
	root := comp.RootElement
	assert.Contains(t, root.Bindings, "width")
	if assert.Len(t, root.Children, 1) {
		assert.Same(t, comp, root.Children[0].EnclosingComponent())
	}
	assert.Equal(t, "Rectangle", root.BuiltinType().Name)
	CreateRepeaterComponents(doc)
	again, _ := objtree.AsComponent(rep.BaseType())
	assert.Same(t, comp, again, "second run must not create another component")
}

func TestLowerShadows(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "uic.passes")
	defer teardown()
	tracer().SetTraceLevel(tracing.LevelError)
	//
	b := syntax.NewBuilder("shadow.60")
	doc, diag := resolved(t, b, b.Component("Foo", b.Element("Rectangle",
		b.SubElement("card", b.Element("BorderRectangle",
			b.Binding("border-radius", b.Number("3px")),
			b.Binding("drop-shadow-blur", b.Number("5px")),
			b.Binding("drop-shadow-offset-x", b.Number("1px")),
		)),
		b.SubElement("label", b.Element("Text", b.Binding("drop-shadow-blur", b.Number("2px")))),
		b.Repeated("", "", b.Number("3"),
			b.SubElement("row", b.Element("Rectangle", b.Binding("drop-shadow-blur", b.Number("4px"))))),
	)))
	require.False(t, diag.HasError(), "%v", diag.Err())
	CreateRepeaterComponents(doc)
	LowerShadows(doc, diag)
	assert.Equal(t, []string{
		"The drop_shadow_blur property is only supported on Rectangle elements right now",
	}, diag.Messages())
	root := doc.RootComponent.RootElement
	require.Len(t, root.Children, 4)
	shadow, card := root.Children[0], root.Children[1]
	assert.Equal(t, "card-shadow", shadow.ID)
	assert.Equal(t, "BoxShadow", shadow.BuiltinType().Name)
	assert.Equal(t, "card", card.ID)
	assert.Equal(t, []string{"blur", "border_radius", "height", "offset_x", "width", "x", "y"},
		shadow.SortedBindingNames())
	assert.Equal(t, []string{"border_radius"}, card.SortedBindingNames())
	ref, ok := shadow.Bindings["width"].Expression.(*objtree.PropertyReference)
	if assert.True(t, ok) {
		assert.Same(t, card, ref.Ref.Element())
	}
	assert.Same(t, doc.RootComponent, shadow.EnclosingComponent())
	assert.Empty(t, root.Children[2].Bindings, "shadow bindings of a Text are dropped")
	//
	comp, ok := objtree.AsComponent(root.Children[3].BaseType())
	require.True(t, ok)
	assert.Equal(t, 1, comp.StrongCount())
	assert.Equal(t, "BoxShadow", comp.RootElement.BuiltinType().Name)
	if assert.Len(t, comp.RootElement.Children, 1) {
		row := comp.RootElement.Children[0]
		assert.Equal(t, "Rectangle", row.BuiltinType().Name)
		assert.Same(t, comp, row.EnclosingComponent())
		assert.NotContains(t, row.Bindings, "drop_shadow_blur")
	}
}

func TestBindingLoop(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "uic.passes")
	defer teardown()
	tracer().SetTraceLevel(tracing.LevelError)
	//
	b := syntax.NewBuilder("loop.60")
	doc, diag := resolved(t, b, b.Component("Foo", b.Element("Rectangle",
		b.Binding("width", b.Name("height")),
		b.Binding("height", b.Name("width")),
		b.SubElement("inner", b.Element("Rectangle",
			b.Property(b.Type("int"), "a", b.Expr(b.Number("1"))),
			b.Property(b.Type("int"), "b", b.Expr(b.Binary(b.Name("a"), "+", b.Number("1")))),
		)),
	)))
	require.False(t, diag.HasError(), "%v", diag.Err())
	CreateRepeaterComponents(doc)
	CollectSubComponents(doc.RootComponent)
	CollectGlobals(doc.RootComponent)
	BindingAnalysis(doc.RootComponent, diag)
	assert.Equal(t, []string{
		"The binding for the property 'height' is part of a binding loop",
		"The binding for the property 'width' is part of a binding loop",
	}, diag.Messages())
	root := doc.RootComponent.RootElement
	assert.True(t, root.Bindings["width"].Analysis.IsInBindingLoop)
	assert.False(t, root.Bindings["width"].Analysis.IsConst)
	inner := root.Children[0]
	assert.False(t, inner.Bindings["a"].Analysis.IsInBindingLoop)
	assert.True(t, inner.Bindings["a"].Analysis.IsConst)
	assert.True(t, inner.Bindings["b"].Analysis.IsConst)
	assert.True(t, inner.Analysis("a").IsRead)
	assert.False(t, inner.Analysis("b").IsRead)
}

func TestPublicPropertiesAreNotConstant(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "uic.passes")
	defer teardown()
	tracer().SetTraceLevel(tracing.LevelError)
	//
	b := syntax.NewBuilder("public.60")
	doc, diag := resolved(t, b, b.Component("Foo", b.Element("Rectangle",
		b.Property(b.Type("length"), "size", b.Expr(b.Number("10px"))),
		b.Binding("width", b.Name("size")),
	)))
	require.False(t, diag.HasError(), "%v", diag.Err())
	ExposePublicAPI(doc)
	BindingAnalysis(doc.RootComponent, diag)
	root := doc.RootComponent.RootElement
	assert.True(t, root.PropertyDeclarations["size"].ExposeInPublicAPI)
	assert.True(t, root.Bindings["size"].Analysis.IsConst)
	assert.False(t, root.Bindings["width"].Analysis.IsConst, "public property may be set from outside")
}

func TestRootConstraints(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "uic.passes")
	defer teardown()
	tracer().SetTraceLevel(tracing.LevelError)
	//
	b := syntax.NewBuilder("constraints.60")
	doc, diag := resolved(t, b, b.Component("App", b.Element("Rectangle",
		b.Property(b.Type("length"), "h", b.Number("10px")),
		b.Binding("width", b.Number("96px")),
		b.Binding("height", b.Name("h")),
	)))
	require.False(t, diag.HasError(), "%v", diag.Err())
	ComputeRootConstraints(doc, diag)
	assert.False(t, diag.HasError())
	rc := doc.RootComponent.RootConstraints
	assert.True(t, rc.FixedWidth)
	assert.True(t, rc.FixedHeight)
	var du dimen.DU
	if m := rc.Width.Match(); m.Just(&du) == nil || du != 72*dimen.PT {
		t.Errorf("expected constant width of 72pt, is %s", rc.Width)
	}
	if m := rc.Height.Match(); m.IsKind(langtype.NoDimen()) == nil {
		t.Errorf("expected no constant height, is %s", rc.Height)
	}
}

func TestGlobalComponents(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "uic.passes")
	defer teardown()
	tracer().SetTraceLevel(tracing.LevelError)
	//
	b := syntax.NewBuilder("global.60")
	_, diag := buildDocument(b,
		b.Component("Settings", b.Element("",
			b.Property(b.Type("int"), "volume", nil),
			b.ChildrenPlaceholder(),
			b.States(),
		)),
		b.Component("App", b.Element("Rectangle",
			b.Child("Settings"),
		)),
	)
	assert.Equal(t, []string{
		"A global component cannot have sub elements",
		"A global component cannot have states",
		"Cannot create an instance of a global component",
	}, diag.Messages())
}

func TestCallbackAliasGetsCallbackType(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "uic.passes")
	defer teardown()
	tracer().SetTraceLevel(tracing.LevelError)
	//
	b := syntax.NewBuilder("callback.60")
	doc, diag := resolved(t, b, b.Component("Button", b.Element("Rectangle",
		b.Callback("c", nil, nil, b.TwoWay("", b.Name("t.clicked"))),
		b.SubElement("t", b.Element("TouchArea")),
	)))
	require.False(t, diag.HasError(), "unexpected errors: %v", diag.Err())
	root := doc.RootComponent.RootElement
	_, ok := root.PropertyDeclarations["c"].PropertyType.(*langtype.Callback)
	assert.True(t, ok, "alias of a callback must be a callback, is %s", root.PropertyDeclarations["c"].PropertyType)
	tw, ok := root.Bindings["c"].Expression.(*objtree.TwoWayBinding)
	if assert.True(t, ok, "binding of c must be a two-way binding") {
		assert.Equal(t, "clicked", tw.Ref.Name())
		assert.Equal(t, "t", tw.Ref.Element().ID)
	}
}

func TestConditionalModelIsBool(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "uic.passes")
	defer teardown()
	tracer().SetTraceLevel(tracing.LevelError)
	//
	b := syntax.NewBuilder("cond.60")
	doc, diag := resolved(t, b, b.Component("Foo", b.Element("Rectangle",
		b.Property(b.Type("bool"), "flag", nil),
		b.Conditional(b.Name("flag"), b.Child("Rectangle")),
	)))
	require.False(t, diag.HasError(), "unexpected errors: %v", diag.Err())
	root := doc.RootComponent.RootElement
	require.Len(t, root.Children, 1)
	rep := root.Children[0].Repeated
	require.NotNil(t, rep)
	assert.True(t, rep.IsConditionalElement)
	assert.Equal(t, langtype.Bool, objtree.TypeOf(rep.Model))
}
