package objtree

import (
	"testing"

	"github.com/npillmayer/schuko/tracing"
	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/npillmayer/uic/diagnostics"
	"github.com/npillmayer/uic/langtype"
	"github.com/npillmayer/uic/syntax"
	"github.com/stretchr/testify/assert"
)

func buildComponent(node *syntax.Node) (*Component, *diagnostics.BuildDiagnostics) {
	diag := &diagnostics.BuildDiagnostics{}
	tr := langtype.NewTypeRegister(langtype.BuiltinRegister())
	return NewComponentFromNode(node, diag, tr), diag
}

func TestDuplicatedBinding(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "uic.objtree")
	defer teardown()
	tracer().SetTraceLevel(tracing.LevelError)
	//
	b := syntax.NewBuilder("dup.60")
	first := b.Number("10px")
	second := b.Binding("x", b.Number("20px"))
	c, diag := buildComponent(b.Component("Foo", b.Element("Rectangle", b.Binding("x", first), second)))
	msgs := diag.Messages()
	if len(msgs) != 1 || msgs[0] != "Duplicated property binding" {
		t.Fatalf("expected exactly one duplicate binding error, have %v", msgs)
	}
	bind := c.RootElement.Bindings["x"]
	if bind == nil {
		t.Fatalf("expected binding for x")
	}
	assert.Equal(t, first.Location().Span, bind.Span.Span, "first binding must be kept")
	loc := diag.Diagnostics()[0].Location
	assert.Equal(t, second.ChildNode(syntax.Identifier).Location().Span, loc.Span,
		"error must point to the second binding")
}

func TestElementBuildErrors(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "uic.objtree")
	defer teardown()
	tracer().SetTraceLevel(tracing.LevelError)
	//
	b := syntax.NewBuilder("errors.60")
	node := b.Component("Foo", b.Element("Rectangle",
		b.Binding("no_such_prop", b.Number("1")),
		b.Property(b.Type("int"), "x", nil),
		b.SubElement("parent", b.Element("Text")),
		b.Child("Rectangle", b.ChildrenPlaceholder()),
		b.Child("Rectangle", b.ChildrenPlaceholder()),
	))
	_, diag := buildComponent(node)
	assert.Equal(t, []string{
		"Cannot override property 'x'",
		"Unknown property no_such_prop in Rectangle",
		"'parent' is a reserved id",
		"The @children placeholder can only appear once in an element hierarchy",
	}, diag.Messages())
}

func TestComponentBuild(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "uic.objtree")
	defer teardown()
	tracer().SetTraceLevel(tracing.LevelError)
	//
	b := syntax.NewBuilder("ok.60")
	node := b.Component("Foo", b.Element("Rectangle",
		b.Property(b.Type("length"), "my-width", b.Expr(b.Number("5cm"))),
		b.Property(nil, "alias", b.TwoWay("", b.Name("my-width"))),
		b.SubElement("label", b.Element("Text", b.Binding("text", b.Str("hello")))),
		b.Repeated("item", "idx", b.Name("model"), b.Child("Rectangle")),
	))
	c, diag := buildComponent(node)
	if diag.HasError() {
		t.Fatalf("unexpected errors: %v", diag.Err())
	}
	root := c.RootElement
	assert.Equal(t, "Foo", c.ID)
	assert.Equal(t, langtype.LogicalLength, root.PropertyDeclarations["my_width"].PropertyType)
	assert.Equal(t, langtype.Void, root.PropertyDeclarations["alias"].PropertyType,
		"alias type is inferred later")
	if assert.Len(t, root.Children, 2) {
		label := root.Children[0]
		assert.Equal(t, "label", label.ID)
		assert.Same(t, c, label.EnclosingComponent())
		_, uncompiled := label.Bindings["text"].Expression.(*Uncompiled)
		assert.True(t, uncompiled, "bindings are compiled by the resolving pass")
		rep := root.Children[1]
		if assert.NotNil(t, rep.Repeated) {
			assert.Equal(t, "item", rep.Repeated.ModelDataID)
			assert.Equal(t, "idx", rep.Repeated.IndexID)
			assert.False(t, rep.Repeated.IsConditionalElement)
		}
	}
	assert.Same(t, root, FindElementByID(root, "root"))
	assert.Same(t, root, FindParentElement(root.Children[0]))
}

func TestCallbackDeclarationOverrides(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "uic.objtree")
	defer teardown()
	tracer().SetTraceLevel(tracing.LevelError)
	//
	b := syntax.NewBuilder("callbacks.60")
	node := b.Component("Foo", b.Element("Rectangle",
		b.Property(b.Type("int"), "foo", b.Expr(b.Number("1"))),
		b.Property(b.Type("int"), "other", nil),
		b.Callback("foo", nil, nil, b.TwoWay("", b.Name("other"))),
		b.Callback("a", nil, nil, nil),
		b.Callback("a", []*syntax.Node{b.Type("int")}, nil, nil),
	))
	c, diag := buildComponent(node)
	assert.Equal(t, []string{
		"Cannot override property 'foo'",
		"Duplicated property binding",
		"Cannot override property 'a'",
	}, diag.Messages())
	root := c.RootElement
	assert.Equal(t, langtype.Int32, root.PropertyDeclarations["foo"].PropertyType,
		"the property declaration must be kept")
	if u, ok := root.Bindings["foo"].Expression.(*Uncompiled); assert.True(t, ok) {
		assert.Equal(t, syntax.BindingExpression, u.Node.Kind(), "the first binding must be kept")
	}
	if cb, ok := root.PropertyDeclarations["a"].PropertyType.(*langtype.Callback); assert.True(t, ok) {
		assert.Empty(t, cb.Args, "the first callback declaration must be kept")
	}
}

func TestDeprecatedPropertyAlias(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "uic.objtree")
	defer teardown()
	tracer().SetTraceLevel(tracing.LevelError)
	//
	b := syntax.NewBuilder("deprecated.60")
	c, diag := buildComponent(b.Component("Foo", b.Element("Rectangle",
		b.Binding("color", b.Color("#ff0000")),
	)))
	if assert.Equal(t, 1, diag.Len(), "expected exactly one diagnostic, have %v", diag.Messages()) {
		d := diag.Diagnostics()[0]
		assert.Equal(t, diagnostics.LevelWarning, d.Level)
		assert.Equal(t, "The property 'color' has been deprecated. Please use 'background' instead", d.Message)
	}
	root := c.RootElement
	if bind := root.Bindings["background"]; assert.NotNil(t, bind) {
		u, ok := bind.Expression.(*Uncompiled)
		if assert.True(t, ok) {
			assert.Equal(t, syntax.BindingExpression, u.Node.Kind())
		}
	}
	assert.NotContains(t, root.Bindings, "color")
}

func TestDeclarationUnderDeprecatedName(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "uic.objtree")
	defer teardown()
	tracer().SetTraceLevel(tracing.LevelError)
	//
	b := syntax.NewBuilder("deprecated.60")
	c, diag := buildComponent(b.Component("Foo", b.Element("Rectangle",
		b.Property(b.Type("brush"), "color", nil),
	)))
	assert.Equal(t, []string{"Cannot override property 'background'"}, diag.Messages())
	root := c.RootElement
	assert.Contains(t, root.PropertyDeclarations, "background")
	assert.NotContains(t, root.PropertyDeclarations, "color")
}

func TestBindingsOfUnknownElement(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "uic.objtree")
	defer teardown()
	tracer().SetTraceLevel(tracing.LevelError)
	//
	b := syntax.NewBuilder("unknown.60")
	c, diag := buildComponent(b.Component("Foo", b.Element("Rectangle",
		b.Child("NoSuchElement", b.Binding("x", b.Number("1"))),
	)))
	msgs := diag.Messages()
	if len(msgs) != 1 {
		t.Fatalf("expected only the unknown element to be reported, have %v", msgs)
	}
	if assert.Len(t, c.RootElement.Children, 1) {
		child := c.RootElement.Children[0]
		assert.Equal(t, langtype.Invalid, child.BaseType())
		assert.NotContains(t, child.Bindings, "x")
	}
}

func TestConditionalElementBuild(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "uic.objtree")
	defer teardown()
	tracer().SetTraceLevel(tracing.LevelError)
	//
	b := syntax.NewBuilder("cond.60")
	c, diag := buildComponent(b.Component("Foo", b.Element("Rectangle",
		b.Property(b.Type("bool"), "flag", nil),
		b.Conditional(b.Name("flag"), b.Child("Rectangle")),
	)))
	if diag.HasError() {
		t.Fatalf("unexpected errors: %v", diag.Err())
	}
	if assert.Len(t, c.RootElement.Children, 1) {
		rep := c.RootElement.Children[0].Repeated
		if assert.NotNil(t, rep, "a conditional element is repeated") {
			assert.True(t, rep.IsConditionalElement)
			assert.Empty(t, rep.ModelDataID)
			_, uncompiled := rep.Model.(*Uncompiled)
			assert.True(t, uncompiled, "the condition is compiled by the resolving pass")
		}
	}
}
