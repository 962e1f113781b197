package objtree

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/npillmayer/schuko/tracing"
	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/npillmayer/uic/diagnostics"
	"github.com/npillmayer/uic/langtype"
	"github.com/npillmayer/uic/syntax"
	"github.com/stretchr/testify/assert"
)

// scopeCtx creates a lookup context with a Rectangle as the only element in
// scope.
func scopeCtx(pt langtype.Type) *LookupCtx {
	tr := langtype.NewTypeRegister(langtype.BuiltinRegister())
	root := NewElement("root", tr.Lookup("Rectangle"))
	NewComponent("Test", root)
	ctx := NewLookupCtx(tr, &diagnostics.BuildDiagnostics{})
	ctx.PropertyType = pt
	ctx.ComponentScope = []*Element{root}
	return ctx
}

func TestLengthLiteral(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "uic.objtree")
	defer teardown()
	tracer().SetTraceLevel(tracing.LevelError)
	//
	b := syntax.NewBuilder("a.60")
	ctx := scopeCtx(langtype.LogicalLength)
	e := FromBindingExpressionNode(b.Expr(b.Number("5cm")), ctx)
	n, ok := e.(*NumberLiteral)
	if !ok {
		t.Fatalf("expected number literal, is %s", PrettyPrint(e))
	}
	assert.Equal(t, langtype.UnitCm, n.Unit)
	assert.InDelta(t, 5*37.8, n.Unit.Normalize(n.Value), 1e-9)
	assert.Equal(t, langtype.LogicalLength, TypeOf(e))
	assert.False(t, ctx.Diag.HasError())
}

func TestIncompatibleUnitsInAddition(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "uic.objtree")
	defer teardown()
	tracer().SetTraceLevel(tracing.LevelError)
	//
	b := syntax.NewBuilder("c.60")
	ctx := scopeCtx(langtype.Invalid)
	node := b.Binary(b.Number("2px"), "+", b.Number("3"))
	e := FromExpressionNode(node, ctx)
	assert.Equal(t, langtype.Invalid, TypeOf(e))
	diags := ctx.Diag.Diagnostics()
	if len(diags) != 1 {
		t.Fatalf("expected one diagnostic, have %v", ctx.Diag.Messages())
	}
	op := node.ChildNode(syntax.BinaryExpression).FirstOperator()
	assert.Equal(t, op.Location().Span, diags[0].Location.Span, "error must point to the operator")
}

func TestUnitProducts(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "uic.objtree")
	defer teardown()
	tracer().SetTraceLevel(tracing.LevelError)
	//
	area := &BinaryExpr{LHS: Number(2, langtype.UnitPx), RHS: Number(3, langtype.UnitCm), Op: '*'}
	assert.Equal(t, langtype.UnitProduct{{Unit: langtype.UnitPx, Power: 2}}, TypeOf(area))
	assert.Equal(t, TypeOf(area), TypeOf(area), "typing must be idempotent")
	back := &BinaryExpr{LHS: area, RHS: Number(1, langtype.UnitPx), Op: '/'}
	assert.Equal(t, langtype.LogicalLength, TypeOf(back))
	speed := &BinaryExpr{LHS: Number(1, langtype.UnitPx), RHS: Number(1, langtype.UnitS), Op: '/'}
	assert.Equal(t, langtype.UnitProduct{
		{Unit: langtype.UnitPx, Power: 1},
		{Unit: langtype.UnitMs, Power: -1},
	}, TypeOf(speed))
	ratio := &BinaryExpr{LHS: Number(4, langtype.UnitPx), RHS: Number(2, langtype.UnitPx), Op: '/'}
	assert.Equal(t, langtype.Float32, TypeOf(ratio))
}

func TestConversionsNeverInvalid(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "uic.objtree")
	defer teardown()
	tracer().SetTraceLevel(tracing.LevelError)
	//
	point := &langtype.Struct{Fields: langtype.NewFields(
		langtype.Field{Name: "x", Type: langtype.LogicalLength},
		langtype.Field{Name: "y", Type: langtype.LogicalLength})}
	point3 := &langtype.Struct{Fields: langtype.NewFields(
		langtype.Field{Name: "x", Type: langtype.LogicalLength},
		langtype.Field{Name: "y", Type: langtype.LogicalLength},
		langtype.Field{Name: "z", Type: langtype.LogicalLength})}
	values := []Expression{
		Number(1, langtype.UnitNone),
		Number(2, langtype.UnitPx),
		Number(2, langtype.UnitPhx),
		Number(50, langtype.UnitPercent),
		&StringLiteral{Value: "s"},
		&BoolLiteral{Value: true},
		colorExpression(0xff00ff00),
		&StructExpr{Ty: point, Values: map[string]Expression{
			"x": Number(1, langtype.UnitPx), "y": Number(2, langtype.UnitPx)}},
		&ReadLocalVariable{Name: "p", Ty: point},
		&ArrayExpr{ElemTy: langtype.Int32, Values: []Expression{Number(1, langtype.UnitNone)}},
	}
	root := NewElement("root", langtype.Void)
	for _, name := range []string{"x", "y", "z"} {
		root.PropertyDeclarations[name] = &PropertyDeclaration{PropertyType: langtype.LogicalLength}
	}
	comp := NewComponent("Point3", root)
	targets := []langtype.Type{
		langtype.Float32, langtype.Int32, langtype.String, langtype.LogicalLength,
		langtype.PhysicalLength, langtype.Brush, langtype.Model, point3,
		langtype.Array{Elem: langtype.Float32}, ComponentType(comp),
	}
	diag := &diagnostics.BuildDiagnostics{}
	for _, v := range values {
		from := TypeOf(v)
		for _, to := range targets {
			if from.Equal(to) || !langtype.CanConvert(from, to) {
				continue
			}
			c := MaybeConvertTo(v, to, nil, diag)
			if got := TypeOf(c); got == langtype.Invalid {
				t.Errorf("expected conversion of %s from %s to %s to be valid", PrettyPrint(v), from, to)
			} else if !got.Equal(to) {
				t.Errorf("expected conversion of %s to %s, is %s", PrettyPrint(v), to, got)
			}
		}
	}
	if diag.HasError() {
		t.Errorf("unexpected errors: %v", diag.Messages())
	}
}

func TestMinMacro(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "uic.objtree")
	defer teardown()
	tracer().SetTraceLevel(tracing.LevelError)
	//
	b := syntax.NewBuilder("min.60")
	ctx := scopeCtx(langtype.LogicalLength)
	e := FromExpressionNode(b.Call(b.Name("min"), b.Number("1px"), b.Number("2px")), ctx)
	if ctx.Diag.HasError() {
		t.Fatalf("unexpected errors: %v", ctx.Diag.Messages())
	}
	want := "{ minmax_lhs1 = 1px; minmax_rhs1 = 2px; if ((minmax_lhs1 < minmax_rhs1)) { minmax_lhs1 } else { minmax_rhs1 }; }"
	if diff := cmp.Diff(want, PrettyPrint(e)); diff != "" {
		t.Errorf("min() lowering mismatch (-want +got):\n%s", diff)
	}
	assert.Equal(t, langtype.LogicalLength, TypeOf(e))
}

func TestLookupErrors(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "uic.objtree")
	defer teardown()
	tracer().SetTraceLevel(tracing.LevelError)
	//
	b := syntax.NewBuilder("lookup.60")
	tests := []struct {
		expr *syntax.Node
		msg  string
	}{
		{b.Name("unknown"), "Unknown unqualified identifier 'unknown'"},
		{b.Name("parent.width"), "'parent' cannot be used in the root element"},
		{b.Name("Colors.nope"), "'nope' is not a color"},
		{b.Name("root.nope"), "Element 'root' does not have a property 'nope'"},
	}
	for _, test := range tests {
		ctx := scopeCtx(langtype.Invalid)
		e := FromExpressionNode(test.expr, ctx)
		if !IsInvalid(e) {
			t.Errorf("expected lookup of %q to fail, is %s", test.expr.Text(), PrettyPrint(e))
		}
		msgs := ctx.Diag.Messages()
		if len(msgs) != 1 || msgs[0] != test.msg {
			t.Errorf("expected error %q, have %v", test.msg, msgs)
		}
	}
}

func TestLookupProperties(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "uic.objtree")
	defer teardown()
	tracer().SetTraceLevel(tracing.LevelError)
	//
	b := syntax.NewBuilder("props.60")
	ctx := scopeCtx(langtype.Brush)
	root := ctx.current()
	root.PropertyDeclarations["counter"] = &PropertyDeclaration{PropertyType: langtype.Int32}
	for _, name := range []string{"counter", "self.counter", "root.counter"} {
		e := FromExpressionNode(b.Name(name), ctx)
		ref, ok := e.(*PropertyReference)
		if !ok {
			t.Errorf("expected %q to be a property reference, is %s", name, PrettyPrint(e))
			continue
		}
		assert.True(t, ref.Ref.Equal(NewNamedReference(root, "counter")))
		assert.Equal(t, langtype.Int32, TypeOf(e))
	}
	red := FromExpressionNode(b.Name("red"), ctx)
	assert.Equal(t, langtype.Color, TypeOf(red), "named colors are found by the expected type")
	assert.False(t, ctx.Diag.HasError(), "unexpected errors: %v", ctx.Diag.Messages())
}
