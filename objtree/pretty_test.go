package objtree

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/npillmayer/schuko/tracing"
	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/npillmayer/uic/langtype"
)

func TestPrettyPrintExpressions(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "uic.objtree")
	defer teardown()
	tracer().SetTraceLevel(tracing.LevelError)
	//
	e := NewElement("txt", langtype.Void)
	tests := []struct {
		expr Expression
		want string
	}{
		{Number(2.5, langtype.UnitCm), "2.5cm"},
		{&Cast{From: Number(1, langtype.UnitNone), To: langtype.String}, "(1/* as string */)"},
		{&BinaryExpr{LHS: &BoolLiteral{Value: true}, RHS: &BoolLiteral{}, Op: '!'}, "(true != false)"},
		{&UnaryOp{Sub: &PropertyReference{Ref: NewNamedReference(e, "n")}, Op: '-'}, "-txt.n"},
		{&Condition{Cond: &BoolLiteral{Value: true}, True: &StringLiteral{Value: "a"}, False: &StringLiteral{Value: "b"}},
			`if (true) { "a" } else { "b" }`},
		{&StructExpr{Values: map[string]Expression{"y": Number(2, langtype.UnitNone), "x": Number(1, langtype.UnitNone)}},
			"{ x: 1, y: 2,  }"},
		{&FunctionCall{Function: &FunctionParameterReference{Index: 0}, Arguments: []Expression{&StringLiteral{Value: "q"}}},
			`_arg_0("q", )`},
	}
	for _, test := range tests {
		if diff := cmp.Diff(test.want, PrettyPrint(test.expr)); diff != "" {
			t.Errorf("pretty print mismatch (-want +got):\n%s", diff)
		}
	}
}

func TestPrettyPrintElement(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "uic.objtree")
	defer teardown()
	tracer().SetTraceLevel(tracing.LevelError)
	//
	root := NewElement("root", langtype.Void)
	child := NewElement("child", langtype.Void)
	child.Repeated = &RepeatedElementInfo{Model: Number(3, langtype.UnitNone), ModelDataID: "item", IndexID: "i"}
	root.Children = []*Element{child}
	NewComponent("C", root)
	root.PropertyDeclarations["count"] = &PropertyDeclaration{PropertyType: langtype.Int32}
	root.Bindings["count"] = NewBinding(Number(42, langtype.UnitNone))
	var b strings.Builder
	if err := PrettyPrintElement(&b, root); err != nil {
		t.Fatal(err)
	}
	want := `root := void {
   property<int> count;
   count: 42;
   for item[i] in 3:
   child := void {
   }
}
`
	if diff := cmp.Diff(want, b.String()); diff != "" {
		t.Errorf("element dump mismatch (-want +got):\n%s", diff)
	}
}
