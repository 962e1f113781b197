package objtree

import (
	"fmt"

	"github.com/npillmayer/uic/diagnostics"
	"github.com/npillmayer/uic/langtype"
	"github.com/npillmayer/uic/syntax"
)

// argument is a compiled argument of a call, together with its node for
// diagnostics.
type argument struct {
	expr Expression
	node diagnostics.Spanned
}

// lowerMacro expands a call of a builtin macro into plain expressions.
func (ctx *LookupCtx) lowerMacro(mac *BuiltinMacroReference, call *syntax.Node, args []argument) Expression {
	switch mac.Macro {
	case MacroMin:
		return ctx.minMax(call, '<', args)
	case MacroMax:
		return ctx.minMax(call, '>', args)
	case MacroCubicBezier:
		return ctx.cubicBezier(call, args)
	case MacroRgb:
		return ctx.rgb(call, args)
	case MacroDebug:
		return ctx.debug(call, args)
	}
	panic(fmt.Sprintf("objtree: unknown macro %d", mac.Macro))
}

func (ctx *LookupCtx) minMax(call *syntax.Node, op rune, args []argument) Expression {
	if len(args) == 0 {
		ctx.Diag.PushError("Needs at least one argument", call)
		return &Invalid{}
	}
	types := make([]langtype.Type, len(args))
	for i, a := range args {
		types[i] = TypeOf(a.expr)
	}
	ty := commonTargetType(types)
	if _, ok := langtype.AsUnitProduct(ty); !ok {
		ctx.Diag.PushError("Invalid argument type", call)
		return &Invalid{}
	}
	base := MaybeConvertTo(args[0].expr, ty, args[0].node, ctx.Diag)
	for _, a := range args[1:] {
		rhs := MaybeConvertTo(a.expr, ty, a.node, ctx.Diag)
		base = ctx.minMaxExpression(base, rhs, op)
	}
	return base
}

// minMaxExpression evaluates both operands once, into local variables, and
// selects one of them.
func (ctx *LookupCtx) minMaxExpression(lhs, rhs Expression, op rune) Expression {
	ty := TypeOf(lhs)
	id := ctx.nextLocal()
	n1, n2 := fmt.Sprintf("minmax_lhs%d", id), fmt.Sprintf("minmax_rhs%d", id)
	read := func(n string) Expression { return &ReadLocalVariable{Name: n, Ty: ty} }
	return &CodeBlock{Statements: []Expression{
		&StoreLocalVariable{Name: n1, Value: lhs},
		&StoreLocalVariable{Name: n2, Value: rhs},
		&Condition{
			Cond:  &BinaryExpr{LHS: read(n1), RHS: read(n2), Op: op},
			True:  read(n1),
			False: read(n2),
		},
	}}
}

func (ctx *LookupCtx) cubicBezier(call *syntax.Node, args []argument) Expression {
	curve := &EasingCurve{Kind: EaseCubicBezier}
	var msg string
	for i := range curve.Points {
		if i >= len(args) {
			msg = "Not enough arguments"
			break
		}
		n, ok := args[i].expr.(*NumberLiteral)
		if !ok || n.Unit != langtype.UnitNone {
			msg = "Arguments to cubic bezier curve must be number literal"
			continue
		}
		curve.Points[i] = float32(n.Value)
	}
	if msg == "" && len(args) > len(curve.Points) {
		msg = "Too many arguments"
	}
	if msg != "" {
		ctx.Diag.PushError(msg, call)
	}
	return curve
}

func (ctx *LookupCtx) rgb(call *syntax.Node, args []argument) Expression {
	if len(args) < 3 || len(args) > 4 {
		ctx.Diag.PushError(fmt.Sprintf("This function needs 3 or 4 arguments, but %d were provided", len(args)), call)
		return &Invalid{}
	}
	arguments := make([]Expression, 0, 4)
	for i, a := range args {
		switch {
		case i == 3:
			arguments = append(arguments, MaybeConvertTo(a.expr, langtype.Float32, a.node, ctx.Diag))
		case TypeOf(a.expr) == langtype.Percent:
			arguments = append(arguments, &BinaryExpr{
				LHS: MaybeConvertTo(a.expr, langtype.Float32, a.node, ctx.Diag),
				RHS: Number(255, langtype.UnitNone),
				Op:  '*',
			})
		default:
			arguments = append(arguments, MaybeConvertTo(a.expr, langtype.Int32, a.node, ctx.Diag))
		}
	}
	if len(arguments) < 4 {
		arguments = append(arguments, Number(1, langtype.UnitNone))
	}
	return &FunctionCall{
		Function:  &BuiltinFunctionReference{Function: FnRgb, Location: call.Location()},
		Arguments: arguments,
		Location:  call.Location(),
	}
}

func (ctx *LookupCtx) debug(call *syntax.Node, args []argument) Expression {
	var str Expression
	for _, a := range args {
		v := ctx.debugString(a.expr, a.node)
		if str == nil {
			str = v
			continue
		}
		str = &BinaryExpr{
			LHS: str,
			RHS: &BinaryExpr{LHS: &StringLiteral{Value: ", "}, RHS: v, Op: '+'},
			Op:  '+',
		}
	}
	if str == nil {
		str = &StringLiteral{}
	}
	return &FunctionCall{
		Function:  &BuiltinFunctionReference{Function: FnDebug, Location: call.Location()},
		Arguments: []Expression{str},
		Location:  call.Location(),
	}
}

// debugString converts a value to a string expression for debug output.
func (ctx *LookupCtx) debugString(e Expression, node diagnostics.Spanned) Expression {
	ty := TypeOf(e)
	concat := func(parts ...Expression) Expression {
		r := parts[0]
		for _, p := range parts[1:] {
			r = &BinaryExpr{LHS: r, RHS: p, Op: '+'}
		}
		return r
	}
	if u, ok := langtype.DefaultUnit(ty); ok {
		num := MaybeConvertTo(&Cast{From: e, To: langtype.Float32}, langtype.String, node, ctx.Diag)
		return concat(num, &StringLiteral{Value: u.String()})
	}
	switch t := ty.(type) {
	case langtype.UnitProduct:
		num := MaybeConvertTo(&Cast{From: e, To: langtype.Float32}, langtype.String, node, ctx.Diag)
		return concat(num, &StringLiteral{Value: t.String()})
	case *langtype.Struct:
		tmp := fmt.Sprintf("debug_struct%d", ctx.nextLocal())
		parts := []Expression{&StringLiteral{Value: "{ "}}
		for i, name := range t.Fields.SortedNames() {
			sep := ", "
			if i == 0 {
				sep = ""
			}
			parts = append(parts, &StringLiteral{Value: sep + name + ": "},
				ctx.debugString(&StructFieldAccess{Base: &ReadLocalVariable{Name: tmp, Ty: t}, Name: name}, node))
		}
		parts = append(parts, &StringLiteral{Value: " }"})
		return &CodeBlock{Statements: []Expression{
			&StoreLocalVariable{Name: tmp, Value: e},
			concat(parts...),
		}}
	case langtype.Primitive:
		switch t {
		case langtype.Invalid:
			return &Invalid{}
		case langtype.Float32, langtype.Int32, langtype.String:
			return MaybeConvertTo(e, langtype.String, node, ctx.Diag)
		case langtype.Bool:
			return &Condition{Cond: e, True: &StringLiteral{Value: "true"}, False: &StringLiteral{Value: "false"}}
		}
	}
	return &StringLiteral{Value: "<<not printable>>"}
}
