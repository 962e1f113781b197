package objtree

/*
License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>

*/

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/npillmayer/uic/langtype"
	"github.com/npillmayer/uic/syntax"
)

// FromBindingExpressionNode compiles the right-hand side of a binding and
// converts it to the type of the property.
func FromBindingExpressionNode(node *syntax.Node, ctx *LookupCtx) Expression {
	assertThat(node.Kind() == syntax.BindingExpression, "expected binding expression, is %s", node.Kind())
	var e Expression
	if ex := node.ChildNode(syntax.Expression); ex != nil {
		e = FromExpressionNode(ex, ctx)
	} else if cb := node.ChildNode(syntax.CodeBlock); cb != nil {
		e = FromCodeBlockNode(cb, ctx)
	} else {
		assertThat(ctx.Diag.HasError(), "binding without expression")
		return &Invalid{}
	}
	return MaybeConvertTo(e, ctx.PropertyType, node, ctx.Diag)
}

// FromCodeBlockNode compiles the statements of a code block.
func FromCodeBlockNode(node *syntax.Node, ctx *LookupCtx) Expression {
	block := &CodeBlock{}
	for _, ch := range node.Nodes() {
		switch ch.Kind() {
		case syntax.Expression:
			block.Statements = append(block.Statements, FromExpressionNode(ch, ctx))
		case syntax.ReturnStatement:
			ret := &ReturnStatement{}
			if ex := ch.ChildNode(syntax.Expression); ex != nil {
				ret.Value = MaybeConvertTo(FromExpressionNode(ex, ctx), ctx.ReturnType(), ex, ctx.Diag)
			}
			block.Statements = append(block.Statements, ret)
		}
	}
	return block
}

// FromCallbackConnection compiles the handler of `cb(args) => { ... }`.
// The argument names are put in scope.
func FromCallbackConnection(node *syntax.Node, ctx *LookupCtx) Expression {
	assertThat(node.Kind() == syntax.CallbackConnection, "expected callback connection, is %s", node.Kind())
	ctx.Arguments = ctx.Arguments[:0]
	for _, d := range node.ChildNodes(syntax.DeclaredIdentifier) {
		name, _ := d.Identifier()
		ctx.Arguments = append(ctx.Arguments, name)
	}
	block := node.ChildNode(syntax.CodeBlock)
	if block == nil {
		assertThat(ctx.Diag.HasError(), "callback connection without code block")
		return &Invalid{}
	}
	return MaybeConvertTo(FromCodeBlockNode(block, ctx), ctx.ReturnType(), node, ctx.Diag)
}

// FromTwoWayBinding compiles `<=> other`, which must name a property or a
// callback.
func FromTwoWayBinding(node *syntax.Node, ctx *LookupCtx) Expression {
	assertThat(node.Kind() == syntax.TwoWayBinding, "expected two-way binding, is %s", node.Kind())
	ex := node.ChildNode(syntax.Expression)
	if ex == nil {
		assertThat(ctx.Diag.HasError(), "two-way binding without expression")
		return &Invalid{}
	}
	var e Expression
	if qn := ex.ChildNode(syntax.QualifiedName); qn != nil {
		e = FromQualifiedNameNode(qn, ctx)
	} else {
		e = FromExpressionNode(ex, ctx)
	}
	ty, pt := TypeOf(e), ctx.PropertyType
	switch x := e.(type) {
	case *PropertyReference:
		if !ty.Equal(pt) && pt != langtype.Void && pt != langtype.Invalid {
			ctx.Diag.PushError("The property does not have the same type as the bound property", node)
		}
		return &TwoWayBinding{Ref: x.Ref}
	case *CallbackReference:
		if pt != langtype.InferredCallback && !ty.Equal(pt) {
			ctx.Diag.PushError("Cannot bind to a callback", node)
			return &Invalid{}
		}
		return &TwoWayBinding{Ref: x.Ref}
	}
	ctx.Diag.PushError("The expression in a two way binding must be a property reference", node)
	return e
}

// FromExpressionNode compiles an Expression node. Errors are reported and
// yield Invalid.
func FromExpressionNode(node *syntax.Node, ctx *LookupCtx) Expression {
	assertThat(node.Kind() == syntax.Expression, "expected expression, is %s", node.Kind())
	if node.ChildCount() == 0 {
		assertThat(ctx.Diag.HasError(), "empty expression")
		return &Invalid{}
	}
	ch, _ := node.Child(0)
	switch ch.Kind() {
	case syntax.Expression:
		return FromExpressionNode(ch, ctx)
	case syntax.AtImageURL:
		return fromImageURL(ch, ctx)
	case syntax.QualifiedName:
		e := FromQualifiedNameNode(ch, ctx)
		switch TypeOf(e).(type) {
		case *langtype.Function, *langtype.Callback:
			ctx.Diag.PushError(fmt.Sprintf("'%s' must be called. Did you forgot the '()'?",
				QualifiedTypeNameFromNode(ch)), ch)
		}
		return e
	case syntax.StringLiteral:
		s, ok := UnescapeString(ch.Text())
		if !ok {
			ctx.Diag.PushError("Cannot parse string literal", ch)
			return &Invalid{}
		}
		return &StringLiteral{Value: s}
	case syntax.NumberLiteral:
		v, u, ok, err := ParseNumberLiteral(ch.Text())
		if err != nil {
			ctx.Diag.PushError(err.Error(), ch)
			return &Invalid{}
		}
		if !ok {
			ctx.Diag.PushError("Invalid unit", ch)
			return &Invalid{}
		}
		return Number(v, u)
	case syntax.ColorLiteral:
		c, ok := ParseColorLiteral(ch.Text())
		if !ok {
			ctx.Diag.PushError("Invalid color literal", ch)
			return &Invalid{}
		}
		return colorExpression(c)
	case syntax.FunctionCallExpression:
		return fromFunctionCall(ch, ctx)
	case syntax.MemberAccess:
		base := ch.ChildNode(syntax.Expression)
		tok := ch.ChildNode(syntax.Identifier)
		if base == nil || tok == nil {
			assertThat(ctx.Diag.HasError(), "malformed member access")
			return &Invalid{}
		}
		e := FromExpressionNode(base, ctx)
		if IsInvalid(e) {
			return e
		}
		return ctx.memberAccess(e, syntax.NormalizeIdentifier(tok.Text()), tok, base)
	case syntax.SelfAssignment:
		return fromSelfAssignment(ch, ctx)
	case syntax.BinaryExpression:
		return fromBinaryExpression(ch, ctx)
	case syntax.UnaryOpExpression:
		return fromUnaryOp(ch, ctx)
	case syntax.ConditionalExpression:
		return fromConditional(ch, ctx)
	case syntax.ObjectLiteral:
		return fromObjectLiteral(ch, ctx)
	case syntax.Array:
		return fromArray(ch, ctx)
	case syntax.CodeBlock:
		return FromCodeBlockNode(ch, ctx)
	}
	assertThat(ctx.Diag.HasError(), "unexpected expression node %s", ch.Kind())
	return &Invalid{}
}

func fromImageURL(node *syntax.Node, ctx *LookupCtx) Expression {
	raw, _ := node.ChildText(syntax.StringLiteral)
	s, ok := UnescapeString(raw)
	if !ok {
		ctx.Diag.PushError("Cannot parse string literal", node)
		return &Invalid{}
	}
	if s == "" {
		return &ImageReference{Kind: ImageNone}
	}
	path := s
	if !filepath.IsAbs(s) && !strings.HasPrefix(s, "http://") && !strings.HasPrefix(s, "https://") {
		resolved := false
		if ctx.ResolvePath != nil {
			path, resolved = ctx.ResolvePath(node.SourceFile(), s)
		}
		if !resolved {
			path = s
			if f := node.SourceFile(); f != nil && f.Path != "" {
				path = filepath.Join(filepath.Dir(f.Path), s)
			}
		}
	}
	return &ImageReference{Kind: ImageAbsolutePath, Path: path}
}

func fromFunctionCall(node *syntax.Node, ctx *LookupCtx) Expression {
	subs := node.ChildNodes(syntax.Expression)
	if len(subs) == 0 {
		assertThat(ctx.Diag.HasError(), "function call without function")
		return &Invalid{}
	}
	var fn Expression
	if qn := subs[0].ChildNode(syntax.QualifiedName); qn != nil {
		fn = FromQualifiedNameNode(qn, ctx)
	} else {
		fn = FromExpressionNode(subs[0], ctx)
	}
	var args []argument
	for _, a := range subs[1:] {
		args = append(args, argument{expr: FromExpressionNode(a, ctx), node: a})
	}
	switch f := fn.(type) {
	case *BuiltinMacroReference:
		return ctx.lowerMacro(f, node, args)
	case *MemberFunction:
		args = append([]argument{{expr: f.Base, node: f.BaseNode}}, args...)
		fn = f.Member
	}
	arguments := make([]Expression, len(args))
	for i, a := range args {
		arguments[i] = a.expr
	}
	var params []langtype.Type
	isFunction := true
	switch ft := TypeOf(fn).(type) {
	case *langtype.Function:
		params = ft.Args
	case *langtype.Callback:
		params = ft.Args
	case langtype.Primitive:
		if ft == langtype.Invalid {
			assertThat(ctx.Diag.HasError(), "call of invalid function")
			isFunction = false
			break
		}
		if ft == langtype.InferredCallback {
			ctx.Diag.PushError("The callback type could not be inferred", node)
			isFunction = false
			break
		}
		ctx.Diag.PushError("The expression is not a function", node)
		isFunction = false
	default:
		ctx.Diag.PushError("The expression is not a function", node)
		isFunction = false
	}
	if isFunction {
		if len(params) != len(args) {
			ctx.Diag.PushError(fmt.Sprintf("The callback or function expects %d arguments, but %d are provided",
				len(params), len(args)), node)
		} else {
			for i, a := range args {
				arguments[i] = MaybeConvertTo(a.expr, params[i], a.node, ctx.Diag)
			}
		}
	}
	return &FunctionCall{Function: fn, Arguments: arguments, Location: node.Location()}
}

// operators maps operator tokens to the runes used in expressions.
var operators = map[syntax.Kind]rune{
	syntax.Plus:         '+',
	syntax.Minus:        '-',
	syntax.Star:         '*',
	syntax.Div:          '/',
	syntax.EqualEqual:   '=',
	syntax.NotEqual:     '!',
	syntax.Less:         '<',
	syntax.Greater:      '>',
	syntax.LessEqual:    '≤',
	syntax.GreaterEqual: '≥',
	syntax.AndAnd:       '&',
	syntax.OrOr:         '|',
	syntax.Bang:         '!',
	syntax.Equal:        '=',
	syntax.PlusEqual:    '+',
	syntax.MinusEqual:   '-',
	syntax.StarEqual:    '*',
	syntax.DivEqual:     '/',
}

// operands returns the two sub-expressions and the operator token of a
// binary node.
func operands(node *syntax.Node) (lhs, rhs, op *syntax.Node, ok bool) {
	subs := node.ChildNodes(syntax.Expression)
	op = node.FirstOperator()
	if len(subs) != 2 || op == nil {
		return nil, nil, nil, false
	}
	return subs[0], subs[1], op, true
}

func hasUnit(t langtype.Type) bool {
	if _, ok := t.(langtype.UnitProduct); ok {
		return true
	}
	_, ok := langtype.DefaultUnit(t)
	return ok
}

func fromBinaryExpression(node *syntax.Node, ctx *LookupCtx) Expression {
	lhsN, rhsN, opTok, ok := operands(node)
	if !ok {
		assertThat(ctx.Diag.HasError(), "malformed binary expression")
		return &Invalid{}
	}
	op := operators[opTok.Kind()]
	lhs, rhs := FromExpressionNode(lhsN, ctx), FromExpressionNode(rhsN, ctx)
	lt, rt := TypeOf(lhs), TypeOf(rhs)
	var expected langtype.Type
	switch OperatorClassOf(op) {
	case ComparisonOp:
		expected = commonTargetType([]langtype.Type{lt, rt})
	case LogicalOp:
		expected = langtype.Bool
	case ArithmeticOp:
		switch op {
		case '+', '-':
			switch {
			case op == '+' && (lt == langtype.String || rt == langtype.String):
				expected = langtype.String
			case hasUnit(lt):
				expected = lt
			case hasUnit(rt):
				expected = rt
			default:
				expected = langtype.Float32
			}
			return &BinaryExpr{
				LHS: MaybeConvertTo(lhs, expected, opTok, ctx.Diag),
				RHS: MaybeConvertTo(rhs, expected, opTok, ctx.Diag),
				Op:  op,
			}
		default: // '*' and '/'
			switch lu, ru := hasUnit(lt), hasUnit(rt); {
			case lu && ru:
				return &BinaryExpr{LHS: lhs, RHS: rhs, Op: op}
			case lu:
				return &BinaryExpr{LHS: lhs, RHS: MaybeConvertTo(rhs, langtype.Float32, rhsN, ctx.Diag), Op: op}
			case ru:
				return &BinaryExpr{LHS: MaybeConvertTo(lhs, langtype.Float32, lhsN, ctx.Diag), RHS: rhs, Op: op}
			}
			expected = langtype.Float32
		}
	}
	return &BinaryExpr{
		LHS: MaybeConvertTo(lhs, expected, lhsN, ctx.Diag),
		RHS: MaybeConvertTo(rhs, expected, rhsN, ctx.Diag),
		Op:  op,
	}
}

func fromUnaryOp(node *syntax.Node, ctx *LookupCtx) Expression {
	sub := node.ChildNode(syntax.Expression)
	opTok := node.FirstOperator()
	if sub == nil || opTok == nil {
		assertThat(ctx.Diag.HasError(), "malformed unary expression")
		return &Invalid{}
	}
	e := FromExpressionNode(sub, ctx)
	op := operators[opTok.Kind()]
	switch op {
	case '!':
		e = MaybeConvertTo(e, langtype.Bool, node, ctx.Diag)
	case '+', '-':
		ty := TypeOf(e)
		if !hasUnit(ty) && ty != langtype.Int32 && ty != langtype.Float32 && ty != langtype.Invalid {
			ctx.Diag.PushError(fmt.Sprintf("Unary '%c' not supported on %s", op, ty), node)
		}
	default:
		ctx.Diag.PushError(fmt.Sprintf("Unary '%s' not supported", opTok.Text()), opTok)
	}
	return &UnaryOp{Sub: e, Op: op}
}

func fromSelfAssignment(node *syntax.Node, ctx *LookupCtx) Expression {
	lhsN, rhsN, opTok, ok := operands(node)
	if !ok {
		assertThat(ctx.Diag.HasError(), "malformed self assignment")
		return &Invalid{}
	}
	op := operators[opTok.Kind()]
	lhs := FromExpressionNode(lhsN, ctx)
	ty := TypeOf(lhs)
	if !TrySetRW(lhs) && ty != langtype.Invalid {
		what := "Self assignment"
		if op == '=' {
			what = "Assignment"
		}
		ctx.Diag.PushError(what+" need to be done on a property", node)
	}
	_, isNumeric := langtype.AsUnitProduct(ty)
	var expected langtype.Type
	switch {
	case op == '=':
		expected = ty
	case op == '+' && (ty == langtype.String || isNumeric):
		expected = ty
	case op == '-' && isNumeric:
		expected = ty
	case (op == '*' || op == '/') && isNumeric:
		expected = langtype.Float32
	default:
		if ty != langtype.Invalid {
			ctx.Diag.PushError(fmt.Sprintf("the %c= operation cannot be done on a %s", op, ty), lhsN)
		}
		expected = langtype.Invalid
	}
	rhs := MaybeConvertTo(FromExpressionNode(rhsN, ctx), expected, rhsN, ctx.Diag)
	return &SelfAssignment{LHS: lhs, RHS: rhs, Op: op}
}

func fromConditional(node *syntax.Node, ctx *LookupCtx) Expression {
	subs := node.ChildNodes(syntax.Expression)
	if len(subs) != 3 {
		assertThat(ctx.Diag.HasError(), "malformed conditional expression")
		return &Invalid{}
	}
	cond := MaybeConvertTo(FromExpressionNode(subs[0], ctx), langtype.Bool, subs[0], ctx.Diag)
	t, f := FromExpressionNode(subs[1], ctx), FromExpressionNode(subs[2], ctx)
	ty := commonTargetType([]langtype.Type{TypeOf(t), TypeOf(f)})
	return &Condition{
		Cond:  cond,
		True:  MaybeConvertTo(t, ty, subs[1], ctx.Diag),
		False: MaybeConvertTo(f, ty, subs[2], ctx.Diag),
	}
}

func fromObjectLiteral(node *syntax.Node, ctx *LookupCtx) Expression {
	fields := langtype.NewFields()
	values := make(map[string]Expression)
	for _, m := range node.ChildNodes(syntax.ObjectMember) {
		name, _ := m.Identifier()
		var v Expression = &Invalid{}
		if ex := m.ChildNode(syntax.Expression); ex != nil {
			v = FromExpressionNode(ex, ctx)
		}
		values[name] = v
		fields.Add(name, TypeOf(v))
	}
	return &StructExpr{Ty: &langtype.Struct{Fields: fields}, Values: values}
}

func fromArray(node *syntax.Node, ctx *LookupCtx) Expression {
	subs := node.ChildNodes(syntax.Expression)
	values := make([]Expression, len(subs))
	types := make([]langtype.Type, len(subs))
	for i, s := range subs {
		values[i] = FromExpressionNode(s, ctx)
		types[i] = TypeOf(values[i])
	}
	elemTy := commonTargetType(types)
	for i := range values {
		values[i] = MaybeConvertTo(values[i], elemTy, node, ctx.Diag)
	}
	return &ArrayExpr{ElemTy: elemTy, Values: values}
}

// commonTargetType finds a type all the given types may be converted to.
// Struct types are merged field by field. If no type fits, the first type
// wins and the conversion reports the error later.
func commonTargetType(types []langtype.Type) langtype.Type {
	var target langtype.Type = langtype.Invalid
	for _, t := range types {
		switch {
		case target.Equal(t):
		case target == langtype.Invalid:
			target = t
		default:
			ts, ok1 := target.(*langtype.Struct)
			es, ok2 := t.(*langtype.Struct)
			if ok1 && ok2 {
				target = mergeStructs(ts, es)
			} else if !langtype.CanConvert(t, target) && (langtype.CanConvert(target, t) ||
				hasDefaultUnit(t) && (target == langtype.Float32 || target == langtype.Int32)) {
				// the latter is the `0` literal
				target = t
			}
		}
	}
	return target
}

func hasDefaultUnit(t langtype.Type) bool {
	_, ok := langtype.DefaultUnit(t)
	return ok
}

func mergeStructs(a, b *langtype.Struct) *langtype.Struct {
	fields := langtype.NewFields()
	for _, name := range a.Fields.Names() {
		t, _ := a.Fields.Get(name)
		if bt, ok := b.Fields.Get(name); ok {
			t = commonTargetType([]langtype.Type{t, bt})
		}
		fields.Add(name, t)
	}
	for _, name := range b.Fields.Names() {
		if _, ok := a.Fields.Get(name); !ok {
			t, _ := b.Fields.Get(name)
			fields.Add(name, t)
		}
	}
	name := a.Name
	if name == "" {
		name = b.Name
	}
	return &langtype.Struct{Fields: fields, Name: name}
}
