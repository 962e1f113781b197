package objtree

/*
License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>

*/

import (
	"fmt"
	"strings"

	"github.com/npillmayer/uic/diagnostics"
	"github.com/npillmayer/uic/langtype"
	"github.com/npillmayer/uic/syntax"
)

// PathResolver maps a relative resource path, as written in a source file,
// to an absolute one. It returns false if it does not know the path.
type PathResolver func(from *diagnostics.SourceFile, path string) (string, bool)

// LookupCtx is the context in which expressions are compiled.
//
// ComponentScope lists the elements whose properties are visible by their
// unqualified name: the root of the component, the repeated elements on the
// way down and, last, the element the expression belongs to.
type LookupCtx struct {
	PropertyName   string
	PropertyType   langtype.Type // type the expression will be converted to
	ComponentScope []*Element
	Arguments      []string // names of callback arguments in scope
	TypeRegister   *langtype.TypeRegister
	Diag           *diagnostics.BuildDiagnostics
	ResolvePath    PathResolver // optional
	locals         int          // counter for synthetic local variables
}

// NewLookupCtx creates an empty lookup context.
func NewLookupCtx(tr *langtype.TypeRegister, diag *diagnostics.BuildDiagnostics) *LookupCtx {
	return &LookupCtx{
		PropertyType: langtype.Invalid,
		TypeRegister: tr,
		Diag:         diag,
	}
}

// ReturnType is the type the value of a code block will be converted to: the
// return type for callbacks, the property type otherwise.
func (ctx *LookupCtx) ReturnType() langtype.Type {
	if cb, ok := ctx.PropertyType.(*langtype.Callback); ok {
		if cb.Return == nil {
			return langtype.Void
		}
		return cb.Return
	}
	return ctx.PropertyType
}

func (ctx *LookupCtx) argumentType(i int) langtype.Type {
	if cb, ok := ctx.PropertyType.(*langtype.Callback); ok && i < len(cb.Args) {
		return cb.Args[i]
	}
	return langtype.Invalid
}

func (ctx *LookupCtx) nextLocal() int {
	ctx.locals++
	return ctx.locals
}

func (ctx *LookupCtx) current() *Element {
	if len(ctx.ComponentScope) == 0 {
		return nil
	}
	return ctx.ComponentScope[len(ctx.ComponentScope)-1]
}

// findElementByID looks for an element of a given id within the scope,
// innermost first. Repeated children are not searched.
func (ctx *LookupCtx) findElementByID(id string) *Element {
	for i := len(ctx.ComponentScope) - 1; i >= 0; i-- {
		if e := FindElementByID(ctx.ComponentScope[i], id); e != nil {
			return e
		}
	}
	return nil
}

// --- Qualified names -------------------------------------------------------

// qualifiedName carries the segments of a QualifiedName node along with the
// tokens, which are needed for diagnostics and the original spelling.
type qualifiedName struct {
	node   *syntax.Node
	tokens []*syntax.Node
}

func (q *qualifiedName) empty() bool {
	return len(q.tokens) == 0
}

// next pops the next segment and returns its normalized name and token.
func (q *qualifiedName) next() (string, *syntax.Node) {
	tok := q.tokens[0]
	q.tokens = q.tokens[1:]
	return syntax.NormalizeIdentifier(tok.Text()), tok
}

// FromQualifiedNameNode compiles a QualifiedName node in the context of ctx.
func FromQualifiedNameNode(node *syntax.Node, ctx *LookupCtx) Expression {
	q := &qualifiedName{node: node, tokens: node.ChildNodes(syntax.Identifier)}
	if q.empty() {
		assertThat(ctx.Diag.HasError(), "empty qualified name")
		return &Invalid{}
	}
	first, firstTok := q.next()
	for i, arg := range ctx.Arguments {
		if arg == first {
			return ctx.maybeLookupObject(&FunctionParameterReference{Index: i, Ty: ctx.argumentType(i)}, q)
		}
	}
	var elem *Element
	switch first {
	case "self":
		elem = ctx.current()
	case "parent":
		if elem = FindParentElement(ctx.current()); elem == nil {
			ctx.Diag.PushError("'parent' cannot be used in the root element", firstTok)
			return &Invalid{}
		}
	case "true", "false":
		if q.empty() {
			return &BoolLiteral{Value: first == "true"}
		}
	default:
		if q.empty() {
			if e := ctx.lookupByReturnType(first, node); e != nil {
				return e
			}
		}
		elem = ctx.findElementByID(first)
	}
	if elem != nil {
		return ctx.continueWithinElement(elem, q)
	}
	if e, found := ctx.lookupInScope(first, firstTok, q); found {
		return e
	}
	if e, found := ctx.lookupType(first, q); found {
		return e
	}
	if q.empty() {
		if e := ctx.lookupBuiltin(first, node); e != nil {
			return e
		}
	}
	if strings.ContainsRune(firstTok.Text(), '-') {
		ctx.Diag.PushError(fmt.Sprintf("Unknown unqualified identifier '%s'. Use space before the '-' if you meant a subtraction",
			firstTok.Text()), firstTok)
	} else {
		ctx.Diag.PushError(fmt.Sprintf("Unknown unqualified identifier '%s'", firstTok.Text()), firstTok)
	}
	return &Invalid{}
}

// lookupInScope looks for repeater variables and properties of the elements
// in scope, innermost first.
func (ctx *LookupCtx) lookupInScope(name string, tok *syntax.Node, q *qualifiedName) (Expression, bool) {
	for i := len(ctx.ComponentScope) - 1; i >= 0; i-- {
		elem := ctx.ComponentScope[i]
		if r := elem.Repeated; r != nil {
			if r.IndexID != "" && r.IndexID == name {
				if !q.empty() {
					_, t := q.next()
					ctx.Diag.PushError("Cannot access fields of an index", t)
				}
				return &RepeaterIndexReference{Element: NewElementReference(elem).Element}, true
			}
			if r.ModelDataID != "" && r.ModelDataID == name {
				base := &RepeaterModelReference{Element: NewElementReference(elem).Element}
				return ctx.maybeLookupObject(base, q), true
			}
		}
		if e, found := ctx.propertyOf(elem, name, tok, q); found {
			return e, true
		}
	}
	return nil, false
}

// propertyOf compiles a reference to property name of elem, followed by
// field accesses for the remaining segments of q.
func (ctx *LookupCtx) propertyOf(elem *Element, name string, tok *syntax.Node, q *qualifiedName) (Expression, bool) {
	lr := elem.LookupProperty(name)
	_, declared := elem.PropertyDeclarations[lr.ResolvedName]
	switch lr.PropertyType.(type) {
	case *langtype.Callback:
		return ctx.callbackReference(elem, lr.ResolvedName, q), true
	}
	if lr.PropertyType == langtype.InferredCallback {
		return ctx.callbackReference(elem, lr.ResolvedName, q), true
	}
	if !langtype.IsPropertyType(lr.PropertyType) && !declared {
		return nil, false
	}
	if lr.ResolvedName != name {
		ctx.Diag.PushPropertyDeprecationWarning(name, lr.ResolvedName, tok)
	}
	ref := &PropertyReference{Ref: NewNamedReference(elem, lr.ResolvedName)}
	return ctx.maybeLookupObject(ref, q), true
}

func (ctx *LookupCtx) callbackReference(elem *Element, name string, q *qualifiedName) Expression {
	if !q.empty() {
		_, t := q.next()
		ctx.Diag.PushError("Cannot access fields of callback", t)
	}
	return &CallbackReference{Ref: NewNamedReference(elem, name)}
}

// continueWithinElement compiles `elem.prop...` after the element has been
// found. Without a property the element itself is referenced.
func (ctx *LookupCtx) continueWithinElement(elem *Element, q *qualifiedName) Expression {
	if q.empty() {
		if ctx.PropertyType == langtype.ElementReference {
			return NewElementReference(elem)
		}
		ctx.Diag.PushError("Cannot take reference of an element", q.node)
		return &Invalid{}
	}
	name, tok := q.next()
	if b := elem.BuiltinType(); b != nil && q.empty() {
		switch {
		case name == "focus" && b.AcceptsFocus:
			return &MemberFunction{
				Base:     NewElementReference(elem),
				BaseNode: q.node,
				Member:   &BuiltinFunctionReference{Function: FnSetFocusItem, Location: tok.Location()},
			}
		case name == "show" && b.Name == "PopupWindow":
			return &MemberFunction{
				Base:     NewElementReference(elem),
				BaseNode: q.node,
				Member:   &BuiltinFunctionReference{Function: FnShowPopupWindow, Location: tok.Location()},
			}
		}
	}
	if e, found := ctx.propertyOf(elem, name, tok, q); found {
		return e
	}
	var what string
	switch base := elem.BaseType().(type) {
	case langtype.Component:
		what = fmt.Sprintf("Element '%s'", base.Ref.Name())
	case *langtype.BuiltinElement:
		what = fmt.Sprintf("Element '%s'", base.Name)
	default:
		if base == langtype.Void {
			if c := elem.EnclosingComponent(); c != nil {
				what = fmt.Sprintf("'%s'", c.ID)
			}
		}
	}
	if what == "" {
		assertThat(ctx.Diag.HasError(), "element of unknown type in lookup")
		return &Invalid{}
	}
	extra := ""
	if strings.ContainsRune(tok.Text(), '-') {
		extra = ". Use space before the '-' if you meant a subtraction"
	}
	ctx.Diag.PushError(fmt.Sprintf("%s does not have a property '%s'%s", what, tok.Text(), extra), tok)
	return &Invalid{}
}

// lookupType resolves names of types: enumerations, global components and
// the Colors namespace.
func (ctx *LookupCtx) lookupType(name string, q *qualifiedName) (Expression, bool) {
	if name == "Colors" {
		if q.empty() {
			ctx.Diag.PushError("Cannot take reference to a namespace", q.node)
			return &Invalid{}, true
		}
		cname, tok := q.next()
		c, ok := NamedColor(cname)
		if !ok {
			ctx.Diag.PushError(fmt.Sprintf("'%s' is not a color", tok.Text()), tok)
			return &Invalid{}, true
		}
		return ctx.maybeLookupObject(colorExpression(c), q), true
	}
	switch t := ctx.TypeRegister.Lookup(name).(type) {
	case *langtype.Enumeration:
		if q.empty() {
			ctx.Diag.PushError("Cannot take reference to an enum", q.node)
			return &Invalid{}, true
		}
		vname, tok := q.next()
		v, ok := t.Value(vname)
		if !ok {
			ctx.Diag.PushError(fmt.Sprintf("'%s' is not a member of the enum %s", tok.Text(), t.Name), tok)
			return &Invalid{}, true
		}
		return ctx.maybeLookupObject(&EnumerationValue{Value: v}, q), true
	case langtype.Component:
		if c, ok := t.Ref.(*Component); ok && c.IsGlobal() {
			return ctx.continueWithinElement(c.RootElement, q), true
		}
	}
	return nil, false
}

// lookupByReturnType resolves names which are meaningful because of the
// type an expression is converted to: color names, easing curves and
// enumeration values.
func (ctx *LookupCtx) lookupByReturnType(name string, node *syntax.Node) Expression {
	switch rt := ctx.ReturnType().(type) {
	case *langtype.Enumeration:
		if v, ok := rt.Value(name); ok {
			return &EnumerationValue{Value: v}
		}
	case langtype.Primitive:
		switch rt {
		case langtype.Color, langtype.Brush:
			if c, ok := NamedColor(name); ok {
				return colorExpression(c)
			}
		case langtype.Easing:
			return easingCurve(name, node)
		}
	}
	return nil
}

func easingCurve(name string, node *syntax.Node) Expression {
	bezier := func(a, b, c, d float32) Expression {
		return &EasingCurve{Kind: EaseCubicBezier, Points: [4]float32{a, b, c, d}}
	}
	switch name {
	case "linear":
		return &EasingCurve{Kind: EaseLinear}
	case "ease":
		return bezier(0.25, 0.1, 0.25, 1)
	case "ease_in":
		return bezier(0.42, 0, 1, 1)
	case "ease_in_out":
		return bezier(0.42, 0, 0.58, 1)
	case "ease_out":
		return bezier(0, 0, 0.58, 1)
	case "cubic_bezier":
		return &BuiltinMacroReference{Macro: MacroCubicBezier, Node: node}
	}
	return nil
}

var builtinFunctionNames = map[string]BuiltinFunction{
	"mod":   FnMod,
	"round": FnRound,
	"ceil":  FnCeil,
	"floor": FnFloor,
	"sqrt":  FnSqrt,
	"abs":   FnAbs,
	"sin":   FnSin,
	"cos":   FnCos,
	"tan":   FnTan,
	"asin":  FnASin,
	"acos":  FnACos,
	"atan":  FnATan,
}

var builtinMacroNames = map[string]BuiltinMacroFunction{
	"debug": MacroDebug,
	"min":   MacroMin,
	"max":   MacroMax,
	"rgb":   MacroRgb,
	"rgba":  MacroRgb,
}

func (ctx *LookupCtx) lookupBuiltin(name string, node *syntax.Node) Expression {
	if f, ok := builtinFunctionNames[name]; ok {
		return &BuiltinFunctionReference{Function: f, Location: node.Location()}
	}
	if m, ok := builtinMacroNames[name]; ok {
		return &BuiltinMacroReference{Macro: m, Node: node}
	}
	return nil
}

// --- Member access on values -----------------------------------------------

// maybeLookupObject applies the remaining segments of q as member accesses
// on base.
func (ctx *LookupCtx) maybeLookupObject(base Expression, q *qualifiedName) Expression {
	for !q.empty() {
		name, tok := q.next()
		base = ctx.memberAccess(base, name, tok, q.node)
		if IsInvalid(base) {
			return base
		}
	}
	return base
}

// memberAccess compiles `base.name`.
func (ctx *LookupCtx) memberAccess(base Expression, name string, tok, baseNode *syntax.Node) Expression {
	cannotAccess := func(format string) Expression {
		ctx.Diag.PushError(fmt.Sprintf(format, tok.Text()), tok)
		return &Invalid{}
	}
	member := func(f BuiltinFunction) Expression {
		return &MemberFunction{
			Base:     base,
			BaseNode: baseNode,
			Member:   &BuiltinFunctionReference{Function: f, Location: tok.Location()},
		}
	}
	switch t := TypeOf(base).(type) {
	case *langtype.Struct:
		if _, ok := t.Fields.Get(name); ok {
			return &StructFieldAccess{Base: base, Name: name}
		}
		return cannotAccess("Cannot access the field '%s'")
	case langtype.Component:
		if t.Ref != nil && t.Ref.LookupRootProperty(name).PropertyType != langtype.Invalid {
			return &StructFieldAccess{Base: base, Name: name}
		}
		return cannotAccess("Cannot access the field '%s'")
	case langtype.Primitive:
		switch t {
		case langtype.Invalid:
			return &Invalid{}
		case langtype.String:
			switch name {
			case "is_float":
				return member(FnStringIsFloat)
			case "to_float":
				return member(FnStringToFloat)
			}
		case langtype.Color:
			switch name {
			case "brighter":
				return member(FnColorBrighter)
			case "darker":
				return member(FnColorDarker)
			}
		case langtype.Image:
			switch name {
			case "width", "height":
				size := &FunctionCall{
					Function:  &BuiltinFunctionReference{Function: FnImageSize, Location: tok.Location()},
					Arguments: []Expression{base},
					Location:  tok.Location(),
				}
				return &StructFieldAccess{Base: size, Name: name}
			}
		}
	}
	return cannotAccess("Cannot access id '%s'")
}
