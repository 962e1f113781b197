package objtree

/*
License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>

*/

import (
	"weak"

	"github.com/npillmayer/uic/diagnostics"
	"github.com/npillmayer/uic/langtype"
	"github.com/npillmayer/uic/syntax"
)

// Expression is the type of the nodes of an expression tree. The set of
// variants is closed; every variant is a pointer type of this package.
//
// Operations on expressions are free functions which switch on the variant:
// TypeOf, IsConstant, Visit, VisitMut and PrettyPrint.
type Expression interface {
	isExpression()
}

/*
type Expression
	= Invalid
	| Uncompiled node
	| TwoWayBinding ref init?
	| StringLiteral | NumberLiteral | BoolLiteral
	| CallbackReference | PropertyReference
	| BuiltinFunctionReference | MemberFunction | BuiltinMacroReference
	| ElementReference | RepeaterIndexReference | RepeaterModelReference
	| FunctionParameterReference
	| StoreLocalVariable | ReadLocalVariable
	| StructFieldAccess | Cast | CodeBlock | FunctionCall | SelfAssignment
	| BinaryExpr | UnaryOp
	| ImageReference | Condition | ArrayExpr | StructExpr | PathElements
	| EasingCurve | LinearGradient | EnumerationValue | ReturnStatement
	| LayoutCacheAccess | ComputeLayoutInfo | SolveLayout
*/

// Invalid is the placeholder for expressions with errors. A diagnostic has
// been reported for it.
type Invalid struct{}

// Uncompiled holds the syntax node of a binding not yet compiled.
type Uncompiled struct {
	Node *syntax.Node
}

// TwoWayBinding links a property to another one. Init is an optional initial
// value and may be nil.
type TwoWayBinding struct {
	Ref  NamedReference
	Init Expression
}

// StringLiteral is a string constant.
type StringLiteral struct {
	Value string
}

// NumberLiteral is a numeric constant with the unit it was written in.
type NumberLiteral struct {
	Value float64
	Unit  langtype.Unit
}

// BoolLiteral is a boolean constant.
type BoolLiteral struct {
	Value bool
}

// CallbackReference references a callback, e.g. as the function of a call.
type CallbackReference struct {
	Ref NamedReference
}

// PropertyReference references a property.
type PropertyReference struct {
	Ref NamedReference
}

// BuiltinFunctionReference references a function of the runtime.
type BuiltinFunctionReference struct {
	Function BuiltinFunction
	Location diagnostics.SourceLocation
}

// MemberFunction is a function bound to a base expression, e.g.
// `text.to_float`. It only appears as the function of a FunctionCall.
type MemberFunction struct {
	Base     Expression
	BaseNode *syntax.Node
	Member   Expression
}

// BuiltinMacroReference references a macro, which is expanded when called.
type BuiltinMacroReference struct {
	Macro BuiltinMacroFunction
	Node  *syntax.Node
}

// ElementReference references an element as a value.
type ElementReference struct {
	Element weak.Pointer[Element]
}

// RepeaterIndexReference is the index of a repeated element's current
// instance.
type RepeaterIndexReference struct {
	Element weak.Pointer[Element]
}

// RepeaterModelReference is the model data of a repeated element's current
// instance.
type RepeaterModelReference struct {
	Element weak.Pointer[Element]
}

// FunctionParameterReference references an argument of the callback being
// compiled.
type FunctionParameterReference struct {
	Index int
	Ty    langtype.Type
}

// StoreLocalVariable assigns a value to a local variable.
type StoreLocalVariable struct {
	Name  string
	Value Expression
}

// ReadLocalVariable reads a local variable of type Ty.
type ReadLocalVariable struct {
	Name string
	Ty   langtype.Type
}

// StructFieldAccess selects a field of a struct value.
type StructFieldAccess struct {
	Base Expression
	Name string
}

// Cast converts a value to another type.
type Cast struct {
	From Expression
	To   langtype.Type
}

// CodeBlock is a sequence of statements. Its value is the value of the last
// statement.
type CodeBlock struct {
	Statements []Expression
}

// FunctionCall calls a builtin function, a callback or a member function.
type FunctionCall struct {
	Function  Expression
	Arguments []Expression
	Location  diagnostics.SourceLocation
}

// SelfAssignment is `lhs op= rhs`, or a plain assignment for op '='.
type SelfAssignment struct {
	LHS Expression
	RHS Expression
	Op  rune // one of + - * / =
}

// BinaryExpr is `lhs op rhs`. Op is one of + - * / & | < > ≤ ≥, or '=' for
// equality and '!' for inequality.
type BinaryExpr struct {
	LHS Expression
	RHS Expression
	Op  rune
}

// UnaryOp is `op sub`, with op one of + - !.
type UnaryOp struct {
	Sub Expression
	Op  rune
}

// ImageRefKind discriminates image references.
type ImageRefKind uint8

// Kinds of image references
const (
	ImageNone ImageRefKind = iota
	ImageAbsolutePath
	ImageEmbeddedData
)

// ImageReference references an image, either by path or as an embedded
// resource.
type ImageReference struct {
	Kind       ImageRefKind
	Path       string // for ImageAbsolutePath
	ResourceID int    // for ImageEmbeddedData
}

// Condition is `cond ? t : f`.
type Condition struct {
	Cond  Expression
	True  Expression
	False Expression
}

// ArrayExpr is an array value with elements of type ElemTy.
type ArrayExpr struct {
	ElemTy langtype.Type
	Values []Expression
}

// StructExpr is a struct value of type Ty.
type StructExpr struct {
	Ty     langtype.Type
	Values map[string]Expression
}

// PathElement is one element of a path, e.g. LineTo, with its bindings.
type PathElement struct {
	ElementType *langtype.BuiltinElement
	Bindings    map[string]*BindingExpression
}

// PathElements is the list of elements of a Path.
type PathElements struct {
	Elements []PathElement
}

// EasingKind discriminates easing curves.
type EasingKind uint8

// Kinds of easing curves
const (
	EaseLinear EasingKind = iota
	EaseCubicBezier
)

// EasingCurve is an easing curve. Points holds the control points of a cubic
// Bézier curve.
type EasingCurve struct {
	Kind   EasingKind
	Points [4]float32
}

// GradientStop is a color with a position.
type GradientStop struct {
	Color    Expression
	Position Expression
}

// LinearGradient is a gradient brush.
type LinearGradient struct {
	Angle Expression
	Stops []GradientStop
}

// EnumerationValue is a constant value of an enumeration.
type EnumerationValue struct {
	Value langtype.EnumerationValue
}

// ReturnStatement returns from a code block. Value may be nil.
type ReturnStatement struct {
	Value Expression
}

// LayoutCacheAccess reads a value from a layout cache property.
// RepeaterIndex may be nil.
type LayoutCacheAccess struct {
	LayoutCacheProp NamedReference
	Index           int
	RepeaterIndex   Expression
}

// ComputeLayoutInfo computes the layout info of a layout.
type ComputeLayoutInfo struct {
	Layout      Layout
	Orientation Orientation
}

// SolveLayout solves a layout into a layout cache.
type SolveLayout struct {
	Layout      Layout
	Orientation Orientation
}

func (*Invalid) isExpression()                    {}
func (*Uncompiled) isExpression()                 {}
func (*TwoWayBinding) isExpression()              {}
func (*StringLiteral) isExpression()              {}
func (*NumberLiteral) isExpression()              {}
func (*BoolLiteral) isExpression()                {}
func (*CallbackReference) isExpression()          {}
func (*PropertyReference) isExpression()          {}
func (*BuiltinFunctionReference) isExpression()   {}
func (*MemberFunction) isExpression()             {}
func (*BuiltinMacroReference) isExpression()      {}
func (*ElementReference) isExpression()           {}
func (*RepeaterIndexReference) isExpression()     {}
func (*RepeaterModelReference) isExpression()     {}
func (*FunctionParameterReference) isExpression() {}
func (*StoreLocalVariable) isExpression()         {}
func (*ReadLocalVariable) isExpression()          {}
func (*StructFieldAccess) isExpression()          {}
func (*Cast) isExpression()                       {}
func (*CodeBlock) isExpression()                  {}
func (*FunctionCall) isExpression()               {}
func (*SelfAssignment) isExpression()             {}
func (*BinaryExpr) isExpression()                 {}
func (*UnaryOp) isExpression()                    {}
func (*ImageReference) isExpression()             {}
func (*Condition) isExpression()                  {}
func (*ArrayExpr) isExpression()                  {}
func (*StructExpr) isExpression()                 {}
func (*PathElements) isExpression()               {}
func (*EasingCurve) isExpression()                {}
func (*LinearGradient) isExpression()             {}
func (*EnumerationValue) isExpression()           {}
func (*ReturnStatement) isExpression()            {}
func (*LayoutCacheAccess) isExpression()          {}
func (*ComputeLayoutInfo) isExpression()          {}
func (*SolveLayout) isExpression()                {}

// IsInvalid is true for nil and for the Invalid placeholder.
func IsInvalid(e Expression) bool {
	if e == nil {
		return true
	}
	_, ok := e.(*Invalid)
	return ok
}

// Number is a shortcut for a number literal.
func Number(v float64, u langtype.Unit) *NumberLiteral {
	return &NumberLiteral{Value: v, Unit: u}
}

// NewElementReference creates a reference to an element.
func NewElementReference(e *Element) *ElementReference {
	return &ElementReference{Element: weak.Make(e)}
}

// upgrade returns the element a weak pointer points to, or nil.
func upgrade(p weak.Pointer[Element]) *Element {
	return p.Value()
}

// --- Operators -------------------------------------------------------------

// OperatorClass groups binary operators.
type OperatorClass uint8

// Classes of operators
const (
	ComparisonOp OperatorClass = iota
	LogicalOp
	ArithmeticOp
)

// OperatorClassOf classifies a binary operator. It panics for unknown
// operators.
func OperatorClassOf(op rune) OperatorClass {
	switch op {
	case '=', '!', '<', '>', '≤', '≥':
		return ComparisonOp
	case '&', '|':
		return LogicalOp
	case '+', '-', '/', '*':
		return ArithmeticOp
	}
	panic("objtree: invalid operator " + string(op))
}
