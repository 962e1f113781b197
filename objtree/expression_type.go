package objtree

import (
	"github.com/npillmayer/uic/langtype"
)

// TypeOf returns the type of an expression. Typing is pure: it reads the
// graph but never changes it. A nil expression is Invalid.
func TypeOf(e Expression) langtype.Type {
	switch x := e.(type) {
	case nil, *Invalid, *Uncompiled:
		return langtype.Invalid
	case *TwoWayBinding:
		return x.Ref.Ty()
	case *StringLiteral:
		return langtype.String
	case *NumberLiteral:
		return x.Unit.Ty()
	case *BoolLiteral:
		return langtype.Bool
	case *CallbackReference:
		return x.Ref.Ty()
	case *PropertyReference:
		return x.Ref.Ty()
	case *BuiltinFunctionReference:
		return x.Function.Ty()
	case *MemberFunction:
		return TypeOf(x.Member)
	case *BuiltinMacroReference:
		return langtype.Invalid
	case *ElementReference:
		return langtype.ElementReference
	case *RepeaterIndexReference:
		return langtype.Int32
	case *RepeaterModelReference:
		return repeaterModelType(upgrade(x.Element))
	case *FunctionParameterReference:
		return x.Ty
	case *StoreLocalVariable:
		return langtype.Void
	case *ReadLocalVariable:
		return x.Ty
	case *StructFieldAccess:
		switch bt := TypeOf(x.Base).(type) {
		case *langtype.Struct:
			if t, ok := bt.Fields.Get(x.Name); ok {
				return t
			}
			return langtype.Invalid
		case langtype.Component:
			if bt.Ref != nil {
				return bt.Ref.LookupRootProperty(x.Name).PropertyType
			}
		}
		return langtype.Invalid
	case *Cast:
		return x.To
	case *CodeBlock:
		if len(x.Statements) == 0 {
			return langtype.Void
		}
		return TypeOf(x.Statements[len(x.Statements)-1])
	case *FunctionCall:
		switch ft := TypeOf(x.Function).(type) {
		case *langtype.Function:
			return ft.Return
		case *langtype.Callback:
			if ft.Return == nil {
				return langtype.Void
			}
			return ft.Return
		}
		return langtype.Invalid
	case *SelfAssignment:
		return langtype.Void
	case *BinaryExpr:
		return binaryType(x)
	case *UnaryOp:
		return TypeOf(x.Sub)
	case *ImageReference:
		return langtype.Image
	case *Condition:
		t, f := TypeOf(x.True), TypeOf(x.False)
		if t.Equal(f) {
			return t
		}
		return langtype.Invalid
	case *ArrayExpr:
		return langtype.Array{Elem: x.ElemTy}
	case *StructExpr:
		return x.Ty
	case *PathElements:
		return langtype.PathElements
	case *EasingCurve:
		return langtype.Easing
	case *LinearGradient:
		return langtype.Brush
	case *EnumerationValue:
		return x.Value.Enumeration
	case *ReturnStatement:
		return langtype.Invalid
	case *LayoutCacheAccess:
		return langtype.LogicalLength
	case *ComputeLayoutInfo:
		return LayoutInfoType()
	case *SolveLayout:
		return langtype.LayoutCache
	}
	panic("objtree: unknown expression variant")
}

// repeaterModelType is the type of the model data of a repeater. The
// resolving pass wraps models in a Cast to Model; its source type tells the
// data type.
func repeaterModelType(e *Element) langtype.Type {
	if e == nil || e.Repeated == nil {
		return langtype.Invalid
	}
	cast, ok := e.Repeated.Model.(*Cast)
	if !ok {
		return langtype.Invalid
	}
	switch t := TypeOf(cast.From).(type) {
	case langtype.Primitive:
		if t == langtype.Float32 || t == langtype.Int32 {
			return langtype.Int32
		}
	case langtype.Array:
		return t.Elem
	}
	return langtype.Invalid
}

func binaryType(x *BinaryExpr) langtype.Type {
	if OperatorClassOf(x.Op) != ArithmeticOp {
		return langtype.Bool
	}
	lhs, rhs := TypeOf(x.LHS), TypeOf(x.RHS)
	switch x.Op {
	case '+', '-':
		if lhs.Equal(rhs) {
			return lhs
		}
		return langtype.Invalid
	}
	// '*' and '/' combine unit products
	return langtype.TypeForUnitProduct(langtype.CombineUnitProducts(unitVector(lhs), unitVector(rhs), x.Op == '/'))
}

// unitVector returns the unit product of a numeric type, or an empty product
// for anything else.
func unitVector(t langtype.Type) langtype.UnitProduct {
	if u, ok := t.(langtype.UnitProduct); ok {
		return u
	}
	if u, ok := langtype.DefaultUnit(t); ok {
		return langtype.UnitProduct{{Unit: u, Power: 1}}
	}
	return langtype.UnitProduct{}
}
