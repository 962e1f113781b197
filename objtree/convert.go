package objtree

/*
License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>

*/

import (
	"fmt"

	"github.com/npillmayer/uic/diagnostics"
	"github.com/npillmayer/uic/langtype"
)

// MaybeConvertTo converts e to type target, inserting casts and arithmetic
// as needed. If the conversion is not possible, an error is reported at node
// and e is returned unchanged.
//
// The result is never Invalid because of the conversion itself.
func MaybeConvertTo(e Expression, target langtype.Type, node diagnostics.Spanned,
	diag *diagnostics.BuildDiagnostics) Expression {
	//
	ty := TypeOf(e)
	if ty.Equal(target) || target == langtype.Void || target == langtype.Invalid || ty == langtype.Invalid {
		return e
	}
	if langtype.CanConvert(ty, target) {
		return convertible(e, ty, target, node, diag)
	}
	if fromArr, ok := ty.(langtype.Array); ok {
		if toArr, ok := target.(langtype.Array); ok {
			if arr, ok := e.(*ArrayExpr); ok &&
				(langtype.CanConvert(fromArr.Elem, toArr.Elem) || fromArr.Elem == langtype.Invalid) {
				values := make([]Expression, len(arr.Values))
				for i, v := range arr.Values {
					values[i] = MaybeConvertTo(v, toArr.Elem, node, diag)
				}
				return &ArrayExpr{ElemTy: toArr.Elem, Values: values}
			}
		}
	}
	msg := fmt.Sprintf("Cannot convert %s to %s", ty, target)
	if fromUnit, ok := langtype.DefaultUnit(ty); ok &&
		(target == langtype.Int32 || target == langtype.Float32 || target == langtype.String) {
		msg += fmt.Sprintf(". Divide by 1%s to convert to a plain number.", fromUnit)
	} else if toUnit, ok := langtype.DefaultUnit(target); ok && (ty == langtype.Int32 || ty == langtype.Float32) {
		if n, ok := e.(*NumberLiteral); ok && n.Value == 0 && n.Unit == langtype.UnitNone {
			return Number(0, toUnit)
		}
		msg += fmt.Sprintf(". Use an unit, or multiply by 1%s to convert explicitly.", toUnit)
	}
	diag.PushError(msg, node)
	return e
}

func convertible(e Expression, ty, target langtype.Type, node diagnostics.Spanned,
	diag *diagnostics.BuildDiagnostics) Expression {
	//
	if ty == langtype.Percent && target == langtype.Float32 {
		return &BinaryExpr{LHS: &Cast{From: e, To: langtype.Float32}, RHS: Number(0.01, langtype.UnitNone), Op: '*'}
	}
	if from, ok := ty.(*langtype.Struct); ok {
		switch to := target.(type) {
		case *langtype.Struct:
			if !from.Fields.Equal(to.Fields) {
				return convertStruct(e, from, to, node, diag)
			}
		case langtype.Component:
			if c, ok := to.Ref.(*Component); ok {
				if fields := rootDeclarationFields(c); !from.Fields.Equal(fields) {
					e = convertStruct(e, from, &langtype.Struct{Fields: fields}, node, diag)
				}
			}
		}
	}
	result := e
	if fromU, ok := langtype.AsUnitProduct(ty); ok {
		if toU, ok := langtype.AsUnitProduct(target); ok {
			if power, ok := langtype.UnitProductLengthConversion(fromU, toU); ok {
				op := '/'
				if power < 0 {
					op, power = '*', -power
				}
				for i := 0; i < power; i++ {
					result = &BinaryExpr{
						LHS: result,
						RHS: &FunctionCall{Function: &BuiltinFunctionReference{Function: FnGetWindowScaleFactor}},
						Op:  op,
					}
				}
			}
		}
	}
	return &Cast{From: result, To: target}
}

// rootDeclarationFields returns all properties declared on the root element
// of c as struct fields.
func rootDeclarationFields(c *Component) *langtype.Fields {
	f := langtype.NewFields()
	if c.RootElement == nil {
		return f
	}
	for _, n := range c.RootElement.SortedDeclarationNames() {
		f.Add(n, c.RootElement.PropertyDeclarations[n].PropertyType)
	}
	return f
}

// convertStruct rebuilds a struct value field by field for target type to.
// Fields missing in the source get default values. Non-literal sources are
// stored in a local variable first, to evaluate them once.
func convertStruct(e Expression, from, to *langtype.Struct, node diagnostics.Spanned,
	diag *diagnostics.BuildDiagnostics) Expression {
	//
	if lit, ok := e.(*StructExpr); ok {
		values := make(map[string]Expression, to.Fields.Len())
		for _, name := range to.Fields.Names() {
			ft, _ := to.Fields.Get(name)
			if v, ok := lit.Values[name]; ok {
				values[name] = MaybeConvertTo(v, ft, node, diag)
			} else {
				values[name] = DefaultValueForType(ft)
			}
		}
		return &StructExpr{Ty: to, Values: values}
	}
	const tmp = "tmpobj"
	values := make(map[string]Expression, to.Fields.Len())
	for _, name := range to.Fields.Names() {
		ft, _ := to.Fields.Get(name)
		if _, ok := from.Fields.Get(name); ok {
			access := &StructFieldAccess{Base: &ReadLocalVariable{Name: tmp, Ty: from}, Name: name}
			values[name] = MaybeConvertTo(access, ft, node, diag)
		} else {
			values[name] = DefaultValueForType(ft)
		}
	}
	return &CodeBlock{Statements: []Expression{
		&StoreLocalVariable{Name: tmp, Value: e},
		&StructExpr{Ty: to, Values: values},
	}}
}

// DefaultValueForType returns the value a property of type t has when it is
// not bound. Types without values (components, callbacks, …) yield Invalid.
func DefaultValueForType(t langtype.Type) Expression {
	switch x := t.(type) {
	case langtype.Primitive:
		switch x {
		case langtype.Float32, langtype.Int32:
			return Number(0, langtype.UnitNone)
		case langtype.String:
			return &StringLiteral{}
		case langtype.Color:
			return &Cast{From: Number(0, langtype.UnitNone), To: langtype.Color}
		case langtype.Brush:
			return &Cast{From: DefaultValueForType(langtype.Color), To: langtype.Brush}
		case langtype.Duration:
			return Number(0, langtype.UnitMs)
		case langtype.Angle:
			return Number(0, langtype.UnitDeg)
		case langtype.PhysicalLength:
			return Number(0, langtype.UnitPhx)
		case langtype.LogicalLength:
			return Number(0, langtype.UnitPx)
		case langtype.Percent:
			return Number(100, langtype.UnitPercent)
		case langtype.Image:
			return &ImageReference{Kind: ImageAbsolutePath}
		case langtype.Bool:
			return &BoolLiteral{}
		case langtype.PathElements:
			return &PathElements{}
		case langtype.Easing:
			return &EasingCurve{Kind: EaseLinear}
		}
		return &Invalid{}
	case langtype.Array:
		return &ArrayExpr{ElemTy: x.Elem}
	case *langtype.Struct:
		values := make(map[string]Expression, x.Fields.Len())
		for _, name := range x.Fields.Names() {
			ft, _ := x.Fields.Get(name)
			values[name] = DefaultValueForType(ft)
		}
		return &StructExpr{Ty: x, Values: values}
	case *langtype.Enumeration:
		return &EnumerationValue{Value: x.Default()}
	case langtype.UnitProduct:
		return &Cast{From: Number(0, langtype.UnitNone), To: x}
	}
	return &Invalid{}
}

// TrySetRW marks the property e refers to as set by code. It returns false
// if e is not an assignable expression.
func TrySetRW(e Expression) bool {
	switch x := e.(type) {
	case *PropertyReference:
		x.Ref.Element().Analysis(x.Ref.Name()).IsSet = true
		return true
	case *StructFieldAccess:
		return TrySetRW(x.Base)
	case *RepeaterModelReference:
		return true
	}
	return false
}
