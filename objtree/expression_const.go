package objtree

// IsConstant is true if the value of e cannot change at run time.
func IsConstant(e Expression) bool {
	switch x := e.(type) {
	case nil, *Invalid:
		return true
	case *Uncompiled:
		return false
	case *TwoWayBinding:
		return x.Ref.IsConstant() && (x.Init == nil || IsConstant(x.Init))
	case *StringLiteral, *NumberLiteral, *BoolLiteral:
		return true
	case *CallbackReference:
		return false
	case *PropertyReference:
		return x.Ref.IsConstant()
	case *BuiltinFunctionReference:
		return x.Function.IsPure()
	case *MemberFunction:
		return false
	case *BuiltinMacroReference:
		return true
	case *ElementReference, *RepeaterIndexReference, *RepeaterModelReference,
		*FunctionParameterReference:
		return false
	case *StructFieldAccess:
		return IsConstant(x.Base)
	case *Cast:
		return IsConstant(x.From)
	case *CodeBlock:
		return len(x.Statements) == 1 && IsConstant(x.Statements[0])
	case *FunctionCall:
		return IsConstant(x.Function) && allConstant(x.Arguments)
	case *SelfAssignment, *StoreLocalVariable, *ReadLocalVariable:
		return false
	case *BinaryExpr:
		return IsConstant(x.LHS) && IsConstant(x.RHS)
	case *UnaryOp:
		return IsConstant(x.Sub)
	case *ImageReference:
		return true
	case *Condition:
		return IsConstant(x.Cond) && IsConstant(x.True) && IsConstant(x.False)
	case *ArrayExpr:
		return allConstant(x.Values)
	case *StructExpr:
		for _, v := range x.Values {
			if !IsConstant(v) {
				return false
			}
		}
		return true
	case *PathElements:
		for _, pe := range x.Elements {
			for _, b := range pe.Bindings {
				if !IsConstant(b.Expression) {
					return false
				}
			}
		}
		return true
	case *EasingCurve:
		return true
	case *LinearGradient:
		if !IsConstant(x.Angle) {
			return false
		}
		for _, s := range x.Stops {
			if !IsConstant(s.Color) || !IsConstant(s.Position) {
				return false
			}
		}
		return true
	case *EnumerationValue:
		return true
	case *ReturnStatement:
		return x.Value == nil || IsConstant(x.Value)
	case *LayoutCacheAccess, *ComputeLayoutInfo, *SolveLayout:
		return false
	}
	panic("objtree: unknown expression variant")
}

func allConstant(exprs []Expression) bool {
	for _, e := range exprs {
		if !IsConstant(e) {
			return false
		}
	}
	return true
}
