package objtree

// Visit calls vis for each direct sub-expression of e, in source order.
// Optional sub-expressions which are absent are skipped.
func Visit(e Expression, vis func(Expression)) {
	VisitMut(e, func(sub *Expression) {
		vis(*sub)
	})
}

// VisitMut calls vis with a pointer to each direct sub-expression of e,
// allowing vis to replace it.
func VisitMut(e Expression, vis func(*Expression)) {
	opt := func(sub *Expression) {
		if *sub != nil {
			vis(sub)
		}
	}
	switch x := e.(type) {
	case *TwoWayBinding:
		opt(&x.Init)
	case *MemberFunction:
		vis(&x.Base)
		vis(&x.Member)
	case *StructFieldAccess:
		vis(&x.Base)
	case *Cast:
		vis(&x.From)
	case *CodeBlock:
		for i := range x.Statements {
			vis(&x.Statements[i])
		}
	case *FunctionCall:
		vis(&x.Function)
		for i := range x.Arguments {
			vis(&x.Arguments[i])
		}
	case *SelfAssignment:
		vis(&x.LHS)
		vis(&x.RHS)
	case *Condition:
		vis(&x.Cond)
		vis(&x.True)
		vis(&x.False)
	case *BinaryExpr:
		vis(&x.LHS)
		vis(&x.RHS)
	case *UnaryOp:
		vis(&x.Sub)
	case *ArrayExpr:
		for i := range x.Values {
			vis(&x.Values[i])
		}
	case *StructExpr:
		for _, k := range sortedKeys(x.Values) {
			v := x.Values[k]
			vis(&v)
			x.Values[k] = v
		}
	case *PathElements:
		for _, pe := range x.Elements {
			for _, k := range sortedKeys(pe.Bindings) {
				vis(&pe.Bindings[k].Expression)
			}
		}
	case *StoreLocalVariable:
		vis(&x.Value)
	case *LinearGradient:
		vis(&x.Angle)
		for i := range x.Stops {
			vis(&x.Stops[i].Color)
			vis(&x.Stops[i].Position)
		}
	case *ReturnStatement:
		opt(&x.Value)
	case *LayoutCacheAccess:
		opt(&x.RepeaterIndex)
	}
}

// VisitRecursive calls vis for e and every expression below it, depth first,
// before visiting the children.
func VisitRecursive(e Expression, vis func(Expression)) {
	vis(e)
	Visit(e, func(sub Expression) {
		VisitRecursive(sub, vis)
	})
}

// VisitRecursiveMut calls vis for every expression below and including the one
// at *e, children first. vis may replace the expression it is handed.
func VisitRecursiveMut(e *Expression, vis func(*Expression)) {
	VisitMut(*e, func(sub *Expression) {
		VisitRecursiveMut(sub, vis)
	})
	vis(e)
}
