package objtree

/*
License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>

*/

import (
	"fmt"
	"io"
	"strconv"
	"strings"
)

// PrettyPrint returns a readable rendering of an expression, for dumps and
// tests. It is not meant to be parsed again.
func PrettyPrint(e Expression) string {
	var b strings.Builder
	prettyPrint(&b, e)
	return b.String()
}

func formatNumber(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func prettyPrint(b *strings.Builder, e Expression) {
	switch x := e.(type) {
	case nil:
		b.WriteString("<none>")
	case *Invalid:
		b.WriteString("<invalid>")
	case *Uncompiled:
		b.WriteString(x.Node.Text())
	case *TwoWayBinding:
		b.WriteString("<=>")
		b.WriteString(x.Ref.String())
		if x.Init != nil {
			b.WriteByte(':')
			prettyPrint(b, x.Init)
		}
	case *StringLiteral:
		b.WriteString(strconv.Quote(x.Value))
	case *NumberLiteral:
		b.WriteString(formatNumber(x.Value))
		b.WriteString(x.Unit.String())
	case *BoolLiteral:
		b.WriteString(strconv.FormatBool(x.Value))
	case *CallbackReference:
		b.WriteString(x.Ref.String())
	case *PropertyReference:
		b.WriteString(x.Ref.String())
	case *BuiltinFunctionReference:
		b.WriteString(x.Function.String())
	case *MemberFunction:
		prettyPrint(b, x.Base)
		b.WriteByte('.')
		prettyPrint(b, x.Member)
	case *BuiltinMacroReference:
		b.WriteString(x.Macro.String())
	case *ElementReference:
		b.WriteString(elementRefString(upgrade(x.Element)))
	case *RepeaterIndexReference:
		b.WriteString(elementRefString(upgrade(x.Element)))
	case *RepeaterModelReference:
		b.WriteString(elementRefString(upgrade(x.Element)))
		b.WriteString(".@model")
	case *FunctionParameterReference:
		fmt.Fprintf(b, "_arg_%d", x.Index)
	case *StoreLocalVariable:
		b.WriteString(x.Name)
		b.WriteString(" = ")
		prettyPrint(b, x.Value)
	case *ReadLocalVariable:
		b.WriteString(x.Name)
	case *StructFieldAccess:
		prettyPrint(b, x.Base)
		b.WriteByte('.')
		b.WriteString(x.Name)
	case *Cast:
		b.WriteByte('(')
		prettyPrint(b, x.From)
		fmt.Fprintf(b, "/* as %s */)", x.To)
	case *CodeBlock:
		b.WriteString("{ ")
		for _, s := range x.Statements {
			prettyPrint(b, s)
			b.WriteString("; ")
		}
		b.WriteByte('}')
	case *FunctionCall:
		prettyPrint(b, x.Function)
		b.WriteByte('(')
		for _, a := range x.Arguments {
			prettyPrint(b, a)
			b.WriteString(", ")
		}
		b.WriteByte(')')
	case *SelfAssignment:
		prettyPrint(b, x.LHS)
		if x.Op == '=' {
			b.WriteString("  = ")
		} else {
			fmt.Fprintf(b, " %c= ", x.Op)
		}
		prettyPrint(b, x.RHS)
	case *BinaryExpr:
		b.WriteByte('(')
		prettyPrint(b, x.LHS)
		switch x.Op {
		case '=':
			b.WriteString(" == ")
		case '!':
			b.WriteString(" != ")
		default:
			fmt.Fprintf(b, " %c ", x.Op)
		}
		prettyPrint(b, x.RHS)
		b.WriteByte(')')
	case *UnaryOp:
		b.WriteRune(x.Op)
		prettyPrint(b, x.Sub)
	case *ImageReference:
		switch x.Kind {
		case ImageNone:
			b.WriteString("None")
		case ImageAbsolutePath:
			fmt.Fprintf(b, "AbsolutePath(%q)", x.Path)
		case ImageEmbeddedData:
			fmt.Fprintf(b, "EmbeddedData(%d)", x.ResourceID)
		}
	case *Condition:
		b.WriteString("if (")
		prettyPrint(b, x.Cond)
		b.WriteString(") { ")
		prettyPrint(b, x.True)
		b.WriteString(" } else { ")
		prettyPrint(b, x.False)
		b.WriteString(" }")
	case *ArrayExpr:
		b.WriteByte('[')
		for _, v := range x.Values {
			prettyPrint(b, v)
			b.WriteString(", ")
		}
		b.WriteByte(']')
	case *StructExpr:
		b.WriteString("{ ")
		for _, k := range sortedKeys(x.Values) {
			b.WriteString(k)
			b.WriteString(": ")
			prettyPrint(b, x.Values[k])
			b.WriteString(", ")
		}
		b.WriteString(" }")
	case *PathElements:
		b.WriteString("Elements([")
		for i, pe := range x.Elements {
			if i > 0 {
				b.WriteString(", ")
			}
			b.WriteString(pe.ElementType.Name)
		}
		b.WriteString("])")
	case *EasingCurve:
		if x.Kind == EaseCubicBezier {
			p := x.Points
			fmt.Fprintf(b, "CubicBezier(%s, %s, %s, %s)", formatNumber(float64(p[0])),
				formatNumber(float64(p[1])), formatNumber(float64(p[2])), formatNumber(float64(p[3])))
		} else {
			b.WriteString("Linear")
		}
	case *LinearGradient:
		b.WriteString("@linear-gradient(")
		prettyPrint(b, x.Angle)
		for _, s := range x.Stops {
			b.WriteString(", ")
			prettyPrint(b, s.Color)
			b.WriteString("  ")
			prettyPrint(b, s.Position)
		}
		b.WriteByte(')')
	case *EnumerationValue:
		if x.Value.Enumeration != nil {
			b.WriteString(x.Value.Enumeration.Name)
		}
		b.WriteByte('.')
		b.WriteString(x.Value.String())
	case *ReturnStatement:
		b.WriteString("return")
		if x.Value != nil {
			b.WriteByte(' ')
			prettyPrint(b, x.Value)
		}
	case *LayoutCacheAccess:
		fmt.Fprintf(b, "%s[%d]", x.LayoutCacheProp, x.Index)
		if x.RepeaterIndex != nil {
			b.WriteString(" + $index")
		}
	case *ComputeLayoutInfo:
		b.WriteString("layout_info(..)")
	case *SolveLayout:
		b.WriteString("solve_layout(..)")
	default:
		panic("objtree: unknown expression variant")
	}
}

// --- Elements --------------------------------------------------------------

// PrettyPrintElement writes a readable rendering of an element tree to w.
// Indentation is three blanks per level.
func PrettyPrintElement(w io.Writer, e *Element) error {
	var b strings.Builder
	prettyPrintElement(&b, e, 0)
	_, err := io.WriteString(w, b.String())
	return err
}

func indent(b *strings.Builder, level int) {
	b.WriteString(strings.Repeat("   ", level))
}

func prettyPrintElement(b *strings.Builder, e *Element, level int) {
	if r := e.Repeated; r != nil {
		indent(b, level)
		if r.IsConditionalElement {
			b.WriteString("if ")
		} else {
			fmt.Fprintf(b, "for %s[%s] in ", r.ModelDataID, r.IndexID)
		}
		prettyPrint(b, r.Model)
		b.WriteString(":\n")
	}
	indent(b, level)
	fmt.Fprintf(b, "%s := %s {\n", e.ID, e.BaseType())
	for _, name := range e.SortedDeclarationNames() {
		d := e.PropertyDeclarations[name]
		indent(b, level+1)
		if d.IsAlias != nil && !d.IsAlias.IsZero() {
			fmt.Fprintf(b, "alias<%s> %s <=> %s;\n", d.PropertyType, name, d.IsAlias)
		} else {
			fmt.Fprintf(b, "property<%s> %s;\n", d.PropertyType, name)
		}
	}
	for _, name := range e.SortedBindingNames() {
		indent(b, level+1)
		fmt.Fprintf(b, "%s: ", name)
		prettyPrint(b, e.Bindings[name].Expression)
		b.WriteString(";\n")
	}
	for _, name := range sortedKeys(e.PropertyAnimations) {
		indent(b, level+1)
		fmt.Fprintf(b, "animate %s ", name)
		switch a := e.PropertyAnimations[name].(type) {
		case *StaticAnimation:
			b.WriteString("{\n")
			prettyPrintAnimationBindings(b, a.Animation, level+2)
		case *TransitionAnimations:
			b.WriteString("[")
			prettyPrint(b, a.StateRef)
			b.WriteString("] {\n")
			for _, ta := range a.Animations {
				if ta.Animation != nil {
					prettyPrintAnimationBindings(b, ta.Animation, level+2)
				}
			}
		}
		indent(b, level+1)
		b.WriteString("}\n")
	}
	if len(e.States) > 0 {
		indent(b, level+1)
		b.WriteString("states {\n")
		for _, s := range e.States {
			indent(b, level+2)
			b.WriteString(s.ID)
			if s.Condition != nil {
				b.WriteString(" when ")
				prettyPrint(b, s.Condition)
			}
			b.WriteString(" {\n")
			for _, c := range s.PropertyChanges {
				indent(b, level+3)
				fmt.Fprintf(b, "%s: ", c.Ref)
				prettyPrint(b, c.Expression)
				b.WriteString(";\n")
			}
			indent(b, level+2)
			b.WriteString("}\n")
		}
		indent(b, level+1)
		b.WriteString("}\n")
	}
	if len(e.Transitions) > 0 {
		indent(b, level+1)
		b.WriteString("transitions {\n")
		for _, t := range e.Transitions {
			indent(b, level+2)
			dir := "in"
			if t.IsOut {
				dir = "out"
			}
			fmt.Fprintf(b, "%s %s: {\n", dir, t.StateID)
			for _, a := range t.PropertyAnimations {
				indent(b, level+3)
				fmt.Fprintf(b, "animate %s {\n", a.Ref)
				prettyPrintAnimationBindings(b, a.Animation, level+4)
				indent(b, level+3)
				b.WriteString("}\n")
			}
			indent(b, level+2)
			b.WriteString("}\n")
		}
		indent(b, level+1)
		b.WriteString("}\n")
	}
	for _, ch := range e.Children {
		prettyPrintElement(b, ch, level+1)
	}
	indent(b, level)
	b.WriteString("}\n")
}

func prettyPrintAnimationBindings(b *strings.Builder, anim *Element, level int) {
	for _, name := range anim.SortedBindingNames() {
		indent(b, level)
		fmt.Fprintf(b, "%s: ", name)
		prettyPrint(b, anim.Bindings[name].Expression)
		b.WriteString(";\n")
	}
}
