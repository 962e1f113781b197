package passes

import (
	"github.com/npillmayer/uic/diagnostics"
	"github.com/npillmayer/uic/langtype"
	"github.com/npillmayer/uic/objtree"
	"github.com/npillmayer/uic/syntax"
)

// Resolve compiles every Uncompiled expression of the inner components of
// doc. The model of a repeated element is compiled in the scope of the
// enclosing element, everything else sees the element itself.
func Resolve(doc *objtree.Document, diag *diagnostics.BuildDiagnostics, resolvePath objtree.PathResolver) {
	r := resolver{tr: doc.LocalRegistry, diag: diag, resolvePath: resolvePath}
	for _, c := range doc.InnerComponents {
		scope := []*objtree.Element{c.RootElement}
		objtree.RecurseElemNoBorrow(c.RootElement, scope,
			func(e *objtree.Element, scope []*objtree.Element) []*objtree.Element {
				newScope := scope
				if rep := e.Repeated; rep != nil {
					if u, ok := rep.Model.(*objtree.Uncompiled); ok {
						rep.Model = r.compileModel(u.Node, rep, scope)
					}
					newScope = append(append([]*objtree.Element(nil), scope...), e)
				}
				inner := append(append([]*objtree.Element(nil), scope...), e)
				objtree.VisitElementExpressions(e, func(x *objtree.Expression, name string, ty func() langtype.Type) {
					if u, ok := (*x).(*objtree.Uncompiled); ok {
						*x = r.compile(u.Node, name, ty(), inner)
					}
				})
				return newScope
			})
	}
}

type resolver struct {
	tr          *langtype.TypeRegister
	diag        *diagnostics.BuildDiagnostics
	resolvePath objtree.PathResolver
}

func (r resolver) ctx(name string, ty langtype.Type, scope []*objtree.Element) *objtree.LookupCtx {
	ctx := objtree.NewLookupCtx(r.tr, r.diag)
	ctx.PropertyName = name
	ctx.PropertyType = ty
	ctx.ComponentScope = scope
	ctx.ResolvePath = r.resolvePath
	return ctx
}

func (r resolver) compileModel(node *syntax.Node, rep *objtree.RepeatedElementInfo,
	scope []*objtree.Element) objtree.Expression {
	//
	if node == nil {
		return &objtree.Invalid{}
	}
	target := langtype.Model
	if rep.IsConditionalElement {
		target = langtype.Bool
	}
	return r.compile(node, "", target, scope)
}

func (r resolver) compile(node *syntax.Node, name string, ty langtype.Type,
	scope []*objtree.Element) objtree.Expression {
	//
	if node == nil {
		return &objtree.Invalid{}
	}
	ctx := r.ctx(name, ty, scope)
	switch node.Kind() {
	case syntax.BindingExpression:
		return objtree.FromBindingExpressionNode(node, ctx)
	case syntax.TwoWayBinding:
		return objtree.FromTwoWayBinding(node, ctx)
	case syntax.CallbackConnection:
		return objtree.FromCallbackConnection(node, ctx)
	case syntax.CodeBlock:
		return objtree.MaybeConvertTo(objtree.FromCodeBlockNode(node, ctx), ctx.ReturnType(), node, r.diag)
	case syntax.Expression:
		return objtree.MaybeConvertTo(objtree.FromExpressionNode(node, ctx), ty, node, r.diag)
	}
	assertThat(false, "cannot compile node of kind %s", node.Kind())
	return nil
}

// CheckResolved asserts that no Uncompiled expression is left. It must only
// run if no errors have been reported.
func CheckResolved(doc *objtree.Document) {
	for _, c := range doc.InnerComponents {
		objtree.VisitAllExpressions(c, func(x *objtree.Expression, _ func() langtype.Type) {
			objtree.VisitRecursive(*x, func(sub objtree.Expression) {
				_, ok := sub.(*objtree.Uncompiled)
				assertThat(!ok, "expression left uncompiled: %v", sub)
			})
		})
	}
}
