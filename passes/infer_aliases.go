package passes

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
	"github.com/npillmayer/uic/objtree"
	"github.com/npillmayer/uic/syntax"
)

// InferAliases gives a type to properties declared without one. Such
// properties are declared with a two-way binding and get the type of the
// property they are bound to:
//
//     property foo <=> bar.text;
//
// Before this pass, these properties have type Void (InferredCallback for
// callbacks) and their bindings are still Uncompiled. Bindings stay
// Uncompiled, they are compiled by Resolve.
//
// Properties are processed in lexical order per element. A property being
// processed is marked Invalid, so a cycle of aliases ends with an Invalid
// type and is reported.
func InferAliases(doc *objtree.Document, diag *diagnostics.BuildDiagnostics) {
	for _, c := range doc.InnerComponents {
		scope := []*objtree.Element{c.RootElement}
		objtree.RecurseElemNoBorrow(c.RootElement, scope,
			func(e *objtree.Element, scope []*objtree.Element) []*objtree.Element {
				newScope := scope
				if e.Repeated != nil {
					newScope = append(append([]*objtree.Element(nil), scope...), e)
				}
				var needResolving []string
				for _, name := range e.SortedDeclarationNames() {
					if needsInference(e.PropertyDeclarations[name].PropertyType) {
						needResolving = append(needResolving, name)
					}
				}
				for _, name := range needResolving {
					resolveAlias(e, name, scope, doc.LocalRegistry, diag)
				}
				return newScope
			})
	}
}

func needsInference(t langtype.Type) bool {
	return t == langtype.Void || t == langtype.InferredCallback
}

func resolveAlias(e *objtree.Element, prop string, scope []*objtree.Element, tr *langtype.TypeRegister,
	diag *diagnostics.BuildDiagnostics) {
	//
	decl, ok := e.PropertyDeclarations[prop]
	assertThat(ok, "alias %s of %s is not a declared property", prop, e.ID)
	if !needsInference(decl.PropertyType) {
		return // already processed
	}
	declared := decl.PropertyType
	decl.PropertyType = langtype.Invalid // catches recursion
	b, ok := e.Bindings[prop]
	assertThat(ok, "alias %s of %s has no binding", prop, e.ID)
	u, ok := b.Expression.(*objtree.Uncompiled)
	assertThat(ok, "binding of alias %s of %s is already compiled", prop, e.ID)
	assertThat(u.Node != nil && u.Node.Kind() == syntax.TwoWayBinding,
		"only two-way bindings may omit the property type, %s of %s does", prop, e.ID)
	//
	// diagnostics of the binding itself are reported by Resolve, which compiles
	// it once more
	ctx := objtree.NewLookupCtx(tr, &diagnostics.BuildDiagnostics{})
	ctx.PropertyName = prop
	ctx.PropertyType = declared
	ctx.ComponentScope = append(append([]*objtree.Element(nil), scope...), e)
	x := objtree.FromTwoWayBinding(u.Node, ctx)
	//
	ty := objtree.TypeOf(x)
	if needsInference(ty) {
		if tw, ok := x.(*objtree.TwoWayBinding); ok {
			// the scope of the outer alias may be too deep for the aliased
			// property, but works for the ids it can see
			resolveAlias(tw.Ref.Element(), tw.Ref.Name(), scope, tr, diag)
			ty = objtree.TypeOf(x)
		}
	}
	if needsInference(ty) || ty == langtype.Invalid {
		diag.PushError(fmt.Sprintf("Could not infer type of property '%s'", prop), decl.TypeNode())
		return
	}
	tracer().Debugf("inferred type %s for alias %s.%s", ty, e.ID, prop)
	decl.PropertyType = ty
}
