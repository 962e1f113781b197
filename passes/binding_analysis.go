package passes

import (
	"fmt"

	"github.com/npillmayer/uic/diagnostics"
	"github.com/npillmayer/uic/langtype"
	"github.com/npillmayer/uic/objtree"
)

// BindingAnalysis analyses the bindings of root, its sub-components and the
// globals it uses:
//
//   - properties read by any expression are marked as read
//   - properties linked by a two-way binding share their analysis
//   - bindings depending on themselves are reported as binding loops
//   - bindings are marked constant if their value never changes
//
// It must run after the collection passes.
func BindingAnalysis(root *objtree.Component, diag *diagnostics.BuildDiagnostics) {
	if root == nil {
		return
	}
	var components []*objtree.Component
	for _, c := range append(withSubComponents(root), root.UsedTypes.Globals...) {
		forEachComponent(c, func(comp *objtree.Component) {
			components = append(components, comp)
		})
	}
	for _, c := range components {
		markReadAndSet(c)
	}
	for i := 0; i < len(components)+1; i++ { // chains of aliases
		changed := false
		for _, c := range components {
			changed = mergeAliasAnalysis(c) || changed
		}
		if !changed {
			break
		}
	}
	a := &analyzer{diag: diag, state: make(map[propKey]visitState)}
	for _, c := range components {
		objtree.RecurseElem(c.RootElement, struct{}{}, func(e *objtree.Element, _ struct{}) struct{} {
			for _, name := range e.SortedBindingNames() {
				a.visit(propKey{e, name}, false)
			}
			return struct{}{}
		})
	}
}

func markReadAndSet(c *objtree.Component) {
	objtree.RecurseElem(c.RootElement, struct{}{}, func(e *objtree.Element, _ struct{}) struct{} {
		objtree.VisitElementExpressions(e, func(x *objtree.Expression, _ string, _ func() langtype.Type) {
			objtree.VisitNamedReferencesInExpression(x, func(nr *objtree.NamedReference) {
				if !nr.IsZero() {
					nr.Element().Analysis(nr.Name()).IsRead = true
				}
			})
		})
		for _, s := range e.States {
			for _, pc := range s.PropertyChanges {
				pc.Ref.Element().Analysis(pc.Ref.Name()).IsSet = true
			}
		}
		return struct{}{}
	})
}

func mergeAliasAnalysis(c *objtree.Component) bool {
	changed := false
	objtree.RecurseElem(c.RootElement, struct{}{}, func(e *objtree.Element, _ struct{}) struct{} {
		for _, name := range e.SortedBindingNames() {
			tw, ok := e.Bindings[name].Expression.(*objtree.TwoWayBinding)
			if !ok || tw.Ref.IsZero() {
				continue
			}
			here, there := e.Analysis(name), tw.Ref.Element().Analysis(tw.Ref.Name())
			if *here != *there {
				here.Merge(*there)
				*there = *here
				changed = true
			}
		}
		return struct{}{}
	})
	return changed
}

type propKey struct {
	elem *objtree.Element
	name string
}

type visitState uint8

const (
	unvisited visitState = iota
	onStack
	analysed
)

type frame struct {
	key   propKey
	alias bool // entered through a two-way binding
}

type analyzer struct {
	diag  *diagnostics.BuildDiagnostics
	state map[propKey]visitState
	stack []frame
}

// bindingOf finds the binding giving a property its value: the binding of
// the element itself or, for properties it does not declare, the binding in
// the root of its base component.
func bindingOf(e *objtree.Element, name string) (propKey, bool) {
	for e != nil {
		if _, ok := e.Bindings[name]; ok {
			return propKey{e, name}, true
		}
		if _, ok := e.PropertyDeclarations[name]; ok {
			return propKey{}, false
		}
		c, ok := objtree.AsComponent(e.BaseType())
		if !ok {
			return propKey{}, false
		}
		e = c.RootElement
	}
	return propKey{}, false
}

func (a *analyzer) visit(k propKey, alias bool) {
	switch a.state[k] {
	case analysed:
		return
	case onStack:
		a.loop(k, alias)
		return
	}
	a.state[k] = onStack
	a.stack = append(a.stack, frame{key: k, alias: alias})
	b := k.elem.Bindings[k.name]
	if b.Analysis == nil {
		b.Analysis = &objtree.BindingAnalysis{}
	}
	_, isCallback := k.elem.LookupProperty(k.name).PropertyType.(*langtype.Callback)
	if !isCallback {
		if tw, ok := b.Expression.(*objtree.TwoWayBinding); ok && !tw.Ref.IsZero() {
			if dep, ok := bindingOf(tw.Ref.Element(), tw.Ref.Name()); ok {
				a.visit(dep, true)
			}
		}
		objtree.VisitRecursive(b.Expression, func(sub objtree.Expression) {
			if pr, ok := sub.(*objtree.PropertyReference); ok && !pr.Ref.IsZero() {
				if dep, ok := bindingOf(pr.Ref.Element(), pr.Ref.Name()); ok {
					a.visit(dep, false)
				}
			}
		})
	}
	a.stack = a.stack[:len(a.stack)-1]
	a.state[k] = analysed
	b.Analysis.IsConst = !b.Analysis.IsInBindingLoop && objtree.IsConstant(b.Expression)
}

// loop handles a dependency on k, which is on the stack. Cycles made of
// two-way bindings only are aliases, not loops.
func (a *analyzer) loop(k propKey, alias bool) {
	start := len(a.stack) - 1
	for start >= 0 && a.stack[start].key != k {
		start--
	}
	assertThat(start >= 0, "binding %s.%s on stack but not found", k.elem.ID, k.name)
	onlyAliases := alias
	for _, f := range a.stack[start+1:] {
		onlyAliases = onlyAliases && f.alias
	}
	if onlyAliases {
		return
	}
	for _, f := range a.stack[start:] {
		b := f.key.elem.Bindings[f.key.name]
		if b.Analysis.IsInBindingLoop {
			continue
		}
		b.Analysis.IsInBindingLoop = true
		a.diag.PushError(fmt.Sprintf("The binding for the property '%s' is part of a binding loop", f.key.name), b)
	}
}
