package objtree

/*
License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>

*/

import (
	"github.com/npillmayer/uic/langtype"
)

// RecurseElem calls vis for e and then, depth first, for all its children.
// The state returned by vis for an element is handed to its children.
//
// The children of an element are iterated while the children are visited,
// so visitors must not change the child list of an ancestor. See
// RecurseElemNoBorrow.
func RecurseElem[S any](e *Element, state S, vis func(*Element, S) S) {
	st := vis(e, state)
	for _, ch := range e.Children {
		RecurseElem(ch, st, vis)
	}
}

// RecurseElemNoBorrow is like RecurseElem, but iterates over a copy of the
// child list, which is taken after vis returned for the parent.
func RecurseElemNoBorrow[S any](e *Element, state S, vis func(*Element, S) S) {
	st := vis(e, state)
	children := append([]*Element(nil), e.Children...)
	for _, ch := range children {
		RecurseElemNoBorrow(ch, st, vis)
	}
}

// RecurseElemIncludingSubComponents recurses into the elements of c, the
// components of repeated elements and the popup windows. Sub-components are
// visited before the element instantiating them.
func RecurseElemIncludingSubComponents[S any](c *Component, state S, vis func(*Element, S) S) {
	RecurseElem(c.RootElement, state, func(e *Element, st S) S {
		recurseRepeatedComponent(e, st, vis, RecurseElemIncludingSubComponents[S])
		return vis(e, st)
	})
	for _, p := range c.PopupWindows {
		RecurseElemIncludingSubComponents(p.Component, state, vis)
	}
}

// RecurseElemIncludingSubComponentsNoBorrow is the sub-component variant of
// RecurseElemNoBorrow.
func RecurseElemIncludingSubComponentsNoBorrow[S any](c *Component, state S, vis func(*Element, S) S) {
	RecurseElemNoBorrow(c.RootElement, state, func(e *Element, st S) S {
		recurseRepeatedComponent(e, st, vis, RecurseElemIncludingSubComponentsNoBorrow[S])
		return vis(e, st)
	})
	popups := append([]*PopupWindow(nil), c.PopupWindows...)
	for _, p := range popups {
		RecurseElemIncludingSubComponentsNoBorrow(p.Component, state, vis)
	}
}

func recurseRepeatedComponent[S any](e *Element, st S, vis func(*Element, S) S,
	recurse func(*Component, S, func(*Element, S) S)) {
	//
	if e.Repeated == nil {
		return
	}
	if base, ok := AsComponent(e.BaseType()); ok && base.ParentElement() != nil {
		recurse(base, st, vis)
	}
}

// ExpressionVisitor is called for every expression of an element. name is
// the property the expression is bound to, or empty. ty returns the type
// the expression has to have.
type ExpressionVisitor func(e *Expression, name string, ty func() langtype.Type)

// VisitElementExpressions calls vis for all expressions directly owned by
// e: the repeater model, the bindings, the states and the animations.
//
// Each collection is moved out of the element while it is visited and put
// back afterwards, so visitors may inspect the element, but must not add to
// the collection being visited.
func VisitElementExpressions(e *Element, vis ExpressionVisitor) {
	if r := e.Repeated; r != nil {
		e.Repeated = nil
		vis(&r.Model, "", func() langtype.Type {
			if r.IsConditionalElement {
				return langtype.Bool
			}
			return langtype.Model
		})
		assertThat(e.Repeated == nil, "repeated info of %s set while visiting its model", e.ID)
		e.Repeated = r
	}
	visitBindings(e, vis)
	states := e.States
	e.States = nil
	for _, s := range states {
		if s.Condition != nil {
			vis(&s.Condition, "", func() langtype.Type { return langtype.Bool })
		}
		for i := range s.PropertyChanges {
			pc := &s.PropertyChanges[i]
			vis(&pc.Expression, pc.Ref.Name(), func() langtype.Type {
				return pc.Ref.Element().LookupProperty(pc.Ref.Name()).PropertyType
			})
		}
	}
	e.States = states
	transitions := e.Transitions
	e.Transitions = nil
	for _, t := range transitions {
		for _, a := range t.PropertyAnimations {
			visitBindings(a.Animation, vis)
		}
	}
	e.Transitions = transitions
	animations := e.PropertyAnimations
	e.PropertyAnimations = make(map[string]PropertyAnimation)
	for _, name := range sortedKeys(animations) {
		switch a := animations[name].(type) {
		case *StaticAnimation:
			visitBindings(a.Animation, vis)
		case *TransitionAnimations:
			vis(&a.StateRef, "", func() langtype.Type { return langtype.Int32 })
			for _, ta := range a.Animations {
				visitBindings(ta.Animation, vis)
			}
		}
	}
	assertThat(len(e.PropertyAnimations) == 0, "animations of %s changed while visiting", e.ID)
	e.PropertyAnimations = animations
}

func visitBindings(e *Element, vis ExpressionVisitor) {
	bindings := e.Bindings
	e.Bindings = make(map[string]*BindingExpression)
	for _, name := range sortedKeys(bindings) {
		b := bindings[name]
		vis(&b.Expression, name, func() langtype.Type {
			return e.LookupProperty(name).PropertyType
		})
	}
	assertThat(len(e.Bindings) == 0, "bindings of %s changed while visiting", e.ID)
	e.Bindings = bindings
}

// VisitAllExpressions calls vis for every expression of every element of c,
// sub-components included.
func VisitAllExpressions(c *Component, vis func(e *Expression, ty func() langtype.Type)) {
	RecurseElemIncludingSubComponents(c, struct{}{}, func(e *Element, _ struct{}) struct{} {
		VisitElementExpressions(e, func(x *Expression, _ string, ty func() langtype.Type) {
			vis(x, ty)
		})
		return struct{}{}
	})
}

// VisitNamedReferencesInExpression calls vis for every named reference in
// expression e and its sub-expressions. Repeater index and model references
// point to the repeated element, not to a property, and are not visited.
func VisitNamedReferencesInExpression(e *Expression, vis func(*NamedReference)) {
	VisitMut(*e, func(sub *Expression) {
		VisitNamedReferencesInExpression(sub, vis)
	})
	switch x := (*e).(type) {
	case *PropertyReference:
		vis(&x.Ref)
	case *CallbackReference:
		vis(&x.Ref)
	case *TwoWayBinding:
		vis(&x.Ref)
	case *LayoutCacheAccess:
		vis(&x.LayoutCacheProp)
	case *SolveLayout:
		if x.Layout != nil {
			x.Layout.VisitNamedReferences(vis)
		}
	case *ComputeLayoutInfo:
		if x.Layout != nil {
			x.Layout.VisitNamedReferences(vis)
		}
	}
}

// VisitAllNamedReferencesInElement calls vis for every named reference held
// by element e: in expressions, states, transitions, list views, layout info
// and alias declarations.
func VisitAllNamedReferencesInElement(e *Element, vis func(*NamedReference)) {
	VisitElementExpressions(e, func(x *Expression, _ string, _ func() langtype.Type) {
		VisitNamedReferencesInExpression(x, vis)
	})
	for _, s := range e.States {
		for i := range s.PropertyChanges {
			vis(&s.PropertyChanges[i].Ref)
		}
	}
	for _, t := range e.Transitions {
		for i := range t.PropertyAnimations {
			vis(&t.PropertyAnimations[i].Ref)
		}
	}
	if r := e.Repeated; r != nil && r.IsListView != nil {
		lv := r.IsListView
		vis(&lv.ViewportY)
		vis(&lv.ViewportHeight)
		vis(&lv.ViewportWidth)
		vis(&lv.ListViewHeight)
		vis(&lv.ListViewWidth)
	}
	if lip := e.LayoutInfoProp; lip != nil {
		vis(&lip.Horizontal)
		vis(&lip.Vertical)
	}
	for _, name := range e.SortedDeclarationNames() {
		if d := e.PropertyDeclarations[name]; d.IsAlias != nil {
			vis(d.IsAlias)
		}
	}
}

// VisitAllNamedReferences calls vis for every named reference reachable from
// component c, including the root constraints and popup coordinates of c and
// of its sub-components.
func VisitAllNamedReferences(c *Component, vis func(*NamedReference)) {
	RecurseElemIncludingSubComponentsNoBorrow(c, (*Component)(nil), func(e *Element, parent *Component) *Component {
		VisitAllNamedReferencesInElement(e, vis)
		compo := e.EnclosingComponent()
		if compo != nil && compo != parent {
			compo.RootConstraints.VisitNamedReferences(vis)
			for _, p := range compo.PopupWindows {
				vis(&p.X)
				vis(&p.Y)
			}
		}
		return compo
	})
}
