package objtree

import (
	"weak"

	"github.com/npillmayer/uic/langtype"
)

// InjectElementAsRepeatedElement replaces the root of the component
// instantiated by repeated with newRoot. The old root becomes the only
// child of newRoot.
//
// The caller must hold exactly one strong reference to the component, in
// addition to the base type of repeated, and hands it over to this call:
// the component is moved into a new instance and the old one is dropped.
// Elements enclosed by the old instance are repointed to the new one, which
// is returned. Any other owner violates the precondition and makes the call
// panic before the graph is changed.
func InjectElementAsRepeatedElement(repeated *Element, newRoot *Element) *Component {
	component, ok := AsComponent(repeated.BaseType())
	assertThat(ok, "element %s to inject into is not a component instance", repeated.ID)
	assertThat(component.StrongCount() == 2, "component %q of %s has %d strong references, expected 2",
		component.ID, repeated.ID, component.StrongCount())
	oldRoot := component.RootElement
	var enclosed []*Element
	RecurseElem(oldRoot, struct{}{}, func(e *Element, _ struct{}) struct{} {
		if e.EnclosingComponent() == component {
			enclosed = append(enclosed, e)
		}
		return struct{}{}
	})
	enclosed = append(enclosed, component.OptimizedElements...)
	enclosed = append(enclosed, newRoot)
	newRoot.ChildOfLayout, oldRoot.ChildOfLayout = oldRoot.ChildOfLayout, false
	repeated.SetBaseType(langtype.Void)
	assertThat(component.StrongCount() == 1, "component %q still shared after detaching it from %s",
		component.ID, repeated.ID)
	moved := &Component{}
	*moved = *component
	moved.strong = 0
	component.Release() // the caller's reference
	moved.RootElement = newRoot
	newRoot.Children = append(newRoot.Children, oldRoot)
	repeated.SetBaseType(ComponentType(moved))
	for _, e := range enclosed {
		e.SetEnclosingComponent(moved)
	}
	tracer().Debugf("injected %s as new root of repeated component %q", newRoot.ID, moved.ID)
	return moved
}

// MoveNamedReferences hands the named references interned by from over to
// to. Existing references to properties of from point to to afterwards.
func MoveNamedReferences(from, to *Element) {
	if len(from.namedRefs) == 0 {
		return
	}
	if to.namedRefs == nil {
		to.namedRefs = make(namedReferenceContainer)
	}
	for name, inner := range from.namedRefs {
		inner.element = weak.Make(to)
		to.namedRefs[name] = inner
	}
	from.namedRefs = nil
}
