package passes

import (
	"fmt"
	"sort"
	"strings"

	"github.com/npillmayer/uic/diagnostics"
	"github.com/npillmayer/uic/langtype"
	"github.com/npillmayer/uic/objtree"
)

const dropShadowPrefix = "drop_shadow_"

// LowerShadows replaces the drop_shadow_* bindings of Rectangles by a
// BoxShadow element, placed just before the rectangle and following its
// geometry. The root of a repeated template gets its shadow injected as new
// root of the repeater component.
func LowerShadows(doc *objtree.Document, diag *diagnostics.BuildDiagnostics) {
	boxShadow, err := doc.LocalRegistry.LookupElement("BoxShadow")
	assertThat(err == nil, "builtin BoxShadow not registered: %v", err)
	for _, c := range doc.InnerComponents {
		lowerShadows(c, boxShadow, diag)
	}
}

func lowerShadows(c *objtree.Component, boxShadow langtype.Type, diag *diagnostics.BuildDiagnostics) {
	objtree.RecurseElemIncludingSubComponentsNoBorrow(c, struct{}{}, func(e *objtree.Element, _ struct{}) struct{} {
		if e.Repeated != nil {
			if comp, ok := objtree.AsComponent(e.BaseType()); ok && comp.ParentElement() == e {
				root := comp.RootElement
				if bindings := takeShadowBindings(root, diag); len(bindings) > 0 {
					shadow := shadowElement(root, bindings, boxShadow)
					comp.Retain()
					objtree.InjectElementAsRepeatedElement(e, shadow)
				}
			}
		}
		var children []*objtree.Element
		for _, ch := range e.Children {
			if bindings := takeShadowBindings(ch, diag); len(bindings) > 0 {
				shadow := shadowElement(ch, bindings, boxShadow)
				shadow.SetEnclosingComponent(ch.EnclosingComponent())
				children = append(children, shadow)
			}
			children = append(children, ch)
		}
		e.Children = children
		return struct{}{}
	})
}

// takeShadowBindings removes the drop shadow bindings from e. Elements other
// than rectangles do not support shadows; their bindings are reported and
// dropped.
func takeShadowBindings(e *objtree.Element, diag *diagnostics.BuildDiagnostics) map[string]*objtree.BindingExpression {
	var taken map[string]*objtree.BindingExpression
	for _, name := range e.SortedBindingNames() {
		if !langtype.IsDropShadowProperty(name) {
			continue
		}
		if taken == nil {
			taken = make(map[string]*objtree.BindingExpression)
		}
		taken[name] = e.Bindings[name]
		delete(e.Bindings, name)
	}
	if len(taken) == 0 {
		return nil
	}
	if b := e.BuiltinType(); b == nil || (b.Name != "Rectangle" && b.Name != "BorderRectangle") {
		for _, name := range sortedNames(taken) {
			diag.PushError(fmt.Sprintf("The %s property is only supported on Rectangle elements right now", name),
				taken[name])
		}
		return nil
	}
	return taken
}

// shadowElement creates a BoxShadow for sibling.
func shadowElement(sibling *objtree.Element, bindings map[string]*objtree.BindingExpression,
	boxShadow langtype.Type) *objtree.Element {
	//
	shadow := objtree.NewElement(sibling.ID+"-shadow", boxShadow)
	shadow.Node = sibling.Node
	for name, b := range bindings {
		shadow.Bindings[strings.TrimPrefix(name, dropShadowPrefix)] = b
	}
	follow := func(name string) {
		shadow.Bindings[name] = objtree.NewBinding(&objtree.PropertyReference{
			Ref: objtree.NewNamedReference(sibling, name),
		})
	}
	if _, ok := sibling.Bindings["border_radius"]; ok {
		follow("border_radius")
	}
	for _, name := range []string{"x", "y", "width", "height"} {
		follow(name)
	}
	tracer().Debugf("created %s for %s", shadow.ID, sibling.ID)
	return shadow
}

func sortedNames(m map[string]*objtree.BindingExpression) []string {
	names := make([]string, 0, len(m))
	for n := range m {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}
