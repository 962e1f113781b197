package passes

import (
	"github.com/npillmayer/uic/objtree"
)

// CreateRepeaterComponents makes every repeated element an instance of a new
// component. The component's root takes over what the element had: base
// type, bindings, declarations, children, states and animations. The element
// is left as the placeholder for the instances, with the component as its
// base type.
func CreateRepeaterComponents(doc *objtree.Document) {
	for _, c := range doc.InnerComponents {
		createRepeaterComponents(c)
	}
}

func createRepeaterComponents(c *objtree.Component) {
	objtree.RecurseElemNoBorrow(c.RootElement, struct{}{}, func(e *objtree.Element, _ struct{}) struct{} {
		if e.Repeated == nil {
			return struct{}{}
		}
		if base, ok := objtree.AsComponent(e.BaseType()); ok && base.ParentElement() == e {
			return struct{}{} // already done
		}
		comp := newRepeaterComponent(e)
		createRepeaterComponents(comp)
		return struct{}{}
	})
	for _, p := range c.PopupWindows {
		createRepeaterComponents(p.Component)
	}
}

func newRepeaterComponent(e *objtree.Element) *objtree.Component {
	listView := e.Repeated.IsListView
	root := objtree.NewElement(e.ID, e.BaseType())
	root.Bindings, e.Bindings = e.Bindings, make(map[string]*objtree.BindingExpression)
	root.PropertyAnalysis, e.PropertyAnalysis = e.PropertyAnalysis, make(map[string]*objtree.PropertyAnalysis)
	root.PropertyDeclarations, e.PropertyDeclarations = e.PropertyDeclarations,
		make(map[string]*objtree.PropertyDeclaration)
	root.PropertyAnimations, e.PropertyAnimations = e.PropertyAnimations, make(map[string]objtree.PropertyAnimation)
	root.Children, e.Children = e.Children, nil
	root.States, e.States = e.States, nil
	root.Transitions, e.Transitions = e.Transitions, nil
	root.LayoutInfoProp, e.LayoutInfoProp = e.LayoutInfoProp, nil
	root.IsFlickableViewport = e.IsFlickableViewport
	root.ChildOfLayout = e.ChildOfLayout || listView != nil
	root.Node = e.Node
	objtree.MoveNamedReferences(e, root)
	//
	comp := objtree.NewComponent("", root)
	comp.SetParentElement(e)
	e.SetBaseType(objtree.ComponentType(comp))
	if listView != nil {
		root.SetBindingIfNotSet("height", func() objtree.Expression {
			return &objtree.PropertyReference{Ref: objtree.NewNamedReference(root, "preferred_height")}
		})
		root.SetBindingIfNotSet("width", func() objtree.Expression {
			return &objtree.PropertyReference{Ref: listView.ListViewWidth}
		})
		root.Analysis("y").IsSet = true
	}
	tracer().Debugf("created repeater component for element %s", e.ID)
	return comp
}

// isRepeaterComponent is true for components created for repeated elements.
func isRepeaterComponent(c *objtree.Component) bool {
	p := c.ParentElement()
	if p == nil || p.Repeated == nil {
		return false
	}
	base, ok := objtree.AsComponent(p.BaseType())
	return ok && base == c
}
