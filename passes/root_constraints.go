package passes

import (
	"github.com/npillmayer/uic/diagnostics"
	"github.com/npillmayer/uic/objtree"
)

// ComputeRootConstraints collects the layout constraints of the roots of all
// components, repeater and popup components included.
func ComputeRootConstraints(doc *objtree.Document, diag *diagnostics.BuildDiagnostics) {
	for _, c := range doc.InnerComponents {
		forEachComponent(c, func(comp *objtree.Component) {
			comp.RootConstraints = objtree.NewLayoutConstraints(comp.RootElement, diag)
		})
	}
}

// forEachComponent calls f for c and every repeater and popup component
// below it, inner ones first.
func forEachComponent(c *objtree.Component, f func(*objtree.Component)) {
	objtree.RecurseElem(c.RootElement, struct{}{}, func(e *objtree.Element, _ struct{}) struct{} {
		if e.Repeated != nil {
			if sub, ok := objtree.AsComponent(e.BaseType()); ok && sub.ParentElement() == e {
				forEachComponent(sub, f)
			}
		}
		return struct{}{}
	})
	for _, p := range c.PopupWindows {
		forEachComponent(p.Component, f)
	}
	f(c)
}
