package passes

import (
	"fmt"
	"strings"

	"github.com/npillmayer/uic/diagnostics"
	"github.com/npillmayer/uic/langtype"
	"github.com/npillmayer/uic/objtree"
	"github.com/npillmayer/uic/styles"
	"golang.org/x/net/html"
)

// ApplyDefaultPropertiesFromStyle binds the properties a style sets for an
// element, unless the element binds them itself. Rules match on the builtin
// element (the tag), the components an element is the root of or an instance
// of (its classes) and the element id. Important declarations also replace bindings
// synthesized by earlier passes.
//
// Values not fitting the property are reported as warnings and skipped.
func ApplyDefaultPropertiesFromStyle(doc *objtree.Document, style *styles.Style,
	diag *diagnostics.BuildDiagnostics) {
	//
	for _, c := range doc.InnerComponents {
		if c.IsGlobal() {
			continue
		}
		objtree.RecurseElemIncludingSubComponents(c, (*html.Node)(nil),
			func(e *objtree.Element, parent *html.Node) *html.Node {
				if sub, ok := objtree.AsComponent(e.BaseType()); ok && sub.ParentElement() == e {
					return parent // placeholder of a repeater
				}
				n := styles.ElementNode(tagOf(e), e.ID, classesOf(e), parent)
				for _, d := range style.Declarations(n) {
					applyDeclaration(e, d, style.Name, diag)
				}
				return n
			})
	}
}

func applyDeclaration(e *objtree.Element, d styles.Declaration, style string, diag *diagnostics.BuildDiagnostics) {
	lr := e.LookupProperty(d.Property)
	if lr.PropertyType == langtype.Invalid {
		return
	}
	name := lr.ResolvedName
	if name == "" {
		name = d.Property
	}
	lit, err := d.Value.Literal(lr.PropertyType)
	if err != nil {
		diag.PushWarning(fmt.Sprintf("Style %s: %v", style, err), e)
		return
	}
	value := func() objtree.Expression {
		return objtree.MaybeConvertTo(objtree.LiteralExpression(lit), lr.PropertyType, e, diag)
	}
	if b, ok := e.Bindings[name]; ok && d.Important && b.Priority == 0 {
		delete(e.Bindings, name)
	}
	if e.SetBindingIfNotSet(name, value) {
		tracer().Debugf("style %s sets %s.%s = %s", style, e.ID, name, d.Value)
	}
}

func tagOf(e *objtree.Element) string {
	if b := e.BuiltinType(); b != nil {
		return b.Name
	}
	return strings.ToLower(e.BaseType().String())
}

// classesOf lists the names of the components e is the root of or an
// instance of, outermost first.
func classesOf(e *objtree.Element) []string {
	var classes []string
	if c := e.EnclosingComponent(); c != nil && c.RootElement == e && c.ID != "" {
		classes = append(classes, c.ID)
	}
	for t := e.BaseType(); ; {
		c, ok := objtree.AsComponent(t)
		if !ok || c.RootElement == nil {
			return classes
		}
		if c.ID != "" {
			classes = append(classes, c.ID)
		}
		t = c.RootElement.BaseType()
	}
}
