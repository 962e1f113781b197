package objtree

/*
License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>

*/

import (
	"weak"

	"github.com/npillmayer/uic/diagnostics"
	"github.com/npillmayer/uic/langtype"
	"github.com/npillmayer/uic/syntax"
)

// Component is a user-defined element type: a tree of elements with a root.
//
// Components are shared between the document, the type register and every
// element using them as base type. Strong ownership is counted explicitly
// with Retain and Release. When the count drops from one to zero, the
// component is dropped: weak references to it do not upgrade any more.
type Component struct {
	ID                    string
	RootElement           *Element
	parentElement         weak.Pointer[Element]
	OptimizedElements     []*Element
	EmbeddedFileResources map[string]int // path → resource id
	RootConstraints       LayoutConstraints
	ChildInsertionPoint   *ChildrenInsertionPoint
	SetupCode             []Expression
	UsedTypes             UsedSubTypes
	PopupWindows          []*PopupWindow
	strong                int
	dropped               bool
}

// ChildrenInsertionPoint is the element where the children of an instance of
// a component are inserted (the `@children` placeholder).
type ChildrenInsertionPoint struct {
	Element *Element
	Node    *syntax.Node
}

// UsedSubTypes lists the types a root component needs, collected by passes.
type UsedSubTypes struct {
	Globals       []*Component
	Structs       []langtype.Type
	SubComponents []*Component
}

// PopupWindow is a popup component, positioned relative to a parent element.
type PopupWindow struct {
	Component *Component
	X         NamedReference
	Y         NamedReference
}

// NewComponent creates an empty component with a root element.
func NewComponent(id string, root *Element) *Component {
	c := &Component{ID: id, RootElement: root, EmbeddedFileResources: make(map[string]int)}
	if root != nil {
		RecurseElem(root, struct{}{}, func(e *Element, _ struct{}) struct{} {
			e.SetEnclosingComponent(c)
			return struct{}{}
		})
	}
	return c
}

// ComponentType wraps a component as a type.
func ComponentType(c *Component) langtype.Type {
	return langtype.Component{Ref: c}
}

// AsComponent extracts a component from a type.
func AsComponent(t langtype.Type) (*Component, bool) {
	ct, ok := t.(langtype.Component)
	if !ok {
		return nil, false
	}
	c, ok := ct.Ref.(*Component)
	return c, ok && c != nil
}

// Retain adds a strong owner.
func (c *Component) Retain() {
	assertThat(!c.dropped, "retaining dropped component %q", c.ID)
	c.strong++
}

// Release removes a strong owner. Releasing the last owner drops the
// component.
func (c *Component) Release() {
	assertThat(c.strong > 0, "releasing component %q without owners", c.ID)
	c.strong--
	if c.strong == 0 {
		tracer().Debugf("component %q dropped", c.ID)
		c.dropped = true
	}
}

// StrongCount returns the number of strong owners.
func (c *Component) StrongCount() int {
	return c.strong
}

// IsDropped is true once the last strong owner has released the component.
func (c *Component) IsDropped() bool {
	return c.dropped
}

// ParentElement returns the element a repeater or popup component was
// created from, or nil.
func (c *Component) ParentElement() *Element {
	return c.parentElement.Value()
}

// SetParentElement sets the weak reference to the parent element.
func (c *Component) SetParentElement(e *Element) {
	c.parentElement = weak.Make(e)
}

// Location makes components diagnostics.Spanned.
func (c *Component) Location() diagnostics.SourceLocation {
	if c.RootElement == nil {
		return diagnostics.SourceLocation{Span: diagnostics.NoSpan}
	}
	return c.RootElement.Location()
}

// --- langtype.ComponentRef -------------------------------------------------

// Name returns the component's id.
func (c *Component) Name() string {
	return c.ID
}

// IsGlobal is true for global singletons: components without base type,
// and instances of global builtins.
func (c *Component) IsGlobal() bool {
	if c.RootElement == nil {
		return false
	}
	switch b := c.RootElement.BaseType().(type) {
	case langtype.Primitive:
		return b == langtype.Void
	case *langtype.BuiltinElement:
		return b.IsGlobal
	}
	return false
}

// LookupRootProperty looks up a property of the root element.
func (c *Component) LookupRootProperty(name string) langtype.PropertyLookupResult {
	if c.RootElement == nil {
		return langtype.PropertyLookupResult{ResolvedName: name, PropertyType: langtype.Invalid}
	}
	return c.RootElement.LookupProperty(name)
}

// RootBaseType returns the base type of the root element.
func (c *Component) RootBaseType() langtype.Type {
	if c.RootElement == nil {
		return langtype.Invalid
	}
	return c.RootElement.BaseType()
}

// RootPropertyFields returns the properties declared on the root element,
// as struct fields in sorted order.
func (c *Component) RootPropertyFields() *langtype.Fields {
	f := langtype.NewFields()
	if c.RootElement == nil {
		return f
	}
	for _, n := range c.RootElement.SortedDeclarationNames() {
		d := c.RootElement.PropertyDeclarations[n]
		if langtype.IsPropertyType(d.PropertyType) {
			f.Add(n, d.PropertyType)
		}
	}
	return f
}

var _ langtype.ComponentRef = (*Component)(nil)
