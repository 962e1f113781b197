package objtree

/*
License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>

*/

import (
	"weak"

	"github.com/npillmayer/uic/langtype"
)

// NamedReference references a property (or callback) by name, within an
// element. The element is held weakly.
//
// References to the same (element, name) pair share their state through the
// element's reference container. Values of NamedReference may be copied.
type NamedReference struct {
	inner *namedRefInner
}

type namedRefInner struct {
	element weak.Pointer[Element]
	name    string
}

// namedReferenceContainer interns references per element.
type namedReferenceContainer map[string]*namedRefInner

// NewNamedReference references property name of element e.
func NewNamedReference(e *Element, name string) NamedReference {
	assertThat(e != nil, "named reference to nil element")
	if e.namedRefs == nil {
		e.namedRefs = make(namedReferenceContainer)
	}
	if inner, ok := e.namedRefs[name]; ok {
		return NamedReference{inner: inner}
	}
	inner := &namedRefInner{element: weak.Make(e), name: name}
	e.namedRefs[name] = inner
	return NamedReference{inner: inner}
}

// IsZero is true for references created without NewNamedReference.
func (nr NamedReference) IsZero() bool {
	return nr.inner == nil
}

// Name returns the name of the referenced property.
func (nr NamedReference) Name() string {
	if nr.inner == nil {
		return ""
	}
	return nr.inner.name
}

// Element returns the element the property lives in. It panics if the
// element has been collected.
func (nr NamedReference) Element() *Element {
	assertThat(nr.inner != nil, "zero named reference")
	e := nr.inner.element.Value()
	assertThat(e != nil, "named reference %q points to a dropped element", nr.inner.name)
	return e
}

// element returns the element or nil.
func (nr NamedReference) element() *Element {
	if nr.inner == nil {
		return nil
	}
	return nr.inner.element.Value()
}

// Equal is true if both references point to the same property.
func (nr NamedReference) Equal(other NamedReference) bool {
	if nr.inner == other.inner {
		return true
	}
	if nr.inner == nil || other.inner == nil {
		return false
	}
	return nr.inner.name == other.inner.name && nr.element() == other.element()
}

// Ty returns the type of the referenced property.
func (nr NamedReference) Ty() langtype.Type {
	return nr.Element().LookupProperty(nr.Name()).PropertyType
}

// IsConstant is true if the referenced property never changes at run time:
// it is not set by any code, not exposed to the public API, and either bound
// to a constant binding or not bound at all and not a native output.
func (nr NamedReference) IsConstant() bool {
	elem := nr.Element()
	name := nr.Name()
	if decl, ok := elem.PropertyDeclarations[name]; ok && decl.ExposeInPublicAPI {
		return false
	}
	checkBinding := true
	for {
		if a, ok := elem.PropertyAnalysis[name]; ok && a.IsSet {
			return false
		}
		if b, ok := elem.Bindings[name]; ok {
			if checkBinding && (b.Analysis == nil || !b.Analysis.IsConst) {
				return false
			}
			checkBinding = false
		}
		if decl, ok := elem.PropertyDeclarations[name]; ok {
			if decl.IsAlias != nil && !decl.IsAlias.IsZero() && decl.IsAlias.element() != nil {
				return decl.IsAlias.IsConstant()
			}
			return true
		}
		switch base := elem.BaseType().(type) {
		case langtype.Component:
			c, ok := base.Ref.(*Component)
			if !ok || c.RootElement == nil {
				return true
			}
			elem = c.RootElement
		case *langtype.BuiltinElement:
			info, ok := base.Properties[name]
			return !ok || !info.IsNativeOutput
		case *langtype.NativeClass:
			for n := base; n != nil; n = n.Parent {
				if info, ok := n.Properties[name]; ok {
					return !info.IsNativeOutput
				}
			}
			return true
		default:
			return true
		}
	}
}

// String prints a reference as `element.name`.
func (nr NamedReference) String() string {
	return elementRefString(nr.element()) + "." + nr.Name()
}

func elementRefString(e *Element) string {
	if e == nil {
		return "<null>"
	}
	return e.ID
}
