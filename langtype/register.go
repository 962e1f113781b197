package langtype

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

// PropertyLookupResult is the result of looking up a property by name.
// ResolvedName differs from the name looked up if a deprecated alias was used.
type PropertyLookupResult struct {
	ResolvedName string
	PropertyType Type
}

// LookupProperty looks up a property of an element type.
// Components delegate to their root element. Builtins check their own
// properties, then deprecated aliases and finally the reserved properties
// every item has.
func LookupProperty(t Type, name string) PropertyLookupResult {
	switch b := t.(type) {
	case Component:
		if b.Ref != nil {
			return b.Ref.LookupRootProperty(name)
		}
	case *BuiltinElement:
		resolved := name
		if alias, ok := b.NativeClass.LookupAlias(name); ok {
			resolved = alias
		}
		if info, ok := b.Properties[resolved]; ok {
			return PropertyLookupResult{ResolvedName: resolved, PropertyType: info.Ty}
		}
		if b.IsNonItemType {
			return PropertyLookupResult{ResolvedName: resolved, PropertyType: Invalid}
		}
		return PropertyLookupResult{ResolvedName: resolved, PropertyType: ReservedProperty(resolved)}
	case *NativeClass:
		if pt, ok := b.LookupProperty(name); ok {
			return PropertyLookupResult{ResolvedName: name, PropertyType: pt}
		}
		return PropertyLookupResult{ResolvedName: name, PropertyType: ReservedProperty(name)}
	}
	return PropertyLookupResult{ResolvedName: name, PropertyType: Invalid}
}

// UnknownTypeError is returned if a type name cannot be resolved.
type UnknownTypeError struct {
	Name string
}

func (e *UnknownTypeError) Error() string {
	return "Unknown type " + e.Name
}

// ErrNotAllowedChild is wrapped by errors about child elements a builtin
// does not accept.
var ErrNotAllowedChild = errors.New("child element not allowed")

type notAllowedError struct {
	msg string
}

func (e *notAllowedError) Error() string { return e.msg }
func (e *notAllowedError) Unwrap() error { return ErrNotAllowedChild }

// LookupTypeForChildElement finds the type of a child element named name
// within an element of type parent. Some builtins accept child types which
// are not globally visible (e.g. Row within GridLayout).
func LookupTypeForChildElement(parent Type, name string, tr *TypeRegister) (Type, error) {
	switch p := parent.(type) {
	case Component:
		if p.Ref != nil {
			return LookupTypeForChildElement(p.Ref.RootBaseType(), name, tr)
		}
	case *BuiltinElement:
		if child, ok := p.AdditionalAcceptedChildTypes[name]; ok {
			return child, nil
		}
		if p.DisallowGlobalTypesAsChildElements {
			valid := make([]string, 0, len(p.AdditionalAcceptedChildTypes))
			for k := range p.AdditionalAcceptedChildTypes {
				valid = append(valid, k)
			}
			sort.Strings(valid)
			return Invalid, &notAllowedError{fmt.Sprintf("%s is not allowed within %s. Only %s are valid children",
				name, p.NativeClass.ClassName, strings.Join(valid, " "))}
		}
	}
	return tr.LookupElement(name)
}

// TypeRegister maps type names to types. Registers are chained: names not
// found locally are looked up in the parent register.
type TypeRegister struct {
	types                 map[string]Type
	animationTypes        map[Primitive]bool
	propertyAnimationType Type
	parent                *TypeRegister
}

// NewTypeRegister creates an empty register chained to parent, which may be nil.
func NewTypeRegister(parent *TypeRegister) *TypeRegister {
	return &TypeRegister{types: make(map[string]Type), parent: parent}
}

// BuiltinRegister creates the register of builtin types, elements and
// enumerations.
func BuiltinRegister() *TypeRegister {
	r := NewTypeRegister(nil)
	for name, t := range map[string]Type{
		"float":           Float32,
		"int":             Int32,
		"string":          String,
		"length":          LogicalLength,
		"physical_length": PhysicalLength,
		"duration":        Duration,
		"angle":           Angle,
		"easing":          Easing,
		"percent":         Percent,
		"color":           Color,
		"brush":           Brush,
		"image":           Image,
		"bool":            Bool,
		"model":           Model,
	} {
		r.types[name] = t
	}
	for _, e := range BuiltinEnumerations() {
		r.types[e.Name] = e
	}
	for _, b := range builtinElements() {
		r.types[b.Name] = b
		if b.Name == "PropertyAnimation" {
			r.propertyAnimationType = b
		}
	}
	r.animationTypes = map[Primitive]bool{
		Float32: true, Int32: true, Color: true, Brush: true, LogicalLength: true, Angle: true,
	}
	tracer().Debugf("builtin register holds %d types", len(r.types))
	return r
}

// Parent returns the parent register, or nil.
func (r *TypeRegister) Parent() *TypeRegister {
	return r.parent
}

// Lookup finds a type by name. It returns Invalid if the name is unknown.
func (r *TypeRegister) Lookup(name string) Type {
	for reg := r; reg != nil; reg = reg.parent {
		if t, ok := reg.types[name]; ok {
			return t
		}
	}
	return Invalid
}

// LookupElement finds an element type (component or builtin) by name.
func (r *TypeRegister) LookupElement(name string) (Type, error) {
	for reg := r; reg != nil; reg = reg.parent {
		switch t := reg.types[name].(type) {
		case Component, *BuiltinElement:
			return t, nil
		}
	}
	return Invalid, &UnknownTypeError{Name: name}
}

// LookupQualified resolves a qualified type name. Only single-segment names
// denote types.
func (r *TypeRegister) LookupQualified(qualified []string) Type {
	if len(qualified) != 1 {
		return Invalid
	}
	return r.Lookup(qualified[0])
}

// InsertType registers a named struct or an enumeration under its name.
func (r *TypeRegister) InsertType(t Type) {
	switch n := t.(type) {
	case *Struct:
		assertThat(n.Name != "", "cannot register an anonymous struct")
		r.types[n.Name] = t
	case *Enumeration:
		r.types[n.Name] = t
	default:
		panic(fmt.Sprintf("langtype: cannot register type %s without a name", t))
	}
}

// AddComponent registers a component under its name.
func (r *TypeRegister) AddComponent(c ComponentRef) {
	r.types[c.Name()] = Component{Ref: c}
}

// AddWithName registers any type under a given name, e.g. for imports with
// an alias name.
func (r *TypeRegister) AddWithName(name string, t Type) {
	r.types[name] = t
}

// Names returns all locally registered names, sorted.
func (r *TypeRegister) Names() []string {
	names := make([]string, 0, len(r.types))
	for n := range r.types {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

// PropertyAnimationType returns the builtin type of animation elements.
func (r *TypeRegister) PropertyAnimationType() Type {
	for reg := r; reg != nil; reg = reg.parent {
		if reg.propertyAnimationType != nil {
			return reg.propertyAnimationType
		}
	}
	return Invalid
}

// PropertyAnimationTypeForProperty returns the animation element type for
// properties of type t, or Invalid if t cannot be animated.
func (r *TypeRegister) PropertyAnimationTypeForProperty(t Type) Type {
	for reg := r; reg != nil; reg = reg.parent {
		if reg.animationTypes != nil {
			if p, ok := t.(Primitive); ok && reg.animationTypes[p] {
				return reg.PropertyAnimationType()
			}
			return Invalid
		}
	}
	return Invalid
}

func assertThat(that bool, msg string, msgargs ...interface{}) {
	if !that {
		msg = fmt.Sprintf("langtype: "+msg, msgargs...)
		tracer().Errorf("%s", msg)
		panic(msg)
	}
}
