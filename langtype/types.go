package langtype

/*
License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>

*/

import (
	"fmt"
	"sort"
	"strings"

	"github.com/npillmayer/uic/syntax"
)

// Type is the type of a property, expression or element.
//
// Types are compared with Equal. Comparing with == is safe only against
// Primitive values, e.g. t == Void.
type Type interface {
	fmt.Stringer
	Equal(Type) bool
	isType()
}

// Primitive is the set of types without payload.
type Primitive uint8

// Primitive types. Void doubles as the placeholder type of properties
// declared without a type (two-way binding aliases) until alias inference has run.
const (
	Invalid Primitive = iota
	Void
	InferredCallback // callback declared with a two-way binding only
	Float32
	Int32
	String
	Color
	Duration
	PhysicalLength
	LogicalLength
	Angle
	Percent
	Image
	Bool
	Model
	PathElements
	Easing
	Brush
	ElementReference
	LayoutCache
)

var primitiveNames = [...]string{
	Invalid:          "<error>",
	Void:             "void",
	InferredCallback: "callback",
	Float32:          "float",
	Int32:            "int",
	String:           "string",
	Color:            "color",
	Duration:         "duration",
	PhysicalLength:   "physical_length",
	LogicalLength:    "length",
	Angle:            "angle",
	Percent:          "percent",
	Image:            "image",
	Bool:             "bool",
	Model:            "model",
	PathElements:     "pathelements",
	Easing:           "easing",
	Brush:            "brush",
	ElementReference: "element ref",
	LayoutCache:      "layout cache",
}

func (p Primitive) isType() {}

func (p Primitive) String() string {
	if int(p) < len(primitiveNames) {
		return primitiveNames[p]
	}
	return fmt.Sprintf("Primitive(%d)", p)
}

// Equal compares types.
func (p Primitive) Equal(other Type) bool {
	q, ok := other.(Primitive)
	return ok && p == q
}

// Array is the type of arrays, i.e. `[T]`.
type Array struct {
	Elem Type
}

func (a Array) isType() {}

func (a Array) String() string {
	return "[" + a.Elem.String() + "]"
}

// Equal compares types.
func (a Array) Equal(other Type) bool {
	b, ok := other.(Array)
	return ok && a.Elem.Equal(b.Elem)
}

// --- Structs ---------------------------------------------------------------

// Fields is an ordered set of named, typed struct fields.
// Order is insertion order, lookup is by name.
type Fields struct {
	names []string
	types map[string]Type
}

// NewFields creates a set of fields, in the given order.
func NewFields(fields ...Field) *Fields {
	f := &Fields{types: make(map[string]Type)}
	for _, fld := range fields {
		f.Add(fld.Name, fld.Type)
	}
	return f
}

// Field is a name/type pair.
type Field struct {
	Name string
	Type Type
}

// Add appends a field or replaces the type of an existing one.
func (f *Fields) Add(name string, t Type) {
	if f.types == nil {
		f.types = make(map[string]Type)
	}
	if _, exists := f.types[name]; !exists {
		f.names = append(f.names, name)
	}
	f.types[name] = t
}

// Get looks up the type of a field.
func (f *Fields) Get(name string) (Type, bool) {
	if f == nil {
		return nil, false
	}
	t, ok := f.types[name]
	return t, ok
}

// Names returns the field names in insertion order.
func (f *Fields) Names() []string {
	if f == nil {
		return nil
	}
	return f.names
}

// SortedNames returns the field names in lexical order.
func (f *Fields) SortedNames() []string {
	names := append([]string(nil), f.Names()...)
	sort.Strings(names)
	return names
}

// Len returns the number of fields.
func (f *Fields) Len() int {
	if f == nil {
		return 0
	}
	return len(f.names)
}

// Equal compares field sets, disregarding order.
func (f *Fields) Equal(other *Fields) bool {
	if f.Len() != other.Len() {
		return false
	}
	for _, n := range f.Names() {
		t2, ok := other.Get(n)
		if !ok || !f.types[n].Equal(t2) {
			return false
		}
	}
	return true
}

// Struct is the type of structured values. Name is empty for anonymous
// structs; Node is the declaration site, if any.
type Struct struct {
	Fields *Fields
	Name   string
	Node   *syntax.Node
}

func (s *Struct) isType() {}

func (s *Struct) String() string {
	if s.Name != "" {
		return s.Name
	}
	var b strings.Builder
	b.WriteString("{ ")
	for _, n := range s.Fields.Names() {
		t, _ := s.Fields.Get(n)
		fmt.Fprintf(&b, "%s: %s,", n, t)
	}
	b.WriteString(" }")
	return b.String()
}

// Equal compares types. Structs are equal if their fields and names are.
func (s *Struct) Equal(other Type) bool {
	o, ok := other.(*Struct)
	return ok && s.Name == o.Name && s.Fields.Equal(o.Fields)
}

// --- Signatures ------------------------------------------------------------

// Callback is the type of callbacks. Return is nil for callbacks without
// a return value.
type Callback struct {
	Args   []Type
	Return Type
}

func (c *Callback) isType() {}

func (c *Callback) String() string {
	return "callback" + signature(c.Args, c.Return)
}

// Equal compares types.
func (c *Callback) Equal(other Type) bool {
	o, ok := other.(*Callback)
	return ok && equalTypes(c.Args, o.Args) && equalOptional(c.Return, o.Return)
}

// Function is the type of (builtin) functions.
type Function struct {
	Args   []Type
	Return Type
}

func (f *Function) isType() {}

func (f *Function) String() string {
	return "function" + signature(f.Args, f.Return)
}

// Equal compares types.
func (f *Function) Equal(other Type) bool {
	o, ok := other.(*Function)
	return ok && equalTypes(f.Args, o.Args) && equalOptional(f.Return, o.Return)
}

func signature(args []Type, ret Type) string {
	var b strings.Builder
	b.WriteByte('(')
	for i, a := range args {
		if i > 0 {
			b.WriteString(", ")
		}
		b.WriteString(a.String())
	}
	b.WriteByte(')')
	if ret != nil {
		b.WriteString(" -> ")
		b.WriteString(ret.String())
	}
	return b.String()
}

func equalTypes(a, b []Type) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if !a[i].Equal(b[i]) {
			return false
		}
	}
	return true
}

func equalOptional(a, b Type) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return a.Equal(b)
}

// --- Enumerations ----------------------------------------------------------

// Enumeration is a named list of values.
type Enumeration struct {
	Name         string
	Values       []string
	DefaultValue int
}

func (e *Enumeration) isType() {}

func (e *Enumeration) String() string {
	return e.Name
}

// Equal compares enumerations by identity.
func (e *Enumeration) Equal(other Type) bool {
	o, ok := other.(*Enumeration)
	return ok && e == o
}

// Value looks up a value by (normalized) name.
func (e *Enumeration) Value(name string) (EnumerationValue, bool) {
	for i, v := range e.Values {
		if v == name {
			return EnumerationValue{Value: i, Enumeration: e}, true
		}
	}
	return EnumerationValue{}, false
}

// Default returns the enumeration's default value.
func (e *Enumeration) Default() EnumerationValue {
	return EnumerationValue{Value: e.DefaultValue, Enumeration: e}
}

// EnumerationValue is one value of an enumeration.
type EnumerationValue struct {
	Value       int
	Enumeration *Enumeration
}

func (v EnumerationValue) String() string {
	if v.Enumeration == nil || v.Value < 0 || v.Value >= len(v.Enumeration.Values) {
		return "<invalid enum value>"
	}
	return v.Enumeration.Values[v.Value]
}

// --- Component references --------------------------------------------------

// ComponentRef is what the type system needs to know about a component.
// It is implemented by the object tree.
type ComponentRef interface {
	Name() string
	IsGlobal() bool
	LookupRootProperty(name string) PropertyLookupResult
	RootBaseType() Type
	RootPropertyFields() *Fields // declared properties of the root element
}

// Component is the type of elements instantiating a user-defined component.
type Component struct {
	Ref ComponentRef
}

func (c Component) isType() {}

func (c Component) String() string {
	if c.Ref == nil {
		return "<component>"
	}
	return c.Ref.Name()
}

// Equal compares components by identity.
func (c Component) Equal(other Type) bool {
	o, ok := other.(Component)
	return ok && c.Ref == o.Ref
}

// --- Unit products ---------------------------------------------------------

// UnitPower is a unit raised to an integer power.
type UnitPower struct {
	Unit  Unit
	Power int
}

// UnitProduct is the type of derived quantities, e.g. px×px.
// Values built by CanonicalUnitProduct are in canonical order.
type UnitProduct []UnitPower

func (u UnitProduct) isType() {}

func (u UnitProduct) String() string {
	parts := make([]string, len(u))
	for i, up := range u {
		if up.Power == 1 {
			parts[i] = up.Unit.String()
		} else {
			parts[i] = fmt.Sprintf("%s^%d", up.Unit, up.Power)
		}
	}
	return "(" + strings.Join(parts, "×") + ")"
}

// Equal compares unit products entry by entry.
func (u UnitProduct) Equal(other Type) bool {
	o, ok := other.(UnitProduct)
	if !ok || len(u) != len(o) {
		return false
	}
	for i := range u {
		if u[i] != o[i] {
			return false
		}
	}
	return true
}
