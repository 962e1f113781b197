package objtree

/*
License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>

*/

import (
	"sort"
	"weak"

	"github.com/npillmayer/uic/diagnostics"
	"github.com/npillmayer/uic/langtype"
	"github.com/npillmayer/uic/syntax"
)

// Element is a node of the object tree: an instance of a builtin element or
// of a component, with its bindings, declarations and children.
type Element struct {
	// ID is the element's id within its component, possibly empty. The root
	// of a component has id "root".
	ID                   string
	baseType             langtype.Type
	Bindings             map[string]*BindingExpression
	PropertyAnalysis     map[string]*PropertyAnalysis
	Children             []*Element
	enclosing            weak.Pointer[Component]
	PropertyDeclarations map[string]*PropertyDeclaration
	namedRefs            namedReferenceContainer
	PropertyAnimations   map[string]PropertyAnimation
	Repeated             *RepeatedElementInfo // non-nil for `for` and `if` elements
	States               []*State
	Transitions          []*Transition
	ChildOfLayout        bool
	LayoutInfoProp       *LayoutInfoProps
	IsFlickableViewport  bool
	itemIndex            int // -1 until generated
	Node                 *syntax.Node
}

// NewElement creates an element with an id and a base type.
func NewElement(id string, base langtype.Type) *Element {
	e := &Element{
		ID:                   id,
		baseType:             langtype.Invalid,
		Bindings:             make(map[string]*BindingExpression),
		PropertyAnalysis:     make(map[string]*PropertyAnalysis),
		PropertyDeclarations: make(map[string]*PropertyDeclaration),
		PropertyAnimations:   make(map[string]PropertyAnimation),
		itemIndex:            -1,
	}
	e.SetBaseType(base)
	return e
}

func (e *Element) String() string {
	return "Element(" + e.ID + ": " + e.BaseType().String() + ")"
}

// BaseType returns the type the element instantiates.
func (e *Element) BaseType() langtype.Type {
	if e.baseType == nil {
		return langtype.Invalid
	}
	return e.baseType
}

// SetBaseType replaces the element's base type. A component base type is a
// strong owner of its component.
func (e *Element) SetBaseType(t langtype.Type) {
	if t == nil {
		t = langtype.Invalid
	}
	if c, ok := AsComponent(t); ok {
		c.Retain()
	}
	if c, ok := AsComponent(e.baseType); ok {
		c.Release()
	}
	e.baseType = t
}

// EnclosingComponent returns the component the element belongs to, or nil if
// it is not set or the component has been dropped.
func (e *Element) EnclosingComponent() *Component {
	c := e.enclosing.Value()
	if c == nil || c.dropped {
		return nil
	}
	return c
}

// SetEnclosingComponent sets the weak back-reference to the enclosing
// component.
func (e *Element) SetEnclosingComponent(c *Component) {
	e.enclosing = weak.Make(c)
}

// ItemIndex returns the index of the element in the item tree, or -1.
func (e *Element) ItemIndex() int {
	return e.itemIndex
}

// SetItemIndex sets the index of the element in the item tree, once.
func (e *Element) SetItemIndex(i int) {
	assertThat(e.itemIndex < 0, "item index of %s set twice", e.ID)
	e.itemIndex = i
}

// Location makes elements diagnostics.Spanned.
func (e *Element) Location() diagnostics.SourceLocation {
	return e.Node.Location()
}

// LookupProperty looks up a property declared on this element, or else on
// its base type.
func (e *Element) LookupProperty(name string) langtype.PropertyLookupResult {
	if d, ok := e.PropertyDeclarations[name]; ok {
		return langtype.PropertyLookupResult{ResolvedName: name, PropertyType: d.PropertyType}
	}
	return langtype.LookupProperty(e.BaseType(), name)
}

// Analysis returns the property analysis of a property, creating it on demand.
func (e *Element) Analysis(name string) *PropertyAnalysis {
	if e.PropertyAnalysis == nil {
		e.PropertyAnalysis = make(map[string]*PropertyAnalysis)
	}
	a, ok := e.PropertyAnalysis[name]
	if !ok {
		a = &PropertyAnalysis{}
		e.PropertyAnalysis[name] = a
	}
	return a
}

// SetBindingIfNotSet installs a binding created by f, unless the property is
// already bound. It reports whether a binding was installed.
func (e *Element) SetBindingIfNotSet(name string, f func() Expression) bool {
	if _, ok := e.Bindings[name]; ok {
		return false
	}
	e.Bindings[name] = NewBinding(f())
	return true
}

// SortedBindingNames returns the names of all bound properties, sorted.
func (e *Element) SortedBindingNames() []string {
	return sortedKeys(e.Bindings)
}

// SortedDeclarationNames returns the names of all declared properties,
// sorted.
func (e *Element) SortedDeclarationNames() []string {
	return sortedKeys(e.PropertyDeclarations)
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// NativeClass returns the native class implementing this element, following
// component base types.
func (e *Element) NativeClass() *langtype.NativeClass {
	for elem := e; elem != nil; {
		switch b := elem.BaseType().(type) {
		case *langtype.BuiltinElement:
			return b.NativeClass
		case *langtype.NativeClass:
			return b
		case langtype.Component:
			c, ok := b.Ref.(*Component)
			if !ok {
				return nil
			}
			elem = c.RootElement
		default:
			return nil
		}
	}
	return nil
}

// BuiltinType returns the builtin element this element is ultimately an
// instance of, following component base types.
func (e *Element) BuiltinType() *langtype.BuiltinElement {
	for elem := e; elem != nil; {
		switch b := elem.BaseType().(type) {
		case *langtype.BuiltinElement:
			return b
		case langtype.Component:
			c, ok := b.Ref.(*Component)
			if !ok {
				return nil
			}
			elem = c.RootElement
		default:
			return nil
		}
	}
	return nil
}

// FindElementByID searches an element with a given id in the tree starting
// at e. The children of repeated elements are not searched.
func FindElementByID(e *Element, id string) *Element {
	if e.ID == id {
		return e
	}
	for _, ch := range e.Children {
		if ch.Repeated != nil {
			continue
		}
		if found := FindElementByID(ch, id); found != nil {
			return found
		}
	}
	return nil
}

// FindParentElement finds the parent of e within its enclosing component.
func FindParentElement(e *Element) *Element {
	c := e.EnclosingComponent()
	if c == nil || c.RootElement == nil {
		return nil
	}
	var find func(parent *Element) *Element
	find = func(parent *Element) *Element {
		for _, ch := range parent.Children {
			if ch == e {
				return parent
			}
			if ch.Repeated != nil {
				continue
			}
			if p := find(ch); p != nil {
				return p
			}
		}
		return nil
	}
	return find(c.RootElement)
}

// --- Element parts ---------------------------------------------------------

// RepeatedElementInfo describes `for` and `if` elements.
type RepeatedElementInfo struct {
	Model                Expression
	ModelDataID          string
	IndexID              string
	IsConditionalElement bool // `if cond : elem`, modelled as a repeater
	IsListView           *ListViewInfo
}

// ListViewInfo holds references into a ListView parent of a repeater.
type ListViewInfo struct {
	ViewportY      NamedReference
	ViewportHeight NamedReference
	ViewportWidth  NamedReference
	ListViewHeight NamedReference // visible_height
	ListViewWidth  NamedReference // visible_width
}

// LayoutInfoProps references the properties holding the layout info of an
// element.
type LayoutInfoProps struct {
	Horizontal NamedReference
	Vertical   NamedReference
}

// State is a named state with optional condition.
type State struct {
	ID              string
	Condition       Expression // may be nil
	PropertyChanges []StatePropertyChange
}

// StatePropertyChange is a property binding active in a state.
type StatePropertyChange struct {
	Ref        NamedReference
	Expression Expression
}

// Transition holds the animations running when entering or leaving a state.
type Transition struct {
	IsOut              bool
	StateID            string
	PropertyAnimations []TransitionAnimation
	Node               *syntax.Node
}

// TransitionAnimation is an animation of a property within a transition.
// Animation is an element of the property animation type.
type TransitionAnimation struct {
	Ref       NamedReference
	Location  diagnostics.SourceLocation
	Animation *Element
}

// PropertyAnimation is the animation of a property. It is either a
// StaticAnimation or a TransitionAnimations.
type PropertyAnimation interface {
	isPropertyAnimation()
}

// StaticAnimation animates every change of a property.
type StaticAnimation struct {
	Animation *Element
}

// TransitionAnimations select an animation depending on state transitions.
type TransitionAnimations struct {
	StateRef   Expression
	Animations []TransitionPropertyAnimation
}

func (*StaticAnimation) isPropertyAnimation()      {}
func (*TransitionAnimations) isPropertyAnimation() {}

// TransitionPropertyAnimation is an animation bound to entering or leaving a
// state.
type TransitionPropertyAnimation struct {
	StateID   int
	IsOut     bool
	Animation *Element
}

// Condition returns the expression which selects this animation, given an
// expression for the state struct.
func (t *TransitionPropertyAnimation) Condition(state Expression) Expression {
	field := "current_state"
	if t.IsOut {
		field = "previous_state"
	}
	return &BinaryExpr{
		LHS: &StructFieldAccess{Base: state, Name: field},
		RHS: Number(float64(t.StateID), langtype.UnitNone),
		Op:  '=',
	}
}
