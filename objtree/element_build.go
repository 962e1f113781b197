package objtree

/*
License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>

*/

import (
	"fmt"
	"strings"

	"github.com/npillmayer/uic/diagnostics"
	"github.com/npillmayer/uic/langtype"
	"github.com/npillmayer/uic/syntax"
)

// elementBuilder creates the elements of one component from syntax nodes.
type elementBuilder struct {
	diag *diagnostics.BuildDiagnostics
	tr   *langtype.TypeRegister
	cip  *ChildrenInsertionPoint // the component's @children placeholder, once found
}

// NewComponentFromNode creates a component from a Component node. Every
// element of the component has its enclosing component set.
func NewComponentFromNode(node *syntax.Node, diag *diagnostics.BuildDiagnostics, tr *langtype.TypeRegister) *Component {
	assertThat(node.Kind() == syntax.Component, "expected component node, is %s", node.Kind())
	eb := &elementBuilder{diag: diag, tr: tr}
	var root *Element
	if en := node.ChildNode(syntax.Element); en != nil {
		root = eb.fromNode(en, "root", langtype.Invalid)
	} else {
		assertThat(diag.HasError(), "component without element")
		root = NewElement("root", langtype.Invalid)
	}
	c := NewComponent(node.DeclaredName(), root)
	c.ChildInsertionPoint = eb.cip
	tracer().Debugf("component %q created", c.ID)
	return c
}

func isElementType(t langtype.Type) bool {
	switch t.(type) {
	case langtype.Component, *langtype.BuiltinElement:
		return true
	}
	return false
}

// fromNode creates an element from an Element node. parentType is the base
// type of the parent element, or Invalid for the root of a component.
func (eb *elementBuilder) fromNode(node *syntax.Node, id string, parentType langtype.Type) *Element {
	var base langtype.Type = langtype.Invalid
	if qn := node.ChildNode(syntax.QualifiedName); qn != nil {
		name := QualifiedTypeNameFromNode(qn).String()
		t, err := langtype.LookupTypeForChildElement(parentType, name, eb.tr)
		if err != nil {
			eb.diag.PushError(err.Error(), qn)
		} else if c, ok := AsComponent(t); ok && c.IsGlobal() {
			eb.diag.PushError("Cannot create an instance of a global component", qn)
		} else if !isElementType(t) {
			eb.diag.PushError(fmt.Sprintf("'%s' cannot be used as an element", t), qn)
		} else {
			base = t
		}
	} else {
		if parentType != langtype.Invalid {
			assertThat(eb.diag.HasError(), "sub-element without base type")
			return NewElement(id, langtype.Invalid)
		}
		eb.checkGlobalBody(node)
		base = langtype.Void
	}
	r := NewElement(id, base)
	r.Node = node
	eb.propertyDeclarations(r, node)
	eb.parseBindings(r, node.ChildNodes(syntax.Binding), func(b *syntax.Node) *syntax.Node {
		return b.ChildNode(syntax.BindingExpression)
	})
	eb.parseBindings(r, node.ChildNodes(syntax.TwoWayBinding), func(b *syntax.Node) *syntax.Node {
		return b
	})
	if builtin, ok := base.(*langtype.BuiltinElement); ok {
		for _, name := range builtin.SortedPropertyNames() {
			info := builtin.Properties[name]
			if info.DefaultValue == nil {
				continue
			}
			r.SetBindingIfNotSet(name, func() Expression {
				return MaybeConvertTo(LiteralExpression(info.DefaultValue), info.Ty, node, eb.diag)
			})
		}
	}
	eb.callbackDeclarations(r, node)
	eb.callbackConnections(r, node)
	eb.animations(r, node)
	eb.children(r, node)
	eb.states(r, node)
	eb.transitions(r, node)
	return r
}

func (eb *elementBuilder) checkGlobalBody(node *syntax.Node) {
	errorOn := func(kind syntax.Kind, what string) {
		for _, n := range node.ChildNodes(kind) {
			eb.diag.PushError("A global component cannot have "+what, n)
		}
	}
	errorOn(syntax.SubElement, "sub elements")
	errorOn(syntax.RepeatedElement, "sub elements")
	errorOn(syntax.ConditionalElement, "sub elements")
	errorOn(syntax.ChildrenPlaceholder, "sub elements")
	errorOn(syntax.CallbackConnection, "callback connections")
	errorOn(syntax.PropertyAnimation, "animations")
	errorOn(syntax.States, "states")
	errorOn(syntax.Transitions, "transitions")
}

func (eb *elementBuilder) propertyDeclarations(r *Element, node *syntax.Node) {
	for _, decl := range node.ChildNodes(syntax.PropertyDeclaration) {
		var ptype langtype.Type = langtype.Void // to be inferred from a two-way binding
		typeNode := decl.ChildNode(syntax.Type)
		if typeNode != nil {
			ptype = TypeFromNode(typeNode, eb.diag, eb.tr)
			if ptype != langtype.Invalid && !langtype.IsPropertyType(ptype) {
				eb.diag.PushError(fmt.Sprintf("'%s' is not a valid property type", ptype), typeNode)
			}
		}
		nameNode := decl.ChildNode(syntax.DeclaredIdentifier)
		name, _ := eb.checkOverride(r, decl.DeclaredName(), nameNode)
		r.PropertyDeclarations[name] = &PropertyDeclaration{PropertyType: ptype, Node: decl}
		for _, kind := range []syntax.Kind{syntax.BindingExpression, syntax.TwoWayBinding} {
			if b := decl.ChildNode(kind); b != nil {
				eb.insertBinding(r, name, b, nameNode)
			}
		}
	}
}

// checkOverride reports a declaration of a property the element already
// has. It returns the name to declare the property under and false if the
// declaration overrides an existing property.
func (eb *elementBuilder) checkOverride(r *Element, unresolved string, at diagnostics.Spanned) (string, bool) {
	lr := r.LookupProperty(unresolved)
	name := lr.ResolvedName
	if name == "" {
		name = unresolved
	}
	_, declared := r.PropertyDeclarations[name]
	if declared || lr.PropertyType != langtype.Invalid {
		eb.diag.PushError(fmt.Sprintf("Cannot override property '%s'", name), at)
		return name, false
	}
	return name, true
}

// insertBinding adds an uncompiled binding. A second binding for the same
// property is reported and dropped.
func (eb *elementBuilder) insertBinding(r *Element, name string, b *syntax.Node, at diagnostics.Spanned) {
	if _, exists := r.Bindings[name]; exists {
		eb.diag.PushError("Duplicated property binding", at)
		return
	}
	r.Bindings[name] = NewUncompiledBinding(b)
}

// parseBindings adds bindings for Binding and TwoWayBinding members. expr
// extracts the node to compile from a member.
func (eb *elementBuilder) parseBindings(r *Element, members []*syntax.Node, expr func(*syntax.Node) *syntax.Node) {
	for _, m := range members {
		nameTok := m.ChildNode(syntax.Identifier)
		if nameTok == nil {
			continue
		}
		bnode := expr(m)
		if bnode == nil {
			assertThat(eb.diag.HasError(), "binding without expression")
			continue
		}
		unresolved := syntax.NormalizeIdentifier(nameTok.Text())
		lr := r.LookupProperty(unresolved)
		if !langtype.IsPropertyType(lr.PropertyType) && lr.PropertyType != langtype.Void {
			switch lr.PropertyType.(type) {
			case langtype.Primitive:
				if lr.PropertyType == langtype.Invalid {
					if r.BaseType() == langtype.Invalid {
						continue // the unknown base type is reported already
					}
					eb.diag.PushError(fmt.Sprintf("Unknown property %s in %s", unresolved, r.BaseType()), nameTok)
				} else {
					eb.cannotAssign(r, unresolved, nameTok)
				}
			case *langtype.Callback:
				eb.diag.PushError(fmt.Sprintf("'%s' is a callback. Use `=>` to connect", unresolved), nameTok)
			default:
				eb.cannotAssign(r, unresolved, nameTok)
			}
		}
		if lr.ResolvedName != unresolved {
			eb.diag.PushPropertyDeprecationWarning(unresolved, lr.ResolvedName, nameTok)
		}
		eb.insertBinding(r, lr.ResolvedName, bnode, nameTok)
	}
}

func (eb *elementBuilder) cannotAssign(r *Element, name string, at diagnostics.Spanned) {
	eb.diag.PushError(fmt.Sprintf("Cannot assign to %s in %s because it does not have a valid property type",
		name, r.BaseType()), at)
}

func (eb *elementBuilder) callbackDeclarations(r *Element, node *syntax.Node) {
	for _, decl := range node.ChildNodes(syntax.CallbackDeclaration) {
		nameNode := decl.ChildNode(syntax.DeclaredIdentifier)
		name, fresh := eb.checkOverride(r, decl.DeclaredName(), nameNode)
		if tw := decl.ChildNode(syntax.TwoWayBinding); tw != nil {
			if fresh {
				r.PropertyDeclarations[name] = &PropertyDeclaration{PropertyType: langtype.InferredCallback, Node: decl}
			}
			eb.insertBinding(r, name, tw, nameNode)
			continue
		}
		if !fresh {
			continue // the existing declaration is kept
		}
		cb := &langtype.Callback{}
		for _, tn := range decl.ChildNodes(syntax.Type) {
			cb.Args = append(cb.Args, TypeFromNode(tn, eb.diag, eb.tr))
		}
		if rt := decl.ChildNode(syntax.ReturnType); rt != nil {
			if tn := rt.ChildNode(syntax.Type); tn != nil {
				cb.Return = TypeFromNode(tn, eb.diag, eb.tr)
			}
		}
		r.PropertyDeclarations[name] = &PropertyDeclaration{PropertyType: cb, Node: decl}
	}
}

func (eb *elementBuilder) callbackConnections(r *Element, node *syntax.Node) {
	for _, con := range node.ChildNodes(syntax.CallbackConnection) {
		nameTok := con.ChildNode(syntax.Identifier)
		if nameTok == nil {
			assertThat(eb.diag.HasError(), "callback connection without name")
			continue
		}
		unresolved := syntax.NormalizeIdentifier(nameTok.Text())
		lr := r.LookupProperty(unresolved)
		if cb, ok := lr.PropertyType.(*langtype.Callback); ok {
			if n := len(con.ChildNodes(syntax.DeclaredIdentifier)); n > len(cb.Args) {
				eb.diag.PushError(fmt.Sprintf("'%s' only has %d arguments, but %d were provided",
					unresolved, len(cb.Args), n), nameTok)
			}
		} else if lr.PropertyType != langtype.InferredCallback {
			eb.diag.PushError(fmt.Sprintf("'%s' is not a callback in %s", unresolved, r.BaseType()), nameTok)
			continue
		}
		if lr.ResolvedName != unresolved {
			eb.diag.PushPropertyDeprecationWarning(unresolved, lr.ResolvedName, con)
		}
		if _, exists := r.Bindings[lr.ResolvedName]; exists {
			eb.diag.PushError("Duplicated callback", nameTok)
			continue
		}
		r.Bindings[lr.ResolvedName] = NewUncompiledBinding(con)
	}
}

func (eb *elementBuilder) animations(r *Element, node *syntax.Node) {
	for _, anim := range node.ChildNodes(syntax.PropertyAnimation) {
		if star := anim.ChildNode(syntax.Star); star != nil {
			eb.diag.PushError("catch-all property is only allowed within transitions", star)
		}
		for _, qn := range anim.ChildNodes(syntax.QualifiedName) {
			segs := qn.Segments()
			if len(segs) != 1 {
				eb.diag.PushError("Can only refer to property in the current element", qn)
				continue
			}
			lr := r.LookupProperty(segs[0])
			animElem := eb.animationElement(anim, qn, lr.PropertyType)
			if animElem == nil {
				continue
			}
			if lr.ResolvedName != segs[0] {
				eb.diag.PushPropertyDeprecationWarning(segs[0], lr.ResolvedName, qn)
			}
			if _, exists := r.PropertyAnimations[lr.ResolvedName]; exists {
				eb.diag.PushError("Duplicated animation", qn)
				continue
			}
			r.PropertyAnimations[lr.ResolvedName] = &StaticAnimation{Animation: animElem}
		}
	}
}

// animationElement creates the element holding the bindings of an animation
// of a property of type ptype.
func (eb *elementBuilder) animationElement(anim, prop *syntax.Node, ptype langtype.Type) *Element {
	animType := eb.tr.PropertyAnimationTypeForProperty(ptype)
	if _, ok := animType.(*langtype.BuiltinElement); !ok {
		eb.diag.PushError(fmt.Sprintf("'%s' is not a property that can be animated",
			strings.TrimSpace(QualifiedTypeNameFromNode(prop).String())), prop)
		return nil
	}
	e := NewElement("", animType)
	e.Node = anim
	eb.parseBindings(e, anim.ChildNodes(syntax.Binding), func(b *syntax.Node) *syntax.Node {
		return b.ChildNode(syntax.BindingExpression)
	})
	return e
}

func (eb *elementBuilder) children(r *Element, node *syntax.Node) {
	var placeholder *syntax.Node
	for _, ch := range node.Nodes() {
		switch ch.Kind() {
		case syntax.SubElement:
			r.Children = append(r.Children, eb.fromSubElementNode(ch, r.BaseType()))
		case syntax.RepeatedElement:
			r.Children = append(r.Children, eb.fromRepeatedNode(ch, r))
		case syntax.ConditionalElement:
			r.Children = append(r.Children, eb.fromConditionalNode(ch, r.BaseType()))
		case syntax.ChildrenPlaceholder:
			if placeholder != nil {
				eb.diag.PushError("The @children placeholder can only appear once in an element", ch)
			} else {
				placeholder = ch
			}
		}
	}
	if placeholder != nil {
		if eb.cip != nil {
			eb.diag.PushError("The @children placeholder can only appear once in an element hierarchy", placeholder)
		} else {
			eb.cip = &ChildrenInsertionPoint{Element: r, Node: placeholder}
		}
	}
}

func (eb *elementBuilder) fromSubElementNode(node *syntax.Node, parentType langtype.Type) *Element {
	id, _ := node.Identifier()
	switch id {
	case "parent", "self", "root":
		eb.diag.PushError(fmt.Sprintf("'%s' is a reserved id", id), node.ChildNode(syntax.Identifier))
	}
	en := node.ChildNode(syntax.Element)
	if en == nil {
		assertThat(eb.diag.HasError(), "sub-element without element")
		return NewElement(id, langtype.Invalid)
	}
	return eb.fromNode(en, id, parentType)
}

func (eb *elementBuilder) fromRepeatedNode(node *syntax.Node, parent *Element) *Element {
	var lv *ListViewInfo
	if parent.BaseType().String() == "ListView" {
		lv = &ListViewInfo{
			ViewportY:      NewNamedReference(parent, "viewport_y"),
			ViewportHeight: NewNamedReference(parent, "viewport_height"),
			ViewportWidth:  NewNamedReference(parent, "viewport_width"),
			ListViewHeight: NewNamedReference(parent, "visible_height"),
			ListViewWidth:  NewNamedReference(parent, "visible_width"),
		}
	}
	info := &RepeatedElementInfo{
		Model:       &Uncompiled{Node: node.ChildNode(syntax.Expression)},
		ModelDataID: node.DeclaredName(),
		IsListView:  lv,
	}
	info.IndexID, _ = node.ChildNode(syntax.RepeatedIndex).Identifier()
	e := eb.fromSubElementNode(node.ChildNode(syntax.SubElement), parent.BaseType())
	e.Repeated = info
	return e
}

func (eb *elementBuilder) fromConditionalNode(node *syntax.Node, parentType langtype.Type) *Element {
	info := &RepeatedElementInfo{
		Model:                &Uncompiled{Node: node.ChildNode(syntax.Expression)},
		IsConditionalElement: true,
	}
	e := eb.fromSubElementNode(node.ChildNode(syntax.SubElement), parentType)
	e.Repeated = info
	return e
}

func (eb *elementBuilder) states(r *Element, node *syntax.Node) {
	for _, states := range node.ChildNodes(syntax.States) {
		for _, sn := range states.ChildNodes(syntax.State) {
			s := &State{ID: sn.DeclaredName()}
			if cond := sn.ChildNode(syntax.Expression); cond != nil {
				s.Condition = &Uncompiled{Node: cond}
			}
			for _, ch := range sn.ChildNodes(syntax.StatePropertyChange) {
				nr, _, ok := eb.lookupPropertyFromQualifiedName(ch.ChildNode(syntax.QualifiedName), r)
				if !ok {
					continue
				}
				s.PropertyChanges = append(s.PropertyChanges, StatePropertyChange{
					Ref:        nr,
					Expression: &Uncompiled{Node: ch.ChildNode(syntax.BindingExpression)},
				})
			}
			r.States = append(r.States, s)
		}
	}
}

func (eb *elementBuilder) transitions(r *Element, node *syntax.Node) {
	for _, transitions := range node.ChildNodes(syntax.Transitions) {
		for _, tn := range transitions.ChildNodes(syntax.Transition) {
			dir, _ := tn.Identifier()
			t := &Transition{
				IsOut:   dir == "out",
				StateID: tn.DeclaredName(),
				Node:    tn.ChildNode(syntax.DeclaredIdentifier),
			}
			for _, pa := range tn.ChildNodes(syntax.PropertyAnimation) {
				if star := pa.ChildNode(syntax.Star); star != nil {
					eb.diag.PushError("catch-all property in transitions is not supported", star)
				}
				for _, qn := range pa.ChildNodes(syntax.QualifiedName) {
					nr, ptype, ok := eb.lookupPropertyFromQualifiedName(qn, r)
					if !ok {
						continue
					}
					if anim := eb.animationElement(pa, qn, ptype); anim != nil {
						t.PropertyAnimations = append(t.PropertyAnimations, TransitionAnimation{
							Ref:       nr,
							Location:  qn.Location(),
							Animation: anim,
						})
					}
				}
			}
			r.Transitions = append(r.Transitions, t)
		}
	}
}

// lookupPropertyFromQualifiedName resolves `prop` or `id.prop` relative to
// element r.
func (eb *elementBuilder) lookupPropertyFromQualifiedName(qn *syntax.Node, r *Element) (NamedReference, langtype.Type, bool) {
	if qn == nil {
		return NamedReference{}, langtype.Invalid, false
	}
	qname := QualifiedTypeNameFromNode(qn)
	switch len(qname.Members) {
	case 1:
		prop := qname.Members[0]
		lr := r.LookupProperty(prop)
		if !langtype.IsPropertyType(lr.PropertyType) {
			eb.diag.PushError(fmt.Sprintf("'%s' is not a valid property", qname), qn)
		} else if lr.ResolvedName != prop {
			eb.diag.PushPropertyDeprecationWarning(prop, lr.ResolvedName, qn)
		}
		return NewNamedReference(r, lr.ResolvedName), lr.PropertyType, true
	case 2:
		id, prop := qname.Members[0], qname.Members[1]
		elem := FindElementByID(r, id)
		if elem == nil {
			eb.diag.PushError(fmt.Sprintf("'%s' is not a valid element id", id), qn)
			return NamedReference{}, langtype.Invalid, false
		}
		lr := elem.LookupProperty(prop)
		if !langtype.IsPropertyType(lr.PropertyType) {
			eb.diag.PushError(fmt.Sprintf("'%s' not found in '%s'", prop, id), qn)
		} else if lr.ResolvedName != prop {
			eb.diag.PushPropertyDeprecationWarning(prop, lr.ResolvedName, qn)
		}
		return NewNamedReference(elem, lr.ResolvedName), lr.PropertyType, true
	}
	eb.diag.PushError(fmt.Sprintf("'%s' is not a valid property", qname), qn)
	return NamedReference{}, langtype.Invalid, false
}
