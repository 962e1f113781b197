package passes

import (
	"sort"

	"github.com/npillmayer/uic/langtype"
	"github.com/npillmayer/uic/objtree"
)

// CollectSubComponents fills the sub-components used by root: every
// component some element instantiates, directly or within another
// sub-component. A component comes after the components it uses. Repeater
// components are part of the component they were created in and are not
// listed.
func CollectSubComponents(root *objtree.Component) {
	if root == nil {
		return
	}
	var result []*objtree.Component
	seen := map[*objtree.Component]bool{root: true}
	var collect func(c *objtree.Component)
	collect = func(c *objtree.Component) {
		objtree.RecurseElemIncludingSubComponents(c, struct{}{}, func(e *objtree.Element, _ struct{}) struct{} {
			sub, ok := objtree.AsComponent(e.BaseType())
			if !ok || seen[sub] || isRepeaterComponent(sub) {
				return struct{}{}
			}
			seen[sub] = true
			collect(sub)
			result = append(result, sub)
			return struct{}{}
		})
	}
	collect(root)
	tracer().Debugf("component %q uses %d sub-components", root.ID, len(result))
	replaceComponents(&root.UsedTypes.SubComponents, result)
}

// CollectGlobals fills the globals used by root and its sub-components,
// ordered by name.
func CollectGlobals(root *objtree.Component) {
	if root == nil {
		return
	}
	globals := make(map[string]*objtree.Component)
	collect := func(nr *objtree.NamedReference) {
		if nr.IsZero() {
			return
		}
		c := nr.Element().EnclosingComponent()
		if c != nil && c.IsGlobal() {
			globals[c.ID] = c
		}
	}
	for _, c := range withSubComponents(root) {
		objtree.VisitAllNamedReferences(c, collect)
	}
	ids := make([]string, 0, len(globals))
	for id := range globals {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	result := make([]*objtree.Component, len(ids))
	for i, id := range ids {
		result[i] = globals[id]
	}
	replaceComponents(&root.UsedTypes.Globals, result)
}

// CollectStructs fills the named struct types used by root and its
// sub-components, in the public API or in expressions. A struct comes after
// the structs its fields use.
func CollectStructs(root *objtree.Component) {
	if root == nil {
		return
	}
	structs := make(map[string]*langtype.Struct)
	collect := func(t langtype.Type) {
		visitNamedStructs(t, func(s *langtype.Struct) {
			if _, ok := structs[s.Name]; !ok {
				structs[s.Name] = s
			}
		})
	}
	for _, c := range withSubComponents(root) {
		for _, name := range c.RootElement.SortedDeclarationNames() {
			collect(c.RootElement.PropertyDeclarations[name].PropertyType)
		}
		objtree.VisitAllExpressions(c, func(x *objtree.Expression, _ func() langtype.Type) {
			objtree.VisitRecursive(*x, func(sub objtree.Expression) {
				collect(objtree.TypeOf(sub))
			})
		})
	}
	root.UsedTypes.Structs = sortStructs(structs)
}

// visitNamedStructs calls f for every named struct within type t.
func visitNamedStructs(t langtype.Type, f func(*langtype.Struct)) {
	switch x := t.(type) {
	case *langtype.Struct:
		if x.Name != "" {
			f(x)
		}
		for _, name := range x.Fields.Names() {
			ft, _ := x.Fields.Get(name)
			visitNamedStructs(ft, f)
		}
	case langtype.Array:
		visitNamedStructs(x.Elem, f)
	case *langtype.Callback:
		for _, a := range x.Args {
			visitNamedStructs(a, f)
		}
		if x.Return != nil {
			visitNamedStructs(x.Return, f)
		}
	}
}

// sortStructs orders structs by name, moving the structs a struct depends
// on before it.
func sortStructs(structs map[string]*langtype.Struct) []langtype.Type {
	names := make([]string, 0, len(structs))
	for n := range structs {
		names = append(names, n)
	}
	sort.Strings(names)
	var result []langtype.Type
	done := make(map[string]bool)
	var add func(name string)
	add = func(name string) {
		if done[name] {
			return
		}
		done[name] = true
		s := structs[name]
		for _, fname := range s.Fields.Names() {
			ft, _ := s.Fields.Get(fname)
			visitNamedStructs(ft, func(dep *langtype.Struct) {
				if _, ok := structs[dep.Name]; ok {
					add(dep.Name)
				}
			})
		}
		result = append(result, s)
	}
	for _, n := range names {
		add(n)
	}
	return result
}

// withSubComponents returns root and, from an earlier run of
// CollectSubComponents, its sub-components.
func withSubComponents(root *objtree.Component) []*objtree.Component {
	return append([]*objtree.Component{root}, root.UsedTypes.SubComponents...)
}

// replaceComponents stores components in a slot owning them.
func replaceComponents(slot *[]*objtree.Component, components []*objtree.Component) {
	for _, c := range components {
		c.Retain()
	}
	for _, c := range *slot {
		c.Release()
	}
	*slot = components
}
