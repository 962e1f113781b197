package styles

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

	"github.com/andybalholm/cascadia"
	"github.com/npillmayer/uic/syntax"
	"golang.org/x/net/html"
)

// Style is a named set of stylesheets, with selectors compiled for matching.
type Style struct {
	Name  string
	rules []styleRule
}

type styleRule struct {
	selectors cascadia.SelectorGroup
	rule      Rule
}

// Declaration is the value a style gives to a property of an element.
// Property names are normalized, i.e. dashes are replaced by underscores.
type Declaration struct {
	Property  string
	Value     Property
	Important bool
}

// NewStyle compiles the selectors of the rules of a list of stylesheets.
// Rules of later sheets take precedence over rules of earlier sheets with
// the same specificity.
func NewStyle(name string, sheets ...StyleSheet) (*Style, error) {
	s := &Style{Name: name}
	for _, sheet := range sheets {
		if sheet == nil || sheet.Empty() {
			continue
		}
		for _, r := range sheet.Rules() {
			sel, err := cascadia.ParseGroup(r.Selector())
			if err != nil {
				return nil, fmt.Errorf("style %s: selector %q: %w", name, r.Selector(), err)
			}
			s.rules = append(s.rules, styleRule{selectors: sel, rule: r})
		}
	}
	tracer().Debugf("style %s has %d rules", name, len(s.rules))
	return s, nil
}

// RuleCount returns the number of rules of the style.
func (s *Style) RuleCount() int {
	return len(s.rules)
}

type candidate struct {
	Declaration
	specificity cascadia.Specificity
	order       int
}

// wins is true if candidate c overrides candidate o.
func (c candidate) wins(o candidate) bool {
	if c.Important != o.Important {
		return c.Important
	}
	if c.specificity != o.specificity {
		return o.specificity.Less(c.specificity)
	}
	return c.order > o.order
}

// Declarations returns the cascaded declarations of the style for an element
// node, sorted by property name.
func (s *Style) Declarations(n *html.Node) []Declaration {
	winners := make(map[string]candidate)
	order := 0
	for _, r := range s.rules {
		spec, ok := matchSpecificity(r.selectors, n)
		if !ok {
			continue
		}
		for _, key := range r.rule.Properties() {
			order++
			for _, kv := range split(key, r.rule.Value(key)) {
				c := candidate{
					Declaration: Declaration{Property: kv.Key, Value: kv.Value, Important: r.rule.IsImportant(key)},
					specificity: spec,
					order:       order,
				}
				if old, exists := winners[kv.Key]; !exists || c.wins(old) {
					winners[kv.Key] = c
				}
			}
		}
	}
	decls := make([]Declaration, 0, len(winners))
	for _, c := range winners {
		decls = append(decls, c.Declaration)
	}
	sort.Slice(decls, func(i, j int) bool { return decls[i].Property < decls[j].Property })
	return decls
}

// matchSpecificity returns the highest specificity of the selectors of a
// group matching n.
func matchSpecificity(group cascadia.SelectorGroup, n *html.Node) (cascadia.Specificity, bool) {
	var best cascadia.Specificity
	matched := false
	for _, sel := range group {
		if !sel.Match(n) {
			continue
		}
		if spec := sel.Specificity(); !matched || best.Less(spec) {
			best = spec
		}
		matched = true
	}
	return best, matched
}

func split(key string, value Property) []KeyValue {
	key = syntax.NormalizeIdentifier(strings.ToLower(strings.TrimSpace(key)))
	if IsCompoundProperty(key) {
		kvs, err := SplitCompoundProperty(key, value)
		if err != nil {
			tracer().Infof("style: %v", err)
			return nil
		}
		return kvs
	}
	return []KeyValue{{key, value}}
}

// --- Element nodes --------------------------------------------------------

// ElementNode creates a node of the matching surface for selectors. tag is
// the name of the builtin type of an element, classes are the names of the
// components the element instantiates. parent may be nil for the root.
//
// Type selectors match case-insensitively, class and id selectors match
// case-sensitively.
func ElementNode(tag, id string, classes []string, parent *html.Node) *html.Node {
	n := &html.Node{Type: html.ElementNode, Data: strings.ToLower(tag)}
	if id != "" {
		n.Attr = append(n.Attr, html.Attribute{Key: "id", Val: id})
	}
	if len(classes) > 0 {
		n.Attr = append(n.Attr, html.Attribute{Key: "class", Val: strings.Join(classes, " ")})
	}
	if parent != nil {
		parent.AppendChild(n)
	}
	return n
}
