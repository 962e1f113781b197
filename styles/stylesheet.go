package styles

/*
License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>

*/

import (
	"fmt"

	"github.com/aymerick/douceur/css"
	"github.com/aymerick/douceur/parser"
)

// StyleSheet is an interface to abstract away a stylesheet-implementation.
// Styles are built from stylesheets without knowing about the parser
// which produced them. The implementation used by Parse is CSSStyles.
//
// See interface Rule.
type StyleSheet interface {
	AppendRules(StyleSheet) // append rules from another stylesheet
	Empty() bool            // does this stylesheet contain any rules?
	Rules() []Rule          // all the rules of a stylesheet
}

// Rule is the type stylesheets consists of.
//
// See interface StyleSheet.
type Rule interface {
	Selector() string      // the prelude / selectors of the rule
	Properties() []string  // property keys, e.g. "font-size"
	Value(string) Property // property value for key, e.g. "15px"
	IsImportant(string) bool
}

// CSSStyles is an adapter of a douceur stylesheet for interface StyleSheet.
type CSSStyles struct {
	css css.Stylesheet
}

// Parse parses the text of a CSS stylesheet.
func Parse(text string) (*CSSStyles, error) {
	c, err := parser.Parse(text)
	if err != nil {
		return nil, fmt.Errorf("parsing stylesheet: %w", err)
	}
	return Wrap(c), nil
}

// Wrap a douceur.css.Stylesheet into CSSStyles.
// The stylesheet is now managed by the wrapper.
func Wrap(css *css.Stylesheet) *CSSStyles {
	sheet := &CSSStyles{*css}
	return sheet
}

// Empty checks if this stylesheet contains any rules.
//
// Interface StyleSheet
func (sheet *CSSStyles) Empty() bool {
	return len(sheet.css.Rules) == 0
}

// AppendRules appends rules from another stylesheet.
//
// Interface StyleSheet
func (sheet *CSSStyles) AppendRules(other StyleSheet) {
	if othercss, ok := other.(*CSSStyles); ok {
		sheet.css.Rules = append(sheet.css.Rules, othercss.css.Rules...)
		return
	}
	for _, r := range other.Rules() {
		decl := make([]*css.Declaration, 0, len(r.Properties()))
		for _, key := range r.Properties() {
			decl = append(decl, &css.Declaration{Property: key, Value: r.Value(key).String(),
				Important: r.IsImportant(key)})
		}
		sheet.css.Rules = append(sheet.css.Rules, &css.Rule{Kind: css.QualifiedRule,
			Prelude: r.Selector(), Declarations: decl})
	}
}

// Rules returns all the qualified rules of a stylesheet. At-rules are not
// supported and skipped.
//
// Interface StyleSheet
func (sheet *CSSStyles) Rules() []Rule {
	rules := make([]Rule, 0, len(sheet.css.Rules))
	for _, r := range sheet.css.Rules {
		if r.Kind == css.AtRule {
			tracer().Infof("ignoring at-rule %s", r.Name)
			continue
		}
		rules = append(rules, (*cssRule)(r))
	}
	return rules
}

var _ StyleSheet = &CSSStyles{}

// cssRule is an adapter for interface Rule.
type cssRule css.Rule

func (r *cssRule) Selector() string {
	return r.Prelude
}

func (r *cssRule) Properties() []string {
	props := make([]string, 0, len(r.Declarations))
	for _, d := range r.Declarations {
		props = append(props, d.Property)
	}
	return props
}

// Value returns the property value for a key. If a key is declared more than
// once, the last declaration wins.
func (r *cssRule) Value(key string) Property {
	v := NullStyle
	for _, d := range r.Declarations {
		if d.Property == key {
			v = Property(d.Value)
		}
	}
	return v
}

func (r *cssRule) IsImportant(key string) bool {
	important := false
	for _, d := range r.Declarations {
		if d.Property == key {
			important = d.Important
		}
	}
	return important
}

var _ Rule = &cssRule{}
