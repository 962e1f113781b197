package objtree

import (
	"github.com/npillmayer/uic/diagnostics"
	"github.com/npillmayer/uic/langtype"
	"github.com/npillmayer/uic/syntax"
)

// BindingExpression is the expression bound to a property, together with
// its source location and priority. Bindings from source have priority 1,
// bindings synthesized by passes have priority 0.
type BindingExpression struct {
	Expression Expression
	Span       diagnostics.SourceLocation
	Priority   int
	Analysis   *BindingAnalysis // set by binding analysis
}

// BindingAnalysis is the result of the binding analysis pass.
type BindingAnalysis struct {
	IsInBindingLoop bool
	IsConst         bool
}

// NewUncompiledBinding creates a binding from a syntax node, to be compiled
// by the resolving pass.
func NewUncompiledBinding(node *syntax.Node) *BindingExpression {
	return &BindingExpression{
		Expression: &Uncompiled{Node: node},
		Span:       node.Location(),
		Priority:   1,
	}
}

// NewBinding creates a binding for a synthesized expression.
func NewBinding(e Expression) *BindingExpression {
	return &BindingExpression{
		Expression: e,
		Span:       diagnostics.SourceLocation{Span: diagnostics.NoSpan},
	}
}

// Location makes bindings diagnostics.Spanned.
func (b *BindingExpression) Location() diagnostics.SourceLocation {
	return b.Span
}

// PropertyAnalysis records how a property is used.
type PropertyAnalysis struct {
	IsSet  bool // assigned to by code
	IsRead bool // read by a binding
}

// Merge combines the analysis of an aliased property into a.
func (a *PropertyAnalysis) Merge(other PropertyAnalysis) {
	a.IsSet = a.IsSet || other.IsSet
	a.IsRead = a.IsRead || other.IsRead
}

// PropertyDeclaration is a property or callback declared on an element.
type PropertyDeclaration struct {
	PropertyType      langtype.Type
	Node              *syntax.Node // PropertyDeclaration or CallbackDeclaration, may be nil
	ExposeInPublicAPI bool
	IsAlias           *NamedReference // set if the property is an alias of another one
}

// TypeNode returns the best node for diagnostics about the declared type.
func (d *PropertyDeclaration) TypeNode() *syntax.Node {
	if d.Node == nil {
		return nil
	}
	if t := d.Node.ChildNode(syntax.Type); t != nil {
		return t
	}
	return d.Node
}

// Location makes declarations diagnostics.Spanned.
func (d *PropertyDeclaration) Location() diagnostics.SourceLocation {
	return d.Node.Location()
}
