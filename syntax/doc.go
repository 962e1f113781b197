/*
Package syntax defines the syntax tree consumed by the object tree builder.

Overview

Lexing and parsing happen elsewhere. A parser creates a tree of Nodes, tagged
with a Kind, either by using the Builder or by assembling nodes directly.
The object tree construction pattern-matches on node kinds and token children,
it never re-lexes text.

The tree has two sorts of nodes: inner nodes, which have children, and token
nodes, which carry text. Both keep a source span for diagnostics.

Layout of the inner node kinds (children in order, ? means optional, * means
repeated):

    Document            (Component | StructDeclaration | ExportsList | ImportSpecifier)*
    Component           DeclaredIdentifier Element
    Element             QualifiedName? member*
    SubElement          Identifier? Element
    RepeatedElement     DeclaredIdentifier? RepeatedIndex? Expression SubElement
    ConditionalElement  Expression SubElement
    PropertyDeclaration Type? DeclaredIdentifier (BindingExpression | TwoWayBinding)?
    CallbackDeclaration DeclaredIdentifier Type* ReturnType? TwoWayBinding?
    Binding             Identifier BindingExpression
    TwoWayBinding       Identifier? Expression
    CallbackConnection  Identifier DeclaredIdentifier* CodeBlock
    PropertyAnimation   (QualifiedName* | Star) Binding*
    State               DeclaredIdentifier Expression? StatePropertyChange*
    Transition          Identifier DeclaredIdentifier PropertyAnimation*

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>
*/
package syntax

import (
	"strings"

	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'uic.syntax'.
func tracer() tracing.Trace {
	return tracing.Select("uic.syntax")
}

// NormalizeIdentifier maps an identifier to its canonical spelling.
// Dashes and underscores are interchangeable in identifiers.
func NormalizeIdentifier(ident string) string {
	return strings.ReplaceAll(ident, "-", "_")
}
