package syntax

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
)

// Node is the type syntax trees are built of. Token nodes carry text and have
// no children.
type Node struct {
	kind     Kind
	text     string // token text
	parent   *Node  // parent node of this node
	children []*Node
	span     diagnostics.Span
	file     *diagnostics.SourceFile
}

// NewNode creates an inner node of a given kind.
func NewNode(kind Kind, file *diagnostics.SourceFile, span diagnostics.Span) *Node {
	return &Node{kind: kind, file: file, span: span}
}

// NewToken creates a token node.
func NewToken(kind Kind, text string, file *diagnostics.SourceFile, span diagnostics.Span) *Node {
	return &Node{kind: kind, text: text, file: file, span: span}
}

func (node *Node) String() string {
	if node == nil {
		return "(Node nil)"
	}
	if node.kind.IsToken() {
		return fmt.Sprintf("%s(%q)", node.kind, node.text)
	}
	return fmt.Sprintf("(%s #ch=%d)", node.kind, len(node.children))
}

// Kind returns the node's kind.
func (node *Node) Kind() Kind {
	return node.kind
}

// Text returns the text of a token node, or the concatenated token texts of
// an inner node, separated by blanks.
func (node *Node) Text() string {
	if node == nil {
		return ""
	}
	if node.kind.IsToken() {
		return node.text
	}
	var parts []string
	for _, ch := range node.children {
		if t := ch.Text(); t != "" {
			parts = append(parts, t)
		}
	}
	return strings.Join(parts, " ")
}

// Location returns the source location of a node. It is safe to call on nil.
func (node *Node) Location() diagnostics.SourceLocation {
	if node == nil {
		return diagnostics.SourceLocation{Span: diagnostics.NoSpan}
	}
	return diagnostics.SourceLocation{File: node.file, Span: node.span}
}

// SourceFile returns the file this node was parsed from.
func (node *Node) SourceFile() *diagnostics.SourceFile {
	return node.file
}

// AddChild appends a child node. The child is connected to this node as its
// parent. It returns the parent node to allow for chaining.
func (node *Node) AddChild(ch *Node) *Node {
	if ch != nil {
		if ch.parent != nil {
			ch.Isolate()
		}
		ch.parent = node
		node.children = append(node.children, ch)
	}
	return node
}

// Parent returns the parent node or nil (for the root of the tree).
func (node *Node) Parent() *Node {
	return node.parent
}

// Isolate removes a node from its parent.
func (node *Node) Isolate() *Node {
	if node != nil && node.parent != nil {
		p := node.parent
		if i := p.IndexOfChild(node); i >= 0 {
			p.children = append(p.children[:i], p.children[i+1:]...)
		}
		node.parent = nil
	}
	return node
}

// ChildCount returns the number of children, tokens included.
func (node *Node) ChildCount() int {
	return len(node.children)
}

// Child returns the n-th child.
func (node *Node) Child(n int) (*Node, bool) {
	if n < 0 || len(node.children) <= n {
		return nil, false
	}
	return node.children[n], true
}

// Children returns all children, tokens included.
func (node *Node) Children() []*Node {
	return node.children
}

// IndexOfChild returns the index of a child within the list of children,
// or -1.
func (node *Node) IndexOfChild(ch *Node) int {
	for i, child := range node.children {
		if ch == child {
			return i
		}
	}
	return -1
}

// ChildNode returns the first child of a given kind, or nil.
func (node *Node) ChildNode(kind Kind) *Node {
	if node == nil {
		return nil
	}
	for _, ch := range node.children {
		if ch.kind == kind {
			return ch
		}
	}
	return nil
}

// ChildNodes returns all children of a given kind.
func (node *Node) ChildNodes(kind Kind) []*Node {
	if node == nil {
		return nil
	}
	var r []*Node
	for _, ch := range node.children {
		if ch.kind == kind {
			r = append(r, ch)
		}
	}
	return r
}

// ChildText returns the text of the first token child of a given kind.
func (node *Node) ChildText(kind Kind) (string, bool) {
	if t := node.ChildNode(kind); t != nil {
		return t.text, true
	}
	return "", false
}

// FirstOperator returns the first operator token among the children, or nil.
func (node *Node) FirstOperator() *Node {
	for _, ch := range node.children {
		if ch.kind.IsOperator() {
			return ch
		}
	}
	return nil
}

// Identifier returns the normalized text of the first identifier token child.
// For DeclaredIdentifier and RepeatedIndex nodes that is the declared name.
func (node *Node) Identifier() (string, bool) {
	if t, ok := node.ChildText(Identifier); ok {
		return NormalizeIdentifier(t), true
	}
	return "", false
}

// DeclaredName returns the name of a node's DeclaredIdentifier child.
func (node *Node) DeclaredName() string {
	id, _ := node.ChildNode(DeclaredIdentifier).Identifier()
	return id
}

// Segments returns the normalized identifiers of a QualifiedName node.
func (node *Node) Segments() []string {
	var segs []string
	for _, ch := range node.ChildNodes(Identifier) {
		segs = append(segs, NormalizeIdentifier(ch.text))
	}
	return segs
}

// Nodes returns the children which are not tokens.
func (node *Node) Nodes() []*Node {
	var r []*Node
	for _, ch := range node.children {
		if !ch.kind.IsToken() {
			r = append(r, ch)
		}
	}
	return r
}

// Walk calls f for node and all its descendents, depth first. If f returns
// false, the children of a node are skipped.
func (node *Node) Walk(f func(*Node) bool) {
	if node == nil || !f(node) {
		return
	}
	for _, ch := range node.children {
		ch.Walk(f)
	}
}
