package syntax

import (
	"strings"

	"github.com/npillmayer/uic/diagnostics"
)

// Builder constructs syntax trees. It lays out the text of every token it
// creates one after another, separated by blanks, and uses that text as the
// source of the resulting file. Every token thus has a distinct span.
//
// Inner nodes take the span of their first child.
type Builder struct {
	file *diagnostics.SourceFile
	src  strings.Builder
}

// NewBuilder creates a builder for a source file with a given path.
func NewBuilder(path string) *Builder {
	return &Builder{file: diagnostics.NewSourceFile(path, "")}
}

// File returns the source file the builder is laying out.
func (b *Builder) File() *diagnostics.SourceFile {
	return b.file
}

// Token creates a token node.
func (b *Builder) Token(kind Kind, text string) *Node {
	offset := b.src.Len()
	b.src.WriteString(text)
	b.src.WriteByte(' ')
	b.file.Source = b.src.String()
	return NewToken(kind, text, b.file, diagnostics.Span{Offset: offset})
}

// Node creates an inner node with children. nil children are skipped.
func (b *Builder) Node(kind Kind, children ...*Node) *Node {
	span := diagnostics.Span{Offset: b.src.Len()}
	n := NewNode(kind, b.file, span)
	for _, ch := range children {
		if ch != nil {
			n.AddChild(ch)
		}
	}
	if len(n.children) > 0 {
		n.span = n.children[0].span
	}
	return n
}

func (b *Builder) ident(name string) *Node {
	return b.Token(Identifier, name)
}

func (b *Builder) declared(name string) *Node {
	return b.Node(DeclaredIdentifier, b.ident(name))
}

// QName creates a QualifiedName from a dotted name.
func (b *Builder) QName(dotted string) *Node {
	var segs []*Node
	for _, s := range strings.Split(dotted, ".") {
		segs = append(segs, b.ident(s))
	}
	return b.Node(QualifiedName, segs...)
}

// Document creates the document node.
func (b *Builder) Document(items ...*Node) *Node {
	return b.Node(Document, items...)
}

// Component creates a component declaration `name := element`.
func (b *Builder) Component(name string, elem *Node) *Node {
	return b.Node(Component, b.declared(name), elem)
}

// Element creates an element with a base type name. base may be empty, for
// the body of a global component.
func (b *Builder) Element(base string, members ...*Node) *Node {
	var q *Node
	if base != "" {
		q = b.QName(base)
	}
	return b.Node(Element, append([]*Node{q}, members...)...)
}

// SubElement wraps a child element, with an optional id.
func (b *Builder) SubElement(id string, elem *Node) *Node {
	var idn *Node
	if id != "" {
		idn = b.ident(id)
	}
	return b.Node(SubElement, idn, elem)
}

// Child is a shortcut for an anonymous sub-element.
func (b *Builder) Child(base string, members ...*Node) *Node {
	return b.SubElement("", b.Element(base, members...))
}

// Repeated creates `for dataID[indexID] in model : sub`. The ids may be empty.
func (b *Builder) Repeated(dataID, indexID string, model *Node, sub *Node) *Node {
	var d, i *Node
	if dataID != "" {
		d = b.declared(dataID)
	}
	if indexID != "" {
		i = b.Node(RepeatedIndex, b.ident(indexID))
	}
	return b.Node(RepeatedElement, d, i, model, sub)
}

// Conditional creates `if cond : sub`.
func (b *Builder) Conditional(cond *Node, sub *Node) *Node {
	return b.Node(ConditionalElement, cond, sub)
}

// ChildrenPlaceholder creates `@children`.
func (b *Builder) ChildrenPlaceholder() *Node {
	return b.Node(ChildrenPlaceholder, b.Token(Identifier, "@children"))
}

// Property creates a property declaration. typ may be nil; value may be nil,
// a binding expression (see Expr) or a two-way binding (see TwoWay).
func (b *Builder) Property(typ *Node, name string, value *Node) *Node {
	return b.Node(PropertyDeclaration, typ, b.declared(name), value)
}

// Callback creates a callback declaration.
func (b *Builder) Callback(name string, args []*Node, ret *Node, twoWay *Node) *Node {
	children := []*Node{b.declared(name)}
	children = append(children, args...)
	if ret != nil {
		children = append(children, b.Node(ReturnType, ret))
	}
	children = append(children, twoWay)
	return b.Node(CallbackDeclaration, children...)
}

// Expr wraps an expression or code block into a BindingExpression.
func (b *Builder) Expr(e *Node) *Node {
	return b.Node(BindingExpression, e)
}

// Binding creates `name: expr;`.
func (b *Builder) Binding(name string, e *Node) *Node {
	if e != nil && e.kind != BindingExpression {
		e = b.Expr(e)
	}
	return b.Node(Binding, b.ident(name), e)
}

// TwoWay creates `name <=> expr`. name is empty within declarations.
func (b *Builder) TwoWay(name string, e *Node) *Node {
	var n *Node
	if name != "" {
		n = b.ident(name)
	}
	return b.Node(TwoWayBinding, n, e)
}

// Connection creates a callback connection `name(args) => { block }`.
func (b *Builder) Connection(name string, args []string, block *Node) *Node {
	children := []*Node{b.ident(name)}
	for _, a := range args {
		children = append(children, b.declared(a))
	}
	children = append(children, block)
	return b.Node(CallbackConnection, children...)
}

// Animate creates `animate p1, p2 { bindings }`. A property "*" is the catch-all.
func (b *Builder) Animate(props []string, bindings ...*Node) *Node {
	var children []*Node
	for _, p := range props {
		if p == "*" {
			children = append(children, b.Token(Star, "*"))
		} else {
			children = append(children, b.QName(p))
		}
	}
	return b.Node(PropertyAnimation, append(children, bindings...)...)
}

// States creates a list of states.
func (b *Builder) States(states ...*Node) *Node {
	return b.Node(States, states...)
}

// State creates `id when cond : { changes }`. cond may be nil.
func (b *Builder) State(id string, cond *Node, changes ...*Node) *Node {
	return b.Node(State, append([]*Node{b.declared(id), cond}, changes...)...)
}

// Change creates a state property change `elem.prop: expr;`.
func (b *Builder) Change(qname string, e *Node) *Node {
	return b.Node(StatePropertyChange, b.QName(qname), b.Expr(e))
}

// Transitions creates a list of transitions.
func (b *Builder) Transitions(transitions ...*Node) *Node {
	return b.Node(Transitions, transitions...)
}

// Transition creates `in|out stateID : { animations }`.
func (b *Builder) Transition(direction, stateID string, animations ...*Node) *Node {
	return b.Node(Transition, append([]*Node{b.ident(direction), b.declared(stateID)}, animations...)...)
}

// Type creates a named type.
func (b *Builder) Type(name string) *Node {
	return b.Node(Type, b.QName(name))
}

// ArrayType creates `[elem]`.
func (b *Builder) ArrayType(elem *Node) *Node {
	return b.Node(Type, b.Node(ArrayType, elem))
}

// ObjectType creates `{ name: type, ... }` from fields created with Field.
func (b *Builder) ObjectType(fields ...*Node) *Node {
	return b.Node(Type, b.Node(ObjectType, fields...))
}

// Field creates a member of an object type.
func (b *Builder) Field(name string, typ *Node) *Node {
	return b.Node(ObjectTypeMember, b.ident(name), typ)
}

// Struct creates `struct name := { fields }`.
func (b *Builder) Struct(name string, fields ...*Node) *Node {
	return b.Node(StructDeclaration, b.declared(name), b.Node(ObjectType, fields...))
}

// Exports creates an export list with specifiers or declarations.
func (b *Builder) Exports(items ...*Node) *Node {
	return b.Node(ExportsList, items...)
}

// ExportSpec creates `ident as name`. name may be empty.
func (b *Builder) ExportSpec(ident, name string) *Node {
	var n *Node
	if name != "" {
		n = b.Node(ExportName, b.ident(name))
	}
	return b.Node(ExportSpecifier, b.Node(ExportIdentifier, b.ident(ident)), n)
}

// Import creates `import "file";`.
func (b *Builder) Import(file string) *Node {
	return b.Node(ImportSpecifier, b.Token(StringLiteral, file))
}

// --- Expressions -----------------------------------------------------------

// Number creates a number literal expression, e.g. "5cm".
func (b *Builder) Number(text string) *Node {
	return b.Node(Expression, b.Token(NumberLiteral, text))
}

// Str creates a string literal expression. s is the text without quotes.
func (b *Builder) Str(s string) *Node {
	return b.Node(Expression, b.Token(StringLiteral, s))
}

// Color creates a color literal expression, e.g. "#ff0000".
func (b *Builder) Color(text string) *Node {
	return b.Node(Expression, b.Token(ColorLiteral, text))
}

// Name creates an expression from a qualified name.
func (b *Builder) Name(dotted string) *Node {
	return b.Node(Expression, b.QName(dotted))
}

func (b *Builder) op(op string) *Node {
	k, ok := OperatorKind(op)
	if !ok {
		k = Error
	}
	return b.Token(k, op)
}

// Binary creates `lhs op rhs`.
func (b *Builder) Binary(lhs *Node, op string, rhs *Node) *Node {
	return b.Node(Expression, b.Node(BinaryExpression, lhs, b.op(op), rhs))
}

// Unary creates `op sub`.
func (b *Builder) Unary(op string, sub *Node) *Node {
	return b.Node(Expression, b.Node(UnaryOpExpression, b.op(op), sub))
}

// Cond creates `c ? t : f`.
func (b *Builder) Cond(c, t, f *Node) *Node {
	return b.Node(Expression, b.Node(ConditionalExpression, c, t, f))
}

// Call creates `fn(args)`.
func (b *Builder) Call(fn *Node, args ...*Node) *Node {
	return b.Node(Expression, b.Node(FunctionCallExpression, append([]*Node{fn}, args...)...))
}

// Member creates `base.field` for a non-name base expression.
func (b *Builder) Member(base *Node, field string) *Node {
	return b.Node(Expression, b.Node(MemberAccess, base, b.ident(field)))
}

// Array creates `[values]`.
func (b *Builder) Array(values ...*Node) *Node {
	return b.Node(Expression, b.Node(Array, values...))
}

// Object creates an object literal from members created with ObjectMember.
func (b *Builder) Object(members ...*Node) *Node {
	return b.Node(Expression, b.Node(ObjectLiteral, members...))
}

// ObjectMember creates `name: expr` within an object literal.
func (b *Builder) ObjectMember(name string, e *Node) *Node {
	return b.Node(ObjectMember, b.ident(name), e)
}

// Block creates a code block of statements.
func (b *Builder) Block(stmts ...*Node) *Node {
	return b.Node(CodeBlock, stmts...)
}

// SelfAssign creates `lhs op rhs` with op one of = += -= *= /=.
func (b *Builder) SelfAssign(lhs *Node, op string, rhs *Node) *Node {
	return b.Node(Expression, b.Node(SelfAssignment, lhs, b.op(op), rhs))
}

// Return creates `return e`. e may be nil.
func (b *Builder) Return(e *Node) *Node {
	return b.Node(ReturnStatement, e)
}

// ImageURL creates `@image-url("path")`.
func (b *Builder) ImageURL(path string) *Node {
	return b.Node(Expression, b.Node(AtImageURL, b.Token(StringLiteral, path)))
}

// Paren creates a parenthesized expression.
func (b *Builder) Paren(e *Node) *Node {
	return b.Node(Expression, e)
}
