package syntax

import "fmt"

// Kind tags a syntax node. Token kinds come first, inner node kinds follow.
type Kind uint8

// Token kinds
const (
	Error Kind = iota
	Identifier
	NumberLiteral
	StringLiteral
	ColorLiteral
	Plus         // +
	Minus        // -
	Star         // *
	Div          // /
	EqualEqual   // ==
	NotEqual     // !=
	Less         // <
	Greater      // >
	LessEqual    // <=
	GreaterEqual // >=
	AndAnd       // &&
	OrOr         // ||
	Bang         // !
	Equal        // =
	PlusEqual    // +=
	MinusEqual   // -=
	StarEqual    // *=
	DivEqual     // /=

	tokensEnd
)

// Inner node kinds
const (
	Document Kind = iota + tokensEnd
	Component
	ExportsList
	ExportSpecifier
	ExportIdentifier
	ExportName
	ImportSpecifier
	StructDeclaration
	ObjectType
	ObjectTypeMember
	ArrayType
	Type
	QualifiedName
	DeclaredIdentifier
	Element
	SubElement
	RepeatedElement
	RepeatedIndex
	ConditionalElement
	ChildrenPlaceholder
	PropertyDeclaration
	CallbackDeclaration
	ReturnType
	Binding
	TwoWayBinding
	CallbackConnection
	PropertyAnimation
	States
	State
	StatePropertyChange
	Transitions
	Transition
	BindingExpression
	CodeBlock
	Expression
	BinaryExpression
	UnaryOpExpression
	ConditionalExpression
	FunctionCallExpression
	MemberAccess
	Array
	ObjectLiteral
	ObjectMember
	SelfAssignment
	ReturnStatement
	AtImageURL
)

var kindNames = map[Kind]string{
	Error: "Error", Identifier: "Identifier", NumberLiteral: "NumberLiteral",
	StringLiteral: "StringLiteral", ColorLiteral: "ColorLiteral",
	Plus: "Plus", Minus: "Minus", Star: "Star", Div: "Div",
	EqualEqual: "EqualEqual", NotEqual: "NotEqual", Less: "Less", Greater: "Greater",
	LessEqual: "LessEqual", GreaterEqual: "GreaterEqual", AndAnd: "AndAnd", OrOr: "OrOr",
	Bang: "Bang", Equal: "Equal", PlusEqual: "PlusEqual", MinusEqual: "MinusEqual",
	StarEqual: "StarEqual", DivEqual: "DivEqual",
	Document: "Document", Component: "Component", ExportsList: "ExportsList",
	ExportSpecifier: "ExportSpecifier", ExportIdentifier: "ExportIdentifier",
	ExportName: "ExportName", ImportSpecifier: "ImportSpecifier",
	StructDeclaration: "StructDeclaration", ObjectType: "ObjectType",
	ObjectTypeMember: "ObjectTypeMember", ArrayType: "ArrayType", Type: "Type",
	QualifiedName: "QualifiedName", DeclaredIdentifier: "DeclaredIdentifier",
	Element: "Element", SubElement: "SubElement", RepeatedElement: "RepeatedElement",
	RepeatedIndex: "RepeatedIndex", ConditionalElement: "ConditionalElement",
	ChildrenPlaceholder: "ChildrenPlaceholder", PropertyDeclaration: "PropertyDeclaration",
	CallbackDeclaration: "CallbackDeclaration", ReturnType: "ReturnType",
	Binding: "Binding", TwoWayBinding: "TwoWayBinding",
	CallbackConnection: "CallbackConnection", PropertyAnimation: "PropertyAnimation",
	States: "States", State: "State", StatePropertyChange: "StatePropertyChange",
	Transitions: "Transitions", Transition: "Transition",
	BindingExpression: "BindingExpression", CodeBlock: "CodeBlock", Expression: "Expression",
	BinaryExpression: "BinaryExpression", UnaryOpExpression: "UnaryOpExpression",
	ConditionalExpression: "ConditionalExpression",
	FunctionCallExpression: "FunctionCallExpression", MemberAccess: "MemberAccess",
	Array: "Array", ObjectLiteral: "ObjectLiteral", ObjectMember: "ObjectMember",
	SelfAssignment: "SelfAssignment", ReturnStatement: "ReturnStatement",
	AtImageURL: "AtImageURL",
}

func (k Kind) String() string {
	if s, ok := kindNames[k]; ok {
		return s
	}
	return fmt.Sprintf("Kind(%d)", k)
}

// IsToken is true for token kinds.
func (k Kind) IsToken() bool {
	return k < tokensEnd
}

var operatorTokens = map[string]Kind{
	"+": Plus, "-": Minus, "*": Star, "/": Div,
	"==": EqualEqual, "!=": NotEqual, "<": Less, ">": Greater,
	"<=": LessEqual, ">=": GreaterEqual, "&&": AndAnd, "||": OrOr, "!": Bang,
	"=": Equal, "+=": PlusEqual, "-=": MinusEqual, "*=": StarEqual, "/=": DivEqual,
}

// OperatorKind returns the token kind for an operator's source text.
func OperatorKind(op string) (Kind, bool) {
	k, ok := operatorTokens[op]
	return k, ok
}

// IsOperator is true for operator token kinds.
func (k Kind) IsOperator() bool {
	return k >= Plus && k <= DivEqual
}
