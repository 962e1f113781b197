package objtree

import (
	"fmt"
	"strings"

	"github.com/npillmayer/uic/diagnostics"
	"github.com/npillmayer/uic/langtype"
	"github.com/npillmayer/uic/syntax"
)

// QualifiedTypeName is a dotted name, e.g. `Foo.bar`.
type QualifiedTypeName struct {
	Members []string
}

// QualifiedTypeNameFromNode reads a QualifiedName node.
func QualifiedTypeNameFromNode(node *syntax.Node) QualifiedTypeName {
	assertThat(node.Kind() == syntax.QualifiedName, "expected qualified name, is %s", node.Kind())
	return QualifiedTypeName{Members: node.Segments()}
}

func (q QualifiedTypeName) String() string {
	return strings.Join(q.Members, ".")
}

// TypeFromNode evaluates a Type node. Unknown types are reported and yield
// Invalid.
func TypeFromNode(node *syntax.Node, diag *diagnostics.BuildDiagnostics, tr *langtype.TypeRegister) langtype.Type {
	assertThat(node.Kind() == syntax.Type, "expected type node, is %s", node.Kind())
	if qn := node.ChildNode(syntax.QualifiedName); qn != nil {
		qname := QualifiedTypeNameFromNode(qn)
		t := tr.LookupQualified(qname.Members)
		if t == langtype.Invalid {
			diag.PushError(fmt.Sprintf("Unknown type '%s'", qname), qn)
		}
		return t
	}
	if ot := node.ChildNode(syntax.ObjectType); ot != nil {
		return TypeStructFromNode(ot, diag, tr, "")
	}
	if at := node.ChildNode(syntax.ArrayType); at != nil {
		elem := at.ChildNode(syntax.Type)
		if elem == nil {
			return langtype.Invalid
		}
		return langtype.Array{Elem: TypeFromNode(elem, diag, tr)}
	}
	assertThat(diag.HasError(), "type node without type")
	return langtype.Invalid
}

// TypeStructFromNode evaluates an ObjectType node into a struct type with a
// (possibly empty) name.
func TypeStructFromNode(node *syntax.Node, diag *diagnostics.BuildDiagnostics, tr *langtype.TypeRegister,
	name string) *langtype.Struct {
	//
	fields := langtype.NewFields()
	for _, member := range node.ChildNodes(syntax.ObjectTypeMember) {
		fname, _ := member.Identifier()
		ft := langtype.Type(langtype.Invalid)
		if tn := member.ChildNode(syntax.Type); tn != nil {
			ft = TypeFromNode(tn, diag, tr)
		}
		fields.Add(fname, ft)
	}
	s := &langtype.Struct{Fields: fields, Name: name}
	if name != "" {
		s.Node = node
	}
	return s
}
