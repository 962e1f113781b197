package objtree

/*
License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>

*/

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/npillmayer/uic/diagnostics"
	"github.com/npillmayer/uic/langtype"
	"github.com/npillmayer/uic/syntax"
)

// Document is the result of building the object tree of one source file.
type Document struct {
	Node            *syntax.Node
	InnerComponents []*Component
	InnerStructs    []*langtype.Struct
	RootComponent   *Component
	LocalRegistry   *langtype.TypeRegister
	CustomFonts     []CustomFont
	Exports         []Export
}

// ForeignImport is an import of a file which is not a component library,
// e.g. a font.
type ForeignImport struct {
	File  string
	Token *syntax.Node
}

// CustomFont is a font file imported by a document.
type CustomFont struct {
	Path  string
	Token *syntax.Node
}

// Export is a type exported by a document under a name.
type Export struct {
	Name string
	Node *syntax.Node
	Type langtype.Type
}

// NewDocument builds the object tree of a Document node. Types are
// registered in a new register with parent as its parent.
func NewDocument(node *syntax.Node, foreign []ForeignImport, diag *diagnostics.BuildDiagnostics,
	parent *langtype.TypeRegister) *Document {
	//
	assertThat(node.Kind() == syntax.Document, "expected document node, is %s", node.Kind())
	doc := &Document{Node: node, LocalRegistry: langtype.NewTypeRegister(parent)}
	var process func(n *syntax.Node)
	process = func(n *syntax.Node) {
		switch n.Kind() {
		case syntax.Component:
			c := NewComponentFromNode(n, diag, doc.LocalRegistry)
			c.Retain()
			doc.LocalRegistry.AddComponent(c)
			doc.InnerComponents = append(doc.InnerComponents, c)
		case syntax.StructDeclaration:
			ot := n.ChildNode(syntax.ObjectType)
			if ot == nil {
				assertThat(diag.HasError(), "struct declaration without type")
				return
			}
			s := TypeStructFromNode(ot, diag, doc.LocalRegistry, n.DeclaredName())
			doc.LocalRegistry.InsertType(s)
			doc.InnerStructs = append(doc.InnerStructs, s)
		case syntax.ExportsList:
			for _, ch := range n.Nodes() {
				if ch.Kind() == syntax.Component || ch.Kind() == syntax.StructDeclaration {
					process(ch)
				}
			}
		}
	}
	for _, n := range node.Nodes() {
		process(n)
	}
	doc.Exports = exportsFromNode(node, doc, diag)
	doc.CustomFonts = customFonts(foreign, diag)
	if l := len(doc.InnerComponents); l > 0 {
		doc.RootComponent = doc.InnerComponents[l-1]
	} else {
		doc.RootComponent = NewComponent("", NewElement("root", langtype.Invalid))
	}
	doc.RootComponent.Retain()
	tracer().Debugf("document with %d components, %d structs", len(doc.InnerComponents), len(doc.InnerStructs))
	return doc
}

// exportsFromNode collects the export specifiers and exported declarations.
// Without any export, the last component is exported.
func exportsFromNode(node *syntax.Node, doc *Document, diag *diagnostics.BuildDiagnostics) []Export {
	var exports []Export
	for _, list := range node.ChildNodes(syntax.ExportsList) {
		for _, ch := range list.Nodes() {
			switch ch.Kind() {
			case syntax.ExportSpecifier:
				idNode := ch.ChildNode(syntax.ExportIdentifier)
				internal, _ := idNode.Identifier()
				name := internal
				if en := ch.ChildNode(syntax.ExportName); en != nil {
					name, _ = en.Identifier()
				}
				t := doc.LocalRegistry.Lookup(internal)
				switch t.(type) {
				case langtype.Component:
				case langtype.Primitive:
					diag.PushError(fmt.Sprintf("'%s' not found", internal), idNode)
					continue
				default:
					diag.PushError(fmt.Sprintf("Cannot export '%s' because it is not a component", internal), idNode)
					continue
				}
				exports = append(exports, Export{Name: name, Node: idNode, Type: t})
			case syntax.Component, syntax.StructDeclaration:
				name := ch.DeclaredName()
				exports = append(exports, Export{
					Name: name,
					Node: ch.ChildNode(syntax.DeclaredIdentifier),
					Type: doc.LocalRegistry.Lookup(name),
				})
			}
		}
	}
	if len(exports) == 0 && len(doc.InnerComponents) > 0 {
		c := doc.InnerComponents[len(doc.InnerComponents)-1]
		exports = append(exports, Export{Name: c.ID, Type: ComponentType(c)})
	}
	return exports
}

func isFontFile(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".ttf", ".ttc", ".otf":
		return true
	}
	return false
}

func isURL(path string) bool {
	return strings.HasPrefix(path, "http://") || strings.HasPrefix(path, "https://")
}

// customFonts checks foreign imports. Only fonts are supported; local font
// files must exist.
func customFonts(foreign []ForeignImport, diag *diagnostics.BuildDiagnostics) []CustomFont {
	var fonts []CustomFont
	for _, imp := range foreign {
		if !isFontFile(imp.File) {
			diag.PushError(fmt.Sprintf("Unsupported foreign import \"%s\"", imp.File), imp.Token)
			continue
		}
		path := imp.File
		if !isURL(path) && !filepath.IsAbs(path) && imp.Token != nil {
			if f := imp.Token.SourceFile(); f != nil && f.Path != "" {
				path = filepath.Join(filepath.Dir(f.Path), path)
			}
		}
		if !isURL(path) {
			if _, err := os.Stat(path); err != nil {
				diag.PushError(fmt.Sprintf("File \"%s\" not found", imp.File), imp.Token)
				continue
			}
		}
		fonts = append(fonts, CustomFont{Path: path, Token: imp.Token})
	}
	return fonts
}
