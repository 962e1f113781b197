package uic

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/npillmayer/uic/diagnostics"
	"github.com/npillmayer/uic/langtype"
	"github.com/npillmayer/uic/objtree"
	"github.com/npillmayer/uic/syntax"
)

// LibraryExtension is the file extension of importable component documents.
// Imports of other files are foreign imports, e.g. fonts.
const LibraryExtension = ".60"

// TypeLoader loads the documents imported by a document.
type TypeLoader interface {
	// LoadDependencies loads the documents imported by node, registers
	// their exports in registry and returns the foreign imports of node.
	LoadDependencies(ctx context.Context, node *syntax.Node, diag *diagnostics.BuildDiagnostics,
		registry *langtype.TypeRegister) ([]objtree.ForeignImport, error)
	// Documents returns all documents loaded so far, every document after
	// the documents it imports.
	Documents() []*objtree.Document
}

// OpenFunc returns the syntax tree of a document by its path. For unknown
// paths it returns an error wrapping os.ErrNotExist.
type OpenFunc func(ctx context.Context, path string) (*syntax.Node, error)

// DocumentLoader loads imported documents by path. Relative imports are
// searched relative to the importing file first, then in the include paths.
// Every document is loaded once.
type DocumentLoader struct {
	IncludePaths []string
	open         OpenFunc
	global       *langtype.TypeRegister
	docs         map[string]*objtree.Document
	loading      map[string]bool
	order        []*objtree.Document
}

var _ TypeLoader = (*DocumentLoader)(nil)

// NewDocumentLoader creates a loader building documents with types from
// global. open may be nil, in which case no document can be imported.
func NewDocumentLoader(global *langtype.TypeRegister, includePaths []string, open OpenFunc) *DocumentLoader {
	if open == nil {
		open = func(_ context.Context, path string) (*syntax.Node, error) {
			return nil, fmt.Errorf("opening %s: %w", path, os.ErrNotExist)
		}
	}
	return &DocumentLoader{
		IncludePaths: includePaths,
		open:         open,
		global:       global,
		docs:         make(map[string]*objtree.Document),
		loading:      make(map[string]bool),
	}
}

// LoadDependencies implements TypeLoader.
func (l *DocumentLoader) LoadDependencies(ctx context.Context, node *syntax.Node,
	diag *diagnostics.BuildDiagnostics, registry *langtype.TypeRegister) ([]objtree.ForeignImport, error) {
	//
	var foreign []objtree.ForeignImport
	for _, imp := range node.ChildNodes(syntax.ImportSpecifier) {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		tok := imp.ChildNode(syntax.StringLiteral)
		if tok == nil {
			assertThat(diag.HasError(), "import without file name")
			continue
		}
		file, ok := objtree.UnescapeString(tok.Text())
		if !ok {
			diag.PushError("Cannot parse string literal", tok)
			continue
		}
		if !strings.EqualFold(filepath.Ext(file), LibraryExtension) {
			foreign = append(foreign, objtree.ForeignImport{File: file, Token: tok})
			continue
		}
		doc, err := l.load(ctx, file, tok, diag)
		if err != nil {
			return nil, err
		}
		if doc == nil {
			continue
		}
		for _, ex := range doc.Exports {
			registry.AddWithName(ex.Name, ex.Type)
		}
	}
	return foreign, nil
}

// Documents implements TypeLoader.
func (l *DocumentLoader) Documents() []*objtree.Document {
	return l.order
}

// load returns the document for an import. It returns nil if the import
// could not be loaded, after reporting a diagnostic.
func (l *DocumentLoader) load(ctx context.Context, file string, tok *syntax.Node,
	diag *diagnostics.BuildDiagnostics) (*objtree.Document, error) {
	//
	for _, path := range l.candidates(file, tok.SourceFile()) {
		if l.loading[path] {
			diag.PushError(fmt.Sprintf("Recursive import of \"%s\"", file), tok)
			return nil, nil
		}
		if doc, ok := l.docs[path]; ok {
			return doc, nil
		}
		node, err := l.open(ctx, path)
		if errors.Is(err, os.ErrNotExist) {
			continue
		} else if err != nil {
			return nil, fmt.Errorf("importing %s: %w", path, err)
		}
		tracer().Debugf("loading import %s", path)
		l.loading[path] = true
		registry := langtype.NewTypeRegister(l.global)
		foreign, err := l.LoadDependencies(ctx, node, diag, registry)
		delete(l.loading, path)
		if err != nil {
			return nil, err
		}
		doc := objtree.NewDocument(node, foreign, diag, registry)
		l.docs[path] = doc
		l.order = append(l.order, doc)
		return doc, nil
	}
	diag.PushError(fmt.Sprintf("Cannot find requested import \"%s\" in the include search path", file), tok)
	return nil, nil
}

func (l *DocumentLoader) candidates(file string, from *diagnostics.SourceFile) []string {
	if filepath.IsAbs(file) {
		return []string{filepath.Clean(file)}
	}
	var paths []string
	if from != nil && from.Path != "" {
		paths = append(paths, filepath.Join(filepath.Dir(from.Path), file))
	}
	for _, dir := range l.IncludePaths {
		paths = append(paths, filepath.Join(dir, file))
	}
	return paths
}

func assertThat(that bool, msg string, msgargs ...interface{}) {
	if !that {
		msg = fmt.Sprintf("uic: "+msg, msgargs...)
		tracer().Errorf("%s", msg)
		panic(msg)
	}
}
