package uic

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/npillmayer/uic/config"
	"github.com/npillmayer/uic/diagnostics"
	"github.com/npillmayer/uic/langtype"
	"github.com/npillmayer/uic/objtree"
	"github.com/npillmayer/uic/passes"
	"github.com/npillmayer/uic/syntax"
)

// Compile builds the object tree of a document node and runs the passes on
// it. The passes run only if building the tree reported no errors.
//
// conf may be nil, selecting the default configuration. If loader is nil, a
// DocumentLoader searching the include paths of conf is used; it does not
// open files, so documents importing other documents need a loader.
func Compile(ctx context.Context, node *syntax.Node, diag *diagnostics.BuildDiagnostics,
	conf *config.CompilerConfiguration, loader TypeLoader) (*objtree.Document, error) {
	//
	if conf == nil {
		conf = config.Default()
	}
	global := langtype.BuiltinRegister()
	if loader == nil {
		loader = NewDocumentLoader(global, conf.IncludePaths, nil)
	}
	registry := langtype.NewTypeRegister(global)
	foreign, err := loader.LoadDependencies(ctx, node, diag, registry)
	if err != nil {
		return nil, fmt.Errorf("loading imports: %w", err)
	}
	doc := objtree.NewDocument(node, foreign, diag, registry)
	if cip := doc.RootComponent.ChildInsertionPoint; cip != nil {
		var at diagnostics.Spanned = cip.Element
		if cip.Node != nil {
			at = cip.Node
		}
		diag.PushError("@children placeholder not allowed in the final component", at)
	}
	if diag.HasError() {
		tracer().Infof("not running passes: %d diagnostics", diag.Len())
		return doc, nil
	}
	style, err := conf.StyleLoader().Load(ctx, conf.Style)
	if err != nil {
		return doc, fmt.Errorf("loading style %s: %w", conf.Style, err)
	}
	resolve := IncludePathResolver(conf.IncludePaths)
	imported := loader.Documents()
	for _, d := range imported {
		passes.Library().Run(&passes.State{Doc: d, Diag: diag, Style: style, ResolvePath: resolve})
	}
	passes.Default().Run(&passes.State{
		Doc:            doc,
		Diag:           diag,
		Imported:       imported,
		Style:          style,
		ResolvePath:    resolve,
		EmbedResources: conf.EmbedResources,
	})
	tracer().Infof("compiled component %q: %d diagnostics", doc.RootComponent.ID, diag.Len())
	return doc, nil
}

// IncludePathResolver finds resources relative to the file using them or,
// failing that, in include paths. Only files which exist are resolved.
func IncludePathResolver(includePaths []string) objtree.PathResolver {
	return func(from *diagnostics.SourceFile, path string) (string, bool) {
		var candidates []string
		if from != nil && from.Path != "" {
			candidates = append(candidates, filepath.Join(filepath.Dir(from.Path), path))
		}
		for _, dir := range includePaths {
			candidates = append(candidates, filepath.Join(dir, path))
		}
		for _, c := range candidates {
			if _, err := os.Stat(c); err == nil {
				return c, true
			}
		}
		return "", false
	}
}
