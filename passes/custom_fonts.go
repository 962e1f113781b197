package passes

import (
	"sort"

	"github.com/npillmayer/uic/langtype"
	"github.com/npillmayer/uic/objtree"
)

// CollectCustomFonts registers the fonts imported by any of docs in the setup
// code of root. With embedResources set, the font files are embedded like
// images and registered from memory.
func CollectCustomFonts(root *objtree.Component, docs []*objtree.Document, embedResources bool) {
	if root == nil {
		return
	}
	seen := make(map[string]bool)
	var paths []string
	for _, doc := range docs {
		for _, f := range doc.CustomFonts {
			if !seen[f.Path] {
				seen[f.Path] = true
				paths = append(paths, f.Path)
			}
		}
	}
	sort.Strings(paths)
	for _, path := range paths {
		call := &objtree.FunctionCall{}
		if embedResources {
			id, ok := root.EmbeddedFileResources[path]
			if !ok {
				id = len(root.EmbeddedFileResources)
				root.EmbeddedFileResources[path] = id
			}
			call.Function = &objtree.BuiltinFunctionReference{Function: objtree.FnRegisterCustomFontByMemory}
			call.Arguments = []objtree.Expression{objtree.Number(float64(id), langtype.UnitNone)}
		} else {
			call.Function = &objtree.BuiltinFunctionReference{Function: objtree.FnRegisterCustomFontByPath}
			call.Arguments = []objtree.Expression{&objtree.StringLiteral{Value: path}}
		}
		tracer().Debugf("registering custom font %s", path)
		root.SetupCode = append(root.SetupCode, call)
	}
}
