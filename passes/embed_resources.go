package passes

import (
	"github.com/npillmayer/uic/langtype"
	"github.com/npillmayer/uic/objtree"
)

// EmbedResources turns references to image files into references to
// resources embedded into the root component of doc. Images used by
// components of imported documents are embedded into the same root. Every
// path is embedded once.
func EmbedResources(doc *objtree.Document, imported ...*objtree.Document) {
	root := doc.RootComponent
	if root == nil {
		return
	}
	for _, d := range append([]*objtree.Document{doc}, imported...) {
		for _, c := range d.InnerComponents {
			objtree.VisitAllExpressions(c, func(x *objtree.Expression, _ func() langtype.Type) {
				embedImages(x, root.EmbeddedFileResources)
			})
		}
	}
}

func embedImages(x *objtree.Expression, resources map[string]int) {
	objtree.VisitRecursiveMut(x, func(sub *objtree.Expression) {
		img, ok := (*sub).(*objtree.ImageReference)
		if !ok || img.Kind != objtree.ImageAbsolutePath {
			return
		}
		id, ok := resources[img.Path]
		if !ok {
			id = len(resources)
			resources[img.Path] = id
			tracer().Debugf("embedding resource %d: %s", id, img.Path)
		}
		*sub = &objtree.ImageReference{Kind: objtree.ImageEmbeddedData, ResourceID: id}
	})
}
