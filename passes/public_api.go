package passes

import "github.com/npillmayer/uic/objtree"

// ExposePublicAPI marks the properties declared on the root element of the
// root component as part of the public API. Code outside the document may
// read and set them.
func ExposePublicAPI(doc *objtree.Document) {
	root := doc.RootComponent
	if root == nil || root.RootElement == nil {
		return
	}
	for _, name := range root.RootElement.SortedDeclarationNames() {
		root.RootElement.PropertyDeclarations[name].ExposeInPublicAPI = true
	}
}
