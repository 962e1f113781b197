/*
Package objtree implements the object tree of a UI document: elements,
components and documents, together with the expression algebra bindings are
made of and the named references which tie expressions to properties.

The types of this package are mutually recursive: elements hold bindings,
bindings hold expressions, expressions hold named references, and named
references point back to elements. Back-references (element to enclosing
component, named reference to element, component to parent element) are weak
pointers. Strong ownership of components is counted explicitly, see
Component.Retain.

Object Tree Construction

A Document is built from a syntax tree with NewDocument. Element construction
checks declarations and bindings and reports user errors to a
diagnostics.BuildDiagnostics, continuing with placeholders. Bindings start out
as Uncompiled expressions, holding on to their syntax node. The resolving pass
replaces them with typed expressions, using the expression compiler of this
package (see LookupCtx).

Traversal

Traversal primitives visit elements (RecurseElem and friends), the expressions
of an element (VisitElementExpressions) or every named reference reachable
from a component (VisitAllNamedReferences). Map-valued collections are always
visited in sorted key order.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>

*/
package objtree

import (
	"fmt"

	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'uic.objtree'.
func tracer() tracing.Trace {
	return tracing.Select("uic.objtree")
}

func assertThat(that bool, msg string, msgargs ...interface{}) {
	if !that {
		msg = fmt.Sprintf("objtree: "+msg, msgargs...)
		tracer().Errorf("%s", msg)
		panic(msg)
	}
}
