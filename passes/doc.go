/*
Package passes implements the compiler passes which lower the object tree of
a document, built by package objtree, into a form ready for code generation
or interpretation.

Overview

Passes run in a fixed order, see Default. Each pass works on a State, which
holds the document, the diagnostics sink and the compiler options. Passes never
stop at a user error: they report it, substitute a placeholder and let the
pipeline continue, in order to collect as many diagnostics as possible.

The first passes give every binding a type. InferAliases infers the types of
properties declared without a type by a two-way binding, Resolve compiles the
Uncompiled expressions left by object tree construction. Later passes create a
component for every repeated element, lower drop shadows to BoxShadow
elements, apply the defaults of a style and collect what code generators need
(globals, structs, sub-components, fonts, embedded resources). Binding
analysis runs last.

Documents imported by the compiled document are prepared by the shorter
pipeline Library, before Default runs on the compiled document.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>

*/
package passes

import (
	"fmt"

	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'uic.passes'.
func tracer() tracing.Trace {
	return tracing.Select("uic.passes")
}

func assertThat(that bool, msg string, msgargs ...interface{}) {
	if !that {
		msg = fmt.Sprintf("passes: "+msg, msgargs...)
		tracer().Errorf("%s", msg)
		panic(msg)
	}
}
