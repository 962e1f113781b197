/*
Package uic compiles the syntax tree of a UI document into an object tree
ready for code generation.

Compiling a document means

  - loading the documents it imports (see TypeLoader)
  - building the object tree of the document
  - running the pass pipeline of package passes, which resolves expressions,
    lowers shadows, applies the style and analyses bindings.

User errors are reported to the diagnostics sink, never returned as errors.
Compile returns an error only if loading imports, or the style, fails at the
file level.

Packages

Package syntax holds the input, package langtype the type system. The object
tree is in package objtree, the passes transforming it in package passes.
Package styles provides default property values by style, package config the
configuration of a compiler run.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>
*/
package uic

import "github.com/npillmayer/schuko/tracing"

// tracer traces with key 'uic'.
func tracer() tracing.Trace {
	return tracing.Select("uic")
}
