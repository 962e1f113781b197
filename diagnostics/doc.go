/*
Package diagnostics collects errors and warnings found while building the
object tree of a UI document.

Overview

Every semantic problem in user input is reported as a Diagnostic, i.e. a
message together with the source location it refers to. Compiler passes never
stop at the first user error: they push a diagnostic, substitute a placeholder
and continue. Clients check HasError after the pass pipeline has run.

Internal-consistency violations are not diagnostics. They panic.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>
*/
package diagnostics

import "github.com/npillmayer/schuko/tracing"

// tracer traces with key 'uic.diagnostics'.
func tracer() tracing.Trace {
	return tracing.Select("uic.diagnostics")
}
