/*
Package langtype implements the type system of the UI language.

Overview

Types form a closed set. Type is a sum type: every implementation lives in this
package and carries an unexported marker method, much like the Either type of
package either in our functional toolbox. Scalars are values of type Primitive;
composite types are Struct, Array, Callback, Function, Enumeration and
UnitProduct; Component, BuiltinElement and NativeClass are references to
element types.

Numeric values carry a Unit. Multiplication and division of unit-bearing values
produce unit products, i.e. vectors of (unit, exponent) pairs, which are kept
in a canonical order.

Types are looked up by name in a TypeRegister. Registers are chained, a
document's local register falls back to the register of builtin types.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>
*/
package langtype

import "github.com/npillmayer/schuko/tracing"

// tracer traces with key 'uic.langtype'.
func tracer() tracing.Trace {
	return tracing.Select("uic.langtype")
}
