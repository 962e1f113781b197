/*
Package styles provides default property values for builtin elements, given
by a style.

Overview

A style is a named collection of CSS stylesheets. Rules select elements by the
name of their builtin type, by component name (as a class) and by id:

   Text { color: #333; font-size: 14px; }
   .Button Text { font-weight: 700; }
   #title { font-size: 24px; }

Stylesheets are parsed with douceur. Selectors are matched with cascadia,
against a shallow mirror of the element tree made of golang.org/x/net/html
nodes (see ElementNode). Property names are written with dashes or
underscores, values are written the way literals are written in a UI
document. Values are converted to literals for the type of the property they
are applied to (see Property.Literal).

Cascading follows CSS: important declarations win over normal ones, then a
higher selector specificity wins, then the rule appearing later.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>

*/
package styles

import "github.com/npillmayer/schuko/tracing"

// tracer traces with key 'uic.styles'.
func tracer() tracing.Trace {
	return tracing.Select("uic.styles")
}
