package langtype

// CanConvert is true if a value of type from may be implicitly converted to
// type to.
func CanConvert(from, to Type) bool {
	if from.Equal(to) {
		return true
	}
	if to == Invalid || to == Void {
		return true
	}
	if fp, ok := from.(Primitive); ok {
		if tp, ok := to.(Primitive); ok && primitiveConversions[[2]Primitive{fp, tp}] {
			return true
		}
	}
	switch f := from.(type) {
	case Array:
		return to == Model
	case *Struct:
		switch t := to.(type) {
		case *Struct:
			return canConvertStruct(f.Fields, t.Fields)
		case Component:
			return t.Ref != nil && canConvertStruct(f.Fields, t.Ref.RootPropertyFields())
		}
		return false
	case UnitProduct:
		if o, ok := AsUnitProduct(to); ok {
			_, ok = UnitProductLengthConversion(f, o)
			return ok
		}
		return false
	}
	if t, ok := to.(UnitProduct); ok {
		if o, ok := AsUnitProduct(from); ok {
			_, ok = UnitProductLengthConversion(o, t)
			return ok
		}
	}
	return false
}

var primitiveConversions = map[[2]Primitive]bool{
	{Float32, Int32}:                true,
	{Float32, String}:               true,
	{Int32, Float32}:                true,
	{Int32, String}:                 true,
	{Float32, Model}:                true,
	{Int32, Model}:                  true,
	{PhysicalLength, LogicalLength}: true,
	{LogicalLength, PhysicalLength}: true,
	{Percent, Float32}:              true,
	{Brush, Color}:                  true,
	{Color, Brush}:                  true,
}

// canConvertStruct checks that every field common to a and b converts. If b
// has fields a does not have (they will be default-initialized), a may not have
// fields that b lacks.
func canConvertStruct(a, b *Fields) bool {
	hasMore := false
	for _, k := range b.Names() {
		bt, _ := b.Get(k)
		at, ok := a.Get(k)
		if !ok {
			hasMore = true
		} else if !CanConvert(at, bt) {
			return false
		}
	}
	if hasMore {
		for _, k := range a.Names() {
			if _, ok := b.Get(k); !ok {
				return false
			}
		}
	}
	return true
}

// DefaultUnit returns the unit of a unit-bearing primitive type.
func DefaultUnit(t Type) (Unit, bool) {
	switch t {
	case Duration:
		return UnitMs, true
	case PhysicalLength:
		return UnitPhx, true
	case LogicalLength:
		return UnitPx, true
	case Percent:
		return UnitPercent, true
	case Angle:
		return UnitDeg, true
	}
	return UnitNone, false
}

// AsUnitProduct returns the unit product of a numeric type: the product itself,
// an empty product for plain numbers, and the default unit for unit-bearing
// types.
func AsUnitProduct(t Type) (UnitProduct, bool) {
	if u, ok := t.(UnitProduct); ok {
		return u, true
	}
	if t == Float32 || t == Int32 {
		return UnitProduct{}, true
	}
	if u, ok := DefaultUnit(t); ok {
		return UnitProduct{{Unit: u, Power: 1}}, true
	}
	return nil, false
}

// UnitProductLengthConversion finds out whether unit product a can be converted
// to unit product b by multiplying or dividing with the window scale factor
// (phx/px). It returns the power of the scale factor to divide a by: positive
// means divide that many times, negative means multiply.
func UnitProductLengthConversion(a, b UnitProduct) (int, bool) {
	diff := make(map[Unit]int)
	for _, up := range a {
		diff[up.Unit] += up.Power
	}
	for _, up := range b {
		diff[up.Unit] -= up.Power
	}
	for u, p := range diff {
		if p != 0 && u != UnitPhx && u != UnitPx {
			return 0, false
		}
	}
	ppx, lpx := diff[UnitPhx], diff[UnitPx]
	if ppx == 0 || ppx != -lpx {
		return 0, false
	}
	return ppx, true
}

// IsPropertyType is true for types a property may be declared with.
func IsPropertyType(t Type) bool {
	switch t.(type) {
	case *Enumeration, *Struct, Array:
		return true
	}
	switch t {
	case Float32, Int32, String, Color, Duration, Angle, PhysicalLength,
		LogicalLength, Percent, Image, Bool, Model, Easing, ElementReference, Brush:
		return true
	}
	return false
}

// IsCallable is true for callbacks and function types, and for unresolved
// callback aliases.
func IsCallable(t Type) bool {
	switch t.(type) {
	case *Callback, *Function:
		return true
	}
	return t == InferredCallback
}
