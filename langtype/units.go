package langtype

import (
	"math"
	"sort"
)

// Unit is the unit of a numeric literal.
type Unit uint8

// Units in declaration order. The order is used to sort unit products.
const (
	UnitNone    Unit = iota // no unit, a plain number
	UnitPercent             // %
	UnitPhx                 // physical pixels
	UnitPx                  // logical pixels
	UnitCm                  // centimeters
	UnitMm                  // millimeters
	UnitIn                  // inches
	UnitPt                  // points
	UnitS                   // seconds
	UnitMs                  // milliseconds
	UnitDeg                 // degrees
	UnitGrad                // gradians
	UnitTurn                // turns
	UnitRad                 // radians
)

type unitInfo struct {
	name   string
	base   Primitive
	factor float64
}

var units = [...]unitInfo{
	UnitNone:    {"", Float32, 1},
	UnitPercent: {"%", Percent, 1},
	UnitPhx:     {"phx", PhysicalLength, 1},
	UnitPx:      {"px", LogicalLength, 1},
	UnitCm:      {"cm", LogicalLength, 37.8},
	UnitMm:      {"mm", LogicalLength, 3.78},
	UnitIn:      {"in", LogicalLength, 96},
	UnitPt:      {"pt", LogicalLength, 96.0 / 72.0},
	UnitS:       {"s", Duration, 1000},
	UnitMs:      {"ms", Duration, 1},
	UnitDeg:     {"deg", Angle, 1},
	UnitGrad:    {"grad", Angle, 360.0 / 400.0},
	UnitTurn:    {"turn", Angle, 360},
	UnitRad:     {"rad", Angle, 360.0 / (2 * math.Pi)},
}

// AllUnits returns every unit, in declaration order.
func AllUnits() []Unit {
	all := make([]Unit, len(units))
	for i := range units {
		all[i] = Unit(i)
	}
	return all
}

// String returns the display string of a unit, which is also its parse string.
func (u Unit) String() string {
	if int(u) < len(units) {
		return units[u].name
	}
	return "?"
}

// UnitFromString parses a unit suffix.
func UnitFromString(s string) (Unit, bool) {
	for i, info := range units {
		if info.name == s {
			return Unit(i), true
		}
	}
	return UnitNone, false
}

// Ty is the type a value with this unit normalizes to.
func (u Unit) Ty() Type {
	return units[u].base
}

// Normalize converts a value in this unit to the canonical unit of its base
// type: px for lengths, ms for durations, deg for angles.
func (u Unit) Normalize(v float64) float64 {
	return v * units[u].factor
}

// CanonicalUnitProduct merges entries per unit, removes entries with exponent 0
// and sorts by descending power, then by unit.
func CanonicalUnitProduct(v []UnitPower) UnitProduct {
	powers := make(map[Unit]int, len(v))
	for _, up := range v {
		powers[up.Unit] += up.Power
	}
	r := make(UnitProduct, 0, len(powers))
	for u, p := range powers {
		if p != 0 {
			r = append(r, UnitPower{Unit: u, Power: p})
		}
	}
	sort.Slice(r, func(i, j int) bool {
		if r[i].Power != r[j].Power {
			return r[i].Power > r[j].Power
		}
		return r[i].Unit < r[j].Unit
	})
	return r
}

// CombineUnitProducts multiplies (divide=false) or divides (divide=true) two
// unit products and returns the canonical result.
func CombineUnitProducts(lhs, rhs UnitProduct, divide bool) UnitProduct {
	v := make([]UnitPower, 0, len(lhs)+len(rhs))
	v = append(v, lhs...)
	for _, up := range rhs {
		if divide {
			up.Power = -up.Power
		}
		v = append(v, up)
	}
	return CanonicalUnitProduct(v)
}

// TypeForUnitProduct returns the type of a value with a canonical unit product:
// Float32 if it is empty, the unit's type for a single unit with power 1,
// and the unit product itself otherwise.
func TypeForUnitProduct(u UnitProduct) Type {
	switch {
	case len(u) == 0:
		return Float32
	case len(u) == 1 && u[0].Power == 1:
		return u[0].Unit.Ty()
	}
	return u
}
