package langtype

import (
	"fmt"
	"math"

	"github.com/npillmayer/tyse/core/dimen"
	"github.com/npillmayer/tyse/core/percent"
)

const (
	dimenNone     uint32 = 0
	dimenAbsolute uint32 = 0x0001
	dimenPercent  uint32 = 0x0002
	kindMask      uint32 = 0x000f
)

// Dimen is an option type for constant geometry values, as handed to layout
// consumers downstream: either a fixed length in design units, a percentage,
// or nothing.
type Dimen struct {
	d       dimen.DU
	percent percent.Percent
	flags   uint32
}

/*
type Dimen
	= None
	| JustDimen dimen
	| Percentage percent.Percent
*/

// NoDimen is the empty dimension.
func NoDimen() Dimen {
	return Dimen{flags: dimenNone}
}

// JustDimen creates a dimension with a fixed value of x.
func JustDimen(x dimen.DU) Dimen {
	return Dimen{d: x, flags: dimenAbsolute}
}

// Percentage creates a %-relative dimension.
func Percentage(n percent.Percent) Dimen {
	return Dimen{percent: n, flags: dimenPercent}
}

// One logical pixel is 1/96 in, one point is 1/72 in.
const pointsPerPx = 72.0 / 96.0

// ToDesignUnits converts a logical length in px to design units.
func ToDesignUnits(px float64) dimen.DU {
	return dimen.DU(math.Round(px * pointsPerPx * float64(dimen.PT)))
}

// DimenFromLiteral converts a constant numeric value with a unit to a Dimen.
// Only length and percent units are geometry values.
func DimenFromLiteral(value float64, unit Unit) (Dimen, bool) {
	switch unit.Ty() {
	case LogicalLength:
		return JustDimen(ToDesignUnits(unit.Normalize(value))), true
	case Percent:
		return Percentage(percent.FromInt(int(math.Round(value)))), true
	}
	return NoDimen(), false
}

func (d Dimen) String() string {
	switch d.flags & kindMask {
	case dimenAbsolute:
		return fmt.Sprintf("%s", d.d)
	case dimenPercent:
		return fmt.Sprintf("%s", d.percent)
	}
	return "none"
}

// ---------------------------------------------------------------------------

// Match starts a match on a dimension.
func (d Dimen) Match() *Matcher {
	return &Matcher{dimen: d}
}

// Matcher matches a Dimen against its variants, in a switch statement:
//
//	switch m := d.Match(); m {
//	case m.Just(&du): …
//	case m.Percentage(&p): …
//	}
type Matcher struct {
	dimen Dimen
}

// IsKind matches if the dimension is of the same variant as d.
func (m *Matcher) IsKind(d Dimen) *Matcher {
	if (m.dimen.flags & kindMask) == (d.flags & kindMask) {
		return m
	}
	return nil
}

// Just matches fixed dimensions and extracts the value.
func (m *Matcher) Just(du *dimen.DU) *Matcher {
	if m.dimen.flags&dimenAbsolute > 0 {
		if du != nil {
			*du = m.dimen.d
		}
		return m
	}
	return nil
}

// Percentage matches percentages and extracts the value.
func (m *Matcher) Percentage(p *percent.Percent) *Matcher {
	if m.dimen.flags&dimenPercent > 0 {
		if p != nil {
			*p = m.dimen.percent
		}
		return m
	}
	return nil
}
