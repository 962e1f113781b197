package langtype

import (
	"math"
	"testing"

	"github.com/npillmayer/schuko/tracing"
	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/npillmayer/tyse/core/dimen"
	"github.com/npillmayer/tyse/core/percent"
)

func TestUnitRoundTrip(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "uic.langtype")
	defer teardown()
	tracer().SetTraceLevel(tracing.LevelError)
	//
	for _, u := range AllUnits() {
		v, ok := UnitFromString(u.String())
		if !ok || v != u {
			t.Errorf("expected unit %q to parse back to itself, is %v (%v)", u, v, ok)
		}
	}
	if _, ok := UnitFromString("furlong"); ok {
		t.Errorf("expected unknown unit string to be rejected")
	}
}

func TestUnitNormalize(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "uic.langtype")
	defer teardown()
	tracer().SetTraceLevel(tracing.LevelError)
	//
	tests := []struct {
		v    float64
		u    Unit
		norm float64
		ty   Type
	}{
		{5, UnitCm, 189, LogicalLength},
		{2, UnitS, 2000, Duration},
		{1, UnitIn, 96, LogicalLength},
		{1, UnitTurn, 360, Angle},
		{200, UnitGrad, 180, Angle},
		{math.Pi, UnitRad, 180, Angle},
		{50, UnitPercent, 50, Percent},
		{3, UnitNone, 3, Float32},
	}
	for _, test := range tests {
		n := test.u.Normalize(test.v)
		if math.Abs(n-test.norm) > 1e-9 {
			t.Errorf("expected %g%s to normalize to %g, is %g", test.v, test.u, test.norm, n)
		}
		if !test.u.Ty().Equal(test.ty) {
			t.Errorf("expected unit %s to be of type %s, is %s", test.u, test.ty, test.u.Ty())
		}
	}
}

func TestCanonicalUnitProduct(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "uic.langtype")
	defer teardown()
	tracer().SetTraceLevel(tracing.LevelError)
	//
	p := CanonicalUnitProduct([]UnitPower{
		{UnitMs, -1}, {UnitPx, 1}, {UnitPhx, 2}, {UnitPx, 1}, {UnitDeg, 1}, {UnitDeg, -1},
	})
	expected := UnitProduct{{UnitPhx, 2}, {UnitPx, 2}, {UnitMs, -1}}
	if !p.Equal(expected) {
		t.Errorf("expected canonical product %s, is %s", expected, p)
	}
	q := CanonicalUnitProduct([]UnitPower{{UnitPx, 2}, {UnitMs, -1}, {UnitPhx, 2}})
	if !p.Equal(q) {
		t.Errorf("expected %s and %s to be equal regardless of construction order", p, q)
	}
	for i, up := range p {
		if up.Power == 0 {
			t.Errorf("zero exponent in canonical product at %d", i)
		}
	}
}

func TestCombineUnitProducts(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "uic.langtype")
	defer teardown()
	tracer().SetTraceLevel(tracing.LevelError)
	//
	px := UnitProduct{{UnitPx, 1}}
	area := CombineUnitProducts(px, px, false)
	if !area.Equal(UnitProduct{{UnitPx, 2}}) {
		t.Errorf("expected px×px to be px^2, is %s", area)
	}
	if ty := TypeForUnitProduct(CombineUnitProducts(area, px, true)); !ty.Equal(LogicalLength) {
		t.Errorf("expected px^2/px to be a length, is %s", ty)
	}
	if ty := TypeForUnitProduct(CombineUnitProducts(px, px, true)); !ty.Equal(Float32) {
		t.Errorf("expected px/px to cancel to float, is %s", ty)
	}
}

func TestDimenFromLiteral(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "uic.langtype")
	defer teardown()
	tracer().SetTraceLevel(tracing.LevelError)
	//
	d, ok := DimenFromLiteral(96, UnitPx)
	if !ok {
		t.Fatalf("expected a length to convert to a dimension")
	}
	var du dimen.DU
	switch m := d.Match(); m {
	case m.Just(&du):
		if du != 72*dimen.PT {
			t.Errorf("expected 96px to be 72pt, is %v", du)
		}
	default:
		t.Errorf("expected a fixed dimension, is %s", d)
	}
	d, ok = DimenFromLiteral(50, UnitPercent)
	var p percent.Percent
	if m := d.Match(); !ok || m.Percentage(&p) == nil || p != percent.FromInt(50) {
		t.Errorf("expected 50%% to be a percentage dimension, is %s", d)
	}
	if _, ok = DimenFromLiteral(1, UnitS); ok {
		t.Errorf("expected a duration not to be a dimension")
	}
}
