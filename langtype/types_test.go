package langtype

import (
	"errors"
	"testing"

	"github.com/npillmayer/schuko/tracing"
	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/stretchr/testify/assert"
)

func TestStructEquality(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "uic.langtype")
	defer teardown()
	tracer().SetTraceLevel(tracing.LevelError)
	//
	a := &Struct{Fields: NewFields(Field{"x", LogicalLength}, Field{"y", LogicalLength})}
	b := &Struct{Fields: NewFields(Field{"y", LogicalLength}, Field{"x", LogicalLength})}
	assert.True(t, a.Equal(b), "field order must not matter")
	assert.Equal(t, []string{"x", "y"}, a.Fields.Names())
	assert.Equal(t, []string{"y", "x"}, b.Fields.Names())
	named := &Struct{Fields: a.Fields, Name: "Point"}
	assert.False(t, a.Equal(named), "a declared name makes structs distinct")
	assert.True(t, CanConvert(a, named))
	assert.Equal(t, "Point", named.String())
}

func TestCanConvert(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "uic.langtype")
	defer teardown()
	tracer().SetTraceLevel(tracing.LevelError)
	//
	point := &Struct{Fields: NewFields(Field{"x", Float32}, Field{"y", Float32})}
	point3 := &Struct{Fields: NewFields(Field{"x", Float32}, Field{"y", Float32}, Field{"z", Float32})}
	pointXI := &Struct{Fields: NewFields(Field{"x", Int32})}
	tests := []struct {
		from, to Type
		ok       bool
	}{
		{Int32, Float32, true},
		{Float32, String, true},
		{String, Float32, false},
		{Percent, Float32, true},
		{Float32, Percent, false},
		{LogicalLength, PhysicalLength, true},
		{LogicalLength, Duration, false},
		{Color, Brush, true},
		{Array{Elem: Int32}, Model, true},
		{Int32, Model, true},
		{Bool, Invalid, true},
		{point, point3, true},
		{point3, point, true},
		{pointXI, point3, true},
		{&Struct{Fields: NewFields(Field{"w", Float32}, Field{"x", Float32})}, point3, false},
		{UnitProduct{{UnitPhx, 1}, {UnitPx, -1}}, Float32, true},
		{UnitProduct{{UnitPx, 2}}, LogicalLength, false},
		{LogicalLength, UnitProduct{{UnitPhx, 1}}, true},
	}
	for _, test := range tests {
		if CanConvert(test.from, test.to) != test.ok {
			t.Errorf("expected CanConvert(%s, %s) to be %v", test.from, test.to, test.ok)
		}
	}
}

func TestUnitProductLengthConversion(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "uic.langtype")
	defer teardown()
	tracer().SetTraceLevel(tracing.LevelError)
	//
	p, ok := UnitProductLengthConversion(UnitProduct{{UnitPhx, 2}}, UnitProduct{{UnitPx, 2}})
	assert.True(t, ok)
	assert.Equal(t, 2, p)
	p, ok = UnitProductLengthConversion(UnitProduct{{UnitPx, 1}}, UnitProduct{{UnitPhx, 1}})
	assert.True(t, ok)
	assert.Equal(t, -1, p)
	_, ok = UnitProductLengthConversion(UnitProduct{{UnitPx, 1}}, UnitProduct{{UnitPx, 1}})
	assert.False(t, ok, "identical products need no conversion")
}

func TestBuiltinRegister(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "uic.langtype")
	defer teardown()
	tracer().SetTraceLevel(tracing.LevelError)
	//
	reg := NewTypeRegister(BuiltinRegister())
	assert.Equal(t, LogicalLength, reg.Lookup("length"))
	assert.Equal(t, Invalid, reg.Lookup("nonsense"))
	rect, err := reg.LookupElement("Rectangle")
	if assert.NoError(t, err) {
		r := LookupProperty(rect, "color")
		assert.Equal(t, "background", r.ResolvedName)
		assert.Equal(t, Brush, r.PropertyType)
		assert.Equal(t, LogicalLength, LookupProperty(rect, "width").PropertyType)
		assert.Equal(t, Invalid, LookupProperty(rect, "nonsense").PropertyType)
	}
	_, err = reg.LookupElement("length")
	var unknown *UnknownTypeError
	if assert.True(t, errors.As(err, &unknown)) {
		assert.Equal(t, "Unknown type length", err.Error())
	}
	e := reg.Lookup("TextHorizontalAlignment")
	if assert.IsType(t, &Enumeration{}, e) {
		v, ok := e.(*Enumeration).Value("center")
		assert.True(t, ok)
		assert.Equal(t, "center", v.String())
	}
	assert.Equal(t, reg.PropertyAnimationType(), reg.PropertyAnimationTypeForProperty(Color))
	assert.Equal(t, Invalid, reg.PropertyAnimationTypeForProperty(String))
}

func TestLookupTypeForChildElement(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "uic.langtype")
	defer teardown()
	tracer().SetTraceLevel(tracing.LevelError)
	//
	reg := BuiltinRegister()
	path, _ := reg.LookupElement("Path")
	lineTo, err := LookupTypeForChildElement(path, "LineTo", reg)
	assert.NoError(t, err)
	assert.Equal(t, "LineTo", lineTo.String())
	_, err = LookupTypeForChildElement(path, "Rectangle", reg)
	assert.True(t, errors.Is(err, ErrNotAllowedChild))
	assert.Equal(t, "Rectangle is not allowed within Path. Only Close LineTo MoveTo are valid children", err.Error())
	grid, _ := reg.LookupElement("GridLayout")
	_, err = LookupTypeForChildElement(grid, "Row", reg)
	assert.NoError(t, err)
	_, err = LookupTypeForChildElement(grid, "Text", reg)
	assert.NoError(t, err)
	_, err = reg.LookupElement("Row")
	assert.Error(t, err, "Row is only known within a GridLayout")
}
