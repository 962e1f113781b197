package styles

/*
License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>

*/

import (
	"errors"
	"fmt"
	"strings"

	"github.com/npillmayer/uic/langtype"
	"github.com/npillmayer/uic/objtree"
	"github.com/npillmayer/uic/syntax"
)

// Property is a raw value for a style property. For example, with
//
//     font-size: 14px
//
// a property value of "14px" is set. The main purpose of wrapping
// the raw string value into type Property is to provide conversion
// to literals of the type of the property it is applied to.
type Property string

// NullStyle is an empty property value.
const NullStyle Property = ""

func (p Property) String() string {
	return string(p)
}

// IsInitial denotes if a property is of inheritence-type "initial"
func (p Property) IsInitial() bool {
	return p == "initial"
}

// IsInherit denotes if a property is of inheritence-type "inherit"
func (p Property) IsInherit() bool {
	return p == "inherit"
}

// IsEmpty checks wether a property is empty, i.e. the null-string.
func (p Property) IsEmpty() bool {
	return p == ""
}

// KeyValue is a container for a style property.
type KeyValue struct {
	Key   string
	Value Property
}

// ErrInvalidValue is returned for property values which cannot be converted
// to the type of the property.
var ErrInvalidValue = errors.New("invalid style value")

// Literal converts a property value to a literal of type t.
//
// Numbers are written with an optional unit, which has to be compatible with
// t. A plain zero is accepted for every unit-bearing type. Colors are written
// as #rgb, #rgba, #rrggbb, #rrggbbaa or as color keywords. Strings may be
// quoted. Enumeration values are written with dashes or underscores.
func (p Property) Literal(t langtype.Type) (*langtype.Literal, error) {
	v := strings.TrimSpace(p.String())
	if v == "" || p.IsInitial() || p.IsInherit() {
		return nil, fmt.Errorf("%w: %q has no value", ErrInvalidValue, v)
	}
	switch x := t.(type) {
	case *langtype.Enumeration:
		if ev, ok := x.Value(syntax.NormalizeIdentifier(strings.ToLower(v))); ok {
			return &langtype.Literal{Kind: langtype.EnumLit, Enum: ev}, nil
		}
		return nil, fmt.Errorf("%w: %q is not a value of %s", ErrInvalidValue, v, x)
	case langtype.Primitive:
		switch x {
		case langtype.String:
			return &langtype.Literal{Kind: langtype.StringLit, Str: unquote(v)}, nil
		case langtype.Bool:
			switch strings.ToLower(v) {
			case "true":
				return &langtype.Literal{Kind: langtype.BoolLit, Bool: true}, nil
			case "false":
				return &langtype.Literal{Kind: langtype.BoolLit}, nil
			}
			return nil, fmt.Errorf("%w: %q is not a bool", ErrInvalidValue, v)
		case langtype.Color, langtype.Brush:
			if c, ok := objtree.ParseColorLiteral(v); ok {
				return &langtype.Literal{Kind: langtype.ColorLit, Color: c}, nil
			}
			if c, ok := objtree.NamedColor(v); ok {
				return &langtype.Literal{Kind: langtype.ColorLit, Color: c}, nil
			}
			return nil, fmt.Errorf("%w: %q is not a color", ErrInvalidValue, v)
		case langtype.Float32, langtype.Int32, langtype.LogicalLength, langtype.PhysicalLength,
			langtype.Duration, langtype.Angle, langtype.Percent:
			return numberLiteral(v, x)
		}
	}
	return nil, fmt.Errorf("%w: properties of type %s cannot be styled", ErrInvalidValue, t)
}

func numberLiteral(v string, t langtype.Type) (*langtype.Literal, error) {
	sign := 1.0
	if strings.HasPrefix(v, "-") {
		sign, v = -1, v[1:]
	}
	n, u, ok, err := objtree.ParseNumberLiteral(strings.ToLower(v))
	n *= sign
	if err != nil {
		return nil, fmt.Errorf("%w: %q: %v", ErrInvalidValue, v, err)
	}
	if !ok {
		return nil, fmt.Errorf("%w: unknown unit in %q", ErrInvalidValue, v)
	}
	if u == langtype.UnitNone {
		if du, hasUnit := langtype.DefaultUnit(t); hasUnit {
			if n != 0 {
				return nil, fmt.Errorf("%w: %q needs a unit", ErrInvalidValue, v)
			}
			u = du
		}
	}
	if !langtype.CanConvert(u.Ty(), t) {
		return nil, fmt.Errorf("%w: cannot use %q for a property of type %s", ErrInvalidValue, v, t)
	}
	return langtype.NumberLiteral(n, u), nil
}

func unquote(s string) string {
	if len(s) >= 2 {
		if q := s[0]; (q == '"' || q == '\'') && s[len(s)-1] == q {
			return s[1 : len(s)-1]
		}
	}
	return s
}

// --- Compound properties --------------------------------------------------

var fourDirs = [4]string{"top", "right", "bottom", "left"}

// SplitCompoundProperty splits up a shortcut property into its individual
// components. Returns a slice of key-value pairs representing the
// individual (fine grained) style properties.
// Example:
//    SplitCompoundProperty("padding", "3px 5px")
// will return
//    "padding_top"    => "3px"
//    "padding_right"  => "5px"
//    "padding_bottom" => "3px"
//    "padding_left"   => "5px"
//
// A single value is not split, as layouts have a property `padding` of their
// own.
func SplitCompoundProperty(key string, value Property) ([]KeyValue, error) {
	fields := strings.Fields(value.String())
	switch key {
	case "padding":
		if len(fields) == 1 {
			return []KeyValue{{key, value}}, nil
		}
		return feazeCompound4("padding", fourDirs, fields)
	}
	return nil, fmt.Errorf("not recognized as compound property: %s", key)
}

// IsCompoundProperty is true for shortcut properties SplitCompoundProperty
// knows how to split.
func IsCompoundProperty(key string) bool {
	return key == "padding"
}

// CSS logic to distribute individual values from compound shortcuts is as
// follows: https://www.w3schools.com/css/css_padding.asp
func feazeCompound4(pre string, dirs [4]string, fields []string) ([]KeyValue, error) {
	l := len(fields)
	if l == 0 || l > 4 {
		return nil, fmt.Errorf("expecting 1-4 values for %s", pre)
	}
	r := make([]KeyValue, 4)
	r[0] = KeyValue{pre + "_" + dirs[0], Property(fields[0])}
	r[1] = KeyValue{pre + "_" + dirs[1], Property(fields[0])}
	if l >= 2 {
		r[1].Value = Property(fields[1])
	}
	r[2] = KeyValue{pre + "_" + dirs[2], r[0].Value}
	if l >= 3 {
		r[2].Value = Property(fields[2])
	}
	r[3] = KeyValue{pre + "_" + dirs[3], r[1].Value}
	if l == 4 {
		r[3].Value = Property(fields[3])
	}
	return r, nil
}
