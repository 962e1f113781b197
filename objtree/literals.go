package objtree

import (
	"errors"
	"image/color"
	"strconv"
	"strings"

	"github.com/npillmayer/uic/langtype"
)

// LiteralExpression turns the default value of a builtin property into an
// expression.
func LiteralExpression(lit *langtype.Literal) Expression {
	switch lit.Kind {
	case langtype.NumberLit:
		return Number(lit.Number, lit.Unit)
	case langtype.StringLit:
		return &StringLiteral{Value: lit.Str}
	case langtype.BoolLit:
		return &BoolLiteral{Value: lit.Bool}
	case langtype.EnumLit:
		return &EnumerationValue{Value: lit.Enum}
	case langtype.ColorLit:
		return colorExpression(lit.Color)
	}
	panic("objtree: unknown literal kind")
}

func colorExpression(argb uint32) Expression {
	return &Cast{From: Number(float64(argb), langtype.UnitNone), To: langtype.Color}
}

var errNumberLiteral = errors.New("Cannot parse number literal")

// ParseNumberLiteral splits a number literal like "12.5px" into value and
// unit. An unknown unit suffix returns false for ok with a nil error.
func ParseNumberLiteral(s string) (v float64, u langtype.Unit, ok bool, err error) {
	end := strings.IndexFunc(s, func(r rune) bool {
		return !(r >= '0' && r <= '9' || r == '.')
	})
	if end < 0 {
		end = len(s)
	}
	v, err = strconv.ParseFloat(s[:end], 64)
	if err != nil {
		return 0, langtype.UnitNone, false, errNumberLiteral
	}
	u, ok = langtype.UnitFromString(s[end:])
	return v, u, ok, nil
}

// ParseColorLiteral parses #rgb, #rgba, #rrggbb or #rrggbbaa into ARGB.
func ParseColorLiteral(s string) (uint32, bool) {
	if !strings.HasPrefix(s, "#") {
		return 0, false
	}
	hex := s[1:]
	c, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return 0, false
	}
	x := uint32(c)
	switch len(hex) {
	case 3:
		return 0xff000000 | nibbles(x>>8, x>>4, x), true
	case 4:
		return (x&0xf)*0x11<<24 | nibbles(x>>12, x>>8, x>>4), true
	case 6:
		return 0xff000000 | x, true
	case 8:
		return x>>8 | x<<24, true
	}
	return 0, false
}

// nibbles expands three 4-bit color components to RGB.
func nibbles(r, g, b uint32) uint32 {
	return (r&0xf)*0x11<<16 | (g&0xf)*0x11<<8 | (b&0xf)*0x11
}

// UnescapeString resolves backslash escapes in the text of a string literal.
func UnescapeString(s string) (string, bool) {
	if !strings.ContainsRune(s, '\\') {
		return s, true
	}
	var b strings.Builder
	for len(s) > 0 {
		r, _, tail, err := strconv.UnquoteChar(s, '"')
		if err != nil {
			return "", false
		}
		b.WriteRune(r)
		s = tail
	}
	return b.String(), true
}

func argb(c color.RGBA) uint32 {
	return uint32(c.A)<<24 | uint32(c.R)<<16 | uint32(c.G)<<8 | uint32(c.B)
}

// namedColors holds the CSS color keywords accepted for color and brush
// properties and in the `Colors` namespace.
var namedColors = map[string]color.RGBA{
	"transparent": {0, 0, 0, 0},
	"black":       {0, 0, 0, 0xff},
	"white":       {0xff, 0xff, 0xff, 0xff},
	"red":         {0xff, 0, 0, 0xff},
	"green":       {0, 0x80, 0, 0xff},
	"lime":        {0, 0xff, 0, 0xff},
	"blue":        {0, 0, 0xff, 0xff},
	"yellow":      {0xff, 0xff, 0, 0xff},
	"cyan":        {0, 0xff, 0xff, 0xff},
	"aqua":        {0, 0xff, 0xff, 0xff},
	"magenta":     {0xff, 0, 0xff, 0xff},
	"fuchsia":     {0xff, 0, 0xff, 0xff},
	"gray":        {0x80, 0x80, 0x80, 0xff},
	"grey":        {0x80, 0x80, 0x80, 0xff},
	"darkgray":    {0xa9, 0xa9, 0xa9, 0xff},
	"lightgray":   {0xd3, 0xd3, 0xd3, 0xff},
	"silver":      {0xc0, 0xc0, 0xc0, 0xff},
	"maroon":      {0x80, 0, 0, 0xff},
	"olive":       {0x80, 0x80, 0, 0xff},
	"navy":        {0, 0, 0x80, 0xff},
	"purple":      {0x80, 0, 0x80, 0xff},
	"teal":        {0, 0x80, 0x80, 0xff},
	"orange":      {0xff, 0xa5, 0, 0xff},
	"pink":        {0xff, 0xc0, 0xcb, 0xff},
	"brown":       {0xa5, 0x2a, 0x2a, 0xff},
	"gold":        {0xff, 0xd7, 0, 0xff},
	"violet":      {0xee, 0x82, 0xee, 0xff},
	"indigo":      {0x4b, 0, 0x82, 0xff},
	"coral":       {0xff, 0x7f, 0x50, 0xff},
	"salmon":      {0xfa, 0x80, 0x72, 0xff},
	"tomato":      {0xff, 0x63, 0x47, 0xff},
	"crimson":     {0xdc, 0x14, 0x3c, 0xff},
	"khaki":       {0xf0, 0xe6, 0x8c, 0xff},
	"beige":       {0xf5, 0xf5, 0xdc, 0xff},
	"ivory":       {0xff, 0xff, 0xf0, 0xff},
	"lavender":    {0xe6, 0xe6, 0xfa, 0xff},
	"turquoise":   {0x40, 0xe0, 0xd0, 0xff},
	"skyblue":     {0x87, 0xce, 0xeb, 0xff},
	"steelblue":   {0x46, 0x82, 0xb4, 0xff},
	"powderblue":  {0xb0, 0xe0, 0xe6, 0xff},
	"darkblue":    {0, 0, 0x8b, 0xff},
	"darkgreen":   {0, 0x64, 0, 0xff},
	"darkred":     {0x8b, 0, 0, 0xff},
	"lightblue":   {0xad, 0xd8, 0xe6, 0xff},
	"lightgreen":  {0x90, 0xee, 0x90, 0xff},
	"whitesmoke":  {0xf5, 0xf5, 0xf5, 0xff},
	"chocolate":   {0xd2, 0x69, 0x1e, 0xff},
	"tan":         {0xd2, 0xb4, 0x8c, 0xff},
	"orchid":      {0xda, 0x70, 0xd6, 0xff},
	"plum":        {0xdd, 0xa0, 0xdd, 0xff},
}

// NamedColor returns the ARGB value of a CSS color keyword.
func NamedColor(name string) (uint32, bool) {
	c, ok := namedColors[strings.ToLower(name)]
	if !ok {
		return 0, false
	}
	return argb(c), true
}
