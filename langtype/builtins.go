package langtype

import "sort"

// LiteralKind discriminates default values of builtin properties.
type LiteralKind uint8

// Kinds of literals
const (
	NumberLit LiteralKind = iota
	StringLit
	BoolLit
	EnumLit
	ColorLit
)

// Literal is a constant default value for a builtin property. The object tree
// turns literals into expressions.
type Literal struct {
	Kind   LiteralKind
	Number float64
	Unit   Unit
	Str    string
	Bool   bool
	Enum   EnumerationValue
	Color  uint32 // ARGB
}

// NumberLiteral creates a numeric literal with a unit.
func NumberLiteral(v float64, u Unit) *Literal {
	return &Literal{Kind: NumberLit, Number: v, Unit: u}
}

// BuiltinPropertyInfo describes a property of a builtin element.
// IsNativeOutput is set for properties the native item changes by itself
// (e.g. TouchArea.pressed); such properties are never constant.
type BuiltinPropertyInfo struct {
	Ty             Type
	DefaultValue   *Literal
	IsNativeOutput bool
}

// NativeClass is the native item implementing a builtin element.
type NativeClass struct {
	Parent            *NativeClass
	ClassName         string
	Properties        map[string]BuiltinPropertyInfo
	DeprecatedAliases map[string]string // deprecated name → current name
}

func (n *NativeClass) isType() {}

func (n *NativeClass) String() string {
	return n.ClassName
}

// Equal compares native classes by identity.
func (n *NativeClass) Equal(other Type) bool {
	o, ok := other.(*NativeClass)
	return ok && n == o
}

// LookupProperty searches a property in the class and its ancestors.
func (n *NativeClass) LookupProperty(name string) (Type, bool) {
	for c := n; c != nil; c = c.Parent {
		if info, ok := c.Properties[name]; ok {
			return info.Ty, true
		}
	}
	return nil, false
}

// LookupAlias returns the current name for a deprecated property name.
func (n *NativeClass) LookupAlias(name string) (string, bool) {
	for c := n; c != nil; c = c.Parent {
		if alias, ok := c.DeprecatedAliases[name]; ok {
			return alias, true
		}
	}
	return "", false
}

// BuiltinElement is an element type provided by the runtime.
type BuiltinElement struct {
	Name                               string
	NativeClass                        *NativeClass
	Properties                         map[string]BuiltinPropertyInfo
	AdditionalAcceptedChildTypes       map[string]*BuiltinElement
	DisallowGlobalTypesAsChildElements bool
	IsNonItemType                      bool // not a visible item, e.g. PropertyAnimation
	AcceptsFocus                       bool
	IsGlobal                           bool
}

func (b *BuiltinElement) isType() {}

func (b *BuiltinElement) String() string {
	return b.Name
}

// Equal compares builtin elements by identity.
func (b *BuiltinElement) Equal(other Type) bool {
	o, ok := other.(*BuiltinElement)
	return ok && b == o
}

// SortedPropertyNames returns the names of all properties in lexical order.
func (b *BuiltinElement) SortedPropertyNames() []string {
	names := make([]string, 0, len(b.Properties))
	for n := range b.Properties {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

// --- Builtin definitions ---------------------------------------------------

func enumeration(name string, values ...string) *Enumeration {
	return &Enumeration{Name: name, Values: values}
}

// Builtin enumerations.
var (
	TextHorizontalAlignment = enumeration("TextHorizontalAlignment", "left", "center", "right")
	TextVerticalAlignment   = enumeration("TextVerticalAlignment", "top", "center", "bottom")
	ImageFit                = enumeration("ImageFit", "fill", "contain")
	LayoutAlignment         = enumeration("LayoutAlignment", "stretch", "center", "start", "end", "space_between", "space_around")
	TextWrap                = enumeration("TextWrap", "no_wrap", "word_wrap")
	TextOverflow            = enumeration("TextOverflow", "clip", "elide")
)

// BuiltinEnumerations returns all builtin enumerations.
func BuiltinEnumerations() []*Enumeration {
	return []*Enumeration{TextHorizontalAlignment, TextVerticalAlignment, ImageFit,
		LayoutAlignment, TextWrap, TextOverflow}
}

type props map[string]BuiltinPropertyInfo

func prop(t Type) BuiltinPropertyInfo {
	return BuiltinPropertyInfo{Ty: t}
}

func output(t Type) BuiltinPropertyInfo {
	return BuiltinPropertyInfo{Ty: t, IsNativeOutput: true}
}

func withDefault(t Type, lit *Literal) BuiltinPropertyInfo {
	return BuiltinPropertyInfo{Ty: t, DefaultValue: lit}
}

func enumDefault(e *Enumeration) BuiltinPropertyInfo {
	return BuiltinPropertyInfo{Ty: e, DefaultValue: &Literal{Kind: EnumLit, Enum: e.Default()}}
}

func native(name string, p props) *NativeClass {
	return &NativeClass{ClassName: name, Properties: p}
}

func builtin(n *NativeClass) *BuiltinElement {
	b := &BuiltinElement{Name: n.ClassName, NativeClass: n, Properties: make(map[string]BuiltinPropertyInfo)}
	for c := n; c != nil; c = c.Parent {
		for k, v := range c.Properties {
			if _, ok := b.Properties[k]; !ok {
				b.Properties[k] = v
			}
		}
	}
	return b
}

func callback(args ...Type) *Callback {
	return &Callback{Args: args}
}

// builtinElements creates the elements of the runtime library. Every call
// creates fresh instances.
func builtinElements() []*BuiltinElement {
	length := LogicalLength
	rect := native("Rectangle", props{"background": prop(Brush)})
	rect.DeprecatedAliases = map[string]string{"color": "background"}
	border := native("BorderRectangle", props{
		"background":    prop(Brush),
		"border_width":  prop(length),
		"border_radius": prop(length),
		"border_color":  prop(Brush),
	})
	border.DeprecatedAliases = map[string]string{"color": "background"}
	image := native("Image", props{
		"source":    prop(Image),
		"image_fit": enumDefault(ImageFit),
	})
	clipped := native("ClippedImage", props{
		"source":             prop(Image),
		"image_fit":          enumDefault(ImageFit),
		"source_clip_x":      prop(Int32),
		"source_clip_y":      prop(Int32),
		"source_clip_width":  prop(Int32),
		"source_clip_height": prop(Int32),
	})
	text := native("Text", props{
		"text":                 prop(String),
		"font_family":          prop(String),
		"font_size":            prop(length),
		"font_weight":          prop(Int32),
		"color":                withDefault(Brush, &Literal{Kind: ColorLit, Color: 0xff000000}),
		"horizontal_alignment": enumDefault(TextHorizontalAlignment),
		"vertical_alignment":   enumDefault(TextVerticalAlignment),
		"wrap":                 enumDefault(TextWrap),
		"overflow":             enumDefault(TextOverflow),
		"letter_spacing":       prop(length),
	})
	touch := native("TouchArea", props{
		"enabled":   withDefault(Bool, &Literal{Kind: BoolLit, Bool: true}),
		"pressed":   output(Bool),
		"has_hover": output(Bool),
		"mouse_x":   output(length),
		"mouse_y":   output(length),
		"pressed_x": output(length),
		"pressed_y": output(length),
		"clicked":   prop(callback()),
	})
	focus := native("FocusScope", props{
		"has_focus":    output(Bool),
		"key_pressed":  prop(callback()),
		"key_released": prop(callback()),
	})
	flick := native("Flickable", props{
		"viewport_x":      prop(length),
		"viewport_y":      prop(length),
		"viewport_width":  prop(length),
		"viewport_height": prop(length),
		"interactive":     withDefault(Bool, &Literal{Kind: BoolLit, Bool: true}),
	})
	window := native("Window", props{
		"title":               withDefault(String, &Literal{Kind: StringLit, Str: "Window"}),
		"background":          prop(Brush),
		"no_frame":            prop(Bool),
		"icon":                prop(Image),
		"default_font_family": prop(String),
		"default_font_size":   prop(length),
	})
	popup := native("PopupWindow", props{})
	shadow := native("BoxShadow", props{
		"border_radius": prop(length),
		"offset_x":      prop(length),
		"offset_y":      prop(length),
		"color":         prop(Color),
		"blur":          prop(length),
	})
	clip := native("Clip", props{"clip": prop(Bool), "border_radius": prop(length), "border_width": prop(length)})
	opacity := native("Opacity", props{"opacity": prop(Float32)})
	path := native("Path", props{
		"fill":           prop(Brush),
		"stroke":         prop(Brush),
		"stroke_width":   prop(length),
		"commands":       prop(String),
		"viewbox_x":      prop(Float32),
		"viewbox_y":      prop(Float32),
		"viewbox_width":  prop(Float32),
		"viewbox_height": prop(Float32),
	})
	moveTo := native("MoveTo", props{"x": prop(Float32), "y": prop(Float32)})
	lineTo := native("LineTo", props{"x": prop(Float32), "y": prop(Float32)})
	closeP := native("Close", props{})
	layoutProps := props{
		"spacing":        prop(length),
		"padding":        prop(length),
		"padding_left":   prop(length),
		"padding_right":  prop(length),
		"padding_top":    prop(length),
		"padding_bottom": prop(length),
		"alignment":      enumDefault(LayoutAlignment),
	}
	grid := native("GridLayout", layoutProps)
	row := native("Row", props{})
	hbox := native("HorizontalLayout", layoutProps)
	vbox := native("VerticalLayout", layoutProps)
	listview := native("ListView", props{
		"viewport_x":      prop(length),
		"viewport_y":      prop(length),
		"viewport_width":  prop(length),
		"viewport_height": prop(length),
		"visible_width":   output(length),
		"visible_height":  output(length),
	})
	anim := native("PropertyAnimation", props{
		"duration":   prop(Duration),
		"delay":      prop(Duration),
		"easing":     prop(Easing),
		"loop_count": prop(Int32),
	})

	pathElem := builtin(path)
	pathElem.AdditionalAcceptedChildTypes = map[string]*BuiltinElement{
		"MoveTo": nonItem(builtin(moveTo)),
		"LineTo": nonItem(builtin(lineTo)),
		"Close":  nonItem(builtin(closeP)),
	}
	pathElem.DisallowGlobalTypesAsChildElements = true
	gridElem := builtin(grid)
	gridElem.AdditionalAcceptedChildTypes = map[string]*BuiltinElement{"Row": builtin(row)}
	focusElem := builtin(focus)
	focusElem.AcceptsFocus = true
	return []*BuiltinElement{
		builtin(rect), builtin(border), builtin(image), builtin(clipped), builtin(text),
		builtin(touch), focusElem, builtin(flick), builtin(window), builtin(popup),
		builtin(shadow), builtin(clip), builtin(opacity), pathElem, gridElem,
		builtin(hbox), builtin(vbox), builtin(listview), nonItem(builtin(anim)),
	}
}

func nonItem(b *BuiltinElement) *BuiltinElement {
	b.IsNonItemType = true
	return b
}

// --- Reserved properties ---------------------------------------------------

var reservedProperties = map[string]Type{
	"x":                    LogicalLength,
	"y":                    LogicalLength,
	"width":                LogicalLength,
	"height":               LogicalLength,
	"min_width":            LogicalLength,
	"min_height":           LogicalLength,
	"max_width":            LogicalLength,
	"max_height":           LogicalLength,
	"preferred_width":      LogicalLength,
	"preferred_height":     LogicalLength,
	"padding":              LogicalLength,
	"padding_left":         LogicalLength,
	"padding_right":        LogicalLength,
	"padding_top":          LogicalLength,
	"padding_bottom":       LogicalLength,
	"horizontal_stretch":   Float32,
	"vertical_stretch":     Float32,
	"col":                  Int32,
	"row":                  Int32,
	"colspan":              Int32,
	"rowspan":              Int32,
	"clip":                 Bool,
	"opacity":              Float32,
	"visible":              Bool,
	"drop_shadow_offset_x": LogicalLength,
	"drop_shadow_offset_y": LogicalLength,
	"drop_shadow_blur":     LogicalLength,
	"drop_shadow_color":    Color,
}

// ReservedProperty returns the type of a property every item has, or Invalid.
func ReservedProperty(name string) Type {
	if t, ok := reservedProperties[name]; ok {
		return t
	}
	return Invalid
}

// ReservedPropertyNames returns the names of reserved properties, sorted.
func ReservedPropertyNames() []string {
	names := make([]string, 0, len(reservedProperties))
	for n := range reservedProperties {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

// IsDropShadowProperty is true for the drop_shadow_* reserved properties.
func IsDropShadowProperty(name string) bool {
	switch name {
	case "drop_shadow_offset_x", "drop_shadow_offset_y", "drop_shadow_blur", "drop_shadow_color":
		return true
	}
	return false
}
