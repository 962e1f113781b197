package objtree

import (
	"fmt"

	"github.com/npillmayer/uic/diagnostics"
	"github.com/npillmayer/uic/langtype"
)

// Orientation is the direction of a layout pass.
type Orientation uint8

// Orientations
const (
	Horizontal Orientation = iota
	Vertical
)

func (o Orientation) String() string {
	if o == Vertical {
		return "Vertical"
	}
	return "Horizontal"
}

var layoutInfoType = &langtype.Struct{
	Fields: langtype.NewFields(
		langtype.Field{Name: "min", Type: langtype.LogicalLength},
		langtype.Field{Name: "max", Type: langtype.LogicalLength},
		langtype.Field{Name: "preferred", Type: langtype.LogicalLength},
		langtype.Field{Name: "min_percent", Type: langtype.Float32},
		langtype.Field{Name: "max_percent", Type: langtype.Float32},
		langtype.Field{Name: "stretch", Type: langtype.Float32},
	),
	Name: "LayoutInfo",
}

// LayoutInfoType is the struct type of layout infos.
func LayoutInfoType() *langtype.Struct {
	return layoutInfoType
}

// LayoutConstraints are the size constraints of an element, as references
// to the properties they are bound to. Unbound constraints are nil.
type LayoutConstraints struct {
	MinWidth        *NamedReference
	MaxWidth        *NamedReference
	MinHeight       *NamedReference
	MaxHeight       *NamedReference
	PreferredWidth  *NamedReference
	PreferredHeight *NamedReference
	FixedWidth      bool
	FixedHeight     bool
	Width           langtype.Dimen // constant width in design units, if any
	Height          langtype.Dimen // constant height in design units, if any
}

// NewLayoutConstraints collects the constraints of an element from its
// bindings. A binding for width (height) fixes min and max width (height);
// it is an error to bind both width and min_width with the same priority.
func NewLayoutConstraints(e *Element, diag *diagnostics.BuildDiagnostics) LayoutConstraints {
	ref := func(name string) *NamedReference {
		if _, ok := e.Bindings[name]; ok {
			nr := NewNamedReference(e, name)
			return &nr
		}
		return nil
	}
	lc := LayoutConstraints{
		MinWidth:        ref("min_width"),
		MaxWidth:        ref("max_width"),
		MinHeight:       ref("min_height"),
		MaxHeight:       ref("max_height"),
		PreferredWidth:  ref("preferred_width"),
		PreferredHeight: ref("preferred_height"),
	}
	apply := func(prop string, binding *BindingExpression, op **NamedReference) {
		if other := *op; other != nil {
			if old, ok := other.Element().Bindings[other.Name()]; ok && old.Priority == binding.Priority {
				diag.PushError(fmt.Sprintf("Cannot specify both '%s' and '%s'", prop, other.Name()), binding)
			}
		}
		nr := NewNamedReference(e, prop)
		*op = &nr
	}
	if w, ok := e.Bindings["width"]; ok {
		lc.FixedWidth = true
		lc.Width = constantDimen(w.Expression)
		apply("width", w, &lc.MinWidth)
		apply("width", w, &lc.MaxWidth)
	}
	if h, ok := e.Bindings["height"]; ok {
		lc.FixedHeight = true
		lc.Height = constantDimen(h.Expression)
		apply("height", h, &lc.MinHeight)
		apply("height", h, &lc.MaxHeight)
	}
	return lc
}

func constantDimen(x Expression) langtype.Dimen {
	if c, ok := x.(*Cast); ok {
		x = c.From
	}
	if n, ok := x.(*NumberLiteral); ok {
		if d, ok := langtype.DimenFromLiteral(n.Value, n.Unit); ok {
			return d
		}
	}
	return langtype.NoDimen()
}

// HasExplicitRestrictions is true if any constraint is bound.
func (lc *LayoutConstraints) HasExplicitRestrictions() bool {
	return lc.MinWidth != nil || lc.MaxWidth != nil || lc.MinHeight != nil ||
		lc.MaxHeight != nil || lc.PreferredWidth != nil || lc.PreferredHeight != nil
}

// VisitNamedReferences calls vis for every bound constraint.
func (lc *LayoutConstraints) VisitNamedReferences(vis func(*NamedReference)) {
	for _, nr := range []*NamedReference{lc.MinWidth, lc.MaxWidth, lc.MinHeight,
		lc.MaxHeight, lc.PreferredWidth, lc.PreferredHeight} {
		if nr != nil {
			vis(nr)
		}
	}
}

// Layout is a lowered layout: a GridLayout or a BoxLayout.
type Layout interface {
	VisitNamedReferences(func(*NamedReference))
	isLayout()
}

// LayoutItem is an element placed by a layout.
type LayoutItem struct {
	Element     *Element
	Constraints LayoutConstraints
}

// LayoutRect references the geometry of a layout.
type LayoutRect struct {
	X, Y, Width, Height *NamedReference
}

// Padding references the paddings of a layout.
type Padding struct {
	Left, Right, Top, Bottom *NamedReference
}

// LayoutGeometry is the geometry shared by all layouts.
type LayoutGeometry struct {
	Rect      LayoutRect
	Spacing   *NamedReference
	Alignment *NamedReference
	Padding   Padding
}

func (g *LayoutGeometry) visitNamedReferences(vis func(*NamedReference)) {
	for _, nr := range []*NamedReference{g.Rect.X, g.Rect.Y, g.Rect.Width, g.Rect.Height,
		g.Spacing, g.Alignment, g.Padding.Left, g.Padding.Right, g.Padding.Top, g.Padding.Bottom} {
		if nr != nil {
			vis(nr)
		}
	}
}

// GridLayoutElement is a cell of a grid layout.
type GridLayoutElement struct {
	Col, Row, ColSpan, RowSpan uint16
	Item                       LayoutItem
}

// GridLayout places items in cells.
type GridLayout struct {
	Elems    []GridLayoutElement
	Geometry LayoutGeometry
}

// BoxLayout places items in a row or a column.
type BoxLayout struct {
	Orientation Orientation
	Elems       []LayoutItem
	Geometry    LayoutGeometry
}

func (*GridLayout) isLayout() {}
func (*BoxLayout) isLayout()  {}

// VisitNamedReferences visits the references of the geometry and of every cell.
func (l *GridLayout) VisitNamedReferences(vis func(*NamedReference)) {
	for i := range l.Elems {
		l.Elems[i].Item.Constraints.VisitNamedReferences(vis)
	}
	l.Geometry.visitNamedReferences(vis)
}

// VisitNamedReferences visits the references of the geometry and of every item.
func (l *BoxLayout) VisitNamedReferences(vis func(*NamedReference)) {
	for i := range l.Elems {
		l.Elems[i].Constraints.VisitNamedReferences(vis)
	}
	l.Geometry.visitNamedReferences(vis)
}
