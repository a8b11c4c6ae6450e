package dxf

import "math"

// EntityType is the DXF entity name written after group code 0.
type EntityType string

const (
	TypeLine    EntityType = "LINE"
	TypeCircle  EntityType = "CIRCLE"
	TypeArc     EntityType = "ARC"
	TypeEllipse EntityType = "ELLIPSE"
	TypePoint   EntityType = "POINT"
	TypeText    EntityType = "TEXT"
	TypeSolid   EntityType = "SOLID"
	TypeInsert  EntityType = "INSERT"
)

// NoTrueColor marks an entity without a group 420 color.
const NoTrueColor = -1

// Common holds the properties every entity writes.
type Common struct {
	Layer     string `json:"layer"`
	Color     int    `json:"color"`      // ACI
	TrueColor int    `json:"true_color"` // 0xRRGGBB or NoTrueColor
	LineType  string `json:"line_type"`
}

// Entity is a tagged variant; exactly one pointer matching Type is set.
type Entity struct {
	Type EntityType `json:"type"`
	Common
	Line    *Line    `json:"line,omitempty"`
	Circle  *Circle  `json:"circle,omitempty"`
	Arc     *Arc     `json:"arc,omitempty"`
	Ellipse *Ellipse `json:"ellipse,omitempty"`
	Point   *Point   `json:"point,omitempty"`
	Text    *Text    `json:"text,omitempty"`
	Solid   *Solid   `json:"solid,omitempty"`
	Insert  *Insert  `json:"insert,omitempty"`
}

// Vec is a 2D coordinate. DXF Z values are always written as 0.
type Vec struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

type Line struct {
	Start Vec `json:"start"`
	End   Vec `json:"end"`
}

type Circle struct {
	Center Vec     `json:"center"`
	Radius float64 `json:"radius"`
}

// Arc angles are in degrees, counter-clockwise from Start to End.
type Arc struct {
	Center     Vec     `json:"center"`
	Radius     float64 `json:"radius"`
	StartAngle float64 `json:"start_angle"`
	EndAngle   float64 `json:"end_angle"`
}

// Ellipse parameters are in radians; MajorAxis is relative to Center.
type Ellipse struct {
	Center     Vec     `json:"center"`
	MajorAxis  Vec     `json:"major_axis"`
	Ratio      float64 `json:"ratio"` // minor/major, in (0, 1]
	StartParam float64 `json:"start_param"`
	EndParam   float64 `json:"end_param"`
}

type Point struct {
	Position Vec `json:"position"`
}

// Horizontal alignment, group 72.
const (
	HAlignLeft   = 0
	HAlignCenter = 1
	HAlignRight  = 2
)

// Vertical alignment, group 73.
const (
	VAlignBaseline = 0
	VAlignBottom   = 1
	VAlignMiddle   = 2
	VAlignTop      = 3
)

// Text is a single-line TEXT entity. AlignPoint is written when the
// alignment is anything other than left/baseline.
type Text struct {
	Position    Vec     `json:"position"`
	AlignPoint  Vec     `json:"align_point"`
	Height      float64 `json:"height"`
	Rotation    float64 `json:"rotation"` // degrees
	WidthFactor float64 `json:"width_factor"`
	Oblique     float64 `json:"oblique"` // degrees
	Content     string  `json:"content"`
	Style       string  `json:"style"`
	HAlign      int     `json:"h_align"`
	VAlign      int     `json:"v_align"`
}

// Aligned reports whether the text needs an alignment point.
func (t *Text) Aligned() bool {
	return t.HAlign != HAlignLeft || t.VAlign != VAlignBaseline
}

// Solid corners in DXF order: the outline is V1, V2, V4, V3.
type Solid struct {
	V1 Vec `json:"v1"`
	V2 Vec `json:"v2"`
	V3 Vec `json:"v3"`
	V4 Vec `json:"v4"`
}

// Insert rotation is in degrees.
type Insert struct {
	Block    string  `json:"block"`
	Position Vec     `json:"position"`
	ScaleX   float64 `json:"scale_x"`
	ScaleY   float64 `json:"scale_y"`
	Rotation float64 `json:"rotation"`
}

// Points returns the defining coordinates of the entity, used for extents.
func (e *Entity) Points() []Vec {
	switch e.Type {
	case TypeLine:
		return []Vec{e.Line.Start, e.Line.End}
	case TypeCircle:
		c, r := e.Circle.Center, e.Circle.Radius
		return []Vec{{c.X - r, c.Y - r}, {c.X + r, c.Y + r}}
	case TypeArc:
		c, r := e.Arc.Center, e.Arc.Radius
		return []Vec{{c.X - r, c.Y - r}, {c.X + r, c.Y + r}}
	case TypeEllipse:
		c, m := e.Ellipse.Center, e.Ellipse.MajorAxis
		r := math.Hypot(m.X, m.Y)
		return []Vec{{c.X - r, c.Y - r}, {c.X + r, c.Y + r}}
	case TypePoint:
		return []Vec{e.Point.Position}
	case TypeText:
		return []Vec{e.Text.Position}
	case TypeSolid:
		return []Vec{e.Solid.V1, e.Solid.V2, e.Solid.V3, e.Solid.V4}
	case TypeInsert:
		return []Vec{e.Insert.Position}
	}
	return nil
}
