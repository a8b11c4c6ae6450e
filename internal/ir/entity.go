package ir

import "math"

// EntityKind identifies the variant held by an Entity.
type EntityKind string

const (
	KindLine      EntityKind = "line"
	KindArc       EntityKind = "arc"
	KindPoint     EntityKind = "point"
	KindText      EntityKind = "text"
	KindSolid     EntityKind = "solid"
	KindInsert    EntityKind = "insert"
	KindDimension EntityKind = "dimension"
)

// Attributes are the fields shared by every entity. They are copied into
// each entity by value.
type Attributes struct {
	Group      uint32 `json:"group" yaml:"group"`         // curve attribute number
	PenStyle   uint8  `json:"pen_style" yaml:"pen_style"` // line type index
	PenColor   uint16 `json:"pen_color" yaml:"pen_color"` // color index, 100+ for SXF colors
	PenWidth   uint16 `json:"pen_width" yaml:"pen_width"` // 3.51 and later
	Layer      uint16 `json:"layer" yaml:"layer"`
	LayerGroup uint16 `json:"layer_group" yaml:"layer_group"`
	Flag       uint16 `json:"flag" yaml:"flag"`
}

// Point is a 2D coordinate in drawing units.
type Point struct {
	X float64 `json:"x" yaml:"x"`
	Y float64 `json:"y" yaml:"y"`
}

// Entity is one drawable record. Exactly one of the variant pointers is set,
// matching Kind.
type Entity struct {
	Kind      EntityKind   `json:"kind" yaml:"kind"`
	Attrs     Attributes   `json:"attrs" yaml:"attrs"`
	Line      *Line        `json:"line,omitempty" yaml:"line,omitempty"`
	Arc       *ArcEllipse  `json:"arc,omitempty" yaml:"arc,omitempty"`
	Point     *PointMark   `json:"point,omitempty" yaml:"point,omitempty"`
	Text      *Text        `json:"text,omitempty" yaml:"text,omitempty"`
	Solid     *Solid       `json:"solid,omitempty" yaml:"solid,omitempty"`
	Insert    *BlockInsert `json:"insert,omitempty" yaml:"insert,omitempty"`
	Dimension *Dimension   `json:"dimension,omitempty" yaml:"dimension,omitempty"`
}

// Line is a straight segment (CDataSen).
type Line struct {
	Start Point `json:"start" yaml:"start"`
	End   Point `json:"end" yaml:"end"`
}

// ArcEllipse is a circle, arc, ellipse or elliptical arc (CDataEnko).
// Angles are in radians, counter-clockwise.
type ArcEllipse struct {
	Center     Point   `json:"center" yaml:"center"`
	Radius     float64 `json:"radius" yaml:"radius"`     // semi-axis along Tilt
	Flatness   float64 `json:"flatness" yaml:"flatness"` // other semi-axis / Radius, 1 for circles
	Tilt       float64 `json:"tilt" yaml:"tilt"`         // rotation of the Radius axis
	StartAngle float64 `json:"start_angle" yaml:"start_angle"`
	SweepAngle float64 `json:"sweep_angle" yaml:"sweep_angle"`
	FullCircle bool    `json:"full_circle" yaml:"full_circle"`
}

// IsFullCircle reports whether the curve is closed: the flag is set, or the
// sweep is zero (start equals end) or at least one turn.
func (a *ArcEllipse) IsFullCircle() bool {
	return a.FullCircle || a.SweepAngle == 0 || math.Abs(a.SweepAngle) >= 2*math.Pi
}

// IsCircular reports whether both radii are equal.
func (a *ArcEllipse) IsCircular() bool {
	return a.Flatness == 1
}

// EndAngle returns StartAngle + SweepAngle.
func (a *ArcEllipse) EndAngle() float64 {
	return a.StartAngle + a.SweepAngle
}

// PointMark is a point (CDataTen). Marker fields are only present when the
// pen style is 100.
type PointMark struct {
	Position  Point   `json:"position" yaml:"position"`
	Temporary bool    `json:"temporary,omitempty" yaml:"temporary,omitempty"`
	Code      uint32  `json:"code,omitempty" yaml:"code,omitempty"`
	Angle     float64 `json:"angle,omitempty" yaml:"angle,omitempty"`
	Scale     float64 `json:"scale,omitempty" yaml:"scale,omitempty"`
}

// Text style flags carried in Text.Type.
const (
	TextItalic uint32 = 10000
	TextBold   uint32 = 20000
)

// Justification selects one of nine anchor positions, numbered row by row
// from the bottom: 0-2 baseline left/center/right, 3-5 middle, 6-8 top.
type Justification int

const (
	JustifyLeft Justification = iota
	JustifyCenter
	JustifyRight
	JustifyMiddleLeft
	JustifyMiddleCenter
	JustifyMiddleRight
	JustifyTopLeft
	JustifyTopCenter
	JustifyTopRight
)

// Text is a single-line string (CDataMoji).
type Text struct {
	Start         Point         `json:"start" yaml:"start"`
	End           Point         `json:"end" yaml:"end"`
	Type          uint32        `json:"type" yaml:"type"`
	SizeX         float64       `json:"size_x" yaml:"size_x"` // character width
	SizeY         float64       `json:"size_y" yaml:"size_y"` // character height
	Spacing       float64       `json:"spacing" yaml:"spacing"`
	Angle         float64       `json:"angle" yaml:"angle"` // degrees
	Font          string        `json:"font" yaml:"font"`
	Content       string        `json:"content" yaml:"content"`
	Justification Justification `json:"justification" yaml:"justification"`
}

// Italic reports the italic style flag.
func (t *Text) Italic() bool {
	return (t.Type%100000)/10000%2 == 1
}

// Bold reports the bold style flag.
func (t *Text) Bold() bool {
	return (t.Type%100000)/10000 >= 2
}

// Solid is a filled triangle or quadrilateral (CDataSolid).
type Solid struct {
	Vertices []Point `json:"vertices" yaml:"vertices"`               // 3 or 4, in outline order
	Color    uint32  `json:"color,omitempty" yaml:"color,omitempty"` // COLORREF, set when pen color is 10
}

// BlockInsert places a block definition (CDataBlock).
type BlockInsert struct {
	Position  Point   `json:"position" yaml:"position"`
	ScaleX    float64 `json:"scale_x" yaml:"scale_x"`
	ScaleY    float64 `json:"scale_y" yaml:"scale_y"`
	Rotation  float64 `json:"rotation" yaml:"rotation"` // radians
	DefNumber uint32  `json:"def_number" yaml:"def_number"`
	Name      string  `json:"name" yaml:"name"`
	Resolved  bool    `json:"resolved" yaml:"resolved"`
}

// Dimension is a simplified dimension (CDataSunpou): its measured line and
// displayed text. Auxiliary members are present from 4.20.
type Dimension struct {
	Line      Line       `json:"line" yaml:"line"`
	LineAttrs Attributes `json:"line_attrs" yaml:"line_attrs"`
	Text      Text       `json:"text" yaml:"text"`
	TextAttrs Attributes `json:"text_attrs" yaml:"text_attrs"`
	SXFMode   uint16     `json:"sxf_mode,omitempty" yaml:"sxf_mode,omitempty"`
	AuxLines  []Line     `json:"aux_lines,omitempty" yaml:"aux_lines,omitempty"`
	AuxPoints []Point    `json:"aux_points,omitempty" yaml:"aux_points,omitempty"`
}

// NewLine creates a line entity.
func NewLine(attrs Attributes, start, end Point) Entity {
	return Entity{Kind: KindLine, Attrs: attrs, Line: &Line{Start: start, End: end}}
}

// NewArc creates an arc/ellipse entity.
func NewArc(attrs Attributes, a ArcEllipse) Entity {
	return Entity{Kind: KindArc, Attrs: attrs, Arc: &a}
}

// NewPoint creates a point entity.
func NewPoint(attrs Attributes, p PointMark) Entity {
	return Entity{Kind: KindPoint, Attrs: attrs, Point: &p}
}

// NewText creates a text entity.
func NewText(attrs Attributes, t Text) Entity {
	return Entity{Kind: KindText, Attrs: attrs, Text: &t}
}

// NewSolid creates a solid entity. A quad whose last two vertices coincide
// is stored as a triangle.
func NewSolid(attrs Attributes, vertices []Point, color uint32) Entity {
	vs := append([]Point(nil), vertices...)
	if len(vs) == 4 && vs[2] == vs[3] {
		vs = vs[:3]
	}
	return Entity{Kind: KindSolid, Attrs: attrs, Solid: &Solid{Vertices: vs, Color: color}}
}

// NewInsert creates a block insert entity.
func NewInsert(attrs Attributes, b BlockInsert) Entity {
	return Entity{Kind: KindInsert, Attrs: attrs, Insert: &b}
}

// NewDimension creates a dimension entity.
func NewDimension(attrs Attributes, d Dimension) Entity {
	return Entity{Kind: KindDimension, Attrs: attrs, Dimension: &d}
}
