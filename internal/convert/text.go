package convert

import (
	"math"

	"github.com/roboco-io/jww2dxf/internal/dxf"
	"github.com/roboco-io/jww2dxf/internal/ir"
)

// italicOblique is the oblique angle written for italic text, in degrees.
const italicOblique = 15

const textStyle = "STANDARD"

// alignment maps a JWW justification to DXF groups 72 and 73.
var alignment = map[ir.Justification][2]int{
	ir.JustifyLeft:         {dxf.HAlignLeft, dxf.VAlignBaseline},
	ir.JustifyCenter:       {dxf.HAlignCenter, dxf.VAlignBaseline},
	ir.JustifyRight:        {dxf.HAlignRight, dxf.VAlignBaseline},
	ir.JustifyMiddleLeft:   {dxf.HAlignLeft, dxf.VAlignMiddle},
	ir.JustifyMiddleCenter: {dxf.HAlignCenter, dxf.VAlignMiddle},
	ir.JustifyMiddleRight:  {dxf.HAlignRight, dxf.VAlignMiddle},
	ir.JustifyTopLeft:      {dxf.HAlignLeft, dxf.VAlignTop},
	ir.JustifyTopCenter:    {dxf.HAlignCenter, dxf.VAlignTop},
	ir.JustifyTopRight:     {dxf.HAlignRight, dxf.VAlignTop},
}

func (c *Converter) text(a ir.Attributes, t *ir.Text) *dxf.Entity {
	height := c.length(t.SizeY)
	if t.SizeY <= 0 {
		height = c.opts.DefaultTextHeight
	}

	out := &dxf.Text{
		Position:    c.vec(t.Start),
		Height:      height,
		Rotation:    c.angle(t.Angle),
		WidthFactor: 1,
		Content:     t.Content,
		Style:       textStyle,
	}
	if t.SizeX > 0 && t.SizeY > 0 && t.SizeX != t.SizeY {
		out.WidthFactor = t.SizeX / t.SizeY
	}
	if t.Italic() {
		out.Oblique = italicOblique
	}

	align, ok := alignment[t.Justification]
	if !ok {
		c.lossy("text justification %d unmapped, using left/baseline", t.Justification)
		align = alignment[ir.JustifyLeft]
	}
	out.HAlign, out.VAlign = align[0], align[1]
	if out.Aligned() {
		out.AlignPoint = c.vec(alignPoint(t, align[0], align[1]))
	}

	return &dxf.Entity{
		Type:   dxf.TypeText,
		Common: c.common(a, true),
		Text:   out,
	}
}

// alignPoint returns the anchor of t for the given alignment, in source
// coordinates. The baseline runs from Start to End; when they coincide the
// text angle gives the direction.
func alignPoint(t *ir.Text, h, v int) ir.Point {
	dx, dy := t.End.X-t.Start.X, t.End.Y-t.Start.Y
	length := math.Hypot(dx, dy)
	ux, uy := math.Cos(t.Angle*math.Pi/180), math.Sin(t.Angle*math.Pi/180)
	if length > 0 {
		ux, uy = dx/length, dy/length
	}

	var along float64
	switch h {
	case dxf.HAlignCenter:
		along = length / 2
	case dxf.HAlignRight:
		along = length
	}

	height := t.SizeY
	if height <= 0 {
		height = DefaultTextHeight
	}
	var up float64
	switch v {
	case dxf.VAlignMiddle:
		up = height / 2
	case dxf.VAlignTop:
		up = height
	}

	return ir.Point{
		X: t.Start.X + ux*along - uy*up,
		Y: t.Start.Y + uy*along + ux*up,
	}
}
