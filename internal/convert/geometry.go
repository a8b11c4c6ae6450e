package convert

import (
	"math"

	"github.com/roboco-io/jww2dxf/internal/dxf"
	"github.com/roboco-io/jww2dxf/internal/ir"
)

func (c *Converter) line(a ir.Attributes, l *ir.Line) *dxf.Entity {
	return &dxf.Entity{
		Type:   dxf.TypeLine,
		Common: c.common(a, true),
		Line:   &dxf.Line{Start: c.vec(l.Start), End: c.vec(l.End)},
	}
}

// arc maps a JWW circle/arc/ellipse onto CIRCLE, ARC or ELLIPSE.
func (c *Converter) arc(e *ir.Entity) *dxf.Entity {
	a := e.Arc
	if a.Flatness <= 0 || math.IsNaN(a.Flatness) {
		c.lossy("arc with flatness %g cannot be represented, omitted", a.Flatness)
		return nil
	}

	out := &dxf.Entity{Common: c.common(e.Attrs, true)}
	center := c.vec(a.Center)
	radius := c.length(a.Radius)

	switch {
	case a.IsCircular() && a.IsFullCircle():
		out.Type = dxf.TypeCircle
		out.Circle = &dxf.Circle{Center: center, Radius: radius}
	case a.IsCircular():
		start, end := c.sweep(a)
		out.Type = dxf.TypeArc
		out.Arc = &dxf.Arc{
			Center:     center,
			Radius:     radius,
			StartAngle: normalizeDegrees(degrees(start)),
			EndAngle:   normalizeDegrees(degrees(end)),
		}
	default:
		out.Type = dxf.TypeEllipse
		out.Ellipse = c.ellipse(a, center, radius)
	}
	return out
}

// sweep returns the counter-clockwise start and end angles of a, in the
// output orientation.
func (c *Converter) sweep(a *ir.ArcEllipse) (float64, float64) {
	start, end := a.StartAngle, a.EndAngle()
	if end < start {
		start, end = end, start
	}
	if c.opts.FlipY {
		start, end = -end, -start
	}
	return start, end
}

func (c *Converter) ellipse(a *ir.ArcEllipse, center dxf.Vec, radius float64) *dxf.Ellipse {
	major, ratio, tilt := radius, a.Flatness, a.Tilt
	var shift float64
	if a.Flatness > 1 {
		// the other axis is longer: rotate the major axis by 90 degrees and
		// shift the parameters to match
		major = radius * a.Flatness
		ratio = 1 / a.Flatness
		tilt += math.Pi / 2
		shift = -math.Pi / 2
	}
	tilt = c.angle(tilt)

	el := &dxf.Ellipse{
		Center:    center,
		MajorAxis: dxf.Vec{X: major * math.Cos(tilt), Y: major * math.Sin(tilt)},
		Ratio:     ratio,
	}
	if a.IsFullCircle() {
		el.StartParam, el.EndParam = 0, 2*math.Pi
		return el
	}

	start, end := a.StartAngle+shift, a.EndAngle()+shift
	if end < start {
		start, end = end, start
	}
	if c.opts.FlipY {
		start, end = -end, -start
	}
	el.StartParam = normalizeRadians(start)
	el.EndParam = el.StartParam + (end - start)
	return el
}

func (c *Converter) point(e *ir.Entity) *dxf.Entity {
	if e.Point.Temporary && !c.opts.IncludeTemporaryPoints {
		return nil
	}
	return &dxf.Entity{
		Type:   dxf.TypePoint,
		Common: c.common(e.Attrs, false),
		Point:  &dxf.Point{Position: c.vec(e.Point.Position)},
	}
}

func (c *Converter) insert(e *ir.Entity) *dxf.Entity {
	b := e.Insert
	name := b.Name
	if name == "" {
		name = ir.FallbackBlockName(b.DefNumber)
	}
	return &dxf.Entity{
		Type:   dxf.TypeInsert,
		Common: c.common(e.Attrs, true),
		Insert: &dxf.Insert{
			Block:    name,
			Position: c.vec(b.Position),
			ScaleX:   b.ScaleX,
			ScaleY:   b.ScaleY,
			Rotation: degrees(c.angle(b.Rotation)),
		},
	}
}

// dimension reduces a dimension to its text and lines.
func (c *Converter) dimension(e *ir.Entity) []dxf.Entity {
	d := e.Dimension
	if d.SXFMode != 0 {
		c.lossy("SXF dimension mode %d reduced to text and lines", d.SXFMode)
	}

	var out []dxf.Entity
	if d.Line.Start != d.Line.End {
		out = append(out, *c.line(d.LineAttrs, &d.Line))
	}
	for i := range d.AuxLines {
		if d.AuxLines[i].Start != d.AuxLines[i].End {
			out = append(out, *c.line(d.LineAttrs, &d.AuxLines[i]))
		}
	}
	if d.Text.Content != "" {
		out = append(out, *c.text(d.TextAttrs, &d.Text))
	}
	return out
}

func degrees(rad float64) float64 {
	return rad * 180 / math.Pi
}

func normalizeDegrees(deg float64) float64 {
	deg = math.Mod(deg, 360)
	if deg < 0 {
		deg += 360
	}
	return deg
}

func normalizeRadians(rad float64) float64 {
	rad = math.Mod(rad, 2*math.Pi)
	if rad < 0 {
		rad += 2 * math.Pi
	}
	return rad
}
