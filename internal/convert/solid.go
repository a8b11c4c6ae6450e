package convert

import (
	"github.com/roboco-io/jww2dxf/internal/dxf"
	"github.com/roboco-io/jww2dxf/internal/ir"
)

// solid maps a filled outline onto SOLID. DXF draws the outline as
// V1, V2, V4, V3.
func (c *Converter) solid(e *ir.Entity) *dxf.Entity {
	s := e.Solid
	if len(s.Vertices) < 3 || len(s.Vertices) > 4 {
		c.lossy("solid with %d vertices omitted", len(s.Vertices))
		return nil
	}

	attrs := e.Attrs
	rgb := attrs.PenColor == penColorRGB
	if rgb {
		attrs.PenColor = 0
	}

	out := &dxf.Entity{
		Type:   dxf.TypeSolid,
		Common: c.common(attrs, true),
	}
	if rgb {
		tc := trueColor(s.Color)
		out.Color = nearestACI(tc)
		if c.acadver >= dxf.R2004 {
			out.TrueColor = tc
		} else {
			c.lossy("true color %06X approximated by color %d", tc, out.Color)
		}
	}

	vs := make([]dxf.Vec, len(s.Vertices))
	for i, p := range s.Vertices {
		vs[i] = c.vec(p)
	}
	if len(vs) == 3 {
		out.Solid = &dxf.Solid{V1: vs[0], V2: vs[1], V3: vs[2], V4: vs[2]}
		return out
	}

	sd := &dxf.Solid{V1: vs[0], V2: vs[1], V3: vs[2], V4: vs[3]}
	if selfIntersecting(sd.V1, sd.V2, sd.V4, sd.V3) {
		sd.V3, sd.V4 = sd.V4, sd.V3
	}
	out.Solid = sd
	return out
}

// selfIntersecting reports whether the outline a-b-c-d crosses itself.
func selfIntersecting(a, b, c, d dxf.Vec) bool {
	return segmentsCross(a, b, c, d) || segmentsCross(b, c, d, a)
}

// segmentsCross reports whether segments p1-p2 and q1-q2 properly intersect.
func segmentsCross(p1, p2, q1, q2 dxf.Vec) bool {
	d1 := cross(q1, q2, p1)
	d2 := cross(q1, q2, p2)
	d3 := cross(p1, p2, q1)
	d4 := cross(p1, p2, q2)
	return ((d1 > 0 && d2 < 0) || (d1 < 0 && d2 > 0)) &&
		((d3 > 0 && d4 < 0) || (d3 < 0 && d4 > 0))
}

func cross(o, a, b dxf.Vec) float64 {
	return (a.X-o.X)*(b.Y-o.Y) - (a.Y-o.Y)*(b.X-o.X)
}
