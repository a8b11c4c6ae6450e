package jww

import (
	"bytes"
	"encoding/binary"
	"math"

	"github.com/roboco-io/jww2dxf/internal/ir"
)

// builder assembles JWW byte streams for tests, tracking MFC class PIDs the
// same way the archive reader does.
type builder struct {
	buf     bytes.Buffer
	version uint32
	classes map[string]uint16
	nextPID uint16
}

func newBuilder(version uint32) *builder {
	b := &builder{
		version: version,
		classes: make(map[string]uint16),
		nextPID: 1,
	}
	b.buf.WriteString(Signature)
	b.u32(version)
	b.cstring("memo")
	b.u32(3) // A3
	b.u32(0)
	for g := 0; g < 16; g++ {
		b.u32(ir.StateEditable)
		b.u32(0)
		b.f64(100)
		b.u32(0)
		for l := 0; l < 16; l++ {
			b.u32(ir.StateEditable)
			b.u32(0)
		}
	}
	return b
}

func (b *builder) u8(v uint8) *builder {
	b.buf.WriteByte(v)
	return b
}

func (b *builder) u16(v uint16) *builder {
	_ = binary.Write(&b.buf, binary.LittleEndian, v)
	return b
}

func (b *builder) u32(v uint32) *builder {
	_ = binary.Write(&b.buf, binary.LittleEndian, v)
	return b
}

func (b *builder) f64(v float64) *builder {
	return b.u64(math.Float64bits(v))
}

func (b *builder) u64(v uint64) *builder {
	_ = binary.Write(&b.buf, binary.LittleEndian, v)
	return b
}

func (b *builder) raw(p []byte) *builder {
	b.buf.Write(p)
	return b
}

// cstring writes an MFC CString. Only the one-byte length form is needed here.
func (b *builder) cstring(s string) *builder {
	b.u8(uint8(len(s)))
	b.buf.WriteString(s)
	return b
}

func (b *builder) count(n int) *builder {
	return b.u16(uint16(n))
}

// tag writes a new-class tag the first time a class is seen and a class
// reference afterwards, then takes a PID for the object.
func (b *builder) tag(class string) *builder {
	if pid, ok := b.classes[class]; ok {
		b.u16(0x8000 | pid)
	} else {
		b.u16(0xFFFF)
		b.u16(uint16(b.version))
		b.u16(uint16(len(class)))
		b.buf.WriteString(class)
		b.classes[class] = b.nextPID
		b.nextPID++
	}
	b.nextPID++
	return b
}

func (b *builder) null() *builder {
	return b.u16(0x8000)
}

func (b *builder) attrs(a ir.Attributes) *builder {
	b.u32(a.Group)
	b.u8(a.PenStyle)
	b.u16(a.PenColor)
	if b.version >= versionPenWidth {
		b.u16(a.PenWidth)
	}
	b.u16(a.Layer)
	b.u16(a.LayerGroup)
	b.u16(a.Flag)
	return b
}

func (b *builder) line(a ir.Attributes, x1, y1, x2, y2 float64) *builder {
	b.tag(ClassLine).attrs(a)
	return b.f64(x1).f64(y1).f64(x2).f64(y2)
}

func (b *builder) arc(a ir.Attributes, arc ir.ArcEllipse) *builder {
	b.tag(ClassArc).attrs(a)
	b.f64(arc.Center.X).f64(arc.Center.Y).f64(arc.Radius)
	b.f64(arc.StartAngle).f64(arc.SweepAngle).f64(arc.Tilt).f64(arc.Flatness)
	if arc.FullCircle {
		return b.u32(1)
	}
	return b.u32(0)
}

func (b *builder) point(a ir.Attributes, x, y float64, temporary bool) *builder {
	b.tag(ClassPoint).attrs(a)
	return b.pointBody(a, x, y, temporary)
}

func (b *builder) pointBody(a ir.Attributes, x, y float64, temporary bool) *builder {
	b.f64(x).f64(y)
	if temporary {
		b.u32(1)
	} else {
		b.u32(0)
	}
	if a.PenStyle == penStyleMarker {
		b.u32(7).f64(0.5).f64(2)
	}
	return b
}

func (b *builder) textBody(t ir.Text) *builder {
	b.f64(t.Start.X).f64(t.Start.Y).f64(t.End.X).f64(t.End.Y)
	b.u32(t.Type).f64(t.SizeX).f64(t.SizeY).f64(t.Spacing).f64(t.Angle)
	b.cstring(t.Font)
	return b.cstring(t.Content)
}

func (b *builder) text(a ir.Attributes, t ir.Text) *builder {
	b.tag(ClassText).attrs(a)
	return b.textBody(t)
}

// solid writes vertices in file order p1, p4, p2, p3.
func (b *builder) solid(a ir.Attributes, p [4]ir.Point, color uint32) *builder {
	b.tag(ClassSolid).attrs(a)
	for _, i := range []int{0, 3, 1, 2} {
		b.f64(p[i].X).f64(p[i].Y)
	}
	if a.PenColor == penColorRGB {
		b.u32(color)
	}
	return b
}

func (b *builder) insert(a ir.Attributes, x, y float64, def uint32) *builder {
	b.tag(ClassBlock).attrs(a)
	return b.f64(x).f64(y).f64(1).f64(1).f64(0).u32(def)
}

func (b *builder) dimension(a ir.Attributes, l ir.Line, t ir.Text) *builder {
	b.tag(ClassDimension).attrs(a)
	b.attrs(a).f64(l.Start.X).f64(l.Start.Y).f64(l.End.X).f64(l.End.Y)
	b.attrs(a).textBody(t)
	if b.version >= versionDimensionExtra {
		b.u16(1)
		for i := 0; i < 2; i++ {
			b.attrs(a).f64(0).f64(0).f64(float64(i)).f64(1)
		}
		for i := 0; i < 4; i++ {
			b.attrs(a).pointBody(a, float64(i), 0, false)
		}
	}
	return b
}

// blockDef writes a CDataList header. The caller writes the nested count and
// entities next.
func (b *builder) blockDef(number uint32, name string) *builder {
	b.tag(ClassList).attrs(ir.Attributes{})
	b.u32(number).u32(1).u32(0)
	return b.cstring(name)
}

func (b *builder) bytes() []byte {
	return append([]byte(nil), b.buf.Bytes()...)
}

func (b *builder) len() int {
	return b.buf.Len()
}
