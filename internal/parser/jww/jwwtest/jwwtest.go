// Package jwwtest builds small JWW drawings for tests outside the parser.
package jwwtest

import (
	"bytes"
	"encoding/binary"
	"math"

	"github.com/roboco-io/jww2dxf/internal/ir"
	"golang.org/x/text/encoding/japanese"
)

// Builder writes a JWW header followed by whatever entities the caller adds.
// Call Count before the first entity.
type Builder struct {
	buf     bytes.Buffer
	version uint32
	classes map[string]uint16
	nextPID uint16
}

// New starts a drawing of the given version with every layer editable.
func New(version uint32) *Builder {
	b := &Builder{
		version: version,
		classes: make(map[string]uint16),
		nextPID: 1,
	}
	b.buf.WriteString("JwwData.")
	b.u32(version)
	b.cstring("")
	b.u32(3)
	b.u32(0)
	for g := 0; g < ir.LayerGroupCount; g++ {
		b.u32(ir.StateEditable)
		b.u32(0)
		b.f64(1)
		b.u32(0)
		for l := 0; l < ir.LayerCount; l++ {
			b.u32(ir.StateEditable)
			b.u32(0)
		}
	}
	return b
}

// Count writes the entity count.
func (b *Builder) Count(n int) *Builder {
	b.u16(uint16(n))
	return b
}

// Line adds a CDataSen.
func (b *Builder) Line(a ir.Attributes, x1, y1, x2, y2 float64) *Builder {
	b.tag("CDataSen").attrs(a)
	b.f64(x1).f64(y1).f64(x2).f64(y2)
	return b
}

// Point adds a regular (non-temporary) CDataTen.
func (b *Builder) Point(a ir.Attributes, x, y float64) *Builder {
	b.tag("CDataTen").attrs(a)
	b.f64(x).f64(y).u32(0)
	return b
}

// Text adds a CDataMoji. content is encoded as Shift-JIS.
func (b *Builder) Text(a ir.Attributes, x, y, height float64, content string) *Builder {
	sjis, err := japanese.ShiftJIS.NewEncoder().String(content)
	if err != nil {
		sjis = content
	}
	b.tag("CDataMoji").attrs(a)
	b.f64(x).f64(y).f64(x).f64(y)
	b.u32(0).f64(height).f64(height).f64(0).f64(0)
	b.cstring("")
	b.cstring(sjis)
	return b
}

// Bytes returns a copy of the drawing so far.
func (b *Builder) Bytes() []byte {
	return append([]byte(nil), b.buf.Bytes()...)
}

// Sample returns a small valid drawing: two lines, a point and a text.
func Sample() []byte {
	return New(600).
		Count(4).
		Line(ir.Attributes{PenColor: 2}, 0, 0, 100, 0).
		Line(ir.Attributes{PenColor: 8, Layer: 1}, 100, 0, 100, 50.25).
		Point(ir.Attributes{}, 12.5, -3).
		Text(ir.Attributes{}, 10, 10, 3.5, "図面").
		Bytes()
}

func (b *Builder) tag(class string) *Builder {
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

func (b *Builder) attrs(a ir.Attributes) *Builder {
	b.u32(a.Group)
	b.buf.WriteByte(a.PenStyle)
	b.u16(a.PenColor)
	if b.version >= 351 {
		b.u16(a.PenWidth)
	}
	b.u16(a.Layer)
	b.u16(a.LayerGroup)
	b.u16(a.Flag)
	return b
}

func (b *Builder) cstring(s string) {
	b.buf.WriteByte(uint8(len(s)))
	b.buf.WriteString(s)
}

func (b *Builder) u16(v uint16) *Builder {
	_ = binary.Write(&b.buf, binary.LittleEndian, v)
	return b
}

func (b *Builder) u32(v uint32) *Builder {
	_ = binary.Write(&b.buf, binary.LittleEndian, v)
	return b
}

func (b *Builder) f64(v float64) *Builder {
	_ = binary.Write(&b.buf, binary.LittleEndian, math.Float64bits(v))
	return b
}
