package jww

import (
	"github.com/roboco-io/jww2dxf/internal/ir"
)

// decodeFunc decodes the body of one entity object after its tag.
type decodeFunc func(f *fields, version uint32) ir.Entity

// decoders maps an MFC class name to its entity decoder.
var decoders = map[string]decodeFunc{
	ClassLine:      decodeLine,
	ClassArc:       decodeArc,
	ClassPoint:     decodePoint,
	ClassText:      decodeText,
	ClassSolid:     decodeSolid,
	ClassBlock:     decodeInsert,
	ClassDimension: decodeDimension,
}

// IsEntityClass reports whether class has an entity decoder.
func IsEntityClass(class string) bool {
	_, ok := decoders[class]
	return ok
}

// readAttributes reads the CData base shared by every entity.
func readAttributes(f *fields, version uint32) ir.Attributes {
	var a ir.Attributes
	a.Group = f.u32()
	a.PenStyle = f.u8()
	a.PenColor = f.u16()
	if version >= versionPenWidth {
		a.PenWidth = f.u16()
	}
	a.Layer = f.u16()
	a.LayerGroup = f.u16()
	a.Flag = f.u16()
	return a
}

func readPoint(f *fields) ir.Point {
	return ir.Point{X: f.f64(), Y: f.f64()}
}

func readLine(f *fields) ir.Line {
	return ir.Line{Start: readPoint(f), End: readPoint(f)}
}

func decodeLine(f *fields, version uint32) ir.Entity {
	attrs := readAttributes(f, version)
	l := readLine(f)
	return ir.NewLine(attrs, l.Start, l.End)
}

func decodeArc(f *fields, version uint32) ir.Entity {
	attrs := readAttributes(f, version)
	var a ir.ArcEllipse
	a.Center = readPoint(f)
	a.Radius = f.f64()
	a.StartAngle = f.f64()
	a.SweepAngle = f.f64()
	a.Tilt = f.f64()
	a.Flatness = f.f64()
	a.FullCircle = f.u32() != 0
	return ir.NewArc(attrs, a)
}

func readPointMark(f *fields, attrs ir.Attributes) ir.PointMark {
	p := ir.PointMark{Position: readPoint(f), Scale: 1}
	p.Temporary = f.u32() != 0
	// 선종 100은 마커 점: 코드, 각도, 배율이 이어진다
	if attrs.PenStyle == penStyleMarker {
		p.Code = f.u32()
		p.Angle = f.f64()
		p.Scale = f.f64()
	}
	return p
}

func decodePoint(f *fields, version uint32) ir.Entity {
	attrs := readAttributes(f, version)
	return ir.NewPoint(attrs, readPointMark(f, attrs))
}

func readText(f *fields) ir.Text {
	var t ir.Text
	t.Start = readPoint(f)
	t.End = readPoint(f)
	t.Type = f.u32()
	t.SizeX = f.f64()
	t.SizeY = f.f64()
	t.Spacing = f.f64()
	t.Angle = f.f64()
	t.Font = f.cstring()
	t.Content = f.cstring()
	// 기준점 정보는 파일에 없으므로 항상 좌하단
	t.Justification = ir.JustifyLeft
	return t
}

func decodeText(f *fields, version uint32) ir.Entity {
	attrs := readAttributes(f, version)
	return ir.NewText(attrs, readText(f))
}

func decodeSolid(f *fields, version uint32) ir.Entity {
	attrs := readAttributes(f, version)
	// 저장 순서는 p1, p4, p2, p3
	p1 := readPoint(f)
	p4 := readPoint(f)
	p2 := readPoint(f)
	p3 := readPoint(f)
	var color uint32
	if attrs.PenColor == penColorRGB {
		color = f.u32()
	}
	return ir.NewSolid(attrs, []ir.Point{p1, p2, p3, p4}, color)
}

func decodeInsert(f *fields, version uint32) ir.Entity {
	attrs := readAttributes(f, version)
	var b ir.BlockInsert
	b.Position = readPoint(f)
	b.ScaleX = f.f64()
	b.ScaleY = f.f64()
	b.Rotation = f.f64()
	b.DefNumber = f.u32()
	return ir.NewInsert(attrs, b)
}

func decodeDimension(f *fields, version uint32) ir.Entity {
	attrs := readAttributes(f, version)

	var d ir.Dimension
	// 치수선 (CDataSen)
	d.LineAttrs = readAttributes(f, version)
	d.Line = readLine(f)
	// 치수 문자 (CDataMoji)
	d.TextAttrs = readAttributes(f, version)
	d.Text = readText(f)

	if version >= versionDimensionExtra {
		d.SXFMode = f.u16()
		for i := 0; i < 2; i++ {
			_ = readAttributes(f, version)
			d.AuxLines = append(d.AuxLines, readLine(f))
		}
		for i := 0; i < 4; i++ {
			pa := readAttributes(f, version)
			d.AuxPoints = append(d.AuxPoints, readPointMark(f, pa).Position)
		}
	}
	return ir.NewDimension(attrs, d)
}
