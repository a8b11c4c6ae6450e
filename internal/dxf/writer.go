package dxf

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// DefaultPrecision is the number of decimals written for coordinates.
const DefaultPrecision = 6

// WriterOptions controls number formatting.
type WriterOptions struct {
	Precision int // digits after the decimal point
}

// DefaultWriterOptions returns the options used by String.
func DefaultWriterOptions() WriterOptions {
	return WriterOptions{Precision: DefaultPrecision}
}

// Writer serializes a Document as ASCII DXF. It performs no validation:
// the document is written exactly as given.
type Writer struct {
	w      *bufio.Writer
	opts   WriterOptions
	escape bool // write non-ASCII as \U+XXXX
	err    error
}

// NewWriter creates a writer that writes to w.
func NewWriter(w io.Writer, opts WriterOptions) *Writer {
	if opts.Precision < 0 {
		opts.Precision = DefaultPrecision
	}
	return &Writer{
		w:    bufio.NewWriter(w),
		opts: opts,
	}
}

// Write serializes doc to w.
func Write(w io.Writer, doc *Document, opts WriterOptions) error {
	return NewWriter(w, opts).Write(doc)
}

// String serializes doc into a string. Output is byte-identical for equal
// documents and options.
func String(doc *Document, opts WriterOptions) string {
	var sb strings.Builder
	_ = Write(&sb, doc, opts)
	return sb.String()
}

// Write serializes the whole document and flushes.
func (w *Writer) Write(doc *Document) error {
	w.escape = doc.Version() < R2007

	w.section("HEADER")
	for _, v := range doc.Header {
		w.str(9, v.Name)
		for _, t := range v.Tags {
			w.tag(t)
		}
	}
	w.str(0, "ENDSEC")

	w.section("TABLES")
	w.lineTypes(doc)
	w.layers(doc)
	w.styles()
	w.str(0, "ENDSEC")

	w.section("BLOCKS")
	for _, b := range doc.Blocks {
		w.block(b)
	}
	w.str(0, "ENDSEC")

	w.section("ENTITIES")
	for i := range doc.Entities {
		w.entity(&doc.Entities[i])
	}
	w.str(0, "ENDSEC")
	w.str(0, "EOF")

	if w.err != nil {
		return w.err
	}
	return w.w.Flush()
}

func (w *Writer) section(name string) {
	w.str(0, "SECTION")
	w.str(2, name)
}

func (w *Writer) lineTypes(doc *Document) {
	w.str(0, "TABLE")
	w.str(2, "LTYPE")
	w.integer(70, len(doc.LineTypes))
	for _, lt := range doc.LineTypes {
		w.str(0, "LTYPE")
		w.str(2, lt.Name)
		w.integer(70, 0)
		w.str(3, lt.Description)
		w.integer(72, 65)
		w.integer(73, len(lt.Pattern))
		w.float(40, lt.PatternLength())
		for _, v := range lt.Pattern {
			w.float(49, v)
			if doc.Version() >= R2000 {
				w.integer(74, 0)
			}
		}
	}
	w.str(0, "ENDTAB")
}

func (w *Writer) layers(doc *Document) {
	w.str(0, "TABLE")
	w.str(2, "LAYER")
	w.integer(70, len(doc.Layers))
	for _, l := range doc.Layers {
		w.str(0, "LAYER")
		w.str(2, l.Name)
		w.integer(70, l.Flags())
		w.integer(62, l.Color)
		w.str(6, l.LineType)
	}
	w.str(0, "ENDTAB")
}

func (w *Writer) styles() {
	w.str(0, "TABLE")
	w.str(2, "STYLE")
	w.integer(70, 1)
	w.str(0, "STYLE")
	w.str(2, "STANDARD")
	w.integer(70, 0)
	w.float(40, 0)
	w.float(41, 1)
	w.float(50, 0)
	w.integer(71, 0)
	w.float(42, 2.5)
	w.str(3, "txt")
	w.str(4, "")
	w.str(0, "ENDTAB")
}

func (w *Writer) block(b Block) {
	w.str(0, "BLOCK")
	w.str(8, "0")
	w.str(2, b.Name)
	w.integer(70, 0)
	w.vec(10, Vec{b.BaseX, b.BaseY})
	w.str(3, b.Name)
	for i := range b.Entities {
		w.entity(&b.Entities[i])
	}
	w.str(0, "ENDBLK")
	w.str(8, "0")
}

func (w *Writer) entity(e *Entity) {
	w.str(0, string(e.Type))
	w.str(8, e.Layer)
	w.str(6, e.LineType)
	w.integer(62, e.Color)
	if e.TrueColor != NoTrueColor {
		w.integer(420, e.TrueColor)
	}

	switch e.Type {
	case TypeLine:
		w.vec(10, e.Line.Start)
		w.vec(11, e.Line.End)
	case TypeCircle:
		w.vec(10, e.Circle.Center)
		w.float(40, e.Circle.Radius)
	case TypeArc:
		w.vec(10, e.Arc.Center)
		w.float(40, e.Arc.Radius)
		w.float(50, e.Arc.StartAngle)
		w.float(51, e.Arc.EndAngle)
	case TypeEllipse:
		w.vec(10, e.Ellipse.Center)
		w.vec(11, e.Ellipse.MajorAxis)
		w.float(40, e.Ellipse.Ratio)
		w.float(41, e.Ellipse.StartParam)
		w.float(42, e.Ellipse.EndParam)
	case TypePoint:
		w.vec(10, e.Point.Position)
	case TypeText:
		t := e.Text
		w.vec(10, t.Position)
		w.float(40, t.Height)
		w.str(1, t.Content)
		w.float(50, t.Rotation)
		if t.WidthFactor != 0 && t.WidthFactor != 1 {
			w.float(41, t.WidthFactor)
		}
		if t.Oblique != 0 {
			w.float(51, t.Oblique)
		}
		w.str(7, t.Style)
		if t.HAlign != HAlignLeft {
			w.integer(72, t.HAlign)
		}
		if t.Aligned() {
			w.vec(11, t.AlignPoint)
		}
		if t.VAlign != VAlignBaseline {
			w.integer(73, t.VAlign)
		}
	case TypeSolid:
		w.vec(10, e.Solid.V1)
		w.vec(11, e.Solid.V2)
		w.vec(12, e.Solid.V3)
		w.vec(13, e.Solid.V4)
	case TypeInsert:
		w.str(2, e.Insert.Block)
		w.vec(10, e.Insert.Position)
		w.float(41, e.Insert.ScaleX)
		w.float(42, e.Insert.ScaleY)
		w.float(50, e.Insert.Rotation)
	}
}

func (w *Writer) tag(t Tag) {
	switch v := t.Value.(type) {
	case string:
		w.str(t.Code, v)
	case int:
		w.integer(t.Code, v)
	case float64:
		w.float(t.Code, v)
	default:
		w.str(t.Code, fmt.Sprint(v))
	}
}

func (w *Writer) vec(code int, v Vec) {
	w.float(code, v.X)
	w.float(code+10, v.Y)
	w.float(code+20, 0)
}

func (w *Writer) float(code int, v float64) {
	w.pair(code, FormatFloat(v, w.opts.Precision))
}

func (w *Writer) integer(code int, v int) {
	w.pair(code, strconv.Itoa(v))
}

func (w *Writer) str(code int, s string) {
	w.pair(code, sanitize(s, w.escape))
}

func (w *Writer) pair(code int, value string) {
	if w.err != nil {
		return
	}
	_, w.err = fmt.Fprintf(w.w, "%3d\n%s\n", code, value)
}

// FormatFloat renders v with a fixed number of decimals. Negative zero and
// values that round to zero are written without a sign.
func FormatFloat(v float64, precision int) string {
	s := strconv.FormatFloat(v, 'f', precision, 64)
	if strings.HasPrefix(s, "-") && strings.Trim(s[1:], "0.") == "" {
		return s[1:]
	}
	return s
}

// sanitize removes line breaks, which would split a value across group
// pairs, and optionally escapes non-ASCII runes.
func sanitize(s string, escape bool) string {
	if !strings.ContainsAny(s, "\r\n") && (!escape || isASCII(s)) {
		return s
	}
	var sb strings.Builder
	for _, r := range s {
		switch {
		case r == '\r' || r == '\n':
			sb.WriteByte(' ')
		case escape && r > 0x7F:
			fmt.Fprintf(&sb, "\\U+%04X", r)
		default:
			sb.WriteRune(r)
		}
	}
	return sb.String()
}

func isASCII(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] > 0x7F {
			return false
		}
	}
	return true
}
