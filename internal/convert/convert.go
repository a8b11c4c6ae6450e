// Package convert maps a decoded JWW document onto the DXF document model.
//
// Conversion never fails. Anything without an exact DXF representation is
// approximated or omitted and reported as a LossyConversion diagnostic.
package convert

import (
	"math"

	"github.com/roboco-io/jww2dxf/internal/diag"
	"github.com/roboco-io/jww2dxf/internal/dxf"
	"github.com/roboco-io/jww2dxf/internal/ir"
	"go.uber.org/zap"
)

// DefaultTextHeight replaces text sizes that are zero or negative.
const DefaultTextHeight = 2.5

// Options contains converter configuration options.
type Options struct {
	UnitScale              float64     // multiplies coordinates and lengths
	FlipY                  bool        // negate Y for a downward source axis
	DefaultTextHeight      float64     // used when a text has no usable height
	IncludeTemporaryPoints bool        // emit JWW temporary points as POINT
	ACADVersion            string      // $ACADVER of the output
	Logger                 *zap.Logger // nil disables logging
}

// DefaultOptions returns default converter options.
func DefaultOptions() Options {
	return Options{
		UnitScale:         1,
		DefaultTextHeight: DefaultTextHeight,
		ACADVersion:       dxf.DefaultVersion,
	}
}

// Converter converts one document at a time. It is not safe for concurrent
// use; create one per goroutine or call Convert.
type Converter struct {
	opts    Options
	log     *zap.Logger
	diags   diag.List
	doc     *ir.Document
	acadver string
	index   int // entity index reported in diagnostics
}

// New creates a converter, filling unset options with defaults.
func New(opts Options) *Converter {
	if opts.UnitScale == 0 || math.IsNaN(opts.UnitScale) || math.IsInf(opts.UnitScale, 0) {
		opts.UnitScale = 1
	}
	if opts.DefaultTextHeight <= 0 {
		opts.DefaultTextHeight = DefaultTextHeight
	}
	log := opts.Logger
	if log == nil {
		log = zap.NewNop()
	}
	return &Converter{opts: opts, log: log}
}

// Convert converts doc with the given options.
func Convert(doc *ir.Document, opts Options) (*dxf.Document, diag.List) {
	c := New(opts)
	out := c.Convert(doc)
	return out, c.Diagnostics()
}

// Diagnostics returns the issues recorded by the last Convert call.
func (c *Converter) Diagnostics() diag.List {
	return c.diags
}

// Convert maps doc onto a new DXF document. doc is not modified.
func (c *Converter) Convert(doc *ir.Document) *dxf.Document {
	c.diags = nil
	c.doc = doc
	c.index = -1

	c.acadver = c.version()
	out := dxf.NewDocument(c.acadver)
	c.lineTypes(out)
	c.layers(out)
	c.blocks(out)

	for i := range doc.Entities {
		c.index = i
		for _, e := range c.entity(&doc.Entities[i]) {
			out.AddEntity(e)
		}
	}
	c.index = -1

	c.header(out)

	c.log.Debug("document converted",
		zap.Int("entities", len(out.Entities)),
		zap.Int("blocks", len(out.Blocks)),
		zap.Int("diagnostics", len(c.diags)))
	return out
}

func (c *Converter) version() string {
	switch c.opts.ACADVersion {
	case "":
		return dxf.DefaultVersion
	case dxf.R12, dxf.R2000, dxf.R2004, dxf.R2007:
		return c.opts.ACADVersion
	}
	c.lossy("unsupported $ACADVER %q, writing %s", c.opts.ACADVersion, dxf.DefaultVersion)
	return dxf.DefaultVersion
}

// entity converts one JWW entity into zero or more DXF entities.
func (c *Converter) entity(e *ir.Entity) []dxf.Entity {
	switch e.Kind {
	case ir.KindLine:
		return c.one(c.line(e.Attrs, e.Line))
	case ir.KindArc:
		return c.one(c.arc(e))
	case ir.KindPoint:
		return c.one(c.point(e))
	case ir.KindText:
		return c.one(c.text(e.Attrs, e.Text))
	case ir.KindSolid:
		return c.one(c.solid(e))
	case ir.KindInsert:
		return c.one(c.insert(e))
	case ir.KindDimension:
		return c.dimension(e)
	}
	c.lossy("entity kind %q has no DXF mapping", e.Kind)
	return nil
}

func (c *Converter) one(e *dxf.Entity) []dxf.Entity {
	if e == nil {
		return nil
	}
	return []dxf.Entity{*e}
}

// lossy records a LossyConversion diagnostic for the current entity.
func (c *Converter) lossy(format string, args ...any) {
	c.diags.Add(diag.KindLossyConversion, diag.NoOffset, c.index, format, args...)
}

// vec applies the unit scale and the Y flip to a source point.
func (c *Converter) vec(p ir.Point) dxf.Vec {
	y := p.Y
	if c.opts.FlipY {
		y = -y
	}
	return dxf.Vec{X: p.X * c.opts.UnitScale, Y: y * c.opts.UnitScale}
}

// length applies the unit scale to a distance.
func (c *Converter) length(v float64) float64 {
	return v * c.opts.UnitScale
}

// angle mirrors a counter-clockwise angle when Y is flipped.
func (c *Converter) angle(a float64) float64 {
	if c.opts.FlipY {
		return -a
	}
	return a
}
