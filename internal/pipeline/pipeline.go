// Package pipeline composes Parse, Convert and Serialize.
package pipeline

import (
	"fmt"

	"github.com/roboco-io/jww2dxf/internal/convert"
	"github.com/roboco-io/jww2dxf/internal/diag"
	"github.com/roboco-io/jww2dxf/internal/dxf"
	"github.com/roboco-io/jww2dxf/internal/ir"
	"github.com/roboco-io/jww2dxf/internal/parser"
	"github.com/roboco-io/jww2dxf/internal/parser/jww"
	"go.uber.org/zap"
)

// Options groups the options of the three stages.
type Options struct {
	Parse   parser.Options
	Convert convert.Options
	Writer  dxf.WriterOptions
	Logger  *zap.Logger // used by stages that have no logger of their own
}

// DefaultOptions returns default options for every stage.
func DefaultOptions() Options {
	return Options{
		Parse:   parser.DefaultOptions(),
		Convert: convert.DefaultOptions(),
		Writer:  dxf.DefaultWriterOptions(),
	}
}

// Result holds every intermediate product of a run.
type Result struct {
	Document    *ir.Document
	DXF         *dxf.Document
	Text        string
	Diagnostics diag.List // parse diagnostics followed by conversion diagnostics
}

// Parse decodes JWW bytes.
func Parse(data []byte, opts Options) (*ir.Document, diag.List, error) {
	if opts.Parse.Logger == nil {
		opts.Parse.Logger = opts.Logger
	}
	if parser.DetectFormatFromBytes(data) != parser.FormatJWW {
		return nil, nil, diag.Errorf(diag.KindInvalidHeader, 0, "not a JWW file")
	}
	doc, diags, err := jww.Parse(data, opts.Parse)
	if err != nil {
		return nil, diags, fmt.Errorf("failed to parse JWW: %w", err)
	}
	return doc, diags, nil
}

// Convert converts a document and serializes it. It never fails.
func Convert(doc *ir.Document, opts Options) (*dxf.Document, string, diag.List) {
	if opts.Convert.Logger == nil {
		opts.Convert.Logger = opts.Logger
	}
	out, diags := convert.Convert(doc, opts.Convert)
	return out, dxf.String(out, opts.Writer), diags
}

// Run parses data and converts it to DXF text. Only a fatal parse error is
// returned; everything else is in Result.Diagnostics.
func Run(data []byte, opts Options) (*Result, error) {
	doc, parseDiags, err := Parse(data, opts)
	if err != nil {
		return nil, err
	}

	out, text, convDiags := Convert(doc, opts)

	diags := make(diag.List, 0, len(parseDiags)+len(convDiags))
	diags = append(diags, parseDiags...)
	diags = append(diags, convDiags...)

	if opts.Logger != nil {
		opts.Logger.Debug("pipeline finished",
			zap.Int("entities", len(doc.Entities)),
			zap.Int("dxf_entities", len(out.Entities)),
			zap.Int("diagnostics", len(diags)),
			zap.Int("bytes", len(text)))
	}

	return &Result{
		Document:    doc,
		DXF:         out,
		Text:        text,
		Diagnostics: diags,
	}, nil
}
