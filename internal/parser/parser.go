// Package parser provides format detection and shared options for drawing parsers.
package parser

import (
	"bytes"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/roboco-io/jww2dxf/internal/diag"
	"github.com/roboco-io/jww2dxf/internal/ir"
	"go.uber.org/zap"
)

// Parser is the interface for drawing parsers.
type Parser interface {
	// Parse decodes the drawing. A non-nil error is fatal; record-level
	// problems are reported through Diagnostics instead.
	Parse() (*ir.Document, error)

	// Diagnostics returns the non-fatal issues recorded by Parse.
	Diagnostics() diag.List
}

// Format represents a drawing format.
type Format int

const (
	FormatUnknown Format = iota
	FormatJWW            // Jw_cad binary drawing
)

// JWWSignature is the first eight bytes of every JWW file.
const JWWSignature = "JwwData."

// String returns the string representation of the format.
func (f Format) String() string {
	switch f {
	case FormatJWW:
		return "jww"
	default:
		return "unknown"
	}
}

// DetectFormat detects the drawing format from the file path.
func DetectFormat(path string) Format {
	ext := strings.ToLower(filepath.Ext(path))
	switch ext {
	case ".jww":
		return FormatJWW
	default:
		return FormatUnknown
	}
}

// DetectFormatFromBytes detects the format from the leading magic bytes.
func DetectFormatFromBytes(data []byte) Format {
	if bytes.HasPrefix(data, []byte(JWWSignature)) {
		return FormatJWW
	}
	return FormatUnknown
}

// DetectFormatFromReader detects the format by reading magic bytes.
func DetectFormatFromReader(r io.ReaderAt) (Format, error) {
	buf := make([]byte, len(JWWSignature))
	n, err := r.ReadAt(buf, 0)
	if err != nil && err != io.EOF {
		return FormatUnknown, fmt.Errorf("failed to read magic bytes: %w", err)
	}
	if n < len(JWWSignature) {
		return FormatUnknown, fmt.Errorf("file too small to detect format")
	}
	return DetectFormatFromBytes(buf), nil
}

// StopRule decides when the entity loop ends.
type StopRule string

const (
	StopAuto  StopRule = ""      // use the rule of the detected version family
	StopCount StopRule = "count" // declared object count is authoritative
	StopEOF   StopRule = "eof"   // read until the buffer or the entity section ends
)

// ParseStopRule parses a stop rule name. An empty name means StopAuto.
func ParseStopRule(s string) (StopRule, error) {
	switch StopRule(strings.ToLower(strings.TrimSpace(s))) {
	case StopAuto, "auto":
		return StopAuto, nil
	case StopCount:
		return StopCount, nil
	case StopEOF:
		return StopEOF, nil
	default:
		return StopAuto, fmt.Errorf("unknown stop rule: %q", s)
	}
}

// Options contains parser configuration options.
type Options struct {
	Strict   bool        // surface truncation as a fatal UnexpectedEof
	StopRule StopRule    // entity loop stop condition override
	Logger   *zap.Logger // debug traces; nil disables logging
}

// DefaultOptions returns default parser options.
func DefaultOptions() Options {
	return Options{
		Strict:   false,
		StopRule: StopAuto,
	}
}

// Log returns the configured logger or a no-op logger.
func (o Options) Log() *zap.Logger {
	if o.Logger == nil {
		return zap.NewNop()
	}
	return o.Logger
}
