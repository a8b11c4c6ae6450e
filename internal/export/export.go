// Package export encodes decoded JWW documents for other tools.
package export

import (
	"encoding/json"
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/roboco-io/jww2dxf/internal/diag"
	"github.com/roboco-io/jww2dxf/internal/ir"
	"github.com/vmihailenco/msgpack/v5"
	"gopkg.in/yaml.v3"
)

// Encoder writes a document in one format.
type Encoder interface {
	// Name returns the format name used on the command line and in URLs.
	Name() string

	// ContentType returns the MIME type of the output.
	ContentType() string

	// Encode writes the payload to w.
	Encode(w io.Writer, p *Payload) error
}

// Payload is what every encoder writes: the document and the diagnostics
// recorded while decoding it.
type Payload struct {
	Document    *ir.Document `json:"document" yaml:"document"`
	Diagnostics diag.List    `json:"diagnostics" yaml:"diagnostics"`
}

// NewPayload bundles a document with its diagnostics.
func NewPayload(doc *ir.Document, diags diag.List) *Payload {
	if diags == nil {
		diags = diag.List{}
	}
	return &Payload{Document: doc, Diagnostics: diags}
}

// JSON encodes the payload as JSON.
type JSON struct {
	Indent bool
}

func (JSON) Name() string        { return "json" }
func (JSON) ContentType() string { return "application/json" }

func (e JSON) Encode(w io.Writer, p *Payload) error {
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	if e.Indent {
		enc.SetIndent("", "  ")
	}
	if err := enc.Encode(p); err != nil {
		return fmt.Errorf("failed to encode JSON: %w", err)
	}
	return nil
}

// YAML encodes the payload as YAML.
type YAML struct{}

func (YAML) Name() string        { return "yaml" }
func (YAML) ContentType() string { return "application/yaml" }

func (YAML) Encode(w io.Writer, p *Payload) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(p); err != nil {
		return fmt.Errorf("failed to encode YAML: %w", err)
	}
	return enc.Close()
}

// MsgPack encodes the payload as MessagePack, keyed like the JSON output.
type MsgPack struct{}

func (MsgPack) Name() string        { return "msgpack" }
func (MsgPack) ContentType() string { return "application/msgpack" }

func (MsgPack) Encode(w io.Writer, p *Payload) error {
	enc := msgpack.NewEncoder(w)
	enc.SetCustomStructTag("json")
	if err := enc.Encode(p); err != nil {
		return fmt.Errorf("failed to encode MessagePack: %w", err)
	}
	return nil
}

// DecodeMsgPack reads a payload written by MsgPack.
func DecodeMsgPack(r io.Reader) (*Payload, error) {
	dec := msgpack.NewDecoder(r)
	dec.SetCustomStructTag("json")
	var p Payload
	if err := dec.Decode(&p); err != nil {
		return nil, fmt.Errorf("failed to decode MessagePack: %w", err)
	}
	return &p, nil
}

// Text writes a human-readable summary.
type Text struct{}

func (Text) Name() string        { return "text" }
func (Text) ContentType() string { return "text/plain; charset=utf-8" }

func (Text) Encode(w io.Writer, p *Payload) error {
	var sb strings.Builder
	doc := p.Document

	fmt.Fprintf(&sb, "JWW version: %s (%d)\n", doc.VersionString(), doc.Version)
	if doc.Memo != "" {
		fmt.Fprintf(&sb, "Memo: %s\n", doc.Memo)
	}
	fmt.Fprintf(&sb, "Entities: %d\n", len(doc.Entities))

	stats := doc.Stats()
	kinds := make([]string, 0, len(stats))
	for k := range stats {
		kinds = append(kinds, string(k))
	}
	sort.Strings(kinds)
	if len(kinds) > 0 {
		sb.WriteString("By kind, including block contents:\n")
	}
	for _, k := range kinds {
		fmt.Fprintf(&sb, "  %-10s %d\n", k, stats[ir.EntityKind(k)])
	}

	fmt.Fprintf(&sb, "Blocks: %d\n", len(doc.Blocks))
	for _, b := range doc.Blocks {
		fmt.Fprintf(&sb, "  %s (#%d, %d entities)\n", b.Name, b.Number, len(b.Entities))
	}
	if doc.Truncated {
		sb.WriteString("Truncated: yes\n")
	}

	fmt.Fprintf(&sb, "Diagnostics: %d\n", len(p.Diagnostics))
	for _, d := range p.Diagnostics {
		fmt.Fprintf(&sb, "  %s\n", d)
	}

	_, err := io.WriteString(w, sb.String())
	return err
}
