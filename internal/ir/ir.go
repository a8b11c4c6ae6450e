// Package ir defines the decoded representation of a JWW drawing.
// The parser produces it; the DXF converter and the export encoders consume it.
package ir

import "fmt"

// Document is a decoded JWW drawing.
type Document struct {
	Version         uint32                      `json:"version" yaml:"version"`
	Memo            string                      `json:"memo,omitempty" yaml:"memo,omitempty"`
	PaperSize       uint32                      `json:"paper_size" yaml:"paper_size"`               // 0-4 A0-A4, 8 2A, 9 3A
	WriteLayerGroup uint32                      `json:"write_layer_group" yaml:"write_layer_group"` // 0-15
	LayerGroups     [LayerGroupCount]LayerGroup `json:"layer_groups" yaml:"layer_groups"`
	Entities        []Entity                    `json:"entities" yaml:"entities"`
	Blocks          []*BlockDefinition          `json:"blocks,omitempty" yaml:"blocks,omitempty"`
	Truncated       bool                        `json:"truncated,omitempty" yaml:"truncated,omitempty"` // body ended early in lenient mode
}

// NewDocument creates an empty document with default layer names.
func NewDocument(version uint32) *Document {
	doc := &Document{
		Version:  version,
		Entities: make([]Entity, 0),
	}
	for g := range doc.LayerGroups {
		doc.LayerGroups[g] = NewLayerGroup(g)
	}
	return doc
}

// AddEntity appends an entity to the top-level sequence.
func (d *Document) AddEntity(e Entity) {
	d.Entities = append(d.Entities, e)
}

// AddBlock appends a block definition.
func (d *Document) AddBlock(b *BlockDefinition) {
	d.Blocks = append(d.Blocks, b)
}

// Block returns the definition with the given name, or nil.
func (d *Document) Block(name string) *BlockDefinition {
	for _, b := range d.Blocks {
		if b.Name == name {
			return b
		}
	}
	return nil
}

// BlockByNumber returns the definition with the given number, or nil.
func (d *Document) BlockByNumber(n uint32) *BlockDefinition {
	for _, b := range d.Blocks {
		if b.Number == n {
			return b
		}
	}
	return nil
}

// PartiallyResolved reports whether any block insert, at top level or inside
// a definition, references a block that does not exist.
func (d *Document) PartiallyResolved() bool {
	unresolved := func(es []Entity) bool {
		for _, e := range es {
			if e.Kind == KindInsert && !e.Insert.Resolved {
				return true
			}
		}
		return false
	}
	if unresolved(d.Entities) {
		return true
	}
	for _, b := range d.Blocks {
		if unresolved(b.Entities) {
			return true
		}
	}
	return false
}

// Stats counts entities by kind across the top level and all block definitions.
func (d *Document) Stats() map[EntityKind]int {
	stats := make(map[EntityKind]int)
	for _, e := range d.Entities {
		stats[e.Kind]++
	}
	for _, b := range d.Blocks {
		for _, e := range b.Entities {
			stats[e.Kind]++
		}
	}
	return stats
}

// VersionString formats the version number the way Jw_cad shows it, e.g. 351 -> "3.51".
func (d *Document) VersionString() string {
	return fmt.Sprintf("%d.%02d", d.Version/100, d.Version%100)
}
