package ir

import "fmt"

// BlockDefinition is a named group of entities (CDataList).
type BlockDefinition struct {
	Attrs      Attributes `json:"attrs" yaml:"attrs"`
	Number     uint32     `json:"number" yaml:"number"`
	Referenced bool       `json:"referenced" yaml:"referenced"`
	Timestamp  uint32     `json:"timestamp,omitempty" yaml:"timestamp,omitempty"`
	Name       string     `json:"name" yaml:"name"`
	Entities   []Entity   `json:"entities" yaml:"entities"`
}

// FallbackBlockName is used for a definition number that has no name.
func FallbackBlockName(number uint32) string {
	return fmt.Sprintf("BLOCK_%d", number)
}

// NewBlockDefinition creates an empty definition. An empty name falls back
// to BLOCK_<number>.
func NewBlockDefinition(number uint32, name string) *BlockDefinition {
	if name == "" {
		name = FallbackBlockName(number)
	}
	return &BlockDefinition{
		Number:   number,
		Name:     name,
		Entities: make([]Entity, 0),
	}
}

// AddEntity appends an entity to the definition.
func (b *BlockDefinition) AddEntity(e Entity) {
	b.Entities = append(b.Entities, e)
}
