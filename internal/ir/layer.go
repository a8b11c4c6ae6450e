package ir

import "fmt"

const (
	LayerGroupCount = 16
	LayerCount      = 16 // layers per group
)

// Layer state values shared by layers and layer groups.
const (
	StateHidden   uint32 = 0
	StateViewOnly uint32 = 1
	StateEditable uint32 = 2
	StateWrite    uint32 = 3
)

// LayerGroup is one of the sixteen layer groups of a drawing.
type LayerGroup struct {
	Name       string            `json:"name" yaml:"name"`
	State      uint32            `json:"state" yaml:"state"`
	WriteLayer uint32            `json:"write_layer" yaml:"write_layer"`
	Scale      float64           `json:"scale" yaml:"scale"` // denominator, 100 means 1:100
	Protect    uint32            `json:"protect" yaml:"protect"`
	Layers     [LayerCount]Layer `json:"layers" yaml:"layers"`
}

// Layer is a single layer inside a group.
type Layer struct {
	Name    string `json:"name" yaml:"name"`
	State   uint32 `json:"state" yaml:"state"`
	Protect uint32 `json:"protect" yaml:"protect"`
}

// NewLayerGroup creates an editable group with default names.
func NewLayerGroup(g int) LayerGroup {
	lg := LayerGroup{
		Name:  GroupName(g),
		State: StateEditable,
		Scale: 1,
	}
	for l := range lg.Layers {
		lg.Layers[l] = Layer{Name: LayerName(g, l), State: StateEditable}
	}
	return lg
}

// LayerName returns the default name of layer l in group g, e.g. "0-A".
func LayerName(g, l int) string {
	return fmt.Sprintf("%X-%X", g, l)
}

// GroupName returns the default name of group g.
func GroupName(g int) string {
	return fmt.Sprintf("Group%X", g)
}

// Hidden reports whether the layer or its group is hidden.
func (lg *LayerGroup) Hidden(l int) bool {
	return lg.State == StateHidden || lg.Layers[l].State == StateHidden
}

// Protected reports whether the layer or its group is write-protected.
func (lg *LayerGroup) Protected(l int) bool {
	return lg.Protect != 0 || lg.Layers[l].Protect != 0
}
