// Package dxf defines the DXF document model and its text serializer.
package dxf

// AutoCAD drawing database versions written to $ACADVER.
const (
	R12   = "AC1009"
	R2000 = "AC1015"
	R2004 = "AC1018"
	R2007 = "AC1021"
)

// DefaultVersion is the $ACADVER written when none is configured.
const DefaultVersion = R2000

// Special color numbers.
const (
	ColorByBlock = 0
	ColorByLayer = 256
	ColorWhite   = 7
)

// Document is a DXF drawing ready to be written.
type Document struct {
	Header    []HeaderVar `json:"header"`
	LineTypes []LineType  `json:"line_types"`
	Layers    []Layer     `json:"layers"`
	Blocks    []Block     `json:"blocks"`
	Entities  []Entity    `json:"entities"`
}

// NewDocument creates an empty document for the given $ACADVER.
func NewDocument(version string) *Document {
	if version == "" {
		version = DefaultVersion
	}
	doc := &Document{
		Entities: make([]Entity, 0),
	}
	doc.SetHeader("$ACADVER", Tag{Code: 1, Value: version})
	return doc
}

// Version returns the $ACADVER value.
func (d *Document) Version() string {
	if v := d.HeaderVar("$ACADVER"); v != nil && len(v.Tags) > 0 {
		if s, ok := v.Tags[0].Value.(string); ok {
			return s
		}
	}
	return DefaultVersion
}

// HeaderVar returns the named header variable, or nil.
func (d *Document) HeaderVar(name string) *HeaderVar {
	for i := range d.Header {
		if d.Header[i].Name == name {
			return &d.Header[i]
		}
	}
	return nil
}

// SetHeader adds or replaces a header variable, keeping insertion order.
func (d *Document) SetHeader(name string, tags ...Tag) {
	if v := d.HeaderVar(name); v != nil {
		v.Tags = tags
		return
	}
	d.Header = append(d.Header, HeaderVar{Name: name, Tags: tags})
}

// SetHeaderPoint sets a 3D point header variable such as $EXTMIN.
func (d *Document) SetHeaderPoint(name string, x, y, z float64) {
	d.SetHeader(name, Tag{10, x}, Tag{20, y}, Tag{30, z})
}

// AddLayer appends a layer table entry.
func (d *Document) AddLayer(l Layer) {
	d.Layers = append(d.Layers, l)
}

// AddLineType appends a line type table entry.
func (d *Document) AddLineType(lt LineType) {
	d.LineTypes = append(d.LineTypes, lt)
}

// AddBlock appends a block definition.
func (d *Document) AddBlock(b Block) {
	d.Blocks = append(d.Blocks, b)
}

// AddEntity appends an entity to the ENTITIES section.
func (d *Document) AddEntity(e Entity) {
	d.Entities = append(d.Entities, e)
}

// Tag is one group code/value pair. Value is a string, int or float64.
type Tag struct {
	Code  int `json:"code"`
	Value any `json:"value"`
}

// HeaderVar is a $-prefixed header variable.
type HeaderVar struct {
	Name string `json:"name"`
	Tags []Tag  `json:"tags"`
}

// LineType is an LTYPE table entry. Pattern lists dash lengths, negative
// for gaps and zero for dots.
type LineType struct {
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Pattern     []float64 `json:"pattern,omitempty"`
}

// PatternLength returns the total length of one pattern repetition.
func (lt LineType) PatternLength() float64 {
	var total float64
	for _, v := range lt.Pattern {
		if v < 0 {
			total -= v
		} else {
			total += v
		}
	}
	return total
}

// Layer is a LAYER table entry.
type Layer struct {
	Name     string `json:"name"`
	Color    int    `json:"color"`
	LineType string `json:"line_type"`
	Frozen   bool   `json:"frozen,omitempty"`
	Locked   bool   `json:"locked,omitempty"`
}

// Flags returns the group 70 flags of the layer.
func (l Layer) Flags() int {
	flags := 0
	if l.Frozen {
		flags |= 1
	}
	if l.Locked {
		flags |= 4
	}
	return flags
}

// Block is a BLOCK definition with its base point.
type Block struct {
	Name     string   `json:"name"`
	BaseX    float64  `json:"base_x"`
	BaseY    float64  `json:"base_y"`
	Entities []Entity `json:"entities"`
}
