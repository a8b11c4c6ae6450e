package dxfread

import (
	"io"
	"sort"
	"strings"
)

// Entity is one record read from the ENTITIES or BLOCKS section.
type Entity struct {
	Type     string
	Layer    string
	Color    int
	LineType string
	Values   map[int][]string // every other group code, in file order
}

// Float returns the first value of code as a float.
func (e *Entity) Float(code int) (float64, bool) {
	vs := e.Values[code]
	if len(vs) == 0 {
		return 0, false
	}
	return Tag{Code: code, Value: vs[0]}.AsFloat(), true
}

// String returns the first value of code, unescaped.
func (e *Entity) String(code int) string {
	vs := e.Values[code]
	if len(vs) == 0 {
		return ""
	}
	return Unescape(vs[0])
}

// Block is a BLOCK definition.
type Block struct {
	Name     string
	Entities []Entity
}

// Drawing is everything the reader understands of a DXF file.
type Drawing struct {
	Header    map[string][]Tag
	LineTypes []string
	Layers    []string
	Blocks    []Block
	Entities  []Entity
}

type record struct {
	typ  string
	tags []Tag
}

func (r *record) first(code int) (Tag, bool) {
	for _, t := range r.tags {
		if t.Code == code {
			return t, true
		}
	}
	return Tag{}, false
}

// ReadString parses DXF text.
func ReadString(s string) (*Drawing, error) {
	return Read(strings.NewReader(s))
}

// Read parses an ASCII DXF stream.
func Read(r io.Reader) (*Drawing, error) {
	records, err := readRecords(r)
	if err != nil {
		return nil, err
	}

	d := &Drawing{Header: make(map[string][]Tag)}
	var section string
	var block *Block

	for i := range records {
		rec := &records[i]
		switch rec.typ {
		case "SECTION":
			name, _ := rec.first(2)
			section = name.Value
			if section == "HEADER" {
				d.readHeader(rec.tags)
			}
			continue
		case "ENDSEC":
			section = ""
			continue
		case "EOF":
			return d, nil
		}

		switch section {
		case "TABLES":
			name, _ := rec.first(2)
			switch rec.typ {
			case "LAYER":
				d.Layers = append(d.Layers, name.AsString())
			case "LTYPE":
				d.LineTypes = append(d.LineTypes, name.AsString())
			}
		case "BLOCKS":
			switch rec.typ {
			case "BLOCK":
				name, _ := rec.first(2)
				d.Blocks = append(d.Blocks, Block{Name: name.AsString()})
				block = &d.Blocks[len(d.Blocks)-1]
			case "ENDBLK":
				block = nil
			default:
				if block != nil {
					block.Entities = append(block.Entities, toEntity(rec))
				}
			}
		case "ENTITIES":
			d.Entities = append(d.Entities, toEntity(rec))
		}
	}
	return d, nil
}

func readRecords(r io.Reader) ([]record, error) {
	var records []record
	s := NewScanner(r)
	for s.Next() {
		t := s.LastTag
		if t.Code == 0 {
			records = append(records, record{typ: strings.TrimSpace(t.Value)})
			continue
		}
		if len(records) > 0 {
			last := &records[len(records)-1]
			last.tags = append(last.tags, t)
		}
	}
	return records, s.Err()
}

func (d *Drawing) readHeader(tags []Tag) {
	var name string
	for _, t := range tags {
		switch {
		case t.Code == 9:
			name = t.Value
			d.Header[name] = nil
		case name != "":
			d.Header[name] = append(d.Header[name], t)
		}
	}
}

func toEntity(rec *record) Entity {
	e := Entity{Type: rec.typ, Values: make(map[int][]string)}
	for _, t := range rec.tags {
		switch t.Code {
		case 8:
			e.Layer = t.AsString()
		case 62:
			e.Color = t.AsInt()
		case 6:
			e.LineType = t.AsString()
		default:
			e.Values[t.Code] = append(e.Values[t.Code], t.Value)
		}
	}
	return e
}

// Counts returns the number of top-level entities per type.
func (d *Drawing) Counts() map[string]int {
	counts := make(map[string]int)
	for _, e := range d.Entities {
		counts[e.Type]++
	}
	return counts
}

// Types returns the entity types present, sorted.
func (d *Drawing) Types() []string {
	counts := d.Counts()
	types := make([]string, 0, len(counts))
	for t := range counts {
		types = append(types, t)
	}
	sort.Strings(types)
	return types
}

// HeaderString returns the first value of a header variable.
func (d *Drawing) HeaderString(name string) string {
	if tags := d.Header[name]; len(tags) > 0 {
		return tags[0].AsString()
	}
	return ""
}
