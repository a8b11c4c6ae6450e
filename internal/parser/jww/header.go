package jww

import (
	"github.com/roboco-io/jww2dxf/internal/binreader"
	"github.com/roboco-io/jww2dxf/internal/diag"
	"github.com/roboco-io/jww2dxf/internal/ir"
	"github.com/roboco-io/jww2dxf/internal/parser"
)

// Family describes a range of file versions that share a record layout.
type Family struct {
	Name     string
	Min, Max uint32
	StopRule parser.StopRule // default stop rule for the entity loop
}

// Families lists every supported version family.
var Families = []Family{
	{Name: "3.x", Min: 300, Max: 399, StopRule: parser.StopCount},
	{Name: "4.x", Min: 400, Max: 599, StopRule: parser.StopCount},
	{Name: "6.x+", Min: 600, Max: 999, StopRule: parser.StopCount},
}

// FamilyOf returns the family containing version.
func FamilyOf(version uint32) (Family, bool) {
	for _, f := range Families {
		if version >= f.Min && version <= f.Max {
			return f, true
		}
	}
	return Family{}, false
}

// Header is the fixed part of a JWW file before the entity list.
type Header struct {
	Version         uint32
	Family          Family
	Memo            string
	PaperSize       uint32
	WriteLayerGroup uint32
	LayerGroups     [ir.LayerGroupCount]ir.LayerGroup
	End             int64 // offset just past the layer table
}

// ReadHeader reads and validates the signature, version and layer table.
// Any failure is reported as InvalidHeader; a short buffer also matches
// UnexpectedEof through the wrapped cause.
func ReadHeader(r *binreader.Reader) (*Header, error) {
	sig, err := r.Peek(len(Signature))
	if err != nil || string(sig) != Signature {
		return nil, diag.Errorf(diag.KindInvalidHeader, 0, "signature %q not found", Signature)
	}
	_ = r.Skip(len(Signature))

	h := &Header{}
	if h.Version, err = r.U32(); err != nil {
		return nil, headerEOF(err, "version")
	}

	family, ok := FamilyOf(h.Version)
	if !ok {
		return nil, diag.Errorf(diag.KindInvalidHeader, int64(len(Signature)),
			"unsupported version %d", h.Version)
	}
	h.Family = family

	if h.Memo, err = r.String(binreader.MFCLength); err != nil {
		return nil, headerEOF(err, "memo")
	}
	if h.PaperSize, err = r.U32(); err != nil {
		return nil, headerEOF(err, "paper size")
	}
	if h.WriteLayerGroup, err = r.U32(); err != nil {
		return nil, headerEOF(err, "write layer group")
	}

	// 레이어 그룹 16개, 각 그룹에 레이어 16개
	if r.Remaining() < layerTableSize {
		eof := diag.Errorf(diag.KindUnexpectedEOF, r.Offset(),
			"layer table needs %d bytes, %d left", layerTableSize, r.Remaining())
		return nil, headerEOF(eof, "layer table")
	}
	f := fields{r: r}
	for g := range h.LayerGroups {
		lg := ir.NewLayerGroup(g)
		lg.State = f.u32()
		lg.WriteLayer = f.u32()
		lg.Scale = f.f64()
		lg.Protect = f.u32()
		for l := range lg.Layers {
			lg.Layers[l].State = f.u32()
			lg.Layers[l].Protect = f.u32()
		}
		h.LayerGroups[g] = lg
	}
	if f.err != nil {
		return nil, headerEOF(f.err, "layer table")
	}

	h.End = r.Offset()
	return h, nil
}

func headerEOF(err error, what string) error {
	return diag.Wrap(diag.KindInvalidHeader, diag.OffsetOf(err), err, "truncated header: "+what)
}
