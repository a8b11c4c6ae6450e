package convert

import (
	"math"
	"strings"

	"github.com/google/uuid"
	"github.com/roboco-io/jww2dxf/internal/dxf"
	"github.com/roboco-io/jww2dxf/internal/ir"
	"github.com/vmihailenco/msgpack/v5"
)

// insUnitsMillimetres is the $INSUNITS code for millimetres.
const insUnitsMillimetres = 4

// fingerprintSpace namespaces the name-based $FINGERPRINTGUID.
var fingerprintSpace = uuid.NewSHA1(uuid.NameSpaceURL, []byte("https://github.com/roboco-io/jww2dxf"))

func (c *Converter) header(out *dxf.Document) {
	out.SetHeader("$INSUNITS", dxf.Tag{Code: 70, Value: insUnitsMillimetres})

	lo, hi := extents(out.Entities)
	out.SetHeaderPoint("$EXTMIN", lo.X, lo.Y, 0)
	out.SetHeaderPoint("$EXTMAX", hi.X, hi.Y, 0)

	out.SetHeader("$FINGERPRINTGUID", dxf.Tag{Code: 2, Value: Fingerprint(c.doc)})
}

// extents returns the bounding box of the entities' defining points.
// An empty drawing has a zero box.
func extents(entities []dxf.Entity) (dxf.Vec, dxf.Vec) {
	lo := dxf.Vec{X: math.Inf(1), Y: math.Inf(1)}
	hi := dxf.Vec{X: math.Inf(-1), Y: math.Inf(-1)}
	found := false
	for i := range entities {
		for _, p := range entities[i].Points() {
			if math.IsNaN(p.X) || math.IsNaN(p.Y) || math.IsInf(p.X, 0) || math.IsInf(p.Y, 0) {
				continue
			}
			found = true
			lo.X, lo.Y = math.Min(lo.X, p.X), math.Min(lo.Y, p.Y)
			hi.X, hi.Y = math.Max(hi.X, p.X), math.Max(hi.Y, p.Y)
		}
	}
	if !found {
		return dxf.Vec{}, dxf.Vec{}
	}
	return lo, hi
}

// Fingerprint returns a GUID derived from the document content, so equal
// documents get equal fingerprints.
func Fingerprint(doc *ir.Document) string {
	data, err := msgpack.Marshal(doc)
	if err != nil {
		return "{" + strings.ToUpper(uuid.Nil.String()) + "}"
	}
	id := uuid.NewSHA1(fingerprintSpace, data)
	return "{" + strings.ToUpper(id.String()) + "}"
}
