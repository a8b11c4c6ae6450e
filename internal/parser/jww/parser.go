package jww

import (
	"encoding/binary"

	"github.com/roboco-io/jww2dxf/internal/binreader"
	"github.com/roboco-io/jww2dxf/internal/diag"
	"github.com/roboco-io/jww2dxf/internal/ir"
	"github.com/roboco-io/jww2dxf/internal/parser"
	"go.uber.org/zap"
)

// Parser parses JWW drawings held in memory. It never modifies its input.
type Parser struct {
	data    []byte
	options parser.Options
	log     *zap.Logger
	diags   diag.List
}

// New creates a new JWW parser over data.
func New(data []byte, opts parser.Options) *Parser {
	return &Parser{
		data:    data,
		options: opts,
		log:     opts.Log(),
	}
}

// Parse decodes the whole file and returns the document with its diagnostics.
func Parse(data []byte, opts parser.Options) (*ir.Document, diag.List, error) {
	p := New(data, opts)
	doc, err := p.Parse()
	return doc, p.Diagnostics(), err
}

// Diagnostics returns the non-fatal issues recorded by the last Parse call.
func (p *Parser) Diagnostics() diag.List {
	return p.diags
}

// Parse implements the parser.Parser interface.
//
// Header problems are fatal. A truncated body is fatal only in strict mode;
// otherwise the entities read so far are kept and the document is marked
// Truncated.
func (p *Parser) Parse() (*ir.Document, error) {
	p.diags = nil
	r := binreader.New(p.data)

	h, err := ReadHeader(r)
	if err != nil {
		return nil, err
	}
	p.log.Debug("header parsed",
		zap.Uint32("version", h.Version),
		zap.String("family", h.Family.Name),
		zap.Int64("header_end", h.End))

	doc := ir.NewDocument(h.Version)
	doc.Memo = h.Memo
	doc.PaperSize = h.PaperSize
	doc.WriteLayerGroup = h.WriteLayerGroup
	doc.LayerGroups = h.LayerGroups

	b := &body{
		archive: newArchive(r, h.Version),
		data:    p.data,
		diags:   &p.diags,
		log:     p.log,
	}
	b.rule = p.options.StopRule
	if b.rule == parser.StopAuto {
		b.rule = h.Family.StopRule
	}

	if err := b.read(doc, int(h.End)); err != nil {
		if p.options.Strict {
			return nil, err
		}
		p.diags.AddError(err, len(doc.Entities))
		doc.Truncated = true
		p.log.Debug("body truncated", zap.Error(err))
	}

	resolveInserts(doc, &p.diags)
	return doc, nil
}

// listEnd tells the caller how an entity list finished.
type listEnd int

const (
	endNormal listEnd = iota
	endBlocks         // resync landed on a CDataList tag
	endLost           // resync found nothing plausible
)

// body holds the state of one pass over the entity list and block definitions.
type body struct {
	*archive
	data  []byte
	rule  parser.StopRule
	diags *diag.List
	log   *zap.Logger

	listTag int64 // CDataList tag offset, set when a list ends with endBlocks
}

// read locates the entity list after the header and decodes it, then the
// block definitions that follow. Only UnexpectedEof is returned.
func (b *body) read(doc *ir.Document, from int) error {
	start, blocksOnly, ok := locateBody(b.data, from, b.version)
	if !ok {
		b.log.Debug("entity list not found", zap.Int("from", from))
		return nil
	}
	_ = b.r.Seek(int64(start))

	if !blocksOnly {
		b.log.Debug("entity list found", zap.Int("offset", start))
		count, err := b.readCount()
		if err != nil {
			return err
		}
		entities, end, err := b.readList(count, b.rule, "")
		doc.Entities = append(doc.Entities, entities...)
		if err != nil {
			return err
		}
		switch end {
		case endLost:
			return nil
		case endBlocks:
			// 첫 블록 정의 앞에는 DWORD 개수가 있다
			_ = b.r.Seek(b.listTag - 4)
		}
	}

	return b.readBlocks(doc)
}

// locateBody scans for the first new-class tag of a CData class written with
// the file's schema. MFC records carry no lengths, so this is the only
// reliable anchor past the variable-size settings that follow the header.
// If the first class is CDataList there are no top-level entities and the
// returned offset points at the block count.
func locateBody(data []byte, from int, version uint32) (start int, blocksOnly bool, ok bool) {
	for i := from + 2; i+6 <= len(data); i++ {
		name, found := isEntityClassTag(data, i, version)
		if !found {
			continue
		}
		if name == ClassList {
			if i-4 < from {
				continue
			}
			return i - 4, true, true
		}
		start = i - 2
		// 개수가 0xFFFF 이상이면 WORD 0xFFFF 뒤에 DWORD 개수
		if i-6 >= from &&
			binary.LittleEndian.Uint16(data[i-6:]) == countEscape &&
			binary.LittleEndian.Uint32(data[i-4:]) >= uint32(countEscape) {
			start = i - 6
		}
		return start, false, true
	}
	return 0, false, false
}

// readList decodes one entity collection. seq names the collection in
// diagnostics ("" for the top level). On error the entities decoded before
// the failing record are still returned.
func (b *body) readList(count int, rule parser.StopRule, seq string) ([]ir.Entity, listEnd, error) {
	entities := make([]ir.Entity, 0)

	for i := 0; rule == parser.StopEOF || i < count; i++ {
		start := b.r.Offset()
		if rule == parser.StopEOF {
			if b.r.Remaining() < 2 {
				return entities, endNormal, nil
			}
			if !isNullTag(b.data, int(start)) {
				if ok, isList := b.plausibleTag(int(start)); !ok || isList {
					return entities, endNormal, nil
				}
			}
		}

		class, null, err := b.readObjectTag()
		if err != nil {
			if diag.KindOf(err) == diag.KindUnexpectedEOF {
				_ = b.r.Seek(start)
				return entities, endNormal, err
			}
			b.diags.AddError(err, len(entities))
			if end := b.resync(start + 2); end != endNormal {
				return entities, end, nil
			}
			continue
		}
		if null {
			continue
		}

		decode, ok := decoders[class]
		if !ok {
			b.diags.Add(diag.KindUnknownEntityType, start, len(entities),
				"%sno decoder for class %s", seqPrefix(seq), class)
			b.log.Debug("unknown class", zap.String("class", class), zap.Int64("offset", start))
			if end := b.resync(b.r.Offset()); end != endNormal {
				return entities, end, nil
			}
			continue
		}

		f := fields{r: b.r}
		e := decode(&f, b.version)
		if f.err != nil {
			// 읽다 만 엔티티는 버린다
			_ = b.r.Seek(start)
			return entities, endNormal, f.err
		}
		entities = append(entities, e)
	}
	return entities, endNormal, nil
}

// resync moves the cursor to the next plausible object tag at or after from.
func (b *body) resync(from int64) listEnd {
	for k := int(from); k+2 <= len(b.data); k++ {
		ok, isList := b.plausibleTag(k)
		if !ok {
			continue
		}
		b.log.Debug("resynchronized", zap.Int64("from", from), zap.Int("to", k))
		if isList {
			b.listTag = int64(k)
			return endBlocks
		}
		_ = b.r.Seek(int64(k))
		return endNormal
	}
	b.diags.Add(diag.KindUnknownEntityType, from, -1, "could not resynchronize, rest of the list skipped")
	return endLost
}

// plausibleTag reports whether an object tag could start at data[k]: a new
// CData class with the file schema, or a reference to a known entity class
// whose base attributes look sane.
func (b *body) plausibleTag(k int) (ok bool, isList bool) {
	if name, found := isEntityClassTag(b.data, k, b.version); found {
		return true, name == ClassList
	}
	if k+2 > len(b.data) {
		return false, false
	}
	w := binary.LittleEndian.Uint16(b.data[k:])
	if w&tagClassFlag == 0 || w == tagNull || w == tagNewClass {
		return false, false
	}
	class, known := b.classes[uint32(w&^tagClassFlag)]
	if !known {
		return false, false
	}
	if class == ClassList {
		return true, true
	}
	if !IsEntityClass(class) {
		return false, false
	}

	r := binreader.New(b.data)
	if r.Seek(int64(k+2)) != nil {
		return false, false
	}
	f := fields{r: r}
	attrs := readAttributes(&f, b.version)
	if f.err != nil {
		return false, false
	}
	return attrs.Layer < maxLayerIndex && attrs.LayerGroup < maxLayerIndex, false
}

func isNullTag(data []byte, k int) bool {
	return k+2 <= len(data) && binary.LittleEndian.Uint16(data[k:]) == tagNull
}

func seqPrefix(seq string) string {
	if seq == "" {
		return ""
	}
	return "block " + seq + ": "
}
