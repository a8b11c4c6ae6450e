package jww

import (
	"github.com/roboco-io/jww2dxf/internal/diag"
	"github.com/roboco-io/jww2dxf/internal/ir"
	"github.com/roboco-io/jww2dxf/internal/parser"
	"go.uber.org/zap"
)

// 블록 정의 하나의 최소 크기: 태그 + EntityBase + number/referenced/time + 이름 길이 + 개수
const minBlockDefSize = 2 + 15 + 12 + 1 + 2

// readBlocks decodes the block definition section: a DWORD count followed by
// CDataList objects. A definition cut short is dropped as a whole.
func (b *body) readBlocks(doc *ir.Document) error {
	if b.r.Remaining() < 4 {
		return nil
	}
	sectionStart := b.r.Offset()
	n, _ := b.r.U32()
	if n == 0 {
		return nil
	}
	if int64(n) > int64(b.r.Remaining()/minBlockDefSize)+1 {
		b.log.Debug("no block section", zap.Int64("offset", sectionStart), zap.Uint32("count", n))
		_ = b.r.Seek(sectionStart)
		return nil
	}
	b.log.Debug("block section found", zap.Int64("offset", sectionStart), zap.Uint32("count", n))

	for i := uint32(0); i < n; i++ {
		start := b.r.Offset()
		class, null, err := b.readObjectTag()
		if err != nil {
			if diag.KindOf(err) == diag.KindUnexpectedEOF {
				return err
			}
			b.diags.AddError(err, -1)
			return nil
		}
		if null {
			continue
		}
		if class != ClassList {
			b.diags.Add(diag.KindUnknownEntityType, start, -1,
				"expected %s in block section, found %s", ClassList, class)
			return nil
		}

		def, end, err := b.readBlockDefinition()
		if err != nil {
			_ = b.r.Seek(start)
			return err
		}
		doc.AddBlock(def)
		switch end {
		case endBlocks:
			// 정의 안에서 재동기화: 다음 정의부터 계속 읽는다
			_ = b.r.Seek(b.listTag)
		case endLost:
			return nil
		}
	}
	return nil
}

func (b *body) readBlockDefinition() (*ir.BlockDefinition, listEnd, error) {
	f := fields{r: b.r}
	attrs := readAttributes(&f, b.version)
	number := f.u32()
	referenced := f.u32() != 0
	timestamp := f.u32()
	name := f.cstring()
	if f.err != nil {
		return nil, endNormal, f.err
	}

	def := ir.NewBlockDefinition(number, name)
	def.Attrs = attrs
	def.Referenced = referenced
	def.Timestamp = timestamp

	count, err := b.readCount()
	if err != nil {
		return nil, endNormal, err
	}
	entities, end, err := b.readList(count, parser.StopCount, def.Name)
	if err != nil {
		return nil, endNormal, err
	}
	def.Entities = entities
	return def, end, nil
}

// resolveInserts links every block insert to its definition by number. This
// runs after the whole body is read, so inserts may precede their definition.
func resolveInserts(doc *ir.Document, diags *diag.List) {
	byNumber := make(map[uint32]*ir.BlockDefinition, len(doc.Blocks))
	for _, def := range doc.Blocks {
		if _, dup := byNumber[def.Number]; !dup {
			byNumber[def.Number] = def
		}
	}

	resolve := func(entities []ir.Entity, seq string) {
		for i := range entities {
			if entities[i].Kind != ir.KindInsert {
				continue
			}
			ins := entities[i].Insert
			if def, ok := byNumber[ins.DefNumber]; ok {
				ins.Name = def.Name
				ins.Resolved = true
				continue
			}
			ins.Name = ir.FallbackBlockName(ins.DefNumber)
			ins.Resolved = false
			diags.Add(diag.KindUnresolvedBlockReference, diag.NoOffset, i,
				"%sblock definition %d not found", seqPrefix(seq), ins.DefNumber)
		}
	}

	resolve(doc.Entities, "")
	for _, def := range doc.Blocks {
		resolve(def.Entities, def.Name)
	}
}
