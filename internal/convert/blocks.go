package convert

import (
	"github.com/roboco-io/jww2dxf/internal/dxf"
	"github.com/roboco-io/jww2dxf/internal/ir"
)

// blockEdge identifies an insert entity inside a block definition.
type blockEdge struct {
	block string
	index int
}

// blocks writes every definition once, followed by an empty placeholder
// for each referenced name that has no definition.
func (c *Converter) blocks(out *dxf.Document) {
	cycles := c.cycleEdges()
	defined := make(map[string]bool, len(c.doc.Blocks))

	for _, b := range c.doc.Blocks {
		if defined[b.Name] {
			c.lossy("duplicate block %q (number %d) omitted", b.Name, b.Number)
			continue
		}
		defined[b.Name] = true

		blk := dxf.Block{Name: b.Name, Entities: make([]dxf.Entity, 0, len(b.Entities))}
		for i := range b.Entities {
			c.index = i
			if cycles[blockEdge{b.Name, i}] {
				c.lossy("insert of %q in block %q closes a reference cycle, omitted",
					insertName(b.Entities[i].Insert), b.Name)
				continue
			}
			blk.Entities = append(blk.Entities, c.entity(&b.Entities[i])...)
		}
		out.AddBlock(blk)
	}
	c.index = -1

	for _, name := range c.referencedBlocks() {
		if !defined[name] {
			defined[name] = true
			out.AddBlock(dxf.Block{Name: name, Entities: make([]dxf.Entity, 0)})
		}
	}
}

// referencedBlocks returns the block names used by inserts, in order of
// first use.
func (c *Converter) referencedBlocks() []string {
	var names []string
	seen := make(map[string]bool)
	collect := func(es []ir.Entity) {
		for i := range es {
			if es[i].Kind != ir.KindInsert {
				continue
			}
			if name := insertName(es[i].Insert); !seen[name] {
				seen[name] = true
				names = append(names, name)
			}
		}
	}
	collect(c.doc.Entities)
	for _, b := range c.doc.Blocks {
		collect(b.Entities)
	}
	return names
}

// cycleEdges finds the inserts that close a cycle in the block reference
// graph, using an iterative depth-first search.
func (c *Converter) cycleEdges() map[blockEdge]bool {
	defs := make(map[string]*ir.BlockDefinition, len(c.doc.Blocks))
	for _, b := range c.doc.Blocks {
		if _, ok := defs[b.Name]; !ok {
			defs[b.Name] = b
		}
	}

	const (
		unvisited = iota
		active
		done
	)
	state := make(map[string]int, len(defs))
	back := make(map[blockEdge]bool)

	type frame struct {
		def  *ir.BlockDefinition
		next int
	}

	for _, root := range c.doc.Blocks {
		if state[root.Name] != unvisited {
			continue
		}
		state[root.Name] = active
		stack := []frame{{def: defs[root.Name]}}

		for len(stack) > 0 {
			top := &stack[len(stack)-1]
			if top.next >= len(top.def.Entities) {
				state[top.def.Name] = done
				stack = stack[:len(stack)-1]
				continue
			}
			i := top.next
			top.next++

			e := &top.def.Entities[i]
			if e.Kind != ir.KindInsert {
				continue
			}
			target := insertName(e.Insert)
			child, ok := defs[target]
			if !ok {
				continue
			}
			switch state[target] {
			case active:
				back[blockEdge{top.def.Name, i}] = true
			case unvisited:
				state[target] = active
				stack = append(stack, frame{def: child})
			}
		}
	}
	return back
}

func insertName(b *ir.BlockInsert) string {
	if b.Name == "" {
		return ir.FallbackBlockName(b.DefNumber)
	}
	return b.Name
}
