package diag

import "fmt"

// Diagnostic is a non-fatal record of a decode or conversion issue.
type Diagnostic struct {
	Kind    Kind   `json:"kind" yaml:"kind" msgpack:"kind"`
	Offset  int64  `json:"offset" yaml:"offset" msgpack:"offset"`
	Entity  int    `json:"entity" yaml:"entity" msgpack:"entity"` // index within its sequence, -1 if not entity-bound
	Message string `json:"message" yaml:"message" msgpack:"message"`
}

func (d Diagnostic) String() string {
	s := d.Kind.String()
	if d.Offset != NoOffset {
		s += fmt.Sprintf(" @%d", d.Offset)
	}
	if d.Entity >= 0 {
		s += fmt.Sprintf(" [entity %d]", d.Entity)
	}
	return s + ": " + d.Message
}

// List is an ordered collection of diagnostics.
type List []Diagnostic

// Add appends a diagnostic.
func (l *List) Add(kind Kind, offset int64, entity int, format string, args ...any) {
	*l = append(*l, Diagnostic{
		Kind:    kind,
		Offset:  offset,
		Entity:  entity,
		Message: fmt.Sprintf(format, args...),
	})
}

// AddError records a fatal-shaped error as a diagnostic.
func (l *List) AddError(err error, entity int) {
	kind := KindOf(err)
	if kind == 0 {
		kind = KindUnexpectedEOF
	}
	*l = append(*l, Diagnostic{
		Kind:    kind,
		Offset:  OffsetOf(err),
		Entity:  entity,
		Message: err.Error(),
	})
}

// Count returns the number of diagnostics of the given kind.
func (l List) Count(kind Kind) int {
	n := 0
	for _, d := range l {
		if d.Kind == kind {
			n++
		}
	}
	return n
}

// Has reports whether any diagnostic of the given kind was recorded.
func (l List) Has(kind Kind) bool {
	return l.Count(kind) > 0
}
