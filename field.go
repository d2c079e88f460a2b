package msgcmp

import "github.com/pthm/msgcmp/lib/parser"

// FieldKind distinguishes custom-id fields from internal ones.
type FieldKind int

const (
	// KindCustomID marks a field serialized into the custom id.
	KindCustomID FieldKind = iota
	// KindInternal marks a field that only affects the rendered component
	// and is never encoded.
	KindInternal
)

// Field describes one named, typed slot on a component definition.
// Declaration order is fixed at definition time and is the order used for
// both encoding and decoding; the wire format is positional, not keyed.
type Field struct {
	name       string
	kind       FieldKind
	parser     parser.Parser
	def        any
	hasDefault bool
}

// ID declares a custom-id field. Its parser is bound here, at definition
// time, so no type inspection happens on the decode path.
func ID(name string, p parser.Parser) *Field {
	return &Field{name: name, kind: KindCustomID, parser: p}
}

// Internal declares an internal field with a default value. Internal fields
// are seeded into the decoded value set for the factory but never travel in
// the custom id.
func Internal(name string, def any) *Field {
	return &Field{name: name, kind: KindInternal, def: def, hasDefault: true}
}

// Default marks the field optional at construction time. Fields without a
// default must be supplied a value when encoding.
func (f *Field) Default(v any) *Field {
	f.def = v
	f.hasDefault = true
	return f
}

// Name returns the field's name.
func (f *Field) Name() string { return f.name }

// Kind returns the field's kind.
func (f *Field) Kind() FieldKind { return f.kind }

// DefaultValue returns the field's default and whether one is set.
func (f *Field) DefaultValue() (any, bool) { return f.def, f.hasDefault }
