package msgcmp

import (
	"context"
	"errors"
)

// Definition[C] binds a definition tag and field schema to a reconstruction
// factory and callback for component type C.
//
// Definitions are built fluently and then installed on a manager with
// Register, which validates the schema and claims the tag tree-wide:
//
//	def := msgcmp.Define[*CountButton]("count_button").
//	    Fields(msgcmp.ID("n", parser.Int()).Default(int64(0))).
//	    Factory(newCountButton).
//	    State((*CountButton).state).
//	    Callback((*CountButton).onPress)
//	err := msgcmp.Register(mgr, def)
type Definition[C any] struct {
	tag      string
	fields   []*Field
	factory  func(ctx context.Context, vals *Values) (C, error)
	state    func(c C) (*Values, error)
	callback func(ctx context.Context, ev *Event, c C) error
	opaque   bool

	codec *codec // bound at registration
	owner *Manager
}

// Define starts a definition for component type C under the given tag.
// The tag uniquely identifies the definition across the whole manager tree.
func Define[C any](tag string) *Definition[C] {
	return &Definition[C]{tag: tag}
}

// Fields declares the definition's fields. Declaration order is encoding
// order for custom-id fields.
func (d *Definition[C]) Fields(fields ...*Field) *Definition[C] {
	d.fields = append(d.fields, fields...)
	return d
}

// Factory sets the reconstruction factory: decoded values in, live
// component instance out. Semantic validation failures (a decoded id that
// no longer resolves, say) should be returned here; they surface as
// ConversionError and are escalated through the error-handler chain.
func (d *Definition[C]) Factory(fn func(ctx context.Context, vals *Values) (C, error)) *Definition[C] {
	d.factory = fn
	return d
}

// State sets the extractor used to re-encode a custom id from a live
// instance. Optional; without it only Encode with explicit values works.
func (d *Definition[C]) State(fn func(c C) (*Values, error)) *Definition[C] {
	d.state = fn
	return d
}

// Callback sets the handler invoked when a custom id for this definition is
// dispatched.
func (d *Definition[C]) Callback(fn func(ctx context.Context, ev *Event, c C) error) *Definition[C] {
	d.callback = fn
	return d
}

// Opaque makes the definition's custom ids sealed: tamper-proof and
// shape-opaque to the remote party. Requires a sealing key on the root
// manager (WithSealingKey).
func (d *Definition[C]) Opaque() *Definition[C] {
	d.opaque = true
	return d
}

// Tag returns the definition's tag.
func (d *Definition[C]) Tag() string { return d.tag }

// Manager returns the manager the definition is registered on, or nil.
func (d *Definition[C]) Manager() *Manager { return d.owner }

// Encode renders the custom id for an explicit value set. The definition
// must be registered first; parsers and the sealing mode are bound then.
func (d *Definition[C]) Encode(vals *Values) (string, error) {
	if d.codec == nil {
		return "", &EncodeError{Tag: d.tag, Err: ErrNotRegistered}
	}
	return d.codec.encode(vals)
}

// CustomID renders the custom id for a live component instance using the
// definition's state extractor.
func (d *Definition[C]) CustomID(c C) (string, error) {
	if d.state == nil {
		return "", &EncodeError{Tag: d.tag, Err: errors.New("definition has no state extractor")}
	}
	vals, err := d.state(c)
	if err != nil {
		return "", &EncodeError{Tag: d.tag, Err: err}
	}
	return d.Encode(vals)
}
