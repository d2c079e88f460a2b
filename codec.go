package msgcmp

import (
	"fmt"

	"github.com/pthm/msgcmp/lib/encoding"
)

// codec turns one definition's ordered field values into a custom id and
// back. It is built at registration time with every parser already bound,
// so the decode path does no type inspection.
type codec struct {
	tag      string
	idFields []*Field // custom-id fields in declaration order
	internal []*Field
	sealer   *encoding.Sealer // non-nil for opaque definitions
}

func newCodec(tag string, fields []*Field, sealer *encoding.Sealer) *codec {
	c := &codec{tag: tag, sealer: sealer}
	for _, f := range fields {
		if f.kind == KindCustomID {
			c.idFields = append(c.idFields, f)
		} else {
			c.internal = append(c.internal, f)
		}
	}
	return c
}

// encode produces the custom id for a value set. Fields without a supplied
// value fall back to their default; fields with neither fail.
func (c *codec) encode(vals *Values) (string, error) {
	if vals == nil {
		vals = NewValues()
	}
	tokens := make([]string, len(c.idFields))
	for i, f := range c.idFields {
		val, present := vals.lookup(f.name)
		if !present {
			if !f.hasDefault {
				return "", &EncodeError{Tag: c.tag, Field: f.name, Err: ErrMissingValue}
			}
			val = f.def
		}
		tok, err := f.parser.Dumps(val)
		if err != nil {
			return "", &EncodeError{Tag: c.tag, Field: f.name, Err: err}
		}
		tokens[i] = tok
	}

	var id string
	var err error
	if c.sealer != nil {
		id, err = c.sealer.Seal(c.tag, tokens)
	} else {
		id, err = encoding.Join(c.tag, tokens)
	}
	if err != nil {
		return "", &EncodeError{Tag: c.tag, Err: err}
	}
	return id, nil
}

// decode converts the split tokens back into a value set. Internal fields
// are seeded with their defaults so the factory sees the full schema.
func (c *codec) decode(tokens []string) (*Values, error) {
	if len(tokens) != len(c.idFields) {
		return nil, &DecodeError{
			Tag: c.tag,
			Err: fmt.Errorf("got %d tokens, definition has %d custom-id fields", len(tokens), len(c.idFields)),
		}
	}

	vals := NewValues()
	for _, f := range c.internal {
		vals.Set(f.name, f.def)
	}
	for i, f := range c.idFields {
		val, err := f.parser.Loads(tokens[i])
		if err != nil {
			return nil, &DecodeError{Tag: c.tag, Field: f.name, Err: err}
		}
		vals.Set(f.name, val)
	}
	return vals, nil
}
