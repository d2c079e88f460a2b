package encoding

import (
	"github.com/fxamacker/cbor/v2"
	"github.com/vmihailenco/msgpack/v5"
)

// Marshaler serializes the payload of a sealed custom id. Implementations
// must be deterministic for a given input.
type Marshaler interface {
	Name() string
	Marshal(v any) ([]byte, error)
	Unmarshal(data []byte, v any) error
}

// Msgpack returns the default sealed-payload marshaler.
func Msgpack() Marshaler { return msgpackMarshaler{} }

// CBOR returns a CBOR sealed-payload marshaler.
func CBOR() Marshaler { return cborMarshaler{} }

type msgpackMarshaler struct{}

func (msgpackMarshaler) Name() string { return "msgpack" }

func (msgpackMarshaler) Marshal(v any) ([]byte, error) { return msgpack.Marshal(v) }

func (msgpackMarshaler) Unmarshal(data []byte, v any) error { return msgpack.Unmarshal(data, v) }

type cborMarshaler struct{}

func (cborMarshaler) Name() string { return "cbor" }

func (cborMarshaler) Marshal(v any) ([]byte, error) { return cbor.Marshal(v) }

func (cborMarshaler) Unmarshal(data []byte, v any) error { return cbor.Unmarshal(data, v) }
