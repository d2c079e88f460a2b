package msgcmp

import (
	"errors"
	"fmt"
)

// Sentinel errors for component operations.
var (
	ErrDuplicateTag  = errors.New("msgcmp: duplicate definition tag")
	ErrMissingValue  = errors.New("msgcmp: missing required field value")
	ErrNotRegistered = errors.New("msgcmp: definition is not registered")
	ErrNoSealingKey  = errors.New("msgcmp: no sealing key configured")
)

// EncodeError reports a value set that could not be serialized into a
// custom id: a required value was missing, a token collided with a reserved
// separator, or the result would exceed the length bound.
type EncodeError struct {
	Tag   string
	Field string // empty when the failure is not tied to one field
	Err   error
}

func (e *EncodeError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("msgcmp: encode %q field %q: %v", e.Tag, e.Field, e.Err)
	}
	return fmt.Sprintf("msgcmp: encode %q: %v", e.Tag, e.Err)
}

func (e *EncodeError) Unwrap() error { return e.Err }

// DecodeError reports a custom id that matched a definition's tag but is
// malformed for it: wrong token count, or a token its field's parser
// rejects. Decode failures are treated as unknown/invalid input and are
// never escalated to error handlers.
type DecodeError struct {
	Tag   string
	Field string
	Err   error
}

func (e *DecodeError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("msgcmp: decode %q field %q: %v", e.Tag, e.Field, e.Err)
	}
	return fmt.Sprintf("msgcmp: decode %q: %v", e.Tag, e.Err)
}

func (e *DecodeError) Unwrap() error { return e.Err }

// ConversionError reports tokens that decoded fine but failed semantic
// reconstruction, e.g. a decoded id no longer refers to a live entity.
// Unlike DecodeError an owning entry is known, so conversion failures are
// escalated through its manager's error-handler chain.
type ConversionError struct {
	Tag string
	Err error
}

func (e *ConversionError) Error() string {
	return fmt.Sprintf("msgcmp: reconstruct %q: %v", e.Tag, e.Err)
}

func (e *ConversionError) Unwrap() error { return e.Err }

// RegistrationError reports a definition rejected at registration time.
// Registration failures are always fatal to the Register call, never
// deferred to dispatch.
type RegistrationError struct {
	Tag string
	Err error
}

func (e *RegistrationError) Error() string {
	return fmt.Sprintf("msgcmp: register %q: %v", e.Tag, e.Err)
}

func (e *RegistrationError) Unwrap() error { return e.Err }

// UnknownComponentError reports a well-formed custom id whose tag matches
// no registered definition. No manager owns it, so it is surfaced as a
// top-level diagnostic rather than routed through any handler chain.
type UnknownComponentError struct {
	Tag string
}

func (e *UnknownComponentError) Error() string {
	return fmt.Sprintf("msgcmp: no component registered for tag %q", e.Tag)
}

// IsDecodeError checks if err is a DecodeError.
func IsDecodeError(err error) bool {
	var de *DecodeError
	return errors.As(err, &de)
}

// IsConversionError checks if err is a ConversionError.
func IsConversionError(err error) bool {
	var ce *ConversionError
	return errors.As(err, &ce)
}

// IsRegistrationError checks if err is a RegistrationError.
func IsRegistrationError(err error) bool {
	var re *RegistrationError
	return errors.As(err, &re)
}

// IsUnknownComponent checks if err is an UnknownComponentError.
func IsUnknownComponent(err error) bool {
	var ue *UnknownComponentError
	return errors.As(err, &ue)
}
