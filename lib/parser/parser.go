// Package parser converts native Go values to and from custom-id tokens.
//
// Parsers are pure, bidirectional and composable: Loads(Dumps(v)) == v for
// every value v valid for the parser's type. A token never contains the
// reserved custom-id separators; parsers reject values that would produce
// one rather than escaping, since escaping spends characters against the
// custom-id length bound.
package parser

import "fmt"

// Parser converts between a native value and its custom-id token.
//
// Dumps must be total for all valid values of the declared type and must
// never produce a token containing a reserved separator. Loads fails with
// *Error when the token is not a valid representation for the type.
type Parser interface {
	Dumps(v any) (string, error)
	Loads(s string) (any, error)
}

// Error reports a single token that could not be converted to or from its
// declared type.
type Error struct {
	Parser string // parser name, e.g. "int"
	Token  string // offending token (Loads) or rejected value rendering (Dumps)
	Err    error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("parser: %s: bad token %q: %v", e.Parser, e.Token, e.Err)
	}
	return fmt.Sprintf("parser: %s: bad token %q", e.Parser, e.Token)
}

func (e *Error) Unwrap() error { return e.Err }

func dumpsErr(name string, v any, format string, args ...any) error {
	return &Error{
		Parser: name,
		Token:  fmt.Sprint(v),
		Err:    fmt.Errorf(format, args...),
	}
}

func loadsErr(name, token string, err error) error {
	return &Error{Parser: name, Token: token, Err: err}
}
