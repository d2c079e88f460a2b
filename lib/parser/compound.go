package parser

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/pthm/msgcmp/lib/encoding"
)

// Enum returns a parser over a closed set of string members. Tokens carry
// the member's index in decimal, so renaming a member is wire-compatible
// while reordering is not.
func Enum(members ...string) Parser {
	if len(members) == 0 {
		panic("parser: Enum requires at least one member")
	}
	index := make(map[string]int, len(members))
	for i, m := range members {
		if _, dup := index[m]; dup {
			panic(fmt.Sprintf("parser: Enum: duplicate member %q", m))
		}
		index[m] = i
	}
	return enumParser{members: members, index: index}
}

type enumParser struct {
	members []string
	index   map[string]int
}

func (p enumParser) Dumps(v any) (string, error) {
	s, ok := v.(string)
	if !ok {
		return "", dumpsErr("enum", v, "value of type %T is not a string member", v)
	}
	i, ok := p.index[s]
	if !ok {
		return "", dumpsErr("enum", v, "not a member of %v", p.members)
	}
	return strconv.Itoa(i), nil
}

func (p enumParser) Loads(s string) (any, error) {
	i, err := strconv.Atoi(s)
	if err != nil {
		return nil, loadsErr("enum", s, err)
	}
	if i < 0 || i >= len(p.members) {
		return nil, loadsErr("enum", s, fmt.Errorf("tag %d out of range [0, %d)", i, len(p.members)))
	}
	return p.members[i], nil
}

// Optional wraps a parser so that the empty token denotes an absent value.
// Absent values are represented as untyped nil; loading the empty token
// never reaches the wrapped parser. Dumps rejects present values whose
// token would be empty, since those would be indistinguishable from absent.
func Optional(inner Parser) Parser { return optionalParser{inner: inner} }

type optionalParser struct{ inner Parser }

func (p optionalParser) Dumps(v any) (string, error) {
	if v == nil {
		return "", nil
	}
	tok, err := p.inner.Dumps(v)
	if err != nil {
		return "", err
	}
	if tok == "" {
		return "", dumpsErr("optional", v, "present value produced the empty token reserved for absence")
	}
	return tok, nil
}

func (p optionalParser) Loads(s string) (any, error) {
	if s == "" {
		return nil, nil
	}
	return p.inner.Loads(s)
}

// List wraps a parser for ordered collections. Element tokens are joined on
// the structural sub-separator; the empty token is the empty list. Elements
// whose token is empty or contains the sub-separator are rejected.
func List(inner Parser) Parser { return listParser{inner: inner} }

type listParser struct{ inner Parser }

func (p listParser) Dumps(v any) (string, error) {
	elems, ok := v.([]any)
	if !ok {
		return "", dumpsErr("list", v, "value of type %T is not a []any", v)
	}
	tokens := make([]string, len(elems))
	for i, e := range elems {
		tok, err := p.inner.Dumps(e)
		if err != nil {
			return "", err
		}
		if tok == "" {
			return "", dumpsErr("list", e, "element %d produced an empty token", i)
		}
		if strings.ContainsRune(tok, encoding.SubSep) {
			return "", dumpsErr("list", e, "element %d contains the sub-separator", i)
		}
		tokens[i] = tok
	}
	return strings.Join(tokens, string(encoding.SubSep)), nil
}

func (p listParser) Loads(s string) (any, error) {
	if s == "" {
		return []any{}, nil
	}
	tokens := strings.Split(s, string(encoding.SubSep))
	elems := make([]any, len(tokens))
	for i, tok := range tokens {
		e, err := p.inner.Loads(tok)
		if err != nil {
			return nil, err
		}
		elems[i] = e
	}
	return elems, nil
}
