package parser

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/pthm/msgcmp/lib/encoding"
)

// Int returns a signed integer parser using decimal tokens.
// Values round-trip as int64.
func Int() Parser { return intParser{base: 10} }

// IntBase returns a signed integer parser using the given base (2–36).
// Smaller bases cost more characters; larger bases save them.
func IntBase(base int) Parser {
	if base < 2 || base > 36 {
		panic(fmt.Sprintf("parser: IntBase: base %d out of range [2, 36]", base))
	}
	return intParser{base: base}
}

type intParser struct{ base int }

func (p intParser) Dumps(v any) (string, error) {
	n, ok := toInt64(v)
	if !ok {
		return "", dumpsErr("int", v, "value of type %T is not an integer", v)
	}
	return strconv.FormatInt(n, p.base), nil
}

func (p intParser) Loads(s string) (any, error) {
	n, err := strconv.ParseInt(s, p.base, 64)
	if err != nil {
		return nil, loadsErr("int", s, err)
	}
	return n, nil
}

// Uint returns an unsigned integer parser using decimal tokens.
// Values round-trip as uint64.
func Uint() Parser { return uintParser{} }

type uintParser struct{}

func (uintParser) Dumps(v any) (string, error) {
	n, ok := toUint64(v)
	if !ok {
		return "", dumpsErr("uint", v, "value of type %T is not an unsigned integer", v)
	}
	return strconv.FormatUint(n, 10), nil
}

func (uintParser) Loads(s string) (any, error) {
	n, err := strconv.ParseUint(s, 10, 64)
	if err != nil {
		return nil, loadsErr("uint", s, err)
	}
	return n, nil
}

// Float returns a float parser. Tokens use the shortest representation that
// round-trips, so whole floats dump without a trailing ".0".
func Float() Parser { return floatParser{} }

type floatParser struct{}

func (floatParser) Dumps(v any) (string, error) {
	f, ok := toFloat64(v)
	if !ok {
		return "", dumpsErr("float", v, "value of type %T is not a float", v)
	}
	return strconv.FormatFloat(f, 'g', -1, 64), nil
}

func (floatParser) Loads(s string) (any, error) {
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return nil, loadsErr("float", s, err)
	}
	return f, nil
}

// Bool returns a boolean parser. Dumps produces "1"/"0" to spend a single
// character; Loads additionally accepts "true"/"false" spellings.
func Bool() Parser { return boolParser{} }

type boolParser struct{}

func (boolParser) Dumps(v any) (string, error) {
	b, ok := v.(bool)
	if !ok {
		return "", dumpsErr("bool", v, "value of type %T is not a bool", v)
	}
	if b {
		return "1", nil
	}
	return "0", nil
}

func (boolParser) Loads(s string) (any, error) {
	switch s {
	case "1", "true", "True":
		return true, nil
	case "0", "false", "False":
		return false, nil
	default:
		return nil, loadsErr("bool", s, fmt.Errorf("not a boolean token"))
	}
}

// String returns an identity parser for text. Dumps rejects values
// containing a reserved separator rather than escaping them.
func String() Parser { return stringParser{} }

type stringParser struct{}

func (stringParser) Dumps(v any) (string, error) {
	s, ok := v.(string)
	if !ok {
		return "", dumpsErr("string", v, "value of type %T is not a string", v)
	}
	if strings.ContainsRune(s, encoding.Sep) || strings.ContainsRune(s, encoding.SubSep) {
		return "", dumpsErr("string", s, "value contains a reserved separator")
	}
	return s, nil
}

func (stringParser) Loads(s string) (any, error) { return s, nil }

func toInt64(v any) (int64, bool) {
	switch n := v.(type) {
	case int64:
		return n, true
	case int:
		return int64(n), true
	case int32:
		return int64(n), true
	case int16:
		return int64(n), true
	case int8:
		return int64(n), true
	default:
		return 0, false
	}
}

func toUint64(v any) (uint64, bool) {
	switch n := v.(type) {
	case uint64:
		return n, true
	case uint:
		return uint64(n), true
	case uint32:
		return uint64(n), true
	case uint16:
		return uint64(n), true
	case uint8:
		return uint64(n), true
	default:
		return 0, false
	}
}

func toFloat64(v any) (float64, bool) {
	switch f := v.(type) {
	case float64:
		return f, true
	case float32:
		return float64(f), true
	default:
		return 0, false
	}
}
