package parser

import (
	"strconv"
	"time"
)

// Time returns a parser for instants at second resolution. Tokens carry UTC
// unix seconds in decimal; sub-second precision and zone information do not
// survive the round trip.
func Time() Parser { return timeParser{} }

type timeParser struct{}

func (timeParser) Dumps(v any) (string, error) {
	t, ok := v.(time.Time)
	if !ok {
		return "", dumpsErr("time", v, "value of type %T is not a time.Time", v)
	}
	return strconv.FormatInt(t.Unix(), 10), nil
}

func (timeParser) Loads(s string) (any, error) {
	sec, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return nil, loadsErr("time", s, err)
	}
	return time.Unix(sec, 0).UTC(), nil
}

// Snowflake returns a parser for platform entity ids. Tokens carry the
// uint64 id in decimal.
func Snowflake() Parser { return snowflakeParser{} }

type snowflakeParser struct{}

func (snowflakeParser) Dumps(v any) (string, error) {
	id, ok := toUint64(v)
	if !ok {
		return "", dumpsErr("snowflake", v, "value of type %T is not an unsigned id", v)
	}
	return strconv.FormatUint(id, 10), nil
}

func (snowflakeParser) Loads(s string) (any, error) {
	id, err := strconv.ParseUint(s, 10, 64)
	if err != nil {
		return nil, loadsErr("snowflake", s, err)
	}
	return id, nil
}
