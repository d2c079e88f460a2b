package msgcmp

import "time"

// Values holds field values keyed by field name: the decoded state handed
// to a factory, or the state to encode into a custom id. The zero value is
// usable.
//
// Typed getters return the zero value for missing or mismatched entries;
// use Has to distinguish an absent optional from a zero value.
type Values struct {
	vals map[string]any
}

// NewValues creates an empty value set.
func NewValues() *Values { return &Values{} }

// Set stores a value and returns the set for chaining.
func (v *Values) Set(name string, val any) *Values {
	if v.vals == nil {
		v.vals = make(map[string]any)
	}
	v.vals[name] = val
	return v
}

// Has reports whether a non-nil value is present for the field. Absent
// optionals decode to nil and report false.
func (v *Values) Has(name string) bool {
	if v.vals == nil {
		return false
	}
	val, ok := v.vals[name]
	return ok && val != nil
}

// lookup returns the raw value and whether the key is present at all,
// so encoding can tell an explicit nil (absent optional) from a field the
// caller never supplied.
func (v *Values) lookup(name string) (any, bool) {
	if v.vals == nil {
		return nil, false
	}
	val, ok := v.vals[name]
	return val, ok
}

// Any returns the raw value for the field, or nil.
func (v *Values) Any(name string) any {
	if v.vals == nil {
		return nil
	}
	return v.vals[name]
}

// Len returns the number of stored values.
func (v *Values) Len() int { return len(v.vals) }

// Clone returns an independent copy of the value set.
func (v *Values) Clone() *Values {
	c := NewValues()
	for name, val := range v.vals {
		c.Set(name, val)
	}
	return c
}

// Int returns the field as an int64.
func (v *Values) Int(name string) int64 {
	switch n := v.Any(name).(type) {
	case int64:
		return n
	case int:
		return int64(n)
	default:
		return 0
	}
}

// Uint returns the field as a uint64.
func (v *Values) Uint(name string) uint64 {
	switch n := v.Any(name).(type) {
	case uint64:
		return n
	case uint:
		return uint64(n)
	default:
		return 0
	}
}

// Snowflake returns the field as a platform entity id.
func (v *Values) Snowflake(name string) uint64 { return v.Uint(name) }

// Float returns the field as a float64.
func (v *Values) Float(name string) float64 {
	switch f := v.Any(name).(type) {
	case float64:
		return f
	case float32:
		return float64(f)
	default:
		return 0
	}
}

// Bool returns the field as a bool.
func (v *Values) Bool(name string) bool {
	b, _ := v.Any(name).(bool)
	return b
}

// String returns the field as a string.
func (v *Values) String(name string) string {
	s, _ := v.Any(name).(string)
	return s
}

// Time returns the field as a time.Time.
func (v *Values) Time(name string) time.Time {
	t, _ := v.Any(name).(time.Time)
	return t
}

// List returns the field as a []any.
func (v *Values) List(name string) []any {
	l, _ := v.Any(name).([]any)
	return l
}
