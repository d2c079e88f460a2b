package parser

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRoundTrip(t *testing.T) {
	tests := []struct {
		name   string
		parser Parser
		value  any
		token  string
	}{
		{"int zero", Int(), int64(0), "0"},
		{"int positive", Int(), int64(42), "42"},
		{"int negative", Int(), int64(-7), "-7"},
		{"int base36", IntBase(36), int64(1295), "zz"},
		{"uint", Uint(), uint64(18446744073709551615), "18446744073709551615"},
		{"float whole", Float(), float64(5), "5"},
		{"float fraction", Float(), 2.5, "2.5"},
		{"bool true", Bool(), true, "1"},
		{"bool false", Bool(), false, "0"},
		{"string", String(), "hello world", "hello world"},
		{"string empty", String(), "", ""},
		{"enum first", Enum("red", "green", "blue"), "red", "0"},
		{"enum last", Enum("red", "green", "blue"), "blue", "2"},
		{"time", Time(), time.Unix(1700000000, 0).UTC(), "1700000000"},
		{"snowflake", Snowflake(), uint64(1234567890123456789), "1234567890123456789"},
		{"optional present", Optional(Int()), int64(3), "3"},
		{"optional absent", Optional(Int()), nil, ""},
		{"list empty", List(Int()), []any{}, ""},
		{"list ints", List(Int()), []any{int64(1), int64(2), int64(3)}, "1\x1e2\x1e3"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			token, err := tt.parser.Dumps(tt.value)
			require.NoError(t, err)
			assert.Equal(t, tt.token, token)

			back, err := tt.parser.Loads(token)
			require.NoError(t, err)
			assert.Equal(t, tt.value, back)
		})
	}
}

func TestLoadsRejectsBadTokens(t *testing.T) {
	tests := []struct {
		name   string
		parser Parser
		token  string
	}{
		{"int text", Int(), "abc"},
		{"int empty", Int(), ""},
		{"uint negative", Uint(), "-1"},
		{"float text", Float(), "1.2.3"},
		{"bool text", Bool(), "yes"},
		{"enum non-numeric", Enum("a", "b"), "b"},
		{"enum out of range", Enum("a", "b"), "2"},
		{"enum negative", Enum("a", "b"), "-1"},
		{"time text", Time(), "noon"},
		{"snowflake text", Snowflake(), "guild"},
		{"optional bad inner", Optional(Int()), "x"},
		{"list bad element", List(Int()), "1\x1etwo"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := tt.parser.Loads(tt.token)
			require.Error(t, err)

			var perr *Error
			require.ErrorAs(t, err, &perr)
			assert.Equal(t, tt.token, perr.Token)
		})
	}
}

func TestDumpsRejectsWrongTypes(t *testing.T) {
	tests := []struct {
		name   string
		parser Parser
		value  any
	}{
		{"int from string", Int(), "5"},
		{"uint from signed", Uint(), int64(5)},
		{"bool from int", Bool(), 1},
		{"string from int", String(), 5},
		{"enum non-member", Enum("a", "b"), "c"},
		{"time from int", Time(), int64(0)},
		{"list from slice of string", List(String()), []string{"a"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := tt.parser.Dumps(tt.value)
			require.Error(t, err)
		})
	}
}

func TestStringRejectsSeparators(t *testing.T) {
	for _, s := range []string{"a\x1fb", "a\x1eb"} {
		_, err := String().Dumps(s)
		require.Error(t, err, "separator in %q must be rejected, not escaped", s)
	}
}

func TestOptionalNeverForwardsEmptyToken(t *testing.T) {
	// The inner parser would reject "", so a nil result proves it was
	// never consulted.
	v, err := Optional(Int()).Loads("")
	require.NoError(t, err)
	assert.Nil(t, v)
}

func TestOptionalRejectsAmbiguousEmptyDump(t *testing.T) {
	// A present empty string would dump to the token reserved for absence.
	_, err := Optional(String()).Dumps("")
	require.Error(t, err)
}

func TestListRejectsEmptyElementTokens(t *testing.T) {
	_, err := List(String()).Dumps([]any{"a", ""})
	require.Error(t, err)
}

func TestIntBasePanicsOutOfRange(t *testing.T) {
	assert.Panics(t, func() { IntBase(1) })
	assert.Panics(t, func() { IntBase(37) })
}

func TestEnumPanicsOnBadMembers(t *testing.T) {
	assert.Panics(t, func() { Enum() })
	assert.Panics(t, func() { Enum("a", "a") })
}
