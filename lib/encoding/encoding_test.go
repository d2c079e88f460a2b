package encoding

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestJoinSplitRoundTrip(t *testing.T) {
	tests := []struct {
		name   string
		tag    string
		tokens []string
		want   string
	}{
		{"no tokens", "refresh", nil, "refresh"},
		{"one token", "count_button", []string{"5"}, "count_button\x1f5"},
		{"several tokens", "poll", []string{"42", "", "yes"}, "poll\x1f42\x1f\x1fyes"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Join(tt.tag, tt.tokens)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)

			tag, tokens := Split(got)
			assert.Equal(t, tt.tag, tag)
			assert.Len(t, tokens, len(tt.tokens))
			for i, tok := range tt.tokens {
				assert.Equal(t, tok, tokens[i])
			}
		})
	}
}

func TestJoinLengthBound(t *testing.T) {
	// tag(3) + sep(1) + token(96) = 100: exactly at the bound.
	ok, err := Join("tag", []string{strings.Repeat("x", 96)})
	require.NoError(t, err)
	assert.Len(t, ok, MaxLen)

	// One more character fails; nothing is ever truncated.
	_, err = Join("tag", []string{strings.Repeat("x", 97)})
	require.ErrorIs(t, err, ErrTooLong)
}

func TestJoinRejectsSeparatorCollision(t *testing.T) {
	_, err := Join("bad\x1ftag", nil)
	require.ErrorIs(t, err, ErrSeparatorCollision)

	_, err = Join("tag", []string{"ok", "bad\x1ftoken"})
	require.ErrorIs(t, err, ErrSeparatorCollision)
}

func TestSplitBareTag(t *testing.T) {
	tag, tokens := Split("just_a_tag")
	assert.Equal(t, "just_a_tag", tag)
	assert.Empty(t, tokens)
}

func TestSealUnsealRoundTrip(t *testing.T) {
	for _, m := range []Marshaler{Msgpack(), CBOR()} {
		t.Run(m.Name(), func(t *testing.T) {
			s := NewSealer([]byte("test-key"), m)

			id, err := s.Seal("vote", []string{"17", "up"})
			require.NoError(t, err)
			assert.True(t, IsSealed(id))
			assert.LessOrEqual(t, len(id), MaxLen)

			tag, tokens, err := s.Unseal(id)
			require.NoError(t, err)
			assert.Equal(t, "vote", tag)
			assert.Equal(t, []string{"17", "up"}, tokens)
		})
	}
}

func TestSealLengthBound(t *testing.T) {
	s := NewSealer([]byte("test-key"), nil)
	_, err := s.Seal("vote", []string{strings.Repeat("x", 80)})
	require.ErrorIs(t, err, ErrTooLong)
}

func TestUnsealRejectsTampering(t *testing.T) {
	s := NewSealer([]byte("test-key"), nil)
	id, err := s.Seal("vote", []string{"17"})
	require.NoError(t, err)

	// Flip a payload character.
	body := []byte(id)
	if body[1] == 'A' {
		body[1] = 'B'
	} else {
		body[1] = 'A'
	}
	_, _, err = s.Unseal(string(body))
	require.ErrorIs(t, err, ErrBadSignature)
}

func TestUnsealRejectsWrongKey(t *testing.T) {
	a := NewSealer([]byte("key-a"), nil)
	b := NewSealer([]byte("key-b"), nil)

	id, err := a.Seal("vote", []string{"17"})
	require.NoError(t, err)

	_, _, err = b.Unseal(id)
	require.ErrorIs(t, err, ErrBadSignature)
}

func TestUnsealMalformed(t *testing.T) {
	s := NewSealer([]byte("test-key"), nil)

	_, _, err := s.Unseal("plain\x1fid")
	require.ErrorIs(t, err, ErrNotSealed)

	_, _, err = s.Unseal("!nosignature")
	require.ErrorIs(t, err, ErrMalformedSealed)

	_, _, err = s.Unseal("!%%%.%%%")
	require.ErrorIs(t, err, ErrMalformedSealed)
}
