// Package encoding implements the custom-id wire format.
//
// A plain custom id is the definition tag followed by one token per
// custom-id field, joined on Sep:
//
//	<tag> SEP <token_0> SEP <token_1> ... SEP <token_n>
//
// Collection tokens join their elements on SubSep. Both separators are
// non-printing control characters chosen to stay clear of anything the
// transport layer reserves; tokens must never contain either.
//
// Sealed (opaque) custom ids are produced by Sealer and carry a distinct
// one-byte prefix so dispatch can route them without guessing.
//
// Every custom id, plain or sealed, is bounded by MaxLen. Encoding fails
// rather than truncates.
package encoding

import (
	"errors"
	"fmt"
	"strings"
)

const (
	// Sep separates the definition tag and field tokens in a plain custom id.
	Sep = '\x1f'
	// SubSep separates elements inside a single collection token.
	SubSep = '\x1e'
	// SealedPrefix marks a sealed (opaque) custom id.
	SealedPrefix = '!'
	// MaxLen is the hard bound the platform places on a custom id.
	MaxLen = 100
)

var (
	// ErrTooLong reports a custom id that would exceed MaxLen.
	ErrTooLong = errors.New("encoding: custom id exceeds length bound")
	// ErrSeparatorCollision reports a tag or token containing a reserved separator.
	ErrSeparatorCollision = errors.New("encoding: reserved separator in tag or token")
	// ErrNotSealed reports an id without the sealed prefix passed to Unseal.
	ErrNotSealed = errors.New("encoding: custom id is not sealed")
	// ErrMalformedSealed reports a sealed id that cannot be opened.
	ErrMalformedSealed = errors.New("encoding: malformed sealed custom id")
	// ErrBadSignature reports a sealed id whose signature does not verify.
	ErrBadSignature = errors.New("encoding: sealed custom id signature mismatch")
)

// Join assembles a plain custom id from a tag and ordered field tokens.
// It fails if the tag or any token contains Sep, or if the result would
// exceed MaxLen.
func Join(tag string, tokens []string) (string, error) {
	if strings.ContainsRune(tag, Sep) {
		return "", fmt.Errorf("tag %q: %w", tag, ErrSeparatorCollision)
	}
	total := len(tag)
	for _, tok := range tokens {
		if strings.ContainsRune(tok, Sep) {
			return "", fmt.Errorf("token %q: %w", tok, ErrSeparatorCollision)
		}
		total += 1 + len(tok)
	}
	if total > MaxLen {
		return "", fmt.Errorf("%w: %d > %d", ErrTooLong, total, MaxLen)
	}

	var b strings.Builder
	b.Grow(total)
	b.WriteString(tag)
	for _, tok := range tokens {
		b.WriteRune(Sep)
		b.WriteString(tok)
	}
	return b.String(), nil
}

// Split separates a plain custom id into its tag and field tokens. A string
// containing no separator is a bare tag with zero tokens. Split never fails;
// whether the token count fits any definition is the caller's concern.
func Split(s string) (tag string, tokens []string) {
	parts := strings.Split(s, string(Sep))
	return parts[0], parts[1:]
}

// IsSealed reports whether the custom id carries the sealed prefix.
func IsSealed(s string) bool {
	return len(s) > 0 && s[0] == SealedPrefix
}
