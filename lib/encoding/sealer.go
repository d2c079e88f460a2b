package encoding

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"fmt"
	"strings"
)

// sigLen is the truncated HMAC length carried in a sealed id. 16 bytes
// (128 bits) keeps forgery infeasible while leaving payload headroom
// inside MaxLen.
const sigLen = 16

// Sealer produces and opens sealed (opaque) custom ids.
//
// A sealed id is the marshaled [tag, token_0, ..., token_n] payload,
// base64url-encoded, followed by a truncated HMAC-SHA256 signature:
//
//	'!' <base64(payload)> '.' <base64(signature)>
//
// Sealing makes the id tamper-proof and shape-opaque at the cost of length
// headroom; the MaxLen bound still applies to the sealed form.
type Sealer struct {
	key []byte
	m   Marshaler
}

// NewSealer creates a sealer from a signing key. Keys shorter than 32 bytes
// are stretched through SHA-256. A nil marshaler selects Msgpack.
func NewSealer(key []byte, m Marshaler) *Sealer {
	if len(key) < sha256.Size {
		h := sha256.Sum256(key)
		key = h[:]
	}
	if m == nil {
		m = Msgpack()
	}
	return &Sealer{key: key, m: m}
}

// Seal encodes a tag and its ordered field tokens into a sealed custom id.
func (s *Sealer) Seal(tag string, tokens []string) (string, error) {
	payload := make([]string, 0, len(tokens)+1)
	payload = append(payload, tag)
	payload = append(payload, tokens...)

	data, err := s.m.Marshal(payload)
	if err != nil {
		return "", fmt.Errorf("encoding: seal %s: %w", s.m.Name(), err)
	}

	mac := hmac.New(sha256.New, s.key)
	mac.Write(data)

	out := string(SealedPrefix) +
		base64.RawURLEncoding.EncodeToString(data) +
		"." +
		base64.RawURLEncoding.EncodeToString(mac.Sum(nil)[:sigLen])
	if len(out) > MaxLen {
		return "", fmt.Errorf("%w: %d > %d", ErrTooLong, len(out), MaxLen)
	}
	return out, nil
}

// Unseal verifies and decodes a sealed custom id back into its tag and
// ordered field tokens.
func (s *Sealer) Unseal(id string) (tag string, tokens []string, err error) {
	if !IsSealed(id) {
		return "", nil, ErrNotSealed
	}

	body, sig, ok := strings.Cut(id[1:], ".")
	if !ok {
		return "", nil, fmt.Errorf("%w: missing signature", ErrMalformedSealed)
	}

	data, err := base64.RawURLEncoding.DecodeString(body)
	if err != nil {
		return "", nil, fmt.Errorf("%w: %v", ErrMalformedSealed, err)
	}
	want, err := base64.RawURLEncoding.DecodeString(sig)
	if err != nil {
		return "", nil, fmt.Errorf("%w: %v", ErrMalformedSealed, err)
	}

	mac := hmac.New(sha256.New, s.key)
	mac.Write(data)
	if !hmac.Equal(want, mac.Sum(nil)[:sigLen]) {
		return "", nil, ErrBadSignature
	}

	var payload []string
	if err := s.m.Unmarshal(data, &payload); err != nil {
		return "", nil, fmt.Errorf("%w: %v", ErrMalformedSealed, err)
	}
	if len(payload) == 0 {
		return "", nil, fmt.Errorf("%w: empty payload", ErrMalformedSealed)
	}
	return payload[0], payload[1:], nil
}
