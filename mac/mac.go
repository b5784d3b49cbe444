// SPDX-License-Identifier: GPL-3.0-or-later

// Package mac implements cryptokit's Mac dispatch trait: HMAC (over any
// digest.ShaFamily), standalone Poly1305, BLAKE2b/BLAKE2s keyed mode, and
// MAC.empty for unauthenticated ciphers.
//
// HMAC wraps stdlib crypto/hmac, the teacher's own choice for the Double
// Ratchet's ENCRYPT/DECRYPT functions in doubleratchet/primitives.go.
// Poly1305 wraps golang.org/x/crypto/poly1305 for standalone use outside of
// an AEAD composition.
package mac

import (
	"crypto/hmac"
	"fmt"

	"golang.org/x/crypto/poly1305"

	"github.com/coriolis-labs/cryptokit"
	"github.com/coriolis-labs/cryptokit/digest"
	"github.com/coriolis-labs/cryptokit/internal/byteutil"
	"github.com/coriolis-labs/cryptokit/secretkey"
)

// Hmac implements cryptokit.Mac over any of package digest's SHA family.
type Hmac struct {
	hash digest.ShaFamily
}

// NewHmac returns an HMAC MAC keyed with hash's compression function.
func NewHmac(hash digest.ShaFamily) *Hmac {
	return &Hmac{hash: hash}
}

func (h *Hmac) Algorithm() string { return cryptokit.AlgHmac }
func (h *Hmac) MacLength() int    { return h.hash.HashLength() }

func (h *Hmac) Compute(message []byte, key *secretkey.SecretKey) ([]byte, error) {
	k, err := key.Bytes()
	if err != nil {
		return nil, err
	}

	m := hmac.New(h.hash.NewHash, k)
	if _, err := m.Write(message); err != nil {
		return nil, err
	}
	return m.Sum(nil), nil
}

func (h *Hmac) Verify(mac, message []byte, key *secretkey.SecretKey) (bool, error) {
	expected, err := h.Compute(message, key)
	if err != nil {
		return false, err
	}
	return byteutil.ConstantTimeEqual(mac, expected), nil
}

// Poly1305 implements cryptokit.Mac over the standalone one-shot Poly1305
// MAC (RFC 8439), keyed by a 32-byte one-time key.
type Poly1305 struct{}

func (Poly1305) Algorithm() string { return cryptokit.AlgPoly1305 }
func (Poly1305) MacLength() int    { return poly1305.TagSize }

func (Poly1305) Compute(message []byte, key *secretkey.SecretKey) ([]byte, error) {
	k, err := key.Bytes()
	if err != nil {
		return nil, err
	}
	if len(k) != 32 {
		return nil, cryptokit.NewError(cryptokit.KindInvalidKeyLength, "mac.Poly1305.Compute", fmt.Errorf("key must be 32 bytes, got %d", len(k)))
	}

	var key32 [32]byte
	copy(key32[:], k)

	var out [poly1305.TagSize]byte
	poly1305.Sum(&out, message, &key32)
	return out[:], nil
}

func (p Poly1305) Verify(mac, message []byte, key *secretkey.SecretKey) (bool, error) {
	k, err := key.Bytes()
	if err != nil {
		return false, err
	}
	if len(k) != 32 {
		return false, cryptokit.NewError(cryptokit.KindInvalidKeyLength, "mac.Poly1305.Verify", fmt.Errorf("key must be 32 bytes, got %d", len(k)))
	}

	var key32 [32]byte
	copy(key32[:], k)

	var tag [poly1305.TagSize]byte
	if len(mac) != poly1305.TagSize {
		return false, nil
	}
	copy(tag[:], mac)

	return poly1305.Verify(&tag, message, &key32), nil
}

// Blake2b implements cryptokit.Mac in BLAKE2b keyed mode.
type Blake2b struct {
	hash *digest.Blake2b
}

// NewBlake2b returns a BLAKE2b MAC producing hashLengthInBytes octets.
func NewBlake2b(hashLengthInBytes int) (*Blake2b, error) {
	h, err := digest.NewBlake2b(hashLengthInBytes)
	if err != nil {
		return nil, err
	}
	return &Blake2b{hash: h}, nil
}

func (b *Blake2b) Algorithm() string { return cryptokit.AlgBlake2b }
func (b *Blake2b) MacLength() int    { return b.hash.HashLength() }

func (b *Blake2b) Compute(message []byte, key *secretkey.SecretKey) ([]byte, error) {
	k, err := key.Bytes()
	if err != nil {
		return nil, err
	}
	return b.hash.KeyedSum(message, k)
}

func (b *Blake2b) Verify(mac, message []byte, key *secretkey.SecretKey) (bool, error) {
	expected, err := b.Compute(message, key)
	if err != nil {
		return false, err
	}
	return byteutil.ConstantTimeEqual(mac, expected), nil
}

// Blake2s implements cryptokit.Mac in BLAKE2s keyed mode.
type Blake2s struct {
	hash *digest.Blake2s
}

// NewBlake2s returns a BLAKE2s MAC producing hashLengthInBytes octets (16
// or 32).
func NewBlake2s(hashLengthInBytes int) (*Blake2s, error) {
	h, err := digest.NewBlake2s(hashLengthInBytes)
	if err != nil {
		return nil, err
	}
	return &Blake2s{hash: h}, nil
}

func (b *Blake2s) Algorithm() string { return cryptokit.AlgBlake2s }
func (b *Blake2s) MacLength() int    { return b.hash.HashLength() }

func (b *Blake2s) Compute(message []byte, key *secretkey.SecretKey) ([]byte, error) {
	k, err := key.Bytes()
	if err != nil {
		return nil, err
	}
	return b.hash.KeyedSum(message, k)
}

func (b *Blake2s) Verify(mac, message []byte, key *secretkey.SecretKey) (bool, error) {
	expected, err := b.Compute(message, key)
	if err != nil {
		return false, err
	}
	return byteutil.ConstantTimeEqual(mac, expected), nil
}

// Empty implements cryptokit.Mac for unauthenticated ciphers, always
// producing and verifying a zero-length tag.
type Empty struct{}

func (Empty) Algorithm() string { return "empty" }
func (Empty) MacLength() int    { return 0 }

func (Empty) Compute([]byte, *secretkey.SecretKey) ([]byte, error) { return nil, nil }

func (Empty) Verify(mac, _ []byte, _ *secretkey.SecretKey) (bool, error) {
	return len(mac) == 0, nil
}
