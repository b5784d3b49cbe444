// SPDX-License-Identifier: GPL-3.0-or-later

// Package x25519 implements cryptokit's KeyExchange trait over X25519
// (Curve25519 Diffie-Hellman, RFC 7748).
//
// This generalizes doubleratchet/primitives.go's dhKeyPair/dh pair (and
// ecdh/ecdh.go's Exchange/SessionKey, which perform the same X25519 call)
// from their Double-Ratchet-specific call sites into a standalone
// cryptokit.KeyExchange, adding the all-zero contributory-shared-secret
// rejection the teacher's code does not perform.
package x25519

import (
	"fmt"

	"golang.org/x/crypto/curve25519"

	"github.com/coriolis-labs/cryptokit"
	"github.com/coriolis-labs/cryptokit/internal/byteutil"
)

// X25519 implements cryptokit.KeyExchange.
type X25519 struct{}

func (X25519) Algorithm() string { return cryptokit.AlgX25519 }

// NewKeyPair generates a fresh X25519 key pair: a random 32-byte scalar,
// clamped per RFC 7748 §5 by curve25519.X25519 itself, and its basepoint
// public key.
func (X25519) NewKeyPair() (*cryptokit.KeyPair, error) {
	priv, err := byteutil.RandomBytes(curve25519.ScalarSize)
	if err != nil {
		return nil, err
	}

	pub, err := curve25519.X25519(priv, curve25519.Basepoint)
	if err != nil {
		return nil, err
	}

	return &cryptokit.KeyPair{Type: cryptokit.KeyPairX25519, PrivateKey: priv, PublicKey: pub}, nil
}

// SharedSecretKey computes the X25519 shared secret between myPrivate and
// theirPublic. An all-zero result (which occurs only for maliciously
// crafted low-order public keys) is rejected as KindWeakKey rather than
// silently returned.
func (X25519) SharedSecretKey(myPrivate, theirPublic []byte) ([]byte, error) {
	if len(myPrivate) != curve25519.ScalarSize {
		return nil, cryptokit.NewError(cryptokit.KindInvalidKeyLength, "x25519.SharedSecretKey", fmt.Errorf("private key must be %d bytes", curve25519.ScalarSize))
	}
	if len(theirPublic) != curve25519.PointSize {
		return nil, cryptokit.NewError(cryptokit.KindInvalidKeyLength, "x25519.SharedSecretKey", fmt.Errorf("public key must be %d bytes", curve25519.PointSize))
	}

	secret, err := curve25519.X25519(myPrivate, theirPublic)
	if err != nil {
		// Both lengths are checked above, so the only error curve25519
		// reports here is its own all-zero (low-order point) rejection.
		return nil, cryptokit.NewError(cryptokit.KindWeakKey, "x25519.SharedSecretKey", err)
	}

	var zero [32]byte
	if byteutil.ConstantTimeEqual(secret, zero[:]) {
		return nil, cryptokit.NewError(cryptokit.KindWeakKey, "x25519.SharedSecretKey", fmt.Errorf("shared secret is the all-zero contributory failure point"))
	}

	return secret, nil
}
