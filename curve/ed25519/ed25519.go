// SPDX-License-Identifier: GPL-3.0-or-later

// Package ed25519 implements cryptokit's Signature trait over Ed25519
// (RFC 8032).
//
// Wraps stdlib crypto/ed25519, the teacher's own dependency: ecdh/ecdh.go
// already signs and verifies ephemeral-key exchange messages with it.
// cryptokit generalizes that one call site into a standalone
// cryptokit.Signature.
package ed25519

import (
	stded25519 "crypto/ed25519"
	"fmt"

	"github.com/coriolis-labs/cryptokit"
)

// Ed25519 implements cryptokit.Signature.
type Ed25519 struct{}

func (Ed25519) Algorithm() string { return cryptokit.AlgEd25519 }

// NewKeyPair generates a fresh Ed25519 key pair from a random 32-byte seed.
// PrivateKey holds the 32-byte seed (not the 64-byte expanded form
// crypto/ed25519 returns); the expanded key is derived on demand from it.
func (Ed25519) NewKeyPair() (*cryptokit.KeyPair, error) {
	pub, priv, err := stded25519.GenerateKey(nil)
	if err != nil {
		return nil, err
	}

	return &cryptokit.KeyPair{
		Type:       cryptokit.KeyPairEd25519,
		PrivateKey: priv.Seed(),
		PublicKey:  pub,
	}, nil
}

// KeyPairFromSeed deterministically derives a key pair from a 32-byte seed.
func KeyPairFromSeed(seed []byte) (*cryptokit.KeyPair, error) {
	if len(seed) != stded25519.SeedSize {
		return nil, cryptokit.NewError(cryptokit.KindInvalidKeyLength, "ed25519.KeyPairFromSeed", fmt.Errorf("seed must be %d bytes", stded25519.SeedSize))
	}

	priv := stded25519.NewKeyFromSeed(seed)
	pub := priv.Public().(stded25519.PublicKey)

	return &cryptokit.KeyPair{
		Type:       cryptokit.KeyPairEd25519,
		PrivateKey: seed,
		PublicKey:  pub,
	}, nil
}

// Sign signs message with the expanded private key derived from the
// 32-byte seed privateKey, producing a 64-byte signature per RFC 8032.
func (Ed25519) Sign(message, privateKey []byte) ([]byte, error) {
	if len(privateKey) != stded25519.SeedSize {
		return nil, cryptokit.NewError(cryptokit.KindInvalidKeyLength, "ed25519.Sign", fmt.Errorf("private key must be %d bytes", stded25519.SeedSize))
	}

	expanded := stded25519.NewKeyFromSeed(privateKey)
	return stded25519.Sign(expanded, message), nil
}

// Verify reports whether signature is a valid Ed25519 signature of message
// under publicKey. It never returns an error for a mismatch, only false.
func (Ed25519) Verify(message, signature, publicKey []byte) bool {
	if len(publicKey) != stded25519.PublicKeySize {
		return false
	}
	return stded25519.Verify(publicKey, message, signature)
}
