// SPDX-License-Identifier: GPL-3.0-or-later

// Package kdf implements cryptokit's Kdf dispatch trait: HKDF (RFC 5869),
// PBKDF2 (RFC 8018) and Argon2id (RFC 9106).
//
// HKDF wraps golang.org/x/crypto/hkdf, the teacher's own dependency, used in
// doubleratchet/key_ratchet.go's rootKdf to derive the Double Ratchet's root
// and chain keys; cryptokit generalizes that fixed-hash, fixed-output-length
// use into an arbitrary-hash, arbitrary-length Kdf. PBKDF2 wraps
// golang.org/x/crypto/pbkdf2; Argon2id wraps golang.org/x/crypto/argon2.
package kdf

import (
	"fmt"
	"io"

	"golang.org/x/crypto/argon2"
	"golang.org/x/crypto/hkdf"
	"golang.org/x/crypto/pbkdf2"

	"github.com/coriolis-labs/cryptokit"
	"github.com/coriolis-labs/cryptokit/digest"
)

// Hkdf implements cryptokit.Kdf over RFC 5869 HKDF with a caller-chosen
// underlying hash.
type Hkdf struct {
	hash digest.ShaFamily
}

// NewHkdf returns an HKDF instance keyed by hash's compression function.
func NewHkdf(hash digest.ShaFamily) *Hkdf {
	return &Hkdf{hash: hash}
}

func (h *Hkdf) Algorithm() string { return cryptokit.AlgHkdf }

// DeriveKey runs HKDF-Extract-then-Expand: salt defaults to a zero string
// of the hash's length when empty, matching RFC 5869 §2.2; info is the
// expand step's context string; outputLength must not exceed
// 255*hash.HashLength(), else KindOutputTooLong.
func (h *Hkdf) DeriveKey(secret, salt, info []byte, outputLength int) ([]byte, error) {
	if outputLength > 255*h.hash.HashLength() {
		return nil, cryptokit.NewError(cryptokit.KindOutputTooLong, "kdf.Hkdf.DeriveKey",
			fmt.Errorf("output length %d exceeds 255*%d", outputLength, h.hash.HashLength()))
	}

	r := hkdf.New(h.hash.NewHash, secret, salt, info)
	out := make([]byte, outputLength)
	if _, err := io.ReadFull(r, out); err != nil {
		return nil, err
	}
	return out, nil
}

// Pbkdf2 implements cryptokit.Kdf over RFC 8018 PBKDF2 keyed by an HMAC
// built from a caller-chosen hash.
type Pbkdf2 struct {
	hash       digest.ShaFamily
	iterations int
}

// NewPbkdf2 returns a PBKDF2 instance with c iterations of HMAC-hash.
func NewPbkdf2(hash digest.ShaFamily, iterations int) (*Pbkdf2, error) {
	if iterations < 1 {
		return nil, cryptokit.NewError(cryptokit.KindUnsupported, "kdf.NewPbkdf2", fmt.Errorf("iterations must be >= 1, got %d", iterations))
	}
	return &Pbkdf2{hash: hash, iterations: iterations}, nil
}

func (p *Pbkdf2) Algorithm() string { return cryptokit.AlgPbkdf2 }

// DeriveKey derives outputLength octets of keying material from secret and
// salt. info is unused by PBKDF2 and must be empty.
func (p *Pbkdf2) DeriveKey(secret, salt, info []byte, outputLength int) ([]byte, error) {
	if len(info) != 0 {
		return nil, cryptokit.NewError(cryptokit.KindUnsupported, "kdf.Pbkdf2.DeriveKey", fmt.Errorf("pbkdf2 does not accept info/context bytes"))
	}
	return pbkdf2.Key(secret, salt, p.iterations, outputLength, p.hash.NewHash), nil
}

// Argon2idOptions configures an Argon2id Kdf.
type Argon2idOptions struct {
	Parallelism uint8
	MemoryKiB   uint32 // 1-KiB blocks; must be >= 8*Parallelism
	Iterations  uint32
	HashLength  uint32 // must be >= 4
}

// Argon2id implements cryptokit.Kdf over RFC 9106's Argon2id memory-hard
// function, delegating the block-filling loop entirely to
// golang.org/x/crypto/argon2.IDKey so the data-independent/data-dependent
// indexing split from RFC 9106 §3.4 is followed exactly.
type Argon2id struct {
	opts Argon2idOptions
}

// NewArgon2id validates opts and returns an Argon2id Kdf.
func NewArgon2id(opts Argon2idOptions) (*Argon2id, error) {
	if opts.Parallelism < 1 {
		return nil, cryptokit.NewError(cryptokit.KindUnsupported, "kdf.NewArgon2id", fmt.Errorf("parallelism must be >= 1"))
	}
	if opts.MemoryKiB < 8*uint32(opts.Parallelism) {
		return nil, cryptokit.NewError(cryptokit.KindUnsupported, "kdf.NewArgon2id", fmt.Errorf("memory must be >= 8*parallelism"))
	}
	if opts.Iterations < 1 {
		return nil, cryptokit.NewError(cryptokit.KindUnsupported, "kdf.NewArgon2id", fmt.Errorf("iterations must be >= 1"))
	}
	if opts.HashLength < 4 {
		return nil, cryptokit.NewError(cryptokit.KindInvalidHashLength, "kdf.NewArgon2id", fmt.Errorf("hash length must be >= 4"))
	}
	return &Argon2id{opts: opts}, nil
}

func (a *Argon2id) Algorithm() string { return cryptokit.AlgArgon2id }

// DeriveKey runs Argon2id over a password (secret) and salt. info maps to
// Argon2's optional secret key/associated-data parameters and is unused
// here; outputLength is ignored in favor of the configured HashLength,
// since Argon2id's cost parameters and output length are bound together at
// construction time.
func (a *Argon2id) DeriveKey(secret, salt, _ []byte, _ int) ([]byte, error) {
	return argon2.IDKey(secret, salt, a.opts.Iterations, a.opts.MemoryKiB, a.opts.Parallelism, a.opts.HashLength), nil
}
