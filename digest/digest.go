// SPDX-License-Identifier: GPL-3.0-or-later

// Package digest implements cryptokit's Hash dispatch trait over SHA-1,
// SHA-224/256/384/512 (FIPS 180-4) and BLAKE2b/BLAKE2s (RFC 7693).
//
// The SHA family wraps stdlib crypto/sha1, crypto/sha256 and crypto/sha512
// (the teacher's own dependency, used as the Double Ratchet's chain KDF hash
// in doubleratchet/key_ratchet.go); BLAKE2b/BLAKE2s wrap
// golang.org/x/crypto/blake2b and blake2s, whose keyed constructors double
// as the blake2b/blake2s MAC algorithms in package mac.
package digest

import (
	"crypto/sha1"
	"crypto/sha256"
	"crypto/sha512"
	"fmt"
	"hash"

	"golang.org/x/crypto/blake2b"
	"golang.org/x/crypto/blake2s"

	"github.com/coriolis-labs/cryptokit"
)

// ShaFamily wraps the stdlib SHA hash functions as cryptokit.Hash
// implementations.
type ShaFamily struct {
	algorithm string
	newHash   func() hash.Hash
	length    int
}

var (
	Sha1   = ShaFamily{algorithm: cryptokit.AlgSha1, newHash: sha1.New, length: sha1.Size}
	Sha224 = ShaFamily{algorithm: cryptokit.AlgSha224, newHash: sha256.New224, length: sha256.Size224}
	Sha256 = ShaFamily{algorithm: cryptokit.AlgSha256, newHash: sha256.New, length: sha256.Size}
	Sha384 = ShaFamily{algorithm: cryptokit.AlgSha384, newHash: sha512.New384, length: sha512.Size384}
	Sha512 = ShaFamily{algorithm: cryptokit.AlgSha512, newHash: sha512.New, length: sha512.Size}
)

func (s ShaFamily) Algorithm() string { return s.algorithm }
func (s ShaFamily) HashLength() int   { return s.length }

func (s ShaFamily) Sum(message []byte) []byte {
	h := s.newHash()
	_, _ = h.Write(message)
	return h.Sum(nil)
}

// NewHash returns a fresh hash.Hash for streaming use, e.g. inside package
// kdf's HMAC/HKDF/PBKDF2 wrappers.
func (s ShaFamily) NewHash() hash.Hash { return s.newHash() }

// Blake2b implements cryptokit.Hash over BLAKE2b with a configurable
// 1..64-byte digest length.
type Blake2b struct {
	hashLengthInBytes int
}

// NewBlake2b returns a Blake2b hash of hashLengthInBytes octets, validating
// the [1, 64] range BLAKE2b supports.
func NewBlake2b(hashLengthInBytes int) (*Blake2b, error) {
	if hashLengthInBytes < 1 || hashLengthInBytes > 64 {
		return nil, cryptokit.NewError(cryptokit.KindInvalidHashLength, "digest.NewBlake2b", fmt.Errorf("length %d out of [1,64]", hashLengthInBytes))
	}
	return &Blake2b{hashLengthInBytes: hashLengthInBytes}, nil
}

func (b *Blake2b) Algorithm() string { return cryptokit.AlgBlake2b }
func (b *Blake2b) HashLength() int   { return b.hashLengthInBytes }

func (b *Blake2b) Sum(message []byte) []byte {
	h, err := blake2b.New(b.hashLengthInBytes, nil)
	if err != nil {
		// hashLengthInBytes was already validated at construction time.
		panic(err)
	}
	_, _ = h.Write(message)
	return h.Sum(nil)
}

// KeyedSum computes the BLAKE2b MAC of message under key: BLAKE2b's keyed
// mode prepends a single block holding the key, zero-padded to block
// length, to the message.
func (b *Blake2b) KeyedSum(message, key []byte) ([]byte, error) {
	h, err := blake2b.New(b.hashLengthInBytes, key)
	if err != nil {
		return nil, err
	}
	_, _ = h.Write(message)
	return h.Sum(nil), nil
}

// Blake2s implements cryptokit.Hash over BLAKE2s, restricted to 16-byte
// (New128, e.g. WireGuard's MAC construction) and 32-byte (New256) digests,
// the two lengths golang.org/x/crypto/blake2s exposes constructors for.
type Blake2s struct {
	hashLengthInBytes int
}

// NewBlake2s returns a Blake2s hash of hashLengthInBytes octets: 16 or 32.
func NewBlake2s(hashLengthInBytes int) (*Blake2s, error) {
	if hashLengthInBytes != 16 && hashLengthInBytes != 32 {
		return nil, cryptokit.NewError(cryptokit.KindInvalidHashLength, "digest.NewBlake2s", fmt.Errorf("length %d must be 16 or 32", hashLengthInBytes))
	}
	return &Blake2s{hashLengthInBytes: hashLengthInBytes}, nil
}

func (b *Blake2s) Algorithm() string { return cryptokit.AlgBlake2s }
func (b *Blake2s) HashLength() int   { return b.hashLengthInBytes }

func (b *Blake2s) newHash(key []byte) (hash.Hash, error) {
	if b.hashLengthInBytes == 16 {
		return blake2s.New128(key)
	}
	return blake2s.New256(key)
}

func (b *Blake2s) Sum(message []byte) []byte {
	h, err := b.newHash(nil)
	if err != nil {
		// hashLengthInBytes was already validated at construction time.
		panic(err)
	}
	_, _ = h.Write(message)
	return h.Sum(nil)
}

// KeyedSum computes the BLAKE2s MAC of message under key.
func (b *Blake2s) KeyedSum(message, key []byte) ([]byte, error) {
	h, err := b.newHash(key)
	if err != nil {
		return nil, err
	}
	_, _ = h.Write(message)
	return h.Sum(nil), nil
}
