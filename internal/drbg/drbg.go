// SPDX-License-Identifier: GPL-3.0-or-later

// Package drbg implements a deterministic, reseedable CSPRNG used to make
// cryptokit's randomized operations (nonce generation, key generation)
// reproducible under test. Production callers keep using
// internal/byteutil.RandomBytes, which reads crypto/rand directly; drbg
// exists purely as an injectable alternative source.
//
// The design generalizes the teacher's crypto/rand.Reader calls in its
// dhKeyPair generation to an injectable io.Reader-shaped source, built on
// golang.org/x/crypto/chacha20 the way streamaead already uses it for
// ChaCha20 encryption.
package drbg

import (
	"crypto/rand"
	"io"

	"golang.org/x/crypto/chacha20"
)

const reseedInterval = 1 << 20 // bytes of output between automatic reseeds

// Drbg is a ChaCha20-keystream-based deterministic random bit generator
// with backtracking resistance: after producing output, it rekeys itself
// from fresh keystream so a later key compromise cannot recover earlier
// output.
type Drbg struct {
	stream     *chacha20.Cipher
	reseedFrom io.Reader
	produced   int
}

// New returns a Drbg seeded from seed, a 32-byte ChaCha20 key. Output is
// fully determined by seed, making it suitable for reproducible tests.
func New(seed [32]byte) (*Drbg, error) {
	d := &Drbg{reseedFrom: nil}
	if err := d.rekey(seed[:]); err != nil {
		return nil, err
	}
	return d, nil
}

// NewFromCryptoRand returns a Drbg seeded from crypto/rand, for production
// use in place of a raw crypto/rand.Read call when backtracking resistance
// across a long-lived generator is wanted.
func NewFromCryptoRand() (*Drbg, error) {
	var seed [32]byte
	if _, err := io.ReadFull(rand.Reader, seed[:]); err != nil {
		return nil, err
	}
	d, err := New(seed)
	if err != nil {
		return nil, err
	}
	d.reseedFrom = rand.Reader
	return d, nil
}

func (d *Drbg) rekey(key []byte) error {
	var nonce [chacha20.NonceSize]byte
	stream, err := chacha20.NewUnauthenticatedCipher(key, nonce[:])
	if err != nil {
		return err
	}
	d.stream = stream
	d.produced = 0
	return nil
}

// Read fills p with output, implementing io.Reader. It never returns a
// short read or a non-nil error under normal operation.
func (d *Drbg) Read(p []byte) (int, error) {
	total := len(p)

	for len(p) > 0 {
		if d.produced >= reseedInterval {
			if err := d.reseed(); err != nil {
				return 0, err
			}
		}

		chunk := p
		if remaining := reseedInterval - d.produced; len(chunk) > remaining {
			chunk = chunk[:remaining]
		}

		zero := make([]byte, len(chunk))
		d.stream.XORKeyStream(chunk, zero)
		d.produced += len(chunk)
		p = p[len(chunk):]
	}

	// Backtracking resistance: derive the next key from the stream itself
	// before returning, so observing this Drbg's future state cannot
	// recover the bytes just produced.
	var nextKey [32]byte
	zero := make([]byte, 32)
	d.stream.XORKeyStream(nextKey[:], zero)
	if err := d.rekey(nextKey[:]); err != nil {
		return 0, err
	}
	return total, nil
}

func (d *Drbg) reseed() error {
	if d.reseedFrom == nil {
		// Deterministic Drbgs reseed from their own keystream so repeated
		// Read calls past reseedInterval stay reproducible from the
		// original seed.
		var nextKey [32]byte
		zero := make([]byte, 32)
		d.stream.XORKeyStream(nextKey[:], zero)
		return d.rekey(nextKey[:])
	}

	var key [32]byte
	if _, err := io.ReadFull(d.reseedFrom, key[:]); err != nil {
		return err
	}
	return d.rekey(key[:])
}
