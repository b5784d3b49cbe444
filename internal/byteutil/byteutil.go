// SPDX-License-Identifier: GPL-3.0-or-later

// Package byteutil collects the small byte-level helpers shared by the rest
// of cryptokit: constant-time comparison, big-endian counter increments and
// secure random fills.
//
// This generalizes the bare crypto/subtle.ConstantTimeCompare call sites
// found inline in doubleratchet.DoubleRatchet.Decrypt into a single,
// reusable helper set.
package byteutil

import (
	"crypto/rand"
	"crypto/subtle"
	"io"
)

// Reader is the source RandomBytes draws from. It defaults to
// crypto/rand.Reader; tests may swap in a *drbg.Drbg (see internal/drbg)
// for reproducible randomized operations.
var Reader io.Reader = rand.Reader

// ConstantTimeEqual reports whether a and b hold identical bytes, without
// branching on their contents. Differing lengths compare unequal but still
// in time independent of where the difference lies.
func ConstantTimeEqual(a, b []byte) bool {
	if len(a) != len(b) {
		return false
	}
	return subtle.ConstantTimeCompare(a, b) == 1
}

// RandomBytes returns n cryptographically random octets read from Reader.
func RandomBytes(n int) ([]byte, error) {
	b := make([]byte, n)
	if _, err := io.ReadFull(Reader, b); err != nil {
		return nil, err
	}
	return b, nil
}

// IncrementBE adds one to the big-endian unsigned integer held in the low
// bits bits of b, treating b as a big-endian byte array. Only the low
// bits/8 bytes participate; bits must be a multiple of 8 and no larger than
// 8*len(b). Overflow wraps silently, matching the AES-CTR and GCM inc32/incN
// counter semantics.
func IncrementBE(b []byte, bits int) {
	n := bits / 8
	if n <= 0 || n > len(b) {
		n = len(b)
	}
	for i := len(b) - 1; i >= len(b)-n; i-- {
		b[i]++
		if b[i] != 0 {
			return
		}
	}
}

// Zero overwrites b with zero bytes in place.
func Zero(b []byte) {
	for i := range b {
		b[i] = 0
	}
}

// Xor writes dst[i] = a[i] ^ b[i] for i in [0, n) where n = min(len(a),
// len(b)). dst must have room for n bytes; dst may alias a or b.
func Xor(dst, a, b []byte) int {
	n := len(a)
	if len(b) < n {
		n = len(b)
	}
	for i := 0; i < n; i++ {
		dst[i] = a[i] ^ b[i]
	}
	return n
}
