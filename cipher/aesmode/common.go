// SPDX-License-Identifier: GPL-3.0-or-later

// Package aesmode implements cryptokit's AES-CBC, AES-CTR and AES-GCM
// Cipher engines (FIPS 197, NIST SP 800-38A/38D) on top of stdlib
// crypto/aes and crypto/cipher, the teacher's own choice of AES backend in
// doubleratchet/primitives.go's encrypt/decrypt pair.
package aesmode

import (
	"crypto/aes"
	"crypto/cipher"
	"fmt"

	"github.com/coriolis-labs/cryptokit"
	"github.com/coriolis-labs/cryptokit/internal/byteutil"
	"github.com/coriolis-labs/cryptokit/secretkey"
)

// validKeyLength reports whether n is one of AES's three key sizes.
func validKeyLength(n int) bool {
	return n == 16 || n == 24 || n == 32
}

func newBlockCipher(key []byte) (cipher.Block, error) {
	return aes.NewCipher(key)
}

func newSecretKey(secretKeyLength int) (*secretkey.SecretKey, error) {
	b, err := byteutil.RandomBytes(secretKeyLength)
	if err != nil {
		return nil, err
	}
	return secretkey.New(b, true), nil
}

func checkKeyLength(op string, key []byte, want int) error {
	if len(key) != want {
		return cryptokit.NewError(cryptokit.KindInvalidKeyLength, op, fmt.Errorf("got %d bytes, want %d", len(key), want))
	}
	return nil
}

func checkNonceLength(op string, nonce []byte, want int) error {
	if len(nonce) != want {
		return cryptokit.NewError(cryptokit.KindInvalidNonceLength, op, fmt.Errorf("got %d bytes, want %d", len(nonce), want))
	}
	return nil
}
