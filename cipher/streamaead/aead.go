// SPDX-License-Identifier: GPL-3.0-or-later

package streamaead

import (
	"fmt"

	"golang.org/x/crypto/chacha20poly1305"

	"github.com/coriolis-labs/cryptokit"
	"github.com/coriolis-labs/cryptokit/internal/byteutil"
	"github.com/coriolis-labs/cryptokit/secretkey"
)

// ChaCha20Poly1305 implements cryptokit.Cipher over the combined
// ChaCha20-Poly1305 AEAD construction from RFC 8439. IsX selects
// XChaCha20-Poly1305's extended 24-octet nonce.
type ChaCha20Poly1305 struct {
	IsX bool
}

func (c *ChaCha20Poly1305) Algorithm() string {
	if c.IsX {
		return cryptokit.AlgXChaCha20Poly1305
	}
	return cryptokit.AlgChaCha20Poly1305Aead
}

func (c *ChaCha20Poly1305) SecretKeyLength() int { return chacha20poly1305.KeySize }

func (c *ChaCha20Poly1305) NonceLength() int {
	if c.IsX {
		return chacha20poly1305.NonceSizeX
	}
	return chacha20poly1305.NonceSize
}

func (c *ChaCha20Poly1305) MacAlgorithm() string { return cryptokit.AlgPoly1305 }

// CipherTextLength returns clearTextLen: the AEAD's authentication tag is
// carried separately in SecretBox.Mac.
func (c *ChaCha20Poly1305) CipherTextLength(clearTextLen int) int { return clearTextLen }

func (c *ChaCha20Poly1305) NewSecretKey() (*secretkey.SecretKey, error) {
	b, err := byteutil.RandomBytes(chacha20poly1305.KeySize)
	if err != nil {
		return nil, err
	}
	return secretkey.New(b, true), nil
}

func (c *ChaCha20Poly1305) newAead(key []byte) (cipherAEAD, error) {
	if c.IsX {
		return chacha20poly1305.NewX(key)
	}
	return chacha20poly1305.New(key)
}

func (c *ChaCha20Poly1305) Encrypt(clearText []byte, key *secretkey.SecretKey, nonce, aad []byte) (*cryptokit.SecretBox, error) {
	k, err := key.Bytes()
	if err != nil {
		return nil, err
	}
	if len(k) != chacha20poly1305.KeySize {
		return nil, cryptokit.NewError(cryptokit.KindInvalidKeyLength, "streamaead.ChaCha20Poly1305.Encrypt", fmt.Errorf("got %d bytes, want %d", len(k), chacha20poly1305.KeySize))
	}

	if nonce == nil {
		nonce, err = byteutil.RandomBytes(c.NonceLength())
		if err != nil {
			return nil, err
		}
	}
	if len(nonce) != c.NonceLength() {
		return nil, cryptokit.NewError(cryptokit.KindInvalidNonceLength, "streamaead.ChaCha20Poly1305.Encrypt", fmt.Errorf("got %d bytes, want %d", len(nonce), c.NonceLength()))
	}

	aead, err := c.newAead(k)
	if err != nil {
		return nil, cryptokit.NewError(cryptokit.KindUnsupported, "streamaead.ChaCha20Poly1305.Encrypt", err)
	}

	sealed := aead.Seal(nil, nonce, clearText, aad)
	tagStart := len(sealed) - aead.Overhead()

	return &cryptokit.SecretBox{
		CipherText: sealed[:tagStart],
		Nonce:      nonce,
		Mac:        sealed[tagStart:],
	}, nil
}

func (c *ChaCha20Poly1305) Decrypt(box *cryptokit.SecretBox, key *secretkey.SecretKey, aad []byte) ([]byte, error) {
	k, err := key.Bytes()
	if err != nil {
		return nil, err
	}
	if len(k) != chacha20poly1305.KeySize {
		return nil, cryptokit.NewError(cryptokit.KindInvalidKeyLength, "streamaead.ChaCha20Poly1305.Decrypt", fmt.Errorf("got %d bytes, want %d", len(k), chacha20poly1305.KeySize))
	}
	if len(box.Nonce) != c.NonceLength() {
		return nil, cryptokit.NewError(cryptokit.KindInvalidNonceLength, "streamaead.ChaCha20Poly1305.Decrypt", fmt.Errorf("got %d bytes, want %d", len(box.Nonce), c.NonceLength()))
	}

	aead, err := c.newAead(k)
	if err != nil {
		return nil, cryptokit.NewError(cryptokit.KindUnsupported, "streamaead.ChaCha20Poly1305.Decrypt", err)
	}

	sealed := append(append([]byte{}, box.CipherText...), box.Mac...)
	clearText, err := aead.Open(nil, box.Nonce, sealed, aad)
	if err != nil {
		return nil, cryptokit.NewError(cryptokit.KindAuthFailure, "streamaead.ChaCha20Poly1305.Decrypt", err)
	}
	return clearText, nil
}

// cipherAEAD is the minimal subset of cipher.AEAD this package depends on;
// named locally so aead.go doesn't need to import crypto/cipher only for a
// one-line interface reference.
type cipherAEAD interface {
	Seal(dst, nonce, plaintext, additionalData []byte) []byte
	Open(dst, nonce, ciphertext, additionalData []byte) ([]byte, error)
	Overhead() int
}
