// SPDX-License-Identifier: GPL-3.0-or-later

package aesmode

import (
	"crypto/cipher"
	"fmt"

	"github.com/coriolis-labs/cryptokit"
	"github.com/coriolis-labs/cryptokit/internal/byteutil"
	"github.com/coriolis-labs/cryptokit/secretkey"
)

// AesGcmOptions configures an AesGcm Cipher.
type AesGcmOptions struct {
	SecretKeyLength int
	NonceLength     int // >= 1; defaults to 12 when 0
}

func (o AesGcmOptions) normalize() AesGcmOptions {
	if o.NonceLength == 0 {
		o.NonceLength = 12
	}
	return o
}

// AesGcm implements cryptokit.Cipher over AES-GCM (NIST SP 800-38D). The
// AEAD construction itself is delegated to stdlib crypto/cipher.NewGCM /
// NewGCMWithNonceSize, which follows SP 800-38D's J0 construction
// (including the GHASH-based derivation for non-96-bit nonces); package
// aesmode additionally exposes the raw GHASH primitive in ghash.go.
type AesGcm struct {
	opts AesGcmOptions
}

// NewAesGcm validates opts and returns an AesGcm Cipher.
func NewAesGcm(opts AesGcmOptions) (*AesGcm, error) {
	opts = opts.normalize()

	if !validKeyLength(opts.SecretKeyLength) {
		return nil, cryptokit.NewError(cryptokit.KindInvalidKeyLength, "aesmode.NewAesGcm", fmt.Errorf("key length must be 16, 24 or 32, got %d", opts.SecretKeyLength))
	}
	if opts.NonceLength < 1 {
		return nil, cryptokit.NewError(cryptokit.KindInvalidNonceLength, "aesmode.NewAesGcm", fmt.Errorf("nonceLength must be >= 1"))
	}

	return &AesGcm{opts: opts}, nil
}

func (c *AesGcm) Algorithm() string    { return cryptokit.AlgAesGcm }
func (c *AesGcm) SecretKeyLength() int { return c.opts.SecretKeyLength }
func (c *AesGcm) NonceLength() int     { return c.opts.NonceLength }
func (c *AesGcm) MacAlgorithm() string { return "gcm-tag" }

// CipherTextLength returns clearTextLen: GCM's ciphertext length equals the
// clear-text length.
func (c *AesGcm) CipherTextLength(clearTextLen int) int { return clearTextLen }

func (c *AesGcm) NewSecretKey() (*secretkey.SecretKey, error) {
	return newSecretKey(c.opts.SecretKeyLength)
}

func (c *AesGcm) newAead(key []byte) (cipher.AEAD, error) {
	block, err := newBlockCipher(key)
	if err != nil {
		return nil, err
	}
	if c.opts.NonceLength == 12 {
		return cipher.NewGCM(block)
	}
	return cipher.NewGCMWithNonceSize(block, c.opts.NonceLength)
}

func (c *AesGcm) Encrypt(clearText []byte, key *secretkey.SecretKey, nonce, aad []byte) (*cryptokit.SecretBox, error) {
	k, err := key.Bytes()
	if err != nil {
		return nil, err
	}
	if err := checkKeyLength("aesmode.AesGcm.Encrypt", k, c.opts.SecretKeyLength); err != nil {
		return nil, err
	}

	if nonce == nil {
		nonce, err = byteutil.RandomBytes(c.opts.NonceLength)
		if err != nil {
			return nil, err
		}
	}
	if err := checkNonceLength("aesmode.AesGcm.Encrypt", nonce, c.opts.NonceLength); err != nil {
		return nil, err
	}

	aead, err := c.newAead(k)
	if err != nil {
		return nil, err
	}

	sealed := aead.Seal(nil, nonce, clearText, aad)
	tagStart := len(sealed) - aead.Overhead()

	return &cryptokit.SecretBox{
		CipherText: sealed[:tagStart],
		Nonce:      nonce,
		Mac:        sealed[tagStart:],
	}, nil
}

// Decrypt computes the tag over the received ciphertext and compares it
// constant-time with box.Mac via crypto/cipher's AEAD.Open, which never
// returns partial plaintext on a mismatch.
func (c *AesGcm) Decrypt(box *cryptokit.SecretBox, key *secretkey.SecretKey, aad []byte) ([]byte, error) {
	k, err := key.Bytes()
	if err != nil {
		return nil, err
	}
	if err := checkKeyLength("aesmode.AesGcm.Decrypt", k, c.opts.SecretKeyLength); err != nil {
		return nil, err
	}
	if err := checkNonceLength("aesmode.AesGcm.Decrypt", box.Nonce, c.opts.NonceLength); err != nil {
		return nil, err
	}

	aead, err := c.newAead(k)
	if err != nil {
		return nil, err
	}

	sealed := append(append([]byte{}, box.CipherText...), box.Mac...)
	clearText, err := aead.Open(nil, box.Nonce, sealed, aad)
	if err != nil {
		return nil, cryptokit.NewError(cryptokit.KindAuthFailure, "aesmode.AesGcm.Decrypt", err)
	}
	return clearText, nil
}
