// SPDX-License-Identifier: GPL-3.0-or-later

package aesmode

import (
	"crypto/aes"
	"crypto/cipher"
	"fmt"

	"github.com/coriolis-labs/cryptokit"
	"github.com/coriolis-labs/cryptokit/internal/byteutil"
	"github.com/coriolis-labs/cryptokit/internal/padding"
	"github.com/coriolis-labs/cryptokit/secretkey"
)

// AesCbcOptions configures an AesCbc Cipher.
type AesCbcOptions struct {
	SecretKeyLength int // 16, 24 or 32
	Padding         padding.Algorithm
	Mac             cryptokit.Mac
}

// AesCbc implements cryptokit.Cipher over AES-CBC (NIST SP 800-38A). CBC
// produces no MAC of its own; Encrypt/Decrypt run the configured external
// Mac over the ciphertext, mirroring doubleratchet/primitives.go's
// encrypt/decrypt, which pairs AES-256-CBC with an HMAC-SHA256 over the
// associated data.
//
// The IV must be exactly 16 octets, AES's block size.
type AesCbc struct {
	opts AesCbcOptions
}

// NewAesCbc validates opts and returns an AesCbc Cipher.
func NewAesCbc(opts AesCbcOptions) (*AesCbc, error) {
	if !validKeyLength(opts.SecretKeyLength) {
		return nil, cryptokit.NewError(cryptokit.KindInvalidKeyLength, "aesmode.NewAesCbc", fmt.Errorf("key length must be 16, 24 or 32, got %d", opts.SecretKeyLength))
	}
	if opts.Mac == nil {
		return nil, fmt.Errorf("aesmode.NewAesCbc: a Mac algorithm is required")
	}
	return &AesCbc{opts: opts}, nil
}

func (c *AesCbc) Algorithm() string       { return cryptokit.AlgAesCbc }
func (c *AesCbc) SecretKeyLength() int    { return c.opts.SecretKeyLength }
func (c *AesCbc) NonceLength() int        { return 16 }
func (c *AesCbc) MacAlgorithm() string    { return c.opts.Mac.Algorithm() }

// CipherTextLength returns ⌈(clearTextLen+1)/16⌉·16 for PKCS#7, and the
// next 16-aligned length (clearTextLen itself, if already aligned) for
// zero-padding.
func (c *AesCbc) CipherTextLength(clearTextLen int) int {
	switch c.opts.Padding {
	case padding.Zero:
		if clearTextLen%aes.BlockSize == 0 {
			return clearTextLen
		}
		return clearTextLen + (aes.BlockSize - clearTextLen%aes.BlockSize)
	default:
		return clearTextLen + (aes.BlockSize - clearTextLen%aes.BlockSize)
	}
}

func (c *AesCbc) NewSecretKey() (*secretkey.SecretKey, error) {
	return newSecretKey(c.opts.SecretKeyLength)
}

// Encrypt pads clearText, AES-CBC encrypts it with key and nonce (the IV),
// then authenticates the ciphertext with the configured Mac. CBC does not
// support AAD; a non-empty aad fails with KindAadUnsupported.
func (c *AesCbc) Encrypt(clearText []byte, key *secretkey.SecretKey, nonce, aad []byte) (*cryptokit.SecretBox, error) {
	if len(aad) != 0 {
		return nil, cryptokit.NewError(cryptokit.KindAadUnsupported, "aesmode.AesCbc.Encrypt", nil)
	}

	k, err := key.Bytes()
	if err != nil {
		return nil, err
	}
	if err := checkKeyLength("aesmode.AesCbc.Encrypt", k, c.opts.SecretKeyLength); err != nil {
		return nil, err
	}

	if nonce == nil {
		nonce, err = byteutil.RandomBytes(16)
		if err != nil {
			return nil, err
		}
	}
	if err := checkNonceLength("aesmode.AesCbc.Encrypt", nonce, 16); err != nil {
		return nil, err
	}

	padded, err := padding.Pad(c.opts.Padding, clearText, aes.BlockSize)
	if err != nil {
		return nil, err
	}

	block, err := newBlockCipher(k)
	if err != nil {
		return nil, err
	}

	ciphertext := make([]byte, len(padded))
	cipher.NewCBCEncrypter(block, nonce).CryptBlocks(ciphertext, padded)

	mac, err := c.opts.Mac.Compute(ciphertext, key)
	if err != nil {
		return nil, err
	}

	return &cryptokit.SecretBox{CipherText: ciphertext, Nonce: nonce, Mac: mac}, nil
}

// Decrypt verifies the Mac in constant time before stripping padding and
// revealing any plaintext bytes.
func (c *AesCbc) Decrypt(box *cryptokit.SecretBox, key *secretkey.SecretKey, aad []byte) ([]byte, error) {
	if len(aad) != 0 {
		return nil, cryptokit.NewError(cryptokit.KindAadUnsupported, "aesmode.AesCbc.Decrypt", nil)
	}

	k, err := key.Bytes()
	if err != nil {
		return nil, err
	}
	if err := checkKeyLength("aesmode.AesCbc.Decrypt", k, c.opts.SecretKeyLength); err != nil {
		return nil, err
	}
	if err := checkNonceLength("aesmode.AesCbc.Decrypt", box.Nonce, 16); err != nil {
		return nil, err
	}
	if len(box.CipherText)%aes.BlockSize != 0 {
		return nil, cryptokit.NewError(cryptokit.KindBadPadding, "aesmode.AesCbc.Decrypt", fmt.Errorf("ciphertext is not block aligned"))
	}

	ok, err := c.opts.Mac.Verify(box.Mac, box.CipherText, key)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, cryptokit.NewError(cryptokit.KindAuthFailure, "aesmode.AesCbc.Decrypt", nil)
	}

	block, err := newBlockCipher(k)
	if err != nil {
		return nil, err
	}

	padded := make([]byte, len(box.CipherText))
	cipher.NewCBCDecrypter(block, box.Nonce).CryptBlocks(padded, box.CipherText)

	clearText, err := padding.Unpad(c.opts.Padding, padded, aes.BlockSize)
	if err != nil {
		return nil, cryptokit.NewError(cryptokit.KindBadPadding, "aesmode.AesCbc.Decrypt", err)
	}
	return clearText, nil
}
