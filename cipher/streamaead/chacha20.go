// SPDX-License-Identifier: GPL-3.0-or-later

// Package streamaead implements cryptokit's ChaCha20/XChaCha20 stream
// Ciphers and their Poly1305-authenticated AEAD counterparts (RFC 8439),
// built on golang.org/x/crypto/chacha20 and
// golang.org/x/crypto/chacha20poly1305, the same x/crypto family the
// teacher already depends on for curve25519 and hkdf.
package streamaead

import (
	"fmt"

	"golang.org/x/crypto/chacha20"

	"github.com/coriolis-labs/cryptokit"
	"github.com/coriolis-labs/cryptokit/internal/byteutil"
	"github.com/coriolis-labs/cryptokit/mac"
	"github.com/coriolis-labs/cryptokit/secretkey"
)

// ChaCha20 implements cryptokit.Cipher over the raw, unauthenticated
// ChaCha20 stream cipher. IsX selects the 24-octet XChaCha20 nonce
// extension.
type ChaCha20 struct {
	IsX bool
}

func (c *ChaCha20) Algorithm() string {
	if c.IsX {
		return cryptokit.AlgXChaCha20
	}
	return cryptokit.AlgChaCha20
}

func (c *ChaCha20) SecretKeyLength() int { return chacha20.KeySize }

func (c *ChaCha20) NonceLength() int {
	if c.IsX {
		return chacha20.NonceSizeX
	}
	return chacha20.NonceSize
}

func (c *ChaCha20) MacAlgorithm() string { return mac.Empty{}.Algorithm() }

// CipherTextLength returns clearTextLen: ChaCha20 is a stream cipher, it
// does not pad.
func (c *ChaCha20) CipherTextLength(clearTextLen int) int { return clearTextLen }

func (c *ChaCha20) NewSecretKey() (*secretkey.SecretKey, error) {
	b, err := byteutil.RandomBytes(chacha20.KeySize)
	if err != nil {
		return nil, err
	}
	return secretkey.New(b, true), nil
}

// Encrypt runs EncryptAt with counter 0.
func (c *ChaCha20) Encrypt(clearText []byte, key *secretkey.SecretKey, nonce, aad []byte) (*cryptokit.SecretBox, error) {
	return c.EncryptAt(clearText, key, nonce, aad, 0)
}

// Decrypt runs DecryptAt with counter 0.
func (c *ChaCha20) Decrypt(box *cryptokit.SecretBox, key *secretkey.SecretKey, aad []byte) ([]byte, error) {
	return c.DecryptAt(box, key, aad, 0)
}

// EncryptAt XORs clearText with the ChaCha20 keystream starting at the
// given block counter, so a chunked caller can resume mid-message with
// EncryptAt/DecryptAt without re-deriving earlier blocks.
func (c *ChaCha20) EncryptAt(clearText []byte, key *secretkey.SecretKey, nonce, aad []byte, counter uint32) (*cryptokit.SecretBox, error) {
	if len(aad) != 0 {
		return nil, cryptokit.NewError(cryptokit.KindAadUnsupported, "streamaead.ChaCha20.Encrypt", nil)
	}

	k, err := key.Bytes()
	if err != nil {
		return nil, err
	}
	if len(k) != chacha20.KeySize {
		return nil, cryptokit.NewError(cryptokit.KindInvalidKeyLength, "streamaead.ChaCha20.Encrypt", fmt.Errorf("got %d bytes, want %d", len(k), chacha20.KeySize))
	}

	if nonce == nil {
		nonce, err = byteutil.RandomBytes(c.NonceLength())
		if err != nil {
			return nil, err
		}
	}
	if len(nonce) != c.NonceLength() {
		return nil, cryptokit.NewError(cryptokit.KindInvalidNonceLength, "streamaead.ChaCha20.Encrypt", fmt.Errorf("got %d bytes, want %d", len(nonce), c.NonceLength()))
	}

	stream, err := chacha20.NewUnauthenticatedCipher(k, nonce)
	if err != nil {
		return nil, cryptokit.NewError(cryptokit.KindUnsupported, "streamaead.ChaCha20.Encrypt", err)
	}
	stream.SetCounter(counter)

	cipherText := make([]byte, len(clearText))
	stream.XORKeyStream(cipherText, clearText)

	return &cryptokit.SecretBox{CipherText: cipherText, Nonce: nonce}, nil
}

// DecryptAt is EncryptAt's inverse; ChaCha20's keystream XOR is its own
// inverse.
func (c *ChaCha20) DecryptAt(box *cryptokit.SecretBox, key *secretkey.SecretKey, aad []byte, counter uint32) ([]byte, error) {
	if len(aad) != 0 {
		return nil, cryptokit.NewError(cryptokit.KindAadUnsupported, "streamaead.ChaCha20.Decrypt", nil)
	}

	k, err := key.Bytes()
	if err != nil {
		return nil, err
	}
	if len(k) != chacha20.KeySize {
		return nil, cryptokit.NewError(cryptokit.KindInvalidKeyLength, "streamaead.ChaCha20.Decrypt", fmt.Errorf("got %d bytes, want %d", len(k), chacha20.KeySize))
	}
	if len(box.Nonce) != c.NonceLength() {
		return nil, cryptokit.NewError(cryptokit.KindInvalidNonceLength, "streamaead.ChaCha20.Decrypt", fmt.Errorf("got %d bytes, want %d", len(box.Nonce), c.NonceLength()))
	}

	stream, err := chacha20.NewUnauthenticatedCipher(k, box.Nonce)
	if err != nil {
		return nil, cryptokit.NewError(cryptokit.KindUnsupported, "streamaead.ChaCha20.Decrypt", err)
	}
	stream.SetCounter(counter)

	clearText := make([]byte, len(box.CipherText))
	stream.XORKeyStream(clearText, box.CipherText)
	return clearText, nil
}
