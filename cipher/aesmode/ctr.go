// SPDX-License-Identifier: GPL-3.0-or-later

package aesmode

import (
	"fmt"

	"github.com/coriolis-labs/cryptokit"
	"github.com/coriolis-labs/cryptokit/internal/byteutil"
	"github.com/coriolis-labs/cryptokit/mac"
	"github.com/coriolis-labs/cryptokit/secretkey"
)

const aesBlockSize = 16

// AesCtrOptions configures an AesCtr Cipher.
type AesCtrOptions struct {
	SecretKeyLength int
	// CounterBits is the width of the incrementing low-order counter within
	// the 16-octet counter block; the remaining high-order bits are the
	// nonce. Must be a byte-aligned multiple of 8 in [8, 128]; defaults to
	// 64 when 0.
	CounterBits int
	Mac         cryptokit.Mac // optional; defaults to mac.Empty when nil
}

func (o AesCtrOptions) normalize() AesCtrOptions {
	if o.CounterBits == 0 {
		o.CounterBits = 64
	}
	if o.Mac == nil {
		o.Mac = mac.Empty{}
	}
	return o
}

// AesCtr implements cryptokit.Cipher over AES-CTR (NIST SP 800-38A).
type AesCtr struct {
	opts AesCtrOptions
}

// NewAesCtr validates opts and returns an AesCtr Cipher.
func NewAesCtr(opts AesCtrOptions) (*AesCtr, error) {
	opts = opts.normalize()

	if !validKeyLength(opts.SecretKeyLength) {
		return nil, cryptokit.NewError(cryptokit.KindInvalidKeyLength, "aesmode.NewAesCtr", fmt.Errorf("key length must be 16, 24 or 32, got %d", opts.SecretKeyLength))
	}
	if opts.CounterBits < 1 || opts.CounterBits > 128 {
		return nil, cryptokit.NewError(cryptokit.KindInvalidCounterBits, "aesmode.NewAesCtr", fmt.Errorf("counterBits must be in [1,128], got %d", opts.CounterBits))
	}
	if opts.CounterBits%8 != 0 {
		return nil, cryptokit.NewError(cryptokit.KindInvalidCounterBits, "aesmode.NewAesCtr", fmt.Errorf("cryptokit requires a byte-aligned counterBits, got %d", opts.CounterBits))
	}

	return &AesCtr{opts: opts}, nil
}

func (c *AesCtr) Algorithm() string    { return cryptokit.AlgAesCtr }
func (c *AesCtr) SecretKeyLength() int { return c.opts.SecretKeyLength }
func (c *AesCtr) counterBytes() int    { return c.opts.CounterBits / 8 }
func (c *AesCtr) NonceLength() int     { return aesBlockSize - c.counterBytes() }
func (c *AesCtr) MacAlgorithm() string { return c.opts.Mac.Algorithm() }

// CipherTextLength returns clearTextLen: CTR is a stream cipher, it does
// not pad.
func (c *AesCtr) CipherTextLength(clearTextLen int) int { return clearTextLen }

func (c *AesCtr) NewSecretKey() (*secretkey.SecretKey, error) {
	return newSecretKey(c.opts.SecretKeyLength)
}

// Encrypt runs EncryptAt with keyStreamIndex 0.
func (c *AesCtr) Encrypt(clearText []byte, key *secretkey.SecretKey, nonce, aad []byte) (*cryptokit.SecretBox, error) {
	return c.EncryptAt(clearText, key, nonce, aad, 0)
}

// Decrypt runs DecryptAt with keyStreamIndex 0.
func (c *AesCtr) Decrypt(box *cryptokit.SecretBox, key *secretkey.SecretKey, aad []byte) ([]byte, error) {
	return c.DecryptAt(box, key, aad, 0)
}

// EncryptAt XORs clearText with the keystream starting at keyStreamIndex
// octets in. Encryption and decryption are identical for a stream cipher,
// so a chunked caller can resume mid-stream with EncryptAt/DecryptAt.
func (c *AesCtr) EncryptAt(clearText []byte, key *secretkey.SecretKey, nonce, aad []byte, keyStreamIndex int) (*cryptokit.SecretBox, error) {
	if len(aad) != 0 {
		return nil, cryptokit.NewError(cryptokit.KindAadUnsupported, "aesmode.AesCtr.Encrypt", nil)
	}

	k, err := key.Bytes()
	if err != nil {
		return nil, err
	}
	if err := checkKeyLength("aesmode.AesCtr.Encrypt", k, c.opts.SecretKeyLength); err != nil {
		return nil, err
	}

	if nonce == nil {
		nonce, err = byteutil.RandomBytes(c.NonceLength())
		if err != nil {
			return nil, err
		}
	}
	if err := checkNonceLength("aesmode.AesCtr.Encrypt", nonce, c.NonceLength()); err != nil {
		return nil, err
	}

	block, err := newBlockCipher(k)
	if err != nil {
		return nil, err
	}

	cipherText := make([]byte, len(clearText))
	xorKeyStream(block, nonce, c.counterBytes(), keyStreamIndex, clearText, cipherText)

	mac, err := c.opts.Mac.Compute(cipherText, key)
	if err != nil {
		return nil, err
	}

	return &cryptokit.SecretBox{CipherText: cipherText, Nonce: nonce, Mac: mac}, nil
}

// DecryptAt is EncryptAt's inverse; since CTR's keystream XOR is its own
// inverse, it verifies the Mac first, then runs the identical keystream XOR.
func (c *AesCtr) DecryptAt(box *cryptokit.SecretBox, key *secretkey.SecretKey, aad []byte, keyStreamIndex int) ([]byte, error) {
	if len(aad) != 0 {
		return nil, cryptokit.NewError(cryptokit.KindAadUnsupported, "aesmode.AesCtr.Decrypt", nil)
	}

	k, err := key.Bytes()
	if err != nil {
		return nil, err
	}
	if err := checkKeyLength("aesmode.AesCtr.Decrypt", k, c.opts.SecretKeyLength); err != nil {
		return nil, err
	}
	if err := checkNonceLength("aesmode.AesCtr.Decrypt", box.Nonce, c.NonceLength()); err != nil {
		return nil, err
	}

	ok, err := c.opts.Mac.Verify(box.Mac, box.CipherText, key)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, cryptokit.NewError(cryptokit.KindAuthFailure, "aesmode.AesCtr.Decrypt", nil)
	}

	block, err := newBlockCipher(k)
	if err != nil {
		return nil, err
	}

	clearText := make([]byte, len(box.CipherText))
	xorKeyStream(block, box.Nonce, c.counterBytes(), keyStreamIndex, box.CipherText, clearText)
	return clearText, nil
}

// xorKeyStream XORs src into dst using the AES-CTR keystream derived from
// (nonce || counter), starting keyStreamIndex octets into the stream. The
// counter occupies the low counterBytes bytes of the 16-byte block and
// wraps without carrying into nonce.
func xorKeyStream(block cipher, nonce []byte, counterBytes, keyStreamIndex int, src, dst []byte) {
	blockOffset := keyStreamIndex / aesBlockSize
	inBlockOffset := keyStreamIndex % aesBlockSize

	counterBlock := make([]byte, aesBlockSize)
	copy(counterBlock, nonce)
	addCounter(counterBlock, counterBytes, blockOffset)

	keystream := make([]byte, aesBlockSize)
	pos := 0

	for pos < len(src) {
		block.Encrypt(keystream, counterBlock)

		start := 0
		if pos == 0 {
			start = inBlockOffset
		}

		for i := start; i < aesBlockSize && pos < len(src); i++ {
			dst[pos] = src[pos] ^ keystream[i]
			pos++
		}

		byteutil.IncrementBE(counterBlock[aesBlockSize-counterBytes:], counterBytes*8)
	}
}

// addCounter adds n to the low counterBytes bytes of block, treating them
// as a big-endian unsigned integer, without carrying into the remaining
// high-order bytes.
func addCounter(block []byte, counterBytes, n int) {
	ctr := block[aesBlockSize-counterBytes:]
	carry := n
	for i := len(ctr) - 1; i >= 0 && carry != 0; i-- {
		sum := int(ctr[i]) + carry
		ctr[i] = byte(sum)
		carry = sum >> 8
	}
}

// cipher is the minimal block-cipher interface xorKeyStream needs.
type cipher interface {
	Encrypt(dst, src []byte)
}
