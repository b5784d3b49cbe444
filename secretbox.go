// SPDX-License-Identifier: GPL-3.0-or-later

package cryptokit

import "fmt"

// SecretBox is a triple (cipherText, nonce, mac) carrying the output of an
// authenticated encryption. mac is empty for unauthenticated ciphers paired
// with MAC.empty.
type SecretBox struct {
	CipherText []byte
	Nonce      []byte
	Mac        []byte
}

// Concatenate returns nonce || cipherText || mac, byte-exact. Either the
// nonce or the mac may be omitted by the caller regardless of what this
// SecretBox holds, by passing includeNonce/includeMac false.
func (b SecretBox) Concatenate(includeNonce, includeMac bool) []byte {
	n := len(b.CipherText)
	if includeNonce {
		n += len(b.Nonce)
	}
	if includeMac {
		n += len(b.Mac)
	}

	out := make([]byte, 0, n)
	if includeNonce {
		out = append(out, b.Nonce...)
	}
	out = append(out, b.CipherText...)
	if includeMac {
		out = append(out, b.Mac...)
	}
	return out
}

// FromConcatenation splits data laid out as nonce || cipherText || mac into
// a SecretBox, given the caller-supplied nonceLength and macLength. The
// split is purely positional and must match the original lengths exactly.
func FromConcatenation(data []byte, nonceLength, macLength int) (SecretBox, error) {
	if len(data) < nonceLength+macLength {
		return SecretBox{}, fmt.Errorf("cryptokit: concatenated box of %d bytes too short for nonce=%d mac=%d", len(data), nonceLength, macLength)
	}

	return SecretBox{
		Nonce:      data[:nonceLength],
		CipherText: data[nonceLength : len(data)-macLength],
		Mac:        data[len(data)-macLength:],
	}, nil
}
