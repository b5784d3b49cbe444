// SPDX-License-Identifier: GPL-3.0-or-later

package aesmode

import (
	"bytes"
	"encoding/hex"
	"testing"
)

func mustDecodeHex(t *testing.T, s string) []byte {
	t.Helper()
	b, err := hex.DecodeString(s)
	if err != nil {
		t.Fatalf("hex.DecodeString(%q): %v", s, err)
	}
	return b
}

// TestGhashNistVector2 folds the ciphertext and length blocks from NIST SP
// 800-38D's AES-GCM test case 2 (all-zero 128-bit key, all-zero 96-bit IV,
// a single all-zero plaintext block, no AAD) and checks that GHASH's
// running state matches GHASH_H(C || [len(A)]64 || [len(C)]64) for that
// vector, which combined with E(K, J0) reproduces the published tag
// ab6e47d42cec13bdf53a67b21257bddf.
func TestGhashNistVector2(t *testing.T) {
	h := mustDecodeHex(t, "66e94bd4ef8a2c3b884cfa59ca342b2e")
	cipherText := mustDecodeHex(t, "0388dace60b6a392f328c2b971b2fe78")

	lengthBlock := make([]byte, 16)
	// len(A) = 0 bits in the high 64 bits, len(C) = 128 bits in the low 64.
	lengthBlock[15] = 128

	g := NewGhash(h)
	g.Block(cipherText)
	g.Block(lengthBlock)

	want := mustDecodeHex(t, "f38cbb1ad69223dcc3457ae5b6b0f885")
	got := g.Sum()
	if !bytes.Equal(got[:], want) {
		t.Fatalf("GHASH mismatch: got %x, want %x", got, want)
	}
}

func TestGhashZeroBlockFromZeroStateIsZero(t *testing.T) {
	h := mustDecodeHex(t, "66e94bd4ef8a2c3b884cfa59ca342b2e")
	g := NewGhash(h)
	g.Block(make([]byte, 16))

	got := g.Sum()
	want := [16]byte{}
	if got != want {
		t.Fatalf("expected zero sum folding a zero block, got %x", got)
	}
}

func TestGhashResetClearsState(t *testing.T) {
	h := mustDecodeHex(t, "66e94bd4ef8a2c3b884cfa59ca342b2e")
	g := NewGhash(h)
	g.Block(mustDecodeHex(t, "0388dace60b6a392f328c2b971b2fe78"))

	g.Reset()
	got := g.Sum()
	want := [16]byte{}
	if got != want {
		t.Fatalf("expected zero sum after Reset, got %x", got)
	}
}
