// SPDX-License-Identifier: GPL-3.0-or-later

package aesmode

import (
	"bytes"
	"testing"

	"github.com/coriolis-labs/cryptokit"
)

func newTestAesCtr(t *testing.T) *AesCtr {
	t.Helper()
	c, err := NewAesCtr(AesCtrOptions{SecretKeyLength: 16})
	if err != nil {
		t.Fatalf("NewAesCtr: %v", err)
	}
	return c
}

func TestAesCtrRoundTrip(t *testing.T) {
	c := newTestAesCtr(t)

	key, err := c.NewSecretKey()
	if err != nil {
		t.Fatalf("NewSecretKey: %v", err)
	}

	clearText := []byte("the keystream never repeats across a nonce")
	box, err := c.Encrypt(clearText, key, nil, nil)
	if err != nil {
		t.Fatalf("Encrypt: %v", err)
	}

	got, err := c.Decrypt(box, key, nil)
	if err != nil {
		t.Fatalf("Decrypt: %v", err)
	}
	if !bytes.Equal(got, clearText) {
		t.Fatalf("round trip mismatch: got %q, want %q", got, clearText)
	}
}

// TestAesCtrResumeAtKeyStreamIndex checks that EncryptAt/DecryptAt resuming
// mid-stream reproduces the same keystream a single Encrypt call over the
// whole message would, letting a chunked caller process a long stream
// without re-deriving earlier chunks.
func TestAesCtrResumeAtKeyStreamIndex(t *testing.T) {
	c, err := NewAesCtr(AesCtrOptions{SecretKeyLength: 16})
	if err != nil {
		t.Fatalf("NewAesCtr: %v", err)
	}

	key, err := c.NewSecretKey()
	if err != nil {
		t.Fatalf("NewSecretKey: %v", err)
	}

	clearText := bytes.Repeat([]byte("0123456789abcdef"), 4) // 64 bytes, 4 blocks
	whole, err := c.EncryptAt(clearText, key, nil, nil, 0)
	if err != nil {
		t.Fatalf("EncryptAt whole: %v", err)
	}

	const splitAt = 32
	first, err := c.EncryptAt(clearText[:splitAt], key, whole.Nonce, nil, 0)
	if err != nil {
		t.Fatalf("EncryptAt first: %v", err)
	}
	second, err := c.EncryptAt(clearText[splitAt:], key, whole.Nonce, nil, splitAt)
	if err != nil {
		t.Fatalf("EncryptAt second: %v", err)
	}

	got := append(append([]byte{}, first.CipherText...), second.CipherText...)
	if !bytes.Equal(got, whole.CipherText) {
		t.Fatalf("resumed keystream mismatch: got %x, want %x", got, whole.CipherText)
	}
}

func TestAesCtrRejectsAad(t *testing.T) {
	c := newTestAesCtr(t)
	key, err := c.NewSecretKey()
	if err != nil {
		t.Fatalf("NewSecretKey: %v", err)
	}

	if _, err := c.Encrypt([]byte("hi"), key, nil, []byte("aad")); !cryptokit.IsKind(err, cryptokit.KindAadUnsupported) {
		t.Fatalf("expected KindAadUnsupported, got %v", err)
	}
}

func TestAesCtrRejectsUnalignedCounterBits(t *testing.T) {
	if _, err := NewAesCtr(AesCtrOptions{SecretKeyLength: 16, CounterBits: 5}); !cryptokit.IsKind(err, cryptokit.KindInvalidCounterBits) {
		t.Fatalf("expected KindInvalidCounterBits, got %v", err)
	}
}

func TestAesCtrNonceLengthTracksCounterBits(t *testing.T) {
	c, err := NewAesCtr(AesCtrOptions{SecretKeyLength: 16, CounterBits: 32})
	if err != nil {
		t.Fatalf("NewAesCtr: %v", err)
	}
	if c.NonceLength() != 12 {
		t.Fatalf("expected 12-byte nonce for 32-bit counter, got %d", c.NonceLength())
	}
}
