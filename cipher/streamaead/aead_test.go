// SPDX-License-Identifier: GPL-3.0-or-later

package streamaead

import (
	"bytes"
	"encoding/hex"
	"testing"

	"github.com/coriolis-labs/cryptokit"
	"github.com/coriolis-labs/cryptokit/secretkey"
)

func mustHex(t *testing.T, s string) []byte {
	t.Helper()
	b, err := hex.DecodeString(s)
	if err != nil {
		t.Fatalf("hex.DecodeString(%q): %v", s, err)
	}
	return b
}

// TestChaCha20Poly1305Rfc7539Vector reproduces RFC 7539 §2.8.2's
// ChaCha20-Poly1305 AEAD test vector.
func TestChaCha20Poly1305Rfc7539Vector(t *testing.T) {
	key := mustHex(t, "808182838485868788898a8b8c8d8e8f909192939495969798999a9b9c9d9e9f")
	nonce := mustHex(t, "070000004041424344454647")
	aad := mustHex(t, "50515253c0c1c2c3c4c5c6c7")
	plainText := []byte("Ladies and Gentlemen of the class of '99: If I could offer you only one tip for the future, sunscreen would be it.")

	wantCipherText := mustHex(t, "d31a8d34648e60db7b86afbc53ef7ec2a4aded51296e08fea9e2b5a736ee62d63dbea45e8ca9671282fafb69da92728b1a71de0a9e060b2905d6a5b67ecd3b3692ddbd7f2d778b8c9803aee328091b58fab324e4fad675945585808b4831d7bc3ff4def08e4b7a9de576d26586cec64b6116")
	wantTag := mustHex(t, "1ae10b594f09e26a7e902ecbd0600691")

	c := &ChaCha20Poly1305{}
	key32 := secretkey.New(key, false)

	box, err := c.Encrypt(plainText, key32, nonce, aad)
	if err != nil {
		t.Fatalf("Encrypt: %v", err)
	}
	if !bytes.Equal(box.CipherText, wantCipherText) {
		t.Fatalf("ciphertext mismatch:\n got %x\nwant %x", box.CipherText, wantCipherText)
	}
	if !bytes.Equal(box.Mac, wantTag) {
		t.Fatalf("tag mismatch: got %x, want %x", box.Mac, wantTag)
	}

	got, err := c.Decrypt(box, key32, aad)
	if err != nil {
		t.Fatalf("Decrypt: %v", err)
	}
	if !bytes.Equal(got, plainText) {
		t.Fatalf("decrypted plaintext mismatch: got %q, want %q", got, plainText)
	}
}

func TestXChaCha20Poly1305RoundTrip(t *testing.T) {
	c := &ChaCha20Poly1305{IsX: true}

	key, err := c.NewSecretKey()
	if err != nil {
		t.Fatalf("NewSecretKey: %v", err)
	}

	clearText := []byte("xchacha uses a 24-byte extended nonce")
	aad := []byte("context")

	box, err := c.Encrypt(clearText, key, nil, aad)
	if err != nil {
		t.Fatalf("Encrypt: %v", err)
	}
	if len(box.Nonce) != 24 {
		t.Fatalf("expected 24-byte nonce, got %d", len(box.Nonce))
	}

	got, err := c.Decrypt(box, key, aad)
	if err != nil {
		t.Fatalf("Decrypt: %v", err)
	}
	if !bytes.Equal(got, clearText) {
		t.Fatalf("round trip mismatch: got %q, want %q", got, clearText)
	}

	box.Mac[0] ^= 0x01
	if _, err := c.Decrypt(box, key, aad); !cryptokit.IsKind(err, cryptokit.KindAuthFailure) {
		t.Fatalf("expected KindAuthFailure, got %v", err)
	}
}

func TestChaCha20Poly1305RejectsBadKeyLength(t *testing.T) {
	c := &ChaCha20Poly1305{}
	badKey := secretkey.New(make([]byte, 16), false)
	if _, err := c.Encrypt([]byte("hi"), badKey, nil, nil); !cryptokit.IsKind(err, cryptokit.KindInvalidKeyLength) {
		t.Fatalf("expected KindInvalidKeyLength, got %v", err)
	}
}
