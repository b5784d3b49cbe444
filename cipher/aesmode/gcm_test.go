// SPDX-License-Identifier: GPL-3.0-or-later

package aesmode

import (
	"bytes"
	"encoding/hex"
	"testing"

	"github.com/coriolis-labs/cryptokit"
	"github.com/coriolis-labs/cryptokit/secretkey"
)

// TestAesGcmNistVector1 reproduces NIST SP 800-38D's AES-GCM test vector 1:
// an all-zero 128-bit key, an all-zero 96-bit IV, and empty plaintext/AAD,
// expecting the given authentication tag.
func TestAesGcmNistVector1(t *testing.T) {
	c, err := NewAesGcm(AesGcmOptions{SecretKeyLength: 16})
	if err != nil {
		t.Fatalf("NewAesGcm: %v", err)
	}

	key := secretkey.New(make([]byte, 16), false)
	nonce := make([]byte, 12)

	box, err := c.Encrypt(nil, key, nonce, nil)
	if err != nil {
		t.Fatalf("Encrypt: %v", err)
	}

	wantTag, err := hex.DecodeString("58E2FCCEFA7E3061367F1D57A4E7455A")
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(box.Mac, wantTag) {
		t.Fatalf("tag mismatch: got %x, want %x", box.Mac, wantTag)
	}
	if len(box.CipherText) != 0 {
		t.Fatalf("expected empty ciphertext, got %d bytes", len(box.CipherText))
	}

	clearText, err := c.Decrypt(box, key, nil)
	if err != nil {
		t.Fatalf("Decrypt: %v", err)
	}
	if len(clearText) != 0 {
		t.Fatalf("expected empty clearText, got %d bytes", len(clearText))
	}
}

func TestAesGcmRoundTripWithAad(t *testing.T) {
	c, err := NewAesGcm(AesGcmOptions{SecretKeyLength: 32})
	if err != nil {
		t.Fatalf("NewAesGcm: %v", err)
	}

	key, err := c.NewSecretKey()
	if err != nil {
		t.Fatalf("NewSecretKey: %v", err)
	}

	clearText := []byte("the quick brown fox jumps over the lazy dog")
	aad := []byte("header")

	box, err := c.Encrypt(clearText, key, nil, aad)
	if err != nil {
		t.Fatalf("Encrypt: %v", err)
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
		t.Fatalf("expected KindAuthFailure on flipped tag, got %v", err)
	}
}

func TestAesGcmArbitraryNonceLength(t *testing.T) {
	c, err := NewAesGcm(AesGcmOptions{SecretKeyLength: 16, NonceLength: 16})
	if err != nil {
		t.Fatalf("NewAesGcm: %v", err)
	}

	key, err := c.NewSecretKey()
	if err != nil {
		t.Fatalf("NewSecretKey: %v", err)
	}

	clearText := []byte("variable nonce length")
	box, err := c.Encrypt(clearText, key, nil, nil)
	if err != nil {
		t.Fatalf("Encrypt: %v", err)
	}
	if len(box.Nonce) != 16 {
		t.Fatalf("expected 16-byte nonce, got %d", len(box.Nonce))
	}

	got, err := c.Decrypt(box, key, nil)
	if err != nil {
		t.Fatalf("Decrypt: %v", err)
	}
	if !bytes.Equal(got, clearText) {
		t.Fatalf("round trip mismatch: got %q, want %q", got, clearText)
	}
}

func TestAesGcmRejectsBadKeyLength(t *testing.T) {
	if _, err := NewAesGcm(AesGcmOptions{SecretKeyLength: 15}); !cryptokit.IsKind(err, cryptokit.KindInvalidKeyLength) {
		t.Fatalf("expected KindInvalidKeyLength, got %v", err)
	}
}
