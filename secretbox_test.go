// SPDX-License-Identifier: GPL-3.0-or-later

package cryptokit

import (
	"bytes"
	"testing"
)

func TestSecretBoxConcatenateRoundTrip(t *testing.T) {
	box := SecretBox{
		CipherText: []byte("ciphertext"),
		Nonce:      []byte("0123456789ab"),
		Mac:        []byte("0123456789abcdef"),
	}

	data := box.Concatenate(true, true)

	got, err := FromConcatenation(data, len(box.Nonce), len(box.Mac))
	if err != nil {
		t.Fatalf("FromConcatenation: %v", err)
	}
	if !bytes.Equal(got.Nonce, box.Nonce) || !bytes.Equal(got.CipherText, box.CipherText) || !bytes.Equal(got.Mac, box.Mac) {
		t.Fatalf("round trip mismatch: got %+v, want %+v", got, box)
	}
}

func TestSecretBoxConcatenateOmitsFields(t *testing.T) {
	box := SecretBox{CipherText: []byte("ct"), Nonce: []byte("nonce"), Mac: []byte("mac")}

	onlyCipherText := box.Concatenate(false, false)
	if !bytes.Equal(onlyCipherText, []byte("ct")) {
		t.Fatalf("got %q, want %q", onlyCipherText, "ct")
	}
}

func TestFromConcatenationRejectsShortInput(t *testing.T) {
	if _, err := FromConcatenation([]byte("short"), 12, 16); err == nil {
		t.Fatal("expected error for input shorter than nonce+mac")
	}
}

func TestErrorIsKind(t *testing.T) {
	err := NewError(KindAuthFailure, "test.Op", nil)
	if !IsKind(err, KindAuthFailure) {
		t.Fatal("expected IsKind to match the error's own Kind")
	}
	if IsKind(err, KindWeakKey) {
		t.Fatal("expected IsKind to reject a different Kind")
	}
}

func TestParamsOfKnownTypes(t *testing.T) {
	p := ParamsOf(KeyPairX25519)
	if p.PrivateKeyLength != 32 || p.PublicKeyLength != 32 {
		t.Fatalf("unexpected X25519 params: %+v", p)
	}

	p521 := ParamsOf(KeyPairP521)
	if p521.PrivateKeyLength != 66 || p521.PublicKeyLength != 66 {
		t.Fatalf("unexpected P-521 params: %+v", p521)
	}
}
