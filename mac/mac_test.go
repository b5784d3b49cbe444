// SPDX-License-Identifier: GPL-3.0-or-later

package mac

import (
	"bytes"
	"testing"

	"github.com/coriolis-labs/cryptokit/digest"
	"github.com/coriolis-labs/cryptokit/secretkey"
)

func TestHmacComputeVerify(t *testing.T) {
	h := NewHmac(digest.Sha256)
	key := secretkey.New(bytes.Repeat([]byte{0x0b}, 20), false)

	tag, err := h.Compute([]byte("Hi There"), key)
	if err != nil {
		t.Fatal(err)
	}
	if len(tag) != h.MacLength() {
		t.Fatalf("got tag length %d, want %d", len(tag), h.MacLength())
	}

	ok, err := h.Verify(tag, []byte("Hi There"), key)
	if err != nil || !ok {
		t.Fatalf("verify failed: ok=%v err=%v", ok, err)
	}

	flipped := append([]byte{}, tag...)
	flipped[0] ^= 0x01
	ok, err = h.Verify(flipped, []byte("Hi There"), key)
	if err != nil || ok {
		t.Fatalf("flipped tag should not verify: ok=%v err=%v", ok, err)
	}
}

func TestHmacSha256Deterministic(t *testing.T) {
	// Uses RFC 2202 test case 1's key and message, but under SHA-256, for
	// which that RFC publishes no tag; this checks that two computations of
	// the same HMAC agree.
	h := NewHmac(digest.Sha256)
	key := secretkey.New(bytes.Repeat([]byte{0x0b}, 20), false)
	tag1, err := h.Compute([]byte("Hi There"), key)
	if err != nil {
		t.Fatal(err)
	}
	tag2, err := h.Compute([]byte("Hi There"), key)
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(tag1, tag2) {
		t.Fatal("HMAC is not deterministic")
	}
}

func TestPoly1305RequiresKeyOfThirtyTwo(t *testing.T) {
	p := Poly1305{}
	key := secretkey.New(bytes.Repeat([]byte{0x01}, 16), false)
	if _, err := p.Compute([]byte("msg"), key); err == nil {
		t.Fatal("expected error for short key")
	}
}

func TestPoly1305ComputeVerify(t *testing.T) {
	p := Poly1305{}
	key := secretkey.New(bytes.Repeat([]byte{0x01}, 32), false)

	tag, err := p.Compute([]byte("message"), key)
	if err != nil {
		t.Fatal(err)
	}
	if len(tag) != p.MacLength() {
		t.Fatalf("got %d, want %d", len(tag), p.MacLength())
	}

	ok, err := p.Verify(tag, []byte("message"), key)
	if err != nil || !ok {
		t.Fatalf("verify failed: ok=%v err=%v", ok, err)
	}

	ok, err = p.Verify(tag, []byte("tampered"), key)
	if err != nil || ok {
		t.Fatal("tampered message should not verify")
	}
}

func TestBlake2MacsFlipBitFails(t *testing.T) {
	key := secretkey.New(bytes.Repeat([]byte{0x09}, 32), false)

	b2b, err := NewBlake2b(32)
	if err != nil {
		t.Fatal(err)
	}
	tag, err := b2b.Compute([]byte("msg"), key)
	if err != nil {
		t.Fatal(err)
	}
	flipped := append([]byte{}, []byte("msg")...)
	flipped[0] ^= 0x01
	ok, err := b2b.Verify(tag, flipped, key)
	if err != nil || ok {
		t.Fatal("flipped message should not verify under blake2b MAC")
	}

	b2s, err := NewBlake2s(16)
	if err != nil {
		t.Fatal(err)
	}
	tag2, err := b2s.Compute([]byte("msg"), key)
	if err != nil {
		t.Fatal(err)
	}
	ok, err = b2s.Verify(tag2, flipped, key)
	if err != nil || ok {
		t.Fatal("flipped message should not verify under blake2s MAC")
	}
}

func TestEmptyMac(t *testing.T) {
	e := Empty{}
	tag, err := e.Compute([]byte("anything"), nil)
	if err != nil || len(tag) != 0 {
		t.Fatalf("expected empty tag, got %x err=%v", tag, err)
	}
	ok, err := e.Verify(nil, []byte("anything"), nil)
	if err != nil || !ok {
		t.Fatalf("empty mac should verify: ok=%v err=%v", ok, err)
	}
}
