// SPDX-License-Identifier: GPL-3.0-or-later

package nist

import (
	"bytes"
	"testing"

	"github.com/coriolis-labs/cryptokit/digest"
)

func TestEcdhSharedSecretCommutativity(t *testing.T) {
	for _, curve := range []Curve{P256, P384, P521} {
		e := Ecdh{Curve: curve}

		alice, err := e.NewKeyPair()
		if err != nil {
			t.Fatal(err)
		}
		bob, err := e.NewKeyPair()
		if err != nil {
			t.Fatal(err)
		}

		secretA, err := e.SharedSecretKey(alice.PrivateKey, bob.PublicKey)
		if err != nil {
			t.Fatal(err)
		}
		secretB, err := e.SharedSecretKey(bob.PrivateKey, alice.PublicKey)
		if err != nil {
			t.Fatal(err)
		}

		if !bytes.Equal(secretA, secretB) {
			t.Errorf("curve %v: shared secrets differ", curve)
		}
		if len(secretA) != curve.byteLen() {
			t.Errorf("curve %v: shared secret length %d, want %d", curve, len(secretA), curve.byteLen())
		}
	}
}

func TestEcdsaSignVerifyRoundTrip(t *testing.T) {
	for _, curve := range []Curve{P256, P384, P521} {
		e := Ecdsa{Curve: curve, Hash: digest.Sha256}

		kp, err := e.NewKeyPair()
		if err != nil {
			t.Fatal(err)
		}

		msg := []byte("sign me, curve " + curve.algorithmECDSA())
		sig, err := e.Sign(msg, kp.PrivateKey)
		if err != nil {
			t.Fatal(err)
		}

		if !e.Verify(msg, sig, kp.PublicKey) {
			t.Errorf("curve %v: expected signature to verify", curve)
		}

		if e.Verify(append(msg, 0x00), sig, kp.PublicKey) {
			t.Errorf("curve %v: signature verified over a different message", curve)
		}

		flipped := append([]byte{}, sig...)
		flipped[0] ^= 0x01
		if e.Verify(msg, flipped, kp.PublicKey) {
			t.Errorf("curve %v: flipped signature should not verify", curve)
		}
	}
}

func TestEcdsaRejectsMismatchedLengths(t *testing.T) {
	e := Ecdsa{Curve: P256, Hash: digest.Sha256}
	if e.Verify([]byte("msg"), make([]byte, 10), make([]byte, 64)) {
		t.Fatal("short signature must not verify")
	}
	if e.Verify([]byte("msg"), make([]byte, 64), make([]byte, 10)) {
		t.Fatal("short public key must not verify")
	}
}
