// SPDX-License-Identifier: GPL-3.0-or-later

// Package nist implements cryptokit's KeyExchange and Signature traits over
// the NIST P-256, P-384 and P-521 curves (FIPS 186-4 ECDSA, SEC 1 point
// encoding).
//
// Key agreement and signing both use stdlib crypto/ecdh, crypto/ecdsa and
// crypto/elliptic rather than hand-rolled Jacobian-coordinate arithmetic.
package nist

import (
	stdecdh "crypto/ecdh"
	"crypto/ecdsa"
	"crypto/elliptic"
	"crypto/rand"
	"fmt"
	"math/big"

	"github.com/coriolis-labs/cryptokit"
	"github.com/coriolis-labs/cryptokit/digest"
)

// Curve identifies one of the three NIST curves this package supports.
type Curve int

const (
	P256 Curve = iota
	P384
	P521
)

func (c Curve) ecdhCurve() stdecdh.Curve {
	switch c {
	case P256:
		return stdecdh.P256()
	case P384:
		return stdecdh.P384()
	default:
		return stdecdh.P521()
	}
}

func (c Curve) ellipticCurve() elliptic.Curve {
	switch c {
	case P256:
		return elliptic.P256()
	case P384:
		return elliptic.P384()
	default:
		return elliptic.P521()
	}
}

func (c Curve) keyPairType() cryptokit.KeyPairType {
	switch c {
	case P256:
		return cryptokit.KeyPairP256
	case P384:
		return cryptokit.KeyPairP384
	default:
		return cryptokit.KeyPairP521
	}
}

// byteLen returns ⌈bits/8⌉ for the curve's field, the fixed width used to
// serialize scalars and affine coordinates.
func (c Curve) byteLen() int {
	switch c {
	case P256:
		return 32
	case P384:
		return 48
	default:
		return 66
	}
}

func (c Curve) algorithmECDH() string {
	switch c {
	case P256:
		return cryptokit.AlgEcdhP256
	case P384:
		return cryptokit.AlgEcdhP384
	default:
		return cryptokit.AlgEcdhP521
	}
}

func (c Curve) algorithmECDSA() string {
	switch c {
	case P256:
		return cryptokit.AlgEcdsaP256
	case P384:
		return cryptokit.AlgEcdsaP384
	default:
		return cryptokit.AlgEcdsaP521
	}
}

// Ecdh implements cryptokit.KeyExchange for one NIST curve.
type Ecdh struct {
	Curve Curve
}

func (e Ecdh) Algorithm() string { return e.Curve.algorithmECDH() }

// NewKeyPair generates a random private scalar d and its public point
// Q = d*G, returning Q as concatenated big-endian (x, y) affine coordinates.
func (e Ecdh) NewKeyPair() (*cryptokit.KeyPair, error) {
	priv, err := e.Curve.ecdhCurve().GenerateKey(rand.Reader)
	if err != nil {
		return nil, err
	}

	pub, err := AffineFromUncompressed(e.Curve, priv.PublicKey().Bytes())
	if err != nil {
		return nil, err
	}

	return &cryptokit.KeyPair{
		Type:       e.Curve.keyPairType(),
		PrivateKey: priv.Bytes(),
		PublicKey:  pub,
	}, nil
}

// SharedSecretKey computes (x,y) = d_A * Q_B and returns x serialized
// big-endian to the curve's byte length.
func (e Ecdh) SharedSecretKey(myPrivate, theirPublicAffine []byte) ([]byte, error) {
	curve := e.Curve.ecdhCurve()

	priv, err := curve.NewPrivateKey(myPrivate)
	if err != nil {
		return nil, cryptokit.NewError(cryptokit.KindInvalidKeyLength, "nist.Ecdh.SharedSecretKey", err)
	}

	uncompressed, err := UncompressedFromAffine(e.Curve, theirPublicAffine)
	if err != nil {
		return nil, err
	}

	pub, err := curve.NewPublicKey(uncompressed)
	if err != nil {
		return nil, cryptokit.NewError(cryptokit.KindPointNotOnCurve, "nist.Ecdh.SharedSecretKey", err)
	}

	secret, err := priv.ECDH(pub)
	if err != nil {
		return nil, err
	}
	return secret, nil
}

// AffineFromUncompressed splits an uncompressed SEC1 point (0x04 || x || y)
// into concatenated fixed-width (x, y), cryptokit's KeyPair public-key
// representation for NIST curves.
func AffineFromUncompressed(curve Curve, uncompressed []byte) ([]byte, error) {
	n := curve.byteLen()
	if len(uncompressed) != 1+2*n || uncompressed[0] != 0x04 {
		return nil, fmt.Errorf("nist: malformed uncompressed point")
	}
	return uncompressed[1:], nil
}

// UncompressedFromAffine rebuilds an uncompressed SEC1 point from
// concatenated fixed-width (x, y) affine coordinates.
func UncompressedFromAffine(curve Curve, affine []byte) ([]byte, error) {
	n := curve.byteLen()
	if len(affine) != 2*n {
		return nil, cryptokit.NewError(cryptokit.KindInvalidKeyLength, "nist.UncompressedFromAffine", fmt.Errorf("expected %d bytes, got %d", 2*n, len(affine)))
	}
	out := make([]byte, 1+len(affine))
	out[0] = 0x04
	copy(out[1:], affine)
	return out, nil
}

// Ecdsa implements cryptokit.Signature for one NIST curve with a
// caller-chosen digest.
type Ecdsa struct {
	Curve Curve
	Hash  digest.ShaFamily
}

func (e Ecdsa) Algorithm() string { return e.Curve.algorithmECDSA() }

// NewKeyPair generates a random ECDSA key pair on the configured curve.
func (e Ecdsa) NewKeyPair() (*cryptokit.KeyPair, error) {
	priv, err := ecdsa.GenerateKey(e.Curve.ellipticCurve(), rand.Reader)
	if err != nil {
		return nil, err
	}

	n := e.Curve.byteLen()
	pub := make([]byte, 2*n)
	priv.X.FillBytes(pub[:n])
	priv.Y.FillBytes(pub[n:])

	d := make([]byte, n)
	priv.D.FillBytes(d)

	return &cryptokit.KeyPair{Type: e.Curve.keyPairType(), PrivateKey: d, PublicKey: pub}, nil
}

// Sign computes a deterministic-length (r, s) ECDSA signature over
// Hash(message), each of the curve's byte length, concatenated.
func (e Ecdsa) Sign(message, privateKey []byte) ([]byte, error) {
	n := e.Curve.byteLen()
	if len(privateKey) != n {
		return nil, cryptokit.NewError(cryptokit.KindInvalidKeyLength, "nist.Ecdsa.Sign", fmt.Errorf("private key must be %d bytes", n))
	}

	priv := new(ecdsa.PrivateKey)
	priv.Curve = e.Curve.ellipticCurve()
	priv.D = new(big.Int).SetBytes(privateKey)
	priv.X, priv.Y = priv.Curve.ScalarBaseMult(privateKey)

	digestBytes := e.Hash.Sum(message)
	r, s, err := ecdsa.Sign(rand.Reader, priv, digestBytes)
	if err != nil {
		return nil, err
	}

	sig := make([]byte, 2*n)
	r.FillBytes(sig[:n])
	s.FillBytes(sig[n:])
	return sig, nil
}

// Verify reports whether signature is a valid ECDSA signature of message
// under publicKey, never returning an error for a mismatch, only false.
func (e Ecdsa) Verify(message, signature, publicKey []byte) bool {
	n := e.Curve.byteLen()
	if len(publicKey) != 2*n || len(signature) != 2*n {
		return false
	}

	pub := &ecdsa.PublicKey{
		Curve: e.Curve.ellipticCurve(),
		X:     new(big.Int).SetBytes(publicKey[:n]),
		Y:     new(big.Int).SetBytes(publicKey[n:]),
	}

	r := new(big.Int).SetBytes(signature[:n])
	s := new(big.Int).SetBytes(signature[n:])

	digestBytes := e.Hash.Sum(message)
	return ecdsa.Verify(pub, digestBytes, r, s)
}
