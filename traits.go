// SPDX-License-Identifier: GPL-3.0-or-later

// Package cryptokit provides a uniform, algorithm-agnostic API over
// symmetric ciphers, hash functions, message authentication codes,
// password-based and HKDF key-derivation functions, key-agreement
// algorithms and digital-signature algorithms.
//
// Concrete algorithms live in sub-packages (cipher/aesmode,
// cipher/streamaead, digest, mac, kdf, curve/x25519, curve/ed25519,
// curve/nist); this package defines the dispatch traits each of them
// implements plus the SecretBox envelope that composes them.
package cryptokit

import "github.com/coriolis-labs/cryptokit/secretkey"

// Algorithm identifiers, fixed strings used by any backend bridge external
// to this package.
const (
	AlgAesCbc               = "aesCbc"
	AlgAesCtr               = "aesCtr"
	AlgAesGcm               = "aesGcm"
	AlgChaCha20             = "chacha20"
	AlgChaCha20Poly1305Aead = "chacha20Poly1305Aead"
	AlgXChaCha20            = "xchacha20"
	AlgXChaCha20Poly1305    = "xchacha20Poly1305Aead"
	AlgEd25519              = "ed25519"
	AlgX25519               = "x25519"
	AlgEcdhP256             = "ecdhP256"
	AlgEcdhP384             = "ecdhP384"
	AlgEcdhP521             = "ecdhP521"
	AlgEcdsaP256            = "ecdsaP256"
	AlgEcdsaP384            = "ecdsaP384"
	AlgEcdsaP521            = "ecdsaP521"
	AlgSha1                 = "sha1"
	AlgSha224               = "sha224"
	AlgSha256               = "sha256"
	AlgSha384               = "sha384"
	AlgSha512               = "sha512"
	AlgBlake2b              = "blake2b"
	AlgBlake2s              = "blake2s"
	AlgHmac                 = "hmac"
	AlgHkdf                 = "hkdf"
	AlgPbkdf2               = "pbkdf2"
	AlgArgon2id             = "argon2id"
	AlgPoly1305             = "poly1305"
)

// Cipher is the dispatch trait implemented by every symmetric encryption
// algorithm, authenticated or not. When nonce is nil, Encrypt draws a fresh
// one from the algorithm's configured RNG.
type Cipher interface {
	Algorithm() string
	SecretKeyLength() int
	NonceLength() int
	MacAlgorithm() string
	CipherTextLength(clearTextLen int) int

	NewSecretKey() (*secretkey.SecretKey, error)

	Encrypt(clearText []byte, key *secretkey.SecretKey, nonce, aad []byte) (*SecretBox, error)
	Decrypt(box *SecretBox, key *secretkey.SecretKey, aad []byte) (clearText []byte, err error)
}

// Mac is the dispatch trait implemented by message-authentication-code
// algorithms, including MAC.empty for unauthenticated ciphers.
type Mac interface {
	Algorithm() string
	MacLength() int
	Compute(message []byte, key *secretkey.SecretKey) ([]byte, error)
	Verify(mac, message []byte, key *secretkey.SecretKey) (bool, error)
}

// Hash is the dispatch trait implemented by unkeyed hash functions.
type Hash interface {
	Algorithm() string
	HashLength() int
	Sum(message []byte) []byte
}

// Kdf is the dispatch trait implemented by key-derivation functions.
type Kdf interface {
	Algorithm() string
	DeriveKey(secret, salt, info []byte, outputLength int) ([]byte, error)
}

// KeyExchange is the dispatch trait implemented by key-agreement
// algorithms.
type KeyExchange interface {
	Algorithm() string
	NewKeyPair() (*KeyPair, error)
	SharedSecretKey(myPrivate, theirPublic []byte) ([]byte, error)
}

// Signature is the dispatch trait implemented by digital-signature
// algorithms.
type Signature interface {
	Algorithm() string
	NewKeyPair() (*KeyPair, error)
	Sign(message, privateKey []byte) ([]byte, error)
	Verify(message, signature, publicKey []byte) bool
}

// KeyPairType tags the closed set of key-pair shapes cryptokit handles.
type KeyPairType int

const (
	KeyPairEd25519 KeyPairType = iota
	KeyPairX25519
	KeyPairP256
	KeyPairP384
	KeyPairP521
	KeyPairRsa
)

// Params describes a KeyPairType's associated constants.
type Params struct {
	EllipticBits      int
	PrivateKeyLength  int
	PublicKeyLength   int
	CurveName         string
}

// ParamsOf returns the fixed parameters associated with t. RSA parameters
// are unsupported: RSA is delegated entirely to an external platform
// backend.
func ParamsOf(t KeyPairType) Params {
	switch t {
	case KeyPairEd25519:
		return Params{PrivateKeyLength: 32, PublicKeyLength: 32, CurveName: "Ed25519"}
	case KeyPairX25519:
		return Params{PrivateKeyLength: 32, PublicKeyLength: 32, CurveName: "Curve25519"}
	case KeyPairP256:
		return Params{EllipticBits: 256, PrivateKeyLength: 32, PublicKeyLength: 32, CurveName: "P-256"}
	case KeyPairP384:
		return Params{EllipticBits: 384, PrivateKeyLength: 48, PublicKeyLength: 48, CurveName: "P-384"}
	case KeyPairP521:
		return Params{EllipticBits: 521, PrivateKeyLength: 66, PublicKeyLength: 66, CurveName: "P-521"}
	default:
		return Params{}
	}
}

// KeyPair is a triple of type, private-key material and public-key
// material. For NIST curves PublicKey holds the concatenated affine (x, y)
// coordinates, each Params.PublicKeyLength octets long; see curve/nist for
// the split helpers.
type KeyPair struct {
	Type       KeyPairType
	PrivateKey []byte
	PublicKey  []byte
}
