// SPDX-License-Identifier: GPL-3.0-or-later

package cryptokit

import "fmt"

// Kind classifies the reason a cryptokit operation failed.
type Kind int

const (
	// KindInvalidKeyLength is returned when a secret key's length does not
	// match the algorithm's required secretKeyLength.
	KindInvalidKeyLength Kind = iota + 1
	// KindInvalidNonceLength is returned when a nonce's length does not
	// match the algorithm's required nonceLength.
	KindInvalidNonceLength
	// KindInvalidCounterBits is returned for an out-of-range AES-CTR
	// counterBits option.
	KindInvalidCounterBits
	// KindInvalidHashLength is returned for an out-of-range BLAKE2 hash
	// length option.
	KindInvalidHashLength
	// KindAadUnsupported is returned when non-empty AAD is passed to an
	// algorithm that does not accept it, such as AES-CBC.
	KindAadUnsupported
	// KindKeyStreamIndexUnsupported is returned when a non-zero
	// keyStreamIndex is given to a non-streaming cipher.
	KindKeyStreamIndexUnsupported
	// KindBadPadding is returned when CBC decryption padding is invalid.
	KindBadPadding
	// KindAuthFailure is returned on a MAC or AEAD tag mismatch.
	KindAuthFailure
	// KindWeakKey is returned for an all-zero Curve25519 shared secret.
	KindWeakKey
	// KindPointNotOnCurve is returned for an invalid elliptic curve point.
	KindPointNotOnCurve
	// KindDestroyed names the failure of accessing a destroyed SecretKey's
	// bytes. SecretKey.Bytes reports that case as secretkey.ErrDestroyed,
	// which is not an *Error, so no operation returns an *Error of this
	// Kind.
	KindDestroyed
	// KindOutputTooLong is returned when an HKDF output length exceeds
	// 255 times the underlying hash's length.
	KindOutputTooLong
	// KindUnsupported is returned for an algorithm or parameter
	// combination the selected backend does not implement.
	KindUnsupported
	// KindInvalidState is returned when a CipherState operation is called
	// out of order, e.g. setting AAD after plaintext has been written.
	KindInvalidState
)

func (k Kind) String() string {
	switch k {
	case KindInvalidKeyLength:
		return "invalid key length"
	case KindInvalidNonceLength:
		return "invalid nonce length"
	case KindInvalidCounterBits:
		return "invalid counter bits"
	case KindInvalidHashLength:
		return "invalid hash length"
	case KindAadUnsupported:
		return "aad unsupported"
	case KindKeyStreamIndexUnsupported:
		return "key stream index unsupported"
	case KindBadPadding:
		return "bad padding"
	case KindAuthFailure:
		return "authentication failure"
	case KindWeakKey:
		return "weak key"
	case KindPointNotOnCurve:
		return "point not on curve"
	case KindDestroyed:
		return "secret destroyed"
	case KindOutputTooLong:
		return "output too long"
	case KindUnsupported:
		return "unsupported"
	case KindInvalidState:
		return "invalid state"
	default:
		return "unknown error"
	}
}

// Error is the error type returned by cryptokit operations. Op names the
// failing operation, e.g. "aesmode.AesGcm.Decrypt".
type Error struct {
	Kind Kind
	Op   string
	Err  error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("cryptokit: %s: %s: %v", e.Op, e.Kind, e.Err)
	}
	return fmt.Sprintf("cryptokit: %s: %s", e.Op, e.Kind)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Is reports whether target is a *Error with the same Kind, so callers can
// write errors.Is(err, &cryptokit.Error{Kind: cryptokit.KindAuthFailure})
// style checks; IsKind is the shorter helper for the same test.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return e.Kind == t.Kind
}

// NewError constructs an *Error carrying kind and op, optionally wrapping
// cause.
func NewError(kind Kind, op string, cause error) *Error {
	return &Error{Kind: kind, Op: op, Err: cause}
}

// IsKind reports whether err is a *Error of the given kind, unwrapping
// along the way.
func IsKind(err error, kind Kind) bool {
	var e *Error
	for err != nil {
		if ce, ok := err.(*Error); ok {
			e = ce
			break
		}
		u, ok := err.(interface{ Unwrap() error })
		if !ok {
			break
		}
		err = u.Unwrap()
	}
	return e != nil && e.Kind == kind
}
