// SPDX-License-Identifier: GPL-3.0-or-later

// Package secretkey implements cryptokit's SecretKey, the opaque holder of
// keying material: constant-time equality, a one-way destroyed bit, and an
// optional overwrite-on-destroy zeroization.
//
// The underlying []byte handling mirrors how the teacher passes raw key
// bytes around (ecdh.Exchange, doubleratchet.dhKeyPair); SecretKey adds
// lifecycle guarantees on top of that.
package secretkey

import (
	"sync"

	"github.com/coriolis-labs/cryptokit/internal/byteutil"
)

// SecretKey is an opaque holder of a byte sequence. Once Destroy is called,
// further access to the bytes fails; identity queries such as Len remain
// valid.
type SecretKey struct {
	mu                 sync.RWMutex
	bytes              []byte
	destroyed          bool
	overwriteOnDestroy bool
}

// New wraps b as a SecretKey. b is not copied; callers must not retain or
// mutate it afterwards.
func New(b []byte, overwriteOnDestroy bool) *SecretKey {
	return &SecretKey{bytes: b, overwriteOnDestroy: overwriteOnDestroy}
}

// ErrDestroyed is returned by Bytes once the key has been destroyed.
var ErrDestroyed = destroyedError{}

type destroyedError struct{}

func (destroyedError) Error() string { return "secretkey: destroyed" }

// Bytes returns the wrapped key material, or ErrDestroyed if Destroy has
// already been called.
func (k *SecretKey) Bytes() ([]byte, error) {
	k.mu.RLock()
	defer k.mu.RUnlock()

	if k.destroyed {
		return nil, ErrDestroyed
	}
	return k.bytes, nil
}

// Len returns the key's length in bytes. This remains valid after Destroy.
func (k *SecretKey) Len() int {
	k.mu.RLock()
	defer k.mu.RUnlock()
	return len(k.bytes)
}

// Destroyed reports whether Destroy has been called.
func (k *SecretKey) Destroyed() bool {
	k.mu.RLock()
	defer k.mu.RUnlock()
	return k.destroyed
}

// Destroy marks the key as destroyed. If overwriteOnDestroy was set at
// construction, the underlying buffer is zeroed first. Destroy is
// idempotent; concurrent Destroy calls race safely, with the last writer
// winning, and subsequent Bytes calls failing.
func (k *SecretKey) Destroy() {
	k.mu.Lock()
	defer k.mu.Unlock()

	if k.destroyed {
		return
	}
	if k.overwriteOnDestroy {
		byteutil.Zero(k.bytes)
	}
	k.destroyed = true
}

// Equal compares two SecretKeys' bytes in constant time. A destroyed key
// never compares equal to anything, including itself.
func (k *SecretKey) Equal(other *SecretKey) bool {
	a, errA := k.Bytes()
	b, errB := other.Bytes()
	if errA != nil || errB != nil {
		return false
	}
	return byteutil.ConstantTimeEqual(a, b)
}
