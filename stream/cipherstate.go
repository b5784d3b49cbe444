// SPDX-License-Identifier: GPL-3.0-or-later

// Package stream implements cryptokit's chunk-wise streaming cipher
// processor: a CipherState state machine wrapping any cryptokit.Cipher,
// plus EncryptStream/DecryptStream channel-based pipelines over it.
//
// The chunked design generalizes the 64 KiB chunked-AEAD framing used for
// long-message authenticated encryption to cryptokit's arbitrary Cipher
// and a 4 MiB cooperative-yield boundary.
package stream

import (
	"github.com/coriolis-labs/cryptokit"
	"github.com/coriolis-labs/cryptokit/internal/byteutil"
	"github.com/coriolis-labs/cryptokit/secretkey"
)

// state is CipherState's internal state machine: Idle → AssocData →
// Plaintext → Finalized, with a Failed state reached only by a decrypting
// CipherState whose MAC fails to verify.
type state int

const (
	stateIdle state = iota
	stateAssocData
	statePlaintext
	stateFinalized
	stateFailed
)

// CipherState holds the encrypting/decrypting cipher state
// (isEncrypting, secretKey, nonce, aad, keyStreamIndex) plus a buffer of
// deferred chunks. This default implementation buffers every chunk and
// delegates to the wrapped Cipher's Encrypt/Decrypt on Close; a Cipher
// that exposes an EncryptAt/DecryptAt resume point (aesmode.AesCtr,
// streamaead.ChaCha20) could process chunks incrementally instead, but
// nothing in cryptokit currently needs that optimization.
type CipherState struct {
	cipher         cryptokit.Cipher
	secretKey      *secretkey.SecretKey
	nonce          []byte
	aad            []byte
	isEncrypting   bool
	keyStreamIndex int

	state    state
	buffered [][]byte
}

// NewEncryptState returns a CipherState bound to cipher, key and nonce for
// encryption. Accepting the key and nonce immediately moves the state
// machine from Idle to AssocData.
func NewEncryptState(c cryptokit.Cipher, key *secretkey.SecretKey, nonce []byte) *CipherState {
	return &CipherState{
		cipher:       c,
		secretKey:    key,
		nonce:        nonce,
		isEncrypting: true,
		state:        stateAssocData,
	}
}

// NewDecryptState returns a CipherState bound to cipher, key and nonce for
// decryption.
func NewDecryptState(c cryptokit.Cipher, key *secretkey.SecretKey, nonce []byte) *CipherState {
	return &CipherState{
		cipher:       c,
		secretKey:    key,
		nonce:        nonce,
		isEncrypting: false,
		state:        stateAssocData,
	}
}

// SetAad attaches associated data. Only valid in the AssocData state,
// before any plaintext (or ciphertext, when decrypting) chunk has been
// written.
func (cs *CipherState) SetAad(aad []byte) error {
	if cs.state != stateAssocData {
		return cryptokit.NewError(cryptokit.KindInvalidState, "stream.CipherState.SetAad", nil)
	}
	cs.aad = aad
	return nil
}

// Write appends a chunk to the buffer. The first call transitions
// AssocData → Plaintext, after which SetAad is refused.
func (cs *CipherState) Write(chunk []byte) error {
	switch cs.state {
	case stateAssocData:
		cs.state = statePlaintext
	case statePlaintext:
		// already accepting chunks
	default:
		return cryptokit.NewError(cryptokit.KindInvalidState, "stream.CipherState.Write", nil)
	}

	buf := make([]byte, len(chunk))
	copy(buf, chunk)
	cs.buffered = append(cs.buffered, buf)
	return nil
}

func (cs *CipherState) concatBuffered() []byte {
	total := 0
	for _, c := range cs.buffered {
		total += len(c)
	}
	out := make([]byte, 0, total)
	for _, c := range cs.buffered {
		out = append(out, c...)
	}
	return out
}

func (cs *CipherState) zeroBuffered() {
	for _, c := range cs.buffered {
		byteutil.Zero(c)
	}
	cs.buffered = nil
}

// Close finalizes an encrypting CipherState: it concatenates every
// buffered chunk, runs the wrapped Cipher's Encrypt, and transitions to
// Finalized while emitting the resulting SecretBox and its authentication
// tag. Called on a decrypting CipherState, Close fails with
// KindInvalidState; use CloseAndVerify instead.
func (cs *CipherState) Close() (*cryptokit.SecretBox, error) {
	if !cs.isEncrypting {
		return nil, cryptokit.NewError(cryptokit.KindInvalidState, "stream.CipherState.Close", nil)
	}
	if cs.state == stateFinalized || cs.state == stateFailed {
		return nil, cryptokit.NewError(cryptokit.KindInvalidState, "stream.CipherState.Close", nil)
	}

	clearText := cs.concatBuffered()
	box, err := cs.cipher.Encrypt(clearText, cs.secretKey, cs.nonce, cs.aad)
	if err != nil {
		return nil, err
	}

	cs.state = stateFinalized
	cs.buffered = nil
	return box, nil
}

// CloseAndVerify finalizes a decrypting CipherState against mac, deferring
// the transition to Finalized until after the MAC comparison. On a
// mismatch the state machine enters Failed and every buffered chunk is
// zeroed before any partial plaintext becomes visible to the caller.
func (cs *CipherState) CloseAndVerify(mac []byte) ([]byte, error) {
	if cs.isEncrypting {
		return nil, cryptokit.NewError(cryptokit.KindInvalidState, "stream.CipherState.CloseAndVerify", nil)
	}
	if cs.state == stateFinalized || cs.state == stateFailed {
		return nil, cryptokit.NewError(cryptokit.KindInvalidState, "stream.CipherState.CloseAndVerify", nil)
	}

	cipherText := cs.concatBuffered()
	box := &cryptokit.SecretBox{CipherText: cipherText, Nonce: cs.nonce, Mac: mac}

	clearText, err := cs.cipher.Decrypt(box, cs.secretKey, cs.aad)
	if err != nil {
		cs.state = stateFailed
		cs.zeroBuffered()
		return nil, err
	}

	cs.state = stateFinalized
	cs.buffered = nil
	return clearText, nil
}

// Abort destroys the CipherState's working buffers without finalizing.
// Dropping a streaming operation zeros its working buffers; partial
// output already delivered is not recalled.
func (cs *CipherState) Abort() {
	cs.zeroBuffered()
	cs.state = stateFailed
}
