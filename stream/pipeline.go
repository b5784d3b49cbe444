// SPDX-License-Identifier: GPL-3.0-or-later

package stream

import (
	"runtime"

	"github.com/coriolis-labs/cryptokit"
	"github.com/coriolis-labs/cryptokit/secretkey"
)

// yieldBoundary is the cooperative-yield threshold: the stream processor
// pauses for one scheduler tick after every 4 MiB processed.
const yieldBoundary = 4 * 1024 * 1024

// Record is one element of an EncryptStream/DecryptStream output channel:
// either an intermediate chunk, or the final record carrying the
// authentication tag, or a terminal error.
type Record struct {
	Chunk []byte
	Mac   []byte // set only on the final successful Record
	Err   error
}

// EncryptStream consumes chunks from in, buffering them into a
// CipherState that encrypts them all once it closes, and returns a channel
// carrying the resulting ciphertext chunk and the final Mac. Output is emitted in one final
// Record because the default CipherState buffers every chunk; the chunks
// are still concatenated in strict input order.
func EncryptStream(c cryptokit.Cipher, key *secretkey.SecretKey, nonce, aad []byte, in <-chan []byte) <-chan Record {
	out := make(chan Record, 1)

	go func() {
		defer close(out)

		cs := NewEncryptState(c, key, nonce)
		if err := cs.SetAad(aad); err != nil {
			out <- Record{Err: err}
			return
		}

		processedSinceYield := 0
		for chunk := range in {
			if err := cs.Write(chunk); err != nil {
				cs.Abort()
				out <- Record{Err: err}
				return
			}

			processedSinceYield += len(chunk)
			if processedSinceYield >= yieldBoundary {
				runtime.Gosched()
				processedSinceYield = 0
			}
		}

		box, err := cs.Close()
		if err != nil {
			out <- Record{Err: err}
			return
		}
		out <- Record{Chunk: box.CipherText, Mac: box.Mac}
	}()

	return out
}

// DecryptStream consumes ciphertext chunks from in, buffering them into a
// CipherState, and verifies expectedMac once the channel closes. On a MAC
// mismatch the emitted Record carries a KindAuthFailure error and no
// chunk data; the buffered ciphertext chunks are zeroed inside
// CipherState.CloseAndVerify and no plaintext reaches this function.
func DecryptStream(c cryptokit.Cipher, key *secretkey.SecretKey, nonce, aad, expectedMac []byte, in <-chan []byte) <-chan Record {
	out := make(chan Record, 1)

	go func() {
		defer close(out)

		cs := NewDecryptState(c, key, nonce)
		if err := cs.SetAad(aad); err != nil {
			out <- Record{Err: err}
			return
		}

		processedSinceYield := 0
		for chunk := range in {
			if err := cs.Write(chunk); err != nil {
				cs.Abort()
				out <- Record{Err: err}
				return
			}

			processedSinceYield += len(chunk)
			if processedSinceYield >= yieldBoundary {
				runtime.Gosched()
				processedSinceYield = 0
			}
		}

		clearText, err := cs.CloseAndVerify(expectedMac)
		if err != nil {
			out <- Record{Err: err}
			return
		}
		out <- Record{Chunk: clearText}
	}()

	return out
}
