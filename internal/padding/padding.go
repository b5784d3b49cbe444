// SPDX-License-Identifier: GPL-3.0-or-later

// Package padding implements the two block-cipher padding schemes cryptokit
// supports for AES-CBC: PKCS#7 (RFC 5652 §6.3) and zero-padding.
//
// This generalizes doubleratchet's unexported pkcs7Pad/pkcs7Unpad pair (as
// exercised by doubleratchet/pkcs7_test.go) into a small closed Algorithm
// enumeration with both padding schemes.
package padding

import "fmt"

// Algorithm is a closed enumeration of the padding schemes cryptokit's
// AES-CBC engine accepts.
type Algorithm int

const (
	// PKCS7 pads with p octets of value p, where p = blockLen -
	// (dataLen mod blockLen); a full block of padding is appended when
	// dataLen is already block-aligned.
	PKCS7 Algorithm = iota
	// Zero pads with p zero octets, where p = (blockLen - dataLen mod
	// blockLen) mod blockLen; no padding is appended when dataLen is
	// already block-aligned.
	Zero
)

func (a Algorithm) String() string {
	switch a {
	case PKCS7:
		return "pkcs7"
	case Zero:
		return "zero"
	default:
		return "unknown"
	}
}

// ComputeLength returns the number of padding octets PKCS#7 appends to a
// message of dataLen octets under a block size of blockLen: always in
// [1, blockLen].
func ComputeLength(blockLen, dataLen int) (int, error) {
	if blockLen <= 0 || blockLen > 255 {
		return 0, fmt.Errorf("padding: block length %d out of range", blockLen)
	}
	return blockLen - (dataLen % blockLen), nil
}

// Pad returns data followed by the padding scheme's trailing octets so the
// result is a multiple of blockLen.
func Pad(algo Algorithm, data []byte, blockLen int) ([]byte, error) {
	if blockLen <= 0 || blockLen > 255 {
		return nil, fmt.Errorf("padding: block length %d out of range", blockLen)
	}

	switch algo {
	case PKCS7:
		n, err := ComputeLength(blockLen, len(data))
		if err != nil {
			return nil, err
		}
		out := make([]byte, len(data)+n)
		copy(out, data)
		write(out, len(data), byte(n))
		return out, nil

	case Zero:
		n := (blockLen - len(data)%blockLen) % blockLen
		out := make([]byte, len(data)+n)
		copy(out, data)
		return out, nil

	default:
		return nil, fmt.Errorf("padding: unknown algorithm %v", algo)
	}
}

// write fills block[start:] with the constant padding-length byte b.
func write(block []byte, start int, b byte) {
	for i := start; i < len(block); i++ {
		block[i] = b
	}
}

// Unpad strips and validates the padding scheme's trailing octets, failing
// if the padding is absent or malformed.
func Unpad(algo Algorithm, data []byte, blockLen int) ([]byte, error) {
	if blockLen <= 0 || len(data) == 0 || len(data)%blockLen != 0 {
		return nil, fmt.Errorf("padding: data is not aligned to block size %d", blockLen)
	}

	switch algo {
	case PKCS7:
		n, err := Verify(data, blockLen)
		if err != nil {
			return nil, err
		}
		return data[:len(data)-n], nil

	case Zero:
		i := len(data)
		for i > 0 && data[i-1] == 0 {
			i--
		}
		// Only the padding introduced by the final block may be stripped;
		// zero-padding cannot recover more than one block worth of
		// trailing zeros unambiguously.
		if len(data)-i > blockLen {
			i = len(data) - blockLen
		}
		return data[:i], nil

	default:
		return nil, fmt.Errorf("padding: unknown algorithm %v", algo)
	}
}

// Verify returns the padding length encoded at the end of a PKCS#7 padded
// block, or an error if the last byte is zero, greater than blockLen, or any
// of the trailing paddingLen bytes differ from the expected value.
func Verify(block []byte, blockLen int) (int, error) {
	if len(block) == 0 {
		return 0, fmt.Errorf("padding: empty block")
	}

	n := int(block[len(block)-1])
	if n == 0 || n > blockLen || n > len(block) {
		return 0, fmt.Errorf("padding: invalid padding length %d", n)
	}

	for i := len(block) - n; i < len(block); i++ {
		if block[i] != byte(n) {
			return 0, fmt.Errorf("padding: invalid padding byte at %d", i)
		}
	}

	return n, nil
}
