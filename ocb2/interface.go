/*
 * MIT License
 *
 * Copyright (c) 2020 Nicolas JUHEL
 *
 * Permission is hereby granted, free of charge, to any person obtaining a copy
 * of this software and associated documentation files (the "Software"), to deal
 * in the Software without restriction, including without limitation the rights
 * to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
 * copies of the Software, and to permit persons to whom the Software is
 * furnished to do so, subject to the following conditions:
 *
 * The above copyright notice and this permission notice shall be included in all
 * copies or substantial portions of the Software.
 *
 * THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
 * IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
 * FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
 * AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
 * LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
 * OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN THE
 * SOFTWARE.
 *
 *
 */

// Package ocb2 implements AES-128 OCB2 authenticated encryption, the cipher
// used to protect UDP voice packets. It operates on raw 16-byte blocks
// directly against crypto/aes, since OCB2's block-doubling construction
// needs the bare cipher.Block rather than a higher-level AEAD wrapper.
package ocb2

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/subtle"

	"github.com/sabouaram/mumlib/internal/lberr"
)

const (
	BlockSize = 16
	KeySize   = 16
	NonceSize = 16
	TagSize   = 8
)

type block = [BlockSize]byte

// State holds the AES-128 block cipher context derived from a 16-byte key.
// The nonce is supplied per-call by the caller, matching the wire protocol's
// per-packet nonce discipline.
type State struct {
	key   [KeySize]byte
	block cipher.Block
}

// NewState derives an AES-ECB block cipher context from a 16-byte key.
func NewState(key [KeySize]byte) (*State, error) {
	c, e := aes.NewCipher(key[:])
	if e != nil {
		return nil, lberr.New(lberr.Invalid, "invalid OCB2 key", e)
	}
	return &State{key: key, block: c}, nil
}

func (s *State) aesEncrypt(dst, src []byte) {
	s.block.Encrypt(dst, src)
}

func (s *State) aesDecrypt(dst, src []byte) {
	s.block.Decrypt(dst, src)
}

func xorBlock(dst, a, b *block) {
	for i := range dst {
		dst[i] = a[i] ^ b[i]
	}
}

// s2 doubles a block in GF(2^128): shift left by one bit across the whole
// 16-byte block, and if the original top bit was set, XOR the low byte with
// 0x87.
func s2(x *block) block {
	var out block
	carry := x[0] >> 7
	for i := 0; i < BlockSize-1; i++ {
		out[i] = (x[i] << 1) | (x[i+1] >> 7)
	}
	out[BlockSize-1] = x[BlockSize-1] << 1
	if carry != 0 {
		out[BlockSize-1] ^= 0x87
	}
	return out
}

func s3(x *block) block {
	d := s2(x)
	var out block
	xorBlock(&out, &d, x)
	return out
}

func isZero(b *block) bool {
	var z block
	return subtle.ConstantTimeCompare(b[:], z[:]) == 1
}

// Encrypt produces ciphertext the same length as plaintext plus an 8-byte
// authentication tag, or fails the weak-nonce guard (returns zero-length
// output and a false status) if any intermediate offset collapses to the
// all-zero block.
func (s *State) Encrypt(nonce [NonceSize]byte, plaintext []byte) (ciphertext []byte, tag [TagSize]byte, ok bool) {
	var delta block
	s.aesEncrypt(delta[:], nonce[:])
	if isZero(&delta) {
		return nil, tag, false
	}

	var checksum block
	ciphertext = make([]byte, len(plaintext))

	p := plaintext
	out := ciphertext
	for len(p) >= BlockSize {
		delta = s2(&delta)
		if isZero(&delta) {
			return nil, tag, false
		}

		var pi, tmp, ci block
		copy(pi[:], p[:BlockSize])
		xorBlock(&tmp, &pi, &delta)
		s.aesEncrypt(ci[:], tmp[:])
		xorBlock(&ci, &ci, &delta)
		copy(out[:BlockSize], ci[:])
		xorBlock(&checksum, &checksum, &pi)

		p = p[BlockSize:]
		out = out[BlockSize:]
	}

	l := len(p)
	delta = s2(&delta)
	if isZero(&delta) {
		return nil, tag, false
	}

	var lenBlock, tmp, pad block
	lenBlock[BlockSize-1] = byte(l * 8)
	xorBlock(&tmp, &lenBlock, &delta)
	s.aesEncrypt(pad[:], tmp[:])

	var full block
	copy(full[:l], p)
	copy(full[l:], pad[l:])
	xorBlock(&checksum, &checksum, &full)

	var cFinal block
	xorBlock(&cFinal, &pad, &full)
	copy(out[:l], cFinal[:l])

	s3Delta := s3(&delta)
	var tagIn, tagOut block
	xorBlock(&tagIn, &s3Delta, &checksum)
	s.aesEncrypt(tagOut[:], tagIn[:])
	copy(tag[:], tagOut[:TagSize])

	return ciphertext, tag, true
}

// Decrypt is the inverse of Encrypt; it recomputes the tag and compares it
// in constant time. It fails if the tag mismatches or if ciphertext is
// shorter than the implied tag-only case.
func (s *State) Decrypt(nonce [NonceSize]byte, ciphertext []byte, tag [TagSize]byte) (plaintext []byte, ok bool) {
	var delta block
	s.aesEncrypt(delta[:], nonce[:])
	if isZero(&delta) {
		return nil, false
	}

	var checksum block
	plaintext = make([]byte, len(ciphertext))

	c := ciphertext
	out := plaintext
	for len(c) >= BlockSize {
		delta = s2(&delta)
		if isZero(&delta) {
			return nil, false
		}

		var ci, tmp, pi block
		copy(ci[:], c[:BlockSize])
		xorBlock(&tmp, &ci, &delta)
		s.aesDecrypt(pi[:], tmp[:])
		xorBlock(&pi, &pi, &delta)
		copy(out[:BlockSize], pi[:])
		xorBlock(&checksum, &checksum, &pi)

		c = c[BlockSize:]
		out = out[BlockSize:]
	}

	l := len(c)
	delta = s2(&delta)
	if isZero(&delta) {
		return nil, false
	}

	var lenBlock, tmp, pad block
	lenBlock[BlockSize-1] = byte(l * 8)
	xorBlock(&tmp, &lenBlock, &delta)
	s.aesEncrypt(pad[:], tmp[:])

	for i := 0; i < l; i++ {
		out[i] = c[i] ^ pad[i]
	}

	var full block
	copy(full[:l], out[:l])
	copy(full[l:], pad[l:])
	xorBlock(&checksum, &checksum, &full)

	s3Delta := s3(&delta)
	var tagIn, tagOut block
	xorBlock(&tagIn, &s3Delta, &checksum)
	s.aesEncrypt(tagOut[:], tagIn[:])

	if subtle.ConstantTimeCompare(tagOut[:TagSize], tag[:]) != 1 {
		return nil, false
	}
	return plaintext, true
}
