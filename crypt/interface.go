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

// Package crypt provides the stateful digest, canonical base64, and secure
// random primitives shared by the library's TLS and voice-cipher layers.
package crypt

import (
	"crypto/md5"
	"crypto/sha1"
	"crypto/sha256"
	"crypto/sha512"
	"hash"
	"strings"

	"github.com/sabouaram/mumlib/internal/lberr"
)

// Algo names a supported digest algorithm.
type Algo string

const (
	MD5    Algo = "md5"
	SHA1   Algo = "sha1"
	SHA256 Algo = "sha256"
	SHA512 Algo = "sha512"
)

func newHash(a Algo) (hash.Hash, error) {
	switch Algo(strings.ToLower(string(a))) {
	case MD5:
		return md5.New(), nil
	case SHA1:
		return sha1.New(), nil
	case SHA256:
		return sha256.New(), nil
	case SHA512:
		return sha512.New(), nil
	default:
		return nil, lberr.Newf(lberr.Invalid, "unknown hash algorithm %q", a)
	}
}

// Hash is a stateful digest: select an algorithm, feed bytes, and read the
// digest into a caller-provided buffer.
type Hash interface {
	// Reset discards any fed input and (re)selects algo, failing on an unknown name.
	Reset(algo Algo) error
	// Write feeds input into the running digest.
	Write(p []byte) (int, error)
	// Sum appends the digest to dst, growing it if necessary, and returns the
	// resulting slice.
	Sum(dst []byte) []byte
	// BlockSize reports the selected algorithm's block size.
	BlockSize() int
	// Size reports the selected algorithm's digest size.
	Size() int
}

type hsh struct {
	a Algo
	h hash.Hash
}

// New constructs a Hash bound to algo.
func New(algo Algo) (Hash, error) {
	h, e := newHash(algo)
	if e != nil {
		return nil, e
	}
	return &hsh{a: algo, h: h}, nil
}

func (o *hsh) Reset(algo Algo) error {
	h, e := newHash(algo)
	if e != nil {
		return e
	}
	o.a = algo
	o.h = h
	return nil
}

func (o *hsh) Write(p []byte) (int, error) {
	if o.h == nil {
		return 0, lberr.New(lberr.Invalid, "hash not initialized")
	}
	return o.h.Write(p)
}

func (o *hsh) Sum(dst []byte) []byte {
	if o.h == nil {
		return dst
	}
	return o.h.Sum(dst)
}

func (o *hsh) BlockSize() int {
	if o.h == nil {
		return 0
	}
	return o.h.BlockSize()
}

func (o *hsh) Size() int {
	if o.h == nil {
		return 0
	}
	return o.h.Size()
}
