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

// Package key owns an asymmetric key (public or private, RSA or EC) and its
// PEM serialization, the local-identity building block paired with cert.Cert
// before a SocketTLS handshake.
package key

import (
	"crypto"
	"crypto/ecdsa"
	"crypto/rsa"

	"github.com/sabouaram/mumlib/internal/lberr"
)

// PasswordFunc supplies a password once for an encrypted private key PEM,
// mirroring the original library's password-callback shape
// (buf, size, rwflag, userdata) reduced to its Go essence: a single call
// returning the passphrase bytes.
type PasswordFunc func() []byte

// Key is an opaque handle to a public or private asymmetric key. A Key in
// its zero value is invalid (falsy); failed construction never panics.
type Key struct {
	priv crypto.Signer
	pub  crypto.PublicKey
}

// IsPrivate reports whether k owns a private key.
func (k Key) IsPrivate() bool {
	return k.priv != nil
}

// Valid reports whether k holds a usable key (public or private).
func (k Key) Valid() bool {
	return k.priv != nil || k.pub != nil
}

// Public returns the public component, deriving it from the private key if
// only a private key is held.
func (k Key) Public() crypto.PublicKey {
	if k.priv != nil {
		return k.priv.Public()
	}
	return k.pub
}

// FromPublic wraps a bare public key (e.g. extracted from an x509.Certificate)
// as a public-only Key.
func FromPublic(pub crypto.PublicKey) Key {
	return Key{pub: pub}
}

// Signer returns the underlying crypto.Signer and true if k is private.
func (k Key) Signer() (crypto.Signer, bool) {
	if k.priv == nil {
		return nil, false
	}
	return k.priv, true
}

// Equal compares the canonical public components of two keys.
func (k Key) Equal(o Key) bool {
	a, b := k.Public(), o.Public()
	if a == nil || b == nil {
		return false
	}
	switch pa := a.(type) {
	case *rsa.PublicKey:
		pb, ok := b.(*rsa.PublicKey)
		return ok && pa.Equal(pb)
	case *ecdsa.PublicKey:
		pb, ok := b.(*ecdsa.PublicKey)
		return ok && pa.Equal(pb)
	case interface{ Equal(crypto.PublicKey) bool }:
		return pa.Equal(b)
	default:
		return false
	}
}

var (
	errNoPEMBlock  = lberr.New(lberr.Invalid, "no PEM block found")
	errWrongDir    = lberr.New(lberr.Invalid, "PEM block does not match the requested key direction")
	errUnsupported = lberr.New(lberr.Invalid, "unsupported key algorithm")
)
