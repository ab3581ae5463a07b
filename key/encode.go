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

package key

import (
	"crypto"
	"crypto/ecdsa"
	"crypto/rsa"
	"crypto/x509"
	"encoding/pem"

	"github.com/sabouaram/mumlib/internal/lberr"
)

// ParsePEM imports a key from PEM text. wantPrivate selects the expected
// direction; a mismatch (e.g. a public key PEM when a private key was
// requested) yields an error rather than a silently-wrong Key. pass
// supplies the passphrase for a legacy encrypted PEM block (one carrying a
// "Proc-Type: 4,ENCRYPTED" header); it may be nil for unencrypted input.
// An encrypted PKCS#8 block ("ENCRYPTED PRIVATE KEY") is not decrypted and
// is rejected as an unrecognized block type.
func ParsePEM(data []byte, wantPrivate bool, pass PasswordFunc) (Key, error) {
	blk, _ := pem.Decode(data)
	if blk == nil {
		return Key{}, errNoPEMBlock
	}

	der := blk.Bytes
	if x509.IsEncryptedPEMBlock(blk) { //nolint:staticcheck // encrypted legacy PEM is still emitted by some peers
		if pass == nil {
			return Key{}, lberr.New(lberr.Invalid, "encrypted key requires a password")
		}
		d, e := x509.DecryptPEMBlock(blk, pass()) //nolint:staticcheck
		if e != nil {
			return Key{}, lberr.New(lberr.Invalid, "failed to decrypt PEM block", e)
		}
		der = d
	}

	switch blk.Type {
	case "PRIVATE KEY", "RSA PRIVATE KEY", "EC PRIVATE KEY":
		if !wantPrivate {
			return Key{}, errWrongDir
		}
		return parsePrivate(blk.Type, der)
	case "PUBLIC KEY", "RSA PUBLIC KEY":
		if wantPrivate {
			return Key{}, errWrongDir
		}
		return parsePublic(blk.Type, der)
	default:
		return Key{}, lberr.Newf(lberr.Invalid, "unrecognized PEM block type %q", blk.Type)
	}
}

func parsePrivate(typ string, der []byte) (Key, error) {
	switch typ {
	case "RSA PRIVATE KEY":
		k, e := x509.ParsePKCS1PrivateKey(der)
		if e != nil {
			return Key{}, lberr.New(lberr.Invalid, "malformed RSA private key", e)
		}
		return Key{priv: k}, nil
	case "EC PRIVATE KEY":
		k, e := x509.ParseECPrivateKey(der)
		if e != nil {
			return Key{}, lberr.New(lberr.Invalid, "malformed EC private key", e)
		}
		return Key{priv: k}, nil
	default:
		k, e := x509.ParsePKCS8PrivateKey(der)
		if e != nil {
			return Key{}, lberr.New(lberr.Invalid, "malformed PKCS8 private key", e)
		}
		switch sk := k.(type) {
		case *rsa.PrivateKey:
			return Key{priv: sk}, nil
		case *ecdsa.PrivateKey:
			return Key{priv: sk}, nil
		default:
			return Key{}, errUnsupported
		}
	}
}

func parsePublic(typ string, der []byte) (Key, error) {
	if typ == "RSA PUBLIC KEY" {
		k, e := x509.ParsePKCS1PublicKey(der)
		if e != nil {
			return Key{}, lberr.New(lberr.Invalid, "malformed RSA public key", e)
		}
		return Key{pub: k}, nil
	}

	k, e := x509.ParsePKIXPublicKey(der)
	if e != nil {
		return Key{}, lberr.New(lberr.Invalid, "malformed public key", e)
	}
	switch pk := k.(type) {
	case *rsa.PublicKey:
		return Key{pub: pk}, nil
	case *ecdsa.PublicKey:
		return Key{pub: pk}, nil
	default:
		return Key{}, errUnsupported
	}
}

// ExportPEM serializes k to PEM. Private keys are only serialized if k owns
// a private key; otherwise the public component is exported.
func ExportPEM(k Key) ([]byte, error) {
	if !k.Valid() {
		return nil, lberr.New(lberr.Invalid, "key is not valid")
	}

	if k.priv != nil {
		der, e := x509.MarshalPKCS8PrivateKey(k.priv)
		if e != nil {
			return nil, lberr.New(lberr.Invalid, "failed to marshal private key", e)
		}
		return pem.EncodeToMemory(&pem.Block{Type: "PRIVATE KEY", Bytes: der}), nil
	}

	der, e := x509.MarshalPKIXPublicKey(k.pub)
	if e != nil {
		return nil, lberr.New(lberr.Invalid, "failed to marshal public key", e)
	}
	return pem.EncodeToMemory(&pem.Block{Type: "PUBLIC KEY", Bytes: der}), nil
}

// FromSigner wraps an already-held crypto.Signer (e.g. produced by the TLS
// layer or a hardware token) as a Key without going through PEM. This is the
// "foreign handle" construction path from the original design.
func FromSigner(s crypto.Signer) Key {
	if s == nil {
		return Key{}
	}
	return Key{priv: s}
}
