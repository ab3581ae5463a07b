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

package cert

import (
	"crypto/x509"
	"encoding/pem"

	"github.com/sabouaram/mumlib/internal/lberr"
	"github.com/sabouaram/mumlib/key"
)

// Chain is an ordered sequence of certificates, leaf first by convention of
// the caller.
type Chain []Cert

// ParseDER builds a single Cert from a DER-encoded certificate.
func ParseDER(der []byte) (Cert, error) {
	c, e := x509.ParseCertificate(der)
	if e != nil {
		return Cert{}, lberr.New(lberr.Invalid, "malformed DER certificate", e)
	}
	return fromX509(c), nil
}

// ParseChainPEM splits a PEM bundle on certificate boundaries, preserving
// source order, and parses each block.
func ParseChainPEM(data []byte) (Chain, error) {
	var chain Chain
	rest := data
	for {
		var blk *pem.Block
		blk, rest = pem.Decode(rest)
		if blk == nil {
			break
		}
		if blk.Type != "CERTIFICATE" {
			continue
		}
		c, e := x509.ParseCertificate(blk.Bytes)
		if e != nil {
			return nil, lberr.New(lberr.Invalid, "malformed certificate in chain", e)
		}
		chain = append(chain, fromX509(c))
	}
	if len(chain) == 0 {
		return nil, errNoPEMCert
	}
	return chain, nil
}

func fromX509(c *x509.Certificate) Cert {
	return Cert{
		raw:     c,
		subject: buildName(c.Subject),
		issuer:  buildName(c.Issuer),
	}
}

// ExportPEM serializes a single certificate to PEM.
func ExportPEM(c Cert) ([]byte, error) {
	if !c.Valid() {
		return nil, lberr.New(lberr.Invalid, "certificate is not valid")
	}
	return pem.EncodeToMemory(&pem.Block{Type: "CERTIFICATE", Bytes: c.raw.Raw}), nil
}

// ExportDER returns the certificate's raw DER bytes.
func ExportDER(c Cert) ([]byte, error) {
	if !c.Valid() {
		return nil, lberr.New(lberr.Invalid, "certificate is not valid")
	}
	return c.raw.Raw, nil
}

// ExportChainPEM concatenates a chain's certificates as leaf-first PEM.
func ExportChainPEM(chain Chain) ([]byte, error) {
	var out []byte
	for _, c := range chain {
		p, e := ExportPEM(c)
		if e != nil {
			return nil, e
		}
		out = append(out, p...)
	}
	return out, nil
}

// MatchesKey reports whether the chain's leaf certificate's public key
// matches k's public component, the invariant required before using the
// chain as a local TLS identity.
func MatchesKey(chain Chain, k key.Key) bool {
	if len(chain) == 0 || !chain[0].Valid() {
		return false
	}
	leaf := key.FromPublic(chain[0].raw.PublicKey)
	return leaf.Equal(k)
}
