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

// Package cert parses X.509 certificates and PEM-concatenated chains into
// the subject/issuer/validity view the TLS connection engine and its
// diagnostics need, without exposing the full x509.Certificate surface.
package cert

import (
	"crypto/x509"
	"crypto/x509/pkix"
	"encoding/asn1"
	"strings"
	"time"

	"github.com/sabouaram/mumlib/internal/lberr"
)

// Name is an ordered, multi-valued OID-name to UTF-8 value mapping, built by
// walking an X.509 RDN sequence in order.
type Name struct {
	entries []NameEntry
}

// NameEntry is one RDN attribute: its OID's textual name and value.
type NameEntry struct {
	OID   string
	Value string
}

// Get returns all values recorded under oidName, in RDN order.
func (n Name) Get(oidName string) []string {
	var out []string
	for _, e := range n.entries {
		if e.OID == oidName {
			out = append(out, e.Value)
		}
	}
	return out
}

// Entries exposes the full ordered list.
func (n Name) Entries() []NameEntry {
	return n.entries
}

// String renders n as a comma-separated "OID=value" list in RDN order, the
// conventional distinguished-name rendering used for diagnostics.
func (n Name) String() string {
	parts := make([]string, 0, len(n.entries))
	for _, e := range n.entries {
		parts = append(parts, e.OID+"="+e.Value)
	}
	return strings.Join(parts, ",")
}

// Cert is a parsed X.509 certificate: subject/issuer OID maps, validity
// window, and the DER/PEM serializations.
type Cert struct {
	raw     *x509.Certificate
	subject Name
	issuer  Name
}

// NotBefore returns the certificate's validity start.
func (c Cert) NotBefore() time.Time {
	return c.raw.NotBefore
}

// NotAfter returns the certificate's validity end.
func (c Cert) NotAfter() time.Time {
	return c.raw.NotAfter
}

// Subject returns the parsed subject name.
func (c Cert) Subject() Name {
	return c.subject
}

// Issuer returns the parsed issuer name.
func (c Cert) Issuer() Name {
	return c.issuer
}

// Raw returns the underlying *x509.Certificate for TLS integration.
func (c Cert) Raw() *x509.Certificate {
	return c.raw
}

// Valid reports whether c holds a parsed certificate.
func (c Cert) Valid() bool {
	return c.raw != nil
}

var oidNames = map[string]string{
	"2.5.4.3":  "CN",
	"2.5.4.6":  "C",
	"2.5.4.7":  "L",
	"2.5.4.8":  "ST",
	"2.5.4.10": "O",
	"2.5.4.11": "OU",
	"1.2.840.113549.1.9.1": "emailAddress",
}

func oidToName(oid asn1.ObjectIdentifier) string {
	if n, ok := oidNames[oid.String()]; ok {
		return n
	}
	return oid.String()
}

// buildName walks an X.509 name's attributes in RDN order, mapping each OID
// to its textual name and transcoding non-UTF-8 values.
func buildName(pn pkix.Name) Name {
	var n Name
	for _, atv := range pn.Names {
		n.entries = append(n.entries, NameEntry{
			OID:   oidToName(atv.Type),
			Value: toUTF8(atv.Value),
		})
	}
	return n
}

func toUTF8(v interface{}) string {
	switch s := v.(type) {
	case string:
		return s
	case []byte:
		return string(s)
	default:
		return ""
	}
}

var errNoPEMCert = lberr.New(lberr.Invalid, "no certificate PEM block found")
