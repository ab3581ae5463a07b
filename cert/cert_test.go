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

package cert_test

import (
	"crypto/ecdsa"
	"crypto/elliptic"
	"crypto/rand"
	"crypto/x509"
	"crypto/x509/pkix"
	"math/big"
	"time"

	"github.com/sabouaram/mumlib/cert"
	"github.com/sabouaram/mumlib/key"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

func selfSignedPEM(cn string) ([]byte, *ecdsa.PrivateKey) {
	priv, e := ecdsa.GenerateKey(elliptic.P256(), rand.Reader)
	Expect(e).ToNot(HaveOccurred())

	tmpl := &x509.Certificate{
		SerialNumber: big.NewInt(1),
		Subject:      pkix.Name{CommonName: cn, Organization: []string{"mumlib test"}},
		NotBefore:    time.Now().Add(-time.Hour),
		NotAfter:     time.Now().Add(time.Hour),
		KeyUsage:     x509.KeyUsageDigitalSignature | x509.KeyUsageCertSign,
		IsCA:         true,
	}

	der, e := x509.CreateCertificate(rand.Reader, tmpl, tmpl, &priv.PublicKey, priv)
	Expect(e).ToNot(HaveOccurred())

	pemBytes, e := cert.ExportPEM(mustParseDER(der))
	Expect(e).ToNot(HaveOccurred())
	return pemBytes, priv
}

func mustParseDER(der []byte) cert.Cert {
	c, e := cert.ParseDER(der)
	Expect(e).ToNot(HaveOccurred())
	return c
}

var _ = Describe("Cert", func() {
	It("parses a self-signed chain and exposes subject/issuer/validity", func() {
		pemBytes, _ := selfSignedPEM("mumlib.example")

		chain, e := cert.ParseChainPEM(pemBytes)
		Expect(e).ToNot(HaveOccurred())
		Expect(chain).To(HaveLen(1))

		leaf := chain[0]
		Expect(leaf.Subject().Get("CN")).To(ConsistOf("mumlib.example"))
		Expect(leaf.Issuer().Get("CN")).To(ConsistOf("mumlib.example"))
		Expect(leaf.NotBefore().Before(leaf.NotAfter())).To(BeTrue())
	})

	It("round-trips PEM export", func() {
		pemBytes, _ := selfSignedPEM("roundtrip.example")
		chain, e := cert.ParseChainPEM(pemBytes)
		Expect(e).ToNot(HaveOccurred())

		out, e := cert.ExportChainPEM(chain)
		Expect(e).ToNot(HaveOccurred())

		chain2, e := cert.ParseChainPEM(out)
		Expect(e).ToNot(HaveOccurred())
		Expect(chain2[0].Subject().Get("CN")).To(Equal(chain[0].Subject().Get("CN")))
	})

	It("confirms the leaf-key matching invariant", func() {
		pemBytes, priv := selfSignedPEM("match.example")
		chain, e := cert.ParseChainPEM(pemBytes)
		Expect(e).ToNot(HaveOccurred())

		k := key.FromSigner(priv)
		Expect(cert.MatchesKey(chain, k)).To(BeTrue())

		other, _ := ecdsa.GenerateKey(elliptic.P256(), rand.Reader)
		Expect(cert.MatchesKey(chain, key.FromSigner(other))).To(BeFalse())
	})

	It("rejects an empty PEM bundle", func() {
		_, e := cert.ParseChainPEM([]byte("not a certificate"))
		Expect(e).To(HaveOccurred())
	})
})
