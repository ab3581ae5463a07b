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

package key_test

import (
	"crypto/ecdsa"
	"crypto/elliptic"
	"crypto/rand"

	"github.com/sabouaram/mumlib/key"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("Key", func() {
	It("round-trips an EC private key through PEM", func() {
		k, e := ecdsa.GenerateKey(elliptic.P256(), rand.Reader)
		Expect(e).ToNot(HaveOccurred())

		orig := key.FromSigner(k)
		Expect(orig.IsPrivate()).To(BeTrue())

		pemBytes, e := key.ExportPEM(orig)
		Expect(e).ToNot(HaveOccurred())

		parsed, e := key.ParsePEM(pemBytes, true, nil)
		Expect(e).ToNot(HaveOccurred())
		Expect(parsed.IsPrivate()).To(BeTrue())
		Expect(parsed.Equal(orig)).To(BeTrue())
	})

	It("rejects a wrong-direction import", func() {
		k, _ := ecdsa.GenerateKey(elliptic.P256(), rand.Reader)
		orig := key.FromSigner(k)
		pemBytes, _ := key.ExportPEM(orig)

		_, e := key.ParsePEM(pemBytes, false, nil)
		Expect(e).To(HaveOccurred())
	})

	It("rejects malformed PEM without panicking", func() {
		_, e := key.ParsePEM([]byte("not pem"), true, nil)
		Expect(e).To(HaveOccurred())
	})

	It("treats the zero value as invalid", func() {
		var z key.Key
		Expect(z.Valid()).To(BeFalse())
	})
})
