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

package pack_test

import (
	"github.com/sabouaram/mumlib/pack"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("Pack", func() {
	It("encodes the header big-endian", func() {
		p := pack.Encode(pack.Ping, []byte{0x01, 0x02, 0x03})
		b := p.Bytes()
		Expect(b[0:2]).To(Equal([]byte{0x00, byte(pack.Ping)}))
		Expect(b[2:6]).To(Equal([]byte{0x00, 0x00, 0x00, 0x03}))
	})

	It("round-trips through decode", func() {
		p := pack.Encode(pack.Version, []byte("hello"))
		t, l, e := pack.DecodeHeader(p.Bytes()[:pack.HeaderSize])
		Expect(e).ToNot(HaveOccurred())
		Expect(t).To(Equal(pack.Version))
		Expect(l).To(Equal(uint32(5)))

		p2, e := pack.Decode(p.Bytes()[:pack.HeaderSize], p.Body())
		Expect(e).ToNot(HaveOccurred())
		Expect(p2.Body()).To(Equal([]byte("hello")))
	})

	It("fires with an empty body for length == 0", func() {
		p := pack.Encode(pack.Ping, nil)
		Expect(p.Length()).To(Equal(uint32(0)))
		Expect(p.Body()).To(BeEmpty())
	})

	It("maps an unrecognized type tag to Unknown", func() {
		p := pack.Encode(pack.Type(0xbeef), []byte("x"))
		Expect(p.Type()).To(Equal(pack.Unknown))
	})

	It("rejects a body whose length disagrees with the header", func() {
		header := pack.Encode(pack.Ping, make([]byte, 4)).Bytes()[:pack.HeaderSize]
		_, e := pack.Decode(header, []byte{0x01})
		Expect(e).To(HaveOccurred())
	})

	It("defaults MaxLen when unset", func() {
		var c pack.Config
		Expect(c.MaxLen()).To(Equal(uint32(pack.DefaultMaxBodyLength)))
	})
})
