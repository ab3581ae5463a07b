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

package socket_test

import (
	"crypto/ecdsa"
	"crypto/elliptic"
	"crypto/rand"
	"crypto/tls"
	"crypto/x509"
	"crypto/x509/pkix"
	"math/big"
	"net"
	"time"

	"github.com/sabouaram/mumlib/socket"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

func selfSignedCert() tls.Certificate {
	priv, e := ecdsa.GenerateKey(elliptic.P256(), rand.Reader)
	Expect(e).ToNot(HaveOccurred())

	tmpl := &x509.Certificate{
		SerialNumber: big.NewInt(1),
		Subject:      pkix.Name{CommonName: "loopback"},
		NotBefore:    time.Now().Add(-time.Hour),
		NotAfter:     time.Now().Add(time.Hour),
		KeyUsage:     x509.KeyUsageDigitalSignature,
		IsCA:         true,
	}
	der, e := x509.CreateCertificate(rand.Reader, tmpl, tmpl, &priv.PublicKey, priv)
	Expect(e).ToNot(HaveOccurred())

	return tls.Certificate{Certificate: [][]byte{der}, PrivateKey: priv}
}

var _ = Describe("Socket", func() {
	It("wakes a pending Wait via Trigger", func() {
		a, _ := net.Pipe()
		s := socket.New(a)

		done := make(chan socket.ReadyBits, 1)
		go func() {
			done <- s.Wait(true, false, 5000)
		}()

		time.Sleep(20 * time.Millisecond)
		s.Trigger()

		select {
		case r := <-done:
			Expect(r & socket.Triggered).To(Equal(socket.Triggered))
		case <-time.After(time.Second):
			Fail("Wait did not return after Trigger")
		}
	})

	It("reports Timeout when nothing becomes ready", func() {
		a, _ := net.Pipe()
		s := socket.New(a)

		r := s.Wait(true, false, 50)
		Expect(r & socket.Timeout).To(Equal(socket.Timeout))
	})
})

var _ = Describe("SocketTLS", func() {
	It("completes a loopback handshake between server and client", func() {
		rawServer, rawClient := net.Pipe()

		cert := selfSignedCert()
		srvCfg := &tls.Config{Certificates: []tls.Certificate{cert}}
		cliCfg := &tls.Config{InsecureSkipVerify: true}

		srv := socket.NewServer(rawServer, srvCfg)
		cli := socket.NewClient(rawClient, cliCfg)

		srvDone := make(chan socket.TLSCode, 1)
		cliDone := make(chan socket.TLSCode, 1)

		go func() { srvDone <- srv.Accept(2000) }()
		go func() { cliDone <- cli.Connect(2000) }()

		Eventually(srvDone, 2*time.Second).Should(Receive(Equal(socket.Success)))
		Eventually(cliDone, 2*time.Second).Should(Receive(Equal(socket.Success)))
	})
})
