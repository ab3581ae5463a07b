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

package connection_test

import (
	"crypto/ecdsa"
	"crypto/elliptic"
	"crypto/rand"
	"crypto/tls"
	"crypto/x509"
	"crypto/x509/pkix"
	"math/big"
	"net"
	"sync"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/sabouaram/mumlib/connection"
	"github.com/sabouaram/mumlib/internal/lberr"
	"github.com/sabouaram/mumlib/pack"
	"github.com/sabouaram/mumlib/socket"
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

// recorder is a Feedback test double: it records every callback firing in a
// mutex-guarded slice of events so assertions can run after the worker
// settles, without racing the worker goroutine.
type recorder struct {
	mu       sync.Mutex
	opened   int
	closed   int
	failed   []lberr.Kind
	messages []pack.Pack
	timeout  time.Duration
	timeouts int
}

func newRecorder(timeout time.Duration, timeouts int) *recorder {
	return &recorder{timeout: timeout, timeouts: timeouts}
}

func (r *recorder) Opened() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.opened++
}

func (r *recorder) Closed() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.closed++
}

func (r *recorder) Failed(code lberr.Kind) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.failed = append(r.failed, code)
}

func (r *recorder) Timeout() time.Duration { return r.timeout }
func (r *recorder) Timeouts() int          { return r.timeouts }

func (r *recorder) Message(p pack.Pack) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.messages = append(r.messages, p)
}

func (r *recorder) snapshotOpened() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.opened
}

func (r *recorder) snapshotClosed() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.closed
}

func (r *recorder) snapshotFailed() []lberr.Kind {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]lberr.Kind, len(r.failed))
	copy(out, r.failed)
	return out
}

func (r *recorder) snapshotMessages() []pack.Pack {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]pack.Pack, len(r.messages))
	copy(out, r.messages)
	return out
}

func newLoopback() (*connection.Connection, *connection.Connection, *recorder, *recorder) {
	rawServer, rawClient := net.Pipe()

	srvCfg := connection.Config{TLS: socket.Config{}, Pack: pack.Config{}}
	cliCfg := connection.Config{TLS: socket.Config{InsecureSkipVerify: true}, Pack: pack.Config{}}

	srv := connection.New(rawServer, connection.RoleServer, srvCfg, nil)
	cli := connection.New(rawClient, connection.RoleClient, cliCfg, nil)

	srv.SetCert(selfSignedCert())

	srvFB := newRecorder(200*time.Millisecond, 3)
	cliFB := newRecorder(200*time.Millisecond, 3)
	return srv, cli, srvFB, cliFB
}

var _ = Describe("Connection", func() {
	It("completes a loopback handshake and fires Opened on both sides", func() {
		srv, cli, srvFB, cliFB := newLoopback()

		Expect(srv.Start(srvFB)).To(Succeed())
		Expect(cli.Start(cliFB)).To(Succeed())

		Eventually(srvFB.snapshotOpened, 2*time.Second).Should(Equal(1))
		Eventually(cliFB.snapshotOpened, 2*time.Second).Should(Equal(1))

		Expect(srv.Stop()).To(Succeed())
		Expect(cli.Stop()).To(Succeed())
	})

	It("delivers an identical frame round-trip", func() {
		srv, cli, srvFB, cliFB := newLoopback()

		Expect(srv.Start(srvFB)).To(Succeed())
		Expect(cli.Start(cliFB)).To(Succeed())

		Eventually(srvFB.snapshotOpened, 2*time.Second).Should(Equal(1))
		Eventually(cliFB.snapshotOpened, 2*time.Second).Should(Equal(1))

		msg := pack.Encode(pack.Ping, []byte("hello mumble"))
		result := cli.Write(msg, nil)
		Expect(result).To(Equal(lberr.Success))

		Eventually(func() []pack.Pack {
			return srvFB.snapshotMessages()
		}, 2*time.Second).Should(HaveLen(1))

		got := srvFB.snapshotMessages()[0]
		Expect(got.Type()).To(Equal(pack.Ping))
		Expect(got.Body()).To(Equal([]byte("hello mumble")))

		Expect(srv.Stop()).To(Succeed())
		Expect(cli.Stop()).To(Succeed())
	})

	It("delivers an empty-body frame as a Message with an empty body", func() {
		srv, cli, srvFB, cliFB := newLoopback()

		Expect(srv.Start(srvFB)).To(Succeed())
		Expect(cli.Start(cliFB)).To(Succeed())

		Eventually(srvFB.snapshotOpened, 2*time.Second).Should(Equal(1))
		Eventually(cliFB.snapshotOpened, 2*time.Second).Should(Equal(1))

		msg := pack.Encode(pack.Ping, nil)
		Expect(cli.Write(msg, nil)).To(Equal(lberr.Success))

		Eventually(func() []pack.Pack {
			return srvFB.snapshotMessages()
		}, 2*time.Second).Should(HaveLen(1))
		Expect(srvFB.snapshotMessages()[0].Body()).To(BeEmpty())

		Expect(srv.Stop()).To(Succeed())
		Expect(cli.Stop()).To(Succeed())
	})

	It("fires Closed on a clean Stop without a terminal Failed", func() {
		srv, cli, srvFB, cliFB := newLoopback()

		Expect(srv.Start(srvFB)).To(Succeed())
		Expect(cli.Start(cliFB)).To(Succeed())

		Eventually(srvFB.snapshotOpened, 2*time.Second).Should(Equal(1))
		Eventually(cliFB.snapshotOpened, 2*time.Second).Should(Equal(1))

		Expect(cli.Stop()).To(Succeed())
		Expect(srv.Stop()).To(Succeed())

		Expect(cliFB.snapshotClosed()).To(Equal(1))
		Expect(cliFB.snapshotFailed()).To(BeEmpty())
	})

	It("returns Cancel from Write once halt fires", func() {
		srv, cli, srvFB, cliFB := newLoopback()

		Expect(srv.Start(srvFB)).To(Succeed())
		Expect(cli.Start(cliFB)).To(Succeed())

		Eventually(srvFB.snapshotOpened, 2*time.Second).Should(Equal(1))
		Eventually(cliFB.snapshotOpened, 2*time.Second).Should(Equal(1))

		halt := make(chan struct{})
		close(halt)

		msg := pack.Encode(pack.Ping, []byte("won't be sent"))
		Expect(cli.Write(msg, halt)).To(Equal(lberr.Cancel))

		Expect(srv.Stop()).To(Succeed())
		Expect(cli.Stop()).To(Succeed())
	})

	It("terminates with Failed(Invalid) on a frame whose type is outside the known set", func() {
		srv, cli, srvFB, cliFB := newLoopback()

		Expect(srv.Start(srvFB)).To(Succeed())
		Expect(cli.Start(cliFB)).To(Succeed())

		Eventually(srvFB.snapshotOpened, 2*time.Second).Should(Equal(1))
		Eventually(cliFB.snapshotOpened, 2*time.Second).Should(Equal(1))

		msg := pack.Encode(pack.Type(0xBEEF), []byte("unrecognized"))
		Expect(cli.Write(msg, nil)).To(Equal(lberr.Success))

		Eventually(srvFB.snapshotFailed, 2*time.Second).Should(ContainElement(lberr.Invalid))
		Expect(srvFB.snapshotMessages()).To(BeEmpty())

		Expect(cli.Stop()).To(Succeed())
	})
})
