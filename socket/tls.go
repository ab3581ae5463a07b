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

package socket

import (
	"context"
	"crypto/tls"
	"errors"
	"io"
	"net"
	"time"
)

// TLSCode is the closed return alphabet for the TLS layer. These are the
// only inputs the Connection state machine accepts from the transport.
type TLSCode uint8

const (
	Success TLSCode = iota
	Retry
	WaitIn
	WaitOut
	Shutdown
	Memory
	Failure
	UnknownCode
)

func (c TLSCode) String() string {
	switch c {
	case Success:
		return "success"
	case Retry:
		return "retry"
	case WaitIn:
		return "wait_in"
	case WaitOut:
		return "wait_out"
	case Shutdown:
		return "shutdown"
	case Memory:
		return "memory"
	case Failure:
		return "failure"
	default:
		return "unknown"
	}
}

// SocketTLS layers a TLS session on top of a Socket. accept()/connect()
// drive the handshake incrementally; read()/write() never block — they
// return WaitIn/WaitOut so the caller knows which readiness to wait for.
type SocketTLS struct {
	*Socket
	conn   *tls.Conn
	config *tls.Config
}

// NewServer wraps raw in a server-side TLS session. SetCert must have
// installed a certificate chain before Accept is called, either here via
// cfg or later via SetCert.
func NewServer(raw net.Conn, cfg *tls.Config) *SocketTLS {
	c := cfg.Clone()
	tlsConn := tls.Server(raw, c)
	return &SocketTLS{Socket: New(tlsConn), conn: tlsConn, config: c}
}

// NewClient wraps raw in a client-side TLS session.
func NewClient(raw net.Conn, cfg *tls.Config) *SocketTLS {
	c := cfg.Clone()
	tlsConn := tls.Client(raw, c)
	return &SocketTLS{Socket: New(tlsConn), conn: tlsConn, config: c}
}

// SetCert installs the local identity (certificate chain + private key)
// before the handshake starts.
func (s *SocketTLS) SetCert(cert tls.Certificate) {
	s.config.Certificates = []tls.Certificate{cert}
}

// Accept drives the server-side handshake incrementally.
func (s *SocketTLS) Accept(timeoutMs int) TLSCode {
	return s.handshake(timeoutMs)
}

// Connect drives the client-side handshake incrementally.
func (s *SocketTLS) Connect(timeoutMs int) TLSCode {
	return s.handshake(timeoutMs)
}

func (s *SocketTLS) handshake(timeoutMs int) TLSCode {
	deadline := time.Now()
	if timeoutMs > 0 {
		deadline = deadline.Add(time.Duration(timeoutMs) * time.Millisecond)
	}
	_ = s.conn.SetDeadline(deadline)

	e := s.conn.HandshakeContext(context.Background())
	if e == nil {
		return Success
	}
	return classify(e)
}

// ReadTLS returns decrypted application data and a code. A Retry/WaitIn result
// carries no bytes; the caller must call Wait and retry.
func (s *SocketTLS) ReadTLS(p []byte) (int, TLSCode) {
	_ = s.conn.SetReadDeadline(time.Now())
	n, e := s.Socket.Read(p)
	if e == nil {
		return n, Success
	}
	return n, classify(e)
}

// WriteTLS writes p and returns a code the same way ReadTLS does.
func (s *SocketTLS) WriteTLS(p []byte) (int, TLSCode) {
	_ = s.conn.SetWriteDeadline(time.Now())
	n, e := s.Socket.Write(p)
	if e == nil {
		return n, Success
	}
	return n, classify(e)
}

func classify(e error) TLSCode {
	if e == nil {
		return Success
	}
	if errors.Is(e, io.EOF) {
		return Shutdown
	}
	if ne, ok := e.(net.Error); ok && ne.Timeout() {
		return WaitIn
	}
	if errors.Is(e, net.ErrClosed) {
		return Shutdown
	}
	return Failure
}
