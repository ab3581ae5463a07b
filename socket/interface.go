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

// Package socket wraps a net.Conn with the readiness-wait/wake primitive the
// Connection worker needs, and layers a TLS session returning a small code
// alphabet on top (SocketTLS). Go's net.Conn gives no portable way to probe
// read/write readiness without blocking, so Wait uses the "deadline trick":
// a short, interruptible blocking Read stashed into a one-byte lookahead.
// Write-readiness is assumed immediate, since a portable non-blocking write
// probe would require raw epoll/kqueue access this module does not take on.
package socket

import (
	"errors"
	"io"
	"net"
	"sync"
	"time"
)

// ReadyBits is the bitset Wait returns.
type ReadyBits uint8

const (
	InReady ReadyBits = 1 << iota
	OutReady
	Triggered
	Timeout
	Disconnected
	Error
)

// Socket wraps a non-blocking-emulated net.Conn: wait() blocks the caller
// until readable, a trigger fires, the timeout elapses, or the peer
// closes/errors; trigger() wakes a concurrent wait() without consuming data.
type Socket struct {
	conn net.Conn

	mu        sync.Mutex
	trig      chan struct{}
	lookahead []byte
}

// New wraps conn (a *net.TCPConn, *tls.Conn, or any net.Conn).
func New(conn net.Conn) *Socket {
	return &Socket{conn: conn, trig: make(chan struct{}, 1)}
}

// Trigger wakes a concurrent Wait without consuming socket data. Safe to
// call from any goroutine, including concurrently with itself.
func (s *Socket) Trigger() {
	select {
	case s.trig <- struct{}{}:
	default:
	}
	_ = s.conn.SetReadDeadline(time.Now())
}

// Wait blocks until the socket is readable (when in is true), a Trigger
// fires, timeoutMs elapses, or the peer closes/errors. When in is false, a
// requested write-readiness (out) is reported immediately; when in is true,
// OutReady is only added to a readable result.
func (s *Socket) Wait(in, out bool, timeoutMs int) ReadyBits {
	select {
	case <-s.trig:
		return Triggered
	default:
	}

	if !in {
		if out {
			return OutReady
		}
		t := time.NewTimer(time.Duration(timeoutMs) * time.Millisecond)
		defer t.Stop()
		select {
		case <-s.trig:
			return Triggered
		case <-t.C:
			var b ReadyBits
			if out {
				b |= OutReady
			}
			return b
		}
	}

	s.mu.Lock()
	if len(s.lookahead) > 0 {
		s.mu.Unlock()
		b := InReady
		if out {
			b |= OutReady
		}
		return b
	}
	s.mu.Unlock()

	_ = s.conn.SetReadDeadline(time.Now().Add(time.Duration(timeoutMs) * time.Millisecond))
	buf := make([]byte, 1)
	n, err := s.conn.Read(buf)

	if n > 0 {
		s.mu.Lock()
		s.lookahead = buf[:n]
		s.mu.Unlock()
		b := InReady
		if out {
			b |= OutReady
		}
		return b
	}

	select {
	case <-s.trig:
		return Triggered
	default:
	}

	if err == nil {
		b := ReadyBits(0)
		if out {
			b |= OutReady
		}
		return b
	}
	if ne, ok := err.(net.Error); ok && ne.Timeout() {
		return Timeout
	}
	if errors.Is(err, io.EOF) {
		return Disconnected
	}
	return Error
}

// Read drains any byte stashed by a prior Wait before reading fresh bytes.
func (s *Socket) Read(p []byte) (int, error) {
	if len(p) == 0 {
		return 0, nil
	}

	s.mu.Lock()
	if len(s.lookahead) > 0 {
		n := copy(p, s.lookahead)
		s.lookahead = s.lookahead[n:]
		s.mu.Unlock()
		return n, nil
	}
	s.mu.Unlock()

	return s.conn.Read(p)
}

// Write writes p to the underlying connection.
func (s *Socket) Write(p []byte) (int, error) {
	return s.conn.Write(p)
}

// SetDeadline sets both read and write deadlines on the underlying conn.
func (s *Socket) SetDeadline(t time.Time) error {
	return s.conn.SetDeadline(t)
}

// Close closes the underlying connection.
func (s *Socket) Close() error {
	return s.conn.Close()
}

// Conn exposes the wrapped net.Conn for layers (like SocketTLS) that need
// direct access, e.g. to wrap it in a *tls.Conn.
func (s *Socket) Conn() net.Conn {
	return s.conn
}
