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

package connection

import (
	"context"

	"golang.org/x/sync/errgroup"

	"github.com/sabouaram/mumlib/internal/lberr"
	"github.com/sabouaram/mumlib/pack"
	"github.com/sabouaram/mumlib/socket"
)

type workerState uint8

const (
	stateHandshaking workerState = iota
	stateRunning
	stateTerminating
)

// Start attaches feedback and launches the worker goroutine. Start must be
// called at most once. The worker runs inside an errgroup.Group of size one,
// and Stop joins it through the group's Wait.
func (c *Connection) Start(feedback Feedback) error {
	if !c.started.CompareAndSwap(false, true) {
		return lberr.New(lberr.Invalid, "connection already started")
	}
	c.feedback = feedback

	metricActive.Inc()
	c.group, _ = errgroup.WithContext(context.Background())
	c.group.Go(func() error {
		defer metricActive.Dec()
		c.run()
		return nil
	})
	return nil
}

func (c *Connection) run() {
	state := stateHandshaking
	for state != stateTerminating {
		switch state {
		case stateHandshaking:
			state = c.stepHandshake()
		case stateRunning:
			state = c.stepRunning()
		}
	}
}

func (c *Connection) isCancelled() bool {
	return c.cancelled.Load()
}

func (c *Connection) waitTimeoutMs() int {
	ms := int(c.feedback.Timeout() / 1_000_000)
	if ms <= 0 {
		ms = 1
	}
	return ms
}

func (c *Connection) stepHandshake() workerState {
	for {
		if c.isCancelled() {
			return c.terminate(lberr.Cancel, false)
		}

		var code socket.TLSCode
		if c.role == RoleServer {
			code = c.sock.Accept(0)
		} else {
			code = c.sock.Connect(0)
		}

		next, done := c.handleCode(code)
		if done {
			return next
		}
		if next == stateRunning {
			c.markOpened()
			return stateRunning
		}
	}
}

func (c *Connection) stepRunning() workerState {
	for {
		if c.isCancelled() {
			return c.terminate(lberr.Cancel, false)
		}

		p, st, done := c.readFrame()
		if done {
			return st
		}

		c.strikes = 0
		metricFramesIn.WithLabelValues(c.id.String()).Inc()
		c.feedback.Message(p)

		// hasPendingFrame always reports false, so control returns to run
		// after every frame; the next readFrame still reads bytes that are
		// already buffered without waiting, since ReadTLS is tried first.
		if !c.hasPendingFrame() {
			return stateRunning
		}
	}
}

func (c *Connection) hasPendingFrame() bool {
	return false
}

// readFrame reads one 6-byte header, then its body, retrying on Retry and
// waiting on WaitIn/WaitOut, until a full Pack is delivered or the worker
// terminates.
func (c *Connection) readFrame() (pack.Pack, workerState, bool) {
	header := make([]byte, pack.HeaderSize)
	if st, done := c.readFull(header); done {
		return pack.Pack{}, st, true
	}

	typ, length, e := pack.DecodeHeader(header)
	if e != nil {
		return pack.Pack{}, c.terminate(lberr.Invalid, true), true
	}
	if typ == pack.Unknown {
		return pack.Pack{}, c.terminate(lberr.Invalid, true), true
	}
	if length > c.maxLen {
		return pack.Pack{}, c.terminate(lberr.Invalid, true), true
	}

	body := make([]byte, length)
	if st, done := c.readFull(body); done {
		return pack.Pack{}, st, true
	}

	p, e := pack.Decode(header, body)
	if e != nil {
		return pack.Pack{}, c.terminate(lberr.Invalid, true), true
	}
	return p, stateRunning, false
}

// readFull reads exactly len(buf) bytes, retrying/waiting via the TLS code
// alphabet the same way the handshake loop does.
func (c *Connection) readFull(buf []byte) (workerState, bool) {
	read := 0
	for read < len(buf) {
		if c.isCancelled() {
			return c.terminate(lberr.Cancel, false), true
		}

		n, code := c.sock.ReadTLS(buf[read:])
		read += n

		if code == socket.Success && read >= len(buf) {
			c.strikes = 0
			return stateRunning, false
		}

		next, done := c.handleCode(code)
		if done {
			return next, true
		}
	}
	return stateRunning, false
}

// handleCode dispatches one SocketTLS code: Success resets the strike
// counter and advances; Retry loops immediately; WaitIn/WaitOut block on
// Socket.Wait and feed the result into handleState; Shutdown/Memory/Failure
// fire a terminal callback; Unknown terminates silently.
func (c *Connection) handleCode(code socket.TLSCode) (workerState, bool) {
	switch code {
	case socket.Success:
		c.strikes = 0
		return stateRunning, false
	case socket.Retry:
		return stateHandshaking, false
	case socket.WaitIn, socket.WaitOut:
		bits := c.sock.Wait(code == socket.WaitIn, code == socket.WaitOut, c.waitTimeoutMs())
		return c.handleState(bits)
	case socket.Shutdown:
		return c.terminate(lberr.Disconnect, false), true
	case socket.Memory:
		return c.terminate(lberr.Memory, true), true
	case socket.Failure:
		return c.terminate(lberr.Failure, true), true
	default:
		return stateTerminating, true
	}
}

// handleState dispatches one readiness bitset from Socket.Wait.
func (c *Connection) handleState(bits socket.ReadyBits) (workerState, bool) {
	switch {
	case bits&(socket.InReady|socket.OutReady|socket.Triggered) != 0:
		return stateHandshaking, false
	case bits&socket.Timeout != 0:
		c.strikes++
		if c.strikes < c.feedback.Timeouts() {
			return stateHandshaking, false
		}
		return c.terminate(lberr.Timeout, true), true
	case bits&socket.Disconnected != 0:
		return c.terminate(lberr.Disconnect, false), true
	default:
		return c.terminate(lberr.Failure, true), true
	}
}

// terminate fires the terminal callback at most once and returns the
// Terminating state: Failed(kind) when fatal is true, Closed otherwise. It
// does not check whether Opened has fired, so a cancelled handshake also
// ends with Closed.
func (c *Connection) terminate(kind lberr.Kind, fatal bool) workerState {
	if c.termFired.CompareAndSwap(false, true) {
		if fatal {
			c.feedback.Failed(kind)
		} else {
			c.feedback.Closed()
		}
	}
	return stateTerminating
}

func (c *Connection) markOpened() {
	if c.openedFired.CompareAndSwap(false, true) {
		c.feedback.Opened()
	}
}
