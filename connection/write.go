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
	"github.com/sabouaram/mumlib/internal/lberr"
	"github.com/sabouaram/mumlib/pack"
	"github.com/sabouaram/mumlib/socket"
)

// Write sends one encoded frame synchronously and returns its outcome. It
// is callable from any goroutine. halt, if non-nil, is a caller-controlled
// cancellation signal observed with the same latency as stop().
func (c *Connection) Write(p pack.Pack, halt <-chan struct{}) lberr.Kind {
	c.writeMu.Lock()
	defer c.writeMu.Unlock()

	buf := p.Bytes()
	written := 0
	for written < len(buf) {
		select {
		case <-halt:
			return lberr.Cancel
		default:
		}
		if c.isCancelled() {
			return lberr.Cancel
		}

		n, code := c.sock.WriteTLS(buf[written:])
		written += n

		switch code {
		case socket.Success:
			continue
		case socket.Retry:
			continue
		case socket.WaitIn, socket.WaitOut:
			c.sock.Wait(code == socket.WaitIn, code == socket.WaitOut, c.waitTimeoutMs())
			continue
		case socket.Shutdown:
			return lberr.Disconnect
		case socket.Memory:
			return lberr.Memory
		default:
			return lberr.Failure
		}
	}

	metricFramesOut.WithLabelValues(c.id.String()).Inc()
	return lberr.Success
}

// Stop requests cancellation, wakes the worker, and joins it. Stop always
// returns only after the worker has joined; no callback fires after Stop
// returns. Calling Stop more than once is safe.
func (c *Connection) Stop() error {
	c.cancelled.Store(true)
	c.sock.Trigger()
	if c.group != nil {
		return c.group.Wait()
	}
	return nil
}
