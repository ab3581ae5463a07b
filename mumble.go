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

// Package mumble is the process-scoped entry point for the library: Init
// and Deinit bracket the lifetime of every Connection, Key, and Cert value
// the process creates, the way the library's C++ original brackets its
// crypto provider's process-wide state.
package mumble

import (
	"sync"

	"github.com/sabouaram/mumlib/internal/lberr"
)

// Code is the closed diagnostic taxonomy shared by every component in the
// module: ipaddr, key, cert, crypt, ocb2, socket, pack, and connection all
// report outcomes in terms of it.
type Code = lberr.Kind

// The full Code alphabet, re-exported so a caller never needs to import the
// internal taxonomy package directly.
const (
	CodeUnknown    = lberr.Unknown
	CodeSuccess    = lberr.Success
	CodeRetry      = lberr.Retry
	CodeBusy       = lberr.Busy
	CodeTimeout    = lberr.Timeout
	CodeDisconnect = lberr.Disconnect
	CodeCancel     = lberr.Cancel
	CodeMemory     = lberr.Memory
	CodeInvalid    = lberr.Invalid
	CodeFailure    = lberr.Failure
)

var (
	mu          sync.Mutex
	initialized bool
)

// Init performs one-time process-wide setup. It is idempotent: calling it
// again while already initialized is a no-op that returns Success.
func Init() Code {
	mu.Lock()
	defer mu.Unlock()

	initialized = true
	return lberr.Success
}

// Deinit tears down process-wide state. It must be called once after every
// Connection, Key, and Cert value the process holds has been released.
// Calling it without a matching Init returns Invalid.
func Deinit() Code {
	mu.Lock()
	defer mu.Unlock()

	if !initialized {
		return lberr.Invalid
	}
	initialized = false
	return lberr.Success
}

// Text renders a Code for diagnostics.
func Text(c Code) string {
	return c.String()
}
