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

// Package lberr is the module's internal error taxonomy: every fallible
// operation returns an error carrying one of a closed set of codes so a
// caller can classify failures without string matching.
package lberr

// Kind is the closed error-code taxonomy shared by every component.
type Kind uint8

const (
	Unknown Kind = iota
	Success
	Retry
	Busy
	Timeout
	Disconnect
	Cancel
	Memory
	Invalid
	Failure
)

func (k Kind) String() string {
	switch k {
	case Success:
		return "success"
	case Retry:
		return "retry"
	case Busy:
		return "busy"
	case Timeout:
		return "timeout"
	case Disconnect:
		return "disconnect"
	case Cancel:
		return "cancel"
	case Memory:
		return "memory"
	case Invalid:
		return "invalid"
	case Failure:
		return "failure"
	default:
		return "unknown"
	}
}
