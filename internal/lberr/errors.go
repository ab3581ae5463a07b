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

package lberr

import (
	"errors"
	"fmt"
	"runtime"
)

// Error extends the standard error with a closed Kind classification,
// an optional parent chain, and the caller frame where it was raised.
type Error interface {
	error
	Is(err error) bool
	Unwrap() []error

	Kind() Kind
	HasKind(k Kind) bool

	Add(parent ...error)

	Frame() runtime.Frame
}

type ers struct {
	k Kind
	m string
	p []error
	t runtime.Frame
}

func (e *ers) Error() string {
	if e.t.Function != "" {
		return fmt.Sprintf("%s: %s (%s:%d)", e.k, e.m, e.t.File, e.t.Line)
	}
	return fmt.Sprintf("%s: %s", e.k, e.m)
}

func (e *ers) Is(err error) bool {
	var o *ers
	if errors.As(err, &o) {
		return e.k == o.k && e.m == o.m
	}
	return false
}

func (e *ers) Unwrap() []error {
	return e.p
}

func (e *ers) Kind() Kind {
	return e.k
}

func (e *ers) HasKind(k Kind) bool {
	if e.k == k {
		return true
	}
	for _, p := range e.p {
		var o *ers
		if errors.As(p, &o) && o.HasKind(k) {
			return true
		}
	}
	return false
}

func (e *ers) Add(parent ...error) {
	for _, p := range parent {
		if p != nil {
			e.p = append(e.p, p)
		}
	}
}

func (e *ers) Frame() runtime.Frame {
	return e.t
}

// New creates an Error with the given Kind and message, optionally wrapping
// one or more parent errors.
func New(k Kind, msg string, parent ...error) Error {
	e := &ers{
		k: k,
		m: msg,
		t: getFrame(),
	}
	e.Add(parent...)
	return e
}

// Newf is New with fmt.Sprintf-style formatting.
func Newf(k Kind, pattern string, args ...interface{}) Error {
	return New(k, fmt.Sprintf(pattern, args...))
}

// As reports whether err (or one of its parents) is a lberr.Error.
func As(err error) (Error, bool) {
	var e *ers
	if errors.As(err, &e) {
		return e, true
	}
	return nil, false
}

// KindOf returns the Kind of err if it is a lberr.Error, Unknown otherwise.
func KindOf(err error) Kind {
	if e, ok := As(err); ok {
		return e.Kind()
	}
	return Unknown
}
