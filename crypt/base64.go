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

package crypt

import (
	"encoding/base64"
	"strings"
)

// Base64EncodedLen returns the buffer size required to hold the canonical
// padded encoding of n input bytes, including the terminating NUL a
// C-style caller would need: 4*ceil(n/3) + 1.
func Base64EncodedLen(n int) int {
	return 4*((n+2)/3) + 1
}

// Base64DecodedLen returns the upper-bound buffer size for decoding n bytes
// of canonical base64, using the safe ceil(n/4)*3 allocation hint.
func Base64DecodedLen(n int) int {
	return ((n + 3) / 4) * 3
}

// Base64Encode returns the canonical padded encoding of p. dst's backing
// array is reused when its capacity is large enough; otherwise a new buffer
// is allocated. The required buffer size is reported by Base64EncodedLen,
// not by this function.
func Base64Encode(dst, p []byte) []byte {
	n := base64.StdEncoding.EncodedLen(len(p))
	if cap(dst) < n {
		dst = make([]byte, n)
	} else {
		dst = dst[:n]
	}
	base64.StdEncoding.Encode(dst, p)
	return dst
}

// Base64Decode decodes canonical base64, tolerating leading/trailing
// whitespace and line breaks. It fails if the trimmed input length is not a
// multiple of 4.
func Base64Decode(p []byte) ([]byte, error) {
	s := strings.Map(func(r rune) rune {
		switch r {
		case ' ', '\t', '\r', '\n':
			return -1
		default:
			return r
		}
	}, string(p))

	if s == "" {
		return nil, nil
	}
	if len(s)%4 != 0 {
		return nil, errBase64Length
	}

	out := make([]byte, base64.StdEncoding.DecodedLen(len(s)))
	n, e := base64.StdEncoding.Decode(out, []byte(s))
	if e != nil {
		return nil, errBase64Length
	}
	return out[:n], nil
}
