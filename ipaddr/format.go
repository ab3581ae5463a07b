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

package ipaddr

import (
	"net"
)

func parse(s string) (Addr, error) {
	if s == "" {
		return Addr{}, errInvalid
	}

	ip := net.ParseIP(s)
	if ip == nil {
		return Addr{}, errInvalid
	}

	var a Addr
	if v4 := ip.To4(); v4 != nil {
		copy(a[:12], v4Prefix[:])
		copy(a[12:], v4)
		return a, nil
	}

	v6 := ip.To16()
	if v6 == nil {
		return Addr{}, errInvalid
	}
	copy(a[:], v6)
	return a, nil
}

func format(a Addr) string {
	if a.IsV4() {
		v4, _ := a.V4()
		return net.IP(v4[:]).String()
	}
	return net.IP(a[:]).String()
}
