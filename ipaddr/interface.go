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

// Package ipaddr stores a 16-byte IPv6-normalized address, the way the
// underlying transport sees every endpoint regardless of address family.
package ipaddr

import (
	"github.com/sabouaram/mumlib/internal/lberr"
)

// Addr is an immutable 16-byte IPv6-normalized address. An IPv4 address is
// stored in its IPv4-mapped IPv6 form: ten zero bytes, two 0xff bytes, then
// the four address bytes.
type Addr [16]byte

var v4Prefix = [12]byte{0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0xff, 0xff}

// Parse accepts either dotted-quad IPv4 or textual IPv6 and returns the
// canonical 16-byte form. IPv4 inputs are stored mapped.
func Parse(s string) (Addr, error) {
	return parse(s)
}

// IsV4 reports whether a holds the IPv4-mapped prefix.
func (a Addr) IsV4() bool {
	return [12]byte(a[:12]) == v4Prefix
}

// V4 returns the trailing four bytes and true if a is v4-mapped.
func (a Addr) V4() ([4]byte, bool) {
	if !a.IsV4() {
		return [4]byte{}, false
	}
	return [4]byte(a[12:16]), true
}

// V6 returns the full 16-byte view.
func (a Addr) V6() [16]byte {
	return a
}

// IsWildcard reports whether the addressable portion (4 bytes for v4, 16 for
// v6) is entirely zero.
func (a Addr) IsWildcard() bool {
	if a.IsV4() {
		v4, _ := a.V4()
		return v4 == [4]byte{}
	}
	return a == Addr{}
}

// String formats a in canonical IPv6 notation for v6 addresses and
// dotted-quad for v4.
func (a Addr) String() string {
	return format(a)
}

// Equal reports byte-equality.
func (a Addr) Equal(o Addr) bool {
	return a == o
}

// MarshalText implements encoding.TextMarshaler so Addr can be decoded by
// mapstructure/viper hooks and round-tripped through YAML/JSON config.
func (a Addr) MarshalText() ([]byte, error) {
	return []byte(a.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (a *Addr) UnmarshalText(b []byte) error {
	v, e := Parse(string(b))
	if e != nil {
		return e
	}
	*a = v
	return nil
}

var errInvalid = lberr.New(lberr.Invalid, "malformed IP address")
