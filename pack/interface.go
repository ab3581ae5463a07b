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

// Package pack implements the wire frame codec: a 6-byte big-endian header
// (u16 type, u32 length) followed by an opaque body. A Pack is the unit the
// Connection worker reads and writes once per message.
package pack

import (
	"encoding/binary"

	"github.com/sabouaram/mumlib/internal/lberr"
)

// HeaderSize is the fixed size of a frame header on the wire.
const HeaderSize = 6

// Type is the 16-bit message-type tag. The codec treats bodies opaquely
// beyond this tag; the set of recognized values is small and any tag
// outside it decodes as Unknown rather than failing.
type Type uint16

const (
	Unknown Type = 0
	Ping    Type = 1
	Version Type = 2
	Authenticate Type = 3
	CryptSetup  Type = 4
	Reject      Type = 5
	ServerSync  Type = 6
	ChannelState Type = 7
	UserState   Type = 8
	UDPTunnel   Type = 9
)

var known = map[Type]bool{
	Ping: true, Version: true, Authenticate: true, CryptSetup: true,
	Reject: true, ServerSync: true, ChannelState: true, UserState: true,
	UDPTunnel: true,
}

func normalize(t Type) Type {
	if known[t] {
		return t
	}
	return Unknown
}

// Pack owns a contiguous buffer of HeaderSize+len(body) bytes: the header
// fields plus a body view over the tail of that buffer.
type Pack struct {
	buf []byte
}

// Encode builds a Pack whose header is written big-endian at offset 0 and
// whose body is a copy of body.
func Encode(t Type, body []byte) Pack {
	buf := make([]byte, HeaderSize+len(body))
	binary.BigEndian.PutUint16(buf[0:2], uint16(t))
	binary.BigEndian.PutUint32(buf[2:6], uint32(len(body)))
	copy(buf[HeaderSize:], body)
	return Pack{buf: buf}
}

// DecodeHeader interprets a 6-byte header, returning the normalized type and
// the declared body length.
func DecodeHeader(header []byte) (Type, uint32, error) {
	if len(header) != HeaderSize {
		return Unknown, 0, lberr.New(lberr.Invalid, "header must be exactly 6 bytes")
	}
	t := Type(binary.BigEndian.Uint16(header[0:2]))
	l := binary.BigEndian.Uint32(header[2:6])
	return normalize(t), l, nil
}

// Decode interprets a received header+body pair as a Pack.
func Decode(header, body []byte) (Pack, error) {
	t, l, e := DecodeHeader(header)
	if e != nil {
		return Pack{}, e
	}
	if uint32(len(body)) != l {
		return Pack{}, lberr.New(lberr.Invalid, "body length does not match declared header length")
	}

	buf := make([]byte, HeaderSize+len(body))
	binary.BigEndian.PutUint16(buf[0:2], uint16(t))
	binary.BigEndian.PutUint32(buf[2:6], l)
	copy(buf[HeaderSize:], body)
	return Pack{buf: buf}, nil
}

// Type returns the frame's (already-normalized) type tag.
func (p Pack) Type() Type {
	if len(p.buf) < HeaderSize {
		return Unknown
	}
	return normalize(Type(binary.BigEndian.Uint16(p.buf[0:2])))
}

// Length returns the declared body length.
func (p Pack) Length() uint32 {
	if len(p.buf) < HeaderSize {
		return 0
	}
	return binary.BigEndian.Uint32(p.buf[2:6])
}

// Body returns a view over the body bytes (zero-length for an empty body;
// nil for a zero Pack).
func (p Pack) Body() []byte {
	if len(p.buf) < HeaderSize {
		return nil
	}
	return p.buf[HeaderSize:]
}

// Bytes returns the full wire representation (header + body).
func (p Pack) Bytes() []byte {
	return p.buf
}
