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

// Package config aggregates the per-component Config structs (socket, pack,
// connection) plus the PEM material a host supplies, and knows how to decode
// all of it from a Viper instance the way certificates/config.go does for
// the teacher's TLS stack.
package config

import (
	"slices"
	"time"

	"github.com/sabouaram/mumlib/connection"
	"github.com/sabouaram/mumlib/duration"
	"github.com/sabouaram/mumlib/pack"
	"github.com/sabouaram/mumlib/socket"
)

// DefaultTimeout and DefaultTimeouts give the connection worker's wait loop
// a sane default strike budget: three consecutive 5s waits before a
// connection is declared dead.
const (
	DefaultTimeout  = duration.Duration(5 * time.Second)
	DefaultTimeouts = 3
)

// Config is the root decode target for a host's configuration source
// (file, env, flags, via Viper). CertPEM/KeyPEM are raw PEM text rather than
// parsed cert.Chain/key.Key values, since (unlike the teacher's cert/ca
// types) this library leaves chain/key validation to the caller via
// cert.MatchesKey rather than performing it during decode.
type Config struct {
	TLS  socket.Config `mapstructure:"tls" yaml:"tls" json:"tls"`
	Pack pack.Config   `mapstructure:"pack" yaml:"pack" json:"pack"`

	CertPEM string `mapstructure:"cert_pem" yaml:"cert_pem" json:"cert_pem"`
	KeyPEM  string `mapstructure:"key_pem" yaml:"key_pem" json:"key_pem"`

	Timeout  duration.Duration `mapstructure:"timeout" yaml:"timeout" json:"timeout"`
	Timeouts int               `mapstructure:"timeouts" yaml:"timeouts" json:"timeouts"`
}

// Default returns a Config with the library's defaults applied, mirroring
// the role certificates.Default plays for the teacher's TLS stack.
func Default() Config {
	return Config{
		Pack:     pack.Config{MaxBodyLength: pack.DefaultMaxBodyLength},
		Timeout:  DefaultTimeout,
		Timeouts: DefaultTimeouts,
	}
}

// Clone returns a deep-enough copy of c: a value copy whose TLS cipher and
// curve lists are copied too, since they are the only slices Config holds.
// It exists (as certificates.Config.Clone does) so callers never need to
// reason about aliasing between a loaded Config and a derived one.
func (c Config) Clone() Config {
	r := c
	r.TLS.CipherList = slices.Clone(c.TLS.CipherList)
	r.TLS.CurveList = slices.Clone(c.TLS.CurveList)
	return r
}

// Merge overlays any non-zero field of o onto c, following the same
// inherit-then-override shape as certificates.Config.NewFrom.
func (c Config) Merge(o Config) Config {
	r := c.Clone()

	if o.TLS.MinVersion != 0 {
		r.TLS.MinVersion = o.TLS.MinVersion
	}
	if o.TLS.MaxVersion != 0 {
		r.TLS.MaxVersion = o.TLS.MaxVersion
	}
	if o.TLS.InsecureSkipVerify {
		r.TLS.InsecureSkipVerify = true
	}
	if o.TLS.ServerName != "" {
		r.TLS.ServerName = o.TLS.ServerName
	}
	if len(o.TLS.CipherList) > 0 {
		r.TLS.CipherList = slices.Clone(o.TLS.CipherList)
	}
	if len(o.TLS.CurveList) > 0 {
		r.TLS.CurveList = slices.Clone(o.TLS.CurveList)
	}
	if o.Pack.MaxBodyLength != 0 {
		r.Pack.MaxBodyLength = o.Pack.MaxBodyLength
	}
	if o.CertPEM != "" {
		r.CertPEM = o.CertPEM
	}
	if o.KeyPEM != "" {
		r.KeyPEM = o.KeyPEM
	}
	if o.Timeout != 0 {
		r.Timeout = o.Timeout
	}
	if o.Timeouts != 0 {
		r.Timeouts = o.Timeouts
	}
	return r
}

// Connection projects the fields connection.Config actually needs.
func (c Config) Connection() connection.Config {
	return connection.Config{TLS: c.TLS, Pack: c.Pack}
}
