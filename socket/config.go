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

package socket

import (
	"crypto/tls"

	tlscpr "github.com/sabouaram/mumlib/certificates/cipher"
	tlscrv "github.com/sabouaram/mumlib/certificates/curves"
)

// Config tunes the TLS layer. The library negotiates modern TLS (>= 1.2) by
// default, matching spec's external-interface requirement. CipherList and
// CurveList are optional allow-lists; an empty list leaves crypto/tls's own
// defaults in place, the same inherit-unless-set behavior
// certificates/config.go applies to its own cipher/curve fields.
type Config struct {
	MinVersion         uint16          `mapstructure:"min_version" yaml:"min_version" json:"min_version"`
	MaxVersion         uint16          `mapstructure:"max_version" yaml:"max_version" json:"max_version"`
	InsecureSkipVerify bool            `mapstructure:"insecure_skip_verify" yaml:"insecure_skip_verify" json:"insecure_skip_verify"`
	ServerName         string          `mapstructure:"server_name" yaml:"server_name" json:"server_name"`
	CipherList         []tlscpr.Cipher `mapstructure:"cipher_list" yaml:"cipher_list" json:"cipher_list"`
	CurveList          []tlscrv.Curves `mapstructure:"curve_list" yaml:"curve_list" json:"curve_list"`
}

// TLSConfig builds a *tls.Config from c, defaulting MinVersion to TLS 1.2.
// Unrecognized cipher/curve entries are dropped rather than rejected, the
// same tolerant behavior certificates.Config.NewFrom applies when filtering
// its CipherList/CurveList against Check.
func (c Config) TLSConfig() *tls.Config {
	min := c.MinVersion
	if min == 0 {
		min = tls.VersionTLS12
	}

	cfg := &tls.Config{
		MinVersion:         min,
		MaxVersion:         c.MaxVersion,
		InsecureSkipVerify: c.InsecureSkipVerify,
		ServerName:         c.ServerName,
	}

	for _, ci := range c.CipherList {
		if tlscpr.Check(uint16(ci)) {
			cfg.CipherSuites = append(cfg.CipherSuites, uint16(ci))
		}
	}
	for _, cv := range c.CurveList {
		if cv.Check() {
			cfg.CurvePreferences = append(cfg.CurvePreferences, tls.CurveID(cv))
		}
	}
	return cfg
}
