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

package config

import (
	"reflect"

	"github.com/mitchellh/mapstructure"
	"github.com/spf13/viper"

	"github.com/sabouaram/mumlib/cert"
	"github.com/sabouaram/mumlib/duration"
	"github.com/sabouaram/mumlib/internal/lberr"
	"github.com/sabouaram/mumlib/key"
)

// Load decodes a Config out of v, layered on Default. It registers decode
// hooks so a host can express duration strings ("5d23h", "10s") onto the
// Timeout field, and so a CertChain / PrivateKey field decoded elsewhere in
// a larger host config can bind PEM text directly to cert.Chain / key.Key,
// the way certificates/ca.ViperDecoderHook binds a PEM string to a ca.Cert.
func Load(v *viper.Viper) (Config, error) {
	cfg := Default()

	hook := mapstructure.ComposeDecodeHookFunc(
		DurationDecodeHook(),
		ChainDecodeHook(),
		KeyDecodeHook(),
	)

	if e := v.Unmarshal(&cfg, viper.DecodeHook(hook)); e != nil {
		return Config{}, lberr.Newf(lberr.Invalid, "decode configuration: %v", e)
	}
	return cfg, nil
}

// DurationDecodeHook lets a host express Timeout as a days-aware string
// ("5d23h15m13s", "10s"), the way certificates/config.go's duration fields
// decode through the teacher's own duration package.
func DurationDecodeHook() mapstructure.DecodeHookFuncType {
	return func(from reflect.Type, to reflect.Type, data interface{}) (interface{}, error) {
		if from.Kind() != reflect.String {
			return data, nil
		}
		if to != reflect.TypeOf(duration.Duration(0)) {
			return data, nil
		}
		s, ok := data.(string)
		if !ok {
			return data, nil
		}
		return duration.Parse(s)
	}
}

// ChainDecodeHook lets a larger host config bind a PEM-bundle string field
// directly to a cert.Chain.
func ChainDecodeHook() mapstructure.DecodeHookFuncType {
	return func(from reflect.Type, to reflect.Type, data interface{}) (interface{}, error) {
		if from.Kind() != reflect.String {
			return data, nil
		}
		if to != reflect.TypeOf(cert.Chain{}) {
			return data, nil
		}
		s, ok := data.(string)
		if !ok {
			return data, nil
		}
		return cert.ParseChainPEM([]byte(s))
	}
}

// KeyDecodeHook mirrors ChainDecodeHook for key.Key, decoding an unencrypted
// private-key PEM string.
func KeyDecodeHook() mapstructure.DecodeHookFuncType {
	return func(from reflect.Type, to reflect.Type, data interface{}) (interface{}, error) {
		if from.Kind() != reflect.String {
			return data, nil
		}
		if to != reflect.TypeOf(key.Key{}) {
			return data, nil
		}
		s, ok := data.(string)
		if !ok {
			return data, nil
		}
		return key.ParsePEM([]byte(s), true, nil)
	}
}
