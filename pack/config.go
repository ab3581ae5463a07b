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

package pack

// DefaultMaxBodyLength bounds allocation for a single frame body: large
// enough for a full control message, small enough to not let a malicious or
// corrupt peer force an unbounded allocation.
const DefaultMaxBodyLength = 8 * 1024 * 1024

// Config tunes the codec's acceptance bound. It is decoded the same way
// other library components are (mapstructure/yaml/json tags) so a host can
// wire it from Viper.
type Config struct {
	MaxBodyLength uint32 `mapstructure:"max_body_length" yaml:"max_body_length" json:"max_body_length"`
}

// MaxLen returns the configured bound, or DefaultMaxBodyLength if unset.
func (c Config) MaxLen() uint32 {
	if c.MaxBodyLength == 0 {
		return DefaultMaxBodyLength
	}
	return c.MaxBodyLength
}
