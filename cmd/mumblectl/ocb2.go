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

package main

import (
	"bytes"
	"fmt"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/sabouaram/mumlib/ocb2"
)

func newOCB2Command(log *logrus.Logger) *cobra.Command {
	c := &cobra.Command{
		Use:   "ocb2",
		Short: "Exercise the OCB2-AES128 voice cipher",
	}
	c.AddCommand(newOCB2SelftestCommand(log))
	return c
}

func newOCB2SelftestCommand(log *logrus.Logger) *cobra.Command {
	return &cobra.Command{
		Use:   "selftest",
		Short: "Run the spec's K/N/P test vector through encrypt/decrypt and report pass/fail",
		RunE: func(cmd *cobra.Command, args []string) error {
			var key, nonce [16]byte
			for i := range key {
				key[i] = byte(i)
			}
			for i := range nonce {
				nonce[i] = byte(0x10 + i)
			}
			plaintext := []byte("Attack at dawn.")

			st, e := ocb2.NewState(key)
			if e != nil {
				log.WithError(e).Error("building OCB2 state")
				return e
			}

			ciphertext, tag, ok := st.Encrypt(nonce, plaintext)
			if !ok {
				return fmt.Errorf("encrypt rejected the nonce")
			}

			decoded, ok := st.Decrypt(nonce, ciphertext, tag)
			if !ok || !bytes.Equal(decoded, plaintext) {
				return fmt.Errorf("round-trip mismatch: decrypted %q", decoded)
			}

			fmt.Fprintf(cmd.OutOrStdout(), "ok ciphertext=%x tag=%x\n", ciphertext, tag)
			return nil
		},
	}
}
