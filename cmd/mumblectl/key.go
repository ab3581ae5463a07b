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
	"fmt"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/sabouaram/mumlib/key"
)

func newKeyCommand(log *logrus.Logger) *cobra.Command {
	c := &cobra.Command{
		Use:   "key",
		Short: "Inspect PEM private/public keys",
	}
	c.AddCommand(newKeyShowCommand(log))
	return c
}

func newKeyShowCommand(log *logrus.Logger) *cobra.Command {
	var private bool

	c := &cobra.Command{
		Use:   "show <key.pem>",
		Short: "Parse a PEM key and report whether it is private, public, and valid",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, e := os.ReadFile(args[0])
			if e != nil {
				return e
			}

			k, e := key.ParsePEM(data, private, nil)
			if e != nil {
				log.WithError(e).Error("parsing key")
				return e
			}

			fmt.Fprintf(cmd.OutOrStdout(), "valid=%v is_private=%v\n", k.Valid(), k.IsPrivate())
			return nil
		},
	}
	c.Flags().BoolVar(&private, "private", false, "expect a private key (default: public)")
	return c
}
