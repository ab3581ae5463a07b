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

	"github.com/sabouaram/mumlib/cert"
)

func newCertCommand(log *logrus.Logger) *cobra.Command {
	c := &cobra.Command{
		Use:   "cert",
		Short: "Inspect PEM certificate chains",
	}
	c.AddCommand(newCertShowCommand(log))
	return c
}

func newCertShowCommand(log *logrus.Logger) *cobra.Command {
	return &cobra.Command{
		Use:   "show <chain.pem>",
		Short: "Print subject/issuer/validity for each certificate in a PEM chain",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, e := os.ReadFile(args[0])
			if e != nil {
				return e
			}

			chain, e := cert.ParseChainPEM(data)
			if e != nil {
				log.WithError(e).Error("parsing certificate chain")
				return e
			}

			for i, leaf := range chain {
				fmt.Fprintf(cmd.OutOrStdout(), "[%d] subject=%q issuer=%q valid=%v not_before=%s not_after=%s\n",
					i, leaf.Subject().String(), leaf.Issuer().String(), leaf.Valid(),
					leaf.NotBefore().Format("2006-01-02T15:04:05Z07:00"),
					leaf.NotAfter().Format("2006-01-02T15:04:05Z07:00"))
			}
			return nil
		},
	}
}
