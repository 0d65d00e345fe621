/*
Copyright 2025 Kurl Authors

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

    http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/

package main

import (
	"fmt"

	"github.com/jplu/kurl/kurl"
	"github.com/spf13/cobra"
)

var encodeClasses = map[string]kurl.EncodeClass{
	"simple":   kurl.EncodeSimple,
	"default":  kurl.EncodeDefault,
	"password": kurl.EncodePassword,
	"username": kurl.EncodeUsername,
}

func (a *app) newEncodeCmd() *cobra.Command {
	var className string
	var badChars bool
	cmd := &cobra.Command{
		Use:   "encode <text>...",
		Short: "Percent-encode text",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			class, ok := encodeClasses[className]
			if !ok {
				return fmt.Errorf("unknown class %q", className)
			}
			encode := func(s string) string { return kurl.EncodePercentEscapes(s, class) }
			if badChars {
				encode = kurl.EncodeBadChars
			}
			for _, arg := range args {
				fmt.Fprintln(cmd.OutOrStdout(), encode(arg))
			}
			return nil
		},
	}
	cmd.Flags().StringVarP(&className, "class", "c", "default", "encode class: simple, default, password or username")
	cmd.Flags().BoolVar(&badChars, "bad-chars", false, "escape every character not allowed in a path")
	return cmd
}

func (a *app) newDecodeCmd() *cobra.Command {
	var label string
	cmd := &cobra.Command{
		Use:   "decode <text>...",
		Short: "Decode percent escape sequences",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			enc := a.enc
			if label != "" {
				var err error
				if enc, err = kurl.EncodingByName(label); err != nil {
					return err
				}
			}
			for _, arg := range args {
				fmt.Fprintln(cmd.OutOrStdout(), kurl.DecodePercentEscapes(arg, enc))
			}
			return nil
		},
	}
	cmd.Flags().StringVarP(&label, "encoding", "e", "", "encoding of the escaped bytes (defaults to the configured encoding)")
	return cmd
}
