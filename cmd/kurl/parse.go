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
	"encoding/json"
	"fmt"
	"io"

	"github.com/jplu/kurl/kurl"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

// report is the printed form of one parsed or resolved URL.
type report struct {
	Input    string `json:"input"`
	URL      string `json:"url"`
	Valid    bool   `json:"valid"`
	Protocol string `json:"protocol,omitempty"`
	User     string `json:"user,omitempty"`
	Host     string `json:"host,omitempty"`
	Port     uint16 `json:"port,omitempty"`
	Path     string `json:"path,omitempty"`
	Query    string `json:"query,omitempty"`
	Fragment string `json:"fragment,omitempty"`
	Error    string `json:"error,omitempty"`
}

func newReport(input string, u kurl.URL) report {
	r := report{Input: input, URL: u.String(), Valid: u.IsValid()}
	if !u.IsValid() {
		if _, err := kurl.ParseStrict(input); err != nil {
			r.Error = err.Error()
		} else {
			r.Error = kurl.ErrInvalidURL.Error()
		}
		return r
	}
	r.Protocol = u.Protocol()
	r.User = u.User()
	r.Host = u.Host()
	r.Port = u.Port()
	r.Path = u.Path()
	r.Query = u.Query()
	r.Fragment = u.Fragment()
	return r
}

func (a *app) newParseCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "parse <url>...",
		Short: "Print the canonical form of absolute URLs",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			reports := make([]report, 0, len(args))
			for _, arg := range args {
				u := kurl.ResolveWithEncoding(kurl.URL{}, arg, a.enc)
				a.log.Debug("parsed", "input", arg, "url", u.String(), "valid", u.IsValid())
				reports = append(reports, newReport(arg, u))
			}
			return a.printReports(cmd.OutOrStdout(), reports)
		},
	}
}

func (a *app) newResolveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "resolve <base> <relative>...",
		Short: "Resolve relative references against a base URL",
		Args:  cobra.MinimumNArgs(2), //nolint:mnd // A base and at least one reference.
		RunE: func(cmd *cobra.Command, args []string) error {
			base, err := kurl.ParseStrict(args[0])
			if err != nil {
				return fmt.Errorf("base: %w", err)
			}
			reports := make([]report, 0, len(args)-1)
			for _, rel := range args[1:] {
				u := kurl.ResolveWithEncoding(base, rel, a.enc)
				a.log.Debug("resolved", "base", base.String(), "relative", rel, "url", u.String())
				reports = append(reports, newReport(rel, u))
			}
			return a.printReports(cmd.OutOrStdout(), reports)
		},
	}
}

// printReports writes reports as JSON or one line each, and returns
// errInvalidInput when any of them is invalid.
func (a *app) printReports(w io.Writer, reports []report) error {
	invalid := false
	for _, r := range reports {
		if !r.Valid {
			invalid = true
			a.log.Warn("invalid URL", "input", r.Input, "error", r.Error)
		}
	}

	if a.jsonOutput {
		if err := writeJSON(w, reports); err != nil {
			return err
		}
	} else {
		for _, r := range reports {
			if r.Valid {
				fmt.Fprintln(w, r.URL)
			} else {
				fmt.Fprintf(w, "invalid\t%s\n", r.Input)
			}
		}
	}

	if invalid {
		return errInvalidInput
	}
	return nil
}

func writeJSON(w io.Writer, v any) error {
	bytes, err := json.MarshalIndent(v, "", "\t")
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(w, string(bytes))
	return err
}

func writeYAML(w io.Writer, v any) error {
	bytes, err := yaml.Marshal(v)
	if err != nil {
		return err
	}
	_, err = w.Write(bytes)
	return err
}
