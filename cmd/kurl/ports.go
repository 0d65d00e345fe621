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

	"github.com/jplu/kurl/internal/config"
	"github.com/jplu/kurl/kurl"
	"github.com/spf13/cobra"
)

// portStatus is the printed form of a port check.
type portStatus struct {
	URL     string `json:"url"`
	Port    uint16 `json:"port"`
	Allowed bool   `json:"allowed"`
}

func (a *app) newPortsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "ports <url>...",
		Short: "Report whether requests to the ports of URLs are allowed",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			w := cmd.OutOrStdout()
			statuses := make([]portStatus, 0, len(args))
			invalid := false
			for _, arg := range args {
				u, err := kurl.ParseStrict(arg)
				if err != nil {
					invalid = true
					a.log.Warn("invalid URL", "input", arg, "error", err)
					continue
				}
				statuses = append(statuses, portStatus{
					URL:     u.String(),
					Port:    u.Port(),
					Allowed: kurl.PortIsAllowedWith(u, a.blockedPorts),
				})
			}

			if a.jsonOutput {
				if err := writeJSON(w, statuses); err != nil {
					return err
				}
			} else {
				for _, s := range statuses {
					verdict := "blocked"
					if s.Allowed {
						verdict = "allowed"
					}
					fmt.Fprintf(w, "%s\t%s\n", verdict, s.URL)
				}
			}

			if invalid {
				return errInvalidInput
			}
			return nil
		},
	}
}

func (a *app) newConfigCmd() *cobra.Command {
	var gen bool
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Show or generate the kurl configuration",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if gen {
				if err := config.WriteDefault(a.configPath); err != nil {
					return err
				}
				a.log.Info("configuration written", "path", a.configPath)
				return nil
			}
			return writeYAML(cmd.OutOrStdout(), a.cfg)
		},
	}
	cmd.Flags().BoolVarP(&gen, "gen", "g", false, "write the default configuration to the config path")
	return cmd
}
