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
	"errors"
	"fmt"
	"log/slog"
	"os"

	"github.com/jplu/kurl/internal/config"
	"github.com/jplu/kurl/internal/logging"
	"github.com/jplu/kurl/kurl"
	"github.com/spf13/cobra"
	"golang.org/x/text/encoding"
)

// errInvalidInput is returned by commands when at least one argument was not
// a valid URL. The details have already been printed.
var errInvalidInput = errors.New("invalid input")

// app holds the state shared by all subcommands.
type app struct {
	configPath string
	debug      bool
	jsonOutput bool

	cfg          *config.Config
	log          *slog.Logger
	enc          encoding.Encoding
	blockedPorts []uint16
}

func newRootCmd() *cobra.Command {
	a := &app{}
	root := &cobra.Command{
		Use:           "kurl",
		Short:         "kurl parses, resolves and canonicalizes URLs.",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.init(cmd)
		},
		RunE: func(cmd *cobra.Command, _ []string) error {
			return cmd.Help()
		},
	}

	root.PersistentFlags().StringVar(&a.configPath, "config", config.DefaultPath, "config file path")
	root.PersistentFlags().BoolVarP(&a.debug, "debug", "d", false, "output the debug log")
	root.PersistentFlags().BoolVar(&a.jsonOutput, "json", false, "print results as JSON")

	root.AddCommand(
		a.newParseCmd(),
		a.newResolveCmd(),
		a.newEncodeCmd(),
		a.newDecodeCmd(),
		a.newPortsCmd(),
		a.newConfigCmd(),
	)
	return root
}

// init loads the configuration and builds the logger.
func (a *app) init(cmd *cobra.Command) error {
	cfg, err := config.ReadConfig(a.configPath)
	if err != nil {
		return fmt.Errorf("reading config: %w", err)
	}
	a.cfg = cfg

	level, err := logging.ParseLevel(cfg.LogLevel)
	if err != nil {
		return err
	}
	if a.debug {
		level = slog.LevelDebug
	}
	a.log = logging.New(cmd.ErrOrStderr(), level)

	if a.enc, err = kurl.EncodingByName(cfg.Encoding); err != nil {
		return err
	}
	if a.blockedPorts, err = cfg.Ports(); err != nil {
		return err
	}
	a.log.Debug("configuration loaded", "path", a.configPath, "encoding", cfg.Encoding,
		"blocked_ports", len(a.blockedPorts))
	return nil
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		if !errors.Is(err, errInvalidInput) {
			fmt.Fprintln(os.Stderr, "kurl:", err)
		}
		os.Exit(1)
	}
}
