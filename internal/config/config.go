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

// Package config loads the YAML configuration of the kurl command.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/jplu/kurl/kurl"
	"github.com/spf13/cast"
	"gopkg.in/yaml.v3"
)

// DefaultPath is where the kurl command looks for its configuration.
const DefaultPath = "~/.config/kurl/config.yml"

// Config the kurl configuration
type Config struct {
	// Encoding is the label of the page encoding used for query strings of
	// non-ASCII references, such as "utf-8" or "windows-1252".
	Encoding string `yaml:"encoding"`

	// BlockedPorts are refused in addition to the built-in blocklist. Items
	// may be numbers or numeric strings.
	BlockedPorts []any `yaml:"blocked_ports"`

	// LogLevel is one of debug, info, warn or error.
	LogLevel string `yaml:"log_level"`
}

// DefaultConfig the default configuration
func DefaultConfig() *Config {
	return &Config{
		Encoding: "utf-8",
		LogLevel: "info",
	}
}

// Ports returns BlockedPorts as port numbers.
func (c *Config) Ports() ([]uint16, error) {
	ports := make([]uint16, 0, len(c.BlockedPorts))
	for _, v := range c.BlockedPorts {
		n, err := cast.ToIntE(v)
		if err != nil {
			return nil, fmt.Errorf("blocked port %v: %w", v, err)
		}
		if n <= 0 || n > kurl.MaxValidPort {
			return nil, fmt.Errorf("blocked port %d out of range", n)
		}
		ports = append(ports, uint16(n))
	}
	return ports, nil
}

// Validate checks that the encoding label and the ports are usable.
func (c *Config) Validate() error {
	if c.Encoding != "" {
		if _, err := kurl.EncodingByName(c.Encoding); err != nil {
			return err
		}
	}
	_, err := c.Ports()
	return err
}

// ReadConfig reads the configuration file at path. A missing file yields the
// default configuration. Fields absent from the file keep their defaults.
func ReadConfig(path string) (*Config, error) {
	file, err := ExpandPath(path)
	if err != nil {
		return nil, err
	}

	config := DefaultConfig()
	bytes, err := os.ReadFile(file) //nolint:gosec // The path is chosen by the user.
	if errors.Is(err, os.ErrNotExist) {
		return config, nil
	}
	if err != nil {
		return nil, err
	}

	if err = yaml.Unmarshal(bytes, config); err != nil {
		return nil, fmt.Errorf("parse %s: %w", file, err)
	}
	if err = config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration %s: %w", file, err)
	}
	return config, nil
}

// WriteDefault writes the default configuration to path, creating its
// directory. It fails if the file already exists.
func WriteDefault(path string) error {
	file, err := ExpandPath(path)
	if err != nil {
		return err
	}
	if _, err = os.Stat(file); !errors.Is(err, os.ErrNotExist) {
		return errors.New("configuration file already exists")
	}
	if err = os.MkdirAll(filepath.Dir(file), os.ModePerm); err != nil {
		return err
	}

	bytes, err := yaml.Marshal(DefaultConfig())
	if err != nil {
		return err
	}
	return os.WriteFile(file, bytes, 0o600)
}

// ExpandPath expands a leading "~" to the home directory.
func ExpandPath(path string) (string, error) {
	if !strings.HasPrefix(path, "~") {
		return path, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, path[1:]), nil
}
