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
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// run executes the root command with a configuration file holding cfg and
// returns what it printed.
func run(t *testing.T, cfg string, args ...string) (string, string, error) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yml")
	if cfg != "" {
		require.NoError(t, os.WriteFile(path, []byte(cfg), 0o600))
	}

	var stdout, stderr bytes.Buffer
	cmd := newRootCmd()
	cmd.SetArgs(append([]string{"--config", path}, args...))
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	err := cmd.Execute()
	return stdout.String(), stderr.String(), err
}

func TestParseCommand(t *testing.T) {
	out, _, err := run(t, "", "parse", "HTTP://Example.COM:80/a/../b", "file:foo")
	require.NoError(t, err)
	assert.Equal(t, "http://example.com/b\nfile:///foo\n", out)
}

func TestParseCommandInvalid(t *testing.T) {
	out, errOut, err := run(t, "", "parse", "http://a/", "nope")
	require.ErrorIs(t, err, errInvalidInput)
	assert.Equal(t, "http://a/\ninvalid\tnope\n", out)
	assert.Contains(t, errOut, "WARN invalid URL")
	assert.Contains(t, errOut, "No scheme found")
}

func TestParseCommandJSON(t *testing.T) {
	out, _, err := run(t, "", "--json", "parse", "http://u@h:8080/p?q#f")
	require.NoError(t, err)

	var reports []report
	require.NoError(t, json.Unmarshal([]byte(out), &reports))
	require.Len(t, reports, 1)
	assert.Equal(t, report{
		Input:    "http://u@h:8080/p?q#f",
		URL:      "http://u@h:8080/p?q#f",
		Valid:    true,
		Protocol: "http",
		User:     "u",
		Host:     "h",
		Port:     8080,
		Path:     "/p",
		Query:    "q",
		Fragment: "f",
	}, reports[0])
}

func TestResolveCommand(t *testing.T) {
	out, _, err := run(t, "", "resolve", "http://a/b/c/d;p?q", "../g", "#s", "//g")
	require.NoError(t, err)
	assert.Equal(t, "http://a/b/g\nhttp://a/b/c/d;p?q#s\nhttp://g/\n", out)

	_, _, err = run(t, "", "resolve", "b/c", "d")
	assert.ErrorContains(t, err, "base:")
}

func TestEncodeDecodeCommands(t *testing.T) {
	out, _, err := run(t, "", "encode", "a b")
	require.NoError(t, err)
	assert.Equal(t, "a%20b\n", out)

	_, _, err = run(t, "", "encode", "-c", "nope", "x")
	assert.ErrorContains(t, err, `unknown class "nope"`)

	out, _, err = run(t, "", "decode", "%41%20%C3%A9")
	require.NoError(t, err)
	assert.Equal(t, "A é\n", out)

	out, _, err = run(t, "", "decode", "-e", "windows-1252", "%E9")
	require.NoError(t, err)
	assert.Equal(t, "é\n", out)

	out, _, err = run(t, "encoding: windows-1252\n", "decode", "%E9")
	require.NoError(t, err)
	assert.Equal(t, "é\n", out)
}

func TestPortsCommand(t *testing.T) {
	out, _, err := run(t, "blocked_ports: [8080]\n", "ports", "http://h:25/", "http://h:8080/", "http://h:8081/")
	require.NoError(t, err)
	assert.Equal(t, "blocked\thttp://h:25/\nblocked\thttp://h:8080/\nallowed\thttp://h:8081/\n", out)

	_, _, err = run(t, "", "ports", "nope")
	assert.ErrorIs(t, err, errInvalidInput)
}

func TestConfigCommand(t *testing.T) {
	out, _, err := run(t, "log_level: warn\n", "config")
	require.NoError(t, err)
	assert.Contains(t, out, "encoding: utf-8")
	assert.Contains(t, out, "log_level: warn")

	_, _, err = run(t, "encoding: klingon\n", "config")
	assert.ErrorContains(t, err, "reading config")
}

func TestConfigGenerate(t *testing.T) {
	path := filepath.Join(t.TempDir(), "kurl", "config.yml")

	cmd := newRootCmd()
	cmd.SetArgs([]string{"--config", path, "config", "--gen"})
	cmd.SetOut(new(bytes.Buffer))
	cmd.SetErr(new(bytes.Buffer))
	require.NoError(t, cmd.Execute())
	assert.FileExists(t, path)

	cmd = newRootCmd()
	cmd.SetArgs([]string{"--config", path, "config", "-g"})
	cmd.SetErr(new(bytes.Buffer))
	assert.EqualError(t, cmd.Execute(), "configuration file already exists")
}
