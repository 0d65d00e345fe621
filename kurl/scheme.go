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

package kurl

import (
	"strconv"
	"strings"
)

// defaultPorts maps lowercase schemes to the port implied when none is given.
var defaultPorts = map[string]uint16{
	"http":   80,
	"https":  443,
	"ws":     80,
	"wss":    443,
	"ftp":    21,
	"ftps":   990,
	"gopher": 70,
}

// ProtocolIs reports whether s starts with scheme followed by ':'. scheme
// must be lowercase; s is matched without regard to case.
func ProtocolIs(s, scheme string) bool {
	if len(s) <= len(scheme) {
		return false
	}
	for i := 0; i < len(scheme); i++ {
		if s[i]|0x20 != scheme[i] {
			return false
		}
	}
	return s[len(scheme)] == ':'
}

// ProtocolIsJavaScript reports whether s is a javascript: URL.
func ProtocolIsJavaScript(s string) bool {
	return ProtocolIs(s, "javascript")
}

// ProtocolIsInHTTPFamily reports whether s starts with "http:" or "https:".
func ProtocolIsInHTTPFamily(s string) bool {
	return ProtocolIs(s, "http") || ProtocolIs(s, "https")
}

// IsValidProtocol reports whether s is a syntactically valid scheme: a
// letter followed by letters, digits, '+', '-' or '.'.
func IsValidProtocol(s string) bool {
	if s == "" || !isSchemeFirstChar(s[0]) {
		return false
	}
	for i := 1; i < len(s); i++ {
		if !isSchemeChar(s[i]) {
			return false
		}
	}
	return true
}

// IsDefaultPortForScheme reports whether port is the default port of scheme.
func IsDefaultPortForScheme(port uint16, scheme string) bool {
	p, ok := defaultPorts[strings.ToLower(scheme)]
	return ok && p == port
}

// isDefaultPortString reports whether the digits of a port as written name
// the default port of an already lowercase scheme, so "080" is stripped from
// http URLs. ftps keeps its port in canonical form.
func isDefaultPortString(port, scheme string) bool {
	if scheme == "ftps" {
		return false
	}
	n, err := strconv.ParseUint(port, 10, 16)
	return err == nil && IsDefaultPortForScheme(uint16(n), scheme)
}

// MIMETypeFromDataURL returns the lowercase media type of a data: URL, or
// "text/plain" when the URL names none.
func MIMETypeFromDataURL(s string) string {
	if !ProtocolIs(s, "data") {
		return ""
	}
	rest := s[len("data:"):]
	end := strings.IndexAny(rest, ";,")
	if end < 0 {
		return ""
	}
	if end == 0 {
		return "text/plain"
	}
	return strings.ToLower(rest[:end])
}
