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

// The With methods return a copy of the URL with one component replaced and
// the result re-canonicalized. They report false, and return the URL
// unchanged, when the receiver is not valid or the edit would make it
// invalid.

// reparsed canonicalizes an edited URL string, keeping u if it fails.
func (u URL) reparsed(s string) (URL, bool) {
	r := parse(s, s)
	if !r.valid {
		return u, false
	}
	return r, true
}

// byteAt returns the byte at i, or 0 past the end of the string.
func (u URL) byteAt(i int) byte {
	if i < 0 || i >= len(u.str) {
		return 0
	}
	return u.str[i]
}

// WithProtocol replaces the scheme. Anything from the first ':' in scheme
// on is ignored. The scheme of an invalid URL may be set, which prefixes
// its original text.
func (u URL) WithProtocol(scheme string) (URL, bool) {
	if i := strings.IndexByte(scheme, ':'); i >= 0 {
		scheme = scheme[:i]
	}
	if !IsValidProtocol(scheme) {
		return u, false
	}
	if !u.valid {
		return u.reparsed(scheme + ":" + u.str)
	}
	return u.reparsed(scheme + u.str[u.pos.SchemeEnd:])
}

// WithHost replaces the host, leaving any port in place. Internationalized
// hosts are converted to punycode.
func (u URL) WithHost(host string) (URL, bool) {
	if !u.valid {
		return u, false
	}
	return u.reparsed(u.str[:u.hostStart()] + u.authorityPrefix() + encodeHostname(host) + u.str[u.pos.HostEnd:])
}

// WithHostAndPort replaces both the host and the port with hostPort, which
// is a host optionally followed by ":port".
func (u URL) WithHostAndPort(hostPort string) (URL, bool) {
	if !u.valid {
		return u, false
	}
	host, port := hostPort, ""
	if i := strings.LastIndexByte(hostPort, ':'); i >= 0 && !strings.Contains(hostPort[i:], "]") {
		host, port = hostPort[:i], hostPort[i:]
	}
	return u.reparsed(u.str[:u.hostStart()] + u.authorityPrefix() + encodeHostname(host) + port + u.str[u.pos.PortEnd:])
}

// authorityPrefix returns "//" when the URL has no authority yet.
func (u URL) authorityPrefix() string {
	if u.pos.UserStart == u.pos.SchemeEnd+1 {
		return "//"
	}
	return ""
}

// WithPort sets the port. A default port for the scheme is dropped by
// canonicalization.
func (u URL) WithPort(port uint16) (URL, bool) {
	if !u.valid {
		return u, false
	}
	portStart := u.pos.HostEnd
	colon := ":"
	if u.pos.PortEnd != u.pos.HostEnd {
		portStart++
		colon = ""
	}
	return u.reparsed(u.str[:portStart] + colon + strconv.Itoa(int(port)) + u.str[u.pos.PortEnd:])
}

// WithoutPort removes the port and its ':'.
func (u URL) WithoutPort() (URL, bool) {
	if !u.valid {
		return u, false
	}
	if u.pos.HostEnd == u.pos.PortEnd {
		return u, true
	}
	return u.reparsed(u.str[:u.pos.HostEnd] + u.str[u.pos.PortEnd:])
}

// WithUser sets the user name, escaping it as needed. An empty user removes
// the user name, and the '@' too when no password remains.
func (u URL) WithUser(user string) (URL, bool) {
	if !u.valid {
		return u, false
	}

	end := u.pos.UserEnd
	if user != "" {
		s := EncodePercentEscapes(user, EncodeUsername)
		if u.pos.UserStart == u.pos.SchemeEnd+1 {
			s = "//" + s
		}
		// Add '@' when there was no userinfo before.
		if end == u.pos.HostEnd || (end == u.pos.PasswordEnd && u.byteAt(end) != '@') {
			s += "@"
		}
		return u.reparsed(u.str[:u.pos.UserStart] + s + u.str[end:])
	}

	// Remove the '@' too when there is no password.
	if u.pos.UserEnd == u.pos.PasswordEnd && end != u.pos.HostEnd && u.byteAt(end) == '@' {
		end++
	}
	if u.pos.UserStart == end {
		return u, true
	}
	return u.reparsed(u.str[:u.pos.UserStart] + u.str[end:])
}

// WithPass sets the password, escaping it as needed. An empty password
// removes it, and the '@' too when no user name remains.
func (u URL) WithPass(pass string) (URL, bool) {
	if !u.valid {
		return u, false
	}

	end := u.pos.PasswordEnd
	if pass != "" {
		p := ":" + EncodePercentEscapes(pass, EncodePassword) + "@"
		if u.pos.UserEnd == u.pos.SchemeEnd+1 {
			p = "//" + p
		}
		// Eat the existing '@' since we just added one.
		if end != u.pos.HostEnd && u.byteAt(end) == '@' {
			end++
		}
		return u.reparsed(u.str[:u.pos.UserEnd] + p + u.str[end:])
	}

	if u.pos.UserStart == u.pos.UserEnd && end != u.pos.HostEnd && u.byteAt(end) == '@' {
		end++
	}
	if u.pos.UserEnd == end {
		return u, true
	}
	return u.reparsed(u.str[:u.pos.UserEnd] + u.str[end:])
}

// WithPath replaces the path. Characters that may not appear literally,
// including '?', '#' and '%', are escaped.
func (u URL) WithPath(path string) (URL, bool) {
	if !u.valid {
		return u, false
	}
	if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}
	return u.reparsed(u.str[:u.pos.PortEnd] + EncodeBadChars(path) + u.str[u.pos.PathEnd:])
}

// WithQuery replaces the query. A leading '?' in query is optional. query is
// not escaped: a '#' in it starts the fragment, and the old fragment then
// follows with its own '#' escaped, so "a#b" on "http://h/p?q#f" gives
// "http://h/p?a#b%23f".
func (u URL) WithQuery(query string) (URL, bool) {
	if !u.valid {
		return u, false
	}
	if !strings.HasPrefix(query, "?") {
		query = "?" + query
	}
	return u.reparsed(u.str[:u.pos.PathEnd] + query + u.str[u.pos.QueryEnd:])
}

// WithoutQuery removes the query and its '?'.
func (u URL) WithoutQuery() (URL, bool) {
	if !u.valid {
		return u, false
	}
	return u.reparsed(u.str[:u.pos.PathEnd] + u.str[u.pos.QueryEnd:])
}

// WithFragment replaces the fragment.
func (u URL) WithFragment(fragment string) (URL, bool) {
	if !u.valid {
		return u, false
	}
	return u.reparsed(u.str[:u.pos.QueryEnd] + "#" + fragment)
}

// WithoutFragment removes the fragment and its '#'.
func (u URL) WithoutFragment() (URL, bool) {
	if !u.valid {
		return u, false
	}
	if !u.HasFragment() {
		return u, true
	}
	return u.reparsed(u.str[:u.pos.QueryEnd])
}
