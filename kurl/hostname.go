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

	"golang.org/x/net/idna"
	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/htmlindex"
	"golang.org/x/text/unicode/norm"
)

// Hosts longer than this are copied without punycode conversion.
const maxHostnameBufferLength = 2048

// hostnameProfile converts host names for lookup. Underscores stay legal
// because legacy hosts use them.
var hostnameProfile = idna.New(
	idna.MapForLookup(),
	idna.Transitional(true),
	idna.StrictDomainName(false),
)

// encodeHostname returns the ASCII form of host. A host that cannot be
// converted is returned unchanged, which leaves it unparseable.
func encodeHostname(host string) string {
	if isASCII(host) || len(host) > maxHostnameBufferLength {
		return host
	}
	ascii, err := hostnameProfile.ToASCII(norm.NFC.String(host))
	if err != nil {
		return host
	}
	return ascii
}

// encodeHostnames punycodes the host names found in s: the authority host of
// a hierarchical URL, or every address domain of a mailto URL.
func encodeHostnames(s string) string {
	var ranges [][2]int
	if ProtocolIs(s, "mailto") {
		ranges = mailtoHostnameRanges(s)
	} else if start, end, ok := hierarchicalHostnameRange(s); ok {
		ranges = [][2]int{{start, end}}
	}
	if len(ranges) == 0 {
		return s
	}

	var b strings.Builder
	b.Grow(len(s))
	prev := 0
	for _, r := range ranges {
		b.WriteString(s[prev:r[0]])
		b.WriteString(encodeHostname(s[r[0]:r[1]]))
		prev = r[1]
	}
	b.WriteString(s[prev:])
	return b.String()
}

// hierarchicalHostnameRange locates the host of a "scheme://authority" string.
// The authority ends at the first '/', '?' or '#'; the host follows its last
// '@' and stops before a port.
func hierarchicalHostnameRange(s string) (start, end int, ok bool) {
	sep := strings.IndexByte(s, ':')
	if sep <= 0 || !IsValidProtocol(s[:sep]) || !strings.HasPrefix(s[sep+1:], "//") {
		return 0, 0, false
	}

	authStart := sep + len("://")
	authEnd := len(s)
	if i := strings.IndexAny(s[authStart:], "/?#"); i >= 0 {
		authEnd = authStart + i
	}
	authority := s[authStart:authEnd]

	hostStart := 0
	if at := strings.LastIndexByte(authority, '@'); at >= 0 {
		hostStart = at + 1
	}
	hostEnd := len(authority)
	host := authority[hostStart:]
	if strings.HasPrefix(host, "[") {
		if rb := strings.IndexByte(host, ']'); rb >= 0 {
			hostEnd = hostStart + rb + 1
		}
	} else if colon := strings.IndexByte(host, ':'); colon >= 0 {
		hostEnd = hostStart + colon
	}
	if hostStart == hostEnd {
		return 0, 0, false
	}
	return authStart + hostStart, authStart + hostEnd, true
}

// mailtoHostnameRanges returns the domain of every address in a mailto URL.
// A domain follows an '@' and ends at '>', ',' or '?'. Quoted strings are
// skipped, and nothing after the first unquoted '?' is examined.
func mailtoHostnameRanges(s string) [][2]int {
	var ranges [][2]int
	p := 0
	for {
		i := strings.IndexAny(s[p:], "\"@?")
		if i < 0 {
			return ranges
		}
		i += p
		p = i + 1

		switch s[i] {
		case '?':
			return ranges
		case '@':
			end := strings.IndexAny(s[p:], ">,?")
			if end < 0 {
				return append(ranges, [2]int{p, len(s)})
			}
			end += p
			ranges = append(ranges, [2]int{p, end})
			p = end
		default:
			// Skip to the closing quote, honoring backslash escapes.
			for {
				j := strings.IndexAny(s[p:], "\"\\")
				if j < 0 {
					return ranges
				}
				j += p
				p = j + 1
				if s[j] == '"' {
					break
				}
				if p == len(s) {
					return ranges
				}
				p++
			}
		}
	}
}

// transcodeRelative prepares a non-ASCII relative reference for parsing.
// Host names are punycoded. The path stays UTF-8, and the query and
// fragment are converted to enc when enc is not nil. Characters enc
// cannot represent become escaped numeric character references.
func transcodeRelative(rel string, enc encoding.Encoding) string {
	s := encodeHostnames(norm.NFC.String(rel))
	if enc == nil || ProtocolIs(s, "mailto") || ProtocolIs(s, "data") || ProtocolIsJavaScript(s) {
		return s
	}
	pathEnd := strings.IndexAny(s, "?#")
	if pathEnd < 0 {
		return s
	}
	return s[:pathEnd] + encodeWithEntityFallback(s[pathEnd:], enc)
}

// encodeWithEntityFallback converts s to enc rune by rune. A rune that enc
// cannot represent is written as "%26%23NNN%3B", the escaped form of
// "&#NNN;".
func encodeWithEntityFallback(s string, enc encoding.Encoding) string {
	encoder := enc.NewEncoder()
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		if r < 0x80 {
			b.WriteByte(byte(r))
			continue
		}
		out, err := encoder.String(string(r))
		if err != nil {
			b.WriteString("%26%23")
			b.WriteString(strconv.Itoa(int(r)))
			b.WriteString("%3B")
			continue
		}
		b.WriteString(out)
	}
	return b.String()
}

// formSubmissionEncoding returns the encoding used for query strings given
// a page encoding. UTF-8 and the UTF-16 family map to nil, meaning the text
// stays UTF-8.
func formSubmissionEncoding(enc encoding.Encoding) encoding.Encoding {
	if enc == nil {
		return nil
	}
	name, err := htmlindex.Name(enc)
	if err != nil {
		return enc
	}
	switch name {
	case "utf-8", "utf-16be", "utf-16le":
		return nil
	}
	return enc
}
