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

// Package kurl parses, resolves and canonicalizes URLs the way legacy
// browser engines do.
//
// A URL is an immutable value holding its canonical string and the offsets
// of every component inside it. Parsing never fails outright: input that is
// not a valid absolute URL yields a URL whose IsValid reports false and whose
// String returns the input unchanged.
//
// Key features include:
//   - Relative reference resolution (Resolve), including the legacy rules for
//     "http:foo" against an http base and backslashes in paths.
//   - Canonicalization: lowercase schemes and hosts, dot segment removal,
//     default port elision, and percent-escaping of characters that may not
//     appear literally.
//   - Punycode conversion of internationalized host names, and query text
//     converted to a page encoding (ResolveWithEncoding).
//   - Component mutators (WithHost, WithPath, ...) that re-canonicalize.
//   - Percent codecs, the legacy port blocklist, and JSON and text marshalling.
package kurl

import (
	"encoding/json"
	"path/filepath"
	"strconv"
	"strings"
)

// Positions holds the end offsets of the components of a canonical URL
// string. Offsets are byte indices into URL.String and are non-decreasing in
// field order. The host starts at PasswordEnd, plus one when an '@' sits
// there.
type Positions struct {
	SchemeEnd          int // index of the ':' after the scheme
	UserStart          int
	UserEnd            int
	PasswordEnd        int
	HostEnd            int
	PortEnd            int
	PathAfterLastSlash int
	PathEnd            int
	QueryEnd           int // includes the leading '?'
	FragmentEnd        int
}

// URL is a parsed URL. The zero value is the empty, invalid URL.
type URL struct {
	str        string
	pos        Positions
	valid      bool
	httpFamily bool
}

var blankURL = Parse("about:blank")

// Parse parses s as an absolute URL. Surrounding whitespace and control
// characters are ignored.
func Parse(s string) URL {
	return Resolve(URL{}, s)
}

// ParseStrict parses s as an absolute URL and reports why it is not one.
// The returned error is a *ParseError wrapping ErrInvalidURL.
func ParseStrict(s string) (URL, error) {
	u := Parse(s)
	if u.valid {
		return u, nil
	}
	_, reason := scanComponents(newParserInput(trimURLSpace(s)))
	return u, newParseError(s, reason)
}

// Blank returns the URL "about:blank".
func Blank() URL {
	return blankURL
}

// FileURLFromPath returns the file URL naming the file system path p.
func FileURLFromPath(p string) URL {
	return Parse("file:///" + strings.TrimPrefix(filepath.ToSlash(p), "/"))
}

// String returns the canonical URL, or the original input when the URL is
// not valid.
func (u URL) String() string {
	return u.str
}

// Positions returns the component offsets of the canonical string. All
// offsets are zero when the URL is not valid.
func (u URL) Positions() Positions {
	return u.pos
}

// IsValid reports whether the URL was parsed successfully.
func (u URL) IsValid() bool {
	return u.valid
}

// IsEmpty reports whether the URL was made from the empty string.
func (u URL) IsEmpty() bool {
	return u.str == ""
}

// IsHierarchical reports whether the scheme is followed by '/'.
func (u URL) IsHierarchical() bool {
	return u.valid && u.pos.SchemeEnd+1 < len(u.str) && u.str[u.pos.SchemeEnd+1] == '/'
}

// IsLocalFile reports whether the URL uses the file scheme.
func (u URL) IsLocalFile() bool {
	return u.ProtocolIs("file")
}

// IsBlank reports whether the URL uses the about scheme.
func (u URL) IsBlank() bool {
	return u.ProtocolIs("about")
}

// ProtocolIs reports whether the URL's scheme is scheme, which must be
// lowercase.
func (u URL) ProtocolIs(scheme string) bool {
	return u.valid && u.Protocol() == scheme
}

// ProtocolIsInHTTPFamily reports whether the scheme is http or https.
func (u URL) ProtocolIsInHTTPFamily() bool {
	return u.valid && u.httpFamily
}

// Protocol returns the lowercase scheme, without the ':'.
func (u URL) Protocol() string {
	return u.str[:u.pos.SchemeEnd]
}

func (u URL) hostStart() int {
	if u.pos.PasswordEnd == u.pos.UserStart {
		return u.pos.PasswordEnd
	}
	return u.pos.PasswordEnd + 1
}

// Host returns the host. IPv6 literals keep their brackets.
func (u URL) Host() string {
	return u.str[u.hostStart():u.pos.HostEnd]
}

// HasPort reports whether a port, possibly empty, follows the host.
func (u URL) HasPort() bool {
	return u.pos.HostEnd < u.pos.PortEnd
}

// Port returns the explicit port, or 0 when there is none. Default ports are
// removed during canonicalization, so "http://h:80/" has port 0. A port
// larger than MaxValidPort is reported as InvalidPort.
func (u URL) Port() uint16 {
	if u.pos.HostEnd == u.pos.PortEnd || u.pos.HostEnd == u.pos.PortEnd-1 {
		return 0
	}
	n, err := strconv.ParseUint(u.str[u.pos.HostEnd+1:u.pos.PortEnd], 10, 32)
	if err != nil || n > MaxValidPort {
		return InvalidPort
	}
	return uint16(n)
}

// User returns the decoded user name.
func (u URL) User() string {
	return DecodePercentEscapes(u.EncodedUser(), nil)
}

// EncodedUser returns the user name as written in the URL.
func (u URL) EncodedUser() string {
	return u.str[u.pos.UserStart:u.pos.UserEnd]
}

// Pass returns the decoded password.
func (u URL) Pass() string {
	return DecodePercentEscapes(u.EncodedPass(), nil)
}

// EncodedPass returns the password as written in the URL.
func (u URL) EncodedPass() string {
	if u.pos.PasswordEnd == u.pos.UserEnd {
		return ""
	}
	return u.str[u.pos.UserEnd+1 : u.pos.PasswordEnd]
}

// Path returns the path, or the opaque part of a non-hierarchical URL.
func (u URL) Path() string {
	return u.str[u.pos.PortEnd:u.pos.PathEnd]
}

// Query returns the query without its leading '?'.
func (u URL) Query() string {
	if u.pos.QueryEnd == u.pos.PathEnd {
		return ""
	}
	return u.str[u.pos.PathEnd+1 : u.pos.QueryEnd]
}

// HasQuery reports whether the URL has a query, possibly empty.
func (u URL) HasQuery() bool {
	return u.pos.QueryEnd > u.pos.PathEnd
}

// Fragment returns the fragment without its leading '#'.
func (u URL) Fragment() string {
	if !u.HasFragment() {
		return ""
	}
	return u.str[u.pos.QueryEnd+1 : u.pos.FragmentEnd]
}

// HasFragment reports whether the URL has a fragment, possibly empty.
func (u URL) HasFragment() bool {
	return u.pos.FragmentEnd > u.pos.QueryEnd
}

// LastPathComponent returns the final path segment, ignoring one trailing
// slash. It returns "" for the root path.
func (u URL) LastPathComponent() string {
	if u.pos.PathEnd == u.pos.PortEnd {
		return ""
	}
	end := u.pos.PathEnd
	if u.str[end-1] == '/' {
		end--
	}
	start := strings.LastIndexByte(u.str[:end], '/')
	if start < u.pos.PortEnd {
		return ""
	}
	return u.str[start+1 : end]
}

// BaseAsString returns the URL up to and including the last slash of its
// path.
func (u URL) BaseAsString() string {
	return u.str[:u.pos.PathAfterLastSlash]
}

// FileSystemPath returns the decoded path of a file URL, or "" for any other
// URL.
func (u URL) FileSystemPath() string {
	if !u.valid || !u.IsLocalFile() {
		return ""
	}
	return filepath.FromSlash(DecodePercentEscapes(u.Path(), nil))
}

// MarshalText implements encoding.TextMarshaler.
func (u URL) MarshalText() ([]byte, error) {
	return []byte(u.str), nil
}

// UnmarshalText implements encoding.TextUnmarshaler. Empty text gives the
// empty URL; any other text must be a valid URL.
func (u *URL) UnmarshalText(text []byte) error {
	if len(text) == 0 {
		*u = URL{}
		return nil
	}
	v, err := ParseStrict(string(text))
	if err != nil {
		return err
	}
	*u = v
	return nil
}

// MarshalJSON implements the json.Marshaler interface, encoding the URL as a
// JSON string.
func (u URL) MarshalJSON() ([]byte, error) {
	return json.Marshal(u.str)
}

// UnmarshalJSON implements the json.Unmarshaler interface. It decodes a JSON
// string and parses it like UnmarshalText.
func (u *URL) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	return u.UnmarshalText([]byte(s))
}
