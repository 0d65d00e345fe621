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

import "strings"

// rawComponents holds the byte ranges found by scanning an absolute URL,
// before any canonicalization. All offsets index into in.
type rawComponents struct {
	in parserInput

	schemeEnd     int
	userStart     int
	userEnd       int
	passwordStart int
	passwordEnd   int
	hostStart     int
	hostEnd       int
	portStart     int
	portEnd       int
	pathStart     int
	pathEnd       int
	queryStart    int
	queryEnd      int
	fragmentStart int
	fragmentEnd   int

	hierarchical bool
	isFile       bool
	httpFamily   bool
}

// parse runs the absolute parser over text and returns its canonical form.
// When text is not a valid absolute URL the result is invalid and reports
// original from String.
func parse(text, original string) URL {
	c, err := scanComponents(newParserInput(text))
	if err != nil {
		return invalidURL(original)
	}
	return c.serialize()
}

// invalidURL returns an invalid URL that keeps s for diagnostics.
func invalidURL(s string) URL {
	return URL{str: s}
}

// scanComponents finds the component ranges of an absolute URL.
func scanComponents(in parserInput) (*rawComponents, error) {
	c := &rawComponents{in: in}
	if err := c.scanScheme(); err != nil {
		return nil, err
	}

	if c.hasAuthority() {
		if err := c.scanAuthority(); err != nil {
			return nil, err
		}
	} else {
		// The part after the scheme is an opaque part or an absolute path.
		c.setEmptyAuthority(c.schemeEnd + 1)
	}

	c.scanPathQueryFragment()
	return c, nil
}

// scanScheme consumes the scheme and the ':' that ends it.
func (c *rawComponents) scanScheme() error {
	in := c.in
	if !isSchemeFirstChar(in.at(0)) {
		return errNoScheme
	}

	end := 1
	for isSchemeChar(in.at(end)) {
		end++
	}
	if in.at(end) != ':' {
		return errNoScheme
	}

	c.schemeEnd = end
	c.hierarchical = in.at(end+1) == '/'
	c.isFile = end == len("file") && in.hasPrefixFold(0, "file")
	c.httpFamily = in.hasPrefixFold(0, "http") &&
		(in.at(4) == ':' || (isLetterMatchIgnoringCase(in.at(4), 's') && in.at(5) == ':'))
	return nil
}

// hasAuthority reports whether an authority section follows the scheme:
// either "//" or one of the schemes that always carry an authority.
func (c *rawComponents) hasAuthority() bool {
	if c.hierarchical && c.in.at(c.schemeEnd+2) == '/' {
		return true
	}
	return isNonFileHierarchicalScheme(c.scheme())
}

// scheme returns the scheme exactly as written in the input.
func (c *rawComponents) scheme() string {
	return c.in.slice(0, c.schemeEnd)
}

// setEmptyAuthority collapses every authority range to the empty range at p.
func (c *rawComponents) setEmptyAuthority(p int) {
	c.userStart, c.userEnd = p, p
	c.passwordStart, c.passwordEnd = p, p
	c.hostStart, c.hostEnd = p, p
	c.portStart, c.portEnd = p, p
}

// scanPathQueryFragment records the path, query and fragment ranges, which
// start wherever the authority (possibly empty) ended.
func (c *rawComponents) scanPathQueryFragment() {
	in := c.in

	c.pathStart = c.portEnd
	c.pathEnd = c.pathStart
	for b := in.at(c.pathEnd); b != 0 && b != '?' && b != '#'; b = in.at(c.pathEnd) {
		c.pathEnd++
	}

	c.queryStart = c.pathEnd
	c.queryEnd = c.queryStart
	if in.at(c.queryStart) == '?' {
		for b := in.at(c.queryEnd); b != 0 && b != '#'; b = in.at(c.queryEnd) {
			c.queryEnd++
		}
	}

	c.fragmentStart = c.queryEnd
	c.fragmentEnd = c.fragmentStart
	if in.at(c.fragmentStart) == '#' {
		c.fragmentStart++
		c.fragmentEnd = in.len()
	}
}

// serialize assembles the canonical string, recording every component
// boundary as it is written.
func (c *rawComponents) serialize() URL {
	in := c.in
	out := newURLBuffer(c.fragmentEnd*3 + 1)
	var pos Positions

	for i := 0; i < c.schemeEnd; i++ {
		out.writeByte(toASCIILower(in.at(i)))
	}
	pos.SchemeEnd = out.len()
	scheme := out.string()
	out.writeByte(':')

	hostIsLocalhost := c.portEnd-c.userStart == len("localhost") && in.hasPrefixFold(c.userStart, "localhost")
	// File URLs need a host part unless it is just file:// or file://localhost.
	degenerateFilePath := c.pathStart == c.pathEnd && (c.hostStart == c.hostEnd || hostIsLocalhost)
	// Empty credentials are dropped, but a colon in an empty host/port pair is
	// kept so the URL keeps its structure when parsed again.
	haveNonHostAuthorityPart := c.userStart != c.userEnd || c.passwordStart != c.passwordEnd || c.hostEnd != c.portEnd

	writeAuthority := haveNonHostAuthorityPart || c.hostStart != c.hostEnd
	if c.isFile {
		writeAuthority = !degenerateFilePath
	}

	if writeAuthority {
		dropHost := c.isFile && hostIsLocalhost && !haveNonHostAuthorityPart
		c.writeAuthority(out, &pos, scheme, dropHost)
	} else {
		if c.isFile {
			out.writeString("//")
		}
		p := out.len()
		pos.UserStart, pos.UserEnd, pos.PasswordEnd, pos.HostEnd, pos.PortEnd = p, p, p, p, p
	}

	path := in.slice(c.pathStart, c.pathEnd)
	if (c.httpFamily || c.isFile) && path == "" {
		path = "/"
	} else if c.isFile && writeAuthority && path[0] != '/' {
		// "file:foo" would otherwise read back with "foo" as its host.
		path = "/" + path
	}

	// Anything written after the ':' starts with "//", and such a URL reads
	// back as hierarchical even if the input was not.
	hierarchical := out.len() > pos.SchemeEnd+1 || strings.HasPrefix(path, "/")

	switch {
	case !hierarchical:
		appendEscapingNonHierarchicalPart(out, path)
	case !hasSlashDotOrDotDot(path):
		appendEscapingBadChars(out, path)
	default:
		clean := newURLBuffer(len(path))
		copyPathRemovingDots(clean, path)
		appendEscapingBadChars(out, clean.string())
	}
	pos.PathEnd = out.len()
	pos.PathAfterLastSlash = findPathAfterLastSlash(out, pos.PortEnd, pos.PathEnd)

	appendEscapingBadChars(out, in.slice(c.queryStart, c.queryEnd))
	pos.QueryEnd = out.len()

	if c.fragmentEnd != c.queryEnd {
		out.writeByte('#')
		appendEscapingBadChars(out, in.slice(c.fragmentStart, c.fragmentEnd))
	}
	pos.FragmentEnd = out.len()

	return URL{
		str:        out.string(),
		pos:        pos,
		valid:      true,
		httpFamily: c.httpFamily,
	}
}

// writeAuthority writes "//", the userinfo, host and port.
func (c *rawComponents) writeAuthority(out *urlBuffer, pos *Positions, scheme string, dropHost bool) {
	in := c.in
	out.writeString("//")

	pos.UserStart = out.len()
	out.writeString(in.slice(c.userStart, c.userEnd))
	pos.UserEnd = out.len()

	if c.passwordEnd != c.passwordStart {
		out.writeByte(':')
		out.writeString(in.slice(c.passwordStart, c.passwordEnd))
	}
	pos.PasswordEnd = out.len()

	if out.len() != pos.UserStart {
		out.writeByte('@')
	}

	if !dropHost {
		host := in.slice(c.hostStart, c.hostEnd)
		if isCanonicalHostnameLowercaseForScheme(scheme) {
			host = lowerASCII(host)
		}
		out.writeString(host)
	}
	pos.HostEnd = out.len()

	// Copy the port unless it is the scheme's default. Keep it when there is
	// no host so the authority is not left empty.
	if c.hostEnd != c.portStart {
		port := in.slice(c.portStart, c.portEnd)
		if (port != "" && !isDefaultPortString(port, scheme)) || c.hostStart == c.hostEnd {
			out.writeByte(':')
			out.writeString(port)
		}
	}
	pos.PortEnd = out.len()
}

// findPathAfterLastSlash returns the position after the last '/' of the path
// in [pathStart, pathEnd), or pathStart when the path has no slash.
func findPathAfterLastSlash(out *urlBuffer, pathStart, pathEnd int) int {
	i := pathEnd
	for ; i > pathStart; i-- {
		if out.b[i-1] == '/' {
			break
		}
	}
	return i
}

// isNonFileHierarchicalScheme reports whether scheme always has an
// authority, even when written with a single slash.
func isNonFileHierarchicalScheme(scheme string) bool {
	for _, s := range [...]string{"ws", "ftp", "wss", "http", "https", "gopher"} {
		if strings.EqualFold(scheme, s) {
			return true
		}
	}
	return false
}

// isCanonicalHostnameLowercaseForScheme reports whether hosts of the
// lowercase scheme are case-insensitive and therefore lowercased.
func isCanonicalHostnameLowercaseForScheme(scheme string) bool {
	switch scheme {
	case "ws", "ftp", "wss", "http", "https", "file", "gopher":
		return true
	}
	return false
}

func toASCIILower(c byte) byte {
	if 'A' <= c && c <= 'Z' {
		return c + ('a' - 'A')
	}
	return c
}

func lowerASCII(s string) string {
	for i := 0; i < len(s); i++ {
		if 'A' <= s[i] && s[i] <= 'Z' {
			b := []byte(s)
			for j := i; j < len(b); j++ {
				b[j] = toASCIILower(b[j])
			}
			return string(b)
		}
	}
	return s
}
