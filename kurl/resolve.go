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
	"strings"

	"golang.org/x/text/encoding"
)

// Resolve resolves relative against base and returns the canonical result.
// Query text is kept as UTF-8.
func Resolve(base URL, relative string) URL {
	return ResolveWithEncoding(base, relative, nil)
}

// ResolveWithEncoding resolves relative against base. When relative is not
// ASCII, its query and fragment are converted to enc first, with nil meaning
// UTF-8. An empty base makes relative parse as an absolute URL. A result that
// is not valid keeps relative as its string.
func ResolveWithEncoding(base URL, relative string, enc encoding.Encoding) URL {
	if !base.valid && !base.IsEmpty() {
		return invalidURL(relative)
	}

	rel := relative
	if strings.IndexByte(rel, '\\') >= 0 && !ProtocolIsJavaScript(rel) && !ProtocolIs(rel, "data") {
		rel = substituteBackslashes(rel)
	}
	if !isASCII(rel) {
		rel = transcodeRelative(rel, formSubmissionEncoding(enc))
	}
	str := newParserInput(trimURLSpace(rel)).s

	if schemeEnd, ok := schemePrefixEnd(str); ok {
		// "http:foo" against a hierarchical http base is relative. Anything
		// else with a scheme is absolute.
		rest := str[schemeEnd+1:]
		if strings.HasPrefix(rest, "/") || !base.IsHierarchical() || !strings.EqualFold(base.Protocol(), str[:schemeEnd]) {
			return parse(str, relative)
		}
		str = rest
	}

	if !base.IsHierarchical() {
		if strings.HasPrefix(str, "#") {
			return parse(base.str[:base.pos.QueryEnd]+str, relative)
		}
		return invalidURL(relative)
	}

	b := base.str
	switch {
	case str == "":
		withoutFragment := b[:base.pos.QueryEnd]
		return parse(withoutFragment, withoutFragment)
	case str[0] == '#':
		return parse(b[:base.pos.QueryEnd]+str, relative)
	case str[0] == '?':
		return parse(b[:base.pos.PathEnd]+str, relative)
	case strings.HasPrefix(str, "//"):
		return parse(b[:base.pos.SchemeEnd+1]+str, relative)
	case str[0] == '/':
		return parse(b[:base.pos.PortEnd]+str, relative)
	default:
		return parse(mergeRelativePath(base, str), relative)
	}
}

// mergeRelativePath appends a relative path reference to the directory of
// base's path, removing dot segments from both as it goes.
func mergeRelativePath(base URL, rel string) string {
	out := newURLBuffer(base.pos.PathEnd + 1 + len(rel))
	out.writeString(base.str[:base.pos.PortEnd])
	pathStart := out.len()

	basePath := base.str[base.pos.PortEnd:base.pos.PathEnd]
	dir := basePath[:strings.LastIndexByte(basePath, '/')+1]
	if dir != "" {
		copyPathRemovingDots(out, dir)
	} else if base.pos.SchemeEnd+1 != base.pos.PathEnd {
		out.writeByte('/')
	}

	in := newParserInput(rel)
	i := 0
	for b := in.at(i); b != 0 && b != '?' && b != '#'; b = in.at(i) {
		if b == '.' && out.last() == '/' {
			if isPathSegmentEndChar(in.at(i + 1)) {
				i++
				if in.at(i) == '/' {
					i++
				}
				continue
			}
			if in.at(i+1) == '.' && isPathSegmentEndChar(in.at(i+2)) {
				i += 2
				if in.at(i) == '/' {
					i++
				}
				popPathSegment(out, pathStart)
				continue
			}
		}
		out.writeByte(b)
		i++
	}
	out.writeString(in.s[i:])
	return out.string()
}

// schemePrefixEnd returns the index of the ':' ending a scheme at the start
// of s.
func schemePrefixEnd(s string) (int, bool) {
	if s == "" || !isSchemeFirstChar(s[0]) {
		return 0, false
	}
	i := 1
	for i < len(s) && isSchemeChar(s[i]) {
		i++
	}
	if i < len(s) && s[i] == ':' {
		return i, true
	}
	return 0, false
}

// substituteBackslashes turns '\' into '/' before the first '?' or '#'.
func substituteBackslashes(s string) string {
	end := strings.IndexAny(s, "?#")
	if end < 0 {
		end = len(s)
	}
	if strings.IndexByte(s[:end], '\\') < 0 {
		return s
	}
	return strings.ReplaceAll(s[:end], "\\", "/") + s[end:]
}
