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

// copyPathRemovingDots appends path to out with its "." and ".." segments
// removed. path must be empty or start with '/'. A ".." never climbs above
// the leading slash.
func copyPathRemovingDots(out *urlBuffer, path string) {
	if path == "" {
		return
	}
	start := out.len()
	out.writeByte(path[0])

	for i := 1; i < len(path); {
		if path[i] == '.' && out.last() == '/' {
			if i+1 == len(path) || path[i+1] == '/' {
				i += 2
				continue
			}
			if path[i+1] == '.' && (i+2 == len(path) || path[i+2] == '/') {
				i += 3
				popPathSegment(out, start)
				continue
			}
		}
		out.writeByte(path[i])
		i++
	}
}

// popPathSegment removes the last segment written to out, keeping the slash
// before it. pathStart is the position of the path's leading slash.
func popPathSegment(out *urlBuffer, pathStart int) {
	n := out.len()
	if n > pathStart+1 {
		n--
	}
	for n > pathStart+1 && out.b[n-1] != '/' {
		n--
	}
	out.truncate(n)
}

// hasSlashDotOrDotDot reports whether path may contain a dot segment.
func hasSlashDotOrDotDot(path string) bool {
	for i := 1; i < len(path); i++ {
		if path[i] == '.' && (path[i-1] == '/' || path[i-1] == '.') {
			return true
		}
	}
	return false
}

// appendEscapingBadChars appends s to out, escaping bad characters. Tab, LF
// and CR are dropped, while '%' and '?' are copied as they are.
func appendEscapingBadChars(out *urlBuffer, s string) {
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch {
		case isIgnoredURLChar(c):
		case !isBadChar(c) || c == '%' || c == '?':
			out.writeByte(c)
		default:
			out.writeEscaped(c)
		}
	}
}

// appendEscapingNonHierarchicalPart appends the opaque part of a
// non-hierarchical URL. Only controls and non-ASCII bytes are escaped.
func appendEscapingNonHierarchicalPart(out *urlBuffer, s string) {
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch {
		case isIgnoredURLChar(c):
		case c < 0x20 || c >= 0x7F:
			out.writeEscaped(c)
		default:
			out.writeByte(c)
		}
	}
}

// isIgnoredURLChar reports whether c is silently dropped from paths,
// queries and fragments.
func isIgnoredURLChar(c byte) bool {
	return c == '\t' || c == '\n' || c == '\r'
}
