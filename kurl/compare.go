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

// StrippedForReferrer returns the URL with its credentials and fragment
// removed, as sent in a Referer header.
func (u URL) StrippedForReferrer() URL {
	r, _ := u.WithUser("")
	r, _ = r.WithPass("")
	r, _ = r.WithoutFragment()
	return r
}

// EqualIgnoringFragment reports whether a and b are equal up to, but not
// including, their fragments.
func EqualIgnoringFragment(a, b URL) bool {
	if a.pos.QueryEnd != b.pos.QueryEnd {
		return false
	}
	return a.str[:a.pos.QueryEnd] == b.str[:b.pos.QueryEnd]
}

// HostsEqual reports whether a and b have the same scheme and host, and
// both have or both lack an authority.
func HostsEqual(a, b URL) bool {
	if a.Protocol() != b.Protocol() {
		return false
	}
	if a.hasAuthority() != b.hasAuthority() {
		return false
	}
	return a.Host() == b.Host()
}

// ProtocolHostAndPortEqual reports whether a and b share an origin: scheme,
// host and port, with host and scheme compared without regard to case.
func ProtocolHostAndPortEqual(a, b URL) bool {
	if a.pos.SchemeEnd != b.pos.SchemeEnd || a.Port() != b.Port() {
		return false
	}
	if !strings.EqualFold(a.Protocol(), b.Protocol()) {
		return false
	}
	return strings.EqualFold(a.Host(), b.Host())
}

// hasAuthority reports whether the scheme is followed by "//".
func (u URL) hasAuthority() bool {
	return strings.HasPrefix(u.str[u.pos.SchemeEnd:], "://")
}

// EllipsizeCenter shortens the string form of u to about n bytes by
// replacing its middle with "...". Strings of at most n bytes are returned
// unchanged.
func (u URL) EllipsizeCenter(n int) string {
	if len(u.str) <= n {
		return u.str
	}
	left := max(n/2-1, 0)
	right := max(n/2-2, 0)
	return u.str[:left] + "..." + u.str[len(u.str)-right:]
}

// ShouldInheritSecurityOriginFromOwner reports whether a document loaded
// from u takes the security origin of the document that created it.
func ShouldInheritSecurityOriginFromOwner(u URL) bool {
	return u.IsEmpty() ||
		strings.EqualFold(u.str, "about:blank") ||
		strings.EqualFold(u.str, "about:srcdoc")
}
