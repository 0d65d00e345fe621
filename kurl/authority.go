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

// scanAuthority records the userinfo, host and port ranges that follow the
// scheme of a URL known to carry an authority.
func (c *rawComponents) scanAuthority() error {
	in := c.in

	userStart := c.schemeEnd + 1
	if c.hierarchical {
		userStart++
		if in.at(userStart) == '/' {
			userStart++
			// Extra slashes are tolerated for schemes that always have a host.
			if isNonFileHierarchicalScheme(c.scheme()) {
				for in.at(userStart) == '/' {
					userStart++
				}
			}
		}
	}

	userEnd, passwordStart, passwordEnd, hostStart, err := scanUserinfo(in, userStart)
	if err != nil {
		return err
	}

	hostEnd, err := scanHost(in, hostStart)
	if err != nil {
		return err
	}

	portStart, portEnd := hostEnd, hostEnd
	if in.at(hostEnd) == ':' {
		portStart = hostEnd + 1
		portEnd = portStart
		for isASCIIDigit(in.at(portEnd)) {
			portEnd++
		}
	}

	if b := in.at(portEnd); !isPathSegmentEndChar(b) {
		return &kindError{message: "Invalid character after authority", char: rune(b)}
	}

	if in.at(passwordEnd) == '@' && hostStart == portEnd {
		return errEmptyHostAfterUserinfo
	}

	// An empty authority on a scheme that does not require one is read
	// back as a path whose first two segments are empty: "foo://" keeps its
	// two slashes and the slashes skipped in "ftp:////" are dropped.
	if userStart == portEnd && !c.httpFamily && !c.isFile {
		c.setEmptyAuthority(max(userStart-2, c.schemeEnd+1))
		return nil
	}

	c.userStart, c.userEnd = userStart, userEnd
	c.passwordStart, c.passwordEnd = passwordStart, passwordEnd
	c.hostStart, c.hostEnd = hostStart, hostEnd
	c.portStart, c.portEnd = portStart, portEnd
	return nil
}

// scanUserinfo scans from userStart to the '@' ending the userinfo, if
// there is one. Without an '@' the userinfo is empty and the host starts at
// userStart. The first ':' splits the user from the password.
func scanUserinfo(in parserInput, userStart int) (userEnd, passwordStart, passwordEnd, hostStart int, err error) {
	userEnd = userStart
	colon := 0
	for isUserInfoChar(in.at(userEnd)) {
		if in.at(userEnd) == ':' && colon == 0 {
			colon = userEnd
		}
		userEnd++
	}

	switch b := in.at(userEnd); {
	case b == '@':
		if colon != 0 {
			passwordEnd = userEnd
			userEnd = colon
			passwordStart = colon + 1
		} else {
			passwordStart, passwordEnd = userEnd, userEnd
		}
		return userEnd, passwordStart, passwordEnd, passwordEnd + 1, nil
	case b == '[' || isPathSegmentEndChar(b):
		// What was scanned is the host and port, not a userinfo.
		return userStart, userStart, userStart, userStart, nil
	default:
		return 0, 0, 0, 0, &kindError{message: "Invalid character in authority", char: rune(b)}
	}
}

// scanHost returns the end of the host that starts at hostStart. A host is
// either a bracketed IPv6 literal or a run of hostname characters.
func scanHost(in parserInput, hostStart int) (int, error) {
	end := hostStart
	if in.at(end) != '[' {
		for isHostnameChar(in.at(end)) {
			end++
		}
		return end, nil
	}

	end++
	for isIPv6Char(in.at(end)) {
		end++
	}
	if in.at(end) != ']' {
		return 0, &kindError{message: "Unterminated IP literal", details: in.slice(hostStart, end)}
	}
	return end + 1, nil
}
