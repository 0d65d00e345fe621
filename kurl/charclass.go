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

// Character classes used while scanning URL text. A byte may belong to
// several classes at once.
const (
	schemeFirstChar = 1 << iota
	schemeChar
	userInfoChar
	hostnameChar
	ipv6Char
	pathSegmentEndChar
	badChar
)

// EncodeClass selects which bytes EncodePercentEscapes escapes. The classes
// are nested: every byte escaped for EncodeSimple is also escaped for
// EncodeDefault, and so on down to EncodeUsername.
type EncodeClass uint8

// Percent-encode classes, from least to most strict.
const (
	EncodeSimple   EncodeClass = 255
	EncodeDefault  EncodeClass = 127
	EncodePassword EncodeClass = 63
	EncodeUsername EncodeClass = 31
)

const (
	asciiLetters   = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz"
	asciiDigits    = "0123456789"
	asciiHexDigits = "0123456789ABCDEFabcdef"
)

var charClassTable = buildCharClassTable()

var percentEncodeClassTable = buildPercentEncodeClassTable()

func buildCharClassTable() [256]uint8 {
	var t [256]uint8
	mark := func(chars string, class uint8) {
		for i := 0; i < len(chars); i++ {
			t[chars[i]] |= class
		}
	}

	mark(asciiLetters, schemeFirstChar)
	// ALPHA *( ALPHA / DIGIT / "+" / "-" / "." )
	mark(asciiLetters+asciiDigits+"+-.", schemeChar)
	// unreserved | escaped | ";" | ":" | "&" | "=" | "+" | "$" | ","
	mark(asciiLetters+asciiDigits+"-_.!~*'()"+"%;:&=+$,", userInfoChar)
	// "_" is not allowed by RFC 3986 but is common in the wild.
	mark(asciiLetters+asciiDigits+".-%_", hostnameChar)
	mark(asciiHexDigits+":%.", ipv6Char)
	mark("#?/", pathSegmentEndChar)
	t[0] |= pathSegmentEndChar

	for c := 0; c <= ' '; c++ {
		t[c] |= badChar
	}
	mark("\"#%<>?\\^`{|}", badChar)
	for c := 0x7F; c < len(t); c++ {
		t[c] |= badChar
	}
	return t
}

func buildPercentEncodeClassTable() [256]EncodeClass {
	var t [256]EncodeClass
	for c := 0; c < ' '; c++ {
		t[c] = EncodeSimple
	}
	for c := 0x7F; c < len(t); c++ {
		t[c] = EncodeSimple
	}
	// '%' is escaped too so that decoding an encoded string gives it back.
	for _, c := range []byte(" \"#%<>?`") {
		t[c] = EncodeDefault
	}
	for _, c := range []byte("/@\\") {
		t[c] = EncodePassword
	}
	t[':'] = EncodeUsername
	return t
}

func isSchemeFirstChar(c byte) bool { return charClassTable[c]&schemeFirstChar != 0 }

func isSchemeChar(c byte) bool { return charClassTable[c]&schemeChar != 0 }

func isUserInfoChar(c byte) bool { return charClassTable[c]&userInfoChar != 0 }

func isHostnameChar(c byte) bool { return charClassTable[c]&hostnameChar != 0 }

func isIPv6Char(c byte) bool { return charClassTable[c]&ipv6Char != 0 }

// isPathSegmentEndChar reports whether c ends a path segment: '#', '?', '/'
// or the NUL that terminates the input.
func isPathSegmentEndChar(c byte) bool { return charClassTable[c]&pathSegmentEndChar != 0 }

// isBadChar reports whether c must not appear literally in a canonical path.
func isBadChar(c byte) bool { return charClassTable[c]&badChar != 0 }

// isASCIIDigit checks if a byte is an ASCII digit.
func isASCIIDigit(c byte) bool {
	return '0' <= c && c <= '9'
}

// isASCIIHexDigit checks if a byte is an ASCII hexadecimal digit.
func isASCIIHexDigit(c byte) bool {
	return isASCIIDigit(c) || ('a' <= c|0x20 && c|0x20 <= 'f')
}

// isLetterMatchIgnoringCase compares c to an ASCII lowercase letter.
func isLetterMatchIgnoringCase(c, lower byte) bool {
	return c|0x20 == lower
}

// shouldTrimFromURL reports whether c is leading or trailing whitespace or a
// control character that browsers ignore around URLs.
func shouldTrimFromURL(c byte) bool {
	return c <= ' '
}

func isASCII(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] >= 0x80 {
			return false
		}
	}
	return true
}
