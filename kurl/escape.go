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
	"fmt"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/htmlindex"
)

// DecodePercentEscapes replaces every run of "%XX" sequences in s with the
// text the run decodes to under enc. A nil enc means UTF-8. A run that does
// not decode, such as invalid UTF-8, is kept as written. Everything else in
// s, including a '%' not followed by two hex digits, is copied unchanged.
func DecodePercentEscapes(s string, enc encoding.Encoding) string {
	if strings.IndexByte(s, '%') < 0 {
		return s
	}
	if isUTF8(enc) {
		enc = nil
	}

	var b strings.Builder
	b.Grow(len(s))
	var raw []byte
	for i := 0; i < len(s); {
		if !isEscapeAt(s, i) {
			b.WriteByte(s[i])
			i++
			continue
		}

		start := i
		raw = raw[:0]
		for isEscapeAt(s, i) {
			raw = append(raw, unhex(s[i+1])<<4|unhex(s[i+2]))
			i += 3
		}

		decoded, ok := decodeRun(raw, enc)
		if !ok {
			b.WriteString(s[start:i])
			continue
		}
		b.Write(decoded)
	}
	return b.String()
}

// EncodePercentEscapes escapes every byte of the UTF-8 form of s that class
// does not allow to appear literally.
func EncodePercentEscapes(s string, class EncodeClass) string {
	out := newURLBuffer(len(s))
	for i := 0; i < len(s); i++ {
		c := s[i]
		if shouldPercentEncode(c, class) {
			out.writeEscaped(c)
		} else {
			out.writeByte(c)
		}
	}
	return out.string()
}

// EncodeBadChars escapes every byte of the UTF-8 form of s that may not
// appear literally in a URL, including '%', '?' and '#'.
func EncodeBadChars(s string) string {
	out := newURLBuffer(len(s))
	for i := 0; i < len(s); i++ {
		c := s[i]
		if isBadChar(c) {
			out.writeEscaped(c)
		} else {
			out.writeByte(c)
		}
	}
	return out.string()
}

// EncodingByName returns the encoding registered under an HTML encoding
// label such as "utf-8", "latin1" or "shift_jis".
func EncodingByName(label string) (encoding.Encoding, error) {
	enc, err := htmlindex.Get(label)
	if err != nil {
		return nil, &ParseError{Message: fmt.Sprintf("unknown encoding label %q", label), Err: ErrUnknownEncoding}
	}
	return enc, nil
}

// decodeRun decodes the bytes of one run of escapes. A nil enc means UTF-8.
func decodeRun(raw []byte, enc encoding.Encoding) ([]byte, bool) {
	if enc == nil {
		return raw, utf8.Valid(raw)
	}
	decoded, err := enc.NewDecoder().Bytes(raw)
	return decoded, err == nil && len(decoded) > 0
}

// isUTF8 reports whether enc is nil or UTF-8.
func isUTF8(enc encoding.Encoding) bool {
	if enc == nil {
		return true
	}
	name, err := htmlindex.Name(enc)
	return err == nil && name == "utf-8"
}

func shouldPercentEncode(c byte, class EncodeClass) bool {
	return percentEncodeClassTable[c]&class == class
}

func isEscapeAt(s string, i int) bool {
	return i+2 < len(s) && s[i] == '%' && isASCIIHexDigit(s[i+1]) && isASCIIHexDigit(s[i+2])
}

func unhex(c byte) byte {
	switch {
	case '0' <= c && c <= '9':
		return c - '0'
	case 'a' <= c && c <= 'f':
		return c - 'a' + 10
	case 'A' <= c && c <= 'F':
		return c - 'A' + 10
	}
	return 0
}
