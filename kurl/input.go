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

// parserInput gives NUL-terminated byte access over the text being parsed.
// Reading at or past the end yields 0, which every scanning loop treats as a
// terminator, so the scanners never need explicit bounds checks.
type parserInput struct {
	s string
}

// newParserInput wraps s. An embedded NUL ends the input.
func newParserInput(s string) parserInput {
	if i := strings.IndexByte(s, 0); i >= 0 {
		s = s[:i]
	}
	return parserInput{s: s}
}

// at returns the byte at i, or 0 when i is out of range.
func (in parserInput) at(i int) byte {
	if i < 0 || i >= len(in.s) {
		return 0
	}
	return in.s[i]
}

// slice returns the bytes in [start, end).
func (in parserInput) slice(start, end int) string {
	return in.s[start:end]
}

// len returns the number of bytes before the terminator.
func (in parserInput) len() int {
	return len(in.s)
}

// hasPrefixFold reports whether the input at i starts with lower, ignoring
// ASCII case. lower must be lowercase.
func (in parserInput) hasPrefixFold(i int, lower string) bool {
	for j := 0; j < len(lower); j++ {
		if in.at(i+j)|0x20 != lower[j] {
			return false
		}
	}
	return true
}

// trimURLSpace strips leading and trailing control characters and spaces.
func trimURLSpace(s string) string {
	start, end := 0, len(s)
	for start < end && shouldTrimFromURL(s[start]) {
		start++
	}
	for end > start && shouldTrimFromURL(s[end-1]) {
		end--
	}
	return s[start:end]
}
