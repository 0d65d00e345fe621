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

const upperHex = "0123456789ABCDEF"

// urlBuffer accumulates the canonical form of a URL during serialization.
// Positions recorded with len() stay valid because the buffer only grows,
// except through truncate which is used to rewind over path segments.
type urlBuffer struct {
	b []byte
}

// newURLBuffer returns a buffer able to hold n bytes without growing.
func newURLBuffer(n int) *urlBuffer {
	return &urlBuffer{b: make([]byte, 0, n)}
}

// writeByte appends a single byte.
func (b *urlBuffer) writeByte(c byte) { b.b = append(b.b, c) }

// writeString appends s.
func (b *urlBuffer) writeString(s string) { b.b = append(b.b, s...) }

// writeEscaped appends c as a %XX triple with uppercase hex digits.
func (b *urlBuffer) writeEscaped(c byte) {
	b.b = append(b.b, '%', upperHex[c>>4], upperHex[c&0x0F])
}

// last returns the final byte, or 0 when the buffer is empty.
func (b *urlBuffer) last() byte {
	if len(b.b) == 0 {
		return 0
	}
	return b.b[len(b.b)-1]
}

// len returns the number of bytes written.
func (b *urlBuffer) len() int { return len(b.b) }

// truncate reduces the buffer to n bytes. Invalid values are ignored.
func (b *urlBuffer) truncate(n int) {
	if n < 0 || n > len(b.b) {
		return
	}
	b.b = b.b[:n]
}

// string returns the buffer contents.
func (b *urlBuffer) string() string { return string(b.b) }
