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

//nolint:testpackage // This is a white-box test file for an internal package. It needs to be in the same package to test unexported functions.
package kurl

import (
	"reflect"
	"testing"
)

func TestEncodeHostname(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"example.com", "example.com"},
		{"bücher.de", "xn--bcher-kva.de"},
		{"BÜCHER.de", "xn--bcher-kva.de"},
		{"日本.jp", "xn--wgv71a.jp"},
	}
	for _, tt := range tests {
		if got := encodeHostname(tt.in); got != tt.want {
			t.Errorf("encodeHostname(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestParseInternationalHost(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"http://bücher.de/", "http://xn--bcher-kva.de/"},
		{"http://user@bücher.de:8080/ä", "http://user@xn--bcher-kva.de:8080/%C3%A4"},
		{"mailto:user@bücher.de?subject=x", "mailto:user@xn--bcher-kva.de?subject=x"},
	}
	for _, tt := range tests {
		if got := Parse(tt.in).String(); got != tt.want {
			t.Errorf("Parse(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestHierarchicalHostnameRange(t *testing.T) {
	tests := []struct {
		in        string
		wantStart int
		wantEnd   int
		wantOK    bool
	}{
		{"http://host/p", 7, 11, true},
		{"http://user@host:80/p", 12, 16, true},
		{"http://a@b@host", 11, 15, true},
		{"http://[::1]:80/", 7, 12, true},
		{"http:///p", 0, 0, false},
		{"mailto:x@y", 0, 0, false},
		{"no scheme", 0, 0, false},
	}
	for _, tt := range tests {
		start, end, ok := hierarchicalHostnameRange(tt.in)
		if start != tt.wantStart || end != tt.wantEnd || ok != tt.wantOK {
			t.Errorf("hierarchicalHostnameRange(%q) = (%d, %d, %v), want (%d, %d, %v)",
				tt.in, start, end, ok, tt.wantStart, tt.wantEnd, tt.wantOK)
		}
	}
}

func TestMailtoHostnameRanges(t *testing.T) {
	tests := []struct {
		in   string
		want [][2]int
	}{
		{"mailto:a@b.com,c@d.org", [][2]int{{9, 14}, {17, 22}}},
		{`mailto:"a@b"@c.org`, [][2]int{{13, 18}}},
		{"mailto:<a@b.com>", [][2]int{{10, 15}}},
		{"mailto:a@b?cc=c@d", [][2]int{{9, 10}}},
		{"mailto:nobody", nil},
		{`mailto:"unterminated@x`, nil},
	}
	for _, tt := range tests {
		if got := mailtoHostnameRanges(tt.in); !reflect.DeepEqual(got, tt.want) {
			t.Errorf("mailtoHostnameRanges(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestFormSubmissionEncoding(t *testing.T) {
	for _, label := range []string{"utf-8", "utf-16le", "utf-16be"} {
		enc, err := EncodingByName(label)
		if err != nil {
			t.Fatalf("EncodingByName(%q): %v", label, err)
		}
		if formSubmissionEncoding(enc) != nil {
			t.Errorf("%s should submit forms as UTF-8", label)
		}
	}

	enc, err := EncodingByName("iso-8859-2")
	if err != nil {
		t.Fatalf("EncodingByName: %v", err)
	}
	if formSubmissionEncoding(enc) == nil {
		t.Errorf("iso-8859-2 should be kept")
	}
	if formSubmissionEncoding(nil) != nil {
		t.Errorf("nil should stay nil")
	}
}

func TestEncodeWithEntityFallback(t *testing.T) {
	enc, err := EncodingByName("windows-1252")
	if err != nil {
		t.Fatalf("EncodingByName: %v", err)
	}
	if got, want := encodeWithEntityFallback("?a=é&b=ω", enc), "?a=\xe9&b=%26%23969%3B"; got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}
