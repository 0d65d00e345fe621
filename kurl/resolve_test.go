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

import "testing"

// Reference resolution examples from RFC 3986, Section 5.4, with the legacy
// answers where they differ ("http:g" is relative to an http base).
func TestResolve(t *testing.T) {
	base := Parse("http://a/b/c/d;p?q")
	if !base.IsValid() {
		t.Fatal("base is not valid")
	}

	tests := []struct {
		rel  string
		want string
	}{
		{"g:h", "g:h"},
		{"g", "http://a/b/c/g"},
		{"./g", "http://a/b/c/g"},
		{"g/", "http://a/b/c/g/"},
		{"/g", "http://a/g"},
		{"//g", "http://g/"},
		{"?y", "http://a/b/c/d;p?y"},
		{"g?y", "http://a/b/c/g?y"},
		{"#s", "http://a/b/c/d;p?q#s"},
		{"g#s", "http://a/b/c/g#s"},
		{"g?y#s", "http://a/b/c/g?y#s"},
		{";x", "http://a/b/c/;x"},
		{"g;x", "http://a/b/c/g;x"},
		{"g;x?y#s", "http://a/b/c/g;x?y#s"},
		{"", "http://a/b/c/d;p?q"},
		{".", "http://a/b/c/"},
		{"./", "http://a/b/c/"},
		{"..", "http://a/b/"},
		{"../", "http://a/b/"},
		{"../g", "http://a/b/g"},
		{"../..", "http://a/"},
		{"../../", "http://a/"},
		{"../../g", "http://a/g"},
		{"../../../g", "http://a/g"},
		{"../../../../g", "http://a/g"},
		{"/./g", "http://a/g"},
		{"/../g", "http://a/g"},
		{"g.", "http://a/b/c/g."},
		{".g", "http://a/b/c/.g"},
		{"g..", "http://a/b/c/g.."},
		{"..g", "http://a/b/c/..g"},
		{"./../g", "http://a/b/g"},
		{"./g/.", "http://a/b/c/g/"},
		{"g/./h", "http://a/b/c/g/h"},
		{"g/../h", "http://a/b/c/h"},
		{"g;x=1/./y", "http://a/b/c/g;x=1/y"},
		{"g;x=1/../y", "http://a/b/c/y"},
		{"g?y/./x", "http://a/b/c/g?y/./x"},
		{"g#s/../x", "http://a/b/c/g#s/../x"},
		{"http:g", "http://a/b/c/g"},
		{"HTTP:g", "http://a/b/c/g"},
		{"http:", "http://a/b/c/d;p?q"},
		{"https:g", "https://g/"},
		{"  g  ", "http://a/b/c/g"},
		{"..\\g", "http://a/b/g"},
		{"\\\\server\\x", "http://server/x"},
		{"g\\h?a\\b", "http://a/b/c/g/h?a%5Cb"},
	}

	for _, tt := range tests {
		t.Run(tt.rel, func(t *testing.T) {
			got := Resolve(base, tt.rel)
			if !got.IsValid() {
				t.Fatalf("Resolve(%q) is not valid", tt.rel)
			}
			if got.String() != tt.want {
				t.Errorf("Resolve(%q) = %q, want %q", tt.rel, got.String(), tt.want)
			}
			assertPositionsOrdered(t, got)
		})
	}
}

func TestResolveFragmentDropped(t *testing.T) {
	base := Parse("http://a/b?q#frag")
	if got, want := Resolve(base, "").String(), "http://a/b?q"; got != want {
		t.Errorf("got %q, want %q", got, want)
	}
	if got, want := Resolve(base, "#other").String(), "http://a/b?q#other"; got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestResolveAgainstPathlessBase(t *testing.T) {
	base := Parse("foo://h")
	if got, want := Resolve(base, "x").String(), "foo://h/x"; got != want {
		t.Errorf("got %q, want %q", got, want)
	}
	if got, want := Resolve(base, "../x").String(), "foo://h/x"; got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestResolveOpaqueBase(t *testing.T) {
	base := Parse("mailto:x@y.org")

	if got, want := Resolve(base, "#f").String(), "mailto:x@y.org#f"; got != want {
		t.Errorf("fragment against opaque base = %q, want %q", got, want)
	}

	got := Resolve(base, "z")
	if got.IsValid() {
		t.Errorf("path against opaque base should be invalid, got %q", got.String())
	}
	if got.String() != "z" {
		t.Errorf("invalid result should keep the relative text, got %q", got.String())
	}

	if got, want := Resolve(base, "mailto:other@y.org").String(), "mailto:other@y.org"; got != want {
		t.Errorf("absolute reference = %q, want %q", got, want)
	}
}

func TestResolveInvalidBase(t *testing.T) {
	base := Parse("not a url")
	got := Resolve(base, "http://ok/")
	if got.IsValid() {
		t.Errorf("resolving against an invalid base should fail")
	}
	if got.String() != "http://ok/" {
		t.Errorf("got %q, want the relative text", got.String())
	}

	if got, want := Resolve(URL{}, "http://ok").String(), "http://ok/"; got != want {
		t.Errorf("empty base should parse absolute references, got %q", got)
	}
	if got := Resolve(URL{}, "relative"); got.IsValid() {
		t.Errorf("empty base should not resolve relative references")
	}
}

func TestResolveJavaScriptKeepsBackslashes(t *testing.T) {
	if got, want := Parse("javascript:a\\b").String(), "javascript:a\\b"; got != want {
		t.Errorf("got %q, want %q", got, want)
	}
	if got, want := Parse("data:,a\\b").String(), "data:,a\\b"; got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestResolveWithEncoding(t *testing.T) {
	latin, err := EncodingByName("windows-1252")
	if err != nil {
		t.Fatalf("EncodingByName: %v", err)
	}
	base := Parse("http://a/")

	tests := []struct {
		name string
		rel  string
		want string
	}{
		{"Query in page encoding", "?q=é", "http://a/?q=%E9"},
		{"Path stays UTF-8", "é?q=é", "http://a/%C3%A9?q=%E9"},
		{"Unencodable becomes entity", "?q=日", "http://a/?q=%26%2326085%3B"},
		{"Fragment in page encoding", "#é", "http://a/#%E9"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ResolveWithEncoding(base, tt.rel, latin).String(); got != tt.want {
				t.Errorf("ResolveWithEncoding(%q) = %q, want %q", tt.rel, got, tt.want)
			}
		})
	}

	if got, want := Resolve(base, "?q=é").String(), "http://a/?q=%C3%A9"; got != want {
		t.Errorf("UTF-8 query = %q, want %q", got, want)
	}
	if got, want := ResolveWithEncoding(base, "mailto:x@y?s=é", latin).String(), "mailto:x@y?s=%C3%A9"; got != want {
		t.Errorf("mailto query should stay UTF-8, got %q", got)
	}
}

func TestSubstituteBackslashes(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"a\\b", "a/b"},
		{"a\\b?c\\d", "a/b?c\\d"},
		{"a#\\", "a#\\"},
		{"plain", "plain"},
	}
	for _, tt := range tests {
		if got := substituteBackslashes(tt.in); got != tt.want {
			t.Errorf("substituteBackslashes(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestMergeRelativePath(t *testing.T) {
	base := Parse("http://h/a/b/c")
	tests := []struct {
		rel  string
		want string
	}{
		{"d", "http://h/a/b/d"},
		{"../../../../d", "http://h/d"},
		{"./d?x/../y", "http://h/a/b/d?x/../y"},
		{"..", "http://h/a/"},
	}
	for _, tt := range tests {
		if got := mergeRelativePath(base, tt.rel); got != tt.want {
			t.Errorf("mergeRelativePath(%q) = %q, want %q", tt.rel, got, tt.want)
		}
	}
}
