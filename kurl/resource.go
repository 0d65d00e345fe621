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
	"path"
	"strings"
)

// Resource is the view a download manager has of a transfer. It only needs
// the requested URL, the byte counters and a way to cancel.
type Resource interface {
	URL() URL
	BytesReceived() int64
	ExpectedBytes() int64
	Cancel()
}

// SuggestedFilename returns the name a download of u should be saved as:
// the decoded last path component, or the host when the path names no file.
func SuggestedFilename(u URL) string {
	if !u.IsValid() {
		return ""
	}
	name := DecodePercentEscapes(u.LastPathComponent(), nil)
	name = path.Base(strings.ReplaceAll(name, "\\", "/"))
	if name == "" || name == "." || name == "/" || name == ".." {
		return u.Host()
	}
	return name
}
