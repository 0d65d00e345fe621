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
	"errors"
	"fmt"
)

// ErrInvalidURL is wrapped by every ParseError reporting a string that is
// not a valid absolute URL.
var ErrInvalidURL = errors.New("invalid URL")

// ErrUnknownEncoding is wrapped by the ParseError returned for an encoding
// label that names no known encoding.
var ErrUnknownEncoding = errors.New("unknown encoding")

var (
	// errNoScheme is reported when the input does not start with a scheme
	// followed by ':'.
	errNoScheme = &kindError{message: "No scheme found in an absolute URL"}
	// errEmptyHostAfterUserinfo is reported for authorities such as "user@"
	// that give credentials but no host or port.
	errEmptyHostAfterUserinfo = &kindError{message: "Empty host after userinfo"}
)

// ParseError is the error type returned by the checking functions of this
// package. Message describes the failure and Err is ErrInvalidURL or
// ErrUnknownEncoding.
type ParseError struct {
	Message string
	Err     error
}

// Error returns the string representation of the parse error.
func (e *ParseError) Error() string {
	return fmt.Sprintf("URL parse error: %s", e.Message)
}

// Unwrap provides compatibility with Go's standard errors package.
func (e *ParseError) Unwrap() error {
	return e.Err
}

// newParseError wraps a failure to parse input. reason may be nil when no
// detail is known.
func newParseError(input string, reason error) *ParseError {
	msg := fmt.Sprintf("%q is not a valid URL", input)
	if reason != nil {
		msg = fmt.Sprintf("%s: %v", msg, reason)
	}
	return &ParseError{Message: msg, Err: ErrInvalidURL}
}

// kindError describes why the scanner rejected an input.
type kindError struct {
	message string
	char    rune
	details string
}

// Error formats the error message with any available character or details.
func (e *kindError) Error() string {
	msg := e.message
	if e.char != 0 {
		msg = fmt.Sprintf("%s '%c'", msg, e.char)
	} else if e.details != "" {
		msg = fmt.Sprintf("%s '%s'", msg, e.details)
	}
	return msg
}
