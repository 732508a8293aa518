// Package locale holds the closed set of site languages and the language
// state shared by a render pass.
package locale

import (
	"errors"
	"fmt"
	"strings"
)

// Code identifies one of the site languages.
type Code string

const (
	// English is the primary language and the fallback for every lookup.
	English Code = "en"
	// Dutch uses the cooperative's historical "du" code rather than BCP 47 "nl".
	Dutch Code = "du"

	// Primary is returned whenever a requested code is not supported.
	Primary = English
)

var supported = []Code{English, Dutch}

// ErrUnsupportedCode reports a language code outside the supported set.
var ErrUnsupportedCode = errors.New("locale: unsupported language code")

// UnsupportedCodeError carries the rejected input and unwraps to ErrUnsupportedCode.
type UnsupportedCodeError struct {
	Code string
}

func (e *UnsupportedCodeError) Error() string {
	return fmt.Sprintf("locale: language code %q is not supported", e.Code)
}

func (e *UnsupportedCodeError) Unwrap() error {
	return ErrUnsupportedCode
}

// Supported returns the language codes in preference order.
func Supported() []Code {
	out := make([]Code, len(supported))
	copy(out, supported)
	return out
}

// Parse validates raw against the supported set.
func Parse(raw string) (Code, bool) {
	candidate := Code(strings.ToLower(strings.TrimSpace(raw)))
	for _, code := range supported {
		if code == candidate {
			return code, true
		}
	}
	return "", false
}

// Validate is Parse with an error for callers that need one.
func Validate(raw string) (Code, error) {
	code, ok := Parse(raw)
	if !ok {
		return "", &UnsupportedCodeError{Code: raw}
	}
	return code, nil
}

// Normalize returns the parsed code or Primary.
func Normalize(raw string) Code {
	if code, ok := Parse(raw); ok {
		return code
	}
	return Primary
}

// Valid reports whether c is a member of the supported set.
func (c Code) Valid() bool {
	for _, code := range supported {
		if code == c {
			return true
		}
	}
	return false
}

func (c Code) String() string {
	return string(c)
}
