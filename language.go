package coopsite

import (
	"errors"
	"fmt"
	"strings"

	"github.com/goliatone/go-coopsite/internal/locale"
)

var ErrUnsupportedLanguage = locale.ErrUnsupportedCode

// LanguageNotSupportedError describes a rejected language and unwraps to
// ErrUnsupportedLanguage.
type LanguageNotSupportedError struct {
	Code string
}

func (e *LanguageNotSupportedError) Error() string {
	code := strings.TrimSpace(e.Code)
	if code == "" {
		return "coopsite: language is required"
	}
	return fmt.Sprintf("coopsite: language %q not supported", code)
}

func (e *LanguageNotSupportedError) Unwrap() error {
	return ErrUnsupportedLanguage
}

// ParseLanguage maps user input to a supported language. Blank input
// resolves to English.
func ParseLanguage(raw string) (Language, error) {
	if strings.TrimSpace(raw) == "" {
		return locale.Primary, nil
	}
	code, err := locale.Validate(raw)
	if err != nil {
		if errors.Is(err, locale.ErrUnsupportedCode) {
			return "", &LanguageNotSupportedError{Code: raw}
		}
		return "", err
	}
	return code, nil
}

// Languages lists the supported languages in preference order.
func Languages() []Language {
	return locale.Supported()
}
