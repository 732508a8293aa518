package locale

import (
	"net/http"
	"strings"
	"time"

	"golang.org/x/text/language"
)

const (
	// QueryParam selects the language on any page request.
	QueryParam = "lang"
	// CookieName persists an explicit language choice.
	CookieName = "coop_lang"
)

// matcher order must follow supported; Dutch requests arrive as "nl".
var matcher = language.NewMatcher([]language.Tag{
	language.English,
	language.Dutch,
})

// Negotiate maps an Accept-Language header onto the supported set, returning
// Primary when nothing matches.
func Negotiate(acceptLanguage string) Code {
	if code, ok := negotiate(acceptLanguage); ok {
		return code
	}
	return Primary
}

func negotiate(acceptLanguage string) (Code, bool) {
	acceptLanguage = strings.TrimSpace(acceptLanguage)
	if acceptLanguage == "" {
		return "", false
	}
	tags, _, err := language.ParseAcceptLanguage(acceptLanguage)
	if err != nil || len(tags) == 0 {
		return "", false
	}
	_, index, confidence := matcher.Match(tags...)
	if confidence == language.No || index < 0 || index >= len(supported) {
		return "", false
	}
	return supported[index], true
}

// FromRequest resolves the request language: query parameter, then cookie,
// then Accept-Language, then fallback. Unsupported values at each step are
// ignored. fromQuery reports whether the query parameter decided.
func FromRequest(r *http.Request, fallback Code) (code Code, fromQuery bool) {
	fallback = Normalize(string(fallback))
	if r == nil {
		return fallback, false
	}
	if raw := r.URL.Query().Get(QueryParam); raw != "" {
		if parsed, ok := Parse(raw); ok {
			return parsed, true
		}
	}
	if cookie, err := r.Cookie(CookieName); err == nil {
		if parsed, ok := Parse(cookie.Value); ok {
			return parsed, false
		}
	}
	if parsed, ok := negotiate(r.Header.Get("Accept-Language")); ok {
		return parsed, false
	}
	return fallback, false
}

// SetCookie persists code on the response.
func SetCookie(w http.ResponseWriter, code Code) {
	if w == nil {
		return
	}
	http.SetCookie(w, &http.Cookie{
		Name:     CookieName,
		Value:    Normalize(string(code)).String(),
		Path:     "/",
		MaxAge:   int((365 * 24 * time.Hour).Seconds()),
		SameSite: http.SameSiteLaxMode,
	})
}
