package localized

import "github.com/goliatone/go-coopsite/internal/locale"

// Resolve turns f into the string to display for lang.
//
// An absent field yields fallback. A plain field is returned as authored,
// including the empty string. A mapping tries lang, then locale.Primary, then
// the first non-empty entry in authored order, then fallback; empty entries
// never win.
func Resolve(f Field, lang locale.Code, fallback string) string {
	switch f.kind {
	case kindPlain:
		return f.plain
	case kindLocalized:
		if value, ok := f.Lookup(lang); ok && value != "" {
			return value
		}
		if value, ok := f.Lookup(locale.Primary); ok && value != "" {
			return value
		}
		for _, entry := range f.entries {
			if entry.Value != "" {
				return entry.Value
			}
		}
		return fallback
	default:
		return fallback
	}
}
