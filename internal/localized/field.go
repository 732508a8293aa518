// Package localized models CMS values that may vary by language and resolves
// them to a single displayable string.
package localized

import (
	"bytes"
	"encoding/json"
	"fmt"
	"sort"
	"strings"

	"github.com/goliatone/go-coopsite/internal/locale"
)

type kind uint8

const (
	kindAbsent kind = iota
	kindPlain
	kindLocalized
)

// Entry is one language value of a localized mapping.
type Entry struct {
	Code  locale.Code
	Value string
}

// Field is either absent, a plain language-independent string, or a mapping
// from language code to string kept in authored order. The zero value is
// absent.
type Field struct {
	kind    kind
	plain   string
	entries []Entry
}

// Absent returns the zero Field.
func Absent() Field {
	return Field{}
}

// Plain wraps a language-independent value.
func Plain(value string) Field {
	return Field{kind: kindPlain, plain: value}
}

// Localize builds a mapping from entries. Unsupported codes are dropped and a
// repeated code keeps its first position with the last value.
func Localize(entries ...Entry) Field {
	f := Field{kind: kindLocalized}
	for _, entry := range entries {
		f.set(entry.Code, entry.Value)
	}
	return f
}

// Map builds a mapping from a Go map. Keys are sorted so the result is
// deterministic.
func Map(values map[string]string) Field {
	keys := make([]string, 0, len(values))
	for key := range values {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	f := Field{kind: kindLocalized}
	for _, key := range keys {
		if code, ok := locale.Parse(key); ok {
			f.set(code, values[key])
		}
	}
	return f
}

// IsAbsent reports whether the field was not provided.
func (f Field) IsAbsent() bool { return f.kind == kindAbsent }

// IsPlain reports whether the field is a plain string.
func (f Field) IsPlain() bool { return f.kind == kindPlain }

// IsLocalized reports whether the field is a language mapping.
func (f Field) IsLocalized() bool { return f.kind == kindLocalized }

// PlainValue returns the plain string and whether the field is plain.
func (f Field) PlainValue() (string, bool) {
	return f.plain, f.kind == kindPlain
}

// Entries returns a copy of the mapping entries in authored order.
func (f Field) Entries() []Entry {
	if len(f.entries) == 0 {
		return nil
	}
	out := make([]Entry, len(f.entries))
	copy(out, f.entries)
	return out
}

// Lookup returns the value authored for code.
func (f Field) Lookup(code locale.Code) (string, bool) {
	for _, entry := range f.entries {
		if entry.Code == code {
			return entry.Value, true
		}
	}
	return "", false
}

func (f *Field) set(code locale.Code, value string) {
	if !code.Valid() {
		return
	}
	for i := range f.entries {
		if f.entries[i].Code == code {
			f.entries[i].Value = value
			return
		}
	}
	f.entries = append(f.entries, Entry{Code: code, Value: value})
}

func (f Field) String() string {
	switch f.kind {
	case kindPlain:
		return fmt.Sprintf("Plain(%q)", f.plain)
	case kindLocalized:
		parts := make([]string, 0, len(f.entries))
		for _, entry := range f.entries {
			parts = append(parts, fmt.Sprintf("%s:%q", entry.Code, entry.Value))
		}
		return "Localized{" + strings.Join(parts, ", ") + "}"
	default:
		return "Absent"
	}
}

// UnmarshalJSON accepts null, strings, numbers, booleans and objects. Object
// keys outside the language set (such as "_type") and non-string object
// values are ignored. Arrays are rejected.
func (f *Field) UnmarshalJSON(data []byte) error {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		*f = Field{}
		return nil
	}

	switch trimmed[0] {
	case '"':
		var value string
		if err := json.Unmarshal(trimmed, &value); err != nil {
			return err
		}
		*f = Plain(value)
		return nil
	case '{':
		return f.decodeObject(trimmed)
	case '[':
		return fmt.Errorf("localized: cannot decode array into field")
	default:
		// numbers and booleans keep their literal text
		var scalar any
		if err := json.Unmarshal(trimmed, &scalar); err != nil {
			return err
		}
		*f = Plain(string(trimmed))
		return nil
	}
}

func (f *Field) decodeObject(data []byte) error {
	decoder := json.NewDecoder(bytes.NewReader(data))
	decoder.UseNumber()
	if _, err := decoder.Token(); err != nil {
		return err
	}

	out := Field{kind: kindLocalized}
	for decoder.More() {
		token, err := decoder.Token()
		if err != nil {
			return err
		}
		key, _ := token.(string)

		var raw json.RawMessage
		if err := decoder.Decode(&raw); err != nil {
			return err
		}
		code, ok := locale.Parse(key)
		if !ok {
			continue
		}
		var value string
		if err := json.Unmarshal(raw, &value); err != nil {
			continue
		}
		out.set(code, value)
	}
	if _, err := decoder.Token(); err != nil {
		return err
	}
	*f = out
	return nil
}

// MarshalJSON writes null, a string, or an object in authored order.
func (f Field) MarshalJSON() ([]byte, error) {
	switch f.kind {
	case kindPlain:
		return json.Marshal(f.plain)
	case kindLocalized:
		var buf bytes.Buffer
		buf.WriteByte('{')
		for i, entry := range f.entries {
			if i > 0 {
				buf.WriteByte(',')
			}
			key, err := json.Marshal(entry.Code.String())
			if err != nil {
				return nil, err
			}
			value, err := json.Marshal(entry.Value)
			if err != nil {
				return nil, err
			}
			buf.Write(key)
			buf.WriteByte(':')
			buf.Write(value)
		}
		buf.WriteByte('}')
		return buf.Bytes(), nil
	default:
		return []byte("null"), nil
	}
}
