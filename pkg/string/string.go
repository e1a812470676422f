package string

import (
	"strings"
	"unicode"
)

// TrimStrings trims surrounding whitespace in place.
func TrimStrings(ss ...*string) {
	for _, s := range ss {
		*s = strings.TrimSpace(*s)
	}
}

// LowerTrim trims and lowercases in place. Used for enum-like request fields.
func LowerTrim(ss ...*string) {
	for _, s := range ss {
		*s = strings.ToLower(strings.TrimSpace(*s))
	}
}

// ToSnakeCase converts Go field names ("ViewerID") to JSON-style names ("viewer_id").
func ToSnakeCase(s string) string {
	var b strings.Builder
	runes := []rune(s)
	for i, r := range runes {
		if unicode.IsUpper(r) && i > 0 &&
			(unicode.IsLower(runes[i-1]) || (i+1 < len(runes) && unicode.IsLower(runes[i+1]))) {
			b.WriteByte('_')
		}
		b.WriteRune(unicode.ToLower(r))
	}
	return b.String()
}
