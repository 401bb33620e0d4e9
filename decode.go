package uroman

import (
	"regexp"
	"strconv"
)

var unicodeEscapeRe = regexp.MustCompile(`\\u([0-9A-Fa-f]{4})`)

// DecodeUnicodeEscapes replaces literal "\uXXXX" escape sequences with the
// rune they denote (the -d/--decode_unicode CLI pre-pass), so escaped input
// files romanize the characters, not the escapes.
func DecodeUnicodeEscapes(s string) string {
	return unicodeEscapeRe.ReplaceAllStringFunc(s, func(m string) string {
		v, err := strconv.ParseUint(m[2:], 16, 32)
		if err != nil {
			return m
		}
		return string(rune(v))
	})
}
