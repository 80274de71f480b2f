// Package avatars derives default profile images for new users from their
// display name. URL derivation is deterministic; the avatar service itself
// renders the image on demand.
package avatars

import (
	"net/url"
	"strings"
	"unicode"
	"unicode/utf8"
)

// Initials extracts up to two uppercase initials from a display name.
// A blank name yields a single placeholder initial.
func Initials(name string) string {
	var b strings.Builder

	count := 0
	for _, word := range strings.Fields(name) {
		r, _ := utf8.DecodeRuneInString(word)
		b.WriteRune(unicode.ToUpper(r))
		count++
		if count == 2 {
			break
		}
	}

	if count == 0 {
		return "U"
	}

	return b.String()
}

// InitialsURL builds the avatar URL for a display name.
func InitialsURL(endpoint, name string) string {
	params := url.Values{}
	params.Set("name", Initials(name))
	params.Set("size", "96")

	return strings.TrimSuffix(endpoint, "/") + "/?" + params.Encode()
}
