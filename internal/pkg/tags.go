package pkg

import (
	"strings"
	"unicode"
)

// ParseTags turns a free-text tag string into a list of tags: every
// whitespace character is removed from the whole string first, then the
// result is split on commas. Empty tokens survive the split ("a,,b" keeps
// its middle token) and an empty input yields an empty list. Duplicates and
// original spacing are not preserved; stored tags depend on this exact rule.
func ParseTags(s string) []string {
	cleaned := strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) {
			return -1
		}
		return r
	}, s)

	if cleaned == "" {
		return []string{}
	}

	return strings.Split(cleaned, ",")
}
