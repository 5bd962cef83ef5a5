package util

import (
	"strings"
	"unicode/utf8"
)

// ExcerptLength is the default excerpt size in runes
const ExcerptLength = 150

// Excerpt returns the first n runes of the tag-free text, collapsing whitespace.
// "..." is appended when the text was cut.
func Excerpt(content string, n int) string {
	text := strings.Join(strings.Fields(SanitizePlainText(content)), " ")
	if utf8.RuneCountInString(text) <= n {
		return text
	}
	runes := []rune(text)
	return strings.TrimSpace(string(runes[:n])) + "..."
}

// NormalizeTags trims, lowercases and de-duplicates tags, keeping first-seen order
func NormalizeTags(tags []string) []string {
	seen := make(map[string]bool, len(tags))
	out := make([]string, 0, len(tags))
	for _, tag := range tags {
		tag = strings.ToLower(strings.TrimSpace(SanitizePlainText(tag)))
		if tag == "" || seen[tag] {
			continue
		}
		seen[tag] = true
		out = append(out, tag)
	}
	return out
}
