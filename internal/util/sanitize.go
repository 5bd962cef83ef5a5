package util

import (
	"html"
	"strings"
	"sync"

	"github.com/microcosm-cc/bluemonday"
)

var (
	contentPolicyOnce sync.Once
	contentPolicy     *bluemonday.Policy

	textPolicyOnce sync.Once
	textPolicy     *bluemonday.Policy
)

// bluemonday policies are safe for concurrent use once built
func richPolicy() *bluemonday.Policy {
	contentPolicyOnce.Do(func() {
		contentPolicy = bluemonday.UGCPolicy()
	})
	return contentPolicy
}

func strictPolicy() *bluemonday.Policy {
	textPolicyOnce.Do(func() {
		textPolicy = bluemonday.StrictPolicy()
	})
	return textPolicy
}

// SanitizeRichText keeps user-generated formatting (links, emphasis, lists, images)
// and strips scripts, event handlers and unsafe URLs. Used for post bodies.
func SanitizeRichText(s string) string {
	return strings.TrimSpace(richPolicy().Sanitize(s))
}

// SanitizePlainText removes every tag. Used for comments, titles and profile fields.
// Entities escaped by the policy are decoded again so stored text stays readable;
// output encoding is the renderer's job.
func SanitizePlainText(s string) string {
	return strings.TrimSpace(html.UnescapeString(strictPolicy().Sanitize(s)))
}
