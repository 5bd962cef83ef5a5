package util

import (
	"strings"
	"testing"
	"testing/quick"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSanitizePlainText(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"plain text untouched", "hello world", "hello world"},
		{"tags removed", "<b>bold</b> move", "bold move"},
		{"script removed", `nice<script>alert("x")</script>`, "nice"},
		{"entities decoded", "fish & chips", "fish & chips"},
		{"only markup", "<img src=x onerror=alert(1)>", ""},
		{"trimmed", "   spaced   ", "spaced"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, SanitizePlainText(tt.in))
		})
	}
}

func TestSanitizeRichText(t *testing.T) {
	out := SanitizeRichText(`<p onclick="x()">Hi <a href="javascript:alert(1)">link</a> <em>there</em></p><script>bad()</script>`)

	assert.Contains(t, out, "<p>")
	assert.Contains(t, out, "<em>there</em>")
	assert.NotContains(t, out, "onclick")
	assert.NotContains(t, out, "javascript:")
	assert.NotContains(t, out, "<script>")
}

// 정제된 텍스트에는 태그 시작 문자가 남지 않아야 한다
func TestSanitizePlainText_NoTagsSurvive(t *testing.T) {
	property := func(s string) bool {
		out := SanitizePlainText("<i>" + s + "</i>")
		return !strings.Contains(out, "<i>") && !strings.Contains(out, "</i>")
	}
	require.NoError(t, quick.Check(property, nil))
}

func TestExcerpt(t *testing.T) {
	assert.Equal(t, "short text", Excerpt("<p>short   text</p>", 150))

	long := strings.Repeat("가나다 ", 100)
	out := Excerpt(long, 10)
	assert.True(t, strings.HasSuffix(out, "..."))
	assert.LessOrEqual(t, utf8.RuneCountInString(strings.TrimSuffix(out, "...")), 10)
}

func TestExcerpt_NeverExceedsLimit(t *testing.T) {
	property := func(s string, n uint8) bool {
		limit := int(n%200) + 1
		out := strings.TrimSuffix(Excerpt(s, limit), "...")
		return utf8.RuneCountInString(out) <= limit
	}
	require.NoError(t, quick.Check(property, nil))
}

func TestNormalizeTags(t *testing.T) {
	got := NormalizeTags([]string{" Go ", "go", "<b>Logging</b>", "", "zap"})
	assert.Equal(t, []string{"go", "logging", "zap"}, got)
	assert.Empty(t, NormalizeTags(nil))
}

func TestPassword(t *testing.T) {
	hash, err := HashPassword("s3cret!")
	require.NoError(t, err)
	assert.NotEqual(t, "s3cret!", hash)

	assert.True(t, CheckPassword(hash, "s3cret!"))
	assert.False(t, CheckPassword(hash, "wrong"))
	assert.False(t, CheckPassword("not-a-hash", "s3cret!"))

	_, err = HashPassword(strings.Repeat("x", 80))
	assert.True(t, IsPasswordTooLong(err))
}
